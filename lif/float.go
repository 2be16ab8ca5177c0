// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lif

import (
	"fmt"

	"github.com/goki/mat32"
)

///////////////////////////////////////////////////////////////////////
//  float.go contains the floating-point reference LIF model

// FloatState is the per-neuron state record of the floating-point model.
// All slices have the same length N.
type FloatState struct {
	U       []float32 `desc:"synaptic current accumulator"`
	V       []float32 `desc:"membrane voltage accumulator"`
	Du      []float32 `desc:"current decay rate, in [0,1]"`
	Dv      []float32 `desc:"voltage decay rate, in [0,1]"`
	Bias    []float32 `desc:"bias mantissa"`
	BiasExp []float32 `desc:"bias exponent -- effective bias is Bias * 2^BiasExp"`
	Vth     []float32 `desc:"spiking threshold"`

	U0 []float32 `view:"-" desc:"initial current, restored by Init"`
	V0 []float32 `view:"-" desc:"initial voltage, restored by Init"`
}

// NewFloatState returns a zero state record for n neurons
func NewFloatState(n int) *FloatState {
	return &FloatState{
		U:       make([]float32, n),
		V:       make([]float32, n),
		Du:      make([]float32, n),
		Dv:      make([]float32, n),
		Bias:    make([]float32, n),
		BiasExp: make([]float32, n),
		Vth:     make([]float32, n),
	}
}

// N returns the number of neurons
func (st *FloatState) N() int { return len(st.U) }

// Validate checks that all arrays have the same length and the decay rates
// are in [0,1].
func (st *FloatState) Validate() error {
	n := st.N()
	lens := []struct {
		nm string
		n  int
	}{{"V", len(st.V)}, {"Du", len(st.Du)}, {"Dv", len(st.Dv)}, {"Bias", len(st.Bias)}, {"BiasExp", len(st.BiasExp)}, {"Vth", len(st.Vth)}}
	for _, l := range lens {
		if l.n != n {
			return lenErr(l.nm, l.n, n)
		}
	}
	for i := 0; i < n; i++ {
		if !(st.Du[i] >= 0 && st.Du[i] <= 1) {
			return msgErr("Du", i, fmt.Sprintf("%g outside [0, 1]", st.Du[i]))
		}
		if !(st.Dv[i] >= 0 && st.Dv[i] <= 1) {
			return msgErr("Dv", i, fmt.Sprintf("%g outside [0, 1]", st.Dv[i]))
		}
	}
	return nil
}

// FloatModel is the floating-point LIF model.  It is not required to match
// FixedModel bit-for-bit, only to produce qualitatively similar spiking for
// well-scaled inputs.
type FloatModel struct {
	State *FloatState
}

// NewFloatModel validates the state record and returns a model running it.
// The current U and V are taken as the initial state.
func NewFloatModel(st *FloatState) (*FloatModel, error) {
	if err := st.Validate(); err != nil {
		return nil, err
	}
	st.U0 = append([]float32(nil), st.U...)
	st.V0 = append([]float32(nil), st.V...)
	return &FloatModel{State: st}, nil
}

func (fm *FloatModel) Variant() Variant { return FloatPoint }
func (fm *FloatModel) N() int           { return fm.State.N() }

// Init restores U and V to their initial values
func (fm *FloatModel) Init() {
	copy(fm.State.U, fm.State.U0)
	copy(fm.State.V, fm.State.V0)
}

// EffBias returns the effective bias of neuron ni, Bias * 2^BiasExp.
// It is recomputed every step.
func (fm *FloatModel) EffBias(ni int) float32 {
	st := fm.State
	return st.Bias[ni] * mat32.Pow(2, st.BiasExp[ni])
}

// Step runs one timestep of the floating-point model
func (fm *FloatModel) Step(ain []float32, sOut []bool) error {
	st := fm.State
	n := st.N()
	if err := checkIO(n, len(ain), len(sOut)); err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		st.U[i] = st.U[i]*(1-st.Du[i]) + ain[i]
		st.V[i] = st.V[i]*(1-st.Dv[i]) + st.U[i] + fm.EffBias(i)
		spk := st.V[i] >= st.Vth[i]
		if spk {
			st.V[i] = 0
		}
		sOut[i] = spk
	}
	return nil
}

// UnitVal returns the named variable for neuron ni
func (fm *FloatModel) UnitVal(varNm string, ni int) (float32, error) {
	st := fm.State
	if ni < 0 || ni >= st.N() {
		return 0, fmt.Errorf("lif: neuron index %d out of range for population of %d", ni, st.N())
	}
	vidx, err := NeuronVarIdxByName(varNm)
	if err != nil {
		return 0, err
	}
	switch vidx {
	case 0:
		return st.U[ni], nil
	case 1:
		return st.V[ni], nil
	case 2:
		return st.Du[ni], nil
	case 3:
		return st.Dv[ni], nil
	case 4:
		return st.Bias[ni], nil
	case 5:
		return st.BiasExp[ni], nil
	case 6, 8:
		return st.Vth[ni], nil
	case 7:
		return fm.EffBias(ni), nil
	}
	return 0, nil
}
