// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lif

import "fmt"

// Model is the per-timestep update contract shared by the floating-point and
// fixed-point LIF variants.  A Model owns the state record of one population
// and is not safe for concurrent Step calls: the caller serializes timesteps.
// Distinct Models share no mutable state.
type Model interface {
	// Variant returns which implementation this is
	Variant() Variant

	// N returns the number of neurons in the population
	N() int

	// Step runs one timestep: integrates the input vector ain into the
	// current and voltage and writes the spike output into sOut.
	// Both must have length N.  On error nothing has been mutated.
	Step(ain []float32, sOut []bool) error

	// Init restores the current and voltage to their initial values
	Init()

	// UnitVal returns the value of the named neuron variable (see NeuronVars)
	// for neuron index ni
	UnitVal(varNm string, ni int) (float32, error)
}

// NeuronVars are the per-neuron variable names accessible via UnitVal
var NeuronVars = []string{"U", "V", "Du", "Dv", "Bias", "BiasExp", "Vth", "EffBias", "EffVth"}

// NeuronVarsMap maps NeuronVars names to their index
var NeuronVarsMap map[string]int

func init() {
	NeuronVarsMap = make(map[string]int, len(NeuronVars))
	for i, v := range NeuronVars {
		NeuronVarsMap[v] = i
	}
}

// NeuronVarIdxByName returns the index of the variable, or error
func NeuronVarIdxByName(varNm string) (int, error) {
	i, ok := NeuronVarsMap[varNm]
	if !ok {
		return -1, fmt.Errorf("Neuron VarByName: variable name: %v not valid", varNm)
	}
	return i, nil
}

// NewModel returns a new Model of N neurons for the variant selected in pars,
// with the uniform parameters of pars broadcast to every neuron.
func NewModel(n int, pars *PopParams) (Model, error) {
	if n < 0 {
		return nil, msgErr("N", -1, fmt.Sprintf("negative population size %d", n))
	}
	switch pars.Variant {
	case FloatPoint:
		st := NewFloatState(n)
		pars.Float.SetState(st)
		return NewFloatModel(st)
	case FixedPoint:
		st := NewFixedState(n)
		if err := pars.Fixed.SetState(st); err != nil {
			return nil, err
		}
		return NewFixedModel(st, &pars.HW)
	}
	return nil, msgErr("Variant", -1, fmt.Sprintf("unknown variant %v", pars.Variant))
}

// checkIO validates the per-step input and output vector lengths
func checkIO(n, nain, nout int) error {
	if nain != n {
		return lenErr("a_in", nain, n)
	}
	if nout != n {
		return lenErr("s_out", nout, n)
	}
	return nil
}
