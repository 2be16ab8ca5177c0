// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lif

import (
	"fmt"
	"math"
	"sync"
)

///////////////////////////////////////////////////////////////////////
//  fixed.go contains the bit-accurate fixed-point LIF model of the
//  hardware neuron core.  Refractory periods and axonal delays are not
//  modeled.

// Register bit widths of the stored per-neuron parameters
const (
	DecayBits   = 12 // du, dv: unsigned
	BiasBits    = 13 // bias mantissa: signed
	BiasExpBits = 3  // bias exponent: unsigned
	VthBits     = 17 // threshold mantissa: unsigned
)

// FixedState is the per-neuron state record of the fixed-point model.
// All slices have the same length N.
//
// EffBias and EffVth are derived once, on the first Step (or an explicit
// Derive call), and are never recomputed for the life of the record: changes
// to BiasMant, BiasExp or Vth after that have no effect.  Derived reports
// whether this has happened.
type FixedState struct {
	U        []int32  `desc:"synaptic current, signed 24-bit"`
	V        []int32  `desc:"membrane voltage, signed 24-bit"`
	Du       []uint16 `desc:"current decay, unsigned 12-bit fraction of 4096"`
	Dv       []uint16 `desc:"voltage decay, unsigned 12-bit fraction of 4096"`
	BiasMant []int16  `desc:"bias mantissa, signed 13-bit"`
	BiasExp  []uint8  `desc:"bias exponent, unsigned 3-bit"`
	Vth      []int32  `desc:"threshold mantissa, unsigned 17-bit -- the exponent is fixed by HWParams.VthShift"`

	U0 []int32 `view:"-" desc:"initial current, restored by Init"`
	V0 []int32 `view:"-" desc:"initial voltage, restored by Init"`

	EffBias []int32 `inactive:"+" desc:"BiasMant << BiasExp, cached on first use"`
	EffVth  []int32 `inactive:"+" desc:"Vth << VthShift, cached on first use"`
	Derived bool    `inactive:"+" desc:"true once EffBias / EffVth have been computed"`

	derive sync.Once
}

// NewFixedState returns a zero state record for n neurons
func NewFixedState(n int) *FixedState {
	return &FixedState{
		U:        make([]int32, n),
		V:        make([]int32, n),
		Du:       make([]uint16, n),
		Dv:       make([]uint16, n),
		BiasMant: make([]int16, n),
		BiasExp:  make([]uint8, n),
		Vth:      make([]int32, n),
	}
}

// N returns the number of neurons
func (st *FixedState) N() int { return len(st.U) }

// Validate checks array lengths and that every stored value is within its
// register bit width, for the given hardware u / v width.
func (st *FixedState) Validate(hw *HWParams) error {
	n := st.N()
	lens := []struct {
		nm string
		n  int
	}{{"V", len(st.V)}, {"Du", len(st.Du)}, {"Dv", len(st.Dv)}, {"BiasMant", len(st.BiasMant)}, {"BiasExp", len(st.BiasExp)}, {"Vth", len(st.Vth)}}
	for _, l := range lens {
		if l.n != n {
			return lenErr(l.nm, l.n, n)
		}
	}
	uvb := uint(hw.UVBitWidth)
	uvLim := SignedRange(uvb) - 1
	for i := 0; i < n; i++ {
		if !InUnsignedRange(int64(st.Du[i]), DecayBits) {
			return rangeErr("Du", i, int64(st.Du[i]), 0, 1<<DecayBits-1)
		}
		if !InUnsignedRange(int64(st.Dv[i]), DecayBits) {
			return rangeErr("Dv", i, int64(st.Dv[i]), 0, 1<<DecayBits-1)
		}
		if !InSignedRange(int64(st.BiasMant[i]), BiasBits) {
			return rangeErr("BiasMant", i, int64(st.BiasMant[i]), -(1 << (BiasBits - 1)), 1<<(BiasBits-1)-1)
		}
		if !InUnsignedRange(int64(st.BiasExp[i]), BiasExpBits) {
			return rangeErr("BiasExp", i, int64(st.BiasExp[i]), 0, 1<<BiasExpBits-1)
		}
		if !InUnsignedRange(int64(st.Vth[i]), VthBits) {
			return rangeErr("Vth", i, int64(st.Vth[i]), 0, 1<<VthBits-1)
		}
		if u := int64(st.U[i]); u != SaturateSigned(u, uvb) {
			return rangeErr("U", i, u, -uvLim, uvLim)
		}
		if v := int64(st.V[i]); v != SaturateSigned(v, uvb) {
			return rangeErr("V", i, v, -uvLim, uvLim)
		}
	}
	return nil
}

// Derive computes the effective bias and threshold from the stored mantissas
// and exponents.  Only the first call has any effect; it is safe to call
// concurrently.
func (st *FixedState) Derive(hw *HWParams) {
	st.derive.Do(func() {
		n := st.N()
		st.EffBias = make([]int32, n)
		st.EffVth = make([]int32, n)
		for i := 0; i < n; i++ {
			st.EffBias[i] = int32(st.BiasMant[i]) << st.BiasExp[i]
			st.EffVth[i] = st.Vth[i] << hw.VthShift
		}
		st.Derived = true
	})
}

// FixedModel is the bit-accurate model of the hardware LIF neuron.
// u wraps around its 24-bit register while v saturates, and decay uses a
// magnitude-preserving right shift.  Both are load-bearing for parity with
// hardware traces.
type FixedModel struct {
	State *FixedState
	HW    HWParams

	ainBuf []int16
}

// NewFixedModel validates the hardware parameters and the state record and
// returns a model running it.  hw may be nil for hardware defaults.
// The current U and V are taken as the initial state.
func NewFixedModel(st *FixedState, hw *HWParams) (*FixedModel, error) {
	fm := &FixedModel{State: st}
	if hw != nil {
		fm.HW = *hw
	} else {
		fm.HW.Defaults()
	}
	if err := fm.HW.Validate(); err != nil {
		return nil, err
	}
	fm.HW.Update()
	if err := st.Validate(&fm.HW); err != nil {
		return nil, err
	}
	st.U0 = append([]int32(nil), st.U...)
	st.V0 = append([]int32(nil), st.V...)
	return fm, nil
}

func (fm *FixedModel) Variant() Variant { return FixedPoint }
func (fm *FixedModel) N() int           { return fm.State.N() }

// Init restores U and V to their initial values.
// The derived bias / threshold cache is kept.
func (fm *FixedModel) Init() {
	copy(fm.State.U, fm.State.U0)
	copy(fm.State.V, fm.State.V0)
}

// EncodeInput converts a real-valued drive into the signed 16-bit input of
// the hardware, rounding half away from zero and saturating.
func EncodeInput(x float32) int16 {
	r := math.Round(float64(x))
	switch {
	case math.IsNaN(r):
		return 0
	case r >= math.MaxInt16:
		return math.MaxInt16
	case r <= math.MinInt16:
		return math.MinInt16
	}
	return int16(r)
}

// Step encodes ain with EncodeInput and runs StepFixed
func (fm *FixedModel) Step(ain []float32, sOut []bool) error {
	if len(ain) != fm.N() {
		return lenErr("a_in", len(ain), fm.N())
	}
	if cap(fm.ainBuf) < len(ain) {
		fm.ainBuf = make([]int16, len(ain))
	}
	buf := fm.ainBuf[:len(ain)]
	for i, x := range ain {
		buf[i] = EncodeInput(x)
	}
	return fm.StepFixed(buf, sOut)
}

// StepFixed runs one timestep of the fixed-point model on the signed 16-bit
// input ain.  The operations are done in hardware order, which matters for
// overflow: current decay, input alignment and accumulation, current wrap,
// voltage decay and accumulation, voltage saturation, spike and reset.
func (fm *FixedModel) StepFixed(ain []int16, sOut []bool) error {
	st := fm.State
	hw := &fm.HW
	n := st.N()
	if err := checkIO(n, len(ain), len(sOut)); err != nil {
		return err
	}
	st.Derive(hw)
	if len(st.EffBias) != n {
		return lenErr("EffBias", len(st.EffBias), n)
	}
	uvb := uint(hw.UVBitWidth)
	for i := 0; i < n; i++ {
		dcu := int32(st.Du[i]) + hw.DsOffset
		curr := int64(Decay(st.U[i], dcu, hw))
		curr += int64(ain[i]) << hw.ActShift
		st.U[i] = int32(WrapSigned(curr, uvb))

		dcv := int32(st.Dv[i]) + hw.DmOffset
		volt := int64(Decay(st.V[i], dcv, hw))
		volt += int64(st.U[i]) + int64(st.EffBias[i])
		st.V[i] = int32(SaturateSigned(volt, uvb))

		spk := st.V[i] >= st.EffVth[i]
		if spk {
			st.V[i] = 0
		}
		sOut[i] = spk
	}
	return nil
}

// UnitVal returns the named variable for neuron ni.  EffBias and EffVth are
// zero until the cache has been derived.
func (fm *FixedModel) UnitVal(varNm string, ni int) (float32, error) {
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
		return float32(st.U[ni]), nil
	case 1:
		return float32(st.V[ni]), nil
	case 2:
		return float32(st.Du[ni]), nil
	case 3:
		return float32(st.Dv[ni]), nil
	case 4:
		return float32(st.BiasMant[ni]), nil
	case 5:
		return float32(st.BiasExp[ni]), nil
	case 6:
		return float32(st.Vth[ni]), nil
	case 7:
		if st.Derived {
			return float32(st.EffBias[ni]), nil
		}
	case 8:
		if st.Derived {
			return float32(st.EffVth[ni]), nil
		}
	}
	return 0, nil
}
