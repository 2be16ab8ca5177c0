// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lif

// HWParams are the register bit widths and alignment shifts of the
// neuromorphic core that the fixed-point model reproduces.
// They are fixed at construction of a FixedModel.
type HWParams struct {
	DsOffset   int32 `def:"1" min:"0" max:"1" desc:"1-bit register added to du to get the effective current decay constant -- allows a decay of exactly DecayUnity"`
	DmOffset   int32 `def:"0" min:"0" max:"1" desc:"1-bit register added to dv to get the effective voltage decay constant"`
	DecayShift int32 `def:"12" desc:"decay constants are fractions of 2^DecayShift -- the decayed product is MSB-aligned back by this many bits"`
	UVBitWidth int32 `def:"24" desc:"bit width of the signed u current and v voltage registers"`
	VthShift   int32 `def:"6" desc:"fixed exponent of the threshold -- vth is the mantissa, effective threshold is vth << VthShift"`
	ActShift   int32 `def:"6" desc:"synaptic input is left shifted by this many bits for MSB alignment before being added to the current"`

	DecayUnity int32 `view:"-" json:"-" xml:"-" desc:"2^DecayShift"`
	MaxUVVal   int32 `view:"-" json:"-" xml:"-" desc:"2^(UVBitWidth-1) -- the wrap modulus of u, and one more than the voltage saturation limit"`
}

func (hw *HWParams) Defaults() {
	hw.DsOffset = 1
	hw.DmOffset = 0
	hw.DecayShift = 12
	hw.UVBitWidth = 24
	hw.VthShift = 6
	hw.ActShift = 6
	hw.Update()
}

// Update must be called after any changes to parameters
func (hw *HWParams) Update() {
	hw.DecayUnity = int32(1) << hw.DecayShift
	hw.MaxUVVal = int32(SignedRange(uint(hw.UVBitWidth)))
}

// Validate returns a *ConfigError if any register setting is outside what
// the hardware allows, or would leave no headroom in 64-bit intermediates.
func (hw *HWParams) Validate() error {
	switch {
	case hw.DsOffset < 0 || hw.DsOffset > 1:
		return rangeErr("HW.DsOffset", -1, int64(hw.DsOffset), 0, 1)
	case hw.DmOffset < 0 || hw.DmOffset > 1:
		return rangeErr("HW.DmOffset", -1, int64(hw.DmOffset), 0, 1)
	case hw.DecayShift < 1 || hw.DecayShift > 16:
		return rangeErr("HW.DecayShift", -1, int64(hw.DecayShift), 1, 16)
	case hw.UVBitWidth < 2 || hw.UVBitWidth > 31:
		return rangeErr("HW.UVBitWidth", -1, int64(hw.UVBitWidth), 2, 31)
	case hw.VthShift < 0 || hw.VthShift > 14:
		return rangeErr("HW.VthShift", -1, int64(hw.VthShift), 0, 14)
	case hw.ActShift < 0 || hw.ActShift > 14:
		return rangeErr("HW.ActShift", -1, int64(hw.ActShift), 0, 14)
	}
	return nil
}
