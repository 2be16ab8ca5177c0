// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lif

///////////////////////////////////////////////////////////////////////
//  params.go contains the population-level parameters, uniform across
//  neurons, that are broadcast into a state record by NewModel

// PopParams are the parameters of one population of LIF neurons.
// Parameter sheets address fields as "PopParams.Fixed.Du" etc.
type PopParams struct {
	Variant Variant     `desc:"which implementation of the update runs -- chosen once at construction"`
	Float   FloatParams `view:"inline" viewif:"Variant=FloatPoint" desc:"floating-point model parameters"`
	Fixed   FixedParams `view:"inline" viewif:"Variant=FixedPoint" desc:"fixed-point model parameters, in hardware register units"`
	HW      HWParams    `view:"inline" viewif:"Variant=FixedPoint" desc:"hardware register widths and shifts"`
}

func (pp *PopParams) Defaults() {
	pp.Variant = FloatPoint
	pp.Float.Defaults()
	pp.Fixed.Defaults()
	pp.HW.Defaults()
	pp.Update()
}

// Update must be called after any changes to parameters
func (pp *PopParams) Update() {
	pp.Float.Update()
	pp.Fixed.Update()
	pp.HW.Update()
}

// FloatParams are uniform parameters of the floating-point model
type FloatParams struct {
	Du      float32 `def:"0.1" min:"0" max:"1" desc:"current decay rate per step"`
	Dv      float32 `def:"0.1" min:"0" max:"1" desc:"voltage decay rate per step"`
	Bias    float32 `def:"0" desc:"bias mantissa"`
	BiasExp float32 `def:"0" desc:"bias exponent -- effective bias is Bias * 2^BiasExp"`
	Vth     float32 `def:"10" desc:"spiking threshold"`
	InitU   float32 `def:"0" desc:"initial current"`
	InitV   float32 `def:"0" desc:"initial voltage"`
}

func (fp *FloatParams) Defaults() {
	fp.Du = 0.1
	fp.Dv = 0.1
	fp.Bias = 0
	fp.BiasExp = 0
	fp.Vth = 10
	fp.InitU = 0
	fp.InitV = 0
}

func (fp *FloatParams) Update() {
}

// SetState copies the parameters into every neuron of st
func (fp *FloatParams) SetState(st *FloatState) {
	for i := range st.U {
		st.U[i] = fp.InitU
		st.V[i] = fp.InitV
		st.Du[i] = fp.Du
		st.Dv[i] = fp.Dv
		st.Bias[i] = fp.Bias
		st.BiasExp[i] = fp.BiasExp
		st.Vth[i] = fp.Vth
	}
}

// FixedParams are uniform parameters of the fixed-point model, in register
// units.  Values are held as int so a sheet can set them, and are range
// checked when broadcast so nothing is silently truncated.
type FixedParams struct {
	Du       int `def:"409" min:"0" max:"4095" desc:"current decay, fraction of 4096 (the effective decay adds the 1-bit ds offset)"`
	Dv       int `def:"409" min:"0" max:"4095" desc:"voltage decay, fraction of 4096"`
	BiasMant int `def:"0" min:"-4096" max:"4095" desc:"bias mantissa, signed 13-bit"`
	BiasExp  int `def:"0" min:"0" max:"7" desc:"bias exponent, unsigned 3-bit"`
	Vth      int `def:"10" min:"0" max:"131071" desc:"threshold mantissa, unsigned 17-bit -- effective threshold is Vth << 6"`
	InitU    int `def:"0" desc:"initial current"`
	InitV    int `def:"0" desc:"initial voltage"`
}

func (fp *FixedParams) Defaults() {
	fp.Du = 409
	fp.Dv = 409
	fp.BiasMant = 0
	fp.BiasExp = 0
	fp.Vth = 10
	fp.InitU = 0
	fp.InitV = 0
}

func (fp *FixedParams) Update() {
}

// Validate checks that every parameter fits its register before it is
// narrowed into a FixedState
func (fp *FixedParams) Validate() error {
	vals := []struct {
		nm   string
		v    int
		min  int64
		max  int64
		okay bool
	}{
		{"Fixed.Du", fp.Du, 0, 1<<DecayBits - 1, InUnsignedRange(int64(fp.Du), DecayBits)},
		{"Fixed.Dv", fp.Dv, 0, 1<<DecayBits - 1, InUnsignedRange(int64(fp.Dv), DecayBits)},
		{"Fixed.BiasMant", fp.BiasMant, -(1 << (BiasBits - 1)), 1<<(BiasBits-1) - 1, InSignedRange(int64(fp.BiasMant), BiasBits)},
		{"Fixed.BiasExp", fp.BiasExp, 0, 1<<BiasExpBits - 1, InUnsignedRange(int64(fp.BiasExp), BiasExpBits)},
		{"Fixed.Vth", fp.Vth, 0, 1<<VthBits - 1, InUnsignedRange(int64(fp.Vth), VthBits)},
		{"Fixed.InitU", fp.InitU, -(1 << 31), 1<<31 - 1, InSignedRange(int64(fp.InitU), 32)},
		{"Fixed.InitV", fp.InitV, -(1 << 31), 1<<31 - 1, InSignedRange(int64(fp.InitV), 32)},
	}
	for _, v := range vals {
		if !v.okay {
			return rangeErr(v.nm, -1, int64(v.v), v.min, v.max)
		}
	}
	return nil
}

// SetState copies the parameters into every neuron of st.  The initial
// current and voltage are further checked against the u / v width when the
// model is constructed.
func (fp *FixedParams) SetState(st *FixedState) error {
	if err := fp.Validate(); err != nil {
		return err
	}
	for i := range st.U {
		st.U[i] = int32(fp.InitU)
		st.V[i] = int32(fp.InitV)
		st.Du[i] = uint16(fp.Du)
		st.Dv[i] = uint16(fp.Dv)
		st.BiasMant[i] = int16(fp.BiasMant)
		st.BiasExp[i] = uint8(fp.BiasExp)
		st.Vth[i] = int32(fp.Vth)
	}
	return nil
}
