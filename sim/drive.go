// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sim

import "github.com/emer/emergent/erand"

// DriveParams generate the input current of a population: a constant
// amplitude, plus optional noise, switched on for a window of cycles.
// Parameter sheets address fields as "DriveParams.Amp" etc.
type DriveParams struct {
	OnCycle  int             `def:"10" min:"0" desc:"cycle when input current turns on"`
	OffCycle int             `def:"160" min:"0" desc:"cycle when input current turns off -- negative means never"`
	Amp      float32         `def:"1" desc:"input current while on -- in register units for fixed-point populations"`
	Noise    erand.RndParams `view:"inline" desc:"noise added to each neuron's input while on, drawn independently per neuron per cycle"`
	Scale    []float32       `view:"-" desc:"optional per-neuron multiplier on Amp -- nil means uniform drive"`
}

func (dp *DriveParams) Defaults() {
	dp.OnCycle = 10
	dp.OffCycle = 160
	dp.Amp = 1
	dp.Noise.Dist = erand.Mean
	dp.Noise.Mean = 0
	dp.Noise.Var = 0
}

func (dp *DriveParams) Update() {
}

// IsOn returns true if the input is on at cycle cyc
func (dp *DriveParams) IsOn(cyc int) bool {
	if cyc < dp.OnCycle {
		return false
	}
	return dp.OffCycle < 0 || cyc < dp.OffCycle
}

// Gen fills ain with the input for cycle cyc
func (dp *DriveParams) Gen(cyc int, ain []float32) {
	if !dp.IsOn(cyc) {
		for i := range ain {
			ain[i] = 0
		}
		return
	}
	noise := dp.Noise.Dist != erand.Mean || dp.Noise.Mean != 0
	for i := range ain {
		a := dp.Amp
		if i < len(dp.Scale) {
			a *= dp.Scale[i]
		}
		if noise {
			a += float32(dp.Noise.Gen(-1))
		}
		ain[i] = a
	}
}
