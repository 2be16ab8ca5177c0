// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lif

import "github.com/emer/etable/minmax"

// PopStats contains summary statistics of a population after a step
type PopStats struct {
	NSpikes   int             `desc:"number of neurons that spiked on the last step"`
	SpikeFrac float32         `desc:"NSpikes / N"`
	TotSpikes int             `desc:"spikes accumulated since the last Init"`
	V         minmax.AvgMax32 `desc:"average and max voltage, after reset"`
	U         minmax.AvgMax32 `desc:"average and max current"`
}

// Init resets all stats including the accumulated spike count
func (ps *PopStats) Init() {
	ps.NSpikes = 0
	ps.SpikeFrac = 0
	ps.TotSpikes = 0
	ps.V.Init()
	ps.U.Init()
}

// Update computes the stats from the model state and the spikes of the
// step just run
func (ps *PopStats) Update(m Model, sOut []bool) {
	ps.NSpikes = 0
	ps.V.Init()
	ps.U.Init()
	n := m.N()
	for ni := 0; ni < n; ni++ {
		if sOut[ni] {
			ps.NSpikes++
		}
		v, _ := m.UnitVal("V", ni)
		u, _ := m.UnitVal("U", ni)
		ps.V.UpdateVal(v, int32(ni))
		ps.U.UpdateVal(u, int32(ni))
	}
	ps.V.CalcAvg()
	ps.U.CalcAvg()
	ps.TotSpikes += ps.NSpikes
	if n > 0 {
		ps.SpikeFrac = float32(ps.NSpikes) / float32(n)
	} else {
		ps.SpikeFrac = 0
	}
}
