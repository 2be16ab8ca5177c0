// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sim

// sim.Time contains the timing state of a run of LIF populations
type Time struct {
	Time       float32 `desc:"accumulated amount of time the network has been running, in simulation-time (not real world time), in seconds"`
	Cycle      int     `desc:"cycle counter: number of steps taken in the current run -- drive on / off windows are relative to this"`
	CycleTot   int     `desc:"total cycle count, incremented continuously from whenever it was last reset"`
	TimePerCyc float32 `def:"0.001" desc:"amount of time to increment per cycle"`
}

// NewTime returns a new Time struct with default parameters
func NewTime() *Time {
	tm := &Time{}
	tm.Defaults()
	return tm
}

// Defaults sets default values
func (tm *Time) Defaults() {
	tm.TimePerCyc = 0.001
}

// Reset resets the counters all back to zero
func (tm *Time) Reset() {
	tm.Time = 0
	tm.Cycle = 0
	tm.CycleTot = 0
	if tm.TimePerCyc == 0 {
		tm.Defaults()
	}
}

// NewRun starts a new run, resetting the cycle counter but not CycleTot
func (tm *Time) NewRun() {
	tm.Cycle = 0
}

// CycleInc increments at the cycle level
func (tm *Time) CycleInc() {
	tm.Cycle++
	tm.CycleTot++
	tm.Time += tm.TimePerCyc
}
