// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lif

import (
	"testing"

	"github.com/emer/etable/etable"
)

func TestPopStats(t *testing.T) {
	fm := newFixed(t, 4, 0, 0, 10, 0, 1)
	ain := make([]int16, 4)
	spk := make([]bool, 4)
	st := PopStats{}
	st.Init()
	for cyc := 0; cyc < 7; cyc++ {
		if err := fm.StepFixed(ain, spk); err != nil {
			t.Fatal(err)
		}
		st.Update(fm, spk)
	}
	if st.NSpikes != 4 || st.TotSpikes != 4 || st.SpikeFrac != 1 {
		t.Errorf("nspikes: %v tot: %v frac: %v, want 4 4 1", st.NSpikes, st.TotSpikes, st.SpikeFrac)
	}
	if st.V.Max != 0 || st.V.Avg != 0 {
		t.Errorf("v avg: %v max: %v, want 0 after reset", st.V.Avg, st.V.Max)
	}
	st.Update(fm, spk)
	if st.NSpikes != 0 || st.TotSpikes != 4 {
		t.Errorf("step 8 nspikes: %v tot: %v, want 0 4", st.NSpikes, st.TotSpikes)
	}
	if st.V.Max != 10 || st.V.Avg != 10 {
		t.Errorf("step 8 v avg: %v max: %v, want 10 10", st.V.Avg, st.V.Max)
	}
	st.Init()
	if st.TotSpikes != 0 {
		t.Errorf("Init kept tot spikes: %v", st.TotSpikes)
	}
}

func TestTraceTable(t *testing.T) {
	fm := newFixed(t, 3, 0, 0, 10, 0, 1)
	ain := make([]int16, 3)
	spk := make([]bool, 3)
	nrns := []int{0, 2, 5}
	dt := &etable.Table{}
	ConfigTraceTable(dt, "Trace", nrns)
	if dt.ColByName(TraceColName("V", 2)) == nil || dt.ColByName(TraceColName("Spike", 5)) == nil {
		t.Fatalf("trace columns missing")
	}
	st := PopStats{}
	st.Init()
	for cyc := 0; cyc < 7; cyc++ {
		if err := fm.StepFixed(ain, spk); err != nil {
			t.Fatal(err)
		}
		st.Update(fm, spk)
		if row := LogTrace(dt, cyc, fm, spk, &st, nrns); row != cyc {
			t.Errorf("row: %v, want %v", row, cyc)
		}
	}
	if dt.Rows != 7 {
		t.Fatalf("rows: %v, want 7", dt.Rows)
	}
	for row := 0; row < 6; row++ {
		if v := dt.CellFloat(TraceColName("V", 2), row); v != float64(10*(row+1)) {
			t.Errorf("row: %v V[2]: %v, want %v", row, v, 10*(row+1))
		}
		if s := dt.CellFloat(TraceColName("Spike", 0), row); s != 0 {
			t.Errorf("row: %v Spike[0]: %v, want 0", row, s)
		}
	}
	if s := dt.CellFloat(TraceColName("Spike", 0), 6); s != 1 {
		t.Errorf("Spike[0] on step 7: %v, want 1", s)
	}
	if n := dt.CellFloat("NSpikes", 6); n != 3 {
		t.Errorf("NSpikes on step 7: %v, want 3", n)
	}
	if c := dt.CellFloat("Cycle", 3); c != 3 {
		t.Errorf("Cycle: %v, want 3", c)
	}
	if v := dt.CellFloat(TraceColName("V", 5), 3); v != 0 {
		t.Errorf("out of range neuron logged: %v", v)
	}
}
