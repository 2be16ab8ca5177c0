// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lif

import (
	"fmt"

	"github.com/emer/etable/etable"
	"github.com/emer/etable/etensor"
)

// TraceVars are the per-neuron variables recorded in a trace table
var TraceVars = []string{"U", "V"}

// TraceColName returns the column name for variable varNm of neuron ni
func TraceColName(varNm string, ni int) string {
	return fmt.Sprintf("%s[%d]", varNm, ni)
}

// ConfigTraceTable configures dt to record a per-step trace of the
// population: cycle, spike count and voltage summary, plus the current,
// voltage and spike of each neuron in nrns.
func ConfigTraceTable(dt *etable.Table, name string, nrns []int) {
	dt.SetMetaData("name", name)
	dt.SetMetaData("desc", "per-step trace of LIF population "+name)
	dt.SetMetaData("read-only", "true")

	sch := etable.Schema{
		{"Cycle", etensor.INT64, nil, nil},
		{"NSpikes", etensor.INT64, nil, nil},
		{"SpikeFrac", etensor.FLOAT64, nil, nil},
		{"VAvg", etensor.FLOAT64, nil, nil},
		{"VMax", etensor.FLOAT64, nil, nil},
	}
	for _, ni := range nrns {
		for _, vnm := range TraceVars {
			sch = append(sch, etable.Column{TraceColName(vnm, ni), etensor.FLOAT64, nil, nil})
		}
		sch = append(sch, etable.Column{TraceColName("Spike", ni), etensor.FLOAT64, nil, nil})
	}
	dt.SetFromSchema(sch, 0)
}

// LogTrace adds one row to a table configured by ConfigTraceTable, and
// returns the row index.  Neurons outside the population are skipped.
func LogTrace(dt *etable.Table, cyc int, m Model, sOut []bool, st *PopStats, nrns []int) int {
	row := dt.Rows
	dt.SetNumRows(row + 1)

	dt.SetCellFloat("Cycle", row, float64(cyc))
	dt.SetCellFloat("NSpikes", row, float64(st.NSpikes))
	dt.SetCellFloat("SpikeFrac", row, float64(st.SpikeFrac))
	dt.SetCellFloat("VAvg", row, float64(st.V.Avg))
	dt.SetCellFloat("VMax", row, float64(st.V.Max))
	for _, ni := range nrns {
		if ni < 0 || ni >= m.N() {
			continue
		}
		for _, vnm := range TraceVars {
			vl, _ := m.UnitVal(vnm, ni)
			dt.SetCellFloat(TraceColName(vnm, ni), row, float64(vl))
		}
		spk := 0.0
		if sOut[ni] {
			spk = 1
		}
		dt.SetCellFloat(TraceColName("Spike", ni), row, spk)
	}
	return row
}
