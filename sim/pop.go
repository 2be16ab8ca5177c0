// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sim

import (
	"fmt"

	"github.com/emer/etable/etable"
	"github.com/emer/lif/lif"
)

// Pop is one population of LIF neurons with its own input drive.
// Populations share no mutable state, so separate pops can be stepped
// concurrently.
type Pop struct {
	Name   string        `desc:"name of population -- must be unique within a network"`
	NNeurs int           `desc:"number of neurons"`
	Off    bool          `desc:"inactivate this population -- it is skipped by Cycle and Init"`
	Thr    int           `desc:"thread (go routine) this population is stepped on"`
	Pars   lif.PopParams `view:"inline" desc:"neuron parameters, broadcast to every neuron at Build"`
	Drive  DriveParams   `view:"inline" desc:"input current drive"`
	Model  lif.Model     `view:"-" desc:"the model, constructed by Build"`
	Input  []float32     `view:"-" desc:"input current of the last step"`
	Spikes []bool        `view:"-" desc:"spikes of the last step"`
	Stats  lif.PopStats  `inactive:"+" desc:"summary stats of the last step"`
	Trace  *etable.Table `view:"-" desc:"if non-nil, one row is logged per step for the TrNrns neurons"`
	TrNrns []int         `view:"-" desc:"neurons recorded in Trace"`
	Err    error         `view:"-" desc:"error from the last step, if any"`
}

// Defaults sets default parameters
func (p *Pop) Defaults() {
	p.Pars.Defaults()
	p.Drive.Defaults()
}

// Build constructs the model from the current parameters
func (p *Pop) Build() error {
	p.Pars.Update()
	p.Drive.Update()
	m, err := lif.NewModel(p.NNeurs, &p.Pars)
	if err != nil {
		return fmt.Errorf("pop %s: %w", p.Name, err)
	}
	p.Model = m
	p.Input = make([]float32, p.NNeurs)
	p.Spikes = make([]bool, p.NNeurs)
	p.Stats.Init()
	p.Err = nil
	return nil
}

// SetTrace records neurons nrns of this population into a new trace table
func (p *Pop) SetTrace(nrns []int) *etable.Table {
	p.TrNrns = nrns
	p.Trace = &etable.Table{}
	lif.ConfigTraceTable(p.Trace, p.Name+"Trace", nrns)
	return p.Trace
}

// Init restores the initial neuron state and resets stats and trace
func (p *Pop) Init() {
	if p.Model == nil {
		return
	}
	p.Model.Init()
	for i := range p.Spikes {
		p.Spikes[i] = false
	}
	p.Stats.Init()
	p.Err = nil
	if p.Trace != nil {
		p.Trace.SetNumRows(0)
	}
}

// Cycle steps the population once, for cycle cyc of the run.
// The error is also retained in Err.
func (p *Pop) Cycle(cyc int) error {
	p.Drive.Gen(cyc, p.Input)
	if err := p.Model.Step(p.Input, p.Spikes); err != nil {
		p.Err = fmt.Errorf("pop %s cycle %d: %w", p.Name, cyc, err)
		return p.Err
	}
	p.Stats.Update(p.Model, p.Spikes)
	if p.Trace != nil {
		lif.LogTrace(p.Trace, cyc, p.Model, p.Spikes, &p.Stats, p.TrNrns)
	}
	p.Err = nil
	return nil
}
