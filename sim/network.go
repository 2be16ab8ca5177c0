// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sim

import (
	"fmt"
	"log"
	"sort"
	"strings"
	"sync"
	"unsafe"

	"github.com/c2h5oh/datasize"
	"github.com/emer/emergent/timer"
	"github.com/emer/lif/lif"
	"github.com/goki/ki/ints"
)

// PopFunChan is a channel that runs Pop functions
type PopFunChan chan func(p *Pop)

// sim.Network is a set of independent LIF populations stepped in lock-step
type Network struct {
	Nm     string          `desc:"overall name of network -- helps discriminate if there are multiple"`
	Pops   []*Pop          `desc:"list of populations"`
	PopMap map[string]*Pop `view:"-" desc:"map of name to populations -- names must be unique"`

	NThreads int                    `inactive:"+" desc:"number of parallel threads (go routines) to use -- this is computed directly from the Pops which you must explicitly allocate to different threads -- updated during Build of network"`
	ThrPops  [][]*Pop               `view:"-" inactive:"+" desc:"pops per thread -- outer group is threads and inner is pops operated on by that thread"`
	ThrChans []PopFunChan           `view:"-" desc:"pop function channels, per thread"`
	ThrTimes []timer.Time           `view:"-" desc:"timers for each thread, so you can see how evenly the workload is being distributed"`
	FunTimes map[string]*timer.Time `view:"-" desc:"timers for each major function (step of processing)"`
	WaitGp   sync.WaitGroup         `view:"-" desc:"network-level wait group for synchronizing threaded pop calls"`

	running bool
}

// NewNetwork returns a new empty network with given name
func NewNetwork(name string) *Network {
	return &Network{Nm: name}
}

func (nt *Network) Name() string { return nt.Nm }
func (nt *Network) NPops() int   { return len(nt.Pops) }

// AddPop adds a new population of n neurons with given parameters, which are
// copied.  pars may be nil for defaults.  Names must be unique.
func (nt *Network) AddPop(name string, n int, pars *lif.PopParams) (*Pop, error) {
	if nt.PopByName(name) != nil {
		return nil, fmt.Errorf("sim.Network %v: pop named %v already exists", nt.Nm, name)
	}
	p := &Pop{Name: name, NNeurs: n}
	p.Defaults()
	if pars != nil {
		p.Pars = *pars
	}
	nt.Pops = append(nt.Pops, p)
	nt.PopMap[name] = p
	return p, nil
}

// PopByName returns a pop by looking it up by name (nil if not found)
func (nt *Network) PopByName(name string) *Pop {
	if nt.PopMap == nil || len(nt.PopMap) != len(nt.Pops) {
		nt.MakePopMap()
	}
	return nt.PopMap[name]
}

// PopByNameTry returns a pop by looking it up by name -- emits a log error message
// if pop is not found
func (nt *Network) PopByNameTry(name string) (*Pop, error) {
	p := nt.PopByName(name)
	if p == nil {
		err := fmt.Errorf("Pop named: %v not found in Network: %v\n", name, nt.Nm)
		log.Println(err)
		return nil, err
	}
	return p, nil
}

// MakePopMap updates pop map based on current pops
func (nt *Network) MakePopMap() {
	nt.PopMap = make(map[string]*Pop, len(nt.Pops))
	for _, p := range nt.Pops {
		nt.PopMap[p.Name] = p
	}
}

// Build constructs the models of all pops that are not Off, and starts the
// worker threads.  Any existing threads are stopped first.  The first
// configuration error is returned and no threads are started.
func (nt *Network) Build() error {
	nt.StopThreads()
	for _, p := range nt.Pops {
		if p.Off {
			continue
		}
		if err := p.Build(); err != nil {
			return err
		}
	}
	nt.BuildThreads()
	nt.StartThreads()
	return nil
}

// BuildThreads constructs the pop thread allocation based on Thr setting in the pops
func (nt *Network) BuildThreads() {
	nthr := 0
	for _, p := range nt.Pops {
		if p.Off {
			continue
		}
		nthr = ints.MaxInt(nthr, p.Thr)
	}
	nt.NThreads = nthr + 1
	nt.ThrPops = make([][]*Pop, nt.NThreads)
	nt.ThrChans = make([]PopFunChan, nt.NThreads)
	nt.ThrTimes = make([]timer.Time, nt.NThreads)
	nt.FunTimes = make(map[string]*timer.Time)
	for _, p := range nt.Pops {
		if p.Off {
			continue
		}
		nt.ThrPops[p.Thr] = append(nt.ThrPops[p.Thr], p)
	}
	for th := 0; th < nt.NThreads; th++ {
		if len(nt.ThrPops[th]) == 0 {
			log.Printf("Network BuildThreads: Network %v has no pops for thread: %v\n", nt.Nm, th)
		}
		nt.ThrChans[th] = make(PopFunChan)
	}
}

// ThreadAlloc allocates pops to given number of threads, largest first onto
// the least loaded thread, with cost proportional to neuron count.
// Must be called before Build.  Returns a report of the allocation.
func (nt *Network) ThreadAlloc(nThread int) string {
	nThread = ints.MaxInt(nThread, 1)
	ord := make([]int, 0, len(nt.Pops))
	for pi, p := range nt.Pops {
		if !p.Off {
			ord = append(ord, pi)
		}
	}
	nThread = ints.MinInt(nThread, ints.MaxInt(len(ord), 1))
	sort.SliceStable(ord, func(i, j int) bool {
		return nt.Pops[ord[i]].NNeurs > nt.Pops[ord[j]].NNeurs
	})
	cost := make([]int, nThread)
	for _, pi := range ord {
		th := 0
		for t := 1; t < nThread; t++ {
			if cost[t] < cost[th] {
				th = t
			}
		}
		nt.Pops[pi].Thr = th
		cost[th] += nt.Pops[pi].NNeurs
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Number of threads: %d\n", nThread)
	for th := 0; th < nThread; th++ {
		fmt.Fprintf(&b, "\tThr: %d\tNeurons: %d\n", th, cost[th])
	}
	return b.String()
}

// Init restores the initial state of all pops
func (nt *Network) Init() {
	for _, p := range nt.Pops {
		if p.Off {
			continue
		}
		p.Init()
	}
}

// Cycle steps every pop exactly once at the current cycle of tm, then
// increments tm.  All pops are stepped even if one fails; the error of the
// first failing pop, in network order, is returned.
func (nt *Network) Cycle(tm *Time) error {
	cyc := tm.Cycle
	nt.ThrPopFun(func(p *Pop) { p.Cycle(cyc) }, "Cycle")
	tm.CycleInc()
	for _, p := range nt.Pops {
		if p.Off {
			continue
		}
		if p.Err != nil {
			return p.Err
		}
	}
	return nil
}

// NSpikes returns the number of spikes on the last cycle, summed over pops
func (nt *Network) NSpikes() int {
	ns := 0
	for _, p := range nt.Pops {
		if p.Off {
			continue
		}
		ns += p.Stats.NSpikes
	}
	return ns
}

//////////////////////////////////////////////////////////////////////////////////////
//  Threading infrastructure

// StartThreads starts up the computation threads, which monitor the channels for work
func (nt *Network) StartThreads() {
	for th := 0; th < nt.NThreads; th++ {
		go nt.ThrWorker(th) // start the worker thread for this channel
	}
	nt.running = true
}

// StopThreads stops the computation threads.  It is safe to call when no
// threads are running.
func (nt *Network) StopThreads() {
	if !nt.running {
		return
	}
	for th := 0; th < nt.NThreads; th++ {
		close(nt.ThrChans[th])
	}
	nt.running = false
}

// ThrWorker is the worker function run by the worker threads
func (nt *Network) ThrWorker(tt int) {
	for fun := range nt.ThrChans[tt] {
		thp := nt.ThrPops[tt]
		nt.ThrTimes[tt].Start()
		for _, p := range thp {
			fun(p)
		}
		nt.ThrTimes[tt].Stop()
		nt.WaitGp.Done()
	}
}

// ThrPopFun calls function on each pop, using threaded (go routine worker) computation if NThreads > 1
// and otherwise just iterates over pops in the current thread.
func (nt *Network) ThrPopFun(fun func(p *Pop), funame string) {
	nt.FunTimerStart(funame)
	if nt.NThreads <= 1 {
		for _, p := range nt.Pops {
			if p.Off {
				continue
			}
			fun(p)
		}
	} else {
		for th := 0; th < nt.NThreads; th++ {
			nt.WaitGp.Add(1)
			nt.ThrChans[th] <- fun
		}
		nt.WaitGp.Wait()
	}
	nt.FunTimerStop(funame)
}

// TimerReport returns a report of the amount of time spent in each function, and in each thread
func (nt *Network) TimerReport() string {
	var b strings.Builder
	fmt.Fprintf(&b, "TimerReport: %v, NThreads: %v\n", nt.Nm, nt.NThreads)
	fmt.Fprintf(&b, "\tFunction Name\tTotal Secs\tPct\n")
	fnms := make([]string, 0, len(nt.FunTimes))
	for k := range nt.FunTimes {
		fnms = append(fnms, k)
	}
	sort.Strings(fnms)
	pcts := make([]float64, len(fnms))
	tot := 0.0
	for i, fn := range fnms {
		pcts[i] = nt.FunTimes[fn].TotalSecs()
		tot += pcts[i]
	}
	for i, fn := range fnms {
		fmt.Fprintf(&b, "\t%v \t%6.4g\t%6.4g\n", fn, pcts[i], 100*(pcts[i]/tot))
	}
	fmt.Fprintf(&b, "\tTotal   \t%6.4g\n", tot)

	if nt.NThreads <= 1 {
		return b.String()
	}
	fmt.Fprintf(&b, "\n\tThr\tTotal Secs\tPct\n")
	pcts = make([]float64, nt.NThreads)
	tot = 0.0
	for th := 0; th < nt.NThreads; th++ {
		pcts[th] = nt.ThrTimes[th].TotalSecs()
		tot += pcts[th]
	}
	for th := 0; th < nt.NThreads; th++ {
		fmt.Fprintf(&b, "\t%v \t%6.4g\t%6.4g\n", th, pcts[th], 100*(pcts[th]/tot))
	}
	return b.String()
}

// ThrTimerReset resets the per-thread and per-function timers
func (nt *Network) ThrTimerReset() {
	for th := 0; th < nt.NThreads; th++ {
		nt.ThrTimes[th].Reset()
	}
	for _, ft := range nt.FunTimes {
		ft.Reset()
	}
}

// FunTimerStart starts function timer for given function name -- ensures creation of timer
func (nt *Network) FunTimerStart(fun string) {
	if nt.FunTimes == nil {
		nt.FunTimes = make(map[string]*timer.Time)
	}
	ft, ok := nt.FunTimes[fun]
	if !ok {
		ft = &timer.Time{}
		nt.FunTimes[fun] = ft
	}
	ft.Start()
}

// FunTimerStop stops function timer -- timer must already exist
func (nt *Network) FunTimerStop(fun string) {
	ft := nt.FunTimes[fun]
	ft.Stop()
}

// StateMem returns the memory used by the state record of m, in bytes
func StateMem(m lif.Model) int {
	switch mt := m.(type) {
	case *lif.FloatModel:
		st := mt.State
		return (len(st.U) + len(st.V) + len(st.Du) + len(st.Dv) + len(st.Bias) + len(st.BiasExp) + len(st.Vth) + len(st.U0) + len(st.V0)) * int(unsafe.Sizeof(float32(0)))
	case *lif.FixedModel:
		st := mt.State
		i32 := len(st.U) + len(st.V) + len(st.Vth) + len(st.U0) + len(st.V0) + len(st.EffBias) + len(st.EffVth)
		i16 := len(st.Du) + len(st.Dv) + len(st.BiasMant)
		return i32*int(unsafe.Sizeof(int32(0))) + i16*int(unsafe.Sizeof(int16(0))) + len(st.BiasExp)
	}
	return 0
}

// SizeReport returns a string reporting the size of each pop in the
// network, and total memory footprint.
func (nt *Network) SizeReport() string {
	var b strings.Builder
	neur := 0
	neurMem := 0
	for _, p := range nt.Pops {
		if p.Off || p.Model == nil {
			continue
		}
		nn := p.Model.N()
		nmem := StateMem(p.Model)
		neur += nn
		neurMem += nmem
		fmt.Fprintf(&b, "%14s:\t Neurons: %d\t Variant: %v\t NeurMem: %v\n", p.Name, nn, p.Model.Variant(), (datasize.ByteSize)(nmem).HumanReadable())
	}
	fmt.Fprintf(&b, "\n\n%14s:\t Neurons: %d\t NeurMem: %v\n", nt.Nm, neur, (datasize.ByteSize)(neurMem).HumanReadable())
	return b.String()
}
