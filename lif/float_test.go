// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lif

import (
	"errors"
	"testing"

	"github.com/chewxy/math32"
)

// difTol is the numerical difference tolerance for comparing vs. target values
const difTol = float32(1.0e-6)

func newFloat(t *testing.T, n int, du, dv, bias, bexp, vth float32) *FloatModel {
	t.Helper()
	st := NewFloatState(n)
	fp := FloatParams{Du: du, Dv: dv, Bias: bias, BiasExp: bexp, Vth: vth}
	fp.SetState(st)
	fm, err := NewFloatModel(st)
	if err != nil {
		t.Fatal(err)
	}
	return fm
}

func TestFloatZeroInput(t *testing.T) {
	fm := newFloat(t, 3, 0, 0, 0, 0, 1)
	ain := make([]float32, 3)
	spk := make([]bool, 3)
	for cyc := 0; cyc < 100; cyc++ {
		if err := fm.Step(ain, spk); err != nil {
			t.Fatal(err)
		}
		for ni := range spk {
			if spk[ni] || fm.State.V[ni] != 0 {
				t.Errorf("cyc: %v nrn: %v spike: %v v: %v, want no spike and 0", cyc, ni, spk[ni], fm.State.V[ni])
			}
		}
	}
}

func TestFloatThreshold(t *testing.T) {
	fm := newFloat(t, 1, 0, 0, 0, 0, 1)
	ain := []float32{0.5}
	spk := []bool{false}

	// v reaches 1.5 on step 2 (u accumulates to 1, added to v = 0.5), then
	// spikes and resets every step after as u keeps growing
	corsp := []bool{false, true, true, true}
	coru := []float32{0.5, 1, 1.5, 2}
	corv := []float32{0.5, 0, 0, 0}
	for cyc := range corsp {
		if err := fm.Step(ain, spk); err != nil {
			t.Fatal(err)
		}
		if spk[0] != corsp[cyc] {
			t.Errorf("cyc: %v spike: %v, want %v", cyc, spk[0], corsp[cyc])
		}
		if dif := math32.Abs(fm.State.V[0] - corv[cyc]); dif > difTol {
			t.Errorf("cyc: %v v: %v, want %v", cyc, fm.State.V[0], corv[cyc])
		}
		if dif := math32.Abs(fm.State.U[0] - coru[cyc]); dif > difTol {
			t.Errorf("cyc: %v u: %v, want %v", cyc, fm.State.U[0], coru[cyc])
		}
	}
}

func TestFloatDecay(t *testing.T) {
	fm := newFloat(t, 1, 0.5, 0.25, 1, 2, 1000)
	ain := []float32{2}
	spk := []bool{false}
	// u: 2, 3, 3.5 ; v: v*0.75 + u + 4
	coru := []float32{2, 3, 3.5}
	corv := []float32{6, 11.5, 16.125}
	for cyc := range coru {
		if err := fm.Step(ain, spk); err != nil {
			t.Fatal(err)
		}
		difu := math32.Abs(fm.State.U[0] - coru[cyc])
		difv := math32.Abs(fm.State.V[0] - corv[cyc])
		if difu > difTol || difv > difTol {
			t.Errorf("cyc: %v u: %v v: %v, want u: %v v: %v", cyc, fm.State.U[0], fm.State.V[0], coru[cyc], corv[cyc])
		}
	}
	if eb := fm.EffBias(0); eb != 4 {
		t.Errorf("eff bias: %v, want 4", eb)
	}
}

func TestFloatBiasLive(t *testing.T) {
	fm := newFloat(t, 1, 0, 0, 1, 0, 1000)
	spk := []bool{false}
	fm.Step([]float32{0}, spk)
	fm.State.Bias[0] = 3
	fm.Step([]float32{0}, spk)
	if dif := math32.Abs(fm.State.V[0] - 4); dif > difTol {
		t.Errorf("v: %v, want 4 -- float bias is recomputed every step", fm.State.V[0])
	}
}

func TestFloatConfigErrors(t *testing.T) {
	st := NewFloatState(2)
	st.Du[1] = 1.5
	if _, err := NewFloatModel(st); !errors.Is(err, ErrConfig) {
		t.Errorf("du 1.5: err %v, want ErrConfig", err)
	}
	st = NewFloatState(2)
	st.Dv[0] = -0.1
	if _, err := NewFloatModel(st); !errors.Is(err, ErrConfig) {
		t.Errorf("dv -0.1: err %v, want ErrConfig", err)
	}
	st = NewFloatState(2)
	st.Vth = st.Vth[:1]
	if _, err := NewFloatModel(st); !errors.Is(err, ErrConfig) {
		t.Errorf("short vth: err %v, want ErrConfig", err)
	}
	fm := newFloat(t, 2, 0, 0, 0, 0, 1)
	if err := fm.Step([]float32{1}, make([]bool, 2)); !errors.Is(err, ErrConfig) {
		t.Errorf("short input: err %v, want ErrConfig", err)
	}
	if fm.State.U[0] != 0 {
		t.Errorf("failed step mutated u: %v", fm.State.U[0])
	}
}

func TestFloatUnitVal(t *testing.T) {
	fm := newFloat(t, 2, 0.1, 0.2, 3, 1, 5)
	for _, vnm := range NeuronVars {
		if _, err := fm.UnitVal(vnm, 1); err != nil {
			t.Errorf("UnitVal %v: %v", vnm, err)
		}
	}
	if v, _ := fm.UnitVal("EffBias", 0); v != 6 {
		t.Errorf("EffBias: %v, want 6", v)
	}
	if _, err := fm.UnitVal("Foo", 0); err == nil {
		t.Errorf("no error for bad var name")
	}
	if _, err := fm.UnitVal("V", 2); err == nil {
		t.Errorf("no error for bad index")
	}
}

// TestFloatVsFixed checks that the two variants spike at similar rates when
// the float parameters are the real-valued equivalents of the fixed ones.
func TestFloatVsFixed(t *testing.T) {
	fx := newFixed(t, 1, 409, 409, 0, 0, 1000)
	fl := newFloat(t, 1, 410.0/4096.0, 409.0/4096.0, 0, 0, 1000*64)
	spx := []bool{false}
	spl := []bool{false}
	nx, nl := 0, 0
	for cyc := 0; cyc < 1000; cyc++ {
		fx.StepFixed([]int16{20}, spx)
		fl.Step([]float32{20 * 64}, spl)
		if spx[0] {
			nx++
		}
		if spl[0] {
			nl++
		}
	}
	if nx == 0 || nl == 0 {
		t.Fatalf("no spiking: fixed %v float %v", nx, nl)
	}
	if d := nx - nl; d > nx/10+1 || d < -(nx/10+1) {
		t.Errorf("spike counts diverge: fixed %v float %v", nx, nl)
	}
}
