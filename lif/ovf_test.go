// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lif

import (
	"testing"
)

func TestShiftRightMag(t *testing.T) {
	tstx := []int64{0, 1, 4095, 4096, 4097, -1, -4095, -4096, -4097, -409500, 409500}
	cory := []int64{0, 0, 0, 1, 1, 0, 0, -1, -1, -99, 99}
	for i, x := range tstx {
		y := ShiftRightMag(x, 12)
		if y != cory[i] {
			t.Errorf("ShiftRightMag err: idx: %v, x: %v, y: %v, cor y: %v\n", i, x, y, cory[i])
		}
	}
	// an arithmetic shift rounds the other way for negatives
	if -409500>>12 != -100 {
		t.Errorf("arithmetic shift reference changed")
	}
}

func TestWrapSigned(t *testing.T) {
	m := SignedRange(24)
	if m != 1<<23 {
		t.Fatalf("SignedRange(24) = %v, want %v", m, 1<<23)
	}
	ks := []int64{1, 2, 100, 12345, m - 1}
	for _, k := range ks {
		if w := WrapSigned(m+k, 24); w != k {
			t.Errorf("WrapSigned(2^23 + %v) = %v, want %v", k, w, k)
		}
		if w := WrapSigned(-(m + k), 24); w != -k {
			t.Errorf("WrapSigned(-(2^23 + %v)) = %v, want %v", k, w, -k)
		}
	}
	inr := []int64{0, 1, -1, m - 1, -(m - 1)}
	for _, x := range inr {
		if w := WrapSigned(x, 24); w != x {
			t.Errorf("WrapSigned(%v) = %v, want unchanged", x, w)
		}
	}
	if w := WrapSigned(m, 24); w != 0 {
		t.Errorf("WrapSigned(2^23) = %v, want 0", w)
	}
	if w := WrapSigned(-m, 24); w != 0 {
		t.Errorf("WrapSigned(-2^23) = %v, want 0", w)
	}
	if w := WrapSigned(int32(m+7), 24); w != 7 {
		t.Errorf("WrapSigned int32 = %v, want 7", w)
	}
}

func TestSaturateSigned(t *testing.T) {
	lim := SignedRange(24) - 1
	tstx := []int64{0, 5, -5, lim, -lim, lim + 1, -lim - 1, lim + 1000000, -lim - 1000000, 1 << 40, -(1 << 40)}
	cory := []int64{0, 5, -5, lim, -lim, lim, -lim, lim, -lim, lim, -lim}
	for i, x := range tstx {
		y := SaturateSigned(x, 24)
		if y != cory[i] {
			t.Errorf("SaturateSigned err: idx: %v, x: %v, y: %v, cor y: %v\n", i, x, y, cory[i])
		}
	}
}

func TestSaturateInt16(t *testing.T) {
	tstx := []int64{0, 32767, 32768, -32768, -32769, 100000, -100000}
	cory := []int16{0, 32767, 32767, -32768, -32768, 32767, -32768}
	for i, x := range tstx {
		if y := SaturateInt16(x); y != cory[i] {
			t.Errorf("SaturateInt16 err: idx: %v, x: %v, y: %v, cor y: %v\n", i, x, y, cory[i])
		}
	}
}

func TestDecay(t *testing.T) {
	hw := &HWParams{}
	hw.Defaults()
	type dtest struct {
		x, dc, y int32
	}
	tsts := []dtest{
		{0, 1, 0},
		{-100, 1, -99},   // magnitude shift, not -100
		{100, 1, 99},     // 100*4095 >> 12
		{12345, 0, 12345}, // decay const 0 is identity
		{12345, 4096, 0},  // full decay
		{-12345, 4096, 0},
		{8000000, 1, 7998046},
		{-8000000, 1, -7998046},
		{1 << 22, 2048, 1 << 21},
		{-(1 << 22), 2048, -(1 << 21)},
	}
	for i, ts := range tsts {
		if y := Decay(ts.x, ts.dc, hw); y != ts.y {
			t.Errorf("Decay err: idx: %v, x: %v, dc: %v, y: %v, cor y: %v\n", i, ts.x, ts.dc, y, ts.y)
		}
	}
}

func TestRanges(t *testing.T) {
	if !InUnsignedRange(4095, 12) || InUnsignedRange(4096, 12) || InUnsignedRange(-1, 12) {
		t.Errorf("InUnsignedRange 12-bit bounds wrong")
	}
	if !InSignedRange(-4096, 13) || !InSignedRange(4095, 13) || InSignedRange(4096, 13) || InSignedRange(-4097, 13) {
		t.Errorf("InSignedRange 13-bit bounds wrong")
	}
}
