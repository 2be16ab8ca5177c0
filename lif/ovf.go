// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lif

import (
	"fmt"
	"math"

	"golang.org/x/exp/constraints"
)

///////////////////////////////////////////////////////////////////////
//  ovf.go contains the overflow and rounding policy of the fixed-point
//  hardware unit: magnitude shift for decay, wraparound for current,
//  saturation for voltage.

// MaxWideOperand is the largest magnitude accepted by Decay for the value
// being decayed.  With a decay factor of at most 2^12 this keeps the widened
// product well inside int64.
const MaxWideOperand = int64(1) << 50

// ArithmeticInvariantViolation is the panic value raised when an intermediate
// value exceeds the 64-bit widening headroom.  It can only happen if state
// validation was bypassed, and is not recoverable.
type ArithmeticInvariantViolation struct {
	Op    string
	Value int64
}

func (av *ArithmeticInvariantViolation) Error() string {
	return fmt.Sprintf("lif: arithmetic invariant violated in %s: operand %d exceeds widening headroom", av.Op, av.Value)
}

// SignedRange returns the magnitude 2^(bits-1) of a signed register of given
// bit width, i.e., max_uv_val for the 24-bit u and v registers.
func SignedRange(bits uint) int64 {
	return int64(1) << (bits - 1)
}

// ShiftRightMag shifts the absolute value of x right by shift bits and
// re-applies the sign: sign(x) * (|x| >> shift).  This rounds toward zero,
// unlike an arithmetic shift which rounds toward negative infinity.
func ShiftRightMag[T constraints.Signed](x T, shift uint) T {
	if x < 0 {
		return -((-x) >> shift)
	}
	return x >> shift
}

// WrapSigned wraps x around a signed register of given bit width, carrying
// the sign of x: 2^(bits-1) + k becomes k and -(2^(bits-1) + k) becomes -k.
// Go's truncated remainder gives exactly mod(x, sign(x) * 2^(bits-1)).
func WrapSigned[T constraints.Signed](x T, bits uint) T {
	return x % T(SignedRange(bits))
}

// SaturateSigned clips x into the symmetric range
// [-(2^(bits-1) - 1), 2^(bits-1) - 1] of a signed register of given bit width.
func SaturateSigned[T constraints.Signed](x T, bits uint) T {
	lim := T(SignedRange(bits) - 1)
	switch {
	case x > lim:
		return lim
	case x < -lim:
		return -lim
	}
	return x
}

// SaturateInt16 clips a wide value into the int16 range.
func SaturateInt16(x int64) int16 {
	switch {
	case x > math.MaxInt16:
		return math.MaxInt16
	case x < math.MinInt16:
		return math.MinInt16
	}
	return int16(x)
}

// Decay applies one step of hardware decay to x: x is widened to 64 bits,
// multiplied by (DecayUnity - decayConst), magnitude-shifted right by
// DecayShift and narrowed back to 32 bits.
func Decay(x int32, decayConst int32, hw *HWParams) int32 {
	wx := int64(x)
	if wx > MaxWideOperand || wx < -MaxWideOperand {
		panic(&ArithmeticInvariantViolation{Op: "Decay", Value: wx})
	}
	prod := wx * int64(hw.DecayUnity-decayConst)
	return int32(ShiftRightMag(prod, uint(hw.DecayShift)))
}

// InUnsignedRange returns true if x fits in an unsigned register of given bits.
func InUnsignedRange(x int64, bits uint) bool {
	return x >= 0 && x < int64(1)<<bits
}

// InSignedRange returns true if x fits in a two's-complement signed register
// of given bits: [-2^(bits-1), 2^(bits-1) - 1].
func InSignedRange(x int64, bits uint) bool {
	r := SignedRange(bits)
	return x >= -r && x < r
}
