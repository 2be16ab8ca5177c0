// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lif

import "github.com/goki/ki/kit"

// Variant selects which numerical implementation of the LIF update a
// population runs.  It is chosen once at construction.
type Variant int

//go:generate stringer -type=Variant

var KiT_Variant = kit.Enums.AddEnum(VariantN, kit.NotBitFlag, nil)

func (ev Variant) MarshalJSON() ([]byte, error)  { return kit.EnumMarshalJSON(ev) }
func (ev *Variant) UnmarshalJSON(b []byte) error { return kit.EnumUnmarshalJSON(ev, b) }

// The LIF model variants
const (
	// FloatPoint is the real-valued reference model, for quick prototyping
	FloatPoint Variant = iota

	// FixedPoint is the bit-accurate model of the hardware neuron core
	FixedPoint

	VariantN
)
