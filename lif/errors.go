// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lif

import (
	"errors"
	"fmt"
)

// ErrConfig is matched by every *ConfigError via errors.Is
var ErrConfig = errors.New("lif: configuration error")

// ConfigError reports a parameter outside its declared range, or arrays of
// mismatched length.  Index is the neuron index, or -1 for a scalar or
// population-level setting.
type ConfigError struct {
	Field string
	Index int
	Value int64
	Min   int64
	Max   int64
	Msg   string
}

func (ce *ConfigError) Error() string {
	if ce.Msg != "" {
		return fmt.Sprintf("lif: %s: %s", ce.Field, ce.Msg)
	}
	if ce.Index >= 0 {
		return fmt.Sprintf("lif: %s[%d] = %d out of range [%d, %d]", ce.Field, ce.Index, ce.Value, ce.Min, ce.Max)
	}
	return fmt.Sprintf("lif: %s = %d out of range [%d, %d]", ce.Field, ce.Value, ce.Min, ce.Max)
}

func (ce *ConfigError) Is(target error) bool { return target == ErrConfig }

func rangeErr(field string, idx int, val, min, max int64) *ConfigError {
	return &ConfigError{Field: field, Index: idx, Value: val, Min: min, Max: max}
}

func lenErr(field string, got, want int) *ConfigError {
	return &ConfigError{Field: field, Index: -1, Msg: fmt.Sprintf("length %d does not match population size %d", got, want)}
}

func msgErr(field string, idx int, msg string) *ConfigError {
	return &ConfigError{Field: field, Index: idx, Msg: msg}
}
