// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package lif is the overall repository for Leaky-Integrate-and-Fire (LIF)
spiking neuron population dynamics implemented in the Go language (golang).

This top-level of the repository has no functional code -- everything is organized
into the following sub-repositories:

* lif: the core per-timestep neuron update, in two variants: a floating-point
reference model for quick prototyping, and a fixed-point model that reproduces
the register arithmetic of the neuromorphic hardware bit-for-bit (24-bit
current and voltage, 12-bit decay fractions, wraparound current and saturating
voltage).

* sim: a host driver that steps a network of independent populations in
lockstep, generates input drive, and reports timing and memory use.

* examples: these actually compile into runnable programs.  examples/lifsim
runs a population from the command line and writes a CSV trace.
*/
package lif
