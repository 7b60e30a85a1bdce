// Copyright 2026 The QuadConv Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package quadconv

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBump_ZeroOffset(t *testing.T) {
	// exp(1 - 1/(1 - 0)) == 1 for any decay.
	assert.InDelta(t, 1.0, Bump(0, 1), 1e-15)
	assert.InDelta(t, 1.0, Bump(0, 1e6), 1e-15)
}

func TestBump_ZeroOutsideSupport(t *testing.T) {
	decay := 2.0
	for _, arg := range []float64{0.5, 0.5 + 1e-12, 1.0, 100.0, math.Inf(1)} {
		if decay*arg < 1 {
			continue
		}
		v := Bump(arg, decay)
		assert.Equal(t, 0.0, v, "decay*arg=%g must give exactly 0", decay*arg)
	}

	// Exactly at the boundary: decay*arg == 1.
	assert.Equal(t, 0.0, Bump(0.5, 2.0))
}

func TestBump_NoNaNNearBoundary(t *testing.T) {
	decay := 1.0
	for _, arg := range []float64{1 - 1e-9, 1 - 1e-12, 1 - 1e-15, 1, 1 + 1e-15} {
		v := Bump(arg, decay)
		assert.False(t, math.IsNaN(v), "arg=%v", arg)
		assert.False(t, math.IsInf(v, 0), "arg=%v", arg)
		assert.GreaterOrEqual(t, v, 0.0)
	}
}

func TestBump_MonotoneDecay(t *testing.T) {
	// The window decays with distance inside the support.
	decay := 1.0
	prev := Bump(0, decay)
	for arg := 0.1; arg < 1; arg += 0.1 {
		v := Bump(arg, decay)
		assert.Less(t, v, prev, "arg=%v", arg)
		prev = v
	}
}

func TestBumpArg(t *testing.T) {
	// ‖z‖^4 for z = (3, 4): norm 5, arg 625.
	assert.InDelta(t, 625.0, BumpArg([]float64{3, 4}), 1e-9)
	assert.InDelta(t, 0.0, BumpArg([]float64{0, 0, 0}), 1e-15)
	assert.InDelta(t, 16.0, BumpArg([]float64{-2}), 1e-12)
}
