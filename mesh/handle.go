// Copyright 2026 The QuadConv Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package mesh

import "fmt"

// Handle owns the resolution-level state a chain of quadrature
// convolution operators threads through a forward evaluation.
//
// A handle holds an ordered sequence of point-set levels and a
// quadrature weight vector per level. At cursor k the input side is
// level k and the output side is level k+1; Step advances the cursor so
// the previous output becomes the next input.
//
// Ownership contract: a Handle is consumed by exactly one linear chain
// of operator calls per forward evaluation. Each downsampling operator
// call advances it once, so call order is part of the contract. It is
// not safe for concurrent use.
type Handle struct {
	levels  []*PointSet
	weights [][]float64
	cursor  int
}

// NewHandle builds a resolution-level handle.
//
// All levels must share a spatial dimension, and each weight vector must
// match its level's point count with non-negative entries.
func NewHandle(levels []*PointSet, weights [][]float64) (*Handle, error) {
	if len(levels) == 0 {
		return nil, fmt.Errorf("mesh: handle requires at least one level")
	}
	if len(weights) != len(levels) {
		return nil, fmt.Errorf("mesh: %d weight vectors for %d levels", len(weights), len(levels))
	}

	dim := levels[0].Dim()
	for k, lvl := range levels {
		if lvl.Dim() != dim {
			return nil, fmt.Errorf("mesh: level %d has dimension %d, expected %d", k, lvl.Dim(), dim)
		}
		if len(weights[k]) != lvl.Len() {
			return nil, fmt.Errorf("mesh: level %d has %d weights for %d points", k, len(weights[k]), lvl.Len())
		}
		for j, w := range weights[k] {
			if w < 0 {
				return nil, fmt.Errorf("mesh: level %d weight %d is negative (%g)", k, j, w)
			}
		}
	}

	ws := make([][]float64, len(weights))
	for k := range weights {
		ws[k] = make([]float64, len(weights[k]))
		copy(ws[k], weights[k])
	}
	return &Handle{levels: levels, weights: ws}, nil
}

// Dim returns the spatial dimension shared by all levels.
func (h *Handle) Dim() int {
	return h.levels[0].Dim()
}

// Levels returns the number of resolution levels.
func (h *Handle) Levels() int {
	return len(h.levels)
}

// Level returns the current cursor position.
func (h *Handle) Level() int {
	return h.cursor
}

// InputPoints returns the current input point set.
func (h *Handle) InputPoints() *PointSet {
	return h.levels[h.cursor]
}

// OutputPoints returns the current output point set (the next level).
//
// Panics when the cursor is already at the final level; operators that
// keep input and output points identical must not call this.
func (h *Handle) OutputPoints() *PointSet {
	if h.cursor+1 >= len(h.levels) {
		panic(fmt.Sprintf("mesh: no output level beyond cursor %d of %d levels", h.cursor, len(h.levels)))
	}
	return h.levels[h.cursor+1]
}

// Weights returns a copy of the quadrature weight vector of the current
// input level. Level weights are immutable after construction.
func (h *Handle) Weights() []float64 {
	w := make([]float64, len(h.weights[h.cursor]))
	copy(w, h.weights[h.cursor])
	return w
}

// Step advances the handle to the next resolution level.
//
// This is the explicit transition a downsampling operator performs once
// per call; stepping past the final level is an error.
func (h *Handle) Step() error {
	if h.cursor+1 >= len(h.levels) {
		return fmt.Errorf("mesh: cannot step past final level %d", h.cursor)
	}
	h.cursor++
	return nil
}

// Reset rewinds the cursor to the first level, readying the handle for
// another forward evaluation.
func (h *Handle) Reset() {
	h.cursor = 0
}
