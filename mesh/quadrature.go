// Copyright 2026 The QuadConv Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package mesh

import "fmt"

// UniformWeights returns the quadrature weights of a uniform measure on
// n points: every point carries 1/n, so the weighted sum of a constant
// function equals that constant.
func UniformWeights(n int) []float64 {
	if n <= 0 {
		panic(fmt.Sprintf("mesh: uniform weights need a positive point count, got %d", n))
	}
	w := make([]float64, n)
	for i := range w {
		w[i] = 1.0 / float64(n)
	}
	return w
}

// TrapezoidWeights returns composite trapezoid-rule weights for n
// equispaced points on [0, 1]: h/2 at the end points and h inside, with
// h = 1/(n-1). Requires n >= 2.
func TrapezoidWeights(n int) []float64 {
	if n < 2 {
		panic(fmt.Sprintf("mesh: trapezoid rule needs at least 2 points, got %d", n))
	}
	h := 1.0 / float64(n-1)
	w := make([]float64, n)
	for i := range w {
		w[i] = h
	}
	w[0] = h / 2
	w[n-1] = h / 2
	return w
}

// UnitGrid builds an equispaced lattice on the unit hypercube [0, 1]^d
// with side points per axis, ordered row-major (last axis fastest).
// Grids like this stand in for stored mesh points in tests and examples.
func UnitGrid(side, dim int) (*PointSet, error) {
	if side < 1 || dim < 1 {
		return nil, fmt.Errorf("mesh: unit grid needs side >= 1 and dim >= 1, got side=%d dim=%d", side, dim)
	}

	num := 1
	for d := 0; d < dim; d++ {
		num *= side
	}

	step := 0.0
	if side > 1 {
		step = 1.0 / float64(side-1)
	}

	coords := make([]float64, 0, num*dim)
	idx := make([]int, dim)
	for i := 0; i < num; i++ {
		for d := 0; d < dim; d++ {
			coords = append(coords, float64(idx[d])*step)
		}
		// Odometer increment, last axis fastest.
		for d := dim - 1; d >= 0; d-- {
			idx[d]++
			if idx[d] < side {
				break
			}
			idx[d] = 0
		}
	}
	return NewPointSet(coords, dim)
}
