// Copyright 2026 The QuadConv Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package mesh

import "fmt"

// PointSet is an ordered sequence of coordinates in R^d.
//
// Order is significant: it defines the index space feature arrays and
// support-index pairs refer to. A PointSet is immutable once built.
type PointSet struct {
	coords []float64 // row-major, num*dim values
	num    int
	dim    int
}

// NewPointSet builds a point set from row-major coordinates.
//
// len(coords) must be a positive multiple of dim; coords are copied.
func NewPointSet(coords []float64, dim int) (*PointSet, error) {
	if dim <= 0 {
		return nil, fmt.Errorf("mesh: spatial dimension must be positive, got %d", dim)
	}
	if len(coords) == 0 || len(coords)%dim != 0 {
		return nil, fmt.Errorf("mesh: %d coordinates is not a positive multiple of dimension %d", len(coords), dim)
	}

	c := make([]float64, len(coords))
	copy(c, coords)
	return &PointSet{coords: c, num: len(coords) / dim, dim: dim}, nil
}

// Len returns the number of points.
func (p *PointSet) Len() int {
	return p.num
}

// Dim returns the spatial dimension.
func (p *PointSet) Dim() int {
	return p.dim
}

// Point returns the coordinates of point i as a read-only view.
func (p *PointSet) Point(i int) []float64 {
	if i < 0 || i >= p.num {
		panic(fmt.Sprintf("mesh: point index %d out of bounds [0, %d)", i, p.num))
	}
	return p.coords[i*p.dim : (i+1)*p.dim]
}

// Coords returns the full row-major coordinate slice as a read-only view.
func (p *PointSet) Coords() []float64 {
	return p.coords
}
