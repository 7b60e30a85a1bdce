// Copyright 2026 The QuadConv Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package voxel maps irregular point data onto a regular grid and back.
//
// The Voxelizer clusters an ordered point set into cubic grid cells at
// construction time; Voxelize averages point features per cell and
// Devoxelize broadcasts cell values back to point order. The inverse is
// intentionally lossy: points sharing a cell receive identical values.
package voxel

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"

	"github.com/quadconv-ml/quadconv/mesh"
	"github.com/quadconv-ml/quadconv/tensor"
)

// quantizeEps nudges coordinates sitting just below a cell boundary
// (from rounding) up into the cell, so boundary points do not flicker
// between neighboring cells.
const quantizeEps = 1e-6

// Voxelizer is a non-learned structural transform built once from a
// fixed point set and a voxel size. The per-point cluster assignment is
// immutable after construction.
type Voxelizer struct {
	indices   []int // dense cluster id per point, in [0, numVoxels)
	numVoxels int
	gridShape []int
	numPoints int
	dim       int
	voxelSize float64
}

// New clusters points into cells of edge length voxelSize.
//
// Each coordinate is quantized by truncation toward zero; the d
// quantized coordinates combine into one composite cluster key, and the
// possibly sparse raw keys are relabeled into a dense contiguous range.
// The grid is assumed cubic: construction fails when the voxel count is
// not an exact d-th power, rather than silently truncating cells.
func New(points *mesh.PointSet, voxelSize float64) (*Voxelizer, error) {
	if voxelSize <= 0 {
		return nil, fmt.Errorf("voxel: voxel size must be positive, got %g", voxelSize)
	}

	dim := points.Dim()
	num := points.Len()

	// Quantize each point to its integer cell coordinates.
	cells := make([][]int64, num)
	for i := 0; i < num; i++ {
		pt := points.Point(i)
		cell := make([]int64, dim)
		for d := 0; d < dim; d++ {
			cell[d] = int64(math.Trunc(pt[d]/voxelSize + quantizeEps))
		}
		cells[i] = cell
	}

	// Composite raw key: linear index over the bounding integer box.
	lo := make([]int64, dim)
	hi := make([]int64, dim)
	copy(lo, cells[0])
	copy(hi, cells[0])
	for _, cell := range cells[1:] {
		for d, c := range cell {
			lo[d] = min(lo[d], c)
			hi[d] = max(hi[d], c)
		}
	}
	raw := make([]int64, num)
	for i, cell := range cells {
		key := int64(0)
		for d := 0; d < dim; d++ {
			key = key*(hi[d]-lo[d]+1) + (cell[d] - lo[d])
		}
		raw[i] = key
	}

	// Relabel raw keys into dense ids [0, numVoxels), ascending by raw
	// key so two points in the same cell always share a dense id and
	// the labeling is reproducible.
	uniq := make([]int64, 0, num)
	seen := make(map[int64]struct{}, num)
	for _, key := range raw {
		if _, ok := seen[key]; !ok {
			seen[key] = struct{}{}
			uniq = append(uniq, key)
		}
	}
	sort.Slice(uniq, func(a, b int) bool { return uniq[a] < uniq[b] })
	dense := make(map[int64]int, len(uniq))
	for id, key := range uniq {
		dense[key] = id
	}

	indices := make([]int, num)
	for i, key := range raw {
		indices[i] = dense[key]
	}
	numVoxels := len(uniq)

	gridShape, err := cubicGridShape(numVoxels, dim)
	if err != nil {
		return nil, err
	}

	return &Voxelizer{
		indices:   indices,
		numVoxels: numVoxels,
		gridShape: gridShape,
		numPoints: num,
		dim:       dim,
		voxelSize: voxelSize,
	}, nil
}

// cubicGridShape derives a d-dimensional hypercube shape whose per-axis
// side is the integer d-th root of the voxel count. Fails when the root
// does not reconstruct the count exactly, since reshaping to a wrong
// cube would silently drop or invent cells.
func cubicGridShape(numVoxels, dim int) ([]int, error) {
	side := int(math.Floor(math.Pow(float64(numVoxels), 1.0/float64(dim))))
	// Pow can land a hair under the exact root; probe the neighbors.
	for _, s := range []int{side, side + 1} {
		if s < 1 {
			continue
		}
		total := 1
		for d := 0; d < dim; d++ {
			total *= s
		}
		if total == numVoxels {
			shape := make([]int, dim)
			for d := range shape {
				shape[d] = s
			}
			return shape, nil
		}
	}
	return nil, fmt.Errorf("voxel: %d voxels do not form a cubic %d-dimensional grid", numVoxels, dim)
}

// NumVoxels returns the number of occupied grid cells.
func (v *Voxelizer) NumVoxels() int {
	return v.numVoxels
}

// GridShape returns the d-dimensional grid shape.
func (v *Voxelizer) GridShape() []int {
	shape := make([]int, len(v.gridShape))
	copy(shape, v.gridShape)
	return shape
}

// NumPoints returns the number of points in the underlying point set.
func (v *Voxelizer) NumPoints() int {
	return v.numPoints
}

// Indices returns the dense cluster id of each point, in point order.
func (v *Voxelizer) Indices() []int {
	idx := make([]int, len(v.indices))
	copy(idx, v.indices)
	return idx
}

// Voxelize converts point-cloud features to a voxel grid.
//
// features is shaped (batch, channels, num_points). Each voxel averages
// the features of the points assigned to it; a voxel without points
// would stay all-zero. The result is shaped (batch, channels, grid...).
func (v *Voxelizer) Voxelize(features *tensor.Tensor) (*tensor.Tensor, error) {
	shape := features.Shape()
	if len(shape) != 3 {
		return nil, fmt.Errorf("voxel: features must be 3D (batch, channels, points), got shape %v", shape)
	}
	if shape[2] != v.numPoints {
		return nil, fmt.Errorf("voxel: features have %d points, voxelizer built for %d", shape[2], v.numPoints)
	}
	batch, channels := shape[0], shape[1]

	sums := tensor.Zeros(tensor.Shape{batch, channels, v.numVoxels})
	sums.ScatterAdd(v.indices, features)

	counts := make([]float64, v.numVoxels)
	for _, id := range v.indices {
		counts[id]++
	}
	inv := make([]float64, v.numVoxels)
	for id, c := range counts {
		if c > 0 {
			inv[id] = 1 / c
		}
	}

	// Mean reduction: scale each voxel slot by 1/count.
	data := sums.Data()
	for r := 0; r < batch*channels; r++ {
		floats.Mul(data[r*v.numVoxels:(r+1)*v.numVoxels], inv)
	}

	outShape := append(tensor.Shape{batch, channels}, v.gridShape...)
	return sums.Reshape(outShape...), nil
}

// Devoxelize converts a voxel grid back to a point cloud.
//
// voxels is shaped (batch, channels, grid...); the spatial axes are
// flattened and gathered through the stored cluster assignment, so every
// point sharing a voxel receives the same value. The result is shaped
// (batch, channels, num_points).
func (v *Voxelizer) Devoxelize(voxels *tensor.Tensor) (*tensor.Tensor, error) {
	shape := voxels.Shape()
	if len(shape) != 2+v.dim {
		return nil, fmt.Errorf("voxel: grid must be %dD (batch, channels, grid...), got shape %v", 2+v.dim, shape)
	}
	spatial := 1
	for d := 0; d < v.dim; d++ {
		if shape[2+d] != v.gridShape[d] {
			return nil, fmt.Errorf("voxel: grid spatial shape %v does not match %v", []int(shape[2:]), v.gridShape)
		}
		spatial *= shape[2+d]
	}

	flat := voxels.Reshape(shape[0], shape[1], spatial)
	return flat.IndexSelect(v.indices), nil
}
