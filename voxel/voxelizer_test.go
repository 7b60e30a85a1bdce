// Copyright 2026 The QuadConv Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package voxel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quadconv-ml/quadconv/mesh"
	"github.com/quadconv-ml/quadconv/tensor"
)

func points(t *testing.T, coords []float64, dim int) *mesh.PointSet {
	t.Helper()
	p, err := mesh.NewPointSet(coords, dim)
	require.NoError(t, err)
	return p
}

func TestNew_InvalidVoxelSize(t *testing.T) {
	p := points(t, []float64{0, 1}, 1)
	_, err := New(p, 0)
	require.Error(t, err)
	_, err = New(p, -0.5)
	require.Error(t, err)
}

func TestNew_LineScenario(t *testing.T) {
	// Four points on a line, voxel edge 0.2: {0.0, 0.05} land in one
	// cell and {1.0, 1.05} in another. 1.0 sits exactly on a cell
	// boundary and must not flicker into the lower cell.
	p := points(t, []float64{0.0, 0.05, 1.0, 1.05}, 1)
	v, err := New(p, 0.2)
	require.NoError(t, err)

	assert.Equal(t, 2, v.NumVoxels())
	assert.Equal(t, []int{2}, v.GridShape())
	assert.Equal(t, 4, v.NumPoints())
	// Dense ids are assigned in ascending cell order.
	assert.Equal(t, []int{0, 0, 1, 1}, v.Indices())
}

func TestNew_SingleCell(t *testing.T) {
	// All points share one cell: a degenerate 1x1 grid.
	p := points(t, []float64{0.01, 0.01, 0.05, 0.1, 0.1, 0.15}, 2)
	v, err := New(p, 0.2)
	require.NoError(t, err)

	assert.Equal(t, 1, v.NumVoxels())
	assert.Equal(t, []int{1, 1}, v.GridShape())
	assert.Equal(t, []int{0, 0, 0}, v.Indices())
}

func TestNew_NonCubicGrid(t *testing.T) {
	// Three occupied cells in 2-D cannot form a square grid.
	p := points(t, []float64{0.1, 0.1, 1.1, 0.1, 2.1, 0.1}, 2)
	_, err := New(p, 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cubic")
}

func TestVoxelize_MeanPerCell(t *testing.T) {
	p := points(t, []float64{0.0, 0.05, 1.0, 1.05}, 1)
	v, err := New(p, 0.2)
	require.NoError(t, err)

	features, err := tensor.FromSlice([]float64{1, 1, 5, 5}, tensor.Shape{1, 1, 4})
	require.NoError(t, err)

	grid, err := v.Voxelize(features)
	require.NoError(t, err)
	require.Equal(t, tensor.Shape{1, 1, 2}, grid.Shape())
	assert.InDelta(t, 1.0, grid.At(0, 0, 0), 1e-12)
	assert.InDelta(t, 5.0, grid.At(0, 0, 1), 1e-12)

	back, err := v.Devoxelize(grid)
	require.NoError(t, err)
	require.Equal(t, tensor.Shape{1, 1, 4}, back.Shape())
	assert.InDeltaSlice(t, []float64{1, 1, 5, 5}, back.Data(), 1e-12)
}

func TestVoxelize_AveragesWithinCell(t *testing.T) {
	p := points(t, []float64{0.0, 0.05, 1.0, 1.05}, 1)
	v, err := New(p, 0.2)
	require.NoError(t, err)

	features, err := tensor.FromSlice([]float64{2, 4, 10, 30}, tensor.Shape{1, 1, 4})
	require.NoError(t, err)

	grid, err := v.Voxelize(features)
	require.NoError(t, err)
	assert.InDelta(t, 3.0, grid.At(0, 0, 0), 1e-12)
	assert.InDelta(t, 20.0, grid.At(0, 0, 1), 1e-12)

	// The round trip replaces each point value by its cell mean.
	back, err := v.Devoxelize(grid)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{3, 3, 20, 20}, back.Data(), 1e-12)
}

func TestVoxelize_ConstantRoundTrip(t *testing.T) {
	// Five points over a 2x2 grid of cells; one cell holds two points.
	coords := []float64{
		0.1, 0.1,
		0.1, 1.1,
		1.1, 0.1,
		1.1, 1.1,
		0.15, 0.12,
	}
	p := points(t, coords, 2)
	v, err := New(p, 1)
	require.NoError(t, err)
	require.Equal(t, 4, v.NumVoxels())
	require.Equal(t, []int{2, 2}, v.GridShape())

	features := tensor.Full(tensor.Shape{2, 3, 5}, 7.0)
	grid, err := v.Voxelize(features)
	require.NoError(t, err)
	require.Equal(t, tensor.Shape{2, 3, 2, 2}, grid.Shape())
	for _, val := range grid.Data() {
		assert.InDelta(t, 7.0, val, 1e-12)
	}

	back, err := v.Devoxelize(grid)
	require.NoError(t, err)
	require.Equal(t, tensor.Shape{2, 3, 5}, back.Shape())
	for _, val := range back.Data() {
		assert.InDelta(t, 7.0, val, 1e-12)
	}
}

func TestVoxelize_ShapeErrors(t *testing.T) {
	p := points(t, []float64{0.0, 0.05, 1.0, 1.05}, 1)
	v, err := New(p, 0.2)
	require.NoError(t, err)

	_, err = v.Voxelize(tensor.Zeros(tensor.Shape{1, 4}))
	require.Error(t, err)
	_, err = v.Voxelize(tensor.Zeros(tensor.Shape{1, 1, 3}))
	require.Error(t, err)
}

func TestDevoxelize_ShapeErrors(t *testing.T) {
	p := points(t, []float64{0.1, 0.1, 1.1, 0.1, 0.1, 1.1, 1.1, 1.1}, 2)
	v, err := New(p, 1)
	require.NoError(t, err)
	require.Equal(t, []int{2, 2}, v.GridShape())

	// Missing one spatial axis.
	_, err = v.Devoxelize(tensor.Zeros(tensor.Shape{1, 1, 4}))
	require.Error(t, err)
	// Wrong spatial extent.
	_, err = v.Devoxelize(tensor.Zeros(tensor.Shape{1, 1, 2, 3}))
	require.Error(t, err)
}

func TestVoxelizer_AccessorsCopy(t *testing.T) {
	p := points(t, []float64{0.0, 0.05, 1.0, 1.05}, 1)
	v, err := New(p, 0.2)
	require.NoError(t, err)

	idx := v.Indices()
	idx[0] = 99
	assert.Equal(t, []int{0, 0, 1, 1}, v.Indices())

	gs := v.GridShape()
	gs[0] = 99
	assert.Equal(t, []int{2}, v.GridShape())
}
