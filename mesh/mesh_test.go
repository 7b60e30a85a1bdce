// Copyright 2026 The QuadConv Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package mesh

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
)

func TestNewPointSet(t *testing.T) {
	p, err := NewPointSet([]float64{0, 0, 1, 0, 0, 1}, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, p.Len())
	assert.Equal(t, 2, p.Dim())
	assert.Equal(t, []float64{1, 0}, p.Point(1))

	assert.Panics(t, func() { p.Point(3) })
}

func TestNewPointSet_Invalid(t *testing.T) {
	_, err := NewPointSet([]float64{1, 2, 3}, 2)
	require.Error(t, err)
	_, err = NewPointSet(nil, 2)
	require.Error(t, err)
	_, err = NewPointSet([]float64{1}, 0)
	require.Error(t, err)
}

func TestPointSet_CopiesCoords(t *testing.T) {
	src := []float64{1, 2}
	p, err := NewPointSet(src, 1)
	require.NoError(t, err)
	src[0] = 99
	assert.Equal(t, []float64{1.0}, p.Point(0))
}

func newTestHandle(t *testing.T) *Handle {
	t.Helper()
	l0, err := NewPointSet([]float64{0, 0.25, 0.5, 0.75}, 1)
	require.NoError(t, err)
	l1, err := NewPointSet([]float64{0, 0.5}, 1)
	require.NoError(t, err)

	h, err := NewHandle([]*PointSet{l0, l1}, [][]float64{UniformWeights(4), UniformWeights(2)})
	require.NoError(t, err)
	return h
}

func TestHandle_Levels(t *testing.T) {
	h := newTestHandle(t)

	assert.Equal(t, 0, h.Level())
	assert.Equal(t, 2, h.Levels())
	assert.Equal(t, 1, h.Dim())
	assert.Equal(t, 4, h.InputPoints().Len())
	assert.Equal(t, 2, h.OutputPoints().Len())
	assert.Len(t, h.Weights(), 4)

	require.NoError(t, h.Step())
	assert.Equal(t, 1, h.Level())
	assert.Equal(t, 2, h.InputPoints().Len())
	assert.Len(t, h.Weights(), 2)

	// Final level: no output side, no further stepping.
	assert.Panics(t, func() { h.OutputPoints() })
	require.Error(t, h.Step())

	h.Reset()
	assert.Equal(t, 0, h.Level())
	assert.Equal(t, 4, h.InputPoints().Len())
}

func TestHandle_WeightsCopy(t *testing.T) {
	h := newTestHandle(t)

	w := h.Weights()
	w[0] = 99
	assert.Equal(t, UniformWeights(4), h.Weights())
}

func TestNewHandle_Validation(t *testing.T) {
	l0, _ := NewPointSet([]float64{0, 1}, 1)
	l1, _ := NewPointSet([]float64{0, 0, 1, 1}, 2)

	_, err := NewHandle(nil, nil)
	require.Error(t, err)

	// Dimension mismatch between levels.
	_, err = NewHandle([]*PointSet{l0, l1}, [][]float64{UniformWeights(2), UniformWeights(2)})
	require.Error(t, err)

	// Weight length mismatch.
	_, err = NewHandle([]*PointSet{l0}, [][]float64{UniformWeights(3)})
	require.Error(t, err)

	// Negative weight.
	_, err = NewHandle([]*PointSet{l0}, [][]float64{{0.5, -0.5}})
	require.Error(t, err)
}

func TestUniformWeights(t *testing.T) {
	w := UniformWeights(5)
	assert.Len(t, w, 5)
	assert.InDelta(t, 1.0, floats.Sum(w), 1e-12)
	assert.Panics(t, func() { UniformWeights(0) })
}

func TestTrapezoidWeights(t *testing.T) {
	w := TrapezoidWeights(5)
	assert.Len(t, w, 5)
	// Composite trapezoid weights integrate constants exactly on [0, 1].
	assert.InDelta(t, 1.0, floats.Sum(w), 1e-12)
	assert.InDelta(t, w[1]/2, w[0], 1e-12)
	assert.Panics(t, func() { TrapezoidWeights(1) })
}

func TestUnitGrid(t *testing.T) {
	g, err := UnitGrid(3, 2)
	require.NoError(t, err)
	assert.Equal(t, 9, g.Len())
	assert.Equal(t, 2, g.Dim())
	assert.Equal(t, []float64{0, 0}, g.Point(0))
	assert.Equal(t, []float64{0, 0.5}, g.Point(1)) // last axis fastest
	assert.Equal(t, []float64{1, 1}, g.Point(8))

	_, err = UnitGrid(0, 2)
	require.Error(t, err)
}
