// Copyright 2026 The QuadConv Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Add returns t + other element-wise.
//
// Shapes must match exactly or be broadcast-compatible (size-1 dimensions
// stretch). Broadcasting is what lets a (1, C, P) bias add onto a
// (B, C, P) batch.
func (t *Tensor) Add(other *Tensor) *Tensor {
	if t.shape.Equal(other.shape) {
		out := t.Clone()
		floats.Add(out.data, other.data)
		return out
	}

	outShape, _, err := BroadcastShapes(t.shape, other.shape)
	if err != nil {
		panic(fmt.Sprintf("tensor: add: %v", err))
	}

	out := Zeros(outShape)
	outStrides := outShape.ComputeStrides()
	for i := range out.data {
		multiIdx := make([]int, len(outShape))
		remaining := i
		for d := range outShape {
			multiIdx[d] = remaining / outStrides[d]
			remaining %= outStrides[d]
		}
		out.data[i] = t.data[broadcastIndex(multiIdx, t.shape, t.strides)] +
			other.data[broadcastIndex(multiIdx, other.shape, other.strides)]
	}
	return out
}

// Sub returns t - other element-wise. Shapes must match exactly.
func (t *Tensor) Sub(other *Tensor) *Tensor {
	if !t.shape.Equal(other.shape) {
		panic(fmt.Sprintf("tensor: sub: shape mismatch %v vs %v", t.shape, other.shape))
	}
	out := t.Clone()
	floats.Sub(out.data, other.data)
	return out
}

// Mul returns t * other element-wise. Shapes must match exactly.
func (t *Tensor) Mul(other *Tensor) *Tensor {
	if !t.shape.Equal(other.shape) {
		panic(fmt.Sprintf("tensor: mul: shape mismatch %v vs %v", t.shape, other.shape))
	}
	out := t.Clone()
	floats.Mul(out.data, other.data)
	return out
}

// Scale returns c * t.
func (t *Tensor) Scale(c float64) *Tensor {
	out := t.Clone()
	floats.Scale(c, out.data)
	return out
}

// MatMul performs 2-D matrix multiplication: (m, k) @ (k, n) -> (m, n).
//
// Both operands must be rank-2 with a matching inner dimension.
func (t *Tensor) MatMul(other *Tensor) *Tensor {
	if len(t.shape) != 2 || len(other.shape) != 2 {
		panic(fmt.Sprintf("tensor: matmul: expected 2D operands, got %v and %v", t.shape, other.shape))
	}
	if t.shape[1] != other.shape[0] {
		panic(fmt.Sprintf("tensor: matmul: inner dimensions mismatch %v vs %v", t.shape, other.shape))
	}

	m, k, n := t.shape[0], t.shape[1], other.shape[1]
	out := Zeros(Shape{m, n})

	a := mat.NewDense(m, k, t.data)
	b := mat.NewDense(k, n, other.data)
	c := mat.NewDense(m, n, out.data)
	c.Mul(a, b)

	return out
}

// Transpose returns the transpose of a 2-D tensor as a new tensor.
func (t *Tensor) Transpose() *Tensor {
	if len(t.shape) != 2 {
		panic(fmt.Sprintf("tensor: transpose: expected 2D tensor, got %v", t.shape))
	}
	r, c := t.shape[0], t.shape[1]
	out := Zeros(Shape{c, r})
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			out.data[j*r+i] = t.data[i*c+j]
		}
	}
	return out
}

// broadcastIndex computes the flat index into a broadcast operand.
// Size-1 dimensions always resolve to index 0.
func broadcastIndex(multiIdx []int, shape Shape, strides []int) int {
	idx := 0
	offset := len(multiIdx) - len(shape)
	for i, size := range shape {
		dimIdx := multiIdx[offset+i]
		if size == 1 {
			dimIdx = 0
		}
		idx += dimIdx * strides[i]
	}
	return idx
}
