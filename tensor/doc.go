// Copyright 2026 The QuadConv Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides dense float64 tensors for the QuadConv core.
//
// Tensors are row-major multi-dimensional arrays with a fixed shape.
// The package covers the operations the quadrature convolution and
// voxelization layers need:
//   - Shape: dimension bookkeeping, stride computation
//   - Creation: Zeros, Full, FromSlice, Randn
//   - Elementwise: Add (with size-1 broadcasting), Sub, Mul, Scale
//   - Linear algebra: MatMul (2-D, backed by gonum/mat)
//   - Indexing: IndexSelect and ScatterAdd along the trailing axis,
//     which is the point/voxel index space throughout the module
//
// Example:
//
//	x, err := tensor.FromSlice([]float64{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})
//	y := tensor.Zeros(tensor.Shape{2, 3})
//	z := x.Add(y)
package tensor
