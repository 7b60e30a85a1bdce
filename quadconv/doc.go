// Copyright 2026 The QuadConv Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package quadconv implements a learned convolution operator for
// irregularly sampled point clouds and meshes.
//
// The continuous convolution integral is approximated by a quadrature
// sum over known point locations and weights: for every output point,
// contributions from input points inside the compact support of a bump
// window are weighted by a learned filter network evaluated at the
// spatial offset, scaled by the input point's quadrature weight, and
// scatter-accumulated into the output feature slot.
//
// The operator consumes a mesh.Handle carrying the point sets and
// weights for a schedule of resolution levels, and feature batches
// shaped (batch, channels, points).
package quadconv
