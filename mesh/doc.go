// Copyright 2026 The QuadConv Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package mesh holds the geometric state the quadrature convolution
// operators consume: ordered point sets, per-point quadrature weights,
// and a resolution-level Handle that a chain of operators threads
// through a downsampling or upsampling schedule.
package mesh
