// Copyright 2026 The QuadConv Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn implements the small neural-network building blocks the
// quadrature convolution filter networks are made of:
//   - Module interface: Forward + Parameters
//   - Parameter: named trainable tensor with a gradient slot
//   - Linear: fully connected layer with optional bias
//   - Sin: periodic sine activation
//   - Sequential: container for stacking layers
//   - Xavier initialization helpers
//
// Design inspired by PyTorch's nn.Module but adapted for Go.
package nn
