// Copyright 2026 The QuadConv Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"math"

	"github.com/quadconv-ml/quadconv/tensor"
)

// Sin is a periodic sine activation module.
//
// Applies the element-wise function: f(x) = sin(x)
//
// Periodic activations suit coordinate-based networks: the filter MLPs
// of the quadrature convolution map spatial offsets through sine
// nonlinearities between their linear layers.
type Sin struct{}

// NewSin creates a new Sin activation module.
func NewSin() *Sin {
	return &Sin{}
}

// Forward applies the sine function element-wise.
func (s *Sin) Forward(input *tensor.Tensor) *tensor.Tensor {
	out := input.Clone()
	data := out.Data()
	for i, v := range data {
		data[i] = math.Sin(v)
	}
	return out
}

// Parameters returns an empty slice (Sin has no trainable parameters).
func (s *Sin) Parameters() []*Parameter {
	return nil
}
