// Copyright 2026 The QuadConv Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"math"
	"math/rand"

	"github.com/quadconv-ml/quadconv/tensor"
)

// Xavier (Glorot) initialization for weights.
//
// Initializes weights with values drawn from a uniform distribution:
// U(-sqrt(6/(fan_in + fan_out)), sqrt(6/(fan_in + fan_out)))
//
// This initialization helps maintain variance of activations across layers.
func Xavier(fanIn, fanOut int, shape tensor.Shape) *tensor.Tensor {
	return XavierGain(fanIn, fanOut, shape, 1.0)
}

// XavierGain is Xavier initialization with an explicit gain factor:
// U(-gain*sqrt(6/(fan_in + fan_out)), gain*sqrt(6/(fan_in + fan_out))).
//
// The quadrature convolution bias uses gain 2.
func XavierGain(fanIn, fanOut int, shape tensor.Shape, gain float64) *tensor.Tensor {
	bound := gain * math.Sqrt(6.0/float64(fanIn+fanOut))

	t := tensor.Zeros(shape)
	data := t.Data()
	for i := range data {
		//nolint:gosec // Using math/rand for weight initialization (not security-critical)
		data[i] = (rand.Float64()*2.0 - 1.0) * bound
	}
	return t
}
