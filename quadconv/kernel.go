// Copyright 2026 The QuadConv Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package quadconv

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// BumpArg returns the kernel argument for a spatial offset z: the
// Euclidean norm raised to the 4th power.
func BumpArg(z []float64) float64 {
	n := floats.Norm(z, 2)
	return n * n * n * n
}

// Bump evaluates the radial, compactly supported window
//
//	exp(1 - 1/(1 - decay*arg))  for decay*arg < 1
//	0                           otherwise
//
// where arg is a kernel argument from BumpArg. The guard makes the
// boundary exact: at decay*arg >= 1 the value is 0 with no NaN or Inf
// from the vanishing denominator (exp(-x) underflows to 0 as the
// denominator approaches zero from above, matching the analytic limit).
func Bump(arg, decay float64) float64 {
	t := decay * arg
	if t >= 1 {
		return 0
	}
	return math.Exp(1 - 1/(1-t))
}
