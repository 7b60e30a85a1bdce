// Copyright 2026 The QuadConv Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import "fmt"

// IndexSelect gathers elements along the trailing axis.
//
// For a tensor shaped (..., N) and indices with values in [0, N), the
// result is shaped (..., len(indices)) with
// out[..., k] = t[..., indices[k]]. The same index may appear multiple
// times, which broadcasts one source slot to several output slots.
func (t *Tensor) IndexSelect(indices []int) *Tensor {
	if len(t.shape) == 0 {
		panic("tensor: index select: scalar tensor has no trailing axis")
	}
	if len(indices) == 0 {
		panic("tensor: index select: empty index list")
	}

	n := t.shape[len(t.shape)-1]
	outShape := t.shape.Clone()
	outShape[len(outShape)-1] = len(indices)
	out := Zeros(outShape)

	rows := t.NumElements() / n
	for r := 0; r < rows; r++ {
		src := t.data[r*n : (r+1)*n]
		dst := out.data[r*len(indices) : (r+1)*len(indices)]
		for k, idx := range indices {
			if idx < 0 || idx >= n {
				panic(fmt.Sprintf("tensor: index select: index %d out of bounds [0, %d)", idx, n))
			}
			dst[k] = src[idx]
		}
	}
	return out
}

// ScatterAdd accumulates src into the receiver along the trailing axis.
//
// For a receiver shaped (..., K) and src shaped (..., N) with identical
// leading dimensions, t[..., indices[p]] += src[..., p] for every p.
// Multiple source positions mapping to the same index all accumulate
// into the same slot. The receiver is modified in place.
func (t *Tensor) ScatterAdd(indices []int, src *Tensor) {
	if len(t.shape) == 0 || len(src.shape) == 0 {
		panic("tensor: scatter add: scalar tensor has no trailing axis")
	}
	if len(t.shape) != len(src.shape) {
		panic(fmt.Sprintf("tensor: scatter add: rank mismatch %v vs %v", t.shape, src.shape))
	}
	for d := 0; d < len(t.shape)-1; d++ {
		if t.shape[d] != src.shape[d] {
			panic(fmt.Sprintf("tensor: scatter add: leading dimension mismatch at %d: %v vs %v", d, t.shape, src.shape))
		}
	}

	n := src.shape[len(src.shape)-1]
	if len(indices) != n {
		panic(fmt.Sprintf("tensor: scatter add: %d indices for trailing axis of size %d", len(indices), n))
	}

	k := t.shape[len(t.shape)-1]
	rows := src.NumElements() / n
	for r := 0; r < rows; r++ {
		srcRow := src.data[r*n : (r+1)*n]
		dstRow := t.data[r*k : (r+1)*k]
		for p, idx := range indices {
			if idx < 0 || idx >= k {
				panic(fmt.Sprintf("tensor: scatter add: index %d out of bounds [0, %d)", idx, k))
			}
			dstRow[idx] += srcRow[p]
		}
	}
}
