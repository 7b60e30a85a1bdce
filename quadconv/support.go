// Copyright 2026 The QuadConv Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package quadconv

import (
	"github.com/quadconv-ml/quadconv/internal/parallel"
	"github.com/quadconv-ml/quadconv/mesh"
)

// supportIndex is the sparse list of (output, input) point-index pairs
// for which the bump kernel can be non-zero. Pairs are stored as two
// parallel slices; ordering is stable for a given build and must stay
// consistent for one cached lifetime.
type supportIndex struct {
	out []int
	in  []int
}

func (s *supportIndex) size() int {
	return len(s.out)
}

// buildSupportIndex finds all pairs (i, j) with
// ‖outPts[i] - inPts[j]‖^4 <= 1/decay.
//
// The dense pairwise sweep is quadratic in the point counts and is the
// dominant cost of operator setup, so it runs in independent chunks over
// the output-point axis. Chunk results are concatenated in chunk order,
// which keeps the pair list deterministic for fixed inputs.
func buildSupportIndex(outPts, inPts *mesh.PointSet, decay float64, cfg parallel.Config) *supportIndex {
	threshold := 1.0 / decay
	dim := outPts.Dim()
	numOut := outPts.Len()
	numIn := inPts.Len()

	numChunks := parallel.NumChunks(numOut, cfg)
	chunkOut := make([][]int, numChunks)
	chunkIn := make([][]int, numChunks)

	parallel.ForChunks(numOut, func(chunk, start, end int) {
		var po, pi []int
		z := make([]float64, dim)
		for i := start; i < end; i++ {
			oi := outPts.Point(i)
			for j := 0; j < numIn; j++ {
				ij := inPts.Point(j)
				for d := 0; d < dim; d++ {
					z[d] = oi[d] - ij[d]
				}
				if BumpArg(z) <= threshold {
					po = append(po, i)
					pi = append(pi, j)
				}
			}
		}
		chunkOut[chunk] = po
		chunkIn[chunk] = pi
	}, cfg)

	idx := &supportIndex{}
	for c := 0; c < numChunks; c++ {
		idx.out = append(idx.out, chunkOut[c]...)
		idx.in = append(idx.in, chunkIn[c]...)
	}
	return idx
}
