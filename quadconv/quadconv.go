// Copyright 2026 The QuadConv Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package quadconv

import (
	"fmt"

	"github.com/quadconv-ml/quadconv/internal/parallel"
	"github.com/quadconv-ml/quadconv/mesh"
	"github.com/quadconv-ml/quadconv/nn"
	"github.com/quadconv-ml/quadconv/tensor"
)

// Config describes one quadrature convolution operator.
//
// SpatialDim, the point counts, and the channel counts are mandatory.
// FilterMode defaults to "single" and DecayParam to (InPoints/16)^2 when
// left zero. When OutputSame is set, the operator uses the handle's
// input point set for both sides; OutPoints may then be left zero and
// defaults to InPoints. Cache controls whether the support index is
// kept as immutable derived state after the first Apply — enable it only
// when the point geometry is fixed across calls.
type Config struct {
	SpatialDim  int
	InPoints    int
	OutPoints   int
	InChannels  int
	OutChannels int

	FilterSeq  []int
	FilterMode string
	DecayParam float64

	Bias       bool
	OutputSame bool
	Cache      bool
}

// QuadConv approximates a continuous convolution with a learned filter
// by a quadrature sum over the input point set.
//
// One operator instance executes one step of an external resolution
// schedule: it maps features on the handle's current input point set to
// features on its output point set, and — unless OutputSame — advances
// the handle exactly once per Apply.
type QuadConv struct {
	cfg    Config
	decay  float64
	filter Filter
	bias   *nn.Parameter // (1, out_channels, out_points) or nil

	// Write-once derived state: populated on the first Apply when
	// cfg.Cache is set, read-only afterwards.
	support *supportIndex

	par parallel.Config
}

// New validates the configuration and constructs an operator.
//
// Configuration errors (non-positive spatial dimension or counts,
// unsupported filter mode, negative decay) are fatal and reported here,
// before any forward computation is attempted.
func New(cfg Config) (*QuadConv, error) {
	if cfg.SpatialDim <= 0 {
		return nil, fmt.Errorf("quadconv: spatial dimension must be positive, got %d", cfg.SpatialDim)
	}
	if cfg.InPoints <= 0 {
		return nil, fmt.Errorf("quadconv: input point count must be positive, got %d", cfg.InPoints)
	}
	if cfg.OutputSame {
		if cfg.OutPoints == 0 {
			cfg.OutPoints = cfg.InPoints
		}
		if cfg.OutPoints != cfg.InPoints {
			return nil, fmt.Errorf("quadconv: output_same requires out_points (%d) == in_points (%d)",
				cfg.OutPoints, cfg.InPoints)
		}
	}
	if cfg.OutPoints <= 0 {
		return nil, fmt.Errorf("quadconv: output point count must be positive, got %d", cfg.OutPoints)
	}
	if cfg.InChannels <= 0 || cfg.OutChannels <= 0 {
		return nil, fmt.Errorf("quadconv: invalid channels in=%d, out=%d", cfg.InChannels, cfg.OutChannels)
	}
	for i, w := range cfg.FilterSeq {
		if w <= 0 {
			return nil, fmt.Errorf("quadconv: filter_seq[%d] must be positive, got %d", i, w)
		}
	}

	if cfg.FilterMode == "" {
		cfg.FilterMode = FilterModeSingle
	}
	if cfg.DecayParam < 0 {
		return nil, fmt.Errorf("quadconv: decay parameter must be positive, got %g", cfg.DecayParam)
	}
	decay := cfg.DecayParam
	if decay == 0 {
		d := float64(cfg.InPoints) / 16.0
		decay = d * d
	}

	filter, err := NewFilter(cfg.FilterMode, cfg.SpatialDim, cfg.FilterSeq, cfg.InChannels, cfg.OutChannels)
	if err != nil {
		return nil, err
	}

	q := &QuadConv{
		cfg:    cfg,
		decay:  decay,
		filter: filter,
		par:    parallel.DefaultConfig(),
	}
	if cfg.Bias {
		shape := tensor.Shape{1, cfg.OutChannels, cfg.OutPoints}
		bias := nn.XavierGain(cfg.OutChannels*cfg.OutPoints, cfg.OutPoints, shape, 2.0)
		q.bias = nn.NewParameter("bias", bias)
	}
	return q, nil
}

// Decay returns the effective decay parameter of the bump window.
func (q *QuadConv) Decay() float64 {
	return q.decay
}

// Parameters returns the trainable parameters: the filter network
// weights and, when enabled, the per-output-point bias.
func (q *QuadConv) Parameters() []*nn.Parameter {
	params := q.filter.Parameters()
	if q.bias != nil {
		params = append(params, q.bias)
	}
	return params
}

// Apply computes the quadrature approximation of the convolution of
// features with the learned filter.
//
// features must be shaped (batch, in_channels, in_points) and match the
// handle's current input point set. The result is shaped
// (batch, out_channels, out_points). Unless the operator was built with
// OutputSame, the handle advances to its next resolution level exactly
// once per call, after all point and weight lookups for this call.
func (q *QuadConv) Apply(h *mesh.Handle, features *tensor.Tensor) (*tensor.Tensor, error) {
	shape := features.Shape()
	if len(shape) != 3 {
		return nil, fmt.Errorf("quadconv: features must be 3D (batch, channels, points), got shape %v", shape)
	}
	batch := shape[0]
	if shape[1] != q.cfg.InChannels {
		return nil, fmt.Errorf("quadconv: features have %d channels, operator configured for %d", shape[1], q.cfg.InChannels)
	}
	if shape[2] != q.cfg.InPoints {
		return nil, fmt.Errorf("quadconv: features have %d points, operator configured for %d", shape[2], q.cfg.InPoints)
	}

	inPts := h.InputPoints()
	outPts := inPts
	if !q.cfg.OutputSame {
		if h.Level()+1 >= h.Levels() {
			return nil, fmt.Errorf("quadconv: handle has no output level beyond level %d", h.Level())
		}
		outPts = h.OutputPoints()
	}
	if inPts.Dim() != q.cfg.SpatialDim {
		return nil, fmt.Errorf("quadconv: handle points have dimension %d, operator configured for %d",
			inPts.Dim(), q.cfg.SpatialDim)
	}
	if inPts.Len() != q.cfg.InPoints {
		return nil, fmt.Errorf("quadconv: handle provides %d input points, operator configured for %d",
			inPts.Len(), q.cfg.InPoints)
	}
	if outPts.Len() != q.cfg.OutPoints {
		return nil, fmt.Errorf("quadconv: handle provides %d output points, operator configured for %d",
			outPts.Len(), q.cfg.OutPoints)
	}

	idx := q.support
	if idx == nil {
		idx = buildSupportIndex(outPts, inPts, q.decay, q.par)
		if q.cfg.Cache {
			q.support = idx
		}
	}
	n := idx.size()

	weights := h.Weights()
	if len(weights) != q.cfg.InPoints {
		return nil, fmt.Errorf("quadconv: handle provides %d weights for %d input points",
			len(weights), q.cfg.InPoints)
	}

	// Per-pair quadrature weights and evaluation offsets.
	pairWeights := make([]float64, n)
	offsets := tensor.Zeros(tensor.Shape{max(n, 1), q.cfg.SpatialDim})
	offData := offsets.Data()
	for p := 0; p < n; p++ {
		pairWeights[p] = weights[idx.in[p]]
		oi := outPts.Point(idx.out[p])
		ij := inPts.Point(idx.in[p])
		for d := 0; d < q.cfg.SpatialDim; d++ {
			offData[p*q.cfg.SpatialDim+d] = oi[d] - ij[d]
		}
	}

	// Lookups for this call are complete; a downsampling operator now
	// advances the handle, exactly once.
	if !q.cfg.OutputSame {
		if err := h.Step(); err != nil {
			return nil, err
		}
	}

	out := tensor.Zeros(tensor.Shape{batch, q.cfg.OutChannels, q.cfg.OutPoints})
	if n > 0 {
		// Learned filter matrices scaled by the bump window per pair.
		filt := q.filter.Evaluate(offsets) // (n, in_channels, out_channels)
		filtData := filt.Data()
		matSize := q.cfg.InChannels * q.cfg.OutChannels
		for p := 0; p < n; p++ {
			bump := Bump(BumpArg(offData[p*q.cfg.SpatialDim:(p+1)*q.cfg.SpatialDim]), q.decay)
			row := filtData[p*matSize : (p+1)*matSize]
			for k := range row {
				row[k] *= bump
			}
		}

		// Scatter-accumulate: slots are keyed by (batch, out_channel),
		// so parallel workers never share an accumulation target.
		featData := features.Data()
		outData := out.Data()
		inC, inP := q.cfg.InChannels, q.cfg.InPoints
		outC, outP := q.cfg.OutChannels, q.cfg.OutPoints
		parallel.ForBatch(batch, outC, func(b, o int) {
			dst := outData[(b*outC+o)*outP : (b*outC+o+1)*outP]
			src := featData[b*inC*inP : (b+1)*inC*inP]
			for p := 0; p < n; p++ {
				acc := 0.0
				base := p * matSize
				j := idx.in[p]
				for c := 0; c < inC; c++ {
					acc += filtData[base+c*outC+o] * src[c*inP+j]
				}
				dst[idx.out[p]] += pairWeights[p] * acc
			}
		}, q.par)
	}

	if q.bias != nil {
		out = out.Add(q.bias.Tensor())
	}
	return out, nil
}
