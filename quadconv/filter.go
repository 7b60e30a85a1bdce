// Copyright 2026 The QuadConv Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package quadconv

import (
	"fmt"

	"github.com/quadconv-ml/quadconv/nn"
	"github.com/quadconv-ml/quadconv/tensor"
)

// Filter modes supported by NewFilter.
const (
	FilterModeSingle  = "single"   // one network outputs in*out values per offset
	FilterModeShareIn = "share_in" // one network per output channel, each outputs in values
	FilterModeNested  = "nested"   // one network per (input, output) channel pair, scalar output
)

// Filter maps a batch of spatial offsets to per-offset convolution
// weight matrices.
//
// Evaluate takes offsets shaped (n, spatial_dim) and returns a tensor
// shaped (n, in_channels, out_channels). The three modes structure
// their sub-networks differently but share this contract, so the
// operator treats them uniformly.
type Filter interface {
	Evaluate(offsets *tensor.Tensor) *tensor.Tensor
	Parameters() []*nn.Parameter
}

// NewFilter builds a filter network for the given mode.
//
// filterSeq lists the hidden-layer widths of each sub-network; the
// input width is always spatialDim and the output width depends on the
// mode. Unsupported mode strings fail with a configuration error.
func NewFilter(mode string, spatialDim int, filterSeq []int, inChannels, outChannels int) (Filter, error) {
	switch mode {
	case FilterModeSingle:
		return &singleFilter{
			mlp:         buildMLP(mlpWidths(spatialDim, filterSeq, inChannels*outChannels)),
			inChannels:  inChannels,
			outChannels: outChannels,
		}, nil

	case FilterModeShareIn:
		mlps := make([]*nn.Sequential, outChannels)
		for o := range mlps {
			mlps[o] = buildMLP(mlpWidths(spatialDim, filterSeq, inChannels))
		}
		return &shareInFilter{
			mlps:        mlps,
			inChannels:  inChannels,
			outChannels: outChannels,
		}, nil

	case FilterModeNested:
		mlps := make([]*nn.Sequential, inChannels*outChannels)
		for k := range mlps {
			mlps[k] = buildMLP(mlpWidths(spatialDim, filterSeq, 1))
		}
		return &nestedFilter{
			mlps:        mlps,
			inChannels:  inChannels,
			outChannels: outChannels,
		}, nil

	default:
		return nil, fmt.Errorf("quadconv: filter mode %q is not supported", mode)
	}
}

// mlpWidths assembles the full layer-width sequence of one sub-network.
func mlpWidths(spatialDim int, filterSeq []int, outWidth int) []int {
	widths := make([]int, 0, len(filterSeq)+2)
	widths = append(widths, spatialDim)
	widths = append(widths, filterSeq...)
	widths = append(widths, outWidth)
	return widths
}

// buildMLP stacks bias-free linear layers with sine activations between
// them; the final layer stays linear.
func buildMLP(widths []int) *nn.Sequential {
	mlp := nn.NewSequential()
	for i := 0; i < len(widths)-2; i++ {
		mlp.Add(nn.NewLinear(widths[i], widths[i+1], false))
		mlp.Add(nn.NewSin())
	}
	mlp.Add(nn.NewLinear(widths[len(widths)-2], widths[len(widths)-1], false))
	return mlp
}

// singleFilter runs one network whose output row holds the whole
// (in_channels x out_channels) matrix for each offset.
type singleFilter struct {
	mlp         *nn.Sequential
	inChannels  int
	outChannels int
}

func (f *singleFilter) Evaluate(offsets *tensor.Tensor) *tensor.Tensor {
	n := offsets.Shape()[0]
	out := f.mlp.Forward(offsets) // (n, in*out)
	return out.Reshape(n, f.inChannels, f.outChannels)
}

func (f *singleFilter) Parameters() []*nn.Parameter {
	return f.mlp.Parameters()
}

// shareInFilter runs one network per output channel; network o produces
// the in_channels column of the matrix for that channel.
type shareInFilter struct {
	mlps        []*nn.Sequential
	inChannels  int
	outChannels int
}

func (f *shareInFilter) Evaluate(offsets *tensor.Tensor) *tensor.Tensor {
	n := offsets.Shape()[0]
	out := tensor.Zeros(tensor.Shape{n, f.inChannels, f.outChannels})
	for o, mlp := range f.mlps {
		cols := mlp.Forward(offsets) // (n, in)
		for p := 0; p < n; p++ {
			for i := 0; i < f.inChannels; i++ {
				out.Set(cols.At(p, i), p, i, o)
			}
		}
	}
	return out
}

func (f *shareInFilter) Parameters() []*nn.Parameter {
	var params []*nn.Parameter
	for _, mlp := range f.mlps {
		params = append(params, mlp.Parameters()...)
	}
	return params
}

// nestedFilter runs one scalar network per (input, output) channel pair.
type nestedFilter struct {
	mlps        []*nn.Sequential // indexed i*outChannels + o
	inChannels  int
	outChannels int
}

func (f *nestedFilter) Evaluate(offsets *tensor.Tensor) *tensor.Tensor {
	n := offsets.Shape()[0]
	out := tensor.Zeros(tensor.Shape{n, f.inChannels, f.outChannels})
	for i := 0; i < f.inChannels; i++ {
		for o := 0; o < f.outChannels; o++ {
			vals := f.mlps[i*f.outChannels+o].Forward(offsets) // (n, 1)
			for p := 0; p < n; p++ {
				out.Set(vals.At(p, 0), p, i, o)
			}
		}
	}
	return out
}

func (f *nestedFilter) Parameters() []*nn.Parameter {
	var params []*nn.Parameter
	for _, mlp := range f.mlps {
		params = append(params, mlp.Parameters()...)
	}
	return params
}
