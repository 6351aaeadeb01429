// Copyright 2016 The Richards Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ensemble

import (
	"math"

	"github.com/cpmech/gosl/chk"
)

// Resampler is a pluggable recombination strategy for Ensemble.Step.
// Every variant shares the weight-and-draw prelude (weights, then a
// categorical draw against them) and differs only in how the drawn
// Individuals are recombined into the next generation.
type Resampler interface {
	Recombine(e *Ensemble, y []float64, r [][]float64) ([]*Individual, error)
}

// weights evaluates the likelihood of every Individual and normalises
// it into a categorical distribution, falling back to uniform weights
// when every likelihood is zero.
func weights(inds []*Individual, y []float64, r [][]float64) []float64 {
	w := make([]float64, len(inds))
	sum := 0.0
	for i, ind := range inds {
		w[i] = ind.Likelihood(y, r)
		sum += w[i]
	}
	if sum == 0 {
		u := 1.0 / float64(len(w))
		for i := range w {
			w[i] = u
		}
		return w
	}
	for i := range w {
		w[i] /= sum
	}
	return w
}

// drawCategorical draws one index from the categorical distribution
// described by w, via inverse-CDF sampling against a single uniform draw.
func drawCategorical(w []float64, stream Stream) int {
	u := stream.Float64(0, 1)
	cum := 0.0
	for i, wi := range w {
		cum += wi
		if u <= cum {
			return i
		}
	}
	return len(w) - 1
}

// PF is the particle filter: the new ensemble is a deep copy of each
// of N Individuals drawn with replacement from the weighted
// categorical distribution, in draw order.
type PF struct{}

// Recombine implements Resampler.
func (PF) Recombine(e *Ensemble, y []float64, r [][]float64) ([]*Individual, error) {
	w := weights(e.Individuals, y, r)
	stream := e.streamOrDefault()
	n := len(e.Individuals)
	out := make([]*Individual, n)
	for k := 0; k < n; k++ {
		idx := drawCategorical(w, stream)
		out[k] = e.Individuals[idx].Clone()
	}
	return out, nil
}

// mpfDefaultA are the default merging weights a1,a2,a3, satisfying
// sum(a)=1 and sum(a^2)=1, which preserve first and second moments
// under the merge.
var mpfDefaultA = [3]float64{0.75, (math.Sqrt(13) + 1) / 8, -(math.Sqrt(13) - 1) / 8}

// MPF is the merging particle filter: three independent categorical
// draws per output slot are combined with weights A.
type MPF struct {
	A [3]float64 // zero value falls back to mpfDefaultA
}

func (m MPF) weights() [3]float64 {
	if m.A == ([3]float64{}) {
		return mpfDefaultA
	}
	return m.A
}

// Recombine implements Resampler.
func (m MPF) Recombine(e *Ensemble, y []float64, r [][]float64) ([]*Individual, error) {
	w := weights(e.Individuals, y, r)
	stream := e.streamOrDefault()
	n := len(e.Individuals)
	a := m.weights()

	draws := make([]int, 3*n)
	for i := range draws {
		draws[i] = drawCategorical(w, stream)
	}

	out := make([]*Individual, n)
	for k := 0; k < n; k++ {
		first := e.Individuals[draws[k]]
		second := e.Individuals[draws[n+k]]
		third := e.Individuals[draws[2*n+k]]
		merged, err := mergeThree(first, second, third, a)
		if err != nil {
			return nil, err
		}
		merged.Field.ClampPonding()
		out[k] = merged
	}
	return out, nil
}

// mergeThree computes a1*x+a2*y+a3*z over params (and, unless
// Headless, head), re-running install.
func mergeThree(x, y, z *Individual, a [3]float64) (*Individual, error) {
	params := make([]float64, len(x.Params))
	for i := range params {
		params[i] = a[0]*x.Params[i] + a[1]*y.Params[i] + a[2]*z.Params[i]
	}
	var h []float64
	if x.Headless {
		h = append([]float64(nil), x.Field.H...)
	} else {
		h = make([]float64, len(x.Field.H))
		for i := range h {
			h[i] = a[0]*x.Field.H[i] + a[1]*y.Field.H[i] + a[2]*z.Field.H[i]
		}
	}
	f, err := x.Capabilities.Install(params, h)
	if err != nil {
		return nil, err
	}
	return &Individual{Params: params, Field: f, ET: x.ET, Capabilities: x.Capabilities, Headless: x.Headless}, nil
}

// BLXAlpha is the full BLX-α crossover: parent pairs are crossed over
// coordinate-wise on both params and head voxels. N must be even.
type BLXAlpha struct {
	Alpha float64
}

// Recombine implements Resampler.
func (b BLXAlpha) Recombine(e *Ensemble, y []float64, r [][]float64) ([]*Individual, error) {
	return blxRecombine(e, y, r, b.Alpha, true)
}

// BLXAlphaNoH is the head-preserving BLX-α crossover: crossover
// applies only to params; each child inherits the head of its
// corresponding parent. N must be even.
type BLXAlphaNoH struct {
	Alpha float64
}

// Recombine implements Resampler.
func (b BLXAlphaNoH) Recombine(e *Ensemble, y []float64, r [][]float64) ([]*Individual, error) {
	return blxRecombine(e, y, r, b.Alpha, false)
}

func blxRecombine(e *Ensemble, y []float64, r [][]float64, alpha float64, crossH bool) ([]*Individual, error) {
	n := len(e.Individuals)
	if n%2 != 0 {
		return nil, chk.Err("ensemble: BLX-alpha requires an even ensemble size, got %d", n)
	}
	w := weights(e.Individuals, y, r)
	stream := e.streamOrDefault()

	draws := make([]int, n)
	for i := range draws {
		draws[i] = drawCategorical(w, stream)
	}

	out := make([]*Individual, n)
	for j := 0; j < n/2; j++ {
		pa := e.Individuals[draws[2*j]]
		pb := e.Individuals[draws[2*j+1]]
		childA, childB, err := blxPair(pa, pb, alpha, crossH, stream)
		if err != nil {
			return nil, err
		}
		childA.Field.ClampPonding()
		childB.Field.ClampPonding()
		out[2*j] = childA
		out[2*j+1] = childB
	}
	return out, nil
}

func blxPair(pa, pb *Individual, alpha float64, crossH bool, stream Stream) (*Individual, *Individual, error) {
	paramsA := make([]float64, len(pa.Params))
	paramsB := make([]float64, len(pa.Params))
	for c := range paramsA {
		paramsA[c], paramsB[c] = blxCoordinate(pa.Params[c], pb.Params[c], alpha, stream)
	}

	var hA, hB []float64
	if crossH {
		hA = make([]float64, len(pa.Field.H))
		hB = make([]float64, len(pa.Field.H))
		for i := range hA {
			hA[i], hB[i] = blxCoordinate(pa.Field.H[i], pb.Field.H[i], alpha, stream)
		}
	} else {
		hA = append([]float64(nil), pa.Field.H...)
		hB = append([]float64(nil), pb.Field.H...)
	}

	fa, err := pa.Capabilities.Install(paramsA, hA)
	if err != nil {
		return nil, nil, err
	}
	fb, err := pb.Capabilities.Install(paramsB, hB)
	if err != nil {
		return nil, nil, err
	}
	childA := &Individual{Params: paramsA, Field: fa, ET: pa.ET, Capabilities: pa.Capabilities, Headless: pa.Headless}
	childB := &Individual{Params: paramsB, Field: fb, ET: pb.ET, Capabilities: pb.Capabilities, Headless: pb.Headless}
	return childA, childB, nil
}

// blxCoordinate samples the two BLX-alpha children for one scalar
// coordinate of a parent pair.
func blxCoordinate(c1, c2, alpha float64, stream Stream) (child1, child2 float64) {
	d := math.Abs(c1 - c2)
	mid := 0.5 * (c1 + c2)
	lo := mid - (0.5+alpha)*d
	hi := mid + (0.5+alpha)*d
	return stream.Float64(lo, hi), stream.Float64(lo, hi)
}
