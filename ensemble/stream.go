// Copyright 2016 The Richards Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ensemble

import (
	"math/rand"

	"github.com/cpmech/gosl/rnd"
)

// Stream is the source of randomness consumed by the resamplers: one
// uniform draw per categorical pick and two per BLX-α coordinate. All
// draws for one Ensemble.Step happen on a single goroutine (in
// StepParallel, after the forward fan-out has finished), so a Stream
// need not be safe for concurrent use.
type Stream interface {
	Float64(lo, hi float64) float64
	Int(lo, hi int) int
}

// processStream is the default Stream, backed by gosl/rnd's
// process-wide generator (spec design note: "random-number generation
// uses the process-wide default stream").
type processStream struct{}

func (processStream) Float64(lo, hi float64) float64 { return rnd.Float64(lo, hi) }
func (processStream) Int(lo, hi int) int              { return rnd.Int(lo, hi) }

// DefaultStream is the package-wide Stream used when a constructor is
// given a nil Stream.
var DefaultStream Stream = processStream{}

// seededStream is a locally-owned generator for reproducible runs,
// independent of the process-wide stream.
type seededStream struct {
	r *rand.Rand
}

// NewSeededStream returns a Stream backed by a locally-owned
// math/rand generator, for callers that need a resampling run to be
// reproducible independently of the process-wide stream.
func NewSeededStream(seed int64) Stream {
	return &seededStream{r: rand.New(rand.NewSource(seed))}
}

func (s *seededStream) Float64(lo, hi float64) float64 {
	return lo + s.r.Float64()*(hi-lo)
}

func (s *seededStream) Int(lo, hi int) int {
	return lo + s.r.Intn(hi-lo)
}
