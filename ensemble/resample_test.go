// Copyright 2016 The Richards Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ensemble

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
)

// fixedStream hands out a pre-programmed sequence of fractions (each
// in [0,1]) mapped into the requested [lo,hi] interval, cycling once
// exhausted. It lets a test pin down exactly which Individuals a
// resampler draws without depending on any particular RNG's sequence.
type fixedStream struct {
	fracs []float64
	i     int
}

func (s *fixedStream) Float64(lo, hi float64) float64 {
	f := s.fracs[s.i%len(s.fracs)]
	s.i++
	return lo + f*(hi-lo)
}

func (s *fixedStream) Int(lo, hi int) int { return lo }

func Test_pf01(tst *testing.T) {

	chk.PrintTitle("pf01: a single Individual at weight 1 repopulates the whole ensemble")

	caps := stubCaps{}
	inds := []*Individual{
		newStubIndividual(caps, 1e-5, -1.0),
		newStubIndividual(caps, 1e-5, -2.0),
		newStubIndividual(caps, 1e-5, -3.0), // this one will match y exactly
		newStubIndividual(caps, 1e-5, -4.0),
	}
	e := &Ensemble{Individuals: inds}

	y := []float64{-3.0}
	r := [][]float64{{1e-6}} // tight enough that every mismatch underflows to likelihood 0

	out, err := PF{}.Recombine(e, y, r)
	if err != nil {
		tst.Fatalf("unexpected error: %v", err)
	}
	if len(out) != len(inds) {
		tst.Fatalf("expected %d outputs, got %d", len(inds), len(out))
	}
	for i, child := range out {
		chk.Scalar(tst, "child head", 1e-15, child.Field.H[0], -3.0)
		if child.Field == inds[2].Field {
			tst.Errorf("output %d aliases the source Field; PF must deep-copy", i)
		}
	}
}

func Test_mpf01(tst *testing.T) {

	chk.PrintTitle("mpf01: merging three copies of one Individual reproduces it")

	caps := stubCaps{}
	inds := []*Individual{
		newStubIndividual(caps, 3.0, -5.0),
		newStubIndividual(caps, 3.0, -5.0),
	}
	e := &Ensemble{Individuals: inds}

	y := []float64{-5.0}
	r := [][]float64{{1e-6}}

	out, err := MPF{}.Recombine(e, y, r)
	if err != nil {
		tst.Fatalf("unexpected error: %v", err)
	}
	if len(out) != len(inds) {
		tst.Fatalf("expected %d outputs, got %d", len(inds), len(out))
	}
	for i, child := range out {
		chk.Scalar(tst, "merged param", 1e-9, child.Params[0], 3.0)
		chk.Scalar(tst, "merged head", 1e-9, child.Field.H[0], -5.0)
		_ = i
	}
}

func Test_blx01(tst *testing.T) {

	chk.PrintTitle("blx01: BLX-alpha children stay within the parent spread")

	caps := stubCaps{}
	pa := newStubIndividual(caps, 1.0, -1.0)
	pb := newStubIndividual(caps, 5.0, -5.0)
	e := &Ensemble{
		Individuals: []*Individual{pa, pb},
		// first two draws: 0.9 picks index 1, 0.1 picks index 0,
		// so the one pair crosses pb against pa, not a parent with itself.
		Stream: &fixedStream{fracs: []float64{0.9, 0.1, 0.3, 0.7, 0.2, 0.8}},
	}

	y := []float64{-3.0}
	r := [][]float64{{1.0}} // loose: both parents must keep nonzero weight

	out, err := BLXAlpha{Alpha: 0.5}.Recombine(e, y, r)
	if err != nil {
		tst.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 2 {
		tst.Fatalf("expected 2 children, got %d", len(out))
	}

	checkBound := func(what string, c1, c2, child float64) {
		d := math.Abs(c1 - c2)
		lo, hi := math.Min(c1, c2)-d, math.Max(c1, c2)+d
		if child < lo || child > hi {
			tst.Errorf("%s child %v outside [%v,%v]", what, child, lo, hi)
		}
	}
	for _, child := range out {
		checkBound("param", pa.Params[0], pb.Params[0], child.Params[0])
		checkBound("head", pa.Field.H[0], pb.Field.H[0], child.Field.H[0])
	}
}
