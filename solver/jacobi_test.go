// Copyright 2016 The Richards Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solver

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/richards/field"
	"github.com/cpmech/richards/voxel"
)

func uniformColumn(nz int, h, k, thetaS, thetaR, alpha, n float64) (*field.Field, error) {
	mask := voxel.NewMask(voxel.Shape{1, 1, nz})
	size := mask.Shape.Len()
	fill := func(v float64) []float64 {
		out := make([]float64, size)
		for i := range out {
			out[i] = v
		}
		return out
	}
	return field.New(mask, [3]float64{0.1, 0.1, 0.1}, field.Input{
		H: fill(h), K: fill(k), ThetaS: fill(thetaS), ThetaR: fill(thetaR),
		Alpha: fill(alpha), N: fill(n),
	})
}

func Test_steady01(tst *testing.T) {

	chk.PrintTitle("steady01: ponding invariant never violated")

	f, err := uniformColumn(4, 0.0, 1e-5, 0.43, 0.045, 1.5, 1.6)
	if err != nil {
		tst.Fatalf("unexpected error: %v", err)
	}
	q := []float64{1e-6}
	err = RunSteady(f, SteadyOptions{Top: "flux", Bottom: "free", Q: q, Iters: 50})
	if err != nil {
		tst.Fatalf("unexpected error: %v", err)
	}
	for i, active := range f.Mask.Data {
		if active && f.H[i] > 1e-12 {
			tst.Errorf("ponding invariant violated at %d: h=%v", i, f.H[i])
		}
	}
	if f.Dead() {
		tst.Errorf("solve should not have diverged")
	}
}

func Test_steady02(tst *testing.T) {

	chk.PrintTitle("steady02: void cells remain untouched")

	mask := voxel.NewMask(voxel.Shape{2, 2, 5})
	mask.Set(1, 1, 2, false)
	n := mask.Shape.Len()
	fill := func(v float64) []float64 {
		out := make([]float64, n)
		for i := range out {
			out[i] = v
		}
		return out
	}
	f, err := field.New(mask, [3]float64{0.1, 0.1, 0.1}, field.Input{
		H: fill(-1.0), K: fill(1e-5), ThetaS: fill(0.43), ThetaR: fill(0.045),
		Alpha: fill(1.5), N: fill(1.6),
	})
	if err != nil {
		tst.Fatalf("unexpected error: %v", err)
	}
	q := fill(1e-6)[:4]
	err = RunSteady(f, SteadyOptions{Top: "flux", Bottom: "free", Q: q, Iters: 20})
	if err != nil {
		tst.Fatalf("unexpected error: %v", err)
	}
	voidIdx := mask.Index(1, 1, 2)
	if !math.IsNaN(f.H[voidIdx]) {
		tst.Errorf("void cell must remain NaN, got %v", f.H[voidIdx])
	}
}

func Test_steady03(tst *testing.T) {

	chk.PrintTitle("steady03: top=zero equilibrates toward the Dirichlet head")

	f, err := uniformColumn(3, -5.0, 1e-5, 0.43, 0.045, 1.5, 1.6)
	if err != nil {
		tst.Fatalf("unexpected error: %v", err)
	}
	err = RunSteady(f, SteadyOptions{Top: "zero", Bottom: "zero", Iters: 2000, Lr: 0.8})
	if err != nil {
		tst.Fatalf("unexpected error: %v", err)
	}
	for i, active := range f.Mask.Data {
		if active {
			chk.Scalar(tst, "h -> 0", 1e-3, f.H[i], 0.0)
		}
	}
}

func Test_unsteady01(tst *testing.T) {

	chk.PrintTitle("unsteady01: one backward-Euler step does not diverge")

	f, err := uniformColumn(4, -2.0, 1e-5, 0.43, 0.045, 1.5, 1.6)
	if err != nil {
		tst.Fatalf("unexpected error: %v", err)
	}
	q := []float64{0.0}
	err = RunUnsteady(f, 60.0, UnsteadyOptions{Top: "flux", Bottom: "free", Q: q})
	if err != nil {
		tst.Fatalf("unexpected error: %v", err)
	}
	if f.Dead() {
		tst.Errorf("solve should not have diverged")
	}
}

func Test_steady04(tst *testing.T) {

	chk.PrintTitle("steady04: closed column equilibrates to zero vertical flux")

	nz := 5
	dz := 0.1
	f, err := uniformColumn(nz, -1.0, 1e-5, 0.43, 0.045, 1.5, 1.6)
	if err != nil {
		tst.Fatalf("unexpected error: %v", err)
	}
	err = RunSteady(f, SteadyOptions{
		Top: "flux", Bottom: "zero", Q: []float64{0.0}, Iters: 3000, Lr: 0.8,
	})
	if err != nil {
		tst.Fatalf("unexpected error: %v", err)
	}
	if f.Dead() {
		tst.Fatalf("solve should not have diverged")
	}

	k := f.KField(0)
	for iz := 0; iz < nz-1; iz++ {
		kFace := 0.5 * (k[iz] + k[iz+1])
		flux := kFace * ((f.H[iz+1]-f.H[iz])/dz + 1.0)
		chk.Scalar(tst, "vertical flux -> 0", 1e-6, flux, 0.0)
	}
}

func Test_unsteady02(tst *testing.T) {

	chk.PrintTitle("unsteady02: mass balance over a closed-boundary sink step")

	nz := 5
	dz := 0.1
	mask := voxel.NewMask(voxel.Shape{1, 1, nz})
	n := mask.Shape.Len()
	fillv := func(v float64) []float64 {
		out := make([]float64, n)
		for i := range out {
			out[i] = v
		}
		return out
	}

	// a hydrostatic profile anchored at the bottom's zero-flux boundary,
	// so the only source of mass change is the Feddes sink below.
	h := make([]float64, n)
	for iz := 0; iz < nz; iz++ {
		h[iz] = -1.0 - float64(iz)*dz
	}

	f, err := field.New(mask, [3]float64{0.1, 0.1, dz}, field.Input{
		H: h, K: fillv(1e-5), ThetaS: fillv(0.43), ThetaR: fillv(0.045),
		Alpha: fillv(1.5), N: fillv(1.6),
		B:  fillv(0.02),
		A0: fillv(1.0), A1: fillv(0.0), A2: fillv(-5.0), A3: fillv(-8.0),
	})
	if err != nil {
		tst.Fatalf("unexpected error: %v", err)
	}

	thetaOld := f.ThetaField(0)
	sumOld := 0.0
	for _, v := range thetaOld {
		sumOld += v
	}

	tp := []float64{0.1}
	sumSink := 0.0
	for _, v := range f.Sink(tp, 0) {
		sumSink += v
	}

	dt := 2.0
	err = RunUnsteady(f, dt, UnsteadyOptions{
		Top: "flux", Bottom: "zero", Q: []float64{0.0}, Tp: tp, Iters: 200,
	})
	if err != nil {
		tst.Fatalf("unexpected error: %v", err)
	}
	if f.Dead() {
		tst.Fatalf("solve should not have diverged")
	}

	sumNew := 0.0
	for _, v := range f.ThetaField(0) {
		sumNew += v
	}

	chk.Scalar(tst, "mass balance", 5e-3, sumNew-sumOld, -dt*sumSink)
}

func Test_invalid01(tst *testing.T) {

	chk.PrintTitle("invalid01: flux top requires Q")

	f, err := uniformColumn(2, -1.0, 1e-5, 0.43, 0.045, 1.5, 1.6)
	if err != nil {
		tst.Fatalf("unexpected error: %v", err)
	}
	if err := RunSteady(f, SteadyOptions{Top: "flux"}); err == nil {
		tst.Errorf("expected an error when top=flux and Q is nil")
	}
}
