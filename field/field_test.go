// Copyright 2016 The Richards Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package field

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/richards/voxel"
)

func sandColumn(shape voxel.Shape) *voxel.Mask {
	return voxel.NewMask(shape)
}

func fill(n int, v float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}

func Test_field01(tst *testing.T) {

	chk.PrintTitle("field01: construction and void invariance")

	mask := sandColumn(voxel.Shape{2, 2, 5})
	mask.Set(1, 1, 2, false)
	n := mask.Shape.Len()

	f, err := New(mask, [3]float64{0.1, 0.1, 0.1}, Input{
		H:      fill(n, -1.0),
		K:      fill(n, 1e-5),
		ThetaS: fill(n, 0.43),
		ThetaR: fill(n, 0.045),
		Alpha:  fill(n, 1.5),
		N:      fill(n, 1.6),
	})
	if err != nil {
		tst.Fatalf("unexpected error: %v", err)
	}

	voidIdx := mask.Index(1, 1, 2)
	if !math.IsNaN(f.H[voidIdx]) {
		tst.Errorf("void cell should carry NaN sentinel, got %v", f.H[voidIdx])
	}

	activeIdx := mask.Index(0, 0, 0)
	chk.Scalar(tst, "m default", 1e-12, f.M[activeIdx], 1.0-1.0/1.6)
	chk.Scalar(tst, "l default", 1e-12, f.L[activeIdx], 0.5)
}

func Test_field02(tst *testing.T) {

	chk.PrintTitle("field02: clone independence")

	mask := sandColumn(voxel.Shape{1, 1, 3})
	n := mask.Shape.Len()
	f, err := New(mask, [3]float64{0.1, 0.1, 0.1}, Input{
		H: fill(n, -1.0), K: fill(n, 1e-5), ThetaS: fill(n, 0.43),
		ThetaR: fill(n, 0.045), Alpha: fill(n, 1.5), N: fill(n, 1.6),
	})
	if err != nil {
		tst.Fatalf("unexpected error: %v", err)
	}

	g := f.Clone()
	g.H[0] = -99.0
	if f.H[0] == -99.0 {
		tst.Errorf("clone must not alias the source array")
	}
}

func Test_field03(tst *testing.T) {

	chk.PrintTitle("field03: conflicting root-stress parameterisation rejected")

	mask := sandColumn(voxel.Shape{1, 1, 1})
	n := mask.Shape.Len()
	_, err := New(mask, [3]float64{0.1, 0.1, 0.1}, Input{
		H: fill(n, -1.0), K: fill(n, 1e-5), ThetaS: fill(n, 0.43),
		ThetaR: fill(n, 0.045), Alpha: fill(n, 1.5), N: fill(n, 1.6),
		B:  fill(n, 1.0),
		A0: fill(n, 0), A1: fill(n, -0.5), A2: fill(n, -3), A3: fill(n, -8),
		H50: fill(n, -150), P: fill(n, 3),
	})
	if err == nil {
		tst.Errorf("expected an error when both Feddes and S-shaped parameters are supplied")
	}
}

func Test_field04(tst *testing.T) {

	chk.PrintTitle("field04: ponding clamp")

	mask := sandColumn(voxel.Shape{1, 1, 1})
	n := mask.Shape.Len()
	f, _ := New(mask, [3]float64{0.1, 0.1, 0.1}, Input{
		H: fill(n, 0.5), K: fill(n, 1e-5), ThetaS: fill(n, 0.43),
		ThetaR: fill(n, 0.045), Alpha: fill(n, 1.5), N: fill(n, 1.6),
	})
	f.ClampPonding()
	chk.Scalar(tst, "h clamped", 1e-15, f.H[0], 0.0)
}
