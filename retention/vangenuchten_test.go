// Copyright 2016 The Richards Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package retention

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
)

func Test_vg01(tst *testing.T) {

	// round trip: h(theta(h)) ~= h, spec.md Testable Property 1
	chk.PrintTitle("vg01: round trip")

	alpha, n := 2.0, 1.8
	m := 1.0 - 1.0/n
	thetaS, thetaR := 0.43, 0.045

	for _, h := range []float64{-10.0, -5.0, -1.0, -0.1, -0.001} {
		theta := Theta(h, alpha, n, m, thetaS, thetaR)
		hBack := H(theta, alpha, n, m, thetaS, thetaR)
		chk.Scalar(tst, "h round trip", 1e-9, hBack, h)
	}
}

func Test_vg02(tst *testing.T) {

	// monotonicity: Se and K non-decreasing in h, property 2
	chk.PrintTitle("vg02: monotonicity")

	alpha, n := 1.5, 1.6
	m := 1.0 - 1.0/n
	ks := 1.0e-5
	l := 0.5

	prevSe, prevK := -1.0, -1.0
	for h := -20.0; h <= 0.0; h += 0.5 {
		se := Se(h, alpha, n, m)
		k := K(h, ks, alpha, n, m, l)
		if se < prevSe-1e-12 {
			tst.Errorf("Se not monotone at h=%v", h)
		}
		if k < prevK-1e-12 {
			tst.Errorf("K not monotone at h=%v", h)
		}
		prevSe, prevK = se, k
	}
	chk.Scalar(tst, "Se(0)", 1e-12, Se(0, alpha, n, m), 1.0)
}

func Test_vg03(tst *testing.T) {

	chk.PrintTitle("vg03: Cw at h=0")

	c := Cw(0, 1.5, 1.6, 0.43, 0.045)
	chk.Scalar(tst, "Cw(0)", 1e-15, c, 0.0)
}

func Test_feddes01(tst *testing.T) {

	chk.PrintTitle("feddes01")

	a0, a1, a2, a3 := 0.0, -0.5, -3.0, -8.0

	chk.Scalar(tst, "F(above a0)", 1e-15, Feddes(0.1, a0, a1, a2, a3), 0.0)
	chk.Scalar(tst, "F(plateau)", 1e-15, Feddes(-1.0, a0, a1, a2, a3), 1.0)
	chk.Scalar(tst, "F(below a3)", 1e-15, Feddes(-9.0, a0, a1, a2, a3), 0.0)

	mid := Feddes(-0.25, a0, a1, a2, a3)
	if mid <= 0.0 || mid >= 1.0 {
		tst.Errorf("F in upper shoulder should lie strictly in (0,1), got %v", mid)
	}
}

func Test_sshaped01(tst *testing.T) {

	chk.PrintTitle("sshaped01")

	f := SShaped(-150.0, -150.0, 3.0)
	chk.Scalar(tst, "F(h50)", 1e-12, f, 0.5)

	f0 := SShaped(0, -150.0, 3.0)
	chk.Scalar(tst, "F(0)", 1e-12, f0, 1.0)

	if math.IsNaN(f) {
		tst.Errorf("unexpected NaN")
	}
}
