// Copyright 2016 The Richards Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package et

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

func Test_mj2mm01(tst *testing.T) {
	chk.PrintTitle("mj2mm01")
	chk.Scalar(tst, "MJ2MM(1)", 1e-12, MJ2MM(1.0), 0.408)
}

func Test_gamma01(tst *testing.T) {
	chk.PrintTitle("gamma01")
	chk.Scalar(tst, "gamma(101.3)", 1e-12, Gamma(101.3), 6.65e-4*101.3)
}

func Test_vapor01(tst *testing.T) {
	chk.PrintTitle("vapor01: e0 increases with temperature")
	if SatVaporPressure(25.0) <= SatVaporPressure(10.0) {
		tst.Errorf("saturation vapour pressure should increase with temperature")
	}
	if ActualVaporPressure(20.0, 50.0) >= SatVaporPressure(20.0) {
		tst.Errorf("actual vapour pressure should not exceed saturation at RH<100")
	}
}

func Test_wind01(tst *testing.T) {
	chk.PrintTitle("wind01")
	u2 := WindAt2m(3.0, 10.0)
	if u2 <= 0 {
		tst.Errorf("expected a positive corrected wind speed, got %v", u2)
	}
}

func Test_netrad01(tst *testing.T) {
	chk.PrintTitle("netrad01: net radiation is positive on a sunny equatorial day")
	rn := NetRadiation(180, 0.0, 10.0, 1.5, 30.0, 20.0)
	if rn <= 0 {
		tst.Errorf("expected positive net radiation, got %v", rn)
	}
}

func Test_kc01(tst *testing.T) {
	chk.PrintTitle("kc01: constant Kc with no height/wind correction")
	m := &ETModule{Kc: 1.0, H: 3.0}
	chk.Scalar(tst, "Kc(u2=2,RHmin=45)", 1e-12, m.CropCoefficient(2.0, 45.0, nil), 1.0)
}

func Test_kc02(tst *testing.T) {
	chk.PrintTitle("kc02: staged Kc schedule picks the right segment")
	m := &ETModule{H: 1.2, Stage: &Stage{
		Kc: [3]float64{0.3, 1.2, 0.6},
		L:  [4]float64{20, 30, 40, 20},
	}}
	d0 := 5.0
	chk.Scalar(tst, "initial stage", 1e-12, m.CropCoefficient(2.0, 45.0, &d0), 0.3)
	dMid := 60.0
	got := m.CropCoefficient(2.0, 45.0, &dMid)
	chk.Scalar(tst, "mid stage", 1e-12, got, 1.2)
}

func Test_campbell01(tst *testing.T) {
	chk.PrintTitle("campbell01: Tp+E reproduces ETc")
	m := &ETModule{LAI: []float64{0.0, 1.0, 3.0}}
	etc := []float64{1e-7, 1e-7, 1e-7}
	e, tp := m.Campbell(etc)
	for i := range etc {
		chk.Scalar(tst, "E+Tp=ETc", 1e-18, e[i]+tp[i], etc[i])
	}
	chk.Scalar(tst, "no canopy -> all evaporation", 1e-18, tp[0], 0.0)
}
