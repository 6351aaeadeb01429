// Copyright 2016 The Richards Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package soil

import (
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/richards/ensemble"
)

func Test_sample01(tst *testing.T) {

	chk.PrintTitle("sample01: sand samples land in the physical acceptance window")

	stream := ensemble.NewSeededStream(1)
	samples, err := Sample(Sand, 20, stream)
	if err != nil {
		tst.Fatalf("unexpected error: %v", err)
	}
	if len(samples) != 20 {
		tst.Fatalf("expected 20 samples, got %d", len(samples))
	}
	for _, s := range samples {
		ks, thetaR, alpha, n := s[0], s[1], s[2], s[3]
		if ks <= 0 || ks >= 70.0/(100.0*60.0*60.0) {
			tst.Errorf("Ks out of SI-rescaled range: %v", ks)
		}
		if !between(thetaR, 0, 0.1) {
			tst.Errorf("theta_r out of range: %v", thetaR)
		}
		if !between(alpha, 0, 25.0) {
			tst.Errorf("alpha out of SI-rescaled range: %v", alpha)
		}
		if !between(n, 1.5, 4.0) {
			tst.Errorf("n out of range: %v", n)
		}
	}
}

func Test_sample02(tst *testing.T) {

	chk.PrintTitle("sample02: every texture table samples without error")

	stream := ensemble.NewSeededStream(2)
	textures := []Texture{Sand, SandyLoam, LoamySand, SiltLoam, Silt, Clay, SiltyClay, SandyClay, SiltyClayLoam, ClayLoam, SandyClayLoam, Loam}
	for i, tex := range textures {
		if _, err := Sample(tex, 3, stream); err != nil {
			tst.Errorf("texture %d failed to sample: %v", i, err)
		}
	}
}
