// Copyright 2016 The Richards Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package diagnostics

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/plt"
)

func Test_meanvar01(tst *testing.T) {

	chk.PrintTitle("meanvar01: mismatched trace lengths are rejected")

	err := MeanVarTrace([]float64{0, 1, 2}, []float64{0, 1}, []float64{0, 1, 2}, "$h$")
	if err == nil {
		tst.Fatalf("expected an error for mismatched lengths")
	}
}

func Test_meanvar02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("meanvar02")

	if !chk.Verbose {
		return
	}

	t := []float64{0, 1, 2, 3}
	mean := []float64{-50, -40, -35, -33}
	variance := []float64{4, 6, 5, 3}

	plt.SetForEps(1.2, 350)
	err := MeanVarTrace(t, mean, variance, "$h$")
	if err != nil {
		tst.Errorf("MeanVarTrace failed: %v", err)
		return
	}
	MeanVarTraceEnd("/tmp/richards", "diagnostics_meanvar02.eps", false)
}
