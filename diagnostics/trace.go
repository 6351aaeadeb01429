// Copyright 2016 The Richards Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package diagnostics plots ensemble mean/variance traces over the
// assimilation run, built on gosl/plt the way the teacher's
// constitutive-model packages plot their own derived curves.
package diagnostics

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/plt"
)

// MeanVarTrace plots the ensemble mean of one observed quantity, with
// dashed mean±stddev bounds, against time.
func MeanVarTrace(t, mean, variance []float64, label string) error {
	if len(t) != len(mean) || len(t) != len(variance) {
		return chk.Err("diagnostics: t, mean and variance must have the same length: %d, %d, %d",
			len(t), len(mean), len(variance))
	}
	upper := make([]float64, len(t))
	lower := make([]float64, len(t))
	for i := range t {
		sd := 0.0
		if variance[i] > 0 {
			sd = math.Sqrt(variance[i])
		}
		upper[i] = mean[i] + sd
		lower[i] = mean[i] - sd
	}
	plt.Plot(t, upper, "'k--', clip_on=0, lw=0.8")
	plt.Plot(t, lower, "'k--', clip_on=0, lw=0.8")
	plt.Plot(t, mean, io.Sf("'b-', clip_on=0, label='%s'", label))
	plt.Gll("$t$", label, "")
	return nil
}

// MeanVarTraceEnd saves the current figure and, if show, opens it.
func MeanVarTraceEnd(dirout, fname string, show bool) {
	plt.SaveD(dirout, fname)
	if show {
		plt.Show()
	}
}
