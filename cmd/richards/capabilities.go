// Copyright 2016 The Richards Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"github.com/cpmech/richards/ensemble"
	"github.com/cpmech/richards/field"
	"github.com/cpmech/richards/voxel"
)

// richardsCapabilities is the Capabilities implementation the CLI
// driver installs into every ensemble member: params carries the five
// uniform van Genuchten parameters (Ks, ThetaS, ThetaR, Alpha, N),
// Observe reports the matric potential at one sensor cell, and
// CheckConstraints rejects a draw whose shape parameter n has fallen
// to or below 1 (the inverse-Se formula is undefined there).
type richardsCapabilities struct {
	mask   *voxel.Mask
	size   [3]float64
	sensor int
}

var _ ensemble.Capabilities = (*richardsCapabilities)(nil)

func (c *richardsCapabilities) Install(params, h []float64) (*field.Field, error) {
	n := c.mask.Shape.Len()
	ks, thetaS, thetaR, alpha, vgN := params[0], params[1], params[2], params[3], params[4]
	in := field.Input{
		H:      append([]float64(nil), h...),
		K:      fill(n, ks),
		ThetaS: fill(n, thetaS),
		ThetaR: fill(n, thetaR),
		Alpha:  fill(n, alpha),
		N:      fill(n, vgN),
	}
	return field.New(c.mask, c.size, in)
}

func (c *richardsCapabilities) Observe(f *field.Field) []float64 {
	return []float64{f.H[c.sensor]}
}

func (c *richardsCapabilities) CheckConstraints(f *field.Field) bool {
	for _, v := range f.N {
		if v <= 1.0 {
			return false
		}
	}
	return true
}
