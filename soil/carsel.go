// Copyright 2016 The Richards Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package soil implements the Carsel-Parrish (1988) USDA soil-texture
// parameter sampler: rejection sampling of (Ks, theta_r, alpha, n) van
// Genuchten quadruples from a correlated four-dimensional Gaussian
// passed through a per-texture transform, one recipe per texture
// class, transcribed from the reference model's lookup tables.
package soil

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"

	"github.com/cpmech/richards/ensemble"
)

// Texture describes one USDA soil class's Carsel-Parrish sampling
// recipe: the correlated-normal parameters (Mu, Tmat, where
// y = Mu + z@Tmat for z ~ N(0,1)^4), an optional pre-transform
// truncation of y, the nonlinear transform from y to the physical
// quadruple, and the physical acceptance window.
type Texture struct {
	Mu       [4]float64
	Tmat     [4][4]float64
	Truncate func(y [4]float64) bool
	Physical func(y [4]float64) (ks, thetaR, alpha, n float64)
	Accept   func(ks, thetaR, alpha, n float64) bool
}

// maxAttemptsPerSample bounds the rejection loop so a pathological
// Texture cannot hang the caller forever.
const maxAttemptsPerSample = 20000

// Sample draws `num` accepted (Ks, theta_r, alpha, n) quadruples from
// tex via rejection sampling, in SI units (Ks in m/s, alpha in 1/m).
// stream defaults to ensemble.DefaultStream when nil.
func Sample(tex Texture, num int, stream ensemble.Stream) ([][4]float64, error) {
	if stream == nil {
		stream = ensemble.DefaultStream
	}
	out := make([][4]float64, 0, num)
	attempts := 0
	for len(out) < num {
		attempts++
		if attempts > num*maxAttemptsPerSample {
			return nil, chk.Err("soil: rejection sampling did not converge after %d draws", attempts)
		}
		var z [4]float64
		for i := range z {
			// standard normal via Box-Muller from two uniform draws
			u1, u2 := stream.Float64(0, 1), stream.Float64(0, 1)
			z[i] = math.Sqrt(-2.0*math.Log(1.0-u1)) * math.Cos(2.0*math.Pi*u2)
		}
		y := correlate(tex.Mu, tex.Tmat, z)
		if tex.Truncate != nil && !tex.Truncate(y) {
			continue
		}
		ks, thetaR, alpha, n := tex.Physical(y)
		if !tex.Accept(ks, thetaR, alpha, n) {
			continue
		}
		out = append(out, [4]float64{ks / (100.0 * 60.0 * 60.0), thetaR, alpha * 100.0, n})
	}
	return out, nil
}

// correlate computes y = mu + z@T via gosl/la, i.e. y[i] = mu[i] +
// sum_j z[j]*T[j][i].
func correlate(mu [4]float64, tMat [4][4]float64, z [4]float64) [4]float64 {
	a := la.MatAlloc(4, 4)
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			a[i][j] = tMat[j][i]
		}
	}
	y := make([]float64, 4)
	la.MatVecMul(y, 1.0, a, z[:])
	var out [4]float64
	for i := range out {
		out[i] = mu[i] + y[i]
	}
	return out
}
