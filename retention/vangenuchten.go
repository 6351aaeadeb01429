// Copyright 2016 The Richards Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package retention implements the van Genuchten soil-water retention
// closure and the Feddes / S-shaped plant root-uptake stress
// functions. These are pointwise scalar formulas, applied by callers
// over the active region of a voxel-masked field.
package retention

import "math"

// Se computes the effective saturation Se = (1+|alpha*h|^n)^-m.
func Se(h, alpha, n, m float64) float64 {
	return math.Pow(1.0+math.Pow(math.Abs(alpha*h), n), -m)
}

// Theta computes the volumetric water content from h.
func Theta(h, alpha, n, m, thetaS, thetaR float64) float64 {
	se := Se(h, alpha, n, m)
	return (thetaS-thetaR)*se + thetaR
}

// H inverts the retention curve: given theta it returns the matric
// potential h. Se=1 maps to h=0 and Se=0 maps to h=-1e10, matching the
// two degenerate branches of the closed-form inverse.
func H(theta, alpha, n, m, thetaS, thetaR float64) float64 {
	se := (theta - thetaR) / (thetaS - thetaR)
	switch {
	case se == 1.0:
		return 0.0
	case se == 0.0:
		return -1.0e10
	default:
		return -math.Pow(math.Pow(se, -1.0/m)-1.0, 1.0/n) / alpha
	}
}

// K computes the unsaturated hydraulic conductivity from the
// saturated conductivity ks and the current matric potential h.
func K(h, ks, alpha, n, m, l float64) float64 {
	se := Se(h, alpha, n, m)
	return ks * math.Pow(se, l) * math.Pow(1.0-math.Pow(1.0-math.Pow(se, 1.0/m), m), 2.0)
}

// Cw computes the specific moisture capacity dTheta/dh. Cw is defined
// for h<0; at h=0 it evaluates to zero (the field is saturated and the
// curve is locally flat there).
func Cw(h, alpha, n, thetaS, thetaR float64) float64 {
	if h == 0.0 {
		return 0.0
	}
	num := math.Pow(alpha, n) * (thetaS - thetaR) * (n - 1.0) * math.Pow(-h, n-1.0)
	den := math.Pow(1.0+math.Pow(-alpha*h, n), 2.0-1.0/n)
	return num / den
}
