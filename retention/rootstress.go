// Copyright 2016 The Richards Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package retention

import "math"

// Feddes computes the piecewise-linear water-stress reduction factor
// F(h) in [0,1] on the four breakpoints a0 > a1 > a2 > a3: zero
// outside [a3,a0], unity on [a2,a1], linear on the two shoulders.
func Feddes(h, a0, a1, a2, a3 float64) float64 {
	switch {
	case h > a1 && h < a0:
		return (a0 - h) / (a0 - a1)
	case h <= a1 && h >= a2:
		return 1.0
	case h > a3 && h < a2:
		return (h - a3) / (a2 - a3)
	default:
		return 0.0
	}
}

// SShaped computes the logistic water-stress reduction factor
// 1/(1+|h/h50|^p).
func SShaped(h, h50, p float64) float64 {
	return 1.0 / (1.0 + math.Pow(math.Abs(h/h50), p))
}
