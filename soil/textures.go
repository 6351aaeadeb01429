// Copyright 2016 The Richards Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package soil

import "math"

func logistic(y float64) float64 { return math.Exp(y) / (1.0 + math.Exp(y)) }

func between(x, lo, hi float64) bool { return lo < x && x < hi }

// Sand is the Carsel-Parrish recipe for the USDA sand texture class.
var Sand = Texture{
	Mu: [4]float64{-0.394, -3.12, 0.378, 0.978},
	Tmat: [4][4]float64{
		{1.04, 0, 0, 0},
		{-0.109, 0.182, 0, 0},
		{0.328, 0.258, 0.143, 0},
		{0.081, -0.047, -0.011, 0.017},
	},
	Physical: func(y [4]float64) (ks, thetaR, alpha, n float64) {
		return 70.0 * logistic(y[0]), math.Exp(y[1]), 0.25 * logistic(y[2]), math.Exp(y[3])
	},
	Accept: func(ks, thetaR, alpha, n float64) bool {
		return between(ks, 0, 70) && between(thetaR, 0, 0.1) && between(alpha, 0, 0.25) && between(n, 1.5, 4)
	},
}

// SandyLoam is the Carsel-Parrish recipe for sandy loam.
var SandyLoam = Texture{
	Mu: [4]float64{-2.49, 0.384, -0.937, 0.634},
	Tmat: [4][4]float64{
		{1.6, 0, 0, 0},
		{-0.153, 0.538, 0, 0},
		{0.037, 0.017, 0.014, 0},
		{0.211, -0.194, 0.019, 0.108},
	},
	Physical: func(y [4]float64) (ks, thetaR, alpha, n float64) {
		return 30.0 * logistic(y[0]), 0.11 * logistic(y[1]), 0.25 * logistic(y[2]), math.Exp(y[3])
	},
	Accept: func(ks, thetaR, alpha, n float64) bool {
		return between(ks, 0, 30) && between(thetaR, 0, 0.11) && between(alpha, 0, 0.25) && between(n, 1.35, 3)
	},
}

// LoamySand is the Carsel-Parrish recipe for loamy sand.
var LoamySand = Texture{
	Mu: [4]float64{-1.27, 0.075, 0.124, -1.11},
	Tmat: [4][4]float64{
		{1.48, 0, 0, 0},
		{-0.201, 0.522, 0, 0},
		{0.037, 0.017, 0.014, 0},
		{0.211, -0.194, 0.019, 0.108},
	},
	Physical: func(y [4]float64) (ks, thetaR, alpha, n float64) {
		return 51.0 * logistic(y[0]), 0.11 * logistic(y[1]), y[2], (5.0*math.Exp(y[3]) + 1.35) / (1.0 + math.Exp(y[3]))
	},
	Accept: func(ks, thetaR, alpha, n float64) bool {
		return between(ks, 0, 51) && between(thetaR, 0, 0.11) && between(alpha, 0, 0.25) && between(n, 1.35, 5)
	},
}

// SiltLoam is the Carsel-Parrish recipe for silt loam.
var SiltLoam = Texture{
	Mu: [4]float64{-2.19, 0.478, -4.1, -0.37},
	Tmat: [4][4]float64{
		{1.478, 0, 0, 0},
		{-0.201, 0.522, 0, 0},
		{0.525, 0.03, 0.082, 0},
		{0.353, -0.17, 0.234, 0.158},
	},
	Physical: func(y [4]float64) (ks, thetaR, alpha, n float64) {
		return math.Exp(y[0]), 0.11 * logistic(y[1]), math.Exp(y[2]), (2.0*math.Exp(y[3]) + 1.0) / (1.0 + math.Exp(y[3]))
	},
	Accept: func(ks, thetaR, alpha, n float64) bool {
		return between(ks, 0, 15) && between(thetaR, 0, 0.11) && between(alpha, 0, 0.15) && between(n, 1, 2)
	},
}

// Silt is the Carsel-Parrish recipe for silt, with a pre-transform
// truncation on the first two correlated-normal coordinates.
var Silt = Texture{
	Mu: [4]float64{-2.2, 0.042, 0.017, 1.38},
	Tmat: [4][4]float64{
		{0.535, 0, 0, 0},
		{-0.002, 0.008, 0, 0},
		{0.003, 0, 0.001, 0},
		{0.013, -0.015, 0.014, 0.013},
	},
	Truncate: func(y [4]float64) bool {
		return between(y[0], -2.564, -0.337) && between(y[1], 0.013, 0.049)
	},
	Physical: func(y [4]float64) (ks, thetaR, alpha, n float64) {
		return math.Exp(y[0]), y[1], y[2], y[3]
	},
	Accept: func(ks, thetaR, alpha, n float64) bool {
		return between(ks, 0, 2) && between(thetaR, 0, 0.09) && between(alpha, 0, 0.1) && between(n, 1.2, 1.6)
	},
}

// Clay is the Carsel-Parrish recipe for clay.
var Clay = Texture{
	Mu: [4]float64{-5.75, 0.445, -4.145, 0.0002},
	Tmat: [4][4]float64{
		{1.96, 0, 0, 0},
		{0.07, 0.017, 0, 0},
		{0.565, -0.08, 0.172, 0},
		{0.048, -0.014, 0.002, 0.016},
	},
	Truncate: func(y [4]float64) bool {
		return between(y[1], 0.0065, 0.834) && between(y[2], -5.01, 0.912) && between(y[3], 0, 0.315)
	},
	Physical: func(y [4]float64) (ks, thetaR, alpha, n float64) {
		return 5.0 * logistic(y[0]), 0.15 * (math.Exp(y[1]) - math.Exp(-y[1])) / 2.0, 0.15 * logistic(y[2]), math.Exp(y[3])
	},
	Accept: func(ks, thetaR, alpha, n float64) bool {
		return between(ks, 0, 5) && between(thetaR, 0, 0.15) && between(alpha, 0, 0.15) && between(n, 0.9, 1.4)
	},
}

// SiltyClay is the Carsel-Parrish recipe for silty clay.
var SiltyClay = Texture{
	Mu: [4]float64{-5.69, 0.07, -5.66, -1.28},
	Tmat: [4][4]float64{
		{1.25, 0, 0, 0},
		{0.008, 0.003, 0, 0},
		{0.314, 0.04, 0.06, 0},
		{0.367, -0.086, 0.066, 0.131},
	},
	Physical: func(y [4]float64) (ks, thetaR, alpha, n float64) {
		return math.Exp(y[0]), y[1], math.Exp(y[2]), (1.4*math.Exp(y[3]) + 1.0) / (1.0 + math.Exp(y[3]))
	},
	Accept: func(ks, thetaR, alpha, n float64) bool {
		return between(ks, 0, 1) && between(thetaR, 0, 0.14) && between(alpha, 0, 0.15) && between(n, 1, 1.4)
	},
}

// SandyClay is the Carsel-Parrish recipe for sandy clay.
var SandyClay = Texture{
	Mu: [4]float64{-4.04, 1.72, -3.77, 0.202},
	Tmat: [4][4]float64{
		{2.02, 0, 0, 0},
		{0.883, 0.324, 0, 0},
		{0.539, 0.063, 0.15, 0},
		{0.076, 0.004, -0.001, 0.018},
	},
	Physical: func(y [4]float64) (ks, thetaR, alpha, n float64) {
		return math.Exp(y[0]), 0.12 * logistic(y[1]), math.Exp(y[2]), math.Exp(y[3])
	},
	Accept: func(ks, thetaR, alpha, n float64) bool {
		return between(ks, 0, 1.5) && between(thetaR, 0, 0.12) && between(alpha, 0, 0.15) && between(n, 1, 1.5)
	},
}

// SiltyClayLoam is the Carsel-Parrish recipe for silty clay loam.
var SiltyClayLoam = Texture{
	Mu: [4]float64{-5.31, 0.088, -2.75, 1.23},
	Tmat: [4][4]float64{
		{1.612, 0, 0, 0},
		{0.006, 0.005, 0, 0},
		{0.511, 0.048, 0.073, 0},
		{0.049, -0.009, 0.008, 0.017},
	},
	Physical: func(y [4]float64) (ks, thetaR, alpha, n float64) {
		return 3.5 * logistic(y[0]), y[1], 0.15 * logistic(y[2]), y[3]
	},
	Accept: func(ks, thetaR, alpha, n float64) bool {
		return between(ks, 0, 3.5) && between(thetaR, 0, 0.115) && between(alpha, 0, 0.15) && between(n, 1, 1.5)
	},
}

// ClayLoam is the Carsel-Parrish recipe for clay loam.
//
// The n formula below reuses y[0] where every other texture in this
// table uses the coordinate matching its own row (y[3]); this matches
// the reference model exactly and is preserved rather than "corrected"
// — see the open-question note in DESIGN.md.
var ClayLoam = Texture{
	Mu: [4]float64{-5.87, 0.679, -4.22, 0.132},
	Tmat: [4][4]float64{
		{1.92, 0, 0, 0},
		{0.04, 0.031, 0, 0},
		{0.589, -0.062, 0.106, 0},
		{0.542, -0.154, 0.065, 0.116},
	},
	Truncate: func(y [4]float64) bool {
		return between(y[0], -8.92, 2)
	},
	Physical: func(y [4]float64) (ks, thetaR, alpha, n float64) {
		return 7.5 * logistic(y[0]), 0.13 * (math.Exp(y[1]) - math.Exp(-y[1])) / 2.0, math.Exp(y[2]), (1.6*math.Exp(y[0]) + 1.0) / (1.0 + math.Exp(y[0]))
	},
	Accept: func(ks, thetaR, alpha, n float64) bool {
		return between(ks, 0, 7.5) && between(thetaR, 0, 0.13) && between(alpha, 0, 0.15) && between(n, 1, 1.6)
	},
}

// SandyClayLoam is the Carsel-Parrish recipe for sandy clay loam.
var SandyClayLoam = Texture{
	Mu: [4]float64{-4.04, 1.65, -1.38, 0.388},
	Tmat: [4][4]float64{
		{1.85, 0, 0, 0},
		{0.102, 0.378, 0, 0},
		{0.784, 0.122, 0.22, 0},
		{0.077, -0.031, -0.008, 0.016},
	},
	Truncate: func(y [4]float64) bool {
		return between(y[1], 0.928, 2.94)
	},
	Physical: func(y [4]float64) (ks, thetaR, alpha, n float64) {
		return 20.0 * logistic(y[0]), 0.12 * logistic(y[1]), 0.25 * logistic(y[2]), math.Exp(y[3])
	},
	Accept: func(ks, thetaR, alpha, n float64) bool {
		return between(ks, 0, 20) && between(thetaR, 0, 0.12) && between(alpha, 0, 0.25) && between(n, 1, 2)
	},
}

// Loam is the Carsel-Parrish recipe for loam.
var Loam = Texture{
	Mu: [4]float64{-3.71, 0.639, -1.27, 0.532},
	Tmat: [4][4]float64{
		{1.41, 0, 0, 0},
		{-0.1, 0.478, 0, 0},
		{0.611, 0.073, 0.093, 0},
		{0.055, -0.055, 0.026, 0.029},
	},
	Physical: func(y [4]float64) (ks, thetaR, alpha, n float64) {
		return 15.0 * logistic(y[0]), 0.12 * logistic(y[1]), 0.15 * logistic(y[2]), 1.0 + (math.Exp(y[3])-math.Exp(-y[3]))/2.0
	},
	Accept: func(ks, thetaR, alpha, n float64) bool {
		return between(ks, 0, 15) && between(thetaR, 0, 0.12) && between(alpha, 0, 0.15) && between(n, 1, 2)
	},
}
