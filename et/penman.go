// Copyright 2016 The Richards Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package et implements the FAO Penman-Monteith reference
// evapotranspiration chain and Campbell's evaporation/transpiration
// partition, wired into a crop-coefficient module with an optional
// staged growth schedule.
package et

import "math"

// MJ2MM converts an energy flux in MJ/m2/day to an equivalent
// evaporation depth in mm/day.
func MJ2MM(e float64) float64 { return 0.408 * e }

// Gamma computes the psychrometric constant [kPa/degC] from
// atmospheric pressure P [kPa].
func Gamma(p float64) float64 { return 6.65e-4 * p }

// SatVaporPressure computes the saturation vapour pressure e0(T) [kPa].
func SatVaporPressure(t float64) float64 {
	return 0.6108 * math.Exp(17.27*t/(t+237.3))
}

// ActualVaporPressure computes the actual vapour pressure ea [kPa]
// from air temperature T [degC] and relative humidity RH [%].
func ActualVaporPressure(t, rh float64) float64 {
	return SatVaporPressure(t) * (rh / 100.0)
}

// SlopeVaporPressure computes the slope of the saturation vapour
// pressure curve, Delta [kPa/degC].
func SlopeVaporPressure(t float64) float64 {
	return 2503.0 * math.Exp(17.27*t/(t+237.3)) / ((t + 237.3) * (t + 237.3))
}

// WindAt2m rescales a wind speed measured at height z [m] to the
// standard 2 m reference height.
func WindAt2m(uz, z float64) float64 {
	return 4.87 * uz / math.Log(67.8*z-5.42)
}

// NetRadiation computes the net radiation Rn [mm/day] on day J (1..366)
// at the given latitude [deg], with n hours of sunshine, actual vapour
// pressure ea [kPa], and daily max/min temperature [degC].
func NetRadiation(j int, latitude, n, ea, tmax, tmin float64) float64 {
	jf := float64(j)
	dr := 1.0 + 0.033*math.Cos(2.0*math.Pi/365.0*jf)
	delta := 0.409 * math.Sin(2.0*math.Pi/365.0*jf-1.39)
	phi := latitude * math.Pi / 180.0
	omegaS := math.Acos(-math.Tan(phi) * math.Tan(delta))

	ra := 0.082 * (24.0 * 60.0 / math.Pi) * dr * (omegaS*math.Sin(phi)*math.Sin(delta) + math.Cos(phi)*math.Cos(delta)*math.Sin(omegaS))
	ra = MJ2MM(ra)

	nMax := 24.0 * omegaS / math.Pi

	rs := (0.25 + 0.5*n/nMax) * ra
	rns := (1.0 - 0.23) * rs
	rso := 0.75 * ra

	tMean4 := math.Pow(tmax+273.0, 4) + math.Pow(tmin+273.0, 4)
	rnl := 4.903e-9 * tMean4 * (0.34 - 0.14*math.Sqrt(ea)) * (1.35*rs/rso - 0.35)
	rnl = MJ2MM(rnl)

	return rns - rnl
}

// SoilHeatFlux computes the soil heat flux G [mm/day] from net
// radiation Rn, for either the "daylight" or "nighttime" period.
func SoilHeatFlux(rn float64, daylight bool) float64 {
	if daylight {
		return 0.1 * rn
	}
	return 0.5 * rn
}
