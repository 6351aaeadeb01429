// Copyright 2016 The Richards Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package et

import "math"

// Stage holds the FAO-56 staged crop-coefficient schedule: Kc at the
// initial, mid, and end stages, and the duration (days) of the
// initial/development/mid/late periods.
type Stage struct {
	Kc [3]float64 // Kc_ini, Kc_mid, Kc_end
	L  [4]float64 // L_ini, L_dev, L_mid, L_late, in days
}

// ETModule couples a crop coefficient (constant, or staged through
// Stage) with a crop height and a leaf-area-index map, and knows how
// to turn a reference evapotranspiration into the (E,Tp) maps the
// Richards sink term consumes.
type ETModule struct {
	Kc    float64 // used when Stage is nil
	H     float64 // crop height [m]
	LAI   []float64
	Stage *Stage
}

// Clone deep-copies the LAI map and optional Stage.
func (m *ETModule) Clone() *ETModule {
	cp := *m
	cp.LAI = append([]float64(nil), m.LAI...)
	if m.Stage != nil {
		s := *m.Stage
		cp.Stage = &s
	}
	return &cp
}

// CropCoefficient computes Kc at 2 m wind speed u2 [m/s] and minimum
// relative humidity rhMin [%], with the standard FAO-56 height
// correction. daysElapsed is nil when the stage schedule is not used
// (constant Kc); otherwise it selects the growth-stage branch.
func (m *ETModule) CropCoefficient(u2, rhMin float64, daysElapsed *float64) float64 {
	heightAdj := (0.04*(u2-2.0) - 0.004*(rhMin-45.0)) * math.Pow(m.H/3.0, 0.3)
	if m.Stage == nil || daysElapsed == nil {
		return m.Kc + heightAdj
	}
	st := m.Stage
	l := *daysElapsed
	if l < st.L[0] {
		return st.Kc[0]
	}
	l -= st.L[0]
	kcMid := st.Kc[1] + heightAdj
	if l < st.L[1] {
		return st.Kc[0] + (kcMid-st.Kc[0])*l/st.L[1]
	}
	l -= st.L[1]
	if l < st.L[2] {
		return kcMid
	}
	l -= st.L[2]
	kcEnd := st.Kc[2] + heightAdj
	if l > st.L[3] {
		return kcEnd
	}
	return kcMid + (kcEnd-kcMid)*l/st.L[3]
}

// Campbell partitions a crop evapotranspiration map ETc into soil
// evaporation E and plant transpiration Tp via Campbell's law,
// Tp = ETc*(1-exp(-0.463*LAI)).
func (m *ETModule) Campbell(etc []float64) (e, tp []float64) {
	tp = make([]float64, len(etc))
	e = make([]float64, len(etc))
	for i, v := range etc {
		tp[i] = v * (1.0 - math.Exp(-0.463*m.LAI[i]))
		e[i] = v - tp[i]
	}
	return
}

// Apply partitions an already-known reference evapotranspiration map
// et0 [m/s] (broadcast or per-cell) into (E,Tp) via the crop
// coefficient and Campbell's law.
func (m *ETModule) Apply(et0 []float64, u2, rhMin float64, daysElapsed *float64) (e, tp []float64) {
	kc := m.CropCoefficient(u2, rhMin, daysElapsed)
	etc := make([]float64, len(et0))
	for i, v := range et0 {
		etc[i] = kc * v
	}
	return m.Campbell(etc)
}

// Reference computes ET0 via FAO Penman-Monteith from a single
// uniform weather observation, scales it by the crop coefficient,
// converts mm/day to m/s, and partitions it via Campbell's law over
// the LAI map.
func (m *ETModule) Reference(delta, rn, es, ea, gamma, t, g, u2, rhMin float64, daysElapsed *float64) (e, tp []float64) {
	et0 := (delta*(rn-g) + 900.0*gamma*u2*(es-ea)/(t+273.0)) / (delta + gamma*(1.0+0.34*u2))
	kc := m.CropCoefficient(u2, rhMin, daysElapsed)
	etc := kc * et0 / (1000.0 * 24.0 * 60.0 * 60.0)
	etcMap := make([]float64, len(m.LAI))
	for i := range etcMap {
		etcMap[i] = etc
	}
	return m.Campbell(etcMap)
}
