// Copyright 2016 The Richards Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package field implements the complete Richards-equation simulation
// state: matric potential and van Genuchten / root-uptake parameter
// arrays over a voxel mask, plus the derived-quantity façade and the
// deep-copy operation ensemble resampling depends on.
package field

import (
	"math"

	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/richards/retention"
	"github.com/cpmech/richards/voxel"
)

// Void is the sentinel value stored in every physical field outside
// the active mask.
var Void = math.NaN()

// Input collects the per-cell arrays used to build a Field. Every
// slice must have length Mask.Shape.Len() and is indexed through
// Mask.Index. M and L default to 1-1/N and 0.5 (per-cell) when nil. B
// is the optional root-density field; at most one of (Feddes) or
// (H50,P) may be supplied alongside it.
type Input struct {
	H, K, ThetaS, ThetaR, Alpha, N []float64
	M, L                           []float64
	B                              []float64
	A0, A1, A2, A3                 []float64 // Feddes breakpoints, per cell
	H50, P                         []float64 // S-shaped parameters, per cell
}

// Field is the complete simulation state at one time.
type Field struct {
	Mask   *voxel.Mask
	Top    voxel.ColumnList
	Bottom voxel.ColumnList
	Size   [3]float64

	H, K0, ThetaS, ThetaR, Alpha, N, M, L []float64
	B                                     []float64
	A0, A1, A2, A3                        []float64
	H50, P                                []float64

	DeadFlag bool
}

// masked returns a copy of src with void cells overwritten by Void,
// or nil if src is nil.
func masked(mask *voxel.Mask, src []float64) []float64 {
	if src == nil {
		return nil
	}
	out := make([]float64, len(src))
	for i, active := range mask.Data {
		if active {
			out[i] = src[i]
		} else {
			out[i] = Void
		}
	}
	return out
}

// New builds a Field over mask from the given input. Size is the
// (dx,dy,dz) cell edge length triple. Exactly one of (A0..A3) or
// (H50,P) may be non-nil; supplying both, or supplying B without
// either, is a construction error.
func New(mask *voxel.Mask, size [3]float64, in Input) (*Field, error) {
	n := mask.Shape.Len()
	for _, name := range []struct {
		s    []float64
		name string
	}{{in.H, "H"}, {in.K, "K"}, {in.ThetaS, "ThetaS"}, {in.ThetaR, "ThetaR"}, {in.Alpha, "Alpha"}, {in.N, "N"}} {
		if len(name.s) != n {
			return nil, chk.Err("field: %q has length %d, want %d", name.name, len(name.s), n)
		}
	}

	hasFeddes := in.A0 != nil || in.A1 != nil || in.A2 != nil || in.A3 != nil
	hasSShaped := in.H50 != nil || in.P != nil
	if hasFeddes && hasSShaped {
		return nil, chk.Err("field: only one of Feddes or S-shaped root-stress parameterisations may be supplied")
	}
	if (hasFeddes || hasSShaped) && in.B == nil {
		return nil, chk.Err("field: root-stress parameters supplied without a root density field B")
	}
	if in.B != nil && !hasFeddes && !hasSShaped {
		return nil, chk.Err("field: root density field B supplied without Feddes or S-shaped root-stress parameters")
	}

	m := in.M
	if m == nil {
		m = make([]float64, n)
		for i, nv := range in.N {
			m[i] = 1.0 - 1.0/nv
		}
	}
	l := in.L
	if l == nil {
		l = make([]float64, n)
		for i := range l {
			l[i] = 0.5
		}
	}

	f := &Field{
		Mask:    mask,
		Size:    size,
		H:       masked(mask, in.H),
		K0:      masked(mask, in.K),
		ThetaS:  masked(mask, in.ThetaS),
		ThetaR:  masked(mask, in.ThetaR),
		Alpha:   masked(mask, in.Alpha),
		N:       masked(mask, in.N),
		M:       masked(mask, m),
		L:       masked(mask, l),
		B:       masked(mask, in.B),
		A0:      masked(mask, in.A0),
		A1:      masked(mask, in.A1),
		A2:      masked(mask, in.A2),
		A3:      masked(mask, in.A3),
		H50:     masked(mask, in.H50),
		P:       masked(mask, in.P),
	}
	f.Top, f.Bottom = voxel.BuildColumns(mask)
	return f, nil
}

// Dead reports whether the last solve diverged.
func (f *Field) Dead() bool { return f.DeadFlag }

// Clone deep-copies every array, as required by ensemble resampling.
func (f *Field) Clone() *Field {
	cp := *f
	cp.Mask = &voxel.Mask{Shape: f.Mask.Shape, Data: append([]bool(nil), f.Mask.Data...)}
	cp.H = append([]float64(nil), f.H...)
	cp.K0 = append([]float64(nil), f.K0...)
	cp.ThetaS = append([]float64(nil), f.ThetaS...)
	cp.ThetaR = append([]float64(nil), f.ThetaR...)
	cp.Alpha = append([]float64(nil), f.Alpha...)
	cp.N = append([]float64(nil), f.N...)
	cp.M = append([]float64(nil), f.M...)
	cp.L = append([]float64(nil), f.L...)
	if f.B != nil {
		cp.B = append([]float64(nil), f.B...)
	}
	if f.A0 != nil {
		cp.A0 = append([]float64(nil), f.A0...)
		cp.A1 = append([]float64(nil), f.A1...)
		cp.A2 = append([]float64(nil), f.A2...)
		cp.A3 = append([]float64(nil), f.A3...)
	}
	if f.H50 != nil {
		cp.H50 = append([]float64(nil), f.H50...)
		cp.P = append([]float64(nil), f.P...)
	}
	cp.Top = voxel.ColumnList{IX: append([]int(nil), f.Top.IX...), IY: append([]int(nil), f.Top.IY...), IZ: append([]int(nil), f.Top.IZ...)}
	cp.Bottom = voxel.ColumnList{IX: append([]int(nil), f.Bottom.IX...), IY: append([]int(nil), f.Bottom.IY...), IZ: append([]int(nil), f.Bottom.IZ...)}
	return &cp
}

// ClampPonding enforces h<=0 over every active cell in place.
func (f *Field) ClampPonding() {
	for i, active := range f.Mask.Data {
		if active && f.H[i] > 0 {
			f.H[i] = 0
		}
	}
}

// replaceVoid overwrites every void entry of dst with ghost, in place.
func (f *Field) replaceVoid(dst []float64, ghost float64) []float64 {
	if math.IsNaN(ghost) {
		return dst
	}
	for i, active := range f.Mask.Data {
		if !active {
			dst[i] = ghost
		}
	}
	return dst
}

// HField returns the matric potential, replacing void cells with ghost.
func (f *Field) HField(ghost float64) []float64 {
	out := append([]float64(nil), f.H...)
	return f.replaceVoid(out, ghost)
}

// SeField returns the effective saturation derived from H.
func (f *Field) SeField(ghost float64) []float64 {
	out := make([]float64, len(f.H))
	for i, active := range f.Mask.Data {
		if active {
			out[i] = retention.Se(f.H[i], f.Alpha[i], f.N[i], f.M[i])
		} else {
			out[i] = Void
		}
	}
	return f.replaceVoid(out, ghost)
}

// ThetaField returns the volumetric water content derived from H.
func (f *Field) ThetaField(ghost float64) []float64 {
	out := make([]float64, len(f.H))
	for i, active := range f.Mask.Data {
		if active {
			out[i] = retention.Theta(f.H[i], f.Alpha[i], f.N[i], f.M[i], f.ThetaS[i], f.ThetaR[i])
		} else {
			out[i] = Void
		}
	}
	return f.replaceVoid(out, ghost)
}

// KField returns the unsaturated conductivity derived from H.
func (f *Field) KField(ghost float64) []float64 {
	out := make([]float64, len(f.H))
	for i, active := range f.Mask.Data {
		if active {
			out[i] = retention.K(f.H[i], f.K0[i], f.Alpha[i], f.N[i], f.M[i], f.L[i])
		} else {
			out[i] = Void
		}
	}
	return f.replaceVoid(out, ghost)
}

// CwField returns the specific moisture capacity derived from H.
func (f *Field) CwField(ghost float64) []float64 {
	out := make([]float64, len(f.H))
	for i, active := range f.Mask.Data {
		if active {
			out[i] = retention.Cw(f.H[i], f.Alpha[i], f.N[i], f.ThetaS[i], f.ThetaR[i])
		} else {
			out[i] = Void
		}
	}
	return f.replaceVoid(out, ghost)
}

// Sink computes the plant-uptake sink term S = -F(h)*Tp*B. Tp is a
// (Nx,Ny) transpiration map broadcast over every iz in the column
// (nil means no plant uptake, S is identically zero). Returns ghost
// outside the mask.
func (f *Field) Sink(tp []float64, ghost float64) []float64 {
	out := make([]float64, len(f.H))
	if tp == nil || f.B == nil {
		for i, active := range f.Mask.Data {
			if !active {
				out[i] = Void
			}
		}
		return f.replaceVoid(out, ghost)
	}
	nz := f.Mask.Shape[2]
	for i, active := range f.Mask.Data {
		if !active {
			out[i] = Void
			continue
		}
		column := i / nz
		var factor float64
		if f.A0 != nil {
			factor = retention.Feddes(f.H[i], f.A0[i], f.A1[i], f.A2[i], f.A3[i])
		} else {
			factor = retention.SShaped(f.H[i], f.H50[i], f.P[i])
		}
		out[i] = -factor * tp[column] * f.B[i]
	}
	return f.replaceVoid(out, ghost)
}
