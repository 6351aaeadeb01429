// Copyright 2016 The Richards Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package solver implements the relaxed Jacobi finite-volume kernel
// for the Richards equation over a voxel-masked field: ghost-cell
// construction at the topography-following top/bottom surfaces, the
// seven-point stencil with arithmetic-mean face conductivities, the
// gravity/flux boundary terms, the plant-uptake sink, the relaxed
// update and the ponding clamp. This is the hard numerical core of
// the module; stability of the nonlinear iteration on irregular
// masked grids is what the whole package exists to get right.
package solver

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"

	"github.com/cpmech/richards/field"
)

// divergeThreshold is the |h| magnitude past which the solve is
// declared diverged, per spec.md §4.2.
const divergeThreshold = 1.0e100

// defaultLr is the default relaxation factor omega.
const defaultLr = 0.9

// SteadyOptions configures RunSteady. Zero-value Iters/Lr fall back
// to the defaults (1000, 0.9); zero-value Top/Bottom fall back to
// "flux"/"free".
type SteadyOptions struct {
	Q      []float64 // (Nx,Ny) top-flux map, required when Top=="flux"
	Top    string    // "zero" or "flux"
	Bottom string    // "free" or "zero"
	Tp     []float64 // (Nx,Ny) transpiration map, nil disables the sink term
	Iters  int
	Lr     float64
}

// UnsteadyOptions configures RunUnsteady. Same fields as
// SteadyOptions but Iters defaults to 20.
type UnsteadyOptions struct {
	Q      []float64
	Top    string
	Bottom string
	Tp     []float64
	Iters  int
	Lr     float64
}

// RunSteady advances f.H toward steady Richards equilibrium under the
// given boundary conditions, mutating f in place.
func RunSteady(f *field.Field, opts SteadyOptions) error {
	top, bottom, err := normaliseBCs(opts.Top, opts.Bottom, opts.Q, f)
	if err != nil {
		return err
	}
	iters := opts.Iters
	if iters == 0 {
		iters = 1000
	}
	lr := opts.Lr
	if lr == 0 {
		lr = defaultLr
	}
	run(f, 0, nil, top, bottom, opts.Q, opts.Tp, iters, lr)
	return nil
}

// RunUnsteady advances f.H by one backward-Euler timestep dt, using
// `iters` (default 20) Jacobi sub-iterations with coefficients frozen
// at the field's state when the call was made.
func RunUnsteady(f *field.Field, dt float64, opts UnsteadyOptions) error {
	top, bottom, err := normaliseBCs(opts.Top, opts.Bottom, opts.Q, f)
	if err != nil {
		return err
	}
	if dt <= 0 {
		return chk.Err("solver: dt must be positive, got %v", dt)
	}
	iters := opts.Iters
	if iters == 0 {
		iters = 20
	}
	lr := opts.Lr
	if lr == 0 {
		lr = defaultLr
	}
	hPrev := append([]float64(nil), f.H...)
	run(f, dt, hPrev, top, bottom, opts.Q, opts.Tp, iters, lr)
	return nil
}

func normaliseBCs(top, bottom string, q []float64, f *field.Field) (string, string, error) {
	if top == "" {
		top = "flux"
	}
	if bottom == "" {
		bottom = "free"
	}
	if top != "zero" && top != "flux" {
		return "", "", chk.Err("solver: top must be \"zero\" or \"flux\", got %q", top)
	}
	if bottom != "free" && bottom != "zero" {
		return "", "", chk.Err("solver: bottom must be \"free\" or \"zero\", got %q", bottom)
	}
	if top == "flux" && q == nil {
		return "", "", chk.Err("solver: top=\"flux\" requires a non-nil Q map")
	}
	return top, bottom, nil
}

// run performs the sweep loop. hPrev is non-nil for the unsteady
// (backward-Euler) variant and nil for steady. Any arithmetic fault
// during assembly, or divergence detected after the loop, latches
// f.DeadFlag; no partial recovery is attempted.
func run(f *field.Field, dt float64, hPrev []float64, top, bottom string, q, tp []float64, iters int, lr float64) {
	defer func() {
		if r := recover(); r != nil {
			f.DeadFlag = true
		}
	}()

	shape := f.Mask.Shape
	nx, ny, nz := shape[0], shape[1], shape[2]
	dx, dy, dz := f.Size[0], f.Size[1], f.Size[2]

	topSet := make([]bool, len(f.Mask.Data))
	for i := 0; i < f.Top.Len(); i++ {
		topSet[f.Mask.Index(f.Top.IX[i], f.Top.IY[i], f.Top.IZ[i])] = true
	}
	bottomSet := make([]bool, len(f.Mask.Data))
	for i := 0; i < f.Bottom.Len(); i++ {
		bottomSet[f.Mask.Index(f.Bottom.IX[i], f.Bottom.IY[i], f.Bottom.IZ[i])] = true
	}

	// coefficients frozen at the field's state when this call began,
	// matching the original Jacobi driver: K and the sink term are
	// evaluated once, not re-linearised every sub-iteration.
	kArr := f.KField(0)
	sArr := f.Sink(tp, 0)

	var cw []float64
	if hPrev != nil {
		cw = f.CwField(0)
	}

	hNext := make([]float64, len(f.H))

	for itr := 0; itr < iters; itr++ {
		for ix := 0; ix < nx; ix++ {
			for iy := 0; iy < ny; iy++ {
				for iz := 0; iz < nz; iz++ {
					if !f.Mask.At(ix, iy, iz) {
						continue
					}
					idx := f.Mask.Index(ix, iy, iz)
					kc := kArr[idx]

					aSum, sSum := 0.0, 0.0

					// east/west (x)
					a, s := face(f, kArr, idx, kc, ix+1, iy, iz, dx)
					aSum += a
					sSum += s
					a, s = face(f, kArr, idx, kc, ix-1, iy, iz, dx)
					aSum += a
					sSum += s

					// north/south (y)
					a, s = face(f, kArr, idx, kc, ix, iy+1, iz, dy)
					aSum += a
					sSum += s
					a, s = face(f, kArr, idx, kc, ix, iy-1, iz, dy)
					aSum += a
					sSum += s

					// up (z), with top boundary handling
					aUp, sUp, bUp := upFace(f, kArr, idx, kc, ix, iy, iz, dz, topSet, top, q, ny)
					aSum += aUp
					sSum += sUp

					// down (z), with bottom boundary handling
					aDown, sDown, bDown := downFace(f, kArr, idx, kc, ix, iy, iz, dz, bottomSet, bottom)
					aSum += aDown
					sSum += sDown

					numerator := sSum + sArr[idx] + bUp + bDown
					denom := aSum
					if hPrev != nil {
						numerator += cw[idx] / dt * hPrev[idx]
						denom += cw[idx] / dt
					}

					hNext[idx] = numerator / denom
				}
			}
		}

		for i, active := range f.Mask.Data {
			if active {
				f.H[i] = (1-lr)*f.H[i] + lr*hNext[i]
			}
		}
		f.ClampPonding()
	}

	minH := math.Inf(1)
	for i, active := range f.Mask.Data {
		if active {
			minH = utl.Min(minH, f.H[i])
		}
	}
	if minH < -divergeThreshold {
		f.DeadFlag = true
	}
}

// face computes the (a,s) contribution of a lateral (x or y) neighbour.
// The face is inactive (a=s=0) when the neighbour is out of range or void.
func face(f *field.Field, kArr []float64, idx int, kCenter float64, nix, niy, niz int, d float64) (a, s float64) {
	if !f.Mask.At(nix, niy, niz) {
		return 0, 0
	}
	nidx := f.Mask.Index(nix, niy, niz)
	kFace := 0.5 * (kCenter + kArr[nidx])
	a = kFace / (d * d)
	s = a * f.H[nidx]
	return
}

// upFace computes the up-direction (a,s,b) contributions, applying
// the Dirichlet ghost at top="zero" and the flux override at
// top="flux", both only at cells listed in topSet.
func upFace(f *field.Field, kArr []float64, idx int, kCenter float64, ix, iy, iz int, dz float64, topSet []bool, top string, q []float64, ny int) (a, s, b float64) {
	isTop := topSet[idx]
	if isTop {
		if top == "zero" {
			kGhost := f.K0[idx]
			kFace := 0.5 * (kCenter + kGhost)
			a = kFace / (dz * dz)
			s = 0 // ghost h = 0
			b = a * dz
		} else { // "flux"
			a, s = 0, 0
			b = q[ix*ny+iy] / dz
		}
		return
	}
	if !f.Mask.At(ix, iy, iz+1) {
		return 0, 0, 0
	}
	nidx := f.Mask.Index(ix, iy, iz+1)
	kFace := 0.5 * (kCenter + kArr[nidx])
	a = kFace / (dz * dz)
	s = a * f.H[nidx]
	b = a * dz
	return
}

// downFace computes the down-direction (a,s,b) contributions. The
// free-drainage override of b is unconditional at bottomSet cells,
// independent of whether the Dirichlet ghost (bottom="zero") also
// contributed through a/s.
func downFace(f *field.Field, kArr []float64, idx int, kCenter float64, ix, iy, iz int, dz float64, bottomSet []bool, bottom string) (a, s, b float64) {
	isBottom := bottomSet[idx]
	if isBottom {
		if bottom == "zero" {
			kGhost := f.K0[idx]
			kFace := 0.5 * (kCenter + kGhost)
			a = kFace / (dz * dz)
			s = 0
		}
		b = -kArr[idx] / dz
		return
	}
	if !f.Mask.At(ix, iy, iz-1) {
		return 0, 0, 0
	}
	nidx := f.Mask.Index(ix, iy, iz-1)
	kFace := 0.5 * (kCenter + kArr[nidx])
	a = kFace / (dz * dz)
	s = a * f.H[nidx]
	b = -a * dz
	return
}
