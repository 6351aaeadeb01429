// Copyright 2016 The Richards Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solver

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun"

	"github.com/cpmech/richards/field"
)

// Drive runs f from t=0 to t=tf, stepping by dtFunc.F(t,nil) and
// re-evaluating qFunc.F(t,nil) into opts.Q (broadcast uniformly over
// the top surface) before each RunUnsteady call, mirroring the outer
// loop of a conventional FEM time-stepping solver but driving the
// Jacobi kernel every step instead of an assembled stiffness matrix.
// opts.Iters/Lr/Top/Bottom/Tp carry through unchanged on every step;
// opts.Q is overwritten. Returns as soon as f.Dead() becomes true.
func Drive(f *field.Field, tf float64, dtFunc, qFunc fun.Func, opts UnsteadyOptions) error {
	if tf <= 0 {
		return chk.Err("solver: tf must be positive, got %v", tf)
	}
	shape := f.Mask.Shape
	nPlane := shape[0] * shape[1]
	t := 0.0
	for t < tf {
		dt := dtFunc.F(t, nil)
		if dt <= 0 {
			return chk.Err("solver: dtFunc returned non-positive step %v at t=%v", dt, t)
		}
		if t+dt > tf {
			dt = tf - t
		}

		step := opts
		if qFunc != nil {
			q := qFunc.F(t, nil)
			flux := make([]float64, nPlane)
			for i := range flux {
				flux[i] = q
			}
			step.Q = flux
		}

		if err := RunUnsteady(f, dt, step); err != nil {
			return err
		}
		if f.Dead() {
			return chk.Err("solver: field diverged at t=%v", t+dt)
		}
		t += dt
	}
	return nil
}
