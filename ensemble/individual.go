// Copyright 2016 The Richards Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package ensemble implements the data-assimilation layer: the
// Individual abstraction wrapping a parameter vector and its Field,
// and the particle-filter / merging-particle-filter / BLX-α
// recombination operators over an Ensemble of Individuals.
package ensemble

import (
	"math"

	"github.com/cpmech/gosl/la"

	"github.com/cpmech/richards/et"
	"github.com/cpmech/richards/field"
)

// Capabilities is the user-extensible surface an Individual delegates
// to: how a parameter vector and a head array become a Field, how a
// Field is observed at sensor locations, and what extra constraints
// (beyond dead_flag) make a Field unusable. Implementing this
// interface is the whole of what's needed to plug a new model into
// the ensemble machinery; no base type to extend.
type Capabilities interface {
	Install(params, h []float64) (*field.Field, error)
	Observe(f *field.Field) []float64
	CheckConstraints(f *field.Field) bool
}

// DefaultConstraints is an embeddable zero-value CheckConstraints
// that always passes, for Capabilities implementations with no extra
// constraint beyond the Field's own dead_flag.
type DefaultConstraints struct{}

// CheckConstraints always returns true.
func (DefaultConstraints) CheckConstraints(f *field.Field) bool { return true }

// Individual is one ensemble member: a parameter vector, the Field it
// was installed into, an optional ET collaborator, and the
// user-supplied Capabilities that know how to rebuild and observe it.
// Headless selects the head-preserving arithmetic variant (params-only
// combination, keeping the left operand's head) over the full variant
// (combines params and head together) at every arithmetic call.
type Individual struct {
	Params       []float64
	Field        *field.Field
	ET           *et.ETModule
	Capabilities Capabilities
	Headless     bool
}

// Clone deep-copies an Individual's Field and Params.
func (ind *Individual) Clone() *Individual {
	return &Individual{
		Params:       append([]float64(nil), ind.Params...),
		Field:        ind.Field.Clone(),
		ET:           ind.ET,
		Capabilities: ind.Capabilities,
		Headless:     ind.Headless,
	}
}

func (ind *Individual) combine(other *Individual, op func(x, y float64) float64) (*Individual, error) {
	params := make([]float64, len(ind.Params))
	for i := range params {
		params[i] = op(ind.Params[i], other.Params[i])
	}
	h := ind.combinedHead(other, op)
	f, err := ind.Capabilities.Install(params, h)
	if err != nil {
		return nil, err
	}
	return &Individual{Params: params, Field: f, ET: ind.ET, Capabilities: ind.Capabilities, Headless: ind.Headless}, nil
}

func (ind *Individual) combinedHead(other *Individual, op func(x, y float64) float64) []float64 {
	if ind.Headless {
		return append([]float64(nil), ind.Field.H...)
	}
	h := make([]float64, len(ind.Field.H))
	for i := range h {
		h[i] = op(ind.Field.H[i], other.Field.H[i])
	}
	return h
}

// Add returns the elementwise sum of two Individuals, re-running
// install so parameter-derived fields stay consistent.
func (ind *Individual) Add(other *Individual) (*Individual, error) {
	return ind.combine(other, func(x, y float64) float64 { return x + y })
}

// Sub returns the elementwise difference ind-other.
func (ind *Individual) Sub(other *Individual) (*Individual, error) {
	return ind.combine(other, func(x, y float64) float64 { return x - y })
}

// Mul returns the elementwise product of two Individuals.
func (ind *Individual) Mul(other *Individual) (*Individual, error) {
	return ind.combine(other, func(x, y float64) float64 { return x * y })
}

// Div returns the elementwise quotient ind/other.
func (ind *Individual) Div(other *Individual) (*Individual, error) {
	return ind.combine(other, func(x, y float64) float64 { return x / y })
}

// Scale returns ind scaled by the scalar c; under the full variant
// this scales both params and head, under the head-preserving variant
// only params.
func (ind *Individual) Scale(c float64) (*Individual, error) {
	params := make([]float64, len(ind.Params))
	for i := range params {
		params[i] = c * ind.Params[i]
	}
	var h []float64
	if ind.Headless {
		h = append([]float64(nil), ind.Field.H...)
	} else {
		h = make([]float64, len(ind.Field.H))
		for i := range h {
			h[i] = c * ind.Field.H[i]
		}
	}
	f, err := ind.Capabilities.Install(params, h)
	if err != nil {
		return nil, err
	}
	return &Individual{Params: params, Field: f, ET: ind.ET, Capabilities: ind.Capabilities, Headless: ind.Headless}, nil
}

// Likelihood evaluates exp(-1/2 (y-observe())^T R^-1 (y-observe())).
// It returns 0 when the Field is dead, when CheckConstraints fails, or
// when any arithmetic fault occurs while inverting R (e.g. R singular).
func (ind *Individual) Likelihood(y []float64, r [][]float64) (lh float64) {
	if ind.Field.Dead() || !ind.Capabilities.CheckConstraints(ind.Field) {
		return 0
	}
	defer func() {
		if recover() != nil {
			lh = 0
		}
	}()
	obs := ind.Capabilities.Observe(ind.Field)
	n := len(y)
	diff := make([]float64, n)
	for i := range diff {
		diff[i] = y[i] - obs[i]
	}
	rinv := la.MatAlloc(n, n)
	_, err := la.MatInv(rinv, r, 1e-14)
	if err != nil {
		return 0
	}
	tmp := make([]float64, n)
	la.MatVecMul(tmp, 1.0, rinv, diff)
	quad := la.VecDot(diff, tmp)
	if math.IsNaN(quad) || math.IsInf(quad, 0) {
		return 0
	}
	return math.Exp(-0.5 * quad)
}
