// Copyright 2016 The Richards Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ensemble

import (
	"runtime"
	"sync"

	"github.com/cpmech/gosl/chk"
)

// Ensemble is an ordered collection of Individuals, rebuilt wholesale
// on every resampling step.
type Ensemble struct {
	Individuals []*Individual
	Stream      Stream // nil uses DefaultStream
}

// New wraps inds into an Ensemble using the package's default stream.
func New(inds []*Individual) *Ensemble {
	return &Ensemble{Individuals: inds}
}

func (e *Ensemble) streamOrDefault() Stream {
	if e.Stream == nil {
		return DefaultStream
	}
	return e.Stream
}

// Step draws a fresh generation via resampler and replaces
// e.Individuals with it.
func (e *Ensemble) Step(y []float64, r [][]float64, resampler Resampler) error {
	next, err := resampler.Recombine(e, y, r)
	if err != nil {
		return err
	}
	e.Individuals = next
	return nil
}

// StepParallel runs forward (when non-nil) on every Individual across
// a sync.WaitGroup-bounded worker pool sized by runtime.GOMAXPROCS(0),
// waits for all of them, and then calls Step. Likelihood evaluation
// and every draw from the shared stream happen inside Step on the
// calling goroutine, after the fan-out has finished, so concurrent
// forward solves never touch the stream. No *field.Field is ever
// shared between goroutines: each Individual owns its own.
func (e *Ensemble) StepParallel(y []float64, r [][]float64, resampler Resampler, forward func(*Individual) error) error {
	if forward != nil {
		if err := parallelForward(e.Individuals, forward); err != nil {
			return err
		}
	}
	return e.Step(y, r, resampler)
}

func parallelForward(inds []*Individual, forward func(*Individual) error) error {
	workers := runtime.GOMAXPROCS(0)
	if workers > len(inds) {
		workers = len(inds)
	}
	if workers < 1 {
		workers = 1
	}

	jobs := make(chan int)
	errs := make([]error, len(inds))

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := range jobs {
				errs[i] = forward(inds[i])
			}
		}()
	}
	for i := range inds {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

// Mean returns the weighted (here: equal-weight) Monte-Carlo mean of
// the ensemble, via repeated Individual.Add then Scale.
func (e *Ensemble) Mean() (*Individual, error) {
	if len(e.Individuals) == 0 {
		return nil, chk.Err("ensemble: cannot take the mean of an empty ensemble")
	}
	acc := e.Individuals[0]
	var err error
	for i := 1; i < len(e.Individuals); i++ {
		acc, err = acc.Add(e.Individuals[i])
		if err != nil {
			return nil, err
		}
	}
	return acc.Scale(1.0 / float64(len(e.Individuals)))
}

// Var returns the Monte-Carlo variance of the ensemble about its Mean.
func (e *Ensemble) Var() (*Individual, error) {
	mean, err := e.Mean()
	if err != nil {
		return nil, err
	}
	sqDiff := func(ind *Individual) (*Individual, error) {
		d, err := ind.Sub(mean)
		if err != nil {
			return nil, err
		}
		return d.Mul(d)
	}
	acc, err := sqDiff(e.Individuals[0])
	if err != nil {
		return nil, err
	}
	for i := 1; i < len(e.Individuals); i++ {
		next, err := sqDiff(e.Individuals[i])
		if err != nil {
			return nil, err
		}
		acc, err = acc.Add(next)
		if err != nil {
			return nil, err
		}
	}
	return acc.Scale(1.0 / float64(len(e.Individuals)))
}

// ObserveMean returns the elementwise mean of every Individual's
// observation-space vector.
func (e *Ensemble) ObserveMean() []float64 {
	var sum []float64
	for _, ind := range e.Individuals {
		obs := ind.Capabilities.Observe(ind.Field)
		if sum == nil {
			sum = make([]float64, len(obs))
		}
		for i := range obs {
			sum[i] += obs[i]
		}
	}
	n := float64(len(e.Individuals))
	for i := range sum {
		sum[i] /= n
	}
	return sum
}

// ObserveVar returns the elementwise variance of every Individual's
// observation-space vector about ObserveMean.
func (e *Ensemble) ObserveVar() []float64 {
	mean := e.ObserveMean()
	out := make([]float64, len(mean))
	for _, ind := range e.Individuals {
		obs := ind.Capabilities.Observe(ind.Field)
		for i := range obs {
			d := obs[i] - mean[i]
			out[i] += d * d
		}
	}
	n := float64(len(e.Individuals))
	for i := range out {
		out[i] /= n
	}
	return out
}
