// Copyright 2016 The Richards Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command richards drives a single Richards-equation forward solve,
// or an ensemble data-assimilation run, from a JSON configuration
// file, and writes the result as an ASCII VTK structured grid.
package main

import (
	"flag"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"

	"github.com/cpmech/richards/diagnostics"
	"github.com/cpmech/richards/ensemble"
	vtk "github.com/cpmech/richards/out/vtk"
	"github.com/cpmech/richards/solver"
)

func main() {
	defer func() {
		if err := recover(); err != nil {
			io.PfRed("ERROR: %v\n", err)
		}
	}()

	flag.Parse()
	if len(flag.Args()) < 1 {
		chk.Panic("please provide a configuration filename. Ex.: richards config.json")
	}
	fnamepath := flag.Arg(0)
	if io.FnExt(fnamepath) == "" {
		fnamepath += ".json"
	}

	io.PfWhite("\nrichards -- Richards-equation voxel solver and ensemble assimilator\n\n")

	cfg, err := ReadConfig(fnamepath)
	if err != nil {
		chk.Panic("%v", err)
	}

	if cfg.Ensemble != nil {
		if err := runEnsemble(cfg); err != nil {
			chk.Panic("%v", err)
		}
		return
	}
	if err := runForward(cfg); err != nil {
		chk.Panic("%v", err)
	}
}

// runForward performs one deterministic forward solve and writes the
// resulting field state as a VTK file.
func runForward(cfg *Config) error {
	mask, size, err := cfg.BuildMask()
	if err != nil {
		return err
	}
	f, err := cfg.BuildField(mask, size)
	if err != nil {
		return err
	}

	tp, err := cfg.ResolveTp()
	if err != nil {
		return err
	}
	n := mask.Shape.Len()
	tpMap := fill(mask.Shape[0]*mask.Shape[1], tp)

	if cfg.Run.Steady {
		opts := solver.SteadyOptions{
			Top:    cfg.BC.Top,
			Bottom: cfg.BC.Bottom,
			Tp:     tpMap,
			Iters:  cfg.Run.Iters,
			Lr:     cfg.Run.Lr,
		}
		if opts.Top == "flux" {
			opts.Q = fill(mask.Shape[0]*mask.Shape[1], cfg.BC.Q)
		}
		if err := solver.RunSteady(f, opts); err != nil {
			return err
		}
	} else {
		dtFunc, err := constantFunc(cfg.Run.Dt)
		if err != nil {
			return err
		}
		qFunc, err := constantFunc(cfg.BC.Q)
		if err != nil {
			return err
		}
		opts := cfg.toSolverOptions()
		opts.Tp = tpMap
		if err := solver.Drive(f, cfg.Run.Tf, dtFunc, qFunc, opts); err != nil {
			return err
		}
	}

	io.Pf("forward solve finished over %d cells, dead=%v\n", n, f.Dead())

	return vtk.Write(cfg.DirOut+"/"+cfg.Key+".vtk", mask.Shape, size, map[string][]float64{
		"h":     f.HField(0),
		"se":    f.SeField(0),
		"theta": f.ThetaField(0),
		"k":     f.KField(0),
	}, []string{"h", "se", "theta", "k"})
}

// runEnsemble runs a particle/merging-particle-filter/BLX-α
// assimilation cycle: one forward step per cycle fanned out across
// the ensemble, followed by resampling against the configured
// observation, tracking the observed mean/variance trace.
func runEnsemble(cfg *Config) error {
	mask, size, err := cfg.BuildMask()
	if err != nil {
		return err
	}
	ec := cfg.Ensemble

	stream := ensembleStream(ec.Seed)
	caps := &richardsCapabilities{mask: mask, size: size, sensor: ec.Sensor}

	inds := make([]*ensemble.Individual, ec.Members)
	for i := range inds {
		params := make([]float64, 5)
		for j := range params {
			lo, hi := ec.ParamLo[j], ec.ParamHi[j]
			params[j] = lo + stream.Float64(0, 1)*(hi-lo)
		}
		h := fill(mask.Shape.Len(), cfg.InitialH)
		f, err := caps.Install(params, h)
		if err != nil {
			return err
		}
		inds[i] = &ensemble.Individual{Params: params, Field: f, Capabilities: caps}
	}
	ens := &ensemble.Ensemble{Individuals: inds, Stream: stream}

	resampler, err := buildResampler(ec)
	if err != nil {
		return err
	}

	tp, err := cfg.ResolveTp()
	if err != nil {
		return err
	}
	tpMap := fill(mask.Shape[0]*mask.Shape[1], tp)
	opts := solver.UnsteadyOptions{
		Top:    cfg.BC.Top,
		Bottom: cfg.BC.Bottom,
		Tp:     tpMap,
		Iters:  cfg.Run.Iters,
		Lr:     cfg.Run.Lr,
	}
	if opts.Top == "flux" {
		opts.Q = fill(mask.Shape[0]*mask.Shape[1], cfg.BC.Q)
	}

	forward := func(ind *ensemble.Individual) error {
		return solver.RunUnsteady(ind.Field, ec.Dt, opts)
	}

	var times, means, variances []float64
	for step, y := range ec.Y {
		if err := ens.StepParallel([]float64{y}, ec.R, resampler, forward); err != nil {
			return err
		}
		times = append(times, float64(step+1)*ec.Dt)
		obsMean := ens.ObserveMean()
		obsVar := ens.ObserveVar()
		means = append(means, obsMean[0])
		variances = append(variances, obsVar[0])
		io.Pf("cycle %d: observed mean=%.4g var=%.4g\n", step, obsMean[0], obsVar[0])
	}

	if err := diagnostics.MeanVarTrace(times, means, variances, "$h$"); err == nil {
		diagnostics.MeanVarTraceEnd(cfg.DirOut, cfg.Key+"_trace.eps", false)
	}

	mean, err := ens.Mean()
	if err != nil {
		return err
	}
	return vtk.Write(cfg.DirOut+"/"+cfg.Key+"_mean.vtk", mask.Shape, size, map[string][]float64{
		"h": mean.Field.HField(0),
	}, []string{"h"})
}

func buildResampler(ec *EnsembleConfig) (ensemble.Resampler, error) {
	switch ec.Method {
	case "", "pf":
		return ensemble.PF{}, nil
	case "mpf":
		return ensemble.MPF{}, nil
	case "blx":
		return ensemble.BLXAlpha{Alpha: ec.Alpha}, nil
	case "blxnoh":
		return ensemble.BLXAlphaNoH{Alpha: ec.Alpha}, nil
	default:
		return nil, chk.Err("unknown ensemble method %q", ec.Method)
	}
}
