// Copyright 2016 The Richards Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/io"

	"github.com/cpmech/richards/ensemble"
	"github.com/cpmech/richards/et"
	"github.com/cpmech/richards/field"
	"github.com/cpmech/richards/geom"
	"github.com/cpmech/richards/soil"
	"github.com/cpmech/richards/solver"
	"github.com/cpmech/richards/voxel"
)

// ensembleStream returns a reproducible seeded stream when seed!=0,
// falling back to the package-wide default stream otherwise.
func ensembleStream(seed int64) ensemble.Stream {
	if seed == 0 {
		return ensemble.DefaultStream
	}
	return ensemble.NewSeededStream(seed)
}

// MeshConfig ingests a voxel mask from an STL file instead of an
// all-active box of the given Shape.
type MeshConfig struct {
	Path   string     `json:"path"`
	Binary bool       `json:"binary"`
	Unit   string     `json:"unit"` // "m" or "mm"
	Size   [3]float64 `json:"size"`
}

// SoilConfig builds the per-cell van Genuchten parameters, either
// uniformly (Texture=="") or by Carsel-Parrish sampling a named USDA
// texture, broadcasting one sample over the whole mask.
type SoilConfig struct {
	Texture string  `json:"texture"`
	Seed    int64   `json:"seed"`
	Ks      float64 `json:"ks"`
	ThetaS  float64 `json:"thetas"`
	ThetaR  float64 `json:"thetar"`
	Alpha   float64 `json:"alpha"`
	N       float64 `json:"n"`
}

// BCConfig configures the boundary conditions and plant uptake of one
// solver call.
type BCConfig struct {
	Top    string  `json:"top"`
	Bottom string  `json:"bottom"`
	Q      float64 `json:"q"`
	Tp     float64 `json:"tp"`
}

// RunConfig configures the time-stepping schedule.
type RunConfig struct {
	Steady bool    `json:"steady"`
	Iters  int     `json:"iters"`
	Lr     float64 `json:"lr"`
	Dt     float64 `json:"dt"`
	Tf     float64 `json:"tf"`
}

// EnsembleConfig configures a particle/merging-particle-filter run in
// place of a single deterministic forward solve.
type EnsembleConfig struct {
	Members int         `json:"members"`
	Method  string      `json:"method"` // "pf", "mpf", "blx", "blxnoh"
	Alpha   float64     `json:"alpha"`  // BLX-alpha spread
	Sensor  int         `json:"sensor"` // flat cell index observed
	Seed    int64       `json:"seed"`
	Dt      float64     `json:"dt"`         // forward-model step between assimilation cycles
	Y       []float64   `json:"y"`          // one observation per assimilation cycle
	R       [][]float64 `json:"r"`          // observation covariance, reused every cycle
	ParamLo [5]float64  `json:"paramlo"`    // sampling lower bound: Ks,ThetaS,ThetaR,Alpha,N
	ParamHi [5]float64  `json:"paramhi"`    // sampling upper bound
}

// WeatherConfig supplies the daily weather observation ET needs to
// derive a uniform transpiration rate via FAO Penman-Monteith plus
// Campbell's partition, in lieu of a directly specified BC.Tp.
type WeatherConfig struct {
	DayOfYear  float64 `json:"dayofyear"`
	Latitude   float64 `json:"latitude"`   // degrees
	Tmax       float64 `json:"tmax"`       // deg C
	Tmin       float64 `json:"tmin"`       // deg C
	Wind       float64 `json:"wind"`       // m/s, measured at WindHeight
	WindHeight float64 `json:"windheight"` // m
	Sunshine   float64 `json:"sunshine"`   // hours
	RhMin      float64 `json:"rhmin"`      // %
	Daylight   bool    `json:"daylight"`
	CropH      float64 `json:"croph"` // crop height, m
	Kc         float64 `json:"kc"`
	LAI        float64 `json:"lai"`
}

// Config is the top-level simulation description read from a JSON
// file, mirroring the teacher's own `inp.Simulation` layout.
type Config struct {
	Shape    [3]int          `json:"shape"`
	Size     [3]float64      `json:"size"`
	Mesh     *MeshConfig     `json:"mesh"`
	Soil     SoilConfig      `json:"soil"`
	InitialH float64         `json:"initialh"`
	BC       BCConfig        `json:"bc"`
	Run      RunConfig       `json:"run"`
	Ensemble *EnsembleConfig `json:"ensemble"`
	Weather  *WeatherConfig  `json:"weather"`
	DirOut   string          `json:"dirout"`
	Key      string          `json:"key"`
}

// ReadConfig reads and decodes a simulation configuration file.
func ReadConfig(path string) (*Config, error) {
	b, err := io.ReadFile(path)
	if err != nil {
		return nil, chk.Err("cannot read configuration file %q: %v", path, err)
	}
	var c Config
	if err := json.Unmarshal(b, &c); err != nil {
		return nil, chk.Err("cannot unmarshal configuration file %q: %v", path, err)
	}
	if c.DirOut == "" {
		c.DirOut = "/tmp/richards"
	}
	if c.Key == "" {
		c.Key = "run"
	}
	if c.Run.Lr == 0 {
		c.Run.Lr = 0.9
	}
	return &c, nil
}

// BuildMask constructs the voxel mask: either an all-active box of
// c.Shape, or the voxelisation of an STL mesh named by c.Mesh.
func (c *Config) BuildMask() (*voxel.Mask, [3]float64, error) {
	if c.Mesh == nil {
		return voxel.NewMask(voxel.Shape(c.Shape)), c.Size, nil
	}
	var mesh *geom.Mesh
	var err error
	if c.Mesh.Binary {
		mesh, err = geom.ReadBinary(c.Mesh.Path)
	} else {
		mesh, err = geom.ReadASCII(c.Mesh.Path)
	}
	if err != nil {
		return nil, [3]float64{}, chk.Err("cannot read mesh %q: %v", c.Mesh.Path, err)
	}
	mask, shape, err := geom.Voxelize(mesh, c.Mesh.Size, c.Mesh.Unit)
	if err != nil {
		return nil, [3]float64{}, err
	}
	c.Shape = [3]int(shape)
	return mask, c.Mesh.Size, nil
}

// BuildField constructs an initial Field over mask using a single
// soil parameterisation: uniform constants from c.Soil, or one
// Carsel-Parrish draw broadcast over every cell when c.Soil.Texture
// names a USDA class.
func (c *Config) BuildField(mask *voxel.Mask, size [3]float64) (*field.Field, error) {
	n := mask.Shape.Len()
	ks, thetaR, alpha, vgN := c.Soil.Ks, c.Soil.ThetaR, c.Soil.Alpha, c.Soil.N
	thetaS := c.Soil.ThetaS
	if c.Soil.Texture != "" {
		tex, err := textureByName(c.Soil.Texture)
		if err != nil {
			return nil, err
		}
		stream := ensembleStream(c.Soil.Seed)
		samples, err := soil.Sample(tex, 1, stream)
		if err != nil {
			return nil, err
		}
		ks, thetaR, alpha, vgN = samples[0][0], samples[0][1], samples[0][2], samples[0][3]
	}

	in := field.Input{
		H:      fill(n, c.InitialH),
		K:      fill(n, ks),
		ThetaS: fill(n, thetaS),
		ThetaR: fill(n, thetaR),
		Alpha:  fill(n, alpha),
		N:      fill(n, vgN),
	}
	return field.New(mask, size, in)
}

func fill(n int, v float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}

func textureByName(name string) (soil.Texture, error) {
	table := map[string]soil.Texture{
		"sand": soil.Sand, "sandyloam": soil.SandyLoam, "loamysand": soil.LoamySand,
		"siltloam": soil.SiltLoam, "silt": soil.Silt, "clay": soil.Clay,
		"siltyclay": soil.SiltyClay, "sandyclay": soil.SandyClay,
		"siltyclayloam": soil.SiltyClayLoam, "clayloam": soil.ClayLoam,
		"sandyclayloam": soil.SandyClayLoam, "loam": soil.Loam,
	}
	tex, ok := table[name]
	if !ok {
		return soil.Texture{}, chk.Err("unknown soil texture %q", name)
	}
	return tex, nil
}

// toSolverOptions builds the unsteady solver options from c's boundary
// and run settings.
func (c *Config) toSolverOptions() solver.UnsteadyOptions {
	return solver.UnsteadyOptions{
		Top:    c.BC.Top,
		Bottom: c.BC.Bottom,
		Iters:  c.Run.Iters,
		Lr:     c.Run.Lr,
	}
}

// constantFunc wraps a scalar into a fun.Func, matching the teacher's
// own `fun.New("cte", ...)` construction idiom.
func constantFunc(value float64) (fun.Func, error) {
	f, err := fun.New("cte", dbf.Params{&dbf.P{N: "c", V: value}})
	if err != nil {
		return nil, chk.Err("cannot build constant function: %v", err)
	}
	return f, nil
}

// ResolveTp returns the uniform plant-uptake demand for BC.Tp: the
// configured constant, or one computed from c.Weather via FAO
// Penman-Monteith plus Campbell's partition when weather data is
// supplied.
func (c *Config) ResolveTp() (float64, error) {
	if c.Weather == nil {
		return c.BC.Tp, nil
	}
	w := c.Weather
	tMean := (w.Tmax + w.Tmin) / 2.0
	gamma := et.Gamma(101.3)
	es := et.SatVaporPressure(tMean)
	ea := et.ActualVaporPressure(tMean, w.RhMin)
	delta := et.SlopeVaporPressure(tMean)
	rn := et.NetRadiation(int(w.DayOfYear), w.Latitude, w.Sunshine, ea, w.Tmax, w.Tmin)
	g := et.SoilHeatFlux(rn, w.Daylight)
	u2 := et.WindAt2m(w.Wind, w.WindHeight)

	m := &et.ETModule{Kc: w.Kc, H: w.CropH, LAI: []float64{w.LAI}}
	_, tp := m.Reference(delta, rn, es, ea, gamma, tMean, g, u2, w.RhMin, nil)
	return tp[0], nil
}
