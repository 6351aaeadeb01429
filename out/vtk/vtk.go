// Copyright 2016 The Richards Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package vtk implements the ASCII VTK STRUCTURED_GRID export used to
// inspect field and ensemble state in ParaView.
package vtk

import (
	"bytes"
	"math"
	"strconv"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// Write emits an ASCII VTK STRUCTURED_GRID file at path: a regular
// grid of shape (Nx,Ny,Nz) with cell-edge lengths size, one point per
// voxel-mask cell in z-major/y-mid/x-minor order, followed by every
// named scalar field in fields (flat array indexed the same way as
// voxel.Mask.Index, i.e. (ix*Ny+iy)*Nz+iz), with magnitudes below
// 1e-20 rounded to zero. The whole file is built up in memory, then
// handed to gosl/io's buffered writer in one call, matching the
// teacher's own "fill a bytes.Buffer, then io.WriteFile it" tooling
// idiom.
func Write(path string, shape [3]int, size [3]float64, fields map[string][]float64, order []string) error {
	var w bytes.Buffer

	nx, ny, nz := shape[0], shape[1], shape[2]
	n := nx * ny * nz

	w.WriteString("# vtk DataFile Version 2.0\nnumpyVTK\nASCII\n")
	w.WriteString("DATASET STRUCTURED_GRID\n")
	w.WriteString(itoa3(nx, ny, nz, "DIMENSIONS"))
	w.WriteString(itoaN(n, "POINTS", "float"))

	for iz := 0; iz < nz; iz++ {
		for iy := 0; iy < ny; iy++ {
			for ix := 0; ix < nx; ix++ {
				writePoint(&w, float64(ix)*size[0], float64(iy)*size[1], float64(iz)*size[2])
			}
		}
	}

	if len(order) == 0 {
		io.WriteFile(path, &w)
		return nil
	}
	w.WriteString(itoaN(n, "POINT_DATA", ""))
	for _, name := range order {
		values, ok := fields[name]
		if !ok {
			return chk.Err("out: field %q listed in order but not present in fields", name)
		}
		if len(values) != n {
			return chk.Err("out: field %q has length %d, want %d", name, len(values), n)
		}
		w.WriteString("SCALARS " + name + " float\n")
		w.WriteString("LOOKUP_TABLE default\n")
		idx := func(ix, iy, iz int) int { return (ix*ny+iy)*nz + iz }
		for iz := 0; iz < nz; iz++ {
			for iy := 0; iy < ny; iy++ {
				for ix := 0; ix < nx; ix++ {
					v := values[idx(ix, iy, iz)]
					if math.Abs(v) < 1e-20 {
						v = 0
					}
					writeScalar(&w, v)
				}
			}
		}
	}
	io.WriteFile(path, &w)
	return nil
}

func itoa3(a, b, c int, keyword string) string {
	return keyword + " " + strconv.Itoa(a) + " " + strconv.Itoa(b) + " " + strconv.Itoa(c) + "\n"
}

func itoaN(n int, keyword, suffix string) string {
	s := keyword + " " + strconv.Itoa(n)
	if suffix != "" {
		s += " " + suffix
	}
	return s + "\n"
}

func writePoint(w *bytes.Buffer, x, y, z float64) {
	w.WriteString(ftoa(x))
	w.WriteByte(' ')
	w.WriteString(ftoa(y))
	w.WriteByte(' ')
	w.WriteString(ftoa(z))
	w.WriteByte('\n')
}

func writeScalar(w *bytes.Buffer, v float64) {
	w.WriteString(ftoa(v))
	w.WriteByte('\n')
}

func ftoa(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
