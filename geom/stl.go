// Copyright 2016 The Richards Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package geom implements STL mesh ingestion (ASCII and binary) and
// voxelisation of the enclosed solid onto a dense Cartesian grid via
// the generalised winding number, feeding the voxel mask that the
// Field and solver packages operate on.
package geom

import (
	"bufio"
	"encoding/binary"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/richards/voxel"
)

// Triangle is one facet's three vertices, in file order.
type Triangle [3][3]float64

// Mesh is a flat collection of triangles read from an STL file; patch
// boundaries are not preserved, only the geometry.
type Mesh struct {
	Triangles []Triangle
}

// ReadASCII parses an ASCII STL file.
func ReadASCII(path string) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, chk.Err("geom: cannot open %q: %v", path, err)
	}
	defer f.Close()

	var tris []Triangle
	var cur [3][3]float64
	nv := 0
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if fields[0] != "vertex" || len(fields) < 4 {
			continue
		}
		x, err1 := strconv.ParseFloat(fields[1], 64)
		y, err2 := strconv.ParseFloat(fields[2], 64)
		z, err3 := strconv.ParseFloat(fields[3], 64)
		if err1 != nil || err2 != nil || err3 != nil {
			return nil, chk.Err("geom: malformed vertex line %q", scanner.Text())
		}
		cur[nv] = [3]float64{x, y, z}
		nv++
		if nv == 3 {
			tris = append(tris, Triangle(cur))
			nv = 0
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, chk.Err("geom: error reading %q: %v", path, err)
	}
	return &Mesh{Triangles: tris}, nil
}

// ReadBinary parses a binary STL file: an 80-byte header, a
// little-endian uint32 triangle count, then per triangle a 12-byte
// facet normal (discarded), 36 bytes of vertex data (3x float32x3),
// and a 2-byte attribute field (discarded).
func ReadBinary(path string) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, chk.Err("geom: cannot open %q: %v", path, err)
	}
	defer f.Close()

	header := make([]byte, 80)
	if _, err := io.ReadFull(f, header); err != nil {
		return nil, chk.Err("geom: %q: short header: %v", path, err)
	}

	var count uint32
	if err := binary.Read(f, binary.LittleEndian, &count); err != nil {
		return nil, chk.Err("geom: %q: cannot read triangle count: %v", path, err)
	}

	tris := make([]Triangle, 0, count)
	var rec [50]byte // 12 normal + 36 vertex + 2 attribute
	for i := uint32(0); i < count; i++ {
		if _, err := io.ReadFull(f, rec[:]); err != nil {
			return nil, chk.Err("geom: %q: short triangle record %d: %v", path, i, err)
		}
		var tri Triangle
		for v := 0; v < 3; v++ {
			for c := 0; c < 3; c++ {
				off := 12 + (v*3+c)*4
				bits := binary.LittleEndian.Uint32(rec[off : off+4])
				tri[v][c] = float64(math.Float32frombits(bits))
			}
		}
		tris = append(tris, tri)
	}
	return &Mesh{Triangles: tris}, nil
}

// BoundingBox returns the mesh's axis-aligned (min,max) extents.
func (m *Mesh) BoundingBox() (min, max [3]float64) {
	min = [3]float64{math.Inf(1), math.Inf(1), math.Inf(1)}
	max = [3]float64{math.Inf(-1), math.Inf(-1), math.Inf(-1)}
	for _, t := range m.Triangles {
		for _, v := range t {
			for c := 0; c < 3; c++ {
				if v[c] < min[c] {
					min[c] = v[c]
				}
				if v[c] > max[c] {
					max[c] = v[c]
				}
			}
		}
	}
	return
}

// windingThreshold is the generalised winding number above which a
// point is classified as inside the mesh.
const windingThreshold = 2*math.Pi - 1e-10

// Inside classifies point p using the generalised winding number: the
// signed solid angle subtended by every triangle, summed.
func (m *Mesh) Inside(p [3]float64) bool {
	sum := 0.0
	for _, t := range m.Triangles {
		var a, b, c [3]float64
		for i := 0; i < 3; i++ {
			a[i] = t[0][i] - p[i]
			b[i] = t[1][i] - p[i]
			c[i] = t[2][i] - p[i]
		}
		na := math.Sqrt(a[0]*a[0] + a[1]*a[1] + a[2]*a[2])
		nb := math.Sqrt(b[0]*b[0] + b[1]*b[1] + b[2]*b[2])
		nc := math.Sqrt(c[0]*c[0] + c[1]*c[1] + c[2]*c[2])

		det := a[0]*(b[1]*c[2]-b[2]*c[1]) - a[1]*(b[0]*c[2]-b[2]*c[0]) + a[2]*(b[0]*c[1]-b[1]*c[0])
		denom := na*nb*nc + nc*dot(a, b) + na*dot(b, c) + nb*dot(c, a)
		sum += math.Atan2(det, denom)
	}
	return sum >= windingThreshold
}

func dot(u, v [3]float64) float64 { return u[0]*v[0] + u[1]*v[1] + u[2]*v[2] }

// Voxelize samples cell centres of a regular grid of cell-edge length
// size over the mesh's bounding box (rescaled from mm to m first when
// unit=="mm"), classifying each as inside/outside via Inside (each
// centre is converted back to mesh units for that test). Returns the
// resulting mask and its shape.
func Voxelize(mesh *Mesh, size [3]float64, unit string) (*voxel.Mask, [3]int, error) {
	min, max := mesh.BoundingBox()
	scale := 1.0
	if unit == "mm" {
		scale = 1000.0
		for i := 0; i < 3; i++ {
			min[i] /= 1000.0
			max[i] /= 1000.0
		}
	} else if unit != "m" && unit != "" {
		return nil, [3]int{}, chk.Err("geom: unknown unit %q, want \"mm\" or \"m\"", unit)
	}

	shape := voxel.Shape{
		int((max[0] - min[0]) / size[0]),
		int((max[1] - min[1]) / size[1]),
		int((max[2] - min[2]) / size[2]),
	}
	mask := voxel.NewMask(shape)

	for ix := 0; ix < shape[0]; ix++ {
		x := (float64(ix)+0.5)*size[0] + min[0]
		for iy := 0; iy < shape[1]; iy++ {
			y := (float64(iy)+0.5)*size[1] + min[1]
			for iz := 0; iz < shape[2]; iz++ {
				z := (float64(iz)+0.5)*size[2] + min[2]
				mask.Set(ix, iy, iz, mesh.Inside([3]float64{x * scale, y * scale, z * scale}))
			}
		}
	}
	return mask, shape, nil
}
