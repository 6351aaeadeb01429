// Copyright 2016 The Richards Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package voxel implements the dense active-cell mask and the
// top/bottom boundary column lists that the Richards solver and
// the field state are built around.
package voxel

import "github.com/cpmech/gosl/chk"

// Shape holds the voxel grid dimensions (Nx, Ny, Nz).
type Shape [3]int

// Len returns the total number of cells Nx*Ny*Nz.
func (s Shape) Len() int { return s[0] * s[1] * s[2] }

// Mask is a dense row-major boolean array over a Shape. True marks an
// active soil cell; false marks a void cell (obstacle or air above
// the topography).
type Mask struct {
	Shape Shape
	Data  []bool
}

// NewMask allocates a mask with every cell active.
func NewMask(shape Shape) *Mask {
	m := &Mask{Shape: shape, Data: make([]bool, shape.Len())}
	for i := range m.Data {
		m.Data[i] = true
	}
	return m
}

// Index converts a 3D cell coordinate into the flat row-major index
// used by every array parallel to this mask.
func (m *Mask) Index(ix, iy, iz int) int {
	return (ix*m.Shape[1]+iy)*m.Shape[2] + iz
}

// At reports whether the cell at (ix,iy,iz) is active. Out-of-range
// indices are treated as void.
func (m *Mask) At(ix, iy, iz int) bool {
	if ix < 0 || iy < 0 || iz < 0 || ix >= m.Shape[0] || iy >= m.Shape[1] || iz >= m.Shape[2] {
		return false
	}
	return m.Data[m.Index(ix, iy, iz)]
}

// Set marks the cell at (ix,iy,iz) active or void.
func (m *Mask) Set(ix, iy, iz int, active bool) {
	m.Data[m.Index(ix, iy, iz)] = active
}

// ColumnList is a parallel triple of cell indices (IX, IY, IZ), one
// entry per (ix,iy) column that contains at least one active cell.
type ColumnList struct {
	IX, IY, IZ []int
}

// Len returns the number of listed cells.
func (c ColumnList) Len() int { return len(c.IX) }

// BuildColumns scans every (ix,iy) column of the mask and returns the
// top list (highest active iz per column) and the bottom list (lowest
// active iz per column). Columns with no active cell are omitted from
// both lists.
func BuildColumns(m *Mask) (top, bottom ColumnList) {
	nx, ny, nz := m.Shape[0], m.Shape[1], m.Shape[2]
	for ix := 0; ix < nx; ix++ {
		for iy := 0; iy < ny; iy++ {
			topFound, bottomFound := false, false
			for iz := nz - 1; iz >= 0; iz-- {
				if m.At(ix, iy, iz) {
					top.IX = append(top.IX, ix)
					top.IY = append(top.IY, iy)
					top.IZ = append(top.IZ, iz)
					topFound = true
					break
				}
			}
			if !topFound {
				continue
			}
			for iz := 0; iz < nz; iz++ {
				if m.At(ix, iy, iz) {
					bottom.IX = append(bottom.IX, ix)
					bottom.IY = append(bottom.IY, iy)
					bottom.IZ = append(bottom.IZ, iz)
					bottomFound = true
					break
				}
			}
			if !bottomFound {
				chk.Panic("voxel: column (%d,%d) has a top cell but no bottom cell; mask is inconsistent", ix, iy)
			}
		}
	}
	return
}
