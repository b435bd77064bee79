// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package grid implements regular two-dimensional grids of cell-centred values
package grid

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"
)

// Grid holds a regular grid with N[0]×N[1] cells
//  Note: fields are stored as flat slices with the x-index running fastest;
//        i.e. the value of cell (i,j) is at position j*Nx + i
type Grid struct {
	N    []int     `json:"n"`    // number of cells along x and y: [Nx, Ny]
	Dx   []float64 `json:"dx"`   // spacing along x and y
	Xmin []float64 `json:"xmin"` // coordinates of first cell centre. default = dx/2
	Xmax []float64 `json:"xmax"` // coordinates of last cell centre. default = N*dx - dx/2
}

// New returns a new grid with default bounds
func New(n []int, dx []float64) (o *Grid, err error) {
	o = &Grid{N: n, Dx: dx}
	err = o.Init()
	return
}

// Init checks dimensions and sets default bounds
func (o *Grid) Init() (err error) {
	if len(o.N) != 2 {
		return chk.Err("grid: number of cells must be given as [Nx, Ny]. N=%v is invalid", o.N)
	}
	if o.N[0] < 1 || o.N[1] < 1 {
		return chk.Err("grid: number of cells must be positive. N=%v is invalid", o.N)
	}
	if len(o.Dx) == 1 {
		o.Dx = []float64{o.Dx[0], o.Dx[0]}
	}
	if len(o.Dx) != 2 {
		return chk.Err("grid: spacing must be given as [dx, dy]. dx=%v is invalid", o.Dx)
	}
	if o.Dx[0] <= 0 || o.Dx[1] <= 0 {
		return chk.Err("grid: spacing must be positive. dx=%v is invalid", o.Dx)
	}
	if len(o.Xmin) == 0 {
		o.Xmin = []float64{o.Dx[0] / 2.0, o.Dx[1] / 2.0}
	}
	if len(o.Xmax) == 0 {
		o.Xmax = make([]float64, 2)
		for k := 0; k < 2; k++ {
			o.Xmax[k] = o.Xmin[k] + float64(o.N[k]-1)*o.Dx[k]
		}
	}
	if len(o.Xmin) != 2 || len(o.Xmax) != 2 {
		return chk.Err("grid: bounds must have two components. xmin=%v xmax=%v", o.Xmin, o.Xmax)
	}
	for k := 0; k < 2; k++ {
		last := o.Xmin[k] + float64(o.N[k]-1)*o.Dx[k]
		if math.Abs(o.Xmax[k]-last) > BoundsTol*math.Max(1, math.Abs(last)) {
			return chk.Err("grid: xmax[%d]=%g does not match xmin + (N-1)·dx = %g", k, o.Xmax[k], last)
		}
	}
	return
}

// BoundsTol is the relative tolerance for xmax given in input files
var BoundsTol = 1e-10

// Nx returns the number of cells along x
func (o Grid) Nx() int { return o.N[0] }

// Ny returns the number of cells along y
func (o Grid) Ny() int { return o.N[1] }

// Npts returns the total number of cells
func (o Grid) Npts() int { return o.N[0] * o.N[1] }

// Index returns the position of cell (i,j) in flat fields
func (o Grid) Index(i, j int) int { return j*o.N[0] + i }

// Coords returns the coordinates of cell centres along x and y
func (o Grid) Coords() (x, y []float64) {
	x = utl.LinSpace(o.Xmin[0], o.Xmax[0], o.N[0])
	y = utl.LinSpace(o.Xmin[1], o.Xmax[1], o.N[1])
	return
}

// Points returns the list of cell centres with Nx*Ny rows and 2 columns.
// Rows follow the flat-field ordering.
func (o Grid) Points() (pts [][]float64) {
	x, y := o.Coords()
	nx := len(x)
	pts = make([][]float64, nx*len(y))
	for k := range pts {
		pts[k] = []float64{x[k%nx], y[k/nx]}
	}
	return
}

// Extent returns the physical extent of the cell faces: [xmin, xmax, ymin, ymax]
func (o Grid) Extent() []float64 {
	return []float64{
		o.Xmin[0] - o.Dx[0]/2.0, o.Xmax[0] + o.Dx[0]/2.0,
		o.Xmin[1] - o.Dx[1]/2.0, o.Xmax[1] + o.Dx[1]/2.0,
	}
}

// Reshape converts a flat field into an Ny×Nx matrix
func (o Grid) Reshape(v []float64) (a [][]float64, err error) {
	nx, ny := o.N[0], o.N[1]
	if len(v) != nx*ny {
		return nil, chk.Err("grid: cannot reshape field with %d values into (%d,%d)", len(v), ny, nx)
	}
	a = make([][]float64, ny)
	for j := 0; j < ny; j++ {
		a[j] = make([]float64, nx)
		copy(a[j], v[j*nx:(j+1)*nx])
	}
	return
}

// Flatten converts an Ny×Nx matrix back into a flat field
func (o Grid) Flatten(a [][]float64) (v []float64, err error) {
	nx, ny := o.N[0], o.N[1]
	if len(a) != ny {
		return nil, chk.Err("grid: matrix has %d rows but Ny=%d", len(a), ny)
	}
	v = make([]float64, 0, nx*ny)
	for j, row := range a {
		if len(row) != nx {
			return nil, chk.Err("grid: row %d has %d columns but Nx=%d", j, len(row), nx)
		}
		v = append(v, row...)
	}
	return
}
