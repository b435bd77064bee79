// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package model

import (
	"math"

	"github.com/cpmech/gopcga/grid"
	"github.com/cpmech/gosl/chk"
	"gonum.org/v1/gonum/spatial/kdtree"
)

// Stations holds observation points and their interpolation weights
//  The value of a field at station i is computed by inverse-distance weighting
//  of the nearest grid cells:
//    v_i = Σ_k W[i][k] s[Cells[i][k]]
type Stations struct {
	X     [][]float64 // [nsta][2] coordinates
	Cells [][]int     // [nsta][nnear] indices of nearest cells
	W     [][]float64 // [nsta][nnear] weights
	Npts  int         // number of grid cells
}

// NewStations locates stations in grid g
//  nnear -- number of nearest cells used for interpolation
func NewStations(g *grid.Grid, X [][]float64, nnear int) (o *Stations, err error) {
	if len(X) == 0 {
		return nil, chk.Err("stations: at least one station is required")
	}
	if nnear < 1 {
		nnear = 1
	}
	if nnear > g.Npts() {
		nnear = g.Npts()
	}
	pts := g.Points()
	list := make(cells, len(pts))
	for i, p := range pts {
		list[i] = cell{idx: i, x: p[0], y: p[1]}
	}
	tree := kdtree.New(list, false)
	tol := 1e-8 * math.Min(g.Dx[0], g.Dx[1])
	o = &Stations{X: X, Cells: make([][]int, len(X)), W: make([][]float64, len(X)), Npts: g.Npts()}
	for i, x := range X {
		if len(x) != 2 {
			return nil, chk.Err("stations: station %d must have 2 coordinates. %v is invalid", i, x)
		}
		keeper := kdtree.NewNKeeper(nnear)
		tree.NearestSet(keeper, cell{idx: -1, x: x[0], y: x[1]})
		for _, c := range keeper.Heap {
			o.Cells[i] = append(o.Cells[i], c.Comparable.(cell).idx)
			o.W[i] = append(o.W[i], math.Sqrt(c.Dist))
		}
		if o.W[i][0] < tol {
			o.Cells[i], o.W[i] = o.Cells[i][:1], []float64{1}
			continue
		}
		var sum float64
		for k, d := range o.W[i] {
			o.W[i][k] = 1.0 / d
			sum += o.W[i][k]
		}
		for k := range o.W[i] {
			o.W[i][k] /= sum
		}
	}
	return
}

// EveryCell returns the centres of every stride-th cell along x and y
func EveryCell(g *grid.Grid, stride int) (X [][]float64) {
	if stride < 1 {
		stride = 1
	}
	x, y := g.Coords()
	for j := 0; j < len(y); j += stride {
		for i := 0; i < len(x); i += stride {
			X = append(X, []float64{x[i], y[j]})
		}
	}
	return
}

// Nsta returns the number of stations
func (o *Stations) Nsta() int {
	return len(o.X)
}

// Check checks the size of field s
func (o *Stations) Check(s []float64) error {
	if len(s) != o.Npts {
		return chk.Err("field must have %d values. %d is invalid", o.Npts, len(s))
	}
	return nil
}

// At returns the value of field s at station i
func (o *Stations) At(s []float64, i int) (v float64) {
	for k, c := range o.Cells[i] {
		v += o.W[i][k] * s[c]
	}
	return
}

// cell is a grid cell stored in the k-d tree
type cell struct {
	idx  int
	x, y float64
}

// Compare implements kdtree.Comparable
func (p cell) Compare(c kdtree.Comparable, d kdtree.Dim) float64 {
	q := c.(cell)
	if d == 0 {
		return p.x - q.x
	}
	return p.y - q.y
}

// Dims implements kdtree.Comparable
func (p cell) Dims() int { return 2 }

// Distance implements kdtree.Comparable and returns the squared distance
func (p cell) Distance(c kdtree.Comparable) float64 {
	q := c.(cell)
	dx, dy := p.x-q.x, p.y-q.y
	return dx*dx + dy*dy
}

// cells implements kdtree.Interface
type cells []cell

func (p cells) Index(i int) kdtree.Comparable         { return p[i] }
func (p cells) Len() int                              { return len(p) }
func (p cells) Slice(start, end int) kdtree.Interface { return p[start:end] }
func (p cells) Pivot(d kdtree.Dim) int {
	return kdtree.Partition(plane{cells: p, Dim: d}, kdtree.MedianOfRandoms(plane{cells: p, Dim: d}, 100))
}

// plane implements kdtree.SortSlicer
type plane struct {
	cells
	kdtree.Dim
}

func (p plane) Less(i, j int) bool {
	if p.Dim == 0 {
		return p.cells[i].x < p.cells[j].x
	}
	return p.cells[i].y < p.cells[j].y
}
func (p plane) Slice(start, end int) kdtree.SortSlicer { return plane{cells: p.cells[start:end], Dim: p.Dim} }
func (p plane) Swap(i, j int)                          { p.cells[i], p.cells[j] = p.cells[j], p.cells[i] }
