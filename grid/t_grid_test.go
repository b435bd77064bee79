// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package grid

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

func Test_grid01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("grid01. points")

	for _, dat := range []struct {
		n  []int
		dx []float64
	}{
		{[]int{110, 83}, []float64{5, 5}},
		{[]int{3, 2}, []float64{1, 2}},
		{[]int{1, 4}, []float64{0.5, 0.5}},
		{[]int{7, 1}, []float64{2.5, 1}},
	} {
		g, err := New(dat.n, dat.dx)
		if err != nil {
			tst.Errorf("New failed: %v\n", err)
			return
		}
		pts := g.Points()
		nx, ny := dat.n[0], dat.n[1]
		chk.Int(tst, "npts", len(pts), nx*ny)
		chk.Int(tst, "npts", g.Npts(), nx*ny)
		chk.Float64(tst, "x0", 1e-15, pts[0][0], dat.dx[0]/2)
		chk.Float64(tst, "y0", 1e-15, pts[0][1], dat.dx[1]/2)
		for k, p := range pts {
			if len(p) != 2 {
				tst.Errorf("point %d must have 2 coordinates\n", k)
				return
			}
			i, j := k%nx, k/nx
			if math.Abs(p[0]-(float64(i)+0.5)*dat.dx[0]) > 1e-12 {
				tst.Errorf("x-coordinate of point %d is incorrect: %g\n", k, p[0])
				return
			}
			if math.Abs(p[1]-(float64(j)+0.5)*dat.dx[1]) > 1e-12 {
				tst.Errorf("y-coordinate of point %d is incorrect: %g\n", k, p[1])
				return
			}
		}
		io.Pforan("N=%v dx=%v last=%v\n", dat.n, dat.dx, pts[len(pts)-1])
	}
}

func Test_grid02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("grid02. reshape and flatten")

	g, err := New([]int{4, 3}, []float64{1})
	if err != nil {
		tst.Errorf("New failed: %v\n", err)
		return
	}
	v := []float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11}
	a, err := g.Reshape(v)
	if err != nil {
		tst.Errorf("Reshape failed: %v\n", err)
		return
	}
	chk.Deep2(tst, "a", 1e-17, a, [][]float64{
		{0, 1, 2, 3},
		{4, 5, 6, 7},
		{8, 9, 10, 11},
	})
	b, err := g.Flatten(a)
	if err != nil {
		tst.Errorf("Flatten failed: %v\n", err)
		return
	}
	chk.Array(tst, "v", 1e-17, b, v)

	_, err = g.Reshape(v[:11])
	if err == nil {
		tst.Errorf("Reshape should have failed with wrong length\n")
		return
	}
	_, err = g.Flatten(a[:2])
	if err == nil {
		tst.Errorf("Flatten should have failed with wrong number of rows\n")
	}
}

func Test_grid03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("grid03. flips and transects")

	a := [][]float64{
		{1, 2, 3},
		{4, 5, 6},
	}
	chk.Deep2(tst, "flipud", 1e-17, FlipUD(a), [][]float64{{4, 5, 6}, {1, 2, 3}})
	chk.Deep2(tst, "fliplr", 1e-17, FlipLR(a), [][]float64{{3, 2, 1}, {6, 5, 4}})
	chk.Deep2(tst, "rot180", 1e-17, Rot180(a), [][]float64{{-6, -5, -4}, {-3, -2, -1}})
	chk.Array(tst, "row1", 1e-17, Row(a, 1), []float64{4, 5, 6})
	chk.Deep2(tst, "a unchanged", 1e-17, a, [][]float64{{1, 2, 3}, {4, 5, 6}})

	g, _ := New([]int{110, 83}, []float64{5, 5})
	chk.Array(tst, "extent", 1e-12, g.Extent(), []float64{0, 550, 0, 415})
	chk.Int(tst, "index", g.Index(3, 2), 223)
}

func Test_grid04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("grid04. invalid input")

	_, err := New([]int{3}, []float64{1, 1})
	if err == nil {
		tst.Errorf("New should have failed with one dimension\n")
		return
	}
	_, err = New([]int{3, 0}, []float64{1, 1})
	if err == nil {
		tst.Errorf("New should have failed with zero cells\n")
		return
	}
	_, err = New([]int{3, 3}, []float64{1, -1})
	if err == nil {
		tst.Errorf("New should have failed with negative spacing\n")
	}
}

func Test_grid05(tst *testing.T) {

	//verbose()
	chk.PrintTitle("grid05. bounds consistent with spacing")

	g := &Grid{N: []int{6, 4}, Dx: []float64{5, 5}, Xmin: []float64{0, 0}, Xmax: []float64{25, 15}}
	if err := g.Init(); err != nil {
		tst.Errorf("Init failed: %v\n", err)
		return
	}
	pts := g.Points()
	chk.Array(tst, "p1", 1e-15, pts[1], []float64{5, 0})
	chk.Array(tst, "p6", 1e-15, pts[6], []float64{0, 5})

	g = &Grid{N: []int{6, 4}, Dx: []float64{5, 5}, Xmin: []float64{0, 0}, Xmax: []float64{50, 30}}
	if err := g.Init(); err == nil {
		tst.Errorf("Init should have failed with xmax inconsistent with dx\n")
		return
	}
	g = &Grid{N: []int{6, 4}, Dx: []float64{5, 5}, Xmin: []float64{0, 0}, Xmax: []float64{25, 16}}
	if err := g.Init(); err == nil {
		tst.Errorf("Init should have failed with ymax inconsistent with dy\n")
	}
}
