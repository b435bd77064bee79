// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ana

import (
	"context"
	"math"
	"testing"

	"github.com/cpmech/gopcga/grid"
	"github.com/cpmech/gopcga/model"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/plt"
	"github.com/cpmech/gosl/utl"
)

func Test_beach01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("beach01")

	var bb BarredBeach
	err := bb.Init(nil)
	if err != nil {
		tst.Errorf("Init failed:\n%v", err)
		return
	}

	// far from bar: planar beach
	chk.Float64(tst, "h(0,0)", 1e-15, bb.Depth(0, 0), 0.5)
	chk.Float64(tst, "h(500,0)", 1e-10, bb.Depth(500, 0), 0.5+0.011*500)

	// on top of bar
	xb := bb.Xbar + bb.Amp*math.Sin(2*math.Pi*50/bb.Lambda)
	chk.Float64(tst, "h(xb,50)", 1e-14, bb.Depth(xb, 50), 0.5+0.011*xb-1)

	// depth is never smaller than hmin
	g, _ := grid.New([]int{110, 83}, []float64{5, 5})
	s := bb.Field(g)
	chk.Int(tst, "len(s)", len(s), g.Npts())
	smin, smax := utl.MinMax(s)
	io.Pforan("min(s) = %v  max(s) = %v\n", smin, smax)
	if smin < bb.Hmin-1e-15 {
		tst.Errorf("depth must not be smaller than hmin\n")
		return
	}
	if smax > 7 {
		tst.Errorf("depth must be smaller than 7 m\n")
		return
	}

	// first coordinate runs fastest
	pts := g.Points()
	chk.Float64(tst, "s[1]", 1e-15, s[1], bb.Depth(pts[1][0], pts[1][1]))
	chk.Float64(tst, "s[110]", 1e-15, s[110], bb.Depth(2.5, 7.5))

	// parameters
	err = bb.Init(dbf.Params{&dbf.P{N: "slope", V: 0.02}, &dbf.P{N: "bar", V: 0}})
	if err != nil {
		tst.Errorf("Init failed:\n%v", err)
		return
	}
	chk.Float64(tst, "h(100,3)", 1e-15, bb.Depth(100, 3), 2.5)
	if bb.Init(dbf.Params{&dbf.P{N: "depth", V: 1}}) == nil {
		tst.Errorf("Init must fail with unknown parameter\n")
		return
	}
	if bb.Init(dbf.Params{&dbf.P{N: "wbar", V: 0}}) == nil {
		tst.Errorf("Init must fail with zero width\n")
		return
	}

	if chk.Verbose {
		bb.Init(nil)
		x, y := g.Coords()
		X, Y := utl.MeshGrid2dV(x, y)
		Z, _ := g.Reshape(bb.Field(g))
		plt.Reset(false, nil)
		plt.ContourF(X, Y, Z, &plt.A{CbarLbl: "depth"})
		plt.Equal()
		plt.Save("/tmp/gopcga", "ana_beach01")
	}
}

func Test_synthetic01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("synthetic01")

	g, _ := grid.New([]int{10, 6}, []float64{5, 5})
	sta, _ := model.NewStations(g, model.EveryCell(g, 1), 1)
	fwd := &model.Adapter{New: func() (model.Runner, error) {
		mdl, err := model.New("lin", nil, sta)
		if err != nil {
			return nil, err
		}
		return &model.Simulator{Model: mdl}, nil
	}}
	var bb BarredBeach
	bb.Init(nil)
	s := bb.Field(g)
	ctx := context.Background()

	// without noise: observations equal the field
	d, err := SyntheticObs(ctx, fwd, s, 0, 0)
	if err != nil {
		tst.Errorf("SyntheticObs failed:\n%v", err)
		return
	}
	chk.Array(tst, "d", 1e-15, d, s)

	// with noise: reproducible and with the right magnitude
	d1, _ := SyntheticObs(ctx, fwd, s, 0.1, 1234)
	d2, _ := SyntheticObs(ctx, fwd, s, 0.1, 1234)
	chk.Array(tst, "d1 = d2", 1e-15, d1, d2)
	var sum float64
	for i := range d1 {
		sum += (d1[i] - s[i]) * (d1[i] - s[i])
	}
	std := math.Sqrt(sum / float64(len(d1)))
	io.Pforan("std = %v\n", std)
	if std < 0.05 || std > 0.2 {
		tst.Errorf("standard deviation of noise is incorrect: %g\n", std)
		return
	}
}
