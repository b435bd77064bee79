// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package model

import (
	"context"
	"math"
	"testing"

	"github.com/cpmech/gopcga/grid"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/plt"
	"github.com/cpmech/gosl/utl"
	"gonum.org/v1/gonum/diff/fd"
)

func Test_stations01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("stations01. nearest cells")

	g, _ := grid.New([]int{11, 7}, []float64{5, 5})
	X := [][]float64{{2.5, 2.5}, {12.4, 7.6}, {52.5, 32.5}, {30, 20}}
	sta, err := NewStations(g, X, 4)
	if err != nil {
		tst.Errorf("NewStations failed: %v\n", err)
		return
	}
	chk.Int(tst, "nsta", sta.Nsta(), 4)

	// stations at cell centres use one cell
	chk.Ints(tst, "cells of sta 0", sta.Cells[0], []int{0})
	chk.Ints(tst, "cells of sta 2", sta.Cells[2], []int{g.Index(10, 6)})

	// brute force nearest distance
	pts := g.Points()
	for i, x := range X {
		dmin := math.Inf(1)
		for _, p := range pts {
			dmin = math.Min(dmin, math.Hypot(p[0]-x[0], p[1]-x[1]))
		}
		p := pts[sta.Cells[i][0]]
		chk.Float64(tst, io.Sf("nearest of sta %d", i), 1e-12, math.Hypot(p[0]-x[0], p[1]-x[1]), dmin)
		chk.Float64(tst, io.Sf("Σw of sta %d", i), 1e-15, utl.Sum(sta.W[i]), 1)
	}
	chk.Int(tst, "nearest of sta 1", sta.Cells[1][0], g.Index(2, 1))

	// interpolation of a linear field is exact at a cell-symmetric station
	s := make([]float64, g.Npts())
	for k, p := range pts {
		s[k] = 2*p[0] + 3*p[1]
	}
	chk.Float64(tst, "s(30,20)", 1e-12, sta.At(s, 3), 2*30+3*20)
	chk.Float64(tst, "s(2.5,2.5)", 1e-15, sta.At(s, 0), 12.5)

	// errors
	if err = sta.Check(s[1:]); err == nil {
		tst.Errorf("Check should have failed\n")
		return
	}
	if _, err = NewStations(g, nil, 1); err == nil {
		tst.Errorf("NewStations should have failed without stations\n")
	}
}

func Test_stations02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("stations02. every cell")

	g, _ := grid.New([]int{5, 4}, []float64{1, 1})
	X := EveryCell(g, 2)
	chk.Deep2(tst, "X", 1e-15, X, [][]float64{{0.5, 0.5}, {2.5, 0.5}, {4.5, 0.5}, {0.5, 2.5}, {2.5, 2.5}, {4.5, 2.5}})
	chk.Int(tst, "all", len(EveryCell(g, 0)), 20)
}

func Test_wave01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("wave01. dispersion relation")

	g := 9.81
	for _, T := range []float64{4, 8, 12} {
		ω := 2 * math.Pi / T
		for _, h := range []float64{0.1, 1, 5, 20, 500} {
			k, err := Wavenumber(ω, h, g)
			if err != nil {
				tst.Errorf("Wavenumber failed: %v\n", err)
				return
			}
			chk.Float64(tst, io.Sf("T=%g h=%g", T, h), 1e-10, g*k*math.Tanh(k*h), ω*ω)
		}
	}

	// shallow and deep water limits
	ω := 2 * math.Pi / 12
	k, _ := Wavenumber(ω, 0.1, g)
	chk.Float64(tst, "shallow c", 1e-3, ω/k, math.Sqrt(g*0.1))
	k, _ = Wavenumber(ω, 1000, g)
	chk.Float64(tst, "deep c", 1e-8, ω/k, g/ω)

	if _, err := Wavenumber(ω, 0, g); err == nil {
		tst.Errorf("Wavenumber should have failed with h=0\n")
	}

	// sensitivity to depth: dk/dh = -k² sech²(kh) / (tanh(kh) + kh sech²(kh))
	for _, h := range []float64{0.5, 2, 10} {
		k, _ := Wavenumber(ω, h, g)
		th := math.Tanh(k * h)
		sech2 := 1 - th*th
		correct := -k * k * sech2 / (th + k*h*sech2)
		dkdh := fd.Derivative(func(x float64) float64 {
			kx, _ := Wavenumber(ω, x, g)
			return kx
		}, h, &fd.Settings{Formula: fd.Central, Step: 1e-4})
		io.Pforan("h=%g dk/dh=%g (%g)\n", h, dkdh, correct)
		chk.Float64(tst, io.Sf("dk/dh(h=%g)", h), 1e-6*math.Abs(correct), dkdh, correct)
	}
}

func Test_wave02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("wave02. simulation")

	gr, _ := grid.New([]int{6, 4}, []float64{5, 5})
	sta, _ := NewStations(gr, EveryCell(gr, 1), 1)
	s := make([]float64, gr.Npts())
	for i := 0; i < 6; i++ {
		for j := 0; j < 4; j++ {
			s[gr.Index(i, j)] = 0.5 + float64(i)
		}
	}
	s[0] = -1 // dry cell is clamped to hmin

	mdl, err := New("wave", dbf.Params{
		&dbf.P{N: "t2", V: 10},
		&dbf.P{N: "t1", V: 5},
		&dbf.P{N: "obs", V: 2},
	}, sta)
	if err != nil {
		tst.Errorf("New failed: %v\n", err)
		return
	}
	chk.Int(tst, "nobs", mdl.Nobs(), 2*2*24)
	d, err := mdl.Simulate(s)
	if err != nil {
		tst.Errorf("Simulate failed: %v\n", err)
		return
	}
	chk.Int(tst, "len(d)", len(d), 96)

	// celerity of period 5 at cell 0 uses hmin
	ω := 2 * math.Pi / 5
	k, _ := Wavenumber(ω, 0.1, 9.81)
	chk.Float64(tst, "c0", 1e-14, d[0], ω/k)

	// celerity increases with depth and heights follow celerities
	for i := 1; i < 6; i++ {
		if d[i] <= d[i-1] {
			tst.Errorf("celerity must increase with depth\n")
			return
		}
	}
	if d[24] <= 1 {
		tst.Errorf("shoaled height at shallowest cell must be greater than h0. H=%g\n", d[24])
		return
	}

	if chk.Verbose {
		plt.Reset(true, nil)
		x := utl.LinSpace(1, 6, 6)
		plt.Plot(x, d[:6], &plt.A{C: "r", M: "o", L: "T=5"})
		plt.Plot(x, d[48:54], &plt.A{C: "b", M: "s", L: "T=10"})
		plt.Gll("cell", "celerity", nil)
		plt.Save("/tmp/gopcga", "wave02")
	}

	// errors
	if _, err = New("wave", dbf.Params{&dbf.P{N: "obs", V: 3}}, sta); err == nil {
		tst.Errorf("New should have failed with obs=3\n")
		return
	}
	if _, err = New("wave", dbf.Params{&dbf.P{N: "tx", V: 3}}, sta); err == nil {
		tst.Errorf("New should have failed with parameter tx\n")
		return
	}
	if _, err = New("stwave", nil, sta); err == nil {
		tst.Errorf("New should have failed with unknown model\n")
		return
	}
	if _, err = mdl.Simulate(s[:3]); err == nil {
		tst.Errorf("Simulate should have failed with wrong field size\n")
	}
}

func Test_simulator01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("simulator01. serial versus parallel")

	gr, _ := grid.New([]int{8, 5}, []float64{5, 5})
	sta, _ := NewStations(gr, EveryCell(gr, 2), 1)
	mdl, err := New("wave", nil, sta)
	if err != nil {
		tst.Errorf("New failed: %v\n", err)
		return
	}
	states := make([][]float64, 7)
	for r := range states {
		states[r] = utl.Vals(gr.Npts(), 1+float64(r))
	}
	sim := &Simulator{Model: mdl}
	ctx := context.Background()
	d1, err := sim.Run(ctx, states)
	if err != nil {
		tst.Errorf("Run failed: %v\n", err)
		return
	}
	d2, err := sim.Run(ctx, states, Parallel(), Cores(3))
	if err != nil {
		tst.Errorf("Run failed: %v\n", err)
		return
	}
	chk.Deep2(tst, "d", 1e-17, d1, d2)
	chk.Int(tst, "nruns", int(sim.Nruns), 14)

	// errors are propagated
	states[3] = states[3][:5]
	if _, err = sim.Run(ctx, states, Parallel()); err == nil {
		tst.Errorf("Run should have failed\n")
		return
	}

	// cancelled context
	cctx, cancel := context.WithCancel(ctx)
	cancel()
	if _, err = sim.Run(cctx, states[:2]); err == nil {
		tst.Errorf("Run should have failed with cancelled context\n")
	}
}
