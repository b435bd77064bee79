// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package ana implements synthetic problems with known solutions
package ana

import (
	"context"
	"math"
	"strings"

	"github.com/cpmech/gopcga/grid"
	"github.com/cpmech/gopcga/model"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// BarredBeach computes the depth of a planar beach with an alongshore-varying sandbar
//
//    h(x,y) = max(Hmin, Hmin + Slope・x - Bar・exp(-((x - xb(y))/Wbar)²))
//    xb(y)  = Xbar + Amp・sin(2π y / Lambda)
//
//  x is the cross-shore distance from the shoreline and y the alongshore distance
type BarredBeach struct {
	Hmin   float64 // depth at shoreline
	Slope  float64 // beach slope
	Bar    float64 // height of sandbar
	Xbar   float64 // mean cross-shore position of sandbar
	Wbar   float64 // width of sandbar
	Amp    float64 // amplitude of alongshore undulation of sandbar
	Lambda float64 // wavelength of alongshore undulation of sandbar
}

// Init initialises this structure
func (o *BarredBeach) Init(prms dbf.Params) (err error) {
	o.Hmin, o.Slope, o.Bar = 0.5, 0.011, 1.0
	o.Xbar, o.Wbar, o.Amp, o.Lambda = 150, 30, 20, 200
	for _, p := range prms {
		switch strings.ToLower(p.N) {
		case "hmin":
			o.Hmin = p.V
		case "slope":
			o.Slope = p.V
		case "bar":
			o.Bar = p.V
		case "xbar":
			o.Xbar = p.V
		case "wbar":
			o.Wbar = p.V
		case "amp":
			o.Amp = p.V
		case "lambda":
			o.Lambda = p.V
		default:
			return chk.Err("barred beach: parameter named %q is incorrect\n", p.N)
		}
	}
	if o.Hmin <= 0 || o.Wbar <= 0 || o.Lambda <= 0 {
		return chk.Err("barred beach: hmin, wbar and lambda must be positive. hmin=%g wbar=%g lambda=%g", o.Hmin, o.Wbar, o.Lambda)
	}
	return
}

// Depth computes the depth at (x, y)
func (o BarredBeach) Depth(x, y float64) float64 {
	xb := o.Xbar + o.Amp*math.Sin(2.0*math.Pi*y/o.Lambda)
	ξ := (x - xb) / o.Wbar
	return math.Max(o.Hmin, o.Hmin+o.Slope*x-o.Bar*math.Exp(-ξ*ξ))
}

// Field computes the depth at all cells of g (first coordinate running fastest)
func (o BarredBeach) Field(g *grid.Grid) (s []float64) {
	pts := g.Points()
	s = make([]float64, len(pts))
	for i, p := range pts {
		s[i] = o.Depth(p[0], p[1])
	}
	return
}

// SyntheticObs computes observations of field s with the forward model plus Gaussian noise
//  noise -- standard deviation of noise; no noise is added if zero
//  seed  -- seed of noise
func SyntheticObs(ctx context.Context, fwd *model.Adapter, s []float64, noise float64, seed uint64) (d []float64, err error) {
	res, err := fwd.Forward(ctx, [][]float64{s}, false)
	if err != nil {
		return
	}
	d = res[0]
	if noise <= 0 {
		return
	}
	dist := distuv.Normal{Mu: 0, Sigma: noise, Src: rand.NewSource(seed)}
	for i := range d {
		d[i] += dist.Rand()
	}
	return
}
