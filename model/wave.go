// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package model

import (
	"math"
	"sort"
	"strings"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
)

// Wave implements a linear-wave model for nearshore bathymetry (depth) fields.
// For each wave period T and station, the local depth h gives the wavenumber k from the
// dispersion relation
//   ω² = g k tanh(k h)    with   ω = 2π/T
// and the observations are the phase speed (celerity) c = ω/k and/or the shoaled wave height
//   H = H0 sqrt(cg0/cg)   with   cg = c/2 (1 + 2kh/sinh(2kh))
// Observations are ordered by period first; when both quantities are observed, celerities of
// each period are followed by heights of the same period.
type Wave struct {

	// parameters
	periods []float64 // wave periods
	hmin    float64   // minimum depth
	g       float64   // gravity acceleration
	h0      float64   // offshore wave height
	celer   bool      // observe celerity
	height  bool      // observe height

	// stations
	sta *Stations
}

// add model to factory
func init() {
	allocators["wave"] = func(sta *Stations) Model { return &Wave{sta: sta} }
}

// Init initialises model
//  Parameters: periods are given as "t", "t1", "t2", ...; "obs" is 0 (celerity), 1 (height) or 2 (both)
func (o *Wave) Init(prms dbf.Params) (err error) {
	o.hmin, o.g, o.h0 = 0.1, 9.81, 1.0
	o.periods = nil
	obs := 0
	for _, p := range prms {
		name := strings.ToLower(p.N)
		switch {
		case name == "t" || (strings.HasPrefix(name, "t") && isDigits(name[1:])):
			o.periods = append(o.periods, p.V)
		case name == "hmin":
			o.hmin = p.V
		case name == "g":
			o.g = p.V
		case name == "h0":
			o.h0 = p.V
		case name == "obs":
			obs = int(p.V)
		default:
			return chk.Err("wave: parameter named %q is incorrect\n", p.N)
		}
	}
	if len(o.periods) == 0 {
		o.periods = []float64{8}
	}
	sort.Float64s(o.periods)
	for _, T := range o.periods {
		if T <= 0 {
			return chk.Err("wave: periods must be positive. %v is invalid", o.periods)
		}
	}
	if o.hmin <= 0 || o.g <= 0 || o.h0 <= 0 {
		return chk.Err("wave: hmin, g and h0 must be positive. hmin=%g g=%g h0=%g", o.hmin, o.g, o.h0)
	}
	switch obs {
	case 0:
		o.celer = true
	case 1:
		o.height = true
	case 2:
		o.celer, o.height = true, true
	default:
		return chk.Err("wave: obs must be 0 (celerity), 1 (height) or 2 (both). %d is invalid", obs)
	}
	return
}

// GetPrms gets (an example) of parameters
func (o Wave) GetPrms(example bool) dbf.Params {
	return []*dbf.P{
		&dbf.P{N: "t1", V: 5},
		&dbf.P{N: "t2", V: 8},
		&dbf.P{N: "t3", V: 12},
		&dbf.P{N: "hmin", V: 0.1},
		&dbf.P{N: "g", V: 9.81},
		&dbf.P{N: "h0", V: 1},
		&dbf.P{N: "obs", V: 0},
	}
}

// Nobs returns the number of observations
func (o *Wave) Nobs() int {
	n := o.sta.Nsta() * len(o.periods)
	if o.celer && o.height {
		return 2 * n
	}
	return n
}

// Simulate computes observations for depth field s
func (o *Wave) Simulate(s []float64) (d []float64, err error) {
	if err = o.sta.Check(s); err != nil {
		return
	}
	nsta := o.sta.Nsta()
	d = make([]float64, 0, o.Nobs())
	c := make([]float64, nsta)
	H := make([]float64, nsta)
	for _, T := range o.periods {
		ω := 2.0 * math.Pi / T
		cg0 := o.g / (2.0 * ω)
		for i := 0; i < nsta; i++ {
			h := math.Max(o.sta.At(s, i), o.hmin)
			k, e := Wavenumber(ω, h, o.g)
			if e != nil {
				return nil, chk.Err("station %d, period %g:\n%v", i, T, e)
			}
			c[i] = ω / k
			kh2 := 2.0 * k * h
			cg := 0.5 * c[i] * (1.0 + kh2/math.Sinh(kh2))
			H[i] = o.h0 * math.Sqrt(cg0/cg)
		}
		if o.celer {
			d = append(d, c...)
		}
		if o.height {
			d = append(d, H...)
		}
	}
	return
}

// Wavenumber solves the linear dispersion relation ω² = g k tanh(k h) for k using Newton's method
func Wavenumber(ω, h, g float64) (k float64, err error) {
	if ω <= 0 || h <= 0 {
		return 0, chk.Err("wavenumber: ω=%g and h=%g must be positive", ω, h)
	}
	α := ω * ω * h / g
	k = α / (h * math.Sqrt(math.Tanh(α))) // Eckart's approximation
	for it := 0; it < 50; it++ {
		th := math.Tanh(k * h)
		f := g*k*th - ω*ω
		df := g*th + g*k*h*(1.0-th*th)
		δ := f / df
		k -= δ
		if math.Abs(δ) < 1e-13*k {
			return
		}
	}
	return k, chk.Err("wavenumber: Newton iterations did not converge. ω=%g h=%g", ω, h)
}

// isDigits tells whether s is a non-empty sequence of decimal digits
func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
