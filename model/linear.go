// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package model

import (
	"strings"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
)

// Linear implements a linear model that samples the field at the stations
//  d_i = a v_i + b   where v_i is the interpolated value of s at station i
type Linear struct {
	a, b float64
	sta  *Stations
}

// add model to factory
func init() {
	allocators["lin"] = func(sta *Stations) Model { return &Linear{sta: sta} }
}

// Init initialises model
func (o *Linear) Init(prms dbf.Params) (err error) {
	o.a, o.b = 1, 0
	for _, p := range prms {
		switch strings.ToLower(p.N) {
		case "a":
			o.a = p.V
		case "b":
			o.b = p.V
		default:
			return chk.Err("lin: parameter named %q is incorrect\n", p.N)
		}
	}
	return
}

// GetPrms gets (an example) of parameters
func (o Linear) GetPrms(example bool) dbf.Params {
	return []*dbf.P{
		&dbf.P{N: "a", V: 1},
		&dbf.P{N: "b", V: 0},
	}
}

// Nobs returns the number of observations
func (o *Linear) Nobs() int {
	return o.sta.Nsta()
}

// Simulate computes observations
func (o *Linear) Simulate(s []float64) (d []float64, err error) {
	if err = o.sta.Check(s); err != nil {
		return
	}
	d = make([]float64, o.sta.Nsta())
	for i := range d {
		d[i] = o.a*o.sta.At(s, i) + o.b
	}
	return
}
