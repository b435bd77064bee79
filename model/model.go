// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package model implements forward models mapping fields defined on grids to observations
package model

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
)

// Model defines forward models
//  Note: Simulate must be safe for concurrent use
type Model interface {
	Init(prms dbf.Params) error                    // initialises model
	GetPrms(example bool) dbf.Params               // gets (an example) of parameters
	Nobs() int                                     // number of observations
	Simulate(s []float64) (d []float64, err error) // computes observations d = h(s)
}

// New returns a new forward model observed at the given stations
func New(name string, prms dbf.Params, sta *Stations) (model Model, err error) {
	allocator, ok := allocators[name]
	if !ok {
		return nil, chk.Err("model %q is not available in 'model' database", name)
	}
	if sta == nil {
		return nil, chk.Err("model %q requires stations", name)
	}
	model = allocator(sta)
	err = model.Init(prms)
	return
}

// allocators holds all available models
var allocators = map[string]func(sta *Stations) Model{}
