// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package model

import (
	"context"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
)

// Runner runs ensembles of forward simulations
//  states -- [nruns][m] candidate fields
//  d      -- [nruns][nobs] simulated observations
type Runner interface {
	Run(ctx context.Context, states [][]float64, opts ...Option) (d [][]float64, err error)
}

// Factory allocates a new Runner
type Factory func() (Runner, error)

// Adapter connects inverse solvers to forward models.
// A new Runner is allocated by each call to Forward.
type Adapter struct {
	New Factory
}

// NewAdapter returns an adapter allocating one Simulator of the named model per call to Forward
func NewAdapter(name string, prms dbf.Params, sta *Stations) (o *Adapter, err error) {
	if _, err = New(name, prms, sta); err != nil {
		return
	}
	o = &Adapter{New: func() (Runner, error) {
		mdl, e := New(name, prms, sta)
		if e != nil {
			return nil, e
		}
		return &Simulator{Model: mdl}, nil
	}}
	return
}

// Forward runs forward simulations for all states
//  parallel -- run concurrently; the core count is only passed when parallel is true
//  ncores   -- optional maximum number of concurrent simulations
func (o *Adapter) Forward(ctx context.Context, states [][]float64, parallel bool, ncores ...int) (d [][]float64, err error) {
	if o.New == nil {
		return nil, chk.Err("adapter: model factory is not set")
	}
	runner, err := o.New()
	if err != nil {
		return
	}
	if !parallel {
		return runner.Run(ctx, states)
	}
	opts := []Option{Parallel()}
	if len(ncores) > 0 {
		opts = append(opts, Cores(ncores[0]))
	}
	return runner.Run(ctx, states, opts...)
}
