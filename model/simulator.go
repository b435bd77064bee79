// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package model

import (
	"context"
	"sync/atomic"

	"github.com/cpmech/gosl/chk"
	"golang.org/x/sync/errgroup"
)

// Simulator runs ensembles of a Model
type Simulator struct {
	Model Model
	Nruns int64 // total number of simulations performed
}

// Run runs one simulation per state. Concurrent runs are bounded by the number of cores.
func (o *Simulator) Run(ctx context.Context, states [][]float64, opts ...Option) (d [][]float64, err error) {
	cfg := NewConfig(opts...)
	d = make([][]float64, len(states))
	if !cfg.Parallel || len(states) < 2 {
		for i, s := range states {
			if err = ctx.Err(); err != nil {
				return nil, err
			}
			if d[i], err = o.simulate(i, s); err != nil {
				return nil, err
			}
		}
		return
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Workers())
	for i := range states {
		i := i
		g.Go(func() (e error) {
			if e = gctx.Err(); e != nil {
				return
			}
			d[i], e = o.simulate(i, states[i])
			return
		})
	}
	if err = g.Wait(); err != nil {
		return nil, err
	}
	return
}

// simulate runs one simulation
func (o *Simulator) simulate(i int, s []float64) (d []float64, err error) {
	atomic.AddInt64(&o.Nruns, 1)
	d, err = o.Model.Simulate(s)
	if err != nil {
		return nil, chk.Err("simulation %d failed:\n%v", i, err)
	}
	if len(d) != o.Model.Nobs() {
		return nil, chk.Err("simulation %d returned %d observations instead of %d", i, len(d), o.Model.Nobs())
	}
	return
}
