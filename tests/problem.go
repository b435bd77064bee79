// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tests

import (
	"context"

	"github.com/cpmech/gopcga/ana"
	"github.com/cpmech/gopcga/grid"
	"github.com/cpmech/gopcga/inp"
	"github.com/cpmech/gopcga/model"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/utl"
	"gonum.org/v1/gonum/floats"
)

// Problem holds a synthetic inversion problem
type Problem struct {
	Grid    *grid.Grid      // grid
	Prior   inp.PriorData   // prior data
	Solver  inp.SolverData  // solver data
	Sta     *model.Stations // stations
	Fwd     *model.Adapter  // forward model
	Strue   []float64       // true field
	Obs     []float64       // observations
	Sinit   []float64       // initial field: mean of true field
	Counter Counter         // calls to forward model
}

// Counter records calls to forward models
type Counter struct {
	Ncalls   int   // number of calls
	Nstates  int   // number of fields
	Parallel bool  // parallel flag of last call
	Ncores   []int // optional core count of last call
}

// NewProblem returns a synthetic problem over a barred beach
//  n      -- [Nx, Ny] number of cells
//  dx     -- cell size
//  kind   -- model type; e.g. "lin" or "wave"
//  prms   -- model parameters
//  stride -- stations at every stride-th cell
func NewProblem(n []int, dx float64, kind string, prms dbf.Params, stride int) (o *Problem, err error) {

	// grid and default data
	o = new(Problem)
	o.Grid, err = grid.New(n, []float64{dx, dx})
	if err != nil {
		return
	}
	o.Prior.SetDefault()
	o.Solver.SetDefault()

	// forward model
	o.Sta, err = model.NewStations(o.Grid, model.EveryCell(o.Grid, stride), 1)
	if err != nil {
		return
	}
	o.Fwd, err = model.NewAdapter(kind, prms, o.Sta)
	if err != nil {
		return
	}

	// true field scaled to the grid
	L, W := float64(n[0])*dx, float64(n[1])*dx
	var bb ana.BarredBeach
	err = bb.Init(dbf.Params{
		&dbf.P{N: "xbar", V: 0.4 * L},
		&dbf.P{N: "wbar", V: 0.1 * L},
		&dbf.P{N: "amp", V: 0.05 * L},
		&dbf.P{N: "lambda", V: W},
		&dbf.P{N: "slope", V: 5.0 / L},
	})
	if err != nil {
		return
	}
	o.Strue = bb.Field(o.Grid)

	// observations without noise
	o.Obs, err = ana.SyntheticObs(context.Background(), o.Fwd, o.Strue, 0, 0)
	if err != nil {
		return
	}

	// initial field
	o.Sinit = utl.Vals(len(o.Strue), floats.Sum(o.Strue)/float64(len(o.Strue)))
	return
}

// Forward runs the forward model and records the call
func (o *Problem) Forward(ctx context.Context, states [][]float64, parallel bool, ncores ...int) ([][]float64, error) {
	o.Counter.Ncalls++
	o.Counter.Nstates += len(states)
	o.Counter.Parallel = parallel
	o.Counter.Ncores = ncores
	return o.Fwd.Forward(ctx, states, parallel, ncores...)
}
