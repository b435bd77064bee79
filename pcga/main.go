// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pcga

import (
	"context"
	"time"

	"github.com/cpmech/gopcga/ana"
	"github.com/cpmech/gopcga/inp"
	"github.com/cpmech/gopcga/model"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/utl"
	"gonum.org/v1/gonum/floats"
)

// Main holds all data for an inversion
type Main struct {
	Sim     *inp.Simulation // inversion data
	Sta     *model.Stations // observation stations
	Fwd     *model.Adapter  // forward model
	Strue   []float64       // [m] true field
	Obs     []float64       // [nobs] observations
	Sinit   []float64       // [m] initial field
	Solver  *PCGA           // PCGA solver
	Summary *Summary        // summary structure; nil if not saved
	ShowMsg bool            // show messages
}

// NewMain returns a new Main structure
//  Input:
//   invfilepath -- inversion (.inv) filename including full path
//   alias       -- word to be appended to inversion key; e.g. when running multiple inversions
//   erasePrev   -- erase previous results files
//   saveSummary -- save summary
//   verbose     -- show messages
func NewMain(invfilepath, alias string, erasePrev, saveSummary, verbose bool) (o *Main) {

	// new Main object
	o = new(Main)
	o.ShowMsg = verbose

	// read input data
	o.Sim = inp.ReadInv(invfilepath, alias, erasePrev, true)
	if o.Sim == nil {
		chk.Panic("cannot read inversion input data")
	}
	if saveSummary {
		o.Summary = new(Summary)
	}
	if o.ShowMsg {
		io.Pf("> Inversion (.inv) file read\n")
	}

	// stations
	g := &o.Sim.Grid
	X, err := o.Sim.LoadStations()
	if err != nil {
		chk.Panic("cannot load stations:\n%v", err)
	}
	if X == nil {
		X = model.EveryCell(g, o.Sim.Model.Stride)
	}
	o.Sta, err = model.NewStations(g, X, o.Sim.Model.Nnear)
	if err != nil {
		chk.Panic("cannot locate stations:\n%v", err)
	}

	// forward model
	o.Fwd, err = model.NewAdapter(o.Sim.Model.Type, o.Sim.Model.Prms, o.Sta)
	if err != nil {
		chk.Panic("cannot allocate forward model:\n%v", err)
	}

	// true field
	if o.Sim.Data.TrueFile != "" {
		o.Strue, err = o.Sim.LoadTrue()
	} else {
		var bb ana.BarredBeach
		err = bb.Init(o.Sim.Data.Bathy)
		o.Strue = bb.Field(g)
	}
	if err != nil {
		chk.Panic("cannot get true field:\n%v", err)
	}

	// observations
	if o.Sim.Data.ObsFile != "" {
		o.Obs, err = o.Sim.LoadObs()
	} else {
		o.Obs, err = ana.SyntheticObs(context.Background(), o.Fwd, o.Strue, o.Sim.Data.Noise, o.Sim.Data.Seed)
	}
	if err != nil {
		chk.Panic("cannot get observations:\n%v", err)
	}
	if o.ShowMsg {
		io.Pf("> True field (m=%d) and observations (nobs=%d) loaded\n", len(o.Strue), len(o.Obs))
	}

	// initial field
	sinit := floats.Sum(o.Strue) / float64(len(o.Strue))
	if o.Sim.Data.Sinit != nil {
		sinit = *o.Sim.Data.Sinit
	}
	o.Sinit = utl.Vals(g.Npts(), sinit)

	// solver
	o.Solver, err = New(o.Fwd.Forward, o.Sinit, g, &o.Sim.Prior, &o.Sim.Solver, o.Strue, o.Obs)
	if err != nil {
		chk.Panic("cannot allocate PCGA solver:\n%v", err)
	}
	o.Solver.ShowMsg = o.ShowMsg && o.Sim.Solver.ShowMsg
	if o.ShowMsg {
		io.Pf("> Principal components computed (npc=%d)\n", len(o.Solver.PriorD))
	}
	return
}

// Run runs the inversion
func (o *Main) Run(ctx context.Context) (err error) {

	// exit commands
	cputime := time.Now()
	defer func() { err = o.onexit(cputime, err) }()

	// message
	if o.ShowMsg {
		io.Pf("> Running PCGA solver\n")
	}

	// run
	_, _, _, _, err = o.Solver.Run(ctx)
	return
}

// auxiliary //////////////////////////////////////////////////////////////////////////////////////

// onexit prints final message with cpu time and saves summary
func (o *Main) onexit(cputime time.Time, prevErr error) (err error) {

	// show final message
	if o.ShowMsg {
		if prevErr == nil {
			io.PfGreen("> Success\n")
			io.Pf("> CPU time = %v\n", time.Now().Sub(cputime))
		} else {
			io.PfRed("> Failed\n")
		}
	}

	// skip if previous error is not nil
	if prevErr != nil {
		return prevErr
	}

	// save summary
	if o.Summary != nil {
		*o.Summary = *o.Solver.GetSummary()
		err = o.Summary.Save(o.Sim.DirOut, o.Sim.Key, o.Sim.EncType)
		if err == nil && o.ShowMsg {
			io.Pf("> Summary saved in %s\n", o.Sim.DirOut)
		}
	}
	return
}
