// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package out implements the diagnostic figures of inversions
package out

import (
	"math"

	"github.com/cpmech/gopcga/grid"
	"github.com/cpmech/gopcga/kernel"
	"github.com/cpmech/gopcga/pcga"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// Figures holds data to draw the diagnostic figures of an inversion
type Figures struct {
	Dirout    string     // directory to save figures
	Grid      *grid.Grid // grid
	Extent    []float64  // image extent [xmin, xmax, ymin, ymax]
	Vmin      float64    // min value of negated fields
	Vmax      float64    // max value of negated fields
	Transects []int      // transect rows counted from the top
	Neigv     int        // number of drawn eigenvectors
	Theta1    float64    // kernel scale; variance = θ1²
	Theta2    []float64  // correlation lengths
	Npc       int        // number of principal components
}

// NewFigures returns figures data for a finished inversion
func NewFigures(main *pcga.Main) (o *Figures) {
	sim := main.Sim
	return &Figures{
		Dirout:    sim.DirOut,
		Grid:      &sim.Grid,
		Extent:    sim.Plots.Extent,
		Vmin:      sim.Plots.Vmin,
		Vmax:      sim.Plots.Vmax,
		Transects: sim.Plots.Transects,
		Neigv:     sim.Plots.Neigv,
		Theta1:    math.Sqrt(kernel.Variance(main.Solver.Kernel)),
		Theta2:    sim.Prior.Theta2,
		Npc:       len(main.Solver.PriorD),
	}
}

// DrawAll draws all figures
//  best_.png    -- true and estimated fields
//  best.png     -- true and estimated fields as elevations (negated and rotated)
//  transect.png -- true and estimated elevations along transects
//  obs.png      -- simulated versus observed data
//  eigv.png     -- leading eigenvectors of prior covariance
//  eig.png      -- eigenvalues of prior covariance
func (o *Figures) DrawAll(main *pcga.Main, verbose bool) (err error) {
	sol := main.Solver
	if sol.Shat == nil {
		return chk.Err("out: inversion has no estimate to draw")
	}
	if err = o.BestRaw(main.Strue, sol.Shat); err != nil {
		return
	}
	if err = o.Best(main.Strue, sol.Shat); err != nil {
		return
	}
	if err = o.Transect(main.Strue, sol.Shat); err != nil {
		return
	}
	if err = o.ObsFit(sol.Obs, sol.SimulObs); err != nil {
		return
	}
	if err = o.Eigv(sol.PriorU); err != nil {
		return
	}
	if err = o.Eig(sol.PriorD); err != nil {
		return
	}
	if verbose {
		io.Pf("> Figures saved in %s\n", o.Dirout)
	}
	return
}
