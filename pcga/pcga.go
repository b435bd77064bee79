// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package pcga implements the Principal Component Geostatistical Approach for inverse problems
//  References:
//   [1] Kitanidis PK and Lee J (2014) Principal Component Geostatistical Approach for large-
//       dimensional inverse problems. Water Resources Research, 50(7), 5428-5443
//   [2] Lee J, Yoon H, Kitanidis PK, Werth CJ and Valocchi AJ (2016) Scalable subsurface inverse
//       modeling of huge data sets with an application to tracer concentration breakthrough data
//       from magnetic resonance imaging. Water Resources Research, 52(7), 5213-5231
package pcga

import (
	"context"
	"math"

	"github.com/cpmech/gopcga/cov"
	"github.com/cpmech/gopcga/eig"
	"github.com/cpmech/gopcga/grid"
	"github.com/cpmech/gopcga/inp"
	"github.com/cpmech/gopcga/kernel"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Forward runs forward simulations for an ensemble of fields
//  states -- [nruns][m] fields
//  d      -- [nruns][nobs] simulated observations
//  ncores -- optional; only given when parallel is true
type Forward func(ctx context.Context, states [][]float64, parallel bool, ncores ...int) (d [][]float64, err error)

// PCGA implements the PCGA inverse solver
type PCGA struct {

	// input
	Grid   *grid.Grid      // grid
	Prior  *inp.PriorData  // prior data
	Solver *inp.SolverData // solver data
	S0     []float64       // [m] initial field
	Strue  []float64       // [m] true field; may be nil
	Obs    []float64       // [nobs] observations
	Kernel kernel.Model    // covariance kernel
	Cov    cov.Operator    // prior covariance
	fwd    Forward         // forward model

	// EmbedMin is the smallest eigenvalue of the circulant embedding of an FFT covariance
	// (zero otherwise). Negative values flag an indefinite embedding.
	EmbedMin float64

	// prior
	PriorU *mat.Dense // [m][npc] principal components
	PriorD []float64  // [npc] eigenvalues of prior covariance
	Z      *mat.Dense // [m][npc] scaled principal components U sqrt(D)
	X      *mat.Dense // [m][ndrift] drift; nil if there is no drift

	// results
	Shat     []float64   // [m] best estimate
	SimulObs []float64   // [nobs] simulated observations at Shat
	PostVar  []float64   // [m] posterior variance; if Solver.Uncertainty
	Obj0     float64     // objective of initial field
	Objs     []float64   // [niter] objective after each iteration
	Steps    []float64   // [niter] relative change of solution at each iteration
	Alphas   []float64   // [niter] selected Levenberg-Marquardt multipliers
	Shats    [][]float64 // [niter][m] solution after each iteration
	Nruns    int         // number of forward simulations
	IterBest int         // iteration of best solution (1-based)
	IterFin  int         // number of performed iterations
	ShowMsg  bool        // show messages

	// auxiliary
	linBest *linearisation // linearisation giving the best solution
}

// New returns a new PCGA solver
//  fwd   -- forward model
//  s0    -- [m] initial field
//  g     -- grid
//  prior -- prior covariance data
//  sol   -- solver data
//  strue -- [m] true field; may be nil
//  obs   -- [nobs] observations
func New(fwd Forward, s0 []float64, g *grid.Grid, prior *inp.PriorData, sol *inp.SolverData, strue, obs []float64) (o *PCGA, err error) {

	// check
	if fwd == nil {
		return nil, chk.Err("pcga: forward model is not set")
	}
	m := g.Npts()
	if len(s0) != m {
		return nil, chk.Err("pcga: initial field must have %d values. %d is invalid", m, len(s0))
	}
	if strue != nil && len(strue) != m {
		return nil, chk.Err("pcga: true field must have %d values. %d is invalid", m, len(strue))
	}
	if len(obs) == 0 {
		return nil, chk.Err("pcga: at least one observation is required")
	}
	if sol.R <= 0 {
		return nil, chk.Err("pcga: variance of observation errors must be positive. R=%g is invalid", sol.R)
	}

	// new object
	o = &PCGA{Grid: g, Prior: prior, Solver: sol, S0: s0, Strue: strue, Obs: obs, fwd: fwd}

	// covariance
	o.Kernel, err = kernel.New(prior.Kernel)
	if err != nil {
		return
	}
	err = o.Kernel.Init(prior.Prms)
	if err != nil {
		return
	}
	o.Cov, err = cov.New(prior.Matvec, g, o.Kernel, prior.Theta2)
	if err != nil {
		return
	}
	if fft, ok := o.Cov.(*cov.FFT); ok {
		o.EmbedMin = fft.MinEig()
	}

	// principal components
	var ctrl eig.Control
	ctrl.SetDefault()
	ctrl.Method = prior.Method
	if prior.Oversampling > 0 {
		ctrl.Oversampling = prior.Oversampling
	}
	if prior.PowerIters > 0 {
		ctrl.PowerIters = prior.PowerIters
	}
	if prior.Seed > 0 {
		ctrl.Seed = prior.Seed
	}
	res, err := eig.Compute(o.Cov, prior.Npc, ctrl)
	if err != nil {
		return
	}
	o.PriorU, o.PriorD = res.U, res.D
	o.Z = mat.NewDense(m, prior.Npc, nil)
	o.Z.Apply(func(i, j int, v float64) float64 { return v * math.Sqrt(o.PriorD[j]) }, o.PriorU)

	// drift
	if prior.Drift != "none" {
		o.X = mat.NewDense(m, 1, nil)
		x := 1.0 / math.Sqrt(float64(m))
		for i := 0; i < m; i++ {
			o.X.Set(i, 0, x)
		}
	}
	return
}

// Run runs the inversion
//  Output:
//   shat     -- best estimate
//   simulObs -- simulated observations at shat
//   iterBest -- iteration of best estimate (1-based)
//   iterFin  -- number of performed iterations
func (o *PCGA) Run(ctx context.Context) (shat, simulObs []float64, iterBest, iterFin int, err error) {

	// message
	if o.ShowMsg {
		io.Pf("> Running PCGA with m=%d, nobs=%d, npc=%d\n", o.Grid.Npts(), len(o.Obs), o.Prior.Npc)
		if o.EmbedMin < 0 {
			io.Pfyel("> Warning: circulant embedding of prior covariance is indefinite (min eigenvalue = %g)\n", o.EmbedMin)
		}
		io.Pf("%5s%23s%23s%12s%8s\n", "it", "objective", "rel.step", "alpha", "runs")
	}

	// clear results
	o.Objs, o.Steps, o.Alphas, o.Shats = nil, nil, nil, nil
	o.IterBest, o.IterFin, o.Nruns = 0, 0, 0

	// iterations
	s := make([]float64, len(o.S0))
	copy(s, o.S0)
	var simul []float64
	var objCur float64
	best := math.Inf(1)
	var simulBest []float64
	for it := 1; it <= o.Solver.MaxIter; it++ {

		// Jacobian-free linearisation around s
		var lin *linearisation
		lin, err = o.linearise(ctx, s, simul)
		if err != nil {
			return
		}
		simul = lin.simul
		if it == 1 {
			objCur = o.Objective(s, simul)
			o.Obj0 = objCur
			if o.ShowMsg {
				io.Pf("%5d%23.15e%23s%12s%8d\n", 0, objCur, "", "", o.Nruns)
			}
		}

		// new solution
		var c *candidate
		c, err = o.update(ctx, lin, s, objCur)
		if err != nil {
			return
		}

		// convergence measures
		step := relDiff(c.s, s)
		dobj := math.Abs(c.obj-objCur) / math.Max(math.Abs(objCur), math.SmallestNonzeroFloat64)

		// history
		o.Objs = append(o.Objs, c.obj)
		o.Steps = append(o.Steps, step)
		o.Alphas = append(o.Alphas, c.α)
		o.Shats = append(o.Shats, c.s)
		o.IterFin = it
		if c.obj < best {
			best = c.obj
			o.IterBest = it
			o.Shat = c.s
			simulBest = c.simul
			o.linBest = lin
		}
		if o.ShowMsg {
			io.Pf("%5d%23.15e%23.15e%12g%8d\n", it, c.obj, step, c.α, o.Nruns)
		}

		// next iteration
		s, simul, objCur = c.s, c.simul, c.obj
		if step < o.Solver.ResTol || dobj < o.Solver.ResTol {
			if o.ShowMsg {
				io.Pfgreen("> Converged after %d iterations\n", it)
			}
			break
		}
		if err = ctx.Err(); err != nil {
			return
		}
	}

	// simulated observations at best solution
	if o.Shat == nil {
		return nil, nil, 0, o.IterFin, chk.Err("pcga: no iteration produced a finite objective")
	}
	if simulBest == nil {
		var d [][]float64
		d, err = o.forward(ctx, [][]float64{o.Shat})
		if err != nil {
			return
		}
		simulBest = d[0]
	}
	o.SimulObs = simulBest

	// posterior variance
	if o.Solver.Uncertainty {
		err = o.CalcPostVar()
		if err != nil {
			return
		}
	}
	if o.ShowMsg {
		io.Pf("> Best iteration = %d (objective = %g). Number of forward runs = %d\n", o.IterBest, best, o.Nruns)
	}
	return o.Shat, o.SimulObs, o.IterBest, o.IterFin, nil
}

// CalcPostVar computes the posterior variance around the best solution
func (o *PCGA) CalcPostVar() (err error) {
	if o.linBest == nil {
		return chk.Err("pcga: posterior variance requires a finished iteration")
	}
	sys, err := NewSystem(o.linBest.HX, o.linBest.HZ, o.Solver.R)
	if err != nil {
		return
	}
	qdiag := make([]float64, o.Cov.Dim())
	for i := range qdiag {
		qdiag[i] = o.Cov.Diag(i)
	}
	o.PostVar, err = sys.PostVar(qdiag, o.X, o.Z)
	if o.ShowMsg && err == nil {
		io.Pf("> Posterior variance computed\n")
	}
	return
}

// Objective computes the objective function
//   f(s) = ½ ‖y - h(s)‖² / R + ½ ‖D^{-½} Uᵀ (s - X Xᵀ s)‖²
//  Note: components with negligible eigenvalues are skipped
func (o *PCGA) Objective(s, simul []float64) float64 {
	r := make([]float64, len(o.Obs))
	floats.SubTo(r, o.Obs, simul)
	fdat := 0.5 * floats.Dot(r, r) / o.Solver.R
	smxb := o.detrend(s)
	var c mat.VecDense
	c.MulVec(o.PriorU.T(), mat.NewVecDense(len(smxb), smxb))
	var freg float64
	tol := 1e-12 * o.PriorD[0]
	for k, d := range o.PriorD {
		if d > tol {
			ck := c.AtVec(k)
			freg += ck * ck / d
		}
	}
	return fdat + 0.5*freg
}

// RMSE computes the root-mean-square error between observations and simulated observations
func RMSE(obs, simul []float64) float64 {
	if len(obs) == 0 {
		return 0
	}
	return floats.Distance(obs, simul, 2) / math.Sqrt(float64(len(obs)))
}

// auxiliary ///////////////////////////////////////////////////////////////////////////////////////

// forward runs the forward model
func (o *PCGA) forward(ctx context.Context, states [][]float64) (d [][]float64, err error) {
	o.Nruns += len(states)
	if o.Solver.Parallel && o.Solver.Ncores > 0 {
		d, err = o.fwd(ctx, states, true, o.Solver.Ncores)
	} else {
		d, err = o.fwd(ctx, states, o.Solver.Parallel)
	}
	if err != nil {
		return
	}
	if len(d) != len(states) {
		return nil, chk.Err("pcga: forward model returned %d results for %d fields", len(d), len(states))
	}
	for i := range d {
		if len(d[i]) != len(o.Obs) {
			return nil, chk.Err("pcga: forward model returned %d observations instead of %d", len(d[i]), len(o.Obs))
		}
	}
	return
}

// detrend returns s - X Xᵀ s
func (o *PCGA) detrend(s []float64) (r []float64) {
	r = make([]float64, len(s))
	copy(r, s)
	if o.X == nil {
		return
	}
	vs := mat.NewVecDense(len(s), s)
	var β, xβ mat.VecDense
	β.MulVec(o.X.T(), vs)
	xβ.MulVec(o.X, &β)
	floats.Sub(r, xβ.RawVector().Data)
	return
}

// relDiff returns ‖a - b‖ / ‖b‖
func relDiff(a, b []float64) float64 {
	nb := floats.Norm(b, 2)
	d := floats.Distance(a, b, 2)
	if nb == 0 {
		return d
	}
	return d / nb
}
