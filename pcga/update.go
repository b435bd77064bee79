// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pcga

import (
	"context"
	"math"

	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/utl"
	"gonum.org/v1/gonum/floats"
)

// line search steps tried when the full step increases the objective
var lineSearchSteps = []float64{0.25, 0.5, 0.75}

// candidate holds a candidate solution
type candidate struct {
	s     []float64 // [m] field
	simul []float64 // [nobs] h(s); nil if not evaluated
	obj   float64   // objective
	α     float64   // Levenberg-Marquardt multiplier
}

// update computes the next solution from the cokriging system
//  With Levenberg-Marquardt, one solution is computed for each multiplier α of R and all
//  solutions are evaluated in one ensemble. Without forward evaluations, the objective is
//  computed with the linearised observations h(s) + H(s_new - s).
func (o *PCGA) update(ctx context.Context, lin *linearisation, s []float64, objCur float64) (best *candidate, err error) {

	// right-hand side: y - h(s) + H s
	nobs := len(o.Obs)
	b := make([]float64, nobs)
	floats.SubTo(b, o.Obs, lin.simul)
	floats.Add(b, lin.Hs)

	// candidates
	alphas := o.Multipliers()
	cands := make([]*candidate, len(alphas))
	run := o.exact() || len(alphas) > 1
	for i, α := range alphas {
		sys, e := NewSystem(lin.HX, lin.HZ, o.Solver.R*α)
		if e != nil {
			return nil, e
		}
		ξ, β, e := sys.Solve(b)
		if e != nil {
			return nil, e
		}
		snew, dh := sys.Step(o.X, o.Z, ξ, β)
		if o.clip(snew) {
			run = true
		}
		cands[i] = &candidate{s: snew, α: α}
		if !run {
			simul := make([]float64, nobs)
			floats.SubTo(simul, lin.simul, lin.Hs)
			floats.Add(simul, dh)
			cands[i].obj = o.Objective(snew, simul)
		}
	}

	// evaluate candidates with forward runs
	if run {
		err = o.evaluate(ctx, cands)
		if err != nil {
			return
		}
	}
	best = cands[0]
	for _, c := range cands[1:] {
		if c.obj < best.obj {
			best = c
		}
	}
	if o.ShowMsg && len(cands) > 1 {
		for _, c := range cands {
			io.Pfyel("%28s α = %10g : objective = %g\n", "", c.α, c.obj)
		}
	}

	// line search
	if o.Solver.LineSearch && best.obj >= objCur {
		lcands := make([]*candidate, len(lineSearchSteps))
		for i, t := range lineSearchSteps {
			st := make([]float64, len(s))
			for j := range st {
				st[j] = s[j] + t*(best.s[j]-s[j])
			}
			lcands[i] = &candidate{s: st, α: best.α}
		}
		err = o.evaluate(ctx, lcands)
		if err != nil {
			return
		}
		for i, c := range lcands {
			if o.ShowMsg {
				io.Pforan("%28s t = %10g : objective = %g\n", "", lineSearchSteps[i], c.obj)
			}
			if c.obj < best.obj {
				best = c
			}
		}
	}
	return
}

// Multipliers returns the Levenberg-Marquardt multipliers of R
//   α = 10^linspace(0, log10(alphamax), nlm)    or    α = 1 without Levenberg-Marquardt
func (o *PCGA) Multipliers() (alphas []float64) {
	if !o.Solver.LM || o.Solver.Nlm < 2 {
		return []float64{1}
	}
	exps := utl.LinSpace(0, math.Log10(o.Solver.AlphaMax), o.Solver.Nlm)
	alphas = make([]float64, len(exps))
	for i, e := range exps {
		alphas[i] = math.Pow(10, e)
	}
	return
}

// evaluate runs the forward model for all candidates (one ensemble) and computes their objectives
func (o *PCGA) evaluate(ctx context.Context, cands []*candidate) (err error) {
	states := make([][]float64, len(cands))
	for i, c := range cands {
		states[i] = c.s
	}
	d, err := o.forward(ctx, states)
	if err != nil {
		return
	}
	for i, c := range cands {
		c.simul = d[i]
		c.obj = o.Objective(c.s, c.simul)
	}
	return
}

// exact tells whether candidates must be evaluated with forward runs
func (o *PCGA) exact() bool {
	return o.Solver.ObjEval || o.Solver.LineSearch
}

// clip clips s to [lmsmin, lmsmax] and tells whether any value was changed
func (o *PCGA) clip(s []float64) (clipped bool) {
	for i := range s {
		if o.Solver.LMsmin != nil && s[i] < *o.Solver.LMsmin {
			s[i] = *o.Solver.LMsmin
			clipped = true
		}
		if o.Solver.LMsmax != nil && s[i] > *o.Solver.LMsmax {
			s[i] = *o.Solver.LMsmax
			clipped = true
		}
	}
	return
}
