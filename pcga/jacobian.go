// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pcga

import (
	"context"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// linearisation holds Jacobian-free products around a field s
type linearisation struct {
	simul []float64  // [nobs] h(s)
	HX    *mat.Dense // [nobs][ndrift] H X; nil if there is no drift
	HZ    *mat.Dense // [nobs][npc] H Z
	Hs    []float64  // [nobs] H s
}

// linearise computes H X, H Z and H s by finite differences
//   H v ≈ (h(s + δ v) - h(s)) / δ
// All perturbed fields (and s itself, if simul is nil) are run as one ensemble.
func (o *PCGA) linearise(ctx context.Context, s, simul []float64) (lin *linearisation, err error) {

	// directions
	_, npc := o.Z.Dims()
	var ndr int
	if o.X != nil {
		_, ndr = o.X.Dims()
	}
	dirs := make([][]float64, 0, ndr+npc+1)
	m := len(s)
	for j := 0; j < ndr; j++ {
		dirs = append(dirs, mat.Col(nil, j, o.X))
	}
	for k := 0; k < npc; k++ {
		dirs = append(dirs, mat.Col(nil, k, o.Z))
	}
	dirs = append(dirs, s)

	// perturbed fields
	var states [][]float64
	if simul == nil {
		states = append(states, s)
	}
	δ := make([]float64, len(dirs))
	for i, v := range dirs {
		δ[i] = Delta(s, v, o.Solver.Precision)
		p := make([]float64, m)
		floats.AddScaledTo(p, s, δ[i], v)
		states = append(states, p)
	}

	// run
	d, err := o.forward(ctx, states)
	if err != nil {
		return
	}
	if simul == nil {
		simul, d = d[0], d[1:]
	}

	// finite differences
	nobs := len(o.Obs)
	diff := func(i int) []float64 {
		r := make([]float64, nobs)
		floats.SubTo(r, d[i], simul)
		floats.Scale(1.0/δ[i], r)
		return r
	}
	lin = &linearisation{simul: simul, HZ: mat.NewDense(nobs, npc, nil)}
	if ndr > 0 {
		lin.HX = mat.NewDense(nobs, ndr, nil)
		for j := 0; j < ndr; j++ {
			lin.HX.SetCol(j, diff(j))
		}
	}
	for k := 0; k < npc; k++ {
		lin.HZ.SetCol(k, diff(ndr+k))
	}
	lin.Hs = diff(ndr + npc)
	return
}

// Delta computes the finite-difference increment along direction v at s
//   δ = sign(sᵀv) √precision max(|sᵀv|, |s|ᵀ|v|) / ‖v‖²
//  Note: returns √precision if the formula gives zero
func Delta(s, v []float64, precision float64) (δ float64) {
	mag := floats.Dot(s, v)
	var absmag float64
	for i := range s {
		absmag += math.Abs(s[i]) * math.Abs(v[i])
	}
	nv := floats.Norm(v, 2) + math.SmallestNonzeroFloat64
	δ = math.Sqrt(precision) * math.Max(math.Abs(mag), absmag) / (nv * nv)
	if mag < 0 {
		δ = -δ
	}
	if δ == 0 || math.IsInf(δ, 0) || math.IsNaN(δ) {
		δ = math.Sqrt(precision)
	}
	return
}
