// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pcga

import (
	"github.com/cpmech/gosl/chk"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// System holds the factorised cokriging system
//
//   ┌            ┐ ┌   ┐   ┌   ┐
//   │  Ψ     HX  │ │ ξ │   │ b │
//   │            │ │   │ = │   │      Ψ = HZ HZᵀ + σ I
//   │  HXᵀ   0   │ │ β │   │ 0 │
//   └            ┘ └   ┘   └   ┘
//
//  Ψ⁻¹ is applied with the Woodbury identity Ψ⁻¹ = (I - HZ M⁻¹ HZᵀ) / σ with M = σ I + HZᵀ HZ
type System struct {
	HX *mat.Dense // [nobs][ndrift] drift sensitivities; nil if there is no drift
	HZ *mat.Dense // [nobs][npc] principal components sensitivities
	σ  float64    // scaled variance of observation errors

	// derived
	G   *mat.SymDense // HZᵀ HZ
	M   mat.Cholesky  // factorisation of σ I + G
	T   *mat.Dense    // Ψ⁻¹ HX
	S   mat.Cholesky  // factorisation of HXᵀ Ψ⁻¹ HX
	nob int           // number of observations
	npc int           // number of principal components
	ndr int           // number of drift functions
}

// NewSystem factorises the cokriging system
//  σ -- variance of observation errors times the Levenberg-Marquardt multiplier
func NewSystem(HX, HZ *mat.Dense, σ float64) (o *System, err error) {
	if σ <= 0 {
		return nil, chk.Err("system: variance of observation errors must be positive. σ=%g is invalid", σ)
	}
	o = &System{HX: HX, HZ: HZ, σ: σ}
	o.nob, o.npc = HZ.Dims()
	if HX != nil {
		var r int
		r, o.ndr = HX.Dims()
		if r != o.nob {
			return nil, chk.Err("system: HX must have %d rows. %d is invalid", o.nob, r)
		}
	}

	// M = σ I + HZᵀ HZ
	o.G = mat.NewSymDense(o.npc, nil)
	o.G.SymOuterK(1, HZ.T())
	M := mat.NewSymDense(o.npc, nil)
	M.CopySym(o.G)
	for i := 0; i < o.npc; i++ {
		M.SetSym(i, i, M.At(i, i)+σ)
	}
	if !o.M.Factorize(M) {
		return nil, chk.Err("system: Cholesky factorisation of σI + HZᵀHZ failed")
	}
	if o.ndr == 0 {
		return
	}

	// S = HXᵀ Ψ⁻¹ HX
	o.T = mat.NewDense(o.nob, o.ndr, nil)
	col := make([]float64, o.nob)
	for j := 0; j < o.ndr; j++ {
		mat.Col(col, j, HX)
		t, e := o.PsiInv(col)
		if e != nil {
			return nil, e
		}
		o.T.SetCol(j, t)
	}
	var S mat.Dense
	S.Mul(HX.T(), o.T)
	Ss := mat.NewSymDense(o.ndr, nil)
	for i := 0; i < o.ndr; i++ {
		for j := i; j < o.ndr; j++ {
			Ss.SetSym(i, j, (S.At(i, j)+S.At(j, i))/2)
		}
	}
	if !o.S.Factorize(Ss) {
		return nil, chk.Err("system: the observations are not sensitive to the drift (HXᵀΨ⁻¹HX is singular)")
	}
	return
}

// PsiInv returns Ψ⁻¹ v
func (o *System) PsiInv(v []float64) (w []float64, err error) {
	var u, c mat.VecDense
	u.MulVec(o.HZ.T(), mat.NewVecDense(len(v), v))
	err = o.M.SolveVecTo(&c, &u)
	if err != nil {
		return nil, chk.Err("system: cannot solve with factorised M:\n%v", err)
	}
	var hz mat.VecDense
	hz.MulVec(o.HZ, &c)
	w = make([]float64, len(v))
	floats.SubTo(w, v, hz.RawVector().Data)
	floats.Scale(1.0/o.σ, w)
	return
}

// Solve solves the system with right-hand side [b; 0]
func (o *System) Solve(b []float64) (ξ, β []float64, err error) {
	if len(b) != o.nob {
		return nil, nil, chk.Err("system: right-hand side must have %d values. %d is invalid", o.nob, len(b))
	}
	if o.ndr == 0 {
		ξ, err = o.PsiInv(b)
		return
	}

	// β = S⁻¹ HXᵀ Ψ⁻¹ b
	var rhs, sol mat.VecDense
	rhs.MulVec(o.T.T(), mat.NewVecDense(o.nob, b))
	err = o.S.SolveVecTo(&sol, &rhs)
	if err != nil {
		return nil, nil, chk.Err("system: cannot solve for drift coefficients:\n%v", err)
	}
	β = make([]float64, o.ndr)
	copy(β, sol.RawVector().Data)

	// ξ = Ψ⁻¹ (b - HX β)
	var hxβ mat.VecDense
	hxβ.MulVec(o.HX, &sol)
	r := make([]float64, o.nob)
	floats.SubTo(r, b, hxβ.RawVector().Data)
	ξ, err = o.PsiInv(r)
	return
}

// Step computes the new solution s = X β + Z HZᵀ ξ and the linearised change of
// observations HX β + HZ HZᵀ ξ
//  X -- [m][ndrift] drift matrix; nil if there is no drift
//  Z -- [m][npc] scaled principal components
func (o *System) Step(X, Z *mat.Dense, ξ, β []float64) (s, dh []float64) {
	m, _ := Z.Dims()
	var c, zc, hzc mat.VecDense
	c.MulVec(o.HZ.T(), mat.NewVecDense(o.nob, ξ))
	zc.MulVec(Z, &c)
	hzc.MulVec(o.HZ, &c)
	s = make([]float64, m)
	dh = make([]float64, o.nob)
	copy(s, zc.RawVector().Data)
	copy(dh, hzc.RawVector().Data)
	if o.ndr > 0 {
		var xβ, hxβ mat.VecDense
		vβ := mat.NewVecDense(o.ndr, β)
		xβ.MulVec(X, vβ)
		hxβ.MulVec(o.HX, vβ)
		floats.Add(s, xβ.RawVector().Data)
		floats.Add(dh, hxβ.RawVector().Data)
	}
	return
}

// PostVar computes the diagonal of the posterior covariance
//   v_i = Q_ii - z_iᵀ G M⁻¹ z_i + (L z_i - x_i)ᵀ S⁻¹ (L z_i - x_i)    with    L = HXᵀ HZ M⁻¹
//  qdiag -- [m] diagonal of prior covariance
//  X     -- [m][ndrift] drift matrix; nil if there is no drift
//  Z     -- [m][npc] scaled principal components (rows are z_i)
func (o *System) PostVar(qdiag []float64, X, Z *mat.Dense) (v []float64, err error) {
	m, _ := Z.Dims()

	// K = M⁻¹ G (symmetric since M and G commute)
	var K mat.Dense
	err = o.M.SolveTo(&K, o.G)
	if err != nil {
		return nil, chk.Err("system: cannot compute M⁻¹G:\n%v", err)
	}
	var ZK mat.Dense
	ZK.Mul(Z, &K)

	// LZᵀ = HXᵀ HZ M⁻¹ Zᵀ
	var LZt mat.Dense
	if o.ndr > 0 {
		var W, L mat.Dense
		err = o.M.SolveTo(&W, o.HZ.T())
		if err != nil {
			return nil, chk.Err("system: cannot compute M⁻¹HZᵀ:\n%v", err)
		}
		L.Mul(o.HX.T(), W.T())
		LZt.Mul(&L, Z.T())
	}

	// variance
	v = make([]float64, m)
	zi := make([]float64, o.npc)
	ki := make([]float64, o.npc)
	r := mat.NewVecDense(max(o.ndr, 1), nil)
	var Sr mat.VecDense
	for i := 0; i < m; i++ {
		mat.Row(zi, i, Z)
		mat.Row(ki, i, &ZK)
		v[i] = qdiag[i] - floats.Dot(zi, ki)
		if o.ndr > 0 {
			for j := 0; j < o.ndr; j++ {
				r.SetVec(j, LZt.At(j, i)-X.At(i, j))
			}
			err = o.S.SolveVecTo(&Sr, r)
			if err != nil {
				return nil, chk.Err("system: cannot solve with factorised S:\n%v", err)
			}
			v[i] += mat.Dot(r, &Sr)
		}
		if v[i] < 0 {
			v[i] = 0
		}
	}
	return
}
