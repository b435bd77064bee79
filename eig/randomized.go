// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package eig

import (
	"github.com/cpmech/gopcga/cov"
	"github.com/cpmech/gosl/chk"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Randomized computes the k leading eigenpairs of op using only products with Q [1]
//  p     -- oversampling; i.e. number of extra probes
//  q     -- number of power iterations
//  seed  -- seed of the Gaussian probes
func Randomized(op cov.Operator, k, p, q int, seed uint64) (res *Result, err error) {

	// number of probes
	m := op.Dim()
	n := k + p
	if n > m {
		n = m
	}

	// Gaussian probes Ω
	dist := distuv.Normal{Mu: 0, Sigma: 1, Src: rand.NewSource(seed)}
	Y := mat.NewDense(m, n, nil)
	for i := 0; i < m; i++ {
		for j := 0; j < n; j++ {
			Y.Set(i, j, dist.Rand())
		}
	}

	// range finder: Y = Q Ω followed by q subspace iterations
	applyQ(op, Y, Y)
	V := new(mat.Dense)
	for it := 0; it < q; it++ {
		if err = orthonormalize(V, Y); err != nil {
			return
		}
		applyQ(op, Y, V)
	}
	if err = orthonormalize(V, Y); err != nil {
		return
	}

	// projected matrix B = Vᵀ Q V
	QV := mat.NewDense(m, n, nil)
	applyQ(op, QV, V)
	var B mat.Dense
	B.Mul(V.T(), QV)
	Bs := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			Bs.SetSym(i, j, (B.At(i, j)+B.At(j, i))/2)
		}
	}

	// eigenpairs of B
	var es mat.EigenSym
	if !es.Factorize(Bs, true) {
		return nil, chk.Err("eig: symmetric eigendecomposition of projected matrix failed")
	}
	var W mat.Dense
	es.VectorsTo(&W)
	var U mat.Dense
	U.Mul(V, &W)
	return leading(es.Values(nil), &U, k), nil
}

// applyQ computes dst = Q src column by column; dst and src may be the same matrix
func applyQ(op cov.Operator, dst, src *mat.Dense) {
	m, n := src.Dims()
	x := make([]float64, m)
	y := make([]float64, m)
	for j := 0; j < n; j++ {
		mat.Col(x, j, src)
		op.MulVec(y, x)
		dst.SetCol(j, y)
	}
}

// orthonormalize computes an orthonormal basis V of the range of Y using the thin SVD
func orthonormalize(V, Y *mat.Dense) (err error) {
	var svd mat.SVD
	if !svd.Factorize(Y, mat.SVDThinU) {
		return chk.Err("eig: SVD of probe matrix failed")
	}
	V.Reset()
	svd.UTo(V)
	return
}
