// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package eig computes the leading eigenpairs (principal components) of prior covariance operators
//  Q ≈ U diag(D) Uᵀ
//  References:
//   [1] Halko N, Martinsson PG and Tropp JA (2011) Finding structure with randomness:
//       Probabilistic algorithms for constructing approximate matrix decompositions.
//       SIAM Review, 53(2), 217-288
//   [2] Lee J and Kitanidis PK (2014) Large-scale hydraulic tomography and joint inversion
//       of head and tracer data using the Principal Component Geostatistical Approach (PCGA).
//       Water Resources Research, 50(7), 5410-5427
package eig

import (
	"sort"
	"strings"

	"github.com/cpmech/gopcga/cov"
	"github.com/cpmech/gosl/chk"
	"gonum.org/v1/gonum/mat"
)

// Result holds the leading eigenpairs of Q
type Result struct {
	U *mat.Dense // m×k eigenvectors (columns)
	D []float64  // k eigenvalues in descending order
}

// Control holds parameters for the computation of eigenpairs
type Control struct {
	Method       string // "dense", "randomized" or "" (automatic)
	Oversampling int    // extra random probes of the randomized method
	PowerIters   int    // number of subspace (power) iterations
	Seed         uint64 // seed of the random probes
	MaxDense     int    // largest size for which "" selects the dense method
}

// SetDefault sets default values
func (o *Control) SetDefault() {
	o.Oversampling = 10
	o.PowerIters = 1
	o.Seed = 1234
	o.MaxDense = 1000
}

// Compute computes the k leading eigenpairs of op
func Compute(op cov.Operator, k int, ctrl Control) (res *Result, err error) {
	m := op.Dim()
	if k < 1 || k > m {
		return nil, chk.Err("eig: number of principal components must be in [1, %d]. k=%d is invalid", m, k)
	}
	method := strings.ToLower(ctrl.Method)
	if method == "" {
		method = "randomized"
		if _, isdense := op.(*cov.Dense); isdense || m <= ctrl.MaxDense {
			method = "dense"
		}
	}
	switch method {
	case "dense":
		return Dense(op, k)
	case "randomized":
		return Randomized(op, k, ctrl.Oversampling, ctrl.PowerIters, ctrl.Seed)
	}
	return nil, chk.Err("eig: method %q is not available", ctrl.Method)
}

// Dense forms Q and computes its full spectral decomposition
func Dense(op cov.Operator, k int) (res *Result, err error) {
	var Q *mat.SymDense
	if d, ok := op.(*cov.Dense); ok {
		Q = d.Q
	} else {
		m := op.Dim()
		A := cov.ToDense(op)
		Q = mat.NewSymDense(m, nil)
		for i := 0; i < m; i++ {
			for j := i; j < m; j++ {
				Q.SetSym(i, j, (A[i][j]+A[j][i])/2)
			}
		}
	}
	var es mat.EigenSym
	if !es.Factorize(Q, true) {
		return nil, chk.Err("eig: symmetric eigendecomposition of Q failed")
	}
	var V mat.Dense
	es.VectorsTo(&V)
	return leading(es.Values(nil), &V, k), nil
}

// leading selects the k largest eigenvalues and corresponding eigenvectors
func leading(values []float64, V *mat.Dense, k int) (res *Result) {
	idx := make([]int, len(values))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return values[idx[a]] > values[idx[b]] })
	m, _ := V.Dims()
	res = &Result{U: mat.NewDense(m, k, nil), D: make([]float64, k)}
	col := make([]float64, m)
	for j := 0; j < k; j++ {
		res.D[j] = values[idx[j]]
		if res.D[j] < 0 {
			res.D[j] = 0
		}
		mat.Col(col, idx[j], V)
		res.U.SetCol(j, col)
	}
	return
}
