// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package cov implements prior covariance operators Q built from stationary kernels
package cov

import (
	"strings"

	"github.com/cpmech/gopcga/grid"
	"github.com/cpmech/gopcga/kernel"
	"github.com/cpmech/gosl/chk"
)

// Operator computes products with a symmetric covariance matrix Q
//  Note: implementations are not safe for concurrent use
type Operator interface {
	Dim() int              // size m of the m×m matrix
	MulVec(y, x []float64) // computes y = Q x
	Diag(i int) float64    // returns Q_ii
}

// New allocates a covariance operator
//  matvec -- "FFT" or "Dense"
//  g      -- grid; required by "FFT" and used to generate points by "Dense"
//  θ2     -- length scales
func New(matvec string, g *grid.Grid, mdl kernel.Model, θ2 []float64) (Operator, error) {
	if g == nil {
		return nil, chk.Err("cov: grid must be given")
	}
	if err := kernel.CheckScales(θ2, 2); err != nil {
		return nil, err
	}
	switch strings.ToLower(matvec) {
	case "fft", "":
		return NewFFT(g, mdl, θ2)
	case "dense":
		return NewDense(g.Points(), mdl, θ2)
	}
	return nil, chk.Err("cov: matvec strategy %q is not available. options are \"FFT\" and \"Dense\"", matvec)
}

// ToDense forms the full matrix by applying op to unit vectors
func ToDense(op Operator) (Q [][]float64) {
	m := op.Dim()
	Q = make([][]float64, m)
	e := make([]float64, m)
	col := make([]float64, m)
	for j := 0; j < m; j++ {
		e[j] = 1
		op.MulVec(col, e)
		e[j] = 0
		for i := 0; i < m; i++ {
			if j == 0 {
				Q[i] = make([]float64, m)
			}
			Q[i][j] = col[i]
		}
	}
	return
}
