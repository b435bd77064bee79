// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cov

import (
	"github.com/cpmech/gopcga/kernel"
	"github.com/cpmech/gosl/chk"
	"gonum.org/v1/gonum/mat"
)

// Dense holds an explicitly formed covariance matrix
type Dense struct {
	Q *mat.SymDense // m×m covariance matrix
}

// NewDense forms Q_ij = F(r(x_i, x_j)) for all pairs of points
func NewDense(pts [][]float64, mdl kernel.Model, θ2 []float64) (o *Dense, err error) {
	m := len(pts)
	if m == 0 {
		return nil, chk.Err("cov: at least one point is required")
	}
	if err = kernel.CheckScales(θ2, len(pts[0])); err != nil {
		return
	}
	o = &Dense{Q: mat.NewSymDense(m, nil)}
	for i := 0; i < m; i++ {
		for j := i; j < m; j++ {
			o.Q.SetSym(i, j, kernel.Cov(mdl, pts[i], pts[j], θ2))
		}
	}
	return
}

// Dim returns the size of Q
func (o *Dense) Dim() int {
	return o.Q.SymmetricDim()
}

// MulVec computes y = Q x
func (o *Dense) MulVec(y, x []float64) {
	m := o.Dim()
	dst := mat.NewVecDense(m, y)
	dst.MulVec(o.Q, mat.NewVecDense(m, x))
}

// Diag returns Q_ii
func (o *Dense) Diag(i int) float64 {
	return o.Q.At(i, i)
}
