// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package kernel implements stationary covariance kernels for geostatistical priors
//  The covariance between two points x and y is computed as
//    Q(x,y) = F(r)   with   r = sqrt( Σ_k ((x_k - y_k) / θ2_k)² )
//  where θ2 holds the (anisotropic) length scales
package kernel

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
)

// Model defines covariance kernels as functions of the scaled distance r
type Model interface {
	Init(prms dbf.Params) error      // initialises model
	GetPrms(example bool) dbf.Params // gets (an example) of parameters
	F(r float64) float64             // computes kernel at scaled distance r ≥ 0
}

// New returns new kernel model
func New(name string) (model Model, err error) {
	allocator, ok := allocators[name]
	if !ok {
		return nil, chk.Err("kernel %q is not available in 'kernel' database", name)
	}
	return allocator(), nil
}

// Variance returns the kernel value at zero distance
func Variance(mdl Model) float64 {
	return mdl.F(0)
}

// Distance computes the scaled distance between x and y
//  θ2 -- length scales; len(θ2) must be equal to len(x)
func Distance(x, y, θ2 []float64) float64 {
	var sum float64
	for k := 0; k < len(x); k++ {
		d := (x[k] - y[k]) / θ2[k]
		sum += d * d
	}
	return math.Sqrt(sum)
}

// Cov returns Q(x,y) = F(r(x,y))
func Cov(mdl Model, x, y, θ2 []float64) float64 {
	return mdl.F(Distance(x, y, θ2))
}

// CheckScales checks length scales
func CheckScales(θ2 []float64, ndim int) (err error) {
	if len(θ2) != ndim {
		return chk.Err("kernel: number of length scales (%d) must be equal to the space dimension (%d)", len(θ2), ndim)
	}
	for i, l := range θ2 {
		if l <= 0 {
			return chk.Err("kernel: length scale θ2[%d]=%g must be positive", i, l)
		}
	}
	return
}

// allocators holds all available models
var allocators = map[string]func() Model{}
