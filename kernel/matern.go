// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package kernel

import (
	"math"
	"strings"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
)

// Matern implements Matérn kernels with half-integer smoothness
//  ν = 1/2:  F(r) = θ1² exp(-r)
//  ν = 3/2:  F(r) = θ1² (1 + √3 r) exp(-√3 r)
//  ν = 5/2:  F(r) = θ1² (1 + √5 r + 5r²/3) exp(-√5 r)
type Matern struct {
	θ1 float64 // standard deviation
	ν  float64 // smoothness: 0.5, 1.5 or 2.5
}

// add model to factory
func init() {
	allocators["matern"] = func() Model { return new(Matern) }
	allocators["matern32"] = func() Model { return &Matern{ν: 1.5} }
	allocators["matern52"] = func() Model { return &Matern{ν: 2.5} }
}

// Init initialises model
func (o *Matern) Init(prms dbf.Params) (err error) {
	o.θ1 = 1
	if o.ν == 0 {
		o.ν = 1.5
	}
	for _, p := range prms {
		switch strings.ToLower(p.N) {
		case "theta1":
			o.θ1 = p.V
		case "nu":
			o.ν = p.V
		default:
			return chk.Err("matern: parameter named %q is incorrect\n", p.N)
		}
	}
	if o.θ1 <= 0 {
		return chk.Err("matern: theta1 must be positive. %g is invalid", o.θ1)
	}
	if o.ν != 0.5 && o.ν != 1.5 && o.ν != 2.5 {
		return chk.Err("matern: smoothness nu must be 0.5, 1.5 or 2.5. %g is invalid", o.ν)
	}
	return
}

// GetPrms gets (an example) of parameters
func (o Matern) GetPrms(example bool) dbf.Params {
	ν := o.ν
	if ν == 0 {
		ν = 1.5
	}
	return []*dbf.P{
		&dbf.P{N: "theta1", V: 1},
		&dbf.P{N: "nu", V: ν},
	}
}

// F computes the kernel
func (o Matern) F(r float64) float64 {
	σ2 := o.θ1 * o.θ1
	switch o.ν {
	case 0.5:
		return σ2 * math.Exp(-r)
	case 2.5:
		a := math.Sqrt(5) * r
		return σ2 * (1 + a + a*a/3) * math.Exp(-a)
	}
	a := math.Sqrt(3) * r
	return σ2 * (1 + a) * math.Exp(-a)
}
