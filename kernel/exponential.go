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

// Exponential implements the exponential (Matérn ν=1/2) kernel
//  F(r) = θ1² exp(-r)
type Exponential struct {
	θ1 float64
}

// add model to factory
func init() {
	allocators["exp"] = func() Model { return new(Exponential) }
}

// Init initialises model
func (o *Exponential) Init(prms dbf.Params) (err error) {
	o.θ1 = 1
	for _, p := range prms {
		switch strings.ToLower(p.N) {
		case "theta1":
			o.θ1 = p.V
		default:
			return chk.Err("exp: parameter named %q is incorrect\n", p.N)
		}
	}
	if o.θ1 <= 0 {
		return chk.Err("exp: theta1 must be positive. %g is invalid", o.θ1)
	}
	return
}

// GetPrms gets (an example) of parameters
func (o Exponential) GetPrms(example bool) dbf.Params {
	return []*dbf.P{
		&dbf.P{N: "theta1", V: 1},
	}
}

// F computes the kernel
func (o Exponential) F(r float64) float64 {
	return o.θ1 * o.θ1 * math.Exp(-r)
}
