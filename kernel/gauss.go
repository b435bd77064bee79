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

// Gauss implements the squared-exponential kernel
//  F(r) = θ1² exp(-r²)
type Gauss struct {
	θ1 float64 // standard deviation of the field
}

// add model to factory
func init() {
	allocators["gauss"] = func() Model { return new(Gauss) }
}

// Init initialises model
func (o *Gauss) Init(prms dbf.Params) (err error) {
	o.θ1 = 1
	for _, p := range prms {
		switch strings.ToLower(p.N) {
		case "theta1":
			o.θ1 = p.V
		default:
			return chk.Err("gauss: parameter named %q is incorrect\n", p.N)
		}
	}
	if o.θ1 <= 0 {
		return chk.Err("gauss: theta1 must be positive. %g is invalid", o.θ1)
	}
	return
}

// GetPrms gets (an example) of parameters
func (o Gauss) GetPrms(example bool) dbf.Params {
	return []*dbf.P{
		&dbf.P{N: "theta1", V: 1},
	}
}

// F computes the kernel
func (o Gauss) F(r float64) float64 {
	return o.θ1 * o.θ1 * math.Exp(-r*r)
}
