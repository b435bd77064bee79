// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package out

import (
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/plt"
)

// label returns the common title of figures
func (o *Figures) label() string {
	return io.Sf("theta1 : (%g)^2, n_pc : %d", o.Theta1, o.Npc)
}

// line styles
func styleTrue() *plt.A { return &plt.A{C: "r", Ls: "-", L: "True"} }
func styleEstimate() *plt.A { return &plt.A{C: "k", Ls: "-", L: "Estimated"} }
func styleObs() *plt.A { return &plt.A{C: "b", M: ".", Ls: "none"} }
func styleOneToOne() *plt.A { return &plt.A{C: "k", Ls: "-"} }
func styleEig() *plt.A { return &plt.A{C: "b", M: "o", Ls: "none"} }
