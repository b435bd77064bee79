// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package out

import (
	"bytes"
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/plt"
	"github.com/cpmech/gosl/utl"
)

// FieldLimits returns floor(min(s)) and ceil(max(s))
func FieldLimits(s []float64) (vmin, vmax float64) {
	lo, hi := utl.MinMax(s)
	return math.Floor(lo), math.Ceil(hi)
}

// ObsLimits returns the axis limits of the observations figure: floor and ceil of the
// smallest and largest value among observed and simulated data
func ObsLimits(obs, simul []float64) (lo, hi float64, err error) {
	if len(obs) == 0 || len(obs) != len(simul) {
		return 0, 0, chk.Err("out: observed (%d) and simulated (%d) data must have the same positive length", len(obs), len(simul))
	}
	lo, hi = FieldLimits(append(utl.GetCopy(obs), simul...))
	return
}

// TransectRows converts transects counted from the top into row indices of Ny×Nx matrices
//   row = Ny - t + 1
func TransectRows(ny int, transects []int) (rows []int, err error) {
	if len(transects) == 0 {
		return nil, chk.Err("out: at least one transect is required")
	}
	rows = make([]int, len(transects))
	for i, t := range transects {
		rows[i] = ny - t + 1
		if rows[i] < 0 || rows[i] >= ny {
			return nil, chk.Err("out: transect %d is outside grid with Ny=%d. valid transects are in [2, %d]", t, ny, ny+1)
		}
	}
	return
}

// Elevation returns -v in reversed order
func Elevation(v []float64) (e []float64) {
	e = utl.GetReversed(v)
	for i := range e {
		e[i] = -e[i]
	}
	return
}

// EigvIndices returns the indices of every second eigenvector; at most n indices
func EigvIndices(n, npc int) (idx []int) {
	for j := 0; j < npc && len(idx) < n; j += 2 {
		idx = append(idx, j)
	}
	return
}

// GridLayout returns the number of rows and columns of subplots; four columns at most
func GridLayout(n int) (nr, nc int) {
	nc = utl.Imin(n, 4)
	if nc < 1 {
		return 1, 1
	}
	nr = (n + nc - 1) / nc
	return
}

// PyArray writes a numpy array; e.g. A=np.array([[1,2],[3,4]],dtype=float)
func PyArray(buf *bytes.Buffer, name string, a [][]float64) {
	io.Ff(buf, "%s=np.array([", name)
	for i := range a {
		io.Ff(buf, "[")
		for j := range a[i] {
			io.Ff(buf, "%g,", a[i][j])
		}
		io.Ff(buf, "],")
	}
	io.Ff(buf, "],dtype=float)\n")
}

// auxiliary ///////////////////////////////////////////////////////////////////////////////////////

// imshow draws a matrix as an image; colour limits are ignored if vmin ≥ vmax
func imshow(name string, a [][]float64, extent []float64, vmin, vmax float64, cmap string) {
	var buf bytes.Buffer
	PyArray(&buf, name, a)
	io.Ff(&buf, "im = plt.imshow(%s, extent=[%g,%g,%g,%g]", name, extent[0], extent[1], extent[2], extent[3])
	if vmin < vmax {
		io.Ff(&buf, ", vmin=%g, vmax=%g", vmin, vmax)
	}
	if cmap != "" {
		io.Ff(&buf, ", cmap=plt.get_cmap('%s')", cmap)
	}
	io.Ff(&buf, ")\n")
	plt.PyCmds(buf.String())
}

// setAspectEqual sets equal aspect ratio of current axes
func setAspectEqual() {
	plt.PyCmds("plt.gca().set_aspect('equal')\n")
}

// sideColorbar adds a colour bar of the last image on the right-hand side of the figure
func sideColorbar() {
	plt.PyCmds("plt.gcf().subplots_adjust(right=0.8)\n")
	plt.PyCmds("cax = plt.gcf().add_axes([0.85, 0.15, 0.05, 0.7])\n")
	plt.PyCmds("plt.colorbar(im, cax=cax)\n")
}
