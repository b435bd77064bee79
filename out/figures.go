// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package out

import (
	"github.com/cpmech/gopcga/grid"
	"github.com/cpmech/gopcga/pcga"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/plt"
	"github.com/cpmech/gosl/utl"
	"gonum.org/v1/gonum/mat"
)

// BestRaw draws the true and estimated fields with colour limits given by the true field (best_.png)
func (o *Figures) BestRaw(strue, shat []float64) (err error) {
	T, S, err := o.reshape2(strue, shat)
	if err != nil {
		return
	}
	vmin, vmax := FieldLimits(strue)
	o.drawPair("best_", T, S, vmin, vmax)
	return
}

// Best draws the true and estimated fields as elevations; i.e. negated and rotated (best.png)
func (o *Figures) Best(strue, shat []float64) (err error) {
	T, S, err := o.reshape2(strue, shat)
	if err != nil {
		return
	}
	o.drawPair("best", grid.Rot180(T), grid.Rot180(S), o.Vmin, o.Vmax)
	return
}

// Transect draws true and estimated elevations along transects (transect.png)
func (o *Figures) Transect(strue, shat []float64) (err error) {
	T, S, err := o.reshape2(strue, shat)
	if err != nil {
		return
	}
	rows, err := TransectRows(o.Grid.Ny(), o.Transects)
	if err != nil {
		return
	}
	nx := o.Grid.Nx()
	x := utl.LinSpace(1, float64(nx), nx)
	plt.Reset(true, &plt.A{Prop: 0.5, WidthPt: 600})
	plt.SupTitle(io.Sf("transect with %s, lx = %g, ly = %g", o.label(), o.Theta2[0]/o.Grid.Dx[0], o.Theta2[1]/o.Grid.Dx[1]), nil)
	for k, r := range rows {
		plt.Subplot(1, len(rows), k+1)
		plt.Plot(x, Elevation(grid.Row(T, r)), styleTrue())
		plt.Plot(x, Elevation(grid.Row(S, r)), styleEstimate())
		plt.Title(io.Sf("(%c) %g m", 'a'+k, float64(o.Transects[k])*o.Grid.Dx[1]), nil)
		plt.Legend(nil)
	}
	plt.Save(o.Dirout, "transect")
	return
}

// ObsFit draws simulated versus observed data with the 1:1 line (obs.png)
func (o *Figures) ObsFit(obs, simul []float64) (err error) {
	lo, hi, err := ObsLimits(obs, simul)
	if err != nil {
		return
	}
	dmin, dmax := utl.MinMax(append(utl.GetCopy(obs), simul...))
	line := utl.LinSpace(dmin, dmax, 20)
	plt.Reset(true, nil)
	plt.Title(io.Sf("%s, RMSE : %g", o.label(), pcga.RMSE(obs, simul)), nil)
	plt.Plot(obs, simul, styleObs())
	plt.Plot(line, line, styleOneToOne())
	plt.Equal()
	plt.AxisRange(lo, hi, lo, hi)
	plt.Save(o.Dirout, "obs")
	return
}

// Eigv draws every second eigenvector of the prior covariance (eigv.png)
func (o *Figures) Eigv(U *mat.Dense) (err error) {
	_, npc := U.Dims()
	idx := EigvIndices(o.Neigv, npc)
	nr, nc := GridLayout(len(idx))
	plt.Reset(true, &plt.A{Prop: 0.8, WidthPt: 600})
	plt.SupTitle(io.Sf("n_pc : %d", o.Npc), nil)
	for k, j := range idx {
		var a [][]float64
		a, err = o.Grid.Reshape(mat.Col(nil, j, U))
		if err != nil {
			return
		}
		plt.Subplot(nr, nc, k+1)
		imshow(io.Sf("U%d", j), a, o.Extent, 0, 0, "")
		plt.Title(io.Sf("%d-th eigv", j), &plt.A{Fsz: 7})
	}
	plt.Save(o.Dirout, "eigv")
	return
}

// Eig draws the eigenvalues of the prior covariance in semi-log scale (eig.png)
//  Note: zero eigenvalues are skipped
func (o *Figures) Eig(D []float64) (err error) {
	var x, y []float64
	for i, d := range D {
		if d > 0 {
			x = append(x, float64(i))
			y = append(y, d)
		}
	}
	plt.Reset(true, nil)
	plt.Plot(x, y, styleEig())
	plt.SetYlog()
	plt.Gll("index", "eigenvalue", nil)
	plt.Save(o.Dirout, "eig")
	return
}

// auxiliary ///////////////////////////////////////////////////////////////////////////////////////

// reshape2 reshapes true and estimated fields
func (o *Figures) reshape2(strue, shat []float64) (T, S [][]float64, err error) {
	T, err = o.Grid.Reshape(strue)
	if err != nil {
		return
	}
	S, err = o.Grid.Reshape(shat)
	return
}

// drawPair draws true and estimated fields side by side with a shared colour bar
func (o *Figures) drawPair(fnkey string, T, S [][]float64, vmin, vmax float64) {
	plt.Reset(true, &plt.A{Prop: 0.5, WidthPt: 600})
	plt.SupTitle(o.label(), nil)
	plt.Subplot(1, 2, 1)
	imshow("T", T, o.Extent, vmin, vmax, "jet")
	plt.Title("(a) True", nil)
	setAspectEqual()
	plt.Subplot(1, 2, 2)
	imshow("S", S, o.Extent, vmin, vmax, "jet")
	plt.Title("(b) Estimate", nil)
	setAspectEqual()
	sideColorbar()
	plt.Save(o.Dirout, fnkey)
}
