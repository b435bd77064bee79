// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cov

import (
	"math"

	"github.com/cpmech/gopcga/grid"
	"github.com/cpmech/gopcga/kernel"
	"gonum.org/v1/gonum/dsp/fourier"
)

// FFT computes products with the covariance matrix of a stationary kernel on a regular grid.
//  Q is block-Toeplitz with Toeplitz blocks; it is embedded into a block-circulant matrix of
//  size (Mx·My)² with Mx ≥ 2Nx-1 and My ≥ 2Ny-1, which is diagonalised by the 2D DFT.
//  Rows are transformed with real FFTs and the Mx/2+1 resulting columns with complex FFTs.
type FFT struct {
	nx, ny int          // grid size
	mx, my int          // embedding size
	kx     int          // number of row coefficients: mx/2+1
	σ2     float64      // Q_ii
	λ      [][]float64  // eigenvalues of the circulant embedding [my][kx]
	rfft   *fourier.FFT // real transform of rows
	cfft   *fourier.CmplxFFT
	work   [][]complex128 // [my][kx]
	row    []float64      // [mx]
	col    []complex128   // [my]
}

// NewFFT returns a new FFT covariance operator
func NewFFT(g *grid.Grid, mdl kernel.Model, θ2 []float64) (o *FFT, err error) {
	if err = kernel.CheckScales(θ2, 2); err != nil {
		return
	}
	o = new(FFT)
	o.nx, o.ny = g.Nx(), g.Ny()
	o.mx, o.my = embeddingSize(o.nx), embeddingSize(o.ny)
	o.kx = o.mx/2 + 1
	o.σ2 = kernel.Variance(mdl)
	o.rfft = fourier.NewFFT(o.mx)
	o.cfft = fourier.NewCmplxFFT(o.my)
	o.work = make([][]complex128, o.my)
	for j := range o.work {
		o.work[j] = make([]complex128, o.kx)
	}
	o.row = make([]float64, o.mx)
	o.col = make([]complex128, o.my)

	// first column of the circulant embedding
	c := make([][]float64, o.my)
	for j := 0; j < o.my; j++ {
		c[j] = make([]float64, o.mx)
		dy := float64(lag(j, o.my)) * g.Dx[1] / θ2[1]
		for i := 0; i < o.mx; i++ {
			dx := float64(lag(i, o.mx)) * g.Dx[0] / θ2[0]
			c[j][i] = mdl.F(math.Sqrt(dx*dx + dy*dy))
		}
	}

	// eigenvalues: the embedding is real and even, so its spectrum is real
	o.forward(c)
	o.λ = make([][]float64, o.my)
	for j := 0; j < o.my; j++ {
		o.λ[j] = make([]float64, o.kx)
		for k := 0; k < o.kx; k++ {
			o.λ[j][k] = real(o.work[j][k]) / float64(o.mx*o.my)
		}
	}
	return
}

// Dim returns the size of Q
func (o *FFT) Dim() int {
	return o.nx * o.ny
}

// Diag returns Q_ii
func (o *FFT) Diag(i int) float64 {
	return o.σ2
}

// MulVec computes y = Q x
func (o *FFT) MulVec(y, x []float64) {
	o.forwardField(x)
	for j := 0; j < o.my; j++ {
		for k := 0; k < o.kx; k++ {
			o.work[j][k] *= complex(o.λ[j][k], 0)
		}
	}
	o.inverse(y)
}

// MinEig returns the smallest eigenvalue of the circulant embedding.
//  Note: negative values indicate that the embedding is not positive definite; the matvec
//        products are still exact for the original Toeplitz matrix
func (o *FFT) MinEig() (λmin float64) {
	λmin = math.Inf(1)
	for _, row := range o.λ {
		for _, l := range row {
			λmin = math.Min(λmin, l)
		}
	}
	return
}

// auxiliary //////////////////////////////////////////////////////////////////////////////////////

// forward computes the 2D transform of the periodic array a[my][mx] into work
func (o *FFT) forward(a [][]float64) {
	for j := 0; j < o.my; j++ {
		o.rfft.Coefficients(o.work[j], a[j])
	}
	o.transformColumns(false)
}

// forwardField computes the 2D transform of the zero-padded field x[ny·nx] into work
func (o *FFT) forwardField(x []float64) {
	for j := 0; j < o.my; j++ {
		if j >= o.ny {
			for k := range o.work[j] {
				o.work[j][k] = 0
			}
			continue
		}
		copy(o.row, x[j*o.nx:(j+1)*o.nx])
		for i := o.nx; i < o.mx; i++ {
			o.row[i] = 0
		}
		o.rfft.Coefficients(o.work[j], o.row)
	}
	o.transformColumns(false)
}

// inverse computes the inverse 2D transform of work and crops the result into y[ny·nx]
func (o *FFT) inverse(y []float64) {
	o.transformColumns(true)
	for j := 0; j < o.ny; j++ {
		o.rfft.Sequence(o.row, o.work[j])
		copy(y[j*o.nx:(j+1)*o.nx], o.row[:o.nx])
	}
}

// transformColumns applies the complex transform along y to each of the kx columns of work
func (o *FFT) transformColumns(inverse bool) {
	for k := 0; k < o.kx; k++ {
		for j := 0; j < o.my; j++ {
			o.col[j] = o.work[j][k]
		}
		if inverse {
			o.cfft.Sequence(o.col, o.col)
		} else {
			o.cfft.Coefficients(o.col, o.col)
		}
		for j := 0; j < o.my; j++ {
			o.work[j][k] = o.col[j]
		}
	}
}

// lag returns the signed distance in cells represented by index i of a periodic array of size m
func lag(i, m int) int {
	if i <= m/2 {
		return i
	}
	return i - m
}

// embeddingSize returns the smallest 5-smooth number greater than or equal to 2n-1
func embeddingSize(n int) int {
	m := 2*n - 1
	if m < 1 {
		m = 1
	}
	for ; ; m++ {
		k := m
		for _, f := range []int{2, 3, 5} {
			for k%f == 0 {
				k /= f
			}
		}
		if k == 1 {
			return m
		}
	}
}
