// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package grid

import "github.com/cpmech/gosl/utl"

// FlipUD returns a copy of a with the order of rows reversed
func FlipUD(a [][]float64) (b [][]float64) {
	n := len(a)
	b = make([][]float64, n)
	for i := 0; i < n; i++ {
		b[i] = utl.GetCopy(a[n-1-i])
	}
	return
}

// FlipLR returns a copy of a with the order of columns reversed
func FlipLR(a [][]float64) (b [][]float64) {
	b = make([][]float64, len(a))
	for i, row := range a {
		b[i] = utl.GetReversed(row)
	}
	return
}

// Scale returns a copy of a with all entries multiplied by α
func Scale(a [][]float64, α float64) (b [][]float64) {
	b = utl.GetMapped2(a, func(x float64) float64 { return α * x })
	return
}

// Rot180 returns -a rotated by 180 degrees; i.e. flipud(fliplr(-a))
//  Note: this is the "depth as elevation" view of a bathymetry field
func Rot180(a [][]float64) [][]float64 {
	return FlipUD(FlipLR(Scale(a, -1)))
}

// Row returns a copy of row j of a
func Row(a [][]float64, j int) []float64 {
	return utl.GetCopy(a[j])
}
