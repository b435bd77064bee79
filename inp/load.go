// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// LoadTrue loads the true field; e.g. an Ny×Nx matrix or a column with Nx·Ny values
func (o *Simulation) LoadTrue() (s []float64, err error) {
	s, err = LoadVector(o.Path(o.Data.TrueFile))
	if err != nil {
		return
	}
	if len(s) != o.Grid.Npts() {
		return nil, chk.Err("true field in %q must have %d values. %d is invalid", o.Data.TrueFile, o.Grid.Npts(), len(s))
	}
	return
}

// LoadObs loads the observations
func (o *Simulation) LoadObs() (d []float64, err error) {
	return LoadVector(o.Path(o.Data.ObsFile))
}

// LoadStations loads station coordinates (one "x y" row per station)
//  Note: returns nil if no stations file is given
func (o *Simulation) LoadStations() (X [][]float64, err error) {
	if o.Data.StaFile == "" {
		return
	}
	X, err = LoadMatrix(o.Path(o.Data.StaFile))
	if err != nil {
		return
	}
	for i, x := range X {
		if len(x) != 2 {
			return nil, chk.Err("station %d in %q must have 2 coordinates. %v is invalid", i, o.Data.StaFile, x)
		}
	}
	return
}

// LoadVector reads a text matrix and ravels it row by row
func LoadVector(fn string) (v []float64, err error) {
	M, err := LoadMatrix(fn)
	if err != nil {
		return
	}
	for _, row := range M {
		v = append(v, row...)
	}
	return
}

// LoadMatrix reads a text matrix. Empty lines and lines starting with # are skipped.
func LoadMatrix(fn string) (M [][]float64, err error) {
	defer func() {
		if r := recover(); r != nil {
			M, err = nil, chk.Err("cannot read matrix file %q:\n%v", fn, r)
		}
	}()
	M = io.ReadMatrix(fn)
	if len(M) == 0 {
		return nil, chk.Err("matrix file %q has no numeric data", fn)
	}
	return
}
