// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pcga

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/utl"
)

// Summary records a summary of the inversion
type Summary struct {
	IterBest int         // iteration of best solution (1-based)
	IterFin  int         // number of performed iterations
	Nruns    int         // number of forward simulations
	Obj0     float64     // objective of initial field
	Objs     []float64   // [niter] objective after each iteration
	Steps    []float64   // [niter] relative change of solution
	Alphas   []float64   // [niter] selected Levenberg-Marquardt multipliers
	Rmse     float64     // root-mean-square error of simulated observations
	Shat     []float64   // [m] best estimate
	SimulObs []float64   // [nobs] simulated observations at Shat
	PostVar  []float64   // [m] posterior variance; may be nil
	PriorD   []float64   // [npc] eigenvalues of prior covariance
	Shats    [][]float64 // [niter][m] solution after each iteration
}

// GetSummary returns the summary of the last run
func (o *PCGA) GetSummary() *Summary {
	return &Summary{
		IterBest: o.IterBest,
		IterFin:  o.IterFin,
		Nruns:    o.Nruns,
		Obj0:     o.Obj0,
		Objs:     o.Objs,
		Steps:    o.Steps,
		Alphas:   o.Alphas,
		Rmse:     RMSE(o.Obs, o.SimulObs),
		Shat:     o.Shat,
		SimulObs: o.SimulObs,
		PostVar:  o.PostVar,
		PriorD:   o.PriorD,
		Shats:    o.Shats,
	}
}

// Save saves summary to <dirout>/<key>.sum and the main arrays to text files
//  <key>_shat.txt, <key>_simulobs.txt and <key>_postv.txt (if available)
func (o *Summary) Save(dirout, key, enctype string) (err error) {

	// encode summary
	var buf bytes.Buffer
	enc := utl.NewEncoder(&buf, enctype)
	err = enc.Encode(o)
	if err != nil {
		return chk.Err("cannot encode summary:\n%v", err)
	}
	err = os.MkdirAll(dirout, 0777)
	if err != nil {
		return chk.Err("cannot create output directory:\n%v", err)
	}
	io.WriteFileVD(dirout, key+".sum", &buf)

	// arrays
	writeColumn(dirout, key+"_shat.txt", o.Shat)
	writeColumn(dirout, key+"_simulobs.txt", o.SimulObs)
	if o.PostVar != nil {
		writeColumn(dirout, key+"_postv.txt", o.PostVar)
	}
	return
}

// Read reads summary back from <dirout>/<key>.sum
func (o *Summary) Read(dirout, key, enctype string) (err error) {
	fil, err := os.Open(filepath.Join(dirout, key+".sum"))
	if err != nil {
		return chk.Err("cannot open summary file:\n%v", err)
	}
	defer fil.Close()
	dec := utl.NewDecoder(fil, enctype)
	err = dec.Decode(o)
	if err != nil {
		return chk.Err("cannot decode summary:\n%v", err)
	}
	return
}

// writeColumn writes v as a text column (readable by inp.LoadVector)
func writeColumn(dirout, fn string, v []float64) {
	var buf bytes.Buffer
	for _, x := range v {
		io.Ff(&buf, "%23.15e\n", x)
	}
	io.WriteFileVD(dirout, fn, &buf)
}
