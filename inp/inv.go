// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package inp implements the input data read from a (.inv) JSON file
package inp

import (
	"encoding/json"
	goio "io"
	"os"
	"path/filepath"
	"strings"

	"github.com/cpmech/gopcga/grid"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/io"
)

// Data holds global data for inversions
type Data struct {

	// global information
	Desc    string `json:"desc"`    // description of inversion
	DirOut  string `json:"dirout"`  // directory for output; e.g. /tmp/gopcga
	Encoder string `json:"encoder"` // encoder name; e.g. "gob" "json"

	// input files (text matrices); paths relative to the .inv file unless AbsPath
	TrueFile string `json:"truefile"` // true field; e.g. true_depth.dat
	ObsFile  string `json:"obsfile"`  // observations; e.g. obs.dat
	StaFile  string `json:"stations"` // station coordinates (x y rows); empty => every cell
	AbsPath  bool   `json:"abspath"`  // file paths are absolute

	// synthetic problem
	Synthetic bool       `json:"synthetic"` // generate true field and observations when files are not given
	Noise     float64    `json:"noise"`     // standard deviation of noise added to synthetic observations
	Seed      uint64     `json:"seed"`      // seed of synthetic noise
	Bathy     dbf.Params `json:"bathy"`     // parameters of synthetic bathymetry

	// initial guess
	Sinit *float64 `json:"sinit"` // constant initial field; nil => mean of true field
}

// PriorData holds data for the prior covariance
type PriorData struct {
	Kernel       string     `json:"kernel"`       // covariance kernel; e.g. gauss, exp, matern32
	Prms         dbf.Params `json:"prms"`         // kernel parameters; e.g. theta1
	Theta2       []float64  `json:"theta2"`       // correlation lengths along x and y
	Matvec       string     `json:"matvec"`       // covariance matrix-vector product: "FFT" or "Dense"
	Npc          int        `json:"npc"`          // number of principal components
	Method       string     `json:"method"`       // eigensolver: "dense", "randomized" or "" (automatic)
	Oversampling int        `json:"oversampling"` // randomized eigensolver: extra probes
	PowerIters   int        `json:"poweriters"`   // randomized eigensolver: subspace iterations
	Seed         uint64     `json:"seed"`         // randomized eigensolver: seed of probes
	Drift        string     `json:"drift"`        // drift (mean) function: "constant" or "none"
}

// SolverData holds PCGA solver data
type SolverData struct {

	// Gauss-Newton iterations
	R         float64 `json:"r"`         // variance of observation errors
	MaxIter   int     `json:"maxiter"`   // max number of iterations
	ResTol    float64 `json:"restol"`    // tolerance on relative change of solution and objective
	Precision float64 `json:"precision"` // precision of finite-difference Jacobian products

	// Levenberg-Marquardt
	LM       bool     `json:"lm"`       // use Levenberg-Marquardt damping
	AlphaMax float64  `json:"alphamax"` // largest multiplier of R
	Nlm      int      `json:"nlm"`      // number of multipliers
	LMsmin   *float64 `json:"lmsmin"`   // lower bound of solution candidates
	LMsmax   *float64 `json:"lmsmax"`   // upper bound of solution candidates

	// other options
	LineSearch  bool `json:"linesearch"`  // search along the Gauss-Newton step if the objective increases
	ObjEval     bool `json:"objeval"`     // evaluate the objective with forward runs; otherwise linearise
	Uncertainty bool `json:"uncertainty"` // compute posterior variance
	Parallel    bool `json:"parallel"`    // run forward simulations concurrently
	Ncores      int  `json:"ncores"`      // max number of concurrent simulations; 0 => all cores
	ShowMsg     bool `json:"showmsg"`     // show messages during iterations
}

// ModelData holds forward model data
type ModelData struct {
	Type   string     `json:"type"`   // model type; e.g. wave, lin
	Prms   dbf.Params `json:"prms"`   // model parameters
	Stride int        `json:"stride"` // stations at every stride-th cell when no stations file is given
	Nnear  int        `json:"nnear"`  // number of nearest cells used to interpolate at stations
}

// PlotData holds data for figures
type PlotData struct {
	On        bool      `json:"on"`        // generate figures
	Transects []int     `json:"transects"` // transect rows counted from the top
	Neigv     int       `json:"neigv"`     // number of eigenvectors drawn (every second one)
	Extent    []float64 `json:"extent"`    // image extent; default = [0, Nx, 0, Ny]
	Vmin      float64   `json:"vmin"`      // min value of negated fields
	Vmax      float64   `json:"vmax"`      // max value of negated fields
}

// Simulation holds all inversion data
type Simulation struct {

	// input
	Data   Data       `json:"data"`   // global data
	Grid   grid.Grid  `json:"grid"`   // regular grid
	Prior  PriorData  `json:"prior"`  // prior covariance
	Solver SolverData `json:"solver"` // PCGA solver data
	Model  ModelData  `json:"model"`  // forward model
	Plots  PlotData   `json:"plots"`  // figures

	// derived
	Dir     string // directory of .inv file
	DirOut  string // directory to save results
	Key     string // simulation key; e.g. stwave.inv => stwave or stwave-alias
	EncType string // encoder type
}

// SetDefault sets default values
func (o *PriorData) SetDefault() {
	o.Kernel = "gauss"
	o.Matvec = "FFT"
	o.Npc = 50
	o.Oversampling = 10
	o.PowerIters = 1
	o.Seed = 1234
	o.Drift = "constant"
}

// PostProcess checks and fixes values
func (o *PriorData) PostProcess() (err error) {
	o.Drift = strings.ToLower(o.Drift)
	if o.Drift != "constant" && o.Drift != "none" {
		return chk.Err("drift must be \"constant\" or \"none\". %q is invalid", o.Drift)
	}
	if len(o.Theta2) != 2 {
		return chk.Err("theta2 must have 2 values (correlation lengths along x and y). %v is invalid", o.Theta2)
	}
	if o.Npc < 1 {
		return chk.Err("number of principal components must be positive. npc=%d is invalid", o.Npc)
	}
	return
}

// SetDefault sets default values
func (o *SolverData) SetDefault() {
	o.R = 1e-2
	o.MaxIter = 10
	o.ResTol = 1e-2
	o.Precision = 1e-8
	o.AlphaMax = 1e3
	o.Nlm = 4
}

// PostProcess checks and fixes values
func (o *SolverData) PostProcess() (err error) {
	if o.R <= 0 {
		return chk.Err("observation error variance must be positive. r=%g is invalid", o.R)
	}
	if o.MaxIter < 1 {
		o.MaxIter = 1
	}
	if o.Nlm < 1 {
		o.Nlm = 1
	}
	if o.AlphaMax < 1 {
		o.AlphaMax = 1
	}
	if o.LMsmin != nil && o.LMsmax != nil && *o.LMsmin > *o.LMsmax {
		return chk.Err("lmsmin=%g must not be greater than lmsmax=%g", *o.LMsmin, *o.LMsmax)
	}
	return
}

// SetDefault sets default values
func (o *ModelData) SetDefault() {
	o.Type = "wave"
	o.Stride = 1
	o.Nnear = 4
}

// SetDefault sets default values
func (o *PlotData) SetDefault() {
	o.Transects = []int{25, 45}
	o.Neigv = 16
	o.Vmin = -7
	o.Vmax = 0
}

// PostProcess fixes values
func (o *PlotData) PostProcess(g *grid.Grid) {
	if len(o.Extent) != 4 {
		o.Extent = []float64{0, float64(g.Nx()), 0, float64(g.Ny())}
	}
}

// ReadInv reads all inversion data from a .inv JSON file
func ReadInv(invfilepath, alias string, erasePrev, createDirOut bool) *Simulation {

	// new sim
	var o Simulation

	// set default values
	o.Prior.SetDefault()
	o.Solver.SetDefault()
	o.Model.SetDefault()
	o.Plots.SetDefault()

	// read file and decode
	b := io.ReadFile(invfilepath)
	err := json.Unmarshal(b, &o)
	if err != nil {
		chk.Panic("ReadInv: cannot unmarshal inversion file %q:\n%v", invfilepath, err)
	}

	// input directory and filename key
	o.Dir = os.ExpandEnv(filepath.Dir(invfilepath))
	fnkey := io.FnKey(filepath.Base(invfilepath))
	o.Key = fnkey
	if alias != "" {
		o.Key += "-" + alias
	}

	// output directory
	o.DirOut = o.Data.DirOut
	if o.DirOut == "" {
		o.DirOut = "/tmp/gopcga/" + fnkey
	}

	// encoder type
	o.EncType = o.Data.Encoder
	if o.EncType != "gob" && o.EncType != "json" {
		o.EncType = "gob"
	}

	// create directory
	if createDirOut {
		err = os.MkdirAll(o.DirOut, 0777)
		if err != nil {
			chk.Panic("cannot create directory for output results (%s): %v", o.DirOut, err)
		}
	}

	// erase previous results
	if erasePrev {
		io.RemoveAll(io.Sf("%s/%s*", o.DirOut, fnkey))
	}

	// grid
	err = o.Grid.Init()
	if err != nil {
		chk.Panic("ReadInv: invalid grid:\n%v", err)
	}

	// check and fix data
	if o.Data.TrueFile == "" && !o.Data.Synthetic {
		chk.Panic("ReadInv: true field file must be given unless \"synthetic\" is true")
	}
	if o.Data.ObsFile == "" && !o.Data.Synthetic {
		chk.Panic("ReadInv: observations file must be given unless \"synthetic\" is true")
	}
	err = o.Prior.PostProcess()
	if err != nil {
		chk.Panic("ReadInv: invalid prior data:\n%v", err)
	}
	err = o.Solver.PostProcess()
	if err != nil {
		chk.Panic("ReadInv: invalid solver data:\n%v", err)
	}
	o.Plots.PostProcess(&o.Grid)

	// results
	return &o
}

// GetInfo writes the input data as indented JSON
func (o *Simulation) GetInfo(w goio.Writer) (err error) {
	b, err := json.MarshalIndent(o, "", "  ")
	if err != nil {
		return
	}
	_, err = w.Write(append(b, '\n'))
	return
}

// auxiliary ///////////////////////////////////////////////////////////////////////////////////////

// Path returns the path of an input file
func (o *Simulation) Path(fn string) string {
	if o.Data.AbsPath || filepath.IsAbs(fn) {
		return os.ExpandEnv(fn)
	}
	return filepath.Join(o.Dir, os.ExpandEnv(fn))
}
