// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package model

import "runtime"

// Config holds options of one call to Runner.Run
type Config struct {
	Parallel bool // run simulations concurrently
	Ncores   int  // maximum number of concurrent simulations; 0 means not given
}

// Option sets options of Runner.Run
type Option func(*Config)

// Parallel activates concurrent execution of simulations
func Parallel() Option {
	return func(c *Config) { c.Parallel = true }
}

// Cores sets the maximum number of concurrent simulations
func Cores(ncores int) Option {
	return func(c *Config) { c.Ncores = ncores }
}

// NewConfig applies options
func NewConfig(opts ...Option) (c Config) {
	for _, opt := range opts {
		opt(&c)
	}
	return
}

// Workers returns the number of concurrent workers
//  Note: returns 1 if not parallel and the number of logical CPUs if Ncores was not given
func (o Config) Workers() int {
	if !o.Parallel {
		return 1
	}
	if o.Ncores > 0 {
		return o.Ncores
	}
	return runtime.NumCPU()
}
