// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package background - run a set of long lived goroutines that all
// stop together
package background

import (
	"sync"
)

// Process - anything with a Run method
//
// Run must return promptly once shutdown is closed
type Process interface {
	Run(args interface{}, shutdown <-chan struct{})
}

// ProcessFunc - adapt a plain function to a Process
type ProcessFunc func(args interface{}, shutdown <-chan struct{})

// Run - call the function
func (f ProcessFunc) Run(args interface{}, shutdown <-chan struct{}) {
	f(args, shutdown)
}

// Processes - list of processes to start
type Processes []Process

// T - handle for a started set of processes
type T struct {
	shutdown chan struct{}
	finished chan struct{}
	once     sync.Once
}

// Start - start up a set of background processes
func Start(processes Processes, args interface{}) *T {

	t := &T{
		shutdown: make(chan struct{}),
		finished: make(chan struct{}),
	}

	wg := sync.WaitGroup{}
	wg.Add(len(processes))
	for _, p := range processes {
		go func(p Process) {
			defer wg.Done()
			p.Run(args, t.shutdown)
		}(p)
	}

	go func() {
		wg.Wait()
		close(t.finished)
	}()

	return t
}

// Stop - signal all processes and wait for them to return
//
// safe to call more than once
func (t *T) Stop() {
	t.once.Do(func() {
		close(t.shutdown)
	})
	<-t.finished
}

// Finished - closed after every process has returned, either after
// Stop or because all of them completed on their own
func (t *T) Finished() <-chan struct{} {
	return t.finished
}
