// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package datastore

import (
	"context"
	"sync"
	"time"

	"github.com/bitmark-inc/bwsdata/fault"
)

// Watch - retrieve repeatedly until the payload is complete and every
// chunk is confirmed
//
// node failures are logged and retried at the next interval; the last
// result seen is returned with the context error when ctx ends first
func (m *Manager) Watch(ctx context.Context, ref string, maxBlocks int, interval time.Duration) (*Result, error) {
	if interval <= 0 {
		return nil, fault.ErrInvalidCount
	}

	var last *Result
	for {
		results, err := m.Retrieve(ctx, ref, maxBlocks)
		switch {
		case nil == err && len(results) > 0:
			last = &results[0]
			if last.Complete && last.Confirmed() {
				return last, nil
			}
			m.log.Debugf("watch: %s  state: %s  chunks: %d", ref, last.State, len(last.Chunks))
		case nil == err:
			m.log.Debugf("watch: %s  nothing yet", ref)
		case fault.IsErrInvalid(err):
			return nil, err
		default:
			m.log.Warnf("watch: %s  retrieve error: %s", ref, err)
		}

		select {
		case <-ctx.Done():
			return last, ctx.Err()
		case <-time.After(interval):
		}
	}
}

// Watcher - a Watch running as a background process
type Watcher struct {
	sync.Mutex
	m         *Manager
	reference string
	maxBlocks int
	interval  time.Duration

	result *Result
	err    error
	done   chan struct{}
}

// NewWatcher - create a watcher, start it with background.Start
func (m *Manager) NewWatcher(ref string, maxBlocks int, interval time.Duration) *Watcher {
	return &Watcher{
		m:         m,
		reference: ref,
		maxBlocks: maxBlocks,
		interval:  interval,
		done:      make(chan struct{}),
	}
}

// Run - the background process, ends on completion or shutdown
func (w *Watcher) Run(args interface{}, shutdown <-chan struct{}) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		select {
		case <-shutdown:
			cancel()
		case <-ctx.Done():
		}
	}()

	result, err := w.m.Watch(ctx, w.reference, w.maxBlocks, w.interval)

	w.Lock()
	w.result = result
	w.err = err
	w.Unlock()
	close(w.done)
}

// Done - closed once Run has returned
func (w *Watcher) Done() <-chan struct{} {
	return w.done
}

// Result - the final result, valid after Done is closed
func (w *Watcher) Result() (*Result, error) {
	w.Lock()
	defer w.Unlock()
	return w.result, w.err
}
