// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package counter_test

import (
	"sync"
	"testing"

	"github.com/bitmark-inc/bwsdata/counter"
)

// test incrementing/decrementing a counter
func TestCounter(t *testing.T) {

	var c1 counter.Counter

	for i := 0; i < 5; i += 1 {
		c1.Increment()
	}
	if 5 != c1.Uint64() {
		t.Errorf("counter is not 5 after incrementing: %d", c1.Uint64())
	}

	for i := 0; i < 5; i += 1 {
		c1.Decrement()
	}
	if 0 != c1.Uint64() {
		t.Errorf("counter did not return to zero: %d", c1.Uint64())
	}

	c1.Decrement()

	// check against underflow, i.e. twos complement -1
	if ^uint64(0) != c1.Uint64() {
		t.Errorf("counter did not underflow: %d", c1.Uint64())
	}
}

func TestGauge(t *testing.T) {

	var g counter.Gauge

	g.Enter()
	g.Enter()
	g.Leave()
	g.Enter()
	g.Enter()
	g.Leave()
	g.Leave()

	if 1 != g.Current() {
		t.Errorf("current: %d  expected: 1", g.Current())
	}
	if 3 != g.Peak() {
		t.Errorf("peak: %d  expected: 3", g.Peak())
	}
	if 4 != g.Total() {
		t.Errorf("total: %d  expected: 4", g.Total())
	}
}

func TestGaugeConcurrent(t *testing.T) {

	const workers = 50

	var g counter.Gauge
	wg := sync.WaitGroup{}
	wg.Add(workers)
	for i := 0; i < workers; i += 1 {
		go func() {
			defer wg.Done()
			g.Enter()
			g.Leave()
		}()
	}
	wg.Wait()

	if 0 != g.Current() {
		t.Errorf("current: %d  expected: 0", g.Current())
	}
	if workers != g.Total() {
		t.Errorf("total: %d  expected: %d", g.Total(), workers)
	}
	if g.Peak() < 1 || g.Peak() > workers {
		t.Errorf("peak: %d  out of range", g.Peak())
	}
}
