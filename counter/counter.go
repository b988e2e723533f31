// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package counter

import (
	"sync/atomic"
)

// Counter - a 64 bit unsigned value safe for concurrent update
type Counter uint64

// Increment - add 1 to a counter, returns new value
func (ic *Counter) Increment() uint64 {
	return atomic.AddUint64((*uint64)(ic), 1)
}

// Decrement - subtract 1 from a counter, returns new value
func (ic *Counter) Decrement() uint64 {
	return atomic.AddUint64((*uint64)(ic), ^uint64(0))
}

// Uint64 - returns current value
func (ic *Counter) Uint64() uint64 {
	return atomic.LoadUint64((*uint64)(ic))
}

// Gauge - work in progress, with the highest concurrent value and the
// number of entries since start
type Gauge struct {
	current Counter
	total   Counter
	peak    uint64
}

// Enter - one more in progress, returns the new current value
func (g *Gauge) Enter() uint64 {
	g.total.Increment()
	n := g.current.Increment()
	for {
		p := atomic.LoadUint64(&g.peak)
		if n <= p || atomic.CompareAndSwapUint64(&g.peak, p, n) {
			return n
		}
	}
}

// Leave - one less in progress
func (g *Gauge) Leave() uint64 {
	return g.current.Decrement()
}

// Current - number in progress
func (g *Gauge) Current() uint64 {
	return g.current.Uint64()
}

// Peak - highest number in progress at one time
func (g *Gauge) Peak() uint64 {
	return atomic.LoadUint64(&g.peak)
}

// Total - number of Enter calls
func (g *Gauge) Total() uint64 {
	return g.total.Uint64()
}
