// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ratelimit

import (
	"context"
	"time"

	"golang.org/x/time/rate"

	"github.com/bitmark-inc/bwsdata/fault"
)

// MaximumDelay - a request that would wait longer is refused
const MaximumDelay = 5 * time.Second

// Limit - limiting for a single request
func Limit(ctx context.Context, limiter *rate.Limiter) error {
	return reserve(ctx, limiter, 1)
}

// LimitN - limiting for a request costing count units
func LimitN(ctx context.Context, limiter *rate.Limiter, count int, maximumCount int) error {
	// invalid count gets limited as a single request
	if count <= 0 || count > maximumCount {
		if err := reserve(ctx, limiter, 1); nil != err {
			return err
		}
		return fault.ErrInvalidCount
	}
	return reserve(ctx, limiter, count)
}

func reserve(ctx context.Context, limiter *rate.Limiter, n int) error {
	r := limiter.ReserveN(time.Now(), n)
	if !r.OK() {
		return fault.ErrRateLimiting
	}

	delay := r.Delay()
	if 0 == delay {
		return nil
	}
	if delay > MaximumDelay {
		r.Cancel()
		return fault.ErrRateLimiting
	}

	t := time.NewTimer(delay)
	defer t.Stop()

	select {
	case <-ctx.Done():
		r.Cancel()
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
