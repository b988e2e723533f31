// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ratelimit_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/bwsdata/api/ratelimit"
	"github.com/bitmark-inc/bwsdata/fault"
)

func TestLimit(t *testing.T) {
	limiter := rate.NewLimiter(rate.Every(time.Hour), 2)

	assert.Nil(t, ratelimit.Limit(context.Background(), limiter), "first")
	assert.Nil(t, ratelimit.Limit(context.Background(), limiter), "second")
	assert.Equal(t, fault.ErrRateLimiting, ratelimit.Limit(context.Background(), limiter), "exhausted")
}

func TestLimitUnlimited(t *testing.T) {
	limiter := rate.NewLimiter(rate.Inf, 0)
	for i := 0; i < 100; i += 1 {
		assert.Nil(t, ratelimit.Limit(context.Background(), limiter), "%d: request", i)
	}
}

func TestLimitWaits(t *testing.T) {
	limiter := rate.NewLimiter(rate.Every(20*time.Millisecond), 1)

	assert.Nil(t, ratelimit.Limit(context.Background(), limiter), "first")

	start := time.Now()
	assert.Nil(t, ratelimit.Limit(context.Background(), limiter), "second")
	assert.True(t, time.Since(start) >= 10*time.Millisecond, "delayed")
}

func TestLimitCancelled(t *testing.T) {
	limiter := rate.NewLimiter(rate.Every(time.Second), 1)
	assert.Nil(t, ratelimit.Limit(context.Background(), limiter), "first")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	assert.Equal(t, context.DeadlineExceeded, ratelimit.Limit(ctx, limiter), "deadline")
}

func TestLimitN(t *testing.T) {
	tests := []struct {
		count int
		err   error
	}{
		{1, nil},
		{10, nil},
		{0, fault.ErrInvalidCount},
		{-3, fault.ErrInvalidCount},
		{101, fault.ErrInvalidCount},
	}

	for i, item := range tests {
		limiter := rate.NewLimiter(rate.Every(time.Hour), 100)
		err := ratelimit.LimitN(context.Background(), limiter, item.count, 100)
		assert.Equal(t, item.err, err, "%d: count: %d", i, item.count)
	}

	limiter := rate.NewLimiter(rate.Every(time.Hour), 10)
	err := ratelimit.LimitN(context.Background(), limiter, 20, 100)
	assert.Equal(t, fault.ErrRateLimiting, err, "above burst")

	err = ratelimit.LimitN(context.Background(), limiter, 10, 100)
	assert.Nil(t, err, "burst still available")
}
