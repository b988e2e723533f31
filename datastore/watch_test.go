// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package datastore_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/bwsdata/background"
	"github.com/bitmark-inc/bwsdata/datastore"
	"github.com/bitmark-inc/bwsdata/datastore/mocks"
	"github.com/bitmark-inc/bwsdata/fault"
	"github.com/bitmark-inc/bwsdata/fixtures"
)

func TestWatchUntilConfirmed(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ctl := gomock.NewController(t)
	defer ctl.Finish()

	pending := chainOf(t, "watched", twoChunkPayload, 20, 0)
	confirmed := chainOf(t, "watched", twoChunkPayload, 20, 700)

	c := mocks.NewMockChainClient(ctl)
	gomock.InOrder(
		c.EXPECT().Scan(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, fault.ErrUnexpectedNodeResponse),
		c.EXPECT().Scan(gomock.Any(), gomock.Any(), gomock.Any()).Return([]datastore.Candidate{}, nil),
		c.EXPECT().Scan(gomock.Any(), gomock.Any(), gomock.Any()).Return(pending[1:], nil),
		c.EXPECT().Scan(gomock.Any(), gomock.Any(), gomock.Any()).Return(pending, nil),
		c.EXPECT().Scan(gomock.Any(), gomock.Any(), gomock.Any()).Return(confirmed, nil),
	)

	m := newManager(t, c, nil)
	result, err := m.Watch(context.Background(), pending[0].TxId, 0, time.Millisecond)
	assert.Nil(t, err, "watch")
	assert.True(t, result.Complete, "complete")
	assert.True(t, result.Confirmed(), "confirmed")
	assert.Equal(t, twoChunkPayload, result.Payload, "payload")
}

func TestWatchInvalid(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ctl := gomock.NewController(t)
	defer ctl.Finish()

	m := newManager(t, mocks.NewMockChainClient(ctl), nil)

	_, err := m.Watch(context.Background(), fixtures.TxId("x"), 0, 0)
	assert.Equal(t, fault.ErrInvalidCount, err, "interval")

	_, err = m.Watch(context.Background(), "?", 0, time.Second)
	assert.Equal(t, fault.ErrInvalidReference, err, "reference")
}

func TestWatchDeadline(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ctl := gomock.NewController(t)
	defer ctl.Finish()

	pending := chainOf(t, "slow", twoChunkPayload, 20, 0)

	c := mocks.NewMockChainClient(ctl)
	c.EXPECT().Scan(gomock.Any(), gomock.Any(), gomock.Any()).Return(pending, nil).MinTimes(1)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	m := newManager(t, c, nil)
	result, err := m.Watch(ctx, pending[0].TxId, 0, 5*time.Millisecond)
	assert.Equal(t, context.DeadlineExceeded, err, "deadline")
	assert.NotNil(t, result, "last result")
	assert.True(t, result.Complete, "complete")
	assert.False(t, result.Confirmed(), "unconfirmed")
}

func TestWatcherStop(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ctl := gomock.NewController(t)
	defer ctl.Finish()

	c := mocks.NewMockChainClient(ctl)
	c.EXPECT().Scan(gomock.Any(), gomock.Any(), gomock.Any()).Return([]datastore.Candidate{}, nil).MinTimes(1)

	m := newManager(t, c, nil)
	w := m.NewWatcher(fixtures.TxId("never"), 0, time.Millisecond)

	proc := background.Start(background.Processes{w}, nil)
	time.Sleep(20 * time.Millisecond)
	proc.Stop()

	<-w.Done()
	result, err := w.Result()
	assert.Nil(t, result, "nothing found")
	assert.Equal(t, context.Canceled, err, "cancelled")
}

func TestWatcherCompletes(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ctl := gomock.NewController(t)
	defer ctl.Finish()

	confirmed := chainOf(t, "done", twoChunkPayload, 20, 9)

	c := mocks.NewMockChainClient(ctl)
	c.EXPECT().Scan(gomock.Any(), gomock.Any(), gomock.Any()).Return(confirmed, nil).Times(1)

	m := newManager(t, c, nil)
	w := m.NewWatcher(confirmed[0].TxId, 0, time.Second)

	proc := background.Start(background.Processes{w}, nil)
	<-proc.Finished()

	result, err := w.Result()
	assert.Nil(t, err, "watch")
	assert.Equal(t, twoChunkPayload, result.Payload, "payload")
}
