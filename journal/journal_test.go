// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package journal

import (
	"encoding/hex"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/mr-tron/base58"
	"github.com/stretchr/testify/assert"
	"github.com/zeebo/blake3"

	"github.com/bitmark-inc/bwsdata/datastore"
	"github.com/bitmark-inc/bwsdata/fault"
	"github.com/bitmark-inc/bwsdata/fixtures"
)

const databaseFileName = "test.journal.leveldb"

func removeFiles() {
	os.RemoveAll(databaseFileName)
}

// configure for testing with a fixed clock
func setup(t *testing.T) *Journal {
	fixtures.SetupTestLogger()
	removeFiles()
	j, err := Open(databaseFileName)
	if nil != err {
		t.Fatalf("journal open error: %s", err)
	}
	clock := time.Date(2021, 3, 14, 15, 9, 26, 0, time.UTC)
	j.now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}
	return j
}

func teardown(j *Journal) {
	j.Close()
	removeFiles()
	fixtures.TeardownTestLogger()
}

func TestBeginAndUpdate(t *testing.T) {
	j := setup(t)
	defer teardown(j)

	digest := blake3.Sum256(fixtures.Payload)
	id, err := j.Begin(digest[:], len(fixtures.Payload))
	assert.Nil(t, err, "begin")
	assert.Equal(t, 36, len(id), "uuid text")

	e, err := j.Get(id)
	assert.Nil(t, err, "get")
	assert.Equal(t, datastore.StorePreparing, e.State, "state")
	assert.Equal(t, len(fixtures.Payload), e.Size, "size")
	assert.Equal(t, 64, len(e.Digest), "digest")
	assert.Equal(t, []string{}, e.TxIds, "no transactions")
	assert.Equal(t, "", e.Reference, "no reference")

	first := fixtures.TxId("first")
	second := fixtures.TxId("second")

	err = j.Update(id, datastore.StoreChunking, nil, nil)
	assert.Nil(t, err, "chunking")
	err = j.Update(id, datastore.StoreSubmitting, []string{first}, nil)
	assert.Nil(t, err, "submitting")
	err = j.Update(id, datastore.StoreReferenced, []string{first, second}, nil)
	assert.Nil(t, err, "referenced")

	e, err = j.Get(id)
	assert.Nil(t, err, "get")
	assert.Equal(t, datastore.StoreReferenced, e.State, "state")
	assert.Equal(t, []string{first, second}, e.TxIds, "transactions")
	assert.Equal(t, first, e.Reference, "reference")
	assert.True(t, e.Updated.After(e.Created), "updated")

	err = j.Update(id, datastore.StoreFailed, []string{first}, fault.ErrTimeout)
	assert.Equal(t, fault.ErrInvalidState, err, "finished attempt")
}

func TestUpdateErrors(t *testing.T) {
	j := setup(t)
	defer teardown(j)

	err := j.Update("no-such-id", datastore.StoreChunking, nil, nil)
	assert.Equal(t, fault.ErrNotFound, err, "missing")

	id, err := j.Begin([]byte{1, 2, 3}, 3)
	assert.Nil(t, err, "begin")

	err = j.Update(id, datastore.StoreNull, nil, nil)
	assert.Equal(t, fault.ErrInvalidState, err, "null")

	err = j.Update(id, datastore.StoreInvalid, nil, nil)
	assert.Equal(t, fault.ErrInvalidState, err, "invalid")

	err = j.Update(id, datastore.StoreReferenced, nil, nil)
	assert.Equal(t, fault.ErrInvalidReference, err, "reference without transactions")

	err = j.Update(id, datastore.StoreReferenced, []string{"xyz"}, nil)
	assert.Equal(t, fault.ErrInvalidReference, err, "reference not hex")

	_, err = j.Begin(nil, -1)
	assert.Equal(t, fault.ErrInvalidCount, err, "size")
}

func TestFailedKeepsTransactions(t *testing.T) {
	j := setup(t)
	defer teardown(j)

	id, err := j.Begin([]byte{9}, 200)
	assert.Nil(t, err, "begin")

	sent := []string{fixtures.TxId("sent")}
	cause := fault.ForChunk(fault.ErrInsufficientFunds, 1, "")
	err = j.Update(id, datastore.StoreFailed, sent, cause)
	assert.Nil(t, err, "failed")

	e, err := j.Get(id)
	assert.Nil(t, err, "get")
	assert.Equal(t, datastore.StoreFailed, e.State, "state")
	assert.Equal(t, sent, e.TxIds, "sent")
	assert.Equal(t, cause.Error(), e.Error, "error text")
	assert.Equal(t, "", e.Reference, "no reference")
}

func TestListAndFind(t *testing.T) {
	j := setup(t)
	defer teardown(j)

	ids := make([]string, 3)
	for i := range ids {
		id, err := j.Begin([]byte{byte(i)}, i+1)
		assert.Nil(t, err, "%d: begin", i)
		ids[i] = id
	}

	ref := fixtures.TxId("reference")
	err := j.Update(ids[0], datastore.StoreReferenced, []string{ref}, nil)
	assert.Nil(t, err, "referenced")
	err = j.Update(ids[2], datastore.StoreFailed, []string{}, errors.New("node down"))
	assert.Nil(t, err, "failed")

	all, err := j.List(false)
	assert.Nil(t, err, "list")
	assert.Equal(t, 3, len(all), "all")
	for i := 1; i < len(all); i += 1 {
		assert.True(t, all[i-1].Id < all[i].Id, "%d: key order", i)
	}

	failed, err := j.List(true)
	assert.Nil(t, err, "list failed")
	assert.Equal(t, 1, len(failed), "failed")
	assert.Equal(t, ids[2], failed[0].Id, "failed id")
	assert.Equal(t, "node down", failed[0].Error, "failed error")

	e, err := j.FindReference(ref)
	assert.Nil(t, err, "find")
	assert.Equal(t, ids[0], e.Id, "found by hex")

	b, _ := hex.DecodeString(ref)
	e, err = j.FindReference(base58.Encode(b))
	assert.Nil(t, err, "find compact")
	assert.Equal(t, ids[0], e.Id, "found by base58")

	_, err = j.FindReference(fixtures.TxId("unknown"))
	assert.Equal(t, fault.ErrNotFound, err, "unknown")

	_, err = j.FindReference("bad")
	assert.Equal(t, fault.ErrInvalidReference, err, "bad")

	recent, err := j.Recent(2)
	assert.Nil(t, err, "recent")
	assert.Equal(t, 2, len(recent), "recent count")
	assert.Equal(t, ids[2], recent[0].Id, "newest first")
	assert.Equal(t, ids[1], recent[1].Id, "then older")

	_, err = j.Recent(0)
	assert.Equal(t, fault.ErrInvalidCount, err, "count")
}

func TestReopen(t *testing.T) {
	j := setup(t)
	defer teardown(j)

	id, err := j.Begin([]byte{7}, 7)
	assert.Nil(t, err, "begin")
	assert.Nil(t, j.Close(), "close")

	j2, err := Open(databaseFileName)
	assert.Nil(t, err, "reopen")

	e, err := j2.Get(id)
	assert.Nil(t, err, "get after reopen")
	assert.Equal(t, 7, e.Size, "size")

	// teardown closes the reopened database
	j.db = j2.db
}

func TestUnpackErrors(t *testing.T) {
	r := &record{
		created: 1,
		updated: 2,
		size:    3,
		state:   datastore.StoreSubmitting,
		digest:  []byte{1, 2},
		txIds:   []string{"a", "b"},
		err:     "e",
	}
	packed := r.pack()

	u, err := unpack(packed)
	assert.Nil(t, err, "round trip")
	assert.Equal(t, r, u, "record")

	_, err = unpack(packed[:len(packed)-1])
	assert.Equal(t, fault.ErrTruncatedEnvelope, err, "truncated")

	_, err = unpack(append(packed, 0))
	assert.Equal(t, fault.ErrMalformedEnvelope, err, "trailing")

	bad := &record{state: datastore.StoreInvalid, txIds: []string{}}
	_, err = unpack(bad.pack())
	assert.Equal(t, fault.ErrInvalidCount, err, "state range")
}
