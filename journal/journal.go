// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package journal

import (
	"encoding/hex"
	"sort"

	"github.com/google/uuid"
	"github.com/syndtr/goleveldb/leveldb"
	ldb_util "github.com/syndtr/goleveldb/leveldb/util"

	"github.com/bitmark-inc/bwsdata/datastore"
	"github.com/bitmark-inc/bwsdata/fault"
	"github.com/bitmark-inc/bwsdata/reference"
)

func entryKey(id string) []byte {
	return append([]byte{entryPrefix}, id...)
}

func referenceKey(txId string) ([]byte, error) {
	if !reference.ValidTxId(txId) {
		return nil, fault.ErrInvalidReference
	}
	b, err := hex.DecodeString(txId)
	if nil != err {
		return nil, fault.ErrInvalidReference
	}
	return append([]byte{referencePrefix}, b...), nil
}

// Begin - create a new attempt in state PREPARING
func (j *Journal) Begin(digest []byte, size int) (string, error) {
	if size < 0 {
		return "", fault.ErrInvalidCount
	}

	id := uuid.New().String()
	now := uint64(j.now().Unix())

	r := &record{
		created: now,
		updated: now,
		size:    uint64(size),
		state:   datastore.StorePreparing,
		digest:  digest,
		txIds:   []string{},
	}

	j.Lock()
	defer j.Unlock()

	err := j.db.Put(entryKey(id), r.pack(), nil)
	if nil != err {
		j.log.Errorf("begin: %s  error: %s", id, err)
		return "", err
	}
	j.log.Debugf("begin: %s  size: %d", id, size)
	return id, nil
}

// Update - record a new state with the transaction ids sent so far
//
// a finished attempt cannot change; a REFERENCED attempt is indexed by
// its reference
func (j *Journal) Update(id string, state datastore.StoreState, txIds []string, err error) error {
	if !state.Valid() {
		return fault.ErrInvalidState
	}

	j.Lock()
	defer j.Unlock()

	r, e := j.get(id)
	if nil != e {
		return e
	}
	if r.state.Terminal() {
		return fault.ErrInvalidState
	}

	r.state = state
	r.updated = uint64(j.now().Unix())
	r.txIds = append([]string{}, txIds...)
	r.err = ""
	if nil != err {
		r.err = err.Error()
	}

	batch := new(leveldb.Batch)
	batch.Put(entryKey(id), r.pack())
	if datastore.StoreReferenced == state {
		if 0 == len(txIds) {
			return fault.ErrInvalidReference
		}
		key, e := referenceKey(txIds[0])
		if nil != e {
			return e
		}
		batch.Put(key, []byte(id))
	}

	if e := j.db.Write(batch, nil); nil != e {
		j.log.Errorf("update: %s  error: %s", id, e)
		return e
	}
	j.log.Debugf("update: %s  state: %s  transactions: %d", id, state, len(txIds))
	return nil
}

// Get - fetch one attempt
func (j *Journal) Get(id string) (*Entry, error) {
	j.Lock()
	defer j.Unlock()

	r, err := j.get(id)
	if nil != err {
		return nil, err
	}
	return r.entry(id), nil
}

func (j *Journal) get(id string) (*record, error) {
	buffer, err := j.db.Get(entryKey(id), nil)
	if leveldb.ErrNotFound == err {
		return nil, fault.ErrNotFound
	} else if nil != err {
		return nil, err
	}
	return unpack(buffer)
}

// List - every attempt in key order
//
// with failedOnly only FAILED attempts are returned
func (j *Journal) List(failedOnly bool) ([]Entry, error) {
	j.Lock()
	defer j.Unlock()

	entries := make([]Entry, 0)

	iter := j.db.NewIterator(ldb_util.BytesPrefix([]byte{entryPrefix}), nil)
	defer iter.Release()

	for iter.Next() {
		id := string(iter.Key()[1:])
		r, err := unpack(iter.Value())
		if nil != err {
			j.log.Warnf("list: %s  error: %s", id, err)
			return nil, err
		}
		if failedOnly && datastore.StoreFailed != r.state {
			continue
		}
		entries = append(entries, *r.entry(id))
	}
	if err := iter.Error(); nil != err {
		return nil, err
	}
	return entries, nil
}

// FindReference - the attempt that produced a reference
func (j *Journal) FindReference(ref string) (*Entry, error) {
	txId, err := reference.Parse(ref)
	if nil != err {
		return nil, err
	}
	key, err := referenceKey(txId)
	if nil != err {
		return nil, err
	}

	j.Lock()
	defer j.Unlock()

	id, err := j.db.Get(key, nil)
	if leveldb.ErrNotFound == err {
		return nil, fault.ErrNotFound
	} else if nil != err {
		return nil, err
	}

	r, err := j.get(string(id))
	if nil != err {
		return nil, err
	}
	return r.entry(string(id)), nil
}

// Recent - the newest count attempts, newest first
func (j *Journal) Recent(count int) ([]Entry, error) {
	if count <= 0 {
		return nil, fault.ErrInvalidCount
	}
	entries, err := j.List(false)
	if nil != err {
		return nil, err
	}
	sort.SliceStable(entries, func(a, b int) bool {
		return entries[a].Created.After(entries[b].Created)
	})
	if len(entries) > count {
		entries = entries[:count]
	}
	return entries, nil
}
