// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package datastore

import (
	"context"
	"fmt"

	"github.com/zeebo/blake3"

	"github.com/bitmark-inc/bwsdata/chunk"
	"github.com/bitmark-inc/bwsdata/envelope"
	"github.com/bitmark-inc/bwsdata/fault"
	"github.com/bitmark-inc/bwsdata/reference"
)

// StoreOptions - per call overrides, zero values use the manager's
type StoreOptions struct {
	Action envelope.Action
	Fee    uint64
	Dust   uint64
}

// StoreResult - a successful store
type StoreResult struct {
	Reference string     `json:"reference"`
	TxIds     []string   `json:"transaction_ids"`
	State     StoreState `json:"state"`
	Attempt   string     `json:"attempt,omitempty"`
}

// StoreError - a failed store
//
// TxIds holds every transaction already sent; those chunks are on
// chain permanently
type StoreError struct {
	Stage   StoreState // stage that failed
	TxIds   []string
	Attempt string
	Err     error
}

// Error - the error interface
func (e *StoreError) Error() string {
	return fmt.Sprintf("store failed in %s after %d transactions: %s", e.Stage, len(e.TxIds), e.Err)
}

// Unwrap - access the cause
func (e *StoreError) Unwrap() error {
	return e.Err
}

// one store call
type storeAttempt struct {
	m       *Manager
	id      string
	state   StoreState
	txIds   []string
	journal Journal
}

func (a *storeAttempt) enter(state StoreState) {
	a.m.log.Debugf("store: %s → %s", a.state, state)
	a.state = state
	a.record(nil)
}

func (a *storeAttempt) record(err error) {
	if nil == a.journal || "" == a.id {
		return
	}
	state := a.state
	if nil != err {
		state = StoreFailed
	}
	if e := a.journal.Update(a.id, state, a.txIds, err); nil != e {
		a.m.log.Errorf("journal: %s  update error: %s", a.id, e)
	}
}

func (a *storeAttempt) fail(err error) error {
	a.m.log.Errorf("store: failed in: %s  sent: %d  error: %s", a.state, len(a.txIds), err)
	a.record(err)
	txIds := make([]string, len(a.txIds))
	copy(txIds, a.txIds)
	return &StoreError{
		Stage:   a.state,
		TxIds:   txIds,
		Attempt: a.id,
		Err:     err,
	}
}

// Store - put a payload on chain and return its reference
//
// chunks are submitted strictly one after another and nothing is
// retried; on failure the returned *StoreError lists what was sent
func (m *Manager) Store(ctx context.Context, payload []byte, options *StoreOptions) (*StoreResult, error) {

	action := envelope.StoreAction
	fee := m.fee
	dust := m.dust
	if nil != options {
		if envelope.NullAction != options.Action {
			action = options.Action
		}
		if 0 != options.Fee {
			fee = options.Fee
		}
		if 0 != options.Dust {
			dust = options.Dust
		}
	}

	a := &storeAttempt{
		m:       m,
		journal: m.journal,
	}
	a.enter(StorePreparing)

	if 0 == len(payload) {
		return nil, a.fail(fault.ErrEmptyPayload)
	}
	if !action.Valid() {
		return nil, a.fail(fault.ErrInvalidAction)
	}

	if nil != m.journal {
		digest := blake3.Sum256(payload)
		id, err := m.journal.Begin(digest[:], len(payload))
		if nil != err {
			return nil, a.fail(err)
		}
		a.id = id
	}

	a.enter(StoreChunking)

	var pieces []chunk.Piece
	if len(payload) <= envelope.SingleCapacity {
		pieces = []chunk.Piece{{Sequence: 0, Total: 1, Data: payload}}
	} else {
		var err error
		pieces, err = chunk.Pieces(payload, envelope.ChunkCapacity)
		if nil != err {
			return nil, a.fail(err)
		}
	}

	packed := make([]envelope.Packed, len(pieces))
	for i, p := range pieces {
		data, _, err := m.codec.Encode(action, p.Data, p.Sequence, p.Total)
		if nil != err {
			return nil, a.fail(fault.ForChunk(err, i, ""))
		}
		packed[i] = data
	}
	m.log.Infof("store: size: %d  chunks: %d  action: %s", len(payload), len(packed), action)

	a.enter(StoreSubmitting)

	parent := ""
	for i, data := range packed {
		if err := ctx.Err(); nil != err {
			return nil, a.fail(fault.ForChunk(err, i, ""))
		}
		txId, err := m.client.SubmitOutput(ctx, data, fee, dust, parent)
		if nil != err {
			return nil, a.fail(fault.ForChunk(err, i, ""))
		}
		if !reference.ValidTxId(txId) {
			return nil, a.fail(fault.ForChunk(fault.ErrUnexpectedNodeResponse, i, txId))
		}
		m.log.Infof("store: chunk: %d/%d  tx id: %s", i, len(packed), txId)
		a.txIds = append(a.txIds, txId)
		a.record(nil)
		parent = txId
	}

	ref, err := reference.Build(a.txIds)
	if nil != err {
		return nil, a.fail(err)
	}

	a.enter(StoreReferenced)
	m.log.Infof("store: reference: %s", ref)

	return &StoreResult{
		Reference: ref,
		TxIds:     a.txIds,
		State:     a.state,
		Attempt:   a.id,
	}, nil
}
