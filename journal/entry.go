// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package journal

import (
	"encoding/hex"
	"time"

	"github.com/bitmark-inc/bwsdata/datastore"
	"github.com/bitmark-inc/bwsdata/fault"
	"github.com/bitmark-inc/bwsdata/util"
)

// limits applied when unpacking
const (
	maximumTxIds  = 65535
	maximumDigest = 64
)

// Entry - one store attempt
type Entry struct {
	Id        string               `json:"id"`
	State     datastore.StoreState `json:"state"`
	Size      int                  `json:"size"`
	Digest    string               `json:"digest"`
	TxIds     []string             `json:"transaction_ids"`
	Reference string               `json:"reference,omitempty"`
	Error     string               `json:"error,omitempty"`
	Created   time.Time            `json:"created"`
	Updated   time.Time            `json:"updated"`
}

// internal form of an entry
type record struct {
	created uint64
	updated uint64
	size    uint64
	state   datastore.StoreState
	digest  []byte
	txIds   []string
	err     string
}

func (r *record) pack() []byte {
	p := util.Packer{}
	p = p.PackUint64(r.created)
	p = p.PackUint64(r.updated)
	p = p.PackUint64(r.size)
	p = p.PackUint64(uint64(r.state))
	p = p.PackBytes(r.digest)
	p = p.PackUint64(uint64(len(r.txIds)))
	for _, txId := range r.txIds {
		p = p.PackString(txId)
	}
	return p.PackString(r.err)
}

func unpack(buffer []byte) (*record, error) {
	u := util.NewUnpacker(buffer)

	r := &record{
		created: u.Uint64(),
		updated: u.Uint64(),
		size:    u.Uint64(),
		state:   datastore.StoreState(u.Clipped(uint64(datastore.StorePreparing), uint64(datastore.StoreFailed))),
		digest:  u.Bytes(),
	}
	if len(r.digest) > maximumDigest {
		return nil, fault.ErrInvalidCount
	}

	n := u.Clipped(0, maximumTxIds)
	r.txIds = make([]string, 0, n)
	for i := uint64(0); i < n && nil == u.Err(); i += 1 {
		r.txIds = append(r.txIds, u.String())
	}
	r.err = u.String()

	if nil != u.Err() {
		return nil, u.Err()
	}
	if 0 != u.Remaining() {
		return nil, fault.ErrMalformedEnvelope
	}
	return r, nil
}

// convert to the exported form
func (r *record) entry(id string) *Entry {
	e := &Entry{
		Id:      id,
		State:   r.state,
		Size:    int(r.size),
		Digest:  hex.EncodeToString(r.digest),
		TxIds:   r.txIds,
		Error:   r.err,
		Created: time.Unix(int64(r.created), 0).UTC(),
		Updated: time.Unix(int64(r.updated), 0).UTC(),
	}
	if datastore.StoreReferenced == r.state && len(r.txIds) > 0 {
		e.Reference = r.txIds[0]
	}
	return e
}
