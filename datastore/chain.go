// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package datastore

import (
	"context"

	"github.com/bitmark-inc/bwsdata/envelope"
)

//go:generate mockgen -source=chain.go -destination=mocks/chain.go -package=mocks

// Candidate - a transaction output carrying the namespace tag
type Candidate struct {
	TxId   string   // transaction holding the output
	Inputs []string // transaction ids spent by its inputs
	Data   []byte   // the OP_RETURN bytes
	Height uint64   // zero while in the mempool
}

// ChainClient - access to the node that funds, signs and broadcasts
//
// every call must end with fault.ErrTimeout rather than block when
// the node does not answer in time
type ChainClient interface {
	// send one transaction with data as its OP_RETURN output, spending
	// the change of parent when not empty
	SubmitOutput(ctx context.Context, data []byte, fee uint64, dust uint64, parent string) (string, error)

	// pay amount to address with optional OP_RETURN data
	SendPayment(ctx context.Context, address string, amount uint64, fee uint64, dust uint64, data []byte) (string, error)

	// all outputs carrying tag in the mempool and the most recent
	// maxBlocks blocks
	Scan(ctx context.Context, tag envelope.Tag, maxBlocks int) ([]Candidate, error)

	// one transaction's output carrying tag, fault.ErrNotFound when the
	// node does not know it or it has no such output
	Transaction(ctx context.Context, txId string, tag envelope.Tag) (Candidate, error)
}

// Journal - records store attempts so failures can be reconciled
type Journal interface {
	Begin(digest []byte, size int) (string, error)
	Update(id string, state StoreState, txIds []string, err error) error
}
