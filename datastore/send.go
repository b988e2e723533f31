// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package datastore

import (
	"context"

	"github.com/bitmark-inc/bwsdata/currency/satoshi"
	"github.com/bitmark-inc/bwsdata/envelope"
	"github.com/bitmark-inc/bwsdata/fault"
)

// SendResult - a sent payment
type SendResult struct {
	TxId   string `json:"transaction_id"`
	Amount uint64 `json:"satoshi"`
}

// Send - pay amount (a decimal coin string) to address, attaching
// data unchanged as an OP_RETURN output when it is not empty
//
// data is never chunked
func (m *Manager) Send(ctx context.Context, address string, amount string, data []byte) (*SendResult, error) {
	if len(data) > envelope.MaximumSize {
		return nil, fault.ErrPayloadTooLarge
	}
	if "" == address {
		return nil, fault.ErrInvalidAddress
	}
	value, err := satoshi.FromString(amount)
	if nil != err {
		return nil, err
	}
	if 0 == value {
		return nil, fault.ErrInvalidAmount
	}

	txId, err := m.client.SendPayment(ctx, address, value, m.fee, m.dust, data)
	if nil != err {
		m.log.Errorf("send: %s  amount: %d  error: %s", address, value, err)
		return nil, err
	}
	m.log.Infof("send: %s  amount: %d  data: %d  tx id: %s", address, value, len(data), txId)

	return &SendResult{
		TxId:   txId,
		Amount: value,
	}, nil
}
