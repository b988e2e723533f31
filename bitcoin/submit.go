// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package bitcoin

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"sort"

	"github.com/bitmark-inc/bwsdata/currency/satoshi"
	"github.com/bitmark-inc/bwsdata/envelope"
	"github.com/bitmark-inc/bwsdata/fault"
	"github.com/bitmark-inc/bwsdata/reference"
)

// key used by createrawtransaction for an OP_RETURN output
const dataOutputKey = "data"

// a payment to an address, nil for chunk transactions
type payment struct {
	address string
	amount  uint64
}

// SubmitOutput - send a transaction carrying data as its OP_RETURN
// output and return its transaction id
//
// the transaction pays fee and keeps at least dust as change; when
// parent is not empty its change output is spent first
func (c *Client) SubmitOutput(ctx context.Context, data []byte, fee uint64, dust uint64, parent string) (string, error) {
	if 0 == len(data) {
		return "", fault.ErrEmptyPayload
	}
	if len(data) > envelope.MaximumSize {
		return "", fault.ErrEnvelopeTooLarge
	}
	return c.submit(ctx, nil, data, fee, dust, parent)
}

// SendPayment - pay amount to address with an optional OP_RETURN
// output and return the transaction id
//
// change smaller than dust is left to the fee
func (c *Client) SendPayment(ctx context.Context, address string, amount uint64, fee uint64, dust uint64, data []byte) (string, error) {
	if "" == address || dataOutputKey == address {
		return "", fault.ErrInvalidAddress
	}
	if 0 == amount {
		return "", fault.ErrInvalidAmount
	}
	if len(data) > envelope.MaximumSize {
		return "", fault.ErrPayloadTooLarge
	}
	return c.submit(ctx, &payment{address: address, amount: amount}, data, fee, dust, "")
}

func (c *Client) submit(ctx context.Context, pay *payment, data []byte, fee uint64, dust uint64, parent string) (string, error) {

	var unspents []unspent
	if err := c.call(ctx, "listunspent", []interface{}{0}, &unspents); nil != err {
		return "", err
	}

	required := fee + dust
	paid := uint64(0)
	if nil != pay {
		paid = pay.amount
		required = fee + pay.amount
	}

	inputs, total, err := selectCoins(unspents, parent, required)
	if nil != err {
		return "", err
	}

	outputs := make(map[string]interface{})
	if len(data) > 0 {
		outputs[dataOutputKey] = hex.EncodeToString(data)
	}
	if nil != pay {
		outputs[pay.address] = satoshi.ToString(pay.amount)
	}

	change := total - fee - paid
	if nil == pay || change >= dust {
		var changeAddress string
		if err := c.call(ctx, "getrawchangeaddress", []interface{}{}, &changeAddress); nil != err {
			return "", err
		}
		if _, ok := outputs[changeAddress]; ok || "" == changeAddress {
			return "", fault.ErrInvalidAddress
		}
		outputs[changeAddress] = satoshi.ToString(change)
	}

	var raw string
	if err := c.call(ctx, "createrawtransaction", []interface{}{inputs, outputs}, &raw); nil != err {
		return "", err
	}

	signed, err := c.sign(ctx, raw)
	if nil != err {
		return "", err
	}

	var txId string
	if err := c.call(ctx, "sendrawtransaction", []interface{}{signed}, &txId); nil != err {
		return "", err
	}
	if !reference.ValidTxId(txId) {
		return "", fault.ErrUnexpectedNodeResponse
	}

	c.log.Infof("sent tx id: %s  inputs: %d  total: %d  change: %d", txId, len(inputs), total, change)
	return txId, nil
}

// sign with the wallet, older nodes only have signrawtransaction
func (c *Client) sign(ctx context.Context, raw string) (string, error) {
	var signed signedTransaction
	err := c.call(ctx, "signrawtransactionwithwallet", []interface{}{raw}, &signed)

	var rpcErr *RPCError
	if errors.As(err, &rpcErr) && rpcMethodNotFound == rpcErr.Code {
		c.log.Debug("falling back to signrawtransaction")
		err = c.call(ctx, "signrawtransaction", []interface{}{raw}, &signed)
	}
	if nil != err {
		return "", err
	}
	if !signed.Complete || "" == signed.Hex {
		return "", fmt.Errorf("%w: signing incomplete", fault.ErrRejectedByNetwork)
	}
	return signed.Hex, nil
}

// choose inputs covering required
//
// outputs of the parent transaction are taken first, the rest in
// descending value order
func selectCoins(unspents []unspent, parent string, required uint64) ([]outpoint, uint64, error) {

	candidates := make([]unspent, 0, len(unspents))
	for _, u := range unspents {
		if u.Spendable {
			candidates = append(candidates, u)
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		pi := parent == candidates[i].TxId
		pj := parent == candidates[j].TxId
		if pi != pj {
			return pi
		}
		return satoshi.FromByteString(candidates[i].Amount) > satoshi.FromByteString(candidates[j].Amount)
	})

	if "" != parent && (0 == len(candidates) || parent != candidates[0].TxId) {
		return nil, 0, fmt.Errorf("%w: change of: %s not available", fault.ErrInsufficientFunds, parent)
	}

	inputs := make([]outpoint, 0, 4)
	total := uint64(0)
	for _, u := range candidates {
		if total >= required && len(inputs) > 0 {
			break
		}
		inputs = append(inputs, outpoint{TxId: u.TxId, Vout: u.Vout})
		total += satoshi.FromByteString(u.Amount)
	}
	if total < required {
		return nil, 0, fault.ErrInsufficientFunds
	}
	return inputs, total, nil
}
