// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package bitcoin

import (
	"encoding/json"
)

type scriptPubKey struct {
	Hex  string `json:"hex"`
	Type string `json:"type"`
}

type vin struct {
	TxId     string `json:"txid"`
	Vout     uint32 `json:"vout"`
	Coinbase string `json:"coinbase"`
}

type vout struct {
	Value        json.RawMessage `json:"value"`
	N            uint32          `json:"n"`
	ScriptPubKey scriptPubKey    `json:"scriptPubKey"`
}

type transaction struct {
	TxId          string `json:"txid"`
	Confirmations uint64 `json:"confirmations"`
	BlockHash     string `json:"blockhash"`
	Vin           []vin  `json:"vin"`
	Vout          []vout `json:"vout"`
}

type block struct {
	Hash              string        `json:"hash"`
	Confirmations     uint64        `json:"confirmations"`
	Height            uint64        `json:"height"`
	Tx                []transaction `json:"tx"`
	Time              int64         `json:"time"`
	PreviousBlockHash string        `json:"previousblockhash"`
}

type blockHeader struct {
	Hash   string `json:"hash"`
	Height uint64 `json:"height"`
}

type unspent struct {
	TxId          string          `json:"txid"`
	Vout          uint32          `json:"vout"`
	Amount        json.RawMessage `json:"amount"`
	Confirmations uint64          `json:"confirmations"`
	Spendable     bool            `json:"spendable"`
}

// createrawtransaction input
type outpoint struct {
	TxId string `json:"txid"`
	Vout uint32 `json:"vout"`
}

type signedTransaction struct {
	Hex      string `json:"hex"`
	Complete bool   `json:"complete"`
}
