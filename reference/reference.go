// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package reference - identify a stored payload by the transaction
// carrying its first chunk
//
// The canonical form is the 64 character hex transaction id.  A
// shorter base58 form of the same 32 bytes is accepted wherever a
// reference is parsed.
package reference

import (
	"encoding/hex"
	"strings"

	"github.com/mr-tron/base58"

	"github.com/bitmark-inc/bwsdata/fault"
)

// TxIdSize - bytes in a transaction id
const TxIdSize = 32

// Build - the reference for a sequence of chunk transaction ids in
// submission order
func Build(txIds []string) (string, error) {
	if 0 == len(txIds) {
		return "", fault.ErrInvalidReference
	}
	return Parse(txIds[0])
}

// ValidTxId - true for a 64 character hex string
func ValidTxId(txId string) bool {
	if 2*TxIdSize != len(txId) {
		return false
	}
	_, err := hex.DecodeString(txId)
	return nil == err
}

// Parse - accept either form of reference and return the canonical
// lower case hex
func Parse(s string) (string, error) {
	s = strings.TrimSpace(s)
	if ValidTxId(s) {
		return strings.ToLower(s), nil
	}

	b, err := base58.Decode(s)
	if nil != err || TxIdSize != len(b) {
		return "", fault.ErrInvalidReference
	}
	return hex.EncodeToString(b), nil
}

// Compact - base58 form of a reference
func Compact(ref string) (string, error) {
	canonical, err := Parse(ref)
	if nil != err {
		return "", err
	}
	b, err := hex.DecodeString(canonical)
	if nil != err {
		return "", fault.ErrInvalidReference
	}
	return base58.Encode(b), nil
}
