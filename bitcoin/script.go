// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package bitcoin

import (
	"encoding/hex"
)

// script op codes
const (
	opReturn    = 0x6a
	opPushData1 = 0x4c
	opPushData2 = 0x4d
)

// extract the data pushed by an OP_RETURN script
//
// accepts a direct push (1..75 bytes), PUSHDATA1 and PUSHDATA2, and
// only when the push covers the rest of the script exactly
func extractData(scriptHex string) ([]byte, bool) {
	if len(scriptHex) < 4 || "6a" != scriptHex[0:2] {
		return nil, false
	}
	script, err := hex.DecodeString(scriptHex)
	if nil != err || opReturn != script[0] {
		return nil, false
	}

	op := script[1]
	n := 0
	start := 2
	switch {
	case op > 0 && op < opPushData1:
		n = int(op)
	case opPushData1 == op:
		if len(script) < 3 {
			return nil, false
		}
		n = int(script[2])
		start = 3
	case opPushData2 == op:
		if len(script) < 4 {
			return nil, false
		}
		n = int(script[2]) | int(script[3])<<8
		start = 4
	default:
		return nil, false
	}

	if start+n != len(script) {
		return nil, false
	}
	return script[start:], true
}
