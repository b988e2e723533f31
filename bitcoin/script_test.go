// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package bitcoin

import (
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
)

// OP_RETURN script for data as hex
func dataScript(data []byte) string {
	script := []byte{opReturn}
	switch n := len(data); {
	case n < opPushData1:
		script = append(script, byte(n))
	case n <= 0xff:
		script = append(script, opPushData1, byte(n))
	default:
		script = append(script, opPushData2, byte(n), byte(n>>8))
	}
	return hex.EncodeToString(append(script, data...))
}

func TestExtractData(t *testing.T) {
	short := []byte("BWS data")
	long := bytes.Repeat([]byte{0xa5}, 80)
	huge := bytes.Repeat([]byte{0x5a}, 300)

	tests := []struct {
		script string
		data   []byte
		ok     bool
	}{
		{dataScript(short), short, true},
		{dataScript(long), long, true},
		{dataScript(huge), huge, true},
		{"6a01ff", []byte{0xff}, true},
		{"6a", nil, false},
		{"6a00", nil, false},
		{"6a02ff", nil, false},
		{"6a01ffff", nil, false},
		{"6a4c", nil, false},
		{"6a4d01", nil, false},
		{"6a4c02ffff", []byte{0xff, 0xff}, true},
		{"76a914000000000000000000000000000000000000000088ac", nil, false},
		{"6a0zff", nil, false},
		{"6a4f", nil, false},
	}

	for i, item := range tests {
		data, ok := extractData(item.script)
		assert.Equal(t, item.ok, ok, "%d: ok for: %s", i, item.script)
		if item.ok {
			assert.Equal(t, item.data, data, "%d: data", i)
		}
	}
}
