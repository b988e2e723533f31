// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package satoshi

import (
	"testing"

	"github.com/bitmark-inc/bwsdata/fault"
)

// check the node amount conversion
func TestByteStringToSatoshi(t *testing.T) {
	tests := []struct {
		btc     string
		satoshi uint64
	}{
		{"", 0},
		{"0", 0},
		{"0.0", 0},
		{"0.000000001", 0},
		{"0.00000001", 1},
		{"0.00001", 1000},
		{"0.0001", 10000},
		{"1", 100000000},
		{"1.1", 110000000},
		{"1.00000001", 100000001},
		{"99999999.99999999", 9999999999999999},
	}

	for i, item := range tests {
		s := FromByteString([]byte(item.btc))
		if item.satoshi != s {
			t.Errorf("%d: BTC: %q → %d  expected: %d", i, item.btc, s, item.satoshi)
		}
	}
}

func TestFromString(t *testing.T) {
	tests := []struct {
		btc     string
		satoshi uint64
	}{
		{"0", 0},
		{"0.0001", 10000},
		{".5", 50000000},
		{"2.", 200000000},
		{" 1.25 ", 125000000},
		{"21000000", 2100000000000000},
	}
	for i, item := range tests {
		s, err := FromString(item.btc)
		if nil != err {
			t.Errorf("%d: BTC: %q  error: %s", i, item.btc, err)
		} else if item.satoshi != s {
			t.Errorf("%d: BTC: %q → %d  expected: %d", i, item.btc, s, item.satoshi)
		}
	}

	for i, btc := range []string{"", ".", "1.2.3", "-1", "1e5", "0.000000001", "abc", "999999999999"} {
		if _, err := FromString(btc); fault.ErrInvalidAmount != err {
			t.Errorf("%d: BTC: %q  error: %v  expected: %v", i, btc, err, fault.ErrInvalidAmount)
		}
	}
}

func TestToString(t *testing.T) {
	tests := []struct {
		satoshi uint64
		btc     string
	}{
		{0, "0.00000000"},
		{1, "0.00000001"},
		{1000, "0.00001000"},
		{10000, "0.00010000"},
		{123456789, "1.23456789"},
	}
	for i, item := range tests {
		if s := ToString(item.satoshi); s != item.btc {
			t.Errorf("%d: satoshi: %d → %q  expected: %q", i, item.satoshi, s, item.btc)
		}
	}
}
