// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package satoshi - convert decimal coin amounts to and from the
// smallest currency unit
package satoshi

import (
	"fmt"
	"strings"

	"github.com/bitmark-inc/bwsdata/fault"
)

// number of decimal places in one coin
const decimalPlaces = 8

// PerCoin - satoshi in one coin
const PerCoin = 100000000

// FromByteString - convert a node supplied amount to a Satoshi value
//
// i.e. "0.00000001" will convert to uint64(1)
//
// Note: Invalid characters are simply ignored and the conversion
//       simply stops after 8 decimal places have been processed.
//       Extra decimal points will also be ignored.
func FromByteString(btc []byte) uint64 {

	s := uint64(0)
	point := false
	decimals := 0

get_digits:
	for _, b := range btc {
		if b >= '0' && b <= '9' {
			s *= 10
			s += uint64(b - '0')
			if point {
				decimals += 1
				if decimals >= decimalPlaces {
					break get_digits
				}
			}
		} else if '.' == b {
			point = true
		}
	}
	for decimals < decimalPlaces {
		s *= 10
		decimals += 1
	}

	return s
}

// FromString - strictly convert a user supplied amount
//
// accepts digits with at most one decimal point and at most 8
// decimal places
func FromString(btc string) (uint64, error) {
	btc = strings.TrimSpace(btc)
	if "" == btc || "." == btc {
		return 0, fault.ErrInvalidAmount
	}

	whole := btc
	fraction := ""
	if i := strings.IndexByte(btc, '.'); i >= 0 {
		whole = btc[:i]
		fraction = btc[i+1:]
	}
	if len(fraction) > decimalPlaces || len(whole) > 11 {
		return 0, fault.ErrInvalidAmount
	}

	s := uint64(0)
	for _, part := range []string{whole, fraction} {
		for _, b := range []byte(part) {
			if b < '0' || b > '9' {
				return 0, fault.ErrInvalidAmount
			}
			s = s*10 + uint64(b-'0')
		}
	}
	for i := len(fraction); i < decimalPlaces; i += 1 {
		s *= 10
	}
	return s, nil
}

// ToString - format a Satoshi value as a decimal coin amount with
// all 8 decimal places, as accepted by the node RPC
func ToString(satoshi uint64) string {
	return fmt.Sprintf("%d.%08d", satoshi/PerCoin, satoshi%PerCoin)
}
