// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package envelope - pack and unpack BWS records carried by a single
// OP_RETURN output
//
// The record is limited to MaximumSize bytes, all integers are
// big-endian.  The high bit of the action byte selects the chunked
// layout which adds the sequence and total fields:
//
//    unchunked:
//    +---------+-----+--------+--------+-----------------+
//    | version | tag | action | length | payload         |
//    |    1    |  3  |   1    |   1    | length          |
//    +---------+-----+--------+--------+-----------------+
//
//    chunked:
//    +---------+-----+-------------+----------+-------+--------+---------+
//    | version | tag | action|0x80 | sequence | total | length | payload |
//    |    1    |  3  |      1      |    2     |   2   |   1    | length  |
//    +---------+-----+-------------+----------+-------+--------+---------+
//
// An unchunked record unpacks as sequence 0 of total 1.
package envelope
