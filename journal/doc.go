// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package journal keeps a local record of every store attempt
//
// An attempt is created by Begin with the digest and size of the
// payload and then updated at each state change with the transaction
// ids sent so far.  A store that fails half way leaves a FAILED entry
// listing the chunks already on chain so they can be reconciled by
// hand.
//
// database keys:
//
//   0x00 'VERSION'            → database version (4 bytes big endian)
//   'E' attempt-id            → packed entry
//   'R' reference (32 bytes)  → attempt-id
//
// packed entry, all integers as Varint64:
//
//   created (unix seconds)
//   updated (unix seconds)
//   size
//   state
//   digest   (count + bytes)
//   tx count
//   tx id    (count + text) ...
//   error    (count + text)
package journal
