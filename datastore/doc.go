// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package datastore - store payloads on chain as chunked envelopes and
// retrieve them again
//
// store:
//   PREPARING → CHUNKING → SUBMITTING → REFERENCED
//   any stage may end in FAILED, carrying the transaction ids already
//   sent; these cannot be withdrawn and are never resubmitted
//
// retrieve:
//   SCANNING → GROUPING → REASSEMBLING
//   ending in a complete result, a PARTIAL result carrying the chunk
//   error, or NOT_FOUND which is an empty list and not an error
//
// chunk i+1 spends the change of chunk i, so the chunks of one payload
// are found by following spends forward from the reference
// transaction.  Inside a group only the embedded sequence numbers
// decide the order.
package datastore
