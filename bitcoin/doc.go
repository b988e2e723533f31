// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package bitcoin - chain client for a bitcoin style wallet node
//
// all access is JSON-RPC over HTTP with basic authentication.  The
// node wallet funds, signs and broadcasts transactions; this package
// only selects inputs and lays out outputs.
//
// each chunk transaction after the first spends the change output of
// its predecessor so that a scan can link chunks back to the first
// transaction id without any extra data in the envelopes.
package bitcoin
