// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package api is an HTTP JSON front end to a datastore manager
//
//   POST /v1/store                      body: raw bytes, or JSON {"hex": "…", "action": "store"}
//                                       query: action=grant  (raw bodies only)
//   GET  /v1/retrieve/{reference}       query: blocks=N  [1..100]
//   POST /v1/send                       JSON {"address": "…", "amount": "0.01", "envelope": "hex"}
//   GET  /v1/journal                    query: failed=true
//   GET  /v1/journal/{id}
//   GET  /v1/details
//
// errors are returned as JSON {"code": N, "error": "text"}:
//
//   400  invalid input or an oversized payload
//   404  unknown route or journal entry
//   429  rate limit
//   502  the node refused or failed the request
//   504  the node did not answer in time
//
// a retrieve that finds nothing is a 200 with an empty list
package api
