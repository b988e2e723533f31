// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/bitmark-inc/bwsdata/datastore"
	"github.com/bitmark-inc/bwsdata/fault"
)

// send a JSON reply with status OK
func sendReply(w http.ResponseWriter, data interface{}) {
	text, err := json.Marshal(data)
	if nil != err {
		sendInternalServerError(w)
		return
	}
	writeJSON(w, http.StatusOK, text)
}

// selected errors
func sendNotFound(w http.ResponseWriter) {
	sendError(w, "not found", http.StatusNotFound)
}
func sendMethodNotAllowed(w http.ResponseWriter) {
	sendError(w, "method not allowed", http.StatusMethodNotAllowed)
}
func sendInternalServerError(w http.ResponseWriter) {
	sendError(w, "internal server error", http.StatusInternalServerError)
}

// to compose JSON error messages
type eType struct {
	Code  int    `json:"code"`
	Error string `json:"error"`
}

// output an error with a JSON body
func sendError(w http.ResponseWriter, message string, code int) {
	text, err := json.Marshal(eType{
		Code:  code,
		Error: message,
	})
	if nil != err {
		// manually composed error just incase JSON fails
		http.Error(w, `{"code":500,"error":"Internal Server Error"}`, http.StatusInternalServerError)
		return
	}
	writeJSON(w, code, text)
}

// output an error with the status for its class
func sendFault(w http.ResponseWriter, err error) {
	sendError(w, err.Error(), statusOf(err))
}

// a failed store also reports what reached the chain
type storeErrorReply struct {
	Code    int                  `json:"code"`
	Error   string               `json:"error"`
	Stage   datastore.StoreState `json:"stage"`
	TxIds   []string             `json:"transaction_ids"`
	Attempt string               `json:"attempt,omitempty"`
}

func sendStoreError(w http.ResponseWriter, storeErr *datastore.StoreError) {
	code := statusOf(storeErr.Err)
	text, err := json.Marshal(storeErrorReply{
		Code:    code,
		Error:   storeErr.Error(),
		Stage:   storeErr.Stage,
		TxIds:   storeErr.TxIds,
		Attempt: storeErr.Attempt,
	})
	if nil != err {
		sendInternalServerError(w)
		return
	}
	writeJSON(w, code, text)
}

func writeJSON(w http.ResponseWriter, code int, text []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(code)
	w.Write(text)
}

// HTTP status for an error class
func statusOf(err error) int {
	switch {
	case errors.Is(err, fault.ErrRateLimiting):
		return http.StatusTooManyRequests
	case errors.Is(err, context.DeadlineExceeded), fault.IsErrTimeout(err):
		return http.StatusGatewayTimeout
	case fault.IsErrInvalid(err), fault.IsErrLength(err), fault.IsErrRecord(err):
		return http.StatusBadRequest
	case fault.IsErrNotFound(err):
		return http.StatusNotFound
	case fault.IsErrProcess(err):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
