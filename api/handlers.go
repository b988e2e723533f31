// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package api

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"io/ioutil"
	"mime"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/bitmark-inc/bwsdata/api/ratelimit"
	"github.com/bitmark-inc/bwsdata/chunk"
	"github.com/bitmark-inc/bwsdata/datastore"
	"github.com/bitmark-inc/bwsdata/envelope"
	"github.com/bitmark-inc/bwsdata/fault"
)

// request size limits
const (
	maximumPayload   = chunk.MaximumChunks * envelope.ChunkCapacity
	maximumStoreBody = 2*maximumPayload + 1024
	maximumSendBody  = 4096
)

// POST /v1/store
func (s *Server) store(w http.ResponseWriter, r *http.Request) {
	if err := ratelimit.Limit(r.Context(), s.storeLimiter); nil != err {
		sendFault(w, err)
		return
	}

	payload, options, err := storeRequest(w, r)
	if nil != err {
		sendFault(w, err)
		return
	}

	result, err := s.manager.Store(r.Context(), payload, options)
	if nil != err {
		var storeErr *datastore.StoreError
		if errors.As(err, &storeErr) {
			sendStoreError(w, storeErr)
			return
		}
		sendFault(w, err)
		return
	}
	sendReply(w, result)
}

// payload and options from either a JSON or a raw body
func storeRequest(w http.ResponseWriter, r *http.Request) ([]byte, *datastore.StoreOptions, error) {
	body, err := ioutil.ReadAll(http.MaxBytesReader(w, r.Body, maximumStoreBody))
	if nil != err {
		return nil, nil, fault.ErrPayloadTooLarge
	}

	options := &datastore.StoreOptions{}

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if "application/json" == mediaType {
		var request struct {
			Hex    string          `json:"hex"`
			Action envelope.Action `json:"action"`
		}
		if err := json.Unmarshal(body, &request); nil != err {
			return nil, nil, fault.ErrInvalidRequest
		}
		payload, err := hex.DecodeString(request.Hex)
		if nil != err {
			return nil, nil, fault.ErrNotHexadecimal
		}
		body = payload
		options.Action = request.Action
	} else if a := r.URL.Query().Get("action"); "" != a {
		action, err := envelope.ActionFromString(a)
		if nil != err {
			return nil, nil, err
		}
		options.Action = action
	}

	if len(body) > maximumPayload {
		return nil, nil, fault.ErrPayloadTooLarge
	}
	return body, options, nil
}

// GET /v1/retrieve/{reference}?blocks=N
func (s *Server) retrieve(w http.ResponseWriter, r *http.Request) {
	ref := chi.URLParam(r, "reference")

	blocks := s.maxBlocks
	if v := r.URL.Query().Get("blocks"); "" != v {
		n, err := strconv.Atoi(v)
		if nil != err {
			sendFault(w, fault.ErrInvalidCount)
			return
		}
		blocks = n
	}

	if err := ratelimit.LimitN(r.Context(), s.retrieveLimiter, blocks, maximumBlocks); nil != err {
		sendFault(w, err)
		return
	}

	results, err := s.manager.Retrieve(r.Context(), ref, blocks)
	if nil != err {
		sendFault(w, err)
		return
	}

	type reply struct {
		Reference string             `json:"reference"`
		Blocks    int                `json:"blocks"`
		Results   []datastore.Result `json:"results"`
	}
	sendReply(w, reply{
		Reference: ref,
		Blocks:    blocks,
		Results:   results,
	})
}

// POST /v1/send
func (s *Server) send(w http.ResponseWriter, r *http.Request) {
	if err := ratelimit.Limit(r.Context(), s.sendLimiter); nil != err {
		sendFault(w, err)
		return
	}

	var request struct {
		Address  string `json:"address"`
		Amount   string `json:"amount"`
		Envelope string `json:"envelope"`
	}
	err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maximumSendBody)).Decode(&request)
	if nil != err {
		sendError(w, "invalid request: "+err.Error(), http.StatusBadRequest)
		return
	}

	data, err := hex.DecodeString(request.Envelope)
	if nil != err {
		sendFault(w, fault.ErrNotHexadecimal)
		return
	}

	result, err := s.manager.Send(r.Context(), request.Address, request.Amount, data)
	if nil != err {
		sendFault(w, err)
		return
	}
	sendReply(w, result)
}

// GET /v1/journal?failed=true
func (s *Server) journalList(w http.ResponseWriter, r *http.Request) {
	if nil == s.attempts {
		sendError(w, "journal not configured", http.StatusNotFound)
		return
	}
	if err := ratelimit.Limit(r.Context(), s.journalLimiter); nil != err {
		sendFault(w, err)
		return
	}

	failedOnly := false
	if v := r.URL.Query().Get("failed"); "" != v {
		b, err := strconv.ParseBool(v)
		if nil != err {
			sendError(w, "invalid failed flag", http.StatusBadRequest)
			return
		}
		failedOnly = b
	}

	entries, err := s.attempts.List(failedOnly)
	if nil != err {
		sendFault(w, err)
		return
	}
	sendReply(w, entries)
}

// GET /v1/journal/{id}
func (s *Server) journalGet(w http.ResponseWriter, r *http.Request) {
	if nil == s.attempts {
		sendError(w, "journal not configured", http.StatusNotFound)
		return
	}
	if err := ratelimit.Limit(r.Context(), s.journalLimiter); nil != err {
		sendFault(w, err)
		return
	}

	entry, err := s.attempts.Get(chi.URLParam(r, "id"))
	if nil != err {
		sendFault(w, err)
		return
	}
	sendReply(w, entry)
}

// GET /v1/details
func (s *Server) details(w http.ResponseWriter, r *http.Request) {
	type requests struct {
		Current uint64 `json:"current"`
		Peak    uint64 `json:"peak"`
		Total   uint64 `json:"total"`
	}
	type reply struct {
		Chain    string   `json:"chain"`
		Version  string   `json:"version"`
		Uptime   string   `json:"uptime"`
		Journal  bool     `json:"journal"`
		Requests requests `json:"requests"`
	}

	sendReply(w, reply{
		Chain:   s.chain,
		Version: s.version,
		Uptime:  time.Since(s.start).Round(time.Second).String(),
		Journal: nil != s.attempts,
		Requests: requests{
			Current: s.requests.Current(),
			Peak:    s.requests.Peak(),
			Total:   s.requests.Total(),
		},
	})
}
