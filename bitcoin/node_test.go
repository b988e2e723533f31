// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package bitcoin

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

const (
	testUsername = "bws"
	testPassword = "secret"
)

// handles one method, a nil error returns the result
type handler func(params []interface{}) (interface{}, *RPCError)

// a JSON-RPC server answering like a wallet node
type fakeNode struct {
	sync.Mutex
	handlers map[string]handler
	calls    map[string]int
	server   *httptest.Server
}

func newFakeNode(handlers map[string]handler) *fakeNode {
	n := &fakeNode{
		handlers: handlers,
		calls:    make(map[string]int),
	}
	n.server = httptest.NewServer(http.HandlerFunc(n.serve))
	return n
}

func (n *fakeNode) serve(w http.ResponseWriter, r *http.Request) {
	username, password, ok := r.BasicAuth()
	if !ok || testUsername != username || testPassword != password {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	var request struct {
		Id     uint64        `json:"id"`
		Method string        `json:"method"`
		Params []interface{} `json:"params"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); nil != err {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	n.Lock()
	n.calls[request.Method] += 1
	h, ok := n.handlers[request.Method]
	n.Unlock()

	reply := map[string]interface{}{
		"id":     request.Id,
		"result": nil,
		"error":  nil,
	}
	status := http.StatusOK
	if !ok {
		reply["error"] = &RPCError{Code: rpcMethodNotFound, Message: "Method not found"}
		status = http.StatusNotFound
	} else if result, rpcErr := h(request.Params); nil != rpcErr {
		reply["error"] = rpcErr
		status = http.StatusInternalServerError
	} else {
		reply["result"] = result
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(reply)
}

func (n *fakeNode) count(method string) int {
	n.Lock()
	defer n.Unlock()
	return n.calls[method]
}

func (n *fakeNode) client(t *testing.T, timeout time.Duration) *Client {
	c, err := New(&Configuration{
		URL:      n.server.URL,
		Username: testUsername,
		Password: testPassword,
		Timeout:  timeout,
	})
	assert.Nil(t, err, "new client")
	return c
}

func (n *fakeNode) Close() {
	n.server.Close()
}

func result(value interface{}) handler {
	return func([]interface{}) (interface{}, *RPCError) {
		return value, nil
	}
}

func failure(code int, message string) handler {
	return func([]interface{}) (interface{}, *RPCError) {
		return nil, &RPCError{Code: code, Message: message}
	}
}
