// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package bitcoin

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/ioutil"
	"net"
	"net/http"
	"sync/atomic"

	"github.com/bitmark-inc/bwsdata/fault"
)

// node error codes that need special handling
const (
	rpcMethodNotFound     = -32601
	rpcInsufficientFunds  = -6
	rpcVerifyError        = -25
	rpcVerifyRejected     = -26
	rpcVerifyAlreadyInTxn = -27
)

// RPCError - an error response from the node
type RPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Error - node error as text
func (e *RPCError) Error() string {
	return fmt.Sprintf("node error: %d: %s", e.Code, e.Message)
}

// Unwrap - any node error not otherwise classified is an unexpected
// response
func (e *RPCError) Unwrap() error {
	return fault.ErrUnexpectedNodeResponse
}

// convert the node's error codes into the fault classes
func (e *RPCError) classify() error {
	switch e.Code {
	case rpcInsufficientFunds:
		return fmt.Errorf("%w: %s", fault.ErrInsufficientFunds, e.Message)
	case rpcVerifyError, rpcVerifyRejected, rpcVerifyAlreadyInTxn:
		return fmt.Errorf("%w: %s", fault.ErrRejectedByNetwork, e.Message)
	default:
		return e
	}
}

// for encoding the RPC arguments
type rpcArguments struct {
	Id     uint64        `json:"id"`
	Method string        `json:"method"`
	Params []interface{} `json:"params"`
}

// for decoding the RPC reply
type rpcReply struct {
	Id     uint64      `json:"id"`
	Result interface{} `json:"result"`
	Error  *RPCError   `json:"error"`
}

// high level call
//
// the per-call timeout is applied here so every node access is bounded
func (c *Client) call(ctx context.Context, method string, params []interface{}, reply interface{}) error {

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	arguments := rpcArguments{
		Id:     atomic.AddUint64(&c.id, 1),
		Method: method,
		Params: params,
	}
	response := rpcReply{
		Result: reply,
	}
	c.log.Debugf("rpc call: %s  id: %d", method, arguments.Id)

	err := c.rpc(ctx, &arguments, &response)
	if errors.Is(err, fault.ErrUnexpectedNodeResponse) {
		c.log.Debugf("rpc: %s  bad reply: %s", method, err)
		return err
	}
	if nil != err {
		c.log.Tracef("rpc: %s  returned error: %s", method, err)
		return transportError(ctx, err)
	}

	if nil != response.Error {
		c.log.Debugf("rpc: %s  node error: %s", method, response.Error)
		return response.Error.classify()
	}
	return nil
}

// basic RPC
func (c *Client) rpc(ctx context.Context, arguments *rpcArguments, reply *rpcReply) error {

	s, err := json.Marshal(arguments)
	if nil != err {
		return err
	}

	c.log.Tracef("rpc send: %s", s)

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewBuffer(s))
	if nil != err {
		return err
	}
	request.SetBasicAuth(c.username, c.password)
	request.Header.Set("Content-Type", "application/json")

	response, err := c.client.Do(request)
	if nil != err {
		return err
	}
	defer response.Body.Close()

	body, err := ioutil.ReadAll(response.Body)
	if nil != err {
		return err
	}

	c.log.Tracef("rpc response status: %d  body: %s", response.StatusCode, body)

	// the node sends error replies with a non-200 status so only
	// report the status when the body is not a JSON-RPC reply
	err = json.Unmarshal(body, reply)
	if nil != err {
		return fmt.Errorf("%w: HTTP status: %d", fault.ErrUnexpectedNodeResponse, response.StatusCode)
	}
	if nil == reply.Error && http.StatusOK != response.StatusCode {
		return fmt.Errorf("%w: HTTP status: %d", fault.ErrUnexpectedNodeResponse, response.StatusCode)
	}
	return nil
}

// deadline and network timeouts become fault.ErrTimeout, a caller
// cancel is returned unchanged and anything else means the node could
// not be reached
func transportError(ctx context.Context, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fault.ErrTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fault.ErrTimeout
	}
	if errors.Is(err, context.Canceled) {
		return context.Canceled
	}
	return fmt.Errorf("%w: %s", fault.ErrNodeUnavailable, err)
}
