// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

import (
	"errors"
	"fmt"
)

// GenericError - error base
type GenericError string

// to allow for different classes of errors
type ExistsError GenericError
type InvalidError GenericError
type LengthError GenericError
type NotFoundError GenericError
type ProcessError GenericError
type RecordError GenericError
type TimeoutError GenericError

// common errors - keep in alphabetic order
var (
	ErrAlreadyInitialised     = ExistsError("already initialised")
	ErrAmbiguousTotal         = RecordError("chunks disagree on total")
	ErrCertificateFileExists  = ExistsError("certificate file already exists")
	ErrDuplicateChunk         = RecordError("conflicting chunks share a sequence")
	ErrEmptyPayload           = InvalidError("payload is empty")
	ErrEnvelopeTooLarge       = LengthError("envelope exceeds output limit")
	ErrInsufficientFunds      = ProcessError("insufficient funds")
	ErrInvalidAction          = InvalidError("invalid action")
	ErrInvalidAddress         = InvalidError("invalid address")
	ErrInvalidAmount          = InvalidError("invalid amount")
	ErrInvalidCapacity        = InvalidError("invalid chunk capacity")
	ErrInvalidChain           = InvalidError("invalid chain")
	ErrInvalidCount           = InvalidError("invalid count")
	ErrInvalidIPAddress       = InvalidError("invalid IP address")
	ErrInvalidPortNumber      = InvalidError("invalid port number")
	ErrInvalidReference       = InvalidError("invalid reference")
	ErrInvalidRequest         = InvalidError("invalid request")
	ErrInvalidState           = InvalidError("invalid state")
	ErrInvalidStructPointer   = InvalidError("invalid struct pointer")
	ErrInvalidTag             = InvalidError("invalid tag")
	ErrInvalidTransactionId   = InvalidError("invalid transaction id")
	ErrInvalidVersion         = InvalidError("invalid version")
	ErrKeyFileExists          = ExistsError("key file already exists")
	ErrMalformedEnvelope      = RecordError("malformed envelope")
	ErrMissingChunk           = NotFoundError("missing chunk")
	ErrMissingParameters      = InvalidError("missing parameters")
	ErrNodeUnavailable        = ProcessError("node unavailable")
	ErrNotFound               = NotFoundError("not found")
	ErrNotHexadecimal         = InvalidError("not hexadecimal")
	ErrNotInitialised         = NotFoundError("not initialised")
	ErrPartial                = NotFoundError("partial data")
	ErrPayloadTooLarge        = LengthError("payload exceeds output limit")
	ErrRateLimiting           = ProcessError("rate limit exceeded")
	ErrRejectedByNetwork      = ProcessError("rejected by network")
	ErrTimeout                = TimeoutError("timeout")
	ErrTooManyChunks          = LengthError("too many chunks")
	ErrTruncatedEnvelope      = LengthError("truncated envelope")
	ErrUnexpectedNodeResponse = ProcessError("unexpected node response")
	ErrVersionMismatch        = InvalidError("version mismatch")
)

// the error interface methods
func (e GenericError) Error() string  { return string(e) }
func (e ExistsError) Error() string   { return string(e) }
func (e InvalidError) Error() string  { return string(e) }
func (e LengthError) Error() string   { return string(e) }
func (e NotFoundError) Error() string { return string(e) }
func (e ProcessError) Error() string  { return string(e) }
func (e RecordError) Error() string   { return string(e) }
func (e TimeoutError) Error() string  { return string(e) }

// determine the class of an error
// wrapped errors are unwrapped until a class is found
func IsErrExists(e error) bool   { var x ExistsError; return errors.As(e, &x) }
func IsErrInvalid(e error) bool  { var x InvalidError; return errors.As(e, &x) }
func IsErrLength(e error) bool   { var x LengthError; return errors.As(e, &x) }
func IsErrNotFound(e error) bool { var x NotFoundError; return errors.As(e, &x) }
func IsErrProcess(e error) bool  { var x ProcessError; return errors.As(e, &x) }
func IsErrRecord(e error) bool   { var x RecordError; return errors.As(e, &x) }
func IsErrTimeout(e error) bool  { var x TimeoutError; return errors.As(e, &x) }

// ChunkError - attach chunk position and transaction id to an error
//
// Sequence is -1 when the position is not known
type ChunkError struct {
	Err      error
	Sequence int
	TxId     string
}

// Error - the error interface
func (e *ChunkError) Error() string {
	switch {
	case e.Sequence >= 0 && "" != e.TxId:
		return fmt.Sprintf("chunk: %d  txid: %s: %s", e.Sequence, e.TxId, e.Err)
	case e.Sequence >= 0:
		return fmt.Sprintf("chunk: %d: %s", e.Sequence, e.Err)
	case "" != e.TxId:
		return fmt.Sprintf("txid: %s: %s", e.TxId, e.Err)
	default:
		return e.Err.Error()
	}
}

// Unwrap - give access to the class error
func (e *ChunkError) Unwrap() error {
	return e.Err
}

// ForChunk - wrap an error with chunk context
func ForChunk(err error, sequence int, txId string) error {
	if nil == err {
		return nil
	}
	return &ChunkError{
		Err:      err,
		Sequence: sequence,
		TxId:     txId,
	}
}
