// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package envelope

import (
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/bitmark-inc/bwsdata/fault"
)

// Version - wire format revision
type Version uint8

// version values
const (
	InvalidVersion = Version(0)    // never valid on the wire
	CurrentVersion = Version(0x10) // used for all new envelopes
)

// byte sizes
const (
	MaximumSize = 80 // largest OP_RETURN data

	unchunkedHeaderSize = 1 + TagSize + 1 + 1
	chunkedHeaderSize   = 1 + TagSize + 1 + 2 + 2 + 1

	// SingleCapacity - payload bytes in an unchunked envelope
	SingleCapacity = MaximumSize - unchunkedHeaderSize

	// ChunkCapacity - payload bytes in each envelope of a chunked payload
	ChunkCapacity = MaximumSize - chunkedHeaderSize
)

// field offsets
const (
	versionOffset  = 0
	tagOffset      = 1
	actionOffset   = tagOffset + TagSize
	sequenceOffset = actionOffset + 1
	totalOffset    = sequenceOffset + 2

	chunkedFlag = 0x80
)

// Packed - packed envelopes are just a byte slice
type Packed []byte

// Envelope - the unpacked BWS record
type Envelope struct {
	Version  Version `json:"version"`
	Tag      Tag     `json:"tag"`
	Action   Action  `json:"action"`
	Sequence uint16  `json:"sequence"` // 0..Total-1
	Total    uint16  `json:"total"`    // 1 for a single envelope
	Payload  []byte  `json:"payload"`
}

// Chunked - true if the envelope is part of a multi-chunk payload
func (e *Envelope) Chunked() bool {
	return e.Total > 1
}

// Pack - convert an envelope to its wire form
//
// Pack version, tag, action then sequence and total (only when
// chunked) then the length prefixed payload
func (e *Envelope) Pack() (Packed, error) {
	if InvalidVersion == e.Version {
		return nil, fault.ErrInvalidVersion
	}
	if !e.Action.Valid() {
		return nil, fault.ErrInvalidAction
	}
	if 0 == e.Total || e.Sequence >= e.Total {
		return nil, fault.ErrMalformedEnvelope
	}

	headerSize := unchunkedHeaderSize
	if e.Chunked() {
		headerSize = chunkedHeaderSize
	}
	if headerSize+len(e.Payload) > MaximumSize {
		return nil, fault.ErrEnvelopeTooLarge
	}

	packed := make(Packed, headerSize, headerSize+len(e.Payload))
	packed[versionOffset] = byte(e.Version)
	copy(packed[tagOffset:], e.Tag[:])
	packed[actionOffset] = byte(e.Action)
	if e.Chunked() {
		packed[actionOffset] |= chunkedFlag
		binary.BigEndian.PutUint16(packed[sequenceOffset:], e.Sequence)
		binary.BigEndian.PutUint16(packed[totalOffset:], e.Total)
	}
	packed[headerSize-1] = byte(len(e.Payload))

	return append(packed, e.Payload...), nil
}

// Unpack - turn a byte slice into an envelope
//
// the version and tag must match the expected values
func (record Packed) Unpack(version Version, tag Tag) (*Envelope, error) {
	if len(record) > MaximumSize {
		return nil, fault.ErrEnvelopeTooLarge
	}
	if len(record) < 1 {
		return nil, fault.ErrTruncatedEnvelope
	}
	if Version(record[versionOffset]) != version {
		return nil, fault.ErrVersionMismatch
	}
	if len(record) < unchunkedHeaderSize {
		return nil, fault.ErrTruncatedEnvelope
	}

	var recordTag Tag
	copy(recordTag[:], record[tagOffset:])
	if recordTag != tag {
		return nil, fault.ErrMalformedEnvelope
	}

	action := Action(record[actionOffset] &^ chunkedFlag)
	if !action.Valid() {
		return nil, fault.ErrMalformedEnvelope
	}

	e := &Envelope{
		Version:  version,
		Tag:      recordTag,
		Action:   action,
		Sequence: 0,
		Total:    1,
	}

	n := unchunkedHeaderSize
	if 0 != record[actionOffset]&chunkedFlag {
		if len(record) < chunkedHeaderSize {
			return nil, fault.ErrTruncatedEnvelope
		}
		e.Sequence = binary.BigEndian.Uint16(record[sequenceOffset:])
		e.Total = binary.BigEndian.Uint16(record[totalOffset:])
		if e.Total < 2 || e.Sequence >= e.Total {
			return nil, fault.ErrMalformedEnvelope
		}
		n = chunkedHeaderSize
	}

	length := int(record[n-1])
	switch {
	case n+length > len(record):
		return nil, fault.ErrTruncatedEnvelope
	case n+length < len(record):
		return nil, fault.ErrMalformedEnvelope
	}
	if length > 0 {
		e.Payload = make([]byte, length)
		copy(e.Payload, record[n:])
	}
	return e, nil
}

// HasTag - quick check for a namespace tag without a full unpack
func (record Packed) HasTag(tag Tag) bool {
	if len(record) < tagOffset+TagSize {
		return false
	}
	return string(record[tagOffset:tagOffset+TagSize]) == string(tag[:])
}

// String - multi-line description for diagnostics
func (e *Envelope) String() string {
	b := strings.Builder{}
	fmt.Fprintf(&b, "version:  0x%02x\n", uint8(e.Version))
	fmt.Fprintf(&b, "tag:      %s\n", e.Tag)
	fmt.Fprintf(&b, "action:   %s\n", e.Action)
	fmt.Fprintf(&b, "chunk:    %d of %d\n", e.Sequence+1, e.Total)
	fmt.Fprintf(&b, "payload:  %x (%d bytes)", e.Payload, len(e.Payload))
	return b.String()
}
