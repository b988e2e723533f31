// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util

import (
	"github.com/bitmark-inc/bwsdata/fault"
)

// Packer - accumulates varint framed fields
type Packer []byte

// PackUint64 - append a Varint64
func (p Packer) PackUint64(value uint64) Packer {
	return append(p, ToVarint64(value)...)
}

// PackBytes - append a Varint64 length followed by the bytes
func (p Packer) PackBytes(data []byte) Packer {
	p = append(p, ToVarint64(uint64(len(data)))...)
	return append(p, data...)
}

// PackString - as PackBytes
func (p Packer) PackString(s string) Packer {
	return p.PackBytes([]byte(s))
}

// Unpacker - reads fields written by a Packer in the same order
//
// the first error is sticky, all later reads return zero values
type Unpacker struct {
	buffer []byte
	n      int
	err    error
}

// NewUnpacker - start reading at the beginning of a buffer
func NewUnpacker(buffer []byte) *Unpacker {
	return &Unpacker{buffer: buffer}
}

// Uint64 - next Varint64
func (u *Unpacker) Uint64() uint64 {
	if nil != u.err {
		return 0
	}
	value, count := FromVarint64(u.buffer[u.n:])
	if 0 == count {
		u.err = fault.ErrTruncatedEnvelope
		return 0
	}
	u.n += count
	return value
}

// Clipped - next Varint64 which must be in the range minimum..maximum
func (u *Unpacker) Clipped(minimum uint64, maximum uint64) uint64 {
	value := u.Uint64()
	if nil == u.err && (value < minimum || value > maximum) {
		u.err = fault.ErrInvalidCount
		return 0
	}
	return value
}

// Bytes - next length prefixed byte field, the result is a copy
func (u *Unpacker) Bytes() []byte {
	length := u.Uint64()
	if nil != u.err {
		return nil
	}
	if length > uint64(len(u.buffer)-u.n) {
		u.err = fault.ErrTruncatedEnvelope
		return nil
	}
	end := u.n + int(length)
	data := make([]byte, length)
	copy(data, u.buffer[u.n:end])
	u.n = end
	return data
}

// String - as Bytes
func (u *Unpacker) String() string {
	return string(u.Bytes())
}

// Remaining - number of unread bytes
func (u *Unpacker) Remaining() int {
	return len(u.buffer) - u.n
}

// Err - first error encountered, nil if all reads succeeded
func (u *Unpacker) Err() error {
	return u.err
}
