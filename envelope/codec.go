// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package envelope

import (
	"github.com/bitmark-inc/bwsdata/fault"
)

// Codec - encode and decode envelopes for one version and namespace
//
// a codec holds no mutable state and is safe to copy
type Codec struct {
	version Version
	tag     Tag
}

// NewCodec - create a codec for a specific version and namespace
func NewCodec(version Version, tag Tag) (Codec, error) {
	if InvalidVersion == version {
		return Codec{}, fault.ErrInvalidVersion
	}
	return Codec{
		version: version,
		tag:     tag,
	}, nil
}

// DefaultCodec - current version in the BWS namespace
func DefaultCodec() Codec {
	return Codec{
		version: CurrentVersion,
		tag:     DefaultTag,
	}
}

// Version - the codec's wire version
func (c Codec) Version() Version {
	return c.version
}

// Tag - the codec's namespace
func (c Codec) Tag() Tag {
	return c.tag
}

// Encode - build an envelope and pack it
//
// a total of 1 produces the unchunked layout
func (c Codec) Encode(action Action, payload []byte, sequence uint16, total uint16) (Packed, *Envelope, error) {
	e := &Envelope{
		Version:  c.version,
		Tag:      c.tag,
		Action:   action,
		Sequence: sequence,
		Total:    total,
		Payload:  payload,
	}
	packed, err := e.Pack()
	if nil != err {
		return nil, nil, err
	}
	return packed, e, nil
}

// Decode - unpack using the codec's version and tag
func (c Codec) Decode(data []byte) (*Envelope, error) {
	return Packed(data).Unpack(c.version, c.tag)
}

// Matches - true if the data carries the codec's tag
func (c Codec) Matches(data []byte) bool {
	return Packed(data).HasTag(c.tag)
}
