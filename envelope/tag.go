// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package envelope

import (
	"github.com/bitmark-inc/bwsdata/fault"
)

// TagSize - bytes in a namespace tag
const TagSize = 3

// Tag - namespace marker identifying this application's envelopes
type Tag [TagSize]byte

// DefaultTag - the BWS namespace
var DefaultTag = Tag{'B', 'W', 'S'}

// TagFromString - convert a three character string to a tag
func TagFromString(s string) (Tag, error) {
	var tag Tag
	if TagSize != len(s) {
		return tag, fault.ErrInvalidTag
	}
	copy(tag[:], s)
	return tag, nil
}

// String - tag as text
func (tag Tag) String() string {
	return string(tag[:])
}

// MarshalText - tag as text
func (tag Tag) MarshalText() ([]byte, error) {
	return []byte(tag.String()), nil
}

// UnmarshalText - tag from text
func (tag *Tag) UnmarshalText(s []byte) error {
	t, err := TagFromString(string(s))
	if nil != err {
		return err
	}
	*tag = t
	return nil
}
