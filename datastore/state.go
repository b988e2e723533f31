// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package datastore

import (
	"github.com/bitmark-inc/bwsdata/fault"
)

// StoreState - stage of a store call
type StoreState uint8

// store states
const (
	StoreNull       StoreState = iota
	StorePreparing  StoreState = iota
	StoreChunking   StoreState = iota
	StoreSubmitting StoreState = iota
	StoreReferenced StoreState = iota
	StoreFailed     StoreState = iota
	StoreInvalid    StoreState = iota
)

// RetrieveState - stage of a retrieve call
type RetrieveState uint8

// retrieve states
const (
	RetrieveNull         RetrieveState = iota
	RetrieveScanning     RetrieveState = iota
	RetrieveGrouping     RetrieveState = iota
	RetrieveReassembling RetrieveState = iota
	RetrievePartial      RetrieveState = iota
	RetrieveNotFound     RetrieveState = iota
)

var storeNames = map[StoreState]string{
	StorePreparing:  "PREPARING",
	StoreChunking:   "CHUNKING",
	StoreSubmitting: "SUBMITTING",
	StoreReferenced: "REFERENCED",
	StoreFailed:     "FAILED",
}

var retrieveNames = map[RetrieveState]string{
	RetrieveScanning:     "SCANNING",
	RetrieveGrouping:     "GROUPING",
	RetrieveReassembling: "REASSEMBLING",
	RetrievePartial:      "PARTIAL",
	RetrieveNotFound:     "NOT_FOUND",
}

// Valid - true for states that can be recorded
func (state StoreState) Valid() bool {
	return state > StoreNull && state < StoreInvalid
}

// Terminal - true once a store call has finished
func (state StoreState) Terminal() bool {
	return StoreReferenced == state || StoreFailed == state
}

// String - name of the state
func (state StoreState) String() string {
	if s, ok := storeNames[state]; ok {
		return s
	}
	return "*unknown*"
}

// MarshalText - state as its name
func (state StoreState) MarshalText() ([]byte, error) {
	return []byte(state.String()), nil
}

// UnmarshalText - state from its name
func (state *StoreState) UnmarshalText(s []byte) error {
	for st, name := range storeNames {
		if name == string(s) {
			*state = st
			return nil
		}
	}
	return fault.ErrInvalidState
}

// String - name of the state
func (state RetrieveState) String() string {
	if s, ok := retrieveNames[state]; ok {
		return s
	}
	return "*unknown*"
}

// MarshalText - state as its name
func (state RetrieveState) MarshalText() ([]byte, error) {
	return []byte(state.String()), nil
}

// UnmarshalText - state from its name
func (state *RetrieveState) UnmarshalText(s []byte) error {
	for st, name := range retrieveNames {
		if name == string(s) {
			*state = st
			return nil
		}
	}
	return fault.ErrInvalidState
}
