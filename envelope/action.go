// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package envelope

import (
	"github.com/bitmark-inc/bwsdata/fault"
)

// Action - the intent of an envelope
type Action uint8

// enumerate the possible actions
// these values are stored on chain so only appending is allowed
const (
	// null marks beginning of list - not used as an action
	NullAction = Action(iota)

	StoreAction  = Action(iota) // data storage
	GrantAction  = Action(iota) // grant access
	RevokeAction = Action(iota) // revoke access

	// this item must be last
	InvalidAction = Action(iota)
)

// longest action name
const maximumActionNameLength = 8

var actionNames = map[Action]string{
	StoreAction:  "store",
	GrantAction:  "grant",
	RevokeAction: "revoke",
}

// Valid - true if the action is one of the enumerated actions
func (action Action) Valid() bool {
	return action > NullAction && action < InvalidAction
}

// String - action name
func (action Action) String() string {
	if s, ok := actionNames[action]; ok {
		return s
	}
	return "invalid"
}

// ActionFromString - convert an action name
func ActionFromString(s string) (Action, error) {
	if len(s) > maximumActionNameLength {
		return NullAction, fault.ErrInvalidAction
	}
	for action, name := range actionNames {
		if name == s {
			return action, nil
		}
	}
	return NullAction, fault.ErrInvalidAction
}

// MarshalText - convert action to its name
func (action Action) MarshalText() ([]byte, error) {
	if !action.Valid() {
		return nil, fault.ErrInvalidAction
	}
	return []byte(action.String()), nil
}

// UnmarshalText - convert name to action
func (action *Action) UnmarshalText(s []byte) error {
	a, err := ActionFromString(string(s))
	if nil != err {
		return err
	}
	*action = a
	return nil
}
