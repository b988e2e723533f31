// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package reference_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/bwsdata/fault"
	"github.com/bitmark-inc/bwsdata/reference"
)

const (
	txIdOne = "7ffd3b9c1a1f07ec3a2ea2ef9e6fb85d8bbb94c4b5f54f3a2d1f3e22c6b3c001"
	txIdTwo = "a4c1e9870c2b3d1f0e4f5a6b7c8d9e0f1a2b3c4d5e6f708192a3b4c5d6e7f809"
)

func TestBuild(t *testing.T) {
	ref, err := reference.Build([]string{txIdOne, txIdTwo})
	assert.Nil(t, err, "build error")
	assert.Equal(t, txIdOne, ref, "wrong reference")

	ref, err = reference.Build([]string{strings.ToUpper(txIdTwo)})
	assert.Nil(t, err, "build error")
	assert.Equal(t, txIdTwo, ref, "reference not canonical")

	_, err = reference.Build(nil)
	assert.Equal(t, fault.ErrInvalidReference, err, "empty list accepted")

	_, err = reference.Build([]string{"not-a-txid"})
	assert.Equal(t, fault.ErrInvalidReference, err, "invalid txid accepted")
}

func TestCompact(t *testing.T) {
	compact, err := reference.Compact(txIdOne)
	assert.Nil(t, err, "compact error")
	assert.True(t, len(compact) < len(txIdOne), "compact form is not shorter")

	ref, err := reference.Parse(compact)
	assert.Nil(t, err, "parse error")
	assert.Equal(t, txIdOne, ref, "compact form does not parse back")
}

func TestParseErrors(t *testing.T) {
	for _, s := range []string{"", "xyz", txIdOne[:62], txIdOne + "00", "0OIl"} {
		_, err := reference.Parse(s)
		assert.Equal(t, fault.ErrInvalidReference, err, "accepted: %q", s)
	}
}

func TestValidTxId(t *testing.T) {
	assert.True(t, reference.ValidTxId(txIdOne), "valid txid rejected")
	assert.False(t, reference.ValidTxId("zz"+txIdOne[2:]), "non-hex accepted")
	assert.False(t, reference.ValidTxId(txIdOne[1:]), "short txid accepted")
}
