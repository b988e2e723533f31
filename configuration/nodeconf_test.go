// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package configuration

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/bwsdata/fault"
)

func TestParseNodeCredentials(t *testing.T) {
	text := `
# daemon settings
server=1
testnet=1
rpcuser = alice
rpcpassword=a=b=c
[test]
rpcport=18999
`
	credentials, err := parseNodeCredentials(strings.NewReader(text))
	assert.Nil(t, err, "parse")
	assert.Equal(t, "alice", credentials.Username, "user")
	assert.Equal(t, "a=b=c", credentials.Password, "password")
	assert.Equal(t, 18999, credentials.Port, "port")
	assert.True(t, credentials.Testnet, "testnet")
}

func TestParseNodeCredentialsErrors(t *testing.T) {
	_, err := parseNodeCredentials(strings.NewReader("rpcuser=alice\n"))
	assert.Equal(t, fault.ErrMissingParameters, err, "no password")

	_, err = parseNodeCredentials(strings.NewReader("rpcuser=a\nrpcpassword=b\nrpcport=99999\n"))
	assert.Equal(t, fault.ErrInvalidPortNumber, err, "port")

	_, err = ReadNodeCredentials("/nonexistent/bwscoin.conf")
	assert.NotNil(t, err, "missing file")
}
