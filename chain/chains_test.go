// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/bwsdata/chain"
)

func TestValid(t *testing.T) {
	for _, name := range []string{chain.Mainnet, chain.Testnet, chain.Local} {
		assert.True(t, chain.Valid(name), name)
		assert.NotEqual(t, 0, chain.Port(name), name)
	}
	assert.False(t, chain.Valid("bitmark"))
	assert.Equal(t, 0, chain.Port("bitmark"))
	assert.Equal(t, 8566, chain.Port(chain.Mainnet))
	assert.Equal(t, 18566, chain.Port(chain.Testnet))
	assert.False(t, chain.IsTesting(chain.Mainnet))
	assert.True(t, chain.IsTesting(chain.Testnet))
}
