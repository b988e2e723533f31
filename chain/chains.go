// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chain

// names of all chains
const (
	Mainnet = "mainnet"
	Testnet = "testnet"
	Local   = "local"
)

// default node RPC ports
const (
	MainnetPort = 8566
	TestnetPort = 18566
	LocalPort   = 18766
)

// DefaultConfFile - node configuration holding RPC credentials
const DefaultConfFile = "~/.bitcoin/bwscoin.conf"

// Valid - validate a chain name
func Valid(name string) bool {
	switch name {
	case Mainnet, Testnet, Local:
		return true
	default:
		return false
	}
}

// Port - default node RPC port for a chain, zero for unknown chains
func Port(name string) int {
	switch name {
	case Mainnet:
		return MainnetPort
	case Testnet:
		return TestnetPort
	case Local:
		return LocalPort
	default:
		return 0
	}
}

// IsTesting - true for chains whose coins have no value
func IsTesting(name string) bool {
	return Testnet == name || Local == name
}

