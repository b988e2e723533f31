// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package datastore

import (
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/bwsdata/envelope"
	"github.com/bitmark-inc/bwsdata/fault"
)

// defaults
const (
	DefaultFee       = 10000 // 0.0001 coin
	DefaultDust      = 1000  // 0.00001 coin
	DefaultMaxBlocks = 10
)

// Configuration - settings for a Manager
//
// zero values select the defaults; Journal may be nil
type Configuration struct {
	Codec     envelope.Codec
	Fee       uint64
	Dust      uint64
	MaxBlocks int
	Journal   Journal
}

// Manager - runs store, retrieve and send against one chain client
//
// a Manager holds no per-call state and may be shared
type Manager struct {
	log       *logger.L
	client    ChainClient
	codec     envelope.Codec
	fee       uint64
	dust      uint64
	maxBlocks int
	journal   Journal
}

// New - create a manager
func New(client ChainClient, configuration *Configuration) (*Manager, error) {
	if nil == client {
		return nil, fault.ErrMissingParameters
	}
	if nil == configuration {
		configuration = &Configuration{}
	}

	m := &Manager{
		log:       logger.New("datastore"),
		client:    client,
		codec:     configuration.Codec,
		fee:       configuration.Fee,
		dust:      configuration.Dust,
		maxBlocks: configuration.MaxBlocks,
		journal:   configuration.Journal,
	}

	if envelope.InvalidVersion == m.codec.Version() {
		m.codec = envelope.DefaultCodec()
	}
	if 0 == m.fee {
		m.fee = DefaultFee
	}
	if 0 == m.dust {
		m.dust = DefaultDust
	}
	if m.maxBlocks <= 0 {
		m.maxBlocks = DefaultMaxBlocks
	}

	m.log.Infof("version: 0x%02x  tag: %s  fee: %d  dust: %d  blocks: %d",
		m.codec.Version(), m.codec.Tag(), m.fee, m.dust, m.maxBlocks)

	return m, nil
}

// Codec - the envelope codec in use
func (m *Manager) Codec() envelope.Codec {
	return m.codec
}
