// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/bwsdata/bitcoin"
	"github.com/bitmark-inc/bwsdata/configuration"
	"github.com/bitmark-inc/bwsdata/datastore"
	"github.com/bitmark-inc/bwsdata/journal"
	"github.com/bitmark-inc/bwsdata/util"
)

// per run state shared by all commands
type metadata struct {
	file      string
	chainName string
	verbose   bool
	e         io.Writer
	w         io.Writer

	config  *configuration.Configuration
	journal *journal.Journal
	manager *datastore.Manager
	logging bool
}

// the configuration file used when --config is not given
func (m *metadata) defaultFile() string {
	p := os.Getenv("XDG_CONFIG_HOME")
	if "" == p {
		p = util.ExpandHome("~/.config")
	}
	return filepath.Join(p, "bws-cli", m.chainName+"-bws.conf")
}

// load the configuration once, falling back to defaults when no file
// exists at the default location
func (m *metadata) configuration() (*configuration.Configuration, error) {
	if nil != m.config {
		return m.config, nil
	}

	variables := map[string]string{
		"chain": m.chainName,
	}

	file := m.file
	if "" == file {
		file = m.defaultFile()
		if _, err := os.Stat(file); nil != err {
			if m.verbose {
				fmt.Fprintf(m.e, "no configuration: %q  using defaults\n", file)
			}
			config, err := configuration.Default(m.chainName, filepath.Dir(file))
			if nil != err {
				return nil, err
			}
			m.config = config
			return config, nil
		}
	}

	if m.verbose {
		fmt.Fprintf(m.e, "configuration: %q\n", file)
	}
	config, err := configuration.GetConfiguration(file, variables)
	if nil != err {
		return nil, err
	}
	m.config = config
	return config, nil
}

// open the journal only
func (m *metadata) openJournal() (*journal.Journal, error) {
	if nil != m.journal {
		return m.journal, nil
	}
	config, err := m.configuration()
	if nil != err {
		return nil, err
	}
	if err := m.startLogging(config); nil != err {
		return nil, err
	}
	j, err := journal.Open(config.Journal.Name)
	if nil != err {
		return nil, err
	}
	m.journal = j
	return j, nil
}

// connect to the node and create the manager
func (m *metadata) connect() (*datastore.Manager, error) {
	if nil != m.manager {
		return m.manager, nil
	}

	j, err := m.openJournal()
	if nil != err {
		return nil, err
	}
	config := m.config

	client, err := bitcoin.New(&bitcoin.Configuration{
		URL:      config.Node.URL,
		Username: config.Node.Username,
		Password: config.Node.Password,
		Timeout:  config.NodeTimeout(),
	})
	if nil != err {
		return nil, err
	}

	manager, err := datastore.New(client, &datastore.Configuration{
		Codec:     config.Codec,
		Fee:       config.FeeSatoshi,
		Dust:      config.DustSatoshi,
		MaxBlocks: config.MaxBlocks,
		Journal:   j,
	})
	if nil != err {
		return nil, err
	}
	m.manager = manager
	return manager, nil
}

func (m *metadata) startLogging(config *configuration.Configuration) error {
	if m.logging {
		return nil
	}
	if err := config.EnsureDirectories(); nil != err {
		return err
	}
	if err := logger.Initialise(config.Logging); nil != err {
		return err
	}
	m.logging = true
	return nil
}

// release everything opened by the commands
func (m *metadata) close() error {
	var err error
	if nil != m.journal {
		err = m.journal.Close()
		m.journal = nil
	}
	if m.logging {
		logger.Finalise()
		m.logging = false
	}
	return err
}
