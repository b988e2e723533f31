// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package configuration

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/bwsdata/chain"
	"github.com/bitmark-inc/bwsdata/currency/satoshi"
	"github.com/bitmark-inc/bwsdata/envelope"
	"github.com/bitmark-inc/bwsdata/fault"
	"github.com/bitmark-inc/bwsdata/util"
)

const (
	defaultDataDirectory = "." // same directory as the config file

	defaultFee           = "0.0001"
	defaultDust          = "0.00001"
	defaultMaxBlocks     = 10
	defaultNodeTimeout   = 10 // seconds
	defaultWatchInterval = 30 // seconds

	defaultJournalDirectory = "data"

	defaultRate  = 5.0
	defaultBurst = 10

	defaultLogDirectory = "log"
	defaultLogFile      = "bws.log"
	defaultLogCount     = 10          //  number of log files retained
	defaultLogSize      = 1024 * 1024 // rotate when <logfile> exceeds this size
)

// NodeType - access to the coin daemon RPC
type NodeType struct {
	URL      string `gluamapper:"url" json:"url"`
	Username string `gluamapper:"username" json:"username"`
	Password string `gluamapper:"password" json:"-"`
	ConfFile string `gluamapper:"conf_file" json:"conf_file"`
	Timeout  int    `gluamapper:"timeout" json:"timeout"`
}

// JournalType - location of the store attempt journal
type JournalType struct {
	Directory string `gluamapper:"directory" json:"directory"`
	Name      string `gluamapper:"name" json:"name"`
}

// HTTPType - the optional HTTP front end, disabled if Listen is blank
//
// TLS is used when both Certificate and PrivateKey are set
type HTTPType struct {
	Listen      string  `gluamapper:"listen" json:"listen"`
	Rate        float64 `gluamapper:"rate" json:"rate"`
	Burst       int     `gluamapper:"burst" json:"burst"`
	Certificate string  `gluamapper:"certificate" json:"certificate"`
	PrivateKey  string  `gluamapper:"private_key" json:"private_key"`
}

// Configuration - all settings for the client and daemon
type Configuration struct {
	DataDirectory string `gluamapper:"data_directory" json:"data_directory"`
	PidFile       string `gluamapper:"pidfile" json:"pidfile"`
	Chain         string `gluamapper:"chain" json:"chain"`

	Fee           string `gluamapper:"fee" json:"fee"`
	Dust          string `gluamapper:"dust" json:"dust"`
	MaxBlocks     int    `gluamapper:"max_blocks" json:"max_blocks"`
	Version       int    `gluamapper:"version" json:"version"`
	Tag           string `gluamapper:"tag" json:"tag"`
	WatchInterval int    `gluamapper:"watch_interval" json:"watch_interval"`

	Node    NodeType             `gluamapper:"node" json:"node"`
	Journal JournalType          `gluamapper:"journal" json:"journal"`
	HTTP    HTTPType             `gluamapper:"http" json:"http"`
	Logging logger.Configuration `gluamapper:"logging" json:"logging"`

	// derived by finalise
	FeeSatoshi  uint64         `gluamapper:"-" json:"-"`
	DustSatoshi uint64         `gluamapper:"-" json:"-"`
	Codec       envelope.Codec `gluamapper:"-" json:"-"`
}

// Default - settings used when no configuration file is present
func Default(chainName string, dataDirectory string) (*Configuration, error) {
	options := defaults(chainName, dataDirectory)
	if err := options.finalise(); nil != err {
		return nil, err
	}
	return options, nil
}

// GetConfiguration - read a Lua configuration file over the defaults
func GetConfiguration(configurationFileName string, variables map[string]string) (*Configuration, error) {

	configurationFileName, err := filepath.Abs(filepath.Clean(configurationFileName))
	if nil != err {
		return nil, err
	}

	// absolute path to the main directory
	dataDirectory, _ := filepath.Split(configurationFileName)

	chainName := chain.Mainnet
	if c, ok := variables["chain"]; ok && "" != c {
		chainName = c
	}
	options := defaults(chainName, defaultDataDirectory)

	if err := ParseConfigurationFile(configurationFileName, options, variables); err != nil {
		return nil, err
	}

	if "." == options.DataDirectory {
		options.DataDirectory = dataDirectory
	}

	if err := options.finalise(); nil != err {
		return nil, err
	}
	return options, nil
}

func defaults(chainName string, dataDirectory string) *Configuration {
	return &Configuration{
		DataDirectory: dataDirectory,
		Chain:         chainName,
		Fee:           defaultFee,
		Dust:          defaultDust,
		MaxBlocks:     defaultMaxBlocks,
		Version:       int(envelope.CurrentVersion),
		Tag:           envelope.DefaultTag.String(),
		WatchInterval: defaultWatchInterval,

		Node: NodeType{
			ConfFile: chain.DefaultConfFile,
			Timeout:  defaultNodeTimeout,
		},

		Journal: JournalType{
			Directory: defaultJournalDirectory,
		},

		HTTP: HTTPType{
			Rate:  defaultRate,
			Burst: defaultBurst,
		},

		Logging: logger.Configuration{
			Directory: defaultLogDirectory,
			File:      defaultLogFile,
			Size:      defaultLogSize,
			Count:     defaultLogCount,
			Levels: map[string]string{
				logger.DefaultTag: "critical",
			},
		},
	}
}

// NodeTimeout - per call deadline for node requests
func (options *Configuration) NodeTimeout() time.Duration {
	return time.Duration(options.Node.Timeout) * time.Second
}

// WatchPeriod - polling interval for confirmation watching
func (options *Configuration) WatchPeriod() time.Duration {
	return time.Duration(options.WatchInterval) * time.Second
}

// validate everything and convert the derived items
func (options *Configuration) finalise() error {

	options.Chain = strings.ToLower(options.Chain)
	if !chain.Valid(options.Chain) {
		return fmt.Errorf("chain: %q is not supported", options.Chain)
	}

	fee, err := satoshi.FromString(options.Fee)
	if nil != err {
		return fmt.Errorf("fee: %q: %w", options.Fee, err)
	}
	dust, err := satoshi.FromString(options.Dust)
	if nil != err {
		return fmt.Errorf("dust: %q: %w", options.Dust, err)
	}
	options.FeeSatoshi = fee
	options.DustSatoshi = dust

	if options.MaxBlocks < 1 {
		return fault.ErrInvalidCount
	}
	if options.Node.Timeout < 1 || options.WatchInterval < 1 {
		return fault.ErrInvalidCount
	}
	if options.Version < 1 || options.Version > 255 {
		return fault.ErrInvalidVersion
	}
	tag, err := envelope.TagFromString(options.Tag)
	if nil != err {
		return err
	}
	options.Codec, err = envelope.NewCodec(envelope.Version(options.Version), tag)
	if nil != err {
		return err
	}

	if "" != options.HTTP.Listen {
		options.HTTP.Listen, err = util.CanonicalIPandPort(options.HTTP.Listen)
		if nil != err {
			return err
		}
		if options.HTTP.Rate <= 0 || options.HTTP.Burst < 1 {
			return fault.ErrInvalidCount
		}
		if ("" == options.HTTP.Certificate) != ("" == options.HTTP.PrivateKey) {
			return fault.ErrMissingParameters
		}
	}

	if err := options.resolveNode(); nil != err {
		return err
	}

	// ensure absolute data directory
	if "" == options.DataDirectory || "~" == options.DataDirectory {
		return fmt.Errorf("path: %q is not a valid directory", options.DataDirectory)
	}
	options.DataDirectory = filepath.Clean(util.ExpandHome(options.DataDirectory))

	if "" == options.Journal.Name {
		options.Journal.Name = options.Chain + ".leveldb"
	}
	switch filepath.Dir(options.Journal.Name) {
	case "", ".":
	default:
		return fmt.Errorf("files: %q is not plain name", options.Journal.Name)
	}

	for _, f := range []*string{
		&options.Journal.Directory,
		&options.Logging.Directory,
	} {
		if "" == *f {
			*f = options.DataDirectory
		}
	}
	for _, f := range []*string{
		&options.Journal.Directory,
		&options.Logging.Directory,
		&options.PidFile,
		&options.HTTP.Certificate,
		&options.HTTP.PrivateKey,
	} {
		*f = util.AbsolutePath(options.DataDirectory, *f)
	}
	options.Journal.Name = filepath.Join(options.Journal.Directory, options.Journal.Name)

	return nil
}

// fill in node URL and credentials from the daemon's own file when
// not given explicitly
func (options *Configuration) resolveNode() error {

	port := chain.Port(options.Chain)

	if "" == options.Node.Username || "" == options.Node.Password {
		if "" == options.Node.ConfFile {
			return fault.ErrMissingParameters
		}
		credentials, err := ReadNodeCredentials(util.ExpandHome(options.Node.ConfFile))
		if nil != err {
			return fmt.Errorf("node credentials: %q: %w", options.Node.ConfFile, err)
		}
		options.Node.Username = credentials.Username
		options.Node.Password = credentials.Password
		if 0 != credentials.Port {
			port = credentials.Port
		}
	}

	if "" == options.Node.URL {
		options.Node.URL = "http://127.0.0.1:" + strconv.Itoa(port)
	}
	return nil
}

// EnsureDirectories - create the journal and log directories
func (options *Configuration) EnsureDirectories() error {
	for _, d := range []string{
		options.Journal.Directory,
		options.Logging.Directory,
	} {
		if err := os.MkdirAll(d, 0700); nil != err {
			return err
		}
	}
	return nil
}
