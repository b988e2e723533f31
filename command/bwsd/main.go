// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"crypto/tls"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/getoptions"
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/bwsdata/api"
	"github.com/bitmark-inc/bwsdata/background"
	"github.com/bitmark-inc/bwsdata/bitcoin"
	"github.com/bitmark-inc/bwsdata/configuration"
	"github.com/bitmark-inc/bwsdata/datastore"
	"github.com/bitmark-inc/bwsdata/journal"
)

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

// main program
func main() {
	// ensure exit handler is first
	defer exitwithstatus.Handler()

	flags := []getoptions.Option{
		{Long: "help", HasArg: getoptions.NO_ARGUMENT, Short: 'h'},
		{Long: "verbose", HasArg: getoptions.NO_ARGUMENT, Short: 'v'},
		{Long: "quiet", HasArg: getoptions.NO_ARGUMENT, Short: 'q'},
		{Long: "version", HasArg: getoptions.NO_ARGUMENT, Short: 'V'},
		{Long: "config-file", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'c'},
	}

	program, options, arguments, err := getoptions.GetOS(flags)
	if nil != err {
		exitwithstatus.Message("%s: getoptions error: %s", program, err)
	}

	if len(options["version"]) > 0 {
		processSetupCommand(program, []string{"version"})
		return
	}

	if len(options["help"]) > 0 {
		processSetupCommand(program, []string{"help"})
		return
	}

	// these commands do not require the configuration and
	// process data needed for initial setup
	if len(arguments) > 0 && processSetupCommand(program, arguments) {
		return
	}

	if 1 != len(options["config-file"]) {
		exitwithstatus.Message("%s: only one config-file option is required, %d were detected", program, len(options["config-file"]))
	}

	// read options and parse the configuration file
	configurationFile := options["config-file"][0]
	theConfiguration, err := configuration.GetConfiguration(configurationFile, nil)
	if nil != err {
		exitwithstatus.Message("%s: failed to read configuration from: %q  error: %s", program, configurationFile, err)
	}

	// these commands require the configuration and
	// perform enquiries on the configuration
	if len(arguments) > 0 && processConfigCommand(arguments, theConfiguration) {
		return
	}

	if "" == theConfiguration.HTTP.Listen {
		exitwithstatus.Message("%s: http listen address is not configured", program)
	}

	if err := theConfiguration.EnsureDirectories(); nil != err {
		exitwithstatus.Message("%s: create directories error: %s", program, err)
	}

	// start logging
	if err = logger.Initialise(theConfiguration.Logging); nil != err {
		exitwithstatus.Message("%s: logger setup failed with error: %s", program, err)
	}
	defer logger.Finalise()

	// create a logger channel for the main program
	log := logger.New("main")
	defer log.Info("finished")
	log.Info("starting…")
	log.Infof("version: %s", version)
	log.Debugf("theConfiguration: %v", theConfiguration)

	// optional PID file
	// use if not running under a supervisor program like daemon(8)
	if "" != theConfiguration.PidFile {
		lockFile, err := os.OpenFile(theConfiguration.PidFile, os.O_WRONLY|os.O_EXCL|os.O_CREATE, os.ModeExclusive|0600)
		if err != nil {
			if os.IsExist(err) {
				exitwithstatus.Message("%s: another instance is already running", program)
			}
			exitwithstatus.Message("%s: PID file: %q creation failed, error: %s", program, theConfiguration.PidFile, err)
		}
		fmt.Fprintf(lockFile, "%d\n", os.Getpid())
		lockFile.Close()
		defer os.Remove(theConfiguration.PidFile)
	}

	log.Infof("chain: %s", theConfiguration.Chain)
	log.Infof("journal: %q", theConfiguration.Journal.Name)

	log.Info("initialise journal")
	attempts, err := journal.Open(theConfiguration.Journal.Name)
	if nil != err {
		log.Criticalf("journal open error: %s", err)
		exitwithstatus.Message("journal open error: %s", err)
	}
	defer attempts.Close()

	log.Info("initialise node client")
	client, err := bitcoin.New(&bitcoin.Configuration{
		URL:      theConfiguration.Node.URL,
		Username: theConfiguration.Node.Username,
		Password: theConfiguration.Node.Password,
		Timeout:  theConfiguration.NodeTimeout(),
	})
	if nil != err {
		log.Criticalf("node client error: %s", err)
		exitwithstatus.Message("node client error: %s", err)
	}

	manager, err := datastore.New(client, &datastore.Configuration{
		Codec:     theConfiguration.Codec,
		Fee:       theConfiguration.FeeSatoshi,
		Dust:      theConfiguration.DustSatoshi,
		MaxBlocks: theConfiguration.MaxBlocks,
		Journal:   attempts,
	})
	if nil != err {
		log.Criticalf("datastore initialise error: %s", err)
		exitwithstatus.Message("datastore initialise error: %s", err)
	}

	server, err := api.New(manager, attempts, &api.Configuration{
		Chain:     theConfiguration.Chain,
		Version:   version,
		Rate:      theConfiguration.HTTP.Rate,
		Burst:     theConfiguration.HTTP.Burst,
		MaxBlocks: theConfiguration.MaxBlocks,
	})
	if nil != err {
		log.Criticalf("api initialise error: %s", err)
		exitwithstatus.Message("api initialise error: %s", err)
	}

	var tlsConfiguration *tls.Config
	if "" != theConfiguration.HTTP.Certificate {
		c, fingerprint, err := loadCertificate(theConfiguration.HTTP.Certificate, theConfiguration.HTTP.PrivateKey)
		if nil != err {
			log.Criticalf("certificate: %q  error: %s", theConfiguration.HTTP.Certificate, err)
			exitwithstatus.Message("certificate: %q  error: %s", theConfiguration.HTTP.Certificate, err)
		}
		log.Infof("SHA3-256 fingerprint: %x", fingerprint)
		tlsConfiguration = c
	}

	listener, err := newHTTPServer(theConfiguration.HTTP.Listen, server.Handler(), tlsConfiguration)
	if nil != err {
		log.Criticalf("http listen error: %s", err)
		exitwithstatus.Message("http listen error: %s", err)
	}

	// only the request rate can change without a restart
	watcher, err := newFileWatcher(configurationFile, func() error {
		c, err := configuration.GetConfiguration(configurationFile, nil)
		if nil != err {
			return err
		}
		return server.SetRate(c.HTTP.Rate)
	})
	if nil != err {
		log.Criticalf("configuration watcher error: %s", err)
		exitwithstatus.Message("configuration watcher error: %s", err)
	}

	processes := background.Start(background.Processes{
		listener,
		watcher,
	}, nil)
	defer processes.Stop()

	// wait for CTRL-C before shutting down to allow manual testing
	if 0 == len(options["quiet"]) {
		fmt.Printf("\n\nWaiting for CTRL-C (SIGINT) or 'kill <pid>' (SIGTERM)…")
	}

	// turn Signals into channel messages
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-ch:
		log.Infof("received signal: %v", sig)
		if 0 == len(options["quiet"]) {
			fmt.Printf("\nreceived signal: %v\n", sig)
			fmt.Printf("\nshutting down…\n")
		}
	case <-processes.Finished():
		log.Error("background processes stopped unexpectedly")
	}

	log.Info("shutting down…")
}
