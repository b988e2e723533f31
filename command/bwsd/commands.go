// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bitmark-inc/exitwithstatus"

	"github.com/bitmark-inc/bwsdata/configuration"
)

const (
	httpCertificateFilename = "http.crt"
	httpPrivateKeyFilename  = "http.key"
)

// setup command handler
//
// commands that run to create key and certificate files these
// commands cannot access the journal, the node or the configuration
// file
func processSetupCommand(program string, arguments []string) bool {

	command := "help"
	if len(arguments) > 0 {
		command = arguments[0]
		arguments = arguments[1:]
	}

	switch command {
	case "gen-http-cert", "http":
		certificateFilename := getFilenameWithDirectory(arguments, httpCertificateFilename)
		privateKeyFilename := getFilenameWithDirectory(arguments, httpPrivateKeyFilename)

		addresses := []string{}
		if len(arguments) >= 2 {
			for _, a := range arguments[1:] {
				if "" != a {
					addresses = append(addresses, a)
				}
			}
		}

		err := makeSelfSignedCertificate("http", certificateFilename, privateKeyFilename, 0 != len(addresses), addresses)
		if nil != err {
			fmt.Printf("generate HTTP key: %q and certificate: %q error: %s\n", privateKeyFilename, certificateFilename, err)
			exitwithstatus.Exit(1)
		}
		fmt.Printf("generated HTTP key: %q and certificate: %q\n", privateKeyFilename, certificateFilename)

	case "start", "run":
		return false // continue processing

	case "config-test", "cfg", "fingerprint", "fp":
		return false // defer processing until configuration is read

	case "version", "v":
		fmt.Printf("%s\n", version)

	default:
		switch command {
		case "help", "h", "?":
		case "", " ":
			fmt.Printf("error: missing command\n")
		default:
			fmt.Printf("error: no such command: %q\n", command)
		}
		fmt.Printf("usage: %s [--help] [--verbose] [--quiet] --config-file=FILE [[command|help] arguments...]\n", program)

		fmt.Printf("supported commands:\n\n")
		fmt.Printf("  help                       (h)      - display this message\n\n")
		fmt.Printf("  version                    (v)      - display version sting\n\n")

		fmt.Printf("  gen-http-cert [DIR]        (http)   - create private key in:  %q\n", "DIR/"+httpPrivateKeyFilename)
		fmt.Printf("                                        and the certificate in: %q\n", "DIR/"+httpCertificateFilename)
		fmt.Printf("\n")

		fmt.Printf("  gen-http-cert [DIR] [IPs...]        - create private key in:  %q\n", "DIR/"+httpPrivateKeyFilename)
		fmt.Printf("                                        and the certificate in: %q\n", "DIR/"+httpCertificateFilename)
		fmt.Printf("                                        valid only for the given addresses\n")
		fmt.Printf("\n")

		fmt.Printf("  start                      (run)    - just run the program, same as no arguments\n")
		fmt.Printf("                                        for convienience when passing script arguments\n")
		fmt.Printf("\n")

		fmt.Printf("  config-test                (cfg)    - just check the configuration file\n")
		fmt.Printf("\n")

		fmt.Printf("  fingerprint                (fp)     - SHA3-256 fingerprint of the HTTP certificate\n")
		fmt.Printf("\n")

		exitwithstatus.Exit(1)
	}

	// indicate processing complete and perform normal exit from main
	return true
}

// configuration file enquiry commands
// have configuration file read and decoded, but nothing else
func processConfigCommand(arguments []string, options *configuration.Configuration) bool {

	command := "help"
	if len(arguments) > 0 {
		command = arguments[0]
	}

	switch command {
	case "config-test", "cfg":
		b, err := json.Marshal(options)
		if err != nil {
			exitwithstatus.Message("error: %s", err)
		}
		var out bytes.Buffer
		json.Indent(&out, b, "", "  ")
		out.WriteString("\n")
		out.WriteTo(os.Stdout)

	case "fingerprint", "fp":
		_, fingerprint, err := loadCertificate(options.HTTP.Certificate, options.HTTP.PrivateKey)
		if nil != err {
			exitwithstatus.Message("certificate: %q  error: %s", options.HTTP.Certificate, err)
		}
		fmt.Printf("SHA3-256 fingerprint: %x\n", fingerprint)

	default: // unknown commands fall through to the daemon
		return false
	}

	// indicate processing complete and perform normal exit from main
	return true
}

func getFilenameWithDirectory(arguments []string, name string) string {
	dir := "."
	if len(arguments) >= 1 {
		dir = arguments[0]
	}

	return filepath.Join(dir, name)
}
