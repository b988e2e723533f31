// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package fixtures - shared test logging setup and sample data
package fixtures

import (
	"encoding/hex"
	"fmt"
	"os"

	"github.com/bitmark-inc/logger"
	"github.com/zeebo/blake3"
)

const (
	dir         = "testing"
	LogCategory = "testing"
)

// Payload - 159 bytes, three chunks at the chunked capacity
var Payload = []byte("The quick brown fox jumps over the lazy dog. " +
	"Pack my box with five dozen liquor jugs. " +
	"How vexingly quick daft zebras jump! " +
	"Sphinx of black quartz, judge my vow")

// SetupTestLogger - log to a scratch directory
func SetupTestLogger() {
	removeFiles()
	_ = os.Mkdir(dir, 0700)

	logging := logger.Configuration{
		Directory: dir,
		File:      fmt.Sprintf("%s.log", LogCategory),
		Size:      1048576,
		Count:     10,
		Console:   false,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	}

	// start logging
	_ = logger.Initialise(logging)
}

// TeardownTestLogger - stop logging and remove the scratch directory
func TeardownTestLogger() {
	logger.Finalise()
	removeFiles()
}

func removeFiles() {
	err := os.RemoveAll(dir)
	if nil != err {
		fmt.Println("remove dir with error: ", err)
	}
}

// TxId - a stable, well formed transaction id derived from a label
func TxId(label string) string {
	digest := blake3.Sum256([]byte(label))
	return hex.EncodeToString(digest[:])
}
