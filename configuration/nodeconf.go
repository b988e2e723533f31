// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package configuration

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/bitmark-inc/bwsdata/fault"
)

// NodeCredentials - RPC access items found in a coin daemon config file
type NodeCredentials struct {
	Username string
	Password string
	Port     int  // zero if not set
	Testnet  bool // testnet=1 was present
}

// ReadNodeCredentials - extract rpcuser, rpcpassword, rpcport and
// testnet from a daemon configuration file
func ReadNodeCredentials(fileName string) (*NodeCredentials, error) {
	f, err := os.Open(fileName)
	if nil != err {
		return nil, err
	}
	defer f.Close()

	return parseNodeCredentials(f)
}

func parseNodeCredentials(r io.Reader) (*NodeCredentials, error) {

	credentials := &NodeCredentials{}
	scanner := bufio.NewScanner(r)

scan_lines:
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if "" == line || '#' == line[0] || '[' == line[0] {
			continue scan_lines
		}
		s := strings.SplitN(line, "=", 2) // value may contain more "="
		if 2 != len(s) {
			continue scan_lines
		}
		value := strings.TrimSpace(s[1])
		switch strings.TrimSpace(s[0]) {
		case "rpcuser":
			credentials.Username = value
		case "rpcpassword":
			credentials.Password = value
		case "rpcport":
			port, err := strconv.Atoi(value)
			if nil != err || port < 1 || port > 65535 {
				return nil, fault.ErrInvalidPortNumber
			}
			credentials.Port = port
		case "testnet":
			credentials.Testnet = "1" == value
		}
	}
	if err := scanner.Err(); nil != err {
		return nil, err
	}

	if "" == credentials.Username || "" == credentials.Password {
		return nil, fault.ErrMissingParameters
	}
	return credentials, nil
}
