// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/hex"
	"errors"
	"io/ioutil"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/bwsdata/currency/satoshi"
	"github.com/bitmark-inc/bwsdata/datastore"
	"github.com/bitmark-inc/bwsdata/envelope"
)

// shown when a store fails after some chunks were already sent
type storeFailure struct {
	Stage   datastore.StoreState `json:"stage"`
	TxIds   []string             `json:"transaction_ids"`
	Attempt string               `json:"attempt,omitempty"`
	Error   string               `json:"error"`
}

func runStore(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	payload, err := payloadFrom(c.String("string"), c.String("hex"), c.String("file"))
	if nil != err {
		return err
	}

	action, err := envelope.ActionFromString(c.String("action"))
	if nil != err {
		return err
	}

	options := &datastore.StoreOptions{
		Action: action,
	}
	if fee := c.String("fee"); "" != fee {
		options.Fee, err = satoshi.FromString(fee)
		if nil != err {
			return err
		}
	}

	manager, err := m.connect()
	if nil != err {
		return err
	}

	ctx, cancel := interruptible()
	defer cancel()

	result, err := manager.Store(ctx, payload, options)
	if nil != err {
		var storeError *datastore.StoreError
		if errors.As(err, &storeError) && len(storeError.TxIds) > 0 {
			printJson(m.e, storeFailure{
				Stage:   storeError.Stage,
				TxIds:   storeError.TxIds,
				Attempt: storeError.Attempt,
				Error:   storeError.Err.Error(),
			})
		}
		return err
	}

	return printJson(m.w, result)
}

// exactly one source must be given
func payloadFrom(s string, hexData string, fileName string) ([]byte, error) {
	count := 0
	for _, v := range []string{s, hexData, fileName} {
		if "" != v {
			count += 1
		}
	}
	if 1 != count {
		return nil, errPayloadSource
	}

	switch {
	case "" != s:
		return []byte(s), nil
	case "" != hexData:
		return hex.DecodeString(hexData)
	default:
		return ioutil.ReadFile(fileName)
	}
}
