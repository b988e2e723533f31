// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/hex"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/bwsdata/envelope"
)

func runSend(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	address := c.String("address")
	amount := c.String("amount")
	envelopeHex := c.String("envelope")
	message := c.String("message")

	if "" != envelopeHex && "" != message {
		return errEnvelopeSource
	}

	manager, err := m.connect()
	if nil != err {
		return err
	}

	var data []byte
	switch {
	case "" != envelopeHex:
		data, err = hex.DecodeString(envelopeHex)
		if nil != err {
			return err
		}
	case "" != message:
		data, _, err = manager.Codec().Encode(envelope.StoreAction, []byte(message), 0, 1)
		if nil != err {
			return err
		}
	}

	ctx, cancel := interruptible()
	defer cancel()

	result, err := manager.Send(ctx, address, amount, data)
	if nil != err {
		return err
	}
	return printJson(m.w, result)
}
