// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/hex"
	"strings"
	"unicode/utf8"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/bwsdata/envelope"
	"github.com/bitmark-inc/bwsdata/fault"
)

type decodedEnvelope struct {
	Version  envelope.Version `json:"version"`
	Tag      envelope.Tag     `json:"tag"`
	Action   envelope.Action  `json:"action"`
	Chunked  bool             `json:"chunked"`
	Sequence uint16           `json:"sequence"`
	Total    uint16           `json:"total"`
	Size     int              `json:"size"`
	Payload  string           `json:"payload"`
	Text     string           `json:"text,omitempty"`
}

// decode needs no node or configuration file
func runDecode(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	if 1 != c.NArg() {
		return errMissingArgument
	}
	data, err := hex.DecodeString(strings.TrimSpace(c.Args().Get(0)))
	if nil != err {
		return err
	}

	codec, err := decodeCodec(c.String("tag"), c.Int("envelope-version"))
	if nil != err {
		return err
	}

	e, err := codec.Decode(data)
	if nil != err {
		return err
	}

	result := decodedEnvelope{
		Version:  e.Version,
		Tag:      e.Tag,
		Action:   e.Action,
		Chunked:  e.Chunked(),
		Sequence: e.Sequence,
		Total:    e.Total,
		Size:     len(e.Payload),
		Payload:  hex.EncodeToString(e.Payload),
	}
	if utf8.Valid(e.Payload) {
		result.Text = string(e.Payload)
	}
	return printJson(m.w, result)
}

func decodeCodec(tagName string, version int) (envelope.Codec, error) {
	tag := envelope.DefaultTag
	if "" != tagName {
		t, err := envelope.TagFromString(tagName)
		if nil != err {
			return envelope.Codec{}, err
		}
		tag = t
	}
	if version < 0 || version > 255 {
		return envelope.Codec{}, fault.ErrInvalidVersion
	}
	v := envelope.CurrentVersion
	if 0 != version {
		v = envelope.Version(version)
	}
	return envelope.NewCodec(v, tag)
}
