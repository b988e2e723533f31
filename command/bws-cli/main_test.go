// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"io/ioutil"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/bwsdata/envelope"
	"github.com/bitmark-inc/bwsdata/fault"
)

func run(t *testing.T, args ...string) (string, string, error) {
	w := &bytes.Buffer{}
	e := &bytes.Buffer{}
	app := newApp(w, e)
	err := app.Run(append([]string{"bws-cli"}, args...))
	return w.String(), e.String(), err
}

func TestVersion(t *testing.T) {
	out, _, err := run(t, "version")
	assert.Nil(t, err, "version")
	assert.Equal(t, version+"\n", out, "output")
}

func TestInvalidChain(t *testing.T) {
	_, _, err := run(t, "--chain", "bitmark", "version")
	assert.NotNil(t, err, "chain")
}

func TestDecode(t *testing.T) {
	packed, _, err := envelope.DefaultCodec().Encode(envelope.GrantAction, []byte("hello"), 2, 5)
	assert.Nil(t, err, "encode")

	out, _, err := run(t, "decode", hex.EncodeToString(packed))
	assert.Nil(t, err, "decode")

	var decoded map[string]interface{}
	err = json.Unmarshal([]byte(out), &decoded)
	assert.Nil(t, err, "json: %s", out)
	assert.Equal(t, "BWS", decoded["tag"], "tag")
	assert.Equal(t, "grant", decoded["action"], "action")
	assert.Equal(t, true, decoded["chunked"], "chunked")
	assert.Equal(t, float64(2), decoded["sequence"], "sequence")
	assert.Equal(t, float64(5), decoded["total"], "total")
	assert.Equal(t, "68656c6c6f", decoded["payload"], "payload")
	assert.Equal(t, "hello", decoded["text"], "text")
}

func TestDecodeOtherNamespace(t *testing.T) {
	tag, _ := envelope.TagFromString("XYZ")
	codec, err := envelope.NewCodec(0x22, tag)
	assert.Nil(t, err, "codec")
	packed, _, err := codec.Encode(envelope.StoreAction, []byte{0xff, 0x00}, 0, 1)
	assert.Nil(t, err, "encode")
	h := hex.EncodeToString(packed)

	_, _, err = run(t, "decode", h)
	assert.NotNil(t, err, "default codec must refuse")

	out, _, err := run(t, "decode", "--tag", "XYZ", "--envelope-version", "34", h)
	assert.Nil(t, err, "decode")

	var decoded map[string]interface{}
	err = json.Unmarshal([]byte(out), &decoded)
	assert.Nil(t, err, "json: %s", out)
	assert.Equal(t, "XYZ", decoded["tag"], "tag")
	assert.Equal(t, false, decoded["chunked"], "chunked")
	assert.Equal(t, "ff00", decoded["payload"], "payload")
	_, hasText := decoded["text"]
	assert.False(t, hasText, "binary payload has no text")
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		args []string
		err  error
	}{
		{[]string{"decode"}, errMissingArgument},
		{[]string{"decode", "10", "11"}, errMissingArgument},
		{[]string{"decode", "--tag", "TOOLONG", "10"}, fault.ErrInvalidTag},
		{[]string{"decode", "--envelope-version", "300", "10"}, fault.ErrInvalidVersion},
	}

	for i, item := range tests {
		_, _, err := run(t, item.args...)
		assert.Equal(t, item.err, err, "%d: %v", i, item.args)
	}

	_, _, err := run(t, "decode", "zz")
	assert.NotNil(t, err, "bad hex")
}

func TestArgumentErrors(t *testing.T) {
	tests := []struct {
		args []string
		err  error
	}{
		{[]string{"store"}, errPayloadSource},
		{[]string{"store", "-s", "text", "-x", "0102"}, errPayloadSource},
		{[]string{"store", "-s", "text", "-a", "destroy"}, fault.ErrInvalidAction},
		{[]string{"retrieve"}, errMissingReference},
		{[]string{"watch"}, errMissingReference},
		{[]string{"send", "-a", "addr", "-m", "1", "-e", "00", "-s", "text"}, errEnvelopeSource},
		{[]string{"journal", "--failed", "--recent", "3"}, errConflictingSearch},
		{[]string{"journal", "-r", "abc", "some-id"}, errConflictingSearch},
	}

	for i, item := range tests {
		_, _, err := run(t, item.args...)
		assert.Equal(t, item.err, err, "%d: %v", i, item.args)
	}
}

func TestPayloadFrom(t *testing.T) {
	fileName := filepath.Join(t.TempDir(), "payload")
	err := ioutil.WriteFile(fileName, []byte("from file"), 0600)
	assert.Nil(t, err, "write")

	tests := []struct {
		s        string
		hexData  string
		fileName string
		expected []byte
	}{
		{"text", "", "", []byte("text")},
		{"", "010203", "", []byte{1, 2, 3}},
		{"", "", fileName, []byte("from file")},
	}

	for i, item := range tests {
		payload, err := payloadFrom(item.s, item.hexData, item.fileName)
		assert.Nil(t, err, "%d: error", i)
		assert.Equal(t, item.expected, payload, "%d: payload", i)
	}

	_, err = payloadFrom("", "", "")
	assert.Equal(t, errPayloadSource, err, "none")
	_, err = payloadFrom("", "", filepath.Join(t.TempDir(), "missing"))
	assert.NotNil(t, err, "missing file")
}

func TestJournal(t *testing.T) {
	fileName := filepath.Join(t.TempDir(), "bws.conf")
	config := `return { data_directory = ".", node = { username = "u", password = "p" } }`
	err := ioutil.WriteFile(fileName, []byte(config), 0600)
	assert.Nil(t, err, "write configuration")

	out, _, err := run(t, "--config", fileName, "--chain", "testnet", "journal")
	assert.Nil(t, err, "journal")
	assert.Equal(t, "[]\n", out, "empty journal")

	_, _, err = run(t, "--config", fileName, "--chain", "testnet", "journal", "no-such-id")
	assert.Equal(t, fault.ErrNotFound, err, "missing id")
}
