// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"crypto/tls"
	"io/ioutil"
	"net/http"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/bwsdata/background"
	"github.com/bitmark-inc/bwsdata/fixtures"
)

func hello(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("hello"))
}

func TestHTTPServer(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	server, err := newHTTPServer("127.0.0.1:0", http.HandlerFunc(hello), nil)
	assert.Nil(t, err, "new")

	processes := background.Start(background.Processes{server}, nil)

	response, err := http.Get("http://" + server.Addr().String() + "/")
	assert.Nil(t, err, "get")
	body, err := ioutil.ReadAll(response.Body)
	response.Body.Close()
	assert.Nil(t, err, "read")
	assert.Equal(t, "hello", string(body), "body")

	processes.Stop()

	_, err = http.Get("http://" + server.Addr().String() + "/")
	assert.NotNil(t, err, "closed after stop")
}

func TestHTTPSServer(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	dir := t.TempDir()
	certificateFileName := filepath.Join(dir, httpCertificateFilename)
	keyFileName := filepath.Join(dir, httpPrivateKeyFilename)
	err := makeSelfSignedCertificate("test", certificateFileName, keyFileName, true, []string{"127.0.0.1"})
	assert.Nil(t, err, "certificate")

	tlsConfiguration, _, err := loadCertificate(certificateFileName, keyFileName)
	assert.Nil(t, err, "load")

	server, err := newHTTPServer("127.0.0.1:0", http.HandlerFunc(hello), tlsConfiguration)
	assert.Nil(t, err, "new")

	processes := background.Start(background.Processes{server}, nil)
	defer processes.Stop()

	client := &http.Client{
		Transport: &http.Transport{
			TLSClientConfig: &tls.Config{
				InsecureSkipVerify: true,
			},
		},
	}
	response, err := client.Get("https://" + server.Addr().String() + "/")
	assert.Nil(t, err, "get")
	body, err := ioutil.ReadAll(response.Body)
	response.Body.Close()
	assert.Nil(t, err, "read")
	assert.Equal(t, "hello", string(body), "body")
}

func TestHTTPServerAddressInUse(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	first, err := newHTTPServer("127.0.0.1:0", http.HandlerFunc(hello), nil)
	assert.Nil(t, err, "first")
	defer first.listener.Close()

	_, err = newHTTPServer(first.Addr().String(), http.HandlerFunc(hello), nil)
	assert.NotNil(t, err, "second bind")
}
