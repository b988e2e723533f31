// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/pem"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/bwsdata/fault"
)

func TestMakeSelfSignedCertificate(t *testing.T) {
	dir := t.TempDir()
	certificateFileName := filepath.Join(dir, httpCertificateFilename)
	keyFileName := filepath.Join(dir, httpPrivateKeyFilename)

	err := makeSelfSignedCertificate("test", certificateFileName, keyFileName, true, []string{"127.0.0.1"})
	assert.Nil(t, err, "make")

	info, err := os.Stat(keyFileName)
	assert.Nil(t, err, "key stat")
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm(), "key permissions")

	tlsConfiguration, fingerprint, err := loadCertificate(certificateFileName, keyFileName)
	assert.Nil(t, err, "load")
	assert.Equal(t, 1, len(tlsConfiguration.Certificates), "certificates")

	data, err := ioutil.ReadFile(certificateFileName)
	assert.Nil(t, err, "read")
	block, _ := pem.Decode(data)
	assert.NotNil(t, block, "pem")
	assert.Equal(t, sha3.Sum256(block.Bytes), fingerprint, "fingerprint")

	err = makeSelfSignedCertificate("test", certificateFileName, keyFileName, false, nil)
	assert.Equal(t, fault.ErrCertificateFileExists, err, "existing certificate")

	err = os.Remove(certificateFileName)
	assert.Nil(t, err, "remove")
	err = makeSelfSignedCertificate("test", certificateFileName, keyFileName, false, nil)
	assert.Equal(t, fault.ErrKeyFileExists, err, "existing key")
}

func TestLoadCertificateMissing(t *testing.T) {
	dir := t.TempDir()
	_, _, err := loadCertificate(filepath.Join(dir, "none.crt"), filepath.Join(dir, "none.key"))
	assert.Equal(t, fault.ErrNotFound, err, "missing")
}

func TestGetFilenameWithDirectory(t *testing.T) {
	assert.Equal(t, httpCertificateFilename, getFilenameWithDirectory(nil, httpCertificateFilename), "default")
	assert.Equal(t, filepath.Join("/etc/bwsd", httpPrivateKeyFilename), getFilenameWithDirectory([]string{"/etc/bwsd", "10.0.0.1"}, httpPrivateKeyFilename), "directory")
}
