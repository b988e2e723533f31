// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"crypto/tls"
	"io/ioutil"
	"os"
	"time"

	"github.com/bitmark-inc/certgen"
	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/bwsdata/fault"
	"github.com/bitmark-inc/bwsdata/util"
)

const certificateLifetime = 10 * 365 * 24 * time.Hour

// create a self-signed certificate
func makeSelfSignedCertificate(name string, certificateFileName string, privateKeyFileName string, override bool, extraHosts []string) error {

	if util.RegularFileExists(certificateFileName) {
		return fault.ErrCertificateFileExists
	}

	if util.RegularFileExists(privateKeyFileName) {
		return fault.ErrKeyFileExists
	}

	org := "bwsd self signed cert for: " + name
	validUntil := time.Now().Add(certificateLifetime)
	cert, key, err := certgen.NewTLSCertPair(org, validUntil, override, extraHosts)
	if err != nil {
		return err
	}

	if err = ioutil.WriteFile(certificateFileName, cert, 0666); err != nil {
		return err
	}

	if err = ioutil.WriteFile(privateKeyFileName, key, 0600); err != nil {
		os.Remove(certificateFileName)
		return err
	}

	return nil
}

// load a key pair for the HTTPS listener
func loadCertificate(certificateFileName string, privateKeyFileName string) (*tls.Config, [32]byte, error) {
	var fingerprint [32]byte

	if !util.RegularFileExists(certificateFileName) {
		return nil, fingerprint, fault.ErrNotFound
	}
	if !util.RegularFileExists(privateKeyFileName) {
		return nil, fingerprint, fault.ErrNotFound
	}

	keyPair, err := tls.LoadX509KeyPair(certificateFileName, privateKeyFileName)
	if err != nil {
		return nil, fingerprint, err
	}

	fingerprint = certificateFingerprint(keyPair.Certificate[0])

	tlsConfiguration := &tls.Config{
		Certificates: []tls.Certificate{
			keyPair,
		},
		MinVersion: tls.VersionTLS12,
	}
	return tlsConfiguration, fingerprint, nil
}

// compute the fingerprint of a certificate
//
// openssl x509 -outform DER -in bwsd-http.crt | sha3sum -a 256
func certificateFingerprint(certificate []byte) [32]byte {
	return sha3.Sum256(certificate)
}
