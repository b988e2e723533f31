// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"crypto/tls"
	"net"
	"net/http"
	"time"

	"github.com/bitmark-inc/logger"
)

// timeouts
const (
	readHeaderTimeout = 10 * time.Second
	writeTimeout      = 5 * time.Minute // a chunked store can be slow
	idleTimeout       = 2 * time.Minute
	shutdownTimeout   = 15 * time.Second
)

// httpServer - serve the api until shutdown
type httpServer struct {
	log      *logger.L
	listener net.Listener
	server   *http.Server
}

// bind now so address errors are reported before going into the
// background
func newHTTPServer(address string, handler http.Handler, tlsConfiguration *tls.Config) (*httpServer, error) {
	log := logger.New("http")

	listener, err := net.Listen("tcp", address)
	if nil != err {
		log.Errorf("listen: %s  error: %s", address, err)
		return nil, err
	}
	if nil != tlsConfiguration {
		listener = tls.NewListener(listener, tlsConfiguration)
	}

	log.Infof("listening on: %s  tls: %t", listener.Addr(), nil != tlsConfiguration)

	return &httpServer{
		log:      log,
		listener: listener,
		server: &http.Server{
			Handler:           handler,
			ReadHeaderTimeout: readHeaderTimeout,
			WriteTimeout:      writeTimeout,
			IdleTimeout:       idleTimeout,
		},
	}, nil
}

// Run - background process
func (s *httpServer) Run(args interface{}, shutdown <-chan struct{}) {
	log := s.log

	done := make(chan struct{})
	go func() {
		defer close(done)
		err := s.server.Serve(s.listener)
		if nil != err && http.ErrServerClosed != err {
			log.Criticalf("serve error: %s", err)
		}
	}()

	select {
	case <-shutdown:
	case <-done:
		return
	}

	log.Info("shutting down…")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.server.Shutdown(ctx); nil != err {
		log.Errorf("shutdown error: %s", err)
	}
	<-done
}

// Addr - the bound address
func (s *httpServer) Addr() net.Addr {
	return s.listener.Addr()
}
