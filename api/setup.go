// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/bwsdata/counter"
	"github.com/bitmark-inc/bwsdata/datastore"
	"github.com/bitmark-inc/bwsdata/fault"
	"github.com/bitmark-inc/bwsdata/journal"
)

// limits
const (
	defaultBlocks = 10
	maximumBlocks = 100
)

// Manager - the datastore operations served
type Manager interface {
	Store(ctx context.Context, payload []byte, options *datastore.StoreOptions) (*datastore.StoreResult, error)
	Retrieve(ctx context.Context, ref string, maxBlocks int) ([]datastore.Result, error)
	Send(ctx context.Context, address string, amount string, data []byte) (*datastore.SendResult, error)
}

// Attempts - read access to the store journal
type Attempts interface {
	Get(id string) (*journal.Entry, error)
	List(failedOnly bool) ([]journal.Entry, error)
}

// Configuration - server settings
type Configuration struct {
	Chain     string
	Version   string
	Rate      float64 // requests per second for each endpoint
	Burst     int
	MaxBlocks int // blocks scanned when a retrieve gives no count
}

// Server - the HTTP handlers and their limits
type Server struct {
	log       *logger.L
	manager   Manager
	attempts  Attempts
	chain     string
	version   string
	start     time.Time
	maxBlocks int
	requests  counter.Gauge

	storeLimiter    *rate.Limiter
	retrieveLimiter *rate.Limiter
	sendLimiter     *rate.Limiter
	journalLimiter  *rate.Limiter
}

// New - create a server, attempts may be nil when no journal is kept
func New(manager Manager, attempts Attempts, configuration *Configuration) (*Server, error) {
	if nil == manager || nil == configuration {
		return nil, fault.ErrMissingParameters
	}
	if configuration.Rate <= 0 || configuration.Burst < 1 {
		return nil, fault.ErrInvalidCount
	}

	maxBlocks := configuration.MaxBlocks
	if maxBlocks <= 0 {
		maxBlocks = defaultBlocks
	}
	if maxBlocks > maximumBlocks {
		return nil, fault.ErrInvalidCount
	}

	s := &Server{
		log:       logger.New("api"),
		manager:   manager,
		attempts:  attempts,
		chain:     configuration.Chain,
		version:   configuration.Version,
		start:     time.Now(),
		maxBlocks: maxBlocks,

		storeLimiter:   rate.NewLimiter(rate.Limit(configuration.Rate), configuration.Burst),
		sendLimiter:    rate.NewLimiter(rate.Limit(configuration.Rate), configuration.Burst),
		journalLimiter: rate.NewLimiter(rate.Limit(configuration.Rate), configuration.Burst),

		// retrieve costs one unit per block scanned
		retrieveLimiter: rate.NewLimiter(rate.Limit(configuration.Rate*float64(maxBlocks)), maximumBlocks*configuration.Burst),
	}
	return s, nil
}

// SetRate - change the request rate of every endpoint
func (s *Server) SetRate(requestsPerSecond float64) error {
	if requestsPerSecond <= 0 {
		return fault.ErrInvalidCount
	}
	now := time.Now()
	s.storeLimiter.SetLimitAt(now, rate.Limit(requestsPerSecond))
	s.sendLimiter.SetLimitAt(now, rate.Limit(requestsPerSecond))
	s.journalLimiter.SetLimitAt(now, rate.Limit(requestsPerSecond))
	s.retrieveLimiter.SetLimitAt(now, rate.Limit(requestsPerSecond*float64(s.maxBlocks)))
	s.log.Infof("rate: %g requests/s", requestsPerSecond)
	return nil
}

// Handler - the router for all endpoints
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		sendNotFound(w)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		sendMethodNotAllowed(w)
	})

	r.Route("/v1", func(r chi.Router) {
		r.Post("/store", s.store)
		r.Get("/retrieve/{reference}", s.retrieve)
		r.Post("/send", s.send)
		r.Get("/journal", s.journalList)
		r.Get("/journal/{id}", s.journalGet)
		r.Get("/details", s.details)
	})
	return r
}

// count and log every request
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.requests.Enter()
		defer s.requests.Leave()

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)

		s.log.Infof("%s %s  from: %s  status: %d  bytes: %d  elapsed: %s",
			r.Method, r.URL.Path, r.RemoteAddr, ww.Status(), ww.BytesWritten(), time.Since(start))
	})
}
