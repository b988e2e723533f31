// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package bitcoin

import (
	"net/http"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/bwsdata/fault"
)

// defaults
const (
	defaultTimeout   = 10 * time.Second
	defaultParallel  = 4
	maximumBlockRate = 500.0 // blocks per second

	blockCacheExpiry  = 10 * time.Minute
	blockCacheCleanup = 20 * time.Minute
)

// Configuration - node access
type Configuration struct {
	URL      string
	Username string
	Password string
	Timeout  time.Duration // per call, zero for the default
	Parallel int           // concurrent block fetches, zero for the default
}

// Client - a connection to one node
type Client struct {
	log *logger.L

	// connection to the node
	client   *http.Client
	url      string
	username string
	password string
	timeout  time.Duration

	// last request id
	id uint64

	// block scanning
	parallel int
	limiter  *rate.Limiter
	blocks   *cache.Cache
}

// New - create a client, no node access happens until the first call
func New(configuration *Configuration) (*Client, error) {
	if nil == configuration || "" == configuration.URL {
		return nil, fault.ErrMissingParameters
	}

	log := logger.New("bitcoin")
	log.Infof("node: %s", configuration.URL)

	timeout := configuration.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	parallel := configuration.Parallel
	if parallel <= 0 {
		parallel = defaultParallel
	}

	return &Client{
		log:      log,
		client:   &http.Client{},
		url:      configuration.URL,
		username: configuration.Username,
		password: configuration.Password,
		timeout:  timeout,
		parallel: parallel,
		limiter:  rate.NewLimiter(maximumBlockRate, parallel),
		blocks:   cache.New(blockCacheExpiry, blockCacheCleanup),
	}, nil
}
