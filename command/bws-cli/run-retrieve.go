// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/bwsdata/background"
)

func runRetrieve(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	ref := c.String("reference")
	if "" == ref {
		return errMissingReference
	}

	manager, err := m.connect()
	if nil != err {
		return err
	}

	ctx, cancel := interruptible()
	defer cancel()

	results, err := manager.Retrieve(ctx, ref, c.Int("blocks"))
	if nil != err {
		return err
	}

	if c.Bool("raw") {
		if 0 == len(results) || !results[0].Complete {
			return errIncomplete
		}
		_, err := m.w.Write(results[0].Payload)
		return err
	}

	if m.verbose {
		fmt.Fprintf(m.e, "results: %d\n", len(results))
	}
	return printJson(m.w, results)
}

// run a watcher as a background process so an interrupt stops it
// cleanly
func runWatch(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	ref := c.String("reference")
	if "" == ref {
		return errMissingReference
	}

	manager, err := m.connect()
	if nil != err {
		return err
	}

	watcher := manager.NewWatcher(ref, c.Int("blocks"), m.config.WatchPeriod())
	processes := background.Start(background.Processes{watcher}, nil)

	ctx, cancel := interruptible()
	defer cancel()
	if timeout := c.Duration("timeout"); timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	select {
	case <-watcher.Done():
	case <-ctx.Done():
		if m.verbose {
			fmt.Fprintf(m.e, "watch: %s\n", ctx.Err())
		}
	}
	processes.Stop()

	result, err := watcher.Result()
	if nil != result {
		printJson(m.w, result)
	}
	return err
}
