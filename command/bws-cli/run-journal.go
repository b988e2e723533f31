// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/urfave/cli"
)

// journal [ID] [--failed|--reference R|--recent N]
func runJournal(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	id := c.Args().Get(0)
	ref := c.String("reference")
	failed := c.Bool("failed")
	recent := c.Int("recent")

	selected := 0
	for _, b := range []bool{"" != id, "" != ref, failed, 0 != recent} {
		if b {
			selected += 1
		}
	}
	if selected > 1 {
		return errConflictingSearch
	}

	j, err := m.openJournal()
	if nil != err {
		return err
	}

	switch {
	case "" != id:
		entry, err := j.Get(id)
		if nil != err {
			return err
		}
		return printJson(m.w, entry)

	case "" != ref:
		entry, err := j.FindReference(ref)
		if nil != err {
			return err
		}
		return printJson(m.w, entry)

	case 0 != recent:
		entries, err := j.Recent(recent)
		if nil != err {
			return err
		}
		return printJson(m.w, entries)

	default:
		entries, err := j.List(failed)
		if nil != err {
			return err
		}
		return printJson(m.w, entries)
	}
}
