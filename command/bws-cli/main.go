// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/urfave/cli"

	"github.com/bitmark-inc/bwsdata/chain"
)

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

func main() {
	// ensure exit handler is first
	defer exitwithstatus.Handler()

	app := newApp(os.Stdout, os.Stderr)
	if err := app.Run(os.Args); nil != err {
		exitwithstatus.Message("%s: error: %s", app.Name, err)
	}
}

func newApp(w io.Writer, e io.Writer) *cli.App {

	app := cli.NewApp()
	app.Name = "bws-cli"
	app.Usage = "store and retrieve data in BWS transaction outputs"
	app.Version = version
	app.HideVersion = true

	app.Writer = w
	app.ErrWriter = e

	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "verbose, v",
			Usage: " verbose result",
		},
		cli.StringFlag{
			Name:  "config, c",
			Value: "",
			Usage: " read configuration from `FILE`",
		},
		cli.StringFlag{
			Name:  "chain, n",
			Value: chain.Mainnet,
			Usage: " use `CHAIN` [mainnet|testnet|local]",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:      "store",
			Usage:     "store a payload, chunked when necessary",
			ArgsUsage: "\n   (* = required, only one of string/hex/file)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "string, s",
					Value: "",
					Usage: "*payload `STRING`",
				},
				cli.StringFlag{
					Name:  "hex, x",
					Value: "",
					Usage: "*payload as `HEX`",
				},
				cli.StringFlag{
					Name:  "file, f",
					Value: "",
					Usage: "*read payload from `FILE`",
				},
				cli.StringFlag{
					Name:  "action, a",
					Value: "store",
					Usage: " envelope `ACTION` [store|grant|revoke]",
				},
				cli.StringFlag{
					Name:  "fee",
					Value: "",
					Usage: " per transaction `FEE` in coins",
				},
			},
			Action: runStore,
		},
		{
			Name:      "retrieve",
			Usage:     "reassemble the payload for a reference",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "reference, r",
					Value: "",
					Usage: "*`REFERENCE` hex or base58",
				},
				cli.IntFlag{
					Name:  "blocks, b",
					Value: 0,
					Usage: " search the last `COUNT` blocks",
				},
				cli.BoolFlag{
					Name:  "raw",
					Usage: " write only the payload bytes",
				},
			},
			Action: runRetrieve,
		},
		{
			Name:      "watch",
			Usage:     "wait until every chunk of a reference is confirmed",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "reference, r",
					Value: "",
					Usage: "*`REFERENCE` hex or base58",
				},
				cli.IntFlag{
					Name:  "blocks, b",
					Value: 0,
					Usage: " search the last `COUNT` blocks",
				},
				cli.DurationFlag{
					Name:  "timeout, t",
					Value: 0,
					Usage: " give up after `DURATION`",
				},
			},
			Action: runWatch,
		},
		{
			Name:      "send",
			Usage:     "pay an address with an optional envelope attached",
			ArgsUsage: "\n   (* = required, only one of envelope/message)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "address, a",
					Value: "",
					Usage: "*pay to `ADDRESS`",
				},
				cli.StringFlag{
					Name:  "amount, m",
					Value: "",
					Usage: "*`AMOUNT` in coins",
				},
				cli.StringFlag{
					Name:  "envelope, e",
					Value: "",
					Usage: " packed envelope as `HEX`",
				},
				cli.StringFlag{
					Name:  "message, s",
					Value: "",
					Usage: " encode `STRING` as a single store envelope",
				},
			},
			Action: runSend,
		},
		{
			Name:      "decode",
			Usage:     "decode a packed envelope",
			ArgsUsage: "HEX",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "tag",
					Value: "",
					Usage: " expected `TAG` [default BWS]",
				},
				cli.IntFlag{
					Name:  "envelope-version",
					Value: 0,
					Usage: " expected `VERSION` [default 16]",
				},
			},
			Action: runDecode,
		},
		{
			Name:      "journal",
			Usage:     "show recorded store attempts",
			ArgsUsage: "[ID]",
			Flags: []cli.Flag{
				cli.BoolFlag{
					Name:  "failed",
					Usage: " list only failed attempts",
				},
				cli.StringFlag{
					Name:  "reference, r",
					Value: "",
					Usage: " find the attempt that produced `REFERENCE`",
				},
				cli.IntFlag{
					Name:  "recent",
					Value: 0,
					Usage: " list the newest `COUNT` attempts",
				},
			},
			Action: runJournal,
		},
		{
			Name:  "version",
			Usage: "display bws-cli version",
			Action: func(c *cli.Context) error {
				fmt.Fprintf(c.App.Writer, "%s\n", version)
				return nil
			},
		},
	}

	app.Before = func(c *cli.Context) error {
		m := &metadata{
			verbose:   c.GlobalBool("verbose"),
			chainName: c.GlobalString("chain"),
			file:      c.GlobalString("config"),
			e:         c.App.ErrWriter,
			w:         c.App.Writer,
		}
		if !chain.Valid(m.chainName) {
			return fmt.Errorf("chain: %q can only be mainnet/testnet/local", m.chainName)
		}
		c.App.Metadata = map[string]interface{}{
			"config": m,
		}
		return nil
	}

	app.After = func(c *cli.Context) error {
		if m, ok := c.App.Metadata["config"].(*metadata); ok {
			return m.close()
		}
		return nil
	}

	return app
}
