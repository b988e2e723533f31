// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
)

// command errors
var (
	errPayloadSource     = errors.New("exactly one of string, hex or file is required")
	errEnvelopeSource    = errors.New("only one of envelope or message is allowed")
	errMissingReference  = errors.New("reference is required")
	errMissingArgument   = errors.New("one argument is required")
	errIncomplete        = errors.New("payload is not complete")
	errConflictingSearch = errors.New("only one of id, reference, failed or recent is allowed")
)

// a context cancelled by SIGINT or SIGTERM
func interruptible() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}
