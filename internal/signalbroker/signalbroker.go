// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package signalbroker relays termination signals to a running transfer.
// The first signal of a kind is only logged, so an interrupted copy is not left half written.
// A second signal of the same kind cancels the context; the runner then
// stops before the next transfer.
package signalbroker

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/matt-FFFFFF/shuttle/internal/ctxlog"
)

var termSignals = []os.Signal{
	syscall.SIGINT,
	syscall.SIGTERM,
	syscall.SIGQUIT,
}

// New registers a channel for sigs, or for the termination signals if none are given.
// Call Stop once the channel is no longer watched.
func New(ctx context.Context, sigs ...os.Signal) chan os.Signal {
	ch := make(chan os.Signal, 1)

	if len(sigs) == 0 {
		sigs = termSignals
	}

	ctxlog.Debug(ctx, "registering signal handler", "signals", sigs)
	signal.Notify(ch, sigs...)

	return ch
}

// Stop stops relaying signals to ch. The channel is not closed.
func Stop(ch chan os.Signal) {
	signal.Stop(ch)
}
