// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package main is the entry point for the shuttle command-line application.
package main

import (
	"context"
	"os"

	"github.com/matt-FFFFFF/shuttle/cmd"
	"github.com/matt-FFFFFF/shuttle/internal/ctxlog"
	"github.com/matt-FFFFFF/shuttle/internal/signalbroker"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := context.WithCancel(context.Background())
	ctx = ctxlog.New(ctx, ctxlog.DefaultLogger)

	defer cancel()

	sigCh := signalbroker.New(ctx)
	defer signalbroker.Stop(sigCh)

	go signalbroker.Watch(ctx, sigCh, cancel)

	if err := cmd.RootCmd.Run(ctx, os.Args); err != nil {
		ctxlog.Debug(ctx, "command failed", "error", err.Error())
		return 1
	}

	return 0
}
