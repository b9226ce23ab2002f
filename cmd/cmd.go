// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package cmd contains the command-line interface (CLI) for the module.
package cmd

import (
	"os"

	"github.com/matt-FFFFFF/shuttle"
	"github.com/matt-FFFFFF/shuttle/cmd/cmdflags"
	runcmd "github.com/matt-FFFFFF/shuttle/cmd/run"
	"github.com/matt-FFFFFF/shuttle/cmd/transfer"
	"github.com/matt-FFFFFF/shuttle/cmd/version"
	"github.com/urfave/cli/v3"
)

// RootCmd is the root command for the CLI.
var RootCmd = NewRootCmd()

// NewRootCmd returns a fresh root command. A cli.Command keeps parsed state,
// so each run needs its own.
func NewRootCmd() *cli.Command {
	return &cli.Command{
		Commands: []*cli.Command{
			transfer.NewCopyCmd(),
			transfer.NewMoveCmd(),
			runcmd.NewRunCmd(),
			version.NewVersionCmd(),
		},
		Flags:     cmdflags.Flags(),
		Before:    cmdflags.ApplyLogLevel,
		Writer:    os.Stdout,
		ErrWriter: os.Stderr,
		Name:      "shuttle",
		Version:   shuttle.Version,
		Description: `Shuttle copies and moves files, printing throttled progress percentages as it goes.
Moves that cross filesystems fall back to copy and delete, and the copy is
removed again if the source cannot be deleted.`,
		Usage:     "shuttle cp SRC... DST",
		Copyright: "Copyright (c) matt-FFFFFF 2025. All rights reserved.",
		Authors: []any{
			"Matt White (matt-FFFFFF)",
		},
		EnableShellCompletion: true,
	}
}
