// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package transfer contains the cp and mv commands.
package transfer

import (
	"context"

	"github.com/matt-FFFFFF/shuttle/cmd/cmdflags"
	"github.com/matt-FFFFFF/shuttle/internal/job"
	"github.com/urfave/cli/v3"
)

// NewCopyCmd returns the cp command.
func NewCopyCmd() *cli.Command {
	return &cli.Command{
		Name:      "cp",
		Aliases:   []string{"copy"},
		Usage:     "Copy files",
		ArgsUsage: "SRC... DST",
		Description: `Copy one or more files. With several sources DST must be a directory.
The copy keeps the permission bits of the source.`,
		Action: action(job.ModeCopy),
	}
}

// NewMoveCmd returns the mv command.
func NewMoveCmd() *cli.Command {
	return &cli.Command{
		Name:      "mv",
		Aliases:   []string{"move"},
		Usage:     "Move files",
		ArgsUsage: "SRC... DST",
		Description: `Move one or more files. With several sources DST must be a directory.
Moves across filesystems are done by copying and then removing the source.`,
		Action: action(job.ModeMove),
	}
}

func action(mode job.Mode) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		args := cmd.Args().Slice()
		if len(args) < 2 { //nolint:mnd
			return cli.Exit("Please provide at least one source and a destination", 1)
		}

		last := len(args) - 1

		plan, err := job.NewPlan(args[:last], args[last], mode)
		if err != nil {
			return cli.Exit(err.Error(), 1)
		}

		if err := cmdflags.ApplyProgress(cmd, plan); err != nil {
			return err
		}

		return cmdflags.Execute(ctx, cmd, plan)
	}
}
