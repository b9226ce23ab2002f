// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package run contains the command that executes a plan file.
package run

import (
	"context"
	"fmt"

	"github.com/matt-FFFFFF/shuttle/cmd/cmdflags"
	"github.com/matt-FFFFFF/shuttle/internal/job"
	"github.com/urfave/cli/v3"
)

// NewRunCmd returns the command that runs the transfers listed in a YAML or HCL file.
func NewRunCmd() *cli.Command {
	return &cli.Command{
		Name:      "run",
		Usage:     "Run the transfers defined in a plan file",
		ArgsUsage: "PLANFILE",
		Description: `Run the transfers listed in a YAML (.yaml, .yml) or HCL (.hcl) plan file, in order.
PLANFILE is a local path or any URL understood by Hashicorp's go-getter,
see https://github.com/hashicorp/go-getter.
Progress flags given on the command line override the plan's progress settings.`,
		Action: actionFunc,
	}
}

func actionFunc(ctx context.Context, cmd *cli.Command) error {
	planFile := cmd.Args().First()
	if planFile == "" {
		return cli.Exit("Please provide a plan file to run", 1)
	}

	plan, err := job.FetchPlan(ctx, planFile)
	if err != nil {
		return cli.Exit(fmt.Sprintf("failed to load plan %s: %s", planFile, err.Error()), 1)
	}

	if err := cmdflags.ApplyProgress(cmd, plan); err != nil {
		return err
	}

	return cmdflags.Execute(ctx, cmd, plan)
}
