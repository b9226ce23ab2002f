// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package version contains the version command.
package version

import (
	"context"
	"fmt"

	"github.com/matt-FFFFFF/shuttle"
	"github.com/urfave/cli/v3"
)

// NewVersionCmd returns the command that prints the build version and commit.
func NewVersionCmd() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "Print the version",
		Action: func(_ context.Context, cmd *cli.Command) error {
			_, err := fmt.Fprintf(cmd.Root().Writer, "%s %s (%s)\n", cmd.Root().Name, shuttle.Version, shuttle.Commit)
			return err //nolint:wrapcheck
		},
	}
}
