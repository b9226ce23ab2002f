// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package cmdflags holds the flags shared by the transfer commands and turns
// them into a configured job.Runner.
package cmdflags

import (
	"context"
	"fmt"

	"github.com/matt-FFFFFF/shuttle/internal/color"
	"github.com/matt-FFFFFF/shuttle/internal/ctxlog"
	"github.com/matt-FFFFFF/shuttle/internal/job"
	"github.com/matt-FFFFFF/shuttle/internal/progress"
	"github.com/urfave/cli/v3"
)

const (
	// ProgressFlag enables progress output on stderr.
	ProgressFlag = "progress"
	// PrefixFlag is printed before the first percentage.
	PrefixFlag = "prefix"
	// ReportIntervalFlag is the target time between progress checks.
	ReportIntervalFlag = "report-interval"
	// MinReportIntervalFlag is the minimum time between two progress reports.
	MinReportIntervalFlag = "min-report-interval"
	// KeepGoingFlag continues after a failed transfer.
	KeepGoingFlag = "keep-going"
	// InteractiveFlag asks before overwriting existing files.
	InteractiveFlag = "interactive"
	// LogLevelFlag overrides the log level environment variable.
	LogLevelFlag = "log-level"
)

// Flags returns the flags shared by every transfer command.
// They are persistent, so they are accepted after the subcommand name as well.
func Flags() []cli.Flag {
	defaults := job.DefaultProgressSettings()

	return []cli.Flag{
		&cli.BoolFlag{
			Name:  ProgressFlag,
			Usage: "Print progress percentages to stderr",
			Value: true,
		},
		&cli.StringFlag{
			Name:  PrefixFlag,
			Usage: "Text printed before the first progress percentage",
		},
		&cli.DurationFlag{
			Name:  ReportIntervalFlag,
			Usage: "Target time between progress checks",
			Value: defaults.Interval,
		},
		&cli.DurationFlag{
			Name:  MinReportIntervalFlag,
			Usage: "Minimum time between two progress reports",
			Value: defaults.MinInterval,
		},
		&cli.BoolFlag{
			Name:    KeepGoingFlag,
			Aliases: []string{"k"},
			Usage:   "Continue with the remaining files after a failure",
		},
		&cli.BoolFlag{
			Name:    InteractiveFlag,
			Aliases: []string{"i"},
			Usage:   "Ask before overwriting an existing destination",
		},
		&cli.StringFlag{
			Name:  LogLevelFlag,
			Usage: "Log level (debug, info, warn, error), overrides " + ctxlog.EnvVarName(),
		},
	}
}

// ApplyLogLevel sets the process log level from --log-level, if given.
func ApplyLogLevel(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	if !cmd.IsSet(LogLevelFlag) {
		return ctx, nil
	}

	level, ok := ctxlog.ParseLevel(cmd.String(LogLevelFlag))
	if !ok {
		return ctx, cli.Exit("unknown log level: "+cmd.String(LogLevelFlag), 1)
	}

	ctxlog.LevelVar.Set(level)

	return ctx, nil
}

// ApplyProgress overrides the progress settings of plan with the flags set on
// the command line and checks that the result is in range.
func ApplyProgress(cmd *cli.Command, plan *job.Plan) error {
	if cmd.IsSet(PrefixFlag) {
		plan.Progress.Prefix = cmd.String(PrefixFlag)
	}

	if cmd.IsSet(ReportIntervalFlag) {
		plan.Progress.Interval = cmd.Duration(ReportIntervalFlag)
	}

	if cmd.IsSet(MinReportIntervalFlag) {
		plan.Progress.MinInterval = cmd.Duration(MinReportIntervalFlag)
	}

	if err := plan.Progress.Validate(); err != nil {
		return cli.Exit(err.Error(), 1)
	}

	return nil
}

// NewRunner builds a job.Runner from the command flags.
func NewRunner(cmd *cli.Command) *job.Runner {
	r := &job.Runner{
		KeepGoing: cmd.Bool(KeepGoingFlag),
	}

	if cmd.Bool(ProgressFlag) {
		r.Sink = progress.NewWriterSink(cmd.Root().ErrWriter, color.Enabled())
	}

	if cmd.Bool(InteractiveFlag) {
		r.Confirm = NewConfirm(cmd.Root().ErrWriter)
	}

	return r
}

// Execute runs plan with a runner built from the command flags and prints the summary.
func Execute(ctx context.Context, cmd *cli.Command, plan *job.Plan) error {
	summary, err := NewRunner(cmd).Run(ctx, plan)

	if _, werr := fmt.Fprintln(cmd.Root().Writer, summary.String()); werr != nil {
		ctxlog.Debug(ctx, "cannot write summary", "error", werr.Error())
	}

	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	return nil
}
