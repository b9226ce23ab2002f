// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package job

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/matt-FFFFFF/shuttle/internal/ctxlog"
	"github.com/matt-FFFFFF/shuttle/internal/filetransfer"
	"github.com/matt-FFFFFF/shuttle/internal/progress"
)

var (
	// ErrCancelled is returned when the context is cancelled between transfers.
	ErrCancelled = errors.New("run cancelled")
	// ErrConfirm is returned when asking for overwrite confirmation fails.
	ErrConfirm = errors.New("failed to confirm overwrite")
)

// ConfirmFunc is asked before a transfer overwrites an existing destination.
// Returning false skips the transfer.
type ConfirmFunc func(ctx context.Context, t Transfer) (bool, error)

// Runner executes plans.
type Runner struct {
	// Sink receives progress output. Nil disables progress output.
	Sink progress.Sink
	// KeepGoing continues with the remaining transfers after a failure.
	KeepGoing bool
	// Confirm, if set, is asked before overwriting an existing destination.
	Confirm ConfirmFunc
	// Clock overrides the wall clock used by the progress reporter.
	Clock func() time.Time
}

// Summary counts what a run did.
type Summary struct {
	Copied  int
	Moved   int
	Skipped int
	Failed  int
	// Bytes is the total size of the files copied or moved.
	Bytes uint64
}

// String implements the Stringer interface for Summary.
func (s Summary) String() string {
	return fmt.Sprintf("copied %d, moved %d, skipped %d, failed %d (%s)",
		s.Copied, s.Moved, s.Skipped, s.Failed, formatBytes(s.Bytes))
}

// Run executes the transfers of plan in order, reporting progress in bytes.
// Progress advances as each chunk of a file is written. Bytes that were never
// written, because a transfer was skipped, failed or was a same-device rename,
// are reported once the transfer is done so the total always reaches the sum
// of the source sizes.
//
// Without KeepGoing the first failure stops the run and is returned as is.
// With KeepGoing every failure is collected and a *multierror.Error is returned.
// The context is checked before each transfer; a transfer in flight is never interrupted.
func (r *Runner) Run(ctx context.Context, plan *Plan) (Summary, error) {
	var summary Summary

	if err := plan.Validate(); err != nil {
		return summary, err
	}

	sizes, total := r.sizes(ctx, plan)

	opts := []progress.Option{progress.WithPrefix(plan.Progress.Prefix)}
	if r.Clock != nil {
		opts = append(opts, progress.WithClock(r.Clock))
	}

	reporter := progress.NewReporter(r.Sink, opts...)
	reporter.Init(total, plan.Progress.InitialStep, plan.Progress.Interval, plan.Progress.MinInterval)

	ctxlog.Info(ctx, "starting transfers", "count", len(plan.Transfers), "bytes", total)

	var errs *multierror.Error

	for i, t := range plan.Transfers {
		if err := ctx.Err(); err != nil {
			errs = multierror.Append(errs, errors.Join(ErrCancelled, err))
			break
		}

		proceed, err := r.confirm(ctx, t)
		if err != nil {
			errs = multierror.Append(errs, errors.Join(ErrConfirm, err))
			break
		}

		if !proceed {
			ctxlog.Info(ctx, "skipped transfer", "src", t.Source, "dst", t.Destination)
			summary.Skipped++
			reporter.Report(sizes[i])

			continue
		}

		var written uint64

		chunk := filetransfer.WithProgress(func(n int64) {
			written += uint64(n)
			reporter.Report(uint64(n))
		})

		if err := execute(ctx, t, chunk); err != nil {
			ctxlog.Debug(ctx, "transfer failed", "src", t.Source, "dst", t.Destination, "error", err.Error())
			summary.Failed++
			errs = multierror.Append(errs, err)

			if !r.KeepGoing {
				break
			}

			reporter.Report(remaining(sizes[i], written))

			continue
		}

		switch t.Mode {
		case ModeMove:
			summary.Moved++
		default:
			summary.Copied++
		}

		summary.Bytes += sizes[i]
		reporter.Report(remaining(sizes[i], written))
	}

	if errs != nil {
		reporter.Abort()

		if !r.KeepGoing && len(errs.Errors) == 1 {
			return summary, errs.Errors[0]
		}

		return summary, errs
	}

	reporter.ReportLast()
	ctxlog.Info(ctx, "transfers complete", "summary", summary.String())

	return summary, nil
}

// sizes returns the size of every source and their sum. Sources that cannot
// be stat-ed count as zero bytes, their transfer fails later with a proper error.
func (r *Runner) sizes(ctx context.Context, plan *Plan) ([]uint64, uint64) {
	fs := FsFactory()
	sizes := make([]uint64, len(plan.Transfers))

	var total uint64

	for i, t := range plan.Transfers {
		info, err := fs.Stat(t.Source)
		if err != nil {
			ctxlog.Debug(ctx, "cannot stat source", "src", t.Source, "error", err.Error())
			continue
		}

		if info.Mode().IsRegular() {
			sizes[i] = uint64(info.Size())
			total += sizes[i]
		}
	}

	return sizes, total
}

func (r *Runner) confirm(ctx context.Context, t Transfer) (bool, error) {
	if r.Confirm == nil {
		return true, nil
	}

	if _, err := FsFactory().Stat(t.Destination); err != nil {
		return true, nil //nolint:nilerr
	}

	return r.Confirm(ctx, t)
}

// remaining returns the part of size not yet reported, zero if a file grew while it was copied.
func remaining(size, written uint64) uint64 {
	if written >= size {
		return 0
	}

	return size - written
}

func execute(ctx context.Context, t Transfer, opts ...filetransfer.Option) error {
	switch t.Mode {
	case ModeCopy:
		return filetransfer.CopyFile(ctx, t.Source, t.Destination, opts...)
	case ModeMove:
		return filetransfer.MoveFile(ctx, t.Source, t.Destination, opts...)
	default:
		return fmt.Errorf("%w: %d", ErrUnknownMode, t.Mode)
	}
}

// formatBytes formats bytes as a human-readable string.
func formatBytes(b uint64) string {
	const (
		KB = 1024
		MB = KB * 1024
		GB = MB * 1024
		TB = GB * 1024
	)

	switch {
	case b >= TB:
		return fmt.Sprintf("%.2f TB", float64(b)/float64(TB))
	case b >= GB:
		return fmt.Sprintf("%.2f GB", float64(b)/float64(GB))
	case b >= MB:
		return fmt.Sprintf("%.2f MB", float64(b)/float64(MB))
	case b >= KB:
		return fmt.Sprintf("%.2f KB", float64(b)/float64(KB))
	default:
		return fmt.Sprintf("%d B", b)
	}
}
