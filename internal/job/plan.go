// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package job

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/hashicorp/hcl/v2/hclsimple"
	"github.com/matt-FFFFFF/shuttle/internal/ctxlog"
	"github.com/matt-FFFFFF/shuttle/internal/filetransfer"
	"github.com/spf13/afero"
)

var (
	// ErrReadPlan is returned when the plan file cannot be read.
	ErrReadPlan = errors.New("failed to read plan file")
	// ErrDecodePlan is returned when the plan file cannot be decoded.
	ErrDecodePlan = errors.New("failed to decode plan file")
	// ErrUnknownPlanFormat is returned for plan files that are neither YAML nor HCL.
	ErrUnknownPlanFormat = errors.New("unknown plan file format, expected .yaml, .yml or .hcl")
	// ErrInvalidPlan is returned when a plan fails validation.
	ErrInvalidPlan = errors.New("invalid plan")
	// ErrUnknownMode is returned for a transfer mode other than copy or move.
	ErrUnknownMode = errors.New("unknown transfer mode")
	// ErrDestinationNotDir is returned when several sources are given and the destination is not a directory.
	ErrDestinationNotDir = errors.New("destination is not a directory")
)

// FsFactory returns the filesystem used to read plan files and inspect sources.
// It defaults to filetransfer.FS so that plans and transfers see the same files.
var FsFactory = func() afero.Fs {
	return filetransfer.FS
}

// Mode selects what happens to the source of a transfer.
type Mode int

const (
	// ModeCopy leaves the source in place.
	ModeCopy Mode = iota
	// ModeMove removes the source once the destination is complete.
	ModeMove
)

// String implements the Stringer interface for Mode.
func (m Mode) String() string {
	switch m {
	case ModeCopy:
		return "copy"
	case ModeMove:
		return "move"
	default:
		return "unknown"
	}
}

// ParseMode converts "copy"/"cp" or "move"/"mv" to a Mode. An empty string is a copy.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "copy", "cp":
		return ModeCopy, nil
	case "move", "mv":
		return ModeMove, nil
	default:
		return ModeCopy, fmt.Errorf("%w: %q", ErrUnknownMode, s)
	}
}

// Transfer is a single file copy or move.
type Transfer struct {
	Source      string
	Destination string
	Mode        Mode
}

// ProgressSettings configures the progress reporter of a run.
type ProgressSettings struct {
	// Prefix is printed once before the first percentage.
	Prefix string
	// InitialStep is the number of bytes after which the clock is first checked.
	InitialStep uint64
	// Interval is the target time between progress checks.
	Interval time.Duration
	// MinInterval is the minimum time between two printed reports.
	MinInterval time.Duration
}

// DefaultProgressSettings returns the settings used when a plan does not override them.
func DefaultProgressSettings() ProgressSettings {
	return ProgressSettings{
		InitialStep: 4096,
		Interval:    time.Second,
		MinInterval: 100 * time.Millisecond,
	}
}

// Validate checks that the reporter can be tuned with these settings.
// Interval is truncated to milliseconds by the reporter, so it must be at least 1ms.
func (s ProgressSettings) Validate() error {
	if s.InitialStep == 0 {
		return fmt.Errorf("%w: progress initial step must be greater than zero", ErrInvalidPlan)
	}

	if s.Interval < time.Millisecond {
		return fmt.Errorf("%w: progress interval must be at least 1ms, got %s", ErrInvalidPlan, s.Interval)
	}

	if s.MinInterval < 0 {
		return fmt.Errorf("%w: progress min interval must not be negative, got %s", ErrInvalidPlan, s.MinInterval)
	}

	return nil
}

// Plan is an ordered list of transfers.
type Plan struct {
	Transfers []Transfer
	Progress  ProgressSettings
}

// Validate checks that the plan has transfers, that none has an empty path
// and that its progress settings are in range.
func (p *Plan) Validate() error {
	if len(p.Transfers) == 0 {
		return fmt.Errorf("%w: no transfers", ErrInvalidPlan)
	}

	for i, t := range p.Transfers {
		if t.Source == "" {
			return fmt.Errorf("%w: transfer %d has no source", ErrInvalidPlan, i)
		}

		if t.Destination == "" {
			return fmt.Errorf("%w: transfer %d has no destination", ErrInvalidPlan, i)
		}
	}

	return p.Progress.Validate()
}

// NewPlan builds a plan transferring each source to destination.
// If destination is an existing directory, or there is more than one source,
// each file lands in destination under its own base name.
func NewPlan(sources []string, destination string, mode Mode) (*Plan, error) {
	info, err := FsFactory().Stat(destination)
	isDir := err == nil && info.IsDir()

	if len(sources) > 1 && !isDir {
		return nil, fmt.Errorf("%w: %s", ErrDestinationNotDir, destination)
	}

	plan := &Plan{
		Progress: DefaultProgressSettings(),
	}

	for _, src := range sources {
		dst := destination
		if isDir {
			dst = filepath.Join(destination, filepath.Base(src))
		}

		plan.Transfers = append(plan.Transfers, Transfer{
			Source:      src,
			Destination: dst,
			Mode:        mode,
		})
	}

	if err := plan.Validate(); err != nil {
		return nil, err
	}

	return plan, nil
}

// LoadPlan reads and validates a plan file. The format is chosen by extension.
func LoadPlan(ctx context.Context, path string) (*Plan, error) {
	data, err := afero.ReadFile(FsFactory(), path)
	if err != nil {
		return nil, errors.Join(ErrReadPlan, err)
	}

	ctxlog.Debug(ctx, "loading plan", "path", path, "bytes", len(data))

	return ParsePlan(path, data)
}

// ParsePlan decodes a plan from data. filename is used to pick the format and in error messages.
func ParsePlan(filename string, data []byte) (*Plan, error) {
	var pf planFile

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		if err := yaml.UnmarshalWithOptions(data, &pf, yaml.DisallowUnknownField()); err != nil {
			return nil, errors.Join(ErrDecodePlan, err)
		}
	case ".hcl":
		if err := hclsimple.Decode(filename, data, nil, &pf); err != nil {
			return nil, errors.Join(ErrDecodePlan, err)
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownPlanFormat, filename)
	}

	plan, err := pf.toPlan()
	if err != nil {
		return nil, errors.Join(ErrDecodePlan, err)
	}

	if err := plan.Validate(); err != nil {
		return nil, err
	}

	return plan, nil
}

// planFile is the on-disk shape shared by the YAML and HCL formats.
type planFile struct {
	Progress  *progressFile  `yaml:"progress" hcl:"progress,block"`
	Transfers []transferFile `yaml:"transfers" hcl:"transfer,block"`
}

type progressFile struct {
	Prefix      string  `yaml:"prefix" hcl:"prefix,optional"`
	InitialStep *uint64 `yaml:"initial_step" hcl:"initial_step,optional"`
	Interval    string  `yaml:"interval" hcl:"interval,optional"`
	MinInterval string  `yaml:"min_interval" hcl:"min_interval,optional"`
}

type transferFile struct {
	Source      string `yaml:"source" hcl:"source"`
	Destination string `yaml:"destination" hcl:"destination"`
	Mode        string `yaml:"mode" hcl:"mode,optional"`
}

func (pf *planFile) toPlan() (*Plan, error) {
	plan := &Plan{
		Progress: DefaultProgressSettings(),
	}

	if p := pf.Progress; p != nil {
		plan.Progress.Prefix = p.Prefix

		if p.InitialStep != nil {
			plan.Progress.InitialStep = *p.InitialStep
		}

		if err := parseDuration(p.Interval, &plan.Progress.Interval); err != nil {
			return nil, fmt.Errorf("progress interval: %w", err)
		}

		if err := parseDuration(p.MinInterval, &plan.Progress.MinInterval); err != nil {
			return nil, fmt.Errorf("progress min_interval: %w", err)
		}
	}

	for _, t := range pf.Transfers {
		mode, err := ParseMode(t.Mode)
		if err != nil {
			return nil, err
		}

		plan.Transfers = append(plan.Transfers, Transfer{
			Source:      t.Source,
			Destination: t.Destination,
			Mode:        mode,
		})
	}

	return plan, nil
}

// parseDuration sets *d when s is not empty.
func parseDuration(s string, d *time.Duration) error {
	if s == "" {
		return nil
	}

	v, err := time.ParseDuration(s)
	if err != nil {
		return err //nolint:wrapcheck
	}

	*d = v

	return nil
}
