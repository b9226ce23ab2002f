// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package job

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/prashantv/gostub"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const yamlPlan = `progress:
  prefix: "Syncing "
  initial_step: 512
  interval: 2s
  min_interval: 250ms
transfers:
  - source: /data/a.bin
    destination: /backup/a.bin
  - source: /data/b.bin
    destination: /archive/b.bin
    mode: move
`

const hclPlan = `progress {
  prefix = "Syncing "
  interval = "500ms"
}

transfer {
  source      = "/data/a.bin"
  destination = "/backup/a.bin"
}

transfer {
  source      = "/data/b.bin"
  destination = "/archive/b.bin"
  mode        = "mv"
}
`

func TestParseMode(t *testing.T) {
	tcs := []struct {
		in   string
		want Mode
		err  bool
	}{
		{"", ModeCopy, false},
		{"copy", ModeCopy, false},
		{"CP", ModeCopy, false},
		{" move ", ModeMove, false},
		{"mv", ModeMove, false},
		{"link", ModeCopy, true},
	}

	for _, tc := range tcs {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseMode(tc.in)
			if tc.err {
				require.ErrorIs(t, err, ErrUnknownMode)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestMode_String(t *testing.T) {
	assert.Equal(t, "copy", ModeCopy.String())
	assert.Equal(t, "move", ModeMove.String())
	assert.Equal(t, "unknown", Mode(42).String())
}

func TestParsePlan_YAML(t *testing.T) {
	plan, err := ParsePlan("plan.yaml", []byte(yamlPlan))
	require.NoError(t, err)

	assert.Equal(t, ProgressSettings{
		Prefix:      "Syncing ",
		InitialStep: 512,
		Interval:    2 * time.Second,
		MinInterval: 250 * time.Millisecond,
	}, plan.Progress)
	assert.Equal(t, []Transfer{
		{Source: "/data/a.bin", Destination: "/backup/a.bin", Mode: ModeCopy},
		{Source: "/data/b.bin", Destination: "/archive/b.bin", Mode: ModeMove},
	}, plan.Transfers)
}

func TestParsePlan_HCL(t *testing.T) {
	plan, err := ParsePlan("plan.hcl", []byte(hclPlan))
	require.NoError(t, err)

	defaults := DefaultProgressSettings()
	assert.Equal(t, "Syncing ", plan.Progress.Prefix)
	assert.Equal(t, defaults.InitialStep, plan.Progress.InitialStep)
	assert.Equal(t, 500*time.Millisecond, plan.Progress.Interval)
	assert.Equal(t, defaults.MinInterval, plan.Progress.MinInterval)
	assert.Equal(t, []Transfer{
		{Source: "/data/a.bin", Destination: "/backup/a.bin", Mode: ModeCopy},
		{Source: "/data/b.bin", Destination: "/archive/b.bin", Mode: ModeMove},
	}, plan.Transfers)
}

func TestParsePlan_DefaultsWithoutProgress(t *testing.T) {
	plan, err := ParsePlan("plan.yml", []byte("transfers:\n  - source: a\n    destination: b\n"))
	require.NoError(t, err)
	assert.Equal(t, DefaultProgressSettings(), plan.Progress)
}

func TestParsePlan_Errors(t *testing.T) {
	tcs := []struct {
		name     string
		filename string
		data     string
		want     error
	}{
		{"unknown extension", "plan.json", "{}", ErrUnknownPlanFormat},
		{"unknown yaml field", "plan.yaml", "transfers: []\nextra: 1\n", ErrDecodePlan},
		{"bad mode", "plan.yaml", "transfers:\n  - source: a\n    destination: b\n    mode: link\n", ErrUnknownMode},
		{"bad duration", "plan.yaml", "progress:\n  interval: soon\ntransfers:\n  - source: a\n    destination: b\n", ErrDecodePlan},
		{"no transfers", "plan.yaml", "transfers: []\n", ErrInvalidPlan},
		{"missing destination", "plan.yaml", "transfers:\n  - source: a\n", ErrInvalidPlan},
		{"negative interval", "plan.yaml", "progress:\n  interval: -1s\ntransfers:\n  - source: a\n    destination: b\n", ErrInvalidPlan},
		{"zero interval", "plan.yaml", "progress:\n  interval: 0s\ntransfers:\n  - source: a\n    destination: b\n", ErrInvalidPlan},
		{"sub-millisecond interval", "plan.yaml", "progress:\n  interval: 500us\ntransfers:\n  - source: a\n    destination: b\n", ErrInvalidPlan},
		{"negative min interval", "plan.yaml", "progress:\n  min_interval: -5s\ntransfers:\n  - source: a\n    destination: b\n", ErrInvalidPlan},
		{"zero initial step", "plan.yaml", "progress:\n  initial_step: 0\ntransfers:\n  - source: a\n    destination: b\n", ErrInvalidPlan},
		{"hcl negative interval", "plan.hcl", "progress {\n  interval = \"-1s\"\n}\ntransfer {\n  source = \"a\"\n  destination = \"b\"\n}\n", ErrInvalidPlan},
		{"hcl zero initial step", "plan.hcl", "progress {\n  initial_step = 0\n}\ntransfer {\n  source = \"a\"\n  destination = \"b\"\n}\n", ErrInvalidPlan},
		{"bad hcl", "plan.hcl", "transfer {\n", ErrDecodePlan},
		{"hcl missing source", "plan.hcl", "transfer {\n  destination = \"b\"\n}\n", ErrDecodePlan},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			plan, err := ParsePlan(tc.filename, []byte(tc.data))
			require.ErrorIs(t, err, tc.want)
			assert.Nil(t, plan)
		})
	}
}

func TestProgressSettings_Validate(t *testing.T) {
	require.NoError(t, DefaultProgressSettings().Validate())

	tcs := []struct {
		name   string
		mutate func(s *ProgressSettings)
		ok     bool
	}{
		{"zero min interval", func(s *ProgressSettings) { s.MinInterval = 0 }, true},
		{"one millisecond interval", func(s *ProgressSettings) { s.Interval = time.Millisecond }, true},
		{"initial step of one", func(s *ProgressSettings) { s.InitialStep = 1 }, true},
		{"zero initial step", func(s *ProgressSettings) { s.InitialStep = 0 }, false},
		{"zero interval", func(s *ProgressSettings) { s.Interval = 0 }, false},
		{"negative interval", func(s *ProgressSettings) { s.Interval = -time.Second }, false},
		{"sub-millisecond interval", func(s *ProgressSettings) { s.Interval = 999 * time.Microsecond }, false},
		{"negative min interval", func(s *ProgressSettings) { s.MinInterval = -5 * time.Second }, false},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			s := DefaultProgressSettings()
			tc.mutate(&s)

			err := s.Validate()
			if tc.ok {
				require.NoError(t, err)
				return
			}

			require.ErrorIs(t, err, ErrInvalidPlan)

			p := &Plan{
				Transfers: []Transfer{{Source: "a", Destination: "b"}},
				Progress:  s,
			}
			require.ErrorIs(t, p.Validate(), ErrInvalidPlan)
		})
	}
}

func TestLoadPlan(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/plans/nightly.yaml", []byte(yamlPlan), 0o644))

	stubs := gostub.Stub(&FsFactory, func() afero.Fs { return fs })
	defer stubs.Reset()

	plan, err := LoadPlan(context.Background(), "/plans/nightly.yaml")
	require.NoError(t, err)
	assert.Len(t, plan.Transfers, 2)

	_, err = LoadPlan(context.Background(), "/plans/missing.yaml")
	require.ErrorIs(t, err, ErrReadPlan)
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestNewPlan(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/backup", 0o755))

	stubs := gostub.Stub(&FsFactory, func() afero.Fs { return fs })
	defer stubs.Reset()

	t.Run("single file to file", func(t *testing.T) {
		plan, err := NewPlan([]string{"/data/a.bin"}, "/backup/renamed.bin", ModeCopy)
		require.NoError(t, err)
		assert.Equal(t, []Transfer{
			{Source: "/data/a.bin", Destination: "/backup/renamed.bin", Mode: ModeCopy},
		}, plan.Transfers)
		assert.Equal(t, DefaultProgressSettings(), plan.Progress)
	})

	t.Run("single file into directory", func(t *testing.T) {
		plan, err := NewPlan([]string{"/data/a.bin"}, "/backup", ModeMove)
		require.NoError(t, err)
		assert.Equal(t, []Transfer{
			{Source: "/data/a.bin", Destination: "/backup/a.bin", Mode: ModeMove},
		}, plan.Transfers)
	})

	t.Run("several files into directory", func(t *testing.T) {
		plan, err := NewPlan([]string{"/data/a.bin", "/other/b.bin"}, "/backup", ModeCopy)
		require.NoError(t, err)
		assert.Equal(t, []Transfer{
			{Source: "/data/a.bin", Destination: "/backup/a.bin", Mode: ModeCopy},
			{Source: "/other/b.bin", Destination: "/backup/b.bin", Mode: ModeCopy},
		}, plan.Transfers)
	})

	t.Run("several files to non-directory", func(t *testing.T) {
		plan, err := NewPlan([]string{"/data/a.bin", "/data/b.bin"}, "/nowhere", ModeCopy)
		require.ErrorIs(t, err, ErrDestinationNotDir)
		assert.Nil(t, plan)
	})

	t.Run("no sources", func(t *testing.T) {
		plan, err := NewPlan(nil, "/backup", ModeCopy)
		require.ErrorIs(t, err, ErrInvalidPlan)
		assert.Nil(t, plan)
	})
}
