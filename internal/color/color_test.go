// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package color

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsColorCapable(t *testing.T) {
	t.Setenv(NoColor, "1")
	assert.False(t, isColorCapable(), "Expected color output to be disabled")

	t.Setenv(ForceColor, "1")
	assert.False(t, isColorCapable(), "Expected color output to be disabled as NO_COLOR is still set")

	t.Setenv(NoColor, "")
	assert.True(t, isColorCapable(), "Expected color output to be enabled as FORCE_COLOR is set and NO_COLOR is unset")
}

func TestColorize(t *testing.T) {
	testCases := []struct {
		name    string
		enabled bool
		codes   []Code
		want    string
	}{
		{
			name:    "disabled",
			enabled: false,
			codes:   []Code{FgGreen},
			want:    "100%",
		},
		{
			name:    "single code",
			enabled: true,
			codes:   []Code{FgGreen},
			want:    "\033[32m100%\033[0m",
		},
		{
			name:    "multiple codes",
			enabled: true,
			codes:   []Code{FgGreen, Bold},
			want:    "\033[32;1m100%\033[0m",
		},
		{
			name:    "no codes",
			enabled: true,
			want:    "100%",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			restore := SetEnabled(tc.enabled)
			defer restore()

			assert.Equal(t, tc.want, Colorize("100%", tc.codes...))
		})
	}
}

func TestSetEnabledRestores(t *testing.T) {
	before := Enabled()

	restore := SetEnabled(!before)
	assert.Equal(t, !before, Enabled())

	restore()
	assert.Equal(t, before, Enabled())
}
