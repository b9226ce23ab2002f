// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package color

import (
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"
)

// Code is an ANSI SGR parameter.
type Code int

const (
	// NoColor is the environment variable that disables color output.
	NoColor = "NO_COLOR"
	// ForceColor is the environment variable that forces color output.
	ForceColor = "FORCE_COLOR"

	prefix = "\033["
	suffix = "m"
	reset  = "\033[0m"
)

// Text attributes.
const (
	Reset Code = iota
	Bold
	Faint
)

// Foreground text colors.
const (
	FgBlack Code = iota + 30
	FgRed
	FgGreen
	FgYellow
	FgBlue
	FgMagenta
	FgCyan
	FgWhite
)

// Foreground Hi-Intensity text colors.
const (
	FgHiBlack Code = iota + 90
	FgHiRed
	FgHiGreen
	FgHiYellow
	FgHiBlue
	FgHiMagenta
	FgHiCyan
	FgHiWhite
)

var enabled = isColorCapable()

// Colorize wraps str in the given codes followed by a reset.
// str is returned unchanged when color output is disabled.
func Colorize(str string, codes ...Code) string {
	if !enabled || len(codes) == 0 {
		return str
	}

	return sequence(codes) + str + reset
}

func sequence(codes []Code) string {
	parts := make([]string, len(codes))
	for i, c := range codes {
		parts[i] = strconv.Itoa(int(c))
	}

	return prefix + strings.Join(parts, ";") + suffix
}

// Enabled reports whether color output is enabled for this process.
//
// NO_COLOR always wins. Otherwise FORCE_COLOR enables color, and without
// either variable color is used only when stdout is a terminal.
func Enabled() bool {
	return enabled
}

// SetEnabled overrides terminal detection and returns a function restoring the previous value.
func SetEnabled(v bool) (restore func()) {
	prev := enabled
	enabled = v

	return func() {
		enabled = prev
	}
}

func isColorCapable() bool {
	if os.Getenv(NoColor) != "" {
		return false
	}

	if os.Getenv(ForceColor) != "" {
		return true
	}

	return term.IsTerminal(int(os.Stdout.Fd()))
}
