// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package color wraps strings in ANSI escape codes.
// Color output honours the NO_COLOR and FORCE_COLOR environment variables and
// otherwise depends on whether stdout is a terminal (golang.org/x/term).
package color
