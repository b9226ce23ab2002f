// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package ctxlog carries a *slog.Logger in a context.Context.
//
// The default logger uses PrettyHandler, a console handler printing a
// timestamp, a coloured level, the message and the record attributes as
// indented JSON. The level comes from the <EXECUTABLE>_LOG_LEVEL environment
// variable (DEBUG, INFO, WARN or ERROR) and defaults to WARN.
package ctxlog
