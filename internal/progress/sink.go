// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package progress

import (
	"fmt"
	"io"
	"strings"

	"github.com/matt-FFFFFF/shuttle/internal/color"
)

// Sink receives formatted progress output.
// Consecutive calls append to the same line; the Reporter emits a line break
// only from ReportLast.
type Sink interface {
	Emitf(format string, args ...any)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(format string, args ...any)

// Emitf implements Sink.
func (f SinkFunc) Emitf(format string, args ...any) {
	f(format, args...)
}

var _ Sink = (*WriterSink)(nil)

// WriterSink writes progress output to an io.Writer.
// Write errors are dropped, progress output is best effort.
type WriterSink struct {
	w      io.Writer
	colour bool
}

// NewWriterSink creates a WriterSink. When colour is true and colour output is
// enabled for the process, the final 100% marker is highlighted.
func NewWriterSink(w io.Writer, colour bool) *WriterSink {
	return &WriterSink{
		w:      w,
		colour: colour,
	}
}

// Emitf implements Sink.
func (s *WriterSink) Emitf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if s.colour && strings.HasPrefix(msg, "100%") {
		msg = color.Colorize("100%", color.FgGreen, color.Bold) + msg[len("100%"):]
	}

	_, _ = io.WriteString(s.w, msg)
}

type discardSink struct{}

func (discardSink) Emitf(string, ...any) {}
