// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package cmdflags

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/matt-FFFFFF/shuttle/internal/job"
	"github.com/peterh/liner"
)

// ErrAborted is returned when the overwrite prompt is aborted with Ctrl+C.
var ErrAborted = errors.New("aborted by user")

// Prompter reads one line of input after printing a prompt.
type Prompter interface {
	Prompt(prompt string) (string, error)
	Close() error
}

// NewPrompter opens the terminal for a single question.
// The terminal is in raw mode until Close, so one is opened per question
// and progress output is never written while it is held.
var NewPrompter = func() Prompter {
	l := liner.NewLiner()
	l.SetCtrlCAborts(true)

	return l
}

// NewConfirm returns a job.ConfirmFunc that asks on the terminal before
// overwriting. Answering "a" overwrites everything from then on.
// Unrecognised answers are repeated to w and asked again.
func NewConfirm(w io.Writer) job.ConfirmFunc {
	all := false

	return func(_ context.Context, t job.Transfer) (bool, error) {
		if all {
			return true, nil
		}

		p := NewPrompter()
		defer p.Close() //nolint:errcheck

		for {
			answer, err := p.Prompt(fmt.Sprintf("overwrite %s? [y/N/a] ", t.Destination))

			switch {
			case errors.Is(err, liner.ErrPromptAborted):
				return false, ErrAborted
			case errors.Is(err, io.EOF):
				return false, nil
			case err != nil:
				return false, err //nolint:wrapcheck
			}

			switch strings.ToLower(strings.TrimSpace(answer)) {
			case "y", "yes":
				return true, nil
			case "", "n", "no":
				return false, nil
			case "a", "all":
				all = true
				return true, nil
			default:
				fmt.Fprintf(w, "unrecognised answer %q\n", answer) //nolint:errcheck
			}
		}
	}
}
