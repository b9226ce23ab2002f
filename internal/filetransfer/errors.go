// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package filetransfer

import (
	"errors"
	"fmt"
	"syscall"
)

var (
	// ErrOpen is returned when the source file cannot be opened for reading.
	ErrOpen = errors.New("cannot open file for reading")
	// ErrStat is returned when the source file cannot be stat-ed.
	ErrStat = errors.New("cannot stat file")
	// ErrCreate is returned when the destination file cannot be created.
	ErrCreate = errors.New("cannot open file for writing")
	// ErrChmod is returned when the destination permission bits cannot be set.
	ErrChmod = errors.New("cannot set file mode")
	// ErrCopy is returned when copying the file content fails.
	ErrCopy = errors.New("cannot copy file")
	// ErrRename is returned when a rename fails for a reason other than crossing devices.
	ErrRename = errors.New("cannot move file")
	// ErrRemove is returned when the source cannot be removed after a cross-device copy.
	ErrRemove = errors.New("cannot remove file")
)

var _ error = (*IOError)(nil)

// IOError describes a failed filesystem operation.
// It matches both its Kind and its cause with errors.Is.
type IOError struct {
	// Kind is one of the Err* sentinels of this package.
	Kind error
	// Path is the file the operation failed on.
	Path string
	// Target is the second path of copy and move operations.
	Target string
	// Err is the underlying OS error.
	Err error
}

func newIOError(kind error, path, target string, err error) *IOError {
	return &IOError{
		Kind:   kind,
		Path:   path,
		Target: target,
		Err:    err,
	}
}

// Error implements error.
func (e *IOError) Error() string {
	if e.Target != "" {
		return fmt.Sprintf("%s %s to %s: %s", e.Kind, e.Path, e.Target, e.reason())
	}

	return fmt.Sprintf("%s %s: %s", e.Kind, e.Path, e.reason())
}

// Unwrap returns the kind sentinel and the underlying error.
func (e *IOError) Unwrap() []error {
	return []error{e.Kind, e.Err}
}

// Errno returns the OS error code of the underlying error, or 0 if there is none.
func (e *IOError) Errno() syscall.Errno {
	var errno syscall.Errno
	if errors.As(e.Err, &errno) {
		return errno
	}

	return 0
}

// reason prefers the bare strerror text over the wrapped error, which
// usually repeats the path.
func (e *IOError) reason() string {
	if errno := e.Errno(); errno != 0 {
		return errno.Error()
	}

	if e.Err == nil {
		return "unknown error"
	}

	return e.Err.Error()
}
