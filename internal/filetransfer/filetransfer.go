// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package filetransfer

import (
	"context"
	"errors"
	"io"
	"os"
	"syscall"

	"github.com/matt-FFFFFF/shuttle/internal/ctxlog"
	"github.com/spf13/afero"
)

// FS is the filesystem used for all operations.
// Default is the OS filesystem, but can be replaced with a mock for testing.
var FS = afero.NewOsFs()

// modeBits are the parts of the source mode carried over to the destination.
const modeBits = os.ModePerm | os.ModeSetuid | os.ModeSetgid | os.ModeSticky

// bulkCopy copies size bytes from src to dst. See copyContents.
var bulkCopy = copyContents

// Option configures a single CopyFile or MoveFile call.
type Option func(o *options)

type options struct {
	progress func(n int64)
}

// WithProgress calls fn with the number of bytes written after every chunk
// of a content copy. A rename within one filesystem moves no data and never calls fn.
func WithProgress(fn func(n int64)) Option {
	return func(o *options) {
		o.progress = fn
	}
}

func newOptions(opts []Option) *options {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	return o
}

// CopyFile copies the content and permission bits of the regular file src to dst.
// dst is created if needed and truncated otherwise.
// If the content copy fails, a partial dst is left in place.
func CopyFile(ctx context.Context, src, dst string, opts ...Option) (err error) {
	o := newOptions(opts)

	in, err := FS.Open(src)
	if err != nil {
		return newIOError(ErrOpen, src, "", err)
	}
	defer in.Close() //nolint:errcheck

	info, err := in.Stat()
	if err != nil {
		return newIOError(ErrStat, src, "", err)
	}

	if !info.Mode().IsRegular() {
		return newIOError(ErrCopy, src, dst, notRegular(info.Mode()))
	}

	mode := info.Mode() & modeBits

	out, err := FS.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode)
	if err != nil {
		return newIOError(ErrCreate, dst, "", err)
	}

	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = newIOError(ErrCopy, src, dst, cerr)
		}
	}()

	// The create mode is filtered by the umask and ignored for existing files.
	if err := FS.Chmod(dst, mode); err != nil {
		return newIOError(ErrChmod, dst, "", err)
	}

	n, err := bulkCopy(out, in, info.Size(), o.progress)
	if err != nil {
		return newIOError(ErrCopy, src, dst, err)
	}

	ctxlog.Debug(ctx, "copied file", "src", src, "dst", dst, "bytes", n, "mode", mode.String())

	return nil
}

// MoveFile renames src to dst. When they are on different filesystems the
// file is copied and src is removed instead.
//
// If src cannot be removed after the copy, dst is removed again and the
// removal error of src is returned. A failure to remove dst is only logged.
func MoveFile(ctx context.Context, src, dst string, opts ...Option) error {
	err := FS.Rename(src, dst)
	if err == nil {
		ctxlog.Debug(ctx, "renamed file", "src", src, "dst", dst)
		return nil
	}

	if !errors.Is(err, syscall.EXDEV) {
		return newIOError(ErrRename, src, dst, err)
	}

	ctxlog.Debug(ctx, "rename crosses filesystems, copying instead", "src", src, "dst", dst)

	if err := CopyFile(ctx, src, dst, opts...); err != nil {
		return err
	}

	if err := FS.Remove(src); err != nil {
		if rbErr := FS.Remove(dst); rbErr != nil {
			ctxlog.Warn(ctx, "could not remove copy after failing to remove source",
				"src", src, "dst", dst, "error", rbErr.Error())
		}

		return newIOError(ErrRemove, src, "", err)
	}

	return nil
}

// notRegular is the cause reported for sources that are not regular files.
func notRegular(mode os.FileMode) syscall.Errno {
	if mode.IsDir() {
		return syscall.EISDIR
	}

	return syscall.EINVAL
}

// portableCopy is the read/write loop used where no kernel copy is available.
// Without a progress callback io.Copy still picks copy_file_range or splice
// when both ends support it.
func portableCopy(dst io.Writer, src io.Reader, progress func(int64)) (int64, error) {
	if progress != nil {
		dst = &progressWriter{w: dst, fn: progress}
	}

	return io.Copy(dst, src) //nolint:wrapcheck
}

// progressWriter reports every successful write to fn.
type progressWriter struct {
	w  io.Writer
	fn func(int64)
}

func (p *progressWriter) Write(b []byte) (int, error) {
	n, err := p.w.Write(b)
	if n > 0 {
		p.fn(int64(n))
	}

	return n, err //nolint:wrapcheck
}
