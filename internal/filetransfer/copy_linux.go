// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

//go:build linux

package filetransfer

import (
	"errors"
	"io"
	"os"

	"golang.org/x/sys/unix"
)

const (
	// maxSendfileChunk is the largest count a single sendfile(2) call transfers on Linux.
	maxSendfileChunk = 0x7ffff000
	// progressChunk bounds each sendfile(2) call when progress is reported.
	progressChunk = 8 << 20
)

// copyContents moves size bytes from src to dst inside the kernel with
// sendfile(2) when both are OS files, and falls back to portableCopy otherwise.
func copyContents(dst io.Writer, src io.Reader, size int64, progress func(int64)) (int64, error) {
	out, okOut := dst.(*os.File)
	in, okIn := src.(*os.File)

	if !okOut || !okIn || size <= 0 {
		// Files such as those in /proc report a zero size.
		return portableCopy(dst, src, progress)
	}

	return sendfile(out, in, size, progress)
}

func sendfile(out, in *os.File, size int64, progress func(int64)) (int64, error) {
	outFd := int(out.Fd())
	inFd := int(in.Fd())

	chunk := int64(maxSendfileChunk)
	if progress != nil {
		chunk = progressChunk
	}

	var written int64

	for written < size {
		n, err := unix.Sendfile(outFd, inFd, nil, int(min(size-written, chunk)))
		if err != nil {
			if errors.Is(err, unix.EINTR) || errors.Is(err, unix.EAGAIN) {
				continue
			}

			if written == 0 && (errors.Is(err, unix.ENOSYS) || errors.Is(err, unix.EINVAL)) {
				return portableCopy(out, in, progress)
			}

			return written, err //nolint:wrapcheck
		}

		// Source shrank underneath us.
		if n == 0 {
			break
		}

		written += int64(n)

		if progress != nil {
			progress(int64(n))
		}
	}

	return written, nil
}
