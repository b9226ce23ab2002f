// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

//go:build !linux

package filetransfer

import "io"

func copyContents(dst io.Writer, src io.Reader, _ int64, progress func(int64)) (int64, error) {
	return portableCopy(dst, src, progress)
}
