// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package filetransfer copies and moves single files.
//
// CopyFile copies content and permission bits, using sendfile(2) on Linux when
// both ends are OS files and a plain read/write loop elsewhere.
// MoveFile renames, and falls back to copy and delete when the rename crosses
// a filesystem boundary (EXDEV).
//
// All failures are returned as *IOError. Nothing is retried.
package filetransfer
