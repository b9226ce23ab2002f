// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package filetransfer

import (
	"os"
	"sync/atomic"

	"github.com/spf13/afero"
)

// faultFS wraps an afero.Fs, records the operations performed on it and
// returns injected errors for "op:path" keys, e.g. "remove:/src/a".
type faultFS struct {
	afero.Fs

	faults map[string]error
	ops    []string
	open   atomic.Int32
}

func newFaultFS(base afero.Fs) *faultFS {
	return &faultFS{
		Fs:     base,
		faults: map[string]error{},
	}
}

func (f *faultFS) fail(op, path string, err error) {
	f.faults[op+":"+path] = err
}

func (f *faultFS) record(op, path string) error {
	key := op + ":" + path
	f.ops = append(f.ops, key)

	return f.faults[key]
}

// Open implements afero.Fs.
func (f *faultFS) Open(name string) (afero.File, error) {
	if err := f.record("open", name); err != nil {
		return nil, err
	}

	file, err := f.Fs.Open(name)
	if err != nil {
		return nil, err
	}

	f.open.Add(1)

	return &trackedFile{File: file, fs: f}, nil
}

// OpenFile implements afero.Fs.
func (f *faultFS) OpenFile(name string, flag int, perm os.FileMode) (afero.File, error) {
	if err := f.record("openfile", name); err != nil {
		return nil, err
	}

	file, err := f.Fs.OpenFile(name, flag, perm)
	if err != nil {
		return nil, err
	}

	f.open.Add(1)

	return &trackedFile{File: file, fs: f}, nil
}

// Chmod implements afero.Fs.
func (f *faultFS) Chmod(name string, mode os.FileMode) error {
	if err := f.record("chmod", name); err != nil {
		return err
	}

	return f.Fs.Chmod(name, mode)
}

// Rename implements afero.Fs.
func (f *faultFS) Rename(oldname, newname string) error {
	if err := f.record("rename", oldname); err != nil {
		return err
	}

	return f.Fs.Rename(oldname, newname)
}

// Remove implements afero.Fs.
func (f *faultFS) Remove(name string) error {
	if err := f.record("remove", name); err != nil {
		return err
	}

	return f.Fs.Remove(name)
}

// Name implements afero.Fs.
func (f *faultFS) Name() string {
	return "faultFS"
}

// trackedFile decrements the open file count of its faultFS on Close.
type trackedFile struct {
	afero.File
	fs     *faultFS
	closed bool
}

func (t *trackedFile) Close() error {
	if !t.closed {
		t.closed = true
		t.fs.open.Add(-1)
	}

	return t.File.Close()
}
