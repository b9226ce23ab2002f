// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package job

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	getter "github.com/hashicorp/go-getter/v2"
	"github.com/matt-FFFFFF/shuttle/internal/ctxlog"
	"github.com/spf13/afero"
)

// ErrFetchPlan is returned when a plan cannot be downloaded.
var ErrFetchPlan = errors.New("failed to fetch plan file")

const (
	getterPathSeparator = "//"
	getterRefSeparator  = "?"
	// scheme, host and path
	minGetterParts = 3
)

// FetchPlan loads a plan from a local path or from any source go-getter understands,
// e.g. git::https://example.com/repo.git//plans/nightly.yaml?ref=main.
// Local files are read through FsFactory.
func FetchPlan(ctx context.Context, src string) (*Plan, error) {
	if src == "" {
		return nil, fmt.Errorf("%w: empty source", ErrFetchPlan)
	}

	if ok, _ := afero.Exists(FsFactory(), src); ok {
		return LoadPlan(ctx, src)
	}

	tmpDir, err := os.MkdirTemp("", "shuttle-plan-*")
	if err != nil {
		return nil, errors.Join(ErrFetchPlan, err)
	}

	defer os.RemoveAll(tmpDir) //nolint:errcheck

	wd, err := os.Getwd()
	if err != nil {
		return nil, errors.Join(ErrFetchPlan, err)
	}

	client := getter.Client{
		DisableSymlinks: true,
	}

	req := &getter.Request{
		Src:     src,
		Dst:     filepath.Join(tmpDir, "plan"),
		Pwd:     wd,
		GetMode: getter.ModeDir,
	}

	// go-getter fetches directories, so the file name is split off and read afterwards.
	// https://github.com/hashicorp/go-getter/issues/98
	var dirURL, fileName string

	if ok, err := getter.Detect(req, &getter.FileGetter{}); !ok || err != nil {
		if err != nil {
			return nil, errors.Join(ErrFetchPlan, err)
		}

		dirURL, fileName = splitGetterURL(src)
		if dirURL == "" || fileName == "" {
			return nil, fmt.Errorf("%w: cannot find a file name in %s", ErrFetchPlan, src)
		}
	} else {
		dirURL, fileName = filepath.Dir(src), filepath.Base(src)
	}

	req.Src = dirURL

	ctxlog.Debug(ctx, "fetching plan", "src", dirURL, "file", fileName)

	res, err := client.Get(ctx, req)
	if err != nil {
		return nil, errors.Join(ErrFetchPlan, err)
	}

	data, err := os.ReadFile(filepath.Join(res.Dst, fileName))
	if err != nil {
		return nil, errors.Join(ErrFetchPlan, err)
	}

	return ParsePlan(fileName, data)
}

// splitGetterURL splits a go-getter URL into the URL of the directory holding
// the file and the file name. A ?ref= query is kept on the directory URL.
func splitGetterURL(src string) (string, string) {
	parts := strings.Split(src, getterPathSeparator)
	if len(parts) < minGetterParts {
		return "", ""
	}

	last := parts[len(parts)-1]

	var ref string

	if path, query, found := strings.Cut(last, getterRefSeparator); found {
		last, ref = path, query
	}

	if last == "" || filepath.Clean(last) == filepath.Dir(last) {
		return "", ""
	}

	fileName := filepath.Base(last)
	dir := filepath.Dir(last)

	if dir == "." {
		parts = parts[:len(parts)-1]
	} else {
		parts[len(parts)-1] = dir
	}

	dirURL := strings.Join(parts, getterPathSeparator)
	if ref != "" {
		dirURL += getterRefSeparator + ref
	}

	return dirURL, fileName
}
