// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package filegroup provides recursive globbing of source trees.
package filegroup

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charmbracelet/log"
)

// Spec specifies glob operations.
//
// A pattern without "/" matches the base name of a file in any
// subdirectory. A pattern with "/" matches the slash separated path
// from the root of the file system, and may use "**" to match any
// number of directories. Excludes take precedence over includes.
type Spec struct {
	Dirs     []string `json:"dirs"`
	Includes []string `json:"includes"`
	Excludes []string `json:"excludes,omitempty"`
}

// Validate checks patterns in the spec.
func (s Spec) Validate() error {
	for _, p := range slices.Concat(s.Includes, s.Excludes) {
		if !doublestar.ValidatePattern(p) {
			return fmt.Errorf("bad pattern %q: %w", p, doublestar.ErrBadPattern)
		}
	}
	for _, d := range s.Dirs {
		if !fs.ValidPath(d) {
			return fmt.Errorf("bad dir %q: must be unrooted slash separated path without . or ..", d)
		}
	}
	return nil
}

type matcher func(string) bool

func newMatcher(pattern string) matcher {
	if strings.Contains(pattern, "/") {
		return func(s string) bool {
			ok, _ := doublestar.Match(pattern, s)
			return ok
		}
	}
	return func(s string) bool {
		ok, _ := doublestar.Match(pattern, path.Base(s))
		return ok
	}
}

func (s Spec) matcher() matcher {
	var inc, exc []matcher
	for _, p := range s.Includes {
		inc = append(inc, newMatcher(p))
	}
	for _, p := range s.Excludes {
		exc = append(exc, newMatcher(p))
	}
	return func(name string) bool {
		for _, m := range exc {
			if m(name) {
				return false
			}
		}
		for _, m := range inc {
			if m(name) {
				return true
			}
		}
		return false
	}
}

// Glob returns files in fsys matching the spec, sorted and without
// duplicates. Missing dirs are skipped.
func Glob(ctx context.Context, fsys fs.FS, spec Spec) ([]string, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	m := spec.matcher()
	var files []string
	for _, dir := range spec.Dirs {
		err := fs.WalkDir(fsys, dir, func(pathname string, d fs.DirEntry, err error) error {
			if err != nil {
				if pathname == dir && errors.Is(err, fs.ErrNotExist) {
					log.Warnf("glob: no such directory %q", dir)
					return fs.SkipAll
				}
				return err
			}
			if err := ctx.Err(); err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}
			if m(pathname) {
				files = append(files, pathname)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to glob %s: %w", dir, err)
		}
	}
	slices.Sort(files)
	files = slices.Compact(files)
	log.Debugf("glob %v => %d files", spec, len(files))
	return files, nil
}
