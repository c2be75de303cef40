// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package gitinfo provides revision information of a git checkout
// without requiring git for the commit hash.
package gitinfo

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/openvicproject/vicbuild/toolsupport/cmdutil"
)

// Values used when the information is not available.
const (
	DefaultHash    = "0000000000000000000000000000000000000000"
	MissingTag     = "<tag missing>"
	MissingRelease = "<release missing>"
)

// Info is revision information of a checkout.
type Info struct {
	Hash      string `json:"git_hash"`
	Timestamp int64  `json:"git_timestamp"`
	Tag       string `json:"git_tag"`
	Release   string `json:"git_release"`
}

// Runner runs the command in dir and returns its stdout.
type Runner func(ctx context.Context, dir, name string, args ...string) (string, error)

// ExecRunner runs commands on the host.
func ExecRunner(ctx context.Context, dir, name string, args ...string) (string, error) {
	return cmdutil.Output(ctx, dir, name, args...)
}

// Repo is a git checkout.
type Repo struct {
	// Dir is the top directory of the checkout.
	Dir string

	// EnvPrefix is the prefix of environment variables providing
	// default tag (<prefix>_TAG) and release (<prefix>_RELEASE).
	EnvPrefix string

	// Run runs git and gh commands. ExecRunner if nil.
	Run Runner

	// Getenv looks up environment variables. os.Getenv if nil.
	Getenv func(string) string
}

func (r Repo) run(ctx context.Context, name string, args ...string) (string, error) {
	run := r.Run
	if run == nil {
		run = ExecRunner
	}
	out, err := run(ctx, r.Dir, name, args...)
	return strings.TrimSpace(out), err
}

func (r Repo) getenv(key, def string) string {
	getenv := r.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}
	if r.EnvPrefix != "" {
		key = r.EnvPrefix + "_" + key
	}
	if v := getenv(key); v != "" {
		return v
	}
	return def
}

func (r Repo) path(elem ...string) string {
	if len(elem) > 0 && filepath.IsAbs(elem[0]) {
		return filepath.Join(elem...)
	}
	return filepath.Join(append([]string{r.Dir}, elem...)...)
}

func (r Repo) hasGit() bool {
	_, err := os.Stat(r.path(".git"))
	return err == nil
}

// firstLine returns the first line of fname without surrounding spaces.
func firstLine(fname string) (string, error) {
	f, err := os.Open(fname)
	if err != nil {
		return "", err
	}
	defer f.Close()
	s := bufio.NewScanner(f)
	if s.Scan() {
		return strings.TrimSpace(s.Text()), nil
	}
	return "", s.Err()
}

func isFile(fname string) bool {
	fi, err := os.Stat(fname)
	return err == nil && fi.Mode().IsRegular()
}

// gitDir returns the git directory. ".git" may be a file pointing to the
// git directory for submodules and worktrees.
func (r Repo) gitDir() (string, error) {
	gitDir := r.path(".git")
	if !isFile(gitDir) {
		return gitDir, nil
	}
	line, err := firstLine(gitDir)
	if err != nil {
		return "", err
	}
	if d, ok := strings.CutPrefix(line, "gitdir: "); ok {
		return r.path(d), nil
	}
	return gitDir, nil
}

// Hash returns the commit hash of HEAD.
// It returns DefaultHash if the directory is not a git checkout.
func (r Repo) Hash() (string, error) {
	gitDir, err := r.gitDir()
	if err != nil {
		return DefaultHash, err
	}
	headFile := filepath.Join(gitDir, "HEAD")
	if !isFile(headFile) {
		return DefaultHash, nil
	}
	head, err := firstLine(headFile)
	if err != nil {
		return DefaultHash, err
	}
	ref, ok := strings.CutPrefix(head, "ref: ")
	if !ok {
		// detached HEAD.
		return head, nil
	}
	// refs of a worktree live in the main git directory.
	if filepath.Base(filepath.Dir(gitDir)) == "worktrees" {
		gitDir = filepath.Dir(filepath.Dir(gitDir))
	}
	refFile := filepath.Join(gitDir, filepath.FromSlash(ref))
	if isFile(refFile) {
		h, err := firstLine(refFile)
		if err != nil {
			return DefaultHash, err
		}
		return h, nil
	}
	h, err := packedRef(filepath.Join(gitDir, "packed-refs"), ref)
	if errors.Is(err, fs.ErrNotExist) {
		return DefaultHash, nil
	}
	return h, err
}

// packedRef looks up ref in packed-refs file.
// https://git-scm.com/docs/git-pack-refs
func packedRef(fname, ref string) (string, error) {
	f, err := os.Open(fname)
	if err != nil {
		return DefaultHash, err
	}
	defer f.Close()
	s := bufio.NewScanner(f)
	for s.Scan() {
		line := s.Text()
		if strings.HasPrefix(line, "#") || strings.HasPrefix(line, "^") {
			continue
		}
		h, name, ok := strings.Cut(line, " ")
		if ok && name == ref {
			return h, nil
		}
	}
	return DefaultHash, s.Err()
}

// Timestamp returns UNIX time of the commit, or 0 if unknown.
func (r Repo) Timestamp(ctx context.Context, hash string) int64 {
	if !r.hasGit() {
		return 0
	}
	out, err := r.run(ctx, "git", "log", "-1", "--pretty=format:%ct", "--no-show-signature", hash)
	if err != nil {
		log.Warnf("failed to get commit timestamp: %v", err)
		return 0
	}
	ts, err := strconv.ParseInt(out, 10, 64)
	if err != nil {
		log.Warnf("bad commit timestamp %q: %v", out, err)
		return 0
	}
	return ts
}

// Tag returns the latest tag reachable from HEAD.
func (r Repo) Tag(ctx context.Context) string {
	tag := r.getenv("TAG", MissingTag)
	if !r.hasGit() {
		return tag
	}
	out, err := r.run(ctx, "git", "describe", "--tags", "--abbrev=0")
	if err != nil {
		log.Debugf("git describe: %v", err)
		return tag
	}
	if out != "" {
		tag = out
	}
	return tag
}

// Release returns the name of the latest GitHub release.
// It falls back to the tag when gh is not available.
func (r Repo) Release(ctx context.Context) string {
	release := r.getenv("RELEASE", MissingRelease)
	if !r.hasGit() {
		return release
	}
	out, err := r.run(ctx, "gh", "release", "list", "--json", "name", "-q", ".[0] | .name")
	if err != nil {
		log.Debugf("gh release list: %v", err)
		if tag := r.Tag(ctx); tag != MissingTag {
			release = tag
		}
		return release
	}
	if out != "" {
		release = out
	}
	return release
}

// Info returns all revision information.
func (r Repo) Info(ctx context.Context) (Info, error) {
	hash, err := r.Hash()
	if err != nil {
		return Info{}, fmt.Errorf("failed to read git hash in %s: %w", r.Dir, err)
	}
	return Info{
		Hash:      hash,
		Timestamp: r.Timestamp(ctx, hash),
		Tag:       r.Tag(ctx),
		Release:   r.Release(ctx),
	}, nil
}
