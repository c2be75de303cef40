// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package gitinfo

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const (
	hashA = "1111111111111111111111111111111111111111"
	hashB = "2222222222222222222222222222222222222222"
)

func writeFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		fname := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(fname), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(fname, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestHash(t *testing.T) {
	for _, tc := range []struct {
		name  string
		files map[string]string
		want  string
	}{
		{
			name: "no-git",
			want: DefaultHash,
		},
		{
			name: "loose-ref",
			files: map[string]string{
				".git/HEAD":            "ref: refs/heads/main\n",
				".git/refs/heads/main": hashA + "\n",
			},
			want: hashA,
		},
		{
			name: "detached",
			files: map[string]string{
				".git/HEAD": hashB + "\n",
			},
			want: hashB,
		},
		{
			name: "packed-refs",
			files: map[string]string{
				".git/HEAD": "ref: refs/heads/main\n",
				".git/packed-refs": "# pack-refs with: peeled fully-peeled sorted\n" +
					hashB + " refs/heads/dev\n" +
					hashA + " refs/heads/main\n" +
					"^" + hashB + "\n",
			},
			want: hashA,
		},
		{
			name: "ref-missing",
			files: map[string]string{
				".git/HEAD": "ref: refs/heads/main\n",
			},
			want: DefaultHash,
		},
		{
			name: "gitdir-file",
			files: map[string]string{
				".git":                        "gitdir: modules/sub\n",
				"modules/sub/HEAD":            "ref: refs/heads/main\n",
				"modules/sub/refs/heads/main": hashB + "\n",
			},
			want: hashB,
		},
		{
			name: "worktree",
			files: map[string]string{
				".git":                             "gitdir: main/.git/worktrees/wt\n",
				"main/.git/worktrees/wt/HEAD":      "ref: refs/heads/feature\n",
				"main/.git/worktrees/wt/commondir": "../..\n",
				"main/.git/refs/heads/feature":     hashA + "\n",
			},
			want: hashA,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			dir := t.TempDir()
			writeFiles(t, dir, tc.files)
			r := Repo{Dir: dir}
			got, err := r.Hash()
			if err != nil {
				t.Fatalf("Hash()=_, %v; want nil err", err)
			}
			if got != tc.want {
				t.Errorf("Hash()=%q; want %q", got, tc.want)
			}
		})
	}
}

type fakeRunner struct {
	outputs map[string]string
	calls   []string
}

func (f *fakeRunner) run(ctx context.Context, dir, name string, args ...string) (string, error) {
	cmdline := strings.Join(append([]string{name}, args...), " ")
	f.calls = append(f.calls, cmdline)
	out, ok := f.outputs[cmdline]
	if !ok {
		return "", errors.New("command not found")
	}
	return out, nil
}

func fakeEnv(env map[string]string) func(string) string {
	return func(key string) string {
		return env[key]
	}
}

func TestInfo(t *testing.T) {
	ctx := context.Background()
	for _, tc := range []struct {
		name    string
		git     bool
		outputs map[string]string
		env     map[string]string
		want    Info
	}{
		{
			name: "no-git",
			want: Info{
				Hash:    DefaultHash,
				Tag:     MissingTag,
				Release: MissingRelease,
			},
		},
		{
			name: "no-git-env",
			env: map[string]string{
				"OPENVIC_TAG":     "v0.1",
				"OPENVIC_RELEASE": "Alpha 1",
			},
			want: Info{
				Hash:    DefaultHash,
				Tag:     "v0.1",
				Release: "Alpha 1",
			},
		},
		{
			name: "all-commands",
			git:  true,
			outputs: map[string]string{
				"git log -1 --pretty=format:%ct --no-show-signature " + hashA: "1700000000",
				"git describe --tags --abbrev=0":                             "v0.2\n",
				"gh release list --json name -q .[0] | .name":                "Beta\n",
			},
			want: Info{
				Hash:      hashA,
				Timestamp: 1700000000,
				Tag:       "v0.2",
				Release:   "Beta",
			},
		},
		{
			name: "release-falls-back-to-tag",
			git:  true,
			outputs: map[string]string{
				"git describe --tags --abbrev=0": "v0.3",
			},
			want: Info{
				Hash:    hashA,
				Tag:     "v0.3",
				Release: "v0.3",
			},
		},
		{
			name: "no-commands",
			git:  true,
			env: map[string]string{
				"OPENVIC_RELEASE": "Env Release",
			},
			want: Info{
				Hash:    hashA,
				Tag:     MissingTag,
				Release: "Env Release",
			},
		},
		{
			name: "bad-timestamp",
			git:  true,
			outputs: map[string]string{
				"git log -1 --pretty=format:%ct --no-show-signature " + hashA: "yesterday",
			},
			want: Info{
				Hash:    hashA,
				Tag:     MissingTag,
				Release: MissingRelease,
			},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			dir := t.TempDir()
			if tc.git {
				writeFiles(t, dir, map[string]string{
					".git/HEAD":            "ref: refs/heads/main\n",
					".git/refs/heads/main": hashA + "\n",
				})
			}
			runner := &fakeRunner{outputs: tc.outputs}
			r := Repo{
				Dir:       dir,
				EnvPrefix: "OPENVIC",
				Run:       runner.run,
				Getenv:    fakeEnv(tc.env),
			}
			got, err := r.Info(ctx)
			if err != nil {
				t.Fatalf("Info()=_, %v; want nil err", err)
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("Info() diff -want +got:\n%s", diff)
			}
			if !tc.git && len(runner.calls) > 0 {
				t.Errorf("commands run without .git: %q", runner.calls)
			}
		})
	}
}
