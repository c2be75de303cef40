// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package shutil

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSplit(t *testing.T) {
	for _, tc := range []struct {
		cmdline string
		want    []string
	}{
		{
			cmdline: "",
		},
		{
			cmdline: "   \t ",
		},
		{
			cmdline: `-O2 -march=x86-64 -DCR_CLANG_REVISION=\"llvmorg-13\" -I../..`,
			want: []string{
				"-O2",
				"-march=x86-64",
				`-DCR_CLANG_REVISION="llvmorg-13"`,
				"-I../..",
			},
		},
		{
			cmdline: ` -fno-rtti  -std=c++20 	-pipe `,
			want: []string{
				"-fno-rtti",
				"-std=c++20",
				"-pipe",
			},
		},
		{
			cmdline: `-Wl,-rpath,'$ORIGIN/lib' -DNAME="two words"`,
			want: []string{
				"-Wl,-rpath,$ORIGIN/lib",
				"-DNAME=two words",
			},
		},
		{
			cmdline: `-DPATH="C:\\Program Files\\x" '' ""`,
			want: []string{
				`-DPATH=C:\Program Files\x`,
				"",
				"",
			},
		},
		{
			cmdline: `-DQ="say \"hi\"" -DS='it'\''s'`,
			want: []string{
				`-DQ=say "hi"`,
				`-DS=it's`,
			},
		},
		{
			cmdline: `-I/opt/my\ sdk/include`,
			want: []string{
				"-I/opt/my sdk/include",
			},
		},
	} {
		args, err := Split(tc.cmdline)
		if err != nil {
			t.Errorf("Split(%q)=%q, %v; want nil error", tc.cmdline, args, err)
		}
		if diff := cmp.Diff(tc.want, args); diff != "" {
			t.Errorf("Split(%q); diff -want +got:\n%s", tc.cmdline, diff)
		}
	}
}

func TestSplit_Error(t *testing.T) {
	for _, cmdline := range []string{
		`-O2 2>/dev/null || -O0`,
		`-DNAME="unterminated`,
		`-DNAME='unterminated`,
		`-O2 \`,
		"-O2; rm -rf /",
		"-D`id`",
	} {
		args, err := Split(cmdline)
		if err == nil {
			t.Errorf("Split(%q)=%q, %v; want err", cmdline, args, err)
		}
	}
}

func TestJoin(t *testing.T) {
	for _, tc := range []struct {
		args []string
		want string
	}{
		{
			args: nil,
			want: "",
		},
		{
			args: []string{"-O2", "-march=x86-64", "-I../..", "-Wl,--as-needed"},
			want: "-O2 -march=x86-64 -I../.. -Wl,--as-needed",
		},
		{
			args: []string{"-DNAME=two words", "", "it's", "$ORIGIN"},
			want: `'-DNAME=two words' '' 'it'\''s' '$ORIGIN'`,
		},
	} {
		got := Join(tc.args)
		if got != tc.want {
			t.Errorf("Join(%q)=%q; want %q", tc.args, got, tc.want)
		}
		back, err := Split(got)
		if err != nil {
			t.Errorf("Split(Join(%q))=_, %v; want nil err", tc.args, err)
			continue
		}
		if diff := cmp.Diff(tc.args, back); diff != "" && len(tc.args) > 0 {
			t.Errorf("Split(Join(%q)) diff -want +got:\n%s", tc.args, diff)
		}
	}
}
