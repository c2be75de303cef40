// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package runtimex

import "testing"

func TestNumCPU(t *testing.T) {
	if n := NumCPU(); n < 1 {
		t.Errorf("NumCPU()=%d; want >= 1", n)
	}
}

func TestArch(t *testing.T) {
	for _, tc := range []struct {
		goarch string
		want   string
	}{
		{goarch: "amd64", want: "x86_64"},
		{goarch: "386", want: "x86_32"},
		{goarch: "arm64", want: "arm64"},
		{goarch: "arm", want: "arm32"},
		{goarch: "ppc64le", want: "ppc64"},
		{goarch: "loong64", want: "loong64"},
	} {
		if got := Arch(tc.goarch); got != tc.want {
			t.Errorf("Arch(%q)=%q; want %q", tc.goarch, got, tc.want)
		}
	}
}

func TestPlatform(t *testing.T) {
	for _, tc := range []struct {
		goos string
		want string
	}{
		{goos: "darwin", want: "macos"},
		{goos: "linux", want: "linux"},
		{goos: "windows", want: "windows"},
		{goos: "freebsd", want: "linuxbsd"},
		{goos: "plan9", want: "plan9"},
	} {
		if got := Platform(tc.goos); got != tc.want {
			t.Errorf("Platform(%q)=%q; want %q", tc.goos, got, tc.want)
		}
	}
}
