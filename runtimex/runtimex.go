// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package runtimex provides host information missing in the runtime
// package.
package runtimex

import "runtime"

var ncpu int

func init() {
	ncpu = getproccount()
	if ncpu == 0 {
		ncpu = runtime.NumCPU()
	}
}

// NumCPU returns the number of logical CPUs usable by the current process.
// On Windows, runtime.NumCPU() only counts a single processor group
// (up to 64), so GetActiveProcessorCount is used for all groups.
func NumCPU() int {
	return ncpu
}

// archNames maps GOARCH to architecture names used by the build options.
var archNames = map[string]string{
	"386":     "x86_32",
	"amd64":   "x86_64",
	"arm":     "arm32",
	"arm64":   "arm64",
	"ppc64":   "ppc64",
	"ppc64le": "ppc64",
	"riscv64": "rv64",
	"wasm":    "wasm32",
}

// Arch returns the architecture name for goarch, e.g. "x86_64" for
// "amd64". Unknown values are returned as is.
func Arch(goarch string) string {
	if a, ok := archNames[goarch]; ok {
		return a
	}
	return goarch
}

// HostArch returns the architecture name of the running host.
func HostArch() string {
	return Arch(runtime.GOARCH)
}

// osNames maps GOOS to platform names used by the build options.
var osNames = map[string]string{
	"darwin":  "macos",
	"linux":   "linux",
	"windows": "windows",
	"freebsd": "linuxbsd",
	"openbsd": "linuxbsd",
	"netbsd":  "linuxbsd",
	"android": "android",
	"ios":     "ios",
	"js":      "web",
}

// Platform returns the platform name for goos, e.g. "macos" for "darwin".
// Unknown values are returned as is.
func Platform(goos string) string {
	if p, ok := osNames[goos]; ok {
		return p
	}
	return goos
}

// HostPlatform returns the platform name of the running host.
func HostPlatform() string {
	return Platform(runtime.GOOS)
}
