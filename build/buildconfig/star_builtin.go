// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package buildconfig

import (
	"os"

	"go.starlark.net/starlark"
	"go.starlark.net/starlarkstruct"

	"github.com/openvicproject/vicbuild/runtimex"
)

// HostInfo is the host information exposed to options files.
type HostInfo struct {
	// Platform is the host platform name, e.g. "linux", "macos".
	Platform string
	// Arch is the host architecture name, e.g. "x86_64".
	Arch string
	// NumCPU is the number of logical CPUs.
	NumCPU int
	// Getenv looks up environment variables. os.Getenv if nil.
	Getenv func(string) string
}

// DefaultHostInfo returns HostInfo of the running host.
func DefaultHostInfo() HostInfo {
	return HostInfo{
		Platform: runtimex.HostPlatform(),
		Arch:     runtimex.HostArch(),
		NumCPU:   runtimex.NumCPU(),
		Getenv:   os.Getenv,
	}
}

// predeclared returns the predeclared names of options files.
//
//	host.platform
//	host.arch
//	host.num_cpu
//	getenv(name, default="")
//	path.base / path.dir / path.join / path.rel / path.isabs
//	struct(**kwargs)
func predeclared(host HostInfo) starlark.StringDict {
	hostModule := &starlarkstruct.Module{
		Name: "host",
		Members: starlark.StringDict{
			"platform": starlark.String(host.Platform),
			"arch":     starlark.String(host.Arch),
			"num_cpu":  starlark.MakeInt(host.NumCPU),
		},
	}
	hostModule.Freeze()

	getenv := host.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}
	return starlark.StringDict{
		"host": hostModule,
		"getenv": starlark.NewBuiltin("getenv", func(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
			var name, def string
			err := starlark.UnpackArgs(fn.Name(), args, kwargs, "name", &name, "default?", &def)
			if err != nil {
				return starlark.None, err
			}
			if v := getenv(name); v != "" {
				return starlark.String(v), nil
			}
			return starlark.String(def), nil
		}),
		"path":   starPath(),
		"struct": starlark.NewBuiltin("struct", starlarkstruct.Make),
	}
}
