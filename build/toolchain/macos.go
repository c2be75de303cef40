// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package toolchain

import (
	"fmt"
	"path/filepath"
	"slices"
)

func (g *generator) macos() error {
	v := g.values
	env := g.env

	if !slices.Contains([]string{"universal", "arm64", "x86_64"}, env.Arch) {
		return fmt.Errorf("arch %s is not supported on macos; only universal, arm64 and x86_64 are supported", env.Arch)
	}

	env.SHLibSuffix = ".dylib"
	if g.host.Platform == "macos" {
		env.CC, env.CXX = "clang", "clang++"
		env.AR, env.Ranlib, env.AS = "ar", "ranlib", "as"
	} else {
		root := g.getenv("OSXCROSS_ROOT")
		if root == "" {
			return fmt.Errorf("macos target on %s host requires OSXCross; set OSXCROSS_ROOT: %w", g.host.Platform, ErrNoCompiler)
		}
		arch := "x86_64"
		if env.Arch == "arm64" {
			arch = "arm64"
		}
		basecmd := root + "/target/bin/" + arch + "-apple-" + v.Get("osxcross_sdk") + "-"
		env.CC = basecmd + "clang"
		env.CXX = basecmd + "clang++"
		env.AR = basecmd + "ar"
		env.Ranlib = basecmd + "ranlib"
		env.AS = basecmd + "as"
		// needed for linking.
		env.PathPrepend = append(env.PathPrepend, filepath.Join(root, "target", "bin"))
	}
	env.Link = env.CXX

	if env.Arch == "universal" {
		env.bothflags("-arch", "x86_64", "-arch", "arm64")
	} else {
		env.bothflags("-arch", env.Arch)
	}
	if target := v.Get("macos_deployment_target"); target != "default" {
		env.bothflags("-mmacosx-version-min=" + target)
	}
	if sdk := v.Get("macos_sdk_path"); sdk != "" {
		env.bothflags("-isysroot", sdk)
	}
	env.linkflags("-framework", "Foundation", "-Wl,-undefined,dynamic_lookup")

	if v.Bool("use_ubsan") || v.Bool("use_asan") || v.Bool("use_tsan") {
		env.ExtraSuffix += ".san"
		env.ccflags("-DSANITIZERS_ENABLED")

		if v.Bool("use_ubsan") {
			env.ccflags(ubsanChecks)
			env.linkflags("-fsanitize=undefined")
			env.ccflags("-fsanitize=nullability-return,nullability-arg,function,nullability-assign")
		}
		if v.Bool("use_asan") {
			env.ccflags("-fsanitize=address,pointer-subtract,pointer-compare")
			env.linkflags("-fsanitize=address")
		}
		if v.Bool("use_tsan") {
			env.bothflags("-fsanitize=thread")
		}
	}

	env.cppdefines("MACOS_ENABLED", "UNIX_ENABLED")

	if env.LTO == "auto" {
		env.LTO = "none"
	}
	return nil
}
