// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package toolchain

import (
	"fmt"
	"path/filepath"
)

var msvcTargetArch = map[string]string{
	"x86_64": "amd64",
	"x86_32": "x86",
	"arm64":  "arm64",
}

// msvcFound reports whether MSVC is available on a Windows host.
func (g *generator) msvcFound() bool {
	if g.host.Platform != "windows" {
		return false
	}
	if g.getenv("VCINSTALLDIR") != "" || g.host.found("cl") {
		return true
	}
	if pf := g.getenv("ProgramFiles(x86)"); pf != "" {
		return g.host.found(filepath.Join(pf, "Microsoft Visual Studio", "Installer", "vswhere.exe"))
	}
	return false
}

func mingwPrefix(arch string) string {
	if arch == "x86_32" {
		return "i686-w64-mingw32-"
	}
	return arch + "-w64-mingw32-"
}

// mingwFound reports whether MinGW is available.
// On a Windows host, unprefixed gcc in PATH is accepted.
func (g *generator) mingwFound() bool {
	if g.host.Platform == "windows" && g.host.found("gcc") {
		return true
	}
	return g.host.found(mingwPrefix(g.env.Arch) + "gcc")
}

func (g *generator) windows() error {
	v := g.values
	env := g.env

	msvc := g.msvcFound()
	mingw := g.mingwFound()
	if !msvc && !mingw {
		return fmt.Errorf("could not find installation of MSVC or MinGW; install MSVC with C++ or MinGW first: %w", ErrNoCompiler)
	}

	switch {
	case !v.Bool("use_mingw") && msvc:
		env.TargetArch = msvcTargetArch[env.Arch]
		env.IsMSVC = true
		env.CC, env.CXX, env.Link, env.AR = "cl", "cl", "link", "lib"
		env.AS = "ml64"
		if env.Arch == "x86_32" {
			env.AS = "ml"
		}
		env.SHLibPrefix, env.SHLibSuffix, env.ImpLibPrefix = "", ".dll", ""

		env.cppdefines("TYPED_METHOD_BIND", "NOMINMAX")
		env.ccflags("/utf-8", "/Zc:preprocessor")
		env.linkflags("/WX")

		if v.Bool("use_clang_cl") {
			env.CC, env.CXX = "clang-cl", "clang-cl"
		}
		switch {
		case v.Bool("debug_crt"):
			// static debug CRT breaks thread_local.
			env.CCFlags = appendUnique(env.CCFlags, "/MDd")
		case v.Bool("use_static_cpp"):
			env.ccflags("/MT")
		default:
			env.ccflags("/MD")
		}

	case g.host.Platform == "windows" && mingw:
		env.UseMinGW = true
		env.CC, env.CXX, env.AR, env.Ranlib, env.AS, env.Link = "gcc", "g++", "ar", "ranlib", "as", "g++"
		env.SHLibPrefix, env.SHLibSuffix, env.ImpLibPrefix = "", ".dll", ""
		g.mingwFlags()

	case mingw:
		env.UseMinGW = true
		prefix := mingwPrefix(env.Arch)
		env.CC = prefix + "gcc"
		env.CXX = prefix + "g++"
		env.AR = prefix + "ar"
		env.Ranlib = prefix + "ranlib"
		env.AS = prefix + "as"
		env.Link = prefix + "g++"
		env.SHLibSuffix = ".dll"
		g.mingwFlags()

	default:
		return fmt.Errorf("use_mingw is set but MinGW is not installed; install MinGW first: %w", ErrNoCompiler)
	}

	if v.Bool("use_asan") {
		env.ExtraSuffix += ".san"
		if env.IsMSVC {
			env.linkflags("/INFERASANLIBS")
			env.ccflags("/fsanitize=address")
		} else {
			env.bothflags("-fsanitize=address")
		}
	}

	env.cppdefines("WINDOWS_ENABLED")

	if env.LTO == "auto" {
		env.LTO = "none"
	}
	return nil
}

func (g *generator) mingwFlags() {
	env := g.env
	env.ccflags("-Wwrite-strings")
	env.linkflags("-Wl,--no-undefined")
	if g.values.Bool("use_static_cpp") {
		env.linkflags("-static", "-static-libgcc", "-static-libstdc++")
	}
}
