// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package toolchain

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
)

func (g *generator) usingClang() bool {
	return strings.Contains(filepath.Base(g.env.CC), "clang")
}

// isVanillaClang reports whether CXX is clang but not Apple clang.
func (g *generator) isVanillaClang(ctx context.Context) bool {
	if !g.usingClang() {
		return false
	}
	if g.host.Output == nil {
		return false
	}
	out, err := g.host.Output(ctx, g.env.CXX, "--version")
	if err != nil {
		log.Warnf("couldn't run %s to infer compiler version: %v", g.env.CXX, err)
		return false
	}
	return !strings.HasPrefix(strings.TrimSpace(out), "Apple")
}

// common sets compiler flags shared by all platforms: language
// standard, exceptions, symbol visibility, debug symbols, optimization
// and link-time optimization.
func (g *generator) common(ctx context.Context) error {
	v := g.values
	env := g.env

	switch env.LTO {
	case "none":
	case "thin", "full":
		log.Infof("using LTO: %s", env.LTO)
	default:
		return fmt.Errorf("unrecognized lto: %s", env.LTO)
	}

	if env.IsMSVC {
		env.cxxflags("/std:c++20")
	} else {
		env.cxxflags("-std=c++20")
	}

	switch {
	case v.Bool("disable_exceptions") && env.IsMSVC:
		env.cppdefines("_HAS_EXCEPTIONS=0")
	case v.Bool("disable_exceptions"):
		env.cxxflags("-fno-exceptions")
	case env.IsMSVC:
		env.cxxflags("/EHsc")
	}

	if env.IsMSVC {
		return g.msvcFlags()
	}

	switch v.Get("symbols_visibility") {
	case "visible":
		env.bothflags("-fvisibility=default")
	case "hidden":
		env.bothflags("-fvisibility=hidden")
	}

	if env.DebugSymbols {
		// dwarf-4 makes stacktraces of clang builds work with addr2line.
		env.ccflags("-gdwarf-4")
		if env.DevBuild {
			env.ccflags("-g3")
		} else {
			env.ccflags("-g2")
		}
	} else if g.usingClang() && !g.isVanillaClang(ctx) && !env.UseMinGW {
		// Apple's linker doesn't support -s.
		env.linkflags("-Wl,-S", "-Wl,-x", "-Wl,-dead_strip")
	} else {
		env.linkflags("-s")
	}

	switch env.Optimize {
	case "speed":
		env.ccflags("-O3")
	case "speed_trace":
		// -O2 is friendlier to debuggers than -O3.
		env.ccflags("-O2")
	case "size":
		env.ccflags("-Os")
	case "debug":
		env.ccflags("-Og")
	case "none":
		env.ccflags("-O0")
	}

	switch env.LTO {
	case "thin":
		if (env.Platform == "windows" || env.Platform == "linux") && !v.Bool("use_llvm") {
			return fmt.Errorf("ThinLTO is only compatible with LLVM; use use_llvm=yes or lto=full")
		}
		env.bothflags("-flto=thin")
	case "full":
		env.bothflags("-flto")
	}
	return nil
}

func (g *generator) msvcFlags() error {
	v := g.values
	env := g.env

	if env.DebugSymbols {
		env.ccflags("/Zi", "/FS")
		env.linkflags("/DEBUG:FULL")
	}

	switch env.Optimize {
	case "speed":
		env.ccflags("/O2")
		env.linkflags("/OPT:REF")
	case "speed_trace":
		env.ccflags("/O2")
		env.linkflags("/OPT:REF", "/OPT:NOICF")
	case "size":
		env.ccflags("/O1")
		env.linkflags("/OPT:REF")
	case "debug", "none":
		env.ccflags("/Od")
	}

	switch env.LTO {
	case "thin":
		if !v.Bool("use_llvm") {
			return fmt.Errorf("ThinLTO is only compatible with LLVM; use use_llvm=yes or lto=full")
		}
		env.bothflags("-flto=thin")
	case "full":
		if v.Bool("use_llvm") {
			env.bothflags("-flto")
			break
		}
		env.CCFlags = appendUnique(env.CCFlags, "/GL")
		env.ARFlags = appendUnique(env.ARFlags, "/LTCG")
		env.LinkFlags = appendUnique(env.LinkFlags, "/LTCG")
	}
	return nil
}
