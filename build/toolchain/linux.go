// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package toolchain

const ubsanChecks = "-fsanitize=undefined,shift,shift-exponent,integer-divide-by-zero,unreachable,vla-bound,null,return,signed-integer-overflow,bounds,float-divide-by-zero,float-cast-overflow,nonnull-attribute,returns-nonnull-attribute,bool,enum,vptr,pointer-overflow,builtin"

var linuxArchFlags = map[string][]string{
	"x86_64": {"-m64", "-march=x86-64"},
	"x86_32": {"-m32", "-march=i686"},
	"arm64":  {"-march=armv8-a"},
	"rv64":   {"-march=rv64gc"},
}

func (g *generator) linux() {
	v := g.values
	env := g.env

	env.CC, env.CXX = "gcc", "g++"
	if v.Bool("use_llvm") {
		env.CC, env.CXX = "clang", "clang++"
	} else if env.HotReload {
		env.cxxflags("-fno-gnu-unique")
	}
	env.AR, env.Ranlib, env.AS, env.Link = "ar", "ranlib", "as", env.CXX
	env.SHLibSuffix = ".so"

	env.ccflags("-fPIC", "-Wwrite-strings")
	env.linkflags("-Wl,-R,$ORIGIN")
	env.bothflags(linuxArchFlags[env.Arch]...)

	if v.Bool("use_ubsan") || v.Bool("use_asan") || v.Bool("use_lsan") || v.Bool("use_tsan") || v.Bool("use_msan") {
		env.ExtraSuffix += ".san"
		env.ccflags("-DSANITIZERS_ENABLED")

		if v.Bool("use_ubsan") {
			env.ccflags(ubsanChecks)
			env.linkflags("-fsanitize=undefined")
			if v.Bool("use_llvm") {
				env.ccflags("-fsanitize=nullability-return,nullability-arg,function,nullability-assign,implicit-integer-sign-change")
			} else {
				env.ccflags("-fsanitize=bounds-strict")
			}
		}
		if v.Bool("use_asan") {
			env.ccflags("-fsanitize=address,pointer-subtract,pointer-compare")
			env.linkflags("-fsanitize=address")
		}
		if v.Bool("use_lsan") {
			env.bothflags("-fsanitize=leak")
		}
		if v.Bool("use_tsan") {
			env.bothflags("-fsanitize=thread")
		}
		if v.Bool("use_msan") && v.Bool("use_llvm") {
			env.ccflags("-fsanitize=memory", "-fsanitize-memory-track-origins", "-fsanitize-recover=memory")
			env.linkflags("-fsanitize=memory")
		}
	}

	env.cppdefines("LINUX_ENABLED", "UNIX_ENABLED")

	if env.LTO == "auto" {
		env.LTO = "full"
	}
}
