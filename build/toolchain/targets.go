// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package toolchain

// targets configures build target features: editor or template, debug
// features, dev only code, optimization level and debug symbols.
//
// optimize and debug_symbols defaults depend on the target, and only
// command line arguments override them.
func (g *generator) targets() {
	v := g.values
	env := g.env

	target := v.Get("target")
	env.HotReload = target != "template_release"
	if v.IsSet("use_hot_reload") {
		env.HotReload = v.Bool("use_hot_reload")
	}
	editor := target == "editor"
	env.DevBuild = v.Bool("dev_build")
	debugFeatures := target == "editor" || target == "template_debug"

	switch {
	case env.DevBuild:
		env.Optimize = "none"
	case debugFeatures:
		env.Optimize = "speed_trace"
	default:
		env.Optimize = "speed"
	}
	if v.Explicit("optimize") {
		env.Optimize = v.Get("optimize")
	}
	env.DebugSymbols = env.DevBuild
	if v.Explicit("debug_symbols") {
		env.DebugSymbols = v.Bool("debug_symbols")
	}
	env.LTO = v.Get("lto")

	if env.HotReload {
		env.cppdefines("HOT_RELOAD_ENABLED")
	}
	if editor {
		env.cppdefines("TOOLS_ENABLED")
	}
	if debugFeatures {
		env.cppdefines("DEBUG_ENABLED", "DEBUG_METHODS_ENABLED")
	}
	if env.DevBuild {
		env.cppdefines("DEV_ENABLED")
	} else {
		// assert() is used only in third party code.
		env.cppdefines("NDEBUG")
	}
}
