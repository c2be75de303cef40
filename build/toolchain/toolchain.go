// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package toolchain selects compilers and flags of the extension build
// for the target platform, from resolved build options.
package toolchain

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"slices"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/openvicproject/vicbuild/build/buildconfig"
	"github.com/openvicproject/vicbuild/runtimex"
	"github.com/openvicproject/vicbuild/toolsupport/cmdutil"
	"github.com/openvicproject/vicbuild/toolsupport/shutil"
)

// ErrNoCompiler is returned when no usable compiler is found for the
// target platform.
var ErrNoCompiler = errors.New("no compiler found")

// Host provides access to the build host.
type Host struct {
	// Platform is the host platform name, e.g. "linux", "macos", "windows".
	Platform string
	// Arch is the host architecture name, e.g. "x86_64".
	Arch string

	Getenv   func(string) string
	LookPath func(string) (string, error)
	// Output runs the command and returns its stdout.
	Output func(ctx context.Context, name string, args ...string) (string, error)
}

// DefaultHost returns Host of the running system.
func DefaultHost() Host {
	return Host{
		Platform: runtimex.HostPlatform(),
		Arch:     runtimex.HostArch(),
		Getenv:   os.Getenv,
		LookPath: exec.LookPath,
		Output: func(ctx context.Context, name string, args ...string) (string, error) {
			return cmdutil.Output(ctx, "", name, args...)
		},
	}
}

func (h Host) found(name string) bool {
	if h.LookPath == nil {
		return false
	}
	p, err := h.LookPath(name)
	if err != nil {
		return false
	}
	log.Debugf("found %s at %s", name, p)
	return true
}

// Env is the selected toolchain of the build.
type Env struct {
	Platform string `json:"platform"`
	Target   string `json:"target"`
	Arch     string `json:"arch"`

	CC     string `json:"CC"`
	CXX    string `json:"CXX"`
	AR     string `json:"AR"`
	Ranlib string `json:"RANLIB"`
	AS     string `json:"AS"`
	Link   string `json:"LINK"`

	CCFlags    []string `json:"CCFLAGS"`
	CFlags     []string `json:"CFLAGS"`
	CXXFlags   []string `json:"CXXFLAGS"`
	LinkFlags  []string `json:"LINKFLAGS"`
	ARFlags    []string `json:"ARFLAGS"`
	CPPDefines []string `json:"CPPDEFINES"`

	// PathPrepend lists directories to prepend to PATH of tools.
	PathPrepend []string `json:"path_prepend,omitempty"`

	SHLibPrefix  string `json:"SHLIBPREFIX"`
	SHLibSuffix  string `json:"SHLIBSUFFIX"`
	ImpLibPrefix string `json:"IMPLIBPREFIX"`

	// TargetArch is MSVC's target architecture name.
	TargetArch string `json:"TARGET_ARCH,omitempty"`
	IsMSVC     bool   `json:"is_msvc"`
	UseMinGW   bool   `json:"use_mingw"`

	ExtraSuffix  string `json:"extra_suffix"`
	Optimize     string `json:"optimize"`
	LTO          string `json:"lto"`
	DebugSymbols bool   `json:"debug_symbols"`
	DevBuild     bool   `json:"dev_build"`
	HotReload    bool   `json:"use_hot_reload"`
}

// Suffix returns the suffix of output library names,
// e.g. ".linux.template_debug.x86_64".
func (e *Env) Suffix() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, ".%s.%s", e.Platform, e.Target)
	if e.DevBuild {
		sb.WriteString(".dev")
	}
	fmt.Fprintf(&sb, ".%s%s", e.Arch, e.ExtraSuffix)
	return sb.String()
}

// Var is a named value of Env.
type Var struct {
	Name  string
	Value string
}

// Vars returns values of the env in a fixed order.
// Lists are joined with shell quoting.
func (e *Env) Vars() []Var {
	return []Var{
		{"PLATFORM", e.Platform},
		{"TARGET", e.Target},
		{"ARCH", e.Arch},
		{"CC", e.CC},
		{"CXX", e.CXX},
		{"AR", e.AR},
		{"RANLIB", e.Ranlib},
		{"AS", e.AS},
		{"LINK", e.Link},
		{"CCFLAGS", shutil.Join(e.CCFlags)},
		{"CFLAGS", shutil.Join(e.CFlags)},
		{"CXXFLAGS", shutil.Join(e.CXXFlags)},
		{"LINKFLAGS", shutil.Join(e.LinkFlags)},
		{"ARFLAGS", shutil.Join(e.ARFlags)},
		{"CPPDEFINES", shutil.Join(e.CPPDefines)},
		{"PATH_PREPEND", shutil.Join(e.PathPrepend)},
		{"SHLIBPREFIX", e.SHLibPrefix},
		{"SHLIBSUFFIX", e.SHLibSuffix},
		{"IMPLIBPREFIX", e.ImpLibPrefix},
		{"TARGET_ARCH", e.TargetArch},
		{"IS_MSVC", buildconfig.FormatBool(e.IsMSVC)},
		{"USE_MINGW", buildconfig.FormatBool(e.UseMinGW)},
		{"OPTIMIZE", e.Optimize},
		{"LTO", e.LTO},
		{"DEBUG_SYMBOLS", buildconfig.FormatBool(e.DebugSymbols)},
		{"SUFFIX", e.Suffix()},
	}
}

func (e *Env) ccflags(flags ...string) { e.CCFlags = append(e.CCFlags, flags...) }
func (e *Env) cxxflags(flags ...string) { e.CXXFlags = append(e.CXXFlags, flags...) }
func (e *Env) linkflags(flags ...string) { e.LinkFlags = append(e.LinkFlags, flags...) }
func (e *Env) cppdefines(defs ...string) { e.CPPDefines = append(e.CPPDefines, defs...) }
func (e *Env) bothflags(flags ...string) {
	e.ccflags(flags...)
	e.linkflags(flags...)
}

func appendUnique(list []string, flags ...string) []string {
	for _, f := range flags {
		if !slices.Contains(list, f) {
			list = append(list, f)
		}
	}
	return list
}

// Platforms are the supported target platforms.
var Platforms = []string{"linux", "macos", "windows"}

// Archs are the supported target architectures. "" selects the host
// architecture, or "universal" on macOS.
var Archs = []string{"", "universal", "x86_32", "x86_64", "arm32", "arm64", "rv64", "ppc32", "ppc64", "wasm32"}

func defaultPlatform() string {
	p := runtimex.HostPlatform()
	if slices.Contains(Platforms, p) {
		return p
	}
	return "linux"
}

// Register declares the build options of the toolchain in vars.
func Register(vars *buildconfig.Variables) {
	vars.AddEnum("platform", "Target platform", defaultPlatform(), Platforms...)
	vars.AddEnum("target", "Compilation target", "template_debug", "editor", "template_release", "template_debug")
	vars.AddEnum("arch", "CPU architecture", "", Archs...)
	vars.AddBool("use_hot_reload", "Enable the extra accounting required to support hot reload", false)
	vars.AddString("extra_suffix", "Custom extra suffix added to the base filename of all generated binary files", "")
	vars.AddString("ccflags", "Custom flags for both the C and C++ compilers", "")
	vars.AddString("cflags", "Custom flags for the C compiler", "")
	vars.AddString("cxxflags", "Custom flags for the C++ compiler", "")
	vars.AddString("linkflags", "Custom flags for the linker", "")
	vars.AddEnum("symbols_visibility", "Symbols visibility on GNU platforms", "auto", "auto", "visible", "hidden")
	vars.AddBool("disable_exceptions", "Force disabling exception handling code", true)

	vars.AddEnum("optimize", "The desired optimization flags", "speed_trace", "none", "custom", "debug", "speed", "speed_trace", "size")
	vars.AddEnum("lto", "Link-time optimization", "none", "none", "auto", "thin", "full")
	vars.AddBool("debug_symbols", "Build with debugging symbols", true)
	vars.AddBool("dev_build", "Developer build with dev-only debugging code (DEV_ENABLED)", false)

	vars.AddBool("use_llvm", "Use the LLVM compiler - only effective when targeting Linux", false)
	vars.AddBool("use_ubsan", "Use LLVM/GCC compiler undefined behavior sanitizer (UBSAN)", false)
	vars.AddBool("use_asan", "Use LLVM/GCC compiler address sanitizer (ASAN)", false)
	vars.AddBool("use_lsan", "Use LLVM/GCC compiler leak sanitizer (LSAN)", false)
	vars.AddBool("use_tsan", "Use LLVM/GCC compiler thread sanitizer (TSAN)", false)
	vars.AddBool("use_msan", "Use LLVM compiler memory sanitizer (MSAN)", false)

	vars.AddString("macos_deployment_target", "macOS deployment target", "default")
	vars.AddString("macos_sdk_path", "macOS SDK path", "")
	vars.AddString("osxcross_sdk", "OSXCross SDK version", "darwin16")

	vars.AddBool("use_mingw", "Use the MinGW compiler instead of MSVC - only effective on Windows", false)
	vars.AddBool("use_clang_cl", "Use the clang driver instead of MSVC - only effective on Windows", false)
	vars.AddBool("use_static_cpp", "Link MinGW/MSVC C++ runtime libraries statically", false)
	vars.AddBool("debug_crt", "Compile with MSVC's debug CRT (/MDd)", false)
	vars.AddBool("use_asan", "Use address sanitizer (ASAN)", false)
}

type generator struct {
	host   Host
	values *buildconfig.Values
	env    *Env
}

func (g *generator) getenv(key string) string {
	if g.host.Getenv == nil {
		return ""
	}
	return g.host.Getenv(key)
}

// Generate selects the toolchain for values on host.
// Computed options (optimize, lto, debug_symbols, arch, use_mingw) are
// set back to values.
func Generate(ctx context.Context, host Host, values *buildconfig.Values) (*Env, error) {
	env := &Env{
		Platform:     values.Get("platform"),
		Target:       values.Get("target"),
		Arch:         values.Get("arch"),
		SHLibPrefix:  "lib",
		ImpLibPrefix: "lib",
	}
	if env.Arch == "" {
		env.Arch = host.Arch
		if env.Platform == "macos" {
			env.Arch = "universal"
		}
	}
	if env.Arch == "universal" && env.Platform != "macos" {
		return nil, fmt.Errorf("arch universal is only supported on macos, not %s", env.Platform)
	}
	if s := values.Get("extra_suffix"); s != "" {
		env.ExtraSuffix = "." + strings.TrimPrefix(s, ".")
	}
	g := &generator{host: host, values: values, env: env}
	g.targets()

	var err error
	switch env.Platform {
	case "linux":
		g.linux()
	case "macos":
		err = g.macos()
	case "windows":
		err = g.windows()
	default:
		err = fmt.Errorf("unsupported platform %q", env.Platform)
	}
	if err != nil {
		return nil, err
	}
	err = g.common(ctx)
	if err != nil {
		return nil, err
	}
	err = g.userFlags()
	if err != nil {
		return nil, err
	}
	for _, v := range []buildconfig.Arg{
		{Key: "arch", Value: env.Arch},
		{Key: "optimize", Value: env.Optimize},
		{Key: "lto", Value: env.LTO},
		{Key: "debug_symbols", Value: buildconfig.FormatBool(env.DebugSymbols)},
		{Key: "use_mingw", Value: buildconfig.FormatBool(env.UseMinGW)},
	} {
		err := values.Set(v.Key, v.Value)
		if err != nil {
			return nil, err
		}
	}
	log.Infof("toolchain %s: CC=%s CXX=%s optimize=%s lto=%s", env.Suffix(), env.CC, env.CXX, env.Optimize, env.LTO)
	return env, nil
}

// userFlags appends user specified flags after the selected flags.
func (g *generator) userFlags() error {
	for _, f := range []struct {
		name string
		list *[]string
	}{
		{"ccflags", &g.env.CCFlags},
		{"cflags", &g.env.CFlags},
		{"cxxflags", &g.env.CXXFlags},
		{"linkflags", &g.env.LinkFlags},
	} {
		s := strings.TrimSpace(g.values.Get(f.name))
		if s == "" {
			continue
		}
		words, err := cmdutil.Split(s)
		if err != nil {
			return fmt.Errorf("option %s: %w", f.name, err)
		}
		*f.list = append(*f.list, words...)
	}
	return nil
}
