// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// vicbuild generates C++ headers for the OpenVic build and resolves
// toolchain flags for SCons.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/maruel/subcommands"
	"go.chromium.org/luci/common/cli"

	"github.com/openvicproject/vicbuild/subcmd/authors"
	"github.com/openvicproject/vicbuild/subcmd/flags"
	"github.com/openvicproject/vicbuild/subcmd/gen"
	"github.com/openvicproject/vicbuild/subcmd/gitinfo"
	"github.com/openvicproject/vicbuild/subcmd/glob"
	"github.com/openvicproject/vicbuild/subcmd/help"
	"github.com/openvicproject/vicbuild/subcmd/ledger"
	"github.com/openvicproject/vicbuild/subcmd/license"
	"github.com/openvicproject/vicbuild/subcmd/version"
	"github.com/openvicproject/vicbuild/ui"
)

const vicbuildVersion = "v0.1.0"

var (
	verbose  bool
	logLevel string
)

func main() {
	os.Exit(vicbuildMain())
}

func getApplication() *cli.Application {
	return &cli.Application{
		Name:  "vicbuild",
		Title: "OpenVic build helper",
		Context: func(ctx context.Context) context.Context {
			return ctx
		},
		Commands: []*subcommands.Command{
			gen.Cmd(),
			license.Cmd(),
			authors.Cmd(),
			gitinfo.Cmd(),
			flags.Cmd(),
			glob.Cmd(),
			ledger.Cmd(),

			help.Cmd(),
			version.Cmd(vicbuildVersion),
		},
	}
}

func vicbuildMain() int {
	flag.BoolVar(&verbose, "v", false, "verbose logging. same as -log_level=debug")
	flag.StringVar(&logLevel, "log_level", "warn", "log level. debug, info, warn or error")
	flag.Usage = func() {
		out := flag.CommandLine.Output()
		fmt.Fprintf(out, "Usage of %s:\n", os.Args[0])
		fmt.Fprintf(out, "global flags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	level, err := log.ParseLevel(logLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "bad -log_level: %v\n", err)
		return 2
	}
	if verbose {
		level = log.DebugLevel
	}
	log.SetLevel(level)
	log.SetOutput(os.Stderr)
	log.SetReportTimestamp(verbose)

	ui.Init()
	defer ui.Restore()

	// Print a stack trace when a panic occurs.
	defer func() {
		if r := recover(); r != nil {
			const size = 64 << 10
			buf := make([]byte, size)
			buf = buf[:runtime.Stack(buf, false)]
			log.Fatalf("panic: %v\n%s", r, buf)
		}
	}()

	// Print build information to the log.
	buildinfo, ok := debug.ReadBuildInfo()
	if ok {
		log.Debugf("main module: %s %s", moduleInfo(&buildinfo.Main), vcsInfo(buildinfo))
		for _, m := range buildinfo.Deps {
			log.Debugf("deps module: %s", moduleInfo(m))
		}
	}
	return subcommands.Run(getApplication(), flag.Args())
}

func moduleInfo(m *debug.Module) string {
	if m == nil {
		return "<nil>"
	}
	return fmt.Sprintf("path:%s version:%s sum:%s replace:%s", m.Path, m.Version, m.Sum, moduleInfo(m.Replace))
}

func vcsInfo(buildinfo *debug.BuildInfo) string {
	m := make(map[string]string)
	for _, bs := range buildinfo.Settings {
		if strings.HasPrefix(bs.Key, "vcs.") {
			m[bs.Key] = bs.Value
		}
	}
	return fmt.Sprintf("vcs[revision=%s time=%s modified=%s]", m["vcs.revision"], m["vcs.time"], m["vcs.modified"])
}
