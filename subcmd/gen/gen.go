// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package gen provides gen subcommand.
package gen

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/maruel/subcommands"
	"go.chromium.org/luci/common/cli"
	"go.chromium.org/luci/common/system/signals"

	"github.com/openvicproject/vicbuild/authors"
	"github.com/openvicproject/vicbuild/build/generate"
	"github.com/openvicproject/vicbuild/codegen"
	"github.com/openvicproject/vicbuild/gitinfo"
	"github.com/openvicproject/vicbuild/subcmd/exitstatus"
	"github.com/openvicproject/vicbuild/ui"
)

// Default output file names in -out_dir.
const (
	LicenseOutput = "license_info.gen.hpp"
	AuthorsOutput = "author_info.gen.hpp"
	VersionOutput = "git_info.gen.hpp"
)

const usage = `generate all headers.

 $ vicbuild gen -C <dir> -out_dir src/gen

runs license, authors and version generators concurrently, and
writes headers that differ from the current outputs.
Input files are relative to -C.

With -watch, it keeps running and regenerates headers when their
inputs change, until interrupted.
`

// Cmd returns the Command for the `gen` subcommand provided by this package.
func Cmd() *subcommands.Command {
	return &subcommands.Command{
		UsageLine: "gen [-C <dir>] [-out_dir <dir>] [-check] [-watch]",
		ShortDesc: "generate all headers",
		LongDesc:  usage,
		CommandRun: func() subcommands.CommandRun {
			r := &run{sections: make(authors.SectionFlag)}
			r.init()
			return r
		},
	}
}

type run struct {
	subcommands.CommandRunBase

	dir         string
	copyright   string
	licenseFile string
	authorsFile string
	sections    authors.SectionFlag
	envPrefix   string
	outDir      string
	prefix      string
	namespace   string
	check       bool
	diff        bool
	force       bool
	depfile     bool
	jobs        int
	watch       bool
	debounce    time.Duration
	lockFile    string
}

func (c *run) init() {
	c.Flags.StringVar(&c.dir, "C", ".", "top directory of the project")
	c.Flags.StringVar(&c.copyright, "copyright", "COPYRIGHT", "copyright file in Debian machine-readable format")
	c.Flags.StringVar(&c.licenseFile, "license", "LICENSE.md", "project license text file")
	c.Flags.StringVar(&c.authorsFile, "authors", "AUTHORS.md", "authors file")
	c.Flags.Var(c.sections, "section", "authors section to read as <Title>=<CONST>. can be repeated")
	c.Flags.StringVar(&c.envPrefix, "env_prefix", "OPENVIC", "prefix of environment variables for default tag and release")
	c.Flags.StringVar(&c.outDir, "out_dir", filepath.Join("src", "gen"), "output directory of headers")
	c.Flags.StringVar(&c.prefix, "prefix", codegen.DefaultPrefix, "prefix of generated constant and type names")
	c.Flags.StringVar(&c.namespace, "namespace", codegen.DefaultNamespace, "C++ namespace of generated names")
	c.Flags.BoolVar(&c.check, "check", false, "check outputs are up to date without writing")
	c.Flags.BoolVar(&c.diff, "diff", false, "print diff of changed outputs")
	c.Flags.BoolVar(&c.force, "force", false, "run generators even if outputs are up to date")
	c.Flags.BoolVar(&c.depfile, "depfile", false, "write <output>.d and skip generators whose outputs are up to date")
	c.Flags.IntVar(&c.jobs, "jobs", 0, "number of concurrent generators. 0 means number of cpus")
	c.Flags.BoolVar(&c.watch, "watch", false, "regenerate headers when inputs change")
	c.Flags.DurationVar(&c.debounce, "debounce", generate.DefaultDebounce, "quiet period after input change in -watch")
	c.Flags.StringVar(&c.lockFile, "lock", ".vicbuild_lock", "lock file relative to -C. empty disables locking")
}

func (c *run) Run(a subcommands.Application, args []string, env subcommands.Env) int {
	started := time.Now()
	ctx := cli.GetContext(a, c, env)
	err := c.run(ctx, args)
	return exitstatus.Report(a.GetErr(), started, err)
}

func (c *run) run(ctx context.Context, args []string) error {
	if len(args) != 0 {
		return exitstatus.Flagf("gen: position arguments not expected: %q", args)
	}
	if c.check && c.watch {
		return exitstatus.Flagf("gen: -check and -watch are exclusive")
	}
	ctx, cancel := context.WithCancel(ctx)
	defer signals.HandleInterrupt(cancel)()

	id := uuid.New().String()
	log.Info("gen", "id", id, "dir", c.dir, "out_dir", c.outDir)

	if c.lockFile != "" && !c.check {
		release, err := acquireLock(ctx, c.path(c.lockFile))
		if err != nil {
			return err
		}
		defer release()
	}

	gens := c.generators()
	opts := generate.Options{
		Check:    c.check,
		Force:    c.force,
		Depfile:  c.depfile,
		Jobs:     c.jobs,
		Debounce: c.debounce,
	}
	if c.diff {
		opts.Diff = os.Stdout
	}
	if c.watch {
		err := generate.Watch(ctx, gens, opts, func(results []generate.Result, err error) {
			if err != nil {
				log.Errorf("gen: %v", err)
				return
			}
			report(results)
		})
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	}
	spin := ui.Default.NewSpinner()
	spin.Start("generating %d headers", len(gens))
	results, err := generate.Run(ctx, gens, opts)
	if err != nil {
		spin.Stop(err)
		return err
	}
	spin.Stop(nil)
	report(results)
	return nil
}

// path returns fname relative to -C unless it is absolute.
func (c *run) path(fname string) string {
	if filepath.IsAbs(fname) {
		return fname
	}
	return filepath.Join(c.dir, fname)
}

func (c *run) generators() []generate.Generator {
	opts := codegen.Options{
		Prefix:    c.prefix,
		Namespace: c.namespace,
	}
	outDir := c.path(c.outDir)
	g := &generate.Authors{
		File:    c.path(c.authorsFile),
		Out:     filepath.Join(outDir, AuthorsOutput),
		Options: opts,
	}
	if len(c.sections) > 0 {
		g.Sections = c.sections
	}
	return []generate.Generator{
		&generate.License{
			Copyright:   c.path(c.copyright),
			LicenseFile: c.path(c.licenseFile),
			Out:         filepath.Join(outDir, LicenseOutput),
			Options:     opts,
		},
		g,
		&generate.Version{
			Repo: gitinfo.Repo{
				Dir:       c.dir,
				EnvPrefix: c.envPrefix,
			},
			Out:     filepath.Join(outDir, VersionOutput),
			Options: opts,
		},
	}
}

func report(results []generate.Result) {
	var msgs []string
	for _, r := range results {
		var status string
		switch {
		case r.UpToDate:
			status = "up to date"
		case r.Changed:
			status = ui.Colorize(ui.Green, "updated")
		default:
			status = "unchanged"
		}
		msgs = append(msgs, fmt.Sprintf("%6s %-8s %s %s", ui.FormatDuration(r.Duration), r.Name, r.Output, status))
	}
	if len(msgs) == 0 {
		return
	}
	msgs[len(msgs)-1] += "\n"
	ui.Default.PrintLines(append([]string{"\n"}, msgs...)...)
}
