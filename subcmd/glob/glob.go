// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package glob provides glob subcommand.
package glob

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/maruel/subcommands"
	"go.chromium.org/luci/common/cli"
	luciflag "go.chromium.org/luci/common/flag"

	"github.com/openvicproject/vicbuild/build/filegroup"
	"github.com/openvicproject/vicbuild/subcmd/exitstatus"
)

const usage = `list files matching patterns recursively.

 $ vicbuild glob -C <dir> -dir src -exclude 'deps/**' '*.cpp' '*.hpp'

A pattern without "/" matches the base name of files in any
subdirectory. A pattern with "/" matches the slash separated path
relative to -C, and "**" matches any number of directories.
Excludes take precedence over includes.
`

// Cmd returns the Command for the `glob` subcommand provided by this package.
func Cmd() *subcommands.Command {
	return &subcommands.Command{
		UsageLine: "glob [-C <dir>] [-dir <dir>]... [-exclude <pattern>]... <pattern>...",
		ShortDesc: "list files matching patterns recursively",
		LongDesc:  usage,
		CommandRun: func() subcommands.CommandRun {
			r := &run{}
			r.init()
			return r
		},
	}
}

type run struct {
	subcommands.CommandRunBase

	dir      string
	dirs     []string
	excludes []string
	format   string
}

func (c *run) init() {
	c.Flags.StringVar(&c.dir, "C", ".", "root directory")
	c.Flags.Var(luciflag.StringSlice(&c.dirs), "dir", "directory to search, relative to -C. can be repeated. defaults to .")
	c.Flags.Var(luciflag.StringSlice(&c.excludes), "exclude", "pattern to exclude. can be repeated")
	c.Flags.StringVar(&c.format, "format", "text", "output format. text or json")
}

func (c *run) Run(a subcommands.Application, args []string, env subcommands.Env) int {
	started := time.Now()
	ctx := cli.GetContext(a, c, env)
	err := c.run(ctx, args)
	return exitstatus.Report(a.GetErr(), started, err)
}

func (c *run) run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return exitstatus.Flagf("glob: no patterns given")
	}
	spec := filegroup.Spec{
		Dirs:     c.dirs,
		Includes: args,
		Excludes: c.excludes,
	}
	if len(spec.Dirs) == 0 {
		spec.Dirs = []string{"."}
	}
	if err := spec.Validate(); err != nil {
		return exitstatus.FlagError{Err: err}
	}
	files, err := filegroup.Glob(ctx, os.DirFS(c.dir), spec)
	if err != nil {
		return err
	}
	w := bufio.NewWriter(os.Stdout)
	defer w.Flush()
	switch c.format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", " ")
		return enc.Encode(struct {
			Spec  filegroup.Spec `json:"spec"`
			Files []string       `json:"files"`
		}{
			Spec:  spec,
			Files: files,
		})
	case "text":
		for _, f := range files {
			fmt.Fprintln(w, f)
		}
		return nil
	default:
		return exitstatus.Flagf("glob: unknown format %q", c.format)
	}
}
