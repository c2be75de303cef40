// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package gitinfo provides gitinfo subcommand.
package gitinfo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/maruel/subcommands"
	"go.chromium.org/luci/common/cli"

	"github.com/openvicproject/vicbuild/build/generate"
	"github.com/openvicproject/vicbuild/codegen"
	"github.com/openvicproject/vicbuild/gitinfo"
	"github.com/openvicproject/vicbuild/subcmd/exitstatus"
)

const usage = `show git revision information.

 $ vicbuild gitinfo [-C <dir>] [-format text|json]

prints commit hash, commit timestamp, tag and release of the checkout.
Tag and release fall back to <env_prefix>_TAG and <env_prefix>_RELEASE
environment variables when git or gh are not available.

 $ vicbuild gitinfo -o src/gen/git_info.gen.hpp

writes the version header instead.
`

// Cmd returns the Command for the `gitinfo` subcommand provided by this package.
func Cmd() *subcommands.Command {
	return &subcommands.Command{
		UsageLine: "gitinfo [-C <dir>] [-format text|json] [-o <output>]",
		ShortDesc: "show git revision information",
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

	dir       string
	envPrefix string
	format    string
	output    string
	prefix    string
	namespace string
	check     bool
	diff      bool
}

func (c *run) init() {
	c.Flags.StringVar(&c.dir, "C", ".", "top directory of the git checkout")
	c.Flags.StringVar(&c.envPrefix, "env_prefix", "OPENVIC", "prefix of environment variables for default tag and release")
	c.Flags.StringVar(&c.format, "format", "text", "output format. text or json")
	c.Flags.StringVar(&c.output, "o", "", "write version header to the file. - for stdout")
	c.Flags.StringVar(&c.prefix, "prefix", codegen.DefaultPrefix, "prefix of generated constant and type names")
	c.Flags.StringVar(&c.namespace, "namespace", codegen.DefaultNamespace, "C++ namespace of generated names")
	c.Flags.BoolVar(&c.check, "check", false, "check the output is up to date without writing")
	c.Flags.BoolVar(&c.diff, "diff", false, "print diff of changed output")
}

func (c *run) Run(a subcommands.Application, args []string, env subcommands.Env) int {
	started := time.Now()
	ctx := cli.GetContext(a, c, env)
	err := c.run(ctx, args)
	return exitstatus.Report(a.GetErr(), started, err)
}

func (c *run) run(ctx context.Context, args []string) error {
	if len(args) != 0 {
		return exitstatus.Flagf("gitinfo: position arguments not expected: %q", args)
	}
	repo := gitinfo.Repo{
		Dir:       c.dir,
		EnvPrefix: c.envPrefix,
	}
	if c.output != "" {
		return c.header(ctx, repo)
	}
	info, err := repo.Info(ctx)
	if err != nil {
		return err
	}
	switch c.format {
	case "text":
		return writeText(os.Stdout, info)
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", " ")
		return enc.Encode(info)
	default:
		return exitstatus.Flagf("gitinfo: unknown format %q", c.format)
	}
}

func (c *run) header(ctx context.Context, repo gitinfo.Repo) error {
	g := &generate.Version{
		Repo: repo,
		Out:  c.output,
		Options: codegen.Options{
			Prefix:    c.prefix,
			Namespace: c.namespace,
		},
	}
	if c.output == "-" {
		buf, err := g.Generate(ctx)
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(buf)
		return err
	}
	opts := generate.Options{Check: c.check}
	if c.diff {
		opts.Diff = os.Stdout
	}
	_, err := generate.Run(ctx, []generate.Generator{g}, opts)
	return err
}

func writeText(w io.Writer, info gitinfo.Info) error {
	_, err := fmt.Fprintf(w, "hash\t%s\ntimestamp\t%d\ntag\t%s\nrelease\t%s\n", info.Hash, info.Timestamp, info.Tag, info.Release)
	return err
}
