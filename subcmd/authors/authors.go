// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package authors provides authors subcommand.
package authors

import (
	"context"
	"os"
	"time"

	"github.com/maruel/subcommands"
	"go.chromium.org/luci/common/cli"

	"github.com/openvicproject/vicbuild/authors"
	"github.com/openvicproject/vicbuild/build/generate"
	"github.com/openvicproject/vicbuild/codegen"
	"github.com/openvicproject/vicbuild/subcmd/exitstatus"
)

const usage = `generate the authors header.

 $ vicbuild authors -i AUTHORS.md -o src/gen/author_info.gen.hpp \
     -section Developers=AUTHORS_DEVELOPERS \
     -section "Senior Developers"=AUTHORS_SENIOR_DEVELOPERS

Names are read from 4-space indented lines of "## <Title>" sections.
Each -section maps a section title to the suffix of the constant name.
Without -section, only "Developers" is read.
`

// Cmd returns the Command for the `authors` subcommand provided by this package.
func Cmd() *subcommands.Command {
	return &subcommands.Command{
		UsageLine: "authors [-i <file>] [-section <Title>=<CONST>]... -o <output>",
		ShortDesc: "generate the authors header",
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

	input     string
	output    string
	sections  authors.SectionFlag
	prefix    string
	namespace string
	check     bool
	diff      bool
	depfile   bool
}

func (c *run) init() {
	c.Flags.StringVar(&c.input, "i", "AUTHORS.md", "authors file")
	c.Flags.StringVar(&c.output, "o", "", "output header file. - for stdout")
	c.Flags.Var(c.sections, "section", "section to read as <Title>=<CONST>. can be repeated")
	c.Flags.StringVar(&c.prefix, "prefix", codegen.DefaultPrefix, "prefix of generated constant names")
	c.Flags.StringVar(&c.namespace, "namespace", codegen.DefaultNamespace, "C++ namespace of generated names")
	c.Flags.BoolVar(&c.check, "check", false, "check the output is up to date without writing")
	c.Flags.BoolVar(&c.diff, "diff", false, "print diff of changed output")
	c.Flags.BoolVar(&c.depfile, "depfile", false, "write <output>.d and skip generation if up to date")
}

func (c *run) Run(a subcommands.Application, args []string, env subcommands.Env) int {
	started := time.Now()
	ctx := cli.GetContext(a, c, env)
	err := c.run(ctx, args)
	return exitstatus.Report(a.GetErr(), started, err)
}

func (c *run) run(ctx context.Context, args []string) error {
	if len(args) != 0 {
		return exitstatus.Flagf("authors: position arguments not expected: %q", args)
	}
	if c.output == "" {
		return exitstatus.Flagf("authors: -o is required")
	}
	g := &generate.Authors{
		File: c.input,
		Out:  c.output,
		Options: codegen.Options{
			Prefix:    c.prefix,
			Namespace: c.namespace,
		},
	}
	if len(c.sections) > 0 {
		g.Sections = c.sections
	}
	if c.output == "-" {
		buf, err := g.Generate(ctx)
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(buf)
		return err
	}
	opts := generate.Options{
		Check:   c.check,
		Depfile: c.depfile,
	}
	if c.diff {
		opts.Diff = os.Stdout
	}
	_, err := generate.Run(ctx, []generate.Generator{g}, opts)
	return err
}
