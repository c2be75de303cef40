// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package license provides license subcommand.
package license

import (
	"context"
	"os"
	"time"

	"github.com/maruel/subcommands"
	"go.chromium.org/luci/common/cli"

	"github.com/openvicproject/vicbuild/build/generate"
	"github.com/openvicproject/vicbuild/codegen"
	"github.com/openvicproject/vicbuild/subcmd/exitstatus"
)

const usage = `generate the license header.

 $ vicbuild license -copyright COPYRIGHT -license LICENSE.md \
     -o src/gen/license_info.gen.hpp

It parses the copyright file in Debian machine-readable format and
writes a C++ header with the project license text, the copyright
entries of each component and the full texts of licenses.
Use -o - to print to stdout.
`

// Cmd returns the Command for the `license` subcommand provided by this package.
func Cmd() *subcommands.Command {
	return &subcommands.Command{
		UsageLine: "license [-copyright <file>] [-license <file>] -o <output>",
		ShortDesc: "generate the license header",
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

	copyright   string
	licenseFile string
	output      string
	prefix      string
	namespace   string
	check       bool
	diff        bool
	depfile     bool
}

func (c *run) init() {
	c.Flags.StringVar(&c.copyright, "copyright", "COPYRIGHT", "copyright file in Debian machine-readable format")
	c.Flags.StringVar(&c.licenseFile, "license", "LICENSE.md", "project license text file")
	c.Flags.StringVar(&c.output, "o", "", "output header file. - for stdout")
	c.Flags.StringVar(&c.prefix, "prefix", codegen.DefaultPrefix, "prefix of generated constant and type names")
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
		return exitstatus.Flagf("license: position arguments not expected: %q", args)
	}
	if c.output == "" {
		return exitstatus.Flagf("license: -o is required")
	}
	g := &generate.License{
		Copyright:   c.copyright,
		LicenseFile: c.licenseFile,
		Out:         c.output,
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
