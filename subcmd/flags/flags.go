// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package flags provides flags subcommand.
package flags

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/log"
	"github.com/klauspost/cpuid/v2"
	"github.com/maruel/subcommands"
	"go.chromium.org/luci/common/cli"

	"github.com/openvicproject/vicbuild/build/buildconfig"
	"github.com/openvicproject/vicbuild/build/toolchain"
	"github.com/openvicproject/vicbuild/subcmd/exitstatus"
	"github.com/openvicproject/vicbuild/toolsupport/shutil"
)

const usage = `resolve build options and print the toolchain environment.

 $ vicbuild flags [-options custom.star] [key=value...]

Option values are resolved from defaults, the Starlark options file
and key=value arguments, in that order. The options file defaults to
$VICBUILD_OPTIONS.

 -format text  NAME=value lines
 -format sh    shell assignments for eval
 -format json  resolved options and environment

Use -list to show the declared options.
`

// Cmd returns the Command for the `flags` subcommand provided by this package.
func Cmd() *subcommands.Command {
	return &subcommands.Command{
		UsageLine: "flags [-options <file>] [-format text|json|sh] [-list] [key=value...]",
		ShortDesc: "print the toolchain environment for build options",
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

	options string
	format  string
	list    bool
}

func (c *run) init() {
	c.Flags.StringVar(&c.options, "options", os.Getenv("VICBUILD_OPTIONS"), "Starlark options file. $VICBUILD_OPTIONS by default")
	c.Flags.StringVar(&c.format, "format", "text", "output format. text, json or sh")
	c.Flags.BoolVar(&c.list, "list", false, "list declared options")
}

func (c *run) Run(a subcommands.Application, args []string, env subcommands.Env) int {
	started := time.Now()
	ctx := cli.GetContext(a, c, env)
	err := c.run(ctx, args)
	return exitstatus.Report(a.GetErr(), started, err)
}

func (c *run) run(ctx context.Context, args []string) error {
	switch c.format {
	case "text", "json", "sh":
	default:
		return exitstatus.Flagf("flags: unknown format %q", c.format)
	}
	vars := buildconfig.NewVariables()
	toolchain.Register(vars)

	w := bufio.NewWriter(os.Stdout)
	defer w.Flush()
	if c.list {
		if len(args) != 0 {
			return exitstatus.Flagf("flags: position arguments not expected with -list: %q", args)
		}
		return listVariables(w, vars, c.format == "json")
	}
	argValues, err := buildconfig.ParseArgs(args)
	if err != nil {
		return exitstatus.FlagError{Err: err}
	}
	log.Debugf("cpu %s", cpuinfo())

	var file map[string]string
	if c.options != "" {
		file, err = buildconfig.LoadOptionsFile(ctx, c.options, buildconfig.DefaultHostInfo())
		if err != nil {
			return err
		}
	}
	values, err := buildconfig.Resolve(vars, file, argValues)
	if err != nil {
		return err
	}
	env, err := toolchain.Generate(ctx, toolchain.DefaultHost(), values)
	if err != nil {
		return err
	}
	switch c.format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", " ")
		return enc.Encode(struct {
			Options map[string]string `json:"options"`
			Env     *toolchain.Env    `json:"env"`
		}{
			Options: values.Map(),
			Env:     env,
		})
	case "sh":
		return writeVars(w, env.Vars(), shutil.Quote)
	default:
		return writeVars(w, env.Vars(), func(s string) string { return s })
	}
}

func writeVars(w io.Writer, vars []toolchain.Var, quote func(string) string) error {
	for _, v := range vars {
		_, err := fmt.Fprintf(w, "%s=%s\n", v.Name, quote(v.Value))
		if err != nil {
			return err
		}
	}
	return nil
}

func listVariables(w io.Writer, vars *buildconfig.Variables, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", " ")
		return enc.Encode(vars.All())
	}
	tw := tabwriter.NewWriter(w, 0, 8, 1, ' ', 0)
	for _, v := range vars.All() {
		def := v.Default
		if def == "" {
			def = `""`
		}
		kind := v.Kind.String()
		if len(v.Allowed) > 0 {
			kind = strings.Join(v.Allowed, "|")
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", v.Name, kind, def, v.Help)
	}
	return tw.Flush()
}

func cpuinfo() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "family=%d model=%d stepping=%d ", cpuid.CPU.Family, cpuid.CPU.Model, cpuid.CPU.Stepping)
	fmt.Fprintf(&sb, "brand=%q vendor=%q ", cpuid.CPU.BrandName, cpuid.CPU.VendorString)
	fmt.Fprintf(&sb, "physicalCores=%d threadsPerCore=%d logicalCores=%d ", cpuid.CPU.PhysicalCores, cpuid.CPU.ThreadsPerCore, cpuid.CPU.LogicalCores)
	fmt.Fprintf(&sb, "vm=%t features=%s", cpuid.CPU.VM(), cpuid.CPU.FeatureSet())
	return sb.String()
}
