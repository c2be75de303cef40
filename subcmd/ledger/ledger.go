// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package ledger provides ledger subcommand.
package ledger

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/maruel/subcommands"
	"go.chromium.org/luci/common/cli"

	"github.com/openvicproject/vicbuild/copyright"
	"github.com/openvicproject/vicbuild/subcmd/exitstatus"
)

const usage = `dump the parsed copyright ledger.

 $ vicbuild ledger -copyright COPYRIGHT [-project <name>] [-format text|json]

It shows how the copyright file is grouped into projects and parts,
and which license paragraphs are kept as full license texts.
`

// Cmd returns the Command for the `ledger` subcommand provided by this package.
func Cmd() *subcommands.Command {
	return &subcommands.Command{
		UsageLine: "ledger [-copyright <file>] [-project <name>] [-format text|json]",
		ShortDesc: "dump the parsed copyright ledger",
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

	copyright string
	project   string
	format    string
}

func (c *run) init() {
	c.Flags.StringVar(&c.copyright, "copyright", "COPYRIGHT", "copyright file in Debian machine-readable format")
	c.Flags.StringVar(&c.project, "project", "", "show only the project")
	c.Flags.StringVar(&c.format, "format", "text", "output format. text or json")
}

func (c *run) Run(a subcommands.Application, args []string, env subcommands.Env) int {
	started := time.Now()
	ctx := cli.GetContext(a, c, env)
	err := c.run(ctx, args)
	return exitstatus.Report(a.GetErr(), started, err)
}

func (c *run) run(ctx context.Context, args []string) error {
	if len(args) != 0 {
		return exitstatus.Flagf("ledger: position arguments not expected: %q", args)
	}
	switch c.format {
	case "text", "json":
	default:
		return exitstatus.Flagf("ledger: unknown format %q", c.format)
	}
	ledger, err := copyright.ParseFile(c.copyright)
	if err != nil {
		return err
	}
	if c.project != "" {
		ledger, err = projectLedger(ledger, c.project)
		if err != nil {
			return fmt.Errorf("%s: %w", c.copyright, err)
		}
	}
	w := bufio.NewWriter(os.Stdout)
	defer w.Flush()
	if c.format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", " ")
		return enc.Encode(ledger)
	}
	return writeText(w, ledger)
}

// projectLedger returns the ledger with only the project name.
// Standalone licenses are dropped.
func projectLedger(ledger *copyright.Ledger, name string) (*copyright.Ledger, error) {
	p, ok := ledger.Project(name)
	if !ok {
		return nil, fmt.Errorf("project %q not found", name)
	}
	return &copyright.Ledger{
		Entries:  ledger.Entries,
		Projects: []copyright.Project{*p},
		Licenses: []copyright.License{},
	}, nil
}

func writeText(w io.Writer, ledger *copyright.Ledger) error {
	for _, p := range ledger.Projects {
		fmt.Fprintf(w, "project %q parts=%d\n", p.Name, len(p.Parts))
		for i, part := range p.Parts {
			fmt.Fprintf(w, "  part[%d] license=%s\n", i, part.License)
			for _, f := range ledger.Lines(part.Files) {
				fmt.Fprintf(w, "    files: %s\n", f)
			}
			for _, s := range ledger.Lines(part.Copyright) {
				fmt.Fprintf(w, "    copyright: %s\n", s)
			}
		}
	}
	for _, l := range ledger.Licenses {
		fmt.Fprintf(w, "license %s lines=%d\n", l.ID, len(l.Body))
	}
	return nil
}
