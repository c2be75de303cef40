// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package generate runs header generators and keeps their outputs up to
// date.
package generate

import (
	"bytes"
	"context"
	"fmt"

	"github.com/openvicproject/vicbuild/authors"
	"github.com/openvicproject/vicbuild/codegen"
	"github.com/openvicproject/vicbuild/copyright"
	"github.com/openvicproject/vicbuild/gitinfo"
	"github.com/openvicproject/vicbuild/toolsupport/textutil"
)

// Generator generates the content of an output file from its inputs.
type Generator interface {
	// Name is a short name of the generator, e.g. "license".
	Name() string

	// Output is the output filename.
	Output() string

	// Inputs are the input filenames. A generator with no inputs
	// always runs.
	Inputs() []string

	// Generate returns the output content.
	Generate(ctx context.Context) ([]byte, error)
}

// License generates the license header from a copyright ledger and the
// project license text.
type License struct {
	Copyright   string
	LicenseFile string
	Out         string
	Options     codegen.Options
}

func (g *License) Name() string     { return "license" }
func (g *License) Output() string   { return g.Out }
func (g *License) Inputs() []string { return []string{g.Copyright, g.LicenseFile} }

func (g *License) Generate(ctx context.Context) ([]byte, error) {
	ledger, err := copyright.ParseFile(g.Copyright)
	if err != nil {
		return nil, err
	}
	text, err := textutil.ReadFile(g.LicenseFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read license file: %w", err)
	}
	var buf bytes.Buffer
	err = codegen.LicenseHeader(&buf, ledger, text, g.Options)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Authors generates the authors header from an authors file.
type Authors struct {
	File string
	Out  string
	// Sections maps section titles to constant names.
	// authors.DefaultSections if nil.
	Sections map[string]string
	Options  codegen.Options
}

func (g *Authors) Name() string     { return "authors" }
func (g *Authors) Output() string   { return g.Out }
func (g *Authors) Inputs() []string { return []string{g.File} }

func (g *Authors) Generate(ctx context.Context) ([]byte, error) {
	sections := g.Sections
	if sections == nil {
		sections = authors.DefaultSections
	}
	s, err := authors.ParseFile(g.File, sections)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	err = codegen.AuthorsHeader(&buf, s, g.Options)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Version generates the version header from git information.
// It has no inputs, since tags and releases are not tracked in files.
type Version struct {
	Repo    gitinfo.Repo
	Out     string
	Options codegen.Options
}

func (g *Version) Name() string     { return "version" }
func (g *Version) Output() string   { return g.Out }
func (g *Version) Inputs() []string { return nil }

func (g *Version) Generate(ctx context.Context) ([]byte, error) {
	info, err := g.Repo.Info(ctx)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	err = codegen.VersionHeader(&buf, info, g.Options)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
