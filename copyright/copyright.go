// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package copyright parses Debian machine-readable copyright files
// into a ledger of projects, license parts and standalone licenses.
//
// See https://www.debian.org/doc/packaging-manuals/copyright-format/1.0/
// for the file format.
package copyright

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/openvicproject/vicbuild/toolsupport/textutil"
)

// Recognized tags.
const (
	TagFiles     = "Files"
	TagCopyright = "Copyright"
	TagLicense   = "License"
	TagComment   = "Comment"
)

// Span is a range of Ledger.Entries.
type Span struct {
	Start int `json:"start"`
	Count int `json:"count"`
}

// End returns the index after the last entry of the span.
func (s Span) End() int {
	return s.Start + s.Count
}

// Part is a Files paragraph attributed to a project.
type Part struct {
	// License is the short license identifier, e.g. "MIT".
	License string `json:"license"`
	// Files are the file glob patterns the part covers.
	Files Span `json:"files"`
	// Copyright are the copyright statement lines.
	Copyright Span `json:"copyright"`
}

// Project is a named list of parts.
// The name is the verbatim Comment value of its paragraphs.
type Project struct {
	Name  string `json:"name"`
	Parts []Part `json:"parts"`
}

// License is a license text that is not attached to any project.
type License struct {
	ID   string   `json:"id"`
	Body []string `json:"body"`
}

// Ledger is a parsed copyright file.
type Ledger struct {
	// Entries holds files patterns and copyright lines of all parts,
	// referenced by Part spans.
	Entries []string `json:"entries"`
	// Projects in order of first appearance.
	Projects []Project `json:"projects"`
	// Licenses are license paragraphs without Files tag.
	Licenses []License `json:"licenses"`

	index map[string]int
}

// Lines returns entries in s.
func (l *Ledger) Lines(s Span) []string {
	return l.Entries[s.Start:s.End()]
}

// Project returns the project for the name.
func (l *Ledger) Project(name string) (*Project, bool) {
	i, ok := l.index[name]
	if !ok {
		return nil, false
	}
	return &l.Projects[i], true
}

// PartCount returns the number of parts in all projects.
func (l *Ledger) PartCount() int {
	n := 0
	for _, p := range l.Projects {
		n += len(p.Parts)
	}
	return n
}

// ParseFile parses the copyright file fname.
func ParseFile(fname string) (*Ledger, error) {
	s, err := textutil.ReadFile(fname)
	if err != nil {
		return nil, fmt.Errorf("failed to read copyright file: %w", err)
	}
	ledger, err := Parse(strings.NewReader(s))
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", fname, err)
	}
	log.Debugf("copyright %s: projects=%d parts=%d licenses=%d entries=%d", fname, len(ledger.Projects), ledger.PartCount(), len(ledger.Licenses), len(ledger.Entries))
	return ledger, nil
}

// Parse parses a copyright file from r.
// A line without a tag ends the paragraph like a blank line; other
// malformed lines are ignored rather than reported.
func Parse(r io.Reader) (*Ledger, error) {
	rd := newReader(r)
	acc := accumulator{index: make(map[string]int)}
	for {
		p, err := rd.paragraph()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		acc = fold(acc, p)
	}
	return acc.ledger(), nil
}

// part is a part under construction in a paragraph.
// Only the first value of each tag is kept.
type part struct {
	files, copyright, license []string
	hasFiles                  bool
	hasCopyright              bool
	hasLicense                bool
}

type rawPart struct {
	license   string
	files     []string
	copyright []string
}

type rawProject struct {
	name  string
	parts []rawPart
}

// accumulator holds the parse state carried between paragraphs.
type accumulator struct {
	projects []rawProject
	index    map[string]int
	licenses []License
}

func (acc accumulator) attach(name string, p rawPart) accumulator {
	i, ok := acc.index[name]
	if !ok {
		i = len(acc.projects)
		acc.index[name] = i
		acc.projects = append(acc.projects, rawProject{name: name})
	}
	acc.projects[i].parts = append(acc.projects[i].parts, p)
	return acc
}

// listValue drops the empty first line of a list value, e.g.
//
//	Files:
//	 src/*
func listValue(lines []string) []string {
	if len(lines) > 0 && lines[0] == "" {
		lines = lines[1:]
	}
	return append([]string(nil), lines...)
}

func firstLine(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	return lines[0]
}

func (p part) started() bool {
	return p.hasFiles || p.hasCopyright || p.hasLicense
}

// fold adds the paragraph p to acc.
//
// A Comment names the project of the paragraph's part if some other tag
// precedes it. The part is attached when the paragraph ends, so tags after
// the Comment still belong to it.
func fold(acc accumulator, p paragraph) accumulator {
	var cur part
	var names []string
	for _, f := range p {
		switch f.tag {
		case TagFiles:
			if !cur.hasFiles {
				cur.files, cur.hasFiles = listValue(f.lines), true
			}
		case TagCopyright:
			if !cur.hasCopyright {
				cur.copyright, cur.hasCopyright = listValue(f.lines), true
			}
		case TagLicense:
			if !cur.hasLicense {
				cur.license, cur.hasLicense = f.lines, true
			}
		case TagComment:
			if !cur.started() {
				log.Debugf("copyright: Comment %q before other tags ignored", firstLine(f.lines))
				continue
			}
			names = append(names, firstLine(f.lines))
		}
	}
	switch {
	case cur.hasFiles:
		for _, name := range names {
			acc = acc.attach(name, rawPart{
				license:   firstLine(cur.license),
				files:     cur.files,
				copyright: cur.copyright,
			})
		}
	case cur.hasLicense:
		acc.licenses = append(acc.licenses, License{
			ID:   firstLine(cur.license),
			Body: licenseBody(cur.license),
		})
	}
	return acc
}

// licenseBody returns license text lines after the identifier line.
// A line "." stands for an empty line.
func licenseBody(lines []string) []string {
	if len(lines) <= 1 {
		return []string{}
	}
	body := make([]string, 0, len(lines)-1)
	for _, line := range lines[1:] {
		if line == "." {
			line = ""
		}
		body = append(body, line)
	}
	return body
}

// ledger flattens parts into entries.
func (acc accumulator) ledger() *Ledger {
	l := &Ledger{
		Entries:  []string{},
		Projects: make([]Project, 0, len(acc.projects)),
		Licenses: acc.licenses,
		index:    make(map[string]int, len(acc.projects)),
	}
	if l.Licenses == nil {
		l.Licenses = []License{}
	}
	for i, rp := range acc.projects {
		proj := Project{
			Name:  rp.name,
			Parts: make([]Part, 0, len(rp.parts)),
		}
		for _, p := range rp.parts {
			files := Span{Start: len(l.Entries), Count: len(p.files)}
			l.Entries = append(l.Entries, p.files...)
			cr := Span{Start: len(l.Entries), Count: len(p.copyright)}
			l.Entries = append(l.Entries, p.copyright...)
			proj.Parts = append(proj.Parts, Part{
				License:   p.license,
				Files:     files,
				Copyright: cr,
			})
		}
		l.Projects = append(l.Projects, proj)
		l.index[rp.name] = i
	}
	return l
}
