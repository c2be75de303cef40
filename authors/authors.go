// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package authors parses AUTHORS.md author lists.
//
// The file is markdown where each section starts with "## Title" and lists
// one author per line indented by four spaces:
//
//	## Developers
//
//	    Jane Doe (jdoe)
//	    John Roe
package authors

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/openvicproject/vicbuild/toolsupport/textutil"
)

const (
	sectionPrefix = "## "
	entryIndent   = "    "
)

// DefaultSections maps the section titles read by default to constant names.
var DefaultSections = map[string]string{
	"Developers": "AUTHORS_DEVELOPERS",
}

// Section is an author list section.
type Section struct {
	// Title is the markdown section title.
	Title string `json:"title"`
	// Const is the constant name suffix for the section.
	Const string `json:"const"`
	// Names are authors in file order.
	Names []string `json:"names"`
}

// Parse reads sections of r that appear in sections, which maps titles to
// constant names. Sections not in the map are skipped.
func Parse(r io.Reader, sections map[string]string) ([]Section, error) {
	var result []Section
	var cur *Section
	s := bufio.NewScanner(r)
	for s.Scan() {
		line := s.Text()
		switch {
		case strings.HasPrefix(line, entryIndent) && cur != nil:
			cur.Names = append(cur.Names, strings.TrimSpace(line))
		case strings.HasPrefix(line, sectionPrefix):
			if cur != nil {
				result = append(result, *cur)
				cur = nil
			}
			title := strings.TrimSpace(line[len(sectionPrefix):])
			name, ok := sections[title]
			if !ok || name == "" {
				log.Debugf("authors: skip section %q", title)
				continue
			}
			cur = &Section{
				Title: title,
				Const: name,
				Names: []string{},
			}
		}
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	if cur != nil {
		result = append(result, *cur)
	}
	return result, nil
}

// ParseFile parses the authors file fname.
func ParseFile(fname string, sections map[string]string) ([]Section, error) {
	text, err := textutil.ReadFile(fname)
	if err != nil {
		return nil, fmt.Errorf("failed to read authors file: %w", err)
	}
	result, err := Parse(strings.NewReader(text), sections)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", fname, err)
	}
	return result, nil
}

// SectionFlag is a flag.Value to set the sections to read.
// Each value is "Title=CONST" and may be given multiple times.
type SectionFlag map[string]string

// String returns the sections as comma separated "Title=CONST".
func (f SectionFlag) String() string {
	var parts []string
	for title, name := range f {
		parts = append(parts, title+"="+name)
	}
	sort.Strings(parts)
	return strings.Join(parts, ",")
}

// Set adds a "Title=CONST" section.
func (f SectionFlag) Set(v string) error {
	title, name, ok := strings.Cut(v, "=")
	title = strings.TrimSpace(title)
	name = strings.TrimSpace(name)
	if !ok || title == "" || name == "" {
		return fmt.Errorf("bad section %q; want Title=CONST", v)
	}
	f[title] = name
	return nil
}
