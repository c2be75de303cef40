// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package makeutil provides utilities for make style depfiles.
package makeutil

import (
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"strings"

	"github.com/charmbracelet/log"
)

// ParseDepsFile parses *.d file in fname on fsys.
func ParseDepsFile(fsys fs.FS, fname string) ([]string, error) {
	if fname == "" {
		return nil, nil
	}
	b, err := fs.ReadFile(fsys, fname)
	if err != nil {
		return nil, err
	}
	deps := ParseDeps(b)
	log.Debugf("deps %s => %q", fname, deps)
	return deps, nil
}

// ParseDeps parses deps and returns a list of inputs.
func ParseDeps(b []byte) []string {
	// deps contents
	// <output>: <input> ...
	// <input> is space separated
	// '\'+newline is space
	// '\'+space is escaped space (not separator)
	var token string
	i := bytes.IndexByte(b, ':')
	if i < 0 {
		return nil
	}
	var inputs []string
	for s := b[i+1:]; len(s) > 0; {
		token, s = nextToken(s)
		// phony targets for inputs, e.g. "in.txt:", end the input list.
		if strings.HasSuffix(token, ":") {
			break
		}
		if token != "" {
			inputs = append(inputs, token)
		}
	}
	return inputs
}

func nextToken(s []byte) (string, []byte) {
	var sb strings.Builder
skipSpaces:
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) && s[i+1] == '\n' {
			i++
			continue
		}
		if s[i] == '\\' && i+2 < len(s) && s[i+1] == '\r' && s[i+2] == '\n' {
			i += 2
			continue
		}
		switch s[i] {
		case ' ', '\t', '\n', '\r':
			continue
		default:
			s = s[i:]
			break skipSpaces
		}
	}
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			i++
			switch s[i] {
			case ' ', '#':
				sb.WriteByte(s[i])
			case '\r', '\n':
				return sb.String(), s[i+1:]
			default:
				sb.WriteByte('\\')
				sb.WriteByte(s[i])
			}
			continue
		}
		switch s[i] {
		case ' ', '\t', '\n', '\r':
			return sb.String(), s[i+1:]
		}
		sb.WriteByte(s[i])
	}
	return sb.String(), nil
}

var depsEscaper = strings.NewReplacer(" ", `\ `, "#", `\#`)

// WriteDeps writes a depfile for output depending on inputs.
// Each input also gets an empty rule so make and ninja do not fail
// when an input is removed.
func WriteDeps(w io.Writer, output string, inputs []string) error {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%s:", depsEscaper.Replace(output))
	for _, in := range inputs {
		fmt.Fprintf(&buf, " \\\n  %s", depsEscaper.Replace(in))
	}
	buf.WriteString("\n")
	for _, in := range inputs {
		fmt.Fprintf(&buf, "\n%s:\n", depsEscaper.Replace(in))
	}
	_, err := buf.WriteTo(w)
	return err
}
