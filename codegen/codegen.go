// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package codegen emits C++ headers with compile-time constant tables
// for license, author and version data.
package codegen

import (
	"bytes"
	"fmt"
	"io"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Defaults of Options.
const (
	DefaultPrefix    = "project"
	DefaultNamespace = "OpenVic"
)

const generatedBanner = "/* THIS FILE IS GENERATED. EDITS WILL BE LOST. */\n\n"

// Options controls names in generated headers.
type Options struct {
	// Prefix is the name prefix of generated symbols.
	// Constants use it upper cased (PROJECT_), types capitalized (Project).
	Prefix string

	// Namespace is the C++ namespace of generated symbols.
	Namespace string
}

func (o Options) prefix() string {
	if o.Prefix == "" {
		return DefaultPrefix
	}
	return o.Prefix
}

func (o Options) namespace() string {
	if o.Namespace == "" {
		return DefaultNamespace
	}
	return o.Namespace
}

// Upper returns the prefix for constant names, e.g. "PROJECT".
func (o Options) Upper() string {
	return cases.Upper(language.Und).String(o.prefix())
}

// Capital returns the prefix for type names, e.g. "Project".
// The first letter is upper cased and the rest lower cased.
func (o Options) Capital() string {
	p := o.prefix()
	_, n := utf8.DecodeRuneInString(p)
	return cases.Upper(language.Und).String(p[:n]) + cases.Lower(language.Und).String(p[n:])
}

// header is a generated header under construction.
type header struct {
	bytes.Buffer
}

func newHeader(includes ...string) *header {
	h := &header{}
	h.WriteString(generatedBanner)
	h.WriteString("#pragma once\n\n")
	for _, inc := range includes {
		fmt.Fprintf(h, "#include <%s>\n", inc)
	}
	if len(includes) > 0 {
		h.WriteString("\n")
	}
	return h
}

func (h *header) printf(format string, args ...any) {
	fmt.Fprintf(h, format, args...)
}

func (h *header) flush(w io.Writer) error {
	_, err := h.WriteTo(w)
	return err
}

// array writes a constexpr std::array of n elements of elem, whose rows
// are written by rows. std::to_array needs at least one element, so an
// empty array is declared with its element type and size.
func (h *header) array(name, elem string, n int, rows func()) {
	if n == 0 {
		h.printf("\tstatic constexpr std::array<%s, 0> %s = {};\n", elem, name)
		return
	}
	h.printf("\tstatic constexpr std::array %s = std::to_array<%s>({\n", name, elem)
	rows()
	h.printf("\t});\n")
}

// spanInit returns the std::span initializer of count elements of array
// from start. An empty span is {}, as &array[start] may be past the end.
func spanInit(array string, start, count int) string {
	if count == 0 {
		return "{}"
	}
	return fmt.Sprintf("{ &%s[%d], %d }", array, start, count)
}
