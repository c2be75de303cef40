// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package codegen

import (
	"strings"
	"unicode/utf8"
)

var cEscaper = strings.NewReplacer(
	`\`, `\\`,
	"\a", `\a`,
	"\b", `\b`,
	"\f", `\f`,
	"\n", `\n`,
	"\r", `\r`,
	"\t", `\t`,
	"\v", `\v`,
	`"`, `\"`,
)

// EscapeCString escapes s to be used in a C string literal "...".
// Single quotes are kept as is.
func EscapeCString(s string) string {
	return cEscaper.Replace(s)
}

// maxRawLiteral is the maximum size of a single raw string literal.
// MSVC limits each string literal piece to about 16 KiB.
const maxRawLiteral = 16 * 1024

// RawCString returns s as a C++ raw string literal R"<!>(...)<!>".
//
// Long strings are split into several literals, preferably after an empty
// line, and never in the middle of a UTF-8 sequence. Multiple literals are
// wrapped in parentheses to suppress clang's string-concatenation warning.
func RawCString(s string) string {
	segments := splitLiteral(s)
	if len(segments) == 1 {
		return rawLiteral(segments[0])
	}
	var sb strings.Builder
	sb.WriteByte('(')
	for i, seg := range segments {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(rawLiteral(seg))
	}
	sb.WriteByte(')')
	return sb.String()
}

// RawCStringLines returns lines joined by newlines, with a trailing
// newline, as a raw string literal.
func RawCStringLines(lines []string) string {
	return RawCString(strings.Join(lines, "\n") + "\n")
}

func rawLiteral(s string) string {
	return `R"<!>(` + s + `)<!>"`
}

func splitLiteral(s string) []string {
	var segments []string
	for len(s) > maxRawLiteral {
		seg := s[:maxRawLiteral]
		if i := strings.LastIndex(seg, "\n\n"); i >= 0 {
			seg = seg[:i+1]
		} else {
			// back off to the start of the rune crossing the boundary.
			for n := 0; n < utf8.UTFMax-1 && len(seg) > 1 && !utf8.RuneStart(s[len(seg)]); n++ {
				seg = seg[:len(seg)-1]
			}
		}
		segments = append(segments, seg)
		s = s[len(seg):]
	}
	return append(segments, s)
}
