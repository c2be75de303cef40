// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package codegen

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestEscapeCString(t *testing.T) {
	for _, tc := range []struct {
		input string
		want  string
	}{
		{
			input: "",
			want:  "",
		},
		{
			input: "2014-present, Godot Engine contributors.",
			want:  "2014-present, Godot Engine contributors.",
		},
		{
			input: `say "hi"`,
			want:  `say \"hi\"`,
		},
		{
			input: `C:\path`,
			want:  `C:\\path`,
		},
		{
			input: "a\tb\nc\rd\ae\bf\fg\vh",
			want:  `a\tb\nc\rd\ae\bf\fg\vh`,
		},
		{
			input: "it's",
			want:  "it's",
		},
		{
			input: "Jonathan Müller",
			want:  "Jonathan Müller",
		},
	} {
		got := EscapeCString(tc.input)
		if got != tc.want {
			t.Errorf("EscapeCString(%q)=%q; want %q", tc.input, got, tc.want)
		}
	}
}

func TestRawCString(t *testing.T) {
	for _, tc := range []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "empty",
			input: "",
			want:  `R"<!>()<!>"`,
		},
		{
			name:  "multiline",
			input: "line \"one\"\n\\two\n",
			want:  "R\"<!>(line \"one\"\n\\two\n)<!>\"",
		},
		{
			name:  "exact-limit",
			input: strings.Repeat("a", maxRawLiteral),
			want:  `R"<!>(` + strings.Repeat("a", maxRawLiteral) + `)<!>"`,
		},
		{
			name:  "split-at-limit",
			input: strings.Repeat("a", maxRawLiteral+3),
			want:  `(R"<!>(` + strings.Repeat("a", maxRawLiteral) + `)<!>" R"<!>(aaa)<!>")`,
		},
		{
			name:  "split-at-empty-line",
			input: "head\n\n" + strings.Repeat("b", maxRawLiteral),
			want:  "(R\"<!>(head\n)<!>\" R\"<!>(\n" + strings.Repeat("b", maxRawLiteral-1) + ")<!>\" R\"<!>(b)<!>\")",
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			got := RawCString(tc.input)
			if got != tc.want {
				t.Errorf("RawCString(%q...)=%q...; want %q...", trunc(tc.input), trunc(got), trunc(tc.want))
			}
		})
	}
}

func trunc(s string) string {
	if len(s) > 64 {
		return s[:32] + "..." + s[len(s)-32:]
	}
	return s
}

func TestRawCStringKeepsUTF8(t *testing.T) {
	// "ü" is 2 bytes; place one across the literal boundary.
	input := strings.Repeat("a", maxRawLiteral-1) + "ü" + "tail"
	got := RawCString(input)
	if !strings.HasPrefix(got, "(") || !strings.HasSuffix(got, ")") {
		t.Fatalf("RawCString(...) is not split: %q", trunc(got))
	}
	segments := strings.Split(strings.TrimSuffix(strings.TrimPrefix(got, "("), ")"), `)<!>" R"<!>(`)
	if len(segments) != 2 {
		t.Fatalf("RawCString(...) has %d segments; want 2", len(segments))
	}
	first := strings.TrimPrefix(segments[0], `R"<!>(`)
	second := strings.TrimSuffix(segments[1], `)<!>"`)
	if !utf8.ValidString(first) || !utf8.ValidString(second) {
		t.Errorf("segments are not valid UTF-8: %q / %q", trunc(first), trunc(second))
	}
	if first+second != input {
		t.Errorf("segments do not concatenate to input")
	}
	if got, want := second, "ütail"; got != want {
		t.Errorf("second segment=%q; want %q", got, want)
	}
}

func TestRawCStringLines(t *testing.T) {
	got := RawCStringLines([]string{"first", "", "third"})
	want := "R\"<!>(first\n\nthird\n)<!>\""
	if got != want {
		t.Errorf("RawCStringLines(...)=%q; want %q", got, want)
	}
	got = RawCStringLines([]string{})
	want = "R\"<!>(\n)<!>\""
	if got != want {
		t.Errorf("RawCStringLines(empty)=%q; want %q", got, want)
	}
}
