// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package ui

import (
	"bytes"
	"testing"
)

func TestElideMiddle(t *testing.T) {
	for _, tc := range []struct {
		name  string
		msg   string
		width int
		want  string
	}{
		{
			name:  "plain",
			msg:   "license extension/src/openvic-extension/gen/license.gen.hpp <- COPYRIGHT.md LICENSE.md",
			width: 80,
			want:  "license extension/src/openvic-extensio...nse.gen.hpp <- COPYRIGHT.md LICENSE.md",
		},
		{
			name:  "fits",
			msg:   "gen: 3 changed:\033[31;1m2\033[0m",
			width: 80,
			want:  "gen: 3 changed:\033[31;1m2\033[0m",
		},
		{
			name:  "sgr",
			msg:   "pre: 0 local:\033[41m653\033[0m remote:\033[41m12345\033[0m",
			width: 18,
			want:  "pre: 0 ...e:\033[41m12345\033[0m",
		},
		{
			name:  "sgr-tail",
			msg:   "generated: 3 changed:\033[31;1m2\033[0m stale:\033[33m12345\033[0m",
			width: 20,
			want:  "generate...le:\033[33m12345\033[0m",
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			got := elideMiddle(tc.msg, tc.width)
			if got != tc.want {
				t.Errorf("elideMiddle(%q, %d)=%q; want %q", tc.msg, tc.width, got, tc.want)
			}
		})
	}
}

func TestWriteLinesMaxWidth(t *testing.T) {
	var buf bytes.Buffer
	writeLinesMaxWidth(&buf, []string{
		"short",
		"",
		"license extension/src/openvic-extension/gen/license.gen.hpp <- COPYRIGHT.md LICENSE.md",
		"multi\nline message that is long enough to be elided if it were a single line",
	}, 40)
	want := "short\n" +
		"license extension/...IGHT.md LICENSE.md\n" +
		"multi\nline message that is long enough to be elided if it were a single line"
	if got := buf.String(); got != want {
		t.Errorf("writeLinesMaxWidth(...)=%q; want %q", got, want)
	}
}
