// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package ui_test

import (
	"testing"

	"github.com/openvicproject/vicbuild/ui"
)

func TestStripANSIEscapeCodes(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want string
	}{
		{
			in:   "foo\033",
			want: "foo",
		},
		{
			in:   "foo\033[",
			want: "foo",
		},
		{
			in:   ui.SGR(ui.Red, "error") + ": " + ui.SGR(ui.Bold, "gen/license.gen.hpp") + " is stale",
			want: "error: gen/license.gen.hpp is stale",
		},
		{
			in:   "\033[1maffixmgr.cxx:286:15: \033[0m\033[0;1;35mwarning: \033[0m\033[1musing the result... [-Wparentheses]\033[0m",
			want: "affixmgr.cxx:286:15: warning: using the result... [-Wparentheses]",
		},
	} {
		got := ui.StripANSIEscapeCodes(tc.in)
		if got != tc.want {
			t.Errorf("ui.StripANSIEscapeCodes(%q)=%q; want=%q", tc.in, got, tc.want)
		}
	}
}

func TestSGR(t *testing.T) {
	if got, want := ui.SGR(ui.Green, "ok"), "\033[32mok\033[0m"; got != want {
		t.Errorf("ui.SGR(ui.Green, %q)=%q; want %q", "ok", got, want)
	}
}
