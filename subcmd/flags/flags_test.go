// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package flags

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/openvicproject/vicbuild/build/buildconfig"
	"github.com/openvicproject/vicbuild/build/toolchain"
	"github.com/openvicproject/vicbuild/toolsupport/shutil"
)

func TestWriteVars(t *testing.T) {
	vars := []toolchain.Var{
		{Name: "CXX", Value: "g++"},
		{Name: "CCFLAGS", Value: "-fPIC -Wl,-R,$ORIGIN"},
		{Name: "SHLIBPREFIX", Value: ""},
	}
	for _, tc := range []struct {
		name  string
		quote func(string) string
		want  string
	}{
		{
			name:  "text",
			quote: func(s string) string { return s },
			want:  "CXX=g++\nCCFLAGS=-fPIC -Wl,-R,$ORIGIN\nSHLIBPREFIX=\n",
		},
		{
			name:  "sh",
			quote: shutil.Quote,
			want:  "CXX=g++\nCCFLAGS='-fPIC -Wl,-R,$ORIGIN'\nSHLIBPREFIX=''\n",
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			err := writeVars(&buf, vars, tc.quote)
			if err != nil {
				t.Fatalf("writeVars(...)=%v; want nil err", err)
			}
			if diff := cmp.Diff(tc.want, buf.String()); diff != "" {
				t.Errorf("writeVars(...) diff -want +got:\n%s", diff)
			}
		})
	}
}

func TestListVariables(t *testing.T) {
	vars := buildconfig.NewVariables()
	vars.AddEnum("target", "Compilation target", "template_debug", "editor", "template_release", "template_debug")
	vars.AddBool("dev_build", "Developer build", false)
	vars.AddString("extra_suffix", "Custom extra suffix", "")

	var buf bytes.Buffer
	err := listVariables(&buf, vars, false)
	if err != nil {
		t.Fatalf("listVariables(...)=%v; want nil err", err)
	}
	want := `target       editor|template_release|template_debug template_debug Compilation target
dev_build    bool                                   no             Developer build
extra_suffix string                                 ""             Custom extra suffix
`
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("listVariables(...) diff -want +got:\n%s", diff)
	}
}
