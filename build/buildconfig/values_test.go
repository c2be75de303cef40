// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package buildconfig

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func testVariables() *Variables {
	vars := NewVariables()
	vars.AddEnum("target", "Compilation target", "template_debug", "editor", "template_release", "template_debug")
	vars.AddBool("dev_build", "Developer build", false)
	vars.AddBool("use_asan", "Use address sanitizer", false)
	vars.AddString("extra_suffix", "Custom extra suffix", "")
	vars.AddString("ccflags", "Custom flags for both C and C++ compilers", "")
	return vars
}

func TestParseBool(t *testing.T) {
	for _, s := range []string{"y", "yes", "True", "t", "on", "all", "1"} {
		got, err := ParseBool(s)
		if err != nil || !got {
			t.Errorf("ParseBool(%q)=%t, %v; want true, nil", s, got, err)
		}
	}
	for _, s := range []string{"n", "NO", "false", "f", "off", "none", "0"} {
		got, err := ParseBool(s)
		if err != nil || got {
			t.Errorf("ParseBool(%q)=%t, %v; want false, nil", s, got, err)
		}
	}
	for _, s := range []string{"", "2", "maybe"} {
		_, err := ParseBool(s)
		if err == nil {
			t.Errorf("ParseBool(%q)=_, nil; want error", s)
		}
	}
}

func TestVariablesAddKeepsFirst(t *testing.T) {
	vars := testVariables()
	if vars.Add(Variable{Name: "use_asan", Help: "other", Kind: Bool, Default: "yes"}) {
		t.Errorf("vars.Add(use_asan)=true; want false for duplicate")
	}
	v, ok := vars.Lookup("use_asan")
	if !ok {
		t.Fatalf("vars.Lookup(use_asan)=_, false; want true")
	}
	if v.Help != "Use address sanitizer" || v.Default != "no" {
		t.Errorf("vars.Lookup(use_asan)=%#v; want first definition", v)
	}
	var names []string
	for _, v := range vars.All() {
		names = append(names, v.Name)
	}
	if diff := cmp.Diff([]string{"target", "dev_build", "use_asan", "extra_suffix", "ccflags"}, names); diff != "" {
		t.Errorf("vars.All() names -want +got:\n%s", diff)
	}
}

func TestResolve(t *testing.T) {
	vars := testVariables()
	args, err := ParseArgs([]string{"target=editor", "use_asan=1", "ccflags=-O1 -g", "bogus=1"})
	if err != nil {
		t.Fatal(err)
	}
	file := map[string]string{
		"target":       "template_release",
		"dev_build":    "true",
		"extra_suffix": ".custom",
		"jobs":         "8",
	}
	values, err := Resolve(vars, file, args)
	if err != nil {
		t.Fatalf("Resolve(...)=_, %v; want nil err", err)
	}
	want := map[string]string{
		"target":       "editor",
		"dev_build":    "yes",
		"use_asan":     "yes",
		"extra_suffix": ".custom",
		"ccflags":      "-O1 -g",
	}
	if diff := cmp.Diff(want, values.Map()); diff != "" {
		t.Errorf("values diff -want +got:\n%s", diff)
	}
	for _, tc := range []struct {
		name     string
		source   Source
		explicit bool
		set      bool
	}{
		{name: "target", source: SourceArgs, explicit: true, set: true},
		{name: "dev_build", source: SourceFile, set: true},
		{name: "extra_suffix", source: SourceFile, set: true},
		{name: "use_asan", source: SourceArgs, explicit: true, set: true},
	} {
		if got := values.Source(tc.name); got != tc.source {
			t.Errorf("values.Source(%q)=%v; want %v", tc.name, got, tc.source)
		}
		if got := values.Explicit(tc.name); got != tc.explicit {
			t.Errorf("values.Explicit(%q)=%t; want %t", tc.name, got, tc.explicit)
		}
		if got := values.IsSet(tc.name); got != tc.set {
			t.Errorf("values.IsSet(%q)=%t; want %t", tc.name, got, tc.set)
		}
	}
	if !values.Bool("dev_build") {
		t.Errorf("values.Bool(dev_build)=false; want true")
	}
	if diff := cmp.Diff([]string{"jobs", "bogus"}, values.Unknown()); diff != "" {
		t.Errorf("values.Unknown() -want +got:\n%s", diff)
	}

	if err := values.Set("target", "template_debug"); err != nil {
		t.Errorf("values.Set(target)=%v; want nil", err)
	}
	if values.Explicit("target") || values.Source("target") != SourceComputed {
		t.Errorf("after Set, target source=%v; want computed", values.Source("target"))
	}
	if err := values.Set("target", "game"); err == nil {
		t.Errorf("values.Set(target, game)=nil; want error")
	}
	if err := values.Set("bogus", "1"); err == nil {
		t.Errorf("values.Set(bogus)=nil; want error")
	}
}

func TestResolveErrors(t *testing.T) {
	vars := testVariables()
	for _, tc := range []struct {
		name    string
		file    map[string]string
		args    []Arg
		wantErr string
	}{
		{
			name:    "bad-enum-file",
			file:    map[string]string{"target": "game"},
			wantErr: "from file",
		},
		{
			name:    "bad-bool-args",
			args:    []Arg{{Key: "dev_build", Value: "maybe"}},
			wantErr: `invalid bool value "maybe" (from args)`,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Resolve(vars, tc.file, tc.args)
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("Resolve(...)=_, %v; want error containing %q", err, tc.wantErr)
			}
		})
	}
}

func TestParseArgs(t *testing.T) {
	got, err := ParseArgs([]string{"platform=linux", "ccflags=-DA=1", "empty="})
	if err != nil {
		t.Fatalf("ParseArgs(...)=_, %v; want nil err", err)
	}
	want := []Arg{
		{Key: "platform", Value: "linux"},
		{Key: "ccflags", Value: "-DA=1"},
		{Key: "empty", Value: ""},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ParseArgs(...) -want +got:\n%s", diff)
	}
	for _, arg := range []string{"platform", "=linux"} {
		if _, err := ParseArgs([]string{arg}); err == nil {
			t.Errorf("ParseArgs(%q)=_, nil; want error", arg)
		}
	}
}
