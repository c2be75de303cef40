// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package codegen

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/openvicproject/vicbuild/authors"
	"github.com/openvicproject/vicbuild/copyright"
	"github.com/openvicproject/vicbuild/gitinfo"
)

func TestOptionsNames(t *testing.T) {
	for _, tc := range []struct {
		opts        Options
		wantUpper   string
		wantCapital string
	}{
		{
			opts:        Options{},
			wantUpper:   "PROJECT",
			wantCapital: "Project",
		},
		{
			opts:        Options{Prefix: "openvic"},
			wantUpper:   "OPENVIC",
			wantCapital: "Openvic",
		},
		{
			opts:        Options{Prefix: "gameData"},
			wantUpper:   "GAMEDATA",
			wantCapital: "Gamedata",
		},
		{
			opts:        Options{Prefix: "éclair"},
			wantUpper:   "ÉCLAIR",
			wantCapital: "Éclair",
		},
	} {
		if got := tc.opts.Upper(); got != tc.wantUpper {
			t.Errorf("%#v.Upper()=%q; want %q", tc.opts, got, tc.wantUpper)
		}
		if got := tc.opts.Capital(); got != tc.wantCapital {
			t.Errorf("%#v.Capital()=%q; want %q", tc.opts, got, tc.wantCapital)
		}
	}
}

func TestLicenseHeader(t *testing.T) {
	ledger, err := copyright.Parse(strings.NewReader(`Files: *.cpp
Copyright: 2020 Alice
License: MIT
Comment: libfoo

License: Apache-2.0
 Full text line one
 Full text line two
`))
	if err != nil {
		t.Fatal(err)
	}
	want, err := os.ReadFile(filepath.Join("testdata", "license_basic.h"))
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	err = LicenseHeader(&buf, ledger, "Copyright (c) 2020 The Project\nPermission is granted.\n", Options{})
	if err != nil {
		t.Fatalf("LicenseHeader(...)=%v; want nil", err)
	}
	if diff := cmp.Diff(string(want), buf.String()); diff != "" {
		t.Errorf("LicenseHeader(...) diff -want +got:\n%s", diff)
	}
}

func TestLicenseHeaderEmptyTables(t *testing.T) {
	for _, tc := range []struct {
		name   string
		input  string
		golden string
	}{
		{
			name:   "empty-ledger",
			input:  "",
			golden: "license_empty.h",
		},
		{
			name:   "part-without-copyright",
			input:  "Files: a.c\nLicense: MIT\nComment: nocopy\n",
			golden: "license_no_copyright.h",
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			ledger, err := copyright.Parse(strings.NewReader(tc.input))
			if err != nil {
				t.Fatal(err)
			}
			want, err := os.ReadFile(filepath.Join("testdata", tc.golden))
			if err != nil {
				t.Fatal(err)
			}
			var buf bytes.Buffer
			err = LicenseHeader(&buf, ledger, "", Options{})
			if err != nil {
				t.Fatalf("LicenseHeader(...)=%v; want nil", err)
			}
			if diff := cmp.Diff(string(want), buf.String()); diff != "" {
				t.Errorf("LicenseHeader(...) diff -want +got:\n%s", diff)
			}
		})
	}
}

func TestLicenseHeaderNames(t *testing.T) {
	ledger, err := copyright.ParseFile(filepath.Join("..", "copyright", "testdata", "COPYRIGHT.md"))
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	err = LicenseHeader(&buf, ledger, "", Options{Prefix: "game", Namespace: "Game"})
	if err != nil {
		t.Fatalf("LicenseHeader(...)=%v; want nil", err)
	}
	got := buf.String()
	for _, want := range []string{
		"namespace Game {\n",
		"\tstatic constexpr std::string_view GAME_LICENSE_TEXT = {\n\t\tR\"<!>()<!>\"\n\t};\n",
		"struct GameComponentCopyrightPart {",
		"std::to_array<GameComponentCopyright>({",
		"\t\t{ \"lexy\", { &GAME_COPYRIGHT_PARTS[2], 2 } },\n",
		"\t\t{ \"Godot C++ Bindings\", { &GAME_COPYRIGHT_PARTS[1], 1 } },\n",
		"\t\t\"2022, Jonathan Müller\",\n",
		"\t\t{ \"BSL-1.0\",\n\t\t  R\"<!>(",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("LicenseHeader(...) does not contain %q", want)
		}
	}
}

func TestLicenseHeaderEscapes(t *testing.T) {
	ledger := &copyright.Ledger{
		Entries: []string{`dir\*.c`, `2020 "Q" Corp`},
		Projects: []copyright.Project{
			{
				Name: `the "quoted" lib`,
				Parts: []copyright.Part{
					{
						License:   "MIT",
						Files:     copyright.Span{Start: 0, Count: 1},
						Copyright: copyright.Span{Start: 1, Count: 1},
					},
				},
			},
		},
	}
	var buf bytes.Buffer
	if err := LicenseHeader(&buf, ledger, "", Options{}); err != nil {
		t.Fatal(err)
	}
	got := buf.String()
	for _, want := range []string{
		"\t\t\"dir\\\\*.c\",\n",
		"\t\t\"2020 \\\"Q\\\" Corp\",\n",
		"\t\t{ \"the \\\"quoted\\\" lib\", { &PROJECT_COPYRIGHT_PARTS[0], 1 } },\n",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("LicenseHeader(...) does not contain %q\n%s", want, got)
		}
	}
}

func TestAuthorsHeader(t *testing.T) {
	sections := []authors.Section{
		{
			Title: "Project Founders",
			Const: "AUTHORS_FOUNDERS",
			Names: []string{"George L. Albany (Spartan322)"},
		},
		{
			Title: "Developers",
			Const: "AUTHORS_DEVELOPERS",
			Names: []string{"Hop311", `"wvpm"`},
		},
	}
	var buf bytes.Buffer
	if err := AuthorsHeader(&buf, sections, Options{Prefix: "game"}); err != nil {
		t.Fatalf("AuthorsHeader(...)=%v; want nil", err)
	}
	want := `/* THIS FILE IS GENERATED. EDITS WILL BE LOST. */

#pragma once

#include <array>
#include <string_view>

namespace OpenVic {
	static constexpr std::array GAME_AUTHORS_FOUNDERS = std::to_array<std::string_view>({
		"George L. Albany (Spartan322)",
	});

	static constexpr std::array GAME_AUTHORS_DEVELOPERS = std::to_array<std::string_view>({
		"Hop311",
		"\"wvpm\"",
	});
}
`
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("AuthorsHeader(...) diff -want +got:\n%s", diff)
	}
}

func TestAuthorsHeaderEmptySection(t *testing.T) {
	sections := []authors.Section{
		{
			Title: "Developers",
			Const: "AUTHORS_DEVELOPERS",
		},
	}
	var buf bytes.Buffer
	if err := AuthorsHeader(&buf, sections, Options{}); err != nil {
		t.Fatal(err)
	}
	want := "\tstatic constexpr std::array<std::string_view, 0> PROJECT_AUTHORS_DEVELOPERS = {};\n"
	if !strings.Contains(buf.String(), want) {
		t.Errorf("AuthorsHeader(...)=%q; want to contain %q", buf.String(), want)
	}
}

func TestAuthorsHeaderEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := AuthorsHeader(&buf, nil, Options{}); err != nil {
		t.Fatal(err)
	}
	want := `/* THIS FILE IS GENERATED. EDITS WILL BE LOST. */

#pragma once

#include <array>
#include <string_view>

namespace OpenVic {
}
`
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("AuthorsHeader(nil) diff -want +got:\n%s", diff)
	}
}

func TestVersionHeader(t *testing.T) {
	info := gitinfo.Info{
		Hash:      "0123456789abcdef0123456789abcdef01234567",
		Timestamp: 1700000000,
		Tag:       "v0.1",
		Release:   `Alpha "1"`,
	}
	var buf bytes.Buffer
	if err := VersionHeader(&buf, info, Options{Namespace: "OpenVic::Version"}); err != nil {
		t.Fatalf("VersionHeader(...)=%v; want nil", err)
	}
	want := `/* THIS FILE IS GENERATED. EDITS WILL BE LOST. */

#pragma once

#include <cstdint>
#include <string_view>

namespace OpenVic::Version {
	static constexpr std::string_view PROJECT_GIT_HASH = "0123456789abcdef0123456789abcdef01234567";
	static constexpr std::string_view PROJECT_GIT_TAG = "v0.1";
	static constexpr std::string_view PROJECT_GIT_RELEASE = "Alpha \"1\"";
	static constexpr uint64_t PROJECT_GIT_TIMESTAMP = 1700000000;
}
`
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("VersionHeader(...) diff -want +got:\n%s", diff)
	}
}
