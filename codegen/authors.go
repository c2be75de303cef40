// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package codegen

import (
	"io"

	"github.com/openvicproject/vicbuild/authors"
)

// AuthorsHeader writes a header with a string_view array per section.
func AuthorsHeader(w io.Writer, sections []authors.Section, opts Options) error {
	upper := opts.Upper()
	h := newHeader("array", "string_view")
	h.printf("namespace %s {\n", opts.namespace())
	for i, s := range sections {
		if i > 0 {
			h.printf("\n")
		}
		h.array(upper+"_"+s.Const, "std::string_view", len(s.Names), func() {
			for _, name := range s.Names {
				h.printf("\t\t\"%s\",\n", EscapeCString(name))
			}
		})
	}
	h.printf("}\n")
	return h.flush(w)
}
