// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package codegen

import (
	"io"

	"github.com/openvicproject/vicbuild/gitinfo"
)

// VersionHeader writes a header with the git revision information.
func VersionHeader(w io.Writer, info gitinfo.Info, opts Options) error {
	upper := opts.Upper()
	h := newHeader("cstdint", "string_view")
	h.printf("namespace %s {\n", opts.namespace())
	h.printf("\tstatic constexpr std::string_view %s_GIT_HASH = \"%s\";\n", upper, EscapeCString(info.Hash))
	h.printf("\tstatic constexpr std::string_view %s_GIT_TAG = \"%s\";\n", upper, EscapeCString(info.Tag))
	h.printf("\tstatic constexpr std::string_view %s_GIT_RELEASE = \"%s\";\n", upper, EscapeCString(info.Release))
	h.printf("\tstatic constexpr uint64_t %s_GIT_TIMESTAMP = %d;\n", upper, max(info.Timestamp, 0))
	h.printf("}\n")
	return h.flush(w)
}
