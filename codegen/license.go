// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package codegen

import (
	"io"

	"github.com/openvicproject/vicbuild/copyright"
)

// LicenseHeader writes a header with the license text of the project and
// the copyright ledger of its components.
//
// Part spans are emitted as std::span over <PREFIX>_COPYRIGHT_DATA, so
// the entries must tile in ledger order, as copyright.Parse builds them.
// Empty spans and tables are emitted so the header still compiles.
func LicenseHeader(w io.Writer, ledger *copyright.Ledger, licenseText string, opts Options) error {
	upper, capital := opts.Upper(), opts.Capital()
	var (
		licenseTextName = upper + "_LICENSE_TEXT"
		partType        = capital + "ComponentCopyrightPart"
		componentType   = capital + "ComponentCopyright"
		dataName        = upper + "_COPYRIGHT_DATA"
		partsName       = upper + "_COPYRIGHT_PARTS"
		infoName        = upper + "_COPYRIGHT_INFO"
		licenseType     = capital + "License"
		licensesName    = upper + "_LICENSES"
	)

	h := newHeader("array", "span", "string_view")
	h.printf("namespace %s {\n", opts.namespace())
	h.printf("\tstatic constexpr std::string_view %s = {\n", licenseTextName)
	h.printf("\t\t%s\n", RawCString(licenseText))
	h.printf("\t};\n\n")

	h.printf("\tstruct %s {\n", partType)
	h.printf("\t\tstd::string_view license;\n")
	h.printf("\t\tstd::span<const std::string_view> files;\n")
	h.printf("\t\tstd::span<const std::string_view> copyright_statements;\n")
	h.printf("\t};\n\n")

	h.printf("\tstruct %s {\n", componentType)
	h.printf("\t\tstd::string_view name;\n")
	h.printf("\t\tstd::span<const %s> parts;\n", partType)
	h.printf("\t};\n\n")

	h.array(dataName, "std::string_view", len(ledger.Entries), func() {
		for _, e := range ledger.Entries {
			h.printf("\t\t\"%s\",\n", EscapeCString(e))
		}
	})
	h.printf("\n")

	h.array(partsName, partType, ledger.PartCount(), func() {
		for _, proj := range ledger.Projects {
			for _, p := range proj.Parts {
				h.printf("\t\t{ \"%s\", %s, %s },\n",
					EscapeCString(p.License),
					spanInit(dataName, p.Files.Start, p.Files.Count),
					spanInit(dataName, p.Copyright.Start, p.Copyright.Count))
			}
		}
	})
	h.printf("\n")

	h.array(infoName, componentType, len(ledger.Projects), func() {
		partIndex := 0
		for _, proj := range ledger.Projects {
			h.printf("\t\t{ \"%s\", %s },\n", EscapeCString(proj.Name), spanInit(partsName, partIndex, len(proj.Parts)))
			partIndex += len(proj.Parts)
		}
	})
	h.printf("\n")

	h.printf("\tstruct %s {\n", licenseType)
	h.printf("\t\tstd::string_view license_name;\n")
	h.printf("\t\tstd::string_view license_body;\n")
	h.printf("\t};\n\n")

	h.array(licensesName, licenseType, len(ledger.Licenses), func() {
		for _, l := range ledger.Licenses {
			h.printf("\t\t{ \"%s\",\n", EscapeCString(l.ID))
			h.printf("\t\t  %s },\n", RawCStringLines(l.Body))
		}
	})
	h.printf("}\n")
	return h.flush(w)
}
