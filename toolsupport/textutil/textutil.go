// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package textutil provides utilities to read hand-maintained text files.
package textutil

import (
	"bytes"
	"fmt"
	"os"
	"unicode/utf8"

	"github.com/charmbracelet/log"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Decode returns buf as UTF-8 text.
// A leading UTF-8 byte order mark is removed. Contents that are not valid
// UTF-8 are decoded as Windows-1252, which is what editors on Windows
// usually save license texts as.
func Decode(buf []byte) (string, error) {
	if utf8.Valid(buf) {
		return string(bytes.TrimPrefix(buf, utf8BOM)), nil
	}
	out, _, err := transform.Bytes(charmap.Windows1252.NewDecoder(), buf)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// ReadFile reads fname and decodes it with Decode.
func ReadFile(fname string) (string, error) {
	buf, err := os.ReadFile(fname)
	if err != nil {
		return "", err
	}
	s, err := Decode(buf)
	if err != nil {
		return "", fmt.Errorf("decode %s: %w", fname, err)
	}
	if !utf8.Valid(buf) {
		log.Warnf("%s is not valid UTF-8; decoded as Windows-1252", fname)
	}
	return s, nil
}
