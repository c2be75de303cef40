// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package shutil provides POSIX shell style word splitting and quoting
// for flag strings.
package shutil

import (
	"fmt"
	"strings"
)

// Split splits a flag string into words like a POSIX shell does,
// honoring single quotes, double quotes and backslashes.
// It returns error for unbalanced quotes and unquoted shell operators.
func Split(cmdline string) ([]string, error) {
	var args []string
	var sb strings.Builder
	inword := false
	escaped := false
	var quote rune
	for _, ch := range cmdline {
		switch {
		case escaped:
			sb.WriteRune(ch)
			escaped = false
			continue
		case quote == '\'':
			if ch == '\'' {
				quote = 0
				continue
			}
			sb.WriteRune(ch)
			continue
		case quote == '"':
			switch ch {
			case '"':
				quote = 0
			case '\\':
				escaped = true
			default:
				sb.WriteRune(ch)
			}
			continue
		}
		switch ch {
		case '\\':
			inword = true
			escaped = true
		case '\'', '"':
			inword = true
			quote = ch
		case ' ', '\t', '\n', '\r':
			if inword {
				args = append(args, sb.String())
				sb.Reset()
				inword = false
			}
		case ';', '&', '|', '<', '>', '`':
			return nil, fmt.Errorf("failed to split: cmdline contains shell metachar %c", ch)
		default:
			inword = true
			sb.WriteRune(ch)
		}
	}
	if escaped {
		return nil, fmt.Errorf("failed to split: cmdline ends with backslash")
	}
	if quote != 0 {
		return nil, fmt.Errorf("failed to split: unterminated quote %c", quote)
	}
	if inword {
		args = append(args, sb.String())
	}
	return args, nil
}
