// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package exitstatus

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/openvicproject/vicbuild/build/generate"
	"github.com/openvicproject/vicbuild/ui"
)

func TestReport(t *testing.T) {
	for _, tc := range []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{
			name:     "ok",
			wantCode: OK,
		},
		{
			name:     "flag",
			err:      Flagf("unknown format %q", "xml"),
			wantCode: Usage,
			wantMsg:  `unknown format "xml"`,
		},
		{
			name:     "canceled",
			err:      fmt.Errorf("watch: %w", context.Canceled),
			wantCode: Failure,
			wantMsg:  "Interrupted: watch: context canceled",
		},
		{
			name:     "stale",
			err:      fmt.Errorf("%w: gen/license_info.gen.hpp", generate.ErrStale),
			wantCode: Failure,
			wantMsg:  "Stale: generated file is stale: gen/license_info.gen.hpp",
		},
		{
			name:     "error",
			err:      errors.New("failed to read copyright file"),
			wantCode: Failure,
			wantMsg:  "Error: failed to read copyright file",
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			code := Report(&buf, time.Now(), tc.err)
			if code != tc.wantCode {
				t.Errorf("Report(%v)=%d; want %d", tc.err, code, tc.wantCode)
			}
			got := ui.StripANSIEscapeCodes(buf.String())
			if tc.wantMsg == "" && got != "" {
				t.Errorf("Report(%v) printed %q; want nothing", tc.err, got)
			}
			if !strings.Contains(got, tc.wantMsg) {
				t.Errorf("Report(%v) printed %q; want to contain %q", tc.err, got, tc.wantMsg)
			}
		})
	}
}
