// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package cmdutil

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Output runs the command in dir and returns its stdout.
// The error includes stderr of the command, if any.
func Output(ctx context.Context, dir, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return "", fmt.Errorf("%s %q: %w: %s", name, args, err, msg)
		}
		return "", fmt.Errorf("%s %q: %w", name, args, err)
	}
	return string(out), nil
}
