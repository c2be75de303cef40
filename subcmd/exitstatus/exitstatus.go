// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package exitstatus reports command errors and maps them to exit codes.
package exitstatus

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/openvicproject/vicbuild/build/buildconfig"
	"github.com/openvicproject/vicbuild/build/generate"
	"github.com/openvicproject/vicbuild/ui"
)

// Exit codes.
const (
	OK      = 0
	Failure = 1
	Usage   = 2
)

// FlagError is an error in command line flags or arguments.
type FlagError struct {
	Err error
}

func (f FlagError) Error() string {
	return f.Err.Error()
}

func (f FlagError) Unwrap() error {
	return f.Err
}

// Flagf returns a FlagError.
func Flagf(format string, args ...any) error {
	return FlagError{Err: fmt.Errorf(format, args...)}
}

// Report prints err to w and returns the exit code for err.
// It prints nothing for nil err.
func Report(w io.Writer, started time.Time, err error) int {
	if err == nil {
		return OK
	}
	dur := ui.FormatDuration(time.Since(started))
	var errFlag FlagError
	var errOptions buildconfig.OptionsError
	switch {
	case errors.As(err, &errFlag):
		fmt.Fprintf(w, "%v\n", err)
		return Usage

	case errors.Is(err, context.Canceled):
		fmt.Fprintf(w, "%6s %s: %v\n", dur, ui.Colorize(ui.Yellow, "Interrupted"), err)

	case errors.Is(err, generate.ErrStale):
		fmt.Fprintf(w, "%6s %s: %v\n", dur, ui.Colorize(ui.Yellow, "Stale"), err)

	case errors.As(err, &errOptions):
		fmt.Fprintf(w, "%6s %s: %v\n%s\n", dur, ui.Colorize(ui.BackgroundRed, "Options Failure"), err, errOptions.Backtrace())

	default:
		fmt.Fprintf(w, "%6s %s: %v\n", dur, ui.Colorize(ui.BackgroundRed, "Error"), err)
	}
	return Failure
}
