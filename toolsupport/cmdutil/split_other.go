// Copyright 2023 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

//go:build !windows

package cmdutil

import "github.com/openvicproject/vicbuild/toolsupport/shutil"

// Split splits cmdline as the host shell does.
// On non-Windows hosts, it uses POSIX shell quoting rules.
func Split(cmdline string) ([]string, error) {
	return shutil.Split(cmdline)
}
