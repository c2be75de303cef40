// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

//go:build !windows

package ui

// Init initializes the terminal. Nothing to do on this platform.
func Init() {}

// Restore restores the terminal settings.
func Restore() {}
