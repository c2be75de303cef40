// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package generate

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func waitReport(t *testing.T, reports <-chan []Result) []Result {
	t.Helper()
	select {
	case r := <-reports:
		return r
	case <-time.After(10 * time.Second):
		t.Fatal("timed out waiting for watch report")
	}
	return nil
}

func TestWatch(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "AUTHORS.md")
	err := os.WriteFile(in, []byte("## Developers\n"), 0644)
	if err != nil {
		t.Fatal(err)
	}
	a := &fakeGen{name: "a", out: filepath.Join(dir, "out", "a.h"), inputs: []string{in}, content: "a\n"}
	b := &fakeGen{name: "b", out: filepath.Join(dir, "out", "b.h"), inputs: []string{filepath.Join(dir, "COPYRIGHT")}, content: "b\n"}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	reports := make(chan []Result, 10)
	errc := make(chan error, 1)
	go func() {
		errc <- Watch(ctx, []Generator{a, b}, Options{Debounce: 10 * time.Millisecond}, func(r []Result, err error) {
			if err != nil {
				t.Errorf("watch run: %v", err)
			}
			reports <- r
		})
	}()

	first := waitReport(t, reports)
	var names []string
	for _, r := range first {
		names = append(names, r.Name)
	}
	if diff := cmp.Diff([]string{"a", "b"}, names); diff != "" {
		t.Errorf("first run names -want +got:\n%s", diff)
	}

	err = os.WriteFile(in, []byte("## Developers\n\n    Alice\n"), 0644)
	if err != nil {
		t.Fatal(err)
	}
	second := waitReport(t, reports)
	if len(second) != 1 || second[0].Name != "a" || second[0].UpToDate {
		t.Errorf("second run=%+v; want only a regenerated", second)
	}
	if n := a.calls.Load(); n != 2 {
		t.Errorf("a calls=%d; want 2", n)
	}
	if n := b.calls.Load(); n != 1 {
		t.Errorf("b calls=%d; want 1", n)
	}

	cancel()
	select {
	case err := <-errc:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Watch(...)=%v; want %v", err, context.Canceled)
		}
	case <-time.After(10 * time.Second):
		t.Fatal("Watch did not return after cancel")
	}
}
