// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package generate

import (
	"context"
	"fmt"
	"maps"
	"path/filepath"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the default quiet period of Watch.
const DefaultDebounce = 200 * time.Millisecond

// Watch runs all generators, then watches their inputs and reruns the
// generators whose inputs changed, until ctx is done.
// report is called with the results of each run.
func Watch(ctx context.Context, gens []Generator, opts Options, report func([]Result, error)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer w.Close()

	byInput := make(map[string][]int)
	dirs := make(map[string]bool)
	for i, g := range gens {
		for _, in := range g.Inputs() {
			abs, err := filepath.Abs(in)
			if err != nil {
				return err
			}
			byInput[abs] = append(byInput[abs], i)
			// watch dirs, since editors often replace files by rename.
			dir := filepath.Dir(abs)
			if dirs[dir] {
				continue
			}
			dirs[dir] = true
			err = w.Add(dir)
			if err != nil {
				return fmt.Errorf("failed to watch %s: %w", dir, err)
			}
			log.Debugf("watch %s", dir)
		}
	}

	report(Run(ctx, gens, opts))

	debounce := opts.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()

	pending := make(map[int]bool)
	rerun := opts
	rerun.Force = true
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) && !ev.Has(fsnotify.Remove) {
				continue
			}
			idx, ok := byInput[filepath.Clean(ev.Name)]
			if !ok {
				continue
			}
			log.Debugf("watch event %s", ev)
			for _, i := range idx {
				pending[i] = true
			}
			timer.Reset(debounce)

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Warnf("watch error: %v", err)

		case <-timer.C:
			var run []Generator
			for _, i := range slices.Sorted(maps.Keys(pending)) {
				run = append(run, gens[i])
			}
			clear(pending)
			if len(run) == 0 {
				continue
			}
			report(Run(ctx, run, rerun))
		}
	}
}
