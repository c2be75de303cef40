// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package generate

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hexops/gotextdiff"
	"github.com/hexops/gotextdiff/myers"
	"github.com/hexops/gotextdiff/span"
	"golang.org/x/sync/errgroup"

	"github.com/openvicproject/vicbuild/runtimex"
	"github.com/openvicproject/vicbuild/toolsupport/makeutil"
)

// ErrStale is returned in check mode when an output is not up to date.
var ErrStale = errors.New("generated file is stale")

// Options are options of Run and Watch.
type Options struct {
	// Check compares outputs with generated contents without writing.
	Check bool

	// Force runs generators even if outputs are up to date.
	Force bool

	// Depfile writes <output>.d depfiles and uses them to skip
	// up-to-date outputs.
	Depfile bool

	// Diff receives unified diffs of changed outputs, if not nil.
	Diff io.Writer

	// Jobs limits concurrent generators. runtimex.NumCPU if <= 0.
	Jobs int

	// Debounce is the quiet period after an input change before Watch
	// reruns generators. DefaultDebounce if <= 0.
	Debounce time.Duration
}

// Result is a result of a generator.
type Result struct {
	Name     string        `json:"name"`
	Output   string        `json:"output"`
	Changed  bool          `json:"changed"`
	UpToDate bool          `json:"up_to_date"`
	Duration time.Duration `json:"duration"`
}

// Run runs generators concurrently and writes changed outputs.
// Results are in the order of gens.
func Run(ctx context.Context, gens []Generator, opts Options) ([]Result, error) {
	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtimex.NumCPU()
	}
	results := make([]Result, len(gens))

	var mu sync.Mutex
	var stale []string

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(jobs)
	for i, g := range gens {
		eg.Go(func() error {
			r, diff, err := run(ctx, g, opts)
			if err != nil {
				return fmt.Errorf("%s: %w", g.Name(), err)
			}
			results[i] = r
			if !r.Changed {
				return nil
			}
			mu.Lock()
			defer mu.Unlock()
			if opts.Check {
				stale = append(stale, r.Output)
			}
			if opts.Diff != nil && diff != "" {
				_, err := io.WriteString(opts.Diff, diff)
				if err != nil {
					return err
				}
			}
			return nil
		})
	}
	err := eg.Wait()
	if err != nil {
		return results, err
	}
	if len(stale) > 0 {
		slices.Sort(stale)
		return results, fmt.Errorf("%w: %s", ErrStale, strings.Join(stale, ", "))
	}
	return results, nil
}

func run(ctx context.Context, g Generator, opts Options) (Result, string, error) {
	started := time.Now()
	out := g.Output()
	r := Result{Name: g.Name(), Output: out}
	inputs := g.Inputs()
	if opts.Depfile && !opts.Check && !opts.Force {
		ok, reason := upToDate(out, inputs)
		if ok {
			log.Debugf("%s: %s is up to date", g.Name(), out)
			r.UpToDate = true
			r.Duration = time.Since(started)
			return r, "", nil
		}
		log.Debugf("%s: need to generate %s: %s", g.Name(), out, reason)
	}
	if err := ctx.Err(); err != nil {
		return r, "", err
	}
	// inputs modified while generating must be newer than the depfile.
	var stamp time.Time
	var stampErr error
	if opts.Depfile && !opts.Check && len(inputs) > 0 {
		stamp, stampErr = inputsStamp(inputs)
	}
	content, err := g.Generate(ctx)
	if err != nil {
		return r, "", err
	}
	old, err := os.ReadFile(out)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return r, "", err
	}
	var diff string
	if !bytes.Equal(old, content) {
		r.Changed = true
		if opts.Diff != nil {
			diff = unifiedDiff(out, old, content)
		}
		if !opts.Check {
			err = writeFile(out, content)
			if err != nil {
				return r, "", err
			}
			log.Infof("%s: wrote %s", g.Name(), out)
		}
	}
	if opts.Depfile && !opts.Check && len(inputs) > 0 {
		err = writeDepfile(out, inputs, stamp, stampErr)
		if err != nil {
			return r, "", err
		}
	}
	r.Duration = time.Since(started)
	return r, diff, nil
}

func depfileName(out string) string {
	return out + ".d"
}

// inputsStamp returns the latest mtime of inputs.
func inputsStamp(inputs []string) (time.Time, error) {
	var stamp time.Time
	for _, in := range inputs {
		fi, err := os.Stat(in)
		if err != nil {
			return time.Time{}, err
		}
		if fi.ModTime().After(stamp) {
			stamp = fi.ModTime()
		}
	}
	return stamp, nil
}

// writeDepfile writes the depfile of out with mtime set to stamp, the
// latest input mtime seen before generation.
// The depfile is removed if stamp is unknown.
func writeDepfile(out string, inputs []string, stamp time.Time, stampErr error) error {
	dep := depfileName(out)
	if stampErr != nil {
		log.Debugf("no depfile for %s: %v", out, stampErr)
		err := os.Remove(dep)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
		return nil
	}
	var buf bytes.Buffer
	err := makeutil.WriteDeps(&buf, out, inputs)
	if err != nil {
		return err
	}
	err = writeFile(dep, buf.Bytes())
	if err != nil {
		return err
	}
	return os.Chtimes(dep, stamp, stamp)
}

// upToDate reports whether no input recorded in the depfile of out
// changed since out was generated. The depfile mtime is the latest
// input mtime at that generation. It returns the reason when it is not.
func upToDate(out string, inputs []string) (bool, string) {
	if len(inputs) == 0 {
		return false, "no inputs"
	}
	dep := depfileName(out)
	deps, err := makeutil.ParseDepsFile(os.DirFS(filepath.Dir(dep)), filepath.Base(dep))
	if err != nil {
		return false, fmt.Sprintf("depfile: %v", err)
	}
	if !slices.Equal(deps, inputs) {
		return false, fmt.Sprintf("inputs changed %q -> %q", deps, inputs)
	}
	if _, err := os.Stat(out); err != nil {
		return false, fmt.Sprintf("output: %v", err)
	}
	dfi, err := os.Stat(dep)
	if err != nil {
		return false, fmt.Sprintf("depfile: %v", err)
	}
	stamp := dfi.ModTime()
	for _, in := range inputs {
		fi, err := os.Stat(in)
		if err != nil {
			return false, fmt.Sprintf("input: %v", err)
		}
		if fi.ModTime().After(stamp) {
			return false, fmt.Sprintf("input %s changed: +%s", in, fi.ModTime().Sub(stamp))
		}
	}
	return true, ""
}

// writeFile writes content to fname via a temporary file and rename.
func writeFile(fname string, content []byte) error {
	err := os.MkdirAll(filepath.Dir(fname), 0755)
	if err != nil {
		return err
	}
	tmp := fname + ".tmp"
	err = os.WriteFile(tmp, content, 0644)
	if err != nil {
		os.Remove(tmp)
		return err
	}
	err = os.Rename(tmp, fname)
	if err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}

func unifiedDiff(fname string, before, after []byte) string {
	a, b := string(before), string(after)
	edits := myers.ComputeEdits(span.URIFromPath(fname), a, b)
	return fmt.Sprint(gotextdiff.ToUnified(fname, fname, a, edits))
}
