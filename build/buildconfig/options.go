// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package buildconfig

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"go.starlark.net/starlark"
	"go.starlark.net/starlarkstruct"

	"github.com/openvicproject/vicbuild/toolsupport/shutil"
)

// OptionsError is an error in evaluating an options file.
type OptionsError struct {
	fname string
	err   *starlark.EvalError
}

func (e OptionsError) Error() string {
	return fmt.Sprintf("failed to evaluate %s: %v", e.fname, e.err)
}

// Backtrace returns the Starlark call stack of the error.
func (e OptionsError) Backtrace() string {
	return e.err.Backtrace()
}

func (e OptionsError) Unwrap() error {
	return e.err
}

// LoadOptionsFile evaluates the Starlark options file fname and returns
// its option values.
func LoadOptionsFile(ctx context.Context, fname string, host HostInfo) (map[string]string, error) {
	buf, err := os.ReadFile(fname)
	if err != nil {
		return nil, fmt.Errorf("failed to read options file: %w", err)
	}
	return LoadOptions(ctx, fname, buf, host)
}

// LoadOptions evaluates Starlark source src and returns its option values.
//
// Top-level globals not starting with "_" are option values. Strings,
// bools, ints and lists of strings are supported. Functions are ignored
// so the file may define helpers.
func LoadOptions(ctx context.Context, fname string, src []byte, host HostInfo) (map[string]string, error) {
	thread := &starlark.Thread{
		Name: "options",
		Print: func(thread *starlark.Thread, msg string) {
			log.Infof("thread:%s %s", thread.Name, msg)
		},
		Load: func(*starlark.Thread, string) (starlark.StringDict, error) {
			return nil, errors.New("load is not allowed in options file")
		},
	}
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			thread.Cancel(context.Cause(ctx).Error())
		case <-done:
		}
	}()
	globals, err := starlark.ExecFile(thread, fname, src, predeclared(host))
	if err != nil {
		log.Warnf("thread:%s failed to exec file %s: %v", thread.Name, fname, err)
		var eerr *starlark.EvalError
		if errors.As(err, &eerr) {
			log.Warnf("stacktrace:\n%s", eerr.Backtrace())
			return nil, OptionsError{fname: fname, err: eerr}
		}
		return nil, fmt.Errorf("failed to exec %s: %w", fname, err)
	}
	values := make(map[string]string)
	for _, name := range globals.Keys() {
		if strings.HasPrefix(name, "_") {
			continue
		}
		s, ok, err := optionValue(globals[name])
		if err != nil {
			return nil, fmt.Errorf("%s: option %s: %w", fname, name, err)
		}
		if !ok {
			log.Debugf("%s: ignore %s (%s)", fname, name, globals[name].Type())
			continue
		}
		values[name] = s
	}
	log.Debugf("options %s: %q", fname, values)
	return values, nil
}

// optionValue converts Starlark value to option value.
// It returns false for values that are not options.
func optionValue(v starlark.Value) (string, bool, error) {
	switch v := v.(type) {
	case starlark.String:
		return string(v), true, nil
	case starlark.Bool:
		return FormatBool(bool(v)), true, nil
	case starlark.Int:
		return v.String(), true, nil
	case *starlark.List, starlark.Tuple:
		list, err := unpackList(v)
		if err != nil {
			return "", false, err
		}
		return shutil.Join(list), true, nil
	case starlark.NoneType, starlark.Callable, *starlark.Dict, *starlarkstruct.Module, *starlarkstruct.Struct:
		return "", false, nil
	}
	return "", false, fmt.Errorf("unsupported value type %s", v.Type())
}

func unpackList(v starlark.Value) ([]string, error) {
	iterator := starlark.Iterate(v)
	if iterator == nil {
		return nil, fmt.Errorf("got %v; want iterator", v.Type())
	}
	defer iterator.Done()
	var elem starlark.Value
	var list []string
	for iterator.Next(&elem) {
		s, ok := starlark.AsString(elem)
		if !ok {
			return nil, fmt.Errorf("got %v in %v; want string", elem.Type(), v.Type())
		}
		list = append(list, s)
	}
	return list, nil
}
