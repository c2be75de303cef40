// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package buildconfig

import (
	"fmt"
	"path"
	"path/filepath"

	"go.starlark.net/starlark"
	"go.starlark.net/starlarkstruct"
)

// starPath returns path module. Results are slash separated.
//
//	base(fname)
//	dir(fname)
//	join(...)
//	rel(basepath, targetpath)
//	isabs(fname)
func starPath() starlark.Value {
	pathModule := &starlarkstruct.Module{
		Name: "path",
		Members: starlark.StringDict{
			"base":  pathFunc("base", func(s string) starlark.Value { return starlark.String(path.Base(filepath.ToSlash(s))) }),
			"dir":   pathFunc("dir", func(s string) starlark.Value { return starlark.String(path.Dir(filepath.ToSlash(s))) }),
			"isabs": pathFunc("isabs", func(s string) starlark.Value { return starlark.Bool(filepath.IsAbs(s) || path.IsAbs(s)) }),
			"join":  starlark.NewBuiltin("join", starPathJoin),
			"rel":   starlark.NewBuiltin("rel", starPathRel),
		},
	}
	pathModule.Freeze()
	return pathModule
}

// pathFunc returns a Starlark function `name(fname)` calling f.
func pathFunc(name string, f func(string) starlark.Value) *starlark.Builtin {
	return starlark.NewBuiltin(name, func(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		var fname string
		err := starlark.UnpackArgs(fn.Name(), args, kwargs, "fname", &fname)
		if err != nil {
			return starlark.None, err
		}
		return f(fname), nil
	})
}

// Starlark function `path.join(...)` to return joined path name.
func starPathJoin(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if len(kwargs) > 0 {
		return starlark.None, fmt.Errorf("%s: unexpected keyword arguments", fn.Name())
	}
	elems := make([]string, 0, len(args))
	for _, v := range args {
		s, ok := starlark.AsString(v)
		if !ok {
			return starlark.None, fmt.Errorf("%s: for parameter elems: got %s, want string", fn.Name(), v.Type())
		}
		elems = append(elems, filepath.ToSlash(s))
	}
	return starlark.String(path.Join(elems...)), nil
}

// Starlark function `path.rel(basepath, targetpath)` to return relative path of targetpath from basepath.
func starPathRel(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var basepath, targetpath string
	err := starlark.UnpackArgs(fn.Name(), args, kwargs, "basepath", &basepath, "targetpath", &targetpath)
	if err != nil {
		return starlark.None, err
	}
	rel, err := filepath.Rel(basepath, targetpath)
	if err != nil {
		return starlark.None, err
	}
	return starlark.String(filepath.ToSlash(rel)), nil
}
