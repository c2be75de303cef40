// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package buildconfig

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/charmbracelet/log"
)

// Source is where an option value came from.
type Source int

// Sources of option values, from lowest precedence.
const (
	SourceDefault Source = iota
	SourceFile
	SourceArgs
	SourceComputed
)

func (s Source) String() string {
	switch s {
	case SourceDefault:
		return "default"
	case SourceFile:
		return "file"
	case SourceArgs:
		return "args"
	case SourceComputed:
		return "computed"
	}
	return fmt.Sprintf("Source(%d)", int(s))
}

// Arg is a "key=value" command line argument.
type Arg struct {
	Key   string
	Value string
}

// ParseArgs parses "key=value" arguments.
func ParseArgs(args []string) ([]Arg, error) {
	var r []Arg
	for _, arg := range args {
		k, v, ok := strings.Cut(arg, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("bad argument %q; want key=value", arg)
		}
		r = append(r, Arg{Key: k, Value: v})
	}
	return r, nil
}

// Values holds resolved option values.
type Values struct {
	vars    *Variables
	values  map[string]string
	sources map[string]Source
	unknown []string
}

// Resolve resolves values of vars from defaults, file values and args.
// Keys unknown to vars are logged and reported by Unknown.
func Resolve(vars *Variables, file map[string]string, args []Arg) (*Values, error) {
	v := &Values{
		vars:    vars,
		values:  make(map[string]string),
		sources: make(map[string]Source),
	}
	for _, variable := range vars.vars {
		v.values[variable.Name] = variable.Default
		v.sources[variable.Name] = SourceDefault
	}
	for _, k := range slices.Sorted(maps.Keys(file)) {
		if err := v.set(k, file[k], SourceFile); err != nil {
			return nil, err
		}
	}
	for _, arg := range args {
		if err := v.set(arg.Key, arg.Value, SourceArgs); err != nil {
			return nil, err
		}
	}
	return v, nil
}

func (v *Values) set(name, value string, src Source) error {
	variable, ok := v.vars.Lookup(name)
	if !ok {
		log.Warnf("unknown option %s=%q (from %s)", name, value, src)
		if !slices.Contains(v.unknown, name) {
			v.unknown = append(v.unknown, name)
		}
		return nil
	}
	value, err := variable.normalize(value)
	if err != nil {
		return fmt.Errorf("%w (from %s)", err, src)
	}
	v.values[name] = value
	v.sources[name] = src
	return nil
}

// Set sets a computed value, which overrides any source.
func (v *Values) Set(name, value string) error {
	if _, ok := v.vars.Lookup(name); !ok {
		return fmt.Errorf("unknown option %s", name)
	}
	return v.set(name, value, SourceComputed)
}

// Get returns the value of the option, or "" if not declared.
func (v *Values) Get(name string) string {
	return v.values[name]
}

// Bool returns the value of the bool option.
func (v *Values) Bool(name string) bool {
	b, _ := ParseBool(v.values[name])
	return b
}

// Source returns where the option value came from.
func (v *Values) Source(name string) Source {
	return v.sources[name]
}

// Explicit reports whether the option was given on the command line.
func (v *Values) Explicit(name string) bool {
	return v.sources[name] == SourceArgs
}

// IsSet reports whether the option was given in the file or on the
// command line.
func (v *Values) IsSet(name string) bool {
	src := v.sources[name]
	return src == SourceFile || src == SourceArgs
}

// Unknown returns keys that are not declared, in order seen.
func (v *Values) Unknown() []string {
	return slices.Clone(v.unknown)
}

// Variables returns the declared variables.
func (v *Values) Variables() *Variables {
	return v.vars
}

// Map returns a copy of all values.
func (v *Values) Map() map[string]string {
	return maps.Clone(v.values)
}
