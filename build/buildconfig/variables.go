// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package buildconfig provides build options of vicbuild.
//
// Options are declared in Variables and resolved into Values from
// defaults, a Starlark options file and command line "key=value"
// arguments, in that order of precedence.
package buildconfig

import (
	"fmt"
	"slices"
	"strings"
)

// Kind is a kind of option.
type Kind int

// Kinds of options.
const (
	String Kind = iota
	Bool
	Enum
)

func (k Kind) String() string {
	switch k {
	case String:
		return "string"
	case Bool:
		return "bool"
	case Enum:
		return "enum"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Variable is a declared option.
type Variable struct {
	Name    string   `json:"name"`
	Help    string   `json:"help"`
	Kind    Kind     `json:"kind"`
	Default string   `json:"default"`
	Allowed []string `json:"allowed,omitempty"`
}

// normalize validates value for the variable and returns its canonical
// form. Bool values are "yes" or "no".
func (v Variable) normalize(value string) (string, error) {
	switch v.Kind {
	case Bool:
		b, err := ParseBool(value)
		if err != nil {
			return "", fmt.Errorf("option %s: %w", v.Name, err)
		}
		return FormatBool(b), nil
	case Enum:
		if !slices.Contains(v.Allowed, value) {
			return "", fmt.Errorf("option %s: invalid value %q; allowed values are %s", v.Name, value, strings.Join(v.Allowed, ", "))
		}
	}
	return value, nil
}

// Variables is an ordered set of options.
type Variables struct {
	vars  []Variable
	index map[string]int
}

// NewVariables returns empty Variables.
func NewVariables() *Variables {
	return &Variables{index: make(map[string]int)}
}

// Add adds the variable. If a variable with the same name was added
// before, the first one is kept and Add returns false.
func (vs *Variables) Add(v Variable) bool {
	if _, ok := vs.index[v.Name]; ok {
		return false
	}
	if v.Kind == Bool {
		v.Default = FormatBool(mustParseBool(v.Default))
	}
	vs.index[v.Name] = len(vs.vars)
	vs.vars = append(vs.vars, v)
	return true
}

// AddBool adds a bool option.
func (vs *Variables) AddBool(name, help string, def bool) {
	vs.Add(Variable{Name: name, Help: help, Kind: Bool, Default: FormatBool(def)})
}

// AddEnum adds an option that takes one of allowed values.
func (vs *Variables) AddEnum(name, help, def string, allowed ...string) {
	if !slices.Contains(allowed, def) {
		panic(fmt.Sprintf("option %s: default %q not in %q", name, def, allowed))
	}
	vs.Add(Variable{Name: name, Help: help, Kind: Enum, Default: def, Allowed: allowed})
}

// AddString adds a string option.
func (vs *Variables) AddString(name, help, def string) {
	vs.Add(Variable{Name: name, Help: help, Kind: String, Default: def})
}

// Lookup returns the variable for the name.
func (vs *Variables) Lookup(name string) (Variable, bool) {
	i, ok := vs.index[name]
	if !ok {
		return Variable{}, false
	}
	return vs.vars[i], true
}

// All returns all variables in the order added.
func (vs *Variables) All() []Variable {
	return slices.Clone(vs.vars)
}

// ParseBool parses a bool value as SCons BoolVariable does.
func ParseBool(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "y", "yes", "true", "t", "on", "all", "1":
		return true, nil
	case "n", "no", "false", "f", "off", "none", "0":
		return false, nil
	}
	return false, fmt.Errorf("invalid bool value %q", s)
}

func mustParseBool(s string) bool {
	b, err := ParseBool(s)
	if err != nil {
		panic(err)
	}
	return b
}

// FormatBool returns "yes" or "no".
func FormatBool(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
