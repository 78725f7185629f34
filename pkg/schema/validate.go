// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package schema

import (
	"fmt"
	"math"
	"strconv"

	"github.com/tfctl/clikit/pkg/clierr"
)

// Validate checks a single node against the schema rules: argument
// ordering, option uniqueness, enumeration label rules and default
// assignability. The returned errors carry the node's source file and
// path as locators.
func Validate(n *Node, path []string) []error {
	var errs []error

	loc := func(field, format string, args ...any) {
		errs = append(errs, clierr.SchemaInvalid(n.SourceFile, path, field, format, args...))
	}

	errs = append(errs, validateArgs(n, path)...)

	seenLong := map[string]bool{}
	seenShort := map[rune]bool{}
	for i := range n.Options {
		opt := &n.Options[i]
		if opt.Long == "" {
			loc("options", "option with empty long name")
			continue
		}
		if len([]rune(opt.Long)) < 2 {
			loc(opt.Long, "long name must be at least two characters")
		}
		if seenLong[opt.Long] {
			loc(opt.Long, "duplicate option long name %q", opt.Long)
		}
		seenLong[opt.Long] = true
		if opt.Short != 0 {
			if seenShort[opt.Short] {
				loc(opt.Long, "duplicate option short character %q", string(opt.Short))
			}
			seenShort[opt.Short] = true
		}
		if opt.Type.Kind == Bool && opt.TakesValue {
			loc(opt.Long, "boolean options do not take a value")
		}
		if opt.Type.Kind != Bool && !opt.TakesValue {
			loc(opt.Long, "%s options must take a value", opt.Type.Kind)
		}
		errs = append(errs, validateType(n, path, opt.Long, opt.Type)...)
		if opt.Default != nil {
			if err := checkDefault(opt.Type, opt.Default); err != nil {
				loc(opt.Long, "default value: %v", err)
			}
		}
	}

	return errs
}

// ValidateTree validates the node and every descendant.
func ValidateTree(root *Node) []error {
	var errs []error
	var walk func(n *Node, path []string)
	walk = func(n *Node, path []string) {
		errs = append(errs, Validate(n, path)...)
		for _, child := range n.Children() {
			walk(child, append(append([]string{}, path...), child.Name))
		}
	}
	walk(root, nil)
	return errs
}

func validateArgs(n *Node, path []string) []error {
	var errs []error
	loc := func(field, format string, args ...any) {
		errs = append(errs, clierr.SchemaInvalid(n.SourceFile, path, field, format, args...))
	}

	sawOptional := false
	for i := range n.Args {
		arg := &n.Args[i]
		if arg.Name == "" {
			loc("args", "argument with empty name")
		}
		if arg.Variadic {
			if i != len(n.Args)-1 {
				loc(arg.Name, "variadic argument must be last")
			}
			if arg.Type.Kind != Strings {
				loc(arg.Name, "variadic argument must have type strings")
			}
		}
		if !arg.Required && !arg.Variadic {
			sawOptional = true
		} else if arg.Required && sawOptional {
			loc(arg.Name, "required argument may not follow an optional one")
		}
		errs = append(errs, validateType(n, path, arg.Name, arg.Type)...)
	}
	return errs
}

func validateType(n *Node, path []string, field string, t ValueType) []error {
	var errs []error
	loc := func(format string, args ...any) {
		errs = append(errs, clierr.SchemaInvalid(n.SourceFile, path, field, format, args...))
	}

	switch t.Kind {
	case Bool, String, Strings:
	case Int, Uint:
		switch t.Bits {
		case 0, 8, 16, 32, 64:
		default:
			loc("invalid %s width %d", t.Kind, t.Bits)
		}
	case Float:
		switch t.Bits {
		case 0, 32, 64:
		default:
			loc("invalid float width %d", t.Bits)
		}
	case Enum:
		if len(t.Labels) == 0 {
			loc("enumeration has no labels")
		}
		seen := map[string]bool{}
		for _, label := range t.Labels {
			if label == "" {
				loc("enumeration label may not be empty")
			}
			if seen[label] {
				loc("duplicate enumeration label %q", label)
			}
			seen[label] = true
		}
	default:
		loc("unknown type %q", t.Kind)
	}
	return errs
}

// checkDefault verifies a declared default is assignable to the type.
func checkDefault(t ValueType, def any) error {
	switch t.Kind {
	case Bool:
		if _, ok := def.(bool); !ok {
			return fmt.Errorf("%v is not a bool", def)
		}
	case Int:
		v, ok := toInt64(def)
		if !ok {
			return fmt.Errorf("%v is not an integer", def)
		}
		bits := t.Bits
		if bits == 0 {
			bits = 64
		}
		if bits < 64 {
			limit := int64(1) << (bits - 1)
			if v < -limit || v >= limit {
				return fmt.Errorf("%d overflows int%d", v, bits)
			}
		}
	case Uint:
		v, ok := toInt64(def)
		if !ok || v < 0 {
			return fmt.Errorf("%v is not an unsigned integer", def)
		}
		bits := t.Bits
		if bits == 0 {
			bits = 64
		}
		if bits < 64 && uint64(v) >= uint64(1)<<bits {
			return fmt.Errorf("%d overflows uint%d", v, bits)
		}
	case Float:
		switch def.(type) {
		case float64, float32, int, int64:
		default:
			return fmt.Errorf("%v is not a float", def)
		}
	case String:
		if _, ok := def.(string); !ok {
			return fmt.Errorf("%v is not a string", def)
		}
	case Enum:
		s, ok := def.(string)
		if !ok {
			return fmt.Errorf("%v is not a string", def)
		}
		for _, label := range t.Labels {
			if label == s {
				return nil
			}
		}
		return fmt.Errorf("%q is not one of %v", s, t.Labels)
	case Strings:
		switch v := def.(type) {
		case []string:
		case []any:
			for _, item := range v {
				if _, ok := item.(string); !ok {
					return fmt.Errorf("%v is not a string", item)
				}
			}
		default:
			return fmt.Errorf("%v is not a string list", def)
		}
	}
	return nil
}

func toInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int64:
		return n, true
	case uint64:
		if n > math.MaxInt64 {
			return 0, false
		}
		return int64(n), true
	case float64:
		if n != math.Trunc(n) {
			return 0, false
		}
		return int64(n), true
	case string:
		parsed, err := strconv.ParseInt(n, 10, 64)
		if err != nil {
			return 0, false
		}
		return parsed, true
	default:
		return 0, false
	}
}
