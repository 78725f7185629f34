// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package bind validates a parse result against a command's schema and
// produces the typed Args and Options values handed to handlers.
package bind

import (
	"strconv"
	"strings"

	"github.com/tfctl/clikit/pkg/clictx"
	"github.com/tfctl/clikit/pkg/clierr"
	"github.com/tfctl/clikit/pkg/parser"
	"github.com/tfctl/clikit/pkg/schema"
)

// boolLiterals is the closed set accepted for boolean options given an
// explicit inline value, matched case-insensitively.
var boolLiterals = map[string]bool{
	"true": true, "1": true, "yes": true, "on": true,
	"false": false, "0": false, "no": false, "off": false,
}

// Bind assigns positionals to the node's argument descriptors and
// coerces option occurrences to their declared types. Global options
// are excluded; they belong to the registry and are routed to plugin
// hooks before binding. The first rule violation is returned as a typed
// error.
func Bind(res *parser.Result, node *schema.Node) (*clictx.Values, *clictx.Values, error) {
	args, err := bindArgs(res, node)
	if err != nil {
		return nil, nil, err
	}
	opts, err := bindOptions(res, node)
	if err != nil {
		return nil, nil, err
	}
	return args, opts, nil
}

func bindArgs(res *parser.Result, node *schema.Node) (*clictx.Values, error) {
	args := clictx.NewValues()
	positionals := append(append([]string{}, res.Positionals...), res.Tail...)

	idx := 0
	for i := range node.Args {
		arg := &node.Args[i]
		if arg.Variadic {
			rest := append([]string{}, positionals[idx:]...)
			args.Put(arg.Name, rest)
			idx = len(positionals)
			continue
		}
		if idx >= len(positionals) {
			if arg.Required {
				return nil, clierr.MissingArgument(res.CommandPath, arg.Name)
			}
			continue
		}
		value, err := coerce(res.CommandPath, arg.Name, arg.Type, positionals[idx])
		if err != nil {
			return nil, err
		}
		args.Put(arg.Name, value)
		idx++
	}

	if idx < len(positionals) {
		return nil, clierr.TooManyArguments(res.CommandPath, positionals[idx])
	}
	return args, nil
}

func bindOptions(res *parser.Result, node *schema.Node) (*clictx.Values, error) {
	opts := clictx.NewValues()
	for i := range node.Options {
		opt := &node.Options[i]
		values := res.Values(opt.Long)
		if len(values) == 0 {
			opts.Put(opt.Long, defaultValue(opt))
			continue
		}
		if opt.Type.Kind == schema.Strings {
			out := append([]string{}, values...)
			opts.Put(opt.Long, out)
			continue
		}
		// Non-repeatable; the parser has already raised DuplicateOption
		// for extra occurrences, bind the first.
		value, err := coerce(res.CommandPath, opt.Long, opt.Type, values[0])
		if err != nil {
			return nil, err
		}
		opts.Put(opt.Long, value)
	}
	return opts, nil
}

// defaultValue normalizes a descriptor's default to the binder's
// canonical runtime representation for its type.
func defaultValue(opt *schema.Option) any {
	if opt.Default == nil {
		switch opt.Type.Kind {
		case schema.Bool:
			return false
		case schema.Int:
			return int64(0)
		case schema.Uint:
			return uint64(0)
		case schema.Float:
			return float64(0)
		case schema.Strings:
			return []string(nil)
		default:
			return ""
		}
	}
	switch def := opt.Default.(type) {
	case int:
		if opt.Type.Kind == schema.Uint {
			return uint64(def)
		}
		if opt.Type.Kind == schema.Float {
			return float64(def)
		}
		return int64(def)
	case int64:
		if opt.Type.Kind == schema.Uint {
			return uint64(def)
		}
		if opt.Type.Kind == schema.Float {
			return float64(def)
		}
		return def
	case float64:
		if opt.Type.Kind == schema.Int {
			return int64(def)
		}
		if opt.Type.Kind == schema.Uint {
			return uint64(def)
		}
		return def
	case []any:
		out := make([]string, 0, len(def))
		for _, item := range def {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return def
	}
}

// coerce converts one lexeme to the declared type. Failures carry the
// field name and the offending lexeme.
func coerce(path []string, name string, t schema.ValueType, lexeme string) (any, error) {
	bits := t.Bits
	if bits == 0 {
		bits = 64
	}
	switch t.Kind {
	case schema.String:
		return lexeme, nil
	case schema.Bool:
		if v, ok := boolLiterals[strings.ToLower(lexeme)]; ok {
			return v, nil
		}
		return nil, clierr.InvalidOptionValue(path, name, lexeme)
	case schema.Int:
		v, err := strconv.ParseInt(lexeme, 10, bits)
		if err != nil {
			return nil, clierr.InvalidOptionValue(path, name, lexeme)
		}
		return v, nil
	case schema.Uint:
		v, err := strconv.ParseUint(lexeme, 10, bits)
		if err != nil {
			return nil, clierr.InvalidOptionValue(path, name, lexeme)
		}
		return v, nil
	case schema.Float:
		v, err := strconv.ParseFloat(lexeme, bits)
		if err != nil {
			return nil, clierr.InvalidOptionValue(path, name, lexeme)
		}
		return v, nil
	case schema.Enum:
		for _, label := range t.Labels {
			if label == lexeme {
				return lexeme, nil
			}
		}
		return nil, clierr.InvalidOptionValue(path, name, lexeme)
	case schema.Strings:
		return []string{lexeme}, nil
	default:
		return nil, clierr.InvalidOptionValue(path, name, lexeme)
	}
}
