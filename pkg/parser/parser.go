// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package parser splits a raw argument vector into a command path,
// long/short options, positionals and the double-dash tail. It follows
// POSIX/GNU conventions: --name value, --name=value, -s value, -svalue
// and clustered boolean shorts (-abc). Parsing never stops at the first
// problem; every error is recorded so the dispatcher can report the
// earliest one after plugin hooks have run.
package parser

import (
	"strings"

	"github.com/tfctl/clikit/pkg/clierr"
	"github.com/tfctl/clikit/pkg/schema"
)

// Occurrence records one option occurrence in input order. Canonical is
// the owning descriptor's long name regardless of how the option was
// spelled on the command line.
type Occurrence struct {
	Canonical string
	Global    bool
	Token     string
	Value     string
	HasValue  bool
}

// Result is the structured outcome of tokenizing one argument vector.
type Result struct {
	CommandPath []string
	Node        *schema.Node
	Long        map[string][]string
	Short       map[string][]string
	Positionals []string
	Tail        []string
	Occurrences []Occurrence
	Errors      []error

	counts map[string]int
}

// Err returns the first recorded parse error, or nil.
func (r *Result) Err() error {
	if len(r.Errors) == 0 {
		return nil
	}
	return r.Errors[0]
}

// Values returns every recorded value for the canonical option name, in
// input order, merging long and short spellings.
func (r *Result) Values(canonical string) []string {
	var out []string
	for _, occ := range r.Occurrences {
		if occ.Canonical == canonical {
			out = append(out, occ.Value)
		}
	}
	return out
}

// Seen reports whether the canonical option occurred at least once.
func (r *Result) Seen(canonical string) bool { return r.counts[canonical] > 0 }

// lookup resolves option spellings against the node's local options
// first, then the registry's global options, per the consultation order
// the plugin contract requires.
type lookup struct {
	node    *schema.Node
	globals []schema.Option
}

func (l lookup) long(name string) (*schema.Option, bool) {
	if l.node != nil {
		if opt := l.node.Option(name); opt != nil {
			return opt, false
		}
	}
	for i := range l.globals {
		if l.globals[i].Long == name {
			return &l.globals[i], true
		}
	}
	return nil, false
}

func (l lookup) short(ch rune) (*schema.Option, bool) {
	if l.node != nil {
		if opt := l.node.OptionByShort(ch); opt != nil {
			return opt, false
		}
	}
	for i := range l.globals {
		if l.globals[i].Short == ch {
			return &l.globals[i], true
		}
	}
	return nil, false
}

func (l lookup) claimsShort(ch rune) bool {
	opt, _ := l.short(ch)
	return opt != nil
}

// Parse tokenizes argv (the vector after the program name) against the
// command tree rooted at root and the registry's global options.
func Parse(root *schema.Node, globals []schema.Option, argv []string) *Result {
	res := &Result{
		Long:   map[string][]string{},
		Short:  map[string][]string{},
		counts: map[string]int{},
	}

	// Command-path resolution: consume leading non-option tokens while
	// each names a child (or a declared synonym of one).
	node := root
	i := 0
	for i < len(argv) {
		tok := argv[i]
		if strings.HasPrefix(tok, "-") {
			break
		}
		child := resolveChild(node, tok)
		if child == nil {
			break
		}
		node = child
		res.CommandPath = append(res.CommandPath, child.Name)
		i++
	}
	res.Node = node

	// A group with a trailing non-option token is an unknown command
	// right away. A bare group invocation is only an error when no
	// options were consumed either; the dispatcher's hooks typically
	// map that case to help, and a consumed global option (--help,
	// --version) must get its chance to intercept first.
	pendingGroupErr := false
	if node.IsGroup() {
		offender := ""
		for j := i; j < len(argv); j++ {
			if argv[j] == "--" {
				break
			}
			if !strings.HasPrefix(argv[j], "-") || argv[j] == "-" {
				offender = argv[j]
				break
			}
		}
		if offender != "" {
			res.Errors = append(res.Errors, clierr.CommandNotFound(res.CommandPath, offender))
		} else {
			pendingGroupErr = true
		}
	}

	look := lookup{node: node, globals: globals}

	afterDD := false
	for ; i < len(argv); i++ {
		tok := argv[i]
		switch {
		case afterDD:
			res.Tail = append(res.Tail, tok)
		case tok == "--":
			afterDD = true
		case strings.HasPrefix(tok, "--"):
			i = parseLong(res, look, argv, i)
		case strings.HasPrefix(tok, "-") && len(tok) > 1:
			if negativeNumber(tok, look) {
				res.Positionals = append(res.Positionals, tok)
				break
			}
			i = parseShorts(res, look, argv, i)
		default:
			res.Positionals = append(res.Positionals, tok)
		}
	}

	if pendingGroupErr && len(res.Occurrences) == 0 {
		res.Errors = append(res.Errors, clierr.CommandNotFound(res.CommandPath, ""))
	}

	return res
}

// resolveChild matches tok against child names, then declared synonyms.
func resolveChild(node *schema.Node, tok string) *schema.Node {
	if child := node.Child(tok); child != nil {
		return child
	}
	for _, child := range node.Children() {
		for _, syn := range child.Meta.Synonyms {
			if syn == tok {
				return child
			}
		}
	}
	return nil
}

// negativeNumber reports whether tok should be classified as a negative
// numeric positional: -<digit>… where no short option claims the digit.
func negativeNumber(tok string, look lookup) bool {
	rest := []rune(tok[1:])
	if len(rest) == 0 || rest[0] < '0' || rest[0] > '9' {
		return false
	}
	return !look.claimsShort(rest[0])
}

// parseLong handles one --name or --name=value token. Returns the index
// of the last argv element consumed.
func parseLong(res *Result, look lookup, argv []string, i int) int {
	tok := argv[i]
	body := tok[2:]
	name := body
	inline := ""
	hasInline := false
	if eq := strings.IndexByte(body, '='); eq >= 0 {
		name = body[:eq]
		inline = body[eq+1:]
		hasInline = true
	}

	if len([]rune(name)) < 2 {
		res.Errors = append(res.Errors, clierr.UnknownOption(res.CommandPath, tok))
		return i
	}

	opt, global := look.long(name)
	if opt == nil {
		res.Errors = append(res.Errors, clierr.UnknownOption(res.CommandPath, tok))
		return i
	}

	value := "true"
	hasValue := false
	switch {
	case opt.TakesValue && hasInline:
		value, hasValue = inline, true
	case opt.TakesValue:
		if i+1 >= len(argv) {
			res.Errors = append(res.Errors, clierr.InvalidOptionValue(res.CommandPath, opt.Long, ""))
			return i
		}
		i++
		value, hasValue = argv[i], true
	case hasInline:
		// Boolean with an explicit literal, validated by the binder.
		value, hasValue = inline, true
	}

	res.Long[opt.Long] = append(res.Long[opt.Long], value)
	record(res, opt, global, tok, value, hasValue)
	return i
}

// parseShorts handles one -abc token of clustered shorts. A value-taking
// short consumes the remainder of the token, or the next argv element
// when it is the final character. Returns the index of the last argv
// element consumed.
func parseShorts(res *Result, look lookup, argv []string, i int) int {
	tok := argv[i]
	chars := []rune(tok[1:])
	for j := 0; j < len(chars); j++ {
		ch := chars[j]
		opt, global := look.short(ch)
		if opt == nil {
			res.Errors = append(res.Errors, clierr.UnknownOption(res.CommandPath, "-"+string(ch)))
			return i
		}
		if !opt.TakesValue {
			res.Short[string(ch)] = append(res.Short[string(ch)], "true")
			record(res, opt, global, "-"+string(ch), "true", false)
			continue
		}
		rest := string(chars[j+1:])
		if rest != "" {
			res.Short[string(ch)] = append(res.Short[string(ch)], rest)
			record(res, opt, global, "-"+string(ch), rest, true)
			return i
		}
		if i+1 >= len(argv) {
			res.Errors = append(res.Errors, clierr.InvalidOptionValue(res.CommandPath, opt.Long, ""))
			return i
		}
		i++
		res.Short[string(ch)] = append(res.Short[string(ch)], argv[i])
		record(res, opt, global, "-"+string(ch), argv[i], true)
		return i
	}
	return i
}

// record appends the occurrence and raises DuplicateOption on a repeat
// of any non-repeatable option.
func record(res *Result, opt *schema.Option, global bool, tok, value string, hasValue bool) {
	res.Occurrences = append(res.Occurrences, Occurrence{
		Canonical: opt.Long,
		Global:    global,
		Token:     tok,
		Value:     value,
		HasValue:  hasValue,
	})
	res.counts[opt.Long]++
	if res.counts[opt.Long] > 1 && opt.Type.Kind != schema.Strings {
		res.Errors = append(res.Errors, clierr.DuplicateOption(res.CommandPath, opt.Long))
	}
}
