// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package completion

import (
	"fmt"
	"strings"

	"github.com/tfctl/clikit/pkg/registry"
	"github.com/tfctl/clikit/pkg/schema"
)

// Zsh emits the zsh completion script: _describe lists for subcommands
// and _arguments specs for options, with one nested case $line[1]
// dispatch per depth.
func Zsh(reg *registry.Registry, app string) string {
	var b strings.Builder
	fn := "_" + sanitize(app)

	fmt.Fprintf(&b, "#compdef %s\n\n", app)
	fmt.Fprintf(&b, "%s() {\n", fn)
	b.WriteString("  local curcontext=\"$curcontext\" state line\n")
	b.WriteString("  typeset -A opt_args\n\n")

	zshGroup(&b, reg.Root(), reg.GlobalOptions(), app, "cmds", "  ")

	b.WriteString("}\n\n")
	b.WriteString("# If this file is sourced directly (not autoloaded via fpath), ensure compsys\n")
	b.WriteString("# is initialized and register the completion\n")
	b.WriteString("if ! typeset -f compdef >/dev/null 2>&1; then\n")
	b.WriteString("  autoload -Uz compinit && compinit -i\n")
	b.WriteString("fi\n")
	fmt.Fprintf(&b, "compdef %s %s\n", fn, app)
	return b.String()
}

// zshGroup emits the state machine for one group node: the _describe
// candidate list for its children and the case $line[1] dispatch that
// recurses into each child.
func zshGroup(b *strings.Builder, node *schema.Node, globals []schema.Option, app, scope, indent string) {
	children := node.Children()

	fmt.Fprintf(b, "%slocal -a %s\n", indent, scope)
	fmt.Fprintf(b, "%s%s=(\n", indent, scope)
	for _, child := range children {
		fmt.Fprintf(b, "%s  '%s:%s'\n", indent, child.Name, zshEscape(child.Meta.Description))
	}
	fmt.Fprintf(b, "%s)\n\n", indent)

	fmt.Fprintf(b, "%s_arguments -C \\\n", indent)
	for _, opt := range sortedOptions(append(append([]schema.Option{}, node.Options...), globals...)) {
		fmt.Fprintf(b, "%s  %s \\\n", indent, zshOptionSpec(opt))
	}
	fmt.Fprintf(b, "%s  '1: :->%s' \\\n", indent, scope)
	fmt.Fprintf(b, "%s  '*:: :->%s_args'\n\n", indent, scope)

	fmt.Fprintf(b, "%scase $state in\n", indent)
	fmt.Fprintf(b, "%s  %s)\n", indent, scope)
	fmt.Fprintf(b, "%s    _describe -t commands '%s commands' %s\n", indent, app, scope)
	fmt.Fprintf(b, "%s    ;;\n", indent)
	fmt.Fprintf(b, "%s  %s_args)\n", indent, scope)
	fmt.Fprintf(b, "%s    case $line[1] in\n", indent)
	for _, child := range children {
		fmt.Fprintf(b, "%s      %s)\n", indent, child.Name)
		inner := indent + "        "
		if len(child.Children()) > 0 {
			zshGroup(b, child, globals, app, scope+"_"+sanitize(child.Name), inner)
		} else {
			zshLeaf(b, child, globals, inner)
		}
		fmt.Fprintf(b, "%s        ;;\n", indent)
	}
	fmt.Fprintf(b, "%s    esac\n", indent)
	fmt.Fprintf(b, "%s    ;;\n", indent)
	fmt.Fprintf(b, "%sesac\n", indent)
}

// zshLeaf emits the _arguments call for a leaf: its option specs, then
// file completion for any positionals.
func zshLeaf(b *strings.Builder, node *schema.Node, globals []schema.Option, indent string) {
	fmt.Fprintf(b, "%s_arguments \\\n", indent)
	for _, opt := range sortedOptions(append(append([]schema.Option{}, node.Options...), globals...)) {
		fmt.Fprintf(b, "%s  %s \\\n", indent, zshOptionSpec(opt))
	}
	fmt.Fprintf(b, "%s  '*:file:_files'\n", indent)
}

// zshOptionSpec renders one option as an _arguments spec, pairing the
// long and short spellings as mutually exclusive.
func zshOptionSpec(opt schema.Option) string {
	desc := zshEscape(opt.Description)
	value := ""
	if opt.TakesValue {
		if opt.Type.Kind == schema.Enum {
			value = fmt.Sprintf(":%s:(%s)", opt.Long, strings.Join(opt.Type.Labels, " "))
		} else {
			value = ":" + opt.Long
		}
	}
	if opt.Short != 0 {
		return fmt.Sprintf("'(-%s --%s)'{-%s,--%s}'[%s]%s'",
			string(opt.Short), opt.Long, string(opt.Short), opt.Long, desc, value)
	}
	return fmt.Sprintf("'--%s[%s]%s'", opt.Long, desc, value)
}

// zshEscape escapes a description for embedding inside a single-quoted
// zsh word: brackets, parentheses and backslashes are
// backslash-escaped, single quotes use the '\'' dance.
func zshEscape(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '(', ')', '[', ']', '\\':
			b.WriteByte('\\')
			b.WriteRune(r)
		case '\'':
			b.WriteString(`'\''`)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
