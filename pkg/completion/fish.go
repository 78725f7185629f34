// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package completion

import (
	"fmt"
	"strings"

	"github.com/tfctl/clikit/pkg/registry"
	"github.com/tfctl/clikit/pkg/schema"
)

// Fish emits the fish completion script: one complete statement per
// candidate, guarded by __fish_seen_subcommand_from conditions per
// depth.
func Fish(reg *registry.Registry, app string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# fish completion for %s\n", app)
	fmt.Fprintf(&b, "complete -c %s -f\n\n", app)

	root := reg.Root()
	globals := reg.GlobalOptions()
	top := childNames(root)

	// Subcommands, offered until one of them has been seen.
	notSeen := fmt.Sprintf("not __fish_seen_subcommand_from %s", strings.Join(top, " "))
	for _, child := range root.Children() {
		fmt.Fprintf(&b, "complete -c %s -n %s -a %s -d %s\n",
			app, fishQuote(notSeen), child.Name, fishQuote(child.Meta.Description))
	}
	b.WriteString("\n")

	// Global and root-local options are always offered.
	for _, opt := range sortedOptions(append(append([]schema.Option{}, root.Options...), globals...)) {
		fmt.Fprintf(&b, "complete -c %s %s\n", app, fishOptionSpec(opt))
	}
	b.WriteString("\n")

	for _, child := range root.Children() {
		fishNode(&b, child, app, []string{child.Name})
	}

	return b.String()
}

// fishNode emits the statements for one node: subcommand candidates
// when it is a group, option candidates when it is a leaf.
func fishNode(b *strings.Builder, node *schema.Node, app string, path []string) {
	condition := fishCondition(path)

	children := node.Children()
	if len(children) > 0 {
		names := childNames(node)
		deeper := fmt.Sprintf("%s; and not __fish_seen_subcommand_from %s", condition, strings.Join(names, " "))
		for _, child := range children {
			fmt.Fprintf(b, "complete -c %s -n %s -a %s -d %s\n",
				app, fishQuote(deeper), child.Name, fishQuote(child.Meta.Description))
		}
	}

	for _, opt := range sortedOptions(node.Options) {
		fmt.Fprintf(b, "complete -c %s -n %s %s\n", app, fishQuote(condition), fishOptionSpec(opt))
	}
	if len(children) > 0 || len(node.Options) > 0 {
		b.WriteString("\n")
	}

	for _, child := range children {
		fishNode(b, child, app, append(append([]string{}, path...), child.Name))
	}
}

// fishCondition chains __fish_seen_subcommand_from checks for every
// path segment.
func fishCondition(path []string) string {
	parts := make([]string, 0, len(path))
	for _, segment := range path {
		parts = append(parts, "__fish_seen_subcommand_from "+segment)
	}
	return strings.Join(parts, "; and ")
}

// fishOptionSpec renders the -l/-s/-r/-a/-d fragment for one option.
func fishOptionSpec(opt schema.Option) string {
	var parts []string
	parts = append(parts, "-l", opt.Long)
	if opt.Short != 0 {
		parts = append(parts, "-s", string(opt.Short))
	}
	if opt.TakesValue {
		parts = append(parts, "-r")
		if opt.Type.Kind == schema.Enum {
			parts = append(parts, "-a", fishQuote(strings.Join(opt.Type.Labels, " ")))
		}
	}
	if opt.Description != "" {
		parts = append(parts, "-d", fishQuote(opt.Description))
	}
	return strings.Join(parts, " ")
}

// fishQuote double-quotes a string for fish, escaping embedded quotes,
// dollars and backslashes.
func fishQuote(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"', '\\', '$':
			b.WriteByte('\\')
			b.WriteRune(r)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}
