// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package completion emits fully-structured shell completion scripts
// from a registry: nested subcommand case trees with per-leaf option
// lists for bash, zsh and fish. Output is deterministic: the same
// registry always produces byte-identical scripts.
package completion

import (
	"fmt"
	"sort"

	"github.com/tfctl/clikit/pkg/registry"
	"github.com/tfctl/clikit/pkg/schema"
)

// Shells supported by the generator.
const (
	ShellBash = "bash"
	ShellZsh  = "zsh"
	ShellFish = "fish"
)

// Shells returns the supported shell names.
func Shells() []string { return []string{ShellBash, ShellZsh, ShellFish} }

// Generate emits the completion script for the given shell.
func Generate(reg *registry.Registry, app, shell string) (string, error) {
	switch shell {
	case ShellBash:
		return Bash(reg, app), nil
	case ShellZsh:
		return Zsh(reg, app), nil
	case ShellFish:
		return Fish(reg, app), nil
	default:
		return "", fmt.Errorf("unsupported shell %q (expected one of bash, zsh, fish)", shell)
	}
}

// optionWords lists the node-local plus global option spellings, long
// forms first, for word-list completion.
func optionWords(node *schema.Node, globals []schema.Option) []string {
	var words []string
	add := func(opts []schema.Option) {
		for _, opt := range sortedOptions(opts) {
			words = append(words, "--"+opt.Long)
			if opt.Short != 0 {
				words = append(words, "-"+string(opt.Short))
			}
		}
	}
	add(node.Options)
	add(globals)
	return words
}

func sortedOptions(opts []schema.Option) []schema.Option {
	out := append([]schema.Option{}, opts...)
	sort.Slice(out, func(i, j int) bool { return out[i].Long < out[j].Long })
	return out
}

// childNames returns the node's subcommand names in sorted order.
func childNames(node *schema.Node) []string {
	children := node.Children()
	out := make([]string, 0, len(children))
	for _, child := range children {
		out = append(out, child.Name)
	}
	return out
}
