// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package help is the built-in help plugin. It contributes the global
// --help/-h option and a help command, intercepts execution when help
// was requested, and maps bare group invocations to group help.
// Help targets resolve to the deepest command path matching the given
// words.
package help

import (
	"errors"

	"github.com/tfctl/clikit/pkg/clictx"
	"github.com/tfctl/clikit/pkg/clierr"
	"github.com/tfctl/clikit/pkg/help"
	"github.com/tfctl/clikit/pkg/parser"
	"github.com/tfctl/clikit/pkg/plugin"
	"github.com/tfctl/clikit/pkg/registry"
	"github.com/tfctl/clikit/pkg/schema"
)

// requestedKey marks a pending help request in the context's string
// store, where later hooks can observe it.
const requestedKey = "help.requested"

// Plugin implements the built-in help behavior.
type Plugin struct {
	registry *registry.Registry
}

// New returns the help plugin.
func New() *Plugin { return &Plugin{} }

func (p *Plugin) Name() string { return "help" }

// SetRegistry receives the frozen registry after composition.
func (p *Plugin) SetRegistry(reg *registry.Registry) { p.registry = reg }

// GlobalOptions contributes --help/-h.
func (p *Plugin) GlobalOptions() []schema.Option {
	return []schema.Option{{
		Long:        "help",
		Short:       'h',
		Type:        schema.ValueType{Kind: schema.Bool},
		Default:     false,
		Description: "show help",
	}}
}

// Commands contributes the help command itself.
func (p *Plugin) Commands() []plugin.Command {
	node := schema.NewNode("help")
	node.Meta = schema.Metadata{
		Description: "show help for a command",
		Usage:       "help [command…]",
	}
	node.Args = []schema.Arg{{
		Name:        "command",
		Type:        schema.ValueType{Kind: schema.Strings},
		Description: "command path to describe",
		Variadic:    true,
	}}
	node.HasHandler = true
	return []plugin.Command{{
		Path:    []string{"help"},
		Node:    node,
		Handler: p.runHelp,
	}}
}

// HandleGlobalOption records a help request for the later phases.
func (p *Plugin) HandleGlobalOption(ctx *clictx.Context, name, value string) error {
	if name == "help" && value != "false" {
		ctx.Set(requestedKey, "true")
	}
	return nil
}

// PreExecute stops the dispatch with rendered help when it was
// requested anywhere on the command line.
func (p *Plugin) PreExecute(ctx *clictx.Context, res *parser.Result) (bool, error) {
	if _, ok := ctx.Get(requestedKey); !ok {
		return false, nil
	}
	p.render(ctx, ctx.CommandPath)
	return true, nil
}

// OnError maps two cases to help output: an explicit help request that
// was derailed by a parse or binding error, and a bare invocation of a
// group (command not found with no offending token).
func (p *Plugin) OnError(ctx *clictx.Context, err error) bool {
	if _, ok := ctx.Get(requestedKey); ok {
		p.render(ctx, ctx.CommandPath)
		return true
	}
	var typed *clierr.Error
	if errors.As(err, &typed) && typed.Kind == clierr.KindCommandNotFound && typed.Token == "" {
		p.render(ctx, typed.Path)
		return true
	}
	return false
}

// runHelp is the handler behind the help command.
func (p *Plugin) runHelp(ctx *clictx.Context, args *clictx.Values, opts *clictx.Values) error {
	p.render(ctx, p.deepestMatch(args.Strings("command")))
	return nil
}

// render writes help for the deepest known prefix of path.
func (p *Plugin) render(ctx *clictx.Context, path []string) {
	if p.registry == nil {
		return
	}
	renderer := help.New(ctx.App, p.registry)
	_ = renderer.Render(ctx.Stderr(), p.deepestMatch(path))
}

// deepestMatch returns the longest prefix of words that resolves to a
// command node. Unknown leading words fall back to app help.
func (p *Plugin) deepestMatch(words []string) []string {
	var path []string
	node := p.registry.Root()
	for _, word := range words {
		child := node.Child(word)
		if child == nil {
			break
		}
		node = child
		path = append(path, word)
	}
	return path
}
