// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package plugin defines the contract a plugin implements and the
// composer that merges an ordered plugin list into a loaded command
// tree. A plugin is any value with a name; every other capability is an
// optional interface, discovered at composition time. Declaration order
// is authoritative: it fixes hook invocation order for the life of the
// registry.
package plugin

import (
	"github.com/tfctl/clikit/pkg/clictx"
	"github.com/tfctl/clikit/pkg/parser"
	"github.com/tfctl/clikit/pkg/schema"
)

// Plugin is the minimal contract. Concrete capabilities are declared by
// implementing the optional interfaces below.
type Plugin interface {
	Name() string
}

// Command is one plugin-provided command: a schema subtree rooted at
// Path, plus the handler when the node is a leaf. MetadataOnly marks
// group nodes that are allowed to remain childless.
type Command struct {
	Path         []string
	Node         *schema.Node
	Handler      clictx.Handler
	MetadataOnly bool
}

// CommandProvider contributes commands to the tree.
type CommandProvider interface {
	Plugin
	Commands() []Command
}

// GlobalOptionProvider contributes registry-owned options visible to
// every node.
type GlobalOptionProvider interface {
	Plugin
	GlobalOptions() []schema.Option
}

// GlobalOptionHandler is invoked once per parsed occurrence of a
// registered global option, in plugin declaration order. Hooks may
// communicate forward through the context's string store.
type GlobalOptionHandler interface {
	Plugin
	HandleGlobalOption(ctx *clictx.Context, name, value string) error
}

// PreExecutor runs after binding and before the handler. Returning
// stop=true ends the dispatch successfully without invoking the
// handler; the parse result may be modified in place for later hooks.
type PreExecutor interface {
	Plugin
	PreExecute(ctx *clictx.Context, res *parser.Result) (stop bool, err error)
}

// ErrorHandler observes run-time errors. The first hook returning
// handled=true suppresses propagation.
type ErrorHandler interface {
	Plugin
	OnError(ctx *clictx.Context, err error) (handled bool)
}

// StartupHandler runs once at dispatch entry, before parsing.
type StartupHandler interface {
	Plugin
	OnStartup(ctx *clictx.Context) error
}

// Extension is per-dispatch plugin state, created with the context and
// destroyed with it.
type Extension interface {
	Init(ctx *clictx.Context) error
	Deinit()
}

// ExtensionProvider registers a typed context extension under the
// plugin's name.
type ExtensionProvider interface {
	Plugin
	NewExtension() Extension
}
