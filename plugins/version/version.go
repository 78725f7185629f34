// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package version is the built-in version plugin: a global
// --version/-V option and a version command, both printing the app
// identity to stdout.
package version

import (
	"errors"
	"fmt"

	"github.com/tfctl/clikit/pkg/clictx"
	"github.com/tfctl/clikit/pkg/clierr"
	"github.com/tfctl/clikit/pkg/parser"
	"github.com/tfctl/clikit/pkg/plugin"
	"github.com/tfctl/clikit/pkg/schema"
)

const requestedKey = "version.requested"

// Plugin implements the built-in version behavior.
type Plugin struct{}

// New returns the version plugin.
func New() *Plugin { return &Plugin{} }

func (p *Plugin) Name() string { return "version" }

// GlobalOptions contributes --version/-V.
func (p *Plugin) GlobalOptions() []schema.Option {
	return []schema.Option{{
		Long:        "version",
		Short:       'V',
		Type:        schema.ValueType{Kind: schema.Bool},
		Default:     false,
		Description: "print version",
	}}
}

// Commands contributes the version command.
func (p *Plugin) Commands() []plugin.Command {
	node := schema.NewNode("version")
	node.Meta = schema.Metadata{Description: "print version information"}
	node.HasHandler = true
	return []plugin.Command{{
		Path:    []string{"version"},
		Node:    node,
		Handler: p.runVersion,
	}}
}

// HandleGlobalOption records a version request.
func (p *Plugin) HandleGlobalOption(ctx *clictx.Context, name, value string) error {
	if name == "version" && value != "false" {
		ctx.Set(requestedKey, "true")
	}
	return nil
}

// PreExecute prints the version and stops when it was requested.
func (p *Plugin) PreExecute(ctx *clictx.Context, res *parser.Result) (bool, error) {
	if _, ok := ctx.Get(requestedKey); !ok {
		return false, nil
	}
	p.print(ctx)
	return true, nil
}

// OnError rescues a --version request whose dispatch failed with an
// unknown command, such as "app bogus --version"; other errors pass
// through. A bare "--version" on a group is handled by PreExecute.
func (p *Plugin) OnError(ctx *clictx.Context, err error) bool {
	if _, ok := ctx.Get(requestedKey); !ok {
		return false
	}
	var typed *clierr.Error
	if errors.As(err, &typed) && typed.Kind == clierr.KindCommandNotFound {
		p.print(ctx)
		return true
	}
	return false
}

func (p *Plugin) runVersion(ctx *clictx.Context, args *clictx.Values, opts *clictx.Values) error {
	p.print(ctx)
	return nil
}

func (p *Plugin) print(ctx *clictx.Context) {
	fmt.Fprintf(ctx.Stdout(), "%s %s\n", ctx.App.Name, ctx.App.Version)
}
