// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package completions is the built-in shell-completion plugin. It
// contributes the completion command group: per-shell script emission
// to stdout, plus install/uninstall against the well-known per-shell
// completion paths.
package completions

import (
	"fmt"
	"os"
	"strings"

	"github.com/tfctl/clikit/internal/log"
	"github.com/tfctl/clikit/pkg/clictx"
	"github.com/tfctl/clikit/pkg/clierr"
	"github.com/tfctl/clikit/pkg/completion"
	"github.com/tfctl/clikit/pkg/plugin"
	"github.com/tfctl/clikit/pkg/registry"
	"github.com/tfctl/clikit/pkg/schema"
)

// Config is the optional build-time configuration merged into the
// plugin instance at construction.
type Config struct {
	// Shells restricts the offered shells. Empty means all supported.
	Shells []string
}

// Plugin implements the built-in completion commands.
type Plugin struct {
	config   Config
	registry *registry.Registry
}

// New returns the completions plugin with the default configuration.
func New() *Plugin { return &Plugin{} }

// NewWithConfig returns the completions plugin with cfg merged in.
func NewWithConfig(cfg Config) *Plugin { return &Plugin{config: cfg} }

// shells returns the configured shell set.
func (p *Plugin) shells() []string {
	if len(p.config.Shells) > 0 {
		return p.config.Shells
	}
	return completion.Shells()
}

func (p *Plugin) Name() string { return "completions" }

// SetRegistry receives the frozen registry after composition.
func (p *Plugin) SetRegistry(reg *registry.Registry) { p.registry = reg }

// Commands contributes the completion group and its leaves.
func (p *Plugin) Commands() []plugin.Command {
	group := schema.NewNode("completion")
	group.Meta = schema.Metadata{Description: "generate or install shell completion scripts"}

	commands := []plugin.Command{{
		Path: []string{"completion"},
		Node: group,
	}}

	for _, shell := range p.shells() {
		node := schema.NewNode(shell)
		node.Meta = schema.Metadata{Description: fmt.Sprintf("emit the %s completion script", shell)}
		node.HasHandler = true
		commands = append(commands, plugin.Command{
			Path: []string{"completion", shell},
			Node: node,
			Handler: func(ctx *clictx.Context, args, opts *clictx.Values) error {
				return p.emit(ctx, shell)
			},
		})
	}

	install := schema.NewNode("install")
	install.Meta = schema.Metadata{Description: "install the completion script for a shell"}
	install.Args = []schema.Arg{{
		Name:        "shell",
		Type:        schema.ValueType{Kind: schema.Enum, Labels: p.shells()},
		Description: "target shell (auto-detected from $SHELL when omitted)",
	}}
	install.HasHandler = true
	commands = append(commands, plugin.Command{
		Path:    []string{"completion", "install"},
		Node:    install,
		Handler: p.runInstall,
	})

	uninstall := schema.NewNode("uninstall")
	uninstall.Meta = schema.Metadata{Description: "remove an installed completion script"}
	uninstall.Args = []schema.Arg{{
		Name:        "shell",
		Type:        schema.ValueType{Kind: schema.Enum, Labels: p.shells()},
		Description: "target shell (auto-detected from $SHELL when omitted)",
	}}
	uninstall.HasHandler = true
	commands = append(commands, plugin.Command{
		Path:    []string{"completion", "uninstall"},
		Node:    uninstall,
		Handler: p.runUninstall,
	})

	return commands
}

// emit writes the requested script to stdout; everything else the
// plugin prints goes to stderr.
func (p *Plugin) emit(ctx *clictx.Context, shell string) error {
	script, err := completion.Generate(p.registry, ctx.App.Name, shell)
	if err != nil {
		return clierr.Usagef("%v", err)
	}
	_, err = fmt.Fprint(ctx.Stdout(), script)
	return err
}

func (p *Plugin) runInstall(ctx *clictx.Context, args, opts *clictx.Values) error {
	shell, err := p.resolveShell(ctx, args)
	if err != nil {
		return err
	}
	script, err := completion.Generate(p.registry, ctx.App.Name, shell)
	if err != nil {
		return clierr.Usagef("%v", err)
	}
	path, err := install(ctx.App.Name, shell, script)
	if err != nil {
		return fmt.Errorf("installing %s completion: %w", shell, err)
	}
	fmt.Fprintf(ctx.Stderr(), "Installed %s completion to %s\n", shell, path)
	if shell == completion.ShellZsh {
		fmt.Fprintf(ctx.Stderr(), "Restart your shell or run 'source ~/.zshrc' to activate it.\n")
	}
	return nil
}

func (p *Plugin) runUninstall(ctx *clictx.Context, args, opts *clictx.Values) error {
	shell, err := p.resolveShell(ctx, args)
	if err != nil {
		return err
	}
	removed, err := uninstall(ctx.App.Name, shell)
	if err != nil {
		return fmt.Errorf("uninstalling %s completion: %w", shell, err)
	}
	if removed {
		fmt.Fprintf(ctx.Stderr(), "Removed %s completion.\n", shell)
	} else {
		fmt.Fprintf(ctx.Stderr(), "No %s completion was installed.\n", shell)
	}
	return nil
}

// resolveShell picks the target shell: the explicit argument, then
// $SHELL, then an interactive picker when stdin is a terminal.
func (p *Plugin) resolveShell(ctx *clictx.Context, args *clictx.Values) (string, error) {
	if shell := args.String("shell"); shell != "" {
		return shell, nil
	}
	if shell := detectShell(os.Getenv("SHELL")); shell != "" {
		log.Debugf("shell detected from $SHELL: shell=%s", shell)
		return shell, nil
	}
	if shell := pickShell(ctx, p.shells()); shell != "" {
		return shell, nil
	}
	return "", clierr.Usagef("cannot determine shell; pass one of %s", strings.Join(p.shells(), ", "))
}

// detectShell maps a $SHELL value to a supported shell name.
func detectShell(env string) string {
	for _, shell := range completion.Shells() {
		if strings.HasSuffix(env, shell) {
			return shell
		}
	}
	return ""
}
