// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package dispatch routes one parsed invocation through the plugin
// lifecycle to a command handler. Within one dispatch the order is
// fixed: startup hooks, global-option hooks, binding, pre-execute
// hooks, the handler, then error hooks for anything that failed along
// the way. Plugin declaration order is preserved inside every phase.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/tfctl/clikit/internal/log"
	"github.com/tfctl/clikit/pkg/bind"
	"github.com/tfctl/clikit/pkg/clictx"
	"github.com/tfctl/clikit/pkg/clierr"
	"github.com/tfctl/clikit/pkg/parser"
	"github.com/tfctl/clikit/pkg/registry"
	"github.com/tfctl/clikit/pkg/suggest"
)

// Dispatcher executes invocations against one immutable registry. The
// registry may be shared; each Dispatch call owns its Context
// exclusively.
type Dispatcher struct {
	App      clictx.Identity
	Registry *registry.Registry
	Stdin    io.Reader
	Stdout   io.Writer
	Stderr   io.Writer
}

// Dispatch runs one invocation. argv is the argument vector after the
// program name. The returned code is the process exit code.
func (d *Dispatcher) Dispatch(ctx context.Context, argv []string) int {
	c := clictx.New(ctx, d.App, d.Stdin, d.Stdout, d.Stderr)
	defer c.Flush()
	c.SetCommands(d.Registry.CommandInfos())

	// Context extensions live exactly as long as the dispatch.
	var inited []string
	for _, ext := range d.Registry.Extensions() {
		instance := ext.New()
		if err := instance.Init(c); err != nil {
			log.Errorf("extension init failed: plugin=%s err=%v", ext.Name, err)
			return d.fail(c, fmt.Errorf("initializing plugin %q: %w", ext.Name, err))
		}
		c.SetExt(ext.Name, instance)
		inited = append(inited, ext.Name)
	}
	defer func() {
		for i := len(inited) - 1; i >= 0; i-- {
			if ext, ok := c.Ext(inited[i]).(interface{ Deinit() }); ok {
				ext.Deinit()
			}
		}
	}()

	for _, hook := range d.Registry.StartupHandlers() {
		if err := hook.OnStartup(c); err != nil {
			return d.fail(c, err)
		}
	}

	res := parser.Parse(d.Registry.Root(), d.Registry.GlobalOptions(), argv)
	c.SetNode(res.Node, res.CommandPath)
	log.Debugf("parsed invocation: path=%v positionals=%d errors=%d",
		res.CommandPath, len(res.Positionals), len(res.Errors))

	// Global-option hooks see every occurrence of a registry-owned
	// option, in input order, before any binding happens.
	for _, occ := range res.Occurrences {
		if d.Registry.GlobalOption(occ.Canonical) == nil {
			continue
		}
		for _, hook := range d.Registry.GlobalOptionHandlers() {
			if err := hook.HandleGlobalOption(c, occ.Canonical, occ.Value); err != nil {
				return d.fail(c, err)
			}
		}
	}

	if err := res.Err(); err != nil {
		return d.fail(c, err)
	}

	args, opts, err := bind.Bind(res, res.Node)
	if err != nil {
		return d.fail(c, err)
	}

	for _, hook := range d.Registry.PreExecutors() {
		stop, err := hook.PreExecute(c, res)
		if err != nil {
			return d.fail(c, err)
		}
		if stop {
			return clierr.ExitOK
		}
	}

	handler := d.Registry.Handler(res.CommandPath)
	if handler == nil {
		// A group invocation whose options no plugin intercepted.
		return d.fail(c, clierr.CommandNotFound(res.CommandPath, ""))
	}

	if err := handler(c, args, opts); err != nil {
		var typed *clierr.Error
		if !errors.As(err, &typed) {
			err = clierr.Handler(res.CommandPath, err)
		}
		return d.fail(c, err)
	}
	return clierr.ExitOK
}

// fail routes an error through the on-error hooks. The first hook that
// handles it suppresses reporting; otherwise the canonical report is
// written to stderr and the exit code reflects the error kind.
func (d *Dispatcher) fail(c *clictx.Context, err error) int {
	for _, hook := range d.Registry.ErrorHandlers() {
		if hook.OnError(c, err) {
			return clierr.ExitOK
		}
	}
	d.report(c, err)
	return clierr.ExitCode(err)
}

// report writes the single-line classification, the detail line and,
// for unknown commands, suggestions plus the available command list.
func (d *Dispatcher) report(c *clictx.Context, err error) {
	w := c.Stderr()

	var typed *clierr.Error
	if !errors.As(err, &typed) {
		fmt.Fprintf(w, "Error: %v\n", err)
		return
	}

	fmt.Fprintf(w, "Error: %s\n", typed.Kind)
	fmt.Fprintf(w, "%s\n", typed.Error())

	if typed.Kind == clierr.KindCommandNotFound {
		if typed.Token != "" {
			if matches := suggest.Suggest(typed.Token, d.Registry.PathStrings()); len(matches) > 0 {
				fmt.Fprintf(w, "Did you mean '%s'?\n", matches[0])
				for _, alt := range matches[1:] {
					fmt.Fprintf(w, "            or '%s'?\n", alt)
				}
			}
		}
		commands := c.Commands()
		if len(commands) > 0 {
			fmt.Fprintf(w, "\nAvailable commands:\n")
			for _, info := range commands {
				if info.Description != "" {
					fmt.Fprintf(w, "  %-16s %s\n", info.Display(), info.Description)
				} else {
					fmt.Fprintf(w, "  %s\n", info.Display())
				}
			}
		}
		fmt.Fprintf(w, "\nRun '%s --help' for usage.\n", d.App.Name)
	}
}
