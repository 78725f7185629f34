// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package clikit is a declarative framework for building command-line
// interfaces. Commands are declared in a directory of YAML manifests,
// handlers are Go functions registered by path, and plugins contribute
// commands, global options and lifecycle hooks. The App type runs the
// whole pipeline: load, compose, freeze, dispatch.
package clikit

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"runtime/debug"

	"github.com/tfctl/clikit/internal/log"
	"github.com/tfctl/clikit/pkg/clictx"
	"github.com/tfctl/clikit/pkg/dispatch"
	"github.com/tfctl/clikit/pkg/loader"
	"github.com/tfctl/clikit/pkg/plugin"
	"github.com/tfctl/clikit/pkg/registry"
)

// Handler is re-exported so applications only import clikit for the
// common case.
type Handler = clictx.Handler

// Context is the per-invocation state passed to handlers and hooks.
type Context = clictx.Context

// Values holds bound argument or option values.
type Values = clictx.Values

// App declares a hosted application: its identity, its command
// manifests, the handlers behind them and the plugin list. Plugins are
// composed in slice order, which fixes hook invocation order.
type App struct {
	Name        string
	Version     string
	Description string

	// Commands is the manifest tree. Use an embed.FS (optionally
	// narrowed with fs.Sub) so the binary stays self-contained.
	Commands fs.FS

	// Handlers maps space-joined command paths ("users list") to the
	// functions behind them.
	Handlers map[string]Handler

	Plugins []plugin.Plugin

	// Streams default to the process streams when nil.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Build runs the build-time pipeline: load the manifests, compose the
// plugins, freeze the registry. Plugins needing registry access (the
// completion plugin, for one) receive it before the first dispatch.
func (a *App) Build() (*registry.Registry, error) {
	log.InitLogger()

	root, err := loader.Load(a.Commands, a.Handlers)
	if err != nil {
		return nil, err
	}

	comp, err := plugin.Compose(root, a.Handlers, a.Plugins)
	if err != nil {
		return nil, err
	}

	reg := registry.New(comp)
	for _, p := range a.Plugins {
		if aware, ok := p.(RegistryAware); ok {
			aware.SetRegistry(reg)
		}
	}
	return reg, nil
}

// RegistryAware plugins are handed the frozen registry after
// composition, before any dispatch.
type RegistryAware interface {
	SetRegistry(reg *registry.Registry)
}

// Run builds the registry and dispatches one invocation. argv is the
// full os.Args-style vector including the program name. The returned
// code is the process exit code.
func (a *App) Run(ctx context.Context, argv []string) int {
	reg, err := a.Build()
	if err != nil {
		stderr := a.Stderr
		if stderr == nil {
			stderr = os.Stderr
		}
		fmt.Fprintln(stderr, err)
		return 1
	}

	d := &dispatch.Dispatcher{
		App:      a.identity(),
		Registry: reg,
		Stdin:    a.Stdin,
		Stdout:   a.Stdout,
		Stderr:   a.Stderr,
	}
	if len(argv) == 0 {
		return d.Dispatch(ctx, nil)
	}
	return d.Dispatch(ctx, argv[1:])
}

// Main is the conventional entry point for a hosted application's
// func main.
func (a *App) Main() {
	os.Exit(a.Run(context.Background(), os.Args))
}

func (a *App) identity() clictx.Identity {
	v := a.Version
	if v == "" {
		v = buildVersion()
	}
	return clictx.Identity{Name: a.Name, Version: v, Description: a.Description}
}

// buildVersion resolves the hosting binary's module version from its
// embedded build info, for apps that do not set Version explicitly.
func buildVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return "dev"
}
