// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package plugin

import (
	"errors"
	"strings"

	"github.com/tfctl/clikit/internal/log"
	"github.com/tfctl/clikit/pkg/clictx"
	"github.com/tfctl/clikit/pkg/clierr"
	"github.com/tfctl/clikit/pkg/schema"
)

// Composition is the merged result of the loaded tree and the plugin
// list: the input the registry is built from.
type Composition struct {
	Root          *schema.Node
	Handlers      map[string]clictx.Handler
	GlobalOptions []schema.Option

	GlobalOptionHandlers []GlobalOptionHandler
	PreExecutors         []PreExecutor
	ErrorHandlers        []ErrorHandler
	StartupHandlers      []StartupHandler
	Extensions           []NamedExtension
}

// NamedExtension pairs an extension factory with its owning plugin's
// name, the key it is registered under in the context.
type NamedExtension struct {
	Name string
	New  func() Extension
}

// Compose merges plugins into the loaded tree in declared order,
// detecting command, metadata, global-option and extension conflicts.
// All conflicts are build-time fatal.
func Compose(root *schema.Node, handlers map[string]clictx.Handler, plugins []Plugin) (*Composition, error) {
	comp := &Composition{
		Root:     root,
		Handlers: map[string]clictx.Handler{},
	}
	for key, h := range handlers {
		comp.Handlers[key] = h
	}

	var errs []error
	globalOwner := map[string]string{}
	extensionOwner := map[string]bool{}

	for _, p := range plugins {
		name := p.Name()
		log.Debugf("composing plugin: name=%s", name)

		if provider, ok := p.(CommandProvider); ok {
			for _, cmd := range provider.Commands() {
				if err := mergeCommand(comp, cmd); err != nil {
					errs = append(errs, err)
				}
			}
		}

		if provider, ok := p.(GlobalOptionProvider); ok {
			for _, opt := range provider.GlobalOptions() {
				if owner, dup := globalOwner[opt.Long]; dup {
					errs = append(errs, clierr.AmbiguousPath(nil,
						"global option --%s from plugin %q collides with plugin %q", opt.Long, name, owner))
					continue
				}
				globalOwner[opt.Long] = name
				if err := checkGlobalAgainstTree(root, opt, name); err != nil {
					errs = append(errs, err)
					continue
				}
				if other := findGlobalShort(comp.GlobalOptions, opt.Short); opt.Short != 0 && other != "" {
					errs = append(errs, clierr.AmbiguousPath(nil,
						"global short -%s from plugin %q collides with global --%s", string(opt.Short), name, other))
					continue
				}
				comp.GlobalOptions = append(comp.GlobalOptions, opt)
			}
		}

		if h, ok := p.(GlobalOptionHandler); ok {
			comp.GlobalOptionHandlers = append(comp.GlobalOptionHandlers, h)
		}
		if h, ok := p.(PreExecutor); ok {
			comp.PreExecutors = append(comp.PreExecutors, h)
		}
		if h, ok := p.(ErrorHandler); ok {
			comp.ErrorHandlers = append(comp.ErrorHandlers, h)
		}
		if h, ok := p.(StartupHandler); ok {
			comp.StartupHandlers = append(comp.StartupHandlers, h)
		}
		if provider, ok := p.(ExtensionProvider); ok {
			if extensionOwner[name] {
				errs = append(errs, clierr.AmbiguousPath(nil,
					"context extension %q registered twice", name))
			} else {
				extensionOwner[name] = true
				comp.Extensions = append(comp.Extensions, NamedExtension{Name: name, New: provider.NewExtension})
			}
		}
	}

	// Childless groups are only legal when a plugin declared
	// metadata-only intent for them; the loader enforces the same rule
	// for user-declared nodes.
	var walk func(n *schema.Node, path []string)
	walk = func(n *schema.Node, path []string) {
		if len(path) > 0 && n.IsGroup() && len(n.Children()) == 0 && !n.MetadataOnly {
			errs = append(errs, clierr.AmbiguousPath(path,
				"group has neither a handler nor subcommands"))
		}
		for _, child := range n.Children() {
			walk(child, append(append([]string{}, path...), child.Name))
		}
	}
	walk(root, nil)

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return comp, nil
}

// mergeCommand grafts one provided command at its path, creating
// intermediate group nodes as needed. A node that already has a handler
// rejects the merge; group nodes accept metadata only where the user
// has not declared any.
func mergeCommand(comp *Composition, cmd Command) error {
	if len(cmd.Path) == 0 || cmd.Node == nil {
		return clierr.AmbiguousPath(cmd.Path, "plugin command with empty path or node")
	}

	node := comp.Root
	for _, segment := range cmd.Path[:len(cmd.Path)-1] {
		child := node.Child(segment)
		if child == nil {
			child = schema.NewNode(segment)
			if err := node.AddChild(child); err != nil {
				return clierr.AmbiguousPath(cmd.Path, "%v", err)
			}
		}
		node = child
	}

	leafName := cmd.Path[len(cmd.Path)-1]
	existing := node.Child(leafName)
	if existing == nil {
		cmd.Node.Name = leafName
		cmd.Node.MetadataOnly = cmd.MetadataOnly
		if err := node.AddChild(cmd.Node); err != nil {
			return clierr.AmbiguousPath(cmd.Path, "%v", err)
		}
		if cmd.Handler != nil {
			cmd.Node.HasHandler = true
			comp.Handlers[strings.Join(cmd.Path, " ")] = cmd.Handler
		}
		return nil
	}

	if existing.HasHandler {
		return clierr.AmbiguousPath(cmd.Path, "a command with a handler already exists here")
	}
	if cmd.Handler != nil {
		return clierr.AmbiguousPath(cmd.Path, "cannot replace user group with plugin command")
	}
	// Group merge: plugin metadata must not overwrite user metadata.
	if cmd.Node.Meta.Description != "" {
		if existing.Meta.Description != "" && existing.Meta.Description != cmd.Node.Meta.Description {
			return clierr.AmbiguousPath(cmd.Path, "plugin metadata conflicts with user metadata")
		}
		if existing.Meta.Description == "" {
			existing.Meta.Description = cmd.Node.Meta.Description
		}
	}
	for _, child := range cmd.Node.Children() {
		if err := mergeCommand(comp, Command{
			Path:    append(append([]string{}, cmd.Path...), child.Name),
			Node:    child,
			Handler: nil,
		}); err != nil {
			return err
		}
	}
	return nil
}

// checkGlobalAgainstTree rejects a global option whose long name or
// short character collides with any node's local options.
func checkGlobalAgainstTree(root *schema.Node, opt schema.Option, owner string) error {
	var walk func(n *schema.Node, path []string) error
	walk = func(n *schema.Node, path []string) error {
		if n.Option(opt.Long) != nil {
			return clierr.AmbiguousPath(path,
				"global option --%s from plugin %q collides with a local option", opt.Long, owner)
		}
		if opt.Short != 0 && n.OptionByShort(opt.Short) != nil {
			return clierr.AmbiguousPath(path,
				"global short -%s from plugin %q collides with a local option", string(opt.Short), owner)
		}
		for _, child := range n.Children() {
			if err := walk(child, append(append([]string{}, path...), child.Name)); err != nil {
				return err
			}
		}
		return nil
	}
	return walk(root, nil)
}

func findGlobalShort(opts []schema.Option, short rune) string {
	if short == 0 {
		return ""
	}
	for _, opt := range opts {
		if opt.Short == short {
			return opt.Long
		}
	}
	return ""
}
