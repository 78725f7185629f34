// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package registry freezes a plugin composition into the immutable,
// statically addressable dispatch structure the runtime, the completion
// generator and the suggestion engine all consume.
package registry

import (
	"strings"

	"github.com/tfctl/clikit/pkg/clictx"
	"github.com/tfctl/clikit/pkg/plugin"
	"github.com/tfctl/clikit/pkg/schema"
)

// Path is one entry of the flat enumeration of reachable commands.
type Path struct {
	Segments    []string
	Description string
	Leaf        bool
	Options     []schema.Option
}

// Display returns the space-joined path.
func (p Path) Display() string { return strings.Join(p.Segments, " ") }

// ShortOwner records which node claims a short character, for
// diagnostics. The token parser does not consult this index; it resolves
// shorts against the resolved node's options, then the global options.
type ShortOwner struct {
	Path []string
	Long string
}

// Registry is immutable after construction and safe for shared
// read-only use across dispatches.
type Registry struct {
	root          *schema.Node
	handlers      map[string]clictx.Handler
	globals       []schema.Option
	paths         []Path
	shorts        map[rune][]ShortOwner
	globalHooks   []plugin.GlobalOptionHandler
	preExecutors  []plugin.PreExecutor
	errorHandlers []plugin.ErrorHandler
	startup       []plugin.StartupHandler
	extensions    []plugin.NamedExtension
}

// New freezes a composition into a Registry, computing the flat path
// list and the reverse short-character index.
func New(comp *plugin.Composition) *Registry {
	r := &Registry{
		root:          comp.Root,
		handlers:      comp.Handlers,
		globals:       comp.GlobalOptions,
		shorts:        map[rune][]ShortOwner{},
		globalHooks:   comp.GlobalOptionHandlers,
		preExecutors:  comp.PreExecutors,
		errorHandlers: comp.ErrorHandlers,
		startup:       comp.StartupHandlers,
		extensions:    comp.Extensions,
	}

	var walk func(n *schema.Node, path []string)
	walk = func(n *schema.Node, path []string) {
		if len(path) > 0 {
			r.paths = append(r.paths, Path{
				Segments:    append([]string{}, path...),
				Description: n.Meta.Description,
				Leaf:        n.HasHandler,
				Options:     n.Options,
			})
		}
		for i := range n.Options {
			if short := n.Options[i].Short; short != 0 {
				r.shorts[short] = append(r.shorts[short], ShortOwner{
					Path: append([]string{}, path...),
					Long: n.Options[i].Long,
				})
			}
		}
		for _, child := range n.Children() {
			walk(child, append(append([]string{}, path...), child.Name))
		}
	}
	walk(comp.Root, nil)

	return r
}

// Root returns the command tree root.
func (r *Registry) Root() *schema.Node { return r.root }

// GlobalOptions returns the registry-owned options.
func (r *Registry) GlobalOptions() []schema.Option { return r.globals }

// GlobalOption returns the global descriptor with the given long name,
// or nil.
func (r *Registry) GlobalOption(long string) *schema.Option {
	for i := range r.globals {
		if r.globals[i].Long == long {
			return &r.globals[i]
		}
	}
	return nil
}

// Paths returns the flat enumeration of reachable command paths.
func (r *Registry) Paths() []Path { return r.paths }

// PathStrings returns the display form of every reachable path, in
// enumeration order.
func (r *Registry) PathStrings() []string {
	out := make([]string, 0, len(r.paths))
	for _, p := range r.paths {
		out = append(out, p.Display())
	}
	return out
}

// ShortOwners returns the nodes claiming the given short character.
func (r *Registry) ShortOwners(short rune) []ShortOwner { return r.shorts[short] }

// Lookup resolves a command path to its node, or nil.
func (r *Registry) Lookup(path []string) *schema.Node {
	node := r.root
	for _, segment := range path {
		node = node.Child(segment)
		if node == nil {
			return nil
		}
	}
	return node
}

// Handler returns the handler bound to the space-joined path, or nil.
func (r *Registry) Handler(path []string) clictx.Handler {
	return r.handlers[strings.Join(path, " ")]
}

// Hook lists, in plugin declaration order.

func (r *Registry) GlobalOptionHandlers() []plugin.GlobalOptionHandler { return r.globalHooks }
func (r *Registry) PreExecutors() []plugin.PreExecutor                 { return r.preExecutors }
func (r *Registry) ErrorHandlers() []plugin.ErrorHandler               { return r.errorHandlers }
func (r *Registry) StartupHandlers() []plugin.StartupHandler           { return r.startup }
func (r *Registry) Extensions() []plugin.NamedExtension                { return r.extensions }

// CommandInfos adapts the flat enumeration to the context's shape.
func (r *Registry) CommandInfos() []clictx.CommandInfo {
	out := make([]clictx.CommandInfo, 0, len(r.paths))
	for _, p := range r.paths {
		out = append(out, clictx.CommandInfo{
			Path:        p.Segments,
			Description: p.Description,
			Leaf:        p.Leaf,
			Options:     p.Options,
		})
	}
	return out
}
