// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package loader walks a commands directory and builds the command
// tree. Each .yaml file declares one command named after the file's base
// name; each directory becomes a group node; an index.yaml inside a
// directory provides the group's own metadata and handler declaration.
// Handlers are Go functions registered against space-joined command
// paths and paired with manifests during the walk.
package loader

import (
	"errors"
	"io/fs"
	"path"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/tfctl/clikit/internal/log"
	"github.com/tfctl/clikit/pkg/clictx"
	"github.com/tfctl/clikit/pkg/clierr"
	"github.com/tfctl/clikit/pkg/schema"
)

// indexBase is the sentinel base name that attaches a manifest to the
// enclosing directory's group node instead of declaring a child.
const indexBase = "index"

// Loader carries walk options. The zero value is the strict production
// configuration.
type Loader struct {
	// AllowUnbound skips handler pairing, for tooling that loads
	// declarations without the Go functions behind them.
	AllowUnbound bool
}

// Load walks fsys with the default strict Loader.
func Load(fsys fs.FS, handlers map[string]clictx.Handler) (*schema.Node, error) {
	return Loader{}.Load(fsys, handlers)
}

// Load walks fsys, builds the command tree and pairs registered
// handlers. All build-time failures are located and joined.
func (l Loader) Load(fsys fs.FS, handlers map[string]clictx.Handler) (*schema.Node, error) {
	root := schema.NewNode("")
	var errs []error

	bound := map[string]bool{}
	l.loadDir(fsys, ".", root, nil, handlers, bound, &errs)

	if !l.AllowUnbound {
		// Handlers registered for paths no manifest declares are as
		// fatal as the reverse; they are silent dead commands otherwise.
		var unknown []string
		for key := range handlers {
			if !bound[key] {
				unknown = append(unknown, key)
			}
		}
		sort.Strings(unknown)
		for _, key := range unknown {
			errs = append(errs, clierr.SchemaInvalid("", strings.Fields(key), "handler",
				"handler registered for undeclared command %q", key))
		}
	}

	errs = append(errs, schema.ValidateTree(root)...)
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	log.Debugf("loaded command tree: commands=%d", countNodes(root)-1)
	return root, nil
}

func (l Loader) loadDir(fsys fs.FS, dir string, node *schema.Node, nodePath []string,
	handlers map[string]clictx.Handler, bound map[string]bool, errs *[]error) {

	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		*errs = append(*errs, clierr.SchemaInvalid(dir, nodePath, "", "reading directory: %v", err))
		return
	}

	// Sibling names already claimed, for collision detection across
	// files, directories and extension variants.
	claimed := map[string]string{}

	for _, entry := range entries {
		name := entry.Name()
		full := path.Join(dir, name)

		if entry.IsDir() {
			if strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") {
				continue
			}
			childPath := append(append([]string{}, nodePath...), name)
			if prev, dup := claimed[name]; dup {
				*errs = append(*errs, clierr.NameCollision(full, childPath,
					"%q already declared by %s", name, prev))
				continue
			}
			claimed[name] = full
			child := schema.NewNode(name)
			child.SourceFile = full
			if err := node.AddChild(child); err != nil {
				*errs = append(*errs, clierr.NameCollision(full, childPath, "%v", err))
				continue
			}
			l.loadDir(fsys, full, child, childPath, handlers, bound, errs)
			if child.IsGroup() && len(child.Children()) == 0 {
				*errs = append(*errs, clierr.SchemaInvalid(full, childPath, "",
					"group has neither a handler nor subcommands"))
			}
			continue
		}

		base, ok := manifestBase(name)
		if !ok {
			continue
		}

		if base == indexBase {
			l.applyManifest(fsys, full, node, nodePath, handlers, bound, errs, false)
			continue
		}

		childPath := append(append([]string{}, nodePath...), base)
		if prev, dup := claimed[base]; dup {
			*errs = append(*errs, clierr.NameCollision(full, childPath,
				"%q already declared by %s", base, prev))
			continue
		}
		claimed[base] = full
		child := schema.NewNode(base)
		child.SourceFile = full
		if err := node.AddChild(child); err != nil {
			*errs = append(*errs, clierr.NameCollision(full, childPath, "%v", err))
			continue
		}
		l.applyManifest(fsys, full, child, childPath, handlers, bound, errs, true)
		if child.IsGroup() {
			// A file cannot contribute subcommands of its own, so a
			// handler-less command file is always fatal.
			*errs = append(*errs, clierr.SchemaInvalid(full, childPath, "handler",
				"command file declares neither a handler nor subcommands"))
		}
	}
}

// applyManifest parses one manifest file into node. commandFile is true
// for child-declaring files, where a handler is the default; index files
// default to handler-less groups.
func (l Loader) applyManifest(fsys fs.FS, file string, node *schema.Node, nodePath []string,
	handlers map[string]clictx.Handler, bound map[string]bool, errs *[]error, commandFile bool) {

	data, err := fs.ReadFile(fsys, file)
	if err != nil {
		*errs = append(*errs, clierr.SchemaInvalid(file, nodePath, "", "reading manifest: %v", err))
		return
	}

	var m manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		*errs = append(*errs, clierr.SchemaInvalid(file, nodePath, "", "parsing manifest: %v", err))
		return
	}

	node.SourceFile = file
	node.Meta = schema.Metadata{
		Description: m.Description,
		Usage:       m.Usage,
		Examples:    m.Examples,
		Synonyms:    m.Synonyms,
	}

	wantHandler := commandFile
	if m.Handler != nil {
		wantHandler = *m.Handler
	}

	node.Args = make([]schema.Arg, 0, len(m.Args))
	for _, am := range m.Args {
		arg, err := am.toArg()
		if err != nil {
			*errs = append(*errs, clierr.SchemaInvalid(file, nodePath, am.Name, "%v", err))
			continue
		}
		node.Args = append(node.Args, arg)
	}

	longs := make([]string, 0, len(m.Options))
	for long := range m.Options {
		longs = append(longs, long)
	}
	sort.Strings(longs)
	node.Options = make([]schema.Option, 0, len(longs))
	for _, long := range longs {
		opt, err := m.Options[long].toOption(long)
		if err != nil {
			*errs = append(*errs, clierr.SchemaInvalid(file, nodePath, long, "%v", err))
			continue
		}
		node.Options = append(node.Options, opt)
	}

	key := strings.Join(nodePath, " ")
	if wantHandler {
		node.HasHandler = true
		if !l.AllowUnbound {
			if _, ok := handlers[key]; !ok {
				*errs = append(*errs, clierr.SchemaInvalid(file, nodePath, "handler",
					"manifest declares a handler but none is registered for %q", key))
				return
			}
			bound[key] = true
		}
	} else if _, ok := handlers[key]; ok && !l.AllowUnbound {
		*errs = append(*errs, clierr.SchemaInvalid(file, nodePath, "handler",
			"handler registered for %q but the manifest declares none", key))
	}

	log.Tracef("manifest applied: file=%s path=%q handler=%v", file, key, wantHandler)
}

// manifestBase strips a recognized manifest extension, reporting whether
// the file participates in loading at all.
func manifestBase(name string) (string, bool) {
	for _, ext := range []string{".yaml", ".yml"} {
		if strings.HasSuffix(name, ext) {
			return strings.TrimSuffix(name, ext), true
		}
	}
	return "", false
}

func countNodes(n *schema.Node) int {
	total := 1
	for _, child := range n.Children() {
		total += countNodes(child)
	}
	return total
}
