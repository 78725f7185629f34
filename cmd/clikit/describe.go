// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/tfctl/clikit/internal/util"
	"github.com/tfctl/clikit/pkg/clictx"
	"github.com/tfctl/clikit/pkg/clierr"
	"github.com/tfctl/clikit/pkg/loader"
	"github.com/tfctl/clikit/pkg/plugin"
	"github.com/tfctl/clikit/pkg/registry"
	"github.com/tfctl/clikit/pkg/schema"
)

// describedCommand is the JSON shape of one registry entry.
type describedCommand struct {
	Path        string            `json:"path"`
	Description string            `json:"description,omitempty"`
	Leaf        bool              `json:"leaf"`
	Args        []describedArg    `json:"args,omitempty"`
	Options     []describedOption `json:"options,omitempty"`
}

type describedArg struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Required    bool   `json:"required,omitempty"`
	Variadic    bool   `json:"variadic,omitempty"`
	Description string `json:"description,omitempty"`
}

type describedOption struct {
	Long        string `json:"long"`
	Short       string `json:"short,omitempty"`
	Type        string `json:"type"`
	Default     any    `json:"default,omitempty"`
	Description string `json:"description,omitempty"`
}

// runDescribe loads a commands directory and prints its flat registry,
// as an aligned text table or as JSON.
func runDescribe(ctx *clictx.Context, args, opts *clictx.Values) error {
	dir, err := util.ParseCommandsDir(args.String("dir"))
	if err != nil {
		return clierr.Usagef("commands directory %s: %v", args.String("dir"), err)
	}

	l := loader.Loader{AllowUnbound: true}
	root, err := l.Load(os.DirFS(dir), nil)
	if err != nil {
		fmt.Fprintln(ctx.Stderr(), err)
		return clierr.Usagef("%s failed validation", dir)
	}

	comp, err := plugin.Compose(root, nil, nil)
	if err != nil {
		return err
	}
	reg := registry.New(comp)

	if opts.String("format") == "json" {
		described := make([]describedCommand, 0, len(reg.Paths()))
		for _, p := range reg.Paths() {
			node := reg.Lookup(p.Segments)
			described = append(described, describe(p, node))
		}
		encoder := json.NewEncoder(ctx.Stdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(described)
	}

	for _, p := range reg.Paths() {
		marker := " "
		if !p.Leaf {
			marker = "+"
		}
		fmt.Fprintf(ctx.Stdout(), "%s %-24s %s\n", marker, p.Display(), p.Description)
	}
	return nil
}

func describe(p registry.Path, node *schema.Node) describedCommand {
	out := describedCommand{
		Path:        p.Display(),
		Description: p.Description,
		Leaf:        p.Leaf,
	}
	for _, arg := range node.Args {
		out.Args = append(out.Args, describedArg{
			Name:        arg.Name,
			Type:        arg.Type.Display(),
			Required:    arg.Required,
			Variadic:    arg.Variadic,
			Description: arg.Description,
		})
	}
	for _, opt := range node.Options {
		short := ""
		if opt.Short != 0 {
			short = string(opt.Short)
		}
		out.Options = append(out.Options, describedOption{
			Long:        opt.Long,
			Short:       short,
			Type:        opt.Type.Display(),
			Default:     opt.Default,
			Description: opt.Description,
		})
	}
	return out
}
