// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"

	"github.com/tfctl/clikit/internal/config"
	"github.com/tfctl/clikit/internal/util"
	"github.com/tfctl/clikit/pkg/clictx"
	"github.com/tfctl/clikit/pkg/clierr"
	"github.com/tfctl/clikit/pkg/loader"
	"github.com/tfctl/clikit/pkg/plugin"
	"github.com/tfctl/clikit/pkg/registry"
)

// runGen loads a commands directory in declaration-only mode, freezes
// a registry from it and emits the static dispatch table as Go source.
func runGen(ctx *clictx.Context, args, opts *clictx.Values) error {
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

	pkg := opts.String("package")
	app := opts.String("app")
	if app == "" {
		// Fall back to the project config, then the name of the
		// directory containing the commands directory.
		if cfg, err := config.Load(); err == nil && cfg.Gen.App != "" {
			app = cfg.Gen.App
		} else {
			app = filepath.Base(filepath.Dir(dir))
		}
	}

	source, err := reg.EmitSource(pkg, app)
	if err != nil {
		return err
	}

	output := opts.String("output")
	if output == "" {
		_, err = ctx.Stdout().Write(source)
		return err
	}
	if err := os.WriteFile(output, source, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", output, err)
	}
	fmt.Fprintf(ctx.Stderr(), "wrote %s (%s, %d commands)\n",
		output, humanize.Bytes(uint64(len(source))), len(reg.Paths()))
	return nil
}
