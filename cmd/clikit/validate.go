// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"os"

	"github.com/tfctl/clikit/internal/util"
	"github.com/tfctl/clikit/pkg/clictx"
	"github.com/tfctl/clikit/pkg/clierr"
	"github.com/tfctl/clikit/pkg/loader"
)

// runValidate loads a commands directory in declaration-only mode and
// reports every located schema error.
func runValidate(ctx *clictx.Context, args, opts *clictx.Values) error {
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

	fmt.Fprintf(ctx.Stderr(), "%s: OK (%d top-level commands)\n", dir, len(root.Children()))
	return nil
}
