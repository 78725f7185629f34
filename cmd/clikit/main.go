// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Command clikit is the framework's companion tool: it validates
// commands directories and generates static registry tables from them.
// The tool itself is built on the framework it ships with.
package main

import (
	"embed"
	"io/fs"

	"github.com/tfctl/clikit"
	"github.com/tfctl/clikit/pkg/plugin"
	"github.com/tfctl/clikit/plugins/completions"
	helpplugin "github.com/tfctl/clikit/plugins/help"
	versionplugin "github.com/tfctl/clikit/plugins/version"
)

//go:embed commands
var commandsFS embed.FS

func main() {
	commands, err := fs.Sub(commandsFS, "commands")
	if err != nil {
		panic(err)
	}

	app := &clikit.App{
		Name:        "clikit",
		Description: "build and inspect clikit command registries",
		Commands:    commands,
		Handlers: map[string]clikit.Handler{
			"validate": runValidate,
			"gen":      runGen,
			"describe": runDescribe,
		},
		Plugins: []plugin.Plugin{
			helpplugin.New(),
			versionplugin.New(),
			completions.New(),
		},
	}
	app.Main()
}
