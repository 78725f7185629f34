// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package config loads the clikit tool's typed project configuration
// from clikit.yaml: the commands directory and the generation settings
// for `clikit gen`. Resolution order:
//   - the CLIKIT_CFG_FILE environment variable,
//   - the current working directory (project-local config),
//   - the user's configuration directory via os.UserConfigDir.
//
// A missing file yields the built-in defaults; a present-but-invalid
// file is an error. ${VAR} references in the file are expanded from
// the environment before parsing.
package config
