// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/tfctl/clikit/internal/log"
)

// Gen holds settings for the `clikit gen` command. The command reads
// only App from it; the package name and output file come from its
// --package and --output options.
type Gen struct {
	// Package is the package name for the generated registry file.
	Package string `yaml:"package,omitempty"`
	// Output is the file the generated table is written to; empty
	// means stdout.
	Output string `yaml:"output,omitempty"`
	// App is the application name recorded in the generated table.
	App string `yaml:"app,omitempty"`
}

// Config is the typed shape of a project's clikit.yaml.
type Config struct {
	// Commands names the project's commands directory. The clikit tool's
	// commands take the directory as a required argument and do not read
	// this field.
	Commands string `yaml:"commands,omitempty"`
	// App names the application the commands belong to.
	App string `yaml:"app,omitempty"`
	Gen Gen    `yaml:"gen,omitempty"`

	// Source is the path the configuration was loaded from, empty for
	// the built-in defaults.
	Source string `yaml:"-"`
}

// goIdent matches a legal Go package identifier, the only thing
// Gen.Package may hold.
var goIdent = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// Load resolves and parses the project configuration. When no config
// file exists anywhere in the lookup order, the built-in defaults are
// returned with no error; a file that exists but does not parse or
// validate is an error.
func Load() (*Config, error) {
	path, ok := findConfigFile()
	if !ok {
		cfg := &Config{}
		cfg.setDefaults()
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal([]byte(expandEnvVars(string(data))), &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	cfg.Source = path

	cfg.setDefaults()
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &cfg, nil
}

// setDefaults fills the fields the tool needs even without a config
// file.
func (c *Config) setDefaults() {
	if c.Commands == "" {
		c.Commands = "./commands"
	}
	if c.Gen.Package == "" {
		c.Gen.Package = "registry"
	}
	if c.Gen.App == "" {
		c.Gen.App = c.App
	}
}

// validate rejects values the gen pipeline would otherwise turn into
// uncompilable output.
func (c *Config) validate() error {
	if !goIdent.MatchString(c.Gen.Package) {
		return fmt.Errorf("gen.package %q is not a valid Go package name", c.Gen.Package)
	}
	if c.Gen.Output != "" && !strings.HasSuffix(c.Gen.Output, ".go") {
		return fmt.Errorf("gen.output %q must be a .go file", c.Gen.Output)
	}
	return nil
}

// expandEnvVars substitutes ${VAR} and $VAR references so paths in the
// config can follow the environment. Unset variables are left verbatim.
func expandEnvVars(s string) string {
	re := regexp.MustCompile(`\$\{([^}]+)\}|\$(\w+)`)
	return re.ReplaceAllStringFunc(s, func(match string) string {
		varName := strings.TrimPrefix(match, "${")
		varName = strings.TrimPrefix(varName, "$")
		varName = strings.TrimSuffix(varName, "}")

		if value := os.Getenv(varName); value != "" {
			return value
		}
		return match
	})
}

// findConfigFile resolves the config path: the CLIKIT_CFG_FILE
// environment variable wins, then a project-local clikit.yaml in the
// working directory, then the OS user configuration directory.
func findConfigFile() (string, bool) {
	if cfgPath := os.Getenv("CLIKIT_CFG_FILE"); cfgPath != "" {
		log.Debugf("using config file from CLIKIT_CFG_FILE: %s", cfgPath)
		return cfgPath, true
	}

	if cwd, err := os.Getwd(); err == nil {
		file := filepath.Join(cwd, "clikit.yaml")
		if info, err := os.Stat(file); err == nil && !info.IsDir() {
			log.Debugf("using project config file: %s", file)
			return file, true
		}
	}

	if dir, err := os.UserConfigDir(); err == nil {
		file := filepath.Join(dir, "clikit.yaml")
		if info, err := os.Stat(file); err == nil && !info.IsDir() {
			log.Debugf("using config file: %s", file)
			return file, true
		}
	}

	return "", false
}
