// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package completions

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tfctl/clikit/pkg/completion"
)

// scriptPath returns the well-known per-shell completion path for the
// app, under $HOME.
func scriptPath(home, app, shell string) (string, error) {
	switch shell {
	case completion.ShellBash:
		return filepath.Join(home, ".local", "share", "bash-completion", "completions", app), nil
	case completion.ShellZsh:
		return filepath.Join(home, ".zsh", "completions", "_"+app), nil
	case completion.ShellFish:
		return filepath.Join(home, ".config", "fish", "completions", app+".fish"), nil
	default:
		return "", fmt.Errorf("unsupported shell %q", shell)
	}
}

// rcPath returns the shell rc file that needs a setup block, or "" when
// the shell picks the script up without one.
func rcPath(home, shell string) string {
	if shell == completion.ShellZsh {
		return filepath.Join(home, ".zshrc")
	}
	return ""
}

func markers(app string) (string, string) {
	return fmt.Sprintf("# >>> %s completion setup >>>", app),
		fmt.Sprintf("# <<< %s completion setup <<<", app)
}

// install writes the script to its per-shell path and, for shells that
// need it, appends the delimited setup block to the rc file. Returns
// the script path written.
func install(app, shell, script string) (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	path, err := scriptPath(home, app, shell)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(script), 0o644); err != nil {
		return "", err
	}

	if rc := rcPath(home, shell); rc != "" {
		if err := appendBlock(rc, app, filepath.Dir(path)); err != nil {
			return "", err
		}
	}
	return path, nil
}

// uninstall removes the installed script and strips the rc block,
// returning the file set to its pre-install state. Reports whether
// anything was removed.
func uninstall(app, shell string) (bool, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return false, err
	}

	path, err := scriptPath(home, app, shell)
	if err != nil {
		return false, err
	}

	removed := false
	if err := os.Remove(path); err == nil {
		removed = true
	} else if !os.IsNotExist(err) {
		return false, err
	}

	if rc := rcPath(home, shell); rc != "" {
		stripped, err := stripBlock(rc, app)
		if err != nil {
			return removed, err
		}
		removed = removed || stripped
	}
	return removed, nil
}

// appendBlock adds the delimited setup block to the rc file, once.
func appendBlock(rc, app, completionsDir string) error {
	begin, end := markers(app)

	existing, err := os.ReadFile(rc)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	if strings.Contains(string(existing), begin) {
		return nil
	}

	f, err := os.OpenFile(rc, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	block := fmt.Sprintf("\n%s\nfpath=(%s $fpath)\nautoload -Uz compinit && compinit -i\n%s\n",
		begin, completionsDir, end)
	_, err = f.WriteString(block)
	return err
}

// stripBlock removes the delimited setup block from the rc file.
func stripBlock(rc, app string) (bool, error) {
	begin, end := markers(app)

	data, err := os.ReadFile(rc)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	lines := strings.Split(string(data), "\n")
	var kept []string
	inBlock := false
	stripped := false
	for _, line := range lines {
		switch {
		case strings.TrimSpace(line) == begin:
			inBlock = true
			stripped = true
			// Swallow the blank separator appended before the block.
			if len(kept) > 0 && kept[len(kept)-1] == "" {
				kept = kept[:len(kept)-1]
			}
		case strings.TrimSpace(line) == end:
			inBlock = false
		case !inBlock:
			kept = append(kept, line)
		}
	}
	if !stripped {
		return false, nil
	}
	return true, os.WriteFile(rc, []byte(strings.Join(kept, "\n")), 0o644)
}
