// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package util

import (
	"os"
	"path/filepath"
	"strings"
)

// ParseCommandsDir resolves a commands-directory argument to an
// absolute path. It returns an error if dir is empty, or if the fs
// entry does not exist or is not a directory.
func ParseCommandsDir(dir string) (string, error) {

	if dir == "" {
		return "", os.ErrInvalid
	}

	// Determine if the directory is absolute or relative. If it is
	// relative, make it absolute.
	if !strings.HasPrefix(dir, "/") {
		cwd, err := os.Getwd()
		if err != nil {
			return "", err
		}
		dir = filepath.Join(cwd, dir)
	}

	// If the path is not a directory, return an error.
	if r, err := os.Stat(dir); err != nil {
		return "", err
	} else if !r.IsDir() {
		return "", os.ErrInvalid
	}

	return dir, nil
}
