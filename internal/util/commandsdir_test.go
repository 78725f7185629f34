// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package util

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCommandsDir(t *testing.T) {
	tests := []struct {
		name    string
		dir     func(t *testing.T) string
		wantErr bool
	}{
		{
			name: "absolute directory",
			dir: func(t *testing.T) string {
				return t.TempDir()
			},
		},
		{
			name: "relative directory",
			dir: func(t *testing.T) string {
				tmp := t.TempDir()
				require.NoError(t, os.Mkdir(filepath.Join(tmp, "commands"), 0o755))
				t.Chdir(tmp)
				return "commands"
			},
		},
		{
			name:    "empty spec",
			dir:     func(t *testing.T) string { return "" },
			wantErr: true,
		},
		{
			name: "missing directory",
			dir: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "nope")
			},
			wantErr: true,
		},
		{
			name: "file instead of directory",
			dir: func(t *testing.T) string {
				tmp := t.TempDir()
				file := filepath.Join(tmp, "commands")
				require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))
				return file
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCommandsDir(tt.dir(t))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.True(t, filepath.IsAbs(got))
		})
	}
}
