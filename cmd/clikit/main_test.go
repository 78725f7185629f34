// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/tfctl/clikit/pkg/clictx"
)

// writeCommandsDir lays out a small valid commands directory.
func writeCommandsDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "hello.yaml"), []byte(`
description: greet someone
args:
  - name: name
    type: string
    required: true
options:
  loud:
    type: bool
    short: l
`), 0o644))

	require.NoError(t, os.MkdirAll(filepath.Join(dir, "users"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "users", "index.yaml"),
		[]byte("description: manage users\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "users", "list.yaml"),
		[]byte("description: list users\n"), 0o644))

	return dir
}

func toolContext(t *testing.T) (*clictx.Context, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	ctx := clictx.New(context.Background(), clictx.Identity{Name: "clikit"}, nil, &stdout, &stderr)
	return ctx, &stdout, &stderr
}

func TestRunValidate(t *testing.T) {
	dir := writeCommandsDir(t)
	ctx, _, stderr := toolContext(t)

	args := clictx.NewValues()
	args.Put("dir", dir)
	require.NoError(t, runValidate(ctx, args, clictx.NewValues()))
	ctx.Flush()
	assert.Contains(t, stderr.String(), "OK (2 top-level commands)")
}

func TestRunValidateReportsErrors(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.yaml"), []byte(`
description: broken
handler: false
`), 0o644))

	ctx, _, stderr := toolContext(t)
	args := clictx.NewValues()
	args.Put("dir", dir)

	err := runValidate(ctx, args, clictx.NewValues())
	require.Error(t, err)
	ctx.Flush()
	assert.Contains(t, stderr.String(), "neither a handler nor subcommands")
}

func TestRunValidateMissingDir(t *testing.T) {
	ctx, _, _ := toolContext(t)
	args := clictx.NewValues()
	args.Put("dir", filepath.Join(t.TempDir(), "nope"))

	assert.Error(t, runValidate(ctx, args, clictx.NewValues()))
}

func TestRunGenToStdout(t *testing.T) {
	dir := writeCommandsDir(t)
	ctx, stdout, _ := toolContext(t)

	args := clictx.NewValues()
	args.Put("dir", dir)
	opts := clictx.NewValues()
	opts.Put("package", "registry")
	opts.Put("app", "demo")

	require.NoError(t, runGen(ctx, args, opts))
	ctx.Flush()

	out := stdout.String()
	assert.Contains(t, out, "// Code generated by clikit gen. DO NOT EDIT.")
	assert.Contains(t, out, "package registry")
	assert.Contains(t, out, `Path:        "users list"`)
}

func TestRunDescribeText(t *testing.T) {
	dir := writeCommandsDir(t)
	ctx, stdout, _ := toolContext(t)

	args := clictx.NewValues()
	args.Put("dir", dir)
	opts := clictx.NewValues()
	opts.Put("format", "text")

	require.NoError(t, runDescribe(ctx, args, opts))
	ctx.Flush()

	out := stdout.String()
	assert.Contains(t, out, "hello")
	assert.Contains(t, out, "+ users")
	assert.Contains(t, out, "users list")
}

func TestRunDescribeJSON(t *testing.T) {
	dir := writeCommandsDir(t)
	ctx, stdout, _ := toolContext(t)

	args := clictx.NewValues()
	args.Put("dir", dir)
	opts := clictx.NewValues()
	opts.Put("format", "json")

	require.NoError(t, runDescribe(ctx, args, opts))
	ctx.Flush()

	parsed := gjson.Parse(stdout.String())
	require.True(t, parsed.IsArray())
	assert.Equal(t, "hello", parsed.Get("0.path").String())
	assert.True(t, parsed.Get("0.leaf").Bool())
	assert.Equal(t, "name", parsed.Get("0.args.0.name").String())
	assert.Equal(t, "loud", parsed.Get("0.options.0.long").String())
	assert.Equal(t, "users", parsed.Get("1.path").String())
	assert.False(t, parsed.Get("1.leaf").Bool())
}

func TestRunGenToFile(t *testing.T) {
	dir := writeCommandsDir(t)
	output := filepath.Join(t.TempDir(), "registry_gen.go")
	ctx, _, stderr := toolContext(t)

	args := clictx.NewValues()
	args.Put("dir", dir)
	opts := clictx.NewValues()
	opts.Put("package", "commands")
	opts.Put("app", "demo")
	opts.Put("output", output)

	require.NoError(t, runGen(ctx, args, opts))
	ctx.Flush()
	assert.Contains(t, stderr.String(), "wrote "+output)

	written, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(written), "package commands")
}
