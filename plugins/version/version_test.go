// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package version

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tfctl/clikit/pkg/clictx"
	"github.com/tfctl/clikit/pkg/clierr"
)

func setup(t *testing.T) (*Plugin, *clictx.Context, *bytes.Buffer) {
	t.Helper()
	var stdout bytes.Buffer
	ctx := clictx.New(context.Background(),
		clictx.Identity{Name: "demo", Version: "1.0.0"}, nil, &stdout, nil)
	return New(), ctx, &stdout
}

func TestGlobalOptionRecordsRequest(t *testing.T) {
	p, ctx, _ := setup(t)
	require.NoError(t, p.HandleGlobalOption(ctx, "version", "true"))
	_, ok := ctx.Get("version.requested")
	assert.True(t, ok)

	p2, ctx2, _ := setup(t)
	require.NoError(t, p2.HandleGlobalOption(ctx2, "help", "true"))
	_, ok = ctx2.Get("version.requested")
	assert.False(t, ok)
}

func TestPreExecutePrintsAndStops(t *testing.T) {
	p, ctx, stdout := setup(t)

	stop, err := p.PreExecute(ctx, nil)
	require.NoError(t, err)
	assert.False(t, stop)

	ctx.Set("version.requested", "true")
	stop, err = p.PreExecute(ctx, nil)
	require.NoError(t, err)
	assert.True(t, stop)

	ctx.Flush()
	assert.Equal(t, "demo 1.0.0\n", stdout.String())
}

func TestOnErrorRescuesVersionRequest(t *testing.T) {
	p, ctx, stdout := setup(t)
	ctx.Set("version.requested", "true")

	handled := p.OnError(ctx, clierr.CommandNotFound(nil, ""))
	assert.True(t, handled)
	ctx.Flush()
	assert.Equal(t, "demo 1.0.0\n", stdout.String())

	// Unrelated errors pass through even when requested.
	p2, ctx2, _ := setup(t)
	ctx2.Set("version.requested", "true")
	assert.False(t, p2.OnError(ctx2, clierr.UnknownOption(nil, "--x")))
}

func TestVersionCommand(t *testing.T) {
	p, ctx, stdout := setup(t)
	require.NoError(t, p.runVersion(ctx, clictx.NewValues(), clictx.NewValues()))
	ctx.Flush()
	assert.Equal(t, "demo 1.0.0\n", stdout.String())
}
