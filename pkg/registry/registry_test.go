// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package registry

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tfctl/clikit/pkg/clictx"
	"github.com/tfctl/clikit/pkg/plugin"
	"github.com/tfctl/clikit/pkg/schema"
)

func nopHandler(ctx *clictx.Context, args, opts *clictx.Values) error { return nil }

// imageTree builds root -> {hello, image -> {build, ls}}.
func imageTree(t *testing.T) (*schema.Node, map[string]clictx.Handler) {
	t.Helper()
	root := schema.NewNode("")

	hello := schema.NewNode("hello")
	hello.Meta.Description = "greet someone"
	hello.HasHandler = true
	hello.Options = []schema.Option{
		{Long: "loud", Short: 'l', Type: schema.ValueType{Kind: schema.Bool}, Default: false},
	}
	require.NoError(t, root.AddChild(hello))

	image := schema.NewNode("image")
	image.Meta.Description = "manage images"
	build := schema.NewNode("build")
	build.Meta.Description = "build an image"
	build.HasHandler = true
	build.Options = []schema.Option{
		{Long: "tag", Short: 't', Type: schema.ValueType{Kind: schema.Strings}, TakesValue: true, Description: "tag the result"},
	}
	ls := schema.NewNode("ls")
	ls.Meta.Description = "list images"
	ls.HasHandler = true
	require.NoError(t, image.AddChild(build))
	require.NoError(t, image.AddChild(ls))
	require.NoError(t, root.AddChild(image))

	handlers := map[string]clictx.Handler{
		"hello":       nopHandler,
		"image build": nopHandler,
		"image ls":    nopHandler,
	}
	return root, handlers
}

func buildRegistry(t *testing.T) *Registry {
	t.Helper()
	root, handlers := imageTree(t)
	comp, err := plugin.Compose(root, handlers, nil)
	require.NoError(t, err)
	return New(comp)
}

func TestRegistryPaths(t *testing.T) {
	reg := buildRegistry(t)

	assert.Equal(t, []string{
		"hello",
		"image",
		"image build",
		"image ls",
	}, reg.PathStrings())

	paths := reg.Paths()
	byDisplay := map[string]Path{}
	for _, p := range paths {
		byDisplay[p.Display()] = p
	}
	assert.True(t, byDisplay["hello"].Leaf)
	assert.False(t, byDisplay["image"].Leaf)
	assert.Equal(t, "manage images", byDisplay["image"].Description)
	require.Len(t, byDisplay["image build"].Options, 1)
	assert.Equal(t, "tag", byDisplay["image build"].Options[0].Long)
}

func TestRegistryShortIndex(t *testing.T) {
	reg := buildRegistry(t)

	owners := reg.ShortOwners('t')
	require.Len(t, owners, 1)
	assert.Equal(t, []string{"image", "build"}, owners[0].Path)
	assert.Equal(t, "tag", owners[0].Long)

	assert.Empty(t, reg.ShortOwners('x'))
}

func TestRegistryLookupAndHandler(t *testing.T) {
	reg := buildRegistry(t)

	node := reg.Lookup([]string{"image", "build"})
	require.NotNil(t, node)
	assert.Equal(t, "build", node.Name)
	assert.NotNil(t, reg.Handler([]string{"image", "build"}))

	assert.Nil(t, reg.Lookup([]string{"image", "rm"}))
	assert.Nil(t, reg.Handler([]string{"image"}))
}

func TestEmitSourceDeterministic(t *testing.T) {
	reg := buildRegistry(t)

	first, err := reg.EmitSource("registry", "demo")
	require.NoError(t, err)
	second, err := reg.EmitSource("registry", "demo")
	require.NoError(t, err)
	assert.Equal(t, first, second)

	// A second registry over the same tree emits byte-identical source.
	other := buildRegistry(t)
	third, err := other.EmitSource("registry", "demo")
	require.NoError(t, err)
	assert.Equal(t, first, third)
}

func TestEmitSourceContent(t *testing.T) {
	reg := buildRegistry(t)

	source, err := reg.EmitSource("commands", "demo")
	require.NoError(t, err)
	text := string(source)

	assert.True(t, strings.HasPrefix(text, "// Code generated by clikit gen. DO NOT EDIT."))
	assert.Contains(t, text, "package commands")
	assert.Contains(t, text, `Path:        "image build"`)
	assert.Contains(t, text, `{Long: "tag", Short: 't'`)
	assert.Contains(t, text, `Kind: "strings"`)
	assert.Contains(t, text, "Leaf:        false")
}

func TestCommandInfos(t *testing.T) {
	reg := buildRegistry(t)
	infos := reg.CommandInfos()
	require.Len(t, infos, 4)
	assert.Equal(t, "hello", infos[0].Display())
	assert.True(t, infos[0].Leaf)
}
