// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package plugin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tfctl/clikit/pkg/clictx"
	"github.com/tfctl/clikit/pkg/parser"
	"github.com/tfctl/clikit/pkg/schema"
)

func nopHandler(ctx *clictx.Context, args, opts *clictx.Values) error { return nil }

// fakePlugin implements the command, global-option, global-option-hook,
// pre-execute and on-error interfaces so tests can toggle capabilities
// per case.
type fakePlugin struct {
	name     string
	commands []Command
	globals  []schema.Option
}

func (p *fakePlugin) Name() string                   { return p.name }
func (p *fakePlugin) Commands() []Command            { return p.commands }
func (p *fakePlugin) GlobalOptions() []schema.Option { return p.globals }

func (p *fakePlugin) HandleGlobalOption(ctx *clictx.Context, name, value string) error { return nil }
func (p *fakePlugin) PreExecute(ctx *clictx.Context, res *parser.Result) (bool, error) {
	return false, nil
}
func (p *fakePlugin) OnError(ctx *clictx.Context, err error) bool { return false }

func userTree(t *testing.T) *schema.Node {
	t.Helper()
	root := schema.NewNode("")
	hello := schema.NewNode("hello")
	hello.HasHandler = true
	hello.Options = []schema.Option{
		{Long: "loud", Short: 'l', Type: schema.ValueType{Kind: schema.Bool}, Default: false},
	}
	require.NoError(t, root.AddChild(hello))
	return root
}

func leafCommand(path ...string) Command {
	node := schema.NewNode(path[len(path)-1])
	node.Meta = schema.Metadata{Description: "from plugin"}
	node.HasHandler = true
	return Command{Path: path, Node: node, Handler: nopHandler}
}

func TestComposeMergesCommands(t *testing.T) {
	root := userTree(t)
	p := &fakePlugin{name: "extra", commands: []Command{leafCommand("version")}}

	comp, err := Compose(root, map[string]clictx.Handler{"hello": nopHandler}, []Plugin{p})
	require.NoError(t, err)

	node := comp.Root.Child("version")
	require.NotNil(t, node)
	assert.True(t, node.HasHandler)
	assert.NotNil(t, comp.Handlers["version"])
}

func TestComposeCreatesIntermediateGroups(t *testing.T) {
	root := userTree(t)
	p := &fakePlugin{name: "completions", commands: []Command{leafCommand("completion", "bash")}}

	comp, err := Compose(root, nil, []Plugin{p})
	require.NoError(t, err)

	group := comp.Root.Child("completion")
	require.NotNil(t, group)
	assert.True(t, group.IsGroup())
	assert.NotNil(t, group.Child("bash"))
	assert.NotNil(t, comp.Handlers["completion bash"])
}

func TestComposeRejectsHandlerCollision(t *testing.T) {
	root := userTree(t)
	p := &fakePlugin{name: "bad", commands: []Command{leafCommand("hello")}}

	_, err := Compose(root, nil, []Plugin{p})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestComposeGroupMetadataConflict(t *testing.T) {
	root := schema.NewNode("")
	users := schema.NewNode("users")
	users.Meta.Description = "user management"
	list := schema.NewNode("list")
	list.HasHandler = true
	require.NoError(t, users.AddChild(list))
	require.NoError(t, root.AddChild(users))

	group := schema.NewNode("users")
	group.Meta.Description = "something else"
	p := &fakePlugin{name: "bad", commands: []Command{{Path: []string{"users"}, Node: group}}}

	_, err := Compose(root, nil, []Plugin{p})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "conflicts with user metadata")
}

func TestComposeGlobalOptionCollisions(t *testing.T) {
	tests := []struct {
		name    string
		plugins []Plugin
		wantIn  string
	}{
		{
			name: "two plugins same long",
			plugins: []Plugin{
				&fakePlugin{name: "a", globals: []schema.Option{
					{Long: "verbose", Type: schema.ValueType{Kind: schema.Bool}, Default: false},
				}},
				&fakePlugin{name: "b", globals: []schema.Option{
					{Long: "verbose", Type: schema.ValueType{Kind: schema.Bool}, Default: false},
				}},
			},
			wantIn: "collides with plugin",
		},
		{
			name: "global collides with local long",
			plugins: []Plugin{
				&fakePlugin{name: "a", globals: []schema.Option{
					{Long: "loud", Type: schema.ValueType{Kind: schema.Bool}, Default: false},
				}},
			},
			wantIn: "collides with a local option",
		},
		{
			name: "global collides with local short",
			plugins: []Plugin{
				&fakePlugin{name: "a", globals: []schema.Option{
					{Long: "list", Short: 'l', Type: schema.ValueType{Kind: schema.Bool}, Default: false},
				}},
			},
			wantIn: "collides with a local option",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compose(userTree(t), nil, tt.plugins)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantIn)
		})
	}
}

func TestComposeHookOrder(t *testing.T) {
	first := &fakePlugin{name: "first"}
	second := &fakePlugin{name: "second"}

	comp, err := Compose(userTree(t), nil, []Plugin{first, second})
	require.NoError(t, err)

	require.Len(t, comp.PreExecutors, 2)
	assert.Equal(t, "first", comp.PreExecutors[0].(*fakePlugin).name)
	assert.Equal(t, "second", comp.PreExecutors[1].(*fakePlugin).name)

	require.Len(t, comp.ErrorHandlers, 2)
	assert.Equal(t, "first", comp.ErrorHandlers[0].(*fakePlugin).name)
}

func TestComposeGlobalOptionsAccumulate(t *testing.T) {
	a := &fakePlugin{name: "a", globals: []schema.Option{
		{Long: "help", Short: 'h', Type: schema.ValueType{Kind: schema.Bool}, Default: false},
	}}
	b := &fakePlugin{name: "b", globals: []schema.Option{
		{Long: "version", Short: 'V', Type: schema.ValueType{Kind: schema.Bool}, Default: false},
	}}

	comp, err := Compose(userTree(t), nil, []Plugin{a, b})
	require.NoError(t, err)
	require.Len(t, comp.GlobalOptions, 2)
	assert.Equal(t, "help", comp.GlobalOptions[0].Long)
	assert.Equal(t, "version", comp.GlobalOptions[1].Long)
}
