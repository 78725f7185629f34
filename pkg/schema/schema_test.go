// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateArgOrdering(t *testing.T) {
	tests := []struct {
		name    string
		args    []Arg
		wantErr bool
	}{
		{
			name: "required then optional",
			args: []Arg{
				{Name: "a", Type: ValueType{Kind: String}, Required: true},
				{Name: "b", Type: ValueType{Kind: String}},
			},
		},
		{
			name: "required after optional",
			args: []Arg{
				{Name: "a", Type: ValueType{Kind: String}},
				{Name: "b", Type: ValueType{Kind: String}, Required: true},
			},
			wantErr: true,
		},
		{
			name: "variadic last",
			args: []Arg{
				{Name: "a", Type: ValueType{Kind: String}, Required: true},
				{Name: "rest", Type: ValueType{Kind: Strings}, Variadic: true},
			},
		},
		{
			name: "variadic not last",
			args: []Arg{
				{Name: "rest", Type: ValueType{Kind: Strings}, Variadic: true},
				{Name: "a", Type: ValueType{Kind: String}, Required: true},
			},
			wantErr: true,
		},
		{
			name: "variadic must be strings",
			args: []Arg{
				{Name: "rest", Type: ValueType{Kind: String}, Variadic: true},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node := NewNode("x")
			node.HasHandler = true
			node.Args = tt.args
			errs := Validate(node, []string{"x"})
			if tt.wantErr {
				assert.NotEmpty(t, errs)
			} else {
				assert.Empty(t, errs)
			}
		})
	}
}

func TestValidateOptionUniqueness(t *testing.T) {
	node := NewNode("x")
	node.HasHandler = true
	node.Options = []Option{
		{Long: "alpha", Short: 'a', Type: ValueType{Kind: Bool}, Default: false},
		{Long: "alpha", Short: 'b', Type: ValueType{Kind: Bool}, Default: false},
	}
	assert.NotEmpty(t, Validate(node, nil))

	node = NewNode("x")
	node.HasHandler = true
	node.Options = []Option{
		{Long: "alpha", Short: 'a', Type: ValueType{Kind: Bool}, Default: false},
		{Long: "beta", Short: 'a', Type: ValueType{Kind: Bool}, Default: false},
	}
	assert.NotEmpty(t, Validate(node, nil))
}

func TestValidateEnum(t *testing.T) {
	tests := []struct {
		name    string
		labels  []string
		wantErr bool
	}{
		{name: "valid", labels: []string{"text", "json"}},
		{name: "empty set", labels: nil, wantErr: true},
		{name: "empty label", labels: []string{"text", ""}, wantErr: true},
		{name: "duplicate label", labels: []string{"text", "text"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node := NewNode("x")
			node.HasHandler = true
			node.Options = []Option{
				{Long: "format", Type: ValueType{Kind: Enum, Labels: tt.labels}, TakesValue: true},
			}
			errs := Validate(node, nil)
			if tt.wantErr {
				assert.NotEmpty(t, errs)
			} else {
				assert.Empty(t, errs)
			}
		})
	}
}

func TestValidateDefaults(t *testing.T) {
	tests := []struct {
		name    string
		opt     Option
		wantErr bool
	}{
		{
			name: "bool default",
			opt:  Option{Long: "loud", Type: ValueType{Kind: Bool}, Default: false},
		},
		{
			name:    "bool default wrong type",
			opt:     Option{Long: "loud", Type: ValueType{Kind: Bool}, Default: "yes"},
			wantErr: true,
		},
		{
			name: "int default in range",
			opt:  Option{Long: "count", Short: 0, Type: ValueType{Kind: Int, Bits: 8}, Default: 127, TakesValue: true},
		},
		{
			name:    "int default overflows width",
			opt:     Option{Long: "count", Type: ValueType{Kind: Int, Bits: 8}, Default: 128, TakesValue: true},
			wantErr: true,
		},
		{
			name:    "uint default negative",
			opt:     Option{Long: "count", Type: ValueType{Kind: Uint}, Default: -1, TakesValue: true},
			wantErr: true,
		},
		{
			name: "enum default is a label",
			opt:  Option{Long: "format", Type: ValueType{Kind: Enum, Labels: []string{"a", "b"}}, Default: "a", TakesValue: true},
		},
		{
			name:    "enum default not a label",
			opt:     Option{Long: "format", Type: ValueType{Kind: Enum, Labels: []string{"a", "b"}}, Default: "c", TakesValue: true},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node := NewNode("x")
			node.HasHandler = true
			node.Options = []Option{tt.opt}
			errs := Validate(node, nil)
			if tt.wantErr {
				assert.NotEmpty(t, errs)
			} else {
				assert.Empty(t, errs)
			}
		})
	}
}

func TestValidateBooleanTakesValue(t *testing.T) {
	node := NewNode("x")
	node.HasHandler = true
	node.Options = []Option{
		{Long: "loud", Type: ValueType{Kind: Bool}, Default: false, TakesValue: true},
	}
	assert.NotEmpty(t, Validate(node, nil))
}

func TestValidateLongNameLength(t *testing.T) {
	node := NewNode("x")
	node.HasHandler = true
	node.Options = []Option{
		{Long: "l", Type: ValueType{Kind: Bool}, Default: false},
	}
	assert.NotEmpty(t, Validate(node, nil))
}

func TestNodeChildren(t *testing.T) {
	root := NewNode("")
	require.NoError(t, root.AddChild(NewNode("zeta")))
	require.NoError(t, root.AddChild(NewNode("alpha")))
	require.Error(t, root.AddChild(NewNode("alpha")))

	children := root.Children()
	require.Len(t, children, 2)
	assert.Equal(t, "alpha", children[0].Name)
	assert.Equal(t, "zeta", children[1].Name)
}

func TestNodeOptionLookup(t *testing.T) {
	node := NewNode("x")
	node.Options = []Option{
		{Long: "format", Short: 'f', Type: ValueType{Kind: String}, TakesValue: true},
	}
	require.NotNil(t, node.Option("format"))
	assert.Nil(t, node.Option("nope"))
	require.NotNil(t, node.OptionByShort('f'))
	assert.Nil(t, node.OptionByShort('x'))
}
