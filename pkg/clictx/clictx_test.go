// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package clictx

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tfctl/clikit/pkg/schema"
)

func TestValuesTypedGetters(t *testing.T) {
	v := NewValues()
	v.Put("name", "World")
	v.Put("count", int64(42))
	v.Put("size", uint64(7))
	v.Put("ratio", 0.5)
	v.Put("loud", true)
	v.Put("tags", []string{"a", "b"})

	assert.Equal(t, "World", v.String("name"))
	assert.Equal(t, int64(42), v.Int("count"))
	assert.Equal(t, uint64(7), v.Uint("size"))
	assert.Equal(t, 0.5, v.Float("ratio"))
	assert.True(t, v.Bool("loud"))
	assert.Equal(t, []string{"a", "b"}, v.Strings("tags"))

	// Missing or mistyped names return zero values.
	assert.Equal(t, "", v.String("count"))
	assert.Equal(t, int64(0), v.Int("name"))
	assert.Nil(t, v.Strings("name"))
}

func TestValuesOrder(t *testing.T) {
	v := NewValues()
	v.Put("b", 1)
	v.Put("a", 2)
	v.Put("b", 3)

	assert.Equal(t, []string{"b", "a"}, v.Names())
	assert.Equal(t, 2, v.Len())
	got, ok := v.Get("b")
	assert.True(t, ok)
	assert.Equal(t, 3, got)
}

func TestValuesScan(t *testing.T) {
	v := NewValues()
	v.Put("name", "World")
	v.Put("count", int64(42))
	v.Put("loud", true)
	v.Put("tags", []string{"a"})
	v.Put("nick-name", "W")

	var dest struct {
		Name     string
		Count    int32
		Loud     bool
		Tags     []string
		Nickname string `cli:"nick-name"`
		Missing  string
	}
	require.NoError(t, v.Scan(&dest))

	assert.Equal(t, "World", dest.Name)
	assert.Equal(t, int32(42), dest.Count)
	assert.True(t, dest.Loud)
	assert.Equal(t, []string{"a"}, dest.Tags)
	assert.Equal(t, "W", dest.Nickname)
	assert.Equal(t, "", dest.Missing)
}

func TestValuesScanErrors(t *testing.T) {
	v := NewValues()
	v.Put("count", int64(300))

	var notStruct int
	assert.Error(t, v.Scan(&notStruct))
	assert.Error(t, v.Scan(struct{}{}))

	var overflow struct {
		Count int8
	}
	assert.Error(t, v.Scan(&overflow))
}

func TestContextStores(t *testing.T) {
	c := New(context.Background(), Identity{Name: "demo"}, nil, nil, nil)

	c.Set("key", "value")
	got, ok := c.Get("key")
	assert.True(t, ok)
	assert.Equal(t, "value", got)
	_, ok = c.Get("missing")
	assert.False(t, ok)

	c.SetExt("plugin", 42)
	assert.Equal(t, 42, c.Ext("plugin"))
	assert.Nil(t, c.Ext("missing"))
}

func TestContextBufferedStreams(t *testing.T) {
	var stdout, stderr bytes.Buffer
	c := New(context.Background(), Identity{Name: "demo"}, nil, &stdout, &stderr)

	c.Stdout().Write([]byte("out"))
	c.Stderr().Write([]byte("err"))
	assert.Empty(t, stdout.String())

	c.Flush()
	assert.Equal(t, "out", stdout.String())
	assert.Equal(t, "err", stderr.String())
}

func TestContextSchemaReflection(t *testing.T) {
	node := schema.NewNode("hello")
	node.Args = []schema.Arg{
		{Name: "name", Type: schema.ValueType{Kind: schema.String}, Description: "who to greet"},
	}
	node.Options = []schema.Option{
		{Long: "format", Type: schema.ValueType{Kind: schema.Enum, Labels: []string{"text", "json"}}, TakesValue: true, Description: "output format"},
	}

	c := New(context.Background(), Identity{Name: "demo"}, nil, nil, nil)
	c.SetNode(node, []string{"hello"})

	args := c.ArgFields()
	require.Len(t, args, 1)
	assert.Equal(t, FieldInfo{Name: "name", Type: "string", Description: "who to greet"}, args[0])

	opts := c.OptionFields()
	require.Len(t, opts, 1)
	assert.Equal(t, FieldInfo{Name: "format", Type: "text|json", Description: "output format"}, opts[0])
}
