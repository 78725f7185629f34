// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package clictx

import (
	"bufio"
	"context"
	"io"
	"os"
	"strings"

	"github.com/tfctl/clikit/pkg/schema"
)

// Identity names the hosted application.
type Identity struct {
	Name        string
	Version     string
	Description string
}

// CommandInfo is one entry of the flat command enumeration exposed to
// hooks, the help engine and the suggestion engine.
type CommandInfo struct {
	Path        []string
	Description string
	Leaf        bool
	Options     []schema.Option
}

// Display returns the space-joined command path.
func (c CommandInfo) Display() string { return strings.Join(c.Path, " ") }

// FieldInfo reflects one declared argument or option of the current
// command for plugins that introspect schemas at run time.
type FieldInfo struct {
	Name        string
	Type        string
	Description string
}

// Handler is the function invoked when a leaf command is dispatched.
type Handler func(ctx *Context, args *Values, opts *Values) error

// Context is the per-invocation state container. It lives for exactly
// one dispatch: created at entry, closed (and its writers flushed) at
// exit. It is not safe for concurrent use and is never shared between
// dispatches.
type Context struct {
	ctx context.Context

	App         Identity
	CommandPath []string

	stdin    io.Reader
	stdout   *bufio.Writer
	stderr   *bufio.Writer
	commands []CommandInfo
	node     *schema.Node

	ext  map[string]any
	data map[string]string
}

// New builds a Context for one dispatch. Nil streams default to the
// process streams.
func New(ctx context.Context, app Identity, stdin io.Reader, stdout, stderr io.Writer) *Context {
	if ctx == nil {
		ctx = context.Background()
	}
	if stdin == nil {
		stdin = os.Stdin
	}
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}
	return &Context{
		ctx:    ctx,
		App:    app,
		stdin:  stdin,
		stdout: bufio.NewWriter(stdout),
		stderr: bufio.NewWriter(stderr),
		ext:    map[string]any{},
		data:   map[string]string{},
	}
}

// Context returns the context.Context the dispatch was started with.
func (c *Context) Context() context.Context { return c.ctx }

// Stdin returns the invocation's input stream.
func (c *Context) Stdin() io.Reader { return c.stdin }

// Stdout returns the buffered output stream for command output.
func (c *Context) Stdout() io.Writer { return c.stdout }

// Stderr returns the buffered stream for help, errors and diagnostics.
func (c *Context) Stderr() io.Writer { return c.stderr }

// Flush drains both buffered writers. The dispatcher calls this before
// returning; handlers may call it when interleaving with unbuffered
// output.
func (c *Context) Flush() {
	_ = c.stdout.Flush()
	_ = c.stderr.Flush()
}

// SetCommands installs the flat command enumeration.
func (c *Context) SetCommands(commands []CommandInfo) { c.commands = commands }

// Commands returns the flat list of available command paths.
func (c *Context) Commands() []CommandInfo { return c.commands }

// SetNode records the resolved command node for the dispatch.
func (c *Context) SetNode(node *schema.Node, path []string) {
	c.node = node
	c.CommandPath = path
}

// Node returns the resolved command node, or nil before resolution.
func (c *Context) Node() *schema.Node { return c.node }

// ArgFields reflects the current command's argument schema.
func (c *Context) ArgFields() []FieldInfo {
	if c.node == nil {
		return nil
	}
	out := make([]FieldInfo, 0, len(c.node.Args))
	for _, arg := range c.node.Args {
		out = append(out, FieldInfo{Name: arg.Name, Type: arg.Type.Display(), Description: arg.Description})
	}
	return out
}

// OptionFields reflects the current command's option schema.
func (c *Context) OptionFields() []FieldInfo {
	if c.node == nil {
		return nil
	}
	out := make([]FieldInfo, 0, len(c.node.Options))
	for _, opt := range c.node.Options {
		out = append(out, FieldInfo{Name: opt.Long, Type: opt.Type.Display(), Description: opt.Description})
	}
	return out
}

// Set stores a string value in the cross-hook store. Later hooks observe
// values written by earlier ones.
func (c *Context) Set(key, value string) { c.data[key] = value }

// Get returns a value from the cross-hook string store.
func (c *Context) Get(key string) (string, bool) {
	v, ok := c.data[key]
	return v, ok
}

// SetExt registers a plugin extension under its plugin's name.
func (c *Context) SetExt(name string, ext any) { c.ext[name] = ext }

// Ext returns the extension registered under name, or nil.
func (c *Context) Ext(name string) any { return c.ext[name] }
