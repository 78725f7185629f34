// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package schema

import (
	"fmt"
	"sort"
	"strings"
)

// Kind enumerates the value types an argument or option may declare.
type Kind string

const (
	Bool    Kind = "bool"
	Int     Kind = "int"
	Uint    Kind = "uint"
	Float   Kind = "float"
	String  Kind = "string"
	Enum    Kind = "enum"
	Strings Kind = "strings"
)

// ValueType is the declared type of an argument or option value. Bits is
// the numeric width (8/16/32/64, 0 meaning 64) and Labels the closed
// label set for enumerations.
type ValueType struct {
	Kind   Kind
	Bits   int
	Labels []string
}

// Display renders the type for help output and diagnostics.
func (t ValueType) Display() string {
	switch t.Kind {
	case Enum:
		return strings.Join(t.Labels, "|")
	case Int, Uint, Float:
		if t.Bits != 0 && t.Bits != 64 {
			return fmt.Sprintf("%s%d", t.Kind, t.Bits)
		}
		return string(t.Kind)
	default:
		return string(t.Kind)
	}
}

// Arg describes one positional argument.
type Arg struct {
	Name        string
	Type        ValueType
	Description string
	Required    bool
	Variadic    bool
}

// Option describes one named option. Short is 0 when no short form is
// claimed. TakesValue is false only for plain booleans.
type Option struct {
	Long        string
	Short       rune
	Type        ValueType
	Default     any
	TakesValue  bool
	Description string
}

// Metadata carries the descriptive fields of a command node.
type Metadata struct {
	Description string
	Usage       string
	Examples    []string
	Synonyms    []string
}

// Node is one entry in the command tree. The root has an empty Name.
// Nodes with HasHandler false are group nodes, dispatchable only through
// their children. MetadataOnly marks plugin-introduced groups that are
// allowed to remain childless.
type Node struct {
	Name         string
	Meta         Metadata
	Args         []Arg
	Options      []Option
	HasHandler   bool
	MetadataOnly bool
	SourceFile   string

	children map[string]*Node
}

// NewNode constructs an empty node with the given name.
func NewNode(name string) *Node {
	return &Node{Name: name, children: map[string]*Node{}}
}

// Child returns the named child node, or nil.
func (n *Node) Child(name string) *Node {
	if n.children == nil {
		return nil
	}
	return n.children[name]
}

// Children returns the child nodes sorted by name. The order is stable
// so registry enumeration and completion output are deterministic.
func (n *Node) Children() []*Node {
	names := make([]string, 0, len(n.children))
	for name := range n.children {
		names = append(names, name)
	}
	sort.Strings(names)
	out := make([]*Node, 0, len(names))
	for _, name := range names {
		out = append(out, n.children[name])
	}
	return out
}

// AddChild attaches child under its name. Sibling name collisions are
// reported by the caller (the loader or the plugin composer); AddChild itself
// refuses silently-overwriting an existing child.
func (n *Node) AddChild(child *Node) error {
	if n.children == nil {
		n.children = map[string]*Node{}
	}
	if _, exists := n.children[child.Name]; exists {
		return fmt.Errorf("child %q already exists", child.Name)
	}
	n.children[child.Name] = child
	return nil
}

// IsGroup reports whether the node is only dispatchable via subcommands.
func (n *Node) IsGroup() bool { return !n.HasHandler }

// Option returns the descriptor with the given long name, or nil.
func (n *Node) Option(long string) *Option {
	for i := range n.Options {
		if n.Options[i].Long == long {
			return &n.Options[i]
		}
	}
	return nil
}

// OptionByShort returns the descriptor claiming the given short
// character, or nil.
func (n *Node) OptionByShort(short rune) *Option {
	for i := range n.Options {
		if n.Options[i].Short == short {
			return &n.Options[i]
		}
	}
	return nil
}

// Variadic returns the trailing variadic argument descriptor, or nil.
func (n *Node) Variadic() *Arg {
	if len(n.Args) == 0 {
		return nil
	}
	last := &n.Args[len(n.Args)-1]
	if last.Variadic {
		return last
	}
	return nil
}
