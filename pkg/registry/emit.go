// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package registry

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/tfctl/clikit/pkg/schema"
)

// Entry is one row of an emitted static dispatch table.
type Entry struct {
	Path        string
	Description string
	Leaf        bool
	Args        []schema.Arg
	Options     []schema.Option
}

// Entries flattens the registry into emitted-table rows, in enumeration
// order. The registry's own walk order is deterministic, so the emitted
// source is byte-identical across runs for the same registry.
func (r *Registry) Entries() []Entry {
	out := make([]Entry, 0, len(r.paths))
	for _, p := range r.paths {
		node := r.Lookup(p.Segments)
		out = append(out, Entry{
			Path:        p.Display(),
			Description: p.Description,
			Leaf:        p.Leaf,
			Args:        node.Args,
			Options:     node.Options,
		})
	}
	return out
}

var sourceTemplate = template.Must(template.New("registry").Funcs(template.FuncMap{
	"quote":  func(v any) string { return fmt.Sprintf("%q", v) },
	"lit":    literal,
	"notnil": func(v any) bool { return v != nil },
	"rune": func(r rune) string {
		if r == 0 {
			return "0"
		}
		return fmt.Sprintf("%q", r)
	},
}).Parse(`// Code generated by clikit gen. DO NOT EDIT.

package {{.Package}}

import (
	"github.com/tfctl/clikit/pkg/registry"
{{- if .NeedsSchema}}
	"github.com/tfctl/clikit/pkg/schema"
{{- end}}
)

// Table is the static dispatch table for {{.App}}.
var Table = []registry.Entry{
{{- range .Entries}}
	{
		Path:        {{quote .Path}},
		Description: {{quote .Description}},
		Leaf:        {{.Leaf}},
{{- if .Args}}
		Args: []schema.Arg{
{{- range .Args}}
			{Name: {{quote .Name}}, Type: schema.ValueType{Kind: {{quote .Type.Kind}}{{if .Type.Bits}}, Bits: {{.Type.Bits}}{{end}}{{if .Type.Labels}}, Labels: {{lit .Type.Labels}}{{end}}}, Required: {{.Required}}, Variadic: {{.Variadic}}, Description: {{quote .Description}}},
{{- end}}
		},
{{- end}}
{{- if .Options}}
		Options: []schema.Option{
{{- range .Options}}
			{Long: {{quote .Long}}, Short: {{rune .Short}}, Type: schema.ValueType{Kind: {{quote .Type.Kind}}{{if .Type.Bits}}, Bits: {{.Type.Bits}}{{end}}{{if .Type.Labels}}, Labels: {{lit .Type.Labels}}{{end}}}, {{if notnil .Default}}Default: {{lit .Default}}, {{end}}TakesValue: {{.TakesValue}}, Description: {{quote .Description}}},
{{- end}}
		},
{{- end}}
	},
{{- end}}
}
`))

// EmitSource renders the registry as a generated Go source file
// declaring the static dispatch table, for embedding in applications
// that want a compile-time-addressable registry.
func (r *Registry) EmitSource(pkg, app string) ([]byte, error) {
	entries := r.Entries()
	needsSchema := false
	for _, entry := range entries {
		if len(entry.Args) > 0 || len(entry.Options) > 0 {
			needsSchema = true
			break
		}
	}

	var buf bytes.Buffer
	err := sourceTemplate.Execute(&buf, struct {
		Package     string
		App         string
		NeedsSchema bool
		Entries     []Entry
	}{Package: pkg, App: app, NeedsSchema: needsSchema, Entries: entries})
	if err != nil {
		return nil, fmt.Errorf("emitting registry source: %w", err)
	}
	return buf.Bytes(), nil
}

// literal renders a value as Go source.
func literal(v any) string {
	switch val := v.(type) {
	case nil:
		return "nil"
	case string:
		return fmt.Sprintf("%q", val)
	case []string:
		var buf bytes.Buffer
		buf.WriteString("[]string{")
		for i, s := range val {
			if i > 0 {
				buf.WriteString(", ")
			}
			fmt.Fprintf(&buf, "%q", s)
		}
		buf.WriteString("}")
		return buf.String()
	case []any:
		var buf bytes.Buffer
		buf.WriteString("[]string{")
		for i, item := range val {
			if i > 0 {
				buf.WriteString(", ")
			}
			fmt.Fprintf(&buf, "%q", fmt.Sprint(item))
		}
		buf.WriteString("}")
		return buf.String()
	default:
		return fmt.Sprintf("%#v", val)
	}
}
