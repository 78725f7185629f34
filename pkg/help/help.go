// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package help renders app, group and command help from schemas and
// metadata. All help output goes to stderr; stdout stays reserved for
// command output.
package help

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/tfctl/clikit/pkg/clictx"
	"github.com/tfctl/clikit/pkg/registry"
	"github.com/tfctl/clikit/pkg/schema"
)

// optionColumn is the minimum width of the option/argument name column.
const optionColumn = 16

// Renderer renders help for one app over one registry.
type Renderer struct {
	App      clictx.Identity
	Registry *registry.Registry
	Color    bool
}

// New builds a renderer, enabling color only when stderr is a terminal
// and NO_COLOR is unset.
func New(app clictx.Identity, reg *registry.Registry) *Renderer {
	color := os.Getenv("NO_COLOR") == "" && term.IsTerminal(int(os.Stderr.Fd()))
	return &Renderer{App: app, Registry: reg, Color: color}
}

// styles returns the lipgloss styles for the renderer, plain when color
// is disabled.
func (r *Renderer) styles() (header, section, name lipgloss.Style) {
	if !r.Color {
		return lipgloss.NewStyle(), lipgloss.NewStyle(), lipgloss.NewStyle()
	}
	header = lipgloss.NewStyle().Bold(true)
	section = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	name = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	return
}

// Render writes help for the node at path. An empty path renders app
// help for the root. Group nodes list their children; leaves render
// their full schema.
func (r *Renderer) Render(w io.Writer, path []string) error {
	node := r.Registry.Lookup(path)
	if node == nil {
		return fmt.Errorf("no command at path %q", strings.Join(path, " "))
	}

	headerStyle, sectionStyle, nameStyle := r.styles()

	// Header: name/version/description.
	title := r.App.Name
	if r.App.Version != "" {
		title += " " + r.App.Version
	}
	fmt.Fprintln(w, headerStyle.Render(title))
	desc := node.Meta.Description
	if len(path) == 0 && r.App.Description != "" {
		desc = r.App.Description
	}
	if desc != "" {
		fmt.Fprintln(w, desc)
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "%s %s\n", sectionStyle.Render("Usage:"), r.usage(node, path))

	if len(node.Args) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, sectionStyle.Render("Arguments:"))
		for _, arg := range node.Args {
			writeRow(w, nameStyle.Render(pad(arg.Name)), describeArg(arg))
		}
	}

	if len(node.Options) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, sectionStyle.Render("Options:"))
		for _, opt := range sortedOptions(node.Options) {
			writeRow(w, nameStyle.Render(pad(optionLabel(opt))), describeOption(opt))
		}
	}

	if globals := r.Registry.GlobalOptions(); len(globals) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, sectionStyle.Render("Global Options:"))
		for _, opt := range sortedOptions(globals) {
			writeRow(w, nameStyle.Render(pad(optionLabel(opt))), describeOption(opt))
		}
	}

	if node.IsGroup() || len(node.Children()) > 0 {
		children := r.childEntries(node, path)
		if len(children) > 0 {
			fmt.Fprintln(w)
			fmt.Fprintln(w, sectionStyle.Render("Commands:"))
			for _, child := range children {
				writeRow(w, nameStyle.Render(pad(child.name)), child.description)
			}
		}
	}

	if len(node.Meta.Examples) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, sectionStyle.Render("Examples:"))
		for _, example := range node.Meta.Examples {
			fmt.Fprintf(w, "  %s\n", example)
		}
	}

	fmt.Fprintln(w)
	if len(node.Children()) > 0 {
		prefix := r.App.Name
		if len(path) > 0 {
			prefix += " " + strings.Join(path, " ")
		}
		fmt.Fprintf(w, "Use \"%s <command> --help\" for more information about a command.\n", prefix)
	}

	return nil
}

// usage synthesizes the usage line: required args in angle brackets,
// optional in square brackets, variadic suffixed with an ellipsis. A
// metadata usage override wins.
func (r *Renderer) usage(node *schema.Node, path []string) string {
	if node.Meta.Usage != "" {
		return node.Meta.Usage
	}

	parts := []string{r.App.Name}
	parts = append(parts, path...)
	if node.IsGroup() {
		parts = append(parts, "<command>")
	}
	for _, arg := range node.Args {
		switch {
		case arg.Variadic:
			parts = append(parts, fmt.Sprintf("[%s…]", arg.Name))
		case arg.Required:
			parts = append(parts, fmt.Sprintf("<%s>", arg.Name))
		default:
			parts = append(parts, fmt.Sprintf("[%s]", arg.Name))
		}
	}
	if len(node.Options) > 0 || len(r.Registry.GlobalOptions()) > 0 {
		parts = append(parts, "[options]")
	}
	return strings.Join(parts, " ")
}

type childEntry struct {
	name        string
	description string
	depth       int
}

// childEntries lists the node's children with descriptions taken from
// the flat command list, de-duplicated by display name with a
// preference for exact-depth descriptions.
func (r *Renderer) childEntries(node *schema.Node, path []string) []childEntry {
	depth := len(path) + 1
	byName := map[string]childEntry{}
	var order []string

	for _, p := range r.Registry.Paths() {
		if len(p.Segments) < depth || !hasPrefix(p.Segments, path) {
			continue
		}
		name := p.Segments[depth-1]
		entry := childEntry{name: name, description: p.Description, depth: len(p.Segments)}
		existing, seen := byName[name]
		if !seen {
			byName[name] = entry
			order = append(order, name)
			continue
		}
		// Prefer the description declared at exactly this depth.
		if existing.depth != depth && entry.depth == depth {
			byName[name] = entry
		}
	}

	out := make([]childEntry, 0, len(order))
	for _, name := range order {
		out = append(out, byName[name])
	}
	return out
}

func hasPrefix(segments, prefix []string) bool {
	if len(segments) < len(prefix) {
		return false
	}
	for i, p := range prefix {
		if segments[i] != p {
			return false
		}
	}
	return true
}

// optionLabel renders "--long, -s" (long first, short second).
func optionLabel(opt schema.Option) string {
	label := "--" + opt.Long
	if opt.Short != 0 {
		label += ", -" + string(opt.Short)
	}
	return label
}

func describeOption(opt schema.Option) string {
	desc := opt.Description
	if opt.Type.Kind == schema.Enum {
		desc = strings.TrimSpace(desc + " (" + opt.Type.Display() + ")")
	}
	if opt.Default != nil && opt.Type.Kind != schema.Bool {
		desc = strings.TrimSpace(fmt.Sprintf("%s (default: %v)", desc, opt.Default))
	}
	return desc
}

func describeArg(arg schema.Arg) string {
	desc := arg.Description
	if !arg.Required && !arg.Variadic {
		desc = strings.TrimSpace(desc + " (optional)")
	}
	return desc
}

func sortedOptions(opts []schema.Option) []schema.Option {
	out := append([]schema.Option{}, opts...)
	sort.Slice(out, func(i, j int) bool { return out[i].Long < out[j].Long })
	return out
}

// pad right-pads a label to the alignment column.
func pad(label string) string {
	if len(label) >= optionColumn {
		return label
	}
	return label + strings.Repeat(" ", optionColumn-len(label))
}

func writeRow(w io.Writer, label, description string) {
	if description == "" {
		fmt.Fprintf(w, "  %s\n", strings.TrimRight(label, " "))
		return
	}
	fmt.Fprintf(w, "  %s  %s\n", label, description)
}
