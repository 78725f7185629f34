// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package completion

import (
	"fmt"
	"strings"

	"github.com/tfctl/clikit/pkg/registry"
	"github.com/tfctl/clikit/pkg/schema"
)

// Bash emits the bash completion script: a word-indexed case tree per
// depth, option word lists at leaves and directory-style file
// completion as the catch-all.
func Bash(reg *registry.Registry, app string) string {
	var b strings.Builder
	fn := "_" + sanitize(app)

	fmt.Fprintf(&b, "# bash completion for %s\n", app)
	b.WriteString("# Fallback if bash-completion is not installed\n")
	b.WriteString("if ! declare -F _get_comp_words_by_ref >/dev/null 2>&1; then\n")
	b.WriteString("  _get_comp_words_by_ref() {\n")
	b.WriteString("    cur=${COMP_WORDS[COMP_CWORD]}\n")
	b.WriteString("    prev=${COMP_WORDS[COMP_CWORD-1]}\n")
	b.WriteString("  }\n")
	b.WriteString("fi\n\n")

	fmt.Fprintf(&b, "%s()\n{\n", fn)
	b.WriteString("    local cur prev\n")
	b.WriteString("    COMPREPLY=()\n")
	b.WriteString("    _get_comp_words_by_ref -n : cur prev\n\n")

	root := reg.Root()
	globals := reg.GlobalOptions()

	// Top-level candidates: subcommands plus global and root-local
	// option spellings.
	top := append(childNames(root), optionWords(root, globals)...)
	b.WriteString("    if [[ ${COMP_CWORD} -eq 1 ]]; then\n")
	fmt.Fprintf(&b, "        COMPREPLY=( $(compgen -W \"%s\" -- \"$cur\") )\n", strings.Join(top, " "))
	b.WriteString("        return 0\n")
	b.WriteString("    fi\n\n")

	bashNode(&b, root, globals, 1, "    ")

	b.WriteString("\n    COMPREPLY=( $(compgen -o default -- \"$cur\") )\n")
	b.WriteString("    return 0\n")
	b.WriteString("}\n\n")
	fmt.Fprintf(&b, "complete -F %s %s\n", fn, app)
	return b.String()
}

// bashNode emits the case tree selecting on the word at the given
// depth. Group arms recurse one level deeper; leaf arms offer the
// node's options.
func bashNode(b *strings.Builder, node *schema.Node, globals []schema.Option, depth int, indent string) {
	children := node.Children()
	if len(children) == 0 {
		return
	}

	fmt.Fprintf(b, "%scase \"${COMP_WORDS[%d]}\" in\n", indent, depth)
	for _, child := range children {
		fmt.Fprintf(b, "%s%s)\n", indent, child.Name)
		inner := indent + "    "
		if len(child.Children()) > 0 {
			// Offer this group's subcommands at the next word, then
			// descend for deeper words.
			fmt.Fprintf(b, "%sif [[ ${COMP_CWORD} -eq %d ]]; then\n", inner, depth+1)
			candidates := append(childNames(child), optionWords(child, globals)...)
			fmt.Fprintf(b, "%s    COMPREPLY=( $(compgen -W \"%s\" -- \"$cur\") )\n", inner, strings.Join(candidates, " "))
			fmt.Fprintf(b, "%s    return 0\n", inner)
			fmt.Fprintf(b, "%sfi\n", inner)
			bashNode(b, child, globals, depth+1, inner)
		} else {
			bashEnumValues(b, child, inner)
			fmt.Fprintf(b, "%sif [[ \"$cur\" == -* ]]; then\n", inner)
			fmt.Fprintf(b, "%s    COMPREPLY=( $(compgen -W \"%s\" -- \"$cur\") )\n", inner, strings.Join(optionWords(child, globals), " "))
			fmt.Fprintf(b, "%s    return 0\n", inner)
			fmt.Fprintf(b, "%sfi\n", inner)
		}
		fmt.Fprintf(b, "%s;;\n", inner)
	}
	fmt.Fprintf(b, "%sesac\n", indent)
}

// bashEnumValues offers an enumeration's labels when the previous word
// is the option that declares them.
func bashEnumValues(b *strings.Builder, node *schema.Node, indent string) {
	for _, opt := range sortedOptions(node.Options) {
		if opt.Type.Kind != schema.Enum {
			continue
		}
		cond := fmt.Sprintf("\"$prev\" == \"--%s\"", opt.Long)
		if opt.Short != 0 {
			cond += fmt.Sprintf(" || \"$prev\" == \"-%s\"", string(opt.Short))
		}
		fmt.Fprintf(b, "%sif [[ %s ]]; then\n", indent, cond)
		fmt.Fprintf(b, "%s    COMPREPLY=( $(compgen -W \"%s\" -- \"$cur\") )\n", indent, strings.Join(opt.Type.Labels, " "))
		fmt.Fprintf(b, "%s    return 0\n", indent)
		fmt.Fprintf(b, "%sfi\n", indent)
	}
}

// sanitize rewrites an app name into a legal bash identifier fragment.
func sanitize(app string) string {
	out := make([]rune, 0, len(app))
	for _, r := range app {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			out = append(out, r)
		default:
			out = append(out, '_')
		}
	}
	return string(out)
}
