// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package completions

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/tfctl/clikit/pkg/clictx"
)

// pickShell shows an interactive shell selector when stdin is a
// terminal. Returns "" when not interactive or the user quit.
func pickShell(ctx *clictx.Context, shells []string) string {
	stdin, ok := ctx.Stdin().(*os.File)
	if !ok || !term.IsTerminal(int(stdin.Fd())) {
		return ""
	}

	p := tea.NewProgram(pickerModel{items: shells})
	m, err := p.Run()
	if err != nil {
		return ""
	}
	return m.(pickerModel).selected
}

type pickerModel struct {
	items    []string
	cursor   int
	selected string
}

func (m pickerModel) Init() tea.Cmd { return nil }

func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "q", "esc", "ctrl+c":
			m.selected = ""
			return m, tea.Quit
		case "up":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down":
			if m.cursor < len(m.items)-1 {
				m.cursor++
			}
		case "enter":
			m.selected = m.items[m.cursor]
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m pickerModel) View() string {
	s := "Select a shell:\n\n"
	for i, shell := range m.items {
		cursor := " "
		if m.cursor == i {
			cursor = ">"
		}
		s += fmt.Sprintf("%s %s\n", cursor, shell)
	}
	return s + "\nENTER: select, Q/ESCAPE: quit\n"
}
