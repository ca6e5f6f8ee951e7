package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/idilsaglam/wyw/internal/model"
)

func (m Model) View() string {
	done, pending := m.store.Stats()
	counts := fmt.Sprintf("%s %d  %s %d  %s %d",
		successStyle.Render("✔"), done,
		pendingStyle.Render("•"), pending,
		accentStyle.Render("Total"), m.store.Len(),
	)

	sections := []string{
		m.headline.View() + "   " + counts,
		"",
		m.addLine(),
		m.searchLine(),
		"",
		m.vp.View(),
		m.statusLine(),
		m.helpLine(),
	}
	return panelStyle.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (m Model) addLine() string {
	if m.mode == modeEdit {
		return titleStyle.Render("Edit item") + " " + m.edit.View()
	}
	return m.add.View()
}

func (m Model) searchLine() string {
	if m.mode == modeSearch || m.store.Search() != "" {
		return m.search.View()
	}
	return mutedStyle.Render("/ search")
}

func (m Model) statusLine() string {
	shown, matching := len(m.store.View()), len(m.store.Matching())
	status := fmt.Sprintf("showing %d of %d", shown, matching)
	if m.store.Search() != "" {
		status += fmt.Sprintf(" matching %q", m.store.Search())
	}
	if m.mode == modeMove {
		status += "  " + grabbedStyle.Render("moving: ↑/↓ to choose, enter to drop")
	}
	return helpStyle.Render(status)
}

func (m Model) helpLine() string {
	switch m.mode {
	case modeAdd, modeEdit, modeSearch, modeMove:
		return m.help.View(inputKeys{confirm: m.keys.Confirm, cancel: m.keys.Cancel})
	}
	return m.help.View(m.keys)
}

func (m Model) renderRows() string {
	rows := m.store.View()
	if len(rows) == 0 {
		if m.store.Search() != "" {
			return mutedStyle.Render("  nothing matches")
		}
		return mutedStyle.Render("  nothing yet, press a to add")
	}

	lines := make([]string, 0, len(rows))
	for i, it := range rows {
		lines = append(lines, m.renderRow(i, it))
	}
	return strings.Join(lines, "\n")
}

// rowBreaks flattens multi-line texts; every row is one viewport line.
var rowBreaks = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

const editingMark = " (editing)"

func (m Model) renderRow(i int, it model.Item) string {
	editing := m.mode == modeEdit && i == m.cursor

	// prefix, box and space take four columns
	room := m.vp.Width - 4
	if editing {
		room -= len(editingMark)
	}
	text := ansi.Truncate(rowBreaks.Replace(it.Text), max(room, 1), "…")

	box := mutedStyle.Render(boxUnchecked)
	if it.Completed {
		box = successStyle.Render(boxChecked)
		text = doneStyle.Render(text)
	}

	prefix := "  "
	switch {
	case m.mode == modeMove && i == m.grabbed:
		prefix = grabbedStyle.Render("≡ ")
	case i == m.cursor && m.mode == modeMove:
		prefix = grabbedStyle.Render("→ ")
	case i == m.cursor:
		prefix = selectedStyle.Render("> ")
	}
	if editing {
		text = mutedStyle.Render(text + editingMark)
	}
	return fmt.Sprintf("%s%s %s", prefix, box, text)
}
