package browser

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattsolo1/grove-core/tui/theme"

	"github.com/mattsolo1/grove-navtree/pkg/menu"
)

func (m Model) View() string {
	if !m.menu.View().Available {
		if m.err != nil {
			return lipgloss.NewStyle().Foreground(theme.DefaultTheme.Colors.Red).Render(m.statusMessage)
		}
		return "Loading..."
	}

	if m.help.ShowAll {
		return m.help.View()
	}

	header := theme.DefaultTheme.Header.Render("Notes")
	if m.service != nil {
		header += " " + theme.DefaultTheme.Muted.Render(shortenPath(m.service.Config.VaultDir))
	}
	if m.menu.Collapsed() {
		header += " " + theme.DefaultTheme.Info.Render("[folded]")
	}

	status := m.statusMessage
	if status == "" {
		if active := m.activeFname(); active != "" {
			status = theme.DefaultTheme.Muted.Render("open: " + active)
		}
	}

	fullView := lipgloss.JoinVertical(lipgloss.Left,
		header,
		"",
		m.renderTree(),
		"",
		status,
		m.help.View(),
	)
	return fullView
}

func (m Model) renderTree() string {
	if len(m.rows) == 0 {
		return theme.DefaultTheme.Muted.Render("No notes in this vault.")
	}

	var b strings.Builder

	viewportHeight := m.getViewportHeight()
	start := m.scrollOffset
	end := m.scrollOffset + viewportHeight
	if end > len(m.rows) {
		end = len(m.rows)
	}

	for i := start; i < end; i++ {
		b.WriteString(m.renderRow(m.rows[i], i == m.cursor))
		b.WriteString("\n")
	}

	if len(m.rows) > viewportHeight {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Faint(true).Render(fmt.Sprintf(" (%d-%d of %d)", start+1, end, len(m.rows))))
	}

	return strings.TrimRight(b.String(), "\n")
}

func (m Model) renderRow(row menu.Row, isCursor bool) string {
	cursor := "  "
	if isCursor {
		cursor = theme.DefaultTheme.Highlight.Render("▶ ")
	}

	indicator := "  "
	if row.HasChildren {
		if row.Open {
			indicator = "▼ "
		} else {
			indicator = "▸ "
		}
	}

	title := row.Node.Title
	switch {
	case row.Active:
		title = theme.DefaultTheme.Highlight.Render(title)
	case row.Selected:
		title = theme.DefaultTheme.Info.Render(title)
	}

	line := fmt.Sprintf("%s%s%s%s", cursor, strings.Repeat("  ", row.Depth), indicator, title)
	if isCursor {
		line = lipgloss.NewStyle().Bold(true).Render(line)
	}
	return line
}

func (m Model) activeFname() string {
	data := m.menu.Data()
	if data == nil {
		return ""
	}
	if note := data.Notes.Get(m.menu.ActiveNoteID()); note != nil {
		return note.Fname
	}
	return ""
}
