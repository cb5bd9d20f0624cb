package browser

import (
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.SetSize(msg.Width, msg.Height)
		m.adjustScroll()
		return m, nil

	case notesLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			m.statusMessage = fmt.Sprintf("Error loading notes: %v", msg.err)
			return m, nil
		}
		m.err = nil
		m.menu.SetData(msg.data)
		m.refreshRows()
		m.jumpToActive()
		return m, nil

	case routeChangedMsg:
		m.menu.SetRoute(msg.noteID)
		m.refreshRows()
		m.jumpToActive()
		if data := m.menu.Data(); data != nil {
			if note := data.Notes.Get(msg.noteID); note != nil {
				m.statusMessage = fmt.Sprintf("Opened %s", note.Fname)
			}
		}
		return m, nil

	case vaultChangedMsg:
		m.logger.Debug("vault changed, reloading notes")
		return m, tea.Batch(loadNotesCmd(m.service), waitForVaultChangeCmd(m.watcher))

	case watchErrorMsg:
		m.statusMessage = fmt.Sprintf("Watch error: %v", msg.err)
		return m, waitForVaultChangeCmd(m.watcher)

	case editorFinishedMsg:
		if msg.err != nil {
			m.statusMessage = fmt.Sprintf("Editor error: %v", msg.err)
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Help overlay swallows everything but its own toggles
	if m.help.ShowAll {
		switch {
		case key.Matches(msg, m.keys.Help), key.Matches(msg, m.keys.Back):
			m.help.Toggle()
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		}
		return m, nil
	}

	m.statusMessage = ""

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.Toggle()

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
			m.adjustScroll()
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.rows)-1 {
			m.cursor++
			m.adjustScroll()
		}

	case key.Matches(msg, m.keys.PageUp):
		m.cursor -= m.getViewportHeight() / 2
		m.clampCursor()

	case key.Matches(msg, m.keys.PageDown):
		m.cursor += m.getViewportHeight() / 2
		m.clampCursor()

	case key.Matches(msg, m.keys.GoToTop):
		if m.lastKey == "g" {
			m.cursor = 0
			m.adjustScroll()
			m.lastKey = ""
			return m, nil
		}
		m.lastKey = "g"
		return m, nil

	case key.Matches(msg, m.keys.GoToBottom):
		if len(m.rows) > 0 {
			m.cursor = len(m.rows) - 1
			m.adjustScroll()
		}

	case key.Matches(msg, m.keys.JumpToActive):
		if !m.jumpToActive() {
			m.statusMessage = "Open note is not visible"
		}

	case key.Matches(msg, m.keys.Select):
		if row, ok := m.currentRow(); ok {
			m.menu.Select(row.Node.ID)
			m.refreshRows()
			if id := m.router.take(); id != "" {
				m.lastKey = ""
				return m, navigateCmd(id)
			}
		}

	case key.Matches(msg, m.keys.Toggle):
		if row, ok := m.currentRow(); ok && row.HasChildren {
			m.menu.Toggle(row.Node.ID)
			m.refreshRows()
		}

	case key.Matches(msg, m.keys.Expand):
		if row, ok := m.currentRow(); ok && row.HasChildren && !row.Open {
			m.menu.Toggle(row.Node.ID)
			m.refreshRows()
		}

	case key.Matches(msg, m.keys.Collapse):
		m.collapseOrAscend()

	case key.Matches(msg, m.keys.ToggleMenu):
		m.menu.SetCollapsed(!m.menu.Collapsed())
		m.refreshRows()

	case key.Matches(msg, m.keys.Reload):
		m.statusMessage = "Reloading..."
		m.lastKey = ""
		return m, loadNotesCmd(m.service)

	case key.Matches(msg, m.keys.Edit):
		row, ok := m.currentRow()
		if !ok {
			break
		}
		note := m.menu.Data().Notes.Get(row.Node.ID)
		if note == nil || note.Stub {
			m.statusMessage = "Stub notes have no file to edit"
			break
		}
		m.lastKey = ""
		return m, m.openInEditor(filepath.Join(m.service.Config.VaultDir, note.Fname+".md"))
	}

	// Reset lastKey for any other key press (for gg detection)
	m.lastKey = ""
	return m, nil
}

// collapseOrAscend closes an open node, or moves the cursor to the parent row
// of a closed one.
func (m *Model) collapseOrAscend() {
	row, ok := m.currentRow()
	if !ok {
		return
	}
	if row.HasChildren && row.Open {
		m.menu.Toggle(row.Node.ID)
		m.refreshRows()
		return
	}
	for i := m.cursor - 1; i >= 0; i-- {
		if m.rows[i].Depth < row.Depth {
			m.cursor = i
			m.adjustScroll()
			return
		}
	}
}

// getViewportHeight calculates how many lines are available for the tree.
func (m *Model) getViewportHeight() int {
	// Account for:
	// - Header: 1 line
	// - Blank line after header: 1 line
	// - Blank line before footer: 1 line
	// - Status bar: 1 line
	// - Footer (help): 1 line
	// - Scroll indicator (when shown): 2 lines (blank + indicator)
	const fixedLines = 7
	availableHeight := m.height - fixedLines
	if availableHeight < 1 {
		return 1
	}
	return availableHeight
}

// adjustScroll ensures the cursor is visible in the viewport.
func (m *Model) adjustScroll() {
	viewportHeight := m.getViewportHeight()
	if m.cursor < m.scrollOffset {
		m.scrollOffset = m.cursor
	} else if m.cursor >= m.scrollOffset+viewportHeight {
		m.scrollOffset = m.cursor - viewportHeight + 1
	}
	if m.scrollOffset < 0 {
		m.scrollOffset = 0
	}
}
