package browser

import (
	"os"
	"os/exec"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattsolo1/grove-core/tui/components/help"
	"github.com/sirupsen/logrus"

	"github.com/mattsolo1/grove-navtree/pkg/menu"
	"github.com/mattsolo1/grove-navtree/pkg/service"
	"github.com/mattsolo1/grove-navtree/pkg/tree"
	"github.com/mattsolo1/grove-navtree/pkg/vault"
)

// Options configures the browser.
type Options struct {
	// Route is the note id to open first; empty opens the vault's home note.
	Route string
	// Watcher, when set, reloads the notes whenever the vault changes.
	Watcher *vault.Watcher
	// CollapseOnSelect folds the menu after a note is opened.
	CollapseOnSelect bool
	// ShowVaultName prefixes titles with the vault name.
	ShowVaultName bool
	Logger        *logrus.Entry
}

// router receives selections from the menu. The model is copied on every
// update, so the pending selection lives behind a pointer.
type router struct {
	pending string
}

func (r *router) navigate(noteID string) {
	r.pending = noteID
}

func (r *router) take() string {
	id := r.pending
	r.pending = ""
	return id
}

// Model is the bubbletea model for the note tree browser
type Model struct {
	service *service.Service
	menu    *menu.Menu
	router  *router
	watcher *vault.Watcher
	logger  *logrus.Entry

	rows         []menu.Row
	cursor       int
	scrollOffset int
	keys         KeyMap
	help         help.Model
	width        int
	height       int
	lastKey      string // For detecting 'gg'

	statusMessage string
	err           error
}

// New creates a new browser model.
func New(svc *service.Service, opts Options) Model {
	helpModel := help.NewBuilder().
		WithKeys(keys).
		WithTitle("Note Tree - Help").
		Build()

	logger := opts.Logger
	if logger == nil {
		logger = svc.Logger
	}

	treeOpts := tree.DefaultBuildOptions()
	treeOpts.ShowVaultName = opts.ShowVaultName

	r := &router{}
	m := menu.New(r.navigate,
		menu.WithLogger(logger.WithField("component", "menu")),
		menu.WithTreeOptions(treeOpts),
		menu.WithCollapseOnSelect(opts.CollapseOnSelect),
	)
	m.SetRoute(opts.Route)

	return Model{
		service: svc,
		menu:    m,
		router:  r,
		watcher: opts.Watcher,
		logger:  logger,
		keys:    keys,
		help:    helpModel,
	}
}

// Init loads the notes and starts listening for vault changes.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		loadNotesCmd(m.service),
		waitForVaultChangeCmd(m.watcher),
	)
}

// Route returns the id of the note currently open.
func (m Model) Route() string {
	return m.menu.ActiveNoteID()
}

// refreshRows re-flattens the menu and keeps the cursor on the same note when
// it is still visible.
func (m *Model) refreshRows() {
	var currentID string
	if m.cursor >= 0 && m.cursor < len(m.rows) {
		currentID = m.rows[m.cursor].Node.ID
	}

	m.rows = menu.Flatten(m.menu.View())

	if currentID != "" {
		for i, row := range m.rows {
			if row.Node.ID == currentID {
				m.cursor = i
				m.adjustScroll()
				return
			}
		}
	}
	m.clampCursor()
}

// jumpToActive moves the cursor to the open note's row. When that row is
// hidden it lands on the deepest visible ancestor instead.
func (m *Model) jumpToActive() bool {
	data := m.menu.Data()
	if data == nil {
		return false
	}
	active := m.menu.ActiveNoteID()
	target := -1
	for i, row := range m.rows {
		if row.Active {
			target = i
			break
		}
		if tree.IsAncestor(data.Notes, row.Node.ID, active) {
			target = i
		}
	}
	if target < 0 {
		return false
	}
	m.cursor = target
	m.adjustScroll()
	return m.rows[target].Active
}

func (m *Model) clampCursor() {
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.adjustScroll()
}

func (m Model) currentRow() (menu.Row, bool) {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return menu.Row{}, false
	}
	return m.rows[m.cursor], true
}

// editorFinishedMsg is sent when the editor closes
type editorFinishedMsg struct{ err error }

// openInEditor opens a note file in the configured editor
func (m Model) openInEditor(path string) tea.Cmd {
	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = "vim" // fallback
	}
	cmd := exec.Command(editor, path)
	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		return editorFinishedMsg{err: err}
	})
}
