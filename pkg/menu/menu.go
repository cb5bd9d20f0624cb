// Package menu is the note tree menu: it combines loaded note data, the
// current route and the expansion controller into a view the renderer reads.
package menu

import (
	"io"

	"github.com/sirupsen/logrus"

	"github.com/mattsolo1/grove-navtree/pkg/expansion"
	"github.com/mattsolo1/grove-navtree/pkg/models"
	"github.com/mattsolo1/grove-navtree/pkg/tree"
)

// SelectFunc is called with the id of a selected note. It is the hand-off to
// whatever performs navigation.
type SelectFunc func(noteID string)

// Menu holds the state of one tree menu. Every mutating method recomputes the
// expansion before returning, so View never mixes old data with a new route.
// Not safe for concurrent use.
type Menu struct {
	data       *models.NoteData
	roots      []*tree.Node
	queryID    string
	collapsed  bool
	selectNote SelectFunc

	controller       *expansion.Controller
	treeOptions      tree.BuildOptions
	collapseOnSelect bool
	logger           *logrus.Entry
}

// Option configures a Menu.
type Option func(*Menu)

// WithLogger sets the logger for the menu and its expansion controller.
func WithLogger(logger *logrus.Entry) Option {
	return func(m *Menu) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithTreeOptions overrides how notes are turned into menu nodes.
func WithTreeOptions(opts tree.BuildOptions) Option {
	return func(m *Menu) {
		m.treeOptions = opts
	}
}

// WithCollapseOnSelect sets whether Select folds the menu away. It does by
// default.
func WithCollapseOnSelect(collapse bool) Option {
	return func(m *Menu) {
		m.collapseOnSelect = collapse
	}
}

// New creates an empty menu. selectNote may be nil.
func New(selectNote SelectFunc, opts ...Option) *Menu {
	quiet := logrus.New()
	quiet.SetOutput(io.Discard)

	m := &Menu{
		selectNote:       selectNote,
		treeOptions:      tree.DefaultBuildOptions(),
		collapseOnSelect: true,
		logger:           logrus.NewEntry(quiet),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.controller = expansion.New(expansion.WithLogger(m.logger.WithField("component", "expansion")))
	return m
}

// SetData replaces the note data wholesale and re-derives the expansion for
// the current route.
func (m *Menu) SetData(data *models.NoteData) {
	m.data = data
	m.roots = tree.BuildRoots(data, m.treeOptions)
	m.logger.WithField("domains", len(m.roots)).Debug("note data replaced")
	m.refresh()
}

// SetRoute sets the note id requested by the router. An empty id falls back
// to the vault's home note.
func (m *Menu) SetRoute(queryID string) {
	if queryID == m.queryID {
		return
	}
	m.queryID = queryID
	m.refresh()
}

// ActiveNoteID returns the routed note id, or the home note when no route is
// set.
func (m *Menu) ActiveNoteID() string {
	if m.queryID != "" {
		return m.queryID
	}
	if m.data != nil {
		return m.data.NoteIndex
	}
	return ""
}

// Data returns the note data currently shown, or nil while unavailable.
func (m *Menu) Data() *models.NoteData {
	return m.data
}

// Toggle expands or collapses noteID.
func (m *Menu) Toggle(noteID string) {
	if !m.data.Verify() {
		return
	}
	m.controller.OnToggle(m.data.Notes, noteID)
}

// Select collapses the menu and hands noteID to the navigation callback.
func (m *Menu) Select(noteID string) {
	if m.collapseOnSelect {
		m.collapsed = true
	}
	m.controller.OnSelect(noteID)
	if m.selectNote != nil {
		m.selectNote(noteID)
	}
}

// SetCollapsed sets whether the whole menu is folded away.
func (m *Menu) SetCollapsed(collapsed bool) {
	m.collapsed = collapsed
}

// Collapsed reports whether the whole menu is folded away.
func (m *Menu) Collapsed() bool {
	return m.collapsed
}

func (m *Menu) refresh() {
	if !m.data.Verify() {
		return
	}
	m.controller.OnActiveNoteChanged(m.data.Notes, m.ActiveNoteID())
}

// View is a snapshot of everything the renderer needs.
type View struct {
	// Available is false until note data has been loaded; the renderer shows
	// a placeholder instead of the tree.
	Available bool

	Roots        []*tree.Node
	OpenKeys     []string
	SelectedKeys []string
	ActiveNote   string
	Collapsed    bool
}

// View returns the current snapshot. While the menu is collapsed no node is
// open or selected.
func (m *Menu) View() View {
	if !m.data.Verify() {
		return View{}
	}

	active := m.ActiveNoteID()
	v := View{
		Available:  true,
		Roots:      m.roots,
		ActiveNote: active,
		Collapsed:  m.collapsed,
	}
	if !m.collapsed {
		keys := m.controller.Expanded(active)
		v.OpenKeys = keys
		v.SelectedKeys = append([]string(nil), keys...)
	}
	return v
}

// IsOpen reports whether the node with id is shown expanded.
func (v View) IsOpen(id string) bool {
	return contains(v.OpenKeys, id)
}

// IsSelected reports whether the node with id is highlighted as selected.
func (v View) IsSelected(id string) bool {
	return contains(v.SelectedKeys, id)
}

func contains(ids []string, id string) bool {
	for _, x := range ids {
		if x == id {
			return true
		}
	}
	return false
}
