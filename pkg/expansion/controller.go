// Package expansion keeps the set of open menu nodes in line with the active
// note and with explicit expand/collapse gestures.
package expansion

import (
	"io"

	"github.com/sirupsen/logrus"

	"github.com/mattsolo1/grove-navtree/pkg/models"
	"github.com/mattsolo1/grove-navtree/pkg/tree"
)

// Controller owns the expanded id set. It is not safe for concurrent use.
type Controller struct {
	expanded []string
	logger   *logrus.Entry
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the entry used for debug logging of every operation.
func WithLogger(logger *logrus.Entry) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New creates a controller with nothing expanded.
func New(opts ...Option) *Controller {
	quiet := logrus.New()
	quiet.SetOutput(io.Discard)

	c := &Controller{
		expanded: []string{},
		logger:   logrus.NewEntry(quiet),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// OnActiveNoteChanged re-derives the expanded set from the active note. It
// runs on every active id change and on every dictionary replacement. A nil
// dictionary means the data is not loaded yet and leaves the state alone.
func (c *Controller) OnActiveNoteChanged(notes models.NoteDict, activeID string) {
	c.logger.WithFields(logrus.Fields{"ctx": "onActiveNoteChanged", "id": activeID}).Debug("enter")
	if notes == nil {
		return
	}

	if activeID == "" {
		c.expanded = []string{}
	} else {
		c.expanded = tree.ResolveAncestorChain(notes, activeID)
	}
	c.logger.WithFields(logrus.Fields{"ctx": "onActiveNoteChanged", "expanded": c.expanded}).Debug("exit")
}

// OnToggle handles an expand/collapse gesture on targetID. Collapsing keeps
// the target's ancestors open; expanding opens the target and every ancestor.
// An empty dictionary or an unknown target is a no-op: an unknown note has no
// chain to open, so the current set is kept rather than cleared.
func (c *Controller) OnToggle(notes models.NoteDict, targetID string) {
	c.logger.WithFields(logrus.Fields{"ctx": "onToggle", "id": targetID}).Debug("enter")
	if len(notes) == 0 {
		return
	}

	chain := tree.ResolveAncestorChain(notes, targetID)
	if len(chain) == 0 {
		return
	}

	if c.IsExpanded(targetID) {
		c.expanded = chain[:len(chain)-1]
	} else {
		c.expanded = chain
	}
	c.logger.WithFields(logrus.Fields{"ctx": "onToggle", "expanded": c.expanded}).Debug("exit")
}

// OnSelect records a selection gesture. Selection is navigation: the new
// active note comes back through OnActiveNoteChanged, so the expanded set is
// not touched here.
func (c *Controller) OnSelect(targetID string) {
	c.logger.WithFields(logrus.Fields{"ctx": "onSelect", "id": targetID}).Debug("select")
}

// IsExpanded reports whether id is in the stored expanded set.
func (c *Controller) IsExpanded(id string) bool {
	for _, e := range c.expanded {
		if e == id {
			return true
		}
	}
	return false
}

// Stored returns a copy of the expanded set as last computed.
func (c *Controller) Stored() []string {
	out := make([]string, len(c.expanded))
	copy(out, c.expanded)
	return out
}

// Expanded returns the set to present to the renderer: the stored set with
// activeID appended when it is missing. The stored set is not modified.
func (c *Controller) Expanded(activeID string) []string {
	out := make([]string, 0, len(c.expanded)+1)
	out = append(out, c.expanded...)
	if activeID != "" && !c.IsExpanded(activeID) {
		out = append(out, activeID)
	}
	return out
}
