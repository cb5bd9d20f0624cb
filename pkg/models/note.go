package models

import "time"

// Note is a single node of a vault's hierarchy.
type Note struct {
	ID     string `json:"id"`
	Parent string `json:"parent,omitempty"` // Empty for a root note
	Title  string `json:"title"`
	Fname  string `json:"fname"` // Dotted hierarchy name, e.g. "lang.go.modules"
	Desc   string `json:"desc,omitempty"`
	Vault  string `json:"vault,omitempty"`

	// Children holds the ordered child ids. Only the rendering layer reads it.
	Children []string `json:"children,omitempty"`

	Stub       bool `json:"stub,omitempty"` // Synthesized for a hierarchy level with no file
	NavExclude bool `json:"nav_exclude,omitempty"`
	NavOrder   *int `json:"nav_order,omitempty"`

	Created time.Time `json:"created"`
	Updated time.Time `json:"updated"`
}

// IsRoot reports whether the note has no parent reference.
func (n *Note) IsRoot() bool {
	return n.Parent == ""
}

// NoteDict maps a note id to its note. It is replaced wholesale on reload and
// never mutated in place by consumers.
type NoteDict map[string]*Note

// Get returns the note with the given id, or nil.
func (d NoteDict) Get(id string) *Note {
	if d == nil || id == "" {
		return nil
	}
	return d[id]
}

// FindByFname returns the first note whose fname matches exactly.
func (d NoteDict) FindByFname(fname string) *Note {
	for _, n := range d {
		if n.Fname == fname {
			return n
		}
	}
	return nil
}

// NoteData is everything the tree menu needs from the data-loading side.
type NoteData struct {
	Notes     NoteDict
	Domains   []string // Ids of the notes shown as top-level menu entries
	NoteIndex string   // Id of the vault's home note
}

// Verify reports whether the data has been loaded. A nil receiver or a nil
// dictionary means the data is still unavailable.
func (d *NoteData) Verify() bool {
	return d != nil && d.Notes != nil
}
