package tree

import "github.com/mattsolo1/grove-navtree/pkg/models"

// ResolveAncestorChain returns the ids from the root of noteID's hierarchy
// down to noteID itself. An unknown noteID yields an empty chain.
//
// The walk ends at a note without a parent or whose parent is not in notes.
// A parent that is already on the chain ends the walk as well, so malformed
// input returns a partial chain instead of looping.
func ResolveAncestorChain(notes models.NoteDict, noteID string) []string {
	if notes.Get(noteID) == nil {
		return []string{}
	}

	// Collected leaf first, reversed at the end.
	var chain []string
	seen := make(map[string]struct{})
	id := noteID
	for {
		note := notes.Get(id)
		if note == nil {
			break
		}
		if _, dup := seen[id]; dup {
			break
		}
		seen[id] = struct{}{}
		chain = append(chain, id)
		id = note.Parent
	}

	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain
}

// IsAncestor reports whether ancestorID is on the chain of noteID, noteID
// itself included.
func IsAncestor(notes models.NoteDict, ancestorID, noteID string) bool {
	for _, id := range ResolveAncestorChain(notes, noteID) {
		if id == ancestorID {
			return true
		}
	}
	return false
}
