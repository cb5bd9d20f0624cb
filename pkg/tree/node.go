package tree

import (
	"sort"

	"github.com/mattsolo1/grove-navtree/pkg/models"
)

// Node is a single entry of the rendered menu. Leaves have nil Children.
type Node struct {
	ID       string
	Title    string
	Children []*Node
}

// IsLeaf reports whether the node has nothing to expand.
func (n *Node) IsLeaf() bool {
	return len(n.Children) == 0
}

// BuildOptions controls how notes are turned into menu nodes.
type BuildOptions struct {
	ShowVaultName   bool // Prefix titles with "vault/"
	ApplyNavExclude bool // Drop notes marked nav_exclude together with their subtree
}

// DefaultBuildOptions matches what the navigation menu shows.
func DefaultBuildOptions() BuildOptions {
	return BuildOptions{ApplyNavExclude: true}
}

// BuildRoots builds one menu root per domain, in domain order. Domains that
// are missing from the dictionary or excluded from navigation are skipped.
func BuildRoots(data *models.NoteData, opts BuildOptions) []*Node {
	if !data.Verify() {
		return nil
	}
	var roots []*Node
	for _, id := range data.Domains {
		if root := buildNode(data.Notes, id, opts, map[string]bool{}); root != nil {
			roots = append(roots, root)
		}
	}
	return roots
}

// buildNode converts the note and its children. path holds the ids on the
// way down so a child list pointing back up is cut off.
func buildNode(notes models.NoteDict, id string, opts BuildOptions, path map[string]bool) *Node {
	note := notes.Get(id)
	if note == nil || path[id] {
		return nil
	}
	if opts.ApplyNavExclude && note.NavExclude {
		return nil
	}

	node := &Node{ID: note.ID, Title: title(note, opts)}

	path[id] = true
	defer delete(path, id)

	for _, child := range sortedChildren(notes, note) {
		if c := buildNode(notes, child.ID, opts, path); c != nil {
			node.Children = append(node.Children, c)
		}
	}
	return node
}

func title(note *models.Note, opts BuildOptions) string {
	t := note.Title
	if t == "" {
		t = note.Fname
	}
	if opts.ShowVaultName && note.Vault != "" {
		return note.Vault + "/" + t
	}
	return t
}

// sortedChildren resolves the child ids of note. Notes with a nav_order come
// first in ascending order, the rest follow by title and then id.
func sortedChildren(notes models.NoteDict, note *models.Note) []*models.Note {
	children := make([]*models.Note, 0, len(note.Children))
	for _, id := range note.Children {
		if child := notes.Get(id); child != nil {
			children = append(children, child)
		}
	}
	sort.SliceStable(children, func(i, j int) bool {
		a, b := children[i], children[j]
		switch {
		case a.NavOrder != nil && b.NavOrder != nil:
			if *a.NavOrder != *b.NavOrder {
				return *a.NavOrder < *b.NavOrder
			}
		case a.NavOrder != nil:
			return true
		case b.NavOrder != nil:
			return false
		}
		if a.Title != b.Title {
			return a.Title < b.Title
		}
		return a.ID < b.ID
	})
	return children
}
