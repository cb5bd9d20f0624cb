package menu

import "github.com/mattsolo1/grove-navtree/pkg/tree"

// Row is one visible line of the menu.
type Row struct {
	Node        *tree.Node
	Depth       int
	Open        bool
	HasChildren bool
	Active      bool
	// Selected marks rows on the path to the active note.
	Selected bool
}

// Flatten lists the visible rows of v depth first. Children are listed only
// under open nodes; a collapsed menu lists its roots alone.
func Flatten(v View) []Row {
	if !v.Available {
		return nil
	}
	var rows []Row
	for _, root := range v.Roots {
		rows = appendRows(rows, v, root, 0)
	}
	return rows
}

func appendRows(rows []Row, v View, n *tree.Node, depth int) []Row {
	open := !n.IsLeaf() && v.IsOpen(n.ID)
	rows = append(rows, Row{
		Node:        n,
		Depth:       depth,
		Open:        open,
		HasChildren: !n.IsLeaf(),
		Active:      n.ID == v.ActiveNote,
		Selected:    v.IsSelected(n.ID),
	})
	if !open || v.Collapsed {
		return rows
	}
	for _, child := range n.Children {
		rows = appendRows(rows, v, child, depth+1)
	}
	return rows
}
