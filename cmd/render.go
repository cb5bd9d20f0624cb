package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/mattsolo1/grove-core/tui/theme"

	"github.com/mattsolo1/grove-navtree/pkg/menu"
	"github.com/mattsolo1/grove-navtree/pkg/models"
	"github.com/mattsolo1/grove-navtree/pkg/service"
)

// writeRows prints menu rows one per line. The open note is marked with '*'
// and, on a terminal, highlighted.
func writeRows(w io.Writer, rows []menu.Row, styled bool) {
	for _, row := range rows {
		indicator := "  "
		if row.HasChildren {
			if row.Open {
				indicator = "▾ "
			} else {
				indicator = "▸ "
			}
		}

		title := row.Node.Title
		marker := ""
		if row.Active {
			marker = " *"
			if styled {
				title = theme.DefaultTheme.Highlight.Render(title)
			}
		}
		fmt.Fprintf(w, "%s%s%s%s\n", strings.Repeat("  ", row.Depth), indicator, title, marker)
	}
}

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// resolveRef maps a note reference (id or fname) to an id. An empty reference
// stays empty.
func resolveRef(data *models.NoteData, ref string) (string, error) {
	if ref == "" {
		return "", nil
	}
	note, err := service.ResolveNoteRef(data, ref)
	if err != nil {
		return "", err
	}
	return note.ID, nil
}
