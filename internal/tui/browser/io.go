package browser

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mattsolo1/grove-navtree/pkg/models"
	"github.com/mattsolo1/grove-navtree/pkg/service"
	"github.com/mattsolo1/grove-navtree/pkg/vault"
)

type notesLoadedMsg struct {
	data *models.NoteData
	err  error
}

// routeChangedMsg reports that navigation moved to a new note.
type routeChangedMsg struct {
	noteID string
}

// vaultChangedMsg is sent when the watcher sees notes change on disk.
type vaultChangedMsg struct{}

type watchErrorMsg struct {
	err error
}

func loadNotesCmd(svc *service.Service) tea.Cmd {
	return func() tea.Msg {
		data, err := svc.LoadNoteData()
		return notesLoadedMsg{data: data, err: err}
	}
}

func navigateCmd(noteID string) tea.Cmd {
	return func() tea.Msg {
		return routeChangedMsg{noteID: noteID}
	}
}

// waitForVaultChangeCmd blocks until the watcher fires. It returns nil when
// there is no watcher or it has been closed.
func waitForVaultChangeCmd(w *vault.Watcher) tea.Cmd {
	if w == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case _, ok := <-w.Reload():
			if !ok {
				return nil
			}
			return vaultChangedMsg{}
		case err, ok := <-w.Errors():
			if !ok {
				return nil
			}
			return watchErrorMsg{err: err}
		}
	}
}
