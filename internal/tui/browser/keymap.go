package browser

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/mattsolo1/grove-core/tui/keymap"
)

// KeyMap defines the keybindings for the note tree TUI
type KeyMap struct {
	keymap.Base
	PageUp       key.Binding
	PageDown     key.Binding
	GoToTop      key.Binding
	GoToBottom   key.Binding
	Select       key.Binding
	Toggle       key.Binding
	Expand       key.Binding
	Collapse     key.Binding
	ToggleMenu   key.Binding
	JumpToActive key.Binding
	Reload       key.Binding
	Edit         key.Binding
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Quit}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	baseHelp := k.Base.FullHelp()
	return append(baseHelp, []key.Binding{
		k.PageUp,
		k.PageDown,
		k.GoToTop,
		k.GoToBottom,
		k.JumpToActive,
	}, []key.Binding{
		k.Select,
		k.Toggle,
		k.Expand,
		k.Collapse,
		k.ToggleMenu,
		k.Reload,
		k.Edit,
	})
}

var keys = KeyMap{
	Base: keymap.NewBase(),
	PageUp: key.NewBinding(
		key.WithKeys("ctrl+u", "pgup"),
		key.WithHelp("ctrl+u", "page up"),
	),
	PageDown: key.NewBinding(
		key.WithKeys("ctrl+d", "pgdown"),
		key.WithHelp("ctrl+d", "page down"),
	),
	GoToTop: key.NewBinding(
		key.WithKeys("g"),
		key.WithHelp("gg", "go to top"),
	),
	GoToBottom: key.NewBinding(
		key.WithKeys("G"),
		key.WithHelp("G", "go to bottom"),
	),
	Select: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "open note"),
	),
	Toggle: key.NewBinding(
		key.WithKeys("tab", " "),
		key.WithHelp("tab/space", "expand/collapse"),
	),
	Expand: key.NewBinding(
		key.WithKeys("l", "right"),
		key.WithHelp("l", "expand"),
	),
	Collapse: key.NewBinding(
		key.WithKeys("h", "left"),
		key.WithHelp("h", "collapse / go to parent"),
	),
	ToggleMenu: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "fold/unfold menu"),
	),
	JumpToActive: key.NewBinding(
		key.WithKeys("."),
		key.WithHelp(".", "jump to open note"),
	),
	Reload: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reload vault"),
	),
	Edit: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "edit note in $EDITOR"),
	),
}
