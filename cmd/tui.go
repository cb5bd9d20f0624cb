package cmd

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mattsolo1/grove-navtree/internal/tui/browser"
	"github.com/mattsolo1/grove-navtree/pkg/service"
	"github.com/mattsolo1/grove-navtree/pkg/vault"
)

// NewTuiCmd creates the `navtree tui` command.
func NewTuiCmd(svc **service.Service) *cobra.Command {
	var active string

	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Browse the note tree interactively",
		Long: `Launch an interactive Terminal User Interface for browsing the note tree.
Opening a note expands the tree down to it; tab folds and unfolds nodes.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Check for TTY
			if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
				return fmt.Errorf("TUI mode requires an interactive terminal")
			}

			s := *svc

			route := active
			if active != "" {
				data, err := s.LoadNoteData()
				if err != nil {
					return err
				}
				if route, err = resolveRef(data, active); err != nil {
					return err
				}
			}

			opts := browser.Options{
				Route:            route,
				CollapseOnSelect: viper.GetBool("tui.collapse_on_select"),
				ShowVaultName:    viper.GetBool("tui.show_vault_name"),
				Logger:           s.Logger.WithField("component", "tui"),
			}

			if viper.GetBool("tui.watch") {
				w, err := vault.Watch(s.Config.VaultDir, viper.GetDuration("tui.debounce"))
				if err != nil {
					return fmt.Errorf("watch vault: %w", err)
				}
				defer w.Close()
				opts.Watcher = w
			}

			model := browser.New(s, opts)
			p := tea.NewProgram(model, tea.WithAltScreen())

			if _, err := p.Run(); err != nil {
				return fmt.Errorf("error running TUI: %w", err)
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&active, "active", "a", "", "Note to open first (id or fname)")
	cmd.Flags().BoolP("watch", "w", false, "Reload the tree when vault files change")
	cobra.CheckErr(viper.BindPFlag("tui.watch", cmd.Flags().Lookup("watch")))

	return cmd
}
