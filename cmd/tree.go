package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mattsolo1/grove-navtree/pkg/menu"
	"github.com/mattsolo1/grove-navtree/pkg/service"
	"github.com/mattsolo1/grove-navtree/pkg/tree"
)

// NewTreeCmd creates the `navtree tree` command.
func NewTreeCmd(svc **service.Service) *cobra.Command {
	var (
		active          string
		collapsed       bool
		toggles         []string
		showVaultName   bool
		includeExcluded bool
	)

	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Print the note tree as the menu shows it",
		Long: `Print the note tree with the nodes on the path to the active note expanded.

Examples:
  navtree tree                         # Expand down to the vault's home note
  navtree tree --active lang.go        # Expand down to lang.go
  navtree tree --active lang.go --toggle lang
                                       # Then collapse lang again
  navtree tree --collapsed             # Show the folded menu`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := *svc

			data, err := s.LoadNoteData()
			if err != nil {
				return err
			}

			activeID, err := resolveRef(data, active)
			if err != nil {
				return err
			}

			opts := tree.DefaultBuildOptions()
			opts.ShowVaultName = showVaultName
			opts.ApplyNavExclude = !includeExcluded

			m := menu.New(nil,
				menu.WithLogger(s.Logger.WithField("component", "menu")),
				menu.WithTreeOptions(opts),
			)
			m.SetData(data)
			m.SetRoute(activeID)

			for _, ref := range toggles {
				id, err := resolveRef(data, ref)
				if err != nil {
					return fmt.Errorf("toggle: %w", err)
				}
				m.Toggle(id)
			}
			m.SetCollapsed(collapsed)

			rows := menu.Flatten(m.View())
			if len(rows) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No notes found")
				return nil
			}
			writeRows(cmd.OutOrStdout(), rows, isTerminal(cmd.OutOrStdout()))
			return nil
		},
	}

	cmd.Flags().StringVarP(&active, "active", "a", "", "Active note (id or fname); defaults to the home note")
	cmd.Flags().BoolVar(&collapsed, "collapsed", false, "Show the menu folded")
	cmd.Flags().StringArrayVarP(&toggles, "toggle", "t", nil, "Toggle a node after expanding to the active note (repeatable)")
	cmd.Flags().BoolVar(&showVaultName, "show-vault", false, "Prefix titles with the vault name")
	cmd.Flags().BoolVar(&includeExcluded, "include-excluded", false, "Include notes marked nav_exclude")

	return cmd
}
