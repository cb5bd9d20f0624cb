package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mattsolo1/grove-navtree/pkg/service"
)

// NewIndexCmd creates the `navtree index` command.
func NewIndexCmd(svc **service.Service) *cobra.Command {
	return &cobra.Command{
		Use:   "index",
		Short: "Rebuild the sqlite index of the vault",
		Long: `Scan the vault and rewrite the sqlite index used by --use-index and search.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := *svc
			count, err := s.RebuildIndex()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Indexed %d notes into %s\n", count, s.Config.IndexPath)
			return nil
		},
	}
}
