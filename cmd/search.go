package cmd

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mattsolo1/grove-navtree/pkg/service"
)

// NewSearchCmd creates the `navtree search` command.
func NewSearchCmd(svc **service.Service) *cobra.Command {
	var (
		searchLimit int
		jsonOutput  bool
	)

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search note titles in the index",
		Long: `Search note titles and fnames in the index. Run 'navtree index' first.

Examples:
  navtree search go           # Notes whose title or fname mentions go
  navtree search "daily" -n 5 # At most five results`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := *svc
			query := strings.Join(args, " ")

			results, err := s.SearchTitles(query, searchLimit)
			if err != nil {
				return err
			}

			if jsonOutput {
				entries := make([]chainEntry, 0, len(results))
				for _, n := range results {
					entries = append(entries, chainEntry{ID: n.ID, Fname: n.Fname, Title: n.Title})
				}
				out, err := json.MarshalIndent(entries, "", "  ")
				if err != nil {
					return fmt.Errorf("marshal results: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(out))
				return nil
			}

			if len(results) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No results found")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			for _, n := range results {
				fmt.Fprintf(w, "%s\t%s\n", n.Fname, n.Title)
			}
			return w.Flush()
		},
	}

	cmd.Flags().IntVarP(&searchLimit, "limit", "n", 50, "Maximum results")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output results as JSON")

	return cmd
}
