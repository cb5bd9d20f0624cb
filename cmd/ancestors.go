package cmd

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mattsolo1/grove-navtree/pkg/service"
	"github.com/mattsolo1/grove-navtree/pkg/tree"
)

type chainEntry struct {
	ID    string `json:"id"`
	Fname string `json:"fname"`
	Title string `json:"title"`
	Stub  bool   `json:"stub,omitempty"`
}

// NewAncestorsCmd creates the `navtree ancestors` command.
func NewAncestorsCmd(svc **service.Service) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "ancestors <note>",
		Short: "Print the chain of notes from the root down to a note",
		Long: `Print the ancestor chain of a note, root first and the note itself last.
The note may be given by id or by fname.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := *svc

			data, err := s.LoadNoteData()
			if err != nil {
				return err
			}
			note, err := service.ResolveNoteRef(data, args[0])
			if err != nil {
				return err
			}

			chain := tree.ResolveAncestorChain(data.Notes, note.ID)
			entries := make([]chainEntry, 0, len(chain))
			for _, id := range chain {
				n := data.Notes.Get(id)
				entries = append(entries, chainEntry{ID: n.ID, Fname: n.Fname, Title: n.Title, Stub: n.Stub})
			}

			if jsonOutput {
				out, err := json.MarshalIndent(entries, "", "  ")
				if err != nil {
					return fmt.Errorf("marshal ancestors: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(out))
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			for _, e := range entries {
				fmt.Fprintf(w, "%s\t%s\n", e.ID, e.Fname)
			}
			return w.Flush()
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the chain as JSON")

	return cmd
}
