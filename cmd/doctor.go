package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mattsolo1/grove-navtree/pkg/service"
	"github.com/mattsolo1/grove-navtree/pkg/vault"
)

// NewDoctorCmd creates the `navtree doctor` command.
func NewDoctorCmd(svc **service.Service) *cobra.Command {
	var doctorFix bool

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check the vault for notes the tree cannot place cleanly",
		Long: `The doctor command checks the vault for common issues and can fix some
of them automatically.

Issues it can detect:
- Notes without a frontmatter id (fixable: the derived id is written out)
- Notes without a frontmatter title (fixable)
- Hierarchy levels that have no note file
- A missing root note`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := *svc
			out := cmd.OutOrStdout()
			opt := vault.WithVaultName(s.Config.VaultName)

			issues, err := vault.Check(s.Config.VaultDir, opt)
			if err != nil {
				return err
			}
			if len(issues) == 0 {
				fmt.Fprintln(out, "No issues found")
				return nil
			}

			fixable := 0
			for _, issue := range issues {
				fmt.Fprintf(out, "- %s\n", issue)
				if issue.Fixable {
					fixable++
				}
			}

			if fixable == 0 {
				return nil
			}
			if !doctorFix {
				fmt.Fprintf(out, "\n%d issue(s) can be fixed with --fix\n", fixable)
				return nil
			}

			fixed, err := vault.Fix(s.Config.VaultDir, opt)
			if err != nil {
				return err
			}
			s.Logger.WithField("files", fixed).Info("vault frontmatter fixed")
			fmt.Fprintf(out, "\nFixed %d note file(s)\n", fixed)
			return nil
		},
	}

	cmd.Flags().BoolVar(&doctorFix, "fix", false, "Automatically fix issues")

	return cmd
}
