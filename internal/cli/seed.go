package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tbourn/priority-radar/internal/repo"
)

func newSeedCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Work with seed datasets",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "check <file>",
		Short: "Validate a JSON or YAML seed file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := repo.LoadDataset(args[0])
			if err != nil {
				return err
			}
			if err := d.Validate(a.calendar()); err != nil {
				return fmt.Errorf("%s is invalid:\n%w", args[0], err)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (%d users, %d priorities, %d check-ins, %d requests)\n",
				args[0], len(d.Users), len(d.Priorities), len(d.CheckIns), len(d.FOIARequests))
			return err
		},
	})
	return cmd
}
