package cli

import (
	"github.com/spf13/cobra"
)

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show games played, wins and losses",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := openSession(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = session.Close() }()

			totals, err := session.Statistics(cmd.Context())
			if err != nil {
				return err
			}

			newOutput(cmd).Print(totals)
			return nil
		},
	}
}
