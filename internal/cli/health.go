package cli

import (
	"errors"

	"github.com/spf13/cobra"
)

var errNoServer = errors.New("this command needs --server")

func newHealthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check server health",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cfg.Remote() {
				return errNoServer
			}

			var result HealthResult
			if err := NewClient(cfg.ServerURL).Get(cmd.Context(), "/api/v1/health", &result); err != nil {
				return err
			}

			newOutput(cmd).Print(result)
			return nil
		},
	}
}
