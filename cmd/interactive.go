package main

import (
	"github.com/spf13/cobra"

	"github.com/okian/aeris/internal/adapters/cli"
)

func newInteractiveCmd(env *runtimeEnv) *cobra.Command {
	return &cobra.Command{
		Use:   "interactive",
		Short: "Guided search: pick a date and a search mode at the prompt",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			svc, err := env.startService(ctx)
			if err != nil {
				return err
			}
			defer svc.Stop()

			p := cli.New(svc,
				cli.WithInput(cmd.InOrStdin()),
				cli.WithOutput(cmd.OutOrStdout()),
				cli.WithLogger(env.log.Named("interactive")),
			)
			return p.Run(ctx)
		},
	}
}
