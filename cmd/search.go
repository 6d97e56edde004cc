package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/okian/aeris/internal/adapters/cli"
	"github.com/okian/aeris/internal/domain/model"
)

var errNoSearchKey = errors.New(
	"Debes proporcionar al menos un parámetro de búsqueda (ej. --flight, --departure, --arrival)")

func newSearchCmd(env *runtimeEnv) *cobra.Command {
	var q model.FlightQuery

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Look up one flight and print a report",
		Example: `  aeris search --flight IBE6848
  aeris search --departure MAD --arrival JFK --date 2025-07-11`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			q = q.Normalize()
			if q.Flight == "" && q.Departure == "" && q.Arrival == "" {
				return errNoSearchKey
			}
			if err := q.Validate(); err != nil {
				return err
			}

			ctx := cmd.Context()
			svc, err := env.startService(ctx)
			if err != nil {
				return err
			}
			defer svc.Stop()

			return cli.RunSearch(ctx, svc, q, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&q.Flight, "flight", "", "flight IATA number (e.g. AA1)")
	cmd.Flags().StringVar(&q.Departure, "departure", "", "departure airport IATA code (e.g. JFK)")
	cmd.Flags().StringVar(&q.Arrival, "arrival", "", "arrival airport IATA code (e.g. LAX)")
	cmd.Flags().StringVar(&q.Date, "date", "", "flight date as YYYY-MM-DD (e.g. 2025-07-11)")
	return cmd
}
