package main

import (
	"context"

	"github.com/spf13/cobra"

	"poolpower/internal/application"
	"poolpower/internal/config"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the deals page, the JSON API and the catalog sync workers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApplication(cmd, func(ctx context.Context, _ config.Config, app *application.Application) error {
				return app.Serve(ctx)
			})
		},
	}
}
