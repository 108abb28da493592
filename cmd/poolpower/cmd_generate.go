package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"poolpower/internal/application"
	"poolpower/internal/config"
)

func newGenerateCmd() *cobra.Command {
	var (
		outputDir string
		syncFirst bool
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write the deals page as static files",
		Long: `generate renders index.html and style.css for a static host such as
GitHub Pages. Pool forms post to PUBLIC_BASE_URL, where "poolpower serve"
must be running.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApplication(cmd, func(ctx context.Context, cfg config.Config, app *application.Application) error {
				if syncFirst {
					if _, err := app.SyncNow(ctx); err != nil {
						return fmt.Errorf("app.SyncNow: %w", err)
					}
				}

				dir := outputDir
				if dir == "" {
					dir = cfg.Site.OutputDir
				}

				return app.Generate(ctx, dir)
			})
		},
	}

	cmd.Flags().StringVarP(&outputDir, "output", "o", "", "output directory (default SITE_OUTPUT_DIR)")
	cmd.Flags().BoolVar(&syncFirst, "sync", false, "import the sheet before rendering")

	return cmd
}
