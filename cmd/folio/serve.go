// cmd/folio/serve.go
package main

import (
	"context"
	"fmt"

	"folio/internal/server"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run a local dev server with auto-rebuild",
	RunE: func(cmd *cobra.Command, args []string) error {
		build := func(ctx context.Context, clean bool) error {
			count, err := runFullBuild(ctx, clean)
			if err != nil {
				return err
			}
			logger.Info("Site built", zap.Int("pages", count))
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), headingStyle.Render("Press Ctrl+C to stop"))
		return server.Run(cmd.Context(), server.Config{
			Port:      servePort,
			OutputDir: outputDir,
			Watch:     []string{contentDir, templateDir, staticDir, configFile},
			Logger:    logger,
		}, build)
	},
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 1313, "Port for the local development server")
	rootCmd.AddCommand(serveCmd)
}
