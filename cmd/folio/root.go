// cmd/folio/root.go
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"folio/internal/builder"
	"folio/internal/config"
	"folio/internal/logging"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const (
	contentDir  = "content"
	templateDir = "templates"
	staticDir   = "static"
	outputDir   = "public"
)

var (
	debug      bool
	unsafe     bool
	configFile string

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "folio",
	Short: "A small static site generator with automatic directory catalogs",
	Long: `folio renders a tree of markdown pages into a static site. Directories
without a README or index page get a generated catalog page listing what is
beneath them.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load .env: %w", err)
		}
		logger = logging.New(debug)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable verbose logging, including every generated catalog path")
	rootCmd.PersistentFlags().BoolVar(&unsafe, "unsafe", false, "Disable HTML sanitization. Allows all raw HTML.")
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "site.yaml", "Site configuration file")
}

// Execute runs the root command.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, failureStyle.Render("✗ "+err.Error()))
		os.Exit(1)
	}
}

func buildOptions(clean bool) builder.BuildOptions {
	return builder.BuildOptions{
		CleanDestination: clean,
		Unsafe:           unsafe,
		Debug:            debug,
		Logger:           logger,
	}
}

func loadSite() (config.SiteConfig, error) {
	cfg, err := config.LoadSiteConfig(configFile)
	if err != nil {
		return config.SiteConfig{}, fmt.Errorf("failed to load site config: %w", err)
	}
	return cfg, nil
}

// runFullBuild loads config and templates fresh so that `serve` picks up
// edits to either.
func runFullBuild(ctx context.Context, clean bool) (int, error) {
	cfg, err := loadSite()
	if err != nil {
		return 0, err
	}
	tmpl, err := builder.LoadTemplates(templateDir, cfg.Template)
	if err != nil {
		return 0, fmt.Errorf("failed to load templates: %w", err)
	}
	count, err := builder.BuildSite(ctx, outputDir, contentDir, staticDir, cfg, tmpl, buildOptions(clean))
	if err != nil {
		return 0, fmt.Errorf("site generation failed: %w", err)
	}
	return count, nil
}
