// cmd/folio/catalog.go
package main

import (
	"fmt"

	"folio/internal/builder"
	"folio/internal/catalog"

	"github.com/spf13/cobra"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List the directories that would get a generated catalog page",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadSite()
		if err != nil {
			return err
		}
		app, err := builder.LoadPages(contentDir, cfg, logger, debug)
		if err != nil {
			return err
		}
		paths := catalog.Discover(app, cfg.Catalog.CatalogOptions())

		out := cmd.OutOrStdout()
		if len(paths) == 0 {
			fmt.Fprintln(out, successStyle.Render("✓ Every directory already has an index page."))
			return nil
		}
		for _, p := range paths {
			fmt.Fprintln(out, pathStyle.Render(p))
		}
		fmt.Fprintln(out, successStyle.Render(fmt.Sprintf("✓ %d catalog pages would be generated.", len(paths))))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(catalogCmd)
}
