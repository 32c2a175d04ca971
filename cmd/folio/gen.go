// cmd/folio/gen.go
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var genCmd = &cobra.Command{
	Use:   "gen",
	Short: "Generate the site from content",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintln(cmd.OutOrStdout(), headingStyle.Render("--- Generating site from content ---"))
		count, err := runFullBuild(cmd.Context(), true)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), successStyle.Render(fmt.Sprintf("✓ Generated %d pages.", count)))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(genCmd)
}
