// cmd/folio/new.go
package main

import (
	"fmt"

	"folio/internal/scaffold"

	"github.com/spf13/cobra"
)

var newCmd = &cobra.Command{
	Use:   "new <kind> <title>",
	Short: "Create new content from the default archetype",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := scaffold.CreateNewContent(args[0], args[1], configFile)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), successStyle.Render("✓ Created: "+path))
		return nil
	},
}

var newSiteCmd = &cobra.Command{
	Use:   "site <name>",
	Short: "Create a new site scaffold",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return scaffold.CreateNewSite(args[0], cmd.OutOrStdout())
	},
}

func init() {
	newCmd.AddCommand(newSiteCmd)
	rootCmd.AddCommand(newCmd)
}
