package cli

import (
	"github.com/spf13/cobra"
)

// scriptsCommand creates the scripts command: run scripts of the nearest
// project.
func (c *CLI) scriptsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "scripts",
		Short: "List run scripts from the nearest package.json",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := withLogger(cmd.Context(), c.Logger)
			engine, err := c.newEngine(ctx)
			if err != nil {
				return err
			}

			items, err := engine.Scripts(ctx)
			if err != nil {
				return err
			}
			if len(items) == 0 {
				printInfo("No scripts defined")
				return nil
			}
			printSuggestions(items)
			return nil
		},
	}
}
