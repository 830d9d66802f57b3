package cli

import (
	"github.com/spf13/cobra"
)

// linksCommand creates the links command: globally linked packages.
func (c *CLI) linksCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "links",
		Short: "List globally linked packages",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := withLogger(cmd.Context(), c.Logger)
			engine, err := c.newEngine(ctx)
			if err != nil {
				return err
			}

			items, err := engine.Links(ctx)
			if err != nil {
				return err
			}
			if len(items) == 0 {
				printInfo("No linked packages")
				return nil
			}
			printSuggestions(items)
			return nil
		},
	}
}
