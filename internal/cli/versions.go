package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// versionsCommand creates the versions command: dist-tags and published
// versions of one package.
func (c *CLI) versionsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "versions <package>",
		Short: "List dist-tags and published versions of a package",
		Long: `List dist-tags and published versions of a package.

Tags come first in the order the registry reports them, each with the
version it points at; plain versions follow newest-first.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := withLogger(cmd.Context(), c.Logger)
			engine, err := c.newEngine(ctx)
			if err != nil {
				return err
			}

			items, err := engine.Versions(ctx, args[0])
			if err != nil {
				return fmt.Errorf("versions of %q: %w", args[0], err)
			}
			printSuggestions(items)
			return nil
		},
	}
}
