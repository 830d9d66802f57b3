package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// searchCommand creates the search command for free-text registry search.
func (c *CLI) searchCommand() *cobra.Command {
	var (
		scope    string
		keywords []string
	)

	cmd := &cobra.Command{
		Use:   "search <term>",
		Short: "Search the registry for packages",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := withLogger(cmd.Context(), c.Logger)
			engine, err := c.newEngine(ctx)
			if err != nil {
				return err
			}

			prog := newProgress(c.Logger)
			items, err := engine.Search(ctx, args[0], scope, keywords)
			if err != nil {
				return fmt.Errorf("search %q: %w", args[0], err)
			}
			prog.done(fmt.Sprintf("found %d packages", len(items)))

			if len(items) == 0 {
				printInfo("No packages found for %q", args[0])
				return nil
			}
			printSuggestions(items)
			return nil
		},
	}

	cmd.Flags().StringVar(&scope, "scope", "", "restrict results to a package scope")
	cmd.Flags().StringArrayVar(&keywords, "keyword", nil, "restrict results to a keyword (repeatable)")
	return cmd
}
