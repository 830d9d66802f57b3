package cli

import (
	"github.com/spf13/cobra"

	"buntab/pkg/suggest"
)

// depsCommand creates the deps command: installed dependencies of the
// nearest project, or of the global install tree.
func (c *CLI) depsCommand() *cobra.Command {
	var global bool

	cmd := &cobra.Command{
		Use:   "deps [exclude...]",
		Short: "List installed dependencies",
		Long: `List installed dependencies from the nearest package.json, merging the
required, dev, and optional sections. Names passed as arguments are
excluded, mirroring how packages already typed on a line are not suggested
again.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := withLogger(cmd.Context(), c.Logger)
			engine, err := c.newEngine(ctx)
			if err != nil {
				return err
			}

			var items []suggest.Suggestion
			if global {
				items, err = engine.GlobalDependencies(ctx, args)
			} else {
				items, err = engine.Dependencies(ctx, args)
			}
			if err != nil {
				return err
			}

			if len(items) == 0 {
				printInfo("No dependencies installed")
				return nil
			}
			printSuggestions(items)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&global, "global", "g", false, "list the global install manifest")
	return cmd
}
