package cli

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"buntab/pkg/suggest"
)

// suggestCommand creates the suggest command, the primary entry point used
// by shell integrations: it completes a partial bun command line.
func (c *CLI) suggestCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "suggest <line>",
		Short: "Suggest completions for a partial bun command line",
		Long: `Suggest completions for a partial bun command line.

The line is everything typed so far, including the program name. A trailing
space means a fresh token is being started:

  buntab suggest "bun add re"
  buntab suggest "bun add react@"
  buntab suggest "bun run "

Suggestions never fail: lookup errors degrade to an empty list so shell
integrations can splice the output into the line unconditionally.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := withLogger(cmd.Context(), c.Logger)
			engine, err := c.newEngine(ctx)
			if err != nil {
				return err
			}

			prog := newProgress(c.Logger)
			items := engine.Suggest(ctx, args[0])
			prog.done("suggest")

			if asJSON {
				if items == nil {
					items = []suggest.Suggestion{} // keep JSON output a list, never null
				}
				return json.NewEncoder(os.Stdout).Encode(items)
			}
			printSuggestions(items)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "emit suggestions as JSON")
	return cmd
}
