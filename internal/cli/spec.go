package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"buntab/pkg/suggest"
)

// specCommand creates the spec command, dumping the declarative command
// surface as JSON so external tools can build their own completers from it.
func (c *CLI) specCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "spec",
		Short: "Print the bun completion surface as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := json.MarshalIndent(suggest.Bun(), "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(data))
			return nil
		},
	}
}
