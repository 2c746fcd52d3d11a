// Import command for the dframe CLI.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pentarix1996/D-DMaker/pkg/types"
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import a story bundle from a JSON file",
	Long: `Import reads a {"story": ..., "scenes": [...]} document and applies
it in a single transaction. Only the top-level shape is validated; a
malformed document is rejected and nothing is applied. Importing an
existing story overwrites its fields but keeps its stored thumbnail.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			fmt.Fprintln(os.Stderr, "read file:", err)
			os.Exit(exitUserError)
		}

		bundle, err := types.DecodeBundle(data)
		if err != nil {
			fmt.Fprintln(os.Stderr, "import:", err)
			os.Exit(exitUserError)
		}

		backend, err := attachBackend()
		if err != nil {
			fmt.Fprintln(os.Stderr, "import:", err)
			os.Exit(exitSysError)
		}
		defer backend.Detach()

		if err := backend.ImportBundle(bundle); err != nil {
			if errors.Is(err, types.ErrMalformedBundle) {
				fmt.Fprintln(os.Stderr, "import:", err)
				os.Exit(exitUserError)
			}
			fmt.Fprintln(os.Stderr, "import story:", err)
			os.Exit(exitSysError)
		}

		fmt.Printf("Imported story %s (%d scenes)\n",
			bundle.Story.StoryID, len(bundle.Scenes))
		return nil
	},
}
