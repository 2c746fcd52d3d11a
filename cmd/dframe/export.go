// Export command for the dframe CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export <story-id>",
	Short: "Export a story and its scenes to a JSON file",
	Long: `Export writes a {"story": ..., "scenes": [...]} document. The file
name derives from the story name unless --out is given. Thumbnails and
asset binaries are never part of the document.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		backend, err := attachBackend()
		if err != nil {
			fmt.Fprintln(os.Stderr, "export:", err)
			os.Exit(exitSysError)
		}
		defer backend.Detach()

		bundle, err := backend.ExportBundle(args[0])
		if err != nil {
			if isEntityNotFound(err) {
				fmt.Fprintf(os.Stderr, "story %q not found\n", args[0])
				os.Exit(exitUserError)
			}
			fmt.Fprintln(os.Stderr, "export story:", err)
			os.Exit(exitSysError)
		}

		data, err := bundle.Encode()
		if err != nil {
			fmt.Fprintln(os.Stderr, "encode bundle:", err)
			os.Exit(exitSysError)
		}

		out := exportOut
		if out == "" {
			out = bundle.FileName()
		}
		if err := os.WriteFile(out, data, 0o644); err != nil {
			fmt.Fprintln(os.Stderr, "write file:", err)
			os.Exit(exitSysError)
		}

		fmt.Printf("Exported story %s to %s (%d scenes)\n",
			args[0], out, len(bundle.Scenes))
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportOut, "out", "", "output file (default: <story name>.json)")
}
