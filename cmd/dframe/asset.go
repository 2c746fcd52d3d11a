// Asset commands for the dframe CLI, backed by the vault.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pentarix1996/D-DMaker/internal/handle"
	"github.com/pentarix1996/D-DMaker/internal/vault"
	"github.com/pentarix1996/D-DMaker/pkg/types"
)

var (
	assetAddType  string
	assetAddName  string
	assetListType string
)

var assetCmd = &cobra.Command{
	Use:   "asset",
	Short: "Manage the asset vault",
}

var assetAddCmd = &cobra.Command{
	Use:   "add <file>",
	Short: "Upload a file into the vault",
	Long: `Add stores the file's bytes as a new asset under a fresh identifier.

The asset name defaults to the file name. The type decides which vault tab
the asset appears under and what dropping it onto a scene means.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			fmt.Fprintln(os.Stderr, "read file:", err)
			os.Exit(exitUserError)
		}

		name := assetAddName
		if name == "" {
			name = filepath.Base(args[0])
		}

		backend, err := attachBackend()
		if err != nil {
			fmt.Fprintln(os.Stderr, "asset add:", err)
			os.Exit(exitSysError)
		}
		defer backend.Detach()

		v := vault.New(newLogger(), backend)
		asset, err := v.Upload(name, assetAddType, data)
		if err != nil {
			fmt.Fprintln(os.Stderr, "upload asset:", err)
			os.Exit(exitUserError)
		}

		if flagJSON {
			return printJSON(asset)
		}
		fmt.Printf("Uploaded %s: %s\n", asset.Type, asset.AssetID)
		return nil
	},
}

var assetListCmd = &cobra.Command{
	Use:   "list",
	Short: "List vault assets, ordered by name",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		backend, err := attachBackend()
		if err != nil {
			fmt.Fprintln(os.Stderr, "asset list:", err)
			os.Exit(exitSysError)
		}
		defer backend.Detach()

		v := vault.New(newLogger(), backend)
		assets, err := v.List(assetListType)
		if err != nil {
			fmt.Fprintln(os.Stderr, "list assets:", err)
			os.Exit(exitUserError)
		}

		if flagJSON {
			return printJSON(assets)
		}
		for _, asset := range assets {
			fmt.Printf("%s  %-6s  %-20s  %d bytes\n",
				asset.AssetID, asset.Type, asset.Name, len(asset.Data))
		}
		return nil
	},
}

var assetDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Remove an asset from the vault",
	Long: `Delete removes an asset by ID. Tokens referencing the asset keep
their reference and render as a placeholder.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		backend, err := attachBackend()
		if err != nil {
			fmt.Fprintln(os.Stderr, "asset delete:", err)
			os.Exit(exitSysError)
		}
		defer backend.Detach()

		v := vault.New(newLogger(), backend)
		if err := v.Delete(args[0]); err != nil {
			fmt.Fprintln(os.Stderr, "delete asset:", err)
			os.Exit(exitSysError)
		}

		fmt.Printf("Deleted asset %s\n", args[0])
		return nil
	},
}

var assetResolveCmd = &cobra.Command{
	Use:   "resolve <id>",
	Short: "Materialize an asset and print its renderable URL",
	Long: `Resolve writes the asset's bytes to a scratch file and prints the
file URL a renderer would load. A missing asset resolves to the
placeholder rather than failing.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		backend, err := attachBackend()
		if err != nil {
			fmt.Fprintln(os.Stderr, "asset resolve:", err)
			os.Exit(exitSysError)
		}
		defer backend.Detach()

		resolver, err := handle.NewResolver(newLogger(), backend, "")
		if err != nil {
			fmt.Fprintln(os.Stderr, "asset resolve:", err)
			os.Exit(exitSysError)
		}
		defer resolver.Close()

		lease := resolver.Acquire(args[0])
		defer lease.Release()

		if flagJSON {
			return printJSON(map[string]any{
				"url":         lease.URL(),
				"placeholder": lease.Placeholder(),
			})
		}
		if lease.Placeholder() {
			fmt.Printf("%s (placeholder)\n", lease.URL())
		} else {
			fmt.Println(lease.URL())
		}
		return nil
	},
}

func init() {
	assetAddCmd.Flags().StringVar(&assetAddType, "type", types.AssetToken, "asset type (map, token, audio)")
	assetAddCmd.Flags().StringVar(&assetAddName, "name", "", "asset name (default: file name)")

	assetListCmd.Flags().StringVar(&assetListType, "type", "", "filter by type")

	assetCmd.AddCommand(assetAddCmd)
	assetCmd.AddCommand(assetListCmd)
	assetCmd.AddCommand(assetDeleteCmd)
	assetCmd.AddCommand(assetResolveCmd)
}
