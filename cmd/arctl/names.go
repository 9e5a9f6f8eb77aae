package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/assetregkit/pkg/registry"
	"github.com/joshuapare/assetregkit/pkg/registry/printer"
)

func init() {
	rootCmd.AddCommand(newNamesCmd())
}

func newNamesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "names <registry>",
		Short: "List the global name table",
		Long: `The names command prints the global name table in index order.

Example:
  arctl names AssetRegistry.bin
  arctl names AssetRegistry.bin --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNames(args)
		},
	}
	return cmd
}

func runNames(args []string) error {
	path := args[0]

	printVerbose("Opening registry: %s\n", path)

	reg, err := registry.Open(path, decodeOptions())
	if err != nil {
		return fmt.Errorf("failed to open registry: %w", err)
	}
	return printer.New(reg, os.Stdout, printerOptions()).PrintNames()
}
