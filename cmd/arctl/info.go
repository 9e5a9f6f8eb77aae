package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/assetregkit/pkg/registry"
	"github.com/joshuapare/assetregkit/pkg/registry/printer"
)

func init() {
	rootCmd.AddCommand(newInfoCmd())
}

func newInfoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info <registry>",
		Short: "Report header values and table sizes",
		Long: `The info command decodes a registry file and prints its version fields,
the size of every table and the file size.

Example:
  arctl info AssetRegistry.bin
  arctl info AssetRegistry.bin --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfo(args)
		},
	}
	return cmd
}

func runInfo(args []string) error {
	path := args[0]

	printVerbose("Opening registry: %s\n", path)

	reg, err := registry.Open(path, decodeOptions())
	if err != nil {
		return fmt.Errorf("failed to open registry: %w", err)
	}

	size := int64(-1)
	if stat, err := os.Stat(path); err == nil {
		size = stat.Size()
	}

	return printer.New(reg, os.Stdout, printerOptions()).PrintInfo(size)
}
