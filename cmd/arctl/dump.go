package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/assetregkit/pkg/registry"
	"github.com/joshuapare/assetregkit/pkg/registry/printer"
)

var (
	dumpTags   bool
	dumpChunks bool
	dumpNoType bool
)

func init() {
	cmd := newDumpCmd()
	cmd.Flags().BoolVar(&dumpTags, "tags", false, "Include each record's tag map")
	cmd.Flags().BoolVar(&dumpChunks, "chunks", false, "Include chunk IDs")
	cmd.Flags().BoolVar(&dumpNoType, "no-types", false, "Omit tag value types")
	rootCmd.AddCommand(cmd)
}

func newDumpCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dump <registry>",
		Short: "Print every record with names resolved",
		Long: `The dump command prints every AssetData record, sorted by object path,
with all name and tag indices resolved to text.

Example:
  arctl dump AssetRegistry.bin
  arctl dump AssetRegistry.bin --tags --chunks
  arctl dump AssetRegistry.bin --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDump(args)
		},
	}
	return cmd
}

func runDump(args []string) error {
	path := args[0]

	printVerbose("Opening registry: %s\n", path)

	reg, err := registry.Open(path, decodeOptions())
	if err != nil {
		return fmt.Errorf("failed to open registry: %w", err)
	}

	opts := printerOptions()
	opts.ShowTags = dumpTags
	opts.ShowChunks = dumpChunks
	opts.ShowValueTypes = !dumpNoType
	if err := printer.New(reg, os.Stdout, opts).PrintAssets(); err != nil {
		return fmt.Errorf("failed to dump registry: %w", err)
	}
	return nil
}
