package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joshuapare/assetregkit/internal/ingest"
	"github.com/joshuapare/assetregkit/internal/logctx"
	"github.com/joshuapare/assetregkit/internal/manifest"
	"github.com/joshuapare/assetregkit/pkg/registry"
)

var (
	addOutput  string
	addWorkers int
	addDryRun  bool
)

func init() {
	cmd := newAddCmd()
	cmd.Flags().StringVarP(&addOutput, "output", "o", "", "Write the result here instead of in place")
	cmd.Flags().IntVar(&addWorkers, "workers", 0, "Concurrent package loads (0 = GOMAXPROCS)")
	cmd.Flags().BoolVar(&addDryRun, "dry-run", false, "Report what would be added without writing")
	rootCmd.AddCommand(cmd)
}

func newAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <registry> <manifest.yaml>",
		Short: "Register the packages described by a manifest",
		Long: `The add command reads a YAML manifest of package summaries, maps each
archive path to its logical path and appends one record per new package.
Blueprint class packages also get a companion record. Packages whose object
path is already registered are skipped.

Manifest format:
  packages:
    - path: MyGame/Content/Maps/Main.umap
      imports: [World]
      exports:
        - name: Main
          class: World

Example:
  arctl add AssetRegistry.bin new-packages.yaml
  arctl add AssetRegistry.bin new-packages.yaml -o Patched.bin
  arctl add AssetRegistry.bin new-packages.yaml --dry-run`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdd(cmd.Context(), args)
		},
	}
	return cmd
}

func runAdd(ctx context.Context, args []string) error {
	regPath, manifestPath := args[0], args[1]
	ctx = logctx.WithStr(ctx, "registry", regPath)

	printVerbose("Opening registry: %s\n", regPath)
	reg, err := registry.Open(regPath, decodeOptions())
	if err != nil {
		return fmt.Errorf("failed to open registry: %w", err)
	}

	printVerbose("Loading manifest: %s\n", manifestPath)
	m, err := manifest.LoadFile(manifestPath)
	if err != nil {
		return fmt.Errorf("failed to load manifest: %w", err)
	}

	stats, err := ingest.Run(ctx, reg, ingest.FromManifest(m), ingest.Options{Workers: addWorkers})
	if err != nil {
		return fmt.Errorf("failed to add packages: %w", err)
	}

	out := addOutput
	if out == "" {
		out = regPath
	}
	if !addDryRun {
		if err := reg.WriteFile(out); err != nil {
			return fmt.Errorf("failed to write registry: %w", err)
		}
	}

	if jsonOut {
		return printJSON(map[string]any{
			"registry":  out,
			"written":   !addDryRun,
			"added":     stats.Added,
			"duplicate": stats.Duplicate,
			"unmapped":  stats.Unmapped,
			"records":   stats.Records,
			"assets":    len(reg.Assets),
		})
	}

	printInfo("Added %d package(s), %d record(s)\n", stats.Added, stats.Records)
	if stats.Duplicate > 0 {
		printInfo("Skipped %d already registered\n", stats.Duplicate)
	}
	if stats.Unmapped > 0 {
		printInfo("Skipped %d unmapped path(s)\n", stats.Unmapped)
	}
	if addDryRun {
		printInfo("Dry run: %s not written\n", out)
	} else {
		printVerbose("Wrote %s (%d assets)\n", out, len(reg.Assets))
	}
	return nil
}
