package main

import (
	"github.com/spf13/cobra"

	"github.com/joshuapare/assetregkit/internal/paths"
)

func init() {
	rootCmd.AddCommand(newMapPathCmd())
}

func newMapPathCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "map-path <path>...",
		Short: "Show the logical path for archive paths",
		Long: `The map-path command converts archive-relative package paths to the
logical paths used in the registry. Paths outside every mount root are
reported as unmapped.

Example:
  arctl map-path MyGame/Content/Maps/Main.umap
  arctl map-path Engine/Plugins/FX/Niagara/Content/Smoke.uasset --json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMapPath(args)
		},
	}
	return cmd
}

type mappedPath struct {
	Path    string `json:"path"`
	Logical string `json:"logical,omitempty"`
	Mapped  bool   `json:"mapped"`
}

func runMapPath(args []string) error {
	results := make([]mappedPath, 0, len(args))
	for _, p := range args {
		trimmed, _ := paths.TrimPackageExt(p)
		logical, ok := paths.PakToGamePath(trimmed)
		results = append(results, mappedPath{Path: p, Logical: logical, Mapped: ok})
	}

	if jsonOut {
		return printJSON(results)
	}
	for _, r := range results {
		if r.Mapped {
			printInfo("%s -> %s\n", r.Path, r.Logical)
		} else {
			printInfo("%s -> (unmapped)\n", r.Path)
		}
	}
	return nil
}
