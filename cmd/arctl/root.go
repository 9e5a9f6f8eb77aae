package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/assetregkit/internal/logctx"
	"github.com/joshuapare/assetregkit/pkg/registry/printer"
	"github.com/joshuapare/assetregkit/pkg/types"
)

var (
	// Global flags
	verbose    bool
	quiet      bool
	jsonOut    bool
	debug      bool
	human      bool
	noValidate bool
)

var rootCmd = &cobra.Command{
	Use:   "arctl",
	Short: "Inspect and extend asset registry files",
	Long: `arctl reads, verifies and extends the AssetRegistry.bin index that ships
with cooked game content. It can dump records with every name and tag
resolved, check that a file survives a decode/encode round trip, and register
new packages described by a YAML manifest.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		logger := logctx.NewConfiguredLogger(os.Stderr, debug, human)
		cmd.SetContext(logctx.WithLogger(cmd.Context(), logger))
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&human, "human", false, "Human-friendly log output instead of JSON lines")
	rootCmd.PersistentFlags().
		BoolVar(&noValidate, "no-validate", false, "Skip index validation when loading a registry")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		printError("%v\n", err)
		os.Exit(1)
	}
}

// decodeOptions builds registry decode options from the global flags.
func decodeOptions() types.DecodeOptions {
	return types.DecodeOptions{SkipValidation: noValidate}
}

// printerOptions builds printer options from the global flags.
func printerOptions() printer.Options {
	opts := printer.DefaultOptions()
	if jsonOut {
		opts.Format = printer.FormatJSON
	}
	return opts
}

// printInfo prints an info message if not in quiet mode
func printInfo(format string, args ...any) {
	if !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printError prints an error message
func printError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format, args...)
}

// printVerbose prints a verbose message if verbose mode is enabled
func printVerbose(format string, args ...any) {
	if verbose && !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printJSON outputs data as JSON
func printJSON(v any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
