package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/assetregkit/pkg/registry"
)

// errRoundTrip reports that re-encoding a registry changed its bytes.
var errRoundTrip = errors.New("round trip mismatch")

func init() {
	rootCmd.AddCommand(newVerifyCmd())
}

func newVerifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify <registry>",
		Short: "Check that a registry re-encodes byte for byte",
		Long: `The verify command decodes a registry, validates every index, encodes it
again and compares the result with the original bytes. A mismatch reports
the first differing offset.

Example:
  arctl verify AssetRegistry.bin
  arctl verify AssetRegistry.bin --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVerify(args)
		},
	}
	return cmd
}

type verifyResult struct {
	File            string `json:"file"`
	Size            int    `json:"size"`
	Encoded         int    `json:"encoded"`
	Match           bool   `json:"match"`
	FirstDifference *int   `json:"first_difference,omitempty"`
}

func runVerify(args []string) error {
	path := args[0]

	printVerbose("Reading registry: %s\n", path)

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read registry: %w", err)
	}
	reg, err := registry.Parse(data, decodeOptions())
	if err != nil {
		return fmt.Errorf("failed to decode registry: %w", err)
	}
	encoded, err := reg.MarshalBinary()
	if err != nil {
		return fmt.Errorf("failed to encode registry: %w", err)
	}

	result := verifyResult{
		File:    path,
		Size:    len(data),
		Encoded: len(encoded),
		Match:   bytes.Equal(data, encoded),
	}
	if !result.Match {
		off := firstDifference(data, encoded)
		result.FirstDifference = &off
	}

	if jsonOut {
		if err := printJSON(result); err != nil {
			return err
		}
	} else if result.Match {
		printInfo("OK: %s (%d bytes, %d assets)\n", path, len(data), len(reg.Assets))
	} else {
		printInfo("MISMATCH: %s\n", path)
		printInfo("  Original: %d bytes\n", result.Size)
		printInfo("  Encoded:  %d bytes\n", result.Encoded)
		printInfo("  First difference at offset 0x%X\n", *result.FirstDifference)
	}

	if !result.Match {
		return errRoundTrip
	}
	return nil
}

// firstDifference returns the first offset at which a and b differ. When one
// is a prefix of the other it returns the shorter length.
func firstDifference(a, b []byte) int {
	n := min(len(a), len(b))
	for i := range n {
		if a[i] != b[i] {
			return i
		}
	}
	return n
}
