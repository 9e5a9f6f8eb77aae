package main

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/joshuapare/assetregkit/pkg/registry"
	"github.com/joshuapare/assetregkit/pkg/types"
)

const newPackages = `
packages:
  - path: MyGame/Content/Props/Crate.uasset
    imports: [StaticMesh]
    exports:
      - name: Crate
        class: StaticMesh
  - path: MyGame/Content/Maps/Main.umap
    imports: [World]
    exports:
      - name: Main
        class: World
  - path: MyGame/Saved/Log.txt
`

func assetCount(t *testing.T, path string) int {
	t.Helper()
	reg, err := registry.Open(path, types.DecodeOptions{})
	if err != nil {
		t.Fatalf("failed to reopen %s: %v", path, err)
	}
	return len(reg.Assets)
}

func TestAddCommand(t *testing.T) {
	resetFlags()

	regPath := testRegistryPath(t)
	manifestPath := writeFile(t, "packages.yaml", newPackages)

	output, err := captureOutput(t, func() error {
		return runAdd(context.Background(), []string{regPath, manifestPath})
	})
	if err != nil {
		t.Fatalf("runAdd() error = %v", err)
	}
	assertContains(t, output, []string{
		"Added 1 package(s), 1 record(s)",
		"Skipped 1 already registered",
		"Skipped 1 unmapped path(s)",
	})
	if got := assetCount(t, regPath); got != 4 {
		t.Errorf("asset count = %d, want 4", got)
	}
}

func TestAddCommandOutput(t *testing.T) {
	resetFlags()

	regPath := testRegistryPath(t)
	manifestPath := writeFile(t, "packages.yaml", newPackages)
	addOutput = filepath.Join(t.TempDir(), "Patched.bin")

	_, err := captureOutput(t, func() error {
		return runAdd(context.Background(), []string{regPath, manifestPath})
	})
	if err != nil {
		t.Fatalf("runAdd() error = %v", err)
	}
	if got := assetCount(t, regPath); got != 3 {
		t.Errorf("source asset count = %d, want 3", got)
	}
	if got := assetCount(t, addOutput); got != 4 {
		t.Errorf("output asset count = %d, want 4", got)
	}
}

func TestAddCommandDryRun(t *testing.T) {
	resetFlags()
	addDryRun = true
	jsonOut = true

	regPath := testRegistryPath(t)
	manifestPath := writeFile(t, "packages.yaml", newPackages)

	output, err := captureOutput(t, func() error {
		return runAdd(context.Background(), []string{regPath, manifestPath})
	})
	if err != nil {
		t.Fatalf("runAdd() error = %v", err)
	}
	assertJSON(t, output)
	assertContains(t, output, []string{`"written": false`, `"assets": 4`})
	if got := assetCount(t, regPath); got != 3 {
		t.Errorf("asset count = %d, want 3", got)
	}
}

func TestAddCommandErrors(t *testing.T) {
	tests := []struct {
		name     string
		manifest string
	}{
		{name: "malformed manifest", manifest: "packages: [\n"},
		{
			name: "no root export",
			manifest: `
packages:
  - path: MyGame/Content/Orphan.uasset
    exports:
      - name: Inner
        outer: 1
        class: -1
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetFlags()

			regPath := testRegistryPath(t)
			manifestPath := writeFile(t, "packages.yaml", tt.manifest)

			_, err := captureOutput(t, func() error {
				return runAdd(context.Background(), []string{regPath, manifestPath})
			})
			if err == nil {
				t.Fatal("expected error")
			}
			if got := assetCount(t, regPath); got != 3 {
				t.Errorf("asset count = %d, want 3", got)
			}
		})
	}
}
