package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/joshuapare/assetregkit/internal/manifest"
	"github.com/joshuapare/assetregkit/pkg/registry"
)

const testPackages = `
packages:
  - path: MyGame/Content/Maps/Main.umap
    imports: [World]
    exports:
      - name: Main
        class: World
  - path: MyGame/Content/BP/BP_Door.uasset
    imports: [BlueprintGeneratedClass]
    exports:
      - name: BP_Door_C
        class: BlueprintGeneratedClass
`

// resetFlags restores every global flag to its default.
func resetFlags() {
	verbose = false
	quiet = false
	jsonOut = false
	debug = false
	human = false
	noValidate = false
	dumpTags = false
	dumpChunks = false
	dumpNoType = false
	addOutput = ""
	addWorkers = 0
	addDryRun = false
}

// writeFile writes content to name inside a fresh temp dir and returns the path
func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

// testRegistryPath writes a registry holding the test packages and returns
// its path
func testRegistryPath(t *testing.T) string {
	t.Helper()
	m, err := manifest.Load(strings.NewReader(testPackages))
	if err != nil {
		t.Fatalf("failed to load manifest: %v", err)
	}
	reg := registry.New(registry.Guid{}, 16, 1)
	logical := []string{"/Game/Maps/Main", "/Game/BP/BP_Door"}
	for i := range m.Packages {
		if err := reg.Populate(logical[i], &m.Packages[i]); err != nil {
			t.Fatalf("failed to populate: %v", err)
		}
	}
	path := filepath.Join(t.TempDir(), "AssetRegistry.bin")
	if err := reg.WriteFile(path); err != nil {
		t.Fatalf("failed to write registry: %v", err)
	}
	return path
}

// captureOutput captures stdout while running a function
func captureOutput(t *testing.T, fn func() error) (string, error) {
	t.Helper()

	origStdout := os.Stdout

	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}

	os.Stdout = w

	fnErr := fn()

	w.Close()
	os.Stdout = origStdout

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(r); err != nil {
		t.Fatalf("failed to read output: %v", err)
	}

	return buf.String(), fnErr
}

// assertJSON checks that output is valid JSON
func assertJSON(t *testing.T, output string) {
	t.Helper()
	var result any
	if err := json.Unmarshal([]byte(output), &result); err != nil {
		t.Errorf("invalid JSON output: %v\nOutput: %s", err, output)
	}
}

// assertContains checks that output contains all expected strings
func assertContains(t *testing.T, output string, expected []string) {
	t.Helper()
	for _, want := range expected {
		if !strings.Contains(output, want) {
			t.Errorf("output missing expected string %q\nGot: %s", want, output)
		}
	}
}

// assertNotContains checks that output doesn't contain unwanted strings
func assertNotContains(t *testing.T, output string, unwanted []string) {
	t.Helper()
	for _, dont := range unwanted {
		if strings.Contains(output, dont) {
			t.Errorf("output contains unwanted string %q\nGot: %s", dont, output)
		}
	}
}
