// Package manifest reads YAML descriptions of parsed packages: the export
// and import tables an asset parser produced, keyed by archive path. Each
// Package satisfies registry.Package, so a manifest can drive Populate
// without the package files themselves.
//
//	packages:
//	  - path: MyGame/Content/Maps/Main.umap
//	    imports: [/Script/Engine, World]
//	    exports:
//	      - name: Main
//	        class: World        # import name, or a package index such as -2
//	      - name: Lighting
//	        outer: 1
//	        class: -2
package manifest

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/joshuapare/assetregkit/pkg/registry"
)

// Manifest is a list of packages to register.
type Manifest struct {
	Packages []Package `yaml:"packages"`
}

// Package is one parsed package.
type Package struct {
	// Path is the archive-relative path of the package file.
	Path       string   `yaml:"path"`
	Imports    []string `yaml:"imports"`
	ExportList []Export `yaml:"exports"`
}

// Export is one export table entry.
type Export struct {
	Name  string `yaml:"name"`
	Outer int32  `yaml:"outer"`
	Flags uint32 `yaml:"flags"`
	Class Ref    `yaml:"class"`
}

// Ref is a package index written either as an integer or as the name of an
// import. Named refs are turned into indices when the manifest is loaded.
type Ref struct {
	Index registry.PackageIndex
	Name  string
}

// UnmarshalYAML accepts both forms of a reference.
// Index form: class: -2
// Name form:  class: World
func (r *Ref) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: class must be an import name or a package index", value.Line)
	}
	if value.ShortTag() == "!!int" {
		n, err := strconv.ParseInt(value.Value, 0, 32)
		if err != nil {
			return fmt.Errorf("line %d: package index %q: %w", value.Line, value.Value, err)
		}
		*r = Ref{Index: registry.PackageIndex(n)}
		return nil
	}
	*r = Ref{Name: value.Value}
	return nil
}

// Exports implements registry.Package.
func (p *Package) Exports() []registry.Export {
	out := make([]registry.Export, len(p.ExportList))
	for i, e := range p.ExportList {
		out[i] = registry.Export{
			Outer:       registry.PackageIndex(e.Outer),
			ObjectName:  e.Name,
			ObjectFlags: e.Flags,
			Class:       e.Class.Index,
		}
	}
	return out
}

// ResolveImport implements registry.Package.
func (p *Package) ResolveImport(ref registry.PackageIndex) (string, bool) {
	slot, ok := ref.ImportSlot()
	if !ok || slot >= len(p.Imports) {
		return "", false
	}
	return p.Imports[slot], true
}

// Load decodes a manifest from r. Unknown keys are rejected and every named
// class reference must match an import of its package.
func Load(r io.Reader) (*Manifest, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var m Manifest
	if err := dec.Decode(&m); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	if err := m.resolve(); err != nil {
		return nil, err
	}
	return &m, nil
}

// LoadFile reads the manifest at path.
func LoadFile(path string) (*Manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	defer f.Close()

	m, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

func (m *Manifest) resolve() error {
	for i := range m.Packages {
		pkg := &m.Packages[i]
		if pkg.Path == "" {
			return fmt.Errorf("package %d: path is required", i)
		}
		for j := range pkg.ExportList {
			e := &pkg.ExportList[j]
			if e.Name == "" {
				return fmt.Errorf("package %q: export %d: name is required", pkg.Path, j)
			}
			if e.Class.Name == "" {
				continue
			}
			idx, ok := importIndex(pkg.Imports, e.Class.Name)
			if !ok {
				return fmt.Errorf("package %q: export %q: class %q is not an import", pkg.Path, e.Name, e.Class.Name)
			}
			e.Class.Index = idx
		}
	}
	return nil
}

func importIndex(imports []string, name string) (registry.PackageIndex, bool) {
	for i, imp := range imports {
		if imp == name {
			return registry.PackageIndex(-(i + 1)), true
		}
	}
	return 0, false
}
