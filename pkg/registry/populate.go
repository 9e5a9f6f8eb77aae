package registry

import (
	"fmt"
	"strings"

	"github.com/joshuapare/assetregkit/internal/paths"
	"github.com/joshuapare/assetregkit/pkg/types"
)

// PackageIndex references an object within a package: negative values are
// imports (-1 is the first), positive values are exports (1 is the first)
// and zero is null.
type PackageIndex int32

// IsNull reports whether i references nothing.
func (i PackageIndex) IsNull() bool { return i == 0 }

// IsImport reports whether i references an import.
func (i PackageIndex) IsImport() bool { return i < 0 }

// ImportSlot returns the zero-based import table position of an import
// reference.
func (i PackageIndex) ImportSlot() (int, bool) {
	if i >= 0 {
		return 0, false
	}
	return int(-(int64(i) + 1)), true
}

// Export is the base record of one exported object.
type Export struct {
	Outer       PackageIndex
	ObjectName  string
	ObjectFlags uint32
	Class       PackageIndex
}

// Package is the view of a parsed package that Populate consumes.
type Package interface {
	Exports() []Export
	// ResolveImport returns the object name of the import ref points at.
	ResolveImport(ref PackageIndex) (string, bool)
}

// RootExport returns the first export without an outer object.
func RootExport(pkg Package) (Export, bool) {
	for _, e := range pkg.Exports() {
		if e.Outer.IsNull() {
			return e, true
		}
	}
	return Export{}, false
}

// Blueprint classes are registered a second time under their source name.
const (
	generatedObjectSuffix = "_C"
	generatedClassSuffix  = "GeneratedClass"
)

// Populate registers the package at logicalPath. The root export's name and
// class determine the new record; a package whose object path is already
// registered leaves the registry untouched. Generated Blueprint classes get
// a second record with the generated suffixes stripped.
//
// Populate only appends names and records. Calls against one Registry must
// be serialized.
func (reg *Registry) Populate(logicalPath string, pkg Package) error {
	root, ok := RootExport(pkg)
	if !ok {
		return fmt.Errorf("%s: %w", logicalPath, types.ErrNoRootExport)
	}

	assetName := root.ObjectName
	packagePath, ok := paths.Parent(logicalPath)
	if !ok {
		return fmt.Errorf("%q: %w", logicalPath, types.ErrInvalidPath)
	}
	packageName := logicalPath
	objectPath := logicalPath + "." + assetName
	assetClass, ok := pkg.ResolveImport(root.Class)
	if !ok {
		return fmt.Errorf("%s: class %d: %w", logicalPath, root.Class, types.ErrBadImportReference)
	}

	exists, err := reg.hasObjectPath(objectPath)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	objectIdx := reg.Name(objectPath)
	packagePathIdx := reg.Name(packagePath)
	classIdx := reg.Name(assetClass)
	packageNameIdx := reg.Name(packageName)
	assetIdx := reg.Name(assetName)
	reg.Assets = append(reg.Assets, AssetData{
		ObjectPath:  objectIdx,
		PackagePath: packagePathIdx,
		AssetClass:  classIdx,
		PackageName: packageNameIdx,
		AssetName:   assetIdx,
		Tags:        EmptyMap,
	})

	strippedAsset, okAsset := strings.CutSuffix(assetName, generatedObjectSuffix)
	strippedObject, okObject := strings.CutSuffix(objectPath, generatedObjectSuffix)
	strippedClass, okClass := strings.CutSuffix(assetClass, generatedClassSuffix)
	if okAsset && okObject && okClass {
		objectIdx := reg.Name(strippedObject)
		classIdx := reg.Name(strippedClass)
		assetIdx := reg.Name(strippedAsset)
		reg.Assets = append(reg.Assets, AssetData{
			ObjectPath:  objectIdx,
			PackagePath: packagePathIdx,
			AssetClass:  classIdx,
			PackageName: packageNameIdx,
			AssetName:   assetIdx,
			Tags:        EmptyMap,
		})
	}
	return nil
}

// hasObjectPath scans the records for one whose object path is s.
func (reg *Registry) hasObjectPath(s string) (bool, error) {
	for i := range reg.Assets {
		got, err := reg.NameOf(reg.Assets[i].ObjectPath)
		if err != nil {
			return false, fmt.Errorf("asset[%d] object path: %w", i, err)
		}
		if got == s {
			return true, nil
		}
	}
	return false, nil
}
