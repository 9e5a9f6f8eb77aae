package registry

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/assetregkit/internal/buf"
)

// sampleRegistry exercises every table and every value type.
func sampleRegistry() *Registry {
	reg := New(Guid{0xE7, 0x9E, 0x7F, 0x71, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}, 16, 1)
	n := reg.Names
	objectPath := n.Intern("/Game/Maps/Main.Main")
	packagePath := n.Intern("/Game/Maps")
	world := n.Intern("World")
	packageName := n.Intern("/Game/Maps/Main")
	main := n.Intern("Main")
	script := n.Intern("/Script/Engine")
	keys := []NameIndex{
		n.Intern("Description"),
		n.Intern("DisplayName"),
		n.Intern("Category"),
		n.Intern("Instance"),
		n.Intern("Template"),
		n.Intern("Parent"),
		n.Intern("Subtitle"),
	}

	mainPath := ExportPath{ObjectPath: Plain(objectPath), PackagePath: Plain(packageName), AssetClass: Plain(world)}
	reg.Store = &Store{
		Texts:                 []string{"NSLOCTEXT(\"Maps\", \"Main\", \"Main Menu\")"},
		NumberlessNames:       []NameIndexFlagged{Plain(world)},
		Names:                 []NameIndexFlagged{Numbered(main, 3)},
		NumberlessExportPaths: []ExportPath{mainPath},
		ExportPaths:           []ExportPath{{ObjectPath: Numbered(objectPath, 1), PackagePath: Plain(script), AssetClass: Plain(world)}},
		AnsiStrings:           []string{"main menu level"},
		WideStrings:           []string{"Menü ✓ 😀"},
		Pairs: []Pair{
			{Name: keys[0], Value: ValueRef{Type: TypeAnsiString, Index: 0}},
			{Name: keys[1], Value: ValueRef{Type: TypeWideString, Index: 0}},
			{Name: keys[2], Value: ValueRef{Type: TypeNumberlessName, Index: 0}},
			{Name: keys[3], Value: ValueRef{Type: TypeName, Index: 0}},
			{Name: keys[4], Value: ValueRef{Type: TypeNumberlessExportPath, Index: 0}},
			{Name: keys[5], Value: ValueRef{Type: TypeExportPath, Index: 0}},
			{Name: keys[6], Value: ValueRef{Type: TypeLocalizedText, Index: 0}},
		},
	}
	reg.Assets = []AssetData{{
		ObjectPath:  Plain(objectPath),
		PackagePath: Plain(packagePath),
		AssetClass:  Plain(world),
		PackageName: Plain(packageName),
		AssetName:   Plain(main),
		Tags:        MapHandle{HasNumberlessKeys: true, Num: 7, PairBegin: 0},
		BundleCount: 0,
		ChunkIDs:    []uint32{0, 5},
		Flags:       0,
	}}
	reg.Dependencies = Dependencies{Size: 12, Dependencies: []uint32{1, 2, 3}, PackageDataBufferSize: 0}
	return reg
}

func marshal(t *testing.T, reg *Registry) []byte {
	t.Helper()
	data, err := reg.MarshalBinary()
	require.NoError(t, err)
	return data
}

func encodeWith(t *testing.T, fn func(w *buf.Writer)) []byte {
	t.Helper()
	var out bytes.Buffer
	w := buf.NewWriter(&out)
	fn(w)
	require.NoError(t, w.Err())
	return out.Bytes()
}

func readerOf(b []byte) *buf.Reader {
	return buf.NewReader(bytes.NewReader(b))
}

// fakePackage is a parsed package with explicit export and import tables.
type fakePackage struct {
	exports []Export
	imports []string
}

func (p fakePackage) Exports() []Export { return p.exports }

func (p fakePackage) ResolveImport(ref PackageIndex) (string, bool) {
	slot, ok := ref.ImportSlot()
	if !ok || slot >= len(p.imports) {
		return "", false
	}
	return p.imports[slot], true
}

func simplePackage(name, class string) fakePackage {
	return fakePackage{
		exports: []Export{{ObjectName: name, Class: -1}},
		imports: []string{class},
	}
}
