package registry

import (
	"fmt"

	"github.com/joshuapare/assetregkit/internal/buf"
	"github.com/joshuapare/assetregkit/pkg/types"
)

// ResolvedExportPath is an ExportPath with its names looked up.
type ResolvedExportPath struct {
	ObjectPath  string `json:"object_path"`
	PackagePath string `json:"package_path"`
	AssetClass  string `json:"asset_class"`
}

// String renders the path the way the editor quotes object references:
// Class'ObjectPath'.
func (p ResolvedExportPath) String() string {
	if p.AssetClass == "" {
		return p.ObjectPath
	}
	return fmt.Sprintf("%s'%s'", p.AssetClass, p.ObjectPath)
}

// Tag is a Pair with its key and value resolved to text. ExportPath is set
// only for the two export path value types.
type Tag struct {
	Key        string              `json:"key"`
	Type       Type                `json:"-"`
	TypeName   string              `json:"type"`
	Value      string              `json:"value"`
	ExportPath *ResolvedExportPath `json:"export_path,omitempty"`
}

// ResolvedAsset is an AssetData with every reference resolved.
type ResolvedAsset struct {
	ObjectPath  string   `json:"object_path"`
	PackagePath string   `json:"package_path"`
	AssetClass  string   `json:"asset_class"`
	PackageName string   `json:"package_name"`
	AssetName   string   `json:"asset_name"`
	Tags        []Tag    `json:"tags"`
	BundleCount uint32   `json:"bundle_count"`
	ChunkIDs    []uint32 `json:"chunk_ids"`
	Flags       uint32   `json:"flags"`
}

func outOfRange(what string, idx uint32, length int) error {
	return fmt.Errorf("%s: %w", what,
		types.Wrap(types.ErrKindRange, "index out of range", buf.CheckIndex(idx, length)))
}

// Name interns s and returns a flagged index without an instance number.
func (reg *Registry) Name(s string) NameIndexFlagged {
	return Plain(reg.names().Intern(s))
}

// NameOf returns the string a flagged index refers to.
func (reg *Registry) NameOf(f NameIndexFlagged) (string, error) {
	s, ok := reg.names().LookupFlagged(f)
	if !ok {
		return "", outOfRange("name", f.Index, reg.names().Len())
	}
	return s, nil
}

// ResolveExportPath looks up the three names of ep.
func (reg *Registry) ResolveExportPath(ep ExportPath) (ResolvedExportPath, error) {
	var (
		out ResolvedExportPath
		err error
	)
	if out.ObjectPath, err = reg.NameOf(ep.ObjectPath); err != nil {
		return out, fmt.Errorf("object path: %w", err)
	}
	if out.PackagePath, err = reg.NameOf(ep.PackagePath); err != nil {
		return out, fmt.Errorf("package path: %w", err)
	}
	if out.AssetClass, err = reg.NameOf(ep.AssetClass); err != nil {
		return out, fmt.Errorf("asset class: %w", err)
	}
	return out, nil
}

// ResolvePair resolves a tag's key and value.
func (reg *Registry) ResolvePair(p Pair) (Tag, error) {
	key, ok := reg.names().Lookup(p.Name)
	if !ok {
		return Tag{}, outOfRange("pair key", uint32(p.Name), reg.names().Len())
	}
	tag := Tag{Key: key, Type: p.Value.Type, TypeName: p.Value.Type.String()}

	s := reg.store()
	i := p.Value.Index
	if n := s.tableLen(p.Value.Type); uint64(i) >= uint64(n) {
		return Tag{}, outOfRange(fmt.Sprintf("pair %q %s value", key, p.Value.Type), i, n)
	}

	var err error
	switch p.Value.Type {
	case TypeAnsiString:
		tag.Value = s.AnsiStrings[i]
	case TypeWideString:
		tag.Value = s.WideStrings[i]
	case TypeLocalizedText:
		tag.Value = s.Texts[i]
	case TypeNumberlessName:
		tag.Value, err = reg.NameOf(s.NumberlessNames[i])
	case TypeName:
		tag.Value, err = reg.NameOf(s.Names[i])
	case TypeNumberlessExportPath, TypeExportPath:
		ep := s.ExportPaths
		if p.Value.Type == TypeNumberlessExportPath {
			ep = s.NumberlessExportPaths
		}
		var rp ResolvedExportPath
		rp, err = reg.ResolveExportPath(ep[i])
		tag.ExportPath = &rp
		tag.Value = rp.String()
	default:
		return Tag{}, fmt.Errorf("pair %q: type %d: %w", key, uint8(p.Value.Type), types.ErrInvalidTypeTag)
	}
	if err != nil {
		return Tag{}, fmt.Errorf("pair %q: %w", key, err)
	}
	return tag, nil
}

// Tags resolves every pair in the run h describes.
func (reg *Registry) Tags(h MapHandle) ([]Tag, error) {
	if h.Num == 0 {
		return nil, nil
	}
	pairs := reg.store().Pairs
	end, err := buf.CheckRange(len(pairs), h.PairBegin, int(h.Num))
	if err != nil {
		return nil, fmt.Errorf("tag map: %w", types.Wrap(types.ErrKindRange, "index out of range", err))
	}
	tags := make([]Tag, 0, h.Num)
	for _, p := range pairs[h.PairBegin:end] {
		tag, err := reg.ResolvePair(p)
		if err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}
	return tags, nil
}

// ResolveAsset resolves every reference held by a.
func (reg *Registry) ResolveAsset(a *AssetData) (ResolvedAsset, error) {
	out := ResolvedAsset{
		BundleCount: a.BundleCount,
		ChunkIDs:    a.ChunkIDs,
		Flags:       a.Flags,
	}
	fields := []struct {
		dst  *string
		src  NameIndexFlagged
		what string
	}{
		{&out.ObjectPath, a.ObjectPath, "object path"},
		{&out.PackagePath, a.PackagePath, "package path"},
		{&out.AssetClass, a.AssetClass, "asset class"},
		{&out.PackageName, a.PackageName, "package name"},
		{&out.AssetName, a.AssetName, "asset name"},
	}
	for _, f := range fields {
		s, err := reg.NameOf(f.src)
		if err != nil {
			return out, fmt.Errorf("%s: %w", f.what, err)
		}
		*f.dst = s
	}
	tags, err := reg.Tags(a.Tags)
	if err != nil {
		return out, err
	}
	out.Tags = tags
	return out, nil
}
