package printer

import (
	"encoding/json"
	"fmt"

	"github.com/joshuapare/assetregkit/pkg/registry"
)

// jsonAsset represents a record in JSON format.
type jsonAsset struct {
	ObjectPath  string    `json:"object_path"`
	AssetClass  string    `json:"asset_class"`
	PackageName string    `json:"package_name"`
	PackagePath string    `json:"package_path"`
	AssetName   string    `json:"asset_name"`
	BundleCount uint32    `json:"bundle_count"`
	Flags       uint32    `json:"flags"`
	ChunkIDs    []uint32  `json:"chunk_ids,omitempty"`
	Tags        []jsonTag `json:"tags,omitempty"`
}

// jsonTag represents one resolved tag in JSON format.
type jsonTag struct {
	Key        string                       `json:"key"`
	Type       string                       `json:"type,omitempty"`
	Value      string                       `json:"value"`
	ExportPath *registry.ResolvedExportPath `json:"export_path,omitempty"`
}

type jsonStore struct {
	Texts                 int `json:"texts"`
	NumberlessNames       int `json:"numberless_names"`
	Names                 int `json:"names"`
	NumberlessExportPaths int `json:"numberless_export_paths"`
	ExportPaths           int `json:"export_paths"`
	AnsiStrings           int `json:"ansi_strings"`
	WideStrings           int `json:"wide_strings"`
	Pairs                 int `json:"pairs"`
}

// jsonInfo is the registry summary printed by PrintInfo.
type jsonInfo struct {
	Version      string    `json:"version"`
	VersionInt   uint32    `json:"version_int"`
	HashVersion  uint64    `json:"hash_version"`
	Names        int       `json:"names"`
	Assets       int       `json:"assets"`
	Store        jsonStore `json:"store"`
	Dependencies int       `json:"dependencies"`
	Size         *int64    `json:"size,omitempty"`
}

func (p *Printer) jsonAsset(a registry.ResolvedAsset) jsonAsset {
	out := jsonAsset{
		ObjectPath:  a.ObjectPath,
		AssetClass:  a.AssetClass,
		PackageName: a.PackageName,
		PackagePath: a.PackagePath,
		AssetName:   a.AssetName,
		BundleCount: a.BundleCount,
		Flags:       a.Flags,
	}
	if p.opts.ShowChunks {
		out.ChunkIDs = a.ChunkIDs
	}
	if p.opts.ShowTags {
		out.Tags = p.jsonTags(a.Tags)
	}
	return out
}

func (p *Printer) jsonTags(tags []registry.Tag) []jsonTag {
	out := make([]jsonTag, 0, len(tags))
	for _, tag := range tags {
		out = append(out, p.jsonTag(tag))
	}
	return out
}

func (p *Printer) jsonTag(tag registry.Tag) jsonTag {
	out := jsonTag{Key: tag.Key, Value: tag.Value, ExportPath: tag.ExportPath}
	if p.opts.ShowValueTypes {
		out.Type = tag.TypeName
	}
	return out
}

func (p *Printer) info(size int64) jsonInfo {
	reg := p.reg
	info := jsonInfo{
		Version:      reg.Version.String(),
		VersionInt:   reg.VersionInt,
		HashVersion:  reg.HashVersion,
		Assets:       len(reg.Assets),
		Dependencies: len(reg.Dependencies.Dependencies),
	}
	if reg.Names != nil {
		info.Names = reg.Names.Len()
	}
	if s := reg.Store; s != nil {
		info.Store = jsonStore{
			Texts:                 len(s.Texts),
			NumberlessNames:       len(s.NumberlessNames),
			Names:                 len(s.Names),
			NumberlessExportPaths: len(s.NumberlessExportPaths),
			ExportPaths:           len(s.ExportPaths),
			AnsiStrings:           len(s.AnsiStrings),
			WideStrings:           len(s.WideStrings),
			Pairs:                 len(s.Pairs),
		}
	}
	if size >= 0 {
		info.Size = &size
	}
	return info
}

// writeJSON marshals v indented and writes it followed by a newline.
func (p *Printer) writeJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(p.writer, "%s\n", data)
	return err
}
