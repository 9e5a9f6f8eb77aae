package printer

import (
	"fmt"
	"strings"

	"github.com/joshuapare/assetregkit/pkg/registry"
)

// printAssetText prints a resolved record in human-readable text format.
func (p *Printer) printAssetText(a registry.ResolvedAsset, depth int) error {
	indent := strings.Repeat(" ", depth*p.opts.IndentSize)
	field := indent + strings.Repeat(" ", p.opts.IndentSize)

	fmt.Fprintf(p.writer, "%s[%s]\n", indent, a.ObjectPath)
	fmt.Fprintf(p.writer, "%sClass: %s\n", field, a.AssetClass)
	fmt.Fprintf(p.writer, "%sPackage: %s\n", field, a.PackageName)
	fmt.Fprintf(p.writer, "%sPackage Path: %s\n", field, a.PackagePath)
	fmt.Fprintf(p.writer, "%sAsset Name: %s\n", field, a.AssetName)
	fmt.Fprintf(p.writer, "%sBundles: %d, Chunks: %d, Flags: 0x%08X\n", field, a.BundleCount, len(a.ChunkIDs), a.Flags)

	if p.opts.ShowChunks && len(a.ChunkIDs) > 0 {
		ids := make([]string, len(a.ChunkIDs))
		for i, id := range a.ChunkIDs {
			ids[i] = fmt.Sprint(id)
		}
		fmt.Fprintf(p.writer, "%sChunk IDs: %s\n", field, strings.Join(ids, ", "))
	}

	if p.opts.ShowTags {
		fmt.Fprintf(p.writer, "%sTags: %d\n", field, len(a.Tags))
		for _, tag := range a.Tags {
			p.printTagText(tag, depth+2)
		}
	}
	return nil
}

// printTagText prints one tag as: "Key" [Type] = "value"
func (p *Printer) printTagText(tag registry.Tag, depth int) {
	indent := strings.Repeat(" ", depth*p.opts.IndentSize)

	fmt.Fprintf(p.writer, "%s%q", indent, tag.Key)
	if p.opts.ShowValueTypes {
		fmt.Fprintf(p.writer, " [%s]", tag.TypeName)
	}
	if tag.ExportPath != nil {
		fmt.Fprintf(p.writer, " = %s\n", tag.ExportPath)
		return
	}
	fmt.Fprintf(p.writer, " = %q\n", tag.Value)
}

func (p *Printer) printInfoText(info jsonInfo) error {
	rows := []struct {
		label string
		value any
	}{
		{"Version", info.Version},
		{"Version Int", info.VersionInt},
		{"Hash Version", info.HashVersion},
		{"Names", info.Names},
		{"Assets", info.Assets},
		{"Pairs", info.Store.Pairs},
		{"Texts", info.Store.Texts},
		{"Ansi Strings", info.Store.AnsiStrings},
		{"Wide Strings", info.Store.WideStrings},
		{"Store Names", info.Store.NumberlessNames + info.Store.Names},
		{"Export Paths", info.Store.NumberlessExportPaths + info.Store.ExportPaths},
		{"Dependencies", info.Dependencies},
	}
	if info.Size != nil {
		rows = append(rows, struct {
			label string
			value any
		}{"Size", fmt.Sprintf("%d bytes", *info.Size)})
	}
	for _, r := range rows {
		if _, err := fmt.Fprintf(p.writer, "%-14s %v\n", r.label+":", r.value); err != nil {
			return err
		}
	}
	return nil
}
