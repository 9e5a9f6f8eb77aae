package printer

import (
	"fmt"
	"io"
	"sort"

	"github.com/joshuapare/assetregkit/pkg/registry"
)

const (
	DefaultIndentSize = 2
)

// Format specifies the output format for printing.
type Format string

const (
	// FormatText outputs human-readable text format.
	FormatText Format = "text"

	// FormatJSON outputs JSON format.
	FormatJSON Format = "json"
)

// Options controls printing behavior.
type Options struct {
	// Format specifies output format (text, json).
	// Default: FormatText
	Format Format

	// IndentSize is the number of spaces per indent level (text format only).
	// Default: 2
	IndentSize int

	// ShowTags includes each asset's resolved tag map.
	// Default: true
	ShowTags bool

	// ShowChunks includes chunk IDs.
	// Default: false
	ShowChunks bool

	// ShowValueTypes includes the store table each tag value came from.
	// Default: true
	ShowValueTypes bool
}

// DefaultOptions returns sensible defaults for printing.
func DefaultOptions() Options {
	return Options{
		Format:         FormatText,
		IndentSize:     DefaultIndentSize,
		ShowTags:       true,
		ShowChunks:     false,
		ShowValueTypes: true,
	}
}

// Printer renders registry structures with every index resolved to text.
// It never modifies the registry.
type Printer struct {
	opts   Options
	writer io.Writer
	reg    *registry.Registry
}

// New creates a new Printer.
//
// Example:
//
//	reg, _ := registry.Open("AssetRegistry.bin", types.DecodeOptions{})
//	p := printer.New(reg, os.Stdout, printer.DefaultOptions())
//	p.PrintAssets()
func New(reg *registry.Registry, w io.Writer, opts Options) *Printer {
	return &Printer{
		reg:    reg,
		writer: w,
		opts:   opts,
	}
}

// PrintAsset prints one record.
func (p *Printer) PrintAsset(a *registry.AssetData) error {
	ra, err := p.reg.ResolveAsset(a)
	if err != nil {
		return fmt.Errorf("resolve asset: %w", err)
	}
	if p.opts.Format == FormatJSON {
		return p.writeJSON(p.jsonAsset(ra))
	}
	return p.printAssetText(ra, 0)
}

// PrintAssets prints every record, sorted by object path.
func (p *Printer) PrintAssets() error {
	assets := make([]registry.ResolvedAsset, 0, len(p.reg.Assets))
	for i := range p.reg.Assets {
		ra, err := p.reg.ResolveAsset(&p.reg.Assets[i])
		if err != nil {
			return fmt.Errorf("resolve asset %d: %w", i, err)
		}
		assets = append(assets, ra)
	}
	sort.SliceStable(assets, func(i, j int) bool {
		return assets[i].ObjectPath < assets[j].ObjectPath
	})

	if p.opts.Format == FormatJSON {
		out := make([]jsonAsset, 0, len(assets))
		for _, ra := range assets {
			out = append(out, p.jsonAsset(ra))
		}
		return p.writeJSON(out)
	}
	for i, ra := range assets {
		if i > 0 {
			fmt.Fprintln(p.writer)
		}
		if err := p.printAssetText(ra, 0); err != nil {
			return err
		}
	}
	return nil
}

// PrintExportPath prints one export path.
func (p *Printer) PrintExportPath(ep registry.ExportPath) error {
	rp, err := p.reg.ResolveExportPath(ep)
	if err != nil {
		return fmt.Errorf("resolve export path: %w", err)
	}
	if p.opts.Format == FormatJSON {
		return p.writeJSON(rp)
	}
	_, err = fmt.Fprintln(p.writer, rp.String())
	return err
}

// PrintTags prints the tag map h refers to.
func (p *Printer) PrintTags(h registry.MapHandle) error {
	tags, err := p.reg.Tags(h)
	if err != nil {
		return err
	}
	if p.opts.Format == FormatJSON {
		return p.writeJSON(p.jsonTags(tags))
	}
	for _, tag := range tags {
		p.printTagText(tag, 0)
	}
	return nil
}

// PrintPair prints a single tag.
func (p *Printer) PrintPair(pair registry.Pair) error {
	tag, err := p.reg.ResolvePair(pair)
	if err != nil {
		return err
	}
	if p.opts.Format == FormatJSON {
		return p.writeJSON(p.jsonTag(tag))
	}
	p.printTagText(tag, 0)
	return nil
}

// PrintNames prints the global name table in index order.
func (p *Printer) PrintNames() error {
	names := []string{}
	if p.reg.Names != nil {
		names = p.reg.Names.Strings()
	}
	if p.opts.Format == FormatJSON {
		return p.writeJSON(names)
	}
	for i, s := range names {
		fmt.Fprintf(p.writer, "%6d  %s\n", i, s)
	}
	return nil
}

// PrintInfo prints header values and table sizes. size is the encoded byte
// length of the registry, or a negative value to omit it.
func (p *Printer) PrintInfo(size int64) error {
	info := p.info(size)
	if p.opts.Format == FormatJSON {
		return p.writeJSON(info)
	}
	return p.printInfoText(info)
}
