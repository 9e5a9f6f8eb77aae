package ingest

import (
	"context"

	"github.com/joshuapare/assetregkit/internal/manifest"
	"github.com/joshuapare/assetregkit/pkg/registry"
)

// FromManifest returns one entry per manifest package, in manifest order.
func FromManifest(m *manifest.Manifest) []Entry {
	entries := make([]Entry, len(m.Packages))
	for i := range m.Packages {
		pkg := &m.Packages[i]
		entries[i] = Entry{
			Path: pkg.Path,
			Load: func(context.Context) (registry.Package, error) { return pkg, nil },
		}
	}
	return entries
}
