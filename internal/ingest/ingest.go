// Package ingest adds batches of parsed packages to a registry.
//
// Packages are loaded concurrently, but Populate runs on the calling
// goroutine in input order: the registry has no internal locking, and a
// fixed order keeps the resulting name table reproducible.
package ingest

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/joshuapare/assetregkit/internal/logctx"
	"github.com/joshuapare/assetregkit/internal/paths"
	"github.com/joshuapare/assetregkit/pkg/registry"
)

// Entry is one package to add.
type Entry struct {
	// Path is the archive-relative path of the package file, extension
	// included or not.
	Path string
	// Load parses the package. It may run concurrently with other loads.
	Load func(ctx context.Context) (registry.Package, error)
}

// Options controls a Run.
type Options struct {
	// Workers bounds concurrent Load calls.
	// Default: runtime.GOMAXPROCS(0)
	Workers int
}

// Stats counts what a Run did with its entries.
type Stats struct {
	Added     int // packages that produced new records
	Duplicate int // packages whose object path was already registered
	Unmapped  int // paths outside every known mount root
	Records   int // records appended, Blueprint companions included
}

type loaded struct {
	logical string
	pkg     registry.Package
}

// Run loads every entry and populates reg with the ones whose path maps to
// a logical path. The first load or Populate failure stops the run; records
// added before it stay in reg.
func Run(ctx context.Context, reg *registry.Registry, entries []Entry, opts Options) (Stats, error) {
	log := logctx.FromContext(ctx)
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	var stats Stats
	results := make([]loaded, len(entries))

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)
	for i, e := range entries {
		trimmed, _ := paths.TrimPackageExt(e.Path)
		logical, ok := paths.PakToGamePath(trimmed)
		if !ok {
			log.Debug().Str("path", e.Path).Msg("skipping unmapped path")
			stats.Unmapped++
			continue
		}
		results[i].logical = logical
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			pkg, err := e.Load(egCtx)
			if err != nil {
				return fmt.Errorf("load %s: %w", e.Path, err)
			}
			if pkg == nil {
				return fmt.Errorf("load %s: no package returned", e.Path)
			}
			results[i].pkg = pkg
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return stats, err
	}

	for i, r := range results {
		if r.pkg == nil {
			continue
		}
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		before := len(reg.Assets)
		if err := reg.Populate(r.logical, r.pkg); err != nil {
			return stats, fmt.Errorf("populate %s: %w", entries[i].Path, err)
		}
		added := len(reg.Assets) - before
		if added == 0 {
			stats.Duplicate++
			log.Debug().Str("package", r.logical).Msg("already registered")
			continue
		}
		stats.Added++
		stats.Records += added
		log.Debug().Str("package", r.logical).Int("records", added).Msg("registered")
	}

	log.Info().
		Int("added", stats.Added).
		Int("duplicate", stats.Duplicate).
		Int("unmapped", stats.Unmapped).
		Int("records", stats.Records).
		Msg("ingest complete")
	return stats, nil
}
