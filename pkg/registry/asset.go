package registry

import (
	"fmt"

	"github.com/joshuapare/assetregkit/internal/buf"
)

// AssetData is one catalog entry.
type AssetData struct {
	ObjectPath  NameIndexFlagged
	PackagePath NameIndexFlagged
	AssetClass  NameIndexFlagged
	PackageName NameIndexFlagged
	AssetName   NameIndexFlagged
	Tags        MapHandle
	BundleCount uint32
	ChunkIDs    []uint32
	Flags       uint32
}

func readU32Array(r *buf.Reader, what string) ([]uint32, error) {
	n, err := r.U32LE()
	if err != nil {
		return nil, fmt.Errorf("%s count: %w", what, err)
	}
	return readArray(r, n, what, (*buf.Reader).U32LE)
}

func writeU32Array(w *buf.Writer, what string, vs []uint32) {
	w.U32LE(count(w, what, uint64(len(vs))))
	for _, v := range vs {
		w.U32LE(v)
	}
}

func readAssetData(r *buf.Reader) (AssetData, error) {
	var (
		a   AssetData
		err error
	)
	names := []struct {
		dst  *NameIndexFlagged
		what string
	}{
		{&a.ObjectPath, "object path"},
		{&a.PackagePath, "package path"},
		{&a.AssetClass, "asset class"},
		{&a.PackageName, "package name"},
		{&a.AssetName, "asset name"},
	}
	for _, n := range names {
		if *n.dst, err = readNameIndexFlagged(r); err != nil {
			return a, fmt.Errorf("%s: %w", n.what, err)
		}
	}
	if a.Tags, err = readMapHandle(r); err != nil {
		return a, fmt.Errorf("tags: %w", err)
	}
	if a.BundleCount, err = r.U32LE(); err != nil {
		return a, fmt.Errorf("bundle count: %w", err)
	}
	if a.ChunkIDs, err = readU32Array(r, "chunk id"); err != nil {
		return a, err
	}
	if a.Flags, err = r.U32LE(); err != nil {
		return a, fmt.Errorf("flags: %w", err)
	}
	return a, nil
}

func (a *AssetData) encode(w *buf.Writer) {
	a.ObjectPath.encode(w)
	a.PackagePath.encode(w)
	a.AssetClass.encode(w)
	a.PackageName.encode(w)
	a.AssetName.encode(w)
	a.Tags.encode(w)
	w.U32LE(a.BundleCount)
	writeU32Array(w, "chunk ids", a.ChunkIDs)
	w.U32LE(a.Flags)
}

// Dependencies is the block that trails the asset list. Its contents are
// interpreted by the cooker, not by this package.
type Dependencies struct {
	// Size is the declared byte size of the dependency payload.
	Size                  uint64
	Dependencies          []uint32
	PackageDataBufferSize uint32
}

func readDependencies(r *buf.Reader) (Dependencies, error) {
	var (
		d   Dependencies
		err error
	)
	if d.Size, err = r.U64LE(); err != nil {
		return d, fmt.Errorf("size: %w", err)
	}
	if d.Dependencies, err = readU32Array(r, "dependency"); err != nil {
		return d, err
	}
	if d.PackageDataBufferSize, err = r.U32LE(); err != nil {
		return d, fmt.Errorf("package data buffer size: %w", err)
	}
	return d, nil
}

func (d *Dependencies) encode(w *buf.Writer) {
	w.U64LE(d.Size)
	writeU32Array(w, "dependencies", d.Dependencies)
	w.U32LE(d.PackageDataBufferSize)
}
