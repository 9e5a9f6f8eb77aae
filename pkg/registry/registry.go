package registry

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/joshuapare/assetregkit/internal/buf"
	"github.com/joshuapare/assetregkit/internal/format"
	"github.com/joshuapare/assetregkit/internal/mmfile"
	"github.com/joshuapare/assetregkit/internal/writer"
	"github.com/joshuapare/assetregkit/pkg/types"
)

// Registry is a decoded asset registry file.
//
// Name hashes, the name count and the name byte total are not kept; they
// are derived from Names on every encode. A Registry has no internal
// locking: callers that populate from several goroutines must serialize
// access to the whole value.
type Registry struct {
	Version      Guid
	VersionInt   uint32
	HashVersion  uint64
	Names        *Names
	Store        *Store
	Assets       []AssetData
	Dependencies Dependencies
}

// New returns an empty registry with the given header values.
func New(version Guid, versionInt uint32, hashVersion uint64) *Registry {
	return &Registry{
		Version:     version,
		VersionInt:  versionInt,
		HashVersion: hashVersion,
		Names:       NewNames(),
		Store:       &Store{},
	}
}

// Decode reads a registry from r and, unless opts.SkipValidation is set,
// checks every table index it contains. Any failure aborts the decode;
// no partial registry is returned.
func Decode(r io.Reader, opts types.DecodeOptions) (*Registry, error) {
	reg, err := decode(buf.NewReader(r))
	if err != nil {
		return nil, format.Classify(err)
	}
	if !opts.SkipValidation {
		if err := reg.Validate(); err != nil {
			return nil, err
		}
	}
	return reg, nil
}

// Parse decodes a registry held in memory.
func Parse(data []byte, opts types.DecodeOptions) (*Registry, error) {
	return Decode(bytes.NewReader(data), opts)
}

// Open memory-maps the registry file at path and decodes it. Every string
// is copied out of the mapping, so the returned registry does not pin it.
func Open(path string, opts types.DecodeOptions) (*Registry, error) {
	data, cleanup, err := mmfile.Map(path)
	if err != nil {
		return nil, types.Wrap(types.ErrKindIO, "open "+path, err)
	}
	defer func() { _ = cleanup() }()

	reg, err := Parse(data, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return reg, nil
}

func decode(r *buf.Reader) (*Registry, error) {
	var (
		reg Registry
		err error
	)
	if reg.Version, err = readGuid(r); err != nil {
		return nil, fmt.Errorf("version: %w", err)
	}
	if reg.VersionInt, err = r.U32LE(); err != nil {
		return nil, fmt.Errorf("version int: %w", err)
	}
	nameCount, err := r.U32LE()
	if err != nil {
		return nil, fmt.Errorf("name count: %w", err)
	}
	if _, err = r.U32LE(); err != nil {
		return nil, fmt.Errorf("name byte total: %w", err)
	}
	if reg.HashVersion, err = r.U64LE(); err != nil {
		return nil, fmt.Errorf("hash version: %w", err)
	}

	if reg.Names, err = readNames(r, nameCount); err != nil {
		return nil, err
	}
	if reg.Store, err = readStore(r); err != nil {
		return nil, err
	}

	assetCount, err := r.U32LE()
	if err != nil {
		return nil, fmt.Errorf("asset count: %w", err)
	}
	if reg.Assets, err = readArray(r, assetCount, "asset", readAssetData); err != nil {
		return nil, err
	}
	if reg.Dependencies, err = readDependencies(r); err != nil {
		return nil, fmt.Errorf("dependencies: %w", err)
	}
	return &reg, nil
}

// readNames reads the three name passes: hashes (discarded), big-endian
// byte lengths, then the raw bytes.
func readNames(r *buf.Reader, n uint32) (*Names, error) {
	if _, err := readArray(r, n, "name hash", (*buf.Reader).U64LE); err != nil {
		return nil, err
	}
	lengths, err := readArray(r, n, "name length", (*buf.Reader).U16BE)
	if err != nil {
		return nil, err
	}
	strs := make([]string, 0, len(lengths))
	for i, l := range lengths {
		b, err := r.Bytes(int(l))
		if err != nil {
			return nil, fmt.Errorf("name[%d]: %w", i, err)
		}
		strs = append(strs, format.Lossy(b))
	}
	return NewNames(strs...), nil
}

func (reg *Registry) names() *Names {
	if reg.Names == nil {
		reg.Names = NewNames()
	}
	return reg.Names
}

func (reg *Registry) store() *Store {
	if reg.Store == nil {
		reg.Store = &Store{}
	}
	return reg.Store
}

// WriteTo encodes the registry to w. It implements io.WriterTo.
func (reg *Registry) WriteTo(w io.Writer) (int64, error) {
	bw := buf.NewWriter(w)
	reg.encode(bw)
	return bw.Written(), format.Classify(bw.Err())
}

// MarshalBinary encodes the registry into a fresh buffer.
func (reg *Registry) MarshalBinary() ([]byte, error) {
	var out bytes.Buffer
	if _, err := reg.WriteTo(&out); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

// WriteFile streams the registry into a temp file and renames it over path.
// Encode failures leave path untouched and keep their own error kind.
func (reg *Registry) WriteFile(path string) error {
	fw := &writer.FileWriter{Path: path}
	if err := fw.Commit(reg); err != nil {
		var typed *types.Error
		if errors.As(err, &typed) {
			return fmt.Errorf("write %s: %w", path, err)
		}
		return types.Wrap(types.ErrKindIO, "write "+path, err)
	}
	return nil
}

func (reg *Registry) encode(w *buf.Writer) {
	names := reg.names().Strings()

	var nameBytes uint64
	for i, s := range names {
		if len(s) > format.MaxNameLength {
			w.Fail(fmt.Errorf("name[%d] is %d bytes: %w", i, len(s), types.ErrOverflow))
			return
		}
		nameBytes += uint64(len(s))
	}

	reg.Version.encode(w)
	w.U32LE(reg.VersionInt)
	w.U32LE(count(w, "names", uint64(len(names))))
	w.U32LE(count(w, "name bytes", nameBytes))
	w.U64LE(reg.HashVersion)

	for _, s := range names {
		w.U64LE(format.NameHash(s))
	}
	for _, s := range names {
		w.U16BE(uint16(len(s)))
	}
	for _, s := range names {
		w.String(s)
	}

	reg.store().encode(w)

	w.U32LE(count(w, "assets", uint64(len(reg.Assets))))
	for i := range reg.Assets {
		reg.Assets[i].encode(w)
	}
	reg.Dependencies.encode(w)
}
