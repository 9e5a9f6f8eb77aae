package registry

import (
	"fmt"

	"github.com/joshuapare/assetregkit/internal/buf"
	"github.com/joshuapare/assetregkit/internal/format"
	"github.com/joshuapare/assetregkit/pkg/types"
)

// Guid is an opaque 16-byte identifier, copied verbatim.
type Guid [format.GUIDSize]byte

func (g Guid) String() string {
	return fmt.Sprintf("%x-%x-%x-%x", g[0:4], g[4:8], g[8:12], g[12:16])
}

func readGuid(r *buf.Reader) (Guid, error) {
	var g Guid
	b, err := r.Bytes(len(g))
	if err != nil {
		return g, err
	}
	copy(g[:], b)
	return g, nil
}

func (g Guid) encode(w *buf.Writer) { w.Bytes(g[:]) }

// NameIndex is a position in the name table.
type NameIndex uint32

func readNameIndex(r *buf.Reader) (NameIndex, error) {
	v, err := r.U32LE()
	return NameIndex(v), err
}

func (i NameIndex) encode(w *buf.Writer) { w.U32LE(uint32(i)) }

// NameIndexFlagged is a name table index with an optional instance number.
// Index never has its high bit set; HasInstance distinguishes "no instance
// number" from an instance number of zero.
type NameIndexFlagged struct {
	Index       uint32
	Instance    uint32
	HasInstance bool
}

// Plain returns a flagged index without an instance number.
func Plain(i NameIndex) NameIndexFlagged {
	return NameIndexFlagged{Index: uint32(i)}
}

// Numbered returns a flagged index carrying an instance number.
func Numbered(i NameIndex, instance uint32) NameIndexFlagged {
	return NameIndexFlagged{Index: uint32(i), Instance: instance, HasInstance: true}
}

func readNameIndexFlagged(r *buf.Reader) (NameIndexFlagged, error) {
	n, err := r.U32LE()
	if err != nil {
		return NameIndexFlagged{}, err
	}
	if n&format.FlaggedNumberBit == 0 {
		return NameIndexFlagged{Index: n}, nil
	}
	instance, err := r.U32LE()
	if err != nil {
		return NameIndexFlagged{}, err
	}
	return NameIndexFlagged{Index: n & format.FlaggedIndexMask, Instance: instance, HasInstance: true}, nil
}

func (f NameIndexFlagged) encode(w *buf.Writer) {
	if f.Index&format.FlaggedNumberBit != 0 {
		w.Fail(fmt.Errorf("flagged name index %d: %w", f.Index, types.ErrOverflow))
		return
	}
	if !f.HasInstance {
		w.U32LE(f.Index)
		return
	}
	w.U32LE(f.Index | format.FlaggedNumberBit)
	w.U32LE(f.Instance)
}

// ExportPath identifies one object reference by three names.
type ExportPath struct {
	ObjectPath  NameIndexFlagged
	PackagePath NameIndexFlagged
	AssetClass  NameIndexFlagged
}

func readExportPath(r *buf.Reader) (ExportPath, error) {
	var (
		ep  ExportPath
		err error
	)
	if ep.ObjectPath, err = readNameIndexFlagged(r); err != nil {
		return ep, fmt.Errorf("object path: %w", err)
	}
	if ep.PackagePath, err = readNameIndexFlagged(r); err != nil {
		return ep, fmt.Errorf("package path: %w", err)
	}
	if ep.AssetClass, err = readNameIndexFlagged(r); err != nil {
		return ep, fmt.Errorf("asset class: %w", err)
	}
	return ep, nil
}

func (ep ExportPath) encode(w *buf.Writer) {
	ep.ObjectPath.encode(w)
	ep.PackagePath.encode(w)
	ep.AssetClass.encode(w)
}

// MapHandle locates an asset's tag map: the run
// Store.Pairs[PairBegin : PairBegin+Num].
type MapHandle struct {
	HasNumberlessKeys bool
	Num               uint16
	PairBegin         uint32
}

// EmptyMap is the handle written for records that carry no tags.
var EmptyMap = MapHandle{HasNumberlessKeys: true}

func readMapHandle(r *buf.Reader) (MapHandle, error) {
	n, err := r.U64LE()
	if err != nil {
		return MapHandle{}, err
	}
	return MapHandle{
		HasNumberlessKeys: n&format.MapHandleNumberlessBit != 0,
		Num:               uint16((n >> format.MapHandleNumShift) & format.MapHandleNumMask),
		PairBegin:         uint32(n & format.MapHandlePairBeginMask),
	}, nil
}

func (h MapHandle) pack() uint64 {
	v := uint64(h.Num)<<format.MapHandleNumShift | uint64(h.PairBegin)
	if h.HasNumberlessKeys {
		v |= format.MapHandleNumberlessBit
	}
	return v
}

func (h MapHandle) encode(w *buf.Writer) { w.U64LE(h.pack()) }
