package registry

import (
	"fmt"
	"math"

	"github.com/joshuapare/assetregkit/internal/buf"
	"github.com/joshuapare/assetregkit/internal/format"
	"github.com/joshuapare/assetregkit/pkg/types"
)

// Store holds the deduplicated tag values every MapHandle and Pair point
// into. Only the live tables are kept: element counts, payload sizes and
// string offset tables are derived again on every encode.
//
// On-disk layout:
//
//	StoreMagicStart
//	12 x uint32 header (see format.StoreHeaderFields)
//	Texts                  length-prefixed UTF-8
//	NumberlessNames        NameIndexFlagged
//	Names                  NameIndexFlagged
//	NumberlessExportPaths  ExportPath
//	ExportPaths            ExportPath
//	ansi offsets           uint32 per AnsiStrings entry (derived)
//	wide offsets           uint32 per WideStrings entry (derived)
//	AnsiStrings            null-terminated bytes
//	WideStrings            null-terminated UTF-16LE
//	Pairs                  Pair
//	StoreMagicEnd
type Store struct {
	Texts                 []string
	NumberlessNames       []NameIndexFlagged
	Names                 []NameIndexFlagged
	NumberlessExportPaths []ExportPath
	ExportPaths           []ExportPath
	AnsiStrings           []string
	WideStrings           []string
	Pairs                 []Pair

	// PairCount is the second pair count in the header. Only the numberless
	// pair run has a payload in this format revision, so the value cannot be
	// derived from Pairs and is carried through unchanged.
	PairCount uint32
}

// tableLen returns the length of the table a value of type t indexes.
func (s *Store) tableLen(t Type) int {
	switch t {
	case TypeAnsiString:
		return len(s.AnsiStrings)
	case TypeWideString:
		return len(s.WideStrings)
	case TypeNumberlessName:
		return len(s.NumberlessNames)
	case TypeName:
		return len(s.Names)
	case TypeNumberlessExportPath:
		return len(s.NumberlessExportPaths)
	case TypeExportPath:
		return len(s.ExportPaths)
	case TypeLocalizedText:
		return len(s.Texts)
	default:
		return 0
	}
}

// storeHeader mirrors the twelve count/size fields in file order.
type storeHeader struct {
	numberlessNames       uint32
	names                 uint32
	numberlessExportPaths uint32
	exportPaths           uint32
	texts                 uint32
	ansiStrings           uint32
	wideStrings           uint32
	ansiBytes             uint32
	wideUnits             uint32
	numberlessPairs       uint32
	pairs                 uint32
	textBytes             uint32
}

func (h *storeHeader) fields() []*uint32 {
	return []*uint32{
		&h.numberlessNames, &h.names, &h.numberlessExportPaths, &h.exportPaths,
		&h.texts, &h.ansiStrings, &h.wideStrings, &h.ansiBytes, &h.wideUnits,
		&h.numberlessPairs, &h.pairs, &h.textBytes,
	}
}

// capHint bounds up-front allocation for counts read from the stream.
func capHint(n uint32) int {
	const maxHint = 1 << 16
	return int(min(n, maxHint))
}

// readArray decodes n elements; an empty run yields a nil slice.
func readArray[T any](r *buf.Reader, n uint32, what string, read func(*buf.Reader) (T, error)) ([]T, error) {
	if n == 0 {
		return nil, nil
	}
	out := make([]T, 0, capHint(n))
	for i := range n {
		v, err := read(r)
		if err != nil {
			return nil, fmt.Errorf("%s[%d]: %w", what, i, err)
		}
		out = append(out, v)
	}
	return out, nil
}

func readStore(r *buf.Reader) (*Store, error) {
	off := r.Offset()
	magic, err := r.U32LE()
	if err != nil {
		return nil, fmt.Errorf("store start: %w", err)
	}
	if magic != format.StoreMagicStart {
		return nil, format.Mismatch(fmt.Sprintf("store start at 0x%x", off), magic, format.StoreMagicStart)
	}

	var h storeHeader
	for i, f := range h.fields() {
		if *f, err = r.U32LE(); err != nil {
			return nil, fmt.Errorf("store header field %d: %w", i, err)
		}
	}

	s := &Store{PairCount: h.pairs}
	if s.Texts, err = readArray(r, h.texts, "text", format.ReadText); err != nil {
		return nil, err
	}
	if s.NumberlessNames, err = readArray(r, h.numberlessNames, "numberless name", readNameIndexFlagged); err != nil {
		return nil, err
	}
	if s.Names, err = readArray(r, h.names, "name", readNameIndexFlagged); err != nil {
		return nil, err
	}
	if s.NumberlessExportPaths, err = readArray(r, h.numberlessExportPaths, "numberless export path", readExportPath); err != nil {
		return nil, err
	}
	if s.ExportPaths, err = readArray(r, h.exportPaths, "export path", readExportPath); err != nil {
		return nil, err
	}
	// Offset tables are derived from the payloads; skip them.
	for _, n := range []uint32{h.ansiStrings, h.wideStrings} {
		if _, err = readArray(r, n, "string offset", (*buf.Reader).U32LE); err != nil {
			return nil, err
		}
	}
	if s.AnsiStrings, err = readArray(r, h.ansiStrings, "ansi string", format.ReadAnsi); err != nil {
		return nil, err
	}
	if s.WideStrings, err = readArray(r, h.wideStrings, "wide string", format.ReadWide); err != nil {
		return nil, err
	}
	if s.Pairs, err = readArray(r, h.numberlessPairs, "pair", readPair); err != nil {
		return nil, err
	}

	off = r.Offset()
	magic, err = r.U32LE()
	if err != nil {
		return nil, fmt.Errorf("store end: %w", err)
	}
	if magic != format.StoreMagicEnd {
		return nil, format.Mismatch(fmt.Sprintf("store end at 0x%x", off), magic, format.StoreMagicEnd)
	}
	return s, nil
}

// count converts a table length to a header field, failing the writer when
// it does not fit.
func count(w *buf.Writer, what string, n uint64) uint32 {
	if n > math.MaxUint32 {
		w.Fail(fmt.Errorf("%s %d: %w", what, n, types.ErrOverflow))
		return 0
	}
	return uint32(n)
}

func (s *Store) encode(w *buf.Writer) {
	wide := make([][]byte, len(s.WideStrings))
	for i, str := range s.WideStrings {
		payload, err := format.EncodeWide(str)
		if err != nil {
			w.Fail(fmt.Errorf("wide string[%d]: %w", i, err))
			return
		}
		wide[i] = payload
	}

	var ansiBytes, wideUnits, textBytes uint64
	for _, str := range s.AnsiStrings {
		ansiBytes += format.AnsiSize(str)
	}
	for _, p := range wide {
		wideUnits += format.WideSize(p)
	}
	for _, str := range s.Texts {
		textBytes += format.TextSize(str)
	}

	h := storeHeader{
		numberlessNames:       count(w, "numberless names", uint64(len(s.NumberlessNames))),
		names:                 count(w, "names", uint64(len(s.Names))),
		numberlessExportPaths: count(w, "numberless export paths", uint64(len(s.NumberlessExportPaths))),
		exportPaths:           count(w, "export paths", uint64(len(s.ExportPaths))),
		texts:                 count(w, "texts", uint64(len(s.Texts))),
		ansiStrings:           count(w, "ansi strings", uint64(len(s.AnsiStrings))),
		wideStrings:           count(w, "wide strings", uint64(len(s.WideStrings))),
		ansiBytes:             count(w, "ansi bytes", ansiBytes),
		wideUnits:             count(w, "wide units", wideUnits),
		numberlessPairs:       count(w, "pairs", uint64(len(s.Pairs))),
		pairs:                 s.PairCount,
		textBytes:             count(w, "text bytes", textBytes),
	}

	w.U32LE(format.StoreMagicStart)
	for _, f := range h.fields() {
		w.U32LE(*f)
	}

	for _, str := range s.Texts {
		format.WriteText(w, str)
	}
	for _, n := range s.NumberlessNames {
		n.encode(w)
	}
	for _, n := range s.Names {
		n.encode(w)
	}
	for _, ep := range s.NumberlessExportPaths {
		ep.encode(w)
	}
	for _, ep := range s.ExportPaths {
		ep.encode(w)
	}

	var off uint64
	for _, str := range s.AnsiStrings {
		w.U32LE(uint32(off))
		off += format.AnsiSize(str)
	}
	off = 0
	for _, p := range wide {
		w.U32LE(uint32(off))
		off += format.WideSize(p)
	}

	for _, str := range s.AnsiStrings {
		format.WriteAnsi(w, str)
	}
	for _, p := range wide {
		format.WriteWide(w, p)
	}
	for _, p := range s.Pairs {
		p.encode(w)
	}

	w.U32LE(format.StoreMagicEnd)
}
