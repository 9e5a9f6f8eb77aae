package registry

import (
	"fmt"

	"github.com/joshuapare/assetregkit/internal/buf"
	"github.com/joshuapare/assetregkit/internal/format"
	"github.com/joshuapare/assetregkit/pkg/types"
)

// Type selects which store table a tag value lives in.
type Type uint8

const (
	TypeAnsiString Type = iota
	TypeWideString
	TypeNumberlessName
	TypeName
	TypeNumberlessExportPath
	TypeExportPath
	TypeLocalizedText
)

var typeNames = [...]string{
	TypeAnsiString:           "AnsiString",
	TypeWideString:           "WideString",
	TypeNumberlessName:       "NumberlessName",
	TypeName:                 "Name",
	TypeNumberlessExportPath: "NumberlessExportPath",
	TypeExportPath:           "ExportPath",
	TypeLocalizedText:        "LocalizedText",
}

// Valid reports whether t is one of the seven defined kinds.
func (t Type) Valid() bool { return int(t) < format.ValueTypeCount }

func (t Type) String() string {
	if !t.Valid() {
		return fmt.Sprintf("Type(%d)", uint8(t))
	}
	return typeNames[t]
}

// ParseType decodes a raw tag.
func ParseType(v uint32) (Type, error) {
	if v >= format.ValueTypeCount {
		return 0, fmt.Errorf("type tag %d: %w", v, types.ErrInvalidTypeTag)
	}
	return Type(v), nil
}

// ValueRef points at one value in the store: Index selects an element of
// the table chosen by Type.
type ValueRef struct {
	Type  Type
	Index uint32
}

func unpackValueRef(word uint32) (ValueRef, error) {
	t, err := ParseType(word & format.ValueTypeMask)
	if err != nil {
		return ValueRef{}, err
	}
	return ValueRef{Type: t, Index: word >> format.ValueTypeBits}, nil
}

// pack fails rather than wraps when the index needs more than 29 bits.
func (v ValueRef) pack() (uint32, error) {
	if !v.Type.Valid() {
		return 0, fmt.Errorf("type %d: %w", uint8(v.Type), types.ErrInvalidTypeTag)
	}
	if v.Index > format.MaxValueIndex {
		return 0, fmt.Errorf("value index %d exceeds %d: %w", v.Index, format.MaxValueIndex, types.ErrOverflow)
	}
	return uint32(v.Type) | v.Index<<format.ValueTypeBits, nil
}

// Pair is one tag: a key name and the value it maps to.
type Pair struct {
	Name  NameIndex
	Value ValueRef
}

func readPair(r *buf.Reader) (Pair, error) {
	name, err := readNameIndex(r)
	if err != nil {
		return Pair{}, err
	}
	word, err := r.U32LE()
	if err != nil {
		return Pair{}, err
	}
	v, err := unpackValueRef(word)
	if err != nil {
		return Pair{}, err
	}
	return Pair{Name: name, Value: v}, nil
}

func (p Pair) encode(w *buf.Writer) {
	word, err := p.Value.pack()
	if err != nil {
		w.Fail(err)
		return
	}
	p.Name.encode(w)
	w.U32LE(word)
}
