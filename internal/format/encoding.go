package format

import (
	"encoding/binary"
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"

	"github.com/joshuapare/assetregkit/internal/buf"
	"github.com/joshuapare/assetregkit/pkg/types"
)

// String encodings used by the registry.
//
//	text   uint32 (len+1) | len bytes UTF-8 | 0x00
//	ansi   bytes ........................... | 0x00
//	wide   uint16 code units (UTF-16LE) .... | 0x0000
//	name   len bytes UTF-8 (length lives in a separate big-endian table)
//
// Decoding never fails on bad text: invalid UTF-8 and unpaired surrogates
// come back as U+FFFD.

var utf16le = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)

// Lossy converts raw bytes to a string, replacing invalid UTF-8 runs.
func Lossy(b []byte) string {
	if utf8.Valid(b) {
		return string(b)
	}
	return strings.ToValidUTF8(string(b), string(utf8.RuneError))
}

// ReadText reads a length-prefixed, null-terminated UTF-8 string.
func ReadText(r *buf.Reader) (string, error) {
	prefix, err := r.U32LE()
	if err != nil {
		return "", fmt.Errorf("text length: %w", err)
	}
	if prefix == 0 {
		return "", fmt.Errorf("text length prefix is zero: %w", types.ErrCorrupt)
	}
	chars, err := r.Bytes(int(prefix - 1))
	if err != nil {
		return "", fmt.Errorf("text bytes: %w", err)
	}
	// terminator is consumed, not checked
	if _, err := r.U8(); err != nil {
		return "", fmt.Errorf("text terminator: %w", err)
	}
	return Lossy(chars), nil
}

// WriteText writes s as a length-prefixed, null-terminated UTF-8 string.
func WriteText(w *buf.Writer, s string) {
	if uint64(len(s))+1 > math.MaxUint32 {
		w.Fail(fmt.Errorf("text of %d bytes: %w", len(s), types.ErrOverflow))
		return
	}
	w.U32LE(uint32(len(s)) + 1)
	w.String(s)
	w.U8(0)
}

// TextSize is the on-disk footprint of s written by WriteText.
func TextSize(s string) uint64 {
	return uint64(TextPrefixSize + len(s) + StringTerminatorSize)
}

// ReadAnsi reads a null-terminated byte string.
func ReadAnsi(r *buf.Reader) (string, error) {
	chars, err := r.Until(0)
	if err != nil {
		return "", fmt.Errorf("ansi string: %w", err)
	}
	return Lossy(chars), nil
}

// WriteAnsi writes s followed by a single zero byte.
func WriteAnsi(w *buf.Writer, s string) {
	if strings.IndexByte(s, 0) >= 0 {
		w.Fail(types.Wrap(types.ErrKindCorrupt, fmt.Sprintf("ansi string %q contains NUL", s), nil))
		return
	}
	w.String(s)
	w.U8(0)
}

// AnsiSize is the on-disk footprint of s written by WriteAnsi.
func AnsiSize(s string) uint64 {
	return uint64(len(s) + StringTerminatorSize)
}

// ReadWide reads UTF-16LE code units up to a zero unit.
func ReadWide(r *buf.Reader) (string, error) {
	var raw []byte
	for {
		unit, err := r.U16LE()
		if err != nil {
			return "", fmt.Errorf("wide string: %w", err)
		}
		if unit == 0 {
			break
		}
		raw = binary.LittleEndian.AppendUint16(raw, unit)
	}
	if len(raw) == 0 {
		return "", nil
	}
	out, err := utf16le.NewDecoder().Bytes(raw)
	if err != nil {
		return "", fmt.Errorf("wide string: %w", err)
	}
	return string(out), nil
}

// EncodeWide returns the UTF-16LE payload of s without its terminator.
func EncodeWide(s string) ([]byte, error) {
	if strings.IndexByte(s, 0) >= 0 {
		return nil, types.Wrap(types.ErrKindCorrupt, fmt.Sprintf("wide string %q contains NUL", s), nil)
	}
	if s == "" {
		return nil, nil
	}
	out, err := utf16le.NewEncoder().Bytes([]byte(s))
	if err != nil {
		return nil, fmt.Errorf("wide string %q: %w", s, err)
	}
	return out, nil
}

// WriteWide writes a payload from EncodeWide followed by a zero code unit.
func WriteWide(w *buf.Writer, payload []byte) {
	w.Bytes(payload)
	w.U16LE(0)
}

// WideSize is the on-disk footprint, in code units, of an EncodeWide payload.
func WideSize(payload []byte) uint64 {
	return uint64(len(payload)/2 + WideStringTerminatorSize)
}
