// Package buf contains endian-aware stream helpers for the registry codecs.
//
// Reader is forward-only: every field is consumed in file order and nothing
// is ever re-read, so any io.Reader can back a decode. Writer keeps the first
// error it sees and turns every later call into a no-op, which lets encoders
// emit a long run of fields and check once at the end.
package buf

import (
	"bufio"
	"encoding/binary"
	"io"
)

// chunkSize bounds a single allocation when a length field asks for more
// bytes than the stream may actually hold.
const chunkSize = 64 << 10

// Reader decodes little- and big-endian integers from a stream.
// A stream that ends mid-field yields io.ErrUnexpectedEOF.
type Reader struct {
	r   *bufio.Reader
	off int64
	tmp [8]byte
}

// NewReader wraps r for decoding.
func NewReader(r io.Reader) *Reader {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}
	return &Reader{r: br}
}

// Offset returns the number of bytes consumed so far.
func (r *Reader) Offset() int64 { return r.off }

func (r *Reader) fill(n int) ([]byte, error) {
	got, err := io.ReadFull(r.r, r.tmp[:n])
	r.off += int64(got)
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return r.tmp[:n], err
}

// U8 reads one byte.
func (r *Reader) U8() (uint8, error) {
	b, err := r.r.ReadByte()
	if err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return 0, err
	}
	r.off++
	return b, nil
}

// U16LE reads a little-endian uint16.
func (r *Reader) U16LE() (uint16, error) {
	b, err := r.fill(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

// U16BE reads a big-endian uint16.
func (r *Reader) U16BE() (uint16, error) {
	b, err := r.fill(2)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(b), nil
}

// U32LE reads a little-endian uint32.
func (r *Reader) U32LE() (uint32, error) {
	b, err := r.fill(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

// U64LE reads a little-endian uint64.
func (r *Reader) U64LE() (uint64, error) {
	b, err := r.fill(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

// Bytes reads exactly n bytes into a fresh slice. Large requests grow the
// slice chunk by chunk so a corrupt length cannot force a huge allocation
// before the stream runs dry.
func (r *Reader) Bytes(n int) ([]byte, error) {
	if n <= chunkSize {
		out := make([]byte, n)
		got, err := io.ReadFull(r.r, out)
		r.off += int64(got)
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return out, err
	}
	out := make([]byte, 0, chunkSize)
	for len(out) < n {
		step := min(n-len(out), chunkSize)
		start := len(out)
		out = append(out, make([]byte, step)...)
		got, err := io.ReadFull(r.r, out[start:])
		r.off += int64(got)
		if err != nil {
			if err == io.EOF {
				err = io.ErrUnexpectedEOF
			}
			return out[:start+got], err
		}
	}
	return out, nil
}

// Until reads bytes up to and excluding the first occurrence of delim.
// The delimiter is consumed.
func (r *Reader) Until(delim byte) ([]byte, error) {
	line, err := r.r.ReadBytes(delim)
	r.off += int64(len(line))
	if err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return line, err
	}
	return line[:len(line)-1], nil
}

// Writer encodes little- and big-endian integers to a stream. The first
// error sticks; later calls do nothing.
type Writer struct {
	w   io.Writer
	n   int64
	err error
	tmp [8]byte
}

// NewWriter wraps w for encoding.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Err returns the first error encountered, if any.
func (w *Writer) Err() error { return w.err }

// Written returns the number of bytes successfully written.
func (w *Writer) Written() int64 { return w.n }

// Fail records err unless an earlier error is already held.
func (w *Writer) Fail(err error) {
	if w.err == nil {
		w.err = err
	}
}

// Bytes writes b verbatim.
func (w *Writer) Bytes(b []byte) {
	if w.err != nil {
		return
	}
	n, err := w.w.Write(b)
	w.n += int64(n)
	w.err = err
}

// String writes the bytes of s verbatim.
func (w *Writer) String(s string) {
	if w.err != nil {
		return
	}
	n, err := io.WriteString(w.w, s)
	w.n += int64(n)
	w.err = err
}

// U8 writes one byte.
func (w *Writer) U8(v uint8) {
	w.tmp[0] = v
	w.Bytes(w.tmp[:1])
}

// U16LE writes a little-endian uint16.
func (w *Writer) U16LE(v uint16) {
	binary.LittleEndian.PutUint16(w.tmp[:2], v)
	w.Bytes(w.tmp[:2])
}

// U16BE writes a big-endian uint16.
func (w *Writer) U16BE(v uint16) {
	binary.BigEndian.PutUint16(w.tmp[:2], v)
	w.Bytes(w.tmp[:2])
}

// U32LE writes a little-endian uint32.
func (w *Writer) U32LE(v uint32) {
	binary.LittleEndian.PutUint32(w.tmp[:4], v)
	w.Bytes(w.tmp[:4])
}

// U64LE writes a little-endian uint64.
func (w *Writer) U64LE(v uint64) {
	binary.LittleEndian.PutUint64(w.tmp[:8], v)
	w.Bytes(w.tmp[:8])
}
