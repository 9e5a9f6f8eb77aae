package buf

import (
	"bytes"
	"errors"
	"io"
	"testing"
)

func TestReaderEndianHelpers(t *testing.T) {
	data := []byte{0x01, 0x23, 0x45, 0x67, 0x89, 0xab, 0xcd, 0xef, 0x01, 0x23, 0x45, 0x67, 0x89, 0xab, 0xcd, 0xef, 0x12, 0x34, 0x56}
	r := NewReader(bytes.NewReader(data))

	if got, err := r.U64LE(); err != nil || got != 0xefcdab8967452301 {
		t.Fatalf("U64LE = 0x%x, %v, want 0xefcdab8967452301", got, err)
	}
	if got, err := r.U32LE(); err != nil || got != 0x67452301 {
		t.Fatalf("U32LE = 0x%x, %v, want 0x67452301", got, err)
	}
	if got, err := r.U16LE(); err != nil || got != 0xab89 {
		t.Fatalf("U16LE = 0x%x, %v, want 0xab89", got, err)
	}
	if got, err := r.U16BE(); err != nil || got != 0xcdef {
		t.Fatalf("U16BE = 0x%x, %v, want 0xcdef", got, err)
	}
	if got, err := r.U8(); err != nil || got != 0x12 {
		t.Fatalf("U8 = 0x%x, %v, want 0x12", got, err)
	}
	if r.Offset() != 17 {
		t.Fatalf("Offset = %d, want 17", r.Offset())
	}

	if _, err := r.U32LE(); !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Fatalf("short U32LE err = %v, want io.ErrUnexpectedEOF", err)
	}
}

func TestReaderEmptyStreamIsUnexpectedEOF(t *testing.T) {
	r := NewReader(bytes.NewReader(nil))
	if _, err := r.U8(); !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Fatalf("U8 err = %v, want io.ErrUnexpectedEOF", err)
	}
	if _, err := r.U64LE(); !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Fatalf("U64LE err = %v, want io.ErrUnexpectedEOF", err)
	}
}

func TestReaderBytesLarge(t *testing.T) {
	data := bytes.Repeat([]byte{0xAB}, chunkSize*2+10)
	r := NewReader(bytes.NewReader(data))
	got, err := r.Bytes(len(data))
	if err != nil {
		t.Fatalf("Bytes: %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Fatalf("Bytes returned %d bytes, want %d identical bytes", len(got), len(data))
	}

	r = NewReader(bytes.NewReader(data[:100]))
	if _, err := r.Bytes(1 << 30); !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Fatalf("oversized Bytes err = %v, want io.ErrUnexpectedEOF", err)
	}
}

func TestReaderUntil(t *testing.T) {
	r := NewReader(bytes.NewReader([]byte("abc\x00def\x00gh")))
	got, err := r.Until(0)
	if err != nil || string(got) != "abc" {
		t.Fatalf("Until = %q, %v, want abc", got, err)
	}
	got, err = r.Until(0)
	if err != nil || string(got) != "def" {
		t.Fatalf("Until = %q, %v, want def", got, err)
	}
	if _, err := r.Until(0); !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Fatalf("unterminated Until err = %v, want io.ErrUnexpectedEOF", err)
	}
}

func TestWriterRoundTrip(t *testing.T) {
	var out bytes.Buffer
	w := NewWriter(&out)
	w.U8(0x12)
	w.U16LE(0xab89)
	w.U16BE(0xcdef)
	w.U32LE(0x67452301)
	w.U64LE(0xefcdab8967452301)
	w.String("hi")
	if err := w.Err(); err != nil {
		t.Fatalf("Err: %v", err)
	}
	if w.Written() != 19 {
		t.Fatalf("Written = %d, want 19", w.Written())
	}

	r := NewReader(bytes.NewReader(out.Bytes()))
	if v, _ := r.U8(); v != 0x12 {
		t.Fatalf("U8 = 0x%x", v)
	}
	if v, _ := r.U16LE(); v != 0xab89 {
		t.Fatalf("U16LE = 0x%x", v)
	}
	if v, _ := r.U16BE(); v != 0xcdef {
		t.Fatalf("U16BE = 0x%x", v)
	}
	if v, _ := r.U32LE(); v != 0x67452301 {
		t.Fatalf("U32LE = 0x%x", v)
	}
	if v, _ := r.U64LE(); v != 0xefcdab8967452301 {
		t.Fatalf("U64LE = 0x%x", v)
	}
}

type failingWriter struct{ calls int }

func (f *failingWriter) Write(p []byte) (int, error) {
	f.calls++
	return 0, errors.New("disk full")
}

func TestWriterStickyError(t *testing.T) {
	fw := &failingWriter{}
	w := NewWriter(fw)
	w.U32LE(1)
	w.U32LE(2)
	w.Bytes([]byte{1, 2, 3})
	if w.Err() == nil {
		t.Fatalf("expected sticky error")
	}
	if fw.calls != 1 {
		t.Fatalf("underlying writer called %d times after failure, want 1", fw.calls)
	}

	w = NewWriter(&bytes.Buffer{})
	first := errors.New("first")
	w.Fail(first)
	w.Fail(errors.New("second"))
	if !errors.Is(w.Err(), first) {
		t.Fatalf("Fail should keep the first error, got %v", w.Err())
	}
}
