package registry

import (
	"bytes"
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/assetregkit/internal/format"
	"github.com/joshuapare/assetregkit/pkg/types"
)

func TestRoundTrip(t *testing.T) {
	reg := sampleRegistry()
	data := marshal(t, reg)

	got, err := Parse(data, types.DecodeOptions{})
	require.NoError(t, err)
	require.Equal(t, reg, got)
	require.Equal(t, data, marshal(t, got))
}

func TestEmptyRegistry(t *testing.T) {
	reg := New(Guid{}, 1, 1)
	data := marshal(t, reg)

	want := format.RegistryHeaderSize +
		4 + 4*format.StoreHeaderFields + 4 + // store
		4 + // asset count
		8 + 4 + 4 // dependencies
	require.Len(t, data, want)
	require.Equal(t, 112, want)

	got, err := Parse(data, types.DecodeOptions{})
	require.NoError(t, err)
	require.Equal(t, reg, got)
}

func TestNameTableEncoding(t *testing.T) {
	reg := New(Guid{}, 1, 1)
	reg.Names.Intern("Timestamp")
	reg.Names.Intern("ab")
	data := marshal(t, reg)

	h := format.GUIDSize
	require.Equal(t, uint32(2), binary.LittleEndian.Uint32(data[h+4:]))
	require.Equal(t, uint32(len("Timestamp")+len("ab")), binary.LittleEndian.Uint32(data[h+8:]))

	off := format.RegistryHeaderSize
	require.Equal(t, format.NameHash("Timestamp"), binary.LittleEndian.Uint64(data[off:]))
	require.Equal(t, format.NameHash("ab"), binary.LittleEndian.Uint64(data[off+8:]))
	off += 16
	require.Equal(t, []byte{0, 9, 0, 2}, data[off:off+4])
	off += 4
	require.Equal(t, "Timestampab", string(data[off:off+11]))
}

func TestDecodeIgnoresStoredHashes(t *testing.T) {
	reg := New(Guid{}, 1, 1)
	reg.Names.Intern("Name")
	data := marshal(t, reg)

	binary.LittleEndian.PutUint64(data[format.RegistryHeaderSize:], 0xDEADBEEF)
	got, err := Parse(data, types.DecodeOptions{})
	require.NoError(t, err)
	require.Equal(t, reg, got)
}

func TestDecodeInvalidUTF8Name(t *testing.T) {
	reg := New(Guid{}, 1, 1)
	reg.Names.Intern("a\xffb")
	got, err := Parse(marshal(t, reg), types.DecodeOptions{})
	require.NoError(t, err)
	s, ok := got.Names.Lookup(0)
	require.True(t, ok)
	require.Equal(t, "a\uFFFDb", s)
}

func TestStoreFramingCorruption(t *testing.T) {
	data := marshal(t, New(Guid{}, 1, 1))
	start := format.RegistryHeaderSize
	end := start + 4 + 4*format.StoreHeaderFields

	for _, tc := range []struct {
		off  int
		want string
	}{
		{start, "store start at 0x24"},
		{end, "store end at 0x58"},
	} {
		bad := append([]byte(nil), data...)
		bad[tc.off] ^= 0xFF
		got, err := Parse(bad, types.DecodeOptions{})
		require.ErrorIs(t, err, types.ErrMalformedFraming)
		require.ErrorContains(t, err, tc.want)
		require.Nil(t, got)
	}
}

func TestTruncatedInput(t *testing.T) {
	data := marshal(t, sampleRegistry())
	for n := 0; n < len(data); n++ {
		got, err := Parse(data[:n], types.DecodeOptions{})
		require.ErrorIs(t, err, types.ErrTruncatedInput, "prefix of %d bytes", n)
		require.Nil(t, got)
	}
}

func TestInvalidTypeTagOnDecode(t *testing.T) {
	reg := New(Guid{}, 1, 1)
	reg.Store.AnsiStrings = []string{"v"}
	reg.Store.Pairs = []Pair{{Name: reg.Names.Intern("k"), Value: ValueRef{Type: TypeAnsiString}}}
	data := marshal(t, reg)

	// last pair word sits before the end magic, asset count and dependencies
	word := len(data) - 4 - 4 - 16 - 4
	require.Equal(t, uint32(TypeAnsiString), binary.LittleEndian.Uint32(data[word:]))
	data[word] |= 7

	_, err := Parse(data, types.DecodeOptions{})
	require.ErrorIs(t, err, types.ErrInvalidTypeTag)
}

func TestZeroTextPrefixIsCorrupt(t *testing.T) {
	reg := New(Guid{}, 1, 1)
	reg.Store.Texts = []string{"t"}
	data := marshal(t, reg)

	text := format.RegistryHeaderSize + 4 + 4*format.StoreHeaderFields
	binary.LittleEndian.PutUint32(data[text:], 0)
	_, err := Parse(data, types.DecodeOptions{})
	require.ErrorIs(t, err, types.ErrCorrupt)
}

func TestEncodeOverflow(t *testing.T) {
	long := New(Guid{}, 1, 1)
	long.Names.Intern(strings.Repeat("n", format.MaxNameLength+1))
	_, err := long.MarshalBinary()
	require.ErrorIs(t, err, types.ErrOverflow)

	wide := New(Guid{}, 1, 1)
	wide.Store.Pairs = []Pair{{Value: ValueRef{Type: TypeName, Index: format.MaxValueIndex + 1}}}
	_, err = wide.MarshalBinary()
	require.ErrorIs(t, err, types.ErrOverflow)

	edge := New(Guid{}, 1, 1)
	edge.Names.Intern(strings.Repeat("n", format.MaxNameLength))
	_, err = edge.MarshalBinary()
	require.NoError(t, err)
}

type failingWriter struct{ after int }

func (w *failingWriter) Write(p []byte) (int, error) {
	if len(p) > w.after {
		n := w.after
		w.after = 0
		return n, errors.New("disk full")
	}
	w.after -= len(p)
	return len(p), nil
}

func TestWriteToReportsIOFailure(t *testing.T) {
	n, err := sampleRegistry().WriteTo(&failingWriter{after: 40})
	require.ErrorIs(t, err, types.ErrIO)
	require.Equal(t, int64(40), n)
}

func TestWriteToMatchesMarshal(t *testing.T) {
	reg := sampleRegistry()
	var out bytes.Buffer
	n, err := reg.WriteTo(&out)
	require.NoError(t, err)
	require.Equal(t, int64(out.Len()), n)
	require.Equal(t, marshal(t, reg), out.Bytes())
}

func TestDecodeReportsReaderFailure(t *testing.T) {
	_, err := Decode(&failingReader{}, types.DecodeOptions{})
	require.ErrorIs(t, err, types.ErrIO)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("device gone") }

func TestFileRoundTrip(t *testing.T) {
	reg := sampleRegistry()
	path := filepath.Join(t.TempDir(), "AssetRegistry.bin")
	require.NoError(t, reg.WriteFile(path))

	got, err := Open(path, types.DecodeOptions{})
	require.NoError(t, err)
	require.Equal(t, reg, got)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, marshal(t, reg), raw)
}

func TestWriteFileEncodeFailureKeepsOriginal(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "AssetRegistry.bin")
	require.NoError(t, sampleRegistry().WriteFile(path))
	before, err := os.ReadFile(path)
	require.NoError(t, err)

	long := New(Guid{}, 1, 1)
	long.Names.Intern(strings.Repeat("n", format.MaxNameLength+1))
	err = long.WriteFile(path)
	require.ErrorIs(t, err, types.ErrOverflow)
	require.NotErrorIs(t, err, types.ErrIO)

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, before, after)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

func TestWriteFileMissingDirectory(t *testing.T) {
	err := sampleRegistry().WriteFile(filepath.Join(t.TempDir(), "missing", "AssetRegistry.bin"))
	require.ErrorIs(t, err, types.ErrIO)
}

func TestOpenMissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing.bin"), types.DecodeOptions{})
	require.ErrorIs(t, err, types.ErrIO)
}
