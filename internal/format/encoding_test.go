package format

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/assetregkit/internal/buf"
	"github.com/joshuapare/assetregkit/pkg/types"
)

func encode(t *testing.T, fn func(w *buf.Writer)) []byte {
	t.Helper()
	var out bytes.Buffer
	w := buf.NewWriter(&out)
	fn(w)
	require.NoError(t, w.Err())
	return out.Bytes()
}

func TestTextRoundTrip(t *testing.T) {
	for _, s := range []string{"", "hello", "ünïcödé", "NSLOCTEXT(\"\", \"k\", \"v\")"} {
		raw := encode(t, func(w *buf.Writer) { WriteText(w, s) })
		require.Len(t, raw, int(TextSize(s)))
		require.Equal(t, uint32(len(s)+1), binary.LittleEndian.Uint32(raw))
		require.Equal(t, byte(0), raw[len(raw)-1])

		got, err := ReadText(buf.NewReader(bytes.NewReader(raw)))
		require.NoError(t, err)
		require.Equal(t, s, got)
	}
}

func TestTextZeroPrefixIsCorrupt(t *testing.T) {
	_, err := ReadText(buf.NewReader(bytes.NewReader([]byte{0, 0, 0, 0})))
	require.ErrorIs(t, err, types.ErrCorrupt)
}

func TestTextInvalidUTF8IsReplaced(t *testing.T) {
	raw := []byte{3, 0, 0, 0, 'a', 0xff, 0}
	got, err := ReadText(buf.NewReader(bytes.NewReader(raw)))
	require.NoError(t, err)
	require.Equal(t, "a�", got)
}

func TestAnsiRoundTrip(t *testing.T) {
	raw := encode(t, func(w *buf.Writer) {
		WriteAnsi(w, "first")
		WriteAnsi(w, "")
		WriteAnsi(w, "third")
	})
	require.Equal(t, []byte("first\x00\x00third\x00"), raw)

	r := buf.NewReader(bytes.NewReader(raw))
	for _, want := range []string{"first", "", "third"} {
		got, err := ReadAnsi(r)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}
	_, err := ReadAnsi(r)
	require.Error(t, err)
}

func TestAnsiRejectsEmbeddedNUL(t *testing.T) {
	var out bytes.Buffer
	w := buf.NewWriter(&out)
	WriteAnsi(w, "a\x00b")
	require.ErrorIs(t, w.Err(), types.ErrCorrupt)
	require.Zero(t, out.Len())
}

func TestWideRoundTrip(t *testing.T) {
	for _, s := range []string{"", "Wide", "日本語", "emoji \U0001F600", "\ufeffbom"} {
		payload, err := EncodeWide(s)
		require.NoError(t, err)
		raw := encode(t, func(w *buf.Writer) { WriteWide(w, payload) })
		require.Equal(t, WideSize(payload)*2, uint64(len(raw)))

		got, err := ReadWide(buf.NewReader(bytes.NewReader(raw)))
		require.NoError(t, err)
		require.Equal(t, s, got)
	}
}

func TestWideSizeCountsCodeUnits(t *testing.T) {
	payload, err := EncodeWide("a\U0001F600")
	require.NoError(t, err)
	// 'a' + surrogate pair + terminator
	require.Equal(t, uint64(4), WideSize(payload))
}

func TestWideUnpairedSurrogateIsReplaced(t *testing.T) {
	raw := []byte{0x41, 0x00, 0x00, 0xD8, 0x42, 0x00, 0x00, 0x00}
	got, err := ReadWide(buf.NewReader(bytes.NewReader(raw)))
	require.NoError(t, err)
	require.Equal(t, "A�B", got)
}

func TestWideTruncated(t *testing.T) {
	_, err := ReadWide(buf.NewReader(bytes.NewReader([]byte{0x41, 0x00, 0x42})))
	require.Error(t, err)
	require.ErrorIs(t, Classify(err), types.ErrTruncatedInput)
}

func TestClassify(t *testing.T) {
	require.NoError(t, Classify(nil))

	framing := Mismatch("store start", 1, StoreMagicStart)
	require.Same(t, framing, Classify(framing))
	require.ErrorIs(t, framing, types.ErrMalformedFraming)

	other := errors.New("boom")
	classified := Classify(other)
	require.ErrorIs(t, classified, types.ErrIO)
	require.ErrorIs(t, classified, other)
}
