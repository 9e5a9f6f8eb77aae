package format

import (
	"errors"
	"fmt"
	"io"

	"github.com/joshuapare/assetregkit/pkg/types"
)

// Classify maps a raw stream error onto the public taxonomy. Errors already
// carrying a *types.Error pass through untouched; a stream that ran dry
// becomes ErrTruncatedInput; anything else is an ErrIO around the cause.
func Classify(err error) error {
	if err == nil {
		return nil
	}
	var typed *types.Error
	if errors.As(err, &typed) {
		return err
	}
	if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
		return types.Wrap(types.ErrKindTruncated, "truncated input", err)
	}
	return types.Wrap(types.ErrKindIO, "i/o failure", err)
}

// Mismatch reports a sentinel that did not carry the expected value.
func Mismatch(what string, got, want uint32) error {
	return fmt.Errorf("%s: got 0x%08x, want 0x%08x: %w", what, got, want, types.ErrMalformedFraming)
}
