// Package types holds the error taxonomy and option structs shared by the
// asset registry codec and its tooling.
//
// Design goals:
//   - Typed errors with stable categories (framing/type/truncated/range/...).
//   - errors.Is works against the sentinels even when a cause is attached.
//   - Options carry documented defaults; the zero value is always usable.
//
// This package has no dependencies beyond the standard library.
package types
