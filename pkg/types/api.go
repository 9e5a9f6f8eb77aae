package types

// -----------------------------------------------------------------------------
// Typed Errors (stable categories for programmatic handling)
// -----------------------------------------------------------------------------

// ErrKind classifies errors so callers can branch on intent rather than text.
type ErrKind int

const (
	ErrKindFraming   ErrKind = iota // store sentinel mismatch
	ErrKindType                     // tagged value type outside 0..6
	ErrKindTruncated                // stream ended mid-field
	ErrKindIO                       // underlying stream failure
	ErrKindCorrupt                  // impossible field value (e.g. zero length prefix)
	ErrKindRange                    // table index out of bounds (eager validation)
	ErrKindOverflow                 // value does not fit its wire field on encode
	ErrKindNoRoot                   // package has no top-level export
	ErrKindImport                   // class reference did not resolve to an import
	ErrKindPath                     // logical path cannot be split into package path/name
)

func (k ErrKind) String() string {
	switch k {
	case ErrKindFraming:
		return "framing"
	case ErrKindType:
		return "type"
	case ErrKindTruncated:
		return "truncated"
	case ErrKindIO:
		return "io"
	case ErrKindCorrupt:
		return "corrupt"
	case ErrKindRange:
		return "range"
	case ErrKindOverflow:
		return "overflow"
	case ErrKindNoRoot:
		return "no-root-export"
	case ErrKindImport:
		return "import"
	case ErrKindPath:
		return "path"
	default:
		return "unknown"
	}
}

// Error is a typed error with an optional underlying cause.
type Error struct {
	Kind ErrKind
	Msg  string
	Err  error // optional underlying cause
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error of the same kind, so errors built around a cause
// still satisfy errors.Is against the sentinels below.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || e == nil || t == nil {
		return false
	}
	return e.Kind == t.Kind
}

// Sentinels commonly returned by implementations.
var (
	// ErrMalformedFraming indicates a store start/end sentinel did not match.
	ErrMalformedFraming = &Error{Kind: ErrKindFraming, Msg: "malformed store framing"}
	// ErrInvalidTypeTag indicates a 3-bit value type tag outside 0..6.
	ErrInvalidTypeTag = &Error{Kind: ErrKindType, Msg: "invalid value type tag"}
	// ErrTruncatedInput indicates the stream ended in the middle of a field.
	ErrTruncatedInput = &Error{Kind: ErrKindTruncated, Msg: "truncated input"}
	// ErrIO indicates the underlying reader or writer failed.
	ErrIO = &Error{Kind: ErrKindIO, Msg: "i/o failure"}
	// ErrCorrupt indicates a field value no encoder could have produced.
	ErrCorrupt = &Error{Kind: ErrKindCorrupt, Msg: "corrupt registry data"}
	// ErrIndexOutOfRange indicates a name, value or pair index past its table.
	ErrIndexOutOfRange = &Error{Kind: ErrKindRange, Msg: "index out of range"}
	// ErrOverflow indicates a value too wide for the field it is encoded into.
	ErrOverflow = &Error{Kind: ErrKindOverflow, Msg: "value overflows wire field"}
	// ErrNoRootExport indicates a package without an export whose outer is null.
	ErrNoRootExport = &Error{Kind: ErrKindNoRoot, Msg: "no root export"}
	// ErrBadImportReference indicates the root export's class did not resolve.
	ErrBadImportReference = &Error{Kind: ErrKindImport, Msg: "bad import reference"}
	// ErrInvalidPath indicates a logical path without a parent component.
	ErrInvalidPath = &Error{Kind: ErrKindPath, Msg: "invalid logical path"}
)

// Wrap builds an error of the given kind around cause.
func Wrap(kind ErrKind, msg string, cause error) error {
	return &Error{Kind: kind, Msg: msg, Err: cause}
}

// -----------------------------------------------------------------------------
// Options
// -----------------------------------------------------------------------------

// DecodeOptions controls registry decoding.
type DecodeOptions struct {
	// SkipValidation disables the bounds pass that runs after a successful
	// decode. Out-of-range indices then surface only when dereferenced
	// (ResolvePair, the printer, Populate's duplicate check).
	// Default: false (validate eagerly)
	SkipValidation bool
}
