package ranker

import "fmt"

// ErrorKind classifies ranking errors into categories, one per failure mode
// of the engine's public contract.
type ErrorKind uint8

const (
	// MalformedDFA indicates the AT&T dump could not be parsed, or parsed
	// into an automaton violating the engine's structural invariants
	MalformedDFA ErrorKind = iota

	// UnknownSymbol indicates an input byte that is not in the DFA's
	// alphabet
	UnknownSymbol

	// LengthMismatch indicates a rank input whose length disagrees with
	// the requested length, or exceeds the precomputed maximum
	LengthMismatch

	// NotInLanguage indicates a rank input that walks the DFA into a
	// non-accepting state
	NotInLanguage

	// IndexOutOfRange indicates an unrank index at or beyond the number
	// of strings of the requested length
	IndexOutOfRange

	// BadRange indicates an invalid length window for a count query
	BadRange
)

// String returns a human-readable error kind name
func (k ErrorKind) String() string {
	switch k {
	case MalformedDFA:
		return "MalformedDFA"
	case UnknownSymbol:
		return "UnknownSymbol"
	case LengthMismatch:
		return "LengthMismatch"
	case NotInLanguage:
		return "NotInLanguage"
	case IndexOutOfRange:
		return "IndexOutOfRange"
	case BadRange:
		return "BadRange"
	default:
		return fmt.Sprintf("UnknownErrorKind(%d)", k)
	}
}

// Sentinel errors, one per kind, for use with errors.Is.
var (
	ErrMalformedDFA    = &Error{Kind: MalformedDFA, Message: "malformed DFA dump"}
	ErrUnknownSymbol   = &Error{Kind: UnknownSymbol, Message: "byte not in DFA alphabet"}
	ErrLengthMismatch  = &Error{Kind: LengthMismatch, Message: "string length mismatch"}
	ErrNotInLanguage   = &Error{Kind: NotInLanguage, Message: "string not in language"}
	ErrIndexOutOfRange = &Error{Kind: IndexOutOfRange, Message: "rank index out of range"}
	ErrBadRange        = &Error{Kind: BadRange, Message: "invalid length range"}
)

// Error represents a ranking engine error.
type Error struct {
	Kind    ErrorKind
	Message string
	Cause   error
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying error (for errors.Is/As)
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is implements error comparison for errors.Is
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// errorf builds an Error of the given kind with a formatted message.
func errorf(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}
