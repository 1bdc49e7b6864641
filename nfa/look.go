package nfa

import "strings"

// Look is a zero-width assertion carried by a StateLook state.
//
// With one-line parse semantics, ^ and $ only ever assert the string
// boundaries, so there are no line-oriented variants.
type Look uint8

const (
	// LookStartText asserts the position before the first byte (\A, ^)
	LookStartText Look = 1 << iota

	// LookEndText asserts the position after the last byte (\z, $)
	LookEndText

	// LookWordBoundary asserts a \b word boundary: exactly one of the
	// surrounding positions is a word byte
	LookWordBoundary

	// LookNoWordBoundary asserts \B, the negation of LookWordBoundary
	LookNoWordBoundary
)

// String returns a human-readable representation of the assertion.
func (l Look) String() string {
	var parts []string
	if l&LookStartText != 0 {
		parts = append(parts, "StartText")
	}
	if l&LookEndText != 0 {
		parts = append(parts, "EndText")
	}
	if l&LookWordBoundary != 0 {
		parts = append(parts, "WordBoundary")
	}
	if l&LookNoWordBoundary != 0 {
		parts = append(parts, "NoWordBoundary")
	}
	if len(parts) == 0 {
		return "None"
	}
	return strings.Join(parts, "|")
}

// IsWordByte reports whether b is a word byte for \b / \B purposes.
// Latin-1 semantics use the ASCII word set [0-9A-Za-z_].
func IsWordByte(b byte) bool {
	return b == '_' ||
		('0' <= b && b <= '9') ||
		('A' <= b && b <= 'Z') ||
		('a' <= b && b <= 'z')
}

// LookContext describes the surroundings of one input position, which is all
// that is needed to evaluate any Look assertion.
type LookContext struct {
	// AtStart is true at the position before the first byte
	AtStart bool

	// AtEnd is true at the position after the last byte
	AtEnd bool

	// PrevIsWord is true if the byte before the position is a word byte
	// (false at the start of input)
	PrevIsWord bool

	// NextIsWord is true if the byte after the position is a word byte
	// (false at the end of input)
	NextIsWord bool
}

// Holds reports whether the assertion l is satisfied in context ctx.
func (l Look) Holds(ctx LookContext) bool {
	if l&LookStartText != 0 && !ctx.AtStart {
		return false
	}
	if l&LookEndText != 0 && !ctx.AtEnd {
		return false
	}
	boundary := ctx.PrevIsWord != ctx.NextIsWord
	if l&LookWordBoundary != 0 && !boundary {
		return false
	}
	if l&LookNoWordBoundary != 0 && boundary {
		return false
	}
	return true
}
