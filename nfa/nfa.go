// Package nfa provides a byte-level Thompson NFA compiled from PCRE-style
// patterns.
//
// The NFA is a build-time intermediate: it is compiled from regexp/syntax
// parse trees with Latin-1 (byte) semantics and consumed whole by the dense
// DFA determinizer. Nothing executes it at query time. Compilation is for
// whole-string matching: the automaton accepts exactly the strings the
// pattern fully matches.
package nfa

import (
	"fmt"
)

// StateID uniquely identifies an NFA state.
type StateID uint32

// InvalidState represents an invalid/uninitialized state ID.
const InvalidState StateID = 0xFFFFFFFF

// StateKind identifies the type of NFA state and determines which transitions
// are valid.
type StateKind uint8

const (
	// StateMatch represents a match (accepting) state
	StateMatch StateKind = iota

	// StateByteRange represents a single byte or byte range transition [lo, hi]
	StateByteRange

	// StateSparse represents multiple byte range transitions (character class)
	StateSparse

	// StateSplit represents an epsilon transition to 2 states (alternation,
	// quantifiers)
	StateSplit

	// StateEpsilon represents an epsilon transition to 1 state
	StateEpsilon

	// StateLook represents a zero-width assertion that must hold before
	// continuing to the next state
	StateLook

	// StateFail represents a dead state (no valid transitions)
	StateFail
)

// String returns a human-readable representation of the StateKind
func (k StateKind) String() string {
	switch k {
	case StateMatch:
		return "Match"
	case StateByteRange:
		return "ByteRange"
	case StateSparse:
		return "Sparse"
	case StateSplit:
		return "Split"
	case StateEpsilon:
		return "Epsilon"
	case StateLook:
		return "Look"
	case StateFail:
		return "Fail"
	default:
		return fmt.Sprintf("Unknown(%d)", k)
	}
}

// Transition is a byte range [Lo, Hi] leading to the Next state.
// Used by StateSparse states; ranges are sorted and non-overlapping.
type Transition struct {
	Lo, Hi byte
	Next   StateID
}

// State represents a single NFA state with its transitions.
// The state's kind determines which fields are valid.
type State struct {
	id   StateID
	kind StateKind

	// For ByteRange: byte range [lo, hi]
	lo, hi byte
	next   StateID // target for ByteRange/Epsilon/Look

	// For Split: the two epsilon targets
	left, right StateID

	// For Sparse: sorted non-overlapping byte ranges
	transitions []Transition

	// For Look: the assertion that must hold
	look Look
}

// ID returns the state's identifier.
func (s *State) ID() StateID { return s.id }

// Kind returns the state's kind.
func (s *State) Kind() StateKind { return s.kind }

// Next returns the target of a ByteRange, Epsilon, or Look state.
func (s *State) Next() StateID { return s.next }

// Split returns the two epsilon targets of a Split state.
func (s *State) Split() (left, right StateID) { return s.left, s.right }

// Look returns the assertion carried by a Look state.
func (s *State) Look() Look { return s.look }

// Transitions returns the byte ranges of a Sparse state.
// The returned slice must not be modified.
func (s *State) Transitions() []Transition { return s.transitions }

// Step returns the successor state if this state consumes byte b.
// Valid only for ByteRange and Sparse states; returns (InvalidState, false)
// when b is not matched.
func (s *State) Step(b byte) (StateID, bool) {
	switch s.kind {
	case StateByteRange:
		if s.lo <= b && b <= s.hi {
			return s.next, true
		}
	case StateSparse:
		for _, tr := range s.transitions {
			if tr.Lo <= b && b <= tr.Hi {
				return tr.Next, true
			}
			if b < tr.Lo {
				break
			}
		}
	}
	return InvalidState, false
}

// String returns a human-readable representation of the state.
func (s *State) String() string {
	switch s.kind {
	case StateByteRange:
		return fmt.Sprintf("%d: ByteRange [0x%02x-0x%02x] -> %d", s.id, s.lo, s.hi, s.next)
	case StateSparse:
		return fmt.Sprintf("%d: Sparse (%d ranges)", s.id, len(s.transitions))
	case StateSplit:
		return fmt.Sprintf("%d: Split -> %d | %d", s.id, s.left, s.right)
	case StateEpsilon:
		return fmt.Sprintf("%d: Epsilon -> %d", s.id, s.next)
	case StateLook:
		return fmt.Sprintf("%d: Look %v -> %d", s.id, s.look, s.next)
	default:
		return fmt.Sprintf("%d: %v", s.id, s.kind)
	}
}

// NFA is a compiled byte-level Thompson NFA.
//
// An NFA is immutable after construction and safe for concurrent use.
type NFA struct {
	states      []State
	start       StateID
	byteClasses ByteClasses
	hasWordLook bool
}

// Start returns the start state ID.
func (n *NFA) Start() StateID { return n.start }

// StateCount returns the number of states.
func (n *NFA) StateCount() int { return len(n.states) }

// State returns the state with the given ID.
func (n *NFA) State(id StateID) *State { return &n.states[id] }

// ByteClasses returns the byte equivalence classes induced by the NFA's
// transitions (and, when word-boundary assertions are present, by the
// word/non-word distinction).
func (n *NFA) ByteClasses() *ByteClasses { return &n.byteClasses }

// HasWordLook reports whether the NFA contains \b or \B assertions.
// When false, the determinizer can drop per-state word context entirely.
func (n *NFA) HasWordLook() bool { return n.hasWordLook }
