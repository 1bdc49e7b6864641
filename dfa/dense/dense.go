// Package dense implements an eager, fully-determinized DFA over byte
// equivalence classes, with partition-refinement minimization and AT&T FST
// text serialization.
//
// Unlike a lazy DFA, every state is materialized up front: the ranking
// engine needs the complete automaton to precompute its count table, so
// nothing may be discovered (or evicted) later. Word-boundary and text
// anchors are resolved exactly during determinization by keying states on
// the word-ness of the previously consumed byte.
package dense

import (
	"github.com/coregx/regrank/nfa"
)

// StateID is a DFA state identifier.
type StateID uint32

// Special state constants
const (
	// InvalidState represents an invalid/uninitialized state ID
	InvalidState StateID = 0xFFFFFFFF

	// DeadState represents the implicit non-accepting sink. It is never
	// materialized: transitions into it are recorded with this sentinel
	// and omitted from the serialized automaton.
	DeadState StateID = 0xFFFFFFFE

	// StartState is always state ID 0
	StartState StateID = 0
)

// DFA is a complete deterministic finite automaton over byte equivalence
// classes.
//
// The transition table is organized as:
//
//	table[stateID * stride + byteClass] → StateID
//
// where stride is the number of byte classes. A DFA is immutable after
// construction and safe for concurrent use.
type DFA struct {
	// Transition table: dense array indexed by [stateID][byteClass]
	table []StateID

	// match[sid] is true if state sid is accepting
	match []bool

	// Byte equivalence classes shared with the source NFA
	classes *nfa.ByteClasses

	// Stride for indexing, equal to the class alphabet size
	stride int

	stateCount int
}

// StateCount returns the number of live (non-dead) states.
func (d *DFA) StateCount() int { return d.stateCount }

// AlphabetLen returns the number of byte equivalence classes.
func (d *DFA) AlphabetLen() int { return d.stride }

// IsMatch reports whether sid is an accepting state.
func (d *DFA) IsMatch(sid StateID) bool { return d.match[sid] }

// Next returns the successor of sid on the given byte, possibly DeadState.
func (d *DFA) Next(sid StateID, b byte) StateID {
	return d.table[int(sid)*d.stride+int(d.classes.Get(b))]
}

func (d *DFA) nextClass(sid StateID, class int) StateID {
	return d.table[int(sid)*d.stride+class]
}

// Match reports whether the DFA accepts input as a whole string.
func (d *DFA) Match(input []byte) bool {
	if d.stateCount == 0 {
		return false
	}
	sid := StartState
	for _, b := range input {
		sid = d.Next(sid, b)
		if sid == DeadState {
			return false
		}
	}
	return d.match[sid]
}
