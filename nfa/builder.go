package nfa

import "github.com/coregx/regrank/internal/conv"

// Builder constructs NFAs incrementally. It is used by the Compiler and by
// tests that need hand-built automata.
type Builder struct {
	states       []State
	byteClassSet ByteClassSet
	hasWordLook  bool
}

// nextID returns the ID the next added state will receive.
func (b *Builder) nextID() StateID {
	return StateID(conv.IntToUint32(len(b.states)))
}

// NewBuilder creates a new NFA builder.
func NewBuilder() *Builder {
	return &Builder{
		states: make([]State, 0, 16),
	}
}

// Len returns the number of states added so far.
func (b *Builder) Len() int {
	return len(b.states)
}

// AddMatch adds a match (accepting) state and returns its ID.
func (b *Builder) AddMatch() StateID {
	id := b.nextID()
	b.states = append(b.states, State{id: id, kind: StateMatch})
	return id
}

// AddByteRange adds a state that transitions on bytes in [lo, hi].
// For a single byte, set lo == hi.
func (b *Builder) AddByteRange(lo, hi byte, next StateID) StateID {
	b.byteClassSet.SetRange(lo, hi)
	id := b.nextID()
	b.states = append(b.states, State{
		id:   id,
		kind: StateByteRange,
		lo:   lo,
		hi:   hi,
		next: next,
	})
	return id
}

// AddSparse adds a state with multiple byte range transitions (character
// class). Ranges must be sorted and non-overlapping; the slice is copied.
func (b *Builder) AddSparse(transitions []Transition) StateID {
	for _, tr := range transitions {
		b.byteClassSet.SetRange(tr.Lo, tr.Hi)
	}
	id := b.nextID()
	trans := make([]Transition, len(transitions))
	copy(trans, transitions)
	b.states = append(b.states, State{
		id:          id,
		kind:        StateSparse,
		transitions: trans,
	})
	return id
}

// AddSplit adds a state with epsilon transitions to two states.
// Either target may be InvalidState and patched later via PatchSplit.
func (b *Builder) AddSplit(left, right StateID) StateID {
	id := b.nextID()
	b.states = append(b.states, State{
		id:    id,
		kind:  StateSplit,
		left:  left,
		right: right,
	})
	return id
}

// PatchSplit replaces any InvalidState target of a Split state.
// Needed to tie the knot for loops (star, plus).
func (b *Builder) PatchSplit(id, target StateID) {
	s := &b.states[id]
	if s.left == InvalidState {
		s.left = target
	}
	if s.right == InvalidState {
		s.right = target
	}
}

// AddEpsilon adds a state with a single epsilon transition.
func (b *Builder) AddEpsilon(next StateID) StateID {
	id := b.nextID()
	b.states = append(b.states, State{id: id, kind: StateEpsilon, next: next})
	return id
}

// AddLook adds a zero-width assertion state continuing to next.
func (b *Builder) AddLook(look Look, next StateID) StateID {
	if look&(LookWordBoundary|LookNoWordBoundary) != 0 {
		b.hasWordLook = true
	}
	id := b.nextID()
	b.states = append(b.states, State{id: id, kind: StateLook, look: look, next: next})
	return id
}

// AddFail adds a dead state with no transitions.
func (b *Builder) AddFail() StateID {
	id := b.nextID()
	b.states = append(b.states, State{id: id, kind: StateFail})
	return id
}

// Build finalizes the NFA with the given start state.
func (b *Builder) Build(start StateID) *NFA {
	if b.hasWordLook {
		// Word-boundary resolution keys DFA states on whether the last
		// consumed byte was a word byte, so classes must not mix word and
		// non-word bytes.
		b.byteClassSet.SetRange('0', '9')
		b.byteClassSet.SetRange('A', 'Z')
		b.byteClassSet.SetRange('_', '_')
		b.byteClassSet.SetRange('a', 'z')
	}
	return &NFA{
		states:      b.states,
		start:       start,
		byteClasses: b.byteClassSet.ByteClasses(),
		hasWordLook: b.hasWordLook,
	}
}
