package dense

import (
	"encoding/binary"
	"sort"

	"github.com/coregx/regrank/internal/conv"
	"github.com/coregx/regrank/nfa"
)

// Builder constructs a dense DFA from an NFA by eager subset construction.
//
// DFA state identity is the pair (set of NFA states, word-ness of the
// previously consumed byte). The word bit is what makes \b and \B exact in a
// fully determinized automaton: every look assertion is evaluated during
// closure with both sides of the position known. The sets stored in a state
// are pre-closure; the closure is taken when the state is expanded, at which
// point the next byte (or end of input) is known.
type Builder struct {
	nfa    *nfa.NFA
	config Config
}

// NewBuilder creates a new DFA builder for the given NFA.
func NewBuilder(n *nfa.NFA, config Config) *Builder {
	return &Builder{nfa: n, config: config}
}

// Build determinizes the NFA with the default configuration.
func Build(n *nfa.NFA) (*DFA, error) {
	return NewBuilder(n, DefaultConfig()).Build()
}

// Build constructs and returns the complete DFA.
// Returns ErrTooManyStates if determinization exceeds the state budget and
// ErrInvalidConfig if the configuration is invalid.
func (b *Builder) Build() (*DFA, error) {
	if err := b.config.Validate(); err != nil {
		return nil, err
	}

	d := &determinizer{
		nfa:      b.nfa,
		config:   b.config,
		classes:  b.nfa.ByteClasses(),
		interned: make(map[string]StateID),
		visited:  make([]bool, b.nfa.StateCount()),
	}
	return d.run()
}

// dfaState is an unexpanded DFA state: the pre-closure NFA set plus the
// context bits that closure needs.
type dfaState struct {
	set      []nfa.StateID
	fromWord bool
	atStart  bool
}

type determinizer struct {
	nfa     *nfa.NFA
	config  Config
	classes *nfa.ByteClasses

	interned map[string]StateID
	states   []dfaState
	match    []bool

	// visited is scratch for closure, reused across calls
	visited []bool
}

func (d *determinizer) run() (*DFA, error) {
	stride := d.classes.AlphabetLen()
	reps := d.classes.Representatives()
	// Without \b or \B in the pattern no assertion reads the word bit;
	// keeping it false avoids splitting states on it.
	hasWord := d.nfa.HasWordLook()

	// The start state is always ID 0.
	if _, err := d.intern(dfaState{
		set:     []nfa.StateID{d.nfa.Start()},
		atStart: true,
	}); err != nil {
		return nil, err
	}

	table := make([]StateID, 0, stride*16)

	// The worklist is the states slice itself: intern appends, expansion
	// catches up.
	for i := 0; i < len(d.states); i++ {
		st := d.states[i]

		// Closure varies only with the word-ness of the consumed byte;
		// compute each variant at most once per state.
		var variants [2][]nfa.StateID
		var computed [2]bool

		row := make([]StateID, stride)
		for c := 0; c < stride; c++ {
			rep := reps[c]
			nw := nfa.IsWordByte(rep)
			vi := 0
			if nw {
				vi = 1
			}
			if !computed[vi] {
				variants[vi], _ = d.closure(st.set, nfa.LookContext{
					AtStart:    st.atStart,
					PrevIsWord: st.fromWord,
					NextIsWord: nw,
				})
				computed[vi] = true
			}

			next := d.step(variants[vi], rep)
			if len(next) == 0 {
				row[c] = DeadState
				continue
			}
			sid, err := d.intern(dfaState{set: next, fromWord: nw && hasWord})
			if err != nil {
				return nil, err
			}
			row[c] = sid
		}
		table = append(table, row...)
	}

	return &DFA{
		table:      table,
		match:      d.match,
		classes:    d.classes,
		stride:     stride,
		stateCount: len(d.states),
	}, nil
}

// intern returns the ID of st, materializing it if unseen.
func (d *determinizer) intern(st dfaState) (StateID, error) {
	key := stateKey(st)
	if sid, ok := d.interned[key]; ok {
		return sid, nil
	}
	if len(d.states) >= d.config.MaxStates {
		return InvalidState, ErrTooManyStates
	}
	sid := StateID(conv.IntToUint32(len(d.states)))
	d.interned[key] = sid
	d.states = append(d.states, st)

	// Acceptance is the end-of-input closure: end-text holds, and with no
	// byte after the position, next-is-word is false.
	_, isMatch := d.closure(st.set, nfa.LookContext{
		AtStart:    st.atStart,
		AtEnd:      true,
		PrevIsWord: st.fromWord,
	})
	d.match = append(d.match, isMatch)
	return sid, nil
}

// closure computes the epsilon closure of set under ctx, following Split,
// Epsilon, and satisfied Look states. It returns the consuming (ByteRange or
// Sparse) states reached and whether a Match state is in the closure.
func (d *determinizer) closure(set []nfa.StateID, ctx nfa.LookContext) (consuming []nfa.StateID, isMatch bool) {
	for i := range d.visited {
		d.visited[i] = false
	}
	stack := make([]nfa.StateID, len(set))
	copy(stack, set)
	for _, id := range stack {
		d.visited[id] = true
	}

	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		s := d.nfa.State(id)
		push := func(t nfa.StateID) {
			if !d.visited[t] {
				d.visited[t] = true
				stack = append(stack, t)
			}
		}

		switch s.Kind() {
		case nfa.StateMatch:
			isMatch = true
		case nfa.StateByteRange, nfa.StateSparse:
			consuming = append(consuming, id)
		case nfa.StateSplit:
			left, right := s.Split()
			push(left)
			push(right)
		case nfa.StateEpsilon:
			push(s.Next())
		case nfa.StateLook:
			if s.Look().Holds(ctx) {
				push(s.Next())
			}
		case nfa.StateFail:
			// no successors
		}
	}
	return consuming, isMatch
}

// step advances every consuming state on byte b, returning the sorted,
// deduplicated successor set.
func (d *determinizer) step(consuming []nfa.StateID, b byte) []nfa.StateID {
	var next []nfa.StateID
	for _, id := range consuming {
		if t, ok := d.nfa.State(id).Step(b); ok {
			next = append(next, t)
		}
	}
	if len(next) == 0 {
		return nil
	}
	sort.Slice(next, func(i, j int) bool { return next[i] < next[j] })
	n := 0
	for i, id := range next {
		if i == 0 || id != next[n-1] {
			next[n] = id
			n++
		}
	}
	return next[:n]
}

// stateKey encodes a dfaState into a canonical map key.
func stateKey(st dfaState) string {
	buf := make([]byte, 1+4*len(st.set))
	var flags byte
	if st.fromWord {
		flags |= 1
	}
	if st.atStart {
		flags |= 2
	}
	buf[0] = flags
	for i, id := range st.set {
		binary.LittleEndian.PutUint32(buf[1+4*i:], uint32(id))
	}
	return string(buf)
}
