// Package ranker implements the bijective rank/unrank engine over the
// fixed-length slices of a regular language.
//
// A Ranker is built from a minimized DFA in the AT&T FST text format and a
// maximum length. Construction parses the dump into a dense transition
// table, then precomputes T[q][i], the number of length-i strings that
// drive the DFA from state q into an accepting state, as arbitrary
// precision integers. Rank, Unrank, and Count then answer queries with
// big-integer arithmetic against T.
//
// Lexicographic order is induced by symbol indices, which are assigned in
// first-appearance order while scanning the dump, not by numeric byte
// order. The bijection is therefore a property of one serialized automaton:
// ranks from independently constructed engines are not comparable.
//
// A Ranker is immutable after construction; any number of goroutines may
// query it concurrently.
package ranker

import (
	"math"
	"strconv"
	"strings"

	"github.com/coregx/regrank/bigint"
)

// Ranker maps between the length-n slices of a regular language and the
// integer interval [0, T[q₀][n]).
type Ranker struct {
	maxLen int

	// numStates includes the appended dead sink (always the last state)
	numStates  int
	numSymbols int
	start      uint32

	// sigma maps symbol index → byte; sigmaRev is its inverse, -1 for
	// bytes outside the alphabet
	sigma    []byte
	sigmaRev [256]int32

	// delta is the dense transition table, delta[q*numSymbols+a]
	delta []uint32

	// dense[q] is true when every transition of q shares one target
	dense []bool

	final []bool

	// table[q][i] is T[q][i]
	table [][]bigint.Int
}

type arc struct {
	src, dst uint32
	sym      byte
}

// New parses an AT&T FST transition dump into a Ranker and precomputes the
// count table for lengths 0 through maxLen.
//
// The dump must describe a deterministic acceptor: 4-column transition
// lines, 1-column final-state lines, terminated by a blank line (or end of
// input). State IDs must form a contiguous range starting at 0; the first
// source state is the start state. The output label column is ignored.
func New(dump string, maxLen int) (*Ranker, error) {
	if maxLen < 0 {
		return nil, errorf(BadRange, "max length %d is negative", maxLen)
	}

	r := &Ranker{maxLen: maxLen}
	arcs, finals, err := r.scan(dump)
	if err != nil {
		return nil, err
	}
	r.populate(arcs, finals)
	r.buildTable()
	return r, nil
}

// scan is the discovery pass: it collects states, the alphabet in
// first-appearance order, the accepting states, and the start state.
func (r *Ranker) scan(dump string) ([]arc, []uint32, error) {
	for i := range r.sigmaRev {
		r.sigmaRev[i] = -1
	}

	seen := make(map[uint32]bool)
	var arcs []arc
	var finals []uint32
	startSet := false

	for _, line := range strings.Split(dump, "\n") {
		if line == "" {
			break
		}
		cols := strings.Split(line, "\t")
		switch len(cols) {
		case 4:
			src, err := parseState(cols[0])
			if err != nil {
				return nil, nil, err
			}
			dst, err := parseState(cols[1])
			if err != nil {
				return nil, nil, err
			}
			sym, err := parseSymbol(cols[2])
			if err != nil {
				return nil, nil, err
			}
			// The output label is transducer baggage; validate the
			// format, discard the value.
			if _, err := parseSymbol(cols[3]); err != nil {
				return nil, nil, err
			}

			if !startSet {
				r.start = src
				startSet = true
			}
			seen[src] = true
			if r.sigmaRev[sym] < 0 {
				r.sigmaRev[sym] = int32(len(r.sigma))
				r.sigma = append(r.sigma, sym)
			}
			arcs = append(arcs, arc{src: src, dst: dst, sym: sym})

		case 1:
			f, err := parseState(cols[0])
			if err != nil {
				return nil, nil, err
			}
			seen[f] = true
			finals = append(finals, f)

		default:
			return nil, nil, errorf(MalformedDFA, "line %q has %d fields, want 4 (transition) or 1 (final)", line, len(cols))
		}
	}

	if len(seen) == 0 {
		return nil, nil, errorf(MalformedDFA, "dump declares no states")
	}
	if len(r.sigma) == 0 {
		return nil, nil, errorf(MalformedDFA, "dump declares no transitions")
	}

	// One extra state for the dead sink.
	r.numStates = len(seen) + 1
	r.numSymbols = len(r.sigma)

	// The declared states are distinct, so requiring each to be below
	// their count forces exactly the range 0..N-1.
	for q := range seen {
		if int(q) >= len(seen) {
			return nil, nil, errorf(MalformedDFA, "state %d outside contiguous range 0..%d", q, len(seen)-1)
		}
	}
	for _, a := range arcs {
		if int(a.dst) >= r.numStates {
			return nil, nil, errorf(MalformedDFA, "transition target %d outside range 0..%d", a.dst, r.numStates-1)
		}
	}
	return arcs, finals, nil
}

// populate is the population pass: it fills the dense transition table,
// defaulting every unspecified pair to the dead sink, then computes the
// dense-row flags and the final-state set.
func (r *Ranker) populate(arcs []arc, finals []uint32) {
	deadState := uint32(r.numStates - 1)

	r.delta = make([]uint32, r.numStates*r.numSymbols)
	for i := range r.delta {
		r.delta[i] = deadState
	}
	for _, a := range arcs {
		r.delta[int(a.src)*r.numSymbols+int(r.sigmaRev[a.sym])] = a.dst
	}

	r.dense = make([]bool, r.numStates)
	for q := 0; q < r.numStates; q++ {
		r.dense[q] = true
		for a := 1; a < r.numSymbols; a++ {
			if r.deltaAt(uint32(q), a-1) != r.deltaAt(uint32(q), a) {
				r.dense[q] = false
				break
			}
		}
	}

	r.final = make([]bool, r.numStates)
	for _, f := range finals {
		r.final[f] = true
	}
}

func (r *Ranker) deltaAt(q uint32, a int) uint32 {
	return r.delta[int(q)*r.numSymbols+a]
}

func parseState(s string) (uint32, error) {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, errorf(MalformedDFA, "bad state ID %q", s)
	}
	if v > math.MaxUint32 {
		return 0, errorf(MalformedDFA, "state ID %d too large", v)
	}
	return uint32(v), nil
}

func parseSymbol(s string) (byte, error) {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, errorf(MalformedDFA, "bad symbol %q", s)
	}
	if v > math.MaxUint8 {
		return 0, errorf(MalformedDFA, "symbol %d outside byte range", v)
	}
	return byte(v), nil
}

// MaxLen returns the maximum length the count table covers.
func (r *Ranker) MaxLen() int { return r.maxLen }

// AlphabetSize returns |Σ|, the number of distinct bytes on transitions.
func (r *Ranker) AlphabetSize() int { return r.numSymbols }

// StateCount returns |Q|, including the appended dead sink.
func (r *Ranker) StateCount() int { return r.numStates }

// Alphabet returns the alphabet bytes in symbol-index order, the order that
// induces the lexicographic order of the bijection.
func (r *Ranker) Alphabet() []byte {
	out := make([]byte, len(r.sigma))
	copy(out, r.sigma)
	return out
}
