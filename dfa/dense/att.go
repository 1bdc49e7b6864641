package dense

import (
	"strconv"
	"strings"
)

// MarshalATT serializes the DFA in the AT&T FST text format:
//
//	src\tdst\tinput\toutput     one line per live transition
//	final                       one line per accepting state
//	                            blank line terminator
//
// States are numbered breadth-first from the start state, so the first
// source state in the dump is the start state. Transitions are listed in
// ascending byte order with identity output labels (the dump describes an
// acceptor, and byte labels are the actual byte values; consumers discard
// the output column). Transitions into the dead state are omitted; the
// loader re-materializes the sink.
//
// The DFA must be trim (no live dead-equivalent states), which Minimize
// guarantees. If the start state has no live transition at all, a single
// transition into a fresh sink state is emitted so that the dump still
// declares at least one state and one symbol.
func (d *DFA) MarshalATT() string {
	order := make([]StateID, 0, d.stateCount)
	number := make(map[StateID]int, d.stateCount)

	order = append(order, StartState)
	number[StartState] = 0
	for i := 0; i < len(order); i++ {
		sid := order[i]
		for b := 0; b < 256; b++ {
			t := d.Next(sid, byte(b))
			if t == DeadState {
				continue
			}
			if _, ok := number[t]; !ok {
				number[t] = len(order)
				order = append(order, t)
			}
		}
	}

	var sb strings.Builder
	lines := 0
	for i, sid := range order {
		for b := 0; b < 256; b++ {
			t := d.Next(sid, byte(b))
			if t == DeadState {
				continue
			}
			writeArc(&sb, i, number[t], b)
			lines++
		}
	}
	if lines == 0 {
		// No live transition anywhere: declare the start state and symbol 0
		// via an arc into the (about to be re-appended) dead sink.
		writeArc(&sb, 0, len(order), 0)
	}
	for i, sid := range order {
		if d.match[sid] {
			sb.WriteString(strconv.Itoa(i))
			sb.WriteByte('\n')
		}
	}
	sb.WriteByte('\n')
	return sb.String()
}

func writeArc(sb *strings.Builder, src, dst, b int) {
	sb.WriteString(strconv.Itoa(src))
	sb.WriteByte('\t')
	sb.WriteString(strconv.Itoa(dst))
	sb.WriteByte('\t')
	sb.WriteString(strconv.Itoa(b))
	sb.WriteByte('\t')
	sb.WriteString(strconv.Itoa(b))
	sb.WriteByte('\n')
}
