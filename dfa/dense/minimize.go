package dense

import "encoding/binary"

// Minimize returns an equivalent DFA with the minimum number of states,
// computed by Moore partition refinement over the class alphabet.
//
// The implicit dead state participates as a pseudo-state so that every
// state with an empty future language collapses into it; the result is
// therefore trim (no live state is dead-equivalent), which MarshalATT
// relies on. Minimization preserves the language, and with it every count
// the ranking engine derives.
func (d *DFA) Minimize() *DFA {
	n := d.stateCount
	dead := n // pseudo-state index
	total := n + 1

	block := make([]int, total)
	numBlocks := 1
	for i, m := range d.match {
		if m {
			block[i] = 1
			numBlocks = 2
		}
	}

	// target returns the refined target block of state s on class c, with
	// the dead pseudo-state absorbing all missing transitions.
	target := func(blocks []int, s, c int) int {
		if s == dead {
			return blocks[dead]
		}
		t := d.table[s*d.stride+c]
		if t == DeadState {
			return blocks[dead]
		}
		return blocks[t]
	}

	for {
		sigs := make(map[string]int, numBlocks)
		next := make([]int, total)
		buf := make([]byte, 4*(d.stride+1))
		for s := 0; s < total; s++ {
			binary.LittleEndian.PutUint32(buf, uint32(block[s]))
			for c := 0; c < d.stride; c++ {
				binary.LittleEndian.PutUint32(buf[4*(c+1):], uint32(target(block, s, c)))
			}
			id, ok := sigs[string(buf)]
			if !ok {
				id = len(sigs)
				sigs[string(buf)] = id
			}
			next[s] = id
		}
		block = next
		if len(sigs) == numBlocks {
			break
		}
		numBlocks = len(sigs)
	}

	deadBlock := block[dead]
	if block[0] == deadBlock {
		// The start state accepts nothing: a single sink with no live
		// transitions represents the zero language.
		row := make([]StateID, d.stride)
		for c := range row {
			row[c] = DeadState
		}
		return &DFA{
			table:      row,
			match:      []bool{false},
			classes:    d.classes,
			stride:     d.stride,
			stateCount: 1,
		}
	}

	// Renumber live blocks in first-occurrence order; state 0 is in block 0
	// by construction of the signature pass, so the start keeps ID 0.
	blockID := make([]StateID, numBlocks)
	rep := make([]int, 0, numBlocks)
	for i := range blockID {
		blockID[i] = InvalidState
	}
	for s := 0; s < n; s++ {
		b := block[s]
		if b != deadBlock && blockID[b] == InvalidState {
			blockID[b] = StateID(len(rep))
			rep = append(rep, s)
		}
	}

	table := make([]StateID, len(rep)*d.stride)
	match := make([]bool, len(rep))
	for i, s := range rep {
		match[i] = d.match[s]
		for c := 0; c < d.stride; c++ {
			t := d.table[s*d.stride+c]
			if t == DeadState || block[t] == deadBlock {
				table[i*d.stride+c] = DeadState
			} else {
				table[i*d.stride+c] = blockID[block[t]]
			}
		}
	}

	return &DFA{
		table:      table,
		match:      match,
		classes:    d.classes,
		stride:     d.stride,
		stateCount: len(rep),
	}
}
