package ranker

import "github.com/coregx/regrank/bigint"

// buildTable precomputes T[q][i] for q in Q and i in [0, maxLen]:
//
//	T[q][0] = 1 if q is accepting, else 0
//	T[q][i] = Σ over symbols a of T[δ(q,a)][i-1]
//
// so T[q][i] counts the length-i strings that drive the DFA from q into an
// accepting state. All arithmetic is exact. The dead sink is non-accepting
// and loops on every symbol, so its row stays zero and unspecified
// transitions contribute nothing.
func (r *Ranker) buildTable() {
	r.table = make([][]bigint.Int, r.numStates)
	for q := range r.table {
		r.table[q] = make([]bigint.Int, r.maxLen+1)
		if r.final[q] {
			r.table[q][0] = bigint.One()
		}
	}

	for i := 1; i <= r.maxLen; i++ {
		for q := 0; q < r.numStates; q++ {
			sum := bigint.Zero()
			for a := 0; a < r.numSymbols; a++ {
				sum = sum.Add(r.table[r.deltaAt(uint32(q), a)][i-1])
			}
			r.table[q][i] = sum
		}
	}

	// Spot-check the recurrence on the last column; a mismatch can only
	// come from a bug in the engine.
	if i := r.maxLen; i > 0 {
		for q := 0; q < r.numStates; q++ {
			sum := bigint.Zero()
			for a := 0; a < r.numSymbols; a++ {
				sum = sum.Add(r.table[r.deltaAt(uint32(q), a)][i-1])
			}
			if sum.Cmp(r.table[q][i]) != 0 {
				panic("ranker: count table violates its recurrence")
			}
		}
	}
}

// wordsAt returns T[q₀][n], the number of accepted strings of length n.
func (r *Ranker) wordsAt(n int) bigint.Int {
	return r.table[r.start][n]
}
