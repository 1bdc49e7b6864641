package ranker

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// Dump of the minimal DFA for a|b over bytes 'a', 'b'.
const dumpAB = "0\t1\t97\t97\n0\t1\t98\t98\n1\n\n"

// Dump listing symbol 'b' before 'a': symbol indices follow first
// appearance, so the induced order is b < a.
const dumpBA = "0\t1\t98\t98\n0\t1\t97\t97\n1\n\n"

// Dump of a zero-language automaton: the start state is non-accepting and
// its only transition leads into the dead sink.
const dumpZero = "0\t1\t0\t0\n\n"

// Dump accepting only the empty string.
const dumpEmptyString = "0\t1\t0\t0\n0\n\n"

func TestNewParsesStatesAndAlphabet(t *testing.T) {
	r, err := New(dumpAB, 3)
	require.NoError(t, err)

	require.Equal(t, 3, r.StateCount(), "two declared states plus the dead sink")
	require.Equal(t, 2, r.AlphabetSize())
	require.Equal(t, []byte("ab"), r.Alphabet())
	require.Equal(t, uint32(0), r.start)
	require.Equal(t, 3, r.MaxLen())
}

func TestNewSigmaFirstAppearanceOrder(t *testing.T) {
	r, err := New(dumpBA, 1)
	require.NoError(t, err)
	require.Equal(t, []byte("ba"), r.Alphabet())
}

func TestNewFirstSourceIsStart(t *testing.T) {
	// State 2 is listed first, so it is the start state.
	dump := "2\t1\t97\t97\n0\t2\t98\t98\n1\n\n"
	r, err := New(dump, 2)
	require.NoError(t, err)
	require.Equal(t, uint32(2), r.start)
}

func TestNewDefaultsToDeadState(t *testing.T) {
	r, err := New(dumpAB, 2)
	require.NoError(t, err)

	dead := uint32(r.StateCount() - 1)
	// State 1 has no declared transitions: every symbol leads to the sink.
	for a := 0; a < r.AlphabetSize(); a++ {
		require.Equal(t, dead, r.deltaAt(1, a))
	}
	// The sink loops on itself and is not accepting.
	for a := 0; a < r.AlphabetSize(); a++ {
		require.Equal(t, dead, r.deltaAt(dead, a))
	}
	require.False(t, r.final[dead])
}

func TestNewDenseFlags(t *testing.T) {
	// State 0 sends both symbols to state 1 (dense); state 1 sends them
	// to different states (sparse).
	dump := "0\t1\t97\t97\n0\t1\t98\t98\n1\t1\t97\t97\n1\t2\t98\t98\n2\n\n"
	r, err := New(dump, 2)
	require.NoError(t, err)

	require.True(t, r.dense[0])
	require.False(t, r.dense[1])
	// The sink row is uniform by construction.
	require.True(t, r.dense[r.StateCount()-1])
}

func TestNewBlankLineTerminates(t *testing.T) {
	// Everything after the blank line is ignored, garbage included.
	dump := "0\t1\t97\t97\n1\n\nnot a line at all\n"
	r, err := New(dump, 1)
	require.NoError(t, err)
	require.Equal(t, 1, r.AlphabetSize())
}

func TestNewMalformed(t *testing.T) {
	tests := []struct {
		name string
		dump string
	}{
		{"empty dump", "\n"},
		{"three columns", "0\t1\t97\n1\n\n"},
		{"five columns", "0\t1\t97\t97\t0\n1\n\n"},
		{"junk state", "x\t1\t97\t97\n1\n\n"},
		{"junk symbol", "0\t1\tq\t97\n1\n\n"},
		{"junk output symbol", "0\t1\t97\tq\n1\n\n"},
		{"negative state", "-1\t1\t97\t97\n1\n\n"},
		{"symbol out of byte range", "0\t1\t256\t256\n1\n\n"},
		{"state gap", "0\t1\t97\t97\n5\n\n"},
		{"target out of range", "0\t9\t97\t97\n1\n\n"},
		{"finals only", "0\n1\n\n"},
		{"space separated", "0 1 97 97\n1\n\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(tc.dump, 2)
			require.Error(t, err)
			require.ErrorIs(t, err, ErrMalformedDFA)
		})
	}
}

func TestNewNegativeMaxLen(t *testing.T) {
	_, err := New(dumpAB, -1)
	require.ErrorIs(t, err, ErrBadRange)
}

func TestNewDuplicateTransitionLastWins(t *testing.T) {
	dump := "0\t1\t97\t97\n0\t2\t97\t97\n1\n2\n\n"
	r, err := New(dump, 1)
	require.NoError(t, err)
	require.Equal(t, uint32(2), r.deltaAt(0, 0))
}

func TestTableInvariants(t *testing.T) {
	// a|b followed by an optional 'a': languages of length 1 and 2.
	dump := "0\t1\t97\t97\n0\t1\t98\t98\n1\t2\t97\t97\n1\n2\n\n"
	r, err := New(dump, 4)
	require.NoError(t, err)

	// T[q][0] == 1 iff q is accepting.
	for q := 0; q < r.StateCount(); q++ {
		want := "0"
		if r.final[q] {
			want = "1"
		}
		require.Equal(t, want, r.table[q][0].String(), "state %d", q)
	}

	// T[q][i] == sum over symbols of T[delta(q,a)][i-1].
	for q := 0; q < r.StateCount(); q++ {
		for i := 1; i <= r.MaxLen(); i++ {
			sum := r.table[r.deltaAt(uint32(q), 0)][i-1]
			for a := 1; a < r.AlphabetSize(); a++ {
				sum = sum.Add(r.table[r.deltaAt(uint32(q), a)][i-1])
			}
			require.Equal(t, sum.String(), r.table[q][i].String(), "state %d length %d", q, i)
		}
	}

	require.Equal(t, "2", r.table[r.start][1].String())
	require.Equal(t, "2", r.table[r.start][2].String())
	require.Equal(t, "0", r.table[r.start][3].String())
}

func TestZeroLanguageEngine(t *testing.T) {
	r, err := New(dumpZero, 3)
	require.NoError(t, err)

	total, err := r.Count(0, 3)
	require.NoError(t, err)
	require.True(t, total.IsZero())

	_, err = r.Rank([]byte{0}, 1)
	require.ErrorIs(t, err, ErrNotInLanguage)
}

func TestEmptyStringOnlyEngine(t *testing.T) {
	r, err := New(dumpEmptyString, 2)
	require.NoError(t, err)

	one, err := r.Count(0, 2)
	require.NoError(t, err)
	require.Equal(t, "1", one.String())

	i, err := r.Rank([]byte{}, 0)
	require.NoError(t, err)
	require.True(t, i.IsZero())

	x, err := r.Unrank(i, 0)
	require.NoError(t, err)
	require.Empty(t, x)
}
