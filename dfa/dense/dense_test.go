package dense

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/coregx/regrank/nfa"
)

func buildPattern(t *testing.T, pattern string) *DFA {
	t.Helper()
	n, err := nfa.Compile(pattern)
	require.NoError(t, err, "pattern %q", pattern)
	d, err := Build(n)
	require.NoError(t, err, "pattern %q", pattern)
	return d
}

// enumerate returns every string over alphabet with length up to maxLen,
// in no particular order.
func enumerate(alphabet []byte, maxLen int) [][]byte {
	out := [][]byte{{}}
	prev := [][]byte{{}}
	for n := 1; n <= maxLen; n++ {
		var next [][]byte
		for _, p := range prev {
			for _, b := range alphabet {
				s := append(append([]byte(nil), p...), b)
				next = append(next, s)
			}
		}
		out = append(out, next...)
		prev = next
	}
	return out
}

func TestBuildMatchesWholeString(t *testing.T) {
	tests := []struct {
		pattern string
		accept  []string
		reject  []string
	}{
		{`a`, []string{"a"}, []string{"", "b", "aa", "ab"}},
		{`a|b`, []string{"a", "b"}, []string{"", "ab", "ba", "c"}},
		{`(ab)+`, []string{"ab", "abab", "ababab"}, []string{"", "a", "aba", "ba"}},
		{`[0-9]{3}`, []string{"000", "123", "999"}, []string{"00", "0000", "12a"}},
		{`a*b+`, []string{"b", "ab", "aabb"}, []string{"", "a", "ba"}},
		{`colou?r`, []string{"color", "colour"}, []string{"colur", "colouur"}},
	}
	for _, tc := range tests {
		t.Run(tc.pattern, func(t *testing.T) {
			d := buildPattern(t, tc.pattern)
			for _, s := range tc.accept {
				require.True(t, d.Match([]byte(s)), "%q should match %q", tc.pattern, s)
			}
			for _, s := range tc.reject {
				require.False(t, d.Match([]byte(s)), "%q should not match %q", tc.pattern, s)
			}
		})
	}
}

func TestBuildWordBoundaryExact(t *testing.T) {
	// Word boundaries are resolved during determinization; cross-check the
	// DFA against the NFA reference over a mixed alphabet.
	patterns := []string{`\ba+\b`, `a\b[ .]b`, `\Bab`, `a\B.`, `(\ba\b ?)+`}
	alphabet := []byte{'a', 'b', ' ', '.'}
	for _, pattern := range patterns {
		t.Run(pattern, func(t *testing.T) {
			n, err := nfa.Compile(pattern)
			require.NoError(t, err)
			d, err := Build(n)
			require.NoError(t, err)
			for _, s := range enumerate(alphabet, 4) {
				require.Equal(t, nfaSim(n, s), d.Match(s), "input %q", s)
			}
		})
	}
}

func TestBuildAgainstNFAReference(t *testing.T) {
	patterns := []string{`a`, `a|b`, `(a|b)*abb`, `[ab]{2,3}`, `a*`, `(ab|ba)+`}
	alphabet := []byte{'a', 'b'}
	for _, pattern := range patterns {
		t.Run(pattern, func(t *testing.T) {
			n, err := nfa.Compile(pattern)
			require.NoError(t, err)
			d, err := Build(n)
			require.NoError(t, err)
			for _, s := range enumerate(alphabet, 6) {
				require.Equal(t, nfaSim(n, s), d.Match(s), "input %q", s)
			}
		})
	}
}

func TestBuildStateBudget(t *testing.T) {
	n, err := nfa.Compile(`[ab]{30}`)
	require.NoError(t, err)

	_, err = NewBuilder(n, Config{MaxStates: 8}).Build()
	require.Error(t, err)
	require.ErrorIs(t, err, ErrTooManyStates)

	var derr *DFAError
	require.ErrorAs(t, err, &derr)
	require.Equal(t, TooManyStates, derr.Kind)
}

func TestBuildInvalidConfig(t *testing.T) {
	n, err := nfa.Compile(`a`)
	require.NoError(t, err)

	_, err = NewBuilder(n, Config{MaxStates: -1}).Build()
	require.ErrorIs(t, err, ErrInvalidConfig)
}

func TestEmptyLanguage(t *testing.T) {
	d := buildPattern(t, `[^\x00-\xff]`)
	require.False(t, d.Match([]byte{}))
	require.False(t, d.Match([]byte("a")))
}

func TestEmptyStringOnlyLanguage(t *testing.T) {
	d := buildPattern(t, ``)
	require.True(t, d.Match([]byte{}))
	require.False(t, d.Match([]byte{0x00}))
	require.False(t, d.Match([]byte("a")))
}

// nfaSim is a reference subset simulation of the NFA.
func nfaSim(n *nfa.NFA, input []byte) bool {
	set := []nfa.StateID{n.Start()}
	for k := 0; k <= len(input); k++ {
		ctx := nfa.LookContext{
			AtStart: k == 0,
			AtEnd:   k == len(input),
		}
		if k > 0 {
			ctx.PrevIsWord = nfa.IsWordByte(input[k-1])
		}
		if k < len(input) {
			ctx.NextIsWord = nfa.IsWordByte(input[k])
		}

		visited := make([]bool, n.StateCount())
		var consuming []nfa.StateID
		stack := append([]nfa.StateID(nil), set...)
		for _, id := range stack {
			visited[id] = true
		}
		for len(stack) > 0 {
			id := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			s := n.State(id)
			push := func(st nfa.StateID) {
				if !visited[st] {
					visited[st] = true
					stack = append(stack, st)
				}
			}
			switch s.Kind() {
			case nfa.StateMatch:
				if ctx.AtEnd {
					return true
				}
			case nfa.StateByteRange, nfa.StateSparse:
				consuming = append(consuming, id)
			case nfa.StateSplit:
				l, r := s.Split()
				push(l)
				push(r)
			case nfa.StateEpsilon:
				push(s.Next())
			case nfa.StateLook:
				if s.Look().Holds(ctx) {
					push(s.Next())
				}
			}
		}
		if ctx.AtEnd {
			return false
		}

		set = set[:0]
		for _, id := range consuming {
			if t, ok := n.State(id).Step(input[k]); ok {
				set = append(set, t)
			}
		}
		if len(set) == 0 {
			return false
		}
	}
	return false
}
