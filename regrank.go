// Package regrank ranks and unranks the fixed-length strings of a regular
// language.
//
// Given a PCRE-style pattern and a maximum length, Build compiles the
// pattern to a minimized DFA and precomputes, for every DFA state and every
// length up to the maximum, the number of accepted completions. The
// resulting Engine bijectively maps between the length-n strings the
// pattern fully matches and the integer interval [0, N) where N is the
// number of such strings:
//
//	eng, err := regrank.Build(`[0-9]{3}`, 3)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	i, _ := eng.Rank([]byte("042"), 3)   // 42
//	x, _ := eng.Unrank(i, 3)             // "042"
//
// This is the core primitive of format-transforming encryption: an
// arbitrary integer (say, a ciphertext) can be carried as a string matching
// an arbitrary regex, and recovered exactly.
//
// Patterns are parsed with fixed one-line, Latin-1 (byte) semantics (see
// the nfa package) and always match the whole string. The lexicographic
// order behind the bijection is induced by the order symbols first appear
// in the DFA's serialized form, so ranks are only meaningful against the
// engine that produced them; treat the Engine as opaque state and do not
// compare ranks across independently built engines.
//
// An Engine is immutable after Build and safe for concurrent use.
package regrank

import (
	"github.com/coregx/regrank/bigint"
	"github.com/coregx/regrank/dfa/dense"
	"github.com/coregx/regrank/nfa"
	"github.com/coregx/regrank/ranker"
)

// Config bundles the compilation budgets of the pipeline stages.
type Config struct {
	// Compiler configures pattern-to-NFA compilation
	Compiler nfa.CompilerConfig

	// DFA configures determinization
	DFA dense.Config
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Compiler: nfa.DefaultCompilerConfig(),
		DFA:      dense.DefaultConfig(),
	}
}

// Engine answers rank, unrank, and count queries for one (pattern, maxLen)
// pair.
type Engine struct {
	pattern string
	att     string
	r       *ranker.Ranker
}

// Build compiles pattern into an Engine covering lengths 0 through maxLen.
//
// Errors: an invalid pattern or one the DFA state budget cannot hold fails
// with the nfa/dense package errors; a negative maxLen fails with a ranker
// BadRange error.
func Build(pattern string, maxLen int) (*Engine, error) {
	return BuildWithConfig(pattern, maxLen, DefaultConfig())
}

// BuildWithConfig is Build with custom compilation budgets.
func BuildWithConfig(pattern string, maxLen int, config Config) (*Engine, error) {
	n, err := nfa.NewCompiler(config.Compiler).Compile(pattern)
	if err != nil {
		return nil, err
	}
	d, err := dense.NewBuilder(n, config.DFA).Build()
	if err != nil {
		return nil, err
	}
	att := d.Minimize().MarshalATT()

	r, err := ranker.New(att, maxLen)
	if err != nil {
		return nil, err
	}
	return &Engine{pattern: pattern, att: att, r: r}, nil
}

// MustBuild is like Build but panics on error.
// Useful for patterns known to be valid at compile time.
func MustBuild(pattern string, maxLen int) *Engine {
	eng, err := Build(pattern, maxLen)
	if err != nil {
		panic("regrank: Build(" + pattern + "): " + err.Error())
	}
	return eng
}

// BuildFromATT constructs an Engine directly from a minimized DFA in AT&T
// FST text format, bypassing the regex compiler. This is the path for
// automata minimized by external FST tooling.
func BuildFromATT(dump string, maxLen int) (*Engine, error) {
	r, err := ranker.New(dump, maxLen)
	if err != nil {
		return nil, err
	}
	return &Engine{att: dump, r: r}, nil
}

// Pattern returns the source pattern, empty for engines built from a dump.
func (e *Engine) Pattern() string { return e.pattern }

// ATT returns the AT&T FST dump the engine was loaded from. Loading the
// same dump reproduces the same bijection.
func (e *Engine) ATT() string { return e.att }

// MaxLen returns the maximum query length.
func (e *Engine) MaxLen() int { return e.r.MaxLen() }

// AlphabetSize returns the number of distinct bytes the DFA transitions on.
func (e *Engine) AlphabetSize() int { return e.r.AlphabetSize() }

// Alphabet returns the alphabet bytes in symbol-index order, the order
// inducing the lexicographic order of the bijection.
func (e *Engine) Alphabet() []byte { return e.r.Alphabet() }

// StateCount returns the DFA state count, including the dead sink.
func (e *Engine) StateCount() int { return e.r.StateCount() }

// Rank returns the position of x among the length-n strings of the
// language, in [0, N) where N is the count of such strings.
func (e *Engine) Rank(x []byte, n int) (bigint.Int, error) {
	return e.r.Rank(x, n)
}

// Unrank returns the i-th length-n string of the language, inverting Rank.
func (e *Engine) Unrank(i bigint.Int, n int) ([]byte, error) {
	return e.r.Unrank(i, n)
}

// Count returns the number of accepted strings with length in [lo, hi].
func (e *Engine) Count(lo, hi int) (bigint.Int, error) {
	return e.r.Count(lo, hi)
}

// NumWords returns the number of accepted strings of length exactly n.
func (e *Engine) NumWords(n int) (bigint.Int, error) {
	return e.r.NumWords(n)
}

// RankVariable ranks x within all accepted strings of length up to MaxLen,
// ordered by length first.
func (e *Engine) RankVariable(x []byte) (bigint.Int, error) {
	return e.r.RankVariable(x)
}

// UnrankVariable inverts RankVariable.
func (e *Engine) UnrankVariable(i bigint.Int) ([]byte, error) {
	return e.r.UnrankVariable(i)
}
