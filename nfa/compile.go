package nfa

import (
	"fmt"
	"regexp/syntax"
	"sort"
	"unicode"
)

// ParseFlags is the fixed regexp/syntax flag set used for every pattern.
//
// These must not change: the language a pattern denotes (and therefore the
// rank/unrank bijection) depends on them. They give one-line semantics
// (^ and $ match only string boundaries), newline as an ordinary byte in
// . and negated classes, and Perl classes/anchors/extensions. UnicodeGroups
// is deliberately absent: the engine has Latin-1 byte semantics.
const ParseFlags = syntax.MatchNL | syntax.OneLine | syntax.PerlX

// CompilerConfig configures NFA compilation behavior
type CompilerConfig struct {
	// MaxStates limits the number of NFA states. Exceeding it fails
	// compilation with ErrTooComplex. This is the guard against
	// exponential blow-up from counted repetitions.
	// Default: 10,000
	MaxStates int

	// MaxRecursionDepth limits recursion over the parse tree to prevent
	// stack overflow. Default: 100
	MaxRecursionDepth int
}

// DefaultCompilerConfig returns a compiler configuration with sensible defaults
func DefaultCompilerConfig() CompilerConfig {
	return CompilerConfig{
		MaxStates:         10_000,
		MaxRecursionDepth: 100,
	}
}

// Compiler compiles regexp/syntax parse trees into byte-level Thompson NFAs
// with Latin-1 semantics.
type Compiler struct {
	config  CompilerConfig
	builder *Builder
	depth   int
}

// NewCompiler creates a new NFA compiler with the given configuration
func NewCompiler(config CompilerConfig) *Compiler {
	if config.MaxStates == 0 {
		config.MaxStates = 10_000
	}
	if config.MaxRecursionDepth == 0 {
		config.MaxRecursionDepth = 100
	}
	return &Compiler{config: config}
}

// Compile compiles a regex pattern string into an NFA accepting exactly the
// strings the pattern fully matches.
func (c *Compiler) Compile(pattern string) (*NFA, error) {
	re, err := syntax.Parse(pattern, ParseFlags)
	if err != nil {
		return nil, &CompileError{
			Pattern: pattern,
			Err:     fmt.Errorf("%w: %v", ErrBadRegex, err),
		}
	}

	c.builder = NewBuilder()
	c.depth = 0

	match := c.builder.AddMatch()
	start, err := c.compile(re, match)
	if err != nil {
		return nil, &CompileError{Pattern: pattern, Err: err}
	}

	return c.builder.Build(start), nil
}

// compile compiles re into a fragment that continues to cont, returning the
// fragment's entry state. Compilation is continuation-passing: concatenation
// threads continuations right to left, and loops tie the knot through a
// patched split.
func (c *Compiler) compile(re *syntax.Regexp, cont StateID) (StateID, error) {
	if c.builder.Len() > c.config.MaxStates {
		return InvalidState, ErrTooComplex
	}
	c.depth++
	defer func() { c.depth-- }()
	if c.depth > c.config.MaxRecursionDepth {
		return InvalidState, ErrTooComplex
	}

	switch re.Op {
	case syntax.OpEmptyMatch:
		return cont, nil

	case syntax.OpNoMatch:
		return c.builder.AddFail(), nil

	case syntax.OpLiteral:
		return c.compileLiteral(re, cont)

	case syntax.OpCharClass:
		return c.compileCharClass(re.Rune, cont), nil

	case syntax.OpAnyChar:
		return c.builder.AddByteRange(0x00, 0xFF, cont), nil

	case syntax.OpAnyCharNotNL:
		// Unreachable under MatchNL, kept for completeness.
		return c.builder.AddSparse([]Transition{
			{Lo: 0x00, Hi: '\n' - 1, Next: cont},
			{Lo: '\n' + 1, Hi: 0xFF, Next: cont},
		}), nil

	case syntax.OpBeginText, syntax.OpBeginLine:
		return c.builder.AddLook(LookStartText, cont), nil

	case syntax.OpEndText, syntax.OpEndLine:
		return c.builder.AddLook(LookEndText, cont), nil

	case syntax.OpWordBoundary:
		return c.builder.AddLook(LookWordBoundary, cont), nil

	case syntax.OpNoWordBoundary:
		return c.builder.AddLook(LookNoWordBoundary, cont), nil

	case syntax.OpCapture:
		// Groups only group: ranking has no capture semantics.
		return c.compile(re.Sub[0], cont)

	case syntax.OpConcat:
		return c.compileConcat(re.Sub, cont)

	case syntax.OpAlternate:
		return c.compileAlternate(re.Sub, cont)

	case syntax.OpStar:
		return c.compileStar(re.Sub[0], cont)

	case syntax.OpPlus:
		return c.compilePlus(re.Sub[0], cont)

	case syntax.OpQuest:
		body, err := c.compile(re.Sub[0], cont)
		if err != nil {
			return InvalidState, err
		}
		return c.builder.AddSplit(body, cont), nil

	case syntax.OpRepeat:
		return c.compileRepeat(re.Sub[0], re.Min, re.Max, cont)

	default:
		return InvalidState, fmt.Errorf("%w: unsupported op %v", ErrBadRegex, re.Op)
	}
}

// compileLiteral chains one consuming state per rune, honoring (?i) by
// expanding each rune's simple-fold orbit (folds above 0xFF are clipped,
// like every other Latin-1 lowering).
func (c *Compiler) compileLiteral(re *syntax.Regexp, cont StateID) (StateID, error) {
	foldCase := re.Flags&syntax.FoldCase != 0

	next := cont
	for i := len(re.Rune) - 1; i >= 0; i-- {
		r := re.Rune[i]
		var bs []byte
		if foldCase {
			bs = foldBytes(r)
		} else if r <= 0xFF {
			bs = []byte{byte(r)}
		}
		switch len(bs) {
		case 0:
			// The rune cannot occur in a Latin-1 string: the whole
			// literal is unmatchable.
			return c.builder.AddFail(), nil
		case 1:
			next = c.builder.AddByteRange(bs[0], bs[0], next)
		default:
			trans := make([]Transition, len(bs))
			for j, b := range bs {
				trans[j] = Transition{Lo: b, Hi: b, Next: next}
			}
			next = c.builder.AddSparse(trans)
		}
	}
	return next, nil
}

// compileCharClass lowers rune ranges to byte ranges clipped to [0, 255].
func (c *Compiler) compileCharClass(runes []rune, cont StateID) StateID {
	var trans []Transition
	for i := 0; i+1 < len(runes); i += 2 {
		lo, hi := runes[i], runes[i+1]
		if lo > 0xFF {
			continue
		}
		if hi > 0xFF {
			hi = 0xFF
		}
		trans = append(trans, Transition{Lo: byte(lo), Hi: byte(hi), Next: cont})
	}
	switch len(trans) {
	case 0:
		return c.builder.AddFail()
	case 1:
		return c.builder.AddByteRange(trans[0].Lo, trans[0].Hi, cont)
	default:
		return c.builder.AddSparse(trans)
	}
}

func (c *Compiler) compileConcat(subs []*syntax.Regexp, cont StateID) (StateID, error) {
	next := cont
	for i := len(subs) - 1; i >= 0; i-- {
		start, err := c.compile(subs[i], next)
		if err != nil {
			return InvalidState, err
		}
		next = start
	}
	return next, nil
}

func (c *Compiler) compileAlternate(subs []*syntax.Regexp, cont StateID) (StateID, error) {
	starts := make([]StateID, len(subs))
	for i, sub := range subs {
		start, err := c.compile(sub, cont)
		if err != nil {
			return InvalidState, err
		}
		starts[i] = start
	}
	// Right-leaning split chain.
	out := starts[len(starts)-1]
	for i := len(starts) - 2; i >= 0; i-- {
		out = c.builder.AddSplit(starts[i], out)
	}
	return out, nil
}

func (c *Compiler) compileStar(sub *syntax.Regexp, cont StateID) (StateID, error) {
	sp := c.builder.AddSplit(InvalidState, cont)
	body, err := c.compile(sub, sp)
	if err != nil {
		return InvalidState, err
	}
	c.builder.PatchSplit(sp, body)
	return sp, nil
}

func (c *Compiler) compilePlus(sub *syntax.Regexp, cont StateID) (StateID, error) {
	sp := c.builder.AddSplit(InvalidState, cont)
	body, err := c.compile(sub, sp)
	if err != nil {
		return InvalidState, err
	}
	c.builder.PatchSplit(sp, body)
	return body, nil
}

// compileRepeat expands x{min,max} into min mandatory copies followed by
// max-min optional ones (or a star when max is unbounded). Greedy vs lazy is
// irrelevant: only the language matters here.
func (c *Compiler) compileRepeat(sub *syntax.Regexp, minCount, maxCount int, cont StateID) (StateID, error) {
	next := cont
	if maxCount == -1 {
		star, err := c.compileStar(sub, cont)
		if err != nil {
			return InvalidState, err
		}
		next = star
	} else {
		for i := 0; i < maxCount-minCount; i++ {
			body, err := c.compile(sub, next)
			if err != nil {
				return InvalidState, err
			}
			next = c.builder.AddSplit(body, next)
		}
	}
	for i := 0; i < minCount; i++ {
		start, err := c.compile(sub, next)
		if err != nil {
			return InvalidState, err
		}
		next = start
	}
	return next, nil
}

// foldBytes returns the distinct Latin-1 bytes in r's simple case-fold orbit,
// ascending. Empty when no member of the orbit fits in a byte.
func foldBytes(r rune) []byte {
	var out []byte
	if r <= 0xFF {
		out = append(out, byte(r))
	}
	for f := unicode.SimpleFold(r); f != r; f = unicode.SimpleFold(f) {
		if f <= 0xFF {
			out = append(out, byte(f))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	n := 0
	for i, b := range out {
		if i == 0 || b != out[n-1] {
			out[n] = b
			n++
		}
	}
	return out[:n]
}

// Compile is a convenience wrapper using the default configuration.
func Compile(pattern string) (*NFA, error) {
	return NewCompiler(DefaultCompilerConfig()).Compile(pattern)
}
