// Package bigint provides the arbitrary-precision integer arithmetic used by
// the ranking engine.
//
// The engine only ever manipulates non-negative integers: counts of strings
// in a regular language and ranks within those counts. This package keeps the
// math/big dependency behind a narrow, value-style interface so the backing
// implementation is interchangeable and so no mutable *big.Int ever leaks
// across a package boundary.
//
// Int values are immutable after creation. Every operation returns a fresh
// value, which makes shared count tables safe for concurrent readers without
// synchronization.
package bigint

import (
	"fmt"
	"math/big"
)

// Int is an immutable non-negative arbitrary-precision integer.
//
// The zero value of Int is the number zero and is ready to use.
type Int struct {
	v *big.Int
}

// Zero returns the integer zero.
func Zero() Int {
	return Int{}
}

// One returns the integer one.
func One() Int {
	return FromUint64(1)
}

// FromUint64 returns an Int holding u.
func FromUint64(u uint64) Int {
	return Int{v: new(big.Int).SetUint64(u)}
}

// FromString parses a base-10 string into an Int.
// Negative values and non-numeric input are rejected.
func FromString(s string) (Int, error) {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return Int{}, fmt.Errorf("bigint: %q is not a base-10 integer", s)
	}
	if v.Sign() < 0 {
		return Int{}, fmt.Errorf("bigint: %q is negative", s)
	}
	return Int{v: v}, nil
}

// big returns the backing value, treating the zero Int as zero.
// The result must never be mutated.
func (x Int) big() *big.Int {
	if x.v == nil {
		return bigZero
	}
	return x.v
}

var bigZero = new(big.Int)

// Add returns x + y.
func (x Int) Add(y Int) Int {
	return Int{v: new(big.Int).Add(x.big(), y.big())}
}

// Sub returns x - y.
// Panics if y > x: a negative value can only arise from a bug in the engine.
func (x Int) Sub(y Int) Int {
	v := new(big.Int).Sub(x.big(), y.big())
	if v.Sign() < 0 {
		panic("bigint: negative result in Sub")
	}
	return Int{v: v}
}

// Mul returns x * y.
func (x Int) Mul(y Int) Int {
	return Int{v: new(big.Int).Mul(x.big(), y.big())}
}

// MulUint64 returns x * u.
func (x Int) MulUint64(u uint64) Int {
	return x.Mul(FromUint64(u))
}

// DivMod returns (x / y, x mod y) with floor division, so 0 <= mod < y.
// Panics if y is zero; callers guard divisions with an IsZero test.
func (x Int) DivMod(y Int) (quo, mod Int) {
	if y.IsZero() {
		panic("bigint: division by zero")
	}
	q, m := new(big.Int).QuoRem(x.big(), y.big(), new(big.Int))
	return Int{v: q}, Int{v: m}
}

// Cmp compares x and y, returning -1, 0, or +1.
func (x Int) Cmp(y Int) int {
	return x.big().Cmp(y.big())
}

// IsZero reports whether x is zero.
func (x Int) IsZero() bool {
	return x.big().Sign() == 0
}

// Sign returns 0 if x is zero and +1 otherwise.
func (x Int) Sign() int {
	return x.big().Sign()
}

// Uint64 converts x to a uint64.
// The second result is false if x does not fit.
func (x Int) Uint64() (uint64, bool) {
	if !x.big().IsUint64() {
		return 0, false
	}
	return x.big().Uint64(), true
}

// String returns the base-10 representation of x.
func (x Int) String() string {
	return x.big().String()
}
