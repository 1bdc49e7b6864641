package bigint

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestZeroValue(t *testing.T) {
	var x Int
	require.True(t, x.IsZero())
	require.Equal(t, 0, x.Sign())
	require.Equal(t, "0", x.String())
	require.Equal(t, 0, x.Cmp(Zero()))

	// The zero value must be usable as an operand.
	require.Equal(t, "7", x.Add(FromUint64(7)).String())
}

func TestArithmetic(t *testing.T) {
	a := FromUint64(1000)
	b := FromUint64(24)

	require.Equal(t, "1024", a.Add(b).String())
	require.Equal(t, "976", a.Sub(b).String())
	require.Equal(t, "24000", a.Mul(b).String())
	require.Equal(t, "3000", a.MulUint64(3).String())

	quo, mod := a.DivMod(b)
	require.Equal(t, "41", quo.String())
	require.Equal(t, "16", mod.String())
}

func TestDivModRange(t *testing.T) {
	// 0 <= mod < divisor for every case the kernel produces.
	for x := uint64(0); x < 50; x++ {
		for y := uint64(1); y < 7; y++ {
			quo, mod := FromUint64(x).DivMod(FromUint64(y))
			q, ok := quo.Uint64()
			require.True(t, ok)
			m, ok := mod.Uint64()
			require.True(t, ok)
			require.Equal(t, x/y, q)
			require.Equal(t, x%y, m)
			require.Less(t, m, y)
		}
	}
}

func TestStringRoundTrip(t *testing.T) {
	// A value beyond uint64 range: 2^80.
	x := FromUint64(1)
	for i := 0; i < 80; i++ {
		x = x.MulUint64(2)
	}
	require.Equal(t, "1208925819614629174706176", x.String())

	y, err := FromString(x.String())
	require.NoError(t, err)
	require.Equal(t, 0, x.Cmp(y))

	_, ok := x.Uint64()
	require.False(t, ok)
}

func TestFromStringRejects(t *testing.T) {
	for _, s := range []string{"", "abc", "-1", "12x", "0x10"} {
		_, err := FromString(s)
		require.Error(t, err, "input %q", s)
	}
}

func TestSubNegativePanics(t *testing.T) {
	require.Panics(t, func() {
		FromUint64(1).Sub(FromUint64(2))
	})
}

func TestDivByZeroPanics(t *testing.T) {
	require.Panics(t, func() {
		FromUint64(1).DivMod(Zero())
	})
}

func TestImmutability(t *testing.T) {
	a := FromUint64(5)
	b := a.Add(FromUint64(1))
	require.Equal(t, "5", a.String())
	require.Equal(t, "6", b.String())

	quo, mod := b.DivMod(a)
	require.Equal(t, "6", b.String())
	require.Equal(t, "5", a.String())
	require.Equal(t, "1", quo.String())
	require.Equal(t, "1", mod.String())
}
