package primitives

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func i(width uint, signed bool, v int64) Int {
	return NewInt(width, signed, big.NewInt(v))
}

func TestAddSaturatesSigned(t *testing.T) {
	x := i(8, true, 120)
	y := i(8, true, 10)
	result, flags := x.Add(y)
	assert.Equal(t, MaxSigned(8), result.Big())
	assert.True(t, flags.Has(PositiveOverflow))
}

func TestAddWrapsUnsigned(t *testing.T) {
	x := i(8, false, 250)
	y := i(8, false, 10)
	result, flags := x.Add(y)
	assert.Equal(t, big.NewInt(4), result.Big())
	assert.True(t, flags.Has(PositiveOverflow))
}

func TestNextSaturatesAtMaxSigned(t *testing.T) {
	x := NewInt(8, true, MaxSigned(8))
	result, flags := x.Next()
	require.True(t, flags.Has(PositiveOverflow))
	assert.Equal(t, MaxSigned(8), result.Big())
}

func TestPrevSaturatesAtMinSigned(t *testing.T) {
	x := NewInt(8, true, MinSigned(8))
	result, flags := x.Prev()
	require.True(t, flags.Has(NegativeOverflow))
	assert.Equal(t, MinSigned(8), result.Big())
}

func TestNegMinSignedSaturates(t *testing.T) {
	x := NewInt(8, true, MinSigned(8))
	result, flags := x.Neg()
	require.True(t, flags.Has(PositiveOverflow))
	assert.Equal(t, MaxSigned(8), result.Big())
}

func TestDivByZeroReturnsDividend(t *testing.T) {
	x := i(8, true, 42)
	zero := i(8, true, 0)
	result, flags := x.Div(zero)
	assert.True(t, flags.Has(DivisionByZero))
	assert.True(t, result.Equal(x))
}

func TestShiftByWidthIsZeroAndInexact(t *testing.T) {
	x := i(8, false, 0xFF)
	result, flags := x.Shl(8)
	assert.True(t, flags.Has(Inexact))
	assert.True(t, result.IsZero())
}

func TestAshrSignFillsOnWideShift(t *testing.T) {
	x := i(8, true, -1)
	result, flags := x.Ashr(8)
	assert.True(t, flags.Has(Inexact))
	assert.Equal(t, big.NewInt(-1), result.Big())
}

func TestRotlRotrRoundTrip(t *testing.T) {
	x := i(8, false, 0b10110001)
	rotated := x.Rotl(3)
	back := rotated.Rotr(3)
	assert.True(t, back.Equal(x))
}

func TestConcatAndExtract(t *testing.T) {
	hi := i(4, false, 0xA)
	lo := i(4, false, 0x5)
	joined := hi.Concat(lo, false)
	assert.Equal(t, uint(8), joined.Width())
	assert.Equal(t, big.NewInt(0xA5), joined.Big())

	extractedHi := joined.Extract(4, 4, false)
	assert.True(t, extractedHi.Equal(hi))
}

func TestSignedCompareTreatsBitsAsTwosComplement(t *testing.T) {
	x := i(8, true, -1)
	y := i(8, true, 1)
	assert.True(t, x.Less(y))
}
