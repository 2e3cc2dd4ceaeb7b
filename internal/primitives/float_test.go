package primitives

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFloatDivByZeroFlagsDivisionByZero(t *testing.T) {
	a, _ := NewFloat(Float64Shape, 1.0)
	zero, _ := NewFloat(Float64Shape, 0.0)
	_, flags := a.Div(zero)
	assert.True(t, flags.Has(DivisionByZero))
}

func TestFloatZeroOverZeroIsNaN(t *testing.T) {
	zero, _ := NewFloat(Float64Shape, 0.0)
	result, flags := zero.Div(zero)
	assert.True(t, flags.Has(NaN))
	assert.True(t, result.IsNaN())
}

func TestFloatAddRoundTrip(t *testing.T) {
	a, _ := NewFloat(Float64Shape, 1.5)
	b, _ := NewFloat(Float64Shape, 2.25)
	sum, flags := a.Add(b)
	require.True(t, flags.IsClean())
	v, _ := sum.Float64()
	assert.Equal(t, 3.75, v)
}

func TestFloatTranscendentalFlagsInexact(t *testing.T) {
	a, _ := NewFloat(Float64Shape, 0.0)
	result, flags := a.Transcendental("sin")
	assert.True(t, flags.Has(Inexact))
	v, _ := result.Float64()
	assert.InDelta(t, 0.0, v, 1e-9)
}
