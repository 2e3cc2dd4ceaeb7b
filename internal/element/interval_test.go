package element

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func iv32(min, max int64) Element {
	return NewInterval(32, true, ClassInteger, big.NewInt(min), big.NewInt(max))
}

// Scenario A: apply([10, 20], +, 5) = [15, 25], no flags.
func TestIntervalApplyPlusConstant(t *testing.T) {
	env := NewEvaluationEnvironment(iv32(10, 20), c32(5), InfoExact, LatticeInterval)
	Apply(iv32(10, 20), OpPlus, env)
	require.False(t, env.IsEmpty())
	result, ok := env.Result.(*Interval)
	require.True(t, ok)
	assert.Equal(t, big.NewInt(15), result.Min().Int().Big())
	assert.Equal(t, big.NewInt(25), result.Max().Int().Big())
	assert.True(t, env.Errors.IsClean())
}

// Scenario B: apply([MAX_INT-3, MAX_INT], +, 5) overflows; stop_on_errors empties.
func TestIntervalApplyPlusOverflowsToMayFlag(t *testing.T) {
	maxInt := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 31), big.NewInt(1))
	near := new(big.Int).Sub(maxInt, big.NewInt(3))
	env := NewEvaluationEnvironment(NewInterval(32, true, ClassInteger, near, maxInt), c32(5), InfoExact, LatticeInterval)
	Apply(NewInterval(32, true, ClassInteger, near, maxInt), OpPlus, env)
	require.False(t, env.IsEmpty())
	assert.True(t, env.Errors.HasMay(ErrPositiveOverflow))
}

func TestIntervalApplyPlusOverflowStopsOnErrors(t *testing.T) {
	maxInt := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 31), big.NewInt(1))
	near := new(big.Int).Sub(maxInt, big.NewInt(3))
	env := NewEvaluationEnvironment(NewInterval(32, true, ClassInteger, near, maxInt), c32(5), InfoExact, LatticeInterval)
	env.StopOnErrors = true
	Apply(NewInterval(32, true, ClassInteger, near, maxInt), OpPlus, env)
	assert.True(t, env.IsEmpty())
	assert.True(t, env.Errors.HasSure(ErrPositiveOverflow) || env.Errors.HasMay(ErrPositiveOverflow))
}

// Scenario C: apply([-3, 3], x, -1) = [-3, 3] (symmetric).
func TestIntervalApplyMultiplyByNegativeOneIsSymmetric(t *testing.T) {
	env := NewEvaluationEnvironment(iv32(-3, 3), c32(-1), InfoExact, LatticeInterval)
	Apply(iv32(-3, 3), OpTimes, env)
	require.False(t, env.IsEmpty())
	result, ok := env.Result.(*Interval)
	require.True(t, ok)
	assert.Equal(t, big.NewInt(-3), result.Min().Int().Big())
	assert.Equal(t, big.NewInt(3), result.Max().Int().Big())
}

// Scenario D: constraint([0, 100], <, 50, forced) narrows per direction.
func TestIntervalConstraintForcedTrueNarrowsUpper(t *testing.T) {
	env := NewConstraintEnvironment(iv32(0, 100), c32(50), NewConstantBool(true), InfoExact, LatticeInterval)
	env.Forced = true
	Constraint(iv32(0, 100), OpCompareLess, NewConstantBool(true), env)
	result, ok := env.FirstResult.(*Interval)
	require.True(t, ok)
	assert.Equal(t, big.NewInt(0), result.Min().Int().Big())
	assert.Equal(t, big.NewInt(49), result.Max().Int().Big())
}

func TestIntervalConstraintForcedFalseNarrowsLower(t *testing.T) {
	env := NewConstraintEnvironment(iv32(0, 100), c32(50), NewConstantBool(false), InfoExact, LatticeInterval)
	env.Forced = false
	Constraint(iv32(0, 100), OpCompareLess, NewConstantBool(false), env)
	result, ok := env.FirstResult.(*Interval)
	require.True(t, ok)
	assert.Equal(t, big.NewInt(50), result.Min().Int().Big())
	assert.Equal(t, big.NewInt(100), result.Max().Int().Big())
}

func TestIntervalContain(t *testing.T) {
	outer := iv32(0, 100)
	assert.Equal(t, ContainTrue, outer.Contain(c32(50)))
	assert.Equal(t, ContainFalse, outer.Contain(c32(200)))
	assert.Equal(t, ContainTrue, outer.Contain(iv32(10, 20)))
	assert.Equal(t, ContainPartial, outer.Contain(iv32(50, 200)))
	assert.Equal(t, ContainFalse, outer.Contain(iv32(200, 300)))
}

func TestIntervalMergeWithConstantExtendsBounds(t *testing.T) {
	result := Merge(iv32(0, 10), c32(15), LatticeInterval)
	interval, ok := result.(*Interval)
	require.True(t, ok)
	assert.Equal(t, big.NewInt(0), interval.Min().Int().Big())
	assert.Equal(t, big.NewInt(15), interval.Max().Int().Big())
}

func TestIntervalIntersectWithOverlap(t *testing.T) {
	result, ok := Intersect(iv32(0, 10), iv32(5, 20), InfoExact, LatticeInterval)
	require.True(t, ok)
	assert.Equal(t, ContainTrue, result.Contain(c32(7)))
	assert.Equal(t, ContainFalse, result.Contain(c32(15)))
}

func TestIntervalIntersectWithNoOverlapIsEmpty(t *testing.T) {
	_, ok := Intersect(iv32(0, 10), iv32(20, 30), InfoExact, LatticeInterval)
	assert.False(t, ok)
}

func TestIntervalCollapsesToConstantWhenMinEqualsMax(t *testing.T) {
	result := iv32(4, 4)
	_, isInterval := result.(*Interval)
	assert.False(t, isInterval)
	_, isConstant := result.(*Constant)
	assert.True(t, isConstant)
}

func TestIntervalApplyConcatWithConstantBoundsJointly(t *testing.T) {
	env := NewEvaluationEnvironment(iv32(0, 3), cu8(5), InfoExact, LatticeInterval)
	Apply(iv32(0, 3), OpConcat, env)
	require.False(t, env.IsEmpty())
	result, ok := env.Result.(*Interval)
	require.True(t, ok)
	assert.Equal(t, uint(40), result.Width())
	assert.Equal(t, big.NewInt(5), result.Min().Int().Big())
	assert.Equal(t, big.NewInt(3*256+5), result.Max().Int().Big())
	assert.True(t, env.Errors.IsClean())
}

func TestIntervalApplyRotateWidensToTop(t *testing.T) {
	env := NewEvaluationEnvironment(iv32(1, 2), c32(4), InfoExact, LatticeInterval)
	Apply(iv32(1, 2), OpLeftRotate, env)
	require.False(t, env.IsEmpty())
	result, ok := env.Result.(*Top)
	require.True(t, ok)
	assert.Equal(t, uint(32), result.Width())
	assert.True(t, env.Errors.IsClean())
}

func TestIntervalCastGrowingPreservesBounds(t *testing.T) {
	result, flags := Cast(iv32(1, 2), 64, true, true)
	require.True(t, flags.IsClean())
	interval, ok := result.(*Interval)
	require.True(t, ok)
	assert.Equal(t, uint(64), interval.Width())
	assert.Equal(t, big.NewInt(1), interval.Min().Int().Big())
	assert.Equal(t, big.NewInt(2), interval.Max().Int().Big())
}

func TestIntervalCastNarrowingWidensToFullRangeOnWrappedBound(t *testing.T) {
	result, flags := Cast(iv32(0, 1000), 8, false, false)
	assert.False(t, flags.IsClean())
	_, ok := result.(*Interval)
	require.True(t, ok)
}

func TestIntervalBitSetWidensToTop(t *testing.T) {
	result := BitSet(iv32(0, 10), 0, cu8(1))
	_, ok := result.(*Top)
	assert.True(t, ok)
}
