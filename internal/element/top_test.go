package element

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Scenario F: apply(Top(32), compare_less, Top(32)) = {true, false}; apply(Top(32), +, 0) = Top(32), no flags.
func TestTopApplyComparisonYieldsBooleanDisjunction(t *testing.T) {
	top1 := NewTop(32, true, ClassInteger, nil)
	top2 := NewTop(32, true, ClassInteger, nil)
	env := NewEvaluationEnvironment(top1, top2, InfoExact, LatticeInterval)
	Apply(top1, OpCompareLess, env)
	require.False(t, env.IsEmpty())
	disjunction, ok := env.Result.(*Disjunction)
	require.True(t, ok)
	assert.Equal(t, ContainTrue, disjunction.Contain(NewConstantBool(true)))
	assert.Equal(t, ContainTrue, disjunction.Contain(NewConstantBool(false)))
}

func TestTopApplyPlusZeroStaysTopWithNoDivisionFlag(t *testing.T) {
	top := NewTop(32, true, ClassInteger, nil)
	env := NewEvaluationEnvironment(top, c32(0), InfoExact, LatticeInterval)
	Apply(top, OpPlus, env)
	require.False(t, env.IsEmpty())
	_, ok := env.Result.(*Top)
	require.True(t, ok)
	assert.True(t, env.Errors.IsClean())
}

func TestTopApplyPlusNonzeroRaisesOverflowFlags(t *testing.T) {
	top := NewTop(32, true, ClassInteger, nil)
	env := NewEvaluationEnvironment(top, c32(5), InfoExact, LatticeInterval)
	Apply(top, OpPlus, env)
	require.False(t, env.IsEmpty())
	assert.True(t, env.Errors.HasMay(ErrPositiveOverflow))
	assert.True(t, env.Errors.HasMay(ErrNegativeOverflow))
}

func TestTopApplyTimesByOneStaysCleanButByOtherValueIsNot(t *testing.T) {
	top := NewTop(32, true, ClassInteger, nil)
	clean := NewEvaluationEnvironment(top, c32(1), InfoExact, LatticeInterval)
	Apply(top, OpTimes, clean)
	assert.True(t, clean.Errors.IsClean())

	dirty := NewEvaluationEnvironment(top, c32(3), InfoExact, LatticeInterval)
	Apply(top, OpTimes, dirty)
	assert.True(t, dirty.Errors.HasMay(ErrPositiveOverflow))
}

func TestTopApplyDivisionSetsMayDivisionByZeroUnlessDivisorProvenNonzero(t *testing.T) {
	top := NewTop(32, true, ClassInteger, nil)

	env := NewEvaluationEnvironment(top, c32(0), InfoExact, LatticeInterval)
	Apply(top, OpDivide, env)
	assert.True(t, env.Errors.HasMay(ErrDivisionByZero))

	env2 := NewEvaluationEnvironment(top, c32(5), InfoExact, LatticeInterval)
	Apply(top, OpDivide, env2)
	assert.False(t, env2.Errors.HasMay(ErrDivisionByZero))
}

func TestTopConstraintPromotesIntegerToInterval(t *testing.T) {
	top := NewTop(8, true, ClassInteger, nil)
	env := NewConstraintEnvironment(top, c32(5), NewConstantBool(true), InfoExact, LatticeInterval)
	env.Forced = true
	Constraint(top, OpCompareLess, NewConstantBool(true), env)
	assert.NotNil(t, env.FirstResult)
	assert.NotEqual(t, VerdictUnstable, env.Verdict)
}

func TestTopMergeWithAlwaysYieldsTop(t *testing.T) {
	top := NewTop(32, true, ClassInteger, nil)
	result := Merge(top, c32(5), LatticeInterval)
	_, ok := result.(*Top)
	assert.True(t, ok)
}

func TestTopContainsEverything(t *testing.T) {
	top := NewTop(32, true, ClassInteger, nil)
	assert.Equal(t, ContainTrue, top.Contain(c32(5)))
	assert.Equal(t, ContainTrue, top.Contain(iv32(0, 100)))
}

func TestTopIntersectWithReturnsOther(t *testing.T) {
	top := NewTop(32, true, ClassInteger, nil)
	result, ok := Intersect(top, iv32(0, 10), InfoExact, LatticeInterval)
	require.True(t, ok)
	interval, ok := result.(*Interval)
	require.True(t, ok)
	assert.Equal(t, big.NewInt(0), interval.Min().Int().Big())
}

func TestTopCastChangesWidthButStaysTop(t *testing.T) {
	top := NewTop(32, true, ClassInteger, nil)
	result, flags := Cast(top, 64, false, false)
	require.True(t, flags.IsClean())
	cast, ok := result.(*Top)
	require.True(t, ok)
	assert.Equal(t, uint(64), cast.Width())
	assert.False(t, cast.Signed())
}

func TestTopApplyHookOverridesDefaultBehaviour(t *testing.T) {
	top := NewTop(32, true, ClassInteger, nil)
	top.ApplyHook = func(op Op, env *EvaluationEnvironment) bool {
		if op == OpPlus {
			env.StoreResult(c32(42))
			return true
		}
		return false
	}
	env := NewEvaluationEnvironment(top, c32(1), InfoExact, LatticeInterval)
	Apply(top, OpPlus, env)
	result, ok := env.Result.(*Constant)
	require.True(t, ok)
	assert.Equal(t, big.NewInt(42), result.Int().Big())
}
