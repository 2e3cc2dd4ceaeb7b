package element

import (
	"math/big"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func c32(v int64) *Constant {
	return NewConstantInt(32, true, ClassInteger, big.NewInt(v))
}

func cu8(v int64) *Constant {
	return NewConstantInt(8, false, ClassInteger, big.NewInt(v))
}

func TestConstantApplyPlus(t *testing.T) {
	env := NewEvaluationEnvironment(c32(10), c32(5), InfoExact, LatticeInterval)
	Apply(c32(10), OpPlus, env)
	require.False(t, env.IsEmpty())
	result, ok := env.Result.(*Constant)
	require.True(t, ok)
	assert.Equal(t, big.NewInt(15), result.Int().Big())
	assert.True(t, env.Errors.IsClean())
}

func TestConstantApplyOverflowSetsSureFlag(t *testing.T) {
	env := NewEvaluationEnvironment(cu8(250), cu8(10), InfoExact, LatticeInterval)
	Apply(cu8(250), OpPlus, env)
	require.False(t, env.IsEmpty())
	assert.True(t, env.Errors.HasSure(ErrPositiveOverflow))
}

func TestConstantApplyCompare(t *testing.T) {
	env := NewEvaluationEnvironment(c32(3), c32(5), InfoExact, LatticeInterval)
	Apply(c32(3), OpCompareLess, env)
	result, ok := env.Result.(*Constant)
	require.True(t, ok)
	assert.True(t, result.Bool())
}

func TestConstantApplyLogical(t *testing.T) {
	env := NewEvaluationEnvironment(NewConstantBool(true), NewConstantBool(false), InfoExact, LatticeInterval)
	Apply(NewConstantBool(true), OpLogicalAnd, env)
	result := env.Result.(*Constant)
	assert.False(t, result.Bool())
}

func TestConstantWriteFormat(t *testing.T) {
	var sb strings.Builder
	c32(-7).Write(&sb)
	assert.Equal(t, "s32:-7", sb.String())

	var sb2 strings.Builder
	cu8(9).Write(&sb2)
	assert.Equal(t, "u8:9", sb2.String())
}

func TestConstantQueryBounds(t *testing.T) {
	c := c32(42)
	res := c.Query(QueryBounds)
	assert.Same(t, Element(c), res.Bounds.Min)
	assert.Same(t, Element(c), res.Bounds.Max)
}

func TestConstantQueryCompareSpecial(t *testing.T) {
	assert.Equal(t, CompareAlwaysZero, c32(0).Query(QueryCompareSpecial).CompareSpecial)
	assert.Equal(t, CompareAlwaysNegative, c32(-1).Query(QueryCompareSpecial).CompareSpecial)
	assert.Equal(t, CompareAlwaysPositive, c32(1).Query(QueryCompareSpecial).CompareSpecial)
}

func TestConstantQuerySimplify(t *testing.T) {
	c := c32(4)
	asInterval := c.Query(QuerySimplifyAsInterval)
	require.True(t, asInterval.Simplifiable)
	assert.Same(t, Element(c), asInterval.AsInterval)

	asDisjunction := c.Query(QuerySimplifyAsConstantDisjunction)
	require.True(t, asDisjunction.Simplifiable)
	require.Len(t, asDisjunction.AsConstants, 1)
	assert.Same(t, Element(c), asDisjunction.AsConstants[0])
}

func TestConstantMergeWithEqualStaysConstant(t *testing.T) {
	result := Merge(c32(7), c32(7), LatticeInterval)
	_, ok := result.(*Constant)
	require.True(t, ok)
	assert.True(t, result.Contain(c32(7)) == ContainTrue)
}

func TestConstantMergeWithDistinctBuildsInterval(t *testing.T) {
	result := Merge(c32(0), c32(10), LatticeInterval)
	interval, ok := result.(*Interval)
	require.True(t, ok)
	assert.Equal(t, ContainTrue, interval.Contain(c32(5)))
}

func TestConstantMergeWithLatticeTopWidensToTop(t *testing.T) {
	result := Merge(c32(0), c32(10), LatticeTop)
	_, ok := result.(*Top)
	require.True(t, ok)
}

func TestConstantMergeWithLatticeDisjunctionKeepsBothValues(t *testing.T) {
	result := Merge(c32(0), c32(10), LatticeDisjunction)
	disjunction, ok := result.(*Disjunction)
	require.True(t, ok)
	assert.Equal(t, ContainTrue, disjunction.Contain(c32(0)))
	assert.Equal(t, ContainTrue, disjunction.Contain(c32(10)))
}

func TestConstantContain(t *testing.T) {
	assert.Equal(t, ContainTrue, c32(4).Contain(c32(4)))
	assert.Equal(t, ContainFalse, c32(4).Contain(c32(5)))
}

func TestConstantContainNeverHoldsAGenuineInterval(t *testing.T) {
	wide := NewInterval(32, true, ClassInteger, big.NewInt(0), big.NewInt(10))
	assert.Equal(t, ContainFalse, c32(4).Contain(wide))
}

func TestConstantIntersectWithEqual(t *testing.T) {
	result, ok := Intersect(c32(4), c32(4), InfoExact, LatticeInterval)
	require.True(t, ok)
	assert.Equal(t, ContainTrue, result.Contain(c32(4)))
}

func TestConstantIntersectWithUnequalIsEmpty(t *testing.T) {
	_, ok := Intersect(c32(4), c32(5), InfoExact, LatticeInterval)
	assert.False(t, ok)
}

func TestConstantCast(t *testing.T) {
	wide := c32(300)
	narrow, _ := wide.Cast(8, false, false)
	assert.Equal(t, uint(8), narrow.Width())
	assert.Equal(t, big.NewInt(44), narrow.Int().Big())
}

func TestConstantConstraintVerifiesForwardContainment(t *testing.T) {
	first := c32(10)
	env := NewConstraintEnvironment(first, c32(5), c32(15), InfoExact, LatticeInterval)
	Constraint(first, OpPlus, c32(15), env)
	assert.Equal(t, VerdictExact, env.Verdict)
	assert.Same(t, first, env.FirstResult.(*Constant))
}

func TestConstantConstraintEmptiesWhenResultDisagrees(t *testing.T) {
	env := NewConstraintEnvironment(c32(10), c32(5), c32(999), InfoExact, LatticeInterval)
	Constraint(c32(10), OpPlus, c32(999), env)
	assert.True(t, env.IsEmpty())
}
