package element

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDisjunctionBuilderSimplifyPromotesSingleton(t *testing.T) {
	d := NewDisjunction(32, true, ClassInteger)
	d.AddExact(c32(7))
	result := d.Simplify()
	_, isDisjunction := result.(*Disjunction)
	assert.False(t, isDisjunction)
	assert.Equal(t, ContainTrue, result.Contain(c32(7)))
}

func TestDisjunctionBuilderSimplifyKeepsDistinctExacts(t *testing.T) {
	d := NewDisjunction(32, true, ClassInteger)
	d.AddExact(c32(0))
	d.AddExact(c32(10))
	result := d.Simplify()
	disjunction, ok := result.(*Disjunction)
	require.True(t, ok)
	assert.Equal(t, ContainTrue, disjunction.Contain(c32(0)))
	assert.Equal(t, ContainTrue, disjunction.Contain(c32(10)))
	assert.Equal(t, ContainFalse, disjunction.Contain(c32(5)))
}

func TestDisjunctionSimplifyCollapsesToTopOnTopMember(t *testing.T) {
	d := NewDisjunction(32, true, ClassInteger)
	d.AddExact(c32(0))
	d.AddExact(NewTop(32, true, ClassInteger, nil))
	result := d.Simplify()
	_, ok := result.(*Top)
	assert.True(t, ok)
}

func TestDisjunctionSimplifyFlattensNested(t *testing.T) {
	inner := NewDisjunction(32, true, ClassInteger)
	inner.AddExact(c32(1))
	inner.AddExact(c32(2))
	innerResult := inner.Simplify()

	outer := NewDisjunction(32, true, ClassInteger)
	outer.AddExact(innerResult)
	outer.AddExact(c32(3))
	result := outer.Simplify()
	disjunction, ok := result.(*Disjunction)
	require.True(t, ok)
	assert.Equal(t, ContainTrue, disjunction.Contain(c32(1)))
	assert.Equal(t, ContainTrue, disjunction.Contain(c32(2)))
	assert.Equal(t, ContainTrue, disjunction.Contain(c32(3)))
}

func TestDisjunctionSimplifyDiscardsDominatedMay(t *testing.T) {
	d := NewDisjunction(32, true, ClassInteger)
	d.AddExact(c32(0))
	d.AddMay(iv32(0, 10))
	d.AddMay(c32(5)) // dominated by the [0,10] may member
	result := d.Simplify()
	disjunction, ok := result.(*Disjunction)
	require.True(t, ok)
	assert.Equal(t, ContainTrue, disjunction.Contain(c32(5)))
}

func TestDisjunctionConcretisationIsUnionOfMayAndExact(t *testing.T) {
	d := NewDisjunction(32, true, ClassInteger)
	d.AddExact(c32(0))
	d.AddMay(c32(10))
	result := d.Simplify()
	assert.Equal(t, ContainTrue, result.Contain(c32(0)))
	assert.Equal(t, ContainTrue, result.Contain(c32(10)))
	assert.Equal(t, ContainFalse, result.Contain(c32(5)))
}

// Scenario E: merge([0, 10], 15, lattice=Disjunction) yields {[0, 10], 15}.
func TestDisjunctionMergeFromIntervalAndConstant(t *testing.T) {
	result := Merge(iv32(0, 10), c32(15), LatticeDisjunction)
	disjunction, ok := result.(*Disjunction)
	require.True(t, ok)
	assert.Equal(t, ContainTrue, disjunction.Contain(c32(5)))
	assert.Equal(t, ContainTrue, disjunction.Contain(c32(15)))
	assert.Equal(t, ContainFalse, disjunction.Contain(c32(20)))
}

// Logical negation of the {true, false} boolean disjunction is applied to each
// member and still yields both booleans.
func TestDisjunctionApplyBooleanMembers(t *testing.T) {
	d := newBooleanDisjunction().(*Disjunction)
	env := NewEvaluationEnvironment(d, nil, InfoExact, LatticeInterval)
	Apply(d, OpLogicalNegate, env)
	require.False(t, env.IsEmpty())
	result, ok := env.Result.(*Disjunction)
	require.True(t, ok)
	assert.Equal(t, ContainTrue, result.Contain(NewConstantBool(true)))
	assert.Equal(t, ContainTrue, result.Contain(NewConstantBool(false)))
}

func TestDisjunctionApplyAcrossMembers(t *testing.T) {
	d := NewDisjunction(32, true, ClassInteger)
	d.AddExact(c32(0))
	d.AddExact(c32(10))
	built := d.Simplify()

	env := NewEvaluationEnvironment(built, c32(1), InfoExact, LatticeInterval)
	Apply(built, OpPlus, env)
	require.False(t, env.IsEmpty())
	assert.Equal(t, ContainTrue, env.Result.Contain(c32(1)))
	assert.Equal(t, ContainTrue, env.Result.Contain(c32(11)))
}

func TestDisjunctionIntersectWithKeepsOverlappingMembers(t *testing.T) {
	d := NewDisjunction(32, true, ClassInteger)
	d.AddExact(c32(0))
	d.AddExact(c32(10))
	built := d.Simplify()

	result, ok := Intersect(built, iv32(5, 20), InfoExact, LatticeInterval)
	require.True(t, ok)
	assert.Equal(t, ContainTrue, result.Contain(c32(10)))
	assert.Equal(t, ContainFalse, result.Contain(c32(0)))
}

func TestDisjunctionContainPartial(t *testing.T) {
	d := NewDisjunction(32, true, ClassInteger)
	d.AddExact(c32(0))
	d.AddExact(c32(100))
	built := d.Simplify()

	other := NewDisjunction(32, true, ClassInteger)
	other.AddExact(c32(0))
	other.AddExact(c32(999))
	otherBuilt := other.Simplify()

	assert.Equal(t, ContainPartial, built.Contain(otherBuilt))
}

func TestDisjunctionCastFansOutOverMembers(t *testing.T) {
	d := NewDisjunction(32, true, ClassInteger)
	d.AddExact(c32(0))
	d.AddExact(c32(10))
	built, ok := d.Simplify().(*Disjunction)
	require.True(t, ok)

	result, flags := Cast(built, 64, true, true)
	require.True(t, flags.IsClean())
	assert.Equal(t, ContainTrue, result.Contain(NewConstantInt(64, true, ClassInteger, big.NewInt(0))))
	assert.Equal(t, ContainTrue, result.Contain(NewConstantInt(64, true, ClassInteger, big.NewInt(10))))
}

func TestDisjunctionBitSetFansOutAndWidensIntervalMembers(t *testing.T) {
	d := NewDisjunction(32, true, ClassInteger)
	d.AddMay(c32(0))
	d.AddMay(iv32(5, 20))
	built, ok := d.Simplify().(*Disjunction)
	require.True(t, ok)

	result := built.BitSet(0, cu8(1))
	assert.Equal(t, ContainTrue, result.Contain(c32(999999)))
}
