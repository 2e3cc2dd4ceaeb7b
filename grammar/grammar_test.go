package grammar_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"scalardomain/grammar"
)

func TestParseTypedConstant(t *testing.T) {
	expr, err := grammar.ParseString("test", "u32:5")
	require.NoError(t, err)
	require.NotNil(t, expr.Left.Literal)
	assert.Equal(t, "u32", expr.Left.Literal.Type)
	require.NotNil(t, expr.Left.Literal.Value)
	assert.Equal(t, "5", *expr.Left.Literal.Value)
	assert.Empty(t, expr.Ops)
}

func TestParseNegatedConstant(t *testing.T) {
	expr, err := grammar.ParseString("test", "-i8:5")
	require.NoError(t, err)
	assert.True(t, expr.Left.Negate)
	require.NotNil(t, expr.Left.Literal.Value)
	assert.Equal(t, "5", *expr.Left.Literal.Value)
}

func TestParseIntervalLiteral(t *testing.T) {
	expr, err := grammar.ParseString("test", "u16:[0,10]")
	require.NoError(t, err)
	require.NotNil(t, expr.Left.Literal.Interval)
	assert.Equal(t, "0", expr.Left.Literal.Interval.Min)
	assert.Equal(t, "10", expr.Left.Literal.Interval.Max)
}

func TestParseDisjunctionLiteral(t *testing.T) {
	expr, err := grammar.ParseString("test", "u8:{1,2,4}")
	require.NoError(t, err)
	require.NotNil(t, expr.Left.Literal.Disjunction)
	assert.Equal(t, []string{"1", "2", "4"}, expr.Left.Literal.Disjunction.Values)
}

func TestParseTop(t *testing.T) {
	expr, err := grammar.ParseString("test", "i32:top")
	require.NoError(t, err)
	assert.True(t, expr.Left.Literal.Top)
}

func TestParseBinaryChain(t *testing.T) {
	expr, err := grammar.ParseString("test", "u32:[0,10] + u32:5 * u32:2")
	require.NoError(t, err)
	require.Len(t, expr.Ops, 2)
	assert.Equal(t, "+", expr.Ops[0].Operator)
	assert.Equal(t, "*", expr.Ops[1].Operator)
}

func TestParseParenthesised(t *testing.T) {
	expr, err := grammar.ParseString("test", "(u32:1 + u32:2)")
	require.NoError(t, err)
	require.NotNil(t, expr.Left.Paren)
	assert.Nil(t, expr.Left.Literal)
}

func TestParseComparison(t *testing.T) {
	expr, err := grammar.ParseString("test", "u32:1 <= u32:2")
	require.NoError(t, err)
	require.Len(t, expr.Ops, 1)
	assert.Equal(t, "<=", expr.Ops[0].Operator)
}

func TestParseBoolLiteral(t *testing.T) {
	expr, err := grammar.ParseString("test", "bool:true && bool:false")
	require.NoError(t, err)
	require.NotNil(t, expr.Left.Literal.Bool)
	assert.Equal(t, "true", *expr.Left.Literal.Bool)
}

func TestParseErrorOnIncompleteInterval(t *testing.T) {
	_, err := grammar.ParseString("test", "u32:[0,")
	require.Error(t, err)
}

func TestStringRoundTrip(t *testing.T) {
	expr, err := grammar.ParseString("test", "u32:[0,10] + u32:5")
	require.NoError(t, err)
	assert.Equal(t, "u32:[0,10] + u32:5", expr.String())
}
