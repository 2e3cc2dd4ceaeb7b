package element

import (
	"fmt"
	"io"
	"math/big"

	"scalardomain/internal/primitives"
)

// Constant is the Kind-lowest element: a single concrete value (spec §3, C3).
// Immutable after construction; every method that "changes" a Constant
// returns a new one.
type Constant struct {
	width    uint
	class    ScalarClass
	signed   bool
	intVal   primitives.Int
	floatVal primitives.Float
}

var _ Element = (*Constant)(nil)

// NewConstantInt builds an integer (or boolean, or pointer) Constant.
func NewConstantInt(width uint, signed bool, class ScalarClass, value *big.Int) *Constant {
	return &Constant{width: width, class: class, signed: signed, intVal: primitives.NewInt(width, signed, value)}
}

// NewConstantBool builds the width-1 boolean Constant.
func NewConstantBool(v bool) *Constant {
	n := int64(0)
	if v {
		n = 1
	}
	return NewConstantInt(1, false, ClassBoolean, big.NewInt(n))
}

// NewConstantFloat builds a float Constant of the given shape.
func NewConstantFloat(shape primitives.Shape, v float64) (*Constant, ErrorFlags) {
	f, flags := primitives.NewFloat(shape, v)
	return &Constant{width: shape.Width(), class: ClassFloat, floatVal: f}, FromPrimitive(flags)
}

func constantFromInt(width uint, signed bool, class ScalarClass, v primitives.Int) *Constant {
	return &Constant{width: width, class: class, signed: signed, intVal: v}
}

func constantFromFloat(shape primitives.Shape, v primitives.Float) *Constant {
	return &Constant{width: shape.Width(), class: ClassFloat, floatVal: v}
}

func (c *Constant) Kind() Kind        { return KindConstant }
func (c *Constant) Width() uint       { return c.width }
func (c *Constant) Class() ScalarClass { return c.class }
func (c *Constant) Signed() bool      { return c.signed }
func (c *Constant) Clone() Element    { cp := *c; return &cp }

func (c *Constant) Bool() bool { return c.intVal.Sign() != 0 }

func (c *Constant) Write(out io.Writer) {
	if c.class == ClassFloat {
		fmt.Fprintf(out, "%s", c.floatVal.String())
		return
	}
	sign := "u"
	if c.signed {
		sign = "s"
	}
	fmt.Fprintf(out, "%s%d:%s", sign, c.width, c.intVal.String())
}

func (c *Constant) Query(q QueryKind) QueryResult {
	switch q {
	case QueryBounds:
		return QueryResult{Kind: q, Bounds: Bounds{Min: c, Max: c}}
	case QueryCompareSpecial:
		if c.class == ClassFloat {
			return QueryResult{Kind: q, CompareSpecial: CompareUnknown}
		}
		switch c.intVal.Sign() {
		case 0:
			return QueryResult{Kind: q, CompareSpecial: CompareAlwaysZero}
		case -1:
			return QueryResult{Kind: q, CompareSpecial: CompareAlwaysNegative}
		default:
			return QueryResult{Kind: q, CompareSpecial: CompareAlwaysPositive}
		}
	case QueryBitDomain:
		// A constant's may-1 and must-1 sets are identical: every bit is known.
		return QueryResult{Kind: q, BitDomain: BitDomain{MayBeOne: c.intVal, MustBeOne: c.intVal}}
	case QuerySimplifyAsInterval:
		return QueryResult{Kind: q, Simplifiable: true, AsInterval: c}
	case QuerySimplifyAsConstantDisjunction:
		return QueryResult{Kind: q, Simplifiable: true, AsConstants: []Element{c}}
	default:
		return QueryResult{Kind: q}
	}
}

// Int exposes the underlying primitive for Interval/Disjunction callers that
// need to do arithmetic on a Constant's value directly.
func (c *Constant) Int() primitives.Int { return c.intVal }

// Float exposes the underlying primitive float value.
func (c *Constant) Float() primitives.Float { return c.floatVal }

func (c *Constant) asResult(v primitives.Int, flags primitives.Flags, env *EvaluationEnvironment) {
	env.MergeErrors(FromPrimitive(flags))
	env.StoreResult(constantFromInt(v.Width(), v.Signed(), c.class, v))
}

func (c *Constant) asFloatResult(v primitives.Float, flags primitives.Flags, env *EvaluationEnvironment) {
	env.MergeErrors(FromPrimitive(flags))
	env.StoreResult(constantFromFloat(v.Shape(), v))
}

// Apply implements Element.Apply for Constant (spec §4.3: "Constant
// delegates every forward op to C1, turning flags into environment bits").
func (c *Constant) Apply(op Op, env *EvaluationEnvironment) {
	env.Dispatch()
	if env.Second != nil && env.Second.Kind().rank() > KindConstant.rank() {
		env.Second.ApplyTo(op, c, env)
		return
	}
	c.handle(op, env)
}

// ApplyTo is reached only when Second's receiver (a lesser- or equal-kinded
// operand) forwarded here; for Constant that only happens on the tie case
// (both Constant), which Apply already resolves directly, so ApplyTo simply
// re-enters the same handling logic with roles swapped back.
func (c *Constant) ApplyTo(op Op, other Element, env *EvaluationEnvironment) {
	swapped := NewEvaluationEnvironment(other, c, env.Info, env.Lattice)
	swapped.StopOnErrors = env.StopOnErrors
	other.Apply(op, swapped)
	env.Result = swapped.Result
	env.MergeErrors(swapped.Errors)
	if swapped.IsEmpty() {
		env.SetEmpty()
	}
}

func (c *Constant) handle(op Op, env *EvaluationEnvironment) {
	if c.class == ClassFloat {
		c.handleFloat(op, env)
		return
	}

	var second *Constant
	if env.Second != nil {
		second, _ = env.Second.(*Constant)
		if second == nil {
			// Second outranked or tied but isn't concretely a Constant
			// (shouldn't happen given the rank check in Apply); surface as
			// Unimplemented rather than silently defaulting (spec §9 open
			// question #1).
			env.MergeErrors(ErrorFlags(0).SetSure(ErrUnimplemented))
			env.SetEmpty()
			return
		}
	}

	switch op {
	case OpNext:
		v, f := c.intVal.Next()
		c.asResult(v, f, env)
	case OpPrev:
		v, f := c.intVal.Prev()
		c.asResult(v, f, env)
	case OpOpposite:
		v, f := c.intVal.Neg()
		c.asResult(v, f, env)
	case OpBitNegate:
		c.asResult(c.intVal.Not(), 0, env)
	case OpPlus:
		v, f := c.intVal.Add(second.intVal)
		c.asResult(v, f, env)
	case OpMinus:
		v, f := c.intVal.Sub(second.intVal)
		c.asResult(v, f, env)
	case OpTimes:
		v, f := c.intVal.Mul(second.intVal)
		c.asResult(v, f, env)
	case OpDivide:
		v, f := c.intVal.Div(second.intVal)
		c.asResult(v, f, env)
	case OpDivideUnsignedWithSigned:
		v, f := c.intVal.WithSignedness(false).Div(second.intVal.WithSignedness(false))
		c.asResult(v, f, env)
	case OpModulo:
		v, f := c.intVal.Mod(second.intVal)
		c.asResult(v, f, env)
	case OpMin:
		c.asResult(c.intVal.Min(second.intVal), 0, env)
	case OpMax:
		c.asResult(c.intVal.Max(second.intVal), 0, env)
	case OpBitAnd:
		c.asResult(c.intVal.And(second.intVal), 0, env)
	case OpBitOr:
		c.asResult(c.intVal.Or(second.intVal), 0, env)
	case OpBitXor:
		c.asResult(c.intVal.Xor(second.intVal), 0, env)
	case OpLeftShift:
		v, f := c.intVal.Shl(uint(second.intVal.Big().Uint64()))
		c.asResult(v, f, env)
	case OpLogicalRightShift:
		v, f := c.intVal.Lshr(uint(second.intVal.Big().Uint64()))
		c.asResult(v, f, env)
	case OpArithmeticRightShift:
		v, f := c.intVal.Ashr(uint(second.intVal.Big().Uint64()))
		c.asResult(v, f, env)
	case OpLeftRotate:
		c.asResult(c.intVal.Rotl(uint(second.intVal.Big().Uint64())), 0, env)
	case OpRightRotate:
		c.asResult(c.intVal.Rotr(uint(second.intVal.Big().Uint64())), 0, env)
	case OpConcat:
		c.asResult(c.intVal.Concat(second.intVal, c.signed), 0, env)
	case OpCompareLess, OpCompareLessOrEqual, OpCompareGreater, OpCompareGreaterOrEqual,
		OpCompareEqual, OpCompareDifferent:
		env.StoreResult(NewConstantBool(compareInts(op, c.intVal, second.intVal)))
	case OpLogicalAnd:
		env.StoreResult(NewConstantBool(c.Bool() && second.Bool()))
	case OpLogicalOr:
		env.StoreResult(NewConstantBool(c.Bool() || second.Bool()))
	case OpLogicalNegate:
		env.StoreResult(NewConstantBool(!c.Bool()))
	default:
		env.MergeErrors(ErrorFlags(0).SetSure(ErrUnimplemented))
		env.SetEmpty()
	}
}

func compareInts(op Op, a, b primitives.Int) bool {
	switch op {
	case OpCompareLess:
		return a.Less(b)
	case OpCompareLessOrEqual:
		return a.LessOrEqual(b)
	case OpCompareGreater:
		return a.Greater(b)
	case OpCompareGreaterOrEqual:
		return a.GreaterOrEqual(b)
	case OpCompareEqual:
		return a.Equal(b)
	case OpCompareDifferent:
		return !a.Equal(b)
	}
	return false
}

// Cast performs the width/signedness cast catalogue entries directly
// (Constant has no ambiguity to resolve, unlike Interval/Disjunction, so it
// is exposed as a direct method rather than folded into the Op switch, which
// needs the target width as an explicit parameter the Op/env pair doesn't
// carry).
func (c *Constant) Cast(newWidth uint, signed bool, signExtend bool) (*Constant, ErrorFlags) {
	v, flags := c.intVal.Cast(newWidth, signed, signExtend)
	return constantFromInt(newWidth, signed, c.class, v), FromPrimitive(flags)
}

func (c *Constant) handleFloat(op Op, env *EvaluationEnvironment) {
	var second *Constant
	if env.Second != nil {
		second, _ = env.Second.(*Constant)
	}
	switch op {
	case OpPlus:
		v, f := c.floatVal.Add(second.floatVal)
		c.asFloatResult(v, f, env)
	case OpMinus:
		v, f := c.floatVal.Sub(second.floatVal)
		c.asFloatResult(v, f, env)
	case OpTimes:
		v, f := c.floatVal.Mul(second.floatVal)
		c.asFloatResult(v, f, env)
	case OpDivide:
		v, f := c.floatVal.Div(second.floatVal)
		c.asFloatResult(v, f, env)
	case OpOpposite:
		v, f := c.floatVal.Neg()
		c.asFloatResult(v, f, env)
	case OpFabs:
		v, f := c.floatVal.Fabs()
		c.asFloatResult(v, f, env)
	case OpCompareLess, OpCompareLessOrEqual, OpCompareGreater, OpCompareGreaterOrEqual,
		OpCompareEqual, OpCompareDifferent:
		cmp, ok := c.floatVal.Compare(second.floatVal)
		if !ok {
			env.MergeErrors(ErrorFlags(0).SetSure(ErrUnimplemented))
			env.StoreResult(NewConstantBool(false))
			return
		}
		env.StoreResult(NewConstantBool(compareCmp(op, cmp)))
	case OpAcos, OpAsin, OpAtan, OpCeil, OpCos, OpCosh, OpExp, OpFloor, OpLog, OpLog10,
		OpSin, OpSinh, OpSqrt, OpTan, OpTanh:
		v, f := c.floatVal.Transcendental(op.String())
		c.asFloatResult(v, f, env)
	case OpAtan2, OpFmod, OpPow, OpLdexp:
		v, f := primitives.Transcendental2(op.String(), c.floatVal, second.floatVal)
		c.asFloatResult(v, f, env)
	case OpFrexp:
		v, _, f := c.floatVal.Frexp()
		c.asFloatResult(v, f, env)
	case OpModf:
		ip, _, f := c.floatVal.Modf()
		c.asFloatResult(ip, f, env)
	default:
		env.MergeErrors(ErrorFlags(0).SetSure(ErrUnimplemented))
		env.SetEmpty()
	}
}

func compareCmp(op Op, cmp int) bool {
	switch op {
	case OpCompareLess:
		return cmp < 0
	case OpCompareLessOrEqual:
		return cmp <= 0
	case OpCompareGreater:
		return cmp > 0
	case OpCompareGreaterOrEqual:
		return cmp >= 0
	case OpCompareEqual:
		return cmp == 0
	case OpCompareDifferent:
		return cmp != 0
	}
	return false
}

// Constraint verifies op(constant, other) ⊇ result and otherwise empties the
// environment (spec §4.3: "Backward: constraint(op, r, env) on a constant
// verifies that op(constant, other) ⊇ r and otherwise empties the
// environment").
func (c *Constant) Constraint(op Op, result Element, env *ConstraintEnvironment) {
	fwd := NewEvaluationEnvironment(c, env.Second, env.Info, env.Lattice)
	c.Apply(op, fwd)
	if fwd.IsEmpty() || fwd.Result.Contain(result) == ContainFalse {
		env.SetEmpty()
		return
	}
	env.FirstResult = c
	env.MergeVerdict(VerdictExact)
}

// MergeWith selects among Constant/Interval/Disjunction result shapes per
// env.Lattice (spec §4.3).
func (c *Constant) MergeWith(other Element, env *EvaluationEnvironment) {
	switch o := other.(type) {
	case *Constant:
		if c.intVal.Equal(o.intVal) || (c.class == ClassFloat && sameFloat(c.floatVal, o.floatVal)) {
			env.StoreResult(c)
			return
		}
		switch env.Lattice {
		case LatticeTop:
			env.StoreResult(NewTop(c.width, c.signed, c.class, nil))
		case LatticeDisjunction:
			env.StoreResult(newTwoConstantDisjunction(c, o))
		default:
			env.StoreResult(newIntervalFromConstants(c.Min(o), c.Max(o)))
		}
	case *Top:
		env.StoreResult(o)
	default:
		other.MergeWith(c, env)
	}
}

func sameFloat(a, b primitives.Float) bool {
	cmp, ok := a.Compare(b)
	return ok && cmp == 0
}

// Min/Max pick the lesser/greater of two Constants by value (used by
// MergeWith's Interval-mode join).
func (c *Constant) Min(o *Constant) *Constant {
	if c.intVal.LessOrEqual(o.intVal) {
		return c
	}
	return o
}

func (c *Constant) Max(o *Constant) *Constant {
	if c.intVal.GreaterOrEqual(o.intVal) {
		return c
	}
	return o
}

// Contain reports whether the constant contains other: ContainTrue only for
// an equal Constant, ContainFalse for anything else.
func (c *Constant) Contain(other Element) Containment {
	switch o := other.(type) {
	case *Constant:
		if c.intVal.Equal(o.intVal) {
			return ContainTrue
		}
		return ContainFalse
	default:
		// Constant is the Kind-lowest variant (spec §3 invariants keep a
		// collapsed single-value Interval/Disjunction/Top from existing), so
		// a Constant can never contain a genuine Interval/Disjunction/Top.
		return ContainFalse
	}
}

func (c *Constant) IntersectWith(other Element, env *EvaluationEnvironment) {
	switch o := other.(type) {
	case *Constant:
		if c.intVal.Equal(o.intVal) {
			env.StoreResult(c)
		} else {
			env.SetEmpty()
		}
	default:
		if other.Contain(c) == ContainTrue {
			env.StoreResult(c)
		} else {
			env.SetEmpty()
		}
	}
}
