// Package domain is the host-facing facade for the scalar value domain
// (SPEC_FULL.md "Host-facing API"): a single stable import so a host static
// analyzer never has to reach into internal/element's constructors and
// dispatch directly. Grounded in the teacher's internal/types package, whose
// builtins.go exists purely to re-export internal/builtins "for backward
// compatibility" — the same facade idiom, applied here to the element model
// instead of a builtin-function table.
package domain

import (
	"math/big"

	"scalardomain/internal/element"
)

// Re-exported so callers never need to import internal/element themselves.
type (
	Element               = element.Element
	Constant              = element.Constant
	Op                    = element.Op
	ScalarClass           = element.ScalarClass
	Kind                  = element.Kind
	Containment           = element.Containment
	InformationKind       = element.InformationKind
	LatticeMode           = element.LatticeMode
	ErrorFlags            = element.ErrorFlags
	Verdict               = element.Verdict
	EvaluationEnvironment = element.EvaluationEnvironment
	ConstraintEnvironment = element.ConstraintEnvironment
	QueryKind             = element.QueryKind
	QueryResult           = element.QueryResult
)

const (
	ClassInteger = element.ClassInteger
	ClassBoolean = element.ClassBoolean
	ClassFloat   = element.ClassFloat
	ClassPointer = element.ClassPointer
)

const (
	InfoExact = element.InfoExact
	InfoMay   = element.InfoMay
	InfoSure  = element.InfoSure
)

const (
	LatticeInterval    = element.LatticeInterval
	LatticeDisjunction = element.LatticeDisjunction
	LatticeTop         = element.LatticeTop
	LatticeShareTop    = element.LatticeShareTop
	LatticeFormal      = element.LatticeFormal
)

const (
	ContainFalse   = element.ContainFalse
	ContainTrue    = element.ContainTrue
	ContainPartial = element.ContainPartial
)

// Operation catalogue (spec §6), re-exported so callers never import
// internal/element for the Op constants either.
const (
	OpPlus                     = element.OpPlus
	OpMinus                    = element.OpMinus
	OpTimes                    = element.OpTimes
	OpDivide                   = element.OpDivide
	OpDivideUnsignedWithSigned = element.OpDivideUnsignedWithSigned
	OpOpposite                 = element.OpOpposite
	OpMin                      = element.OpMin
	OpMax                      = element.OpMax
	OpModulo                   = element.OpModulo
	OpBitOr                    = element.OpBitOr
	OpBitAnd                   = element.OpBitAnd
	OpBitXor                   = element.OpBitXor
	OpBitNegate                = element.OpBitNegate
	OpLeftShift                = element.OpLeftShift
	OpLogicalRightShift        = element.OpLogicalRightShift
	OpArithmeticRightShift     = element.OpArithmeticRightShift
	OpLeftRotate               = element.OpLeftRotate
	OpRightRotate              = element.OpRightRotate
	OpCompareLess              = element.OpCompareLess
	OpCompareLessOrEqual       = element.OpCompareLessOrEqual
	OpCompareGreater           = element.OpCompareGreater
	OpCompareGreaterOrEqual    = element.OpCompareGreaterOrEqual
	OpCompareEqual             = element.OpCompareEqual
	OpCompareDifferent         = element.OpCompareDifferent
	OpLogicalAnd               = element.OpLogicalAnd
	OpLogicalOr                = element.OpLogicalOr
	OpLogicalNegate            = element.OpLogicalNegate
	OpConcat                   = element.OpConcat
	OpBitSet                   = element.OpBitSet
	OpCastZeroExtend           = element.OpCastZeroExtend
	OpCastSignExtend           = element.OpCastSignExtend
	OpCastReduce               = element.OpCastReduce
	OpCastToBit                = element.OpCastToBit
	OpCastToMultiFloat         = element.OpCastToMultiFloat
	OpCastToInt                = element.OpCastToInt
	OpNext                     = element.OpNext
	OpPrev                     = element.OpPrev
)

// NewConstant builds a single-point element (spec §6 "new_constant").
func NewConstant(width uint, signed bool, class ScalarClass, value *big.Int) *element.Constant {
	return element.NewConstantInt(width, signed, class, value)
}

// NewBool builds one of the two boolean constants.
func NewBool(v bool) *element.Constant {
	return element.NewConstantBool(v)
}

// NewInterval builds a closed bound [minVal, maxVal] (spec §6
// "new_interval"), normalising to a Constant when the bounds coincide.
func NewInterval(width uint, signed bool, class ScalarClass, minVal, maxVal *big.Int) Element {
	return element.NewInterval(width, signed, class, minVal, maxVal)
}

// NewTop builds the universal element for width/class (spec §6 "new_top").
func NewTop(width uint, signed bool, class ScalarClass) *element.Top {
	return element.NewTop(width, signed, class, nil)
}

// Disjunction is the builder side of spec §6's "new_disjunction(width) ->
// Disjunction, then add_may/exact/sure(element)": AddExact/AddSure/AddMay
// mutate it in place and Simplify applies the simplification rules of spec
// §4.5 to produce the element the rest of the facade consumes.
type Disjunction = element.Disjunction

func NewDisjunctionBuilder(width uint, signed bool, class ScalarClass) *Disjunction {
	return element.NewDisjunction(width, signed, class)
}

// Apply performs a unary (second == nil) or binary operation (spec §6
// "apply"), returning the result element, whether the result is empty, and
// the accumulated error flags. When stopOnErrors is set, the first error
// raised during evaluation empties the result rather than merely being
// recorded (spec §4.6, §7).
func Apply(first, second Element, op Op, info InformationKind, lattice LatticeMode, stopOnErrors bool) (result Element, empty bool, errs ErrorFlags) {
	env := element.NewEvaluationEnvironment(first, second, info, lattice)
	env.StopOnErrors = stopOnErrors
	element.Apply(first, op, env)
	return env.Result, env.IsEmpty(), env.Errors
}

// Constraint narrows first (and second, if binary) so that op applied to
// them would have produced result (spec §6 "constraint"). stopOnErrors has
// the same effect as in Apply.
func Constraint(first, second, result Element, op Op, info InformationKind, lattice LatticeMode, stopOnErrors bool) (firstNarrowed, secondNarrowed Element, verdict Verdict) {
	env := element.NewConstraintEnvironment(first, second, result, info, lattice)
	env.StopOnErrors = stopOnErrors
	element.Constraint(first, op, result, env)
	return env.FirstResult, env.SecondResult, env.Verdict
}

// Merge computes the lattice join of a and b (spec §6 "merge").
func Merge(a, b Element, lattice LatticeMode) Element {
	return element.Merge(a, b, lattice)
}

// Contain reports whether a's concretisation is a superset of b's (spec §6
// "contain").
func Contain(a, b Element) Containment {
	return element.Contain(a, b)
}

// Intersect computes the meet of a and b (spec §6 "intersect"), reporting
// false when the result has no concretisation at all.
func Intersect(a, b Element, info InformationKind, lattice LatticeMode) (Element, bool) {
	return element.Intersect(a, b, info, lattice)
}

// Query answers a static fact about e without evaluating anything (spec §6
// "query").
func Query(e Element, q QueryKind) QueryResult {
	return element.Query(e, q)
}

// Cast performs the width/signedness cast catalogue entry (spec §6) on e. It
// takes the target width directly rather than through Apply/an Op, since
// Apply's Op/env pair has no way to carry a width argument.
func Cast(e Element, newWidth uint, signed bool, signExtend bool) (Element, ErrorFlags) {
	return element.Cast(e, newWidth, signed, signExtend)
}

// BitSet overwrites the sub-range [start, start+insert.Width()) of e's value
// with insert's bits (spec §6's bit-set catalogue entry), needing the same
// direct entry point as Cast for the same reason.
func BitSet(e Element, start uint, insert *Constant) Element {
	return element.BitSet(e, start, insert)
}
