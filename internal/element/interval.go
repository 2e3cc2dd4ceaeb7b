package element

import (
	"fmt"
	"io"
	"math/big"

	scalarerrors "scalardomain/internal/errors"
	"scalardomain/internal/primitives"
)

// Interval is a signed or unsigned integer interval [min, max] (spec §3, C4).
// min and max are always Kind Constant, same width/signedness as the
// Interval itself, with min <= max under that signedness's order — except
// transiently during construction/normalisation (spec §3 invariants).
type Interval struct {
	min, max *Constant
	width    uint
	signed   bool
	class    ScalarClass
}

var _ Element = (*Interval)(nil)

// NewInterval builds a normalised Interval (or, degenerately, a Constant) in
// [minVal, maxVal]. Per spec §3, a normalised interval with min == max
// simplifies to a Constant, so NewInterval returns Element, not *Interval.
func NewInterval(width uint, signed bool, class ScalarClass, minVal, maxVal *big.Int) Element {
	min := constantFromInt(width, signed, class, primitives.NewInt(width, signed, minVal))
	max := constantFromInt(width, signed, class, primitives.NewInt(width, signed, maxVal))
	return newIntervalFromConstants(min, max)
}

func newIntervalFromConstants(min, max *Constant) Element {
	if min.intVal.Equal(max.intVal) {
		return min
	}
	if min.intVal.Greater(max.intVal) {
		// Construction-time violation of min <= max: per spec §7 this is a
		// fatal internal invariant violation, not analysable program
		// behaviour, once a normalised interval is handed to a forward rule.
		scalarerrors.Panic(scalarerrors.ErrorInvalidIntervalBounds, "newIntervalFromConstants",
			fmt.Sprintf("min %s exceeds max %s", min.intVal.String(), max.intVal.String()))
	}
	return &Interval{min: min, max: max, width: min.width, signed: min.signed, class: min.class}
}

func (iv *Interval) Kind() Kind         { return KindInterval }
func (iv *Interval) Width() uint        { return iv.width }
func (iv *Interval) Class() ScalarClass { return iv.class }
func (iv *Interval) Signed() bool       { return iv.signed }
func (iv *Interval) Clone() Element     { cp := *iv; return &cp }

func (iv *Interval) Min() *Constant { return iv.min }
func (iv *Interval) Max() *Constant { return iv.max }

func (iv *Interval) Write(out io.Writer) {
	fmt.Fprintf(out, "[")
	iv.min.Write(out)
	fmt.Fprintf(out, ", ")
	iv.max.Write(out)
	fmt.Fprintf(out, "]")
}

func (iv *Interval) Query(q QueryKind) QueryResult {
	switch q {
	case QueryBounds:
		return QueryResult{Kind: q, Bounds: Bounds{Min: iv.min, Max: iv.max}}
	case QueryCompareSpecial:
		switch {
		case iv.min.intVal.Sign() > 0:
			return QueryResult{Kind: q, CompareSpecial: CompareAlwaysPositive}
		case iv.max.intVal.Sign() < 0:
			return QueryResult{Kind: q, CompareSpecial: CompareAlwaysNegative}
		case iv.min.intVal.Sign() == 0 && iv.max.intVal.Sign() == 0:
			return QueryResult{Kind: q, CompareSpecial: CompareAlwaysZero}
		case iv.min.intVal.Sign() >= 0:
			return QueryResult{Kind: q, CompareSpecial: CompareNeverNegative}
		case iv.max.intVal.Sign() <= 0:
			return QueryResult{Kind: q, CompareSpecial: CompareNeverPositive}
		default:
			return QueryResult{Kind: q, CompareSpecial: CompareUnknown}
		}
	case QuerySimplifyAsInterval:
		return QueryResult{Kind: q, Simplifiable: true, AsInterval: iv}
	default:
		return QueryResult{Kind: q}
	}
}

// containsZero reports whether 0 lies within [min, max].
func (iv *Interval) containsZero() bool {
	return iv.min.intVal.Sign() <= 0 && iv.max.intVal.Sign() >= 0
}

// isAllNonNegative / isAllNegative classify sign without mixing.
func (iv *Interval) isAllNonNegative() bool { return iv.min.intVal.Sign() >= 0 }
func (iv *Interval) isAllNegative() bool    { return iv.max.intVal.Sign() < 0 }

// splitAtZero divides a mixed-sign interval into its non-negative and
// negative halves.
func (iv *Interval) splitAtZero() (neg, nonNeg *Interval) {
	minusOne := constantFromInt(iv.width, iv.signed, iv.class, primitives.NewInt(iv.width, iv.signed, big.NewInt(-1)))
	zero := constantFromInt(iv.width, iv.signed, iv.class, primitives.NewInt(iv.width, iv.signed, big.NewInt(0)))
	negI, _ := newIntervalFromConstants(iv.min, minusOne).(*Interval)
	if negI == nil {
		negI = &Interval{min: iv.min, max: minusOne, width: iv.width, signed: iv.signed, class: iv.class}
	}
	nonNegI, _ := newIntervalFromConstants(zero, iv.max).(*Interval)
	if nonNegI == nil {
		nonNegI = &Interval{min: zero, max: iv.max, width: iv.width, signed: iv.signed, class: iv.class}
	}
	return negI, nonNegI
}

// changeSignRepresentation reinterprets the receiver under a different
// signedness. When the receiver straddles the point where the two
// signedness's orders disagree (i.e. contains both representations' notion
// of "negative"), it is split at zero into two same-signedness intervals and
// wrapped in a Disjunction rather than falling back to Top, preserving
// precision (spec §4.4 "Interval op Interval").
func (iv *Interval) changeSignRepresentation(signed bool) Element {
	if signed == iv.signed {
		return iv
	}
	if iv.isAllNonNegative() {
		min := iv.min.intVal.WithSignedness(signed)
		max := iv.max.intVal.WithSignedness(signed)
		return newIntervalFromConstants(constantFromInt(iv.width, signed, iv.class, min), constantFromInt(iv.width, signed, iv.class, max))
	}
	// The receiver has a negative part under its own signedness; splitting
	// at zero and reinterpreting each half keeps both halves monotonic
	// under the new signedness.
	negPart, nonNegPart := iv.splitAtZero()
	negUnderNew := newIntervalFromConstants(
		constantFromInt(iv.width, signed, iv.class, negPart.min.intVal.WithSignedness(signed)),
		constantFromInt(iv.width, signed, iv.class, negPart.max.intVal.WithSignedness(signed)),
	)
	nonNegUnderNew := newIntervalFromConstants(
		constantFromInt(iv.width, signed, iv.class, nonNegPart.min.intVal.WithSignedness(signed)),
		constantFromInt(iv.width, signed, iv.class, nonNegPart.max.intVal.WithSignedness(signed)),
	)
	return newDisjunctionOfElements(iv.width, signed, iv.class, []Element{negUnderNew, nonNegUnderNew})
}

// --- Apply / ApplyTo -------------------------------------------------------

func (iv *Interval) Apply(op Op, env *EvaluationEnvironment) {
	env.Dispatch()
	if env.Second != nil && env.Second.Kind().rank() > KindInterval.rank() {
		env.Second.ApplyTo(op, iv, env)
		return
	}
	iv.handle(op, env)
}

// ApplyTo computes other op iv for a lesser-kinded other (a Constant): the
// Constant is treated as the single-point interval [other, other], so
// Interval's own rules run with the operands in their original order.
func (iv *Interval) ApplyTo(op Op, other Element, env *EvaluationEnvironment) {
	c, ok := other.(*Constant)
	if !ok || c.class == ClassFloat {
		env.MergeErrors(ErrorFlags(0).SetSure(ErrUnimplemented))
		env.SetEmpty()
		return
	}
	point := &Interval{min: c, max: c, width: c.width, signed: c.signed, class: c.class}
	swapped := NewEvaluationEnvironment(point, iv, env.Info, env.Lattice)
	swapped.StopOnErrors = env.StopOnErrors
	point.handle(op, swapped)
	env.Result = swapped.Result
	env.MergeErrors(swapped.Errors)
	if swapped.IsEmpty() {
		env.SetEmpty()
	}
}

func (iv *Interval) handle(op Op, env *EvaluationEnvironment) {
	// Unary operations.
	switch op {
	case OpOpposite:
		iv.applyOpposite(env)
		return
	case OpBitNegate:
		// ~[a,b] == [~b, ~a]: each endpoint is bit-negated directly and the
		// two swap places (bit-negate is injective and order-reversing).
		notMin := iv.min.intVal.Not()
		notMax := iv.max.intVal.Not()
		env.StoreResult(newIntervalFromConstants(
			constantFromInt(iv.width, iv.signed, iv.class, notMax),
			constantFromInt(iv.width, iv.signed, iv.class, notMin),
		))
		return
	case OpNext:
		v, f := iv.max.intVal.Next()
		nmin, fmin := iv.min.intVal.Next()
		env.MergeErrors(FromPrimitive(f).Merge(FromPrimitive(fmin)))
		env.StoreResult(newIntervalFromConstants(constantFromInt(iv.width, iv.signed, iv.class, nmin), constantFromInt(iv.width, iv.signed, iv.class, v)))
		return
	case OpPrev:
		v, f := iv.min.intVal.Prev()
		nmax, fmax := iv.max.intVal.Prev()
		env.MergeErrors(FromPrimitive(f).Merge(FromPrimitive(fmax)))
		env.StoreResult(newIntervalFromConstants(constantFromInt(iv.width, iv.signed, iv.class, v), constantFromInt(iv.width, iv.signed, iv.class, nmax)))
		return
	}

	second := env.Second
	if second == nil {
		env.MergeErrors(ErrorFlags(0).SetSure(ErrUnimplemented))
		env.SetEmpty()
		return
	}

	// Signedness mismatch: reinterpret before proceeding (spec §4.4).
	if otherInterval, ok := second.(*Interval); ok && otherInterval.signed != iv.signed {
		reinterpreted := otherInterval.changeSignRepresentation(iv.signed)
		fwd := NewEvaluationEnvironment(iv, reinterpreted, env.Info, env.Lattice)
		fwd.StopOnErrors = env.StopOnErrors
		iv.Apply(op, fwd)
		env.Result = fwd.Result
		env.MergeErrors(fwd.Errors)
		if fwd.IsEmpty() {
			env.SetEmpty()
		}
		return
	}
	if c, ok := second.(*Constant); ok && c.class != ClassFloat && c.signed != iv.signed {
		reinterpreted := constantFromInt(iv.width, iv.signed, iv.class, c.intVal.WithSignedness(iv.signed))
		fwd := NewEvaluationEnvironment(iv, reinterpreted, env.Info, env.Lattice)
		fwd.StopOnErrors = env.StopOnErrors
		iv.Apply(op, fwd)
		env.Result = fwd.Result
		env.MergeErrors(fwd.Errors)
		if fwd.IsEmpty() {
			env.SetEmpty()
		}
		return
	}

	switch op {
	case OpPlus:
		iv.applyAddSub(second, env, false)
	case OpMinus:
		iv.applyAddSub(second, env, true)
	case OpTimes:
		iv.applyMultiply(second, env)
	case OpDivide, OpDivideUnsignedWithSigned:
		iv.applyDivide(second, env)
	case OpModulo:
		iv.applyModulo(second, env)
	case OpMin:
		iv.applyMinMax(second, env, true)
	case OpMax:
		iv.applyMinMax(second, env, false)
	case OpBitAnd:
		iv.applyBitwise(second, env, bitAnd)
	case OpBitOr:
		iv.applyBitwise(second, env, bitOr)
	case OpBitXor:
		iv.applyBitwise(second, env, bitXor)
	case OpLeftShift:
		iv.applyShift(second, env, shiftLeft)
	case OpLogicalRightShift:
		iv.applyShift(second, env, shiftLogicalRight)
	case OpArithmeticRightShift:
		iv.applyShift(second, env, shiftArithmeticRight)
	case OpCompareLess, OpCompareLessOrEqual, OpCompareGreater, OpCompareGreaterOrEqual,
		OpCompareEqual, OpCompareDifferent:
		iv.applyCompare(op, second, env)
	case OpLeftRotate, OpRightRotate:
		iv.applyRotate(env)
	case OpConcat:
		iv.applyConcat(second, env)
	default:
		env.MergeErrors(ErrorFlags(0).SetSure(ErrUnimplemented))
		env.SetEmpty()
	}
}

// applyRotate implements the rotate catalogue entries (spec §6) for a
// genuine (non-degenerate) interval: rotation permutes bits rather than
// shifting them off an end, so it isn't monotonic in the receiver's value and
// a tight bound can't be derived the way applyShift derives one. Widening to
// Top is the same conservative fallback applyShift itself takes once a shift
// count is too uncertain to enumerate.
func (iv *Interval) applyRotate(env *EvaluationEnvironment) {
	env.StoreResult(NewTop(iv.width, iv.signed, iv.class, nil))
}

// applyConcat implements the concat catalogue entry (spec §6): the receiver
// occupies the high-order bits and second the low-order bits, so the result
// is monotonic in both operands jointly and the Cartesian min/max corners
// bound it exactly, the same reasoning applyAddSub's Interval-op-Interval
// case uses.
func (iv *Interval) applyConcat(second Element, env *EvaluationEnvironment) {
	switch o := second.(type) {
	case *Constant:
		lo := iv.min.intVal.Concat(o.intVal, iv.signed)
		hi := iv.max.intVal.Concat(o.intVal, iv.signed)
		env.StoreResult(newIntervalFromConstants(
			constantFromInt(lo.Width(), iv.signed, iv.class, lo),
			constantFromInt(hi.Width(), iv.signed, iv.class, hi),
		))
	case *Interval:
		lo := iv.min.intVal.Concat(o.min.intVal, iv.signed)
		hi := iv.max.intVal.Concat(o.max.intVal, iv.signed)
		env.StoreResult(newIntervalFromConstants(
			constantFromInt(lo.Width(), iv.signed, iv.class, lo),
			constantFromInt(hi.Width(), iv.signed, iv.class, hi),
		))
	default:
		env.MergeErrors(ErrorFlags(0).SetSure(ErrUnimplemented))
		env.SetEmpty()
	}
}

// Cast performs the width/signedness cast catalogue entry (spec §6) on an
// Interval, needing the target width as an explicit parameter the Op/env
// pair doesn't carry (same rationale as Constant.Cast). Each bound is cast
// directly. A cast can wrap non-monotonically (narrowing drops high bits; a
// signedness change or zero-extension can move one bound across the sign
// boundary), so when the distance between the cast bounds differs from the
// original distance the result widens to the full representable range of
// the new width instead of reporting an unsound bound.
func (iv *Interval) Cast(newWidth uint, signed bool, signExtend bool) (Element, ErrorFlags) {
	newMin, _ := iv.min.Cast(newWidth, signed, signExtend)
	newMax, _ := iv.max.Cast(newWidth, signed, signExtend)
	oldSpan := new(big.Int).Sub(iv.max.intVal.Big(), iv.min.intVal.Big())
	newSpan := new(big.Int).Sub(newMax.intVal.Big(), newMin.intVal.Big())
	if oldSpan.Cmp(newSpan) == 0 {
		return newIntervalFromConstants(newMin, newMax), 0
	}
	min, max := primitives.Bounds(newWidth, signed)
	full := NewInterval(newWidth, signed, iv.class, min, max)
	return full, ErrorFlags(0).SetMay(ErrPositiveOverflow).SetMay(ErrNegativeOverflow)
}

// BitSet overwrites the sub-range [start, start+insert.Width()) of the
// receiver's value with insert's bits (spec §6's bit-set catalogue entry).
// Like Cast, bit-set needs an explicit start position Apply's Op/env pair
// doesn't carry, so it is a direct method. Overwriting an arbitrary bit range
// isn't monotonic in the receiver's value, so a genuine interval widens to
// Top rather than attempt unsound bound propagation (same rationale as
// applyRotate).
func (iv *Interval) BitSet(start uint, insert *Constant) Element {
	return NewTop(iv.width, iv.signed, iv.class, nil)
}

func (iv *Interval) applyOpposite(env *EvaluationEnvironment) {
	negMax, fMax := iv.max.intVal.Neg()
	negMin, fMin := iv.min.intVal.Neg()
	env.MergeErrors(FromPrimitive(fMax).Merge(FromPrimitive(fMin)))
	env.StoreResult(newIntervalFromConstants(
		constantFromInt(iv.width, iv.signed, iv.class, negMax),
		constantFromInt(iv.width, iv.signed, iv.class, negMin),
	))
}

// applyAddSub implements spec §4.4's [a,b] +/- c rule, including the
// overflow-partition-into-a-disjunction case when only part of the interval
// wraps.
func (iv *Interval) applyAddSub(second Element, env *EvaluationEnvironment, subtract bool) {
	c, isConst := second.(*Constant)
	if !isConst {
		other := second.(*Interval)
		// Interval op Interval: Cartesian bounds. min+min/max+max for plus;
		// min-max/max-min for minus.
		var loVal, hiVal primitives.Int
		var loF, hiF primitives.Flags
		if !subtract {
			loVal, loF = iv.min.intVal.Add(other.min.intVal)
			hiVal, hiF = iv.max.intVal.Add(other.max.intVal)
		} else {
			loVal, loF = iv.min.intVal.Sub(other.max.intVal)
			hiVal, hiF = iv.max.intVal.Sub(other.min.intVal)
		}
		env.MergeErrors(FromPrimitive(loF).Merge(FromPrimitive(hiF)))
		env.StoreResult(newIntervalFromConstants(
			constantFromInt(iv.width, iv.signed, iv.class, loVal),
			constantFromInt(iv.width, iv.signed, iv.class, hiVal),
		))
		return
	}

	op := func(x primitives.Int) (primitives.Int, primitives.Flags) {
		if subtract {
			return x.Sub(c.intVal)
		}
		return x.Add(c.intVal)
	}
	lo, loFlags := op(iv.min.intVal)
	hi, hiFlags := op(iv.max.intVal)
	loOverflowed := !loFlags.IsClean()
	hiOverflowed := !hiFlags.IsClean()

	switch {
	case !loOverflowed && !hiOverflowed:
		env.StoreResult(newIntervalFromConstants(
			constantFromInt(iv.width, iv.signed, iv.class, lo),
			constantFromInt(iv.width, iv.signed, iv.class, hi),
		))
	case loOverflowed && hiOverflowed:
		// Both ends wrap the same direction: the whole interval shifted
		// past the bound and wrapped back in, sure.
		env.MergeErrors(FromPrimitive(loFlags).Merge(FromPrimitive(hiFlags)))
		env.StoreResult(newIntervalFromConstants(
			constantFromInt(iv.width, iv.signed, iv.class, lo),
			constantFromInt(iv.width, iv.signed, iv.class, hi),
		))
	default:
		// Exactly one end overflows: split into the clean region and the
		// saturated/wrapped region, merged as a disjunction (spec §4.4).
		min, max := primitives.Bounds(iv.width, iv.signed)
		var cleanLo, cleanHi, wrapLo, wrapHi primitives.Int
		if hiOverflowed {
			cleanLo, _ = op(iv.min.intVal)
			cleanHi = primitives.NewInt(iv.width, iv.signed, max)
			wrapLo = primitives.NewInt(iv.width, iv.signed, min)
			wrapHi = hi
			env.MergeErrors(ErrorFlags(0).SetMay(ErrPositiveOverflow))
		} else {
			cleanLo = primitives.NewInt(iv.width, iv.signed, min)
			cleanHi, _ = op(iv.max.intVal)
			wrapLo = lo
			wrapHi = primitives.NewInt(iv.width, iv.signed, max)
			env.MergeErrors(ErrorFlags(0).SetMay(ErrNegativeOverflow))
		}
		clean := newIntervalFromConstants(constantFromInt(iv.width, iv.signed, iv.class, cleanLo), constantFromInt(iv.width, iv.signed, iv.class, cleanHi))
		wrapped := newIntervalFromConstants(constantFromInt(iv.width, iv.signed, iv.class, wrapLo), constantFromInt(iv.width, iv.signed, iv.class, wrapHi))
		env.StoreResult(newDisjunctionOfElements(iv.width, iv.signed, iv.class, []Element{clean, wrapped}))
	}
}

// sureSample implements the "sure sample" disjunct of spec §4.4 (multiply
// rule) and SPEC_FULL.md supplemented feature #3: apply op to min, max, and
// the midpoint, and deduplicate identical results before adding them to the
// sure bucket, so a non-empty sure result never degrades to Top purely
// because the three samples coincide.
func sureSample(iv *Interval, apply func(primitives.Int) primitives.Int) []Element {
	mid := new(big.Int).Add(iv.min.intVal.Big(), iv.max.intVal.Big())
	mid.Div(mid, big.NewInt(2))
	midInt := primitives.NewInt(iv.width, iv.signed, mid)
	samples := []primitives.Int{apply(iv.min.intVal), apply(iv.max.intVal), apply(midInt)}
	seen := map[string]bool{}
	var out []Element
	for _, s := range samples {
		key := s.String()
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, Element(constantFromInt(iv.width, iv.signed, iv.class, s)))
	}
	return out
}

func (iv *Interval) applyMultiply(second Element, env *EvaluationEnvironment) {
	if c, ok := second.(*Constant); ok {
		switch c.intVal.Sign() {
		case 0:
			env.StoreResult(constantFromInt(iv.width, iv.signed, iv.class, c.intVal))
			return
		case 1:
			lo, loF := iv.min.intVal.Mul(c.intVal)
			hi, hiF := iv.max.intVal.Mul(c.intVal)
			env.MergeErrors(FromPrimitive(loF).Merge(FromPrimitive(hiF)))
			env.StoreResult(newIntervalFromConstants(constantFromInt(iv.width, iv.signed, iv.class, lo), constantFromInt(iv.width, iv.signed, iv.class, hi)))
		default:
			lo, loF := iv.max.intVal.Mul(c.intVal)
			hi, hiF := iv.min.intVal.Mul(c.intVal)
			env.MergeErrors(FromPrimitive(loF).Merge(FromPrimitive(hiF)))
			env.StoreResult(newIntervalFromConstants(constantFromInt(iv.width, iv.signed, iv.class, lo), constantFromInt(iv.width, iv.signed, iv.class, hi)))
		}
		if env.Info == InfoSure {
			samples := sureSample(iv, func(x primitives.Int) primitives.Int { v, _ := x.Mul(c.intVal); return v })
			if len(samples) > 0 {
				env.StoreResult(newDisjunctionWithSure(env.Result, samples))
			}
		}
		return
	}
	other := second.(*Interval)
	if !other.containsZero() || other.isAllNonNegative() || other.isAllNegative() {
		// Single sign class (possibly all of one sign, including the
		// all-zero degenerate case): split the receiver around zero so each
		// product term stays monotonic, then merge the four Cartesian
		// corners.
		candidates := []*big.Int{}
		for _, a := range []primitives.Int{iv.min.intVal, iv.max.intVal} {
			for _, b := range []primitives.Int{other.min.intVal, other.max.intVal} {
				v, _ := a.Mul(b)
				candidates = append(candidates, v.Big())
			}
		}
		lo, hi := candidates[0], candidates[0]
		for _, v := range candidates[1:] {
			if v.Cmp(lo) < 0 {
				lo = v
			}
			if v.Cmp(hi) > 0 {
				hi = v
			}
		}
		result, flags := clamp(lo, iv.width, iv.signed, iv.class)
		resultHi, flagsHi := clamp(hi, iv.width, iv.signed, iv.class)
		env.MergeErrors(FromPrimitive(flags).Merge(FromPrimitive(flagsHi)))
		env.StoreResult(newIntervalFromConstants(result, resultHi))
		return
	}
	// other straddles zero: split it and merge the two products (spec §4.4
	// "if c may be negative and may be non-negative, split [a,b] around
	// zero and merge").
	negPart, nonNegPart := other.splitAtZero()
	negEnv := NewEvaluationEnvironment(iv, negPart, env.Info, env.Lattice)
	iv.Apply(OpTimes, negEnv)
	nonNegEnv := NewEvaluationEnvironment(iv, nonNegPart, env.Info, env.Lattice)
	iv.Apply(OpTimes, nonNegEnv)
	env.MergeErrors(negEnv.Errors.Merge(nonNegEnv.Errors))
	mergeEnv := NewEvaluationEnvironment(negEnv.Result, nonNegEnv.Result, env.Info, env.Lattice)
	negEnv.Result.MergeWith(nonNegEnv.Result, mergeEnv)
	env.StoreResult(mergeEnv.Result)
}

// applyDivide implements spec §4.4's [a,b] / c rule: c = -1 emits the
// MinInt special case as a sure-flagged disjunct; c = 0 empties with
// SureDivisionByZero.
func (iv *Interval) applyDivide(second Element, env *EvaluationEnvironment) {
	c, isConst := second.(*Constant)
	if !isConst {
		other := second.(*Interval)
		if other.containsZero() {
			env.MergeErrors(ErrorFlags(0).SetMay(ErrDivisionByZero))
			if other.min.intVal.IsZero() && other.max.intVal.IsZero() {
				env.MergeErrors(ErrorFlags(0).SetSure(ErrDivisionByZero))
				env.SetEmpty()
				return
			}
		}
		lo, hi := iv.cartesianBounds(other, func(a, b primitives.Int) (primitives.Int, primitives.Flags) {
			if b.IsZero() {
				return a, 0
			}
			return a.Div(b)
		})
		env.StoreResult(newIntervalFromConstants(constantFromInt(iv.width, iv.signed, iv.class, lo), constantFromInt(iv.width, iv.signed, iv.class, hi)))
		return
	}
	if c.intVal.IsZero() {
		env.MergeErrors(ErrorFlags(0).SetSure(ErrDivisionByZero))
		env.SetEmpty()
		return
	}
	minVal, minF := iv.min.intVal.Div(c.intVal)
	maxVal, maxF := iv.max.intVal.Div(c.intVal)
	if c.intVal.Sign() < 0 {
		minVal, maxVal = maxVal, minVal
		minF, maxF = maxF, minF
	}
	env.MergeErrors(FromPrimitive(minF).Merge(FromPrimitive(maxF)))
	result := newIntervalFromConstants(constantFromInt(iv.width, iv.signed, iv.class, minVal), constantFromInt(iv.width, iv.signed, iv.class, maxVal))

	if iv.signed {
		minusOne := big.NewInt(-1)
		if c.intVal.Big().Cmp(minusOne) == 0 {
			minSignedVal := primitives.NewInt(iv.width, true, primitives.MinSigned(iv.width))
			if iv.min.intVal.LessOrEqual(minSignedVal) && iv.max.intVal.GreaterOrEqual(minSignedVal) {
				overflowConst := constantFromInt(iv.width, true, iv.class, primitives.NewInt(iv.width, true, primitives.MaxSigned(iv.width)))
				env.MergeErrors(ErrorFlags(0).SetSure(ErrPositiveOverflow))
				result = newDisjunctionOfElements(iv.width, true, iv.class, []Element{result, overflowConst})
			}
		}
	}
	env.StoreResult(result)
}

func (iv *Interval) cartesianBounds(other *Interval, op func(a, b primitives.Int) (primitives.Int, primitives.Flags)) (primitives.Int, primitives.Int) {
	corners := [][2]primitives.Int{
		{iv.min.intVal, other.min.intVal}, {iv.min.intVal, other.max.intVal},
		{iv.max.intVal, other.min.intVal}, {iv.max.intVal, other.max.intVal},
	}
	var lo, hi *big.Int
	for _, corner := range corners {
		v, _ := op(corner[0], corner[1])
		if lo == nil || v.Big().Cmp(lo) < 0 {
			lo = v.Big()
		}
		if hi == nil || v.Big().Cmp(hi) > 0 {
			hi = v.Big()
		}
	}
	loResult, _ := clamp(lo, iv.width, iv.signed, iv.class)
	hiResult, _ := clamp(hi, iv.width, iv.signed, iv.class)
	return loResult.intVal, hiResult.intVal
}

// applyModulo implements spec §4.4: result is at worst [1-|c|, |c|-1],
// narrowed when sign classes are known; c = 0 is a sure division-by-zero.
func (iv *Interval) applyModulo(second Element, env *EvaluationEnvironment) {
	boundFromDivisorMagnitude := func(maxAbs *big.Int) (lo, hi *big.Int) {
		lo = new(big.Int).Neg(new(big.Int).Sub(maxAbs, big.NewInt(1)))
		hi = new(big.Int).Sub(maxAbs, big.NewInt(1))
		if iv.isAllNonNegative() {
			lo = big.NewInt(0)
		}
		if iv.isAllNegative() {
			hi = big.NewInt(0)
		}
		return lo, hi
	}
	if c, ok := second.(*Constant); ok {
		if c.intVal.IsZero() {
			env.MergeErrors(ErrorFlags(0).SetSure(ErrDivisionByZero))
			env.SetEmpty()
			return
		}
		absC := new(big.Int).Abs(c.intVal.Big())
		lo, hi := boundFromDivisorMagnitude(absC)
		loI, _ := clamp(lo, iv.width, iv.signed, iv.class)
		hiI, _ := clamp(hi, iv.width, iv.signed, iv.class)
		env.StoreResult(newIntervalFromConstants(constantFromInt(iv.width, iv.signed, iv.class, loI.intVal), constantFromInt(iv.width, iv.signed, iv.class, hiI.intVal)))
		return
	}
	other := second.(*Interval)
	if other.containsZero() {
		env.MergeErrors(ErrorFlags(0).SetMay(ErrDivisionByZero))
		if other.min.intVal.IsZero() && other.max.intVal.IsZero() {
			env.MergeErrors(ErrorFlags(0).SetSure(ErrDivisionByZero))
			env.SetEmpty()
			return
		}
	}
	maxAbs := new(big.Int).Abs(other.max.intVal.Big())
	if minAbs := new(big.Int).Abs(other.min.intVal.Big()); minAbs.Cmp(maxAbs) > 0 {
		maxAbs = minAbs
	}
	lo, hi := boundFromDivisorMagnitude(maxAbs)
	loI, _ := clamp(lo, iv.width, iv.signed, iv.class)
	hiI, _ := clamp(hi, iv.width, iv.signed, iv.class)
	env.StoreResult(newIntervalFromConstants(constantFromInt(iv.width, iv.signed, iv.class, loI.intVal), constantFromInt(iv.width, iv.signed, iv.class, hiI.intVal)))
}

func (iv *Interval) applyMinMax(second Element, env *EvaluationEnvironment, isMin bool) {
	pick := func(x, y primitives.Int) primitives.Int {
		if isMin {
			return x.Min(y)
		}
		return x.Max(y)
	}
	if c, ok := second.(*Constant); ok {
		lo := pick(iv.min.intVal, c.intVal)
		hi := pick(iv.max.intVal, c.intVal)
		result := newIntervalFromConstants(constantFromInt(iv.width, iv.signed, iv.class, lo), constantFromInt(iv.width, iv.signed, iv.class, hi))
		// Precision: when c lies strictly inside (min, max), the clamped
		// interval alone would lose the information that c itself is also
		// reachable; spec §4.4 keeps both as a two-disjunct result.
		if iv.min.intVal.Less(c.intVal) && c.intVal.Less(iv.max.intVal) {
			result = newDisjunctionOfElements(iv.width, iv.signed, iv.class, []Element{result, c})
		}
		env.StoreResult(result)
		return
	}
	other := second.(*Interval)
	lo := pick(iv.min.intVal, other.min.intVal)
	hi := pick(iv.max.intVal, other.max.intVal)
	env.StoreResult(newIntervalFromConstants(constantFromInt(iv.width, iv.signed, iv.class, lo), constantFromInt(iv.width, iv.signed, iv.class, hi)))
}

// clamp saturates v into width/signed's representable range and wraps the
// result as a Constant, mirroring the saturate-or-wrap rule of
// primitives.Int's own arithmetic (unexported there): signed results
// saturate to the bound and flag the matching overflow; unsigned results
// wrap modulo 2^width and flag the matching overflow to mark the wrap.
func clamp(v *big.Int, width uint, signed bool, class ScalarClass) (*Constant, primitives.Flags) {
	min, max := primitives.Bounds(width, signed)
	switch {
	case v.Cmp(max) > 0:
		if signed {
			return constantFromInt(width, signed, class, primitives.NewInt(width, signed, max)), primitives.Flags(0).Set(primitives.PositiveOverflow)
		}
		return constantFromInt(width, signed, class, primitives.NewInt(width, signed, v)), primitives.Flags(0).Set(primitives.PositiveOverflow)
	case v.Cmp(min) < 0:
		if signed {
			return constantFromInt(width, signed, class, primitives.NewInt(width, signed, min)), primitives.Flags(0).Set(primitives.NegativeOverflow)
		}
		return constantFromInt(width, signed, class, primitives.NewInt(width, signed, v)), primitives.Flags(0).Set(primitives.NegativeOverflow)
	default:
		return constantFromInt(width, signed, class, primitives.NewInt(width, signed, v)), 0
	}
}

type bitOp int

const (
	bitAnd bitOp = iota
	bitOr
	bitXor
)

// applyBitwise implements spec §4.4's bitwise rule: partition at the sign
// boundary when signs are mixed and recurse on each half; single-sign cases
// use a bit-domain bound (the smallest power of two strictly above the
// larger magnitude bounds the result).
func (iv *Interval) applyBitwise(second Element, env *EvaluationEnvironment, bop bitOp) {
	if iv.containsZero() && !iv.isAllNonNegative() || (!iv.isAllNonNegative() && !iv.isAllNegative()) {
		neg, nonNeg := iv.splitAtZero()
		negEnv := NewEvaluationEnvironment(neg, second, env.Info, env.Lattice)
		neg.applyBitwise(second, negEnv, bop)
		nonNegEnv := NewEvaluationEnvironment(nonNeg, second, env.Info, env.Lattice)
		nonNeg.applyBitwise(second, nonNegEnv, bop)
		env.MergeErrors(negEnv.Errors.Merge(nonNegEnv.Errors))
		mergeEnv := NewEvaluationEnvironment(negEnv.Result, nonNegEnv.Result, env.Info, env.Lattice)
		negEnv.Result.MergeWith(nonNegEnv.Result, mergeEnv)
		env.StoreResult(mergeEnv.Result)
		return
	}
	if otherI, ok := second.(*Interval); ok && ((otherI.containsZero() && !otherI.isAllNonNegative()) || (!otherI.isAllNonNegative() && !otherI.isAllNegative())) {
		neg, nonNeg := otherI.splitAtZero()
		negEnv := NewEvaluationEnvironment(iv, neg, env.Info, env.Lattice)
		iv.applyBitwise(neg, negEnv, bop)
		nonNegEnv := NewEvaluationEnvironment(iv, nonNeg, env.Info, env.Lattice)
		iv.applyBitwise(nonNeg, nonNegEnv, bop)
		env.MergeErrors(negEnv.Errors.Merge(nonNegEnv.Errors))
		mergeEnv := NewEvaluationEnvironment(negEnv.Result, nonNegEnv.Result, env.Info, env.Lattice)
		negEnv.Result.MergeWith(nonNegEnv.Result, mergeEnv)
		env.StoreResult(mergeEnv.Result)
		return
	}

	magnitudeBound := func(x *Interval) *big.Int {
		a, b := new(big.Int).Abs(x.min.intVal.Big()), new(big.Int).Abs(x.max.intVal.Big())
		if a.Cmp(b) > 0 {
			return a
		}
		return b
	}
	boundOf := func(e Element) *big.Int {
		if c, ok := e.(*Constant); ok {
			return new(big.Int).Abs(c.intVal.Big())
		}
		return magnitudeBound(e.(*Interval))
	}
	mag := boundOf(iv)
	if other := boundOf(second); other.Cmp(mag) > 0 {
		mag = other
	}
	// Smallest power of two strictly greater than mag bounds the bit width
	// any AND/OR/XOR result of two same-sign operands can occupy.
	bound := big.NewInt(1)
	for bound.Cmp(mag) <= 0 {
		bound.Lsh(bound, 1)
	}
	hi := new(big.Int).Sub(bound, big.NewInt(1))
	lo := big.NewInt(0)
	if iv.isAllNegative() {
		lo, hi = new(big.Int).Neg(bound), big.NewInt(-1)
		if bop == bitAnd {
			// AND of two negatives stays negative and no smaller in
			// magnitude than the larger (more negative) operand.
			lo = new(big.Int).Neg(bound)
			hi = big.NewInt(-1)
		}
	}
	loI, loF := clamp(lo, iv.width, iv.signed, iv.class)
	hiI, hiF := clamp(hi, iv.width, iv.signed, iv.class)
	env.MergeErrors(FromPrimitive(loF).Merge(FromPrimitive(hiF)))
	env.StoreResult(newIntervalFromConstants(constantFromInt(iv.width, iv.signed, iv.class, loI.intVal), constantFromInt(iv.width, iv.signed, iv.class, hiI.intVal)))
}

type shiftKind int

const (
	shiftLeft shiftKind = iota
	shiftLogicalRight
	shiftArithmeticRight
)

// applyShift implements spec §4.4: a constant shift count shifts the bounds
// directly with overflow flags (a left shift may overflow). An interval
// shift count whose spread is at most the width is expanded into one
// constant disjunct per count and recursed on; a wider spread is not
// expanded and widens to Top with may-overflow flags. Right shifts preserve
// exactness for all-non-negative operands and partition at the sign for
// mixed-sign operands.
func (iv *Interval) applyShift(second Element, env *EvaluationEnvironment, kind shiftKind) {
	shiftOne := func(x primitives.Int, n uint) (primitives.Int, primitives.Flags) {
		switch kind {
		case shiftLeft:
			return x.Shl(n)
		case shiftLogicalRight:
			return x.Lshr(n)
		default:
			return x.Ashr(n)
		}
	}

	if c, ok := second.(*Constant); ok {
		n := uint(c.intVal.Big().Uint64())
		if kind != shiftLeft && !iv.isAllNonNegative() && !iv.isAllNegative() {
			neg, nonNeg := iv.splitAtZero()
			negEnv := NewEvaluationEnvironment(neg, second, env.Info, env.Lattice)
			neg.applyShift(second, negEnv, kind)
			nonNegEnv := NewEvaluationEnvironment(nonNeg, second, env.Info, env.Lattice)
			nonNeg.applyShift(second, nonNegEnv, kind)
			env.MergeErrors(negEnv.Errors.Merge(nonNegEnv.Errors))
			mergeEnv := NewEvaluationEnvironment(negEnv.Result, nonNegEnv.Result, env.Info, env.Lattice)
			negEnv.Result.MergeWith(nonNegEnv.Result, mergeEnv)
			env.StoreResult(mergeEnv.Result)
			return
		}
		lo, loF := shiftOne(iv.min.intVal, n)
		hi, hiF := shiftOne(iv.max.intVal, n)
		if kind == shiftArithmeticRight || kind == shiftLogicalRight {
			// Right shift is monotonic for same-sign operands regardless of
			// which endpoint produced the smaller/larger result.
			if lo.Greater(hi) {
				lo, hi = hi, lo
			}
		}
		env.MergeErrors(FromPrimitive(loF).Merge(FromPrimitive(hiF)))
		env.StoreResult(newIntervalFromConstants(constantFromInt(iv.width, iv.signed, iv.class, lo), constantFromInt(iv.width, iv.signed, iv.class, hi)))
		return
	}

	other := second.(*Interval)
	spread := new(big.Int).Sub(other.max.intVal.Big(), other.min.intVal.Big())
	if spread.IsInt64() && spread.Int64() >= 0 && spread.Int64() <= int64(iv.width) {
		// Narrowly uncertain: expand into one disjunct per shift count and
		// recurse, merging the results (spec §4.4).
		var results []Element
		var errs ErrorFlags
		count := spread.Int64()
		base := other.min.intVal
		for k := int64(0); k <= count; k++ {
			n := uint(new(big.Int).Add(base.Big(), big.NewInt(k)).Uint64())
			subEnv := NewEvaluationEnvironment(iv, constantFromInt(other.width, other.signed, other.class, primitives.NewInt(other.width, other.signed, big.NewInt(int64(n)))), env.Info, env.Lattice)
			iv.applyShift(subEnv.Second, subEnv, kind)
			errs = errs.Merge(subEnv.Errors)
			results = append(results, subEnv.Result)
		}
		env.MergeErrors(errs)
		env.StoreResult(newDisjunctionOfElements(iv.width, iv.signed, iv.class, results))
		return
	}
	// Widely uncertain shift count: conservatively widen to Top for this
	// width/class rather than attempt an unbounded expansion (documented
	// simplification; the original applies the same fallback once the
	// jump-set of possible counts is too large to enumerate).
	env.MergeErrors(ErrorFlags(0).SetMay(ErrPositiveOverflow).SetMay(ErrNegativeOverflow))
	env.StoreResult(NewTop(iv.width, iv.signed, iv.class, nil))
}

func (iv *Interval) applyCompare(op Op, second Element, env *EvaluationEnvironment) {
	sureTrue, sureFalse := iv.compareBounds(op, second)
	switch {
	case sureTrue:
		env.StoreResult(NewConstantBool(true))
	case sureFalse:
		env.StoreResult(NewConstantBool(false))
	default:
		env.StoreResult(newBooleanDisjunction())
	}
}

// compareBounds decides a comparison using strict bound inequalities for
// "sure" and loose ones for "may" (spec §4.4): it returns (true, false) when
// the comparison is sure to hold, (false, true) when sure to fail, and
// (false, false) when it depends on the concrete values.
func (iv *Interval) compareBounds(op Op, second Element) (sureTrue, sureFalse bool) {
	var oMin, oMax primitives.Int
	switch o := second.(type) {
	case *Constant:
		oMin, oMax = o.intVal, o.intVal
	case *Interval:
		oMin, oMax = o.min.intVal, o.max.intVal
	default:
		return false, false
	}
	switch op {
	case OpCompareLess:
		return iv.max.intVal.Less(oMin), iv.min.intVal.GreaterOrEqual(oMax)
	case OpCompareLessOrEqual:
		return iv.max.intVal.LessOrEqual(oMin), iv.min.intVal.Greater(oMax)
	case OpCompareGreater:
		return iv.min.intVal.Greater(oMax), iv.max.intVal.LessOrEqual(oMin)
	case OpCompareGreaterOrEqual:
		return iv.min.intVal.GreaterOrEqual(oMax), iv.max.intVal.Less(oMin)
	case OpCompareEqual:
		if iv.min.intVal.Equal(iv.max.intVal) && oMin.Equal(oMax) {
			return iv.min.intVal.Equal(oMin), !iv.min.intVal.Equal(oMin)
		}
		disjoint := iv.max.intVal.Less(oMin) || iv.min.intVal.Greater(oMax)
		return false, disjoint
	case OpCompareDifferent:
		t, f := iv.compareBounds(OpCompareEqual, second)
		return f, t
	}
	return false, false
}

// --- Constraint (backward) --------------------------------------------------

func (iv *Interval) Constraint(op Op, result Element, env *ConstraintEnvironment) {
	switch op {
	case OpCompareLess, OpCompareLessOrEqual, OpCompareGreater, OpCompareGreaterOrEqual,
		OpCompareEqual, OpCompareDifferent:
		iv.constraintCompare(op, env)
	case OpPlus, OpMinus:
		iv.constraintAddSub(op, result, env)
	default:
		env.DegradeVerdict(0)
		if env.Second != nil {
			env.SecondResult = env.Second
		}
	}
}

// constraintCompare implements spec §4.4's example: [a,b] < c forced true
// narrows b <- min(b, c-1); forced false narrows a <- max(a, c). Symmetric
// rules exist for <=, =, !=, >=, > (spec names these as analogous).
func (iv *Interval) constraintCompare(op Op, env *ConstraintEnvironment) {
	c, isConst := env.Second.(*Constant)
	if !isConst {
		// Interval-vs-interval comparison does no narrowing: both operands
		// are returned unchanged and the verdict degrades; still sound, just
		// less precise than the constant case spec §4.4 spells out.
		env.DegradeVerdict(0)
		env.SecondResult = env.Second
		return
	}
	effectiveOp := op
	if !env.Forced {
		effectiveOp = negateCompare(op)
	}
	min, max := iv.min.intVal, iv.max.intVal
	switch effectiveOp {
	case OpCompareLess:
		prev, _ := c.intVal.Prev()
		max = max.Min(prev)
	case OpCompareLessOrEqual:
		max = max.Min(c.intVal)
	case OpCompareGreater:
		next, _ := c.intVal.Next()
		min = min.Max(next)
	case OpCompareGreaterOrEqual:
		min = min.Max(c.intVal)
	case OpCompareEqual:
		min = min.Max(c.intVal)
		max = max.Min(c.intVal)
	case OpCompareDifferent:
		// Can only narrow at the edges: if c sits exactly on a bound, pull
		// that bound in by one; otherwise no precision gain.
		if min.Equal(c.intVal) {
			min, _ = min.Next()
		}
		if max.Equal(c.intVal) {
			max, _ = max.Prev()
		}
	}
	if min.Greater(max) {
		env.SetEmpty()
		return
	}
	env.FirstResult = newIntervalFromConstants(constantFromInt(iv.width, iv.signed, iv.class, min), constantFromInt(iv.width, iv.signed, iv.class, max))
	env.SecondResult = c
	env.MergeVerdict(VerdictExact)
}

func negateCompare(op Op) Op {
	switch op {
	case OpCompareLess:
		return OpCompareGreaterOrEqual
	case OpCompareLessOrEqual:
		return OpCompareGreater
	case OpCompareGreater:
		return OpCompareLessOrEqual
	case OpCompareGreaterOrEqual:
		return OpCompareLess
	case OpCompareEqual:
		return OpCompareDifferent
	case OpCompareDifferent:
		return OpCompareEqual
	}
	return op
}

// constraintAddSub propagates X + Y = R as X <- R - Y, Y <- R - X (spec
// §4.4).
func (iv *Interval) constraintAddSub(op Op, result Element, env *ConstraintEnvironment) {
	other := env.Second
	if other == nil {
		env.DegradeVerdict(0)
		return
	}
	sub := func(a, b Element) Element {
		fwd := NewEvaluationEnvironment(a, b, env.Info, env.Lattice)
		aAsElem := a
		if op == OpPlus {
			aAsElem.Apply(OpMinus, fwd)
		} else {
			aAsElem.Apply(OpPlus, fwd)
		}
		return fwd.Result
	}
	env.FirstResult = sub(result, other)
	env.SecondResult = sub(result, env.First)
	if op == OpMinus {
		// X - Y = R  =>  Y = X - R, not R - X; recompute with the right
		// orientation for the second operand.
		fwd := NewEvaluationEnvironment(env.First, result, env.Info, env.Lattice)
		env.First.Apply(OpMinus, fwd)
		env.SecondResult = fwd.Result
	}
	env.MergeVerdict(VerdictExact)
}

// --- Lattice: merge / contain / intersect -----------------------------------

func (iv *Interval) MergeWith(other Element, env *EvaluationEnvironment) {
	switch o := other.(type) {
	case *Constant:
		env.StoreResult(iv.mergeWithBounds(o.intVal, o.intVal, env))
	case *Interval:
		if o.signed != iv.signed {
			reinterpreted := o.changeSignRepresentation(iv.signed)
			reinterpreted.MergeWith(iv, env)
			return
		}
		env.StoreResult(iv.mergeWithBounds(o.min.intVal, o.max.intVal, env))
	default:
		other.MergeWith(iv, env)
	}
}

func (iv *Interval) mergeWithBounds(oMin, oMax primitives.Int, env *EvaluationEnvironment) Element {
	joinedMin := iv.min.intVal.Min(oMin)
	joinedMax := iv.max.intVal.Max(oMax)
	joined := newIntervalFromConstants(constantFromInt(iv.width, iv.signed, iv.class, joinedMin), constantFromInt(iv.width, iv.signed, iv.class, joinedMax))

	switch env.Lattice {
	case LatticeTop:
		return NewTop(iv.width, iv.signed, iv.class, nil)
	case LatticeShareTop:
		// Widen to Top only if the join would enlarge the set beyond
		// either operand; a strict superset relation means no widening is
		// needed.
		ivAsElem := Element(iv)
		otherRange := newIntervalFromConstants(constantFromInt(iv.width, iv.signed, iv.class, oMin), constantFromInt(iv.width, iv.signed, iv.class, oMax))
		if ivAsElem.Contain(otherRange) == ContainTrue {
			return iv
		}
		if otherRange.Contain(ivAsElem) == ContainTrue {
			return otherRange
		}
		return NewTop(iv.width, iv.signed, iv.class, nil)
	case LatticeDisjunction:
		// Keep the two operands as separate disjuncts unless one already
		// contains the other.
		otherRange := newIntervalFromConstants(constantFromInt(iv.width, iv.signed, iv.class, oMin), constantFromInt(iv.width, iv.signed, iv.class, oMax))
		if Element(iv).Contain(otherRange) == ContainTrue {
			return iv
		}
		if otherRange.Contain(iv) == ContainTrue {
			return otherRange
		}
		return newDisjunctionOfElements(iv.width, iv.signed, iv.class, []Element{iv, otherRange})
	default:
		return joined
	}
}

func (iv *Interval) Contain(other Element) Containment {
	switch o := other.(type) {
	case *Constant:
		if iv.min.intVal.LessOrEqual(o.intVal) && iv.max.intVal.GreaterOrEqual(o.intVal) {
			return ContainTrue
		}
		return ContainFalse
	case *Interval:
		if o.signed != iv.signed {
			reinterpreted := o.changeSignRepresentation(iv.signed)
			return iv.Contain(reinterpreted)
		}
		if iv.min.intVal.LessOrEqual(o.min.intVal) && iv.max.intVal.GreaterOrEqual(o.max.intVal) {
			return ContainTrue
		}
		if iv.min.intVal.Greater(o.max.intVal) || iv.max.intVal.Less(o.min.intVal) {
			return ContainFalse
		}
		return ContainPartial
	default:
		// Disjunction/Top: query bounds and compare conservatively.
		q := other.Query(QueryBounds)
		if q.Bounds.Min == nil {
			return ContainFalse
		}
		minC, okMin := q.Bounds.Min.(*Constant)
		maxC, okMax := q.Bounds.Max.(*Constant)
		if okMin && okMax && iv.min.intVal.LessOrEqual(minC.intVal) && iv.max.intVal.GreaterOrEqual(maxC.intVal) {
			return ContainTrue
		}
		return ContainFalse
	}
}

func (iv *Interval) IntersectWith(other Element, env *EvaluationEnvironment) {
	switch o := other.(type) {
	case *Constant:
		if iv.min.intVal.LessOrEqual(o.intVal) && iv.max.intVal.GreaterOrEqual(o.intVal) {
			env.StoreResult(o)
		} else {
			env.SetEmpty()
		}
	case *Interval:
		if o.signed != iv.signed {
			reinterpreted := o.changeSignRepresentation(iv.signed)
			iv.IntersectWith(reinterpreted, env)
			return
		}
		lo := iv.min.intVal.Max(o.min.intVal)
		hi := iv.max.intVal.Min(o.max.intVal)
		if lo.Greater(hi) {
			env.SetEmpty()
			return
		}
		env.StoreResult(newIntervalFromConstants(constantFromInt(iv.width, iv.signed, iv.class, lo), constantFromInt(iv.width, iv.signed, iv.class, hi)))
	default:
		other.IntersectWith(iv, env)
	}
}
