package element

// This file is the C6 host-facing facade: the handful of free functions spec
// §6 names as "the only surface outside users need" — apply, constraint,
// merge, contain, intersect, query — built directly on the Element
// interface's kind-specific methods. Per spec §4.6 "operation table... Tables
// are populated at process start", dispatch to the kind-specific method is
// the receiver's own method set rather than a hand-rolled
// array-of-function-pointers table: Go's interface method table already is
// that array, populated once at compile time. The op/class registration
// table (op.go's opClasses) is the one table filled by init().

// Apply performs a unary (second == nil) or binary operation, storing the
// result/emptiness/flags into env. The side of strictly greater Kind
// dispatches (spec §3); ties dispatch on the left-hand operand. op is first
// checked against the operation table (op.go's opClasses) and rejected as
// Unimplemented if either operand's class isn't registered for it; once
// dispatched, the first error empties the result whenever env.StopOnErrors is
// set (spec §4.6, §7).
func Apply(first Element, op Op, env *EvaluationEnvironment) {
	env.First = first
	if !classesSupported(op, first, env.Second) {
		env.MergeErrors(ErrorFlags(0).SetSure(ErrUnimplemented))
		env.SetEmpty()
		return
	}
	if first.Kind().DispatchesOver(elementKindOrLowest(env.Second)) {
		first.Apply(op, env)
	} else {
		env.Second.ApplyTo(op, first, env)
	}
	if env.ShouldStop() {
		env.SetEmpty()
	}
}

func elementKindOrLowest(e Element) Kind {
	if e == nil {
		return KindConstant
	}
	return e.Kind()
}

// classesSupported reports whether op is registered (op.go's opClasses) for
// every non-nil operand's class.
func classesSupported(op Op, first, second Element) bool {
	if !op.SupportsClass(first.Class()) {
		return false
	}
	return second == nil || op.SupportsClass(second.Class())
}

// Constraint narrows first (and second, if binary) given a required result.
// Like Apply, it rejects an op/class mismatch as Unimplemented and empties
// early once env.StopOnErrors is set.
func Constraint(first Element, op Op, result Element, env *ConstraintEnvironment) {
	env.First = first
	if !classesSupported(op, first, env.Second) {
		env.MergeErrors(ErrorFlags(0).SetSure(ErrUnimplemented))
		env.MergeVerdict(VerdictUnstable)
		return
	}
	first.Constraint(op, result, env)
	if env.ShouldStop() {
		env.SetEmpty()
		env.FirstResult = nil
		env.SecondResult = nil
	}
}

// Merge computes the lattice join of a and b under lattice.
func Merge(a, b Element, lattice LatticeMode) Element {
	env := NewEvaluationEnvironment(a, b, InfoExact, lattice)
	if a.Kind().DispatchesOver(b.Kind()) {
		a.MergeWith(b, env)
	} else {
		b.MergeWith(a, env)
	}
	return env.Result
}

// Contain reports whether a's concretisation is a superset of b's.
func Contain(a, b Element) Containment {
	return a.Contain(b)
}

// Intersect computes the meet of a and b, or reports emptiness.
func Intersect(a, b Element, info InformationKind, lattice LatticeMode) (Element, bool) {
	env := NewEvaluationEnvironment(a, b, info, lattice)
	if a.Kind().DispatchesOver(b.Kind()) {
		a.IntersectWith(b, env)
	} else {
		b.IntersectWith(a, env)
	}
	if env.IsEmpty() {
		return nil, false
	}
	return env.Result, true
}

// Query answers a static fact about e (spec §6: "query(element, query_op) ->
// QueryResult").
func Query(e Element, q QueryKind) QueryResult {
	return e.Query(q)
}

// Cast performs the width/signedness cast catalogue entry (spec §6) on e.
// Cast takes the target width as an explicit parameter rather than an Op, so
// it is a dedicated entry point alongside Apply/Constraint instead of an Op
// switch case (see Constant.Cast's rationale, which Interval.Cast and
// Disjunction.Cast also follow).
func Cast(e Element, newWidth uint, signed bool, signExtend bool) (Element, ErrorFlags) {
	switch v := e.(type) {
	case *Constant:
		return v.Cast(newWidth, signed, signExtend)
	case *Interval:
		return v.Cast(newWidth, signed, signExtend)
	case *Disjunction:
		return v.Cast(newWidth, signed, signExtend)
	case *Top:
		return NewTop(newWidth, signed, v.class, nil), 0
	default:
		return e, ErrorFlags(0).SetSure(ErrUnimplemented)
	}
}

// BitSet overwrites the sub-range [start, start+insert.Width()) of e's value
// with insert's bits (spec §6's bit-set catalogue entry). Like Cast, it needs
// an explicit start position an Op/env pair doesn't carry, so it is a
// dedicated entry point rather than an Op switch case.
func BitSet(e Element, start uint, insert *Constant) Element {
	switch v := e.(type) {
	case *Constant:
		return constantFromInt(v.width, v.signed, v.class, v.intVal.BitSet(start, insert.intVal))
	case *Interval:
		return v.BitSet(start, insert)
	case *Disjunction:
		return v.BitSet(start, insert)
	case *Top:
		return v
	default:
		return e
	}
}
