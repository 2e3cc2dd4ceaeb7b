package element

import "io"

// Containment is the three-valued result of Contain: a partial inclusion is
// distinguished from both full containment and no containment at all (spec
// §6 host-facing API: "contain(a, b) -> {true, false, partial}").
type Containment int

const (
	ContainFalse Containment = iota
	ContainTrue
	ContainPartial
)

// Element is the contract every kind of abstract value implements (spec
// §4.2). All mutating-looking methods return a new Element rather than
// mutating the receiver in place: elements are passed by value semantics
// across operations (spec §3 "Lifecycle") even though the concrete types are
// Go pointers for cheap sharing of immutable substructure.
type Element interface {
	Kind() Kind
	Width() uint
	Class() ScalarClass
	// Signed reports the signedness of an integer-classed element; it is
	// meaningless (and always false) for Boolean/Float/Pointer elements.
	Signed() bool

	// Write renders the element for a human (or, with the same format, a
	// machine that round-trips it — spec §8.3).
	Write(out io.Writer)

	// Clone produces a deep, owned copy (spec §3 "Ownership").
	Clone() Element

	// Query answers a static fact about the element without mutating it.
	Query(q QueryKind) QueryResult

	// Apply performs a unary, or a binary operation against env.Second
	// (which may be nil for a unary op), storing the result (or emptiness)
	// and accumulated flags into env.
	Apply(op Op, env *EvaluationEnvironment)

	// ApplyTo is the dual of Apply (spec §4.2): called on the
	// higher-(or equal-)kinded operand when the original receiver of Apply
	// had a strictly lesser kind and forwarded the call here. other is the
	// original (lesser-kinded) receiver.
	ApplyTo(op Op, other Element, env *EvaluationEnvironment)

	// Constraint narrows the operands of op given a required result,
	// recording each operand's tightened slot into env.
	Constraint(op Op, result Element, env *ConstraintEnvironment)

	// MergeWith computes the lattice join of the receiver and other under
	// env.Lattice, storing it as env.Result.
	MergeWith(other Element, env *EvaluationEnvironment)

	// Contain reports whether the receiver's concretisation is a superset
	// of other's.
	Contain(other Element) Containment

	// IntersectWith computes the meet of the receiver and other, storing it
	// as env.Result, or calling env.SetEmpty if the meet is empty.
	IntersectWith(other Element, env *EvaluationEnvironment)
}

// IsBoolean reports whether e is the width-1 boolean class.
func IsBoolean(e Element) bool { return e.Class() == ClassBoolean }

// IsFloat reports whether e is float-classed.
func IsFloat(e Element) bool { return e.Class() == ClassFloat }
