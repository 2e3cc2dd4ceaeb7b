package errors

// Error codes for the scalar domain engine.
//
// Unlike a compiler's diagnostics, everything here is fatal (spec §7: "internal
// invariant violations... are fatal — they indicate a bug in the engine or the
// host, not analysable program behaviour"). Non-fatal conditions
// (PositiveOverflow, DivisionByZero, Unimplemented, ...) are not errors at
// all — they travel as element.ErrorFlags inside the evaluation environment,
// never as a Go error.
//
// Error code range:
// D0001-D0099: invariant violations
const (
	// D0001: an Interval was about to be built with min > max.
	ErrorInvalidIntervalBounds = "D0001"

	// D0002: an operation reached dispatch with no registration for the
	// operand's ScalarClass.
	ErrorMissingDispatchEntry = "D0002"

	// D0003: a binary operation's two operands have different bit widths.
	ErrorWidthMismatch = "D0003"

	// D0004: a binary operation's two operands disagree on ScalarClass in a
	// way no cast narrows (e.g. an integer against a float).
	ErrorClassMismatch = "D0004"

	// D0005: a Disjunction was asked to concretise with all three buckets
	// empty, which the lifecycle forbids (spec §3: every element has a
	// non-empty concretisation unless explicitly emptied via env.SetEmpty).
	ErrorEmptyDisjunction = "D0005"
)

// GetErrorDescription returns a human-readable description of the error code.
func GetErrorDescription(code string) string {
	switch code {
	case ErrorInvalidIntervalBounds:
		return "interval lower bound exceeds its upper bound"
	case ErrorMissingDispatchEntry:
		return "operation has no registration for the operand's scalar class"
	case ErrorWidthMismatch:
		return "operands of a binary operation have different bit widths"
	case ErrorClassMismatch:
		return "operands of a binary operation have incompatible scalar classes"
	case ErrorEmptyDisjunction:
		return "disjunction has no members in any bucket"
	default:
		return "unknown error code"
	}
}
