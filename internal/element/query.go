package element

import "scalardomain/internal/primitives"

// QueryKind enumerates the static facts a host can ask an Element for (spec
// §4.2, §6, and the query-dispatch detail recovered from original_source's
// Top.h/Disjunction.h — see SPEC_FULL.md "Supplemented features" #1).
type QueryKind int

const (
	// QueryBitDomain reports which bits may be 1 and which must be 1.
	QueryBitDomain QueryKind = iota
	// QueryBounds reports the tightest [min, max] the element is known to fit.
	QueryBounds
	// QueryCompareSpecial classifies the element against zero (always
	// negative/zero/positive/unknown), used by sign-based interval rules.
	QueryCompareSpecial
	// QuerySimplifyAsConstantDisjunction asks whether the element can be
	// represented exactly as a small disjunction of constants.
	QuerySimplifyAsConstantDisjunction
	// QuerySimplifyAsInterval asks whether the element can be represented
	// exactly as a single Interval.
	QuerySimplifyAsInterval
)

// CompareSpecial is the result of QueryCompareSpecial.
type CompareSpecial int

const (
	CompareUnknown CompareSpecial = iota
	CompareAlwaysNegative
	CompareAlwaysZero
	CompareAlwaysPositive
	CompareNeverNegative // >= 0, but may be zero
	CompareNeverPositive // <= 0, but may be zero
)

// BitDomain reports, for an integer-shaped element, which bits may be set
// (MayBeOne; a bit clear here is known to be 0) and which are knowably set
// (MustBeOne); a bit in MayBeOne but not in MustBeOne is unknown.
type BitDomain struct {
	MayBeOne  primitives.Int
	MustBeOne primitives.Int
}

// Bounds reports a [Min, Max] pair, both of Kind Constant.
type Bounds struct {
	Min, Max Element
}

// QueryResult is the tagged result of Query; only the fields matching the
// QueryKind that was asked are populated (the simplify queries set
// Simplifiable together with AsConstants or AsInterval).
type QueryResult struct {
	Kind             QueryKind
	BitDomain        BitDomain
	Bounds           Bounds
	CompareSpecial   CompareSpecial
	AsConstants      []Element // valid when simplify-as-constant-disjunction succeeds
	AsInterval       Element   // valid when simplify-as-interval succeeds
	Simplifiable     bool
}
