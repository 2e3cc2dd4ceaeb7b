package element

// Verdict is the per-call precision tag returned to the fixpoint engine
// (spec §4.4 state machine, glossary).
type Verdict int

const (
	VerdictExact Verdict = iota
	VerdictDegradate
	VerdictUnstable
)

func (v Verdict) String() string {
	switch v {
	case VerdictExact:
		return "Exact"
	case VerdictDegradate:
		return "Degradate"
	case VerdictUnstable:
		return "Unstable"
	default:
		return "Unknown"
	}
}

// merge combines two verdicts: Exact with Exact stays Exact; anything else
// degrades. Unstable dominates Degradate so a single instability is never
// hidden behind a later degradation.
func (v Verdict) merge(other Verdict) Verdict {
	if v == VerdictUnstable || other == VerdictUnstable {
		return VerdictUnstable
	}
	if v == VerdictDegradate || other == VerdictDegradate {
		return VerdictDegradate
	}
	return VerdictExact
}

// InformationKind is the caller's preference for which disjunction bucket
// must be populated: Exact, May, or Sure (spec §4.5, glossary).
type InformationKind int

const (
	InfoExact InformationKind = iota
	InfoMay
	InfoSure
)

// LatticeMode is the caller's preference for how merge/join widens when the
// exact union isn't itself an Interval (spec §4.6).
type LatticeMode int

const (
	// LatticeInterval prefers the enclosing interval join.
	LatticeInterval LatticeMode = iota
	// LatticeDisjunction prefers keeping distinct elements as a disjunction
	// rather than widening to an interval.
	LatticeDisjunction
	// LatticeTop always widens to Top when the exact join isn't an Interval.
	LatticeTop
	// LatticeShareTop widens to Top only if the join would enlarge the set
	// beyond either operand (i.e. neither operand already contains the
	// other).
	LatticeShareTop
	// LatticeFormal is accepted as a mode, but no lattice-selection site
	// checks for it: a join under it takes the same default path as
	// LatticeInterval, and no symbolic (FormalConstruction) element is
	// built for it.
	LatticeFormal
)

// state is the per-call machine of spec §4.4: Initial -> Dispatched ->
// (EmptyResult | ResultAccepted) -> FlagsMerged -> Done.
type state int

const (
	stateInitial state = iota
	stateDispatched
	stateEmpty
	stateResultAccepted
	stateFlagsMerged
	stateDone
)

// EvaluationEnvironment is the value object that travels with every forward
// apply call (spec §4.6).
type EvaluationEnvironment struct {
	First, Second Element
	Result        Element
	empty         bool
	Verdict       Verdict
	Info          InformationKind
	Lattice       LatticeMode
	Errors        ErrorFlags
	StopOnErrors  bool

	state state
}

// NewEvaluationEnvironment builds a fresh environment in the Initial state.
func NewEvaluationEnvironment(first, second Element, info InformationKind, lattice LatticeMode) *EvaluationEnvironment {
	return &EvaluationEnvironment{First: first, Second: second, Info: info, Lattice: lattice, state: stateInitial}
}

// Dispatch marks the call as routed to a kind-specific method.
func (env *EvaluationEnvironment) Dispatch() { env.state = stateDispatched }

// SetEmpty signals that the result has no concretisation at all (spec §4.4).
// Once set, IsEmpty observes it until the environment is reused.
func (env *EvaluationEnvironment) SetEmpty() {
	env.empty = true
	env.Result = nil
	env.state = stateEmpty
}

// ClearEmpty is the explicit helper (spec §7) used when a sub-computation is
// deliberately allowed to empty without propagating emptiness to the caller
// — the only way emptiness, once set, is walked back.
func (env *EvaluationEnvironment) ClearEmpty() {
	env.empty = false
	if env.state == stateEmpty {
		env.state = stateDispatched
	}
}

func (env *EvaluationEnvironment) IsEmpty() bool { return env.empty }

// StoreResult records a produced result and advances the state machine.
func (env *EvaluationEnvironment) StoreResult(result Element) {
	env.Result = result
	env.empty = false
	env.state = stateResultAccepted
}

// MergeErrors ORs additional error flags into the environment (spec §7: pure
// OR accumulation, never cleared except via ClearEmpty) and advances the
// state machine.
func (env *EvaluationEnvironment) MergeErrors(flags ErrorFlags) {
	env.Errors = env.Errors.Merge(flags)
	if env.state == stateResultAccepted || env.state == stateEmpty {
		env.state = stateFlagsMerged
	}
}

// MergeVerdict folds an additional verdict into the environment's running
// verdict and advances the state machine to Done.
func (env *EvaluationEnvironment) MergeVerdict(v Verdict) {
	env.Verdict = env.Verdict.merge(v)
	env.state = stateDone
}

// ShouldStop reports whether the accumulated errors should empty the result,
// per the propagate/stop-on-error policy (spec §4.6, §7).
func (env *EvaluationEnvironment) ShouldStop() bool {
	return env.StopOnErrors && !env.Errors.IsClean()
}

// Fork builds a child environment for a sub-computation, sharing the
// lattice/info/stop-on-error preferences but starting with clean state.
// Intermediate elements produced by the child are owned by the child and
// must be merged into the parent explicitly (spec §3 "Ownership"; design
// note 9 "scoped ownership").
func (env *EvaluationEnvironment) Fork(first, second Element) *EvaluationEnvironment {
	child := NewEvaluationEnvironment(first, second, env.Info, env.Lattice)
	child.StopOnErrors = env.StopOnErrors
	return child
}

// ConstraintEnvironment extends EvaluationEnvironment with per-argument
// result slots for backward propagation (spec §4.6).
type ConstraintEnvironment struct {
	EvaluationEnvironment
	Forced        bool    // the boolean verdict the result is constrained to, for comparisons
	FirstResult   Element // narrowed value for the first operand
	SecondResult  Element // narrowed value for the second operand, when binary
}

func NewConstraintEnvironment(first, second, result Element, info InformationKind, lattice LatticeMode) *ConstraintEnvironment {
	return &ConstraintEnvironment{
		EvaluationEnvironment: EvaluationEnvironment{First: first, Second: second, Result: result, Info: info, Lattice: lattice, state: stateInitial},
	}
}

// DegradeVerdict narrows an operand's slot to its unconstrained starting
// value and marks the verdict Degradate — the single helper (named
// mergeVerdictDegradate in the original, spec §4.4/§9) every non-injective
// backward rule (bit-xor, shifts, modulo...) uses instead of hand-rolling the
// bookkeeping. argIndex is 0 for First, 1 for Second.
func (env *ConstraintEnvironment) DegradeVerdict(argIndex int) {
	if argIndex == 0 {
		env.FirstResult = env.First
	} else {
		env.SecondResult = env.Second
	}
	env.MergeVerdict(VerdictDegradate)
}
