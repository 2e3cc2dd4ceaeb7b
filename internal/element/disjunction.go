package element

import (
	"fmt"
	"io"
	"math/big"
)

// Disjunction is the power-set layer (spec §3, §4.5, C5): three ordered,
// deduplicating lists of elements — exact, sure, may — sharing one
// concretisation: ⋃may ∪ ⋃exact, with sure additionally denoting values that
// must be reached.
type Disjunction struct {
	width  uint
	signed bool
	class  ScalarClass

	exact []Element
	sure  []Element
	may   []Element
}

var _ Element = (*Disjunction)(nil)

// NewDisjunction builds an empty disjunction shell for the host to populate
// via AddExact/AddSure/AddMay (spec §6: "new_disjunction(width) -> Disjunction,
// then add_may/exact/sure(element)").
func NewDisjunction(width uint, signed bool, class ScalarClass) *Disjunction {
	return &Disjunction{width: width, signed: signed, class: class}
}

func (d *Disjunction) AddExact(e Element) { d.exact = appendDedup(d.exact, e) }
func (d *Disjunction) AddSure(e Element)  { d.sure = appendDedup(d.sure, e) }
func (d *Disjunction) AddMay(e Element)   { d.may = appendDedup(d.may, e) }

// Simplify applies spec §4.5's collapse rules (flatten/collapse-to-Top/
// discard-dominated-may/promote-singleton) to a disjunction the host built
// by hand via AddExact/AddSure/AddMay. Every constructor internal to this
// package already calls this before handing a Disjunction back, so callers
// only need it after building one directly from the host-facing facade.
func (d *Disjunction) Simplify() Element { return simplify(d) }

func writeKey(e Element) string {
	var b []byte
	buf := sliceWriter{&b}
	e.Write(buf)
	return string(b)
}

type sliceWriter struct{ buf *[]byte }

func (w sliceWriter) Write(p []byte) (int, error) {
	*w.buf = append(*w.buf, p...)
	return len(p), nil
}

func appendDedup(list []Element, e Element) []Element {
	key := writeKey(e)
	for _, existing := range list {
		if writeKey(existing) == key {
			return list
		}
	}
	return append(list, e)
}

// newTwoConstantDisjunction builds the two-element disjunction used by
// Constant.MergeWith under LatticeDisjunction mode (spec §4.3).
func newTwoConstantDisjunction(a, b *Constant) Element {
	d := &Disjunction{width: a.width, signed: a.signed, class: a.class}
	d.exact = appendDedup(d.exact, a)
	d.exact = appendDedup(d.exact, b)
	return simplify(d)
}

// newBooleanDisjunction builds the imprecise {true, false} result every
// unresolved comparison produces (spec §4.3, §4.4, §4.5).
func newBooleanDisjunction() Element {
	d := &Disjunction{width: 1, signed: false, class: ClassBoolean}
	d.exact = []Element{NewConstantBool(true), NewConstantBool(false)}
	return d
}

// newDisjunctionOfElements builds a disjunction whose exact bucket is elems
// — every member genuinely reachable, as opposed to a may-bucket
// overapproximation — then simplifies it. Used by Interval's overflow
// partitioning, sign-split recursion, and shift expansion (spec §4.4).
func newDisjunctionOfElements(width uint, signed bool, class ScalarClass, elems []Element) Element {
	if len(elems) == 0 {
		return nil
	}
	d := &Disjunction{width: width, signed: signed, class: class}
	for _, e := range elems {
		d.exact = appendDedup(d.exact, e)
	}
	return simplify(d)
}

// newDisjunctionWithSure attaches samples to base's sure bucket (SPEC_FULL.md
// supplemented feature #3, grounded on original_source's multiplication
// sure-sample rule, spec §4.4 "[a,b] × c").
func newDisjunctionWithSure(base Element, samples []Element) Element {
	if existing, ok := base.(*Disjunction); ok {
		cp := *existing
		for _, s := range samples {
			cp.sure = appendDedup(cp.sure, s)
		}
		return simplify(&cp)
	}
	d := &Disjunction{width: base.Width(), signed: base.Signed(), class: base.Class()}
	d.exact = []Element{base}
	for _, s := range samples {
		d.sure = appendDedup(d.sure, s)
	}
	return simplify(d)
}

// simplify applies spec §4.5's collapse rules: flatten nested disjunctions,
// collapse to Top on a Top member in exact/sure, discard may members
// dominated by another may member, and promote a singleton exact-only
// disjunction to its member.
func simplify(d *Disjunction) Element {
	flattenInto(d)

	for _, m := range append(append([]Element{}, d.exact...), d.sure...) {
		if _, ok := m.(*Top); ok {
			return NewTop(d.width, d.signed, d.class, nil)
		}
	}

	d.may = discardDominated(d.may)

	if len(d.exact) == 1 && len(d.sure) == 0 && len(d.may) == 0 {
		return d.exact[0]
	}
	if len(d.exact) == 0 && len(d.sure) == 0 && len(d.may) == 0 {
		// Nothing left to represent: callers treat this as an empty signal
		// by checking the returned Disjunction's own emptiness rather than
		// receiving a nil Element, to keep Element a non-nil interface
		// everywhere except explicit SetEmpty sites.
		return d
	}
	return d
}

func flattenInto(d *Disjunction) {
	flattenBucket := func(bucket []Element, intoExact, intoSure, intoMay *[]Element) []Element {
		var out []Element
		for _, m := range bucket {
			if inner, ok := m.(*Disjunction); ok {
				for _, e := range inner.exact {
					*intoExact = appendDedup(*intoExact, e)
				}
				for _, s := range inner.sure {
					*intoSure = appendDedup(*intoSure, s)
				}
				for _, mm := range inner.may {
					*intoMay = appendDedup(*intoMay, mm)
				}
				continue
			}
			out = appendDedup(out, m)
		}
		return out
	}
	var extraExact, extraSure, extraMay []Element
	d.exact = flattenBucket(d.exact, &extraExact, &extraSure, &extraMay)
	d.sure = flattenBucket(d.sure, &extraExact, &extraSure, &extraMay)
	d.may = flattenBucket(d.may, &extraExact, &extraSure, &extraMay)
	for _, e := range extraExact {
		d.exact = appendDedup(d.exact, e)
	}
	for _, s := range extraSure {
		d.sure = appendDedup(d.sure, s)
	}
	for _, m := range extraMay {
		d.may = appendDedup(d.may, m)
	}
}

func discardDominated(may []Element) []Element {
	var kept []Element
	for i, m := range may {
		dominated := false
		for j, other := range may {
			if i == j {
				continue
			}
			if other.Contain(m) == ContainTrue && writeKey(other) != writeKey(m) {
				dominated = true
				break
			}
		}
		if !dominated {
			kept = appendDedup(kept, m)
		}
	}
	return kept
}

func (d *Disjunction) Kind() Kind         { return KindDisjunction }
func (d *Disjunction) Width() uint        { return d.width }
func (d *Disjunction) Class() ScalarClass { return d.class }
func (d *Disjunction) Signed() bool       { return d.signed }

func (d *Disjunction) Clone() Element {
	cp := *d
	cp.exact = append([]Element{}, d.exact...)
	cp.sure = append([]Element{}, d.sure...)
	cp.may = append([]Element{}, d.may...)
	return &cp
}

// IsEmpty reports whether the disjunction has collapsed to the empty signal
// (spec §4.5: "a disjunction with fewer than two exact elements and empty
// may/sure must simplify to its single element or an empty signal").
func (d *Disjunction) IsEmpty() bool {
	return len(d.exact) == 0 && len(d.sure) == 0 && len(d.may) == 0
}

func (d *Disjunction) Write(out io.Writer) {
	fmt.Fprintf(out, "{")
	for i, m := range d.exact {
		if i > 0 {
			fmt.Fprintf(out, " | ")
		}
		m.Write(out)
	}
	if len(d.sure) > 0 {
		fmt.Fprintf(out, " ; sure: ")
		for i, m := range d.sure {
			if i > 0 {
				fmt.Fprintf(out, " | ")
			}
			m.Write(out)
		}
	}
	if len(d.may) > 0 {
		fmt.Fprintf(out, " ; may: ")
		for i, m := range d.may {
			if i > 0 {
				fmt.Fprintf(out, " | ")
			}
			m.Write(out)
		}
	}
	fmt.Fprintf(out, "}")
}

// selectMembers returns the buckets relevant to an info-kind request: exact
// alone for Exact, exact ∪ may for May, exact ∪ sure for Sure (spec §4.5).
func selectMembers(d *Disjunction, info InformationKind) []Element {
	members := append([]Element{}, d.exact...)
	switch info {
	case InfoMay:
		members = append(members, d.may...)
	case InfoSure:
		members = append(members, d.sure...)
	}
	return members
}

func (d *Disjunction) Query(q QueryKind) QueryResult {
	switch q {
	case QueryBounds:
		members := append(append([]Element{}, d.exact...), d.may...)
		if len(members) == 0 {
			return QueryResult{Kind: q}
		}
		var lo, hi *big.Int
		for _, m := range members {
			b := m.Query(QueryBounds).Bounds
			minC, okMin := b.Min.(*Constant)
			maxC, okMax := b.Max.(*Constant)
			if !okMin || !okMax {
				continue
			}
			if lo == nil || minC.intVal.Big().Cmp(lo) < 0 {
				lo = minC.intVal.Big()
			}
			if hi == nil || maxC.intVal.Big().Cmp(hi) > 0 {
				hi = maxC.intVal.Big()
			}
		}
		if lo == nil {
			return QueryResult{Kind: q}
		}
		return QueryResult{Kind: q, Bounds: Bounds{
			Min: NewConstantInt(d.width, d.signed, d.class, lo),
			Max: NewConstantInt(d.width, d.signed, d.class, hi),
		}}
	case QueryCompareSpecial:
		members := append(append([]Element{}, d.exact...), d.may...)
		result := CompareSpecial(-1)
		for _, m := range members {
			cs := m.Query(QueryCompareSpecial).CompareSpecial
			if result == CompareSpecial(-1) {
				result = cs
				continue
			}
			if result != cs {
				return QueryResult{Kind: q, CompareSpecial: CompareUnknown}
			}
		}
		if result == CompareSpecial(-1) {
			return QueryResult{Kind: q, CompareSpecial: CompareUnknown}
		}
		return QueryResult{Kind: q, CompareSpecial: result}
	case QuerySimplifyAsConstantDisjunction:
		members := append(append([]Element{}, d.exact...), d.may...)
		for _, m := range members {
			if _, ok := m.(*Constant); !ok {
				return QueryResult{Kind: q, Simplifiable: false}
			}
		}
		return QueryResult{Kind: q, Simplifiable: true, AsConstants: members}
	default:
		return QueryResult{Kind: q, Simplifiable: false}
	}
}

func (d *Disjunction) Apply(op Op, env *EvaluationEnvironment) {
	env.Dispatch()
	if env.Second != nil && env.Second.Kind().rank() > KindDisjunction.rank() {
		// Unreachable: Disjunction ties Top for the highest rank, and a tie
		// always dispatches on the LHS (spec §3); kept for symmetry with the
		// other kinds' Apply.
		env.Second.ApplyTo(op, d, env)
		return
	}

	selfMembers := selectMembers(d, env.Info)
	if len(selfMembers) == 0 {
		env.SetEmpty()
		return
	}
	otherDisjunction, otherIsDisjunction := env.Second.(*Disjunction)
	var otherMembers []Element
	if otherIsDisjunction {
		otherMembers = selectMembers(otherDisjunction, env.Info)
		if len(otherMembers) == 0 {
			env.SetEmpty()
			return
		}
	}

	var results []Element
	var errs ErrorFlags
	anyNonEmpty := false
	// applyOne reports whether the sub-computation's accumulated errors
	// should stop the whole fan-out (spec §4.6, §7: the first error empties
	// the result once StopOnErrors is set) rather than merely drop this one
	// disjunct.
	applyOne := func(first, second Element) bool {
		sub := NewEvaluationEnvironment(first, second, env.Info, env.Lattice)
		sub.StopOnErrors = env.StopOnErrors
		first.Apply(op, sub)
		errs = errs.Merge(sub.Errors)
		if sub.ShouldStop() {
			return true
		}
		if !sub.IsEmpty() {
			results = append(results, sub.Result)
			anyNonEmpty = true
		}
		return false
	}
	stopped := false
outer:
	for _, m := range selfMembers {
		if otherIsDisjunction {
			for _, om := range otherMembers {
				if applyOne(m, om) {
					stopped = true
					break outer
				}
			}
		} else {
			if applyOne(m, env.Second) {
				stopped = true
				break
			}
		}
	}
	env.MergeErrors(errs)
	if stopped || !anyNonEmpty {
		env.SetEmpty()
		return
	}
	env.StoreResult(newDisjunctionOfElements(d.width, d.signed, d.class, results))
}

func (d *Disjunction) ApplyTo(op Op, other Element, env *EvaluationEnvironment) {
	swapped := NewEvaluationEnvironment(d, other, env.Info, env.Lattice)
	swapped.StopOnErrors = env.StopOnErrors
	d.Apply(op, swapped)
	env.Result = swapped.Result
	env.MergeErrors(swapped.Errors)
	if swapped.IsEmpty() {
		env.SetEmpty()
	}
}

func (d *Disjunction) Constraint(op Op, result Element, env *ConstraintEnvironment) {
	members := selectMembers(d, env.Info)
	if len(members) == 0 {
		env.SetEmpty()
		return
	}
	var firstResults, secondResults []Element
	verdict := VerdictExact
	anyNonEmpty := false
	for _, m := range members {
		sub := NewConstraintEnvironment(m, env.Second, result, env.Info, env.Lattice)
		sub.Forced = env.Forced
		sub.StopOnErrors = env.StopOnErrors
		m.Constraint(op, result, sub)
		if sub.IsEmpty() {
			continue
		}
		anyNonEmpty = true
		if sub.FirstResult != nil {
			firstResults = append(firstResults, sub.FirstResult)
		}
		if sub.SecondResult != nil {
			secondResults = append(secondResults, sub.SecondResult)
		}
		verdict = verdict.merge(sub.Verdict)
		env.MergeErrors(sub.Errors)
	}
	if !anyNonEmpty {
		env.SetEmpty()
		return
	}
	if len(firstResults) > 0 {
		env.FirstResult = newDisjunctionOfElements(d.width, d.signed, d.class, firstResults)
	}
	if len(secondResults) > 0 && env.Second != nil {
		env.SecondResult = newDisjunctionOfElements(env.Second.Width(), env.Second.Signed(), env.Second.Class(), secondResults)
	}
	env.MergeVerdict(verdict)
}

func (d *Disjunction) MergeWith(other Element, env *EvaluationEnvironment) {
	if env.Lattice == LatticeTop {
		env.StoreResult(NewTop(d.width, d.signed, d.class, nil))
		return
	}
	if od, ok := other.(*Disjunction); ok {
		merged := &Disjunction{width: d.width, signed: d.signed, class: d.class}
		merged.exact = append(append([]Element{}, d.exact...), od.exact...)
		merged.sure = append(append([]Element{}, d.sure...), od.sure...)
		merged.may = append(append([]Element{}, d.may...), od.may...)
		env.StoreResult(simplify(merged))
		return
	}
	if _, ok := other.(*Top); ok {
		env.StoreResult(other)
		return
	}
	if env.Lattice == LatticeShareTop {
		if Element(d).Contain(other) == ContainTrue {
			env.StoreResult(d)
			return
		}
		if other.Contain(d) == ContainTrue {
			env.StoreResult(other)
			return
		}
		env.StoreResult(NewTop(d.width, d.signed, d.class, nil))
		return
	}
	merged := &Disjunction{width: d.width, signed: d.signed, class: d.class, exact: append([]Element{}, d.exact...), sure: append([]Element{}, d.sure...), may: append([]Element{}, d.may...)}
	merged.exact = appendDedup(merged.exact, other)
	env.StoreResult(simplify(merged))
}

func (d *Disjunction) Contain(other Element) Containment {
	if od, ok := other.(*Disjunction); ok {
		all := true
		any := false
		for _, m := range append(append([]Element{}, od.exact...), od.may...) {
			switch d.Contain(m) {
			case ContainTrue:
				any = true
			default:
				all = false
			}
		}
		if all && any {
			return ContainTrue
		}
		if any {
			return ContainPartial
		}
		return ContainFalse
	}
	members := append(append([]Element{}, d.exact...), d.may...)
	partial := false
	for _, m := range members {
		switch m.Contain(other) {
		case ContainTrue:
			return ContainTrue
		case ContainPartial:
			partial = true
		}
	}
	if partial {
		return ContainPartial
	}
	return ContainFalse
}

func (d *Disjunction) IntersectWith(other Element, env *EvaluationEnvironment) {
	members := append(append([]Element{}, d.exact...), d.may...)
	var results []Element
	var errs ErrorFlags
	for _, m := range members {
		sub := NewEvaluationEnvironment(m, other, env.Info, env.Lattice)
		m.IntersectWith(other, sub)
		errs = errs.Merge(sub.Errors)
		if !sub.IsEmpty() && sub.Result != nil {
			results = append(results, sub.Result)
		}
	}
	env.MergeErrors(errs)
	if len(results) == 0 {
		env.SetEmpty()
		return
	}
	env.StoreResult(newDisjunctionOfElements(d.width, d.signed, d.class, results))
}

// Cast fans Cast out over every member (spec §6), the same per-member
// approach Apply's fan-out uses, then re-simplifies the rebuilt disjunction.
func (d *Disjunction) Cast(newWidth uint, signed bool, signExtend bool) (Element, ErrorFlags) {
	if len(d.exact)+len(d.sure)+len(d.may) == 0 {
		return d, 0
	}
	result := &Disjunction{width: newWidth, signed: signed, class: d.class}
	var errs ErrorFlags
	castInto := func(dst []Element, members []Element) []Element {
		for _, m := range members {
			c, flags := Cast(m, newWidth, signed, signExtend)
			errs = errs.Merge(flags)
			dst = appendDedup(dst, c)
		}
		return dst
	}
	result.exact = castInto(result.exact, d.exact)
	result.sure = castInto(result.sure, d.sure)
	result.may = castInto(result.may, d.may)
	return simplify(result), errs
}

// BitSet fans BitSet out over every member, mirroring Cast.
func (d *Disjunction) BitSet(start uint, insert *Constant) Element {
	if len(d.exact)+len(d.sure)+len(d.may) == 0 {
		return d
	}
	result := &Disjunction{width: d.width, signed: d.signed, class: d.class}
	setInto := func(dst []Element, members []Element) []Element {
		for _, m := range members {
			dst = appendDedup(dst, BitSet(m, start, insert))
		}
		return dst
	}
	result.exact = setInto(result.exact, d.exact)
	result.sure = setInto(result.sure, d.sure)
	result.may = setInto(result.may, d.may)
	return simplify(result)
}
