package errors

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	pkgerrors "github.com/pkg/errors"
)

// InvariantViolation is a fatal internal error (spec §7): a bug in the engine
// or the host, never analysable program behaviour. It carries a Site instead
// of the teacher's ast.Position — this domain has no source text of its own
// (SPEC_FULL.md "Ambient stack"), so the caller describes where the
// violation was detected (e.g. "Interval.Apply(OpPlus)") rather than a
// line/column.
type InvariantViolation struct {
	Code    string // a D-range code from codes.go
	Site    string // the operation/method that detected the violation
	Message string
}

func (v *InvariantViolation) Error() string {
	return fmt.Sprintf("[%s] %s: %s", v.Code, v.Site, v.Message)
}

// NewInvariantViolation builds a violation wrapped with a stack trace
// (github.com/pkg/errors), so a recovered panic still carries call-stack
// context even without source positions.
func NewInvariantViolation(code, site, message string) error {
	return pkgerrors.WithStack(&InvariantViolation{Code: code, Site: site, Message: message})
}

// Panic raises a fatal invariant violation, matching spec §7's "fatal" policy
// for conditions like an interval reaching a forward rule with min > max.
func Panic(code, site, message string) {
	panic(NewInvariantViolation(code, site, message))
}

// Reporter formats an InvariantViolation with the teacher's own
// ErrorReporter styling (bold level, dim separators, colored code) — adapted
// from internal/errors/reporter.go's FormatError, minus the source-line
// excerpt a Kanso file would have had.
type Reporter struct{}

// Format renders a recovered invariant violation for a host's diagnostic
// output.
func (Reporter) Format(err error) string {
	var b strings.Builder

	bold := color.New(color.Bold).SprintFunc()
	errColor := color.New(color.FgRed, color.Bold).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()

	var violation *InvariantViolation
	if v, ok := pkgerrors.Cause(err).(*InvariantViolation); ok {
		violation = v
	}

	if violation != nil {
		fmt.Fprintf(&b, "%s[%s]: %s\n", errColor("error"), violation.Code, bold(violation.Message))
		fmt.Fprintf(&b, "  %s %s\n", dim("-->"), violation.Site)
		fmt.Fprintf(&b, "  %s %s\n", dim("note:"), GetErrorDescription(violation.Code))
	} else {
		fmt.Fprintf(&b, "%s: %s\n", errColor("error"), err)
	}

	if st, ok := err.(interface{ StackTrace() pkgerrors.StackTrace }); ok {
		dimTrace := color.New(color.Faint).SprintFunc()
		for _, frame := range st.StackTrace() {
			fmt.Fprintf(&b, "  %s %+v\n", dimTrace("at"), frame)
		}
	}
	return b.String()
}
