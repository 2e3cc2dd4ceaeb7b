package grammar

import (
	"fmt"
	"strings"
)

func (e *Expr) String() string {
	var b strings.Builder
	b.WriteString(e.Left.String())
	for _, op := range e.Ops {
		fmt.Fprintf(&b, " %s %s", op.Operator, op.Right.String())
	}
	return b.String()
}

func (o *Operand) String() string {
	var b strings.Builder
	if o.Negate {
		b.WriteString("-")
	}
	if o.Literal != nil {
		b.WriteString(o.Literal.String())
	} else if o.Paren != nil {
		fmt.Fprintf(&b, "(%s)", o.Paren.String())
	}
	return b.String()
}

func (t *TypedLiteral) String() string {
	switch {
	case t.Top:
		return fmt.Sprintf("%s:top", t.Type)
	case t.Bool != nil:
		return fmt.Sprintf("%s:%s", t.Type, *t.Bool)
	case t.Interval != nil:
		return fmt.Sprintf("%s:[%s,%s]", t.Type, t.Interval.Min, t.Interval.Max)
	case t.Disjunction != nil:
		return fmt.Sprintf("%s:{%s}", t.Type, strings.Join(t.Disjunction.Values, ","))
	case t.Value != nil:
		return fmt.Sprintf("%s:%s", t.Type, *t.Value)
	default:
		return t.Type + ":?"
	}
}
