package main

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/segmentio/ksuid"

	"scalardomain/grammar"
	"scalardomain/internal/domain"
)

// typeSpec resolves a grammar type name ("u8".."u256", "i8".."i64", "bool",
// "address") to the width/signedness/class triple the domain factories need.
type typeSpec struct {
	width  uint
	signed bool
	class  domain.ScalarClass
}

var namedTypes = map[string]typeSpec{
	"bool":    {1, false, domain.ClassBoolean},
	"u8":      {8, false, domain.ClassInteger},
	"u16":     {16, false, domain.ClassInteger},
	"u32":     {32, false, domain.ClassInteger},
	"u64":     {64, false, domain.ClassInteger},
	"u128":    {128, false, domain.ClassInteger},
	"u256":    {256, false, domain.ClassInteger},
	"i8":      {8, true, domain.ClassInteger},
	"i16":     {16, true, domain.ClassInteger},
	"i32":     {32, true, domain.ClassInteger},
	"i64":     {64, true, domain.ClassInteger},
	"address": {160, false, domain.ClassPointer},
}

func lookupType(name string) (typeSpec, error) {
	spec, ok := namedTypes[name]
	if !ok {
		return typeSpec{}, fmt.Errorf("unknown type %q (known: u8,u16,u32,u64,u128,u256,i8,i16,i32,i64,bool,address)", name)
	}
	return spec, nil
}

var binOps = map[string]domain.Op{
	"+":  domain.OpPlus,
	"-":  domain.OpMinus,
	"*":  domain.OpTimes,
	"/":  domain.OpDivide,
	"%":  domain.OpModulo,
	"&":  domain.OpBitAnd,
	"|":  domain.OpBitOr,
	"^":  domain.OpBitXor,
	"<<": domain.OpLeftShift,
	">>": domain.OpArithmeticRightShift,
	"<":  domain.OpCompareLess,
	"<=": domain.OpCompareLessOrEqual,
	">":  domain.OpCompareGreater,
	">=": domain.OpCompareGreaterOrEqual,
	"==": domain.OpCompareEqual,
	"!=": domain.OpCompareDifferent,
	"&&": domain.OpLogicalAnd,
	"||": domain.OpLogicalOr,
}

func lookupOp(symbol string) (domain.Op, error) {
	op, ok := binOps[symbol]
	if !ok {
		return 0, fmt.Errorf("unknown operator %q", symbol)
	}
	return op, nil
}

// evalExpr walks expr's flat left-to-right operator chain, matching the
// grammar's own shape (grammar.go) rather than introducing operator
// precedence the grammar doesn't encode.
func evalExpr(expr *grammar.Expr, traceID ksuid.KSUID, stopOnErrors bool) (domain.Element, bool, domain.ErrorFlags, error) {
	acc, err := evalOperand(expr.Left, traceID, stopOnErrors)
	if err != nil {
		return nil, false, 0, err
	}

	var flags domain.ErrorFlags
	for _, op := range expr.Ops {
		rhs, err := evalOperand(op.Right, traceID, stopOnErrors)
		if err != nil {
			return nil, false, 0, err
		}
		domOp, err := lookupOp(op.Operator)
		if err != nil {
			return nil, false, 0, err
		}
		fmt.Printf("[%s] apply %s %s %s\n", traceID, describe(acc), op.Operator, describe(rhs))

		result, empty, stepFlags := domain.Apply(acc, rhs, domOp, domain.InfoExact, domain.LatticeInterval, stopOnErrors)
		flags = flags.Merge(stepFlags)
		if empty {
			return nil, true, flags, nil
		}
		acc = result
	}
	return acc, false, flags, nil
}

// evalOperand builds the Element a single grammar.Operand denotes: a typed
// literal (possibly negated) or a parenthesised sub-expression.
func evalOperand(op *grammar.Operand, traceID ksuid.KSUID, stopOnErrors bool) (domain.Element, error) {
	var base domain.Element
	var err error

	switch {
	case op.Literal != nil:
		base, err = evalLiteral(op.Literal)
	case op.Paren != nil:
		base, _, _, err = evalExpr(op.Paren, traceID, stopOnErrors)
	default:
		err = fmt.Errorf("malformed operand")
	}
	if err != nil {
		return nil, err
	}

	if op.Negate {
		result, empty, _ := domain.Apply(base, nil, domain.OpOpposite, domain.InfoExact, domain.LatticeInterval, stopOnErrors)
		if empty {
			return nil, fmt.Errorf("negation produced an empty result")
		}
		return result, nil
	}
	return base, nil
}

func evalLiteral(lit *grammar.TypedLiteral) (domain.Element, error) {
	spec, err := lookupType(lit.Type)
	if err != nil {
		return nil, err
	}

	switch {
	case lit.Top:
		return domain.NewTop(spec.width, spec.signed, spec.class), nil
	case lit.Bool != nil:
		return domain.NewBool(*lit.Bool == "true"), nil
	case lit.Interval != nil:
		min, ok := new(big.Int).SetString(lit.Interval.Min, 0)
		if !ok {
			return nil, fmt.Errorf("bad interval bound %q", lit.Interval.Min)
		}
		max, ok := new(big.Int).SetString(lit.Interval.Max, 0)
		if !ok {
			return nil, fmt.Errorf("bad interval bound %q", lit.Interval.Max)
		}
		return domain.NewInterval(spec.width, spec.signed, spec.class, min, max), nil
	case lit.Disjunction != nil:
		builder := domain.NewDisjunctionBuilder(spec.width, spec.signed, spec.class)
		for _, v := range lit.Disjunction.Values {
			n, ok := new(big.Int).SetString(v, 0)
			if !ok {
				return nil, fmt.Errorf("bad disjunct %q", v)
			}
			builder.AddExact(domain.NewConstant(spec.width, spec.signed, spec.class, n))
		}
		return builder.Simplify(), nil
	case lit.Value != nil:
		n, ok := new(big.Int).SetString(*lit.Value, 0)
		if !ok {
			return nil, fmt.Errorf("bad integer literal %q", *lit.Value)
		}
		return domain.NewConstant(spec.width, spec.signed, spec.class, n), nil
	default:
		return nil, fmt.Errorf("malformed literal")
	}
}

func describe(e domain.Element) string {
	var sb strings.Builder
	e.Write(&sb)
	return sb.String()
}
