package element

// ScalarClass partitions the operation catalogue the way the dispatch tables
// of spec §4.6/§6 are keyed: per scalar type, not per Kind. Every Element
// advertises the ScalarClass it was built for; the operation registry uses it
// to reject, as Unimplemented, an operation the source language never applies
// to that class (e.g. a logical shift on a float).
type ScalarClass int

const (
	ClassInteger ScalarClass = iota
	ClassBoolean
	ClassFloat
	ClassPointer
)

// Op enumerates the operation catalogue of spec §6, across all scalar
// classes. Each Op is registered in the operation table (op.go's init) with
// the classes it supports; apply/constraint look the registration up before
// dispatching to the kind-specific method.
type Op int

const (
	OpCastZeroExtend Op = iota
	OpCastSignExtend
	OpCastReduce
	OpCastToBit
	OpCastToMultiFloat
	OpCastToInt
	OpBitSet
	OpConcat
	OpNext
	OpPrev
	OpPlus
	OpMinus
	OpTimes
	OpDivide
	OpDivideUnsignedWithSigned
	OpOpposite
	OpMin
	OpMax
	OpModulo
	OpBitOr
	OpBitAnd
	OpBitXor
	OpLeftShift
	OpLogicalRightShift
	OpArithmeticRightShift
	OpLeftRotate
	OpRightRotate
	OpBitNegate
	OpCompareLess
	OpCompareLessOrEqual
	OpCompareGreater
	OpCompareGreaterOrEqual
	OpCompareEqual
	OpCompareDifferent
	OpLogicalAnd
	OpLogicalOr
	OpLogicalNegate
	OpAcos
	OpAsin
	OpAtan
	OpAtan2
	OpCeil
	OpCos
	OpCosh
	OpExp
	OpFabs
	OpFloor
	OpFmod
	OpFrexp
	OpLdexp
	OpLog
	OpLog10
	OpModf
	OpPow
	OpSin
	OpSinh
	OpSqrt
	OpTan
	OpTanh
	opCount
)

var opNames = map[Op]string{
	OpCastZeroExtend:           "cast.zero_extend",
	OpCastSignExtend:           "cast.sign_extend",
	OpCastReduce:               "cast.reduce",
	OpCastToBit:                "cast.to_bit",
	OpCastToMultiFloat:         "cast.to_multi_float",
	OpCastToInt:                "cast.to_int",
	OpBitSet:                   "bit_set",
	OpConcat:                   "concat",
	OpNext:                     "next",
	OpPrev:                     "prev",
	OpPlus:                     "plus",
	OpMinus:                    "minus",
	OpTimes:                    "times",
	OpDivide:                   "divide",
	OpDivideUnsignedWithSigned: "divide.unsigned_with_signed",
	OpOpposite:                 "opposite",
	OpMin:                      "min",
	OpMax:                      "max",
	OpModulo:                   "modulo",
	OpBitOr:                    "bit_or",
	OpBitAnd:                   "bit_and",
	OpBitXor:                   "bit_xor",
	OpLeftShift:                "left_shift",
	OpLogicalRightShift:        "logical_right_shift",
	OpArithmeticRightShift:     "arithmetic_right_shift",
	OpLeftRotate:               "left_rotate",
	OpRightRotate:              "right_rotate",
	OpBitNegate:                "bit_negate",
	OpCompareLess:              "compare_less",
	OpCompareLessOrEqual:       "compare_less_or_equal",
	OpCompareGreater:           "compare_greater",
	OpCompareGreaterOrEqual:    "compare_greater_or_equal",
	OpCompareEqual:             "compare_equal",
	OpCompareDifferent:         "compare_different",
	OpLogicalAnd:               "logical_and",
	OpLogicalOr:                "logical_or",
	OpLogicalNegate:            "logical_negate",
	OpAcos:                     "acos",
	OpAsin:                     "asin",
	OpAtan:                     "atan",
	OpAtan2:                    "atan2",
	OpCeil:                     "ceil",
	OpCos:                      "cos",
	OpCosh:                     "cosh",
	OpExp:                      "exp",
	OpFabs:                     "fabs",
	OpFloor:                    "floor",
	OpFmod:                     "fmod",
	OpFrexp:                    "frexp",
	OpLdexp:                    "ldexp",
	OpLog:                      "log",
	OpLog10:                    "log10",
	OpModf:                     "modf",
	OpPow:                      "pow",
	OpSin:                      "sin",
	OpSinh:                     "sinh",
	OpSqrt:                     "sqrt",
	OpTan:                      "tan",
	OpTanh:                     "tanh",
}

func (op Op) String() string {
	if name, ok := opNames[op]; ok {
		return name
	}
	return "unknown"
}

// opClasses is the operation table of spec §4.6: which scalar classes each
// op is registered for. Populated once below; read-only thereafter (spec
// §5: "dispatch tables are process-wide and written only during static
// initialisation").
var opClasses map[Op][]ScalarClass

func init() {
	opClasses = map[Op][]ScalarClass{
		OpCastZeroExtend:           {ClassInteger, ClassPointer},
		OpCastSignExtend:           {ClassInteger},
		OpCastReduce:               {ClassInteger, ClassPointer},
		OpCastToBit:                {ClassInteger},
		OpCastToMultiFloat:         {ClassInteger, ClassFloat},
		OpCastToInt:                {ClassFloat},
		OpBitSet:                   {ClassInteger},
		OpConcat:                   {ClassInteger},
		OpNext:                     {ClassInteger},
		OpPrev:                     {ClassInteger},
		OpPlus:                     {ClassInteger, ClassFloat, ClassPointer},
		OpMinus:                    {ClassInteger, ClassFloat, ClassPointer},
		OpTimes:                    {ClassInteger, ClassFloat},
		OpDivide:                   {ClassInteger, ClassFloat},
		OpDivideUnsignedWithSigned: {ClassInteger},
		OpOpposite:                 {ClassInteger, ClassFloat},
		OpMin:                      {ClassInteger},
		OpMax:                      {ClassInteger},
		OpModulo:                   {ClassInteger},
		OpBitOr:                    {ClassInteger},
		OpBitAnd:                   {ClassInteger},
		OpBitXor:                   {ClassInteger},
		OpLeftShift:                {ClassInteger},
		OpLogicalRightShift:        {ClassInteger},
		OpArithmeticRightShift:     {ClassInteger},
		OpLeftRotate:               {ClassInteger},
		OpRightRotate:              {ClassInteger},
		OpBitNegate:                {ClassInteger},
		OpCompareLess:              {ClassInteger, ClassFloat},
		OpCompareLessOrEqual:       {ClassInteger, ClassFloat},
		OpCompareGreater:           {ClassInteger, ClassFloat},
		OpCompareGreaterOrEqual:    {ClassInteger, ClassFloat},
		OpCompareEqual:             {ClassInteger, ClassFloat, ClassBoolean, ClassPointer},
		OpCompareDifferent:         {ClassInteger, ClassFloat, ClassBoolean, ClassPointer},
		OpLogicalAnd:               {ClassBoolean},
		OpLogicalOr:                {ClassBoolean},
		OpLogicalNegate:            {ClassBoolean},
		OpAcos:                     {ClassFloat}, OpAsin: {ClassFloat}, OpAtan: {ClassFloat}, OpAtan2: {ClassFloat},
		OpCeil: {ClassFloat}, OpCos: {ClassFloat}, OpCosh: {ClassFloat}, OpExp: {ClassFloat},
		OpFabs: {ClassFloat}, OpFloor: {ClassFloat}, OpFmod: {ClassFloat}, OpFrexp: {ClassFloat},
		OpLdexp: {ClassFloat}, OpLog: {ClassFloat}, OpLog10: {ClassFloat}, OpModf: {ClassFloat},
		OpPow: {ClassFloat}, OpSin: {ClassFloat}, OpSinh: {ClassFloat}, OpSqrt: {ClassFloat},
		OpTan: {ClassFloat}, OpTanh: {ClassFloat},
	}
}

// SupportsClass reports whether op is registered for class.
func (op Op) SupportsClass(class ScalarClass) bool {
	for _, c := range opClasses[op] {
		if c == class {
			return true
		}
	}
	return false
}

// IsTranscendental reports whether op is one of the float stubs of spec §6
// that Top always answers with ⊤ plus every applicable float flag (spec
// §4.3, §9).
func (op Op) IsTranscendental() bool {
	switch op {
	case OpAcos, OpAsin, OpAtan, OpAtan2, OpCeil, OpCos, OpCosh, OpExp, OpFabs, OpFloor,
		OpFmod, OpFrexp, OpLdexp, OpLog, OpLog10, OpModf, OpPow, OpSin, OpSinh, OpSqrt, OpTan, OpTanh:
		return true
	default:
		return false
	}
}

// IsComparison reports whether op always yields a boolean result.
func (op Op) IsComparison() bool {
	switch op {
	case OpCompareLess, OpCompareLessOrEqual, OpCompareGreater, OpCompareGreaterOrEqual,
		OpCompareEqual, OpCompareDifferent:
		return true
	default:
		return false
	}
}

// IsInjective reports whether op has a precise backward inverse given one
// operand and the result. Non-injective ops degrade to "no propagation" in
// backward constraint solving (spec §4.4, §9).
func (op Op) IsInjective() bool {
	switch op {
	case OpBitAnd, OpBitOr, OpBitXor, OpModulo, OpLeftShift, OpLogicalRightShift, OpArithmeticRightShift,
		OpLeftRotate, OpRightRotate:
		return false
	default:
		return true
	}
}
