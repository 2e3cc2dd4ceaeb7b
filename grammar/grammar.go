// Package grammar is the demo CLI's expression grammar, adapted from the
// teacher's own Kanso-module grammar: a small participle[v2] grammar instead
// of a full source language, since this domain has none of its own (spec §6
// excludes wire/source formats) but the CLI needs *some* textual form for
// interactive exploration of elements and operations.
//
// An expression is a typed literal or a chain of binary operators over typed
// literals, e.g.:
//
//	u32:[0,10] + u32:5
//	i8:top & -i8:1
//	u16:{1,2,4} == u16:2
//
// Literal values and interval/disjunction bounds are unsigned decimal
// integers; a negative constant is written with a leading minus on the whole
// literal (-i8:1), and interval or disjunction bounds cannot be negative.
//
// The grammar keeps the teacher's flat left-to-right Ops list shape
// (Expr/BinOp below) rather than precedence climbing; evalExpr
// (cmd/domain-cli/eval.go) walks that flat list strictly left to right too,
// matching the grammar's own shape instead of inventing precedence the
// grammar doesn't encode.
package grammar

// Expr is the root production: a left operand followed by zero or more
// trailing (operator, operand) pairs, evaluated strictly left to right.
type Expr struct {
	Left *Operand `@@`
	Ops  []*BinOp `{ @@ }`
}

type BinOp struct {
	Operator string   `@("&&" | "||" | "==" | "!=" | "<=" | ">=" | "<<" | ">>" | "<" | ">" | "+" | "-" | "*" | "/" | "%" | "&" | "|" | "^")`
	Right    *Operand `@@`
}

// Operand is a typed literal, optionally negated, or a parenthesised
// sub-expression.
type Operand struct {
	Negate  bool          `[ @"-" ]`
	Literal *TypedLiteral `  @@`
	Paren   *Expr         `| "(" @@ ")"`
}

// TypedLiteral is "<type>:<value>", e.g. "u32:5", "i8:[0,4]", "u16:top".
type TypedLiteral struct {
	Type        string              `@Ident ":" (`
	Top         bool                `  @"top"`
	Bool        *string             `| @("true" | "false")`
	Interval    *IntervalLiteral    `| @@`
	Disjunction *DisjunctionLiteral `| @@`
	Value       *string             `| @Integer )`
}

type IntervalLiteral struct {
	Min string `"[" @Integer ","`
	Max string `@Integer "]"`
}

type DisjunctionLiteral struct {
	Values []string `"{" @Integer { "," @Integer } "}"`
}
