package grammar

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// ExprLexer tokenizes the expression grammar (grammar.go), adapted from the
// teacher's KansoLexer: same stateful-rules shape, pared down to what an
// arithmetic/bitwise/comparison expression over typed literals needs.
var ExprLexer = lexer.MustStateful(lexer.Rules{
	"Root": {
		{"Ident", `[a-zA-Z_][a-zA-Z0-9_]*`, nil},
		{"Integer", `0x[0-9a-fA-F]+|[0-9]+`, nil},
		{"Operator", `(&&|\|\||==|!=|<=|>=|<<|>>|[-+*/%&|^<>])`, nil},
		{"Punctuation", `[\[\]{}(),:]`, nil},
		{"Whitespace", `[ \t\r\n]+`, nil},
	},
})
