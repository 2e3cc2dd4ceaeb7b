package grammar

import (
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/fatih/color"
	"github.com/pkg/errors"
)

// ParseString parses a single expression, adapted from the teacher's
// grammar.ParseFile/cmd/kanso-cli main: same participle.Build options
// (stateful lexer, elided whitespace, bounded lookahead), applied to
// ExprLexer/Expr instead of KansoLexer/Program.
func ParseString(name, src string) (*Expr, error) {
	parser, err := participle.Build[Expr](
		participle.Lexer(ExprLexer),
		participle.Elide("Whitespace"),
		participle.UseLookahead(2),
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build expression parser")
	}

	expr, err := parser.ParseString(name, src)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse expression")
	}
	return expr, nil
}

// ReportParseError prints a friendly caret-style parse error message, same
// shape as the teacher's cmd/kanso-cli/main.go reportParseError.
func ReportParseError(src string, err error) {
	pe, ok := errors.Cause(err).(participle.Error)
	if !ok {
		color.Red("Unexpected error: %s", err)
		return
	}

	pos := pe.Position()
	lines := strings.Split(src, "\n")
	if pos.Line <= 0 || pos.Line > len(lines) {
		color.Red("Syntax error at unknown location: %s", err)
		return
	}

	line := lines[pos.Line-1]
	caret := strings.Repeat(" ", pos.Column-1) + "^"

	color.Red("Syntax error at line %d, column %d:", pos.Line, pos.Column)
	fmt.Println(line)
	color.HiRed(caret)
	fmt.Printf("-> %s\n", pe.Message())
}
