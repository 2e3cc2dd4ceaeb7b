// SPDX-License-Identifier: Apache-2.0

// Command domain-cli is an interactive demo of the scalar value domain,
// adapted from the teacher's cmd/kanso-cli/main.go: same "read an argument,
// parse it, report success or a caret-style error" shape, pointed at the
// expression grammar (grammar.Expr) and internal/domain instead of a Kanso
// source file and its AST.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/segmentio/ksuid"

	"scalardomain/grammar"
)

func main() {
	args := os.Args[1:]
	stopOnErrors := false
	if len(args) > 0 && args[0] == "--stop-on-errors" {
		stopOnErrors = true
		args = args[1:]
	}
	if len(args) < 1 {
		fmt.Println("Usage: domain-cli [--stop-on-errors] <expression>")
		fmt.Println(`Example: domain-cli "u32:[0,10] + u32:5"`)
		os.Exit(1)
	}

	src := strings.Join(args, " ")

	expr, err := grammar.ParseString("<argument>", src)
	if err != nil {
		grammar.ReportParseError(src, err)
		os.Exit(1)
	}

	traceID := ksuid.New()
	fmt.Printf("[%s] parsed: %s\n", traceID, expr.String())

	result, empty, errs, err := evalExpr(expr, traceID, stopOnErrors)
	if err != nil {
		color.Red("evaluation failed: %s", err)
		os.Exit(1)
	}
	if empty {
		color.Yellow("[%s] result: <empty>", traceID)
		return
	}

	color.Green("[%s] result: %s", traceID, describe(result))
	if !errs.IsClean() {
		color.Yellow("[%s] flags: %s", traceID, errs)
	}
}
