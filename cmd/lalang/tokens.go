package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/lalang-run/lalang/internal/lexer"
)

// tokensCmd implements `lalang tokens <file>`: print the raw token stream
// a source file lexes to, one per line with its source position (§4.1) —
// a debugging aid built directly on the lexer, with no classification.
type tokensCmd struct{}

func (*tokensCmd) Name() string     { return "tokens" }
func (*tokensCmd) Synopsis() string { return "print the raw token stream of a source file" }
func (*tokensCmd) Usage() string    { return "tokens <file>:\n  print (row, col, text) for each raw token\n" }
func (*tokensCmd) SetFlags(f *flag.FlagSet) {}

func (*tokensCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "lalang tokens: expected exactly one file argument")
		return subcommands.ExitUsageError
	}
	src, err := os.ReadFile(f.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, "lalang tokens:", err)
		return subcommands.ExitFailure
	}
	lx := lexer.New(src)
	for {
		tok, ok := lx.Next()
		if !ok {
			break
		}
		fmt.Printf("%4d:%-4d %q\n", tok.Row, tok.Col, tok.Text)
	}
	return subcommands.ExitSuccess
}
