package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/lalang-run/lalang/internal/vm"
)

// runCmd implements `lalang run <file>`: compile the whole file as one
// pass and evaluate it (§1's "external collaborator" file-running shape,
// built on the same core the REPL uses).
type runCmd struct{}

func (*runCmd) Name() string     { return "run" }
func (*runCmd) Synopsis() string { return "run a Lalang source file" }
func (*runCmd) Usage() string    { return "run <file>:\n  compile and evaluate a source file\n" }
func (*runCmd) SetFlags(f *flag.FlagSet) {}

func (*runCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "lalang run: expected exactly one file argument")
		return subcommands.ExitUsageError
	}
	path := f.Arg(0)
	src, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, "lalang run:", err)
		return subcommands.ExitFailure
	}

	cfg := LoadConfig()
	machine := vm.New(os.Stdout, path)
	machine.Debug = cfg.Debug

	code, err := machine.CompileString(string(src))
	if err != nil {
		fmt.Fprintln(os.Stderr, "lalang:", err)
		return subcommands.ExitFailure
	}
	if code == nil {
		fmt.Fprintln(os.Stderr, "lalang run: unbalanced braces in", path)
		return subcommands.ExitFailure
	}
	if err := machine.Eval(code, nil); err != nil {
		fmt.Fprintln(os.Stderr, "lalang:", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
