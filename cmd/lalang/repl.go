package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/chzyer/readline"
	"github.com/google/subcommands"
	"golang.org/x/term"

	"github.com/lalang-run/lalang/internal/vm"
)

// replCmd implements `lalang repl`: read one line at a time, feed it to
// the shared compiler, and evaluate whenever the input becomes balanced
// (§4.2 pop_runnable_code, §6 "REPL reads one line at a time, continuing
// when the compiler has an unclosed block"). Grounded on
// informatter-nilan's cmd_repl.go structure.
type replCmd struct{}

func (*replCmd) Name() string     { return "repl" }
func (*replCmd) Synopsis() string { return "start an interactive Lalang session" }
func (*replCmd) Usage() string    { return "repl:\n  start an interactive Lalang session\n" }
func (*replCmd) SetFlags(f *flag.FlagSet) {}

func (*replCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg := LoadConfig()
	machine := vm.New(os.Stdout, "<repl>")
	machine.Debug = cfg.Debug

	if term.IsTerminal(int(os.Stdin.Fd())) {
		return runInteractive(machine)
	}
	return runPiped(machine)
}

// runInteractive drives the REPL with readline's history and line
// editing, switching the prompt between `>>> ` and `... ` per §6.
func runInteractive(machine *vm.VM) subcommands.ExitStatus {
	rl, err := readline.New(">>> ")
	if err != nil {
		fmt.Fprintln(os.Stderr, "lalang: readline:", err)
		return subcommands.ExitFailure
	}
	defer rl.Close()

	prompt := ">>> "
	for {
		rl.SetPrompt(prompt)
		line, err := rl.Readline()
		if err != nil { // io.EOF or readline.ErrInterrupt
			return subcommands.ExitSuccess
		}
		code, evalErr := machine.CompileString(line + "\n")
		if evalErr != nil {
			fmt.Fprintln(os.Stderr, "lalang:", evalErr)
			prompt = ">>> "
			continue
		}
		if code == nil {
			prompt = "... "
			continue
		}
		prompt = ">>> "
		if err := machine.Eval(code, nil); err != nil {
			fmt.Fprintln(os.Stderr, "lalang:", err)
		}
	}
}

// runPiped handles non-terminal stdin (piped input, §6): a plain scanner
// loop with no prompts or line editing.
func runPiped(machine *vm.VM) subcommands.ExitStatus {
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		code, err := machine.CompileString(scanner.Text() + "\n")
		if err != nil {
			fmt.Fprintln(os.Stderr, "lalang:", err)
			return subcommands.ExitFailure
		}
		if code == nil {
			continue
		}
		if err := machine.Eval(code, nil); err != nil {
			fmt.Fprintln(os.Stderr, "lalang:", err)
			return subcommands.ExitFailure
		}
	}
	if err := scanner.Err(); err != nil && err != io.EOF {
		fmt.Fprintln(os.Stderr, "lalang:", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
