package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/lalang-run/lalang/internal/bytecode"
	"github.com/lalang-run/lalang/internal/vm"
)

// disasmCmd implements `lalang disasm <file>`: compile a file and print
// its top-level code block's instructions, resolving name-pool operands
// back to readable names for GETTER/SETTER/LOAD_*/STORE_*/CALL_*.
type disasmCmd struct{}

func (*disasmCmd) Name() string     { return "disasm" }
func (*disasmCmd) Synopsis() string { return "compile a file and print its bytecode" }
func (*disasmCmd) Usage() string    { return "disasm <file>:\n  compile and print instructions\n" }
func (*disasmCmd) SetFlags(f *flag.FlagSet) {}

func (*disasmCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "lalang disasm: expected exactly one file argument")
		return subcommands.ExitUsageError
	}
	src, err := os.ReadFile(f.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, "lalang disasm:", err)
		return subcommands.ExitFailure
	}

	machine := vm.New(os.Stdout, f.Arg(0))
	code, err := machine.CompileString(string(src))
	if err != nil {
		fmt.Fprintln(os.Stderr, "lalang:", err)
		return subcommands.ExitFailure
	}
	if code == nil {
		fmt.Fprintln(os.Stderr, "lalang disasm: unbalanced braces")
		return subcommands.ExitFailure
	}
	printCode(machine, code, 0)
	return subcommands.ExitSuccess
}

func printCode(machine *vm.VM, code *bytecode.Code, indent int) {
	pad := ""
	for i := 0; i < indent; i++ {
		pad += "  "
	}
	for i, instr := range code.Instructions {
		line := fmt.Sprintf("%s%4d %s", pad, i, instr.Op)
		switch instr.Op {
		case bytecode.OpLoadGlobal, bytecode.OpStoreGlobal, bytecode.OpCallGlobal,
			bytecode.OpLoadLocal, bytecode.OpStoreLocal, bytecode.OpCallLocal,
			bytecode.OpGetter, bytecode.OpSetter, bytecode.OpRenameFunc:
			line += fmt.Sprintf(" %s", machine.Name(instr.Operand))
		case bytecode.OpLoadStr:
			line += fmt.Sprintf(" %q", machine.Name(instr.Operand))
		case bytecode.OpLoadInt:
			line += fmt.Sprintf(" %d", instr.Operand)
		case bytecode.OpLoadFunc:
			line += fmt.Sprintf(" #%d", instr.Operand)
		}
		fmt.Println(line)
	}
}
