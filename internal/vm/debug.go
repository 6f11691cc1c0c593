package vm

import (
	"fmt"
	"os"

	"github.com/lalang-run/lalang/internal/bytecode"
)

// DebugFlags gates the four verbose-tracing outputs named in §4.4: they
// are observable settings, not semantic behavior. The trace methods print
// unconditionally; the VM calls each one only when its flag is set.
// Grounded on kristofer-smog's
// pkg/vm/debugger.go breakpoint machinery, simplified from an interactive
// stepper into unconditional stderr tracing (Lalang has no pause/resume
// concept to step through, §9).
type DebugFlags struct {
	PrintTokens bool
	PrintCode   bool
	PrintStack  bool
	PrintEval   bool
}

func (d DebugFlags) traceTokens(text string) {
	fmt.Fprintf(os.Stderr, "[tokens] %q\n", text)
}

func (d DebugFlags) traceCode(code *bytecode.Code) {
	fmt.Fprintf(os.Stderr, "[code] %d instructions (is_func=%v)\n", len(code.Instructions), code.IsFunc)
	for i, instr := range code.Instructions {
		fmt.Fprintf(os.Stderr, "  %4d %s %d\n", i, instr.Op, instr.Operand)
	}
}

func (d DebugFlags) traceInstr(v *VM, instr bytecode.Instruction) {
	fmt.Fprintf(os.Stderr, "[eval] %s %d\n", instr.Op, instr.Operand)
}

func (d DebugFlags) traceStack(v *VM) {
	fmt.Fprintf(os.Stderr, "[stack] depth=%d\n", v.StackLen())
}
