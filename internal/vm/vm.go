// Package vm implements Lalang's reentrant bytecode dispatch loop (§4.4).
//
// A single VM owns one value stack, a globals dict, the shared name pool
// and code pool, and a debug-flags struct. Eval is the only scheduling
// construct (§5): C-implemented-equivalent builtins (if/while/for, the
// `@` getter on a func) call back into Eval recursively on nested code
// blocks, always on the same goroutine — there is no concurrency to
// synchronize.
package vm

import (
	"fmt"
	"io"
	"os"

	"github.com/lalang-run/lalang/internal/bytecode"
	"github.com/lalang-run/lalang/internal/compiler"
	"github.com/lalang-run/lalang/internal/langerr"
	"github.com/lalang-run/lalang/internal/strpool"
	"github.com/lalang-run/lalang/internal/values"
)

// VM is the bytecode interpreter state (§3 "VM state").
type VM struct {
	stack []values.Value

	locals  *values.Dict
	globals *values.Dict

	Names *strpool.Pool
	Code  *bytecode.Pool

	Debug DebugFlags

	out io.Writer

	comp *compiler.Compiler
	file string
}

// stdoutWriter adapts an io.Writer to values.Machine's narrow Stdout
// return type.
type stdoutWriter struct{ w io.Writer }

func (s stdoutWriter) WriteString(str string) (int, error) { return io.WriteString(s.w, str) }

// New creates a fresh VM with empty globals, sharing a fresh name pool and
// code pool, writing builtin output to out (stdout, ordinarily).
func New(out io.Writer, file string) *VM {
	names := strpool.New()
	code := bytecode.NewPool()
	v := &VM{
		globals: values.NewDict(),
		Names:   names,
		Code:    code,
		out:     out,
		file:    file,
	}
	v.comp = compiler.New(names, code, file)
	installBuiltins(v)
	return v
}

// ---- values.Machine ----

func (v *VM) Push(val values.Value) { v.stack = append(v.stack, val) }

func (v *VM) Pop() values.Value {
	if len(v.stack) == 0 {
		panic(raise(langerr.StackError, "stack underflow"))
	}
	n := len(v.stack) - 1
	val := v.stack[n]
	v.stack = v.stack[:n]
	return val
}

func (v *VM) Top() values.Value {
	if len(v.stack) == 0 {
		panic(raise(langerr.StackError, "stack underflow"))
	}
	return v.stack[len(v.stack)-1]
}

func (v *VM) StackLen() int { return len(v.stack) }

func (v *VM) PopN(n int) []values.Value {
	if n < 0 || n > len(v.stack) {
		panic(raise(langerr.StackError, "wrong count for build/unbuild"))
	}
	start := len(v.stack) - n
	out := make([]values.Value, n)
	copy(out, v.stack[start:])
	v.stack = v.stack[:start]
	return out
}

func (v *VM) Intern(name string) int { return v.Names.Intern(name) }
func (v *VM) Name(idx int) string    { return v.Names.Name(idx) }

func (v *VM) Globals() *values.Dict { return v.globals }

func (v *VM) EvalCode(code *bytecode.Code, locals *values.Dict) error {
	return v.eval(code, locals)
}

func (v *VM) Getter(val values.Value, name string) error {
	if val.Type.Getter == nil {
		return raise(langerr.TypeError, "value of type '"+val.Type.Name+"' has no getter '"+name+"'")
	}
	return val.Type.Getter(v, val, name)
}

func (v *VM) Setter(val values.Value, name string) error {
	if val.Type.Setter == nil {
		return raise(langerr.TypeError, "value of type '"+val.Type.Name+"' has no setter '"+name+"'")
	}
	return val.Type.Setter(v, val, name)
}

func (v *VM) Stdout() interface {
	WriteString(string) (int, error)
} {
	return stdoutWriter{v.out}
}

func raise(kind langerr.Kind, msg string) error { return langerr.New(kind, msg) }

func (v *VM) RaiseLex(msg string) error      { return raise(langerr.LexError, msg) }
func (v *VM) RaiseParse(msg string) error    { return raise(langerr.ParseError, msg) }
func (v *VM) RaiseName(msg string) error     { return raise(langerr.NameError, msg) }
func (v *VM) RaiseType(msg string) error     { return raise(langerr.TypeError, msg) }
func (v *VM) RaiseIndex(msg string) error    { return raise(langerr.IndexError, msg) }
func (v *VM) RaiseStack(msg string) error    { return raise(langerr.StackError, msg) }
func (v *VM) RaiseResource(msg string) error { return raise(langerr.ResourceError, msg) }
func (v *VM) RaiseUser(msg string) error     { return raise(langerr.UserError, msg) }

// ---- values.Evaluator (the `vm` value type, SPEC_FULL feature 4) ----

func (v *VM) EvalSource(text string) error {
	code, err := v.CompileString(text)
	if err != nil {
		return err
	}
	if code == nil {
		return nil // unbalanced input mid-source; nothing runnable yet
	}
	return v.Eval(code, nil)
}

func (v *VM) GlobalsDict() *values.Dict { return v.globals }

// Self returns a first-class `vm` value handle to v (§9 cyclic references
// via handle, not an owning pointer cycle).
func (v *VM) Self() values.Value { return values.Value{Type: values.VMType, Obj: v} }

// ---- compile/eval public entry points ----

// CompileString feeds text through the shared compiler and returns the
// top-level code block if the input was balanced, or (nil, nil) if more
// input is needed (§4.2 pop_runnable_code).
func (v *VM) CompileString(text string) (*bytecode.Code, error) {
	if v.Debug.PrintTokens {
		v.Debug.traceTokens(text)
	}
	if err := v.comp.Compile(text); err != nil {
		return nil, err
	}
	code, ok := v.comp.PopRunnableCode()
	if !ok {
		return nil, nil
	}
	if v.Debug.PrintCode {
		v.Debug.traceCode(code)
	}
	return code, nil
}

// Eval is the public, panic-safe entry point: it recovers an in-flight
// raise() panic (internal/vm's hot-path error signaling, grounded on
// jcorbin-gothird's panicerr.Recover) and returns it as a plain error, so
// the VM core never itself calls os.Exit (§7 ambient stack decision).
func (v *VM) Eval(code *bytecode.Code, locals *values.Dict) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok {
				err = e
				return
			}
			panic(r)
		}
	}()
	return v.eval(code, locals)
}

// eval is the reentrant dispatch loop (§4.4). It may itself panic with a
// langerr error; only the outermost Eval call recovers it.
func (v *VM) eval(code *bytecode.Code, locals *values.Dict) error {
	prevLocals := v.locals
	if locals != nil {
		v.locals = locals
	} else if code.IsFunc {
		v.locals = values.NewDict()
	}
	defer func() { v.locals = prevLocals }()

	for _, instr := range code.Instructions {
		if v.Debug.PrintEval {
			v.Debug.traceInstr(v, instr)
		}
		if err := v.step(instr); err != nil {
			return err
		}
		if v.Debug.PrintStack {
			v.Debug.traceStack(v)
		}
	}
	return nil
}

func (v *VM) step(instr bytecode.Instruction) error {
	switch instr.Op {
	case bytecode.OpLoadInt:
		v.Push(values.Int(int64(instr.Operand)))
	case bytecode.OpLoadStr:
		v.Push(values.Str(v.Names.Name(instr.Operand)))
	case bytecode.OpLoadFunc:
		c := v.Code.Get(instr.Operand)
		v.Push(values.Value{Type: values.FuncType, Obj: &values.Func{Code: c}})

	case bytecode.OpLoadGlobal:
		name := v.Names.Name(instr.Operand)
		val, ok := v.globals.Get(name)
		if !ok {
			return v.RaiseName("unknown global '" + name + "'")
		}
		v.Push(val)
	case bytecode.OpStoreGlobal:
		name := v.Names.Name(instr.Operand)
		v.globals.Set(name, v.Pop())
	case bytecode.OpCallGlobal:
		name := v.Names.Name(instr.Operand)
		val, ok := v.globals.Get(name)
		if !ok {
			return v.RaiseName("unknown global '" + name + "'")
		}
		return v.Getter(val, "@")

	case bytecode.OpLoadLocal:
		if v.locals == nil {
			return v.RaiseName("no locals dict in this scope")
		}
		name := v.Names.Name(instr.Operand)
		val, ok := v.locals.Get(name)
		if !ok {
			return v.RaiseName("unknown local '" + name + "'")
		}
		v.Push(val)
	case bytecode.OpStoreLocal:
		if v.locals == nil {
			return v.RaiseName("no locals dict in this scope")
		}
		name := v.Names.Name(instr.Operand)
		v.locals.Set(name, v.Pop())
	case bytecode.OpCallLocal:
		if v.locals == nil {
			return v.RaiseName("no locals dict in this scope")
		}
		name := v.Names.Name(instr.Operand)
		val, ok := v.locals.Get(name)
		if !ok {
			return v.RaiseName("unknown local '" + name + "'")
		}
		return v.Getter(val, "@")

	case bytecode.OpGetter:
		target := v.Pop()
		return v.Getter(target, v.Names.Name(instr.Operand))
	case bytecode.OpSetter:
		target := v.Pop()
		return v.Setter(target, v.Names.Name(instr.Operand))
	case bytecode.OpRenameFunc:
		top := v.Top()
		if top.Type != values.FuncType {
			return v.RaiseType("rename target is not a func")
		}
		top.Obj.(*values.Func).Name = v.Names.Name(instr.Operand)

	case bytecode.OpEq, bytecode.OpNe, bytecode.OpLt, bytecode.OpLe, bytecode.OpGt, bytecode.OpGe:
		return v.compare(instr.Op)

	default:
		return v.dispatchOperator(instr.Op)
	}
	return nil
}

// compare implements comparison-opcode dispatch (§4.3): pop other, pop
// self, compute self.cmp(other), push the boolean result.
func (v *VM) compare(op bytecode.Op) error {
	other := v.Pop()
	self := v.Pop()

	var ord values.Ordering
	var comparable bool
	var err error
	if self.Type.Cmp != nil {
		ord, comparable, err = self.Type.Cmp(v, self, other)
		if err != nil {
			return err
		}
	} else {
		comparable = false
	}
	if !comparable {
		identical := self.Type == other.Type && self.Obj == other.Obj && self.Int == other.Int && self.Str == other.Str
		switch op {
		case bytecode.OpEq:
			v.Push(values.Bool(identical))
			return nil
		case bytecode.OpNe:
			v.Push(values.Bool(!identical))
			return nil
		default:
			return v.RaiseType("values are not ordered")
		}
	}

	var result bool
	switch op {
	case bytecode.OpEq:
		result = ord == values.EQ
	case bytecode.OpNe:
		result = ord != values.EQ
	case bytecode.OpLt:
		result = ord == values.LT
	case bytecode.OpLe:
		result = ord != values.GT
	case bytecode.OpGt:
		result = ord == values.GT
	case bytecode.OpGe:
		result = ord != values.LT
	}
	v.Push(values.Bool(result))
	return nil
}

// dispatchOperator implements §4.3's operator-opcode dispatch: unary ops
// (`~`, `!`, `@`) pop a single receiver; binary ops pluck the receiver out
// from under its argument, leaving the argument on top for the getter to
// consume itself (§9 "Receiver position for binary ops").
func (v *VM) dispatchOperator(op bytecode.Op) error {
	name, ok := bytecode.GetterName(op)
	if !ok {
		return v.RaiseType(fmt.Sprintf("unknown opcode %v", op))
	}
	if op.Unary() {
		receiver := v.Pop()
		return v.Getter(receiver, name)
	}
	arg := v.Pop()
	receiver := v.Pop()
	v.Push(arg)
	return v.Getter(receiver, name)
}

// NewFromStdout is a convenience constructor writing builtin output to
// os.Stdout, for cmd/lalang's default run/repl paths.
func NewFromStdout(file string) *VM { return New(os.Stdout, file) }
