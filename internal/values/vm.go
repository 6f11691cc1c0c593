package values

// Evaluator is implemented by *vm.VM; it is the extra surface (beyond
// Machine) needed to support a first-class `vm` value (SPEC_FULL
// supplemented feature 4): compiling and evaluating source text against a
// specific VM instance, and reading its globals. Kept separate from
// Machine so that ordinary getters (int/str/list/...) don't need to know
// about compilation at all.
type Evaluator interface {
	Machine
	EvalSource(text string) error
	GlobalsDict() *Dict
}

func init() {
	VMType.Getter = vmGetter
}

// vmGetter implements the `vm` type's getters (`.eval`, `.globals`): a VM
// value is a handle to a live *vm.VM, not an owning copy, so a VM value
// referencing "its own" VM (§9 "Cyclic references") is just two Values
// sharing the same Evaluator pointer rather than a Go-level pointer cycle.
func vmGetter(m Machine, self Value, name string) error {
	ev, ok := self.Obj.(Evaluator)
	if !ok {
		return m.RaiseType("vm value is not bound to an evaluator")
	}
	switch name {
	case "eval":
		text := m.Pop()
		if text.Type != StrType {
			return m.RaiseType("vm.eval: argument must be a str")
		}
		return ev.EvalSource(text.Str)
	case "globals":
		m.Push(Value{Type: DictType, Obj: ev.GlobalsDict()})
		return nil
	default:
		return m.RaiseType("vm has no getter '" + name + "'")
	}
}
