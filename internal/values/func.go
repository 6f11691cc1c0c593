package values

import "github.com/lalang-run/lalang/internal/bytecode"

// Func is the payload behind a `func` Value (§4.7). It has four call
// shapes depending on IsNative and whether BoundStack/BoundLocals are set:
// native-unbound, native-with-bound-stack, bytecode-unbound, and
// bytecode-with-bound-stack-and-locals.
type Func struct {
	Name string

	IsNative bool
	Native   func(m Machine) error

	Code *bytecode.Code

	BoundStack  []Value
	BoundLocals *Dict
}

func init() {
	FuncType.Getter = funcGetter
}

// Invoke runs f per the four shapes of §4.7: pushing any bound stack
// prefix first, then either calling the native function or reentering
// Eval on the bytecode, using a *copy* of bound locals so mutations
// inside the call do not leak back into the function value.
func (f *Func) Invoke(m Machine) error {
	for _, v := range f.BoundStack {
		m.Push(v)
	}
	if f.IsNative {
		return f.Native(m)
	}

	var locals *Dict
	switch {
	case f.BoundLocals != nil:
		locals = f.BoundLocals.Copy()
	case f.Code.IsFunc:
		locals = NewDict()
	default:
		locals = nil
	}
	return m.EvalCode(f.Code, locals)
}

func funcGetter(m Machine, self Value, name string) error {
	f := self.Obj.(*Func)
	switch name {
	case "@":
		return f.Invoke(m)
	case "name":
		m.Push(Str(f.Name))
		return nil
	case "copy":
		cp := &Func{Name: f.Name, IsNative: f.IsNative, Native: f.Native, Code: f.Code}
		cp.BoundStack = append(cp.BoundStack, f.BoundStack...)
		if f.BoundLocals != nil {
			cp.BoundLocals = f.BoundLocals.Copy()
		}
		m.Push(Value{Type: FuncType, Obj: cp})
		return nil
	case "stack":
		l := NewList()
		l.Items = append(l.Items, f.BoundStack...)
		m.Push(Value{Type: ListType, Obj: l})
		return nil
	case "locals":
		if f.BoundLocals == nil {
			m.Push(Null)
			return nil
		}
		m.Push(Value{Type: DictType, Obj: f.BoundLocals})
		return nil
	case "push_stack":
		v := m.Pop()
		f.BoundStack = append(f.BoundStack, v)
		m.Push(self)
		return nil
	case "set_local":
		v := m.Pop()
		key := m.Pop()
		if f.BoundLocals == nil {
			f.BoundLocals = NewDict()
		}
		f.BoundLocals.Set(key.Str, v)
		m.Push(self)
		return nil
	case "to_dict":
		locals := NewDict()
		if f.BoundLocals != nil {
			locals = f.BoundLocals.Copy()
		}
		if err := m.EvalCode(f.Code, locals); err != nil {
			return err
		}
		m.Push(Value{Type: DictType, Obj: locals})
		return nil
	case "print_code":
		m.Push(self)
		return nil
	default:
		return m.RaiseType("func has no getter '" + name + "'")
	}
}

func init() {
	FuncType.Setter = funcSetter
}

func funcSetter(m Machine, self Value, name string) error {
	f := self.Obj.(*Func)
	v := m.Pop()
	switch name {
	case "name":
		f.Name = v.Str
	case "stack":
		if v.IsNull() {
			f.BoundStack = nil
			return nil
		}
		l, ok := v.Obj.(*List)
		if !ok {
			return m.RaiseType("func.stack setter requires a list or null")
		}
		f.BoundStack = append([]Value(nil), l.Items...)
	case "locals":
		if v.IsNull() {
			f.BoundLocals = nil
			return nil
		}
		d, ok := v.Obj.(*Dict)
		if !ok {
			return m.RaiseType("func.locals setter requires a dict or null")
		}
		f.BoundLocals = d
	default:
		return m.RaiseType("func has no setter '" + name + "'")
	}
	return nil
}
