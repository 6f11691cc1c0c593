package vm

import "github.com/lalang-run/lalang/internal/values"

// installBuiltins populates v's globals with the native control-flow and
// metaprogramming primitives (§4.8, §4.9, §4.10). Each is an ordinary
// `func` Value, invoked by callers as `@name` (CALL_GLOBAL) — ordinary
// name lookup (rule 14) only loads the value, it does not call it.
//
// Argument-passing convention (not pinned by the spec beyond each
// builtin's effect; see DESIGN.md Open Question (e)): arguments are
// pushed left to right and popped top-first, i.e. in reverse.
func installBuiltins(v *VM) {
	reg := func(name string, fn func(values.Machine) error) {
		v.globals.Set(name, values.Value{Type: values.FuncType, Obj: &values.Func{
			Name: name, IsNative: true, Native: fn,
		}})
	}

	reg("if", builtinIf)
	reg("while", builtinWhile)
	reg("for", builtinFor)
	reg("range", builtinRange)
	reg("iter", builtinIter)
	reg("next", builtinNext)
	reg("error", builtinError)
	reg("class", builtinClass)
	reg("list", builtinList)
	reg("dict", builtinDict)
	reg("swap", builtinSwap)
	reg("drop", builtinDrop)
	reg("dup", builtinDup)
}

func builtinIf(m values.Machine) error {
	elseFn := m.Pop()
	thenFn := m.Pop()
	cond := m.Pop()

	b, err := values.ToBool(m, cond)
	if err != nil {
		return err
	}
	if b {
		return m.Getter(thenFn, "@")
	}
	if elseFn.IsNull() {
		return nil
	}
	return m.Getter(elseFn, "@")
}

func builtinWhile(m values.Machine) error {
	bodyFn := m.Pop()
	condFn := m.Pop()

	for {
		if err := m.Getter(condFn, "@"); err != nil {
			return err
		}
		b, err := values.ToBool(m, m.Pop())
		if err != nil {
			return err
		}
		if !b {
			return nil
		}
		if err := m.Getter(bodyFn, "@"); err != nil {
			return err
		}
	}
}

// builtinFor implements §4.9's `for(body, iterable)` exactly: repeatedly
// call __next__; on (value, true) push value and invoke body.@; on
// (false) stop.
func builtinFor(m values.Machine) error {
	bodyFn := m.Pop()
	iterable := m.Pop()

	for {
		if err := m.Getter(iterable, "__next__"); err != nil {
			return err
		}
		hasMore := m.Pop()
		ok, err := values.ToBool(m, hasMore)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		// value was pushed before the (false)/(value,true) boolean; it is
		// already on the stack for body to consume via its getter/operator.
		if err := m.Getter(bodyFn, "@"); err != nil {
			return err
		}
	}
}

// builtinRange implements `range(start, end)` (§4.9).
func builtinRange(m values.Machine) error {
	end := m.Pop()
	start := m.Pop()
	if start.Type != values.IntType || end.Type != values.IntType {
		return m.RaiseType("range: arguments must be ints")
	}
	m.Push(values.Value{Type: values.IterType, Obj: &values.Iterator{
		Kind: values.IterRange, I: start.Int, End: end.Int,
	}})
	return nil
}

func builtinIter(m values.Machine) error {
	x := m.Pop()
	return m.Getter(x, "__iter__")
}

func builtinNext(m values.Machine) error {
	it := m.Pop()
	return m.Getter(it, "__next__")
}

func builtinError(m values.Machine) error {
	msg := m.Pop()
	return m.RaiseUser(msg.Str)
}

func builtinClass(m values.Machine) error {
	name := m.Pop()
	m.Push(values.NewClass(name.Str))
	return nil
}

// builtinList pushes a fresh empty list, the receiver `.build`/`.push`
// and friends operate on (there is no list literal syntax, §4.1).
func builtinList(m values.Machine) error {
	m.Push(values.Value{Type: values.ListType, Obj: values.NewList()})
	return nil
}

// builtinDict pushes a fresh empty dict, the receiver `.build`/`.set`
// and friends operate on (there is no dict literal syntax, §4.1).
func builtinDict(m values.Machine) error {
	m.Push(values.Value{Type: values.DictType, Obj: values.NewDict()})
	return nil
}

func builtinSwap(m values.Machine) error {
	a := m.Pop()
	b := m.Pop()
	m.Push(a)
	m.Push(b)
	return nil
}

func builtinDrop(m values.Machine) error {
	m.Pop()
	return nil
}

func builtinDup(m values.Machine) error {
	v := m.Top()
	m.Push(v)
	return nil
}
