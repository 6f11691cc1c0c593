package values

import "golang.org/x/exp/slices"

// List is the payload behind a `list` Value: an ordered sequence of
// value handles (§3).
type List struct {
	Items []Value
}

// NewList returns an empty list.
func NewList() *List { return &List{} }

func init() {
	ListType.ToBool = func(m Machine, v Value) (bool, error) {
		return len(v.Obj.(*List).Items) > 0, nil
	}
	ListType.Cmp = func(m Machine, v, other Value) (Ordering, bool, error) {
		if other.Type != ListType {
			return EQ, false, nil
		}
		a, b := v.Obj.(*List), other.Obj.(*List)
		if a == b {
			return EQ, true, nil
		}
		return EQ, false, nil
	}
	ListType.Getter = listGetter
}

// wrapIndex applies the negative-index/out-of-range convention of §4.6.
func wrapIndex(m Machine, i, n int64) (int64, error) {
	if i < 0 {
		i += n
	}
	if i < 0 || i >= n {
		return 0, m.RaiseIndex("index out of range")
	}
	return i, nil
}

// wrapSlice applies the slice-endpoint convention of §4.6: negative
// wrapping, clamping to [0, n], and a null end meaning n.
func wrapSlice(start, end Value, n int64) (int64, int64) {
	s := start.Int
	if s < 0 {
		s += n
	}
	if s < 0 {
		s = 0
	}
	if s > n {
		s = n
	}

	e := n
	if !end.IsNull() {
		e = end.Int
		if e < 0 {
			e += n
		}
		if e < 0 {
			e = 0
		}
		if e > n {
			e = n
		}
	}
	if e < s {
		e = s
	}
	return s, e
}

func listGetter(m Machine, self Value, name string) error {
	l := self.Obj.(*List)
	switch name {
	case "len":
		m.Push(Int(int64(len(l.Items))))
		return nil
	case "__iter__":
		m.Push(Value{Type: IterType, Obj: &Iterator{Kind: IterList, List: l, End: int64(len(l.Items))}})
		return nil
	case "at", "get":
		idx := m.Pop()
		i, err := wrapIndex(m, idx.Int, int64(len(l.Items)))
		if err != nil {
			return err
		}
		m.Push(l.Items[i])
		return nil
	case "slice":
		end := m.Pop()
		start := m.Pop()
		s, e := wrapSlice(start, end, int64(len(l.Items)))
		out := NewList()
		out.Items = append(out.Items, l.Items[s:e]...)
		m.Push(Value{Type: ListType, Obj: out})
		return nil
	case "push":
		v := m.Pop()
		l.Items = append(l.Items, v)
		m.Push(self)
		return nil
	case "reverse":
		slices.Reverse(l.Items)
		m.Push(self)
		return nil
	case "sort":
		return listSort(m, l, self)
	case "build":
		return listBuild(m, l, self)
	case "unbuild":
		return listUnbuild(m, l)
	case ",", "+":
		return listConcat(m, l, self)
	default:
		return m.RaiseType("list has no getter '" + name + "'")
	}
}

func listConcat(m Machine, l *List, self Value) error {
	arg := m.Pop()
	if arg.Type != ListType {
		return m.RaiseType("list.+: operand is not a list")
	}
	out := NewList()
	out.Items = append(out.Items, l.Items...)
	out.Items = append(out.Items, arg.Obj.(*List).Items...)
	m.Push(Value{Type: ListType, Obj: out})
	return nil
}

// listBuild implements `.build` (§ SPEC_FULL supplemented feature 1): pops
// a count n, then n values, and assembles them in original push order.
func listBuild(m Machine, l *List, self Value) error {
	n := m.Pop()
	if n.Type != IntType || n.Int < 0 {
		return m.RaiseStack("list.build: count must be a non-negative int")
	}
	items := m.PopN(int(n.Int))
	out := NewList()
	out.Items = append(out.Items, items...)
	m.Push(Value{Type: ListType, Obj: out})
	return nil
}

// listUnbuild pushes a list's elements back onto the stack followed by
// its count, the inverse of `.build`.
func listUnbuild(m Machine, l *List) error {
	for _, v := range l.Items {
		m.Push(v)
	}
	m.Push(Int(int64(len(l.Items))))
	return nil
}

func listSort(m Machine, l *List, self Value) error {
	var sortErr error
	slices.SortStableFunc(l.Items, func(a, b Value) int {
		if sortErr != nil {
			return 0
		}
		if a.Type.Cmp == nil {
			sortErr = m.RaiseType("list.sort: element of type '" + a.Type.Name + "' is not comparable")
			return 0
		}
		ord, ok, err := a.Type.Cmp(m, a, b)
		if err != nil {
			sortErr = err
			return 0
		}
		if !ok {
			sortErr = m.RaiseType("list.sort: incomparable elements")
			return 0
		}
		return int(ord)
	})
	if sortErr != nil {
		return sortErr
	}
	m.Push(self)
	return nil
}
