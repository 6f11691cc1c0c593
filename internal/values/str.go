package values

func init() {
	StrType.ToStr = func(m Machine, v Value) (string, error) { return v.Str, nil }
	StrType.Print = func(m Machine, v Value) (string, error) { return v.Str, nil }
	StrType.Cmp = func(m Machine, v, other Value) (Ordering, bool, error) {
		if other.Type != StrType {
			return EQ, false, nil
		}
		switch {
		case v.Str < other.Str:
			return LT, true, nil
		case v.Str > other.Str:
			return GT, true, nil
		default:
			return EQ, true, nil
		}
	}
	StrType.Getter = strGetter
}

func strGetter(m Machine, self Value, name string) error {
	s := self.Str
	switch name {
	case "len":
		m.Push(Int(int64(len(s))))
		return nil
	case "write":
		m.Stdout().WriteString(s)
		m.Push(self)
		return nil
	case "writeline":
		m.Stdout().WriteString(s)
		m.Stdout().WriteString("\n")
		m.Push(self)
		return nil
	case "__iter__":
		m.Push(Value{Type: IterType, Obj: &Iterator{Kind: IterStr, Str: s, End: int64(len(s))}})
		return nil
	case "get":
		idx := m.Pop()
		i, err := wrapIndex(m, idx.Int, int64(len(s)))
		if err != nil {
			return err
		}
		m.Push(Str(string(s[i])))
		return nil
	case "slice":
		end := m.Pop()
		start := m.Pop()
		st, en := wrapSlice(start, end, int64(len(s)))
		m.Push(Str(s[st:en]))
		return nil
	case "has":
		c := m.Pop()
		m.Push(Bool(indexByte(s, c.Str) >= 0))
		return nil
	case "replace":
		c2 := m.Pop()
		c1 := m.Pop()
		m.Push(Str(replaceAll(s, c1.Str, c2.Str)))
		return nil
	case "+":
		arg := m.Pop()
		if arg.Type != StrType {
			return m.RaiseType("str.+: operand is not a str")
		}
		m.Push(Str(s + arg.Str))
		return nil
	default:
		return m.RaiseType("str has no getter '" + name + "'")
	}
}

func indexByte(s, sub string) int {
	if len(sub) != 1 {
		return -1
	}
	for i := 0; i < len(s); i++ {
		if s[i] == sub[0] {
			return i
		}
	}
	return -1
}

func replaceAll(s, from, to string) string {
	if len(from) != 1 || len(to) != 1 {
		return s
	}
	b := []byte(s)
	for i := range b {
		if b[i] == from[0] {
			b[i] = to[0]
		}
	}
	return string(b)
}
