package values

func init() {
	IntType.ToBool = func(m Machine, v Value) (bool, error) { return v.Int != 0, nil }
	IntType.ToInt = func(m Machine, v Value) (int64, error) { return v.Int, nil }
	IntType.ToStr = func(m Machine, v Value) (string, error) { return formatInt(v.Int), nil }
	IntType.Print = func(m Machine, v Value) (string, error) { return formatInt(v.Int), nil }
	IntType.Cmp = func(m Machine, v, other Value) (Ordering, bool, error) {
		if other.Type != IntType {
			return EQ, false, nil
		}
		switch {
		case v.Int < other.Int:
			return LT, true, nil
		case v.Int > other.Int:
			return GT, true, nil
		default:
			return EQ, true, nil
		}
	}
	IntType.Getter = intGetter
}

func formatInt(n int64) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	u := n
	if neg {
		u = -u
	}
	var buf [24]byte
	i := len(buf)
	for u > 0 {
		i--
		buf[i] = byte('0' + u%10)
		u /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

// floorDiv/floorMod implement C's truncating (toward-zero) division and
// remainder, per §8 invariant 5 ("floor-division as in C" — the spec's own
// wording, meaning Go's native `/`/`%` semantics, which already truncate
// toward zero like C's do).
func floorDiv(a, b int64) int64 { return a / b }
func floorMod(a, b int64) int64 { return a % b }

// intGetter implements the arithmetic/bitwise operator table for int
// receivers (§4.3, §4.5): `~ + - * / % & | ^`. Each binary op pops exactly
// one argument (the receiver itself was already plucked out from under it
// by the VM's operator dispatch, per §4.3/§9 "receiver position").
func intGetter(m Machine, self Value, name string) error {
	switch name {
	case "~":
		m.Push(Int(-self.Int))
		return nil
	case "times":
		m.Push(rangeIterator(0, self.Int))
		return nil
	}

	arg := m.Pop()
	if arg.Type != IntType {
		return m.RaiseType("int." + name + ": operand is not an int")
	}
	b := arg.Int
	a := self.Int
	switch name {
	case "+":
		m.Push(Int(a + b))
	case "-":
		m.Push(Int(a - b))
	case "*":
		m.Push(Int(a * b))
	case "/":
		if b == 0 {
			return m.RaiseType("int./: division by zero")
		}
		m.Push(Int(floorDiv(a, b)))
	case "%":
		if b == 0 {
			return m.RaiseType("int.%: division by zero")
		}
		m.Push(Int(floorMod(a, b)))
	case "&":
		m.Push(Int(a & b))
	case "|":
		m.Push(Int(a | b))
	case "^":
		m.Push(Int(a ^ b))
	default:
		return m.RaiseType("int has no getter '" + name + "'")
	}
	return nil
}

// rangeIterator builds the iterator Value for `range(start, end)`/`.times`
// (§4.9): a discriminated-variant iterator state over [start, end).
func rangeIterator(start, end int64) Value {
	return Value{Type: IterType, Obj: &Iterator{Kind: IterRange, I: start, End: end}}
}
