package values

// boolGetter implements `!`, `&`, `|`, `^` on bool receivers (§4.5): each
// pops one argument, coerces it via ToBool, and pushes the logical result.
// `!` is unary and ignores the stack's argument slot entirely.
func boolGetter(m Machine, self Value, name string) error {
	b := self.Int != 0
	switch name {
	case "!":
		m.Push(Bool(!b))
		return nil
	case "&", "|", "^":
		arg := m.Pop()
		ab, err := ToBool(m, arg)
		if err != nil {
			return err
		}
		var result bool
		switch name {
		case "&":
			result = b && ab
		case "|":
			result = b || ab
		case "^":
			result = b != ab
		}
		m.Push(Bool(result))
		return nil
	default:
		return m.RaiseType("bool has no getter '" + name + "'")
	}
}

// ToBool coerces v to a Go bool via its type's ToBool hook, raising a
// TypeError if the type has none.
func ToBool(m Machine, v Value) (bool, error) {
	if v.Type.ToBool == nil {
		return false, m.RaiseType("value of type '" + v.Type.Name + "' has no bool coercion")
	}
	return v.Type.ToBool(m, v)
}
