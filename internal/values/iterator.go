package values

// IterKind discriminates the variant an Iterator value holds (§3).
type IterKind int

const (
	IterRange IterKind = iota
	IterStr
	IterList
	IterDictKeys
	IterDictValues
	IterDictItems
	IterCustom
)

// Iterator is the payload behind an `iterator` Value: a discriminated
// variant over {range, str, list, dict-keys/values/items, custom}, each
// tracking a next-index `I` and exclusive-end `End` (§3).
type Iterator struct {
	Kind IterKind

	Str  string
	List *List
	Dict *Dict

	// CustomNext, when Kind is IterCustom, is called to produce the next
	// element; it mirrors the user-extensible custom iterator form.
	CustomNext func(m Machine) (Value, bool, error)

	I, End int64
}

func init() {
	IterType.Getter = iteratorGetter
}

// iteratorGetter implements `.__iter__` (identity — an iterator is its own
// iterator) and `.__next__` (§4.9: pushes (value, true) or (false)).
func iteratorGetter(m Machine, self Value, name string) error {
	it, _ := self.Obj.(*Iterator)
	switch name {
	case "__iter__":
		m.Push(self)
		return nil
	case "__next__":
		return iteratorNext(m, it)
	default:
		return m.RaiseType("iterator has no getter '" + name + "'")
	}
}

func iteratorNext(m Machine, it *Iterator) error {
	if it.Kind == IterCustom {
		v, ok, err := it.CustomNext(m)
		if err != nil {
			return err
		}
		if !ok {
			m.Push(Bool(false))
			return nil
		}
		m.Push(v)
		m.Push(Bool(true))
		return nil
	}

	if it.I >= it.End {
		m.Push(Bool(false))
		return nil
	}

	var v Value
	switch it.Kind {
	case IterRange:
		v = Int(it.I)
	case IterStr:
		v = Str(string(it.Str[it.I]))
	case IterList:
		v = it.List.Items[it.I]
	case IterDictKeys:
		v = Str(it.Dict.Entries[it.I].Name)
	case IterDictValues:
		v = it.Dict.Entries[it.I].Value
	case IterDictItems:
		e := it.Dict.Entries[it.I]
		pair := NewList()
		pair.Items = append(pair.Items, Str(e.Name), e.Value)
		v = Value{Type: ListType, Obj: pair}
	}
	it.I++
	m.Push(v)
	m.Push(Bool(true))
	return nil
}
