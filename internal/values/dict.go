package values

// Dict is the payload behind a `dict` Value: an insertion-ordered mapping
// from name to value, implemented as a linear array of entries — name
// lookup is deliberately O(n), per §3 ("callers rely on small dicts").
// Locals dicts, globals, instance attribute dicts, and class-descriptor
// dicts (§4.8) are all backed by this same type.
type Dict struct {
	Entries []DictEntry
}

// DictEntry is one (name, value) pair in insertion order.
type DictEntry struct {
	Name  string
	Value Value
}

// NewDict returns an empty dict.
func NewDict() *Dict { return &Dict{} }

// Get returns the value stored under name and whether it was present.
func (d *Dict) Get(name string) (Value, bool) {
	for i := range d.Entries {
		if d.Entries[i].Name == name {
			return d.Entries[i].Value, true
		}
	}
	return Value{}, false
}

// Set stores value under name, overwriting an existing entry in place
// (preserving its original insertion position) or appending a new one.
func (d *Dict) Set(name string, value Value) {
	for i := range d.Entries {
		if d.Entries[i].Name == name {
			d.Entries[i].Value = value
			return
		}
	}
	d.Entries = append(d.Entries, DictEntry{Name: name, Value: value})
}

// Delete removes the entry for name, if present.
func (d *Dict) Delete(name string) {
	for i := range d.Entries {
		if d.Entries[i].Name == name {
			d.Entries = append(d.Entries[:i], d.Entries[i+1:]...)
			return
		}
	}
}

// Copy returns a shallow copy of d — a fresh entries array with the same
// (name, value) pairs, used when a function call must not mutate a bound
// locals dict (§4.7 shape 4).
func (d *Dict) Copy() *Dict {
	out := &Dict{Entries: make([]DictEntry, len(d.Entries))}
	copy(out.Entries, d.Entries)
	return out
}

func init() {
	DictType.ToBool = func(m Machine, v Value) (bool, error) {
		return len(v.Obj.(*Dict).Entries) > 0, nil
	}
	DictType.Getter = dictGetter
}

func dictGetter(m Machine, self Value, name string) error {
	d := self.Obj.(*Dict)
	switch name {
	case "len":
		m.Push(Int(int64(len(d.Entries))))
		return nil
	case "__iter__":
		m.Push(Value{Type: IterType, Obj: &Iterator{Kind: IterDictItems, Dict: d, End: int64(len(d.Entries))}})
		return nil
	case "keys":
		m.Push(Value{Type: IterType, Obj: &Iterator{Kind: IterDictKeys, Dict: d, End: int64(len(d.Entries))}})
		return nil
	case "values":
		m.Push(Value{Type: IterType, Obj: &Iterator{Kind: IterDictValues, Dict: d, End: int64(len(d.Entries))}})
		return nil
	case "get":
		key := m.Pop()
		v, ok := d.Get(key.Str)
		if !ok {
			return m.RaiseName("dict.get: no such key '" + key.Str + "'")
		}
		m.Push(v)
		return nil
	case "has":
		key := m.Pop()
		_, ok := d.Get(key.Str)
		m.Push(Bool(ok))
		return nil
	case "set":
		v := m.Pop()
		key := m.Pop()
		d.Set(key.Str, v)
		m.Push(self)
		return nil
	case "build":
		return dictBuild(m, d, self)
	case "unbuild":
		return dictUnbuild(m, d)
	default:
		return m.RaiseType("dict has no getter '" + name + "'")
	}
}

// dictBuild implements `.build` (SPEC_FULL supplemented feature 1): pops a
// count n, then n (key, value) pairs pushed as `k1 v1 k2 v2 ...`, and
// assembles them into a dict in that insertion order.
func dictBuild(m Machine, d *Dict, self Value) error {
	n := m.Pop()
	if n.Type != IntType || n.Int < 0 {
		return m.RaiseStack("dict.build: count must be a non-negative int")
	}
	pairs := m.PopN(int(n.Int) * 2)
	out := NewDict()
	for i := 0; i < len(pairs); i += 2 {
		out.Set(pairs[i].Str, pairs[i+1])
	}
	m.Push(Value{Type: DictType, Obj: out})
	return nil
}

// dictUnbuild pushes a dict's (key, value) pairs in insertion order,
// followed by its count — the inverse of `.build`.
func dictUnbuild(m Machine, d *Dict) error {
	for _, e := range d.Entries {
		m.Push(Str(e.Name))
		m.Push(e.Value)
	}
	m.Push(Int(int64(len(d.Entries))))
	return nil
}
