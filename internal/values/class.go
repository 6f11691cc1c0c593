package values

import "fmt"

// ClassDescriptor is the side-channel a user-class Type carries in its
// Class field (§4.8): five dicts governing class- and instance-level
// attribute/getter/setter resolution.
type ClassDescriptor struct {
	Name string

	ClassAttrs   *Dict
	ClassGetters *Dict
	ClassSetters *Dict
	Getters      *Dict
	Setters      *Dict
}

// NewClass builds the Type descriptor for a freshly-declared user class
// (the `class(name)` builtin, §4.8). The returned Value wraps the class
// itself as a first-class type value (Type: TypeType, Obj: the new Type),
// dispatched through TypeGetter/TypeSetter; instances of the class carry
// Type: theClassType directly and are dispatched through Getter/Setter.
func NewClass(name string) Value {
	cd := &ClassDescriptor{
		Name:         name,
		ClassAttrs:   NewDict(),
		ClassGetters: NewDict(),
		ClassSetters: NewDict(),
		Getters:      NewDict(),
		Setters:      NewDict(),
	}
	t := &Type{
		Name:       name,
		Class:      cd,
		Getter:     instanceGetter,
		Setter:     instanceSetter,
		TypeGetter: classTypeGetter,
		TypeSetter: classTypeSetter,
		Print:      instancePrint,
		Cmp:        instanceCmp,
	}
	return Value{Type: TypeType, Obj: t}
}

func init() {
	TypeType.Getter = func(m Machine, self Value, name string) error {
		t := self.Obj.(*Type)
		if t.TypeGetter == nil {
			return m.RaiseType("type '" + t.Name + "' has no type-getter '" + name + "'")
		}
		return t.TypeGetter(m, self, name)
	}
	TypeType.Setter = func(m Machine, self Value, name string) error {
		t := self.Obj.(*Type)
		if t.TypeSetter == nil {
			return m.RaiseType("type '" + t.Name + "' has no type-setter '" + name + "'")
		}
		return t.TypeSetter(m, self, name)
	}
}

// classTypeGetter implements class-level GETTER dispatch (§4.8, "Class-
// level lookup"): self is the class value itself.
func classTypeGetter(m Machine, self Value, name string) error {
	t := self.Obj.(*Type)
	cd := t.Class

	switch name {
	case "@":
		return instantiate(m, t, cd)
	case "copy":
		return classCopy(m, self, t, cd)
	case "__dict__":
		m.Push(Value{Type: DictType, Obj: cd.ClassAttrs})
		return nil
	case "__getters__":
		m.Push(Value{Type: DictType, Obj: cd.Getters})
		return nil
	case "__setters__":
		m.Push(Value{Type: DictType, Obj: cd.Setters})
		return nil
	case "__class_getters__":
		m.Push(Value{Type: DictType, Obj: cd.ClassGetters})
		return nil
	case "__class_setters__":
		m.Push(Value{Type: DictType, Obj: cd.ClassSetters})
		return nil
	case "set_getter":
		return installFunc(m, cd.Getters)
	case "set_setter":
		return installFunc(m, cd.Setters)
	case "set_class_getter":
		return installFunc(m, cd.ClassGetters)
	case "set_class_setter":
		return installFunc(m, cd.ClassSetters)
	}

	if v, ok := cd.ClassAttrs.Get(name); ok {
		m.Push(v)
		return nil
	}
	if fv, ok := cd.ClassGetters.Get(name); ok {
		m.Push(self)
		return fv.Obj.(*Func).Invoke(m)
	}
	return m.RaiseName("class '" + t.Name + "' has no attribute '" + name + "'")
}

// classTypeSetter implements class-level SETTER dispatch (§4.8).
func classTypeSetter(m Machine, self Value, name string) error {
	t := self.Obj.(*Type)
	cd := t.Class
	if fv, ok := cd.ClassSetters.Get(name); ok {
		m.Push(self)
		return fv.Obj.(*Func).Invoke(m)
	}
	v := m.Pop()
	cd.ClassAttrs.Set(name, v)
	return nil
}

func installFunc(m Machine, dict *Dict) error {
	v := m.Pop()
	f, ok := v.Obj.(*Func)
	if !ok || v.Type != FuncType {
		return m.RaiseType("set_getter/set_setter: value is not a func")
	}
	dict.Set(f.Name, v)
	return nil
}

func classCopy(m Machine, self Value, t *Type, cd *ClassDescriptor) error {
	clone := &ClassDescriptor{
		Name:         cd.Name,
		ClassAttrs:   cd.ClassAttrs.Copy(),
		ClassGetters: cd.ClassGetters.Copy(),
		ClassSetters: cd.ClassSetters.Copy(),
		Getters:      cd.Getters.Copy(),
		Setters:      cd.Setters.Copy(),
	}
	nt := &Type{
		Name: t.Name, Class: clone,
		Getter: instanceGetter, Setter: instanceSetter,
		TypeGetter: classTypeGetter, TypeSetter: classTypeSetter,
		Print: instancePrint, Cmp: instanceCmp,
	}
	m.Push(Value{Type: TypeType, Obj: nt})
	return nil
}

// instantiate implements `ClassValue @` (§4.8 Construction).
func instantiate(m Machine, t *Type, cd *ClassDescriptor) error {
	inst := Value{Type: t, Obj: NewDict()}
	m.Push(inst)
	if fv, ok := cd.Getters.Get("__init__"); ok {
		return fv.Obj.(*Func).Invoke(m)
	}
	return nil
}

// instanceGetter implements instance-level GETTER dispatch (§4.8,
// "Instance-level lookup"): self is a class instance.
func instanceGetter(m Machine, self Value, name string) error {
	d := self.Obj.(*Dict)
	cd := self.Type.Class

	if name == "__dict__" {
		m.Push(Value{Type: DictType, Obj: d})
		return nil
	}
	if v, ok := d.Get(name); ok {
		m.Push(v)
		return nil
	}
	if fv, ok := cd.Getters.Get(name); ok {
		m.Push(self)
		return fv.Obj.(*Func).Invoke(m)
	}
	if v, ok := cd.ClassAttrs.Get(name); ok {
		m.Push(v)
		return nil
	}
	return m.RaiseName("'" + self.Type.Name + "' object has no attribute '" + name + "'")
}

// instanceSetter implements instance-level SETTER dispatch (§4.8).
func instanceSetter(m Machine, self Value, name string) error {
	d := self.Obj.(*Dict)
	cd := self.Type.Class

	if fv, ok := cd.Setters.Get(name); ok {
		m.Push(self)
		return fv.Obj.(*Func).Invoke(m)
	}
	v := m.Pop()
	d.Set(name, v)
	return nil
}

func instancePrint(m Machine, self Value) (string, error) {
	cd := self.Type.Class
	if fv, ok := cd.Getters.Get("__print__"); ok {
		m.Push(self)
		if err := fv.Obj.(*Func).Invoke(m); err != nil {
			return "", err
		}
		out := m.Pop()
		return out.Str, nil
	}
	return fmt.Sprintf("<'%s' object at %p>", self.Type.Name, self.Obj), nil
}

func instanceCmp(m Machine, self, other Value) (Ordering, bool, error) {
	cd := self.Type.Class
	fv, ok := cd.Getters.Get("__cmp__")
	if !ok {
		return EQ, self.Obj == other.Obj, nil
	}
	m.Push(self)
	m.Push(other)
	if err := fv.Obj.(*Func).Invoke(m); err != nil {
		return EQ, false, err
	}
	result := m.Pop()
	if result.IsNull() {
		return EQ, false, nil
	}
	switch {
	case result.Int < 0:
		return LT, true, nil
	case result.Int > 0:
		return GT, true, nil
	default:
		return EQ, true, nil
	}
}
