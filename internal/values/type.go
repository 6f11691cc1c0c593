package values

// Type is the vtable-like descriptor carried by every Value (§3). Hooks
// are nil when a type doesn't support that operation; callers check for
// nil and raise a TypeError rather than calling through a nil pointer,
// mirroring `object_getter`'s "no such hook" fallback in the reference
// implementation.
type Type struct {
	Name string

	ToBool func(m Machine, v Value) (bool, error)
	ToInt  func(m Machine, v Value) (int64, error)
	ToStr  func(m Machine, v Value) (string, error)

	// Cmp returns the three-way order of v against other, and whether the
	// two are comparable at all (false means "EQ only by identity", §4.3).
	Cmp func(m Machine, v, other Value) (Ordering, bool, error)

	Print func(m Machine, v Value) (string, error)

	// Getter/Setter handle `.name`/`=.name` when v is an ordinary value.
	Getter func(m Machine, v Value, name string) error
	Setter func(m Machine, v Value, name string) error

	// TypeGetter/TypeSetter handle `.name`/`=.name` when v IS a type value
	// itself (so a class value answers `Box @` or `Box .set_getter`, §3).
	// Only user-class types (the `class` builtin's product) set them; the
	// built-in types leave them nil.
	TypeGetter func(m Machine, v Value, name string) error
	TypeSetter func(m Machine, v Value, name string) error

	// Class is non-nil exactly for user-defined class types (§4.8).
	Class *ClassDescriptor
}

// Built-in type descriptors. Getter/Setter bodies live in the per-type
// files (int.go, str.go, list.go, ...) to keep this file a pure registry.
var (
	NullType = &Type{Name: "null"}
	BoolType = &Type{Name: "bool"}
	IntType  = &Type{Name: "int"}
	StrType  = &Type{Name: "str"}
	ListType = &Type{Name: "list"}
	DictType = &Type{Name: "dict"}
	IterType = &Type{Name: "iterator"}
	FuncType = &Type{Name: "func"}
	TypeType = &Type{Name: "type"}
	VMType   = &Type{Name: "vm"}
)

func init() {
	NullType.ToBool = func(m Machine, v Value) (bool, error) { return false, nil }
	NullType.Print = func(m Machine, v Value) (string, error) { return "null", nil }

	BoolType.ToBool = func(m Machine, v Value) (bool, error) { return v.Int != 0, nil }
	BoolType.Print = func(m Machine, v Value) (string, error) {
		if v.Int != 0 {
			return "true", nil
		}
		return "false", nil
	}
	BoolType.Cmp = func(m Machine, v, other Value) (Ordering, bool, error) {
		if other.Type != BoolType {
			return EQ, false, nil
		}
		if v.Int == other.Int {
			return EQ, true, nil
		}
		if v.Int < other.Int {
			return LT, true, nil
		}
		return GT, true, nil
	}
	BoolType.Getter = boolGetter
}
