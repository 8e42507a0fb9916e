package cfg

import "strconv"

// Typed accessors over a variable context. Two families exist: the plain
// accessors swallow every failure into a zero value, which keeps call sites
// terse when defaults are acceptable; the Lookup accessors report an explicit
// *Error whose kind distinguishes a missing variable, a wrong type and a
// literal that does not parse as the requested type.
//
// All accessors are read-only and safe to call on a nil context, so lookups
// can be chained: cfg.Global().Struct("server").Int("port").

// lookup finds the named child and checks it against the wanted type.
func (v *Variable) lookup(name string, want Type) (*Variable, *Error) {
	i := -1
	if v != nil {
		i = v.find(name)
	}
	if i < 0 {
		if v != nil && v.name != "" {
			return nil, errorf(ErrVariableNotFound, "variable `%s` not found in `%s`", name, v.name)
		}
		return nil, errorf(ErrVariableNotFound, "variable `%s` not found", name)
	}
	kid := v.kids[i]
	if kid.typ != want {
		if v.name != "" {
			return nil, errorf(ErrVariableWrongType, "variable `%s` in `%s` is not %s", name, v.name, want)
		}
		return nil, errorf(ErrVariableWrongType, "variable `%s` is not %s", name, want)
	}
	return kid, nil
}

// LookupInt returns the named int variable.
func (v *Variable) LookupInt(name string) (int64, error) {
	kid, err := v.lookup(name, TypeInt)
	if err != nil {
		return 0, err
	}
	n, perr := strconv.ParseInt(kid.raw, 10, 64)
	if perr != nil {
		return 0, errorf(ErrVariableParse, "failed to parse variable `%s` as int", name)
	}
	return n, nil
}

// LookupFloat returns the named float variable.
func (v *Variable) LookupFloat(name string) (float64, error) {
	kid, err := v.lookup(name, TypeFloat)
	if err != nil {
		return 0, err
	}
	f, perr := strconv.ParseFloat(kid.raw, 64)
	if perr != nil {
		return 0, errorf(ErrVariableParse, "failed to parse variable `%s` as float", name)
	}
	return f, nil
}

// LookupBool returns the named bool variable.
func (v *Variable) LookupBool(name string) (bool, error) {
	kid, err := v.lookup(name, TypeBool)
	if err != nil {
		return false, err
	}
	return kid.raw == "true", nil
}

// LookupString returns the named string variable.
func (v *Variable) LookupString(name string) (string, error) {
	kid, err := v.lookup(name, TypeString)
	if err != nil {
		return "", err
	}
	return kid.raw, nil
}

// LookupArray returns the named array context. The returned variable is a
// view into the document's tree, not a copy.
func (v *Variable) LookupArray(name string) (*Variable, error) {
	kid, err := v.lookup(name, TypeArray)
	if err != nil {
		return nil, err
	}
	return kid, nil
}

// LookupList returns the named list context.
func (v *Variable) LookupList(name string) (*Variable, error) {
	kid, err := v.lookup(name, TypeList)
	if err != nil {
		return nil, err
	}
	return kid, nil
}

// LookupStruct returns the named struct context.
func (v *Variable) LookupStruct(name string) (*Variable, error) {
	kid, err := v.lookup(name, TypeStruct)
	if err != nil {
		return nil, err
	}
	return kid, nil
}

// Int returns the named int variable, or 0 on any failure.
func (v *Variable) Int(name string) int64 {
	n, _ := v.LookupInt(name)
	return n
}

// Float returns the named float variable, or 0 on any failure.
func (v *Variable) Float(name string) float64 {
	f, _ := v.LookupFloat(name)
	return f
}

// Bool returns the named bool variable, or false on any failure.
func (v *Variable) Bool(name string) bool {
	b, _ := v.LookupBool(name)
	return b
}

// String returns the named string variable, or "" on any failure.
func (v *Variable) String(name string) string {
	s, _ := v.LookupString(name)
	return s
}

// Array returns the named array context, or nil on any failure.
func (v *Variable) Array(name string) *Variable {
	kid, _ := v.lookup(name, TypeArray)
	return kid
}

// List returns the named list context, or nil on any failure.
func (v *Variable) List(name string) *Variable {
	kid, _ := v.lookup(name, TypeList)
	return kid
}

// Struct returns the named struct context, or nil on any failure.
func (v *Variable) Struct(name string) *Variable {
	kid, _ := v.lookup(name, TypeStruct)
	return kid
}

// typedAt returns the i-th child if it has the wanted type.
func (v *Variable) typedAt(i int, want Type) *Variable {
	kid := v.at(i)
	if kid == nil || kid.typ != want {
		return nil
	}
	return kid
}

// IntAt returns the i-th element as an int, or 0 on any failure.
func (v *Variable) IntAt(i int) int64 {
	kid := v.typedAt(i, TypeInt)
	if kid == nil {
		return 0
	}
	n, err := strconv.ParseInt(kid.raw, 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// FloatAt returns the i-th element as a float, or 0 on any failure.
func (v *Variable) FloatAt(i int) float64 {
	kid := v.typedAt(i, TypeFloat)
	if kid == nil {
		return 0
	}
	f, err := strconv.ParseFloat(kid.raw, 64)
	if err != nil {
		return 0
	}
	return f
}

// BoolAt returns the i-th element as a bool, or false on any failure.
func (v *Variable) BoolAt(i int) bool {
	kid := v.typedAt(i, TypeBool)
	return kid != nil && kid.raw == "true"
}

// StringAt returns the i-th element as a string, or "" on any failure.
func (v *Variable) StringAt(i int) string {
	kid := v.typedAt(i, TypeString)
	if kid == nil {
		return ""
	}
	return kid.raw
}

// ArrayAt returns the i-th element as an array context, or nil.
func (v *Variable) ArrayAt(i int) *Variable {
	return v.typedAt(i, TypeArray)
}

// ListAt returns the i-th element as a list context, or nil.
func (v *Variable) ListAt(i int) *Variable {
	return v.typedAt(i, TypeList)
}

// StructAt returns the i-th element as a struct context, or nil.
func (v *Variable) StructAt(i int) *Variable {
	return v.typedAt(i, TypeStruct)
}

// TypeOf returns the type of the named variable, or TypeNone if it does not
// exist.
func (v *Variable) TypeOf(name string) Type {
	if v == nil {
		return TypeNone
	}
	i := v.find(name)
	if i < 0 {
		return TypeNone
	}
	return v.kids[i].typ
}

// TypeAt returns the type of the i-th element, or TypeNone when out of
// bounds.
func (v *Variable) TypeAt(i int) Type {
	return v.at(i).Type()
}

// NameAt returns the name of the i-th element, or "" for unnamed elements
// and out-of-bounds indexes.
func (v *Variable) NameAt(i int) string {
	return v.at(i).Name()
}
