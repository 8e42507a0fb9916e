package cfg

import "fmt"

// Type represents the type of a parsed variable.
type Type int

const (
	TypeNone Type = iota // Returned for missing variables, never stored in the tree.
	TypeInt
	TypeFloat
	TypeBool
	TypeString
	TypeArray  // Homogeneous positional container.
	TypeList   // Heterogeneous positional container.
	TypeStruct // Named members, pairwise-distinct names.
)

// String returns the name of the type.
func (t Type) String() string {
	switch t {
	case TypeNone:
		return "none"
	case TypeInt:
		return "int"
	case TypeFloat:
		return "float"
	case TypeBool:
		return "bool"
	case TypeString:
		return "string"
	case TypeArray:
		return "array"
	case TypeList:
		return "list"
	case TypeStruct:
		return "struct"
	default:
		return fmt.Sprintf("unknown(%d)", t)
	}
}

// isContainer reports whether the type owns children.
func (t Type) isContainer() bool {
	return t == TypeArray || t == TypeList || t == TypeStruct
}

// Variable is one node of the parsed tree: the document root, a container
// (array, list, struct) or a scalar leaf. Scalar leaves keep their literal
// source text unconverted; the typed accessors reparse it per call so that a
// conversion failure is local to the accessor and not to the load.
//
// Nodes are individually heap allocated, so child and parent references stay
// stable as containers grow. The parent reference is navigational only and
// never used for ownership.
type Variable struct {
	typ    Type
	name   string // Set for struct members and top-level declarations only.
	raw    string // Literal text, scalar leaves only.
	kids   []*Variable
	parent *Variable
}

// Type returns the variable's type.
func (v *Variable) Type() Type {
	if v == nil {
		return TypeNone
	}
	return v.typ
}

// Name returns the variable's name, or "" for unnamed array/list elements
// and the document root.
func (v *Variable) Name() string {
	if v == nil {
		return ""
	}
	return v.name
}

// Raw returns the unconverted literal text of a scalar leaf, or "" for
// containers.
func (v *Variable) Raw() string {
	if v == nil {
		return ""
	}
	return v.raw
}

// Len returns the number of children in a container context.
func (v *Variable) Len() int {
	if v == nil {
		return 0
	}
	return len(v.kids)
}

// find returns the index of the named child, or -1. Lookups are a linear
// scan; config documents are small and order must be preserved anyway.
func (v *Variable) find(name string) int {
	for i, kid := range v.kids {
		if kid.name == name {
			return i
		}
	}
	return -1
}

// append adds a child node, wiring the parent back-reference.
func (v *Variable) append(kid *Variable) {
	kid.parent = v
	v.kids = append(v.kids, kid)
}

// at returns the i-th child, or nil when out of bounds.
func (v *Variable) at(i int) *Variable {
	if v == nil || i < 0 || i >= len(v.kids) {
		return nil
	}
	return v.kids[i]
}
