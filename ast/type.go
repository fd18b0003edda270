package ast

// Scalar is one of the five built-in leaf types.
type Scalar int

const (
	Int Scalar = iota + 1
	Float
	String
	Boolean
	ID
)

var scalarNames = map[Scalar]string{
	Int:     "Int",
	Float:   "Float",
	String:  "String",
	Boolean: "Boolean",
	ID:      "ID",
}

func (s Scalar) String() string {
	return scalarNames[s]
}

// LookupScalar reports whether name textually matches a built-in scalar.
func LookupScalar(name string) (Scalar, bool) {
	for s, n := range scalarNames {
		if n == name {
			return s, true
		}
	}
	return 0, false
}

// TypeKind discriminates the three shapes a type descriptor can take.
type TypeKind int

const (
	TypeScalar TypeKind = iota + 1
	TypeNamed
	TypeList
)

// Type is a resolved type expression. Nullability is tracked on every level: for
// `[Human!]` the list is nullable and its element is not.
//
// A TypeNamed descriptor only carries the referenced name. What the name points at
// (enum, interface, union, object or custom scalar) is looked up in the Schema.
type Type struct {
	Kind     TypeKind
	Nullable bool
	Scalar   Scalar
	Name     string
	OfType   *Type
}

func ScalarOf(s Scalar, nullable bool) *Type {
	return &Type{Kind: TypeScalar, Nullable: nullable, Scalar: s, Name: s.String()}
}

func NamedRef(name string, nullable bool) *Type {
	return &Type{Kind: TypeNamed, Nullable: nullable, Name: name}
}

func ListOf(ofType *Type, nullable bool) *Type {
	return &Type{Kind: TypeList, Nullable: nullable, OfType: ofType}
}

// String renders the descriptor in SDL notation, e.g. `[Episode!]!`.
func (t *Type) String() string {
	if t == nil {
		return ""
	}
	var s string
	if t.Kind == TypeList {
		s = "[" + t.OfType.String() + "]"
	} else {
		s = t.Name
	}
	if !t.Nullable {
		s += "!"
	}
	return s
}

func (t *Type) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// Leaf unwraps list levels until the scalar or named element type is reached.
func (t *Type) Leaf() *Type {
	for t != nil && t.Kind == TypeList {
		t = t.OfType
	}
	return t
}

// Equal reports whether t and o describe the same type, including nullability at
// every nesting level.
func (t *Type) Equal(o *Type) bool {
	if t == nil || o == nil {
		return t == o
	}
	if t.Kind != o.Kind || t.Nullable != o.Nullable || t.Name != o.Name || t.Scalar != o.Scalar {
		return false
	}
	return t.OfType.Equal(o.OfType)
}

func (t *Type) Clone() *Type {
	if t == nil {
		return nil
	}
	c := *t
	c.OfType = t.OfType.Clone()
	return &c
}
