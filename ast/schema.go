package ast

import "github.com/graph-gophers/graphql-sdl/errors"

// Schema is the linked schema model. Named references inside field types stay names;
// they are looked up in these maps rather than copied, so cyclic schemas are represented
// without any depth limit.
//
// Query, when declared, is also present in Objects.
type Schema struct {
	Enums      map[string]*Enum         `json:"enums"`
	Scalars    map[string]*CustomScalar `json:"scalars,omitempty"`
	Interfaces map[string]*Composite    `json:"interfaces"`
	Objects    map[string]*Composite    `json:"objects"`
	Unions     map[string]*Union        `json:"unions"`
	Inputs     map[string]*InputObject  `json:"inputs,omitempty"`
	Query      *Composite               `json:"-"`

	// Names lists every declared type name in document order.
	Names []string `json:"-"`
}

func NewSchema() *Schema {
	return &Schema{
		Enums:      make(map[string]*Enum),
		Scalars:    make(map[string]*CustomScalar),
		Interfaces: make(map[string]*Composite),
		Objects:    make(map[string]*Composite),
		Unions:     make(map[string]*Union),
		Inputs:     make(map[string]*InputObject),
	}
}

type Enum struct {
	Name   string          `json:"-"`
	Values []string        `json:"values"`
	Loc    errors.Location `json:"-"`
}

type CustomScalar struct {
	Name string          `json:"-"`
	Loc  errors.Location `json:"-"`
}

// InputObject is an input type known by name only. Its fields are not interpreted; it may
// be used as an argument type.
type InputObject struct {
	Name string          `json:"-"`
	Body string          `json:"-"`
	Loc  errors.Location `json:"-"`
}

type Union struct {
	Name    string          `json:"-"`
	Members []string        `json:"members"`
	Loc     errors.Location `json:"-"`
}

// Composite is an interface, object or the Query type: anything with a field map.
type Composite struct {
	Name          string          `json:"-"`
	Kind          Kind            `json:"kind"`
	Interfaces    []string        `json:"interfaces,omitempty"`
	Fields        FieldList       `json:"fields"`
	PossibleTypes []string        `json:"possibleTypes,omitempty"`
	Loc           errors.Location `json:"-"`
}

type Field struct {
	Name      string          `json:"name"`
	Arguments ArgumentList    `json:"arguments,omitempty"`
	Type      *Type           `json:"type"`
	Loc       errors.Location `json:"-"`
}

type Argument struct {
	Name       string          `json:"name"`
	Type       *Type           `json:"type"`
	Default    string          `json:"default,omitempty"`
	HasDefault bool            `json:"-"`
	Loc        errors.Location `json:"-"`
}

type FieldList []*Field

func (l FieldList) Get(name string) *Field {
	for _, f := range l {
		if f.Name == name {
			return f
		}
	}
	return nil
}

func (l FieldList) Names() []string {
	names := make([]string, len(l))
	for i, f := range l {
		names[i] = f.Name
	}
	return names
}

type ArgumentList []*Argument

func (l ArgumentList) Get(name string) *Argument {
	for _, a := range l {
		if a.Name == name {
			return a
		}
	}
	return nil
}

// Lookup reports the kind of the type declared as name.
func (s *Schema) Lookup(name string) (Kind, bool) {
	if _, ok := s.Enums[name]; ok {
		return KindEnum, true
	}
	if _, ok := s.Scalars[name]; ok {
		return KindScalar, true
	}
	if _, ok := s.Interfaces[name]; ok {
		return KindInterface, true
	}
	if _, ok := s.Unions[name]; ok {
		return KindUnion, true
	}
	if o, ok := s.Objects[name]; ok {
		return o.Kind, true
	}
	if _, ok := s.Inputs[name]; ok {
		return KindInput, true
	}
	return 0, false
}

// Composite returns the interface or object type declared as name, or nil.
func (s *Schema) Composite(name string) *Composite {
	if c, ok := s.Interfaces[name]; ok {
		return c
	}
	return s.Objects[name]
}

func (s *Schema) EnumValues(name string) ([]string, bool) {
	e, ok := s.Enums[name]
	if !ok {
		return nil, false
	}
	return e.Values, true
}

// FieldMap returns the resolved fields of an interface, object or the Query type.
func (s *Schema) FieldMap(name string) (FieldList, bool) {
	c := s.Composite(name)
	if c == nil {
		return nil, false
	}
	return c.Fields, true
}

func (s *Schema) UnionMembers(name string) ([]string, bool) {
	u, ok := s.Unions[name]
	if !ok {
		return nil, false
	}
	return u.Members, true
}
