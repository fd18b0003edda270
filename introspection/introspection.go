package introspection

import (
	"sort"

	"github.com/graph-gophers/graphql-sdl/ast"
)

var builtinScalars = []ast.Scalar{ast.Boolean, ast.Float, ast.ID, ast.Int, ast.String}

type Schema struct {
	schema *ast.Schema
}

// WrapSchema is only used internally.
func WrapSchema(schema *ast.Schema) *Schema {
	return &Schema{schema}
}

// Types returns every declared type and the built-in scalars, sorted by name.
func (r *Schema) Types() []*Type {
	l := make([]*Type, 0, len(r.schema.Names)+len(builtinScalars))
	for _, s := range builtinScalars {
		l = append(l, &Type{r.schema, ast.ScalarOf(s, true)})
	}
	for _, name := range r.schema.Names {
		l = append(l, &Type{r.schema, ast.NamedRef(name, true)})
	}
	sort.SliceStable(l, func(i, j int) bool { return l[i].typ.Name < l[j].typ.Name })
	return l
}

func (r *Schema) QueryType() *Type {
	if r.schema.Query == nil {
		return nil
	}
	return &Type{r.schema, ast.NamedRef(r.schema.Query.Name, true)}
}

// Type is a named type or a LIST or NON_NULL wrapper around another Type.
type Type struct {
	schema *ast.Schema
	typ    *ast.Type
}

// WrapType is only used internally.
func WrapType(schema *ast.Schema, typ *ast.Type) *Type {
	return &Type{schema, typ}
}

func (r *Type) Kind() string {
	if !r.typ.Nullable {
		return "NON_NULL"
	}
	switch r.typ.Kind {
	case ast.TypeList:
		return "LIST"
	case ast.TypeScalar:
		return "SCALAR"
	}
	kind, _ := r.schema.Lookup(r.typ.Name)
	switch kind {
	case ast.KindEnum:
		return "ENUM"
	case ast.KindInterface:
		return "INTERFACE"
	case ast.KindUnion:
		return "UNION"
	case ast.KindScalar:
		return "SCALAR"
	case ast.KindInput:
		return "INPUT_OBJECT"
	default:
		return "OBJECT"
	}
}

func (r *Type) Name() *string {
	if !r.typ.Nullable || r.typ.Kind == ast.TypeList {
		return nil
	}
	name := r.typ.Name
	return &name
}

func (r *Type) composite() *ast.Composite {
	if r.Name() == nil {
		return nil
	}
	return r.schema.Composite(r.typ.Name)
}

func (r *Type) Fields() *[]*Field {
	c := r.composite()
	if c == nil {
		return nil
	}

	l := make([]*Field, len(c.Fields))
	for i, f := range c.Fields {
		l[i] = &Field{r.schema, f}
	}
	return &l
}

func (r *Type) Interfaces() *[]*Type {
	c := r.composite()
	if c == nil {
		return nil
	}

	l := make([]*Type, len(c.Interfaces))
	for i, intf := range c.Interfaces {
		l[i] = &Type{r.schema, ast.NamedRef(intf, true)}
	}
	return &l
}

func (r *Type) PossibleTypes() *[]*Type {
	var possibleTypes []string
	switch r.Kind() {
	case "INTERFACE":
		possibleTypes = r.schema.Interfaces[r.typ.Name].PossibleTypes
	case "UNION":
		possibleTypes = r.schema.Unions[r.typ.Name].Members
	default:
		return nil
	}

	l := make([]*Type, len(possibleTypes))
	for i, name := range possibleTypes {
		l[i] = &Type{r.schema, ast.NamedRef(name, true)}
	}
	return &l
}

func (r *Type) EnumValues() *[]*EnumValue {
	if r.Kind() != "ENUM" {
		return nil
	}

	values := r.schema.Enums[r.typ.Name].Values
	l := make([]*EnumValue, len(values))
	for i, v := range values {
		l[i] = &EnumValue{v}
	}
	return &l
}

func (r *Type) OfType() *Type {
	if !r.typ.Nullable {
		t := *r.typ
		t.Nullable = true
		return &Type{r.schema, &t}
	}
	if r.typ.Kind == ast.TypeList {
		return &Type{r.schema, r.typ.OfType}
	}
	return nil
}

type Field struct {
	schema *ast.Schema
	field  *ast.Field
}

func (r *Field) Name() string {
	return r.field.Name
}

func (r *Field) Args() []*InputValue {
	l := make([]*InputValue, len(r.field.Arguments))
	for i, v := range r.field.Arguments {
		l[i] = &InputValue{r.schema, v}
	}
	return l
}

func (r *Field) Type() *Type {
	return &Type{r.schema, r.field.Type}
}

type InputValue struct {
	schema *ast.Schema
	value  *ast.Argument
}

func (r *InputValue) Name() string {
	return r.value.Name
}

func (r *InputValue) Type() *Type {
	return &Type{r.schema, r.value.Type}
}

// DefaultValue returns the raw default text. String defaults are stripped with the rest
// of the string literals, so they report nil.
func (r *InputValue) DefaultValue() *string {
	if !r.value.HasDefault || r.value.Default == "" {
		return nil
	}
	s := r.value.Default
	return &s
}

type EnumValue struct {
	value string
}

func (r *EnumValue) Name() string {
	return r.value
}
