// Package materialize expands the named-reference graph of a linked schema into value
// shapes. Expansion always terminates: a type that is already being expanded on the
// current path, or that sits deeper than Options.MaxDepth, is emitted as a Ref shape
// carrying the reason instead of being expanded again.
package materialize

import (
	"fmt"

	"github.com/graph-gophers/graphql-sdl/ast"
	"github.com/graph-gophers/graphql-sdl/errors"
)

type ShapeKind int

const (
	ShapeScalar ShapeKind = iota + 1
	ShapeEnum
	ShapeObject
	ShapeInterface
	ShapeUnion
	ShapeList
	ShapeRef
)

var shapeKindNames = map[ShapeKind]string{
	ShapeScalar:    "SCALAR",
	ShapeEnum:      "ENUM",
	ShapeObject:    "OBJECT",
	ShapeInterface: "INTERFACE",
	ShapeUnion:     "UNION",
	ShapeList:      "LIST",
	ShapeRef:       "REF",
}

func (k ShapeKind) String() string { return shapeKindNames[k] }

func (k ShapeKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// Reason tells why a Ref shape was not expanded.
type Reason int

const (
	// Cycle marks a type that is already being expanded further up the path.
	Cycle Reason = iota + 1
	// Depth marks a type beyond Options.MaxDepth.
	Depth
)

func (r Reason) String() string {
	switch r {
	case Cycle:
		return "CYCLE"
	case Depth:
		return "DEPTH"
	}
	return ""
}

func (r Reason) MarshalText() ([]byte, error) { return []byte(r.String()), nil }

type Shape struct {
	Kind     ShapeKind     `json:"kind"`
	Name     string        `json:"name,omitempty"`
	Nullable bool          `json:"nullable"`
	Values   []string      `json:"values,omitempty"`
	Fields   []*FieldShape `json:"fields,omitempty"`
	Members  []*Shape      `json:"members,omitempty"`
	Possible []string      `json:"possibleTypes,omitempty"`
	Elem     *Shape        `json:"of,omitempty"`
	Reason   Reason        `json:"reason,omitempty"`
}

type FieldShape struct {
	Name  string `json:"name"`
	Shape *Shape `json:"shape"`
}

type Options struct {
	// MaxDepth is the number of nested object, interface and union levels that are
	// expanded. Zero or less means no limit besides cycles.
	MaxDepth int
}

type expander struct {
	model *ast.Schema
	opts  Options
	path  map[string]bool
}

func newExpander(model *ast.Schema, opts Options) *expander {
	return &expander{model: model, opts: opts, path: make(map[string]bool)}
}

// Type expands the type declared as name. The root shape is non-null.
func Type(model *ast.Schema, name string, opts Options) (*Shape, error) {
	if s, ok := ast.LookupScalar(name); ok {
		return &Shape{Kind: ShapeScalar, Name: s.String()}, nil
	}
	if _, ok := model.Lookup(name); !ok {
		err := errors.Errorf(errors.ErrUnknownType, "Unknown type %q.", name)
		err.Rule = "KnownTypeNames"
		err.TypeText = name
		return nil, err
	}
	return newExpander(model, opts).named(name, false, 0), nil
}

// TypeOf expands a type descriptor, such as the return type of a resolver signature.
func TypeOf(model *ast.Schema, t *ast.Type, opts Options) *Shape {
	return newExpander(model, opts).typ(t, 0)
}

// All expands every object type except Query, keyed by name.
func All(model *ast.Schema, opts Options) map[string]*Shape {
	shapes := make(map[string]*Shape, len(model.Objects))
	for name, o := range model.Objects {
		if o.Kind == ast.KindQuery {
			continue
		}
		shapes[name] = newExpander(model, opts).named(name, false, 0)
	}
	return shapes
}

func (e *expander) typ(t *ast.Type, depth int) *Shape {
	switch t.Kind {
	case ast.TypeList:
		return &Shape{Kind: ShapeList, Nullable: t.Nullable, Elem: e.typ(t.OfType, depth)}
	case ast.TypeNamed:
		return e.named(t.Name, t.Nullable, depth)
	default:
		return &Shape{Kind: ShapeScalar, Name: t.Name, Nullable: t.Nullable}
	}
}

func (e *expander) named(name string, nullable bool, depth int) *Shape {
	kind, ok := e.model.Lookup(name)
	if !ok {
		panic(fmt.Sprintf("materialize: %q is not in the schema", name))
	}
	switch kind {
	case ast.KindEnum:
		return &Shape{Kind: ShapeEnum, Name: name, Nullable: nullable, Values: e.model.Enums[name].Values}
	case ast.KindScalar, ast.KindInput:
		return &Shape{Kind: ShapeScalar, Name: name, Nullable: nullable}
	}

	if e.path[name] {
		return &Shape{Kind: ShapeRef, Name: name, Nullable: nullable, Reason: Cycle}
	}
	if e.opts.MaxDepth > 0 && depth >= e.opts.MaxDepth {
		return &Shape{Kind: ShapeRef, Name: name, Nullable: nullable, Reason: Depth}
	}
	e.path[name] = true
	defer delete(e.path, name)

	if kind == ast.KindUnion {
		s := &Shape{Kind: ShapeUnion, Name: name, Nullable: nullable}
		for _, m := range e.model.Unions[name].Members {
			s.Members = append(s.Members, e.named(m, false, depth))
		}
		return s
	}

	c := e.model.Composite(name)
	s := &Shape{Kind: ShapeObject, Name: name, Nullable: nullable}
	if kind == ast.KindInterface {
		s.Kind = ShapeInterface
		s.Possible = c.PossibleTypes
	}
	for _, f := range c.Fields {
		s.Fields = append(s.Fields, &FieldShape{Name: f.Name, Shape: e.typ(f.Type, depth+1)})
	}
	return s
}
