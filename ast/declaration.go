package ast

import (
	"fmt"

	"github.com/graph-gophers/graphql-sdl/errors"
)

// Kind tags a top-level declaration. All kinds share one type namespace.
type Kind int

const (
	KindEnum Kind = iota + 1
	KindInterface
	KindUnion
	KindObject
	KindQuery
	KindScalar
	KindInput
)

var kindNames = map[Kind]string{
	KindEnum:      "ENUM",
	KindInterface: "INTERFACE",
	KindUnion:     "UNION",
	KindObject:    "OBJECT",
	KindQuery:     "QUERY",
	KindScalar:    "SCALAR",
	KindInput:     "INPUT_OBJECT",
}

func (k Kind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Declaration is one top-level block of a schema document. Body is the raw text between
// the braces and BodyLoc is where that text starts in the document.
type Declaration struct {
	Kind       Kind
	Name       string
	Body       string
	Implements []string
	Members    []string
	Loc        errors.Location
	BodyLoc    errors.Location
}

// DeclarationTable maps names to declarations and remembers declaration order.
type DeclarationTable struct {
	byName map[string]*Declaration
	order  []*Declaration
}

func NewDeclarationTable() *DeclarationTable {
	return &DeclarationTable{byName: make(map[string]*Declaration)}
}

// Add registers d. A name already used by another declaration, or by a built-in
// scalar, is rejected.
func (t *DeclarationTable) Add(d *Declaration) error {
	if _, ok := LookupScalar(d.Name); ok {
		err := errors.Errorf(errors.ErrDuplicateDeclaration, "built-in type %q redefined", d.Name).At(d.Loc)
		err.Rule = "UniqueTypeNames"
		err.Declaration = d.Name
		return err
	}
	if prev, ok := t.byName[d.Name]; ok {
		err := errors.Errorf(errors.ErrDuplicateDeclaration, "%q defined more than once", d.Name).At(prev.Loc, d.Loc)
		err.Rule = "UniqueTypeNames"
		err.Declaration = d.Name
		return err
	}
	t.byName[d.Name] = d
	t.order = append(t.order, d)
	return nil
}

func (t *DeclarationTable) Get(name string) *Declaration {
	return t.byName[name]
}

// Declarations returns every declaration in document order.
func (t *DeclarationTable) Declarations() []*Declaration {
	return append([]*Declaration(nil), t.order...)
}

// OfKind returns the declarations of kind k in document order.
func (t *DeclarationTable) OfKind(k Kind) []*Declaration {
	var l []*Declaration
	for _, d := range t.order {
		if d.Kind == k {
			l = append(l, d)
		}
	}
	return l
}

// Query returns the declaration named Query, or nil.
func (t *DeclarationTable) Query() *Declaration {
	if d := t.byName["Query"]; d != nil && d.Kind == KindQuery {
		return d
	}
	return nil
}

func (t *DeclarationTable) Len() int {
	return len(t.order)
}

// InputValueDescriptor is one raw argument of a field signature.
type InputValueDescriptor struct {
	Name       string
	RawType    string
	Default    string
	HasDefault bool
	Loc        errors.Location
	TypeLoc    errors.Location
}

// FieldDescriptor is one raw field signature, `name(args): Type`, before type resolution.
type FieldDescriptor struct {
	Name      string
	Arguments []*InputValueDescriptor
	RawType   string
	Loc       errors.Location
	TypeLoc   errors.Location
}
