package link

import (
	"fmt"
	"strings"
	"text/scanner"

	"github.com/graph-gophers/graphql-sdl/ast"
	"github.com/graph-gophers/graphql-sdl/errors"
	"github.com/graph-gophers/graphql-sdl/internal/fields"
	"github.com/graph-gophers/graphql-sdl/internal/lexer"
	"github.com/graph-gophers/graphql-sdl/internal/typeexpr"
)

type linker struct {
	table  *ast.DeclarationTable
	schema *ast.Schema
}

// Link resolves every declaration of table into a schema model. Named references are
// checked but kept as names. Interfaces are linked before the types that implement them.
func Link(table *ast.DeclarationTable) (*ast.Schema, error) {
	l := &linker{table: table, schema: ast.NewSchema()}
	if err := l.link(); err != nil {
		return nil, err
	}
	return l.schema, nil
}

func (l *linker) link() error {
	for _, d := range l.table.Declarations() {
		l.schema.Names = append(l.schema.Names, d.Name)
	}

	for _, d := range l.table.Declarations() {
		if err := l.checkImplements(d); err != nil {
			return err
		}
	}
	interfaces, err := l.interfaceOrder()
	if err != nil {
		return err
	}

	for _, d := range l.table.OfKind(ast.KindEnum) {
		e, err := linkEnum(d)
		if err != nil {
			return err
		}
		l.schema.Enums[e.Name] = e
	}
	for _, d := range l.table.OfKind(ast.KindScalar) {
		l.schema.Scalars[d.Name] = &ast.CustomScalar{Name: d.Name, Loc: d.Loc}
	}
	for _, d := range l.table.OfKind(ast.KindInput) {
		l.schema.Inputs[d.Name] = &ast.InputObject{Name: d.Name, Body: d.Body, Loc: d.Loc}
	}

	for _, d := range interfaces {
		c, err := l.linkComposite(d)
		if err != nil {
			return err
		}
		l.schema.Interfaces[c.Name] = c
	}
	for _, d := range l.table.Declarations() {
		if d.Kind != ast.KindObject && d.Kind != ast.KindQuery {
			continue
		}
		c, err := l.linkComposite(d)
		if err != nil {
			return err
		}
		for _, name := range c.Interfaces {
			intf := l.schema.Interfaces[name]
			intf.PossibleTypes = append(intf.PossibleTypes, c.Name)
		}
		l.schema.Objects[c.Name] = c
		if c.Kind == ast.KindQuery {
			l.schema.Query = c
		}
	}

	for _, d := range l.table.OfKind(ast.KindUnion) {
		u, err := l.linkUnion(d)
		if err != nil {
			return err
		}
		l.schema.Unions[u.Name] = u
	}
	return nil
}

func (l *linker) checkImplements(d *ast.Declaration) error {
	for _, name := range d.Implements {
		target := l.table.Get(name)
		if target == nil {
			err := errors.Errorf(errors.ErrUnknownType, "Unknown type %q.", name).At(d.Loc)
			err.Rule = "KnownTypeNames"
			err.Declaration = d.Name
			err.TypeText = name
			return err
		}
		if target.Kind != ast.KindInterface {
			err := errors.Errorf(errors.ErrNotAnInterface, "type %q is not an interface", name).At(d.Loc, target.Loc)
			err.Rule = "ImplementsInterface"
			err.Declaration = d.Name
			err.TypeText = name
			return err
		}
	}
	return nil
}

// interfaceOrder returns the interface declarations so that every interface comes after
// the interfaces it implements, failing if the implements relation has a cycle.
func (l *linker) interfaceOrder() ([]*ast.Declaration, error) {
	const (
		visiting = 1
		visited  = 2
	)
	var (
		state = make(map[string]int)
		path  []string
		order []*ast.Declaration
		visit func(d *ast.Declaration) error
	)
	visit = func(d *ast.Declaration) error {
		switch state[d.Name] {
		case visited:
			return nil
		case visiting:
			var cycle []string
			for i, name := range path {
				if name == d.Name {
					cycle = append(cycle, path[i:]...)
					break
				}
			}
			cycle = append(cycle, d.Name)
			err := errors.Errorf(errors.ErrCyclicInheritance, "interface %q implements itself: %s", d.Name, strings.Join(cycle, " -> ")).At(d.Loc)
			err.Rule = "ImplementsInterface"
			err.Declaration = d.Name
			return err
		}

		state[d.Name] = visiting
		path = append(path, d.Name)
		for _, name := range d.Implements {
			if err := visit(l.table.Get(name)); err != nil {
				return err
			}
		}
		path = path[:len(path)-1]
		state[d.Name] = visited
		order = append(order, d)
		return nil
	}

	for _, d := range l.table.OfKind(ast.KindInterface) {
		if err := visit(d); err != nil {
			return nil, err
		}
	}
	return order, nil
}

func (l *linker) linkComposite(d *ast.Declaration) (*ast.Composite, error) {
	descs, err := fields.SplitDeclaration(d)
	if err != nil {
		return nil, err
	}

	c := &ast.Composite{
		Name:   d.Name,
		Kind:   d.Kind,
		Fields: make(ast.FieldList, 0, len(descs)),
		Loc:    d.Loc,
	}
	for _, name := range d.Implements {
		if !contains(c.Interfaces, name) {
			c.Interfaces = append(c.Interfaces, name)
		}
	}

	for _, desc := range descs {
		f, err := l.resolveField(desc)
		if err != nil {
			err.Declaration = d.Name
			err.Field = desc.Name
			return nil, err
		}
		c.Fields = append(c.Fields, f)
	}

	for _, name := range c.Interfaces {
		if err := verifyImplementation(c, l.schema.Interfaces[name]); err != nil {
			err.Declaration = d.Name
			return nil, err
		}
	}
	return c, nil
}

func (l *linker) resolveField(desc *ast.FieldDescriptor) (*ast.Field, *errors.SchemaError) {
	t, err := typeexpr.Resolve(desc.RawType, desc.TypeLoc, l.table)
	if err != nil {
		return nil, err
	}
	f := &ast.Field{Name: desc.Name, Type: t, Loc: desc.Loc}
	for _, a := range desc.Arguments {
		t, err := typeexpr.Resolve(a.RawType, a.TypeLoc, l.table)
		if err != nil {
			return nil, err
		}
		f.Arguments = append(f.Arguments, &ast.Argument{
			Name:       a.Name,
			Type:       t,
			Default:    a.Default,
			HasDefault: a.HasDefault,
			Loc:        a.Loc,
		})
	}
	return f, nil
}

// verifyImplementation checks that c redeclares every field of intf with an identical
// type, and every argument of those fields with an identical type.
func verifyImplementation(c, intf *ast.Composite) *errors.SchemaError {
	for _, want := range intf.Fields {
		got := c.Fields.Get(want.Name)
		if got == nil {
			err := errors.Errorf(errors.ErrMissingInterfaceField, "Interface field %s.%s expected but %s does not provide it.", intf.Name, want.Name, c.Name).At(want.Loc, c.Loc)
			err.Rule = "ImplementsInterface"
			err.Field = want.Name
			return err
		}
		if !got.Type.Equal(want.Type) {
			err := errors.Errorf(errors.ErrFieldTypeMismatch, "Interface field %s.%s expects type %s but %s.%s is type %s.", intf.Name, want.Name, want.Type, c.Name, got.Name, got.Type).At(want.Loc, got.Loc)
			err.Rule = "ImplementsInterface"
			err.Field = got.Name
			err.TypeText = got.Type.String()
			return err
		}
		for _, wantArg := range want.Arguments {
			gotArg := got.Arguments.Get(wantArg.Name)
			if gotArg == nil {
				err := errors.Errorf(errors.ErrFieldTypeMismatch, "Interface field argument %s.%s(%s:) expected but %s.%s does not provide it.", intf.Name, want.Name, wantArg.Name, c.Name, got.Name).At(wantArg.Loc, got.Loc)
				err.Rule = "ImplementsInterface"
				err.Field = got.Name
				return err
			}
			if !gotArg.Type.Equal(wantArg.Type) {
				err := errors.Errorf(errors.ErrFieldTypeMismatch, "Interface field argument %s.%s(%s:) expects type %s but %s.%s(%s:) is type %s.", intf.Name, want.Name, wantArg.Name, wantArg.Type, c.Name, got.Name, gotArg.Name, gotArg.Type).At(wantArg.Loc, gotArg.Loc)
				err.Rule = "ImplementsInterface"
				err.Field = got.Name
				err.TypeText = gotArg.Type.String()
				return err
			}
		}
	}
	return nil
}

var reservedEnumValues = map[string]bool{
	"true":  true,
	"false": true,
	"null":  true,
}

func linkEnum(d *ast.Declaration) (*ast.Enum, error) {
	e := &ast.Enum{Name: d.Name, Values: []string{}, Loc: d.Loc}
	l := lexer.NewAt(d.Body, d.BodyLoc)

	var err *errors.SchemaError
	syntaxErr := l.CatchSyntaxError(func() {
		seen := make(map[string]errors.Location)
		for l.Peek() != scanner.EOF {
			if reservedEnumValues[l.PeekIdent()] {
				l.SyntaxError(fmt.Sprintf("enum value %q is reserved", l.PeekIdent()))
			}
			v := l.ConsumeIdentWithLoc()
			if prev, ok := seen[v.Name]; ok {
				err = errors.Errorf(errors.ErrDuplicateEnumValue, "enum value %q defined more than once", v.Name).At(prev, v.Loc)
				err.Rule = "UniqueEnumValueNames"
				return
			}
			seen[v.Name] = v.Loc
			e.Values = append(e.Values, v.Name)
		}
	})
	if syntaxErr != nil {
		err = syntaxErr
		err.Rule = "EnumValuesDefinition"
	}
	if err != nil {
		err.Declaration = d.Name
		return nil, err
	}
	return e, nil
}

func (l *linker) linkUnion(d *ast.Declaration) (*ast.Union, error) {
	u := &ast.Union{Name: d.Name, Loc: d.Loc}
	for _, name := range d.Members {
		var err *errors.SchemaError
		switch member := l.table.Get(name); {
		case member == nil:
			err = errors.Errorf(errors.ErrInvalidUnionMember, "Union type %s can only include Object types, it cannot include %s: type is not declared.", d.Name, name).At(d.Loc)
		case member.Kind != ast.KindObject && member.Kind != ast.KindQuery:
			err = errors.Errorf(errors.ErrInvalidUnionMember, "Union type %s can only include Object types, it cannot include %s.", d.Name, name).At(d.Loc, member.Loc)
		case contains(u.Members, name):
			err = errors.Errorf(errors.ErrInvalidUnionMember, "Union type %s can only include type %s once.", d.Name, name).At(d.Loc)
		}
		if err != nil {
			err.Rule = "UnionMembers"
			err.Declaration = d.Name
			err.TypeText = name
			return nil, err
		}
		u.Members = append(u.Members, name)
	}
	return u, nil
}

func contains(l []string, s string) bool {
	for _, x := range l {
		if x == s {
			return true
		}
	}
	return false
}
