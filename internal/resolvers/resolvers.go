package resolvers

import (
	"github.com/graph-gophers/graphql-sdl/ast"
	"github.com/graph-gophers/graphql-sdl/errors"
	"github.com/graph-gophers/graphql-sdl/internal/fields"
	"github.com/graph-gophers/graphql-sdl/internal/typeexpr"
)

// Derive returns one signature per field of the Query declaration, in declaration order.
// Every named reference must be present in model.
func Derive(table *ast.DeclarationTable, model *ast.Schema) ([]*ast.ResolverSignature, error) {
	q := table.Query()
	if q == nil {
		err := errors.Errorf(errors.ErrMissingQueryType, `schema has no "Query" type`)
		err.Rule = "RootOperationTypes"
		return nil, err
	}

	descs, err := fields.SplitDeclaration(q)
	if err != nil {
		return nil, err
	}

	sigs := make([]*ast.ResolverSignature, 0, len(descs))
	for _, desc := range descs {
		sig, err := derive(desc, table, model)
		if err != nil {
			err.Declaration = q.Name
			err.Field = desc.Name
			return nil, err
		}
		sigs = append(sigs, sig)
	}
	return sigs, nil
}

func derive(desc *ast.FieldDescriptor, table *ast.DeclarationTable, model *ast.Schema) (*ast.ResolverSignature, *errors.SchemaError) {
	returns, err := resolve(desc.RawType, desc.TypeLoc, table, model)
	if err != nil {
		return nil, err
	}
	sig := &ast.ResolverSignature{
		FieldName:  desc.Name,
		Arguments:  make(ast.ArgumentList, 0, len(desc.Arguments)),
		ReturnType: returns,
	}
	for _, a := range desc.Arguments {
		t, err := resolve(a.RawType, a.TypeLoc, table, model)
		if err != nil {
			return nil, err
		}
		sig.Arguments = append(sig.Arguments, &ast.Argument{
			Name:       a.Name,
			Type:       t,
			Default:    a.Default,
			HasDefault: a.HasDefault,
			Loc:        a.Loc,
		})
	}
	return sig, nil
}

func resolve(raw string, loc errors.Location, table *ast.DeclarationTable, model *ast.Schema) (*ast.Type, *errors.SchemaError) {
	t, err := typeexpr.Resolve(raw, loc, table)
	if err != nil {
		return nil, err
	}
	if leaf := t.Leaf(); leaf.Kind == ast.TypeNamed {
		if _, ok := model.Lookup(leaf.Name); !ok {
			err := errors.Errorf(errors.ErrUnknownType, "Unknown type %q.", leaf.Name).At(loc)
			err.Rule = "KnownTypeNames"
			err.TypeText = raw
			return nil, err
		}
	}
	return t, nil
}
