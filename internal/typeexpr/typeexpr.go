package typeexpr

import (
	"fmt"
	"text/scanner"

	"github.com/graph-gophers/graphql-sdl/ast"
	"github.com/graph-gophers/graphql-sdl/errors"
	"github.com/graph-gophers/graphql-sdl/internal/lexer"
)

// Declarations looks up a top-level declaration by name.
type Declarations interface {
	Get(name string) *ast.Declaration
}

// Parse turns a raw type expression such as `[Human!]!` into a descriptor. raw starts at
// loc in the document. Names other than the built-in scalars become named references
// whose existence is not checked.
func Parse(raw string, loc errors.Location) (*ast.Type, *errors.SchemaError) {
	t, _, err := parse(raw, loc)
	return t, err
}

// Resolve parses raw like Parse and then checks that a named element type is declared.
//
// In the example below, Resolve fails unless LengthUnit is declared:
//
//	type Starship {
//	   length(unit: LengthUnit = METER): Float
//	}
func Resolve(raw string, loc errors.Location, decls Declarations) (*ast.Type, *errors.SchemaError) {
	t, leaf, err := parse(raw, loc)
	if err != nil {
		return nil, err
	}
	if t.Leaf().Kind == ast.TypeNamed && decls.Get(leaf.Name) == nil {
		err := errors.Errorf(errors.ErrUnknownType, "Unknown type %q.", leaf.Name).At(leaf.Loc)
		err.Rule = "KnownTypeNames"
		err.TypeText = raw
		return nil, err
	}
	return t, nil
}

func parse(raw string, loc errors.Location) (*ast.Type, lexer.Ident, *errors.SchemaError) {
	l := lexer.NewAt(raw, loc)

	var (
		t    *ast.Type
		leaf lexer.Ident
	)
	err := l.CatchSyntaxError(func() {
		t = parseType(l, &leaf)
		if tok := l.PeekN(0); tok.Kind != scanner.EOF {
			l.SyntaxError(fmt.Sprintf("unexpected %q after the type", tok.Text))
		}
	})
	if err != nil {
		err.Message = fmt.Sprintf("malformed type expression %q: %s", raw, err.Message)
		err.Kind = errors.ErrMalformedField
		err.Rule = "TypeReference"
		err.TypeText = raw
		return nil, leaf, err
	}
	return t, leaf, nil
}

func parseType(l *lexer.Lexer, leaf *lexer.Ident) *ast.Type {
	t := parseNullType(l, leaf)
	if l.Peek() == '!' {
		l.ConsumeToken('!')
		t.Nullable = false
	}
	return t
}

func parseNullType(l *lexer.Lexer, leaf *lexer.Ident) *ast.Type {
	if l.Peek() == '[' {
		l.ConsumeToken('[')
		ofType := parseType(l, leaf)
		l.ConsumeToken(']')
		return ast.ListOf(ofType, true)
	}

	*leaf = l.ConsumeIdentWithLoc()
	if s, ok := ast.LookupScalar(leaf.Name); ok {
		return ast.ScalarOf(s, true)
	}
	return ast.NamedRef(leaf.Name, true)
}
