package extract

import (
	"reflect"
	"testing"

	"github.com/graph-gophers/graphql-sdl/ast"
	"github.com/graph-gophers/graphql-sdl/errors"
	"github.com/graph-gophers/graphql-sdl/internal/lexer"
)

// TestParseObjectDecl tests the logic for parsing object declarations, including the
// interface list, as written in `parseObjectDecl()`.
func TestParseObjectDecl(t *testing.T) {
	type testCase struct {
		description string
		definition  string
		expected    *ast.Declaration
		err         *errors.SchemaError
	}

	tests := []testCase{{
		description: "Parses type inheriting single interface",
		definition:  "Hello implements World { field: String }",
		expected: &ast.Declaration{
			Kind: ast.KindObject, Name: "Hello", Loc: errors.Location{Line: 1, Column: 1},
			Implements: []string{"World"}, Body: " field: String ", BodyLoc: errors.Location{Line: 1, Column: 25},
		},
	}, {
		description: "Parses type inheriting multiple interfaces",
		definition:  "Hello implements Wo & rld { field: String }",
		expected: &ast.Declaration{
			Kind: ast.KindObject, Name: "Hello", Loc: errors.Location{Line: 1, Column: 1},
			Implements: []string{"Wo", "rld"}, Body: " field: String ", BodyLoc: errors.Location{Line: 1, Column: 28},
		},
	}, {
		description: "Parses type inheriting multiple interfaces with leading ampersand",
		definition:  "Hello implements & Wo & rld { field: String }",
		expected: &ast.Declaration{
			Kind: ast.KindObject, Name: "Hello", Loc: errors.Location{Line: 1, Column: 1},
			Implements: []string{"Wo", "rld"}, Body: " field: String ", BodyLoc: errors.Location{Line: 1, Column: 30},
		},
	}, {
		description: "Allows legacy SDL interfaces",
		definition:  "Hello implements Wo, rld { field: String }",
		expected: &ast.Declaration{
			Kind: ast.KindObject, Name: "Hello", Loc: errors.Location{Line: 1, Column: 1},
			Implements: []string{"Wo", "rld"}, Body: " field: String ", BodyLoc: errors.Location{Line: 1, Column: 27},
		},
	}, {
		description: "Marks the Query type",
		definition:  "Query {\n  hero: Character\n}",
		expected: &ast.Declaration{
			Kind: ast.KindQuery, Name: "Query", Loc: errors.Location{Line: 1, Column: 1},
			Body: "\n  hero: Character\n", BodyLoc: errors.Location{Line: 1, Column: 8},
		},
	}, {
		description: "Rejects implements without interfaces",
		definition:  "Hello implements { field: String }",
		err: errors.Errorf(errors.ErrSyntax, `syntax error: expecting at least one interface after "implements"`).
			At(errors.Location{Line: 1, Column: 18}),
	}}

	for _, test := range tests {
		t.Run(test.description, func(t *testing.T) {
			var actual *ast.Declaration
			lex := lexer.New(test.definition)

			parse := func() { actual = parseObjectDecl(lex) }
			err := lex.CatchSyntaxError(parse)

			compareErrors(t, test.err, err)
			if test.err == nil && !reflect.DeepEqual(test.expected, actual) {
				t.Errorf("wrong declaration:\nwant %+v\ngot  %+v", test.expected, actual)
			}
		})
	}
}

func TestParseUnionDecl(t *testing.T) {
	type testCase struct {
		description string
		definition  string
		expected    []string
		err         *errors.SchemaError
	}

	tests := []testCase{{
		description: "Parses members separated by pipes",
		definition:  "SearchResult = Human | Droid | Starship",
		expected:    []string{"Human", "Droid", "Starship"},
	}, {
		description: "Allows a leading pipe",
		definition:  "SearchResult =\n  | Human\n  | Droid",
		expected:    []string{"Human", "Droid"},
	}, {
		description: "Requires an equals sign",
		definition:  "SearchResult Human | Droid",
		err: errors.Errorf(errors.ErrSyntax, `syntax error: unexpected "Human", expecting "="`).
			At(errors.Location{Line: 1, Column: 14}),
	}}

	for _, test := range tests {
		t.Run(test.description, func(t *testing.T) {
			var actual *ast.Declaration
			lex := lexer.New(test.definition)

			err := lex.CatchSyntaxError(func() { actual = parseUnionDecl(lex) })

			compareErrors(t, test.err, err)
			if test.err == nil && !reflect.DeepEqual(test.expected, actual.Members) {
				t.Errorf("wrong members: want %v, got %v", test.expected, actual.Members)
			}
		})
	}
}

func compareErrors(t *testing.T, expected, actual *errors.SchemaError) {
	t.Helper()

	switch {
	case expected != nil && actual != nil:
		if expected.Message != actual.Message {
			t.Fatalf("wanted error message %q, got %q", expected.Message, actual.Message)
		}
		if !reflect.DeepEqual(expected.Locations, actual.Locations) {
			t.Fatalf("wanted error locations %v, got %v", expected.Locations, actual.Locations)
		}
	case expected != nil && actual == nil:
		t.Fatalf("missing expected error: %q", expected)
	case expected == nil && actual != nil:
		t.Fatalf("got unexpected error: %q", actual)
	}
}
