package link_test

import (
	"errors"
	"testing"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/graph-gophers/graphql-sdl/ast"
	sdlerrors "github.com/graph-gophers/graphql-sdl/errors"
	"github.com/graph-gophers/graphql-sdl/internal/extract"
	"github.com/graph-gophers/graphql-sdl/internal/link"
	"github.com/graph-gophers/graphql-sdl/internal/normalize"
)

func linkSDL(t *testing.T, sdl string) (*ast.Schema, error) {
	t.Helper()
	table, err := extract.Extract(normalize.Normalize(sdl))
	require.NoError(t, err)
	return link.Link(table)
}

func TestLink_Enum(t *testing.T) {
	s, err := linkSDL(t, `enum Episode { NEW_HOPE EMPIRE JEDI }`)
	require.NoError(t, err)

	values, ok := s.EnumValues("Episode")
	require.True(t, ok)
	assert.Equal(t, []string{"NEW_HOPE", "EMPIRE", "JEDI"}, values)
}

func TestLink_FieldsWithArguments(t *testing.T) {
	s, err := linkSDL(t, heredoc.Doc(`
		enum LengthUnit { METER FOOT }
		type Starship { id: ID! name: String! length(unit: LengthUnit = METER): Float }
	`))
	require.NoError(t, err)

	fields, ok := s.FieldMap("Starship")
	require.True(t, ok)
	assert.Equal(t, []string{"id", "name", "length"}, fields.Names())
	assert.Equal(t, ast.ScalarOf(ast.ID, false), fields.Get("id").Type)
	assert.Equal(t, ast.ScalarOf(ast.String, false), fields.Get("name").Type)

	length := fields.Get("length")
	assert.Equal(t, ast.ScalarOf(ast.Float, true), length.Type)
	require.Len(t, length.Arguments, 1)
	assert.Equal(t, "unit", length.Arguments[0].Name)
	assert.Equal(t, ast.NamedRef("LengthUnit", true), length.Arguments[0].Type)
	assert.Equal(t, "METER", length.Arguments[0].Default)
	assert.True(t, length.Arguments[0].HasDefault)

	kind, ok := s.Lookup("Starship")
	assert.True(t, ok)
	assert.Equal(t, ast.KindObject, kind)
}

func TestLink_Union(t *testing.T) {
	s, err := linkSDL(t, heredoc.Doc(`
		type Human { name: String }
		type Droid { name: String }
		type Starship { name: String }
		union SearchResult = Human | Droid | Starship
	`))
	require.NoError(t, err)

	members, ok := s.UnionMembers("SearchResult")
	require.True(t, ok)
	assert.Equal(t, []string{"Human", "Droid", "Starship"}, members)
}

func TestLink_SelfReferentialInterface(t *testing.T) {
	s, err := linkSDL(t, heredoc.Doc(`
		type Human implements Character { friends: [Character] }
		interface Character { friends: [Character] }
		type Droid implements Character { friends: [Character] primaryFunction: String }
	`))
	require.NoError(t, err)

	character := s.Interfaces["Character"]
	require.NotNil(t, character)
	assert.Equal(t, ast.KindInterface, character.Kind)
	assert.Equal(t, []string{"Human", "Droid"}, character.PossibleTypes)

	friends := s.Objects["Human"].Fields.Get("friends")
	assert.Equal(t, ast.ListOf(ast.NamedRef("Character", true), true), friends.Type)
	assert.Equal(t, []string{"Character"}, s.Objects["Human"].Interfaces)
	assert.Equal(t, []string{"Human", "Character", "Droid"}, s.Names)
}

func TestLink_InterfaceImplementsInterface(t *testing.T) {
	s, err := linkSDL(t, heredoc.Doc(`
		type Human implements Character & Node { id: ID! name: String }
		interface Character implements Node { id: ID! name: String }
		interface Node { id: ID! }
	`))
	require.NoError(t, err)

	assert.Equal(t, []string{"Node"}, s.Interfaces["Character"].Interfaces)
	assert.Equal(t, []string{"Human"}, s.Interfaces["Node"].PossibleTypes)
	assert.Equal(t, []string{"Human"}, s.Interfaces["Character"].PossibleTypes)
}

func TestLink_QueryAndScalars(t *testing.T) {
	s, err := linkSDL(t, heredoc.Doc(`
		scalar Time
		type Query { now: Time! }
	`))
	require.NoError(t, err)

	require.NotNil(t, s.Query)
	assert.Same(t, s.Query, s.Objects["Query"])
	assert.Equal(t, ast.KindQuery, s.Query.Kind)
	assert.Equal(t, ast.NamedRef("Time", false), s.Query.Fields.Get("now").Type)

	kind, ok := s.Lookup("Time")
	assert.True(t, ok)
	assert.Equal(t, ast.KindScalar, kind)
}

func TestLink_InputTypes(t *testing.T) {
	s, err := linkSDL(t, heredoc.Doc(`
		input ReviewInput { stars: Int! }
		type Query { review(input: ReviewInput!): Int }
	`))
	require.NoError(t, err)

	require.Contains(t, s.Inputs, "ReviewInput")
	assert.Equal(t, " stars: Int! ", s.Inputs["ReviewInput"].Body)
	assert.Equal(t, ast.NamedRef("ReviewInput", false), s.Query.Fields.Get("review").Arguments.Get("input").Type)

	kind, ok := s.Lookup("ReviewInput")
	assert.True(t, ok)
	assert.Equal(t, ast.KindInput, kind)

	_, err = linkSDL(t, `input I { a: Int } type Human implements I { a: Int }`)
	assert.True(t, errors.Is(err, sdlerrors.ErrNotAnInterface))
}

func TestLink_Errors(t *testing.T) {
	tests := []struct {
		description string
		sdl         string
		kind        error
		message     string
		declaration string
		field       string
	}{{
		description: "unknown field type",
		sdl:         "type Human { friends: [Charactr] }",
		kind:        sdlerrors.ErrUnknownType,
		message:     `Unknown type "Charactr".`,
		declaration: "Human",
		field:       "friends",
	}, {
		description: "unknown argument type",
		sdl:         "type Query { hero(episode: Episod): String }",
		kind:        sdlerrors.ErrUnknownType,
		message:     `Unknown type "Episod".`,
		declaration: "Query",
		field:       "hero",
	}, {
		description: "malformed type expression",
		sdl:         "type Human { friends: [String }",
		kind:        sdlerrors.ErrMalformedField,
		message:     `malformed type expression "[String": syntax error: unexpected <EOF>, expecting "]"`,
		declaration: "Human",
		field:       "friends",
	}, {
		description: "missing interface field",
		sdl:         "interface Character { id: ID! name: String } type Human implements Character { id: ID! }",
		kind:        sdlerrors.ErrMissingInterfaceField,
		message:     "Interface field Character.name expected but Human does not provide it.",
		declaration: "Human",
		field:       "name",
	}, {
		description: "interface field type mismatch",
		sdl:         "interface Character { name: String! } type Human implements Character { name: String }",
		kind:        sdlerrors.ErrFieldTypeMismatch,
		message:     "Interface field Character.name expects type String! but Human.name is type String.",
		declaration: "Human",
		field:       "name",
	}, {
		description: "interface argument missing",
		sdl:         "interface Character { friends(first: Int): [Character] } type Human implements Character { friends: [Character] }",
		kind:        sdlerrors.ErrFieldTypeMismatch,
		message:     "Interface field argument Character.friends(first:) expected but Human.friends does not provide it.",
		declaration: "Human",
		field:       "friends",
	}, {
		description: "interface argument type mismatch",
		sdl:         "interface Character { friends(first: Int): [Character] } type Human implements Character { friends(first: Int!): [Character] }",
		kind:        sdlerrors.ErrFieldTypeMismatch,
		message:     "Interface field argument Character.friends(first:) expects type Int but Human.friends(first:) is type Int!.",
		declaration: "Human",
		field:       "friends",
	}, {
		description: "cyclic interfaces",
		sdl:         "interface A implements B { x: Int } interface B implements A { x: Int }",
		kind:        sdlerrors.ErrCyclicInheritance,
		message:     `interface "A" implements itself: A -> B -> A`,
		declaration: "A",
	}, {
		description: "interface implementing itself",
		sdl:         "interface Node implements Node { id: ID! }",
		kind:        sdlerrors.ErrCyclicInheritance,
		message:     `interface "Node" implements itself: Node -> Node`,
		declaration: "Node",
	}, {
		description: "implementing an object",
		sdl:         "type Being { name: String } type Human implements Being { name: String }",
		kind:        sdlerrors.ErrNotAnInterface,
		message:     `type "Being" is not an interface`,
		declaration: "Human",
	}, {
		description: "implementing an unknown interface",
		sdl:         "type Human implements Being { name: String }",
		kind:        sdlerrors.ErrUnknownType,
		message:     `Unknown type "Being".`,
		declaration: "Human",
	}, {
		description: "undeclared union member",
		sdl:         "type Droid { name: String } union SearchResult = Humn | Droid",
		kind:        sdlerrors.ErrInvalidUnionMember,
		message:     "Union type SearchResult can only include Object types, it cannot include Humn: type is not declared.",
		declaration: "SearchResult",
	}, {
		description: "interface as union member",
		sdl:         "interface Character { name: String } type Droid { name: String } union SearchResult = Character | Droid",
		kind:        sdlerrors.ErrInvalidUnionMember,
		message:     "Union type SearchResult can only include Object types, it cannot include Character.",
		declaration: "SearchResult",
	}, {
		description: "repeated union member",
		sdl:         "type Droid { name: String } union SearchResult = Droid | Droid",
		kind:        sdlerrors.ErrInvalidUnionMember,
		message:     "Union type SearchResult can only include type Droid once.",
		declaration: "SearchResult",
	}, {
		description: "duplicate enum value",
		sdl:         "enum Episode { NEWHOPE EMPIRE NEWHOPE }",
		kind:        sdlerrors.ErrDuplicateEnumValue,
		message:     `enum value "NEWHOPE" defined more than once`,
		declaration: "Episode",
	}, {
		description: "reserved enum value",
		sdl:         "enum Answer { true false }",
		kind:        sdlerrors.ErrSyntax,
		message:     `syntax error: enum value "true" is reserved`,
		declaration: "Answer",
	}}

	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			s, err := linkSDL(t, tt.sdl)
			require.Error(t, err)
			assert.Nil(t, s)
			assert.True(t, errors.Is(err, tt.kind), "wrong kind: %v", err)

			var serr *sdlerrors.SchemaError
			require.True(t, errors.As(err, &serr))
			assert.Equal(t, tt.message, serr.Message)
			assert.Equal(t, tt.declaration, serr.Declaration)
			assert.Equal(t, tt.field, serr.Field)
			assert.NotEmpty(t, serr.Locations)
		})
	}
}

func TestLink_ErrorLocations(t *testing.T) {
	_, err := linkSDL(t, heredoc.Doc(`
		enum Episode {
			NEWHOPE
			EMPIRE
			NEWHOPE
		}
	`))

	var serr *sdlerrors.SchemaError
	require.True(t, errors.As(err, &serr))
	assert.Equal(t, []sdlerrors.Location{{Line: 2, Column: 2}, {Line: 4, Column: 2}}, serr.Locations)
}
