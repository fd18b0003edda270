package normalize_test

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/MakeNowJust/heredoc/v2"

	"github.com/graph-gophers/graphql-sdl/internal/normalize"
)

type normalizeTestCase struct {
	description string
	sdl         string
	expected    string // expected tokens, whitespace-separated
}

var normalizeTests = []normalizeTestCase{{
	description: "strips block descriptions spanning lines",
	sdl: heredoc.Doc(`
		"""
		Members of a Union type need to be concrete Object types.
		"""
		union SearchResult = Human | Droid
	`),
	expected: "union SearchResult = Human | Droid",
}, {
	description: "strips single line descriptions on arguments",
	sdl: heredoc.Doc(`
		type Query {
			hero(
				"The name of the film that the hero appears in."
				episode: Episode
			): Character
		}
	`),
	expected: "type Query { hero( episode: Episode ): Character }",
}, {
	description: "strips comments but not hashes inside descriptions",
	sdl: heredoc.Doc(`
		# The episodes
		enum Episode { # trailing
			"a # inside a string" NEWHOPE
		}
	`),
	expected: "enum Episode { NEWHOPE }",
}, {
	description: "strips directive declarations with arguments and locations",
	sdl: heredoc.Doc(`
		directive @lower on FIELD_DEFINITION
		directive @deprecated(
			reason: String = "No longer supported"
		) on FIELD_DEFINITION | ENUM_VALUE
		directive @key(fields: String) repeatable on | OBJECT | INTERFACE
		type Starship { id: ID! }
	`),
	expected: "type Starship { id: ID! }",
}, {
	description: "strips directive invocations without touching the next token",
	sdl: heredoc.Doc(`
		type Starship {
			name: String! @lower
			length(unit: LengthUnit = METER @deprecated): Float @deprecated (reason: "Use fullName.")
			mass: Float
		}
	`),
	expected: "type Starship { name: String! length(unit: LengthUnit = METER ): Float mass: Float }",
}, {
	description: "keeps a field named directive",
	sdl:         "type Config { directive: String }",
	expected:    "type Config { directive: String }",
}, {
	description: "leaves the rest of the text after an unterminated block string",
	sdl:         `type A { a: Int } """ type B { b: Int }`,
	expected:    `type A { a: Int } """ type B { b: Int }`,
}, {
	description: "keeps stripping on the lines after an unterminated string",
	sdl: heredoc.Doc(`
		type A {
			"broken description
			a: Int # comment
			"fine" b: Int @deprecated
		}
	`),
	expected: `type A { "broken description a: Int b: Int }`,
}}

func TestNormalize(t *testing.T) {
	for _, test := range normalizeTests {
		t.Run(test.description, func(t *testing.T) {
			got := normalize.Normalize(test.sdl)
			if strings.Join(strings.Fields(got), " ") != test.expected {
				t.Errorf("wrong normalized text:\nwant: %q\ngot : %q", test.expected, strings.Join(strings.Fields(got), " "))
			}
			assertSameLayout(t, test.sdl, got)
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	for _, test := range normalizeTests {
		t.Run(test.description, func(t *testing.T) {
			once := normalize.Normalize(test.sdl)
			if twice := normalize.Normalize(once); twice != once {
				t.Errorf("normalizing normalized text changed it:\nonce : %q\ntwice: %q", once, twice)
			}
		})
	}
}

// assertSameLayout checks that every line keeps its length so token locations survive.
func assertSameLayout(t *testing.T, in, out string) {
	t.Helper()
	inLines := strings.Split(in, "\n")
	outLines := strings.Split(out, "\n")
	if len(inLines) != len(outLines) {
		t.Fatalf("line count changed from %d to %d", len(inLines), len(outLines))
	}
	for i := range inLines {
		if a, b := utf8.RuneCountInString(inLines[i]), utf8.RuneCountInString(outLines[i]); a != b {
			t.Errorf("line %d changed length from %d to %d", i+1, a, b)
		}
	}
}
