package sdl_test

import (
	"testing"

	sdl "github.com/graph-gophers/graphql-sdl"
	"github.com/graph-gophers/graphql-sdl/example/starwars"
	"github.com/graph-gophers/graphql-sdl/gqltesting"
)

func TestSchema_ToJSON_Golden(t *testing.T) {
	t.Parallel()

	j, err := sdl.MustCompile(starwars.Schema).ToJSON()
	if err != nil {
		t.Fatalf("invalid schema %s", err.Error())
	}
	gqltesting.CheckGolden(t, append(j, '\n'), "testdata/starwars.introspect.json")
}

func TestSchema_SDL_Golden(t *testing.T) {
	t.Parallel()

	gqltesting.CheckGolden(t, []byte(sdl.MustCompile(starwars.Schema).SDL()), "testdata/starwars.graphql")
}
