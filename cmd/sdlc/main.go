// Command sdlc compiles GraphQL schema definition documents.
package main

import (
	"os"

	"github.com/graph-gophers/graphql-sdl/internal/cli"
)

func main() {
	if err := cli.NewRootCommand(os.Stdin, os.Stdout, os.Stderr).Execute(); err != nil {
		os.Exit(1)
	}
}
