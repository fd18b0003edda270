package sdl

import (
	"encoding/json"

	"github.com/graph-gophers/graphql-sdl/introspection"
)

// Inspect allows inspection of the given schema.
func (s *Schema) Inspect() *introspection.Schema {
	return introspection.WrapSchema(s.model)
}

// ToJSON encodes the schema in the JSON layout of an introspection query result, the
// format used by tools like Relay.
func (s *Schema) ToJSON() ([]byte, error) {
	return json.MarshalIndent(map[string]interface{}{
		"__schema": s.Inspect().Snapshot(),
	}, "", "\t")
}
