// Package printer renders a linked schema model back to canonical SDL.
package printer

import (
	"bytes"
	"regexp"

	gqlast "github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/formatter"
	"github.com/vektah/gqlparser/v2/parser"

	"github.com/graph-gophers/graphql-sdl/ast"
)

const DefaultIndent = "  "

var (
	intRE   = regexp.MustCompile(`^-?(0|[1-9][0-9]*)$`)
	floatRE = regexp.MustCompile(`^-?(0|[1-9][0-9]*)(\.[0-9]+)?([eE][+-]?[0-9]+)?$`)
)

// Print renders model as SDL, one definition per declared type in document order.
// Descriptions, directives and discarded root types are not part of the model and are not
// printed. Input types are printed by name only. Argument defaults that were string
// literals are dropped as well, because the normalized document no longer carries their
// text.
func Print(model *ast.Schema, indent string) string {
	if indent == "" {
		indent = DefaultIndent
	}
	var buf bytes.Buffer
	formatter.NewFormatter(&buf, formatter.WithIndent(indent)).FormatSchemaDocument(Document(model))
	return buf.String()
}

// Document converts model into a gqlparser schema document.
func Document(model *ast.Schema) *gqlast.SchemaDocument {
	doc := &gqlast.SchemaDocument{}
	for _, name := range model.Names {
		if def := definition(model, name); def != nil {
			doc.Definitions = append(doc.Definitions, def)
		}
	}
	return doc
}

func definition(model *ast.Schema, name string) *gqlast.Definition {
	if e, ok := model.Enums[name]; ok {
		def := &gqlast.Definition{Kind: gqlast.Enum, Name: name}
		for _, v := range e.Values {
			def.EnumValues = append(def.EnumValues, &gqlast.EnumValueDefinition{Name: v})
		}
		return def
	}
	if _, ok := model.Scalars[name]; ok {
		return &gqlast.Definition{Kind: gqlast.Scalar, Name: name}
	}
	if _, ok := model.Inputs[name]; ok {
		return &gqlast.Definition{Kind: gqlast.InputObject, Name: name}
	}
	if u, ok := model.Unions[name]; ok {
		return &gqlast.Definition{Kind: gqlast.Union, Name: name, Types: u.Members}
	}
	if c := model.Composite(name); c != nil {
		def := &gqlast.Definition{Kind: gqlast.Object, Name: name, Interfaces: c.Interfaces}
		if c.Kind == ast.KindInterface {
			def.Kind = gqlast.Interface
		}
		for _, f := range c.Fields {
			def.Fields = append(def.Fields, field(f))
		}
		return def
	}
	return nil
}

func field(f *ast.Field) *gqlast.FieldDefinition {
	fd := &gqlast.FieldDefinition{Name: f.Name, Type: typeOf(f.Type)}
	for _, a := range f.Arguments {
		fd.Arguments = append(fd.Arguments, &gqlast.ArgumentDefinition{
			Name:         a.Name,
			Type:         typeOf(a.Type),
			DefaultValue: value(a.Default),
		})
	}
	return fd
}

func typeOf(t *ast.Type) *gqlast.Type {
	if t.Kind == ast.TypeList {
		if t.Nullable {
			return gqlast.ListType(typeOf(t.OfType), nil)
		}
		return gqlast.NonNullListType(typeOf(t.OfType), nil)
	}
	if t.Nullable {
		return gqlast.NamedType(t.Name, nil)
	}
	return gqlast.NonNullNamedType(t.Name, nil)
}

// value turns the raw text of a default back into a gqlparser value. Lists and input
// objects are reparsed through a one-field query so their children are populated.
func value(raw string) *gqlast.Value {
	switch {
	case raw == "":
		return nil
	case raw == "true" || raw == "false":
		return &gqlast.Value{Kind: gqlast.BooleanValue, Raw: raw}
	case raw == "null":
		return &gqlast.Value{Kind: gqlast.NullValue, Raw: raw}
	case intRE.MatchString(raw):
		return &gqlast.Value{Kind: gqlast.IntValue, Raw: raw}
	case floatRE.MatchString(raw):
		return &gqlast.Value{Kind: gqlast.FloatValue, Raw: raw}
	case raw[0] == '[' || raw[0] == '{':
		return compound(raw)
	default:
		return &gqlast.Value{Kind: gqlast.EnumValue, Raw: raw}
	}
}

func compound(raw string) *gqlast.Value {
	doc, err := parser.ParseQuery(&gqlast.Source{Name: "default", Input: "{f(v: " + raw + ")}"})
	if err != nil || len(doc.Operations) != 1 || len(doc.Operations[0].SelectionSet) != 1 {
		return nil
	}
	f, ok := doc.Operations[0].SelectionSet[0].(*gqlast.Field)
	if !ok || len(f.Arguments) != 1 {
		return nil
	}
	return f.Arguments[0].Value
}
