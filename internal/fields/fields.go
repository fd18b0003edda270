// Package fields splits declaration bodies into raw field signatures.
package fields

import (
	"fmt"
	"strings"
	"text/scanner"

	"github.com/graph-gophers/graphql-sdl/ast"
	"github.com/graph-gophers/graphql-sdl/errors"
	"github.com/graph-gophers/graphql-sdl/internal/lexer"
)

// SplitDeclaration splits the body of an interface, object or Query declaration.
func SplitDeclaration(d *ast.Declaration) ([]*ast.FieldDescriptor, error) {
	fields, err := split(d.Body, d.BodyLoc)
	if err != nil {
		err.Declaration = d.Name
		return nil, err
	}
	return fields, nil
}

// Split breaks body, which starts at loc in the document, into ordered field signatures of
// the form `name(args): Type`. Type expressions are returned as raw text.
func Split(body string, loc errors.Location) ([]*ast.FieldDescriptor, error) {
	fields, err := split(body, loc)
	if err != nil {
		return nil, err
	}
	return fields, nil
}

func split(body string, loc errors.Location) ([]*ast.FieldDescriptor, *errors.SchemaError) {
	l := lexer.NewAt(body, loc)

	var (
		fields  []*ast.FieldDescriptor
		current string
		dup     *errors.SchemaError
	)
	syntaxErr := l.CatchSyntaxError(func() {
		seen := make(map[string]*ast.FieldDescriptor)
		for l.Peek() != scanner.EOF {
			f := parseField(l, &current)
			if prev, ok := seen[f.Name]; ok {
				dup = errors.Errorf(errors.ErrMalformedField, "field %q defined more than once", f.Name).At(prev.Loc, f.Loc)
				dup.Rule = "UniqueFieldDefinitionNames"
				dup.Field = f.Name
				return
			}
			seen[f.Name] = f
			fields = append(fields, f)
		}
	})
	if syntaxErr != nil {
		if current != "" {
			syntaxErr.Message = fmt.Sprintf("malformed field %q: %s", current, syntaxErr.Message)
		} else {
			syntaxErr.Message = "malformed field: " + syntaxErr.Message
		}
		syntaxErr.Kind = errors.ErrMalformedField
		syntaxErr.Rule = "FieldDefinition"
		syntaxErr.Field = current
		return nil, syntaxErr
	}
	if dup != nil {
		return nil, dup
	}
	return fields, nil
}

func parseField(l *lexer.Lexer, current *string) *ast.FieldDescriptor {
	*current = ""
	f := &ast.FieldDescriptor{}
	name := l.ConsumeIdentWithLoc()
	f.Name = name.Name
	f.Loc = name.Loc
	*current = f.Name
	if l.Peek() == '(' {
		f.Arguments = parseArguments(l)
	}
	l.ConsumeToken(':')
	f.RawType, f.TypeLoc = takeType(l)
	return f
}

func parseArguments(l *lexer.Lexer) []*ast.InputValueDescriptor {
	var args []*ast.InputValueDescriptor
	l.ConsumeToken('(')
	for l.Peek() != ')' {
		for _, a := range args {
			if a.Name == l.PeekIdent() {
				l.SyntaxError(fmt.Sprintf("argument %q defined more than once", a.Name))
			}
		}
		name := l.ConsumeIdentWithLoc()
		a := &ast.InputValueDescriptor{Name: name.Name, Loc: name.Loc}
		l.ConsumeToken(':')
		a.RawType, a.TypeLoc = takeType(l)
		if l.Peek() == '=' {
			l.ConsumeToken('=')
			a.HasDefault = true
			a.Default = skipValue(l)
		}
		args = append(args, a)
	}
	l.ConsumeToken(')')
	return args
}

// takeType reads a type expression: any number of '[', one name, then any run of '!' and
// ']'. The expression ends at the first token outside that chain. Balancing is left to
// the type expression resolver.
func takeType(l *lexer.Lexer) (string, errors.Location) {
	loc := l.Location()
	var b strings.Builder
	for l.Peek() == '[' {
		b.WriteString(l.Next().Text)
	}
	b.WriteString(l.ConsumeIdent())
	for l.Peek() == '!' || l.Peek() == ']' {
		b.WriteString(l.Next().Text)
	}
	return b.String(), loc
}

// skipValue consumes a default value and returns its raw text. String literals were blanked
// by normalization, so a missing value reads as "".
func skipValue(l *lexer.Lexer) string {
	switch t := l.PeekN(0); t.Kind {
	case ')':
		return ""
	case scanner.Ident:
		if l.PeekN(1).Kind == ':' {
			return ""
		}
		return l.Next().Text
	case scanner.Int, scanner.Float:
		return l.Next().Text
	case '-':
		l.Next()
		n := l.PeekN(0)
		if n.Kind != scanner.Int && n.Kind != scanner.Float {
			l.SyntaxError(fmt.Sprintf("unexpected %q after \"-\", expecting a number", n.Text))
		}
		return "-" + l.Next().Text
	case '[':
		first, last := l.SkipBalanced('[', ']')
		return compact(l.Slice(first.Offset, last.Offset+1))
	case '{':
		first, last := l.SkipBalanced('{', '}')
		return compact(l.Slice(first.Offset, last.Offset+1))
	default:
		l.SyntaxError(fmt.Sprintf("unexpected %q in default value", t.Text))
		return ""
	}
}

func compact(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
