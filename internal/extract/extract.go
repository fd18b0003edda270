package extract

import (
	"fmt"
	"text/scanner"

	"github.com/graph-gophers/graphql-sdl/ast"
	"github.com/graph-gophers/graphql-sdl/errors"
	"github.com/graph-gophers/graphql-sdl/internal/lexer"
)

// discarded root operation types are recognized and skipped.
var discarded = map[string]bool{
	"Mutation":     true,
	"Subscription": true,
}

var keywords = map[string]bool{
	"type":      true,
	"interface": true,
	"enum":      true,
	"union":     true,
	"scalar":    true,
	"input":     true,
	"schema":    true,
	"extend":    true,
	"directive": true,
}

// Extract builds the declaration table of a normalized document. Bodies are kept as raw
// text; nothing inside them is interpreted here.
func Extract(clean string) (*ast.DeclarationTable, error) {
	table := ast.NewDeclarationTable()
	l := lexer.New(clean)

	var err error
	syntaxErr := l.CatchSyntaxError(func() {
		err = parseDocument(table, l)
	})
	if syntaxErr != nil {
		syntaxErr.Rule = "Document"
		return nil, syntaxErr
	}
	if err != nil {
		return nil, err
	}
	return table, nil
}

func parseDocument(table *ast.DeclarationTable, l *lexer.Lexer) error {
	for l.Peek() != scanner.EOF {
		var d *ast.Declaration
		switch x := l.ConsumeIdent(); x {
		case "type":
			d = parseObjectDecl(l)
			if discarded[d.Name] {
				continue
			}
		case "interface":
			d = parseInterfaceDecl(l)
		case "enum":
			d = parseEnumDecl(l)
		case "union":
			d = parseUnionDecl(l)
		case "scalar":
			ident := l.ConsumeIdentWithLoc()
			d = &ast.Declaration{Kind: ast.KindScalar, Name: ident.Name, Loc: ident.Loc}
		case "input":
			d = parseInputDecl(l)
		case "schema":
			l.SkipBalanced('{', '}')
			continue
		case "extend":
			l.SyntaxError("schema extensions are not supported")
		default:
			l.SyntaxError(fmt.Sprintf(`unexpected %q, expecting "type", "enum", "interface", "union", "scalar", "input" or "schema"`, x))
		}
		if err := table.Add(d); err != nil {
			return err
		}
	}
	return nil
}

func parseObjectDecl(l *lexer.Lexer) *ast.Declaration {
	d := &ast.Declaration{Kind: ast.KindObject}
	ident := l.ConsumeIdentWithLoc()
	d.Name = ident.Name
	d.Loc = ident.Loc
	if d.Name == "Query" {
		d.Kind = ast.KindQuery
	}
	d.Implements = parseImplements(l)
	d.Body, d.BodyLoc = parseBody(l)
	return d
}

func parseInterfaceDecl(l *lexer.Lexer) *ast.Declaration {
	d := &ast.Declaration{Kind: ast.KindInterface}
	ident := l.ConsumeIdentWithLoc()
	d.Name = ident.Name
	d.Loc = ident.Loc
	d.Implements = parseImplements(l)
	d.Body, d.BodyLoc = parseBody(l)
	return d
}

func parseEnumDecl(l *lexer.Lexer) *ast.Declaration {
	d := &ast.Declaration{Kind: ast.KindEnum}
	ident := l.ConsumeIdentWithLoc()
	d.Name = ident.Name
	d.Loc = ident.Loc
	d.Body, d.BodyLoc = parseBody(l)
	return d
}

// parseInputDecl records an input type by name. Its body is kept but never split.
func parseInputDecl(l *lexer.Lexer) *ast.Declaration {
	d := &ast.Declaration{Kind: ast.KindInput}
	ident := l.ConsumeIdentWithLoc()
	d.Name = ident.Name
	d.Loc = ident.Loc
	d.Body, d.BodyLoc = parseBody(l)
	return d
}

func parseUnionDecl(l *lexer.Lexer) *ast.Declaration {
	d := &ast.Declaration{Kind: ast.KindUnion}
	ident := l.ConsumeIdentWithLoc()
	d.Name = ident.Name
	d.Loc = ident.Loc
	l.ConsumeToken('=')
	if l.Peek() == '|' {
		l.ConsumeToken('|')
	}
	d.Members = []string{l.ConsumeIdent()}
	for l.Peek() == '|' {
		l.ConsumeToken('|')
		d.Members = append(d.Members, l.ConsumeIdent())
	}
	return d
}

// parseImplements reads `implements A & B`. Interfaces separated only by whitespace or
// commas are accepted as well.
func parseImplements(l *lexer.Lexer) []string {
	if l.PeekIdent() != "implements" {
		return nil
	}
	l.ConsumeKeyword("implements")
	var names []string
	for {
		if l.Peek() == '&' {
			l.ConsumeToken('&')
			continue
		}
		if name := l.PeekIdent(); name != "" && !keywords[name] {
			names = append(names, l.ConsumeIdent())
			continue
		}
		break
	}
	if len(names) == 0 {
		l.SyntaxError("expecting at least one interface after \"implements\"")
	}
	return names
}

// parseBody returns the text between balanced braces. A declaration without braces has an
// empty body.
func parseBody(l *lexer.Lexer) (string, errors.Location) {
	if l.Peek() != '{' {
		return "", l.Location()
	}
	open, closing := l.SkipBalanced('{', '}')
	loc := open.Loc
	loc.Column++
	return l.Slice(open.Offset+1, closing.Offset), loc
}
