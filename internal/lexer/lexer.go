package lexer

import (
	"fmt"
	"strings"
	"text/scanner"

	"github.com/graph-gophers/graphql-sdl/errors"
)

type syntaxError struct {
	message string
	loc     errors.Location
}

// Token is one scanned token. Offset is the byte offset of the token in the source.
type Token struct {
	Kind   rune
	Text   string
	Loc    errors.Location
	Offset int
}

// Lexer tokenizes normalized SDL text. Commas are insignificant and treated as whitespace.
// Any number of tokens can be looked at before they are consumed.
type Lexer struct {
	sc    *scanner.Scanner
	src   string
	base  errors.Location
	ahead []Token
}

type Ident struct {
	Name string
	Loc  errors.Location
}

func New(s string) *Lexer {
	return NewAt(s, errors.Location{Line: 1, Column: 1})
}

// NewAt returns a lexer for s, a fragment that starts at base in the enclosing document.
// Locations reported by the lexer are relative to that document.
func NewAt(s string, base errors.Location) *Lexer {
	sc := &scanner.Scanner{}
	sc.Init(strings.NewReader(s))
	sc.Mode = scanner.ScanIdents | scanner.ScanInts | scanner.ScanFloats
	sc.Whitespace = 1<<'\t' | 1<<'\n' | 1<<'\r' | 1<<' ' | 1<<','
	sc.IsIdentRune = isNameRune
	sc.Error = func(*scanner.Scanner, string) {}

	return &Lexer{sc: sc, src: s, base: base}
}

// isNameRune accepts /[_A-Za-z][_0-9A-Za-z]*/.
func isNameRune(ch rune, i int) bool {
	return ch == '_' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || (i > 0 && ch >= '0' && ch <= '9')
}

func (l *Lexer) CatchSyntaxError(f func()) (errRes *errors.SchemaError) {
	defer func() {
		if err := recover(); err != nil {
			if err, ok := err.(syntaxError); ok {
				errRes = errors.Errorf(errors.ErrSyntax, "syntax error: %s", err.message).At(err.loc)
				return
			}
			panic(err)
		}
	}()

	f()
	return
}

func (l *Lexer) fill(n int) {
	for len(l.ahead) <= n {
		kind := l.sc.Scan()
		l.ahead = append(l.ahead, Token{
			Kind:   kind,
			Text:   l.sc.TokenText(),
			Loc:    l.location(l.sc.Position),
			Offset: l.sc.Offset,
		})
	}
}

func (l *Lexer) location(p scanner.Position) errors.Location {
	if p.Line <= 1 {
		return errors.Location{Line: l.base.Line, Column: l.base.Column + p.Column - 1}
	}
	return errors.Location{Line: l.base.Line + p.Line - 1, Column: p.Column}
}

// Peek returns the kind of the next token without consuming it.
func (l *Lexer) Peek() rune {
	return l.PeekN(0).Kind
}

// PeekN returns the token n positions ahead; PeekN(0) is the next token.
func (l *Lexer) PeekN(n int) Token {
	l.fill(n)
	return l.ahead[n]
}

// PeekIdent returns the text of the next token if it is a name, and "" otherwise.
func (l *Lexer) PeekIdent() string {
	if t := l.PeekN(0); t.Kind == scanner.Ident {
		return t.Text
	}
	return ""
}

func (l *Lexer) Next() Token {
	t := l.PeekN(0)
	l.ahead = l.ahead[1:]
	return t
}

func (l *Lexer) ConsumeIdent() string {
	return l.ConsumeIdentWithLoc().Name
}

func (l *Lexer) ConsumeIdentWithLoc() Ident {
	t := l.PeekN(0)
	if t.Kind != scanner.Ident {
		l.SyntaxError(fmt.Sprintf("unexpected %s, expecting Name", describe(t)))
	}
	l.Next()
	return Ident{Name: t.Text, Loc: t.Loc}
}

func (l *Lexer) ConsumeKeyword(keyword string) {
	if t := l.PeekN(0); t.Kind != scanner.Ident || t.Text != keyword {
		l.SyntaxError(fmt.Sprintf("unexpected %s, expecting %q", describe(t), keyword))
	}
	l.Next()
}

func (l *Lexer) ConsumeToken(expected rune) Token {
	t := l.PeekN(0)
	if t.Kind != expected {
		l.SyntaxError(fmt.Sprintf("unexpected %s, expecting %s", describe(t), scanner.TokenString(expected)))
	}
	return l.Next()
}

// SkipBalanced consumes a group starting with open and ending with the matching close,
// and returns the opening and closing tokens. Nested groups of the same kind are skipped.
func (l *Lexer) SkipBalanced(open, close rune) (first, last Token) {
	first = l.ConsumeToken(open)
	depth := 1
	for {
		t := l.Next()
		switch t.Kind {
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return first, t
			}
		case scanner.EOF:
			panic(syntaxError{
				message: fmt.Sprintf("unterminated %s, expecting %s", scanner.TokenString(open), scanner.TokenString(close)),
				loc:     first.Loc,
			})
		}
	}
}

// Slice returns the source text between two byte offsets.
func (l *Lexer) Slice(start, end int) string {
	return l.src[start:end]
}

func (l *Lexer) SyntaxError(message string) {
	panic(syntaxError{message: message, loc: l.Location()})
}

// Location returns the location of the next token.
func (l *Lexer) Location() errors.Location {
	return l.PeekN(0).Loc
}

func describe(t Token) string {
	if t.Kind == scanner.EOF {
		return "<EOF>"
	}
	return fmt.Sprintf("%q", t.Text)
}
