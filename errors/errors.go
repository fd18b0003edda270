package errors

import (
	"fmt"
)

// Kinds of schema errors. A *SchemaError unwraps to exactly one of these, so callers can
// test for a failure class with the standard library's errors.Is.
var (
	ErrSyntax                = kind("syntax error")
	ErrMalformedField        = kind("malformed field")
	ErrUnknownType           = kind("unknown type")
	ErrDuplicateDeclaration  = kind("duplicate declaration")
	ErrDuplicateEnumValue    = kind("duplicate enum value")
	ErrCyclicInheritance     = kind("cyclic inheritance")
	ErrNotAnInterface        = kind("not an interface")
	ErrMissingInterfaceField = kind("missing interface field")
	ErrFieldTypeMismatch     = kind("field type mismatch")
	ErrInvalidUnionMember    = kind("invalid union member")
	ErrMissingQueryType      = kind("missing query type")
)

type kind string

func (k kind) Error() string { return string(k) }

// SchemaError describes the single failure of one compile. Declaration, Field and TypeText
// carry as much context as the failing stage had available.
type SchemaError struct {
	Message     string     `json:"message"`
	Locations   []Location `json:"locations,omitempty"`
	Rule        string     `json:"rule,omitempty"`
	Declaration string     `json:"declaration,omitempty"`
	Field       string     `json:"field,omitempty"`
	TypeText    string     `json:"type,omitempty"`
	Kind        error      `json:"-"`
}

type Location struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

func (a Location) Before(b Location) bool {
	return a.Line < b.Line || (a.Line == b.Line && a.Column < b.Column)
}

func (a Location) String() string {
	return fmt.Sprintf("(line %d, column %d)", a.Line, a.Column)
}

func Errorf(k error, format string, a ...interface{}) *SchemaError {
	return &SchemaError{
		Message: fmt.Sprintf(format, a...),
		Kind:    k,
	}
}

// At appends loc to the error's locations and returns the error.
func (err *SchemaError) At(loc ...Location) *SchemaError {
	err.Locations = append(err.Locations, loc...)
	return err
}

func (err *SchemaError) Error() string {
	if err == nil {
		return "<nil>"
	}
	str := fmt.Sprintf("sdl: %s", err.Message)
	for _, loc := range err.Locations {
		str += " " + loc.String()
	}
	return str
}

func (err *SchemaError) Unwrap() error {
	if err == nil {
		return nil
	}
	return err.Kind
}

var _ error = &SchemaError{}
