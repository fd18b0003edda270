// Package sdl compiles GraphQL schema definition language documents into a linked schema
// model and derives the call signature of every Query field.
package sdl

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-logr/logr"
	"github.com/segmentio/ksuid"
	"golang.org/x/sync/errgroup"

	"github.com/graph-gophers/graphql-sdl/ast"
	"github.com/graph-gophers/graphql-sdl/errors"
	"github.com/graph-gophers/graphql-sdl/internal/extract"
	"github.com/graph-gophers/graphql-sdl/internal/link"
	"github.com/graph-gophers/graphql-sdl/internal/normalize"
	"github.com/graph-gophers/graphql-sdl/internal/resolvers"
	"github.com/graph-gophers/graphql-sdl/log"
	"github.com/graph-gophers/graphql-sdl/materialize"
	"github.com/graph-gophers/graphql-sdl/printer"
	"github.com/graph-gophers/graphql-sdl/trace/noop"
	"github.com/graph-gophers/graphql-sdl/trace/tracer"
)

// Schema is a compiled schema document. It is read-only and safe for concurrent use.
type Schema struct {
	id    string
	text  string
	clean string

	table        *ast.DeclarationTable
	model        *ast.Schema
	resolvers    []*ast.ResolverSignature
	resolversErr error

	tracer      tracer.Tracer
	logger      *logr.Logger
	panicLogger log.PanicLogger
	maxDepth    int
}

// SchemaOpt is an option to pass to Compile or MustCompile.
type SchemaOpt func(*Schema)

// Tracer is used to trace compiles and their stages. It defaults to noop.Tracer.
func Tracer(t tracer.Tracer) SchemaOpt {
	return func(s *Schema) {
		s.tracer = t
	}
}

// Logger is used to log compile progress. It defaults to the logger carried by the
// context passed to Compile.
func Logger(l logr.Logger) SchemaOpt {
	return func(s *Schema) {
		s.logger = &l
	}
}

// PanicHandler is used to log panics recovered while compiling. The panic is returned to
// the caller as an error. It defaults to log.DefaultLogger.
func PanicHandler(l log.PanicLogger) SchemaOpt {
	return func(s *Schema) {
		s.panicLogger = l
	}
}

// MaxMaterializeDepth bounds Materialize and MaterializeAll. Zero, the default, means
// only cycles stop expansion.
func MaxMaterializeDepth(n int) SchemaOpt {
	return func(s *Schema) {
		s.maxDepth = n
	}
}

// Normalize strips descriptions, comments, directive declarations and directive
// invocations from an SDL document. Line and column positions of the remaining text are
// unchanged.
func Normalize(schemaString string) string {
	return normalize.Normalize(schemaString)
}

// MustCompile calls Compile and panics on error.
func MustCompile(schemaString string, opts ...SchemaOpt) *Schema {
	s, err := Compile(context.Background(), schemaString, opts...)
	if err != nil {
		panic(err)
	}
	return s
}

// Compile normalizes, extracts and links schemaString. When the document declares a
// Query type, resolver signatures are derived as well; otherwise Resolvers reports
// errors.ErrMissingQueryType. ctx is checked between stages.
//
// A failed compile returns exactly one error, a *errors.SchemaError unless the context
// was cancelled.
func Compile(ctx context.Context, schemaString string, opts ...SchemaOpt) (s *Schema, err error) {
	s = &Schema{
		id:          ksuid.New().String(),
		text:        schemaString,
		tracer:      noop.Tracer{},
		panicLogger: &log.DefaultLogger{},
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger != nil {
		ctx = log.WithLogger(ctx, *s.logger)
	}
	logger := log.FromContext(ctx).WithValues("compile", s.id)

	traceCtx, finish := s.tracer.TraceCompile(ctx, s.id, schemaString)
	defer func() {
		if r := recover(); r != nil {
			s.panicLogger.LogPanic(ctx, r)
			s, err = nil, errors.Errorf(nil, "panic occurred: %v", r)
		}
		serr, ok := err.(*errors.SchemaError)
		if err != nil && !ok {
			serr = errors.Errorf(err, "%v", err)
		}
		finish(serr)
	}()

	start := time.Now()
	if err := s.compile(traceCtx, logger); err != nil {
		logger.Error(err, "compile failed")
		return nil, err
	}
	logger.V(1).Info("compiled", "declarations", s.table.Len(), "resolvers", len(s.resolvers), "duration", time.Since(start))
	return s, nil
}

func (s *Schema) compile(ctx context.Context, logger logr.Logger) error {
	stages := []struct {
		name string
		run  func() error
	}{
		{"normalize", func() error {
			s.clean = normalize.Normalize(s.text)
			return nil
		}},
		{"extract", func() (err error) {
			s.table, err = extract.Extract(s.clean)
			return err
		}},
		{"link", func() (err error) {
			s.model, err = link.Link(s.table)
			return err
		}},
		{"derive", func() error {
			if s.table.Query() == nil {
				_, s.resolversErr = resolvers.Derive(s.table, s.model)
				return nil
			}
			var err error
			s.resolvers, err = resolvers.Derive(s.table, s.model)
			return err
		}},
	}

	for _, stage := range stages {
		if err := ctx.Err(); err != nil {
			return err
		}
		start := time.Now()
		_, finish := s.tracer.TraceStage(ctx, stage.name)
		err := stage.run()
		serr, _ := err.(*errors.SchemaError)
		finish(serr)
		if err != nil {
			return err
		}
		logger.V(1).Info("stage finished", "stage", stage.name, "duration", time.Since(start))
	}
	return nil
}

// CompileAll compiles independent documents concurrently, keyed by name. If any document
// fails, the error of one failing document is returned, prefixed with its name. A failing
// document does not affect the others.
func CompileAll(ctx context.Context, documents map[string]string, opts ...SchemaOpt) (map[string]*Schema, error) {
	var (
		g  errgroup.Group
		mu sync.Mutex
	)
	schemas := make(map[string]*Schema, len(documents))
	for name, text := range documents {
		name, text := name, text
		g.Go(func() error {
			s, err := Compile(ctx, text, opts...)
			if err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			mu.Lock()
			schemas[name] = s
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return schemas, nil
}

// ID identifies this compile in logs and traces.
func (s *Schema) ID() string {
	return s.id
}

// Model returns the linked schema model.
func (s *Schema) Model() *ast.Schema {
	return s.model
}

// Declarations returns the declaration table built from the document.
func (s *Schema) Declarations() *ast.DeclarationTable {
	return s.table
}

// Resolvers returns one signature per Query field, in declaration order.
func (s *Schema) Resolvers() ([]*ast.ResolverSignature, error) {
	if s.resolversErr != nil {
		return nil, s.resolversErr
	}
	return s.resolvers, nil
}

// Materialize expands the type declared as name into a value shape, bounded by
// MaxMaterializeDepth and by cycles.
func (s *Schema) Materialize(ctx context.Context, name string) (*materialize.Shape, error) {
	finish := func(error) {}
	if t, ok := s.tracer.(tracer.MaterializeTracer); ok {
		finish = t.TraceMaterialize(ctx, name, s.maxDepth)
	}
	shape, err := materialize.Type(s.model, name, materialize.Options{MaxDepth: s.maxDepth})
	finish(err)
	return shape, err
}

// MaterializeAll expands every object type except Query.
func (s *Schema) MaterializeAll() map[string]*materialize.Shape {
	return materialize.All(s.model, materialize.Options{MaxDepth: s.maxDepth})
}

// SDL re-emits the model as canonical SDL. See printer.Print.
func (s *Schema) SDL() string {
	return printer.Print(s.model, printer.DefaultIndent)
}
