// Package noop defines a no-op tracer implementation.
package noop

import (
	"context"

	"github.com/graph-gophers/graphql-sdl/errors"
	"github.com/graph-gophers/graphql-sdl/trace/tracer"
)

// Tracer is a no-op tracer that does nothing.
type Tracer struct{}

func (Tracer) TraceCompile(ctx context.Context, id string, schemaText string) (context.Context, tracer.CompileFinishFunc) {
	return ctx, func(*errors.SchemaError) {}
}

func (Tracer) TraceStage(ctx context.Context, stage string) (context.Context, tracer.StageFinishFunc) {
	return ctx, func(*errors.SchemaError) {}
}

func (Tracer) TraceMaterialize(ctx context.Context, typeName string, maxDepth int) func(error) {
	return func(error) {}
}
