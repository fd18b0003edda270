package opentracing

import (
	"context"

	opentracing "github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/ext"
	"github.com/opentracing/opentracing-go/log"

	"github.com/graph-gophers/graphql-sdl/errors"
	"github.com/graph-gophers/graphql-sdl/trace/tracer"
)

// Tracer implements the tracer.Tracer interface and creates OpenTracing spans.
type Tracer struct{}

func (Tracer) TraceCompile(ctx context.Context, id string, schemaText string) (context.Context, tracer.CompileFinishFunc) {
	span, spanCtx := opentracing.StartSpanFromContext(ctx, "GraphQL SDL compile")
	span.SetTag("graphql.sdl.id", id)
	span.SetTag("graphql.sdl.length", len(schemaText))
	span.LogFields(log.String("graphql.sdl", schemaText))

	return spanCtx, func(err *errors.SchemaError) {
		setError(span, err)
		span.Finish()
	}
}

func (Tracer) TraceStage(ctx context.Context, stage string) (context.Context, tracer.StageFinishFunc) {
	span, spanCtx := opentracing.StartSpanFromContext(ctx, "SDL "+stage)
	span.SetTag("graphql.sdl.stage", stage)

	return spanCtx, func(err *errors.SchemaError) {
		setError(span, err)
		span.Finish()
	}
}

func (Tracer) TraceMaterialize(ctx context.Context, typeName string, maxDepth int) func(error) {
	span, _ := opentracing.StartSpanFromContext(ctx, "SDL materialize")
	span.SetTag("graphql.type", typeName)
	span.SetTag("graphql.sdl.maxDepth", maxDepth)

	return func(err error) {
		if err != nil {
			ext.Error.Set(span, true)
			span.SetTag("graphql.error", err.Error())
		}
		span.Finish()
	}
}

func setError(span opentracing.Span, err *errors.SchemaError) {
	if err == nil {
		return
	}
	ext.Error.Set(span, true)
	span.SetTag("graphql.error", err.Error())
	if err.Declaration != "" {
		span.SetTag("graphql.type", err.Declaration)
	}
	if err.Field != "" {
		span.SetTag("graphql.field", err.Field)
	}
}
