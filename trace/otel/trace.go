package otel

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	oteltrace "go.opentelemetry.io/otel/trace"

	"github.com/graph-gophers/graphql-sdl/errors"
	"github.com/graph-gophers/graphql-sdl/trace/tracer"
)

// DefaultTracer creates a tracer using a default name.
func DefaultTracer() *Tracer {
	return &Tracer{
		Tracer: otel.Tracer("graphql-sdl"),
	}
}

// Tracer is an OpenTelemetry implementation for graphql-sdl. Set the Tracer
// property to your tracer instance as required.
type Tracer struct {
	Tracer oteltrace.Tracer
}

func (t *Tracer) TraceCompile(ctx context.Context, id string, schemaText string) (context.Context, tracer.CompileFinishFunc) {
	spanCtx, span := t.Tracer.Start(ctx, "GraphQL SDL Compile")
	span.SetAttributes(
		attribute.String("graphql.sdl.id", id),
		attribute.Int("graphql.sdl.length", len(schemaText)),
	)

	return spanCtx, func(err *errors.SchemaError) {
		setStatus(span, err)
		span.End()
	}
}

func (t *Tracer) TraceStage(ctx context.Context, stage string) (context.Context, tracer.StageFinishFunc) {
	spanCtx, span := t.Tracer.Start(ctx, fmt.Sprintf("Stage: %v", stage))
	span.SetAttributes(attribute.String("graphql.sdl.stage", stage))

	return spanCtx, func(err *errors.SchemaError) {
		setStatus(span, err)
		span.End()
	}
}

func (t *Tracer) TraceMaterialize(ctx context.Context, typeName string, maxDepth int) func(error) {
	_, span := t.Tracer.Start(ctx, "GraphQL SDL Materialize")
	span.SetAttributes(
		attribute.String("graphql.type", typeName),
		attribute.Int("graphql.sdl.maxDepth", maxDepth),
	)

	return func(err error) {
		if err != nil {
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}
}

func setStatus(span oteltrace.Span, err *errors.SchemaError) {
	if err == nil {
		return
	}
	var attributes []attribute.KeyValue
	if err.Declaration != "" {
		attributes = append(attributes, attribute.String("graphql.type", err.Declaration))
	}
	if err.Field != "" {
		attributes = append(attributes, attribute.String("graphql.field", err.Field))
	}
	span.SetAttributes(attributes...)
	span.SetStatus(codes.Error, err.Error())
}
