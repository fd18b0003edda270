package opentracing_test

import (
	"context"
	"testing"

	opentracing "github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/mocktracer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sdl "github.com/graph-gophers/graphql-sdl"
	"github.com/graph-gophers/graphql-sdl/example/starwars"
	sdlopentracing "github.com/graph-gophers/graphql-sdl/trace/opentracing"
	"github.com/graph-gophers/graphql-sdl/trace/tracer"
)

func TestInterfaceImplementation(t *testing.T) {
	var _ tracer.MaterializeTracer = &sdlopentracing.Tracer{}
	var _ tracer.Tracer = &sdlopentracing.Tracer{}
}

func TestTracerOption(t *testing.T) {
	_, err := sdl.Compile(context.Background(), starwars.Schema, sdl.Tracer(sdlopentracing.Tracer{}))
	if err != nil {
		t.Fatal(err)
	}
}

func useMockTracer(t *testing.T) *mocktracer.MockTracer {
	t.Helper()
	prev := opentracing.GlobalTracer()
	mt := mocktracer.New()
	opentracing.SetGlobalTracer(mt)
	t.Cleanup(func() { opentracing.SetGlobalTracer(prev) })
	return mt
}

func TestSpans(t *testing.T) {
	mt := useMockTracer(t)

	s, err := sdl.Compile(context.Background(), starwars.Schema, sdl.Tracer(sdlopentracing.Tracer{}))
	require.NoError(t, err)

	spans := mt.FinishedSpans()
	var names []string
	for _, span := range spans {
		names = append(names, span.OperationName)
	}
	assert.Equal(t, []string{"SDL normalize", "SDL extract", "SDL link", "SDL derive", "GraphQL SDL compile"}, names)

	compile := spans[len(spans)-1]
	assert.Equal(t, s.ID(), compile.Tag("graphql.sdl.id"))
	assert.Equal(t, len(starwars.Schema), compile.Tag("graphql.sdl.length"))
	assert.Nil(t, compile.Tag("error"))

	for _, stage := range spans[:len(spans)-1] {
		assert.Equal(t, compile.SpanContext.SpanID, stage.ParentID, stage.OperationName)
	}
}

func TestSpans_Error(t *testing.T) {
	mt := useMockTracer(t)

	_, err := sdl.Compile(context.Background(), `type Query { hero: Nope }`, sdl.Tracer(sdlopentracing.Tracer{}))
	require.Error(t, err)

	spans := mt.FinishedSpans()
	require.Len(t, spans, 4)

	link := spans[2]
	assert.Equal(t, "SDL link", link.OperationName)
	assert.Equal(t, true, link.Tag("error"))
	assert.Equal(t, "Query", link.Tag("graphql.type"))
	assert.Equal(t, "hero", link.Tag("graphql.field"))

	compile := spans[3]
	assert.Equal(t, "GraphQL SDL compile", compile.OperationName)
	assert.Equal(t, true, compile.Tag("error"))
	assert.Equal(t, err.Error(), compile.Tag("graphql.error"))
}

func TestSpans_Materialize(t *testing.T) {
	mt := useMockTracer(t)

	s, err := sdl.Compile(context.Background(), starwars.Schema, sdl.Tracer(sdlopentracing.Tracer{}), sdl.MaxMaterializeDepth(2))
	require.NoError(t, err)
	mt.Reset()

	_, err = s.Materialize(context.Background(), "Nope")
	require.Error(t, err)

	spans := mt.FinishedSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "SDL materialize", spans[0].OperationName)
	assert.Equal(t, "Nope", spans[0].Tag("graphql.type"))
	assert.Equal(t, 2, spans[0].Tag("graphql.sdl.maxDepth"))
	assert.Equal(t, true, spans[0].Tag("error"))
}
