package otel_test

import (
	"context"
	"testing"

	"go.opentelemetry.io/otel"

	sdl "github.com/graph-gophers/graphql-sdl"
	"github.com/graph-gophers/graphql-sdl/example/starwars"
	otelsdl "github.com/graph-gophers/graphql-sdl/trace/otel"
	"github.com/graph-gophers/graphql-sdl/trace/tracer"
)

func TestInterfaceImplementation(t *testing.T) {
	var _ tracer.MaterializeTracer = &otelsdl.Tracer{}
	var _ tracer.Tracer = &otelsdl.Tracer{}
}

func TestTracerOption(t *testing.T) {
	_, err := sdl.Compile(context.Background(), starwars.Schema, sdl.Tracer(otelsdl.DefaultTracer()))
	if err != nil {
		t.Fatal(err)
	}

	s, err := sdl.Compile(context.Background(), starwars.Schema, sdl.Tracer(&otelsdl.Tracer{Tracer: otel.Tracer("example")}))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.Materialize(context.Background(), "Human"); err != nil {
		t.Fatal(err)
	}
}

func TestTracerOption_Error(t *testing.T) {
	_, err := sdl.Compile(context.Background(), `type Query { a: Nope }`, sdl.Tracer(otelsdl.DefaultTracer()))
	if err == nil {
		t.Fatal("expected an error")
	}
}
