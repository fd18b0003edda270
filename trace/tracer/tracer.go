// The tracer package provides tracing functionality.
package tracer

import (
	"context"

	"github.com/graph-gophers/graphql-sdl/errors"
)

// CompileFinishFunc and StageFinishFunc receive the error that ended the compile or
// stage, or nil on success.
type CompileFinishFunc = func(*errors.SchemaError)
type StageFinishFunc = func(*errors.SchemaError)

// Tracer observes one compile and each of its pipeline stages. Stage names are
// "normalize", "extract", "link" and "derive".
type Tracer interface {
	TraceCompile(ctx context.Context, id string, schemaText string) (context.Context, CompileFinishFunc)
	TraceStage(ctx context.Context, stage string) (context.Context, StageFinishFunc)
}

// MaterializeTracer is implemented by tracers that also observe expansion of the model
// into value shapes.
type MaterializeTracer interface {
	TraceMaterialize(ctx context.Context, typeName string, maxDepth int) func(error)
}
