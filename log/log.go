package log

import (
	"context"
	"fmt"
	"log"
	"runtime"

	"github.com/go-logr/logr"
)

// FromContext returns the logger carried by ctx, or a logger that discards everything.
func FromContext(ctx context.Context) logr.Logger {
	return logr.FromContextOrDiscard(ctx)
}

func WithLogger(ctx context.Context, logger logr.Logger) context.Context {
	return logr.NewContext(ctx, logger)
}

// PanicLogger is the interface used to log panics that occur while compiling a schema. It is settable via sdl.PanicHandler.
type PanicLogger interface {
	LogPanic(ctx context.Context, value interface{})
}

// LoggerFunc is a function type that implements the PanicLogger interface.
type LoggerFunc func(ctx context.Context, value interface{})

// LogPanic calls the LoggerFunc with the given context and panic value.
func (f LoggerFunc) LogPanic(ctx context.Context, value interface{}) {
	f(ctx, value)
}

// DefaultLogger is the default logger used to log panics that occur while compiling.
// It writes to the logger in the context, or to the standard logger when there is none.
type DefaultLogger struct{}

// LogPanic is used to log recovered panic values together with the stack.
func (l *DefaultLogger) LogPanic(ctx context.Context, value interface{}) {
	const size = 64 << 10
	buf := make([]byte, size)
	buf = buf[:runtime.Stack(buf, false)]

	if logger := FromContext(ctx); logger.GetSink() != nil {
		logger.Error(fmt.Errorf("%v", value), "sdl: panic occurred", "stack", string(buf))
		return
	}
	log.Printf("sdl: panic occurred: %v\n%s", value, buf)
}
