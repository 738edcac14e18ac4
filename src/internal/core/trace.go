// FILE: autolog/src/internal/core/trace.go
package core

import "context"

type traceKey struct{}

// ContextWithTraceID returns a derived context carrying a correlation id.
func ContextWithTraceID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, traceKey{}, id)
}

// TraceIDFromContext extracts the ambient correlation id, if any.
func TraceIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(traceKey{}).(string)
	return id
}
