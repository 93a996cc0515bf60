// Package context carries request-scoped tracing identifiers so that log
// lines emitted anywhere below the HTTP layer can be correlated.
package context

import (
	"context"
)

// TraceContext identifies one request across log output.
type TraceContext struct {
	TraceID   string
	RequestID string
}

type traceKey struct{}

// WithTrace attaches trace to ctx.
func WithTrace(ctx context.Context, trace *TraceContext) context.Context {
	return context.WithValue(ctx, traceKey{}, trace)
}

// GetTrace returns the trace attached to ctx, or nil.
func GetTrace(ctx context.Context) *TraceContext {
	t, _ := ctx.Value(traceKey{}).(*TraceContext)
	return t
}
