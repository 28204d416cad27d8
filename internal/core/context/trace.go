package appctx

import (
	"context"
)

// TraceInfo identifies a request across log lines and spans.
type TraceInfo struct {
	TraceID   string
	RequestID string
}

type traceKey struct{}

// WithTrace returns a context carrying trace identifiers.
func WithTrace(ctx context.Context, trace *TraceInfo) context.Context {
	return context.WithValue(ctx, traceKey{}, trace)
}

// GetTrace returns trace identifiers from context, or nil.
func GetTrace(ctx context.Context) *TraceInfo {
	if t, ok := ctx.Value(traceKey{}).(*TraceInfo); ok {
		return t
	}
	return nil
}
