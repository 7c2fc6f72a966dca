package tracing

import "context"

type traceIDKey struct{}

// WithTraceID возвращает context с trace ID прогона.
func WithTraceID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, traceIDKey{}, id)
}

// TraceIDFromContext возвращает trace ID или пустую строку.
//
//	logger.With("trace_id", tracing.TraceIDFromContext(ctx)).Info("Прогон начат")
func TraceIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if id, ok := ctx.Value(traceIDKey{}).(string); ok {
		return id
	}
	return ""
}
