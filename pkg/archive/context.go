package archive

import "context"

type ctxKey string

const ctxKeyRequestID ctxKey = "request_id"

// WithRequestID stores the id a Source sends with the requests it makes for
// ctx.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, ctxKeyRequestID, requestID)
}

// RequestIDFromContext returns the id stored by WithRequestID, or "".
func RequestIDFromContext(ctx context.Context) string {
	reqID, _ := ctx.Value(ctxKeyRequestID).(string)
	return reqID
}
