// Package net holds shared request-scoped context helpers for the http layer
package net

import "context"

type reqIDKey struct{}

// WithRequestID attaches a request id to the context
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, reqIDKey{}, id)
}

// RequestID retrieves a request id from context, empty when absent
func RequestID(ctx context.Context) string {
	v := ctx.Value(reqIDKey{})
	s, _ := v.(string)
	return s
}
