package transport

import (
	"context"

	"github.com/google/uuid"

	"github.com/chatbridge-dev/chatbridge/pkg/api"
)

// RequestID returns middleware that assigns a unique request ID to each
// request. If the context already carries one (set by the HTTP adapter
// from the X-Request-ID header), that value is kept.
func RequestID() Middleware {
	return func(next CompletionHandler) CompletionHandler {
		return CompletionHandlerFunc(func(ctx context.Context, req *api.ChatCompletionRequest, w ResponseWriter) error {
			if RequestIDFromContext(ctx) == "" {
				ctx = ContextWithRequestID(ctx, uuid.NewString())
			}
			return next.CreateCompletion(ctx, req, w)
		})
	}
}
