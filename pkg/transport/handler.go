package transport

import (
	"context"

	"github.com/chatbridge-dev/chatbridge/pkg/api"
)

// CompletionHandler handles the core chat-completion operation. The
// implementation receives a request and writes the result (a complete
// response or a sequence of streaming chunks) to the ResponseWriter.
type CompletionHandler interface {
	CreateCompletion(ctx context.Context, req *api.ChatCompletionRequest, w ResponseWriter) error
}

// CompletionHandlerFunc is an adapter that allows using an ordinary
// function as a CompletionHandler.
type CompletionHandlerFunc func(ctx context.Context, req *api.ChatCompletionRequest, w ResponseWriter) error

// CreateCompletion calls f(ctx, req, w).
func (f CompletionHandlerFunc) CreateCompletion(ctx context.Context, req *api.ChatCompletionRequest, w ResponseWriter) error {
	return f(ctx, req, w)
}

// ResponseWriter abstracts streaming and non-streaming output for the
// handler. The transport layer creates one per request.
//
// WriteChunk and WriteResponse are mutually exclusive on a single writer.
// A chunk with a non-nil finish reason is terminal; further writes fail.
type ResponseWriter interface {
	// WriteChunk sends one streaming increment. The transport handles the
	// wire framing and the stream terminator after the terminal chunk.
	WriteChunk(ctx context.Context, chunk *api.ChatCompletionChunk) error

	// WriteResponse sends a complete non-streaming response.
	WriteResponse(ctx context.Context, resp *api.ChatCompletionResponse) error

	// Flush ensures buffered data reaches the client. Returns an error if
	// the client has disconnected.
	Flush() error
}
