package provider

import "context"

// Provider is the interface for a single-shot completion backend.
//
// Complete performs exactly one completion call; there are no retries and
// no caching. Errors returned by implementations are *api.APIError values
// carrying the status code the gateway should respond with.
type Provider interface {
	// Complete sends one prompt/system-message pair to the backend and
	// returns the normalized reply. The request's prompt is guaranteed
	// non-empty by the caller.
	Complete(ctx context.Context, req *Request) (*Reply, error)

	// Close releases client resources.
	Close() error
}
