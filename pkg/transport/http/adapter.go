package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/chatbridge-dev/chatbridge/pkg/api"
	"github.com/chatbridge-dev/chatbridge/pkg/transport"
)

// Adapter serves the OpenAI-compatible gateway API over HTTP. It routes
// requests to the completion handler and serializes responses.
type Adapter struct {
	handler transport.CompletionHandler
	mux     *http.ServeMux
	config  Config
}

// Config holds configuration for the HTTP adapter.
type Config struct {
	Addr           string
	MaxBodySize    int64
	AllowedOrigins []string

	// Models is the static metadata served by GET /v1/models.
	Models []api.Model
}

// DefaultConfig returns the default adapter configuration.
func DefaultConfig() Config {
	return Config{
		Addr:           ":8080",
		MaxBodySize:    10 << 20, // 10 MB
		AllowedOrigins: []string{"*"},
	}
}

// NewAdapter creates an HTTP adapter with the given CompletionHandler.
// Middleware is applied to the handler in the given order.
func NewAdapter(handler transport.CompletionHandler, cfg Config, middlewares ...transport.Middleware) *Adapter {
	if len(middlewares) > 0 {
		handler = transport.Chain(middlewares...)(handler)
	}

	a := &Adapter{
		handler: handler,
		mux:     http.NewServeMux(),
		config:  cfg,
	}

	a.mux.HandleFunc("POST /v1/chat/completions", a.handleChatCompletions)
	a.mux.HandleFunc("GET /v1/models", a.handleListModels)
	a.mux.HandleFunc("GET /health", a.handleHealth)

	return a
}

// Handler returns the http.Handler for this adapter. The returned handler
// includes CORS and X-Request-ID propagation; auth and metrics middleware
// are composed by the server.
func (a *Adapter) Handler() http.Handler {
	return CORS(a.config.AllowedOrigins)(httpRequestIDMiddleware(a.mux))
}

// httpRequestIDMiddleware propagates the X-Request-ID header. If present on
// the request it is stored in the context and echoed on the response.
func httpRequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id := r.Header.Get("X-Request-ID"); id != "" {
			ctx := transport.ContextWithRequestID(r.Context(), id)
			r = r.WithContext(ctx)
			w.Header().Set("X-Request-ID", id)
		}
		next.ServeHTTP(w, r)
	})
}

// handleChatCompletions handles POST /v1/chat/completions.
func (a *Adapter) handleChatCompletions(w http.ResponseWriter, r *http.Request) {
	ct := r.Header.Get("Content-Type")
	if ct != "" && ct != "application/json" {
		transport.WriteErrorResponse(w,
			api.NewInvalidRequestError("Content-Type must be application/json"),
			http.StatusUnsupportedMediaType,
		)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, a.config.MaxBodySize)

	var req api.ChatCompletionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		transport.WriteAPIError(w,
			api.NewInvalidRequestError("request body must be a valid JSON object with a messages array"))
		return
	}

	writer := newSSEResponseWriter(w)
	defer writer.finish()

	if err := a.handler.CreateCompletion(r.Context(), &req, writer); err != nil {
		// Once chunks are on the wire the error body would corrupt the
		// stream; terminate the connection and let sent chunks stand.
		if writer.hasStartedStreaming() {
			slog.Warn("completion failed mid-stream",
				"request_id", transport.RequestIDFromContext(r.Context()),
				"error", err.Error(),
			)
			return
		}
		transport.WriteAPIError(w, api.AsAPIError(err))
	}
}

// handleListModels handles GET /v1/models with static metadata.
func (a *Adapter) handleListModels(w http.ResponseWriter, r *http.Request) {
	list := api.ModelList{
		Object: "list",
		Data:   a.config.Models,
	}
	if list.Data == nil {
		list.Data = []api.Model{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(list)
}

// handleHealth handles GET /health.
func (a *Adapter) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}` + "\n"))
}
