package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/chatbridge-dev/chatbridge/pkg/api"
	"github.com/chatbridge-dev/chatbridge/pkg/auth"
	"github.com/chatbridge-dev/chatbridge/pkg/debug"
	"github.com/chatbridge-dev/chatbridge/pkg/observability"
	"github.com/chatbridge-dev/chatbridge/pkg/provider"
	"github.com/chatbridge-dev/chatbridge/pkg/transport"
)

// Engine orchestrates request processing between the transport layer and
// the prompt backend. It holds no per-request state; every request is
// handled independently.
type Engine struct {
	provider provider.Provider
	cfg      Config
}

var _ transport.CompletionHandler = (*Engine)(nil)

// New creates an Engine. The provider must not be nil.
func New(p provider.Provider, cfg Config) (*Engine, error) {
	if p == nil {
		return nil, fmt.Errorf("engine: provider must not be nil")
	}
	return &Engine{provider: p, cfg: cfg}, nil
}

// CreateCompletion runs the full translation pipeline: validate and
// flatten the conversation, negotiate structured output, call the backend
// once, normalize its reply, and write either a complete response or a
// synthetic stream.
func (e *Engine) CreateCompletion(ctx context.Context, req *api.ChatCompletionRequest, w transport.ResponseWriter) error {
	if apiErr := api.ValidateRequest(req, e.cfg.validation()); apiErr != nil {
		return apiErr
	}

	cc, apiErr := Normalize(req.Messages)
	if apiErr != nil {
		return apiErr
	}

	systemMessage := cc.SystemMessage
	schema := req.ResponseFormat.ResolvedSchema()
	if req.ResponseFormat.WantsJSONSchema() {
		if instruction := SchemaInstruction(schema); instruction != "" {
			systemMessage += "\n\n" + instruction
		}
	}

	debug.Log("engine", "dispatching completion",
		"prompt_len", len(cc.Prompt),
		"history_lines", len(cc.History),
		"structured", req.ResponseFormat.WantsJSONSchema(),
		"stream", req.Stream,
	)

	reply, err := e.provider.Complete(ctx, &provider.Request{
		Prompt:        cc.Prompt,
		SystemMessage: systemMessage,
		MaxTokens:     req.MaxTokens,
		Credential:    auth.CredentialFromContext(ctx),
	})
	if err != nil {
		return err
	}

	content := reply.Content
	if req.ResponseFormat.WantsJSONSchema() {
		content = coerceStructured(content, schema)
	}

	resp := e.assembleCompletion(req, cc, reply.ID, content)

	observability.EstimatedTokensTotal.WithLabelValues("input").Add(float64(resp.Usage.PromptTokens))
	observability.EstimatedTokensTotal.WithLabelValues("output").Add(float64(resp.Usage.CompletionTokens))

	if req.Stream {
		return e.streamCompletion(ctx, resp, w)
	}
	return w.WriteResponse(ctx, resp)
}

// coerceStructured applies the response-side negotiation and serializes a
// non-string result back to JSON text for the message content. Coercion is
// best-effort: on any failure, or when it would empty a non-empty reply
// (a backend answering with a bare `""` literal), the original text is kept.
func coerceStructured(content string, schema map[string]any) string {
	parsed := ParseStructuredResponse(content, schema)
	if text, ok := parsed.(string); ok {
		if strings.TrimSpace(text) == "" {
			return content
		}
		return text
	}
	data, err := json.Marshal(parsed)
	if err != nil {
		return content
	}
	return string(data)
}

// assembleCompletion builds the OpenAI-style completion object. The ID is
// the backend's own reply ID when present; the model label falls back from
// the caller's choice to the configured default to a fixed label. The
// finish reason is always "stop" because the backend has no finer signal.
func (e *Engine) assembleCompletion(req *api.ChatCompletionRequest, cc *ConversationContext, replyID, content string) *api.ChatCompletionResponse {
	id := replyID
	if id == "" {
		id = api.NewCompletionID()
	}

	model := req.Model
	if model == "" {
		model = e.cfg.DefaultModel
	}
	if model == "" {
		model = DefaultModelLabel
	}

	return &api.ChatCompletionResponse{
		ID:      id,
		Object:  api.ObjectChatCompletion,
		Created: time.Now().Unix(),
		Model:   model,
		Choices: []api.ChatChoice{{
			Message: api.ChatResponseMessage{
				Role:    "assistant",
				Content: content,
			},
			FinishReason: api.FinishReasonStop,
		}},
		Usage: EstimateUsage(cc.Prompt, content),
	}
}
