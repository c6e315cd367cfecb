package api

// Chat Completions request/response types. These mirror the OpenAI
// Chat Completions API format expected by downstream chat clients.

// ChatCompletionRequest is the request body for POST /v1/chat/completions.
type ChatCompletionRequest struct {
	Model          string          `json:"model,omitempty"`
	Messages       []ChatMessage   `json:"messages"`
	Stream         bool            `json:"stream,omitempty"`
	MaxTokens      *int            `json:"max_tokens,omitempty"`
	ResponseFormat *ResponseFormat `json:"response_format,omitempty"`
}

// ChatMessage is a single conversation message. Content is either a plain
// string or an ordered list of typed parts ([{"type":"text","text":...}]),
// matching the two content conventions OpenAI clients send.
type ChatMessage struct {
	Role    string `json:"role"`
	Content any    `json:"content"`
}

// ContentPart is one element of a multi-part message content list.
// Only parts with Type == "text" carry usable text.
type ContentPart struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}

// ResponseFormat requests structured output. The gateway understands the
// flat {type, schema} shape as well as the nested OpenAI
// {type, json_schema: {schema}} convention; the flat schema wins when
// both are present.
type ResponseFormat struct {
	Type       string            `json:"type"`
	Schema     map[string]any    `json:"schema,omitempty"`
	JSONSchema *JSONSchemaFormat `json:"json_schema,omitempty"`
}

// JSONSchemaFormat is the nested json_schema variant of ResponseFormat.
type JSONSchemaFormat struct {
	Name   string         `json:"name,omitempty"`
	Schema map[string]any `json:"schema,omitempty"`
}

// FormatTypeJSONSchema is the only response_format type the gateway acts on.
const FormatTypeJSONSchema = "json_schema"

// ResolvedSchema returns the schema object regardless of which shape the
// caller used, or nil if no schema was supplied.
func (f *ResponseFormat) ResolvedSchema() map[string]any {
	if f == nil {
		return nil
	}
	if len(f.Schema) > 0 {
		return f.Schema
	}
	if f.JSONSchema != nil {
		return f.JSONSchema.Schema
	}
	return nil
}

// WantsJSONSchema reports whether the caller requested schema-conforming
// output and actually supplied a schema.
func (f *ResponseFormat) WantsJSONSchema() bool {
	return f != nil && f.Type == FormatTypeJSONSchema && f.ResolvedSchema() != nil
}

// ChatCompletionResponse is the non-streaming success body.
type ChatCompletionResponse struct {
	ID      string       `json:"id"`
	Object  string       `json:"object"`
	Created int64        `json:"created"`
	Model   string       `json:"model"`
	Choices []ChatChoice `json:"choices"`
	Usage   Usage        `json:"usage"`
}

// ChatChoice is one completion choice. The gateway always produces
// exactly one.
type ChatChoice struct {
	Index        int                 `json:"index"`
	Message      ChatResponseMessage `json:"message"`
	FinishReason string              `json:"finish_reason"`
}

// ChatResponseMessage is the assistant message inside a choice.
type ChatResponseMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Usage holds approximate token counts. The gateway's backend reports no
// usage, so these are estimated from character lengths (see pkg/engine).
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// ChatCompletionChunk is a single streamed increment of a completion.
type ChatCompletionChunk struct {
	ID      string            `json:"id"`
	Object  string            `json:"object"`
	Created int64             `json:"created"`
	Model   string            `json:"model"`
	Choices []ChatChunkChoice `json:"choices"`
}

// ChatChunkChoice is the delta-carrying choice of a streaming chunk.
// FinishReason is nil for content chunks and "stop" on the final chunk.
type ChatChunkChoice struct {
	Index        int       `json:"index"`
	Delta        ChatDelta `json:"delta"`
	FinishReason *string   `json:"finish_reason"`
}

// ChatDelta holds the incremental content of a streaming chunk.
type ChatDelta struct {
	Role    string  `json:"role,omitempty"`
	Content *string `json:"content,omitempty"`
}

// Object type labels for completion payloads.
const (
	ObjectChatCompletion      = "chat.completion"
	ObjectChatCompletionChunk = "chat.completion.chunk"
)

// FinishReasonStop is the only finish reason the gateway ever reports;
// the backend provides no partial/truncated signal.
const FinishReasonStop = "stop"

// ModelList is the response body for GET /v1/models.
type ModelList struct {
	Object string  `json:"object"`
	Data   []Model `json:"data"`
}

// Model describes one entry in the model listing.
type Model struct {
	ID      string `json:"id"`
	Object  string `json:"object"`
	OwnedBy string `json:"owned_by"`
}
