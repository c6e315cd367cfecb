package provider

// Request is the flattened completion request sent to the backend.
type Request struct {
	// Prompt is the text of the last user message. Never empty when a
	// request reaches the provider.
	Prompt string

	// SystemMessage carries the system instruction, conversation history
	// block, and any structured-output instructions.
	SystemMessage string

	// MaxTokens is an optional output-size hint forwarded to the backend.
	MaxTokens *int

	// Credential is the caller's Authorization header value, forwarded
	// verbatim. It is never inspected or stored.
	Credential string
}

// Reply is the normalized backend reply.
type Reply struct {
	// ID is the backend-provided log/reply identifier, if any.
	ID string

	// Content is the extracted text content. Never empty or
	// whitespace-only; extraction fails instead.
	Content string
}
