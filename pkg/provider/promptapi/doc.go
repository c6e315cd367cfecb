// Package promptapi implements the provider adapter for the single-turn
// prompt completion backend. It handles request serialization, reply
// content extraction across the backend's heterogeneous payload shapes,
// and error mapping.
//
// The backend exposes one endpoint, POST /api/v1/completion, taking
// {prompt, systemMessage, maxTokens?} and returning a full (non-streaming)
// reply. The caller's Authorization header is forwarded verbatim.
package promptapi
