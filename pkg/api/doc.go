// Package api defines the OpenAI-compatible wire types served by the
// chatbridge gateway: chat completion requests, responses, streaming
// chunks, and the structured error format shared by all failure paths.
//
// The backend's own wire format lives with its client in
// pkg/provider/promptapi; this package only covers the gateway's
// outer contract.
package api
