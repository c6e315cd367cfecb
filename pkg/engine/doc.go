// Package engine implements the protocol translation core of chatbridge.
// The Engine flattens an OpenAI-style conversation into the backend's
// single-turn (prompt, system message) form, negotiates structured JSON
// output, normalizes the backend reply, and either writes one completion
// object or replays it as a sequence of streaming chunks.
//
// Engine implements transport.CompletionHandler, bridging the HTTP
// transport to the provider backend.
package engine
