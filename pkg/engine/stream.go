package engine

import (
	"context"
	"strings"
	"time"

	"github.com/chatbridge-dev/chatbridge/pkg/api"
	"github.com/chatbridge-dev/chatbridge/pkg/debug"
	"github.com/chatbridge-dev/chatbridge/pkg/transport"
)

// Synthetic streaming. The backend reply is complete before emission
// starts; the emitter replays it as word-sized deltas with an artificial
// delay so clients built for token streaming behave normally.

// splitTokens splits content on single-space boundaries and re-appends the
// separating space to all but the last token, so concatenating the tokens
// reconstructs the original string exactly, including repeated spaces.
func splitTokens(content string) []string {
	words := strings.Split(content, " ")
	tokens := make([]string, len(words))
	for i, w := range words {
		if i < len(words)-1 {
			tokens[i] = w + " "
		} else {
			tokens[i] = w
		}
	}
	return tokens
}

// streamCompletion replays resp as a sequence of chunks on w: one delta
// chunk per token, a final empty-delta chunk with finish reason "stop",
// then the transport's stream terminator. Emission order is token order.
//
// If the client disconnects mid-stream, emission stops promptly and
// without error; chunks already sent stand.
func (e *Engine) streamCompletion(ctx context.Context, resp *api.ChatCompletionResponse, w transport.ResponseWriter) error {
	content := resp.Choices[0].Message.Content
	tokens := splitTokens(content)
	delay := e.cfg.streamDelay()

	debug.Log("streaming", "starting emission", "id", resp.ID, "tokens", len(tokens), "delay", delay)

	for i, token := range tokens {
		if i > 0 && delay > 0 {
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(delay):
			}
		}

		chunk := &api.ChatCompletionChunk{
			ID:      resp.ID,
			Object:  api.ObjectChatCompletionChunk,
			Created: resp.Created,
			Model:   resp.Model,
			Choices: []api.ChatChunkChoice{{
				Delta: api.ChatDelta{Content: &token},
			}},
		}
		if i == 0 {
			chunk.Choices[0].Delta.Role = "assistant"
		}

		if err := w.WriteChunk(ctx, chunk); err != nil {
			// Client gone; nothing further to send and no error body owed.
			debug.Log("streaming", "client disconnected", "id", resp.ID, "after_tokens", i)
			return nil
		}
	}

	stop := api.FinishReasonStop
	final := &api.ChatCompletionChunk{
		ID:      resp.ID,
		Object:  api.ObjectChatCompletionChunk,
		Created: resp.Created,
		Model:   resp.Model,
		Choices: []api.ChatChunkChoice{{
			Delta:        api.ChatDelta{},
			FinishReason: &stop,
		}},
	}
	if err := w.WriteChunk(ctx, final); err != nil {
		return nil
	}

	return nil
}
