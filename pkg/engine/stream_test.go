package engine

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/chatbridge-dev/chatbridge/pkg/api"
)

// chunkRecorder collects everything written through the transport
// ResponseWriter interface.
type chunkRecorder struct {
	chunks   []*api.ChatCompletionChunk
	resp     *api.ChatCompletionResponse
	failFrom int // fail WriteChunk calls at and after this index; -1 never
}

func newChunkRecorder() *chunkRecorder {
	return &chunkRecorder{failFrom: -1}
}

func (r *chunkRecorder) WriteChunk(_ context.Context, chunk *api.ChatCompletionChunk) error {
	if r.failFrom >= 0 && len(r.chunks) >= r.failFrom {
		return errors.New("client disconnected")
	}
	r.chunks = append(r.chunks, chunk)
	return nil
}

func (r *chunkRecorder) WriteResponse(_ context.Context, resp *api.ChatCompletionResponse) error {
	r.resp = resp
	return nil
}

func (r *chunkRecorder) Flush() error { return nil }

func TestSplitTokens(t *testing.T) {
	tests := []struct {
		content string
		want    []string
	}{
		{"Hi there", []string{"Hi ", "there"}},
		{"one", []string{"one"}},
		{"a b c", []string{"a ", "b ", "c"}},
		{"double  space", []string{"double ", " ", "space"}},
		{"", []string{""}},
	}

	for _, tt := range tests {
		got := splitTokens(tt.content)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("splitTokens(%q) = %q, want %q", tt.content, got, tt.want)
		}
	}
}

func TestSplitTokensRoundTrip(t *testing.T) {
	contents := []string{
		"Hello world",
		"spaces  in  the   middle",
		" leading and trailing ",
		"single",
	}
	for _, content := range contents {
		joined := ""
		for _, token := range splitTokens(content) {
			joined += token
		}
		if joined != content {
			t.Errorf("concatenated tokens = %q, want %q", joined, content)
		}
	}
}

func streamingEngine(t *testing.T) *Engine {
	t.Helper()
	eng, err := New(&stubProvider{}, Config{StreamDelay: -1})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return eng
}

func TestStreamCompletion(t *testing.T) {
	eng := streamingEngine(t)
	resp := &api.ChatCompletionResponse{
		ID:      "chatcmpl-test",
		Object:  api.ObjectChatCompletion,
		Created: 1700000000,
		Model:   "test-model",
		Choices: []api.ChatChoice{{
			Message:      api.ChatResponseMessage{Role: "assistant", Content: "Hi there"},
			FinishReason: api.FinishReasonStop,
		}},
	}

	rec := newChunkRecorder()
	if err := eng.streamCompletion(context.Background(), resp, rec); err != nil {
		t.Fatalf("streamCompletion() error = %v", err)
	}

	// Two content chunks plus the terminal chunk.
	if len(rec.chunks) != 3 {
		t.Fatalf("got %d chunks, want 3", len(rec.chunks))
	}

	first := rec.chunks[0]
	if first.ID != "chatcmpl-test" || first.Object != api.ObjectChatCompletionChunk {
		t.Errorf("first chunk identity = %q/%q", first.ID, first.Object)
	}
	if first.Choices[0].Delta.Role != "assistant" {
		t.Errorf("first delta role = %q, want assistant", first.Choices[0].Delta.Role)
	}
	if got := *first.Choices[0].Delta.Content; got != "Hi " {
		t.Errorf("first delta content = %q, want %q", got, "Hi ")
	}

	second := rec.chunks[1]
	if second.Choices[0].Delta.Role != "" {
		t.Errorf("second delta role = %q, want empty", second.Choices[0].Delta.Role)
	}
	if got := *second.Choices[0].Delta.Content; got != "there" {
		t.Errorf("second delta content = %q, want %q", got, "there")
	}

	final := rec.chunks[2]
	if final.Choices[0].Delta.Content != nil {
		t.Errorf("final delta content = %v, want nil", final.Choices[0].Delta.Content)
	}
	if final.Choices[0].FinishReason == nil || *final.Choices[0].FinishReason != api.FinishReasonStop {
		t.Errorf("final finish reason = %v, want stop", final.Choices[0].FinishReason)
	}
}

func TestStreamCompletionReassemblesContent(t *testing.T) {
	eng := streamingEngine(t)
	content := "The quick  brown fox"
	resp := &api.ChatCompletionResponse{
		ID: "chatcmpl-roundtrip",
		Choices: []api.ChatChoice{{
			Message: api.ChatResponseMessage{Role: "assistant", Content: content},
		}},
	}

	rec := newChunkRecorder()
	if err := eng.streamCompletion(context.Background(), resp, rec); err != nil {
		t.Fatalf("streamCompletion() error = %v", err)
	}

	joined := ""
	for _, chunk := range rec.chunks {
		if c := chunk.Choices[0].Delta.Content; c != nil {
			joined += *c
		}
	}
	if joined != content {
		t.Errorf("reassembled content = %q, want %q", joined, content)
	}
}

func TestStreamCompletionClientDisconnect(t *testing.T) {
	eng := streamingEngine(t)
	resp := &api.ChatCompletionResponse{
		ID: "chatcmpl-gone",
		Choices: []api.ChatChoice{{
			Message: api.ChatResponseMessage{Role: "assistant", Content: "a b c d"},
		}},
	}

	rec := newChunkRecorder()
	rec.failFrom = 2
	if err := eng.streamCompletion(context.Background(), resp, rec); err != nil {
		t.Fatalf("streamCompletion() after disconnect = %v, want nil", err)
	}
	if len(rec.chunks) != 2 {
		t.Errorf("got %d chunks before disconnect, want 2", len(rec.chunks))
	}
}

func TestStreamCompletionCanceledContext(t *testing.T) {
	eng, err := New(&stubProvider{}, Config{StreamDelay: DefaultStreamDelay})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	resp := &api.ChatCompletionResponse{
		ID: "chatcmpl-cancel",
		Choices: []api.ChatChoice{{
			Message: api.ChatResponseMessage{Role: "assistant", Content: "a b c d e"},
		}},
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	rec := newChunkRecorder()
	if err := eng.streamCompletion(ctx, resp, rec); err != nil {
		t.Fatalf("streamCompletion() on canceled context = %v, want nil", err)
	}
	// The first chunk goes out before any delay; cancellation stops the rest.
	if len(rec.chunks) != 1 {
		t.Errorf("got %d chunks, want 1", len(rec.chunks))
	}
}
