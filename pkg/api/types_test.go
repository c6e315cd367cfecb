package api

import (
	"encoding/json"
	"testing"
)

func TestResponseFormat_ResolvedSchema_FlatShape(t *testing.T) {
	var rf ResponseFormat
	raw := `{"type":"json_schema","schema":{"properties":{"language":{},"title":{}}}}`
	if err := json.Unmarshal([]byte(raw), &rf); err != nil {
		t.Fatalf("unexpected unmarshal error: %v", err)
	}

	schema := rf.ResolvedSchema()
	if schema == nil {
		t.Fatal("expected schema to resolve")
	}
	if _, ok := schema["properties"]; !ok {
		t.Error("expected properties key in resolved schema")
	}
	if !rf.WantsJSONSchema() {
		t.Error("expected WantsJSONSchema to be true")
	}
}

func TestResponseFormat_ResolvedSchema_NestedShape(t *testing.T) {
	var rf ResponseFormat
	raw := `{"type":"json_schema","json_schema":{"name":"doc","schema":{"properties":{}}}}`
	if err := json.Unmarshal([]byte(raw), &rf); err != nil {
		t.Fatalf("unexpected unmarshal error: %v", err)
	}

	if rf.ResolvedSchema() == nil {
		t.Fatal("expected nested schema to resolve")
	}
	if !rf.WantsJSONSchema() {
		t.Error("expected WantsJSONSchema to be true")
	}
}

func TestResponseFormat_WantsJSONSchema_Negative(t *testing.T) {
	if (*ResponseFormat)(nil).WantsJSONSchema() {
		t.Error("nil format should not want a schema")
	}
	if (&ResponseFormat{Type: "text"}).WantsJSONSchema() {
		t.Error("type=text should not want a schema")
	}
	if (&ResponseFormat{Type: FormatTypeJSONSchema}).WantsJSONSchema() {
		t.Error("json_schema without a schema should not want one")
	}
}

func TestChatCompletionChunk_JSONShape(t *testing.T) {
	content := "Hi "
	chunk := ChatCompletionChunk{
		ID:      "chatcmpl-x",
		Object:  ObjectChatCompletionChunk,
		Created: 1700000000,
		Model:   "bridge-1",
		Choices: []ChatChunkChoice{
			{Delta: ChatDelta{Role: "assistant", Content: &content}},
		},
	}

	body, err := json.Marshal(chunk)
	if err != nil {
		t.Fatalf("unexpected marshal error: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(body, &decoded); err != nil {
		t.Fatalf("unexpected unmarshal error: %v", err)
	}
	if decoded["object"] != "chat.completion.chunk" {
		t.Errorf("unexpected object: %v", decoded["object"])
	}

	choices := decoded["choices"].([]any)
	choice := choices[0].(map[string]any)
	// finish_reason must be present and null on content chunks.
	if v, ok := choice["finish_reason"]; !ok || v != nil {
		t.Errorf("expected null finish_reason, got %v (present=%v)", v, ok)
	}
	delta := choice["delta"].(map[string]any)
	if delta["content"] != "Hi " {
		t.Errorf("unexpected delta content: %v", delta["content"])
	}
}

func TestChatMessage_MultiPartContentDecodes(t *testing.T) {
	raw := `{"role":"user","content":[{"type":"text","text":"Hello"},{"type":"image_url","image_url":{"url":"x"}}]}`
	var msg ChatMessage
	if err := json.Unmarshal([]byte(raw), &msg); err != nil {
		t.Fatalf("unexpected unmarshal error: %v", err)
	}
	parts, ok := msg.Content.([]any)
	if !ok {
		t.Fatalf("expected content to decode as a list, got %T", msg.Content)
	}
	if len(parts) != 2 {
		t.Errorf("expected 2 parts, got %d", len(parts))
	}
}
