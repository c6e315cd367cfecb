package engine

import (
	"strings"

	"github.com/chatbridge-dev/chatbridge/pkg/api"
)

// DefaultSystemMessage is used when the conversation carries no system
// message of its own.
const DefaultSystemMessage = "You are a helpful assistant."

// ConversationContext is the flattened form of an OpenAI-style message
// list. It is built once per request and never mutated afterwards.
type ConversationContext struct {
	// Prompt is the text of the last user message.
	Prompt string

	// SystemMessage is the system instruction, including the conversation
	// history block and any structured-output instructions appended later.
	SystemMessage string

	// History holds all user and assistant turns in original order,
	// prefixed "User: " / "Assistant: ".
	History []string
}

// Normalize flattens a message list into a ConversationContext.
//
// The last system message wins; user and assistant messages become history
// lines in original order; the prompt is the text of the last user message.
// A missing or empty-text user message is an invalid request. When more
// than one history line exists, a "Conversation history:" block with all
// lines except the final one is appended to the system message.
func Normalize(messages []api.ChatMessage) (*ConversationContext, *api.APIError) {
	if len(messages) == 0 {
		return nil, api.NewInvalidRequestError("messages is required and must be a non-empty array")
	}

	systemMessage := ""
	var history []string
	prompt := ""

	for _, msg := range messages {
		text := MessageText(msg.Content)
		switch msg.Role {
		case "system":
			systemMessage = text
		case "user":
			history = append(history, "User: "+text)
			prompt = text
		case "assistant":
			history = append(history, "Assistant: "+text)
		}
	}

	if strings.TrimSpace(prompt) == "" {
		return nil, api.NewInvalidRequestError("no user message found")
	}

	if systemMessage == "" {
		systemMessage = DefaultSystemMessage
	}

	if len(history) > 1 {
		block := strings.Join(history[:len(history)-1], "\n")
		systemMessage += "\n\nConversation history:\n" + block
	}

	return &ConversationContext{
		Prompt:        prompt,
		SystemMessage: systemMessage,
		History:       history,
	}, nil
}

// MessageText extracts the text of a message content value. A plain string
// is used verbatim; a list of typed parts yields the "text" parts joined
// with single spaces, all other part types ignored.
func MessageText(content any) string {
	switch c := content.(type) {
	case string:
		return c
	case []any:
		var texts []string
		for _, part := range c {
			m, ok := part.(map[string]any)
			if !ok {
				continue
			}
			if m["type"] != "text" {
				continue
			}
			if text, ok := m["text"].(string); ok {
				texts = append(texts, text)
			}
		}
		return strings.Join(texts, " ")
	default:
		return ""
	}
}
