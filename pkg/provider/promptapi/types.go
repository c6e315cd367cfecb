package promptapi

import "encoding/json"

// completionRequest is the request body for POST /api/v1/completion.
type completionRequest struct {
	Prompt        string `json:"prompt"`
	SystemMessage string `json:"systemMessage"`
	MaxTokens     *int   `json:"maxTokens,omitempty"`
}

// The backend reply has no fixed schema. The shapes below are the candidate
// decodings tried, in order, by extractReply.

// choicesReply matches OpenAI-like replies: choices[0].message.content
// or choices[0].text.
type choicesReply struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
		Text string `json:"text"`
	} `json:"choices"`
}

// contentReply matches a top-level content field.
type contentReply struct {
	Content string `json:"content"`
}

// textReply matches a top-level text field.
type textReply struct {
	Text string `json:"text"`
}

// responseReply matches a top-level response field.
type responseReply struct {
	Response string `json:"response"`
}

// replyIdentity matches the reply/log identifiers the backend may attach.
type replyIdentity struct {
	ID    string `json:"id"`
	LogID string `json:"logId"`
}

// errorReply is the error body shape some backend deployments return.
type errorReply struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
	Message string `json:"message"`
}

// rawReply is the undecoded backend payload.
type rawReply = json.RawMessage
