package promptapi

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/chatbridge-dev/chatbridge/pkg/api"
	"github.com/chatbridge-dev/chatbridge/pkg/provider"
)

// replyDecoder attempts to extract text content from one candidate reply
// shape. It returns the text and whether the shape matched with non-empty
// content.
type replyDecoder func(raw rawReply) (string, bool)

// replyDecoders are tried in order; the first non-empty match wins.
// The order is part of the contract: an OpenAI-like choices array beats
// top-level content, which beats text, response, and a bare string reply.
var replyDecoders = []replyDecoder{
	decodeChoices,
	decodeContentField,
	decodeTextField,
	decodeResponseField,
	decodePlainString,
}

// extractReply normalizes a backend payload into a provider.Reply.
// An absent payload fails with an empty-reply error; a payload that no
// decoder can turn into non-whitespace text fails with an empty-content
// error.
func extractReply(data []byte) (*provider.Reply, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, api.NewEmptyUpstreamReplyError()
	}

	content := ""
	for _, decode := range replyDecoders {
		if text, ok := decode(trimmed); ok {
			content = text
			break
		}
	}

	if strings.TrimSpace(content) == "" {
		return nil, api.NewEmptyUpstreamContentError()
	}

	return &provider.Reply{
		ID:      extractReplyID(trimmed),
		Content: content,
	}, nil
}

// extractReplyID pulls the backend's reply identifier, trying "id" then
// "logId". Returns empty when neither is present.
func extractReplyID(raw rawReply) string {
	var ident replyIdentity
	if err := json.Unmarshal(raw, &ident); err != nil {
		return ""
	}
	if ident.ID != "" {
		return ident.ID
	}
	return ident.LogID
}

func decodeChoices(raw rawReply) (string, bool) {
	var r choicesReply
	if err := json.Unmarshal(raw, &r); err != nil || len(r.Choices) == 0 {
		return "", false
	}
	if c := r.Choices[0].Message.Content; strings.TrimSpace(c) != "" {
		return c, true
	}
	if t := r.Choices[0].Text; strings.TrimSpace(t) != "" {
		return t, true
	}
	return "", false
}

func decodeContentField(raw rawReply) (string, bool) {
	var r contentReply
	if err := json.Unmarshal(raw, &r); err != nil || strings.TrimSpace(r.Content) == "" {
		return "", false
	}
	return r.Content, true
}

func decodeTextField(raw rawReply) (string, bool) {
	var r textReply
	if err := json.Unmarshal(raw, &r); err != nil || strings.TrimSpace(r.Text) == "" {
		return "", false
	}
	return r.Text, true
}

func decodeResponseField(raw rawReply) (string, bool) {
	var r responseReply
	if err := json.Unmarshal(raw, &r); err != nil || strings.TrimSpace(r.Response) == "" {
		return "", false
	}
	return r.Response, true
}

func decodePlainString(raw rawReply) (string, bool) {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil || strings.TrimSpace(s) == "" {
		return "", false
	}
	return s, true
}
