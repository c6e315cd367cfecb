package engine

import "github.com/chatbridge-dev/chatbridge/pkg/api"

// Token estimation. The backend reports no usage, so counts are
// approximated as ceil(characterLength / 4). This is a rough proxy for
// typical English text, not a tokenizer; the numbers carry no accuracy
// contract.

const charsPerToken = 4

// EstimateTokens approximates the token count of text from its byte length.
func EstimateTokens(text string) int {
	return (len(text) + charsPerToken - 1) / charsPerToken
}

// EstimateUsage builds the usage block for a completion. Prompt and
// completion are estimated independently; the total is the ceiling of
// their summed lengths, which can differ from the sum of the parts.
func EstimateUsage(prompt, completion string) api.Usage {
	return api.Usage{
		PromptTokens:     EstimateTokens(prompt),
		CompletionTokens: EstimateTokens(completion),
		TotalTokens:      (len(prompt) + len(completion) + charsPerToken - 1) / charsPerToken,
	}
}
