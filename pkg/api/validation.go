package api

import "fmt"

// ValidationConfig holds configurable limits for request validation.
type ValidationConfig struct {
	MaxMessages    int
	MaxContentSize int
}

// DefaultValidationConfig returns a ValidationConfig with sensible defaults.
func DefaultValidationConfig() ValidationConfig {
	return ValidationConfig{
		MaxMessages:    1000,
		MaxContentSize: 10 * 1024 * 1024, // 10MB
	}
}

// ValidateRequest checks a ChatCompletionRequest for structural validity.
// It returns an *APIError describing the first validation failure, or nil
// if the request is valid. Whether a user message exists is checked later
// by the normalizer, which has to extract message text anyway.
func ValidateRequest(req *ChatCompletionRequest, cfg ValidationConfig) *APIError {
	if len(req.Messages) == 0 {
		return NewInvalidRequestError("messages is required and must be a non-empty array")
	}

	if cfg.MaxMessages > 0 && len(req.Messages) > cfg.MaxMessages {
		return NewInvalidRequestError(
			fmt.Sprintf("messages exceeds maximum of %d entries", cfg.MaxMessages))
	}

	if req.MaxTokens != nil && *req.MaxTokens <= 0 {
		return NewInvalidRequestError("max_tokens must be positive")
	}

	for i, msg := range req.Messages {
		switch msg.Role {
		case "system", "user", "assistant":
		default:
			return NewInvalidRequestError(
				fmt.Sprintf("messages[%d].role must be one of system, user, assistant", i))
		}
	}

	return nil
}
