package engine

import (
	"time"

	"github.com/chatbridge-dev/chatbridge/pkg/api"
)

// DefaultStreamDelay is the pause inserted between streamed chunks. The
// backend reply is already complete before streaming begins; the delay only
// emulates progressive generation for clients that expect it.
const DefaultStreamDelay = 50 * time.Millisecond

// DefaultModelLabel is reported when neither the caller nor the
// configuration names a model.
const DefaultModelLabel = "chatbridge-backend"

// Config holds engine settings.
type Config struct {
	// DefaultModel is the model label reported when the request omits one.
	DefaultModel string

	// StreamDelay is the artificial pause between streamed chunks.
	// Zero means DefaultStreamDelay; negative disables the delay.
	StreamDelay time.Duration

	// Validation bounds inbound requests. Zero value uses
	// api.DefaultValidationConfig.
	Validation api.ValidationConfig
}

func (c *Config) streamDelay() time.Duration {
	switch {
	case c.StreamDelay < 0:
		return 0
	case c.StreamDelay == 0:
		return DefaultStreamDelay
	default:
		return c.StreamDelay
	}
}

func (c *Config) validation() api.ValidationConfig {
	if c.Validation == (api.ValidationConfig{}) {
		return api.DefaultValidationConfig()
	}
	return c.Validation
}
