package auth

import (
	"log/slog"
	"net/http"

	"github.com/chatbridge-dev/chatbridge/pkg/api"
	"github.com/chatbridge-dev/chatbridge/pkg/transport"
)

// DefaultBypassEndpoints lists endpoints that skip the credential check.
var DefaultBypassEndpoints = []string{"/health", "/v1/models", "/metrics"}

// Middleware creates HTTP middleware that requires an Authorization header
// on every non-bypassed endpoint and injects its value into the request
// context for verbatim forwarding to the backend.
func Middleware(bypassEndpoints []string) func(http.Handler) http.Handler {
	bypass := make(map[string]bool, len(bypassEndpoints))
	for _, ep := range bypassEndpoints {
		bypass[ep] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if bypass[r.URL.Path] || r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			credential := r.Header.Get("Authorization")
			if credential == "" {
				slog.Warn("missing credential",
					"path", r.URL.Path,
					"remote_addr", r.RemoteAddr,
				)
				transport.WriteAPIError(w, api.NewMissingCredentialError())
				return
			}

			ctx := WithCredential(r.Context(), credential)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
