package promptapi

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/chatbridge-dev/chatbridge/pkg/api"
)

// mapHTTPError converts a non-2xx backend response into an APIError.
// The backend's status code is always passed through; a 401 is classified
// as an authentication failure, everything else as an upstream API error.
func mapHTTPError(resp *http.Response) *api.APIError {
	message := extractErrorMessage(resp.Body)

	if resp.StatusCode == http.StatusUnauthorized {
		if message == "" {
			message = "backend rejected the provided credential"
		}
		return api.NewAuthenticationError(resp.StatusCode, message)
	}

	if message == "" {
		message = fmt.Sprintf("backend error (HTTP %d)", resp.StatusCode)
	}
	return api.NewUpstreamAPIError(resp.StatusCode, message)
}

// mapNetworkError converts a transport-level failure (connection refused,
// timeout, DNS) into an upstream-unavailable error. No HTTP status exists
// at this point, so the gateway responds with 500.
func mapNetworkError(err error) *api.APIError {
	return api.NewUpstreamUnavailableError(fmt.Sprintf("backend connection error: %s", err.Error()))
}

// extractErrorMessage tries to parse an error message out of the backend's
// error body. Both {"error":{"message":...}} and {"message":...} are
// accepted.
func extractErrorMessage(body io.Reader) string {
	if body == nil {
		return ""
	}

	data, err := io.ReadAll(io.LimitReader(body, 4096))
	if err != nil || len(data) == 0 {
		return ""
	}

	var errResp errorReply
	if err := json.Unmarshal(data, &errResp); err == nil {
		if errResp.Error.Message != "" {
			return errResp.Error.Message
		}
		if errResp.Message != "" {
			return errResp.Message
		}
	}

	return ""
}
