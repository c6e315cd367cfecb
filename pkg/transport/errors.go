package transport

import (
	"encoding/json"
	"net/http"

	"github.com/chatbridge-dev/chatbridge/pkg/api"
)

// HTTPStatusFromError returns the HTTP status an APIError maps to. The
// status lives on the error itself (backend statuses are passed through);
// a zero code falls back to 500.
func HTTPStatusFromError(err *api.APIError) int {
	if err.Code > 0 {
		return err.Code
	}
	return http.StatusInternalServerError
}

// WriteErrorResponse writes a JSON error body using the ErrorResponse
// wrapper format from pkg/api.
func WriteErrorResponse(w http.ResponseWriter, apiErr *api.APIError, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(api.ErrorResponse{Error: apiErr})
}

// WriteAPIError writes an APIError response, deriving the HTTP status from
// the error.
func WriteAPIError(w http.ResponseWriter, apiErr *api.APIError) {
	WriteErrorResponse(w, apiErr, HTTPStatusFromError(apiErr))
}
