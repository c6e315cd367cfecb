package api

import (
	"encoding/json"
	"testing"
)

func TestNewInvalidRequestError(t *testing.T) {
	err := NewInvalidRequestError("messages is required")

	if err.Type != ErrorTypeInvalidRequest {
		t.Errorf("expected type %q, got %q", ErrorTypeInvalidRequest, err.Type)
	}
	if err.Code != 400 {
		t.Errorf("expected code 400, got %d", err.Code)
	}
	if err.Message != "messages is required" {
		t.Errorf("unexpected message: %q", err.Message)
	}
}

func TestNewMissingCredentialError(t *testing.T) {
	err := NewMissingCredentialError()

	if err.Type != ErrorTypeAuthentication {
		t.Errorf("expected type %q, got %q", ErrorTypeAuthentication, err.Type)
	}
	if err.Code != 401 {
		t.Errorf("expected code 401, got %d", err.Code)
	}
	if err.Message != "Authorization header is required" {
		t.Errorf("unexpected message: %q", err.Message)
	}
}

func TestNewAuthenticationError_PassesStatusThrough(t *testing.T) {
	err := NewAuthenticationError(403, "key disabled")

	if err.Code != 403 {
		t.Errorf("expected code 403, got %d", err.Code)
	}
	if err.Type != ErrorTypeAuthentication {
		t.Errorf("expected type %q, got %q", ErrorTypeAuthentication, err.Type)
	}
}

func TestNewUpstreamAPIError_PassesStatusThrough(t *testing.T) {
	err := NewUpstreamAPIError(503, "backend overloaded")

	if err.Code != 503 {
		t.Errorf("expected code 503, got %d", err.Code)
	}
	if err.Type != ErrorTypeAPI {
		t.Errorf("expected type %q, got %q", ErrorTypeAPI, err.Type)
	}
}

func TestUpstreamFailureErrorsAre500(t *testing.T) {
	for name, err := range map[string]*APIError{
		"unavailable":   NewUpstreamUnavailableError("connection refused"),
		"empty reply":   NewEmptyUpstreamReplyError(),
		"empty content": NewEmptyUpstreamContentError(),
		"internal":      NewInternalError("boom"),
	} {
		if err.Code != 500 {
			t.Errorf("%s: expected code 500, got %d", name, err.Code)
		}
		if err.Type != ErrorTypeAPI {
			t.Errorf("%s: expected type %q, got %q", name, ErrorTypeAPI, err.Type)
		}
	}
}

func TestErrorResponseJSONShape(t *testing.T) {
	body, err := json.Marshal(ErrorResponse{Error: NewMissingCredentialError()})
	if err != nil {
		t.Fatalf("unexpected marshal error: %v", err)
	}

	want := `{"error":{"message":"Authorization header is required","type":"authentication_error","code":401}}`
	if string(body) != want {
		t.Errorf("expected body %s, got %s", want, body)
	}
}

func TestAPIError_Error(t *testing.T) {
	err := NewUpstreamAPIError(502, "bad gateway")
	if err.Error() != "api_error (502): bad gateway" {
		t.Errorf("unexpected error string: %q", err.Error())
	}
}

func TestAsAPIError(t *testing.T) {
	orig := NewInvalidRequestError("nope")
	if AsAPIError(orig) != orig {
		t.Error("expected APIError to pass through unchanged")
	}

	wrapped := AsAPIError(json.Unmarshal([]byte("{"), &struct{}{}))
	if wrapped.Type != ErrorTypeAPI {
		t.Errorf("expected type %q, got %q", ErrorTypeAPI, wrapped.Type)
	}
	if wrapped.Code != 500 {
		t.Errorf("expected code 500, got %d", wrapped.Code)
	}
}
