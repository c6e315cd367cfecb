package promptapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/chatbridge-dev/chatbridge/pkg/api"
	"github.com/chatbridge-dev/chatbridge/pkg/provider"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := New(Config{BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("unexpected error creating client: %v", err)
	}
	t.Cleanup(func() { client.Close() })
	return client, srv
}

func TestClient_Complete_Success(t *testing.T) {
	var gotBody completionRequest
	var gotAuth string

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/v1/completion" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("failed to decode request body: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"log-42","content":"Paris"}`))
	})

	maxTokens := 128
	reply, err := client.Complete(context.Background(), &provider.Request{
		Prompt:        "What is the capital of France?",
		SystemMessage: "You are a helpful assistant.",
		MaxTokens:     &maxTokens,
		Credential:    "Bearer user-key",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if reply.Content != "Paris" {
		t.Errorf("expected content %q, got %q", "Paris", reply.Content)
	}
	if reply.ID != "log-42" {
		t.Errorf("expected ID %q, got %q", "log-42", reply.ID)
	}
	// The caller's credential must reach the backend verbatim.
	if gotAuth != "Bearer user-key" {
		t.Errorf("expected verbatim Authorization header, got %q", gotAuth)
	}
	if gotBody.Prompt != "What is the capital of France?" {
		t.Errorf("unexpected prompt: %q", gotBody.Prompt)
	}
	if gotBody.SystemMessage != "You are a helpful assistant." {
		t.Errorf("unexpected system message: %q", gotBody.SystemMessage)
	}
	if gotBody.MaxTokens == nil || *gotBody.MaxTokens != 128 {
		t.Errorf("unexpected maxTokens: %v", gotBody.MaxTokens)
	}
}

func TestClient_Complete_OmitsMaxTokensWhenUnset(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var raw map[string]any
		json.NewDecoder(r.Body).Decode(&raw)
		if _, present := raw["maxTokens"]; present {
			t.Error("expected maxTokens to be omitted")
		}
		w.Write([]byte(`{"content":"ok"}`))
	})

	_, err := client.Complete(context.Background(), &provider.Request{
		Prompt:        "Hi",
		SystemMessage: "sys",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestClient_Complete_Backend401(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":{"message":"bad key"}}`))
	})

	_, err := client.Complete(context.Background(), &provider.Request{Prompt: "Hi"})
	apiErr, ok := err.(*api.APIError)
	if !ok {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Type != api.ErrorTypeAuthentication {
		t.Errorf("expected type %q, got %q", api.ErrorTypeAuthentication, apiErr.Type)
	}
	if apiErr.Code != 401 {
		t.Errorf("expected code 401, got %d", apiErr.Code)
	}
}

func TestClient_Complete_Backend503Passthrough(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	_, err := client.Complete(context.Background(), &provider.Request{Prompt: "Hi"})
	apiErr, ok := err.(*api.APIError)
	if !ok {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Code != 503 {
		t.Errorf("expected pass-through code 503, got %d", apiErr.Code)
	}
	if apiErr.Type != api.ErrorTypeAPI {
		t.Errorf("expected type %q, got %q", api.ErrorTypeAPI, apiErr.Type)
	}
}

func TestClient_Complete_ConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close() // nothing is listening anymore

	client, err := New(Config{BaseURL: url})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = client.Complete(context.Background(), &provider.Request{Prompt: "Hi"})
	apiErr, ok := err.(*api.APIError)
	if !ok {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Code != 500 {
		t.Errorf("expected code 500 for network failure, got %d", apiErr.Code)
	}
	if apiErr.Type != api.ErrorTypeAPI {
		t.Errorf("expected type %q, got %q", api.ErrorTypeAPI, apiErr.Type)
	}
}

func TestClient_Complete_Timeout(t *testing.T) {
	client, err := New(Config{BaseURL: "http://127.0.0.1:0", Timeout: 10 * time.Millisecond})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = client.Complete(context.Background(), &provider.Request{Prompt: "Hi"})
	if err == nil {
		t.Fatal("expected an error")
	}
	if _, ok := err.(*api.APIError); !ok {
		t.Errorf("expected APIError, got %T", err)
	}
}

func TestClient_Complete_EmptyBody(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	_, err := client.Complete(context.Background(), &provider.Request{Prompt: "Hi"})
	apiErr, ok := err.(*api.APIError)
	if !ok {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Message != "backend returned an empty reply" {
		t.Errorf("unexpected message: %q", apiErr.Message)
	}
}

func TestClient_Complete_NoCredentialHeader(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if _, present := r.Header["Authorization"]; present {
			t.Error("expected no Authorization header when credential is empty")
		}
		w.Write([]byte(`{"content":"ok"}`))
	})

	if _, err := client.Complete(context.Background(), &provider.Request{Prompt: "Hi"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestNew_RequiresBaseURL(t *testing.T) {
	if _, err := New(Config{}); err == nil {
		t.Error("expected error for empty base URL")
	}
}

func TestNew_TrimsTrailingSlash(t *testing.T) {
	client, err := New(Config{BaseURL: "http://backend.local/"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if client.baseURL != "http://backend.local" {
		t.Errorf("expected trailing slash removed, got %q", client.baseURL)
	}
}
