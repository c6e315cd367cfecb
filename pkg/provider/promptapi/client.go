package promptapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/chatbridge-dev/chatbridge/pkg/api"
	"github.com/chatbridge-dev/chatbridge/pkg/debug"
	"github.com/chatbridge-dev/chatbridge/pkg/observability"
	"github.com/chatbridge-dev/chatbridge/pkg/provider"
)

// completionPath is the backend's single completion endpoint.
const completionPath = "/api/v1/completion"

// DefaultTimeout bounds the one outbound call per request.
const DefaultTimeout = 30 * time.Second

// maxReplySize caps how much of the backend payload is read.
const maxReplySize = 10 << 20 // 10 MB

// Config holds settings for the prompt backend client.
type Config struct {
	// BaseURL is the backend host, e.g. "https://backend.example.com".
	BaseURL string

	// Timeout bounds the completion call. Defaults to DefaultTimeout.
	Timeout time.Duration
}

// Client performs HTTP requests against the prompt completion backend.
// It makes a single attempt per request; callers needing resilience must
// retry at a higher layer.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

var _ provider.Provider = (*Client)(nil)

// New creates a Client for the prompt backend.
func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("promptapi: base URL must not be empty")
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
	}, nil
}

// Complete performs the single completion call against the backend.
// Network failures map to upstream-unavailable errors; HTTP error statuses
// are passed through with the backend's own status code.
func (c *Client) Complete(ctx context.Context, req *provider.Request) (*provider.Reply, error) {
	body, err := json.Marshal(completionRequest{
		Prompt:        req.Prompt,
		SystemMessage: req.SystemMessage,
		MaxTokens:     req.MaxTokens,
	})
	if err != nil {
		return nil, api.NewInternalError(fmt.Sprintf("failed to marshal backend request: %s", err.Error()))
	}

	url := c.baseURL + completionPath
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, api.NewInternalError(fmt.Sprintf("failed to create backend request: %s", err.Error()))
	}

	httpReq.Header.Set("Content-Type", "application/json")
	if req.Credential != "" {
		// Forwarded verbatim; the gateway never inspects the credential.
		httpReq.Header.Set("Authorization", req.Credential)
	}

	debug.Log("backend", "completion request", "url", url, "prompt_len", len(req.Prompt))

	start := time.Now()
	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		observability.BackendRequestsTotal.WithLabelValues("error").Inc()
		return nil, mapNetworkError(err)
	}
	defer httpResp.Body.Close()

	observability.BackendLatency.Observe(time.Since(start).Seconds())
	observability.BackendRequestsTotal.WithLabelValues(strconv.Itoa(httpResp.StatusCode)).Inc()

	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		return nil, mapHTTPError(httpResp)
	}

	data, err := io.ReadAll(io.LimitReader(httpResp.Body, maxReplySize))
	if err != nil {
		return nil, api.NewUpstreamUnavailableError(fmt.Sprintf("failed to read backend reply: %s", err.Error()))
	}

	return extractReply(data)
}

// Close releases client resources.
func (c *Client) Close() error {
	c.httpClient.CloseIdleConnections()
	return nil
}
