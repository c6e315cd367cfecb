// Command mock-backend runs a deterministic prompt completion server
// for testing the gateway end to end. It answers POST /api/v1/completion
// with predictable replies based on request content analysis.
//
// Configuration:
//
//	MOCK_PORT - Listen port (default: 9090)
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"
)

func main() {
	port := os.Getenv("MOCK_PORT")
	if port == "" {
		port = "9090"
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/completion", handleCompletion)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok\n"))
	})

	srv := &http.Server{Addr: ":" + port, Handler: mux}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("mock backend starting", "port", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("mock backend failed", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	slog.Info("mock backend shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	srv.Shutdown(shutdownCtx)
}

// --- Request and response types ---

type completionRequest struct {
	Prompt        string `json:"prompt"`
	SystemMessage string `json:"systemMessage"`
	MaxTokens     *int   `json:"maxTokens,omitempty"`
}

type completionResponse struct {
	ID       string `json:"id"`
	Response string `json:"response"`
}

// --- Handler ---

func handleCompletion(w http.ResponseWriter, r *http.Request) {
	var req completionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":{"message":"invalid request"}}`, http.StatusBadRequest)
		return
	}

	// Unauthenticated callers are rejected the way a real backend would.
	if r.Header.Get("Authorization") == "" {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":{"message":"missing credential"}}`))
		return
	}

	resp := classifyAndRespond(&req)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func classifyAndRespond(req *completionRequest) completionResponse {
	if strings.Contains(req.SystemMessage, "valid JSON object matching schema") {
		return structuredResponse(req)
	}

	if strings.Contains(req.SystemMessage, "Conversation history:") {
		return historyResponse(req)
	}

	return basicTextResponse(req)
}

func basicTextResponse(req *completionRequest) completionResponse {
	text := "Hello, nice day!"

	prompt := strings.ToLower(req.Prompt)
	switch {
	case strings.Contains(prompt, "count from 1 to 5"):
		text = "1, 2, 3, 4, 5"
	case strings.Contains(prompt, "capital of france"):
		text = "Paris"
	}

	return makeTextResponse(text)
}

// structuredResponse answers schema-carrying requests with the two
// shapes the gateway's parser must handle: valid JSON when the schema
// asks for language and title, free text with recognizable markers
// otherwise.
func structuredResponse(req *completionRequest) completionResponse {
	if strings.Contains(req.SystemMessage, `"language"`) && strings.Contains(req.SystemMessage, `"title"`) {
		if strings.Contains(strings.ToLower(req.Prompt), "loose") {
			return makeTextResponse("The language is French\ntitle: \"Bonjour\"")
		}
		return makeTextResponse(`{"language": "English", "title": "A Fine Day"}`)
	}
	return makeTextResponse(`{"result": "ok"}`)
}

func historyResponse(req *completionRequest) completionResponse {
	lines := 0
	if idx := strings.Index(req.SystemMessage, "Conversation history:"); idx >= 0 {
		history := req.SystemMessage[idx:]
		lines = strings.Count(history, "\n")
	}
	return makeTextResponse(fmt.Sprintf("I remember our %d earlier messages.", lines))
}

var replySeq int

func makeTextResponse(text string) completionResponse {
	replySeq++
	return completionResponse{
		ID:       fmt.Sprintf("mock-%d", replySeq),
		Response: text,
	}
}
