package evidence

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/claimscope/claimscope/internal/model"
)

func TestNewAnthropicProvider_RequiresKey(t *testing.T) {
	_, err := NewAnthropicProvider(model.EvidenceConfig{})
	if err == nil {
		t.Fatal("expected error for missing API key")
	}
}

func TestAnthropicProvider_Complete(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/messages" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("x-api-key") != "test-key" {
			t.Errorf("missing api key header")
		}
		if r.Header.Get("anthropic-version") == "" {
			t.Errorf("missing anthropic-version header")
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"content": [
				{"type": "text", "text": "Hello "},
				{"type": "tool_use"},
				{"type": "text", "text": "world"}
			],
			"stop_reason": "end_turn"
		}`))
	}))
	defer server.Close()

	p, err := NewAnthropicProvider(model.EvidenceConfig{
		APIKey:  "test-key",
		BaseURL: server.URL,
	})
	if err != nil {
		t.Fatalf("new provider: %v", err)
	}

	got, err := p.Complete(context.Background(), Request{System: "sys", Prompt: "hi"})
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if got != "Hello world" {
		t.Errorf("expected concatenated text blocks, got %q", got)
	}
}

func TestAnthropicProvider_RateLimited(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error": {"type": "rate_limit_error", "message": "slow down"}}`))
	}))
	defer server.Close()

	p, err := NewAnthropicProvider(model.EvidenceConfig{
		APIKey:  "test-key",
		BaseURL: server.URL,
	})
	if err != nil {
		t.Fatalf("new provider: %v", err)
	}

	_, err = p.Complete(context.Background(), Request{Prompt: "hi"})
	if !errors.Is(err, ErrRateLimited) {
		t.Errorf("expected ErrRateLimited, got %v", err)
	}
}

func TestAnthropicProvider_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error": {"type": "invalid_request_error", "message": "bad prompt"}}`))
	}))
	defer server.Close()

	p, err := NewAnthropicProvider(model.EvidenceConfig{
		APIKey:  "test-key",
		BaseURL: server.URL,
	})
	if err != nil {
		t.Fatalf("new provider: %v", err)
	}

	_, err = p.Complete(context.Background(), Request{Prompt: "hi"})
	if err == nil {
		t.Fatal("expected error for 400 response")
	}
	if errors.Is(err, ErrRateLimited) {
		t.Error("400 must not map to ErrRateLimited")
	}
}

func TestNewProvider_UnknownProvider(t *testing.T) {
	_, err := NewProvider(model.EvidenceConfig{Provider: "llama-on-a-roomba", APIKey: "k"})
	if err == nil {
		t.Fatal("expected error for unknown provider")
	}
}
