package provider

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func decodeBody(t *testing.T, req *Request) map[string]any {
	t.Helper()
	var payload map[string]any
	if err := json.Unmarshal(req.Body, &payload); err != nil {
		t.Fatalf("request body is not valid JSON: %v", err)
	}
	return payload
}

func headerValue(req *Request, key string) string {
	for _, h := range req.Headers {
		if h.Key == key {
			return h.Value
		}
	}
	return ""
}

func TestBuildRequest_EmptyPrompt(t *testing.T) {
	for _, tag := range Tags() {
		_, err := BuildRequest(tag, "   ", Settings{APIKey: "k", BaseURL: "http://localhost:1234"})
		if !errors.Is(err, ErrInvalidInput) {
			t.Errorf("%s: expected ErrInvalidInput, got %v", tag, err)
		}
	}
}

func TestBuildRequest_MissingCredential(t *testing.T) {
	for _, tag := range []Tag{OpenRouter, OpenAI, Anthropic} {
		_, err := BuildRequest(tag, "list files", Settings{})
		if !errors.Is(err, ErrMissingCredential) {
			t.Errorf("%s: expected ErrMissingCredential, got %v", tag, err)
		}
	}

	// Local needs a base URL, not a key.
	_, err := BuildRequest(Local, "list files", Settings{APIKey: "k"})
	if !errors.Is(err, ErrMissingCredential) {
		t.Errorf("local: expected ErrMissingCredential, got %v", err)
	}
}

func TestBuildRequest_UnknownProvider(t *testing.T) {
	_, err := BuildRequest(Tag("gemini"), "list files", Settings{APIKey: "k"})
	if !errors.Is(err, ErrUnknownProvider) {
		t.Errorf("expected ErrUnknownProvider, got %v", err)
	}
}

func TestBuildRequest_OpenAI(t *testing.T) {
	req, err := BuildRequest(OpenAI, "list files", Settings{APIKey: "sk-test"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if req.URL != "https://api.openai.com/v1/chat/completions" {
		t.Errorf("unexpected URL: %s", req.URL)
	}
	if got := headerValue(req, "Authorization"); got != "Bearer sk-test" {
		t.Errorf("unexpected auth header: %q", got)
	}

	payload := decodeBody(t, req)
	if payload["model"] != "gpt-4o-mini" {
		t.Errorf("expected default model, got %v", payload["model"])
	}
	msgs, ok := payload["messages"].([]any)
	if !ok || len(msgs) != 2 {
		t.Fatalf("expected 2 messages, got %v", payload["messages"])
	}
	first := msgs[0].(map[string]any)
	second := msgs[1].(map[string]any)
	if first["role"] != "system" {
		t.Errorf("first message role = %v, want system", first["role"])
	}
	if second["role"] != "user" || second["content"] != "list files" {
		t.Errorf("unexpected user message: %v", second)
	}
}

func TestBuildRequest_ModelOverride(t *testing.T) {
	req, err := BuildRequest(OpenRouter, "list files", Settings{APIKey: "k", Model: "meta-llama/llama-3-8b"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	payload := decodeBody(t, req)
	if payload["model"] != "meta-llama/llama-3-8b" {
		t.Errorf("model override not applied: %v", payload["model"])
	}
}

func TestBuildRequest_Anthropic(t *testing.T) {
	req, err := BuildRequest(Anthropic, "list files", Settings{APIKey: "ant-key"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if req.URL != "https://api.anthropic.com/v1/messages" {
		t.Errorf("unexpected URL: %s", req.URL)
	}
	if got := headerValue(req, "x-api-key"); got != "ant-key" {
		t.Errorf("unexpected x-api-key header: %q", got)
	}
	if got := headerValue(req, "anthropic-version"); got != anthropicVersion {
		t.Errorf("unexpected anthropic-version header: %q", got)
	}
	if headerValue(req, "Authorization") != "" {
		t.Error("anthropic request must not carry bearer auth")
	}

	payload := decodeBody(t, req)
	if _, ok := payload["system"].(string); !ok {
		t.Error("expected top-level system field")
	}
	if payload["max_tokens"] != float64(anthropicMaxTokens) {
		t.Errorf("expected max_tokens %d, got %v", anthropicMaxTokens, payload["max_tokens"])
	}
	msgs := payload["messages"].([]any)
	if len(msgs) != 1 {
		t.Fatalf("anthropic messages must contain only the user entry, got %d", len(msgs))
	}
	if role := msgs[0].(map[string]any)["role"]; role != "user" {
		t.Errorf("unexpected role: %v", role)
	}
}

func TestBuildRequest_LocalOmitsEmptyModel(t *testing.T) {
	req, err := BuildRequest(Local, "list files", Settings{BaseURL: "http://localhost:1234"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if strings.Contains(string(req.Body), `"model"`) {
		t.Errorf("model field must be absent when unset, body: %s", req.Body)
	}
	if headerValue(req, "Authorization") != "" {
		t.Error("no auth header expected without a key")
	}
}

func TestBuildRequest_LocalWithKey(t *testing.T) {
	req, err := BuildRequest(Local, "list files", Settings{BaseURL: "http://localhost:1234", APIKey: "lk"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := headerValue(req, "Authorization"); got != "Bearer lk" {
		t.Errorf("unexpected auth header: %q", got)
	}
}

func TestLocalEndpoint(t *testing.T) {
	tests := []struct {
		base string
		want string
	}{
		{"http://localhost:1234", "http://localhost:1234/v1/chat/completions"},
		{"http://localhost:1234/", "http://localhost:1234/v1/chat/completions"},
		{"http://localhost:1234/v1", "http://localhost:1234/v1/chat/completions"},
		{"http://localhost:1234/v1/", "http://localhost:1234/v1/chat/completions"},
		{"http://localhost:1234/v1/chat/completions", "http://localhost:1234/v1/chat/completions"},
	}

	for _, tt := range tests {
		if got := LocalEndpoint(tt.base); got != tt.want {
			t.Errorf("LocalEndpoint(%q) = %q, want %q", tt.base, got, tt.want)
		}
	}
}
