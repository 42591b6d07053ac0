package provider

import (
	"errors"
	"strings"
	"testing"
)

func TestExtractText_ChatCompletion(t *testing.T) {
	body := []byte(`{"choices":[{"message":{"content":"ls -la"}}]}`)

	for _, tag := range []Tag{OpenRouter, OpenAI, Local} {
		got, err := ExtractText(tag, body)
		if err != nil {
			t.Errorf("%s: unexpected error: %v", tag, err)
			continue
		}
		if got != "ls -la" {
			t.Errorf("%s: got %q, want %q", tag, got, "ls -la")
		}
	}
}

func TestExtractText_CompletionTextFallback(t *testing.T) {
	got, err := ExtractText(OpenAI, []byte(`{"choices":[{"text":"df -h"}]}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "df -h" {
		t.Errorf("got %q, want %q", got, "df -h")
	}
}

func TestExtractText_TopLevelTextFallback(t *testing.T) {
	got, err := ExtractText(Local, []byte(`{"text":"uptime"}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "uptime" {
		t.Errorf("got %q, want %q", got, "uptime")
	}
}

func TestExtractText_Anthropic(t *testing.T) {
	got, err := ExtractText(Anthropic, []byte(`{"content":[{"type":"text","text":"ls -la"}]}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "ls -la" {
		t.Errorf("got %q, want %q", got, "ls -la")
	}
}

func TestExtractText_NoTextAnywhere(t *testing.T) {
	bodies := map[Tag][]byte{
		OpenAI:    []byte(`{"choices":[{"message":{"content":""}}]}`),
		Local:     []byte(`{"choices":[]}`),
		Anthropic: []byte(`{"content":[]}`),
	}

	for tag, body := range bodies {
		_, err := ExtractText(tag, body)
		if !errors.Is(err, ErrExtractionFailed) {
			t.Errorf("%s: expected ErrExtractionFailed, got %v", tag, err)
		}
	}
}

func TestExtractText_MalformedJSON(t *testing.T) {
	for _, tag := range Tags() {
		_, err := ExtractText(tag, []byte(`<html>502 Bad Gateway</html>`))
		if !errors.Is(err, ErrExtractionFailed) {
			t.Errorf("%s: expected ErrExtractionFailed, got %v", tag, err)
		}
	}
}

func TestExtractText_UnknownProvider(t *testing.T) {
	_, err := ExtractText(Tag("gemini"), []byte(`{}`))
	if !errors.Is(err, ErrUnknownProvider) {
		t.Errorf("expected ErrUnknownProvider, got %v", err)
	}
}

func TestExtractText_ErrorCarriesBody(t *testing.T) {
	_, err := ExtractText(OpenAI, []byte(`{"error":"rate limited"}`))
	if err == nil || !errors.Is(err, ErrExtractionFailed) {
		t.Fatalf("expected ErrExtractionFailed, got %v", err)
	}
	if !strings.Contains(err.Error(), "rate limited") {
		t.Errorf("error %q should carry the raw body", err)
	}
}
