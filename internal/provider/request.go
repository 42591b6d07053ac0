package provider

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime"
	"strings"
)

// anthropicVersion is the API version header Anthropic requires on every call.
const anthropicVersion = "2023-06-01"

// anthropicMaxTokens caps the generated output. A single shell command never
// needs more.
const anthropicMaxTokens = 1024

// Header is one HTTP header. Requests carry an ordered slice with unique keys.
type Header struct {
	Key   string
	Value string
}

// Request is a fully built provider HTTP request, ready for the transport.
type Request struct {
	URL     string
	Headers []Header
	Body    []byte
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// openAIRequest is the OpenAI-compatible chat payload, shared by OpenRouter,
// OpenAI, and local OpenAI-compatible servers. Model is omitted when empty so
// a local server can apply its own default.
type openAIRequest struct {
	Model    string        `json:"model,omitempty"`
	Messages []chatMessage `json:"messages"`
}

// anthropicRequest is the Anthropic messages payload: system text is a
// top-level field rather than a message, and max_tokens is mandatory.
type anthropicRequest struct {
	Model     string        `json:"model"`
	System    string        `json:"system"`
	Messages  []chatMessage `json:"messages"`
	MaxTokens int           `json:"max_tokens"`
}

// BuildRequest validates the request and constructs the provider-specific
// HTTP request for it. It performs no I/O.
func BuildRequest(tag Tag, request string, st Settings) (*Request, error) {
	if strings.TrimSpace(request) == "" {
		return nil, ErrInvalidInput
	}

	switch tag {
	case OpenRouter, OpenAI:
		if st.APIKey == "" {
			return nil, fmt.Errorf("%w: no API key configured for %s", ErrMissingCredential, tag)
		}
		return buildOpenAICompat(profiles[tag].Endpoint, modelOrDefault(tag, st), st.APIKey, request)

	case Local:
		if st.BaseURL == "" {
			return nil, fmt.Errorf("%w: no base URL configured for the local provider", ErrMissingCredential)
		}
		// Local servers often run without auth; the key is optional.
		return buildOpenAICompat(LocalEndpoint(st.BaseURL), st.Model, st.APIKey, request)

	case Anthropic:
		if st.APIKey == "" {
			return nil, fmt.Errorf("%w: no API key configured for anthropic", ErrMissingCredential)
		}
		return buildAnthropic(modelOrDefault(tag, st), st.APIKey, request)

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, tag)
	}
}

func buildOpenAICompat(endpoint, model, apiKey, request string) (*Request, error) {
	payload := openAIRequest{
		Model: model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt()},
			{Role: "user", Content: request},
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	headers := []Header{{Key: "Content-Type", Value: "application/json"}}
	if apiKey != "" {
		headers = append(headers, Header{Key: "Authorization", Value: "Bearer " + apiKey})
	}

	return &Request{URL: endpoint, Headers: headers, Body: body}, nil
}

func buildAnthropic(model, apiKey, request string) (*Request, error) {
	payload := anthropicRequest{
		Model:     model,
		System:    systemPrompt(),
		Messages:  []chatMessage{{Role: "user", Content: request}},
		MaxTokens: anthropicMaxTokens,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	headers := []Header{
		{Key: "Content-Type", Value: "application/json"},
		{Key: "x-api-key", Value: apiKey},
		{Key: "anthropic-version", Value: anthropicVersion},
	}

	return &Request{URL: profiles[Anthropic].Endpoint, Headers: headers, Body: body}, nil
}

func modelOrDefault(tag Tag, st Settings) string {
	if st.Model != "" {
		return st.Model
	}
	return profiles[tag].DefaultModel
}

// LocalEndpoint normalizes a user-supplied base URL so the final endpoint ends
// in exactly one /v1/chat/completions, whether the base is bare, ends in a
// slash, or already includes the /v1 segment.
func LocalEndpoint(base string) string {
	s := strings.TrimRight(strings.TrimSpace(base), "/")
	s = strings.TrimSuffix(s, "/chat/completions")
	s = strings.TrimSuffix(s, "/v1")
	return s + "/v1/chat/completions"
}

// systemPrompt is the fixed instruction sent with every translation request.
// It pins the output contract: a bare command, nothing else.
func systemPrompt() string {
	shell := os.Getenv("SHELL")
	if shell == "" {
		shell = "/bin/sh"
	}

	return fmt.Sprintf(`You are a helpful assistant that translates natural language requests into shell commands.

Environment:
- Operating System: %s
- Shell: %s

Guidelines:
1. Generate safe, correct shell commands
2. Use common Unix/Linux utilities when possible
3. Return ONLY the command - no explanations, no markdown formatting, no code blocks
4. If the request is ambiguous, make reasonable assumptions for the most common use case`,
		runtime.GOOS, shell)
}
