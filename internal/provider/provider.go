// Package provider builds requests for and extracts completions from the
// supported AI chat-completion APIs. Each provider has its own auth scheme,
// payload shape, and response structure; everything above this package sees
// one uniform contract.
package provider

import "errors"

// Tag identifies a supported completion provider.
type Tag string

const (
	OpenRouter Tag = "openrouter"
	OpenAI     Tag = "openai"
	Anthropic  Tag = "anthropic"
	Local      Tag = "local"
)

// Tags lists every supported provider, in display order.
func Tags() []Tag {
	return []Tag{OpenRouter, OpenAI, Anthropic, Local}
}

// Valid reports whether t names a known provider.
func (t Tag) Valid() bool {
	switch t {
	case OpenRouter, OpenAI, Anthropic, Local:
		return true
	}
	return false
}

var (
	// ErrInvalidInput means the user request was empty.
	ErrInvalidInput = errors.New("request must not be empty")

	// ErrMissingCredential means the API key or endpoint required by the
	// selected provider is not configured.
	ErrMissingCredential = errors.New("missing credential")

	// ErrUnknownProvider means the tag does not name a supported provider.
	ErrUnknownProvider = errors.New("unknown provider")

	// ErrExtractionFailed means no completion text could be located in the
	// provider's response body.
	ErrExtractionFailed = errors.New("no completion text in response")
)

// Settings is the per-call configuration a provider needs to build a request.
// It is assembled from the loaded config by the caller; BaseURL is only
// meaningful for the local provider.
type Settings struct {
	APIKey  string
	Model   string // empty means the provider default
	BaseURL string
}

// Profile is the static shape of one provider: where to send requests and
// which model to use when the user has not picked one.
type Profile struct {
	Endpoint     string
	DefaultModel string
}

var profiles = map[Tag]Profile{
	OpenRouter: {
		Endpoint:     "https://openrouter.ai/api/v1/chat/completions",
		DefaultModel: "openai/gpt-4o-mini",
	},
	OpenAI: {
		Endpoint:     "https://api.openai.com/v1/chat/completions",
		DefaultModel: "gpt-4o-mini",
	},
	Anthropic: {
		Endpoint:     "https://api.anthropic.com/v1/messages",
		DefaultModel: "claude-3-5-haiku-latest",
	},
	// Local has no fixed endpoint; it is derived from the configured base URL.
	Local: {
		DefaultModel: "",
	},
}

// ProfileFor returns the static profile for a provider tag.
func ProfileFor(tag Tag) (Profile, bool) {
	p, ok := profiles[tag]
	return p, ok
}
