package provider

import (
	"encoding/json"
	"fmt"
)

// openAIResponse covers the response shapes of OpenAI-compatible servers.
// Chat-completion servers fill choices[].message.content, older completion
// endpoints fill choices[].text, and some local servers return a bare
// top-level text field.
type openAIResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
		Text string `json:"text"`
	} `json:"choices"`
	Text string `json:"text"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

// ExtractText locates the model's generated text inside a provider response
// body. Malformed JSON and bodies with no text at any known path both fail
// with ErrExtractionFailed; the raw body rides along for diagnostics.
func ExtractText(tag Tag, body []byte) (string, error) {
	switch tag {
	case OpenRouter, OpenAI, Local:
		return extractOpenAICompat(body)
	case Anthropic:
		return extractAnthropic(body)
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownProvider, tag)
	}
}

func extractOpenAICompat(body []byte) (string, error) {
	var resp openAIResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", extractionError(body)
	}

	if len(resp.Choices) > 0 {
		if c := resp.Choices[0].Message.Content; c != "" {
			return c, nil
		}
		if t := resp.Choices[0].Text; t != "" {
			return t, nil
		}
	}
	if resp.Text != "" {
		return resp.Text, nil
	}

	return "", extractionError(body)
}

func extractAnthropic(body []byte) (string, error) {
	var resp anthropicResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", extractionError(body)
	}

	if len(resp.Content) == 0 || resp.Content[0].Text == "" {
		return "", extractionError(body)
	}
	return resp.Content[0].Text, nil
}

func extractionError(body []byte) error {
	return fmt.Errorf("%w: %s", ErrExtractionFailed, truncate(string(body), 500))
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "... (truncated)"
}
