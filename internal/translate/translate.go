// Package translate runs the full translation pipeline for one request:
// validate, build the provider request, send it, extract the completion, and
// sanitize it into a bare shell command. Each call is independent; a
// Translator holds only read-only configuration and may be shared.
package translate

import (
	"context"
	"fmt"
	"os"

	"github.com/J-DubApps/get-chat-cmd/internal/config"
	"github.com/J-DubApps/get-chat-cmd/internal/provider"
	"github.com/J-DubApps/get-chat-cmd/internal/sanitize"
	"github.com/J-DubApps/get-chat-cmd/internal/transport"
)

// Translator turns natural language into shell commands via a configured
// provider.
type Translator struct {
	cfg    *config.Config
	client *transport.Client
	model  string // per-invocation override, empty means config/default
	debug  bool
}

// New creates a Translator with the default HTTP transport.
func New(cfg *config.Config) *Translator {
	return &Translator{cfg: cfg, client: transport.New()}
}

// SetClient replaces the transport. Used by tests and anything that needs a
// custom HTTP backend.
func (t *Translator) SetClient(c *transport.Client) {
	t.client = c
}

// SetModel overrides the configured model for subsequent calls.
func (t *Translator) SetModel(model string) {
	t.model = model
}

// SetDebug enables debug logging to stderr.
func (t *Translator) SetDebug(debug bool) {
	t.debug = debug
}

// Run executes the pipeline for one request and returns the sanitized
// command. Any stage failure aborts the call; no partial command is ever
// returned. Errors are tagged with the provider for display.
func (t *Translator) Run(ctx context.Context, tag provider.Tag, request string) (string, error) {
	if !tag.Valid() {
		return "", fmt.Errorf("%w: %q", provider.ErrUnknownProvider, tag)
	}

	st := t.cfg.Settings(tag)
	if t.model != "" {
		st.Model = t.model
	}

	req, err := provider.BuildRequest(tag, request, st)
	if err != nil {
		return "", fmt.Errorf("%s: %w", tag, err)
	}
	t.debugf("Translate: built request for %s (%s)", tag, req.URL)

	resp, err := t.client.Send(ctx, req)
	if err != nil {
		return "", fmt.Errorf("%s: %w", tag, err)
	}
	t.debugf("Translate: got %d bytes (status %d)", len(resp.Body), resp.Status)

	text, err := provider.ExtractText(tag, resp.Body)
	if err != nil {
		return "", fmt.Errorf("%s: %w", tag, err)
	}

	command, err := sanitize.Command(text)
	if err != nil {
		return "", fmt.Errorf("%s: %w", tag, err)
	}
	t.debugf("Translate: command %q", command)

	return command, nil
}

func (t *Translator) debugf(format string, args ...any) {
	if t.debug {
		fmt.Fprintf(os.Stderr, "[DEBUG] "+format+"\n", args...)
	}
}
