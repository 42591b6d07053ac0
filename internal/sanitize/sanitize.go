// Package sanitize cleans formatting artifacts from model output so only a
// bare shell command remains.
package sanitize

import (
	"errors"
	"strings"
)

// ErrEmptyResult means nothing was left after stripping fences and whitespace.
var ErrEmptyResult = errors.New("empty result after sanitization")

// Command strips one leading code-fence marker (with an optional language
// tag) and one trailing marker, then trims whitespace. An empty remainder is
// an error: a successful sanitization never returns an empty command.
func Command(text string) (string, error) {
	s := strings.TrimSpace(text)

	if strings.HasPrefix(s, "```") {
		if i := strings.IndexByte(s, '\n'); i >= 0 {
			// Drop the whole fence line, language tag included.
			s = s[i+1:]
		} else {
			s = strings.TrimPrefix(s, "```")
		}
	}

	s = strings.TrimSpace(s)
	if strings.HasSuffix(s, "```") {
		s = strings.TrimSuffix(s, "```")
	}

	s = strings.TrimSpace(s)
	if s == "" {
		return "", ErrEmptyResult
	}
	return s, nil
}
