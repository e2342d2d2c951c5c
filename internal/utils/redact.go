package utils

import (
	"regexp"
	"strings"
)

var (
	// Matches the provider auth header wherever it leaks into an error string.
	apiKeyHeaderRe = regexp.MustCompile(`(?i)\bx-api-key\s*[:=]\s*[^\s"']+`)

	// Common key=value formats that sometimes leak via env dumps or wrapped
	// transport errors.
	apiKeyKVRe = regexp.MustCompile(`(?i)\b(anthropic[_-]?api[_-]?key|api[_-]?key|secret[_-]?key)\b\s*[:=]\s*[^\s"']+`)

	bearerTokenRe = regexp.MustCompile(`(?i)\bBearer\s+[^\s"']+`)
)

// RedactSecrets removes obvious secret-bearing substrings from diagnostic
// strings before they are logged or returned to callers. Safe to call on any
// message, including upstream error strings.
func RedactSecrets(s string) string {
	if s == "" {
		return ""
	}
	out := s
	out = apiKeyHeaderRe.ReplaceAllString(out, "x-api-key: <redacted>")
	out = apiKeyKVRe.ReplaceAllString(out, "$1=<redacted>")
	out = bearerTokenRe.ReplaceAllString(out, "Bearer <redacted>")
	return strings.TrimSpace(out)
}
