package urlutil

import (
	"fmt"
	"net/url"
	"strings"
)

// Validate checks that a string is a fetchable http(s) URL before any tier
// spends time on it.
func Validate(urlStr string) error {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}

	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("invalid URL scheme: must be http or https, got %q", parsed.Scheme)
	}

	if parsed.Host == "" {
		return fmt.Errorf("invalid URL: missing host")
	}

	return nil
}

// Resolve resolves a possibly-relative href against a base URL. On any parse
// error the href is returned unchanged.
func Resolve(base, href string) string {
	u, err := url.Parse(href)
	if err != nil {
		return href
	}
	if u.IsAbs() {
		return href
	}
	baseURL, err := url.Parse(base)
	if err != nil {
		return href
	}
	return baseURL.ResolveReference(u).String()
}

// Slug turns a URL into a filesystem-safe name for batch output files.
func Slug(urlStr string) string {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return sanitize(urlStr)
	}
	name := parsed.Host + parsed.Path
	if parsed.RawQuery != "" {
		name += "-" + parsed.RawQuery
	}
	return sanitize(name)
}

func sanitize(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '-' || r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('-')
		}
	}
	return strings.Trim(b.String(), "-.")
}
