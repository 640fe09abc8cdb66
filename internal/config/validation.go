package config

import (
	"fmt"
	"net/url"
)

// validate performs sanity checks on configuration values
func validate(cfg *Config) error {
	if cfg.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", cfg.Timeout)
	}

	if cfg.Format != "text" && cfg.Format != "markdown" {
		return fmt.Errorf("format must be text or markdown, got %q", cfg.Format)
	}

	if cfg.MinContentLength < 0 {
		return fmt.Errorf("min-content must not be negative, got %d", cfg.MinContentLength)
	}

	if cfg.ReaderBaseURL != "" {
		parsed, err := url.Parse(cfg.ReaderBaseURL)
		if err != nil {
			return fmt.Errorf("reader URL: %w", err)
		}
		if parsed.Scheme != "http" && parsed.Scheme != "https" {
			return fmt.Errorf("reader URL must be http(s), got %q", cfg.ReaderBaseURL)
		}
	}

	if cfg.RateLimitRPS < 0 {
		return fmt.Errorf("rate limit must not be negative, got %f", cfg.RateLimitRPS)
	}

	return nil
}
