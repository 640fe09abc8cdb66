package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"
)

// Config holds application configuration values
type Config struct {
	// Logging
	LogLevel string
	JSONLog  bool

	// Fetching
	Timeout        time.Duration
	UserAgent      string
	AcceptLanguage string
	ReaderBaseURL  string
	ChromePath     string
	BrowserSettle  time.Duration

	// Output
	Format string

	// Quality gate
	MinContentLength int

	// Rate limiting (per target host)
	RateLimitRPS   float64
	RateLimitBurst int
}

// Load builds a Config by combining defaults, environment variables, and CLI
// flags. Caller should pass the command so flags can be read; nil skips them.
func Load(cmd *cobra.Command) (*Config, error) {
	cfg := &Config{
		LogLevel:         DefaultLogLevel,
		JSONLog:          DefaultJSONLog,
		Timeout:          DefaultTimeout,
		UserAgent:        DefaultUserAgent,
		AcceptLanguage:   DefaultAcceptLanguage,
		ReaderBaseURL:    DefaultReaderBaseURL,
		BrowserSettle:    DefaultBrowserSettle,
		Format:           DefaultFormat,
		MinContentLength: DefaultMinContentLength,
		RateLimitRPS:     DefaultRateLimitRPS,
		RateLimitBurst:   DefaultRateLimitBurst,
	}

	// Environment overrides
	if v := os.Getenv("WEBREAD_USER_AGENT"); v != "" {
		cfg.UserAgent = v
	}
	if v := os.Getenv("WEBREAD_ACCEPT_LANGUAGE"); v != "" {
		cfg.AcceptLanguage = v
	}
	if v := os.Getenv("WEBREAD_READER_URL"); v != "" {
		cfg.ReaderBaseURL = v
	}
	if v := os.Getenv("WEBREAD_CHROME_PATH"); v != "" {
		cfg.ChromePath = v
	}

	// CLI flag overrides
	if cmd != nil {
		if f := lookupFlag(cmd, "timeout"); f != nil && f.Changed {
			if d, err := time.ParseDuration(f.Value.String()); err == nil {
				cfg.Timeout = d
			}
		}
		if f := lookupFlag(cmd, "user-agent"); f != nil && f.Value.String() != "" {
			cfg.UserAgent = f.Value.String()
		}
		if f := lookupFlag(cmd, "accept-language"); f != nil && f.Value.String() != "" {
			cfg.AcceptLanguage = f.Value.String()
		}
		if f := lookupFlag(cmd, "reader-url"); f != nil && f.Changed {
			cfg.ReaderBaseURL = f.Value.String()
		}
		if f := lookupFlag(cmd, "chrome-path"); f != nil && f.Value.String() != "" {
			cfg.ChromePath = f.Value.String()
		}
		if f := lookupFlag(cmd, "format"); f != nil && f.Value.String() != "" {
			cfg.Format = f.Value.String()
		}
		if f := lookupFlag(cmd, "min-content"); f != nil && f.Changed {
			if _, err := fmt.Sscanf(f.Value.String(), "%d", &cfg.MinContentLength); err != nil {
				return nil, fmt.Errorf("invalid min-content: %w", err)
			}
		}
		if f := lookupFlag(cmd, "rate"); f != nil && f.Changed {
			rps, err := strconv.ParseFloat(f.Value.String(), 64)
			if err != nil {
				return nil, fmt.Errorf("invalid rate: %w", err)
			}
			cfg.RateLimitRPS = rps
		}
		if f := lookupFlag(cmd, "json"); f != nil && f.Value.String() == "true" {
			cfg.JSONLog = true
		}
		if f := lookupFlag(cmd, "verbose"); f != nil && f.Value.String() == "true" {
			cfg.LogLevel = "debug"
		}
		if f := lookupFlag(cmd, "quiet"); f != nil && f.Value.String() == "true" {
			cfg.LogLevel = "error"
		}
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}
