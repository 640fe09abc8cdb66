package config

import "time"

// Default constants for application configuration
const (
	DefaultLogLevel = "info"
	DefaultJSONLog  = false

	// DefaultTimeout is the soft budget each tier gets, not a combined
	// deadline: a fetch that exhausts every tier can take up to the sum.
	DefaultTimeout = 20 * time.Second

	// DefaultUserAgent matches a mainstream browser; plenty of sites answer
	// differently (or not at all) to obvious bot agents.
	DefaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 " +
		"(KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

	// DefaultReaderBaseURL is the prefix convention of the remote reader
	// service: the target URL is appended verbatim.
	DefaultReaderBaseURL = "https://r.jina.ai/"

	// DefaultAcceptLanguage is sent by the static and browser tiers alongside
	// the user agent; some sites vary content or blocking on it.
	DefaultAcceptLanguage = "en-US,en;q=0.9"

	DefaultBrowserSettle    = 1500 * time.Millisecond
	DefaultMinContentLength = 350
	DefaultFormat           = "text"

	DefaultRateLimitRPS   = 5.0
	DefaultRateLimitBurst = 10
)
