package engine

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/web-read/webread/pkg/models"
)

const (
	// readerTimeoutCap bounds the render budget advertised to the service.
	readerTimeoutCap = 30 * time.Second
	// readerGrace is added to the request budget: the service renders the
	// page remotely, so its latency sits on top of plain network latency.
	readerGrace = 10 * time.Second
)

// ReaderExtractor is the middle tier: it hands the URL to a remote reader
// service that renders the page on its side and answers with plain text or
// markdown. No local parsing happens; the upstream output is trusted as-is.
type ReaderExtractor struct {
	client    *http.Client
	baseURL   string
	userAgent string
}

// NewReader creates the reader-proxy tier. baseURL is the service prefix the
// target URL gets appended to, e.g. "https://r.jina.ai/".
func NewReader(baseURL, userAgent string) *ReaderExtractor {
	return &ReaderExtractor{
		client:    &http.Client{},
		baseURL:   baseURL,
		userAgent: userAgent,
	}
}

// Name returns the tier identifier.
func (r *ReaderExtractor) Name() models.TierName {
	return models.TierReader
}

// Probe checks the configured service prefix.
func (r *ReaderExtractor) Probe() models.Availability {
	if r.baseURL == "" {
		return models.Unavailable
	}
	parsed, err := url.Parse(r.baseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		log.Warn().Str("reader_url", r.baseURL).Msg("Reader base URL is not a valid URL")
		return models.ErrorDuringUse
	}
	return models.Available
}

// Extract requests the proxied URL and returns the response body untouched.
func (r *ReaderExtractor) Extract(ctx context.Context, req models.FetchRequest) models.TierResult {
	ctx, cancel := context.WithTimeout(ctx, req.Timeout+readerGrace)
	defer cancel()

	proxied := r.baseURL + req.URL
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, proxied, nil)
	if err != nil {
		return failure(r.Name(), models.FailTransport, err)
	}

	budget := req.Timeout
	if budget > readerTimeoutCap {
		budget = readerTimeoutCap
	}
	httpReq.Header.Set("X-Timeout", strconv.Itoa(int(budget/time.Second)))
	httpReq.Header.Set("Accept", "text/plain, text/markdown")
	httpReq.Header.Set("User-Agent", r.userAgent)

	resp, err := r.client.Do(httpReq)
	if err != nil {
		return failure(r.Name(), models.FailTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return failure(r.Name(), models.FailTransport,
			fmt.Errorf("reader service returned status %d", resp.StatusCode))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return failure(r.Name(), models.FailTransport, err)
	}

	log.Debug().
		Str("url", req.URL).
		Int("chars", len(body)).
		Msg("Reader tier returned content")

	return models.TierResult{Text: string(body)}
}
