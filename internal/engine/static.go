package engine

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog/log"
	"github.com/web-read/webread/internal/utils/output"
	"github.com/web-read/webread/pkg/models"
)

// nonContentSelector matches elements that never carry article text.
const nonContentSelector = "script, style, nav, footer, iframe, noscript"

// defaultAcceptLanguage backs tiers constructed without an explicit value.
const defaultAcceptLanguage = "en-US,en;q=0.9"

// regionSelectors is the fallback chain for locating the primary content
// region, from most to least specific.
var regionSelectors = []string{"main", "article", "[role=main]", "body"}

// StaticExtractor is the first and cheapest tier: a single GET with
// browser-like headers and a static parse of the returned markup. It covers
// the large majority of URLs that need no JavaScript.
type StaticExtractor struct {
	client         *http.Client
	userAgent      string
	acceptLanguage string
}

// NewStatic creates the static tier. The client follows redirects and reuses
// connections; the per-request budget comes from each FetchRequest. An empty
// acceptLanguage falls back to the default.
func NewStatic(userAgent, acceptLanguage string) *StaticExtractor {
	if acceptLanguage == "" {
		acceptLanguage = defaultAcceptLanguage
	}
	transport := &http.Transport{
		MaxIdleConns:        10,
		MaxIdleConnsPerHost: 2,
		IdleConnTimeout:     90 * time.Second,
	}
	return &StaticExtractor{
		client:         &http.Client{Transport: transport},
		userAgent:      userAgent,
		acceptLanguage: acceptLanguage,
	}
}

// Name returns the tier identifier.
func (s *StaticExtractor) Name() models.TierName {
	return models.TierStatic
}

// Probe always reports available: the HTTP client and parser are compiled in.
func (s *StaticExtractor) Probe() models.Availability {
	return models.Available
}

// Extract fetches the URL and pulls readable text out of the primary content
// region of the static markup.
func (s *StaticExtractor) Extract(ctx context.Context, req models.FetchRequest) models.TierResult {
	ctx, cancel := context.WithTimeout(ctx, req.Timeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, req.URL, nil)
	if err != nil {
		return failure(s.Name(), models.FailTransport, err)
	}
	httpReq.Header.Set("User-Agent", s.userAgent)
	httpReq.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8")
	httpReq.Header.Set("Accept-Language", s.acceptLanguage)

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return failure(s.Name(), models.FailTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return failure(s.Name(), models.FailTransport,
			fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return failure(s.Name(), models.FailParse, err)
	}

	title := strings.TrimSpace(doc.Find("title").First().Text())
	doc.Find(nonContentSelector).Remove()
	region := primaryRegion(doc)

	var body string
	if req.Format == models.FormatMarkdown {
		regionHTML, err := goquery.OuterHtml(region)
		if err != nil {
			return failure(s.Name(), models.FailParse, err)
		}
		body, err = output.ConvertHTML(regionHTML, req.URL)
		if err != nil {
			return failure(s.Name(), models.FailParse, err)
		}
	} else {
		var b strings.Builder
		for _, node := range region.Nodes {
			b.WriteString(visibleText(node))
		}
		body = b.String()
	}

	log.Debug().
		Str("url", req.URL).
		Int("status", resp.StatusCode).
		Int("chars", len(body)).
		Msg("Static tier extracted content")

	return models.TierResult{Text: withTitle(title, body)}
}

// primaryRegion picks the subtree most likely to hold the article body.
func primaryRegion(doc *goquery.Document) *goquery.Selection {
	for _, selector := range regionSelectors {
		if sel := doc.Find(selector).First(); sel.Length() > 0 {
			return sel
		}
	}
	return doc.Selection
}

// withTitle prepends the document title as a heading line, when present.
func withTitle(title, body string) string {
	if title == "" {
		return body
	}
	return "# " + title + "\n\n" + body
}
