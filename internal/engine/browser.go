package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/rs/zerolog/log"
	"github.com/web-read/webread/internal/utils/output"
	"github.com/web-read/webread/pkg/models"
)

// DefaultSettle is how long the browser tier waits after network idle so
// late-loading dynamic content can land in the DOM.
const DefaultSettle = 1500 * time.Millisecond

// BrowserExtractor is the last and most expensive tier: a locally launched
// headless Chrome renders the page before extraction. It exists for pages
// the static tier cannot read and the reader service cannot render.
//
// Every invocation launches its own browser process and tears it down before
// returning, on success and failure alike.
type BrowserExtractor struct {
	chromePath     string
	userAgent      string
	acceptLanguage string
	settle         time.Duration
}

// NewBrowser creates the browser tier. chromePath may be empty, in which
// case the binary is discovered via findChrome.
func NewBrowser(chromePath, userAgent, acceptLanguage string, settle time.Duration) *BrowserExtractor {
	if acceptLanguage == "" {
		acceptLanguage = defaultAcceptLanguage
	}
	if settle <= 0 {
		settle = DefaultSettle
	}
	return &BrowserExtractor{
		chromePath:     chromePath,
		userAgent:      userAgent,
		acceptLanguage: acceptLanguage,
		settle:         settle,
	}
}

// Name returns the tier identifier.
func (b *BrowserExtractor) Name() models.TierName {
	return models.TierBrowser
}

// Probe looks for a usable Chrome binary. The warning is the operator-facing
// diagnostic for a missing browser; the pipeline itself just moves on.
func (b *BrowserExtractor) Probe() models.Availability {
	if findChrome(b.chromePath) == "" {
		log.Warn().Msg("No Chrome or Chromium binary found, skipping browser tier")
		return models.Unavailable
	}
	return models.Available
}

// Extract renders the page in headless Chrome, waits for network idle plus a
// settle period, and runs the content extraction script on the live DOM.
func (b *BrowserExtractor) Extract(ctx context.Context, req models.FetchRequest) models.TierResult {
	execPath := findChrome(b.chromePath)
	if execPath == "" {
		return failure(b.Name(), models.FailUnavailable, errors.New("chrome binary not found"))
	}

	// Budget covers navigation, the settle period, and script evaluation.
	ctx, cancel := context.WithTimeout(ctx, req.Timeout+b.settle)
	defer cancel()

	allocOpts := []chromedp.ExecAllocatorOption{
		chromedp.ExecPath(execPath),
		chromedp.NoFirstRun,
		chromedp.NoDefaultBrowserCheck,
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		// Sandboxing is unavailable in most containerized environments.
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-setuid-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-background-networking", true),
		chromedp.Flag("mute-audio", true),
		chromedp.UserAgent(b.userAgent),
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, allocOpts...)
	defer allocCancel()

	browserCtx, browserCancel := chromedp.NewContext(allocCtx)
	defer browserCancel()

	var title, content string
	err := chromedp.Run(browserCtx,
		network.Enable(),
		network.SetExtraHTTPHeaders(network.Headers{"Accept-Language": b.acceptLanguage}),
		navigateAndWaitIdle(req.URL),
		chromedp.Sleep(b.settle),
		chromedp.Title(&title),
		chromedp.Evaluate(extractionScript(req.Format), &content),
	)
	if err != nil {
		// The warning is the operator-facing diagnostic for a browser-side
		// failure; control flow is unaffected.
		log.Warn().Err(err).Str("url", req.URL).Msg("Browser tier failed")
		if errors.Is(err, context.DeadlineExceeded) {
			return models.TierResult{Reason: models.FailTransport}
		}
		return models.TierResult{Reason: models.FailParse}
	}

	if req.Format == models.FormatMarkdown {
		content, err = output.ConvertHTML(content, req.URL)
		if err != nil {
			return failure(b.Name(), models.FailParse, err)
		}
	}

	log.Debug().
		Str("url", req.URL).
		Int("chars", len(content)).
		Msg("Browser tier extracted content")

	return models.TierResult{Text: withTitle(title, content)}
}

// navigateAndWaitIdle navigates to the URL and blocks until the page reports
// the networkIdle lifecycle event, or the context deadline cuts it short.
func navigateAndWaitIdle(urlStr string) chromedp.Tasks {
	return chromedp.Tasks{
		page.SetLifecycleEventsEnabled(true),
		chromedp.ActionFunc(func(ctx context.Context) error {
			idle := make(chan struct{}, 1)
			listenCtx, stopListening := context.WithCancel(ctx)
			defer stopListening()
			chromedp.ListenTarget(listenCtx, func(ev interface{}) {
				if e, ok := ev.(*page.EventLifecycleEvent); ok && e.Name == "networkIdle" {
					select {
					case idle <- struct{}{}:
					default:
					}
				}
			})

			if _, _, _, err := page.Navigate(urlStr).Do(ctx); err != nil {
				return fmt.Errorf("navigate: %w", err)
			}

			select {
			case <-idle:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		}),
	}
}

// extractionScript strips non-content elements and pulls the primary content
// region out of the rendered DOM: visible text normally, the region's HTML
// when markdown conversion happens on our side afterwards.
func extractionScript(format models.Format) string {
	property := "innerText"
	if format == models.FormatMarkdown {
		property = "innerHTML"
	}
	return fmt.Sprintf(`(() => {
	["script", "style", "nav", "footer", "iframe", "noscript"].forEach((tag) =>
		document.querySelectorAll(tag).forEach((el) => el.remove()));
	const region =
		document.querySelector("main") ||
		document.querySelector("article") ||
		document.querySelector('[role="main"]') ||
		document.body;
	return region ? region.%s : "";
})()`, property)
}
