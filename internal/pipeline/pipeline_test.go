package pipeline

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/web-read/webread/internal/engine"
	"github.com/web-read/webread/internal/quality"
	"github.com/web-read/webread/pkg/models"
)

// stubTier is a scripted extractor for orchestration tests.
type stubTier struct {
	name         models.TierName
	availability models.Availability
	result       models.TierResult
	calls        int
}

func (s *stubTier) Name() models.TierName      { return s.name }
func (s *stubTier) Probe() models.Availability { return s.availability }
func (s *stubTier) Extract(ctx context.Context, req models.FetchRequest) models.TierResult {
	s.calls++
	return s.result
}

func usefulText(prefix string) string {
	return prefix + " " + strings.Repeat("plausible article prose goes here. ", 15)
}

func fetchReq() models.FetchRequest {
	return models.FetchRequest{URL: "https://example.com/a", Timeout: time.Second}
}

func TestFetch_FirstTierWinsShortCircuits(t *testing.T) {
	first := &stubTier{name: models.TierStatic, result: models.TierResult{Text: usefulText("first")}}
	second := &stubTier{name: models.TierReader, result: models.TierResult{Text: usefulText("second")}}
	third := &stubTier{name: models.TierBrowser, result: models.TierResult{Text: usefulText("third")}}

	p := NewWithTiers(nil, first, second, third)
	outcome := p.Fetch(context.Background(), fetchReq())

	if outcome.Tier != models.TierStatic {
		t.Errorf("Expected static tier to win, got %q", outcome.Tier)
	}
	if !strings.HasPrefix(outcome.Content, "first") {
		t.Errorf("Expected first tier's content, got %q", outcome.Content[:20])
	}
	if second.calls != 0 || third.calls != 0 {
		t.Error("Expected later tiers never to run after a pass")
	}
}

func TestFetch_FallsBackPastRejectedContent(t *testing.T) {
	blocked := &stubTier{name: models.TierStatic, result: models.TierResult{Text: "short stub"}}
	winner := &stubTier{name: models.TierReader, result: models.TierResult{Text: usefulText("reader")}}

	p := NewWithTiers(nil, blocked, winner)
	outcome := p.Fetch(context.Background(), fetchReq())

	if outcome.Tier != models.TierReader {
		t.Errorf("Expected reader tier to win, got %q", outcome.Tier)
	}
	if len(outcome.Attempts) != 2 {
		t.Fatalf("Expected 2 attempts, got %d", len(outcome.Attempts))
	}
	if outcome.Attempts[0].Reason != models.FailQuality {
		t.Errorf("Expected first attempt rejected by quality gate, got %q", outcome.Attempts[0].Reason)
	}
	if outcome.Attempts[1].Reason != models.FailNone {
		t.Errorf("Expected winning attempt to carry no failure reason, got %q", outcome.Attempts[1].Reason)
	}
}

func TestFetch_SkipsUnavailableTier(t *testing.T) {
	missing := &stubTier{name: models.TierBrowser, availability: models.Unavailable,
		result: models.TierResult{Text: usefulText("never")}}
	winner := &stubTier{name: models.TierReader, result: models.TierResult{Text: usefulText("reader")}}

	p := NewWithTiers(nil, missing, winner)
	outcome := p.Fetch(context.Background(), fetchReq())

	if missing.calls != 0 {
		t.Error("Expected unavailable tier's Extract never to run")
	}
	if outcome.Attempts[0].Reason != models.FailUnavailable {
		t.Errorf("Expected unavailable attempt recorded, got %q", outcome.Attempts[0].Reason)
	}
	if outcome.Tier != models.TierReader {
		t.Errorf("Expected reader tier to win, got %q", outcome.Tier)
	}
}

func TestFetch_TotalFailure(t *testing.T) {
	a := &stubTier{name: models.TierStatic, result: models.TierResult{Reason: models.FailTransport}}
	b := &stubTier{name: models.TierReader, result: models.TierResult{Text: "tiny"}}
	c := &stubTier{name: models.TierBrowser, availability: models.Unavailable}

	p := NewWithTiers(nil, a, b, c)
	outcome := p.Fetch(context.Background(), fetchReq())

	if outcome.Succeeded() {
		t.Error("Expected total failure")
	}
	if outcome.Content != "" || outcome.Tier != models.TierNone {
		t.Errorf("Expected empty outcome, got content=%q tier=%q", outcome.Content, outcome.Tier)
	}

	wantReasons := []models.FailureReason{models.FailTransport, models.FailQuality, models.FailUnavailable}
	if len(outcome.Attempts) != len(wantReasons) {
		t.Fatalf("Expected %d attempts, got %d", len(wantReasons), len(outcome.Attempts))
	}
	for i, want := range wantReasons {
		if outcome.Attempts[i].Reason != want {
			t.Errorf("Attempt %d: expected reason %q, got %q", i, want, outcome.Attempts[i].Reason)
		}
	}
}

func TestFetch_WinnerIsNormalized(t *testing.T) {
	raw := "Title   \n\n\n\n" + usefulText("body") + "\n\n\n"
	tier := &stubTier{name: models.TierStatic, result: models.TierResult{Text: raw}}

	p := NewWithTiers(nil, tier)
	outcome := p.Fetch(context.Background(), fetchReq())

	if strings.Contains(outcome.Content, "\n\n\n") {
		t.Error("Expected blank-line runs collapsed in the outcome")
	}
	if strings.HasSuffix(outcome.Content, "\n") {
		t.Error("Expected trailing blank lines stripped")
	}
	if !strings.HasPrefix(outcome.Content, "Title\n") {
		t.Errorf("Expected right-trimmed first line, got %q", outcome.Content[:10])
	}
}

func TestFetch_BlockPageFallsThrough(t *testing.T) {
	// Long enough to pass the length check, but clearly an interstitial.
	blockPage := "Just a moment... Enable JavaScript and cookies to continue. " +
		strings.Repeat("checking connection security ", 15)
	a := &stubTier{name: models.TierStatic, result: models.TierResult{Text: blockPage}}
	b := &stubTier{name: models.TierReader, result: models.TierResult{Text: usefulText("real")}}

	p := NewWithTiers(nil, a, b)
	outcome := p.Fetch(context.Background(), fetchReq())

	if outcome.Tier != models.TierReader {
		t.Errorf("Expected block page to be rejected and reader to win, got %q", outcome.Tier)
	}
}

func TestFetch_CustomGatePolicy(t *testing.T) {
	tier := &stubTier{name: models.TierStatic, result: models.TierResult{Text: "forty characters of content, roughly so."}}

	strict := NewWithTiers(quality.NewGate(quality.Policy{MinLength: 300}), tier)
	if strict.Fetch(context.Background(), fetchReq()).Succeeded() {
		t.Error("Expected strict gate to reject short content")
	}

	lenient := NewWithTiers(quality.NewGate(quality.Policy{MinLength: 10}), tier)
	if !lenient.Fetch(context.Background(), fetchReq()).Succeeded() {
		t.Error("Expected lenient gate to accept short content")
	}
}

// End-to-end over a real HTTP server: the static tier extracts the main
// region and no other tier is consulted.
func TestFetch_EndToEndStaticTier(t *testing.T) {
	article := strings.Repeat("Substantial article prose for the quality gate. ", 12)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><head><title>E2E</title></head><body>
			<nav>menu</nav>
			<main><p>` + article + `</p></main>
		</body></html>`))
	}))
	defer server.Close()

	next := &stubTier{name: models.TierReader, result: models.TierResult{Text: usefulText("x")}}
	p := NewWithTiers(nil, engine.NewStatic("TestAgent/1.0", ""), next)

	outcome := p.Fetch(context.Background(), models.FetchRequest{
		URL:     server.URL,
		Timeout: 5 * time.Second,
	})

	if outcome.Tier != models.TierStatic {
		t.Fatalf("Expected static tier to win, got %q", outcome.Tier)
	}
	if !strings.HasPrefix(outcome.Content, "# E2E") {
		t.Error("Expected the title heading in the content")
	}
	if !strings.Contains(outcome.Content, "Substantial article prose") {
		t.Error("Expected article body in the content")
	}
	if strings.Contains(outcome.Content, "menu") {
		t.Error("Expected nav to be stripped")
	}
	if next.calls != 0 {
		t.Error("Expected the reader tier never to run")
	}
}

// End-to-end fallback: the static tier sees a blocked stub, the reader tier
// delivers clean prose.
func TestFetch_EndToEndReaderFallback(t *testing.T) {
	origin := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body>stub page</body></html>`))
	}))
	defer origin.Close()

	prose := strings.Repeat("Readable prose straight from the reader service. ", 12)
	reader := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(prose))
	}))
	defer reader.Close()

	p := NewWithTiers(nil,
		engine.NewStatic("TestAgent/1.0", ""),
		engine.NewReader(reader.URL+"/", "TestAgent/1.0"),
	)

	outcome := p.Fetch(context.Background(), models.FetchRequest{
		URL:     origin.URL,
		Timeout: 5 * time.Second,
	})

	if outcome.Tier != models.TierReader {
		t.Fatalf("Expected reader tier to win, got %q (attempts: %v)", outcome.Tier, outcome.Attempts)
	}
	if !strings.Contains(outcome.Content, "Readable prose") {
		t.Error("Expected the reader service's content")
	}
	if outcome.Attempts[0].Reason != models.FailQuality {
		t.Errorf("Expected the static attempt rejected by the gate, got %q", outcome.Attempts[0].Reason)
	}
}
