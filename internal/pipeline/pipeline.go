// Package pipeline wires the extraction tiers into an ordered fallback
// chain: cheapest first, full browser last, first useful result wins.
package pipeline

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/web-read/webread/internal/config"
	"github.com/web-read/webread/internal/engine"
	"github.com/web-read/webread/internal/normalize"
	"github.com/web-read/webread/internal/quality"
	"github.com/web-read/webread/internal/ratelimit"
	"github.com/web-read/webread/pkg/models"
)

// Pipeline runs the tiers in priority order and gates each result. A
// Pipeline holds no per-fetch state, so one instance can serve many Fetch
// calls, sequentially or from independent goroutines.
type Pipeline struct {
	tiers   []engine.Extractor
	gate    *quality.Gate
	limiter ratelimit.RateLimiter
}

// New builds the standard three-tier pipeline from configuration: static
// HTTP fetch, remote reader proxy, local headless browser.
func New(cfg *config.Config) *Pipeline {
	tiers := []engine.Extractor{
		engine.NewStatic(cfg.UserAgent, cfg.AcceptLanguage),
		engine.NewReader(cfg.ReaderBaseURL, cfg.UserAgent),
		engine.NewBrowser(cfg.ChromePath, cfg.UserAgent, cfg.AcceptLanguage, cfg.BrowserSettle),
	}
	gate := quality.NewGate(quality.Policy{MinLength: cfg.MinContentLength})

	var limiter ratelimit.RateLimiter
	if cfg.RateLimitRPS > 0 {
		limiter = ratelimit.NewHostLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	}

	return &Pipeline{tiers: tiers, gate: gate, limiter: limiter}
}

// NewWithTiers builds a pipeline over explicit tiers and gate, bypassing
// configuration. A nil gate falls back to the default policy.
func NewWithTiers(gate *quality.Gate, tiers ...engine.Extractor) *Pipeline {
	if gate == nil {
		gate = quality.NewGate(quality.DefaultPolicy())
	}
	return &Pipeline{tiers: tiers, gate: gate}
}

// Fetch tries each tier in order and returns the first result that passes
// the quality gate, cleaned up. Tiers run strictly one at a time; a tier
// failing, for whatever reason, only advances the chain. The caller sees
// either content plus the winning tier, or an empty outcome whose attempt
// trail says what each tier reported.
func (p *Pipeline) Fetch(ctx context.Context, req models.FetchRequest) models.FetchOutcome {
	if req.Timeout <= 0 {
		req.Timeout = config.DefaultTimeout
	}
	if req.Format == "" {
		req.Format = models.FormatText
	}

	var outcome models.FetchOutcome
	for _, tier := range p.tiers {
		name := tier.Name()

		if avail := tier.Probe(); avail != models.Available {
			log.Debug().
				Str("tier", string(name)).
				Stringer("availability", avail).
				Msg("Tier skipped by capability probe")
			outcome.Attempts = append(outcome.Attempts,
				models.TierAttempt{Tier: name, Reason: models.FailUnavailable})
			continue
		}

		if p.limiter != nil {
			if err := p.limiter.Wait(ctx, req.URL); err != nil {
				log.Debug().Err(err).Str("tier", string(name)).Msg("Rate limiter wait aborted")
				outcome.Attempts = append(outcome.Attempts,
					models.TierAttempt{Tier: name, Reason: models.FailTransport})
				continue
			}
		}

		start := time.Now()
		result := tier.Extract(ctx, req)
		elapsed := time.Since(start)

		if result.Reason != models.FailNone {
			outcome.Attempts = append(outcome.Attempts,
				models.TierAttempt{Tier: name, Reason: result.Reason})
			continue
		}

		if ok, signal := p.gate.Evaluate(result.Text); !ok {
			log.Debug().
				Str("tier", string(name)).
				Str("block_signal", signal).
				Int("chars", len(result.Text)).
				Dur("elapsed", elapsed).
				Msg("Content rejected by quality gate")
			outcome.Attempts = append(outcome.Attempts,
				models.TierAttempt{Tier: name, Reason: models.FailQuality})
			continue
		}

		outcome.Content = normalize.Clean(result.Text)
		outcome.Tier = name
		outcome.Attempts = append(outcome.Attempts, models.TierAttempt{Tier: name})
		log.Info().
			Str("url", req.URL).
			Str("tier", string(name)).
			Int("chars", len(outcome.Content)).
			Dur("elapsed", elapsed).
			Msg("Fetch succeeded")
		return outcome
	}

	log.Warn().Str("url", req.URL).Msg("All tiers failed, no usable content")
	return outcome
}
