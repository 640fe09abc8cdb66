// Package engine contains the extraction tiers: ordered strategies for
// turning a URL into readable text, from a plain HTTP fetch up to a full
// headless browser render.
package engine

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/web-read/webread/pkg/models"
)

// Extractor is the contract every tier implements. Extract never returns an
// error past its boundary: any internal failure collapses into the result's
// Reason so the pipeline can advance without caring why a tier failed.
type Extractor interface {
	// Name identifies the tier in outcomes and logs.
	Name() models.TierName

	// Probe reports whether the tier's external tooling can be used at all.
	// It is evaluated once per invocation, before Extract.
	Probe() models.Availability

	// Extract fetches raw text for the request. Blocking is bounded by the
	// request's timeout plus any tier-specific grace margin.
	Extract(ctx context.Context, req models.FetchRequest) models.TierResult
}

// failure logs a tier-internal error at debug level and converts it into the
// empty result the pipeline expects.
func failure(tier models.TierName, reason models.FailureReason, err error) models.TierResult {
	log.Debug().
		Err(err).
		Str("tier", string(tier)).
		Str("reason", string(reason)).
		Msg("Tier extraction failed")
	return models.TierResult{Reason: reason}
}
