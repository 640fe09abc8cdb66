package models

import "time"

// TierName identifies which extraction tier produced a result.
type TierName string

const (
	// TierNone means no tier produced usable content.
	TierNone TierName = ""
	// TierStatic is the plain HTTP fetch plus static HTML parse.
	TierStatic TierName = "static"
	// TierReader is the remote reader proxy service.
	TierReader TierName = "reader"
	// TierBrowser is the local headless Chrome render.
	TierBrowser TierName = "browser"
)

// FailureReason explains why a tier produced no usable content. The pipeline
// treats every reason the same way (advance to the next tier); the reason is
// recorded so operators and tests can see why a tier was skipped.
type FailureReason string

const (
	FailNone        FailureReason = ""
	FailUnavailable FailureReason = "unavailable"
	FailTransport   FailureReason = "transport_error"
	FailParse       FailureReason = "parse_error"
	FailQuality     FailureReason = "below_quality_threshold"
)

// Availability is the tri-state result of a tier's capability probe.
type Availability int

const (
	// Available means the tier's external tooling can be used.
	Available Availability = iota
	// Unavailable means the tooling is not present in this runtime.
	Unavailable
	// ErrorDuringUse means the tooling is present but misconfigured or broken.
	ErrorDuringUse
)

func (a Availability) String() string {
	switch a {
	case Available:
		return "available"
	case Unavailable:
		return "unavailable"
	case ErrorDuringUse:
		return "error_during_use"
	default:
		return "unknown"
	}
}

// Format selects the output representation for extracted content.
type Format string

const (
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
)

// FetchRequest describes a single fetch through the tier pipeline.
// Timeout is a soft per-tier budget, not a deadline across all tiers.
type FetchRequest struct {
	URL     string
	Timeout time.Duration
	Format  Format
}

// TierResult is what a single tier hands back to the pipeline: raw text, or
// a reason it could not help. A tier never returns an error past its boundary.
type TierResult struct {
	Text   string
	Reason FailureReason
}

// OK reports whether the tier produced text at all. The text still has to
// pass the quality gate before a caller ever sees it.
func (r TierResult) OK() bool {
	return r.Reason == FailNone && r.Text != ""
}

// TierAttempt records one tier's run in the outcome trail.
type TierAttempt struct {
	Tier   TierName
	Reason FailureReason
}

// FetchOutcome is the final result of a pipeline run. Either Content is
// non-empty, already gated and cleaned, and Tier names the winner, or both
// are zero values and Attempts says what each tier reported.
type FetchOutcome struct {
	Content  string
	Tier     TierName
	Attempts []TierAttempt
}

// Succeeded reports whether any tier passed the quality gate.
func (o FetchOutcome) Succeeded() bool {
	return o.Content != ""
}
