// Package quality decides whether extracted text is real content or an
// anti-bot interstitial, error page, or other noise.
package quality

import (
	"strings"
	"unicode/utf8"
)

// Defaults for the gate policy. The length threshold is a cheap proxy for
// "article-length content": block and interstitial pages are almost always
// short. The signal list is a heuristic, not an exhaustive catalogue.
const (
	DefaultMinLength  = 350
	DefaultHeadWindow = 600
)

// DefaultBlockSignals are phrases that, near the top of a page, almost always
// mean an anti-bot challenge or an error page rather than content.
var DefaultBlockSignals = []string{
	"just a moment",
	"checking your browser",
	"enable javascript",
	"please wait",
	"ddos protection",
	"access denied",
	"403 forbidden",
	"404 not found",
}

// Policy is the tunable part of the gate. Zero fields fall back to the
// package defaults, so Policy{} behaves like DefaultPolicy().
type Policy struct {
	// MinLength is the minimum trimmed length for text to count as content.
	MinLength int
	// HeadWindow is how many leading characters are scanned for block signals.
	HeadWindow int
	// BlockSignals are matched case-insensitively within the head window.
	BlockSignals []string
}

// DefaultPolicy returns the policy used when callers do not tune anything.
func DefaultPolicy() Policy {
	return Policy{
		MinLength:    DefaultMinLength,
		HeadWindow:   DefaultHeadWindow,
		BlockSignals: DefaultBlockSignals,
	}
}

// Gate evaluates extracted text against a fixed policy. It is pure and safe
// for concurrent use.
type Gate struct {
	policy Policy
}

// NewGate creates a gate, filling unset policy fields from the defaults.
func NewGate(p Policy) *Gate {
	if p.MinLength <= 0 {
		p.MinLength = DefaultMinLength
	}
	if p.HeadWindow <= 0 {
		p.HeadWindow = DefaultHeadWindow
	}
	if p.BlockSignals == nil {
		p.BlockSignals = DefaultBlockSignals
	}
	return &Gate{policy: p}
}

// IsUseful reports whether text looks like real page content.
func (g *Gate) IsUseful(text string) bool {
	ok, _ := g.Evaluate(text)
	return ok
}

// Evaluate is IsUseful plus the block signal that caused a rejection, when
// one did, so callers can log what tripped the gate.
func (g *Gate) Evaluate(text string) (bool, string) {
	// Characters, not bytes: multibyte scripts must not inflate the count.
	if utf8.RuneCountInString(strings.TrimSpace(text)) < g.policy.MinLength {
		return false, ""
	}
	head := strings.ToLower(text)
	if len(head) > g.policy.HeadWindow {
		head = head[:g.policy.HeadWindow]
	}
	for _, signal := range g.policy.BlockSignals {
		if strings.Contains(head, signal) {
			return false, signal
		}
	}
	return true, ""
}
