package mcp

import (
	"lintwell/src/contracts"
	"lintwell/src/ranking"
	"lintwell/src/sanitize"
)

// Default finding limits per tier. Blocking findings are highest signal
// and get the larger budget; style findings are summarized anyway.
const (
	DefaultBlockingLimit = 25
	DefaultStyleLimit    = 50

	summaryMessageLimit = 100
)

// TierFindings deduplicates and ranks cards, then converts them to
// LLM-ready findings grouped by tier.
func TierFindings(cards []contracts.LintCard) TieredFindings {
	tiered := ranking.RankCards(cards)

	result := TieredFindings{
		Blocking: make([]Finding, 0, len(tiered.Blocking)),
		Style:    make([]Finding, 0, len(tiered.Style)),
	}
	for _, r := range tiered.Blocking {
		result.Blocking = append(result.Blocking, convertToFinding(r))
	}
	for _, r := range tiered.Style {
		result.Style = append(result.Style, convertToFinding(r))
	}
	return result
}

// convertToFinding converts a ranked card to a Finding.
func convertToFinding(r ranking.RankedCard) Finding {
	card := r.Card
	return Finding{
		ID:         card.MessageHash,
		Message:    sanitize.Clean(card.RawMessage),
		Pattern:    card.NormalizedMsg,
		Severity:   card.Severity,
		Code:       card.Code,
		Symbol:     card.Symbol,
		Path:       card.Path,
		Line:       card.Line,
		Column:     card.Column,
		Weight:     card.SeverityWeight,
		Recurrence: card.GetRecurrenceCount(),
	}
}

// ToManifest converts tiered findings to the lint_path response. Blocking
// findings are included in full up to limit; style findings are converted
// to summaries.
func ToManifest(requestID string, run RunInfo, tiered TieredFindings, limit int) ManifestResponse {
	blockingLimit := DefaultBlockingLimit
	styleLimit := DefaultStyleLimit
	if limit > 0 {
		blockingLimit = limit
		styleLimit = limit * 2
	}

	truncated := false

	blocking := tiered.Blocking
	if len(blocking) > blockingLimit {
		blocking = blocking[:blockingLimit]
		truncated = true
	}

	style := tiered.Style
	if len(style) > styleLimit {
		style = style[:styleLimit]
		truncated = true
	}

	summaries := make([]FindingSummary, 0, len(style))
	for _, f := range style {
		summaries = append(summaries, toSummary(f, ranking.TierStyle))
	}

	return ManifestResponse{
		RequestID:        requestID,
		Run:              run,
		BlockingFindings: blocking,
		StyleFindings:    summaries,
		Truncated:        truncated,
	}
}

// toSummary converts a Finding to a FindingSummary.
func toSummary(f Finding, tier int) FindingSummary {
	msg := f.Message
	if len(msg) > summaryMessageLimit {
		msg = msg[:summaryMessageLimit-3] + "..."
	}
	return FindingSummary{
		ID:       f.ID,
		Tier:     tier,
		Message:  msg,
		Severity: f.Severity,
		Code:     f.Code,
		Path:     f.Path,
	}
}
