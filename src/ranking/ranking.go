// Package ranking provides shared tier classification for lint findings.
// Both the MCP server and the TUI consume this package so prioritization
// stays consistent across surfaces.
package ranking

import (
	"sort"
	"strconv"

	"lintwell/src/contracts"
	"lintwell/src/pylint"
)

// Tier constants for finding classification.
const (
	TierBlocking = 1 // fatal/error class - likely bugs, fail the build
	TierStyle    = 3 // warning/refactor/convention - style and smell
)

// RankedCard wraps a LintCard with tier and rank information.
type RankedCard struct {
	Card contracts.LintCard
	Tier int // TierBlocking (1) or TierStyle (3)
	Rank int // Position within the flattened list (1-indexed)
}

// TieredCards groups cards by tier, each tier sorted by severity weight.
type TieredCards struct {
	Blocking []RankedCard // Fatal and error diagnostics (highest signal)
	Style    []RankedCard // Convention, refactor and warning diagnostics
}

// RankCards classifies cards into tiers and returns grouped results.
// Each tier is sorted by severity weight (descending), then recurrence
// (descending). Duplicates (same NormalizedMsg) are removed, keeping the
// highest-weight occurrence and recording the recurrence count.
func RankCards(cards []contracts.LintCard) TieredCards {
	if len(cards) == 0 {
		return TieredCards{}
	}

	// Count pattern recurrence before deduplication.
	recurrence := make(map[string]int)
	for _, card := range cards {
		recurrence[card.NormalizedMsg]++
	}

	sorted := make([]contracts.LintCard, len(cards))
	copy(sorted, cards)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].SeverityWeight != sorted[j].SeverityWeight {
			return sorted[i].SeverityWeight > sorted[j].SeverityWeight
		}
		return recurrence[sorted[i].NormalizedMsg] > recurrence[sorted[j].NormalizedMsg]
	})

	seen := make(map[string]bool)

	var blocking, style []RankedCard
	for _, card := range sorted {
		// Skip duplicates (keep first occurrence = highest weight).
		if seen[card.NormalizedMsg] {
			continue
		}
		seen[card.NormalizedMsg] = true

		if card.Metadata == nil {
			card.Metadata = make(map[string]string)
		}
		card.Metadata["recurrence_count"] = strconv.Itoa(recurrence[card.NormalizedMsg])

		ranked := RankedCard{Card: card, Tier: ClassifyTier(card)}
		switch ranked.Tier {
		case TierBlocking:
			blocking = append(blocking, ranked)
		case TierStyle:
			style = append(style, ranked)
		}
	}

	return TieredCards{Blocking: blocking, Style: style}
}

// FlattenByTier returns all cards sorted by tier (blocking first, then
// style), preserving weight order within each tier. Assigns global rank
// (1-indexed).
func (tc TieredCards) FlattenByTier() []RankedCard {
	total := len(tc.Blocking) + len(tc.Style)
	if total == 0 {
		return nil
	}

	result := make([]RankedCard, 0, total)
	result = append(result, tc.Blocking...)
	result = append(result, tc.Style...)

	for i := range result {
		result[i].Rank = i + 1
	}
	return result
}

// Counts returns the count of blocking and style findings.
func (tc TieredCards) Counts() (blocking, style int) {
	return len(tc.Blocking), len(tc.Style)
}

// ClassifyTier determines which tier a card belongs to.
func ClassifyTier(card contracts.LintCard) int {
	switch card.Severity {
	case pylint.SeverityFatal, pylint.SeverityError:
		return TierBlocking
	}
	return TierStyle
}
