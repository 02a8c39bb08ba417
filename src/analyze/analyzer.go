// Package analyze turns raw linter output into lint cards.
package analyze

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"lintwell/src/contracts"
	"lintwell/src/patterns"
	"lintwell/src/pylint"
	"lintwell/src/sanitize"
)

// AnalyzeChunk parses one output chunk into lint cards. This is stateless:
// chunks split on line boundaries, so each can be analyzed independently.
func AnalyzeChunk(chunk contracts.OutputChunk) ([]contracts.LintCard, error) {
	cleaned := sanitize.Clean(chunk.Content)

	diags, err := pylint.Parse([]byte(cleaned))
	if err != nil {
		return nil, fmt.Errorf("failed to parse chunk %d: %w", chunk.ChunkIndex, err)
	}

	cards := make([]contracts.LintCard, 0, len(diags))
	for i, d := range diags {
		cards = append(cards, BuildCard(chunk.RequestID, d, i, chunk.ChunkIndex))
	}
	return cards, nil
}

// BuildCard converts one diagnostic into a lint card with normalization and
// recurrence hash applied.
func BuildCard(requestID string, d pylint.Diagnostic, index, chunkIndex int) contracts.LintCard {
	severity := d.Severity()
	normalized := patterns.Normalize(d.Message, patterns.MaskRecurrence)

	return contracts.LintCard{
		ID:             fmt.Sprintf("%s-%d-%d", requestID, chunkIndex, index),
		RequestID:      requestID,
		MessageHash:    HashMessage(d.Code, normalized),
		Path:           d.Path,
		Line:           d.Line,
		Column:         d.Column,
		Code:           d.Code,
		Symbol:         d.Symbol,
		Severity:       severity,
		RawMessage:     d.Message,
		NormalizedMsg:  normalized,
		SeverityWeight: pylint.Weight(severity),
		Metadata: map[string]string{
			"location": d.Location(),
		},
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

// HashMessage computes the recurrence hash for a diagnostic: the message id
// plus the normalized text. Identical diagnostics across files share a hash.
func HashMessage(code, normalized string) string {
	sum := sha256.Sum256([]byte(code + ":" + normalized))
	return hex.EncodeToString(sum[:8])
}
