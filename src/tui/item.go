package tui

import "lintwell/src/ranking"

// Item wraps a ranked lint finding and implements bubbles/list.Item.
type Item struct {
	Ranked ranking.RankedCard
}

// FilterValue is the value used for fuzzy filtering.
func (i Item) FilterValue() string { return i.Ranked.Card.NormalizedMsg }

// Title returns the primary text for the item (required by list.Item).
func (i Item) Title() string { return i.Ranked.Card.NormalizedMsg }

// Description returns the secondary text for the item (required by list.Item).
func (i Item) Description() string { return i.Ranked.Card.Path }

// GetRecurrence returns the recurrence count for this item.
func (i Item) GetRecurrence() int {
	return i.Ranked.Card.GetRecurrenceCount()
}
