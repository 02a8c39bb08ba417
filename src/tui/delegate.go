package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// listRenderingOverhead accounts for padding added by bubbles/list and the
// panel border around it.
const listRenderingOverhead = 10

// Delegate renders lint findings as table rows:
//
//	rank │ code │ count │ message
type Delegate struct {
	RankWidth  int
	RecurWidth int
	styles     *StyleConfig
}

// NewDelegate creates a triage table delegate with default styles.
func NewDelegate() Delegate {
	return Delegate{
		RankWidth:  2,
		RecurWidth: 2,
		styles:     DefaultStyles(),
	}
}

// SetColumnWidths sizes the rank and recurrence columns for their largest
// values.
func (d *Delegate) SetColumnWidths(maxRank, maxRecurrence int) {
	d.RankWidth = len(fmt.Sprintf("%d", maxRank))
	if d.RankWidth < 2 {
		d.RankWidth = 2
	}
	d.RecurWidth = len(fmt.Sprintf("%d", maxRecurrence))
	if d.RecurWidth < 2 {
		d.RecurWidth = 2
	}
}

// Height returns the height of a list item.
func (d Delegate) Height() int { return 1 }

// Spacing returns spacing between items.
func (d Delegate) Spacing() int { return 0 }

// Update handles item updates.
func (d Delegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }

// Render renders a single table row.
func (d Delegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	entry, ok := item.(Item)
	if !ok {
		return
	}

	isSelected := index == m.Index()
	card := entry.Ranked.Card

	rankCol := fmt.Sprintf(fmt.Sprintf("%%%dd", d.RankWidth), entry.Ranked.Rank)
	codeCol := TruncateAndPad(card.Code, 5, false)
	recurCol := fmt.Sprintf(fmt.Sprintf("%%%dd", d.RecurWidth), entry.GetRecurrence())

	// Fixed columns: rank + code (5) + recurrence + separators (9)
	fixedWidth := d.RankWidth + 5 + d.RecurWidth + 9
	availableWidth := m.Width() - fixedWidth - listRenderingOverhead

	var snippet string
	if availableWidth > 0 {
		snippet = TruncateAndPad(CleanText(card.NormalizedMsg), availableWidth, true)
	}

	line := fmt.Sprintf("%s │ %s │ %s │ %s", rankCol, codeCol, recurCol, snippet)

	style := lipgloss.NewStyle().Foreground(d.styles.SeverityColor(card.Severity))
	if isSelected {
		style = style.Bold(true).Background(d.styles.SelectedColor)
	}

	fmt.Fprint(w, style.Render(line))
}
