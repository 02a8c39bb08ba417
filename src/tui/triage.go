// Package tui provides the terminal user interface for triaging lint
// findings: a ranked list on the left, full diagnostic detail on the right.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"lintwell/src/ranking"
)

// filterMode selects which tier the list shows.
type filterMode int

const (
	filterAll filterMode = iota
	filterBlocking
	filterStyle
)

func (f filterMode) String() string {
	switch f {
	case filterBlocking:
		return "blocking"
	case filterStyle:
		return "style"
	}
	return "all"
}

// Model is the Bubble Tea model for the triage UI.
type Model struct {
	tiered ranking.TieredCards

	list          list.Model
	delegate      *Delegate
	viewport      viewport.Model
	styles        *StyleConfig
	filter        filterMode
	detailFocused bool

	width  int
	height int
	ready  bool
}

// NewModel creates a triage model over ranked findings.
func NewModel(tiered ranking.TieredCards) Model {
	delegate := NewDelegate()
	l := list.New([]list.Item{}, &delegate, 0, 0)
	l.SetShowStatusBar(false)
	l.SetShowTitle(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)

	m := Model{
		tiered:   tiered,
		list:     l,
		delegate: &delegate,
		styles:   DefaultStyles(),
	}
	m.applyFilter()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.resize()
		m.updateDetail()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit

		case "0":
			m.filter = filterAll
			m.applyFilter()
			m.resize()
			m.updateDetail()
			return m, nil
		case "1":
			m.filter = filterBlocking
			m.applyFilter()
			m.resize()
			m.updateDetail()
			return m, nil
		case "2":
			m.filter = filterStyle
			m.applyFilter()
			m.resize()
			m.updateDetail()
			return m, nil

		case "enter", "tab":
			m.detailFocused = !m.detailFocused
			return m, nil
		case "esc":
			m.detailFocused = false
			return m, nil
		}

		if m.detailFocused {
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}

		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		m.updateDetail()
		return m, cmd
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "\n  Initializing..."
	}

	header := m.renderHeader()
	availableHeight := m.height - lipgloss.Height(header) - 1 - 2

	leftWidth := int(float64(m.width) * 0.45)
	rightWidth := m.width - leftWidth

	left := m.styles.PanelStyle().
		Width(leftWidth - 2).
		Height(availableHeight).
		Render(m.list.View())
	right := m.styles.PanelStyle().
		Width(rightWidth - 2).
		Height(availableHeight).
		Render(m.viewport.View())

	main := lipgloss.JoinHorizontal(lipgloss.Top, left, right)
	return lipgloss.JoinVertical(lipgloss.Left, header, main, m.renderHelp())
}

// renderHeader renders the title bar with tier counts and active filter.
func (m Model) renderHeader() string {
	blocking, style := m.tiered.Counts()
	title := fmt.Sprintf("lintwell triage — %d blocking, %d style [%s]",
		blocking, style, m.filter)
	return m.styles.TitleStyle().Render(title)
}

// renderHelp renders the context-aware key hints.
func (m Model) renderHelp() string {
	keyStyle := lipgloss.NewStyle().Foreground(m.styles.Primary).Bold(true)
	sepStyle := lipgloss.NewStyle().Foreground(m.styles.TextSecondary)

	var help string
	if m.detailFocused {
		help = fmt.Sprintf("%s: Scroll %s %s: Back %s %s: Quit",
			keyStyle.Render("j/k"), sepStyle.Render("•"),
			keyStyle.Render("Esc"), sepStyle.Render("•"),
			keyStyle.Render("q"))
	} else {
		help = fmt.Sprintf("%s: Nav %s %s: All/Blocking/Style %s %s: Detail %s %s: Quit",
			keyStyle.Render("j/k"), sepStyle.Render("•"),
			keyStyle.Render("0/1/2"), sepStyle.Render("•"),
			keyStyle.Render("Enter"), sepStyle.Render("•"),
			keyStyle.Render("q"))
	}
	return m.styles.HelpStyle().Render(help)
}

// applyFilter rebuilds the list items for the active tier filter.
func (m *Model) applyFilter() {
	var ranked []ranking.RankedCard
	switch m.filter {
	case filterBlocking:
		ranked = m.tiered.Blocking
	case filterStyle:
		ranked = m.tiered.Style
	default:
		ranked = m.tiered.FlattenByTier()
	}

	maxRank, maxRecur := 0, 0
	items := make([]list.Item, 0, len(ranked))
	for _, r := range ranked {
		item := Item{Ranked: r}
		if r.Rank > maxRank {
			maxRank = r.Rank
		}
		if n := item.GetRecurrence(); n > maxRecur {
			maxRecur = n
		}
		items = append(items, item)
	}

	m.delegate.SetColumnWidths(maxRank, maxRecur)
	m.list.SetItems(items)
	m.list.ResetSelected()
}

// resize propagates the current dimensions to the panels.
func (m *Model) resize() {
	if !m.ready {
		return
	}
	headerHeight := lipgloss.Height(m.renderHeader())
	availableHeight := m.height - headerHeight - 1 - 2

	leftWidth := int(float64(m.width) * 0.45)
	rightWidth := m.width - leftWidth

	m.list.SetSize(leftWidth-4, availableHeight)
	m.viewport.Width = rightWidth - 4
	m.viewport.Height = availableHeight
}

// updateDetail fills the detail viewport for the selected finding.
func (m *Model) updateDetail() {
	item, ok := m.list.SelectedItem().(Item)
	if !ok {
		m.viewport.SetContent("No findings.")
		return
	}

	card := item.Ranked.Card
	labelStyle := lipgloss.NewStyle().Foreground(m.styles.TextSecondary)
	valueStyle := lipgloss.NewStyle().Foreground(m.styles.TextPrimary)
	sevStyle := lipgloss.NewStyle().Foreground(m.styles.SeverityColor(card.Severity)).Bold(true)

	width := m.viewport.Width
	if width <= 0 {
		width = 80
	}

	var b strings.Builder
	b.WriteString(sevStyle.Render(fmt.Sprintf("%s %s", card.Code, card.Severity)))
	if card.Symbol != "" {
		b.WriteString(valueStyle.Render(fmt.Sprintf("  (%s)", card.Symbol)))
	}
	b.WriteString("\n\n")

	b.WriteString(labelStyle.Render("Location   "))
	b.WriteString(valueStyle.Render(fmt.Sprintf("%s:%d:%d", card.Path, card.Line, card.Column)))
	b.WriteString("\n")

	b.WriteString(labelStyle.Render("Recurrence "))
	b.WriteString(valueStyle.Render(fmt.Sprintf("%d", item.GetRecurrence())))
	b.WriteString("\n")

	b.WriteString(labelStyle.Render("Hash       "))
	b.WriteString(valueStyle.Render(card.MessageHash))
	b.WriteString("\n\n")

	b.WriteString(labelStyle.Render("Message"))
	b.WriteString("\n")
	b.WriteString(valueStyle.Render(Wrap(CleanText(card.RawMessage), width)))
	b.WriteString("\n\n")

	b.WriteString(labelStyle.Render("Pattern"))
	b.WriteString("\n")
	b.WriteString(valueStyle.Render(Wrap(card.NormalizedMsg, width)))

	m.viewport.SetContent(b.String())
	m.viewport.GotoTop()
}

// Start runs the triage UI over the given ranked findings.
func Start(tiered ranking.TieredCards) error {
	p := tea.NewProgram(NewModel(tiered), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
