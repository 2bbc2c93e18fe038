package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/hasanpeal/AlphaSignalAI/internal/domain"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Quote screen message types.
type quoteMsg *domain.StockQuote
type quoteErrMsg struct{ err error }
type matchesMsg []domain.SymbolMatch
type quoteTickMsg time.Time

const quoteRefreshEvery = 15 * time.Second

// QuoteModel is the Bubble Tea model for the quote lookup screen.
type QuoteModel struct {
	services Services
	input    textinput.Model
	quote    *domain.StockQuote
	matches  []domain.SymbolMatch
	symbol   string
	loading  bool
	err      error
	width    int
	height   int
}

// NewQuoteModel creates a new quote lookup model.
func NewQuoteModel(svc Services) QuoteModel {
	ti := textinput.New()
	ti.Placeholder = "Symbol or company name (e.g. AAPL, apple)..."
	ti.CharLimit = 60
	ti.Width = 40
	ti.Focus()

	return QuoteModel{
		services: svc,
		input:    ti,
	}
}

// Init initializes the quote model.
func (m QuoteModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.tickCmd())
}

// Update handles incoming messages.
func (m QuoteModel) Update(msg tea.Msg) (QuoteModel, tea.Cmd) {
	switch msg := msg.(type) {
	case quoteMsg:
		m.quote = msg
		m.loading = false
		m.err = nil
		return m, nil

	case quoteErrMsg:
		m.loading = false
		m.err = msg.err
		return m, nil

	case matchesMsg:
		m.matches = msg
		return m, nil

	case quoteTickMsg:
		if m.symbol == "" {
			return m, m.tickCmd()
		}
		return m, tea.Batch(m.fetchQuoteCmd(m.symbol), m.tickCmd())

	case tea.KeyMsg:
		if msg.String() == "R" && m.symbol != "" {
			m.loading = true
			return m, m.fetchQuoteCmd(m.symbol)
		}
		if msg.Type == tea.KeyEnter {
			query := strings.TrimSpace(m.input.Value())
			if query == "" {
				return m, nil
			}
			m.input.SetValue("")
			var cmds []tea.Cmd
			cmds = append(cmds, m.searchCmd(query))
			if looksLikeTicker(query) {
				m.symbol = strings.ToUpper(query)
				m.loading = true
				cmds = append(cmds, m.fetchQuoteCmd(m.symbol))
			}
			return m, tea.Batch(cmds...)
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the quote screen.
func (m QuoteModel) View() string {
	var sections []string

	sections = append(sections, HeaderStyle.Render("  Stock Quotes"))
	sections = append(sections, "  "+m.input.View())
	sections = append(sections, "")

	quoteWidth := m.width*2/3 - 2
	if quoteWidth < 44 {
		quoteWidth = 44
	}
	matchWidth := m.width - quoteWidth - 4
	if matchWidth < 24 {
		matchWidth = 24
	}

	quoteBox := BorderStyle.Width(quoteWidth).Render(m.renderQuote())
	matchBox := BorderStyle.Width(matchWidth).Render(m.renderMatches())
	sections = append(sections, lipgloss.JoinHorizontal(lipgloss.Top, quoteBox, matchBox))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// SetSize updates the model dimensions.
func (m *QuoteModel) SetSize(w, h int) {
	m.width = w
	m.height = h
	m.input.Width = w - 6
}

// Focus gives focus to the text input.
func (m *QuoteModel) Focus() {
	m.input.Focus()
}

// Blur removes focus from the text input.
func (m *QuoteModel) Blur() {
	m.input.Blur()
}

// Quote returns the current quote (for testing).
func (m QuoteModel) Quote() *domain.StockQuote { return m.quote }

// Symbol returns the tracked symbol (for testing).
func (m QuoteModel) Symbol() string { return m.symbol }

func (m QuoteModel) renderQuote() string {
	header := HeaderStyle.Render("  Quote")
	if m.loading && m.quote == nil {
		return header + "\n" + SubtextStyle.Render("  Loading...")
	}
	if m.err != nil && m.quote == nil {
		return header + "\n" + ErrorStyle.Render(fmt.Sprintf("  Error: %v", m.err))
	}
	if m.quote == nil {
		return header + "\n" + SubtextStyle.Render("  Enter a symbol to see its quote.")
	}

	q := m.quote
	changeLine := changeStyle(q.PercentChange).Render(fmt.Sprintf("%s (%s%%)", q.Change, q.PercentChange))

	lines := []string{
		header,
		fmt.Sprintf("  %s  %s", HeaderStyle.Render(q.Symbol), SubtextStyle.Render(q.Name)),
		fmt.Sprintf("  Price:    %s %s", q.Close, q.Currency),
		"  Change:   " + changeLine,
		fmt.Sprintf("  Open:     %s   High: %s   Low: %s", q.Open, q.High, q.Low),
		fmt.Sprintf("  Volume:   %s", q.Volume),
		fmt.Sprintf("  52w:      %s", q.FiftyTwoWeek.Range),
	}
	if q.IsMarketOpen {
		lines = append(lines, "  "+PriceUpStyle.Render("Market open"))
	} else {
		lines = append(lines, "  "+SubtextStyle.Render("Market closed"))
	}
	if m.err != nil {
		lines = append(lines, ErrorStyle.Render(fmt.Sprintf("  Refresh failed: %v", m.err)))
	}
	return strings.Join(lines, "\n")
}

func (m QuoteModel) renderMatches() string {
	header := HeaderStyle.Render("  Matches")
	if len(m.matches) == 0 {
		return header + "\n" + SubtextStyle.Render("  No results yet.")
	}

	lines := []string{header}
	count := len(m.matches)
	if count > 8 {
		count = 8
	}
	for i := 0; i < count; i++ {
		sm := m.matches[i]
		lines = append(lines, fmt.Sprintf("  %s %s", HeaderStyle.Render(sm.Symbol), SubtextStyle.Render(sm.Exchange)))
		lines = append(lines, "    "+sm.Name)
	}
	return strings.Join(lines, "\n")
}

func (m QuoteModel) fetchQuoteCmd(symbol string) tea.Cmd {
	return func() tea.Msg {
		if m.services.Market == nil {
			return quoteErrMsg{err: fmt.Errorf("market service not available")}
		}
		quote, err := m.services.Market.GetQuote(context.Background(), symbol)
		if err != nil {
			return quoteErrMsg{err: err}
		}
		return quoteMsg(quote)
	}
}

func (m QuoteModel) searchCmd(query string) tea.Cmd {
	return func() tea.Msg {
		if m.services.Market == nil {
			return matchesMsg(nil)
		}
		return matchesMsg(m.services.Market.SearchSymbols(context.Background(), query))
	}
}

func (m QuoteModel) tickCmd() tea.Cmd {
	return tea.Tick(quoteRefreshEvery, func(t time.Time) tea.Msg {
		return quoteTickMsg(t)
	})
}

// looksLikeTicker reports whether the input can be sent straight to the
// quote endpoint instead of only the symbol search.
func looksLikeTicker(s string) bool {
	if len(s) == 0 || len(s) > 6 {
		return false
	}
	for _, r := range s {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') && r != '.' {
			return false
		}
	}
	return true
}

func changeStyle(percentChange string) lipgloss.Style {
	v, err := strconv.ParseFloat(percentChange, 64)
	if err != nil || v == 0 {
		return PriceZeroStyle
	}
	if v > 0 {
		return PriceUpStyle
	}
	return PriceDownStyle
}
