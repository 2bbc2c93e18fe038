package tui

import (
	"testing"

	"github.com/hasanpeal/AlphaSignalAI/internal/domain"

	tea "github.com/charmbracelet/bubbletea"
)

func TestLooksLikeTicker(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"AAPL", true},
		{"tsla", true},
		{"BRK.B", true},
		{"apple inc", false},
		{"TOOLONGNAME", false},
		{"", false},
		{"$SPY", false},
	}
	for _, tc := range cases {
		if got := looksLikeTicker(tc.in); got != tc.want {
			t.Errorf("looksLikeTicker(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestQuoteModelEnterFetchesTicker(t *testing.T) {
	m := NewQuoteModel(testServices())
	m.SetSize(120, 40)
	m.input.SetValue("aapl")

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if updated.Symbol() != "AAPL" {
		t.Fatalf("expected tracked symbol AAPL, got %q", updated.Symbol())
	}
	if cmd == nil {
		t.Fatal("expected fetch command after Enter")
	}
}

func TestQuoteModelEnterSearchOnlyForLongQuery(t *testing.T) {
	m := NewQuoteModel(testServices())
	m.SetSize(120, 40)
	m.input.SetValue("apple computer")

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if updated.Symbol() != "" {
		t.Fatalf("expected no tracked symbol, got %q", updated.Symbol())
	}
	if cmd == nil {
		t.Fatal("expected search command after Enter")
	}
}

func TestQuoteModelReceiveQuote(t *testing.T) {
	m := NewQuoteModel(testServices())
	m.SetSize(120, 40)
	m.loading = true

	quote := &domain.StockQuote{Symbol: "MSFT", Name: "Microsoft", Close: "420.00", PercentChange: "1.10"}
	updated, _ := m.Update(quoteMsg(quote))
	if updated.Quote() == nil || updated.Quote().Symbol != "MSFT" {
		t.Fatalf("expected stored quote, got %+v", updated.Quote())
	}
	if updated.loading {
		t.Fatal("expected loading cleared after quote arrives")
	}

	view := updated.View()
	if view == "" {
		t.Fatal("expected non-empty view")
	}
}

func TestQuoteModelTickWithoutSymbol(t *testing.T) {
	m := NewQuoteModel(testServices())
	m.SetSize(120, 40)

	updated, cmd := m.Update(quoteTickMsg{})
	if updated.Symbol() != "" {
		t.Fatalf("expected no tracked symbol, got %q", updated.Symbol())
	}
	if cmd == nil {
		t.Fatal("expected re-tick command")
	}
}

func TestChangeStyle(t *testing.T) {
	if changeStyle("1.5").GetForeground() != PriceUpStyle.GetForeground() {
		t.Fatal("expected up style for positive change")
	}
	if changeStyle("-0.3").GetForeground() != PriceDownStyle.GetForeground() {
		t.Fatal("expected down style for negative change")
	}
	if changeStyle("").GetForeground() != PriceZeroStyle.GetForeground() {
		t.Fatal("expected zero style for unparseable change")
	}
}
