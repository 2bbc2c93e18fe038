package tui

import (
	"context"

	"github.com/hasanpeal/AlphaSignalAI/internal/domain"
)

// MarketQuerier provides quote and symbol-search data to the TUI.
type MarketQuerier interface {
	GetQuote(ctx context.Context, symbol string) (*domain.StockQuote, error)
	SearchSymbols(ctx context.Context, query string) []domain.SymbolMatch
}

// AdvisorQuerier provides LLM advisor access to the TUI.
type AdvisorQuerier interface {
	Ask(ctx context.Context, sessionID, message string) string
	Reset(sessionID string)
}

// Services bundles all service dependencies injected into the TUI.
type Services struct {
	Market   MarketQuerier
	Advisor  AdvisorQuerier
	Username string
}

// SessionID returns the conversation key for this SSH session. Prefixed so
// it can never collide with web or Telegram session IDs.
func (s Services) SessionID() string {
	return "ssh:" + s.Username
}
