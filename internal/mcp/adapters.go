package mcp

import (
	"context"

	"github.com/hasanpeal/AlphaSignalAI/internal/domain"
)

// StockReader exposes read operations for market data.
type StockReader interface {
	GetStockData(ctx context.Context, symbol string) (*domain.StockData, error)
	GetQuote(ctx context.Context, symbol string) (*domain.StockQuote, error)
	SearchSymbols(ctx context.Context, query string) []domain.SymbolMatch
}

// SentimentReader exposes read operations for Twitter sentiment.
type SentimentReader interface {
	GetStockSentiment(ctx context.Context, symbol, companyName string) *domain.SocialSentiment
}
