package mcp

import (
	"fmt"
	"strings"

	"github.com/hasanpeal/AlphaSignalAI/internal/domain"
)

const maxSymbolLen = 12

type stockDataGetInput struct {
	Symbol string `json:"symbol" jsonschema:"stock ticker symbol (e.g. AAPL, TSLA)"`
}

type stockDataGetOutput struct {
	Data *domain.StockData `json:"data"`
}

type quoteGetInput struct {
	Symbol string `json:"symbol" jsonschema:"stock ticker symbol (e.g. AAPL, TSLA)"`
}

type quoteGetOutput struct {
	Quote *domain.StockQuote `json:"quote"`
}

type symbolsSearchInput struct {
	Query string `json:"query" jsonschema:"ticker or company name fragment to search for"`
}

type symbolsSearchOutput struct {
	Matches []domain.SymbolMatch `json:"matches"`
}

type sentimentGetInput struct {
	Symbol      string `json:"symbol" jsonschema:"stock ticker symbol (e.g. AAPL, TSLA)"`
	CompanyName string `json:"company_name,omitempty" jsonschema:"optional company name to widen the Twitter search"`
}

type sentimentGetOutput struct {
	Symbol    string                  `json:"symbol"`
	Sentiment *domain.SocialSentiment `json:"sentiment"`
}

// normalizeSymbol uppercases and validates a ticker. There is no fixed symbol
// universe; the upstream decides whether a ticker exists.
func normalizeSymbol(symbol string) (string, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return "", fmt.Errorf("symbol is required")
	}
	if len(symbol) > maxSymbolLen {
		return "", fmt.Errorf("symbol too long: %s", symbol)
	}
	for _, r := range symbol {
		if (r < 'A' || r > 'Z') && (r < '0' || r > '9') && r != '.' && r != '-' {
			return "", fmt.Errorf("invalid symbol: %s", symbol)
		}
	}
	return symbol, nil
}

func normalizeQuery(query string) (string, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return "", fmt.Errorf("query is required")
	}
	return query, nil
}
