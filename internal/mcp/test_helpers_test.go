package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hasanpeal/AlphaSignalAI/internal/domain"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

type stubStockService struct {
	dataBySym  map[string]*domain.StockData
	quoteBySym map[string]*domain.StockQuote
	matches    []domain.SymbolMatch

	lastSearchQuery string
}

func (s *stubStockService) GetStockData(ctx context.Context, symbol string) (*domain.StockData, error) {
	if data, ok := s.dataBySym[symbol]; ok {
		copy := *data
		return &copy, nil
	}
	return nil, fmt.Errorf("unknown symbol: %s", symbol)
}

func (s *stubStockService) GetQuote(ctx context.Context, symbol string) (*domain.StockQuote, error) {
	if quote, ok := s.quoteBySym[symbol]; ok {
		copy := *quote
		return &copy, nil
	}
	return nil, fmt.Errorf("unknown symbol: %s", symbol)
}

func (s *stubStockService) SearchSymbols(ctx context.Context, query string) []domain.SymbolMatch {
	s.lastSearchQuery = query
	return append([]domain.SymbolMatch(nil), s.matches...)
}

type stubSentimentService struct {
	sentiment *domain.SocialSentiment

	lastSymbol  string
	lastCompany string
}

func (s *stubSentimentService) GetStockSentiment(ctx context.Context, symbol, companyName string) *domain.SocialSentiment {
	s.lastSymbol = symbol
	s.lastCompany = companyName
	return s.sentiment
}

func testServer() (*sdkmcp.Server, *stubStockService, *stubSentimentService) {
	quote := &domain.StockQuote{Symbol: "AAPL", Name: "Apple Inc", Close: "189.84", PercentChange: "0.72"}
	stocks := &stubStockService{
		dataBySym: map[string]*domain.StockData{
			"AAPL": {Quote: *quote, TimeSeries: []domain.TimeSeriesPoint{{Datetime: "2024-01-02", Close: "185.64"}}},
		},
		quoteBySym: map[string]*domain.StockQuote{"AAPL": quote},
		matches:    []domain.SymbolMatch{{Symbol: "AAPL", Name: "Apple Inc", Exchange: "NASDAQ", Type: "Common Stock"}},
	}
	sentiment := &stubSentimentService{
		sentiment: &domain.SocialSentiment{
			Positive: 3, Negative: 1, Neutral: 1, TotalMentions: 5,
			OverallSentiment: domain.SentimentPositive,
			HasTwitterData:   true,
		},
	}

	srv := NewServer(nil, stocks, sentiment, ServerConfig{RequestTimeout: time.Second})
	return srv, stocks, sentiment
}

func connectInMemory(ctx context.Context, srv *sdkmcp.Server) (*sdkmcp.ClientSession, context.CancelFunc, error) {
	clientTransport, serverTransport := sdkmcp.NewInMemoryTransports()
	runCtx, cancel := context.WithCancel(ctx)
	go func() { _ = srv.Run(runCtx, serverTransport) }()

	client := sdkmcp.NewClient(&sdkmcp.Implementation{Name: "mcp-test-client", Version: "1.0.0"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	if err != nil {
		cancel()
		return nil, nil, err
	}
	return session, cancel, nil
}

func decodeResourceJSON(result *sdkmcp.ReadResourceResult, out any) error {
	if len(result.Contents) == 0 {
		return nil
	}
	return json.Unmarshal([]byte(result.Contents[0].Text), out)
}
