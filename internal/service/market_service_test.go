package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/hasanpeal/AlphaSignalAI/internal/domain"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel/trace"
)

type stubProvider struct {
	quote      *domain.StockQuote
	quoteErr   error
	series     []domain.TimeSeriesPoint
	seriesErr  error
	indicators domain.TechnicalIndicators
	matches    []domain.SymbolMatch
	searchErr  error

	searchCalls int
}

func (p *stubProvider) GetQuote(ctx context.Context, symbol string) (*domain.StockQuote, error) {
	return p.quote, p.quoteErr
}

func (p *stubProvider) GetTimeSeries(ctx context.Context, symbol, interval string, outputSize int) ([]domain.TimeSeriesPoint, error) {
	return p.series, p.seriesErr
}

func (p *stubProvider) GetTechnicalIndicators(ctx context.Context, symbol string) domain.TechnicalIndicators {
	return p.indicators
}

func (p *stubProvider) SearchSymbols(ctx context.Context, query string) ([]domain.SymbolMatch, error) {
	p.searchCalls++
	return p.matches, p.searchErr
}

type stubSentiment struct {
	gotSymbol  string
	gotCompany string
	result     *domain.SocialSentiment
}

func (s *stubSentiment) GetStockSentiment(ctx context.Context, symbol, companyName string) *domain.SocialSentiment {
	s.gotSymbol = symbol
	s.gotCompany = companyName
	return s.result
}

func testTracer() trace.Tracer {
	return trace.NewNoopTracerProvider().Tracer("test")
}

func TestGetStockDataAggregates(t *testing.T) {
	provider := &stubProvider{
		quote:  &domain.StockQuote{Symbol: "AAPL", Name: "Apple Inc"},
		series: []domain.TimeSeriesPoint{{Datetime: "2024-01-08", Close: "189.84"}},
		indicators: domain.TechnicalIndicators{
			RSI: []domain.RSIPoint{{Datetime: "2024-01-08", RSI: "55"}},
		},
	}
	sent := &stubSentiment{result: &domain.SocialSentiment{HasTwitterData: true, TotalMentions: 3}}
	svc := NewMarketService(testTracer(), provider, sent, nil)

	data, err := svc.GetStockData(context.Background(), " aapl ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if data.Quote.Symbol != "AAPL" {
		t.Errorf("quote symbol = %s", data.Quote.Symbol)
	}
	if len(data.TimeSeries) != 1 || len(data.TechnicalIndicators.RSI) != 1 {
		t.Error("expected series and indicators carried through")
	}
	if data.SocialSentiment == nil || data.SocialSentiment.TotalMentions != 3 {
		t.Error("expected sentiment attached")
	}
	// Sentiment lookup uses the normalized symbol and the quote's company name.
	if sent.gotSymbol != "AAPL" || sent.gotCompany != "Apple Inc" {
		t.Errorf("sentiment called with %q/%q", sent.gotSymbol, sent.gotCompany)
	}
}

func TestGetStockDataEmptySymbol(t *testing.T) {
	svc := NewMarketService(testTracer(), &stubProvider{}, nil, nil)
	if _, err := svc.GetStockData(context.Background(), "   "); err == nil {
		t.Fatal("expected error for empty symbol")
	}
}

func TestGetStockDataQuoteFailureIsFatal(t *testing.T) {
	provider := &stubProvider{
		quoteErr: errors.New("upstream 500"),
		series:   []domain.TimeSeriesPoint{{Datetime: "2024-01-08"}},
	}
	svc := NewMarketService(testTracer(), provider, nil, nil)

	_, err := svc.GetStockData(context.Background(), "AAPL")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "AAPL") {
		t.Errorf("error should name the symbol: %v", err)
	}
}

func TestGetStockDataSeriesFailureIsFatal(t *testing.T) {
	provider := &stubProvider{
		quote:     &domain.StockQuote{Symbol: "AAPL"},
		seriesErr: errors.New("timeout"),
	}
	svc := NewMarketService(testTracer(), provider, nil, nil)

	if _, err := svc.GetStockData(context.Background(), "AAPL"); err == nil {
		t.Fatal("expected error")
	}
}

func TestGetStockDataIndicatorFailureIsNotFatal(t *testing.T) {
	// Indicator fetch reports failure as an empty set, never an error.
	provider := &stubProvider{
		quote:  &domain.StockQuote{Symbol: "AAPL"},
		series: []domain.TimeSeriesPoint{{Datetime: "2024-01-08"}},
	}
	svc := NewMarketService(testTracer(), provider, nil, nil)

	data, err := svc.GetStockData(context.Background(), "AAPL")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !data.TechnicalIndicators.Empty() {
		t.Error("expected empty indicators")
	}
}

func TestGetStockDataNoSentimentService(t *testing.T) {
	provider := &stubProvider{quote: &domain.StockQuote{Symbol: "AAPL"}}
	svc := NewMarketService(testTracer(), provider, nil, nil)

	data, err := svc.GetStockData(context.Background(), "AAPL")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if data.SocialSentiment != nil {
		t.Error("sentiment must stay nil without a fetcher")
	}
}

func TestGetQuoteNormalizesSymbol(t *testing.T) {
	provider := &stubProvider{quote: &domain.StockQuote{Symbol: "TSLA"}}
	svc := NewMarketService(testTracer(), provider, nil, nil)

	quote, err := svc.GetQuote(context.Background(), " tsla ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if quote.Symbol != "TSLA" {
		t.Errorf("quote symbol = %s", quote.Symbol)
	}

	if _, err := svc.GetQuote(context.Background(), ""); err == nil {
		t.Fatal("expected error for empty symbol")
	}
}

func TestSearchSymbolsEmptyQuery(t *testing.T) {
	provider := &stubProvider{}
	svc := NewMarketService(testTracer(), provider, nil, nil)

	matches := svc.SearchSymbols(context.Background(), "  ")
	if matches == nil || len(matches) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", matches)
	}
	if provider.searchCalls != 0 {
		t.Error("empty query must not hit the provider")
	}
}

func TestSearchSymbolsUpstreamErrorYieldsEmpty(t *testing.T) {
	provider := &stubProvider{searchErr: errors.New("rate limited")}
	svc := NewMarketService(testTracer(), provider, nil, nil)

	matches := svc.SearchSymbols(context.Background(), "apple")
	if matches == nil || len(matches) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", matches)
	}
}

func TestSearchSymbolsCaching(t *testing.T) {
	mr := miniredis.RunT(t)
	cache := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	provider := &stubProvider{matches: []domain.SymbolMatch{
		{Symbol: "AAPL", Name: "Apple Inc", Exchange: "NASDAQ", Type: "Common Stock"},
	}}
	svc := NewMarketService(testTracer(), provider, nil, cache)

	first := svc.SearchSymbols(context.Background(), "Apple")
	if len(first) != 1 || first[0].Symbol != "AAPL" {
		t.Fatalf("unexpected first result: %#v", first)
	}

	// Second lookup differs only in case and must come from the cache.
	second := svc.SearchSymbols(context.Background(), "apple")
	if len(second) != 1 || second[0].Symbol != "AAPL" {
		t.Fatalf("unexpected cached result: %#v", second)
	}
	if provider.searchCalls != 1 {
		t.Errorf("provider called %d times, want 1", provider.searchCalls)
	}
}
