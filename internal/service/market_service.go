package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/hasanpeal/AlphaSignalAI/internal/domain"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const (
	timeSeriesInterval   = "1day"
	timeSeriesOutputSize = 30
	symbolSearchCacheTTL = time.Hour
)

// MarketDataProvider is the upstream financial API surface the service
// depends on.
type MarketDataProvider interface {
	GetQuote(ctx context.Context, symbol string) (*domain.StockQuote, error)
	GetTimeSeries(ctx context.Context, symbol, interval string, outputSize int) ([]domain.TimeSeriesPoint, error)
	GetTechnicalIndicators(ctx context.Context, symbol string) domain.TechnicalIndicators
	SearchSymbols(ctx context.Context, query string) ([]domain.SymbolMatch, error)
}

// SentimentFetcher supplies the social sentiment attached to aggregate
// stock data. It never fails; absence is an empty sentiment value.
type SentimentFetcher interface {
	GetStockSentiment(ctx context.Context, symbol, companyName string) *domain.SocialSentiment
}

// MarketService aggregates quote, time series, indicators, and sentiment
// for a symbol, and fronts symbol search with an optional Redis cache.
type MarketService struct {
	tracer    trace.Tracer
	provider  MarketDataProvider
	sentiment SentimentFetcher
	cache     *redis.Client
}

func NewMarketService(tracer trace.Tracer, provider MarketDataProvider, sentiment SentimentFetcher, cache *redis.Client) *MarketService {
	return &MarketService{
		tracer:    tracer,
		provider:  provider,
		sentiment: sentiment,
		cache:     cache,
	}
}

// GetStockData fetches the quote, time series, and technical indicators
// concurrently. Quote or time-series failure fails the call; indicator
// failure leaves nil series. Sentiment is attached best-effort afterwards.
func (s *MarketService) GetStockData(ctx context.Context, symbol string) (*domain.StockData, error) {
	ctx, span := s.tracer.Start(ctx, "market-service.get-stock-data")
	defer span.End()

	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return nil, fmt.Errorf("symbol is required")
	}
	span.SetAttributes(attribute.String("symbol", symbol))

	var (
		wg         sync.WaitGroup
		quote      *domain.StockQuote
		quoteErr   error
		series     []domain.TimeSeriesPoint
		seriesErr  error
		indicators domain.TechnicalIndicators
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		quote, quoteErr = s.provider.GetQuote(ctx, symbol)
	}()
	go func() {
		defer wg.Done()
		series, seriesErr = s.provider.GetTimeSeries(ctx, symbol, timeSeriesInterval, timeSeriesOutputSize)
	}()
	go func() {
		defer wg.Done()
		indicators = s.provider.GetTechnicalIndicators(ctx, symbol)
	}()
	wg.Wait()

	if quoteErr != nil {
		return nil, fmt.Errorf("get stock data for %s: %w", symbol, quoteErr)
	}
	if seriesErr != nil {
		return nil, fmt.Errorf("get stock data for %s: %w", symbol, seriesErr)
	}

	data := &domain.StockData{
		Quote:               *quote,
		TimeSeries:          series,
		TechnicalIndicators: indicators,
	}

	if s.sentiment != nil {
		data.SocialSentiment = s.sentiment.GetStockSentiment(ctx, symbol, quote.Name)
	}

	return data, nil
}

// GetQuote fetches only the current quote; used by the websocket pusher and
// the terminal/bot front-ends.
func (s *MarketService) GetQuote(ctx context.Context, symbol string) (*domain.StockQuote, error) {
	ctx, span := s.tracer.Start(ctx, "market-service.get-quote")
	defer span.End()

	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return nil, fmt.Errorf("symbol is required")
	}
	span.SetAttributes(attribute.String("symbol", symbol))

	return s.provider.GetQuote(ctx, symbol)
}

// SearchSymbols looks a query up against the upstream symbol search, with a
// Redis cache in front when one is configured. Upstream failure yields an
// empty list, not an error.
func (s *MarketService) SearchSymbols(ctx context.Context, query string) []domain.SymbolMatch {
	ctx, span := s.tracer.Start(ctx, "market-service.search-symbols")
	defer span.End()
	span.SetAttributes(attribute.String("query", query))

	query = strings.TrimSpace(query)
	if query == "" {
		return []domain.SymbolMatch{}
	}

	cacheKey := "symbols:search:" + strings.ToLower(query)
	if s.cache != nil {
		if raw, err := s.cache.Get(ctx, cacheKey).Result(); err == nil {
			var cached []domain.SymbolMatch
			if err := json.Unmarshal([]byte(raw), &cached); err == nil {
				return cached
			}
		}
	}

	matches, err := s.provider.SearchSymbols(ctx, query)
	if err != nil {
		log.Printf("symbol search failed for %q: %v", query, err)
		return []domain.SymbolMatch{}
	}
	if matches == nil {
		matches = []domain.SymbolMatch{}
	}

	if s.cache != nil {
		if raw, err := json.Marshal(matches); err == nil {
			if err := s.cache.Set(ctx, cacheKey, raw, symbolSearchCacheTTL).Err(); err != nil {
				log.Printf("symbol search cache write failed for %q: %v", query, err)
			}
		}
	}

	return matches
}
