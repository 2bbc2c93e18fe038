package provider

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/hasanpeal/AlphaSignalAI/internal/domain"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const (
	defaultTwelveDataBaseURL = "https://api.twelvedata.com"
	defaultUpstreamTimeout   = 30 * time.Second
)

// TwelveDataConfig configures the market data client. BaseURL and Timeout
// exist so tests can point the client at a local server.
type TwelveDataConfig struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

// TwelveDataProvider talks to the Twelve Data REST API for quotes, time
// series, technical indicators, and symbol search.
type TwelveDataProvider struct {
	client *resty.Client
	apiKey string
	tracer trace.Tracer
}

func NewTwelveDataProvider(cfg TwelveDataConfig, tracer trace.Tracer) *TwelveDataProvider {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultTwelveDataBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultUpstreamTimeout
	}

	client := resty.New()
	client.SetBaseURL(baseURL)
	client.SetTimeout(timeout)

	return &TwelveDataProvider{
		client: client,
		apiKey: cfg.APIKey,
		tracer: tracer,
	}
}

// apiEnvelope carries the error shape Twelve Data embeds in otherwise-200
// responses.
type apiEnvelope struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func (e apiEnvelope) err(fallback string) error {
	if e.Message != "" {
		return fmt.Errorf("%s", e.Message)
	}
	return fmt.Errorf("%s", fallback)
}

type quoteResponse struct {
	domain.StockQuote
	apiEnvelope
}

func (p *TwelveDataProvider) GetQuote(ctx context.Context, symbol string) (*domain.StockQuote, error) {
	ctx, span := p.tracer.Start(ctx, "twelvedata.get-quote")
	defer span.End()
	span.SetAttributes(attribute.String("symbol", symbol))

	var out quoteResponse
	resp, err := p.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"symbol": strings.ToUpper(symbol),
			"apikey": p.apiKey,
		}).
		SetResult(&out).
		Get("/quote")
	if err != nil {
		return nil, fmt.Errorf("fetch quote for %s: %w", symbol, err)
	}
	if resp.IsError() || out.Status == "error" {
		return nil, fmt.Errorf("fetch quote for %s: %w", symbol, out.err("upstream error"))
	}
	return &out.StockQuote, nil
}

type timeSeriesResponse struct {
	Values []domain.TimeSeriesPoint `json:"values"`
	apiEnvelope
}

func (p *TwelveDataProvider) GetTimeSeries(ctx context.Context, symbol, interval string, outputSize int) ([]domain.TimeSeriesPoint, error) {
	ctx, span := p.tracer.Start(ctx, "twelvedata.get-time-series")
	defer span.End()
	span.SetAttributes(attribute.String("symbol", symbol), attribute.String("interval", interval))

	var out timeSeriesResponse
	resp, err := p.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"symbol":     strings.ToUpper(symbol),
			"interval":   interval,
			"outputsize": fmt.Sprintf("%d", outputSize),
			"apikey":     p.apiKey,
		}).
		SetResult(&out).
		Get("/time_series")
	if err != nil {
		return nil, fmt.Errorf("fetch time series for %s: %w", symbol, err)
	}
	if resp.IsError() || out.Status == "error" {
		return nil, fmt.Errorf("fetch time series for %s: %w", symbol, out.err("upstream error"))
	}
	return out.Values, nil
}

type rsiResponse struct {
	Values []domain.RSIPoint `json:"values"`
	apiEnvelope
}

type macdResponse struct {
	Values []domain.MACDPoint `json:"values"`
	apiEnvelope
}

type bbandsResponse struct {
	Values []domain.BBandsPoint `json:"values"`
	apiEnvelope
}

// GetTechnicalIndicators fetches RSI, MACD, and Bollinger Bands. A failed
// series comes back nil; the call itself never errors.
func (p *TwelveDataProvider) GetTechnicalIndicators(ctx context.Context, symbol string) domain.TechnicalIndicators {
	ctx, span := p.tracer.Start(ctx, "twelvedata.get-technical-indicators")
	defer span.End()
	span.SetAttributes(attribute.String("symbol", symbol))

	symbol = strings.ToUpper(symbol)
	var indicators domain.TechnicalIndicators

	var rsi rsiResponse
	resp, err := p.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"symbol":      symbol,
			"interval":    "1day",
			"series_type": "close",
			"time_period": "14",
			"apikey":      p.apiKey,
		}).
		SetResult(&rsi).
		Get("/rsi")
	if err != nil || resp.IsError() || rsi.Status != "ok" {
		log.Printf("rsi fetch failed for %s: %v", symbol, err)
	} else {
		indicators.RSI = rsi.Values
	}

	var macd macdResponse
	resp, err = p.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"symbol":       symbol,
			"interval":     "1day",
			"series_type":  "close",
			"fastperiod":   "12",
			"slowperiod":   "26",
			"signalperiod": "9",
			"apikey":       p.apiKey,
		}).
		SetResult(&macd).
		Get("/macd")
	if err != nil || resp.IsError() || macd.Status != "ok" {
		log.Printf("macd fetch failed for %s: %v", symbol, err)
	} else {
		indicators.MACD = macd.Values
	}

	var bbands bbandsResponse
	resp, err = p.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"symbol":      symbol,
			"interval":    "1day",
			"series_type": "close",
			"time_period": "20",
			"nbdevup":     "2",
			"nbdevdn":     "2",
			"apikey":      p.apiKey,
		}).
		SetResult(&bbands).
		Get("/bbands")
	if err != nil || resp.IsError() || bbands.Status != "ok" {
		log.Printf("bbands fetch failed for %s: %v", symbol, err)
	} else {
		indicators.BollingerBands = bbands.Values
	}

	return indicators
}

type symbolSearchResponse struct {
	Data []domain.SymbolMatch `json:"data"`
	apiEnvelope
}

func (p *TwelveDataProvider) SearchSymbols(ctx context.Context, query string) ([]domain.SymbolMatch, error) {
	ctx, span := p.tracer.Start(ctx, "twelvedata.search-symbols")
	defer span.End()
	span.SetAttributes(attribute.String("query", query))

	var out symbolSearchResponse
	resp, err := p.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"symbol": query,
			"apikey": p.apiKey,
		}).
		SetResult(&out).
		Get("/symbol_search")
	if err != nil {
		return nil, fmt.Errorf("search symbols %q: %w", query, err)
	}
	if resp.IsError() || out.Status == "error" {
		return nil, fmt.Errorf("search symbols %q: %w", query, out.err("upstream error"))
	}
	return out.Data, nil
}
