package provider

import (
	"context"
	"fmt"
	"time"

	"github.com/hasanpeal/AlphaSignalAI/internal/domain"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const (
	defaultScraperBaseURL = "https://api.scraper.tech"
	scraperPageSize       = 20
)

// ScraperConfig configures the tweet-search client.
type ScraperConfig struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

// ScraperProvider queries the scraper.tech cursor-paginated tweet search.
type ScraperProvider struct {
	client *resty.Client
	apiKey string
	tracer trace.Tracer
}

func NewScraperProvider(cfg ScraperConfig, tracer trace.Tracer) *ScraperProvider {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultScraperBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultUpstreamTimeout
	}

	client := resty.New()
	client.SetBaseURL(baseURL)
	client.SetTimeout(timeout)

	return &ScraperProvider{
		client: client,
		apiKey: cfg.APIKey,
		tracer: tracer,
	}
}

// TweetPage is one page of search results plus the cursor for the next one.
// An empty NextCursor means the timeline is exhausted.
type TweetPage struct {
	Timeline   []domain.Tweet `json:"timeline"`
	NextCursor string         `json:"next_cursor"`
	Error      string         `json:"error"`
}

// SearchTweets fetches one page of "Top" results for query, continuing from
// cursor when non-empty.
func (p *ScraperProvider) SearchTweets(ctx context.Context, query, cursor string) (*TweetPage, error) {
	ctx, span := p.tracer.Start(ctx, "scraper.search-tweets")
	defer span.End()
	span.SetAttributes(
		attribute.String("query", query),
		attribute.Bool("has_cursor", cursor != ""),
	)

	var out TweetPage
	resp, err := p.client.R().
		SetContext(ctx).
		SetHeader("scraper-key", p.apiKey).
		SetQueryParams(map[string]string{
			"query":       query,
			"cursor":      cursor,
			"search_type": "Top",
			"count":       fmt.Sprintf("%d", scraperPageSize),
		}).
		SetResult(&out).
		Get("/search.php")
	if err != nil {
		return nil, fmt.Errorf("search tweets %q: %w", query, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("search tweets %q: upstream status %d", query, resp.StatusCode())
	}
	if out.Error != "" {
		return nil, fmt.Errorf("search tweets %q: %s", query, out.Error)
	}
	return &out, nil
}
