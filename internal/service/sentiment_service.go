package service

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/hasanpeal/AlphaSignalAI/internal/domain"
	"github.com/hasanpeal/AlphaSignalAI/internal/provider"
	"github.com/hasanpeal/AlphaSignalAI/internal/sentiment"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const (
	maxTweetsPerTerm   = 60
	maxRequestsPerTerm = 3
	recencyWindow      = 24 * time.Hour
)

// twitterCreatedAtLayout matches the classic "Wed Oct 10 20:19:24 +0000
// 2018" timestamp format the scraper passes through.
const twitterCreatedAtLayout = "Mon Jan 02 15:04:05 -0700 2006"

// TweetSearcher is the paginated search surface of the scraper API.
type TweetSearcher interface {
	SearchTweets(ctx context.Context, query, cursor string) (*provider.TweetPage, error)
}

// SentimentService turns scraped tweets into keyword-scored sentiment. All
// upstream failures are absorbed; the caller always gets a well-formed
// SocialSentiment value.
type SentimentService struct {
	tracer  trace.Tracer
	scraper TweetSearcher
	now     func() time.Time
}

func NewSentimentService(tracer trace.Tracer, scraper TweetSearcher) *SentimentService {
	return &SentimentService{
		tracer:  tracer,
		scraper: scraper,
		now:     time.Now,
	}
}

// WithClock overrides the time source; used by tests to pin the trailing
// 24-hour window.
func (s *SentimentService) WithClock(now func() time.Time) *SentimentService {
	s.now = now
	return s
}

// GetStockSentiment gathers recent cashtag mentions for a symbol and scores
// them. companyName is a display hint only; the search runs on the cashtag.
func (s *SentimentService) GetStockSentiment(ctx context.Context, symbol, companyName string) *domain.SocialSentiment {
	ctx, span := s.tracer.Start(ctx, "sentiment-service.get-stock-sentiment")
	defer span.End()
	span.SetAttributes(attribute.String("symbol", symbol))

	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" || s.scraper == nil {
		return sentiment.Default()
	}

	label := symbol
	if companyName != "" {
		label = fmt.Sprintf("%s (%s)", symbol, companyName)
	}
	log.Printf("sentiment: analyzing Twitter mentions for %s", label)

	searchTerms := []string{"$" + symbol}

	var allTweets []domain.Tweet
	for _, term := range searchTerms {
		allTweets = append(allTweets, s.collectTweets(ctx, term, symbol)...)
	}

	result := sentiment.Analyze(allTweets)
	span.SetAttributes(
		attribute.Int("mentions", result.TotalMentions),
		attribute.String("overall", string(result.OverallSentiment)),
	)
	return result
}

// collectTweets pages through search results for one term, bounded by the
// request cap and the target tweet count. Each page is filtered to recent
// cashtag mentions and sorted by likes before being kept.
func (s *SentimentService) collectTweets(ctx context.Context, term, symbol string) []domain.Tweet {
	var collected []domain.Tweet
	cursor := ""
	cutoff := s.now().Add(-recencyWindow)

	for requests := 0; requests < maxRequestsPerTerm && len(collected) < maxTweetsPerTerm; requests++ {
		page, err := s.scraper.SearchTweets(ctx, term, cursor)
		if err != nil {
			log.Printf("sentiment: page %d fetch failed for %s: %v", requests+1, term, err)
			break
		}
		if page == nil {
			break
		}

		// An empty page with a cursor still advances; only a missing cursor
		// ends the timeline.
		kept := filterTweets(page.Timeline, symbol, cutoff)
		sort.SliceStable(kept, func(i, j int) bool {
			return kept[i].Favorites > kept[j].Favorites
		})
		collected = append(collected, kept...)

		if page.NextCursor == "" || len(collected) >= maxTweetsPerTerm {
			break
		}
		cursor = page.NextCursor
	}

	log.Printf("sentiment: collected %d tweets for %s", len(collected), term)
	return collected
}

// filterTweets keeps tweets that mention the cashtag (case-insensitive) and
// were created after cutoff. Unparseable timestamps are treated as stale.
func filterTweets(tweets []domain.Tweet, symbol string, cutoff time.Time) []domain.Tweet {
	cashtag := "$" + strings.ToLower(symbol)
	kept := make([]domain.Tweet, 0, len(tweets))
	for _, tweet := range tweets {
		if !strings.Contains(strings.ToLower(tweet.Text), cashtag) {
			continue
		}
		created, err := parseTweetTime(tweet.CreatedAt)
		if err != nil || created.Before(cutoff) {
			continue
		}
		kept = append(kept, tweet)
	}
	return kept
}

func parseTweetTime(raw string) (time.Time, error) {
	if t, err := time.Parse(twitterCreatedAtLayout, raw); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, raw)
}
