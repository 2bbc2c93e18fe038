package sentiment

import (
	"strings"

	"github.com/hasanpeal/AlphaSignalAI/internal/domain"
)

const (
	maxRecentTweets   = 10
	maxTrendingTopics = 5
)

// PositiveKeywords and NegativeKeywords drive the scoring rule. Matching is
// case-insensitive substring, with no stemming or negation handling, so
// "not bullish" still scores positive. That coarseness is part of the
// contract, not a bug to fix.
var PositiveKeywords = []string{
	"bullish", "buy", "buying", "moon", "rocket", "🚀", "💎", "diamond hands",
	"hodl", "hold", "strong", "good", "great", "amazing", "profit", "gains",
	"positive", "up", "rise", "growth", "success", "win", "winner", "breakout",
	"breakthrough", "catalyst", "earnings beat", "revenue growth",
	"partnership", "acquisition", "innovation",
}

var NegativeKeywords = []string{
	"bearish", "sell", "selling", "dump", "crash", "fall", "down", "loss",
	"bear", "short", "bad", "terrible", "awful", "negative", "drop",
	"decline", "fail", "failure", "lose", "loser", "panic", "fear", "miss",
	"disappointment", "downgrade", "lawsuit", "scandal", "bankruptcy",
}

// TopicVocabulary is the fixed set of trending-topic candidates.
var TopicVocabulary = []string{
	"earnings", "revenue", "profit", "growth", "innovation", "technology",
	"market", "trading", "investment", "finance", "economy", "AI",
	"artificial intelligence", "electric vehicles", "EV", "sustainability",
	"delivery", "production", "sales", "quarterly", "annual", "ceo",
	"leadership", "competition", "partnership", "acquisition", "catalyst",
	"breakout", "breakthrough", "bullish", "bearish", "short squeeze",
	"meme stock", "retail investors", "institutional", "analyst", "upgrade",
	"downgrade", "price target",
}

// Score returns the raw keyword score for a tweet text: +1 per positive hit,
// -1 per negative hit.
func Score(text string) int {
	lower := strings.ToLower(text)
	score := 0
	for _, kw := range PositiveKeywords {
		if strings.Contains(lower, kw) {
			score++
		}
	}
	for _, kw := range NegativeKeywords {
		if strings.Contains(lower, kw) {
			score--
		}
	}
	return score
}

// Classify maps a raw score onto a sentiment class.
func Classify(text string) domain.SentimentClass {
	switch score := Score(text); {
	case score > 0:
		return domain.SentimentPositive
	case score < 0:
		return domain.SentimentNegative
	default:
		return domain.SentimentNeutral
	}
}

// Analyze scores a tweet set and produces the aggregate sentiment view.
// Deterministic: same tweets in, same result out.
func Analyze(tweets []domain.Tweet) *domain.SocialSentiment {
	if len(tweets) == 0 {
		return Default()
	}

	result := &domain.SocialSentiment{
		OverallSentiment: domain.SentimentNeutral,
		RecentTweets:     make([]domain.TweetSample, 0, len(tweets)),
		TrendingTopics:   []string{},
	}

	for _, tweet := range tweets {
		class := Classify(tweet.Text)
		switch class {
		case domain.SentimentPositive:
			result.Positive++
		case domain.SentimentNegative:
			result.Negative++
		default:
			result.Neutral++
		}

		text := tweet.Text
		if text == "" {
			text = "No text available"
		}
		result.RecentTweets = append(result.RecentTweets, domain.TweetSample{
			Text:      text,
			Sentiment: class,
			Timestamp: tweet.CreatedAt,
			Likes:     tweet.Favorites,
			Retweets:  tweet.Retweets,
		})
	}

	result.TotalMentions = result.Positive + result.Negative + result.Neutral
	result.TrendingTopics = extractTrendingTopics(tweets)

	// Strict plurality; any tie stays neutral.
	if result.Positive > result.Negative && result.Positive > result.Neutral {
		result.OverallSentiment = domain.SentimentPositive
	} else if result.Negative > result.Positive && result.Negative > result.Neutral {
		result.OverallSentiment = domain.SentimentNegative
	}

	if len(result.RecentTweets) > maxRecentTweets {
		result.RecentTweets = result.RecentTweets[:maxRecentTweets]
	}
	result.HasTwitterData = result.TotalMentions > 0

	return result
}

// Default is the well-defined empty sentiment returned when no social data
// is available.
func Default() *domain.SocialSentiment {
	return &domain.SocialSentiment{
		RecentTweets:     []domain.TweetSample{},
		TrendingTopics:   []string{},
		OverallSentiment: domain.SentimentNeutral,
	}
}

func extractTrendingTopics(tweets []domain.Tweet) []string {
	seen := make(map[string]struct{})
	topics := make([]string, 0, maxTrendingTopics)
	for _, tweet := range tweets {
		lower := strings.ToLower(tweet.Text)
		for _, topic := range TopicVocabulary {
			if _, ok := seen[topic]; ok {
				continue
			}
			// Topics match verbatim against the lowercased text, so the
			// uppercase vocabulary entries ("AI", "EV") never hit. That keeps
			// "ai" out of "said" and "ev" out of "revenue".
			if strings.Contains(lower, topic) {
				seen[topic] = struct{}{}
				topics = append(topics, topic)
				if len(topics) == maxTrendingTopics {
					return topics
				}
			}
		}
	}
	return topics
}
