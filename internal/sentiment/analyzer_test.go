package sentiment

import (
	"testing"

	"github.com/hasanpeal/AlphaSignalAI/internal/domain"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		text string
		want domain.SentimentClass
	}{
		{"to the moon 🚀", domain.SentimentPositive},
		{"this stock will crash", domain.SentimentNegative},
		{"quarterly report released", domain.SentimentNeutral},
		{"bullish breakout incoming", domain.SentimentPositive},
		{"earnings beat but lawsuit pending", domain.SentimentNeutral},
		{"", domain.SentimentNeutral},
	}
	for _, tc := range cases {
		if got := Classify(tc.text); got != tc.want {
			t.Errorf("Classify(%q) = %s, want %s", tc.text, got, tc.want)
		}
	}
}

func TestClassifyNoNegationHandling(t *testing.T) {
	// Matching is plain substring: "not bullish" still hits "bullish".
	if got := Classify("not bullish at all"); got != domain.SentimentPositive {
		t.Fatalf("Classify(not bullish) = %s, want positive", got)
	}
}

func TestScore(t *testing.T) {
	if got := Score("bullish"); got != 1 {
		t.Fatalf("Score(bullish) = %d, want 1", got)
	}
	if got := Score("bearish"); got != -1 {
		t.Fatalf("Score(bearish) = %d, want -1", got)
	}
	if got := Score("bullish but bearish"); got != 0 {
		t.Fatalf("Score(mixed) = %d, want 0", got)
	}
	// Repetition does not stack: each keyword counts at most once.
	if got := Score("buy buy buy"); got != 1 {
		t.Fatalf("Score(buy x3) = %d, want 1", got)
	}
}

func TestAnalyzeStrictPlurality(t *testing.T) {
	tweets := []domain.Tweet{
		{Text: "to the moon 🚀", Favorites: 5},
		{Text: "this stock will crash", Favorites: 3},
		{Text: "quarterly report released", Favorites: 1},
	}

	result := Analyze(tweets)
	if result.Positive != 1 || result.Negative != 1 || result.Neutral != 1 {
		t.Fatalf("unexpected counts: +%d -%d =%d", result.Positive, result.Negative, result.Neutral)
	}
	if result.TotalMentions != 3 {
		t.Fatalf("expected 3 mentions, got %d", result.TotalMentions)
	}
	// Three-way tie stays neutral.
	if result.OverallSentiment != domain.SentimentNeutral {
		t.Fatalf("expected neutral overall, got %s", result.OverallSentiment)
	}
	if !result.HasTwitterData {
		t.Fatal("expected hasTwitterData true")
	}
	if len(result.RecentTweets) != 3 {
		t.Fatalf("expected 3 samples, got %d", len(result.RecentTweets))
	}
	if result.RecentTweets[0].Sentiment != domain.SentimentPositive {
		t.Fatalf("expected first sample positive, got %s", result.RecentTweets[0].Sentiment)
	}
}

func TestAnalyzePositiveMajority(t *testing.T) {
	tweets := []domain.Tweet{
		{Text: "bullish breakout"},
		{Text: "strong gains today"},
		{Text: "this is bad"},
	}

	result := Analyze(tweets)
	if result.OverallSentiment != domain.SentimentPositive {
		t.Fatalf("expected positive overall, got %s", result.OverallSentiment)
	}
}

func TestAnalyzeSampleCap(t *testing.T) {
	tweets := make([]domain.Tweet, 25)
	for i := range tweets {
		tweets[i] = domain.Tweet{Text: "quarterly report"}
	}

	result := Analyze(tweets)
	if len(result.RecentTweets) != maxRecentTweets {
		t.Fatalf("expected %d samples, got %d", maxRecentTweets, len(result.RecentTweets))
	}
	if result.TotalMentions != 25 {
		t.Fatalf("counts should cover all tweets, got %d", result.TotalMentions)
	}
}

func TestAnalyzeEmptyTweetText(t *testing.T) {
	result := Analyze([]domain.Tweet{{Text: ""}})
	if result.RecentTweets[0].Text != "No text available" {
		t.Fatalf("unexpected placeholder: %q", result.RecentTweets[0].Text)
	}
}

func TestAnalyzeEmptyInput(t *testing.T) {
	result := Analyze(nil)
	if result.HasTwitterData {
		t.Fatal("expected hasTwitterData false for empty input")
	}
	if result.OverallSentiment != domain.SentimentNeutral {
		t.Fatalf("expected neutral, got %s", result.OverallSentiment)
	}
	if result.RecentTweets == nil || result.TrendingTopics == nil {
		t.Fatal("expected empty slices, not nil")
	}
}

func TestExtractTrendingTopics(t *testing.T) {
	tweets := []domain.Tweet{
		{Text: "Earnings and revenue growth from innovation in market technology"},
	}
	result := Analyze(tweets)
	if len(result.TrendingTopics) != maxTrendingTopics {
		t.Fatalf("expected topic cap %d, got %d (%v)", maxTrendingTopics, len(result.TrendingTopics), result.TrendingTopics)
	}
	if result.TrendingTopics[0] != "earnings" {
		t.Fatalf("expected vocabulary order, got %v", result.TrendingTopics)
	}
}

func TestExtractTrendingTopicsCaseSensitiveVocabulary(t *testing.T) {
	// Uppercase vocabulary entries never match the lowercased text: "AI"
	// must not surface from "said", nor "EV" from "revenue".
	tweets := []domain.Tweet{
		{Text: "the ceo said revenue was flat"},
	}
	result := Analyze(tweets)
	want := []string{"revenue", "ceo"}
	if len(result.TrendingTopics) != len(want) {
		t.Fatalf("topics = %v, want %v", result.TrendingTopics, want)
	}
	for i, topic := range want {
		if result.TrendingTopics[i] != topic {
			t.Fatalf("topics = %v, want %v", result.TrendingTopics, want)
		}
	}
}

func TestDefault(t *testing.T) {
	d := Default()
	if d.HasTwitterData || d.TotalMentions != 0 {
		t.Fatalf("unexpected default: %+v", d)
	}
	if d.OverallSentiment != domain.SentimentNeutral {
		t.Fatalf("expected neutral default, got %s", d.OverallSentiment)
	}
}
