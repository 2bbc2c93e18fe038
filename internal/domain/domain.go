package domain

import "time"

// FiftyTwoWeek carries the 52-week statistics embedded in a quote.
// Values are decimal strings as returned by the upstream API.
type FiftyTwoWeek struct {
	Low               string `json:"low"`
	High              string `json:"high"`
	LowChange         string `json:"low_change"`
	HighChange        string `json:"high_change"`
	LowChangePercent  string `json:"low_change_percent"`
	HighChangePercent string `json:"high_change_percent"`
	Range             string `json:"range"`
}

// StockQuote is an immutable snapshot of the current market state for a
// symbol. Numeric fields stay decimal strings end to end so the rendered
// prompt shows exactly what the upstream returned.
type StockQuote struct {
	Symbol        string       `json:"symbol"`
	Name          string       `json:"name"`
	Exchange      string       `json:"exchange"`
	Currency      string       `json:"currency"`
	Datetime      string       `json:"datetime"`
	Open          string       `json:"open"`
	High          string       `json:"high"`
	Low           string       `json:"low"`
	Close         string       `json:"close"`
	Volume        string       `json:"volume"`
	PreviousClose string       `json:"previous_close"`
	Change        string       `json:"change"`
	PercentChange string       `json:"percent_change"`
	AverageVolume string       `json:"average_volume"`
	IsMarketOpen  bool         `json:"is_market_open"`
	FiftyTwoWeek  FiftyTwoWeek `json:"fifty_two_week"`
}

// TimeSeriesPoint is one OHLCV bar, most-recent-first in slices.
type TimeSeriesPoint struct {
	Datetime string `json:"datetime"`
	Open     string `json:"open"`
	High     string `json:"high"`
	Low      string `json:"low"`
	Close    string `json:"close"`
	Volume   string `json:"volume"`
}

type RSIPoint struct {
	Datetime string `json:"datetime"`
	RSI      string `json:"rsi"`
}

type MACDPoint struct {
	Datetime   string `json:"datetime"`
	MACD       string `json:"macd"`
	MACDSignal string `json:"macd_signal"`
	MACDHist   string `json:"macd_hist"`
}

type BBandsPoint struct {
	Datetime   string `json:"datetime"`
	UpperBand  string `json:"upper_band"`
	MiddleBand string `json:"middle_band"`
	LowerBand  string `json:"lower_band"`
}

// TechnicalIndicators holds the derived series for a symbol. A nil series
// means the upstream fetch failed; that is absence, not an error.
type TechnicalIndicators struct {
	RSI            []RSIPoint    `json:"rsi"`
	MACD           []MACDPoint   `json:"macd"`
	BollingerBands []BBandsPoint `json:"bollingerBands"`
}

// Empty reports whether no indicator series is available at all.
func (t TechnicalIndicators) Empty() bool {
	return len(t.RSI) == 0 && len(t.MACD) == 0 && len(t.BollingerBands) == 0
}

// StockData is the aggregate handed to the prompt formatter and returned by
// GET /stock-data.
type StockData struct {
	Quote               StockQuote          `json:"quote"`
	TimeSeries          []TimeSeriesPoint   `json:"timeSeries"`
	TechnicalIndicators TechnicalIndicators `json:"technicalIndicators"`
	SocialSentiment     *SocialSentiment    `json:"socialSentiment,omitempty"`
}

// SymbolMatch is one symbol-search result.
type SymbolMatch struct {
	Symbol   string `json:"symbol"`
	Name     string `json:"name"`
	Exchange string `json:"exchange"`
	Type     string `json:"type"`
}

type SentimentClass string

const (
	SentimentPositive SentimentClass = "positive"
	SentimentNegative SentimentClass = "negative"
	SentimentNeutral  SentimentClass = "neutral"
)

// Tweet is one scraped post. Ephemeral: fetched per sentiment query, never
// persisted.
type Tweet struct {
	TweetID    string `json:"tweet_id"`
	ScreenName string `json:"screen_name"`
	Text       string `json:"text"`
	CreatedAt  string `json:"created_at"`
	Lang       string `json:"lang"`
	Favorites  int    `json:"favorites"`
	Retweets   int    `json:"retweets"`
	Replies    int    `json:"replies"`
}

// TweetSample is one labelled tweet included in the sentiment response.
type TweetSample struct {
	Text      string         `json:"text"`
	Sentiment SentimentClass `json:"sentiment"`
	Timestamp string         `json:"timestamp,omitempty"`
	Likes     int            `json:"likes,omitempty"`
	Retweets  int            `json:"retweets,omitempty"`
}

// SocialSentiment aggregates keyword-scored tweets for a symbol. Derived
// deterministically from the tweet set at query time.
type SocialSentiment struct {
	Positive         int            `json:"positive"`
	Negative         int            `json:"negative"`
	Neutral          int            `json:"neutral"`
	TotalMentions    int            `json:"totalMentions"`
	RecentTweets     []TweetSample  `json:"recentTweets"`
	TrendingTopics   []string       `json:"trendingTopics"`
	OverallSentiment SentimentClass `json:"overallSentiment"`
	HasTwitterData   bool           `json:"hasTwitterData"`
}

type ChatRole string

const (
	RoleUser      ChatRole = "user"
	RoleAssistant ChatRole = "assistant"
)

// ChatMessage is one turn in a conversation history.
type ChatMessage struct {
	Role      ChatRole  `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}
