package prompt

import (
	"fmt"
	"strings"
	"testing"

	"github.com/hasanpeal/AlphaSignalAI/internal/domain"
)

func sampleData() *domain.StockData {
	return &domain.StockData{
		Quote: domain.StockQuote{
			Symbol:        "AAPL",
			Name:          "Apple Inc",
			Exchange:      "NASDAQ",
			Close:         "189.84",
			PreviousClose: "188.49",
			Change:        "1.35",
			PercentChange: "0.72",
			Volume:        "52164500",
			AverageVolume: "58499100",
			Low:           "188.58",
			High:          "190.38",
			FiftyTwoWeek:  domain.FiftyTwoWeek{Range: "164.08 - 199.62"},
			IsMarketOpen:  true,
		},
		TimeSeries: []domain.TimeSeriesPoint{
			{Datetime: "2024-01-08", Open: "187.15", High: "190.38", Low: "187.15", Close: "189.84", Volume: "52164500"},
			{Datetime: "2024-01-05", Open: "181.99", High: "182.76", Low: "180.17", Close: "181.18", Volume: "62303300"},
		},
		TechnicalIndicators: domain.TechnicalIndicators{
			RSI:            []domain.RSIPoint{{Datetime: "2024-01-08", RSI: "73.42"}},
			MACD:           []domain.MACDPoint{{Datetime: "2024-01-08", MACD: "1.21", MACDSignal: "0.98", MACDHist: "0.23"}},
			BollingerBands: []domain.BBandsPoint{{Datetime: "2024-01-08", UpperBand: "195.11", MiddleBand: "187.22", LowerBand: "179.33"}},
		},
	}
}

func TestFormatStockDataSections(t *testing.T) {
	out := FormatStockData(sampleData())

	if !strings.HasPrefix(out, "STOCK DATA FOR AAPL:\n\n") {
		t.Fatalf("unexpected header: %q", out[:40])
	}
	for _, want := range []string{
		"CURRENT QUOTE:",
		"- Current Price: $189.84",
		"- Market Open: Yes",
		"RECENT PRICE HISTORY (Last 5 days):",
		"1. 2024-01-08: Open: $187.15",
		"TECHNICAL INDICATORS:",
		"- RSI (14): 73.42 (Overbought)",
		"- MACD: 1.21, Signal: 0.98, Histogram: 0.23",
		"- Bollinger Bands: Upper: 195.11, Middle: 187.22, Lower: 179.33",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing section %q", want)
		}
	}

	// Sentiment was nil, so its header must not appear.
	if strings.Contains(out, "SOCIAL SENTIMENT") {
		t.Fatal("unexpected sentiment section")
	}
}

func TestFormatStockDataHistoryWindow(t *testing.T) {
	data := sampleData()
	data.TimeSeries = make([]domain.TimeSeriesPoint, 30)
	for i := range data.TimeSeries {
		data.TimeSeries[i] = domain.TimeSeriesPoint{Datetime: "2024-01-01", Open: "1", High: "1", Low: "1", Close: "1", Volume: "1"}
	}

	out := FormatStockData(data)
	if strings.Contains(out, "6. 2024-01-01") {
		t.Fatal("history must stop at 5 entries")
	}
	if !strings.Contains(out, "5. 2024-01-01") {
		t.Fatal("expected 5th history entry")
	}
}

func TestFormatStockDataOmitsEmptyIndicators(t *testing.T) {
	data := sampleData()
	data.TechnicalIndicators = domain.TechnicalIndicators{}

	out := FormatStockData(data)
	if strings.Contains(out, "TECHNICAL INDICATORS") {
		t.Fatal("expected indicator section omitted when all series are nil")
	}
}

func TestFormatStockDataPartialIndicators(t *testing.T) {
	data := sampleData()
	data.TechnicalIndicators.MACD = nil
	data.TechnicalIndicators.BollingerBands = nil

	out := FormatStockData(data)
	if !strings.Contains(out, "- RSI (14):") {
		t.Fatal("expected RSI line")
	}
	if strings.Contains(out, "- MACD:") || strings.Contains(out, "- Bollinger Bands:") {
		t.Fatal("absent series must not render lines")
	}
}

func TestFormatStockDataIncludesSentiment(t *testing.T) {
	data := sampleData()
	data.SocialSentiment = &domain.SocialSentiment{
		Positive: 6, Negative: 2, Neutral: 2, TotalMentions: 10,
		TrendingTopics:   []string{"earnings", "growth"},
		RecentTweets:     []domain.TweetSample{{Text: "line one\nline two", Sentiment: domain.SentimentPositive}},
		OverallSentiment: domain.SentimentPositive,
		HasTwitterData:   true,
	}

	out := FormatStockData(data)
	if !strings.Contains(out, "SOCIAL SENTIMENT (Twitter, last 24h):") {
		t.Fatal("expected sentiment section")
	}
	if !strings.Contains(out, "- Mentions: 10 (positive: 6, negative: 2, neutral: 2)") {
		t.Fatal("expected mention counts")
	}
	// Newlines inside tweets are flattened.
	if !strings.Contains(out, "* [positive] line one line two") {
		t.Fatal("expected flattened tweet text")
	}
}

func TestFormatStockDataSkipsEmptySentiment(t *testing.T) {
	data := sampleData()
	data.SocialSentiment = &domain.SocialSentiment{HasTwitterData: false}

	out := FormatStockData(data)
	if strings.Contains(out, "SOCIAL SENTIMENT") {
		t.Fatal("sentiment without data must be omitted")
	}
}

func TestFormatStockDataRoundTrip(t *testing.T) {
	// The rendered block must carry the quote's symbol and price strings
	// through exactly, so parsing them back yields the input decimals.
	data := sampleData()
	out := FormatStockData(data)

	var symbol string
	for _, line := range strings.Split(out, "\n") {
		if _, err := fmt.Sscanf(line, "STOCK DATA FOR %s", &symbol); err == nil {
			break
		}
	}
	if got := strings.TrimSuffix(symbol, ":"); got != data.Quote.Symbol {
		t.Errorf("parsed symbol %q, want %q", got, data.Quote.Symbol)
	}

	prices := map[string]string{
		"- Current Price: $":  data.Quote.Close,
		"- Previous Close: $": data.Quote.PreviousClose,
	}
	for prefix, want := range prices {
		parsed := ""
		for _, line := range strings.Split(out, "\n") {
			if strings.HasPrefix(line, prefix) {
				parsed = strings.TrimPrefix(line, prefix)
				break
			}
		}
		if parsed != want {
			t.Errorf("parsed %q%s, want %s", prefix, parsed, want)
		}
	}
}

func TestRSIInterpretation(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"73.42", "Overbought"},
		{"70.00", "Neutral"},
		{"29.99", "Oversold"},
		{"50", "Neutral"},
		{"garbage", "Neutral"},
		{"", "Neutral"},
	}
	for _, tc := range cases {
		if got := RSIInterpretation(tc.raw); got != tc.want {
			t.Errorf("RSIInterpretation(%q) = %s, want %s", tc.raw, got, tc.want)
		}
	}
}
