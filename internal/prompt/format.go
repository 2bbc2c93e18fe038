// Package prompt renders aggregated stock data into deterministic text
// blocks for LLM consumption. Everything here is a pure function of its
// inputs; sections with no data are omitted entirely rather than rendered
// as empty headers.
package prompt

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/hasanpeal/AlphaSignalAI/internal/domain"
)

// historyWindow is how many of the most recent bars make it into the prompt.
const historyWindow = 5

// SystemInstruction is the fixed system prompt for the analyst persona.
const SystemInstruction = `You are an expert financial analyst and stock market advisor. Your role is to analyze stock data and provide insightful, well-reasoned investment advice.

IMPORTANT GUIDELINES:
1. Always base your analysis on the provided stock data and technical indicators
2. Be objective and balanced in your assessment
3. Consider both fundamental and technical analysis
4. Mention risks and uncertainties
5. Provide specific reasoning for your recommendations
6. Use clear, professional language
7. If asked about buying/selling, provide a comprehensive analysis with pros and cons
8. Always remind users that this is not financial advice and they should consult with a financial advisor
9. Format your response using clean markdown with proper headings, lists, and emphasis

ANALYSIS FRAMEWORK:
- Current market position and recent performance
- Technical indicators interpretation
- Volume analysis
- Price action and trends
- Risk assessment
- Investment recommendation with reasoning

FORMATTING GUIDELINES:
- Use ## for main sections (e.g., "## Current Market Position")
- Use ### for subsections (e.g., "### Technical Indicators")
- Use **bold** for important numbers and key points
- Use bullet points for lists
- Keep paragraphs concise and well-structured

Remember: Past performance doesn't guarantee future results. Always emphasize the importance of diversification and risk management.`

// FormatStockData renders the full data context block: quote summary, recent
// price history, technical indicators, then sentiment, in that order.
func FormatStockData(data *domain.StockData) string {
	var b strings.Builder

	quote := data.Quote
	fmt.Fprintf(&b, "STOCK DATA FOR %s:\n\n", quote.Symbol)

	b.WriteString("CURRENT QUOTE:\n")
	fmt.Fprintf(&b, "- Symbol: %s\n", quote.Symbol)
	fmt.Fprintf(&b, "- Company: %s\n", quote.Name)
	fmt.Fprintf(&b, "- Exchange: %s\n", quote.Exchange)
	fmt.Fprintf(&b, "- Current Price: $%s\n", quote.Close)
	fmt.Fprintf(&b, "- Previous Close: $%s\n", quote.PreviousClose)
	fmt.Fprintf(&b, "- Change: $%s (%s%%)\n", quote.Change, quote.PercentChange)
	fmt.Fprintf(&b, "- Volume: %s\n", quote.Volume)
	fmt.Fprintf(&b, "- Average Volume: %s\n", quote.AverageVolume)
	fmt.Fprintf(&b, "- Day Range: $%s - $%s\n", quote.Low, quote.High)
	fmt.Fprintf(&b, "- 52-Week Range: %s\n", quote.FiftyTwoWeek.Range)
	fmt.Fprintf(&b, "- Market Open: %s\n\n", yesNo(quote.IsMarketOpen))

	if len(data.TimeSeries) > 0 {
		fmt.Fprintf(&b, "RECENT PRICE HISTORY (Last %d days):\n", historyWindow)
		for i, day := range data.TimeSeries {
			if i == historyWindow {
				break
			}
			fmt.Fprintf(&b, "%d. %s: Open: $%s, High: $%s, Low: $%s, Close: $%s, Volume: %s\n",
				i+1, day.Datetime, day.Open, day.High, day.Low, day.Close, day.Volume)
		}
		b.WriteString("\n")
	}

	if block := formatIndicators(data.TechnicalIndicators); block != "" {
		b.WriteString(block)
	}

	if data.SocialSentiment != nil && data.SocialSentiment.HasTwitterData {
		b.WriteString(FormatSentiment(data.SocialSentiment))
	}

	return b.String()
}

// FormatSentiment renders the social sentiment block. Callers should skip it
// when no social data was found.
func FormatSentiment(s *domain.SocialSentiment) string {
	var b strings.Builder

	fmt.Fprintf(&b, "SOCIAL SENTIMENT (Twitter, last 24h):\n")
	fmt.Fprintf(&b, "- Overall: %s\n", s.OverallSentiment)
	fmt.Fprintf(&b, "- Mentions: %d (positive: %d, negative: %d, neutral: %d)\n",
		s.TotalMentions, s.Positive, s.Negative, s.Neutral)
	if len(s.TrendingTopics) > 0 {
		fmt.Fprintf(&b, "- Trending Topics: %s\n", strings.Join(s.TrendingTopics, ", "))
	}
	if len(s.RecentTweets) > 0 {
		b.WriteString("- Sample Posts:\n")
		for _, tweet := range s.RecentTweets {
			text := strings.ReplaceAll(tweet.Text, "\n", " ")
			fmt.Fprintf(&b, "  * [%s] %s\n", tweet.Sentiment, text)
		}
	}
	b.WriteString("\n")

	return b.String()
}

func formatIndicators(ind domain.TechnicalIndicators) string {
	if ind.Empty() {
		return ""
	}

	var b strings.Builder
	b.WriteString("TECHNICAL INDICATORS:\n")

	if len(ind.RSI) > 0 {
		latest := ind.RSI[0]
		fmt.Fprintf(&b, "- RSI (14): %s (%s)\n", latest.RSI, RSIInterpretation(latest.RSI))
	}
	if len(ind.MACD) > 0 {
		latest := ind.MACD[0]
		fmt.Fprintf(&b, "- MACD: %s, Signal: %s, Histogram: %s\n",
			latest.MACD, latest.MACDSignal, latest.MACDHist)
	}
	if len(ind.BollingerBands) > 0 {
		latest := ind.BollingerBands[0]
		fmt.Fprintf(&b, "- Bollinger Bands: Upper: %s, Middle: %s, Lower: %s\n",
			latest.UpperBand, latest.MiddleBand, latest.LowerBand)
	}
	b.WriteString("\n")

	return b.String()
}

// RSIInterpretation labels an RSI value string as overbought, oversold, or
// neutral. Unparseable values read as neutral.
func RSIInterpretation(raw string) string {
	rsi, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return "Neutral"
	}
	switch {
	case rsi > 70:
		return "Overbought"
	case rsi < 30:
		return "Oversold"
	default:
		return "Neutral"
	}
}

func yesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}
