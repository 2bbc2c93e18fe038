package bot

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/hasanpeal/AlphaSignalAI/internal/domain"

	tele "gopkg.in/telebot.v3"
)

type QuoteQuerier interface {
	GetQuote(ctx context.Context, symbol string) (*domain.StockQuote, error)
	SearchSymbols(ctx context.Context, query string) []domain.SymbolMatch
}

type SentimentQuerier interface {
	GetStockSentiment(ctx context.Context, symbol, companyName string) *domain.SocialSentiment
}

type Advisor interface {
	Ask(ctx context.Context, sessionID, message string) string
	Reset(sessionID string)
}

const maxTelegramReply = 4000

func StartTelegramBot(marketService QuoteQuerier, sentimentService SentimentQuerier, advisorService Advisor) *tele.Bot {
	token := os.Getenv("TELEGRAM_BOT_TOKEN")
	if token == "" {
		log.Println("TELEGRAM_BOT_TOKEN not set, skipping Telegram bot startup")
		return nil
	}
	pref := tele.Settings{
		Token:  token,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	}
	b, err := tele.NewBot(pref)
	if err != nil {
		log.Fatalf("failed to create Telegram bot: %v", err)
	}

	b.Handle("/ping", func(c tele.Context) error {
		return c.Send("pong")
	})

	b.Handle("/quote", func(c tele.Context) error {
		symbol, err := parseSymbolArg(c.Args())
		if err != nil {
			return c.Send("Usage: /quote AAPL")
		}
		quote, err := marketService.GetQuote(context.Background(), symbol)
		if err != nil {
			return c.Send(fmt.Sprintf("Error fetching quote for %s: %v", symbol, err))
		}
		return c.Send(formatQuote(quote))
	})

	b.Handle("/search", func(c tele.Context) error {
		query := strings.TrimSpace(c.Message().Payload)
		if query == "" {
			return c.Send("Usage: /search apple")
		}
		matches := marketService.SearchSymbols(context.Background(), query)
		if len(matches) == 0 {
			return c.Send("No matching symbols.")
		}
		lines := make([]string, 0, len(matches)+1)
		lines = append(lines, "Matching symbols:")
		for _, m := range matches {
			lines = append(lines, fmt.Sprintf("%s - %s (%s)", m.Symbol, m.Name, m.Exchange))
		}
		return c.Send(strings.Join(lines, "\n"))
	})

	b.Handle("/sentiment", func(c tele.Context) error {
		if sentimentService == nil {
			return c.Send("Sentiment service unavailable. Set SCRAPER_API_KEY to enable.")
		}
		symbol, err := parseSymbolArg(c.Args())
		if err != nil {
			return c.Send("Usage: /sentiment TSLA")
		}

		// The company name widens the Twitter search beyond the cashtag.
		companyName := ""
		if quote, err := marketService.GetQuote(context.Background(), symbol); err == nil {
			companyName = quote.Name
		}

		sentiment := sentimentService.GetStockSentiment(context.Background(), symbol, companyName)
		return c.Send(formatSentimentSummary(symbol, sentiment))
	})

	b.Handle("/ask", func(c tele.Context) error {
		if advisorService == nil {
			return c.Send("Advisor not configured. Set OPENAI_API_KEY to enable.")
		}
		question := strings.TrimSpace(c.Message().Payload)
		if question == "" {
			return c.Send("Usage: /ask <question>\nExample: /ask What do you think about AAPL?")
		}
		return handleAdvisorQuery(c, advisorService, question)
	})

	b.Handle("/reset", func(c tele.Context) error {
		if advisorService == nil {
			return c.Send("Advisor not configured. Set OPENAI_API_KEY to enable.")
		}
		chat := c.Chat()
		if chat == nil {
			return c.Send("Unable to detect chat")
		}
		advisorService.Reset(chatSessionID(chat.ID))
		return c.Send("Conversation cleared.")
	})

	b.Handle(tele.OnText, func(c tele.Context) error {
		if advisorService == nil {
			return nil
		}
		text := strings.TrimSpace(c.Text())
		if text == "" {
			return nil
		}
		return handleAdvisorQuery(c, advisorService, text)
	})

	log.Println("Telegram bot started")
	go b.Start()
	return b
}

func handleAdvisorQuery(c tele.Context, adv Advisor, question string) error {
	_ = c.Notify(tele.Typing)

	reply := adv.Ask(context.Background(), chatSessionID(c.Chat().ID), question)
	return c.Send(truncateReply(reply))
}

func chatSessionID(chatID int64) string {
	return fmt.Sprintf("tg:%d", chatID)
}

func truncateReply(reply string) string {
	if len(reply) <= maxTelegramReply {
		return reply
	}
	// Back up to a rune boundary so the cut never splits a multi-byte
	// character (emoji and smart quotes are common in advisor output).
	cut := maxTelegramReply
	for cut > 0 && !utf8.RuneStart(reply[cut]) {
		cut--
	}
	return reply[:cut] + "\n\n[truncated]"
}

func parseSymbolArg(args []string) (string, error) {
	if len(args) == 0 {
		return "", errors.New("missing symbol")
	}
	symbol := strings.ToUpper(strings.TrimSpace(args[0]))
	if symbol == "" || strings.HasPrefix(symbol, "--") {
		return "", errors.New("invalid symbol")
	}
	return symbol, nil
}

func formatQuote(q *domain.StockQuote) string {
	lines := []string{
		fmt.Sprintf("%s (%s)", q.Name, q.Symbol),
		fmt.Sprintf("Price: $%s", q.Close),
		fmt.Sprintf("Change: %s (%s%%)", q.Change, q.PercentChange),
		fmt.Sprintf("Volume: %s", q.Volume),
		fmt.Sprintf("Market open: %s", yesNo(q.IsMarketOpen)),
	}
	return strings.Join(lines, "\n")
}

func formatSentimentSummary(symbol string, s *domain.SocialSentiment) string {
	if s == nil || !s.HasTwitterData {
		return fmt.Sprintf("No recent Twitter activity found for %s.", symbol)
	}
	lines := []string{
		fmt.Sprintf("Twitter sentiment for %s: %s", symbol, strings.ToUpper(string(s.OverallSentiment))),
		fmt.Sprintf("Tweets analyzed: %d (%d positive / %d negative / %d neutral)",
			s.TotalMentions, s.Positive, s.Negative, s.Neutral),
	}
	if len(s.TrendingTopics) > 0 {
		lines = append(lines, "Trending: "+strings.Join(s.TrendingTopics, ", "))
	}
	return strings.Join(lines, "\n")
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
