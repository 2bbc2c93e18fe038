package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/hasanpeal/AlphaSignalAI/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel/trace"
)

// StockQuerier provides market data lookups to the HTTP layer.
type StockQuerier interface {
	GetStockData(ctx context.Context, symbol string) (*domain.StockData, error)
	GetQuote(ctx context.Context, symbol string) (*domain.StockQuote, error)
	SearchSymbols(ctx context.Context, query string) []domain.SymbolMatch
}

// SentimentQuerier provides standalone sentiment lookups.
type SentimentQuerier interface {
	GetStockSentiment(ctx context.Context, symbol, companyName string) *domain.SocialSentiment
}

// ChatAdvisor is the conversation engine surface the chat endpoint drives.
type ChatAdvisor interface {
	Analyze(ctx context.Context, sessionID, question string, data *domain.StockData) string
	Continue(ctx context.Context, sessionID, question string) string
	Reset(sessionID string)
}

type Handler struct {
	tracer           trace.Tracer
	marketService    StockQuerier
	sentimentService SentimentQuerier
	advisor          ChatAdvisor
	quotePushEvery   time.Duration
	upgrader         websocket.Upgrader
}

func New(
	tracer trace.Tracer,
	marketService StockQuerier,
	sentimentService SentimentQuerier,
	advisor ChatAdvisor,
	quotePushEvery time.Duration,
) *Handler {
	if quotePushEvery <= 0 {
		quotePushEvery = 15 * time.Second
	}
	return &Handler{
		tracer:           tracer,
		marketService:    marketService,
		sentimentService: sentimentService,
		advisor:          advisor,
		quotePushEvery:   quotePushEvery,
		upgrader: websocket.Upgrader{
			// The browser UI is served from another origin in dev.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", h.Health)
	r.POST("/chat", h.Chat)
	r.GET("/search-symbols", h.SearchSymbols)
	r.GET("/stock-data", h.GetStockData)
	r.GET("/social-sentiment", h.GetSocialSentiment)
	r.GET("/ws/quotes", h.StreamQuotes)
}

// Health godoc
// @Summary      Health check
// @Tags         meta
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
