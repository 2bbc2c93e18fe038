package handler

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/hasanpeal/AlphaSignalAI/internal/domain"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
)

type quotePush struct {
	Symbol string             `json:"symbol"`
	Quote  *domain.StockQuote `json:"quote,omitempty"`
	Error  string             `json:"error,omitempty"`
	At     time.Time          `json:"at"`
}

// StreamQuotes godoc
// @Summary      Stream live quotes
// @Description  Upgrades to a websocket and pushes the current quote for a symbol on a fixed interval
// @Tags         market
// @Param        symbol  query  string  true  "Ticker symbol"
// @Success      101  {string}  string  "Switching Protocols"
// @Failure      400  {object}  map[string]string
// @Router       /ws/quotes [get]
func (h *Handler) StreamQuotes(c *gin.Context) {
	symbol := strings.ToUpper(strings.TrimSpace(c.Query("symbol")))
	if symbol == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Symbol parameter is required"})
		return
	}

	_, span := h.tracer.Start(c.Request.Context(), "handler.stream-quotes")
	defer span.End()
	span.SetAttributes(attribute.String("symbol", symbol))

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("quote stream upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	// The read pump only exists to notice the peer going away.
	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				cancel()
				return
			}
		}
	}()

	ticker := time.NewTicker(h.quotePushEvery)
	defer ticker.Stop()

	for {
		if err := h.pushQuote(ctx, conn, symbol); err != nil {
			return
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

type wsWriter interface {
	WriteJSON(v interface{}) error
}

func (h *Handler) pushQuote(ctx context.Context, conn wsWriter, symbol string) error {
	push := quotePush{Symbol: symbol, At: time.Now().UTC()}

	quote, err := h.marketService.GetQuote(ctx, symbol)
	if err != nil {
		log.Printf("quote stream fetch failed for %s: %v", symbol, err)
		push.Error = "quote unavailable"
	} else {
		push.Quote = quote
	}

	return conn.WriteJSON(push)
}
