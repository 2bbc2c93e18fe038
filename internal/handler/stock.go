package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
)

// SearchSymbols godoc
// @Summary      Search ticker symbols
// @Description  Full-text symbol lookup; returns an empty list when the upstream search fails
// @Tags         market
// @Produce      json
// @Param        q  query  string  true  "Search query (symbol or company name)"
// @Success      200  {array}   domain.SymbolMatch
// @Failure      400  {object}  map[string]string
// @Router       /search-symbols [get]
func (h *Handler) SearchSymbols(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.search-symbols")
	defer span.End()

	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Query parameter is required"})
		return
	}
	span.SetAttributes(attribute.String("query", query))

	c.JSON(http.StatusOK, h.marketService.SearchSymbols(ctx, query))
}

// GetStockData godoc
// @Summary      Get aggregate stock data
// @Description  Quote, recent time series, technical indicators, and social sentiment for a symbol
// @Tags         market
// @Produce      json
// @Param        symbol  query  string  true  "Ticker symbol"
// @Success      200  {object}  domain.StockData
// @Failure      400  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /stock-data [get]
func (h *Handler) GetStockData(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.get-stock-data")
	defer span.End()

	symbol := strings.TrimSpace(c.Query("symbol"))
	if symbol == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Symbol parameter is required"})
		return
	}
	span.SetAttributes(attribute.String("symbol", symbol))

	data, err := h.marketService.GetStockData(ctx, symbol)
	if err != nil {
		span.RecordError(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch stock data"})
		return
	}

	c.JSON(http.StatusOK, data)
}

// GetSocialSentiment godoc
// @Summary      Get social sentiment
// @Description  Keyword-scored Twitter sentiment for a symbol over the trailing 24 hours
// @Tags         sentiment
// @Produce      json
// @Param        symbol   query  string  true   "Ticker symbol"
// @Param        company  query  string  false  "Company name hint"
// @Success      200  {object}  domain.SocialSentiment
// @Failure      400  {object}  map[string]string
// @Router       /social-sentiment [get]
func (h *Handler) GetSocialSentiment(c *gin.Context) {
	if h.sentimentService == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "sentiment service unavailable"})
		return
	}

	ctx, span := h.tracer.Start(c.Request.Context(), "handler.get-social-sentiment")
	defer span.End()

	symbol := strings.TrimSpace(c.Query("symbol"))
	if symbol == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Symbol parameter is required"})
		return
	}
	span.SetAttributes(attribute.String("symbol", symbol))

	company := strings.TrimSpace(c.Query("company"))
	c.JSON(http.StatusOK, h.sentimentService.GetStockSentiment(ctx, symbol, company))
}
