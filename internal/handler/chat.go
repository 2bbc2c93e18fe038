package handler

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
)

type chatRequest struct {
	Message           string `json:"message"`
	Symbol            string `json:"symbol"`
	IsNewConversation bool   `json:"isNewConversation"`
	SessionID         string `json:"sessionId"`
}

type chatResponse struct {
	Response  string `json:"response"`
	SessionID string `json:"sessionId"`
}

// Chat godoc
// @Summary      Send a chat message
// @Description  Starts a stock analysis conversation (symbol + isNewConversation) or continues an existing session
// @Tags         chat
// @Accept       json
// @Produce      json
// @Param        request  body  chatRequest  true  "Chat message"
// @Success      200  {object}  chatResponse
// @Failure      400  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /chat [post]
func (h *Handler) Chat(c *gin.Context) {
	if h.advisor == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "chat advisor unavailable"})
		return
	}

	ctx, span := h.tracer.Start(c.Request.Context(), "handler.chat")
	defer span.End()

	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Message is required"})
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Message is required"})
		return
	}

	sessionID := strings.TrimSpace(req.SessionID)
	if sessionID == "" {
		sessionID = fmt.Sprintf("session_%d", time.Now().UnixMilli())
	}
	span.SetAttributes(
		attribute.String("session_id", sessionID),
		attribute.Bool("new_conversation", req.IsNewConversation),
	)

	var response string
	if req.Symbol != "" && req.IsNewConversation {
		span.SetAttributes(attribute.String("symbol", req.Symbol))
		h.advisor.Reset(sessionID)

		data, err := h.marketService.GetStockData(ctx, req.Symbol)
		if err != nil {
			span.RecordError(err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process chat message"})
			return
		}
		response = h.advisor.Analyze(ctx, sessionID, req.Message, data)
	} else {
		response = h.advisor.Continue(ctx, sessionID, req.Message)
	}

	c.JSON(http.StatusOK, chatResponse{Response: response, SessionID: sessionID})
}
