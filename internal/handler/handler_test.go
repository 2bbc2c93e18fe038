package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/hasanpeal/AlphaSignalAI/internal/domain"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"
)

type stockQuerierStub struct {
	data    *domain.StockData
	dataErr error
	quote   *domain.StockQuote
	quoteErr error
	matches []domain.SymbolMatch

	lastSymbol string
	lastQuery  string
	quoteCalls int
}

func (s *stockQuerierStub) GetStockData(ctx context.Context, symbol string) (*domain.StockData, error) {
	s.lastSymbol = symbol
	return s.data, s.dataErr
}

func (s *stockQuerierStub) GetQuote(ctx context.Context, symbol string) (*domain.StockQuote, error) {
	s.lastSymbol = symbol
	s.quoteCalls++
	return s.quote, s.quoteErr
}

func (s *stockQuerierStub) SearchSymbols(ctx context.Context, query string) []domain.SymbolMatch {
	s.lastQuery = query
	if s.matches == nil {
		return []domain.SymbolMatch{}
	}
	return s.matches
}

type sentimentQuerierStub struct {
	result      *domain.SocialSentiment
	lastSymbol  string
	lastCompany string
}

func (s *sentimentQuerierStub) GetStockSentiment(ctx context.Context, symbol, companyName string) *domain.SocialSentiment {
	s.lastSymbol = symbol
	s.lastCompany = companyName
	return s.result
}

type advisorStub struct {
	analyzeReply  string
	continueReply string

	analyzeCalls  int
	continueCalls int
	resetCalls    int
	lastSessionID string
	lastQuestion  string
	lastData      *domain.StockData
}

func (a *advisorStub) Analyze(ctx context.Context, sessionID, question string, data *domain.StockData) string {
	a.analyzeCalls++
	a.lastSessionID = sessionID
	a.lastQuestion = question
	a.lastData = data
	return a.analyzeReply
}

func (a *advisorStub) Continue(ctx context.Context, sessionID, question string) string {
	a.continueCalls++
	a.lastSessionID = sessionID
	a.lastQuestion = question
	return a.continueReply
}

func (a *advisorStub) Reset(sessionID string) {
	a.resetCalls++
}

func newTestHandler(market StockQuerier, sentiment SentimentQuerier, advisor ChatAdvisor) *Handler {
	return New(
		trace.NewNoopTracerProvider().Tracer("handler-test"),
		market,
		sentiment,
		advisor,
		time.Second,
	)
}

func serve(h *Handler, req *http.Request) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	router := gin.New()
	h.RegisterRoutes(router)
	router.ServeHTTP(w, req)
	return w
}

func errorBody(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("parse error: %v", err)
	}
	return body["error"]
}

func TestHealth(t *testing.T) {
	h := newTestHandler(&stockQuerierStub{}, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := serve(h, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if body["status"] != "ok" {
		t.Fatalf("unexpected body: %v", body)
	}
}
