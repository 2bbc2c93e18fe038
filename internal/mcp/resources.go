package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/hasanpeal/AlphaSignalAI/internal/sentiment"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func registerResources(server *mcp.Server, stocks StockReader, sentimentSvc SentimentReader) {
	server.AddResource(&mcp.Resource{
		URI:         "sentiment://keywords/positive",
		Name:        "sentiment-keywords-positive",
		Description: "Keywords that score a tweet as positive",
		MIMEType:    "application/json",
	}, func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		_ = ctx
		return jsonResource(req.Params.URI, sentiment.PositiveKeywords)
	})

	server.AddResource(&mcp.Resource{
		URI:         "sentiment://keywords/negative",
		Name:        "sentiment-keywords-negative",
		Description: "Keywords that score a tweet as negative",
		MIMEType:    "application/json",
	}, func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		_ = ctx
		return jsonResource(req.Params.URI, sentiment.NegativeKeywords)
	})

	server.AddResource(&mcp.Resource{
		URI:         "sentiment://topics",
		Name:        "sentiment-topics",
		Description: "Vocabulary used to extract trending topics from tweets",
		MIMEType:    "application/json",
	}, func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		_ = ctx
		return jsonResource(req.Params.URI, sentiment.TopicVocabulary)
	})

	server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: "quotes://symbol/{symbol}",
		Name:        "quote-by-symbol",
		Description: "Current market quote for a specific ticker",
		MIMEType:    "application/json",
	}, func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		if stocks == nil {
			return nil, fmt.Errorf("market service unavailable")
		}

		parsed, err := url.Parse(req.Params.URI)
		if err != nil {
			return nil, mcp.ResourceNotFoundError(req.Params.URI)
		}
		if parsed.Scheme != "quotes" || parsed.Host != "symbol" {
			return nil, mcp.ResourceNotFoundError(req.Params.URI)
		}

		symbol := strings.Trim(strings.TrimSpace(parsed.Path), "/")
		symbol, err = normalizeSymbol(symbol)
		if err != nil {
			return nil, err
		}

		quote, err := stocks.GetQuote(ctx, symbol)
		if err != nil {
			return nil, err
		}
		return jsonResource(req.Params.URI, quoteGetOutput{Quote: quote})
	})

	server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: "sentiment://symbol/{symbol}{?company}",
		Name:        "sentiment-by-symbol",
		Description: "Twitter sentiment for a ticker; optional company query param widens the search",
		MIMEType:    "application/json",
	}, func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		if sentimentSvc == nil {
			return nil, fmt.Errorf("sentiment service unavailable")
		}

		parsed, err := url.Parse(req.Params.URI)
		if err != nil {
			return nil, mcp.ResourceNotFoundError(req.Params.URI)
		}
		if parsed.Scheme != "sentiment" || parsed.Host != "symbol" {
			return nil, mcp.ResourceNotFoundError(req.Params.URI)
		}

		symbol, err := normalizeSymbol(strings.Trim(strings.TrimSpace(parsed.Path), "/"))
		if err != nil {
			return nil, err
		}
		company := strings.TrimSpace(parsed.Query().Get("company"))

		result := sentimentSvc.GetStockSentiment(ctx, symbol, company)
		return jsonResource(req.Params.URI, sentimentGetOutput{Symbol: symbol, Sentiment: result})
	})
}

func jsonResource(uri string, payload any) (*mcp.ReadResourceResult, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(body),
		}},
	}, nil
}
