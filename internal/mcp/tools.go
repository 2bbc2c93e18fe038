package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func registerTools(server *mcp.Server, stocks StockReader, sentiment SentimentReader) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "stock_data_get",
		Description: "Get the full aggregated view for a ticker: quote, daily history, technical indicators, and Twitter sentiment if available",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, in stockDataGetInput) (*mcp.CallToolResult, stockDataGetOutput, error) {
		if stocks == nil {
			return nil, stockDataGetOutput{}, fmt.Errorf("market service unavailable")
		}
		symbol, err := normalizeSymbol(in.Symbol)
		if err != nil {
			return nil, stockDataGetOutput{}, err
		}
		data, err := stocks.GetStockData(ctx, symbol)
		if err != nil {
			return nil, stockDataGetOutput{}, err
		}
		return nil, stockDataGetOutput{Data: data}, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "quote_get",
		Description: "Get the current market quote for one ticker",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, in quoteGetInput) (*mcp.CallToolResult, quoteGetOutput, error) {
		if stocks == nil {
			return nil, quoteGetOutput{}, fmt.Errorf("market service unavailable")
		}
		symbol, err := normalizeSymbol(in.Symbol)
		if err != nil {
			return nil, quoteGetOutput{}, err
		}
		quote, err := stocks.GetQuote(ctx, symbol)
		if err != nil {
			return nil, quoteGetOutput{}, err
		}
		return nil, quoteGetOutput{Quote: quote}, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "symbols_search",
		Description: "Search tickers by symbol or company name fragment",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, in symbolsSearchInput) (*mcp.CallToolResult, symbolsSearchOutput, error) {
		if stocks == nil {
			return nil, symbolsSearchOutput{}, fmt.Errorf("market service unavailable")
		}
		query, err := normalizeQuery(in.Query)
		if err != nil {
			return nil, symbolsSearchOutput{}, err
		}
		return nil, symbolsSearchOutput{Matches: stocks.SearchSymbols(ctx, query)}, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "sentiment_get",
		Description: "Get keyword-scored Twitter sentiment for a ticker over the last 24 hours",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, in sentimentGetInput) (*mcp.CallToolResult, sentimentGetOutput, error) {
		if sentiment == nil {
			return nil, sentimentGetOutput{}, fmt.Errorf("sentiment service unavailable")
		}
		symbol, err := normalizeSymbol(in.Symbol)
		if err != nil {
			return nil, sentimentGetOutput{}, err
		}
		result := sentiment.GetStockSentiment(ctx, symbol, in.CompanyName)
		return nil, sentimentGetOutput{Symbol: symbol, Sentiment: result}, nil
	})
}
