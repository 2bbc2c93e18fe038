package mcp

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const defaultRequestTimeout = 10 * time.Second

type ServerConfig struct {
	RequestTimeout time.Duration
}

func NewServer(tracer trace.Tracer, stocks StockReader, sentiment SentimentReader, cfg ServerConfig) *sdkmcp.Server {
	requestTimeout := cfg.RequestTimeout
	if requestTimeout <= 0 {
		requestTimeout = defaultRequestTimeout
	}

	srv := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "alphasignal-ai-mcp",
		Version: "1.0.0",
	}, &sdkmcp.ServerOptions{
		Instructions: "Use these tools/resources to inspect stock quotes, technical indicators, and Twitter sentiment.",
		Logger:       slog.Default(),
	})

	srv.AddReceivingMiddleware(withDeadline(requestTimeout))
	if tracer != nil {
		srv.AddReceivingMiddleware(withSpans(tracer))
	}

	registerTools(srv, stocks, sentiment)
	registerResources(srv, stocks, sentiment)
	return srv
}

func NewHTTPTransportHandler(server *sdkmcp.Server, cfg HTTPHandlerConfig) http.Handler {
	base := sdkmcp.NewStreamableHTTPHandler(func(*http.Request) *sdkmcp.Server {
		return server
	}, &sdkmcp.StreamableHTTPOptions{})
	return wrapHTTPHandler(base, cfg)
}

// withDeadline caps every inbound request, so a stuck upstream cannot wedge
// a stdio session.
func withDeadline(timeout time.Duration) sdkmcp.Middleware {
	return func(next sdkmcp.MethodHandler) sdkmcp.MethodHandler {
		return func(ctx context.Context, method string, req sdkmcp.Request) (sdkmcp.Result, error) {
			if timeout <= 0 {
				return next(ctx, method, req)
			}
			ctx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()
			return next(ctx, method, req)
		}
	}
}

// withSpans opens one span per inbound request, named after the tool or
// resource being hit when that is known.
func withSpans(tracer trace.Tracer) sdkmcp.Middleware {
	return func(next sdkmcp.MethodHandler) sdkmcp.MethodHandler {
		return func(ctx context.Context, method string, req sdkmcp.Request) (sdkmcp.Result, error) {
			name, attrs := describeRequest(method, req)
			ctx, span := tracer.Start(ctx, name)
			span.SetAttributes(attrs...)
			defer span.End()

			result, err := next(ctx, method, req)
			if err != nil {
				span.RecordError(err)
			}
			return result, err
		}
	}
}

func describeRequest(method string, req sdkmcp.Request) (string, []attribute.KeyValue) {
	attrs := []attribute.KeyValue{attribute.String("mcp.method", method)}

	switch r := req.(type) {
	case *sdkmcp.CallToolRequest:
		tool := strings.TrimSpace(r.Params.Name)
		attrs = append(attrs, attribute.String("mcp.tool", tool))
		if tool == "" {
			return "mcp.tool.call", attrs
		}
		return "mcp.tool." + strings.ReplaceAll(tool, "/", "."), attrs
	case *sdkmcp.ReadResourceRequest:
		attrs = append(attrs, attribute.String("mcp.resource.uri", strings.TrimSpace(r.Params.URI)))
		return "mcp.resource.read", attrs
	default:
		return "mcp." + strings.ReplaceAll(method, "/", "."), attrs
	}
}
