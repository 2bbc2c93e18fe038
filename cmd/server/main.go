package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hasanpeal/AlphaSignalAI/internal/bot"
	"github.com/hasanpeal/AlphaSignalAI/internal/cache"
	"github.com/hasanpeal/AlphaSignalAI/internal/config"
	"github.com/hasanpeal/AlphaSignalAI/internal/handler"
	"github.com/hasanpeal/AlphaSignalAI/internal/provider"
	"github.com/hasanpeal/AlphaSignalAI/internal/service"
	"github.com/hasanpeal/AlphaSignalAI/internal/session"
	"github.com/hasanpeal/AlphaSignalAI/pkg/tracing"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	_ "github.com/hasanpeal/AlphaSignalAI/docs"
)

var (
	loadEnvFunc            = godotenv.Load
	loadConfigFunc         = config.Load
	initRedisFunc          = cache.InitRedis
	initTracerFunc         = tracing.InitTracer
	newSessionStoreFunc    = session.NewStore
	startSessionSweepFunc  = func(store *session.Store, ctx context.Context) { go store.Start(ctx) }
	startTelegramBotFunc   = bot.StartTelegramBot
	newHandlerFunc         = handler.New
	newRouterFunc          = gin.Default
	setupSignalNotify      = signal.Notify
	waitForSignalFunc      = func(quit <-chan os.Signal) { <-quit }
	startHTTPServerFunc    = func(srv *http.Server) error { return srv.ListenAndServe() }
	shutdownHTTPServerFunc = func(srv *http.Server, ctx context.Context) error { return srv.Shutdown(ctx) }
)

// @title           AlphaSignal AI API
// @version         1.0
// @description     Stock chat service: market data, Twitter sentiment, and an LLM advisor.

// @host      localhost:8080
// @BasePath  /
func main() {
	loadEnvFunc()

	cfg := loadConfigFunc()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	os.Setenv("REDIS_URL", cfg.RedisURL)
	initRedisFunc(ctx)

	tp, tracer, err := initTracerFunc(ctx)
	if err != nil {
		log.Fatalf("failed to initialize tracer: %v", err)
	}
	defer func() {
		if err := tp.Shutdown(ctx); err != nil {
			log.Printf("error shutting down tracer provider: %v", err)
		}
	}()

	// Providers
	tdProvider := provider.NewTwelveDataProvider(provider.TwelveDataConfig{
		APIKey: cfg.TwelveDataAPIKey,
	}, tracer)

	var sentimentService *service.SentimentService
	if cfg.ScraperAPIKey != "" {
		scraper := provider.NewScraperProvider(provider.ScraperConfig{
			APIKey: cfg.ScraperAPIKey,
		}, tracer)
		sentimentService = service.NewSentimentService(tracer, scraper)
	} else {
		log.Println("sentiment disabled: no scraper key")
	}

	// Services
	var sentimentFetcher service.SentimentFetcher
	if sentimentService != nil {
		sentimentFetcher = sentimentService
	}
	marketService := service.NewMarketService(tracer, tdProvider, sentimentFetcher, cache.Client)

	sessions := newSessionStoreFunc(session.StoreConfig{
		Timeout:       time.Duration(cfg.SessionTimeoutMins) * time.Minute,
		SweepInterval: time.Duration(cfg.SessionSweepSecs) * time.Second,
	})
	startSessionSweepFunc(sessions, ctx)

	var advisorService *service.AdvisorService
	if cfg.OpenAIAPIKey != "" {
		advisorService = service.NewAdvisorService(tracer, service.AdvisorConfig{
			APIKey:     cfg.OpenAIAPIKey,
			Model:      cfg.OpenAIModel,
			MaxHistory: cfg.AdvisorMaxHistory,
		}, sessions)
	} else {
		log.Println("advisor disabled: no OpenAI key")
	}

	// Telegram bot
	os.Setenv("TELEGRAM_BOT_TOKEN", cfg.TelegramBotToken)
	var botAdvisor bot.Advisor
	if advisorService != nil {
		botAdvisor = advisorService
	}
	var botSentiment bot.SentimentQuerier
	if sentimentService != nil {
		botSentiment = sentimentService
	}
	startTelegramBotFunc(marketService, botSentiment, botAdvisor)

	// Handlers and routes
	var chatAdvisor handler.ChatAdvisor
	if advisorService != nil {
		chatAdvisor = advisorService
	}
	var sentimentQuerier handler.SentimentQuerier
	if sentimentService != nil {
		sentimentQuerier = sentimentService
	}
	h := newHandlerFunc(tracer, marketService, sentimentQuerier, chatAdvisor, time.Duration(cfg.QuotePushSecs)*time.Second)

	r := newRouterFunc()
	r.Use(cors.Default())
	r.Use(otelgin.Middleware("alphasignal-ai"))

	h.RegisterRoutes(r)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	go func() {
		if err := startHTTPServerFunc(srv); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	setupSignalNotify(quit, syscall.SIGINT, syscall.SIGTERM)
	waitForSignalFunc(quit)
	log.Println("Shutting down server...")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := shutdownHTTPServerFunc(srv, shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
